package eval_test

import (
	"errors"
	"math"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/takoeight0821/lox/ast"
	"github.com/takoeight0821/lox/eval"
	"github.com/takoeight0821/lox/lexer"
	"github.com/takoeight0821/lox/parser"
	"github.com/takoeight0821/lox/token"
	"github.com/takoeight0821/lox/utils"
	"github.com/takoeight0821/lox/value"
)

func mustParse(t *testing.T, input string) ast.Node {
	t.Helper()

	node, err := parser.Parse(lexer.NewScanner(input))
	if err != nil {
		t.Fatalf("Parse(%q) returned error: %v", input, err)
	}

	return node
}

func TestEvalFromTestData(t *testing.T) {
	t.Parallel()

	s, err := os.ReadFile("../testdata/testcase.yaml")
	if err != nil {
		t.Fatalf("failed to read test data: %v", err)
	}
	testcases, err := utils.ReadTestData(s)
	if err != nil {
		t.Fatalf("failed to decode test data: %v", err)
	}

	for _, testcase := range testcases {
		expected, ok := testcase.Expected["eval"]
		if !ok {
			continue
		}
		t.Run(testcase.Label, func(t *testing.T) {
			v, err := eval.Evaluate(mustParse(t, testcase.Input))
			if err != nil {
				t.Fatalf("Eval returned error: %v", err)
			}
			if diff := cmp.Diff(expected, v.String()); diff != "" {
				t.Errorf("Eval mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEval(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		input    string
		expected value.Value
	}{
		{"34+28-12/3", value.Number(58.0)},
		{"34+(28-12)/3", value.Number(34.0 + 16.0/3.0)},
		{"34>2", value.Boolean(true)},
		{"34<2", value.Boolean(false)},
		{"34==34", value.Boolean(true)},
		{"34!=34", value.Boolean(false)},
		{`"a"=="a"`, value.Boolean(true)},
		{`"a"=="b"`, value.Boolean(false)},
		{`"b" > "a"`, value.Boolean(true)},
		{`"B" > "a"`, value.Boolean(false)},
		{`"ab" >= "ab"`, value.Boolean(true)},
		{`"" < "a"`, value.Boolean(true)},
		{"2 <= 2", value.Boolean(true)},
		{"true == 1", value.Boolean(false)},
		{"true != false", value.Boolean(true)},
		{`"x"`, value.String("x")},
		{"nil", value.Nil{}},
		{"--4", value.Number(4)},
		{"2 * -3", value.Number(-6)},
	}

	for _, testcase := range testcases {
		v, err := eval.Evaluate(mustParse(t, testcase.input))
		if err != nil {
			t.Errorf("Eval(%q) returned error: %v", testcase.input, err)

			continue
		}
		if diff := cmp.Diff(testcase.expected, v); diff != "" {
			t.Errorf("Eval(%q) mismatch (-want +got):\n%s", testcase.input, diff)
		}
	}
}

func TestNaN(t *testing.T) {
	t.Parallel()

	v, err := eval.Evaluate(mustParse(t, "0/0"))
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	n, ok := v.(value.Number)
	if !ok || !math.IsNaN(float64(n)) {
		t.Fatalf("expected NaN, got %v", v)
	}

	// NaN is unordered and unequal to itself.
	for _, input := range []string{"0/0 == 0/0", "0/0 < 1", "0/0 >= 1"} {
		v, err := eval.Evaluate(mustParse(t, input))
		if err != nil {
			t.Fatalf("Eval(%q) returned error: %v", input, err)
		}
		if v != value.Boolean(false) {
			t.Errorf("Eval(%q) = %v, expected false", input, v)
		}
	}
}

func TestTypeError(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		input    string
		op       token.Kind
		operands []value.Kind
	}{
		{"true>false", token.GREATER, []value.Kind{value.BooleanKind, value.BooleanKind}},
		{`1 < "2"`, token.LESS, []value.Kind{value.NumberKind, value.StringKind}},
		{`"a" + "b"`, token.PLUS, []value.Kind{value.StringKind, value.StringKind}},
		{"nil * 2", token.STAR, []value.Kind{value.NilKind, value.NumberKind}},
		{`-"a"`, token.MINUS, []value.Kind{value.StringKind}},
		{"!1", token.BANG, []value.Kind{value.NumberKind}},
		{"!nil", token.BANG, []value.Kind{value.NilKind}},
		{"nil <= nil", token.LESSEQUAL, []value.Kind{value.NilKind, value.NilKind}},
		// the first failing operator wins
		{"(true - 1) + (2 < false)", token.MINUS, []value.Kind{value.BooleanKind, value.NumberKind}},
	}

	for _, testcase := range testcases {
		_, err := eval.Evaluate(mustParse(t, testcase.input))

		var typeErr *eval.TypeError
		if !errors.As(err, &typeErr) {
			t.Errorf("Eval(%q): expected TypeError, got %v", testcase.input, err)

			continue
		}
		if typeErr.Op.Kind != testcase.op {
			t.Errorf("Eval(%q): operator %v, expected %v", testcase.input, typeErr.Op.Kind, testcase.op)
		}
		if diff := cmp.Diff(testcase.operands, typeErr.Operands); diff != "" {
			t.Errorf("Eval(%q) operands mismatch (-want +got):\n%s", testcase.input, diff)
		}
	}
}

func TestTypeErrorMessage(t *testing.T) {
	t.Parallel()

	_, err := eval.Evaluate(mustParse(t, "true>false"))
	expected := "at 1:5: `>`, operands of `>` must be two Numbers or two Strings, got Boolean and Boolean"
	if diff := cmp.Diff(expected, err.Error()); diff != "" {
		t.Errorf("message mismatch (-want +got):\n%s", diff)
	}
}

func TestEvalIsIdempotent(t *testing.T) {
	t.Parallel()

	ev := eval.NewEvaluator()
	for _, input := range []string{"34+(28-12)/3", `"a" < "b"`, "true > false"} {
		node := mustParse(t, input)
		before := node.String()

		v1, err1 := ev.Eval(node)
		v2, err2 := ev.Eval(node)
		if diff := cmp.Diff(v1, v2); diff != "" {
			t.Errorf("Eval(%q) differs between runs (-first +second):\n%s", input, diff)
		}
		if (err1 == nil) != (err2 == nil) || (err1 != nil && err1.Error() != err2.Error()) {
			t.Errorf("Eval(%q) errors differ: %v, %v", input, err1, err2)
		}
		if node.String() != before {
			t.Errorf("Eval(%q) changed the tree: %s", input, node)
		}
	}
}

func TestTypeErrorWithoutOperands(t *testing.T) {
	t.Parallel()

	err := &eval.TypeError{Op: token.Token{Kind: token.PLUS, Lexeme: "+"}}
	if diff := cmp.Diff("invalid operands of `+`", err.Error()); diff != "" {
		t.Errorf("message mismatch (-want +got):\n%s", diff)
	}
}

func TestTypeErrorPosition(t *testing.T) {
	t.Parallel()

	_, err := eval.Evaluate(mustParse(t, "1 +\n  -true"))

	var pos utils.PosError
	if !errors.As(err, &pos) {
		t.Fatalf("expected PosError, got %v", err)
	}
	if pos.Where.Kind != token.MINUS || pos.Where.Line != 2 || pos.Where.Column != 3 {
		t.Errorf("error at %v, expected `-` at 2:3", pos.Where)
	}
}

func TestEvalLongChain(t *testing.T) {
	t.Parallel()

	v, err := eval.Evaluate(mustParse(t, "0"+strings.Repeat("+1", parser.MaxDepth-1)))
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if diff := cmp.Diff(value.Value(value.Number(parser.MaxDepth-1)), v); diff != "" {
		t.Errorf("Eval mismatch (-want +got):\n%s", diff)
	}
}
