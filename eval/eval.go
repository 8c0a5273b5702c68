// Package eval evaluates expression trees.
package eval

import (
	"fmt"

	"github.com/takoeight0821/lox/ast"
	"github.com/takoeight0821/lox/token"
	"github.com/takoeight0821/lox/utils"
	"github.com/takoeight0821/lox/value"
)

// Evaluator walks an expression tree and computes its value.
// It holds no state, so one Evaluator may be reused for any number of trees.
type Evaluator struct{}

func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Evaluate is a shorthand for NewEvaluator().Eval(node).
func Evaluate(node ast.Node) (value.Value, error) {
	return NewEvaluator().Eval(node)
}

// Eval evaluates the children of node before node itself and stops at the
// first error.
func (ev *Evaluator) Eval(node ast.Node) (value.Value, error) {
	switch n := node.(type) {
	case *ast.Literal:
		return n.Value, nil
	case *ast.Unary:
		operand, err := ev.Eval(n.Operand)
		if err != nil {
			return nil, err
		}

		return evalUnary(n, operand)
	case *ast.Binary:
		left, err := ev.Eval(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := ev.Eval(n.Right)
		if err != nil {
			return nil, err
		}

		return evalBinary(n, left, right)
	default:
		return nil, fmt.Errorf("unexpected node: %v", n)
	}
}

func evalUnary(node *ast.Unary, operand value.Value) (value.Value, error) {
	//exhaustive:ignore
	switch node.Op.Kind {
	case token.MINUS:
		if n, ok := operand.(value.Number); ok {
			return -n, nil
		}
	case token.BANG:
		if b, ok := operand.(value.Boolean); ok {
			return !b, nil
		}
	}

	return nil, typeError(node, operand)
}

func evalBinary(node *ast.Binary, left, right value.Value) (value.Value, error) {
	//exhaustive:ignore
	switch node.Op.Kind {
	case token.EQUALEQUAL:
		return value.Boolean(value.Equal(left, right)), nil
	case token.BANGEQUAL:
		return value.Boolean(!value.Equal(left, right)), nil
	case token.PLUS, token.MINUS, token.STAR, token.SLASH:
		return arith(node, left, right)
	case token.GREATER, token.GREATEREQUAL, token.LESS, token.LESSEQUAL:
		return compare(node, left, right)
	}

	return nil, typeError(node, left, right)
}

// arith follows IEEE 754; division by zero yields an infinity or NaN.
func arith(node *ast.Binary, left, right value.Value) (value.Value, error) {
	l, lok := left.(value.Number)
	r, rok := right.(value.Number)
	if !lok || !rok {
		return nil, typeError(node, left, right)
	}

	//exhaustive:ignore
	switch node.Op.Kind {
	case token.PLUS:
		return l + r, nil
	case token.MINUS:
		return l - r, nil
	case token.STAR:
		return l * r, nil
	case token.SLASH:
		return l / r, nil
	}

	return nil, typeError(node, left, right)
}

// compare orders two Numbers or two Strings. Strings compare byte-wise.
func compare(node *ast.Binary, left, right value.Value) (value.Value, error) {
	switch l := left.(type) {
	case value.Number:
		if r, ok := right.(value.Number); ok {
			return value.Boolean(ordered(node.Op.Kind, l, r)), nil
		}
	case value.String:
		if r, ok := right.(value.String); ok {
			return value.Boolean(ordered(node.Op.Kind, l, r)), nil
		}
	}

	return nil, typeError(node, left, right)
}

func ordered[T value.Number | value.String](kind token.Kind, l, r T) bool {
	//exhaustive:ignore
	switch kind {
	case token.GREATER:
		return l > r
	case token.GREATEREQUAL:
		return l >= r
	case token.LESS:
		return l < r
	case token.LESSEQUAL:
		return l <= r
	}

	return false
}

// TypeError reports operands whose kinds the operator does not accept.
type TypeError struct {
	Op       token.Token
	Operands []value.Kind
}

func (e *TypeError) Error() string {
	switch len(e.Operands) {
	case 0:
		return fmt.Sprintf("invalid operands of `%s`", e.Op.Lexeme)
	case 1:
		return fmt.Sprintf("operand of `%s` must be %s, got %v", e.Op.Lexeme, expectedKind(e.Op.Kind), e.Operands[0])
	}

	return fmt.Sprintf("operands of `%s` must be %s, got %v and %v", e.Op.Lexeme, expectedKind(e.Op.Kind), e.Operands[0], e.Operands[1])
}

func expectedKind(kind token.Kind) string {
	//exhaustive:ignore
	switch kind {
	case token.BANG:
		return "Boolean"
	case token.GREATER, token.GREATEREQUAL, token.LESS, token.LESSEQUAL:
		return "two Numbers or two Strings"
	default:
		return "Number"
	}
}

// typeError reports the operands at the operator token of node.
func typeError(node ast.Node, operands ...value.Value) error {
	kinds := make([]value.Kind, len(operands))
	for i, v := range operands {
		kinds[i] = v.Kind()
	}

	return utils.PosError{Where: node.Base(), Err: &TypeError{Op: node.Base(), Operands: kinds}}
}
