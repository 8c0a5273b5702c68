package driver

import (
	"errors"
	"fmt"
	"io"

	"github.com/takoeight0821/lox/ast"
	"github.com/takoeight0821/lox/eval"
	"github.com/takoeight0821/lox/lexer"
	"github.com/takoeight0821/lox/parser"
	"github.com/takoeight0821/lox/token"
	"github.com/takoeight0821/lox/value"
)

// Runner runs the scanner, the parser and the evaluator over one source text.
type Runner struct {
	// Trace receives tokens and trees when TraceTokens or TraceAST is set.
	Trace       io.Writer
	TraceTokens bool
	TraceAST    bool

	evaluator *eval.Evaluator
}

func NewRunner() *Runner {
	return &Runner{Trace: io.Discard, evaluator: eval.NewEvaluator()}
}

// Parse scans and parses source. Tokens are pulled from the scanner on demand.
func (r *Runner) Parse(source string) (ast.Node, error) {
	src := &tracingSource{scanner: lexer.NewScanner(source)}
	if r.TraceTokens {
		src.trace = r.Trace
	}

	node, err := parser.Parse(src)
	if src.err != nil {
		return nil, fmt.Errorf("lex: %w", src.drain())
	}
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	if r.TraceAST {
		traceAST(r.Trace, node)
	}

	return node, nil
}

// RunSource parses and evaluates source.
func (r *Runner) RunSource(source string) (value.Value, error) {
	node, err := r.Parse(source)
	if err != nil {
		return nil, err
	}

	v, err := r.evaluator.Eval(node)
	if err != nil {
		return nil, fmt.Errorf("eval: %w", err)
	}

	return v, nil
}

// traceAST writes the tree followed by its nodes in evaluation order.
func traceAST(w io.Writer, node ast.Node) {
	fmt.Fprintln(w, node)
	for _, n := range ast.Universe(node) {
		base := n.Base()
		fmt.Fprintf(w, "\t%d:%d %s\n", base.Line, base.Column, base.Lexeme)
	}
}

// DumpTokens writes every token of source, one per line. Scan errors are
// written in place of the offending lexeme and returned joined.
func DumpTokens(w io.Writer, source string) error {
	var errs error
	for tok, err := range lexer.Tokens(source) {
		if err != nil {
			fmt.Fprintf(w, "error: %v\n", err)
			errs = errors.Join(errs, err)

			continue
		}
		fmt.Fprintln(w, tok)
	}

	return errs
}

// tracingSource feeds the parser from a scanner and remembers the scan error
// that stopped it.
type tracingSource struct {
	scanner *lexer.Scanner
	trace   io.Writer
	err     error
}

func (s *tracingSource) Next() (token.Token, error) {
	tok, err := s.scanner.Next()
	if err != nil {
		s.err = err

		return tok, err
	}
	if s.trace != nil {
		fmt.Fprintln(s.trace, tok)
	}

	return tok, nil
}

// drain scans the rest of the input and joins the remaining scan errors to
// the one that stopped parsing.
func (s *tracingSource) drain() error {
	errs := s.err
	for {
		tok, err := s.scanner.Next()
		if err != nil {
			errs = errors.Join(errs, err)

			continue
		}
		if tok.Kind == token.EOF {
			return errs
		}
	}
}
