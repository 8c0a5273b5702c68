package parser

import (
	"errors"
	"slices"
	"strconv"

	"github.com/takoeight0821/lox/ast"
	"github.com/takoeight0821/lox/token"
	"github.com/takoeight0821/lox/value"
)

// Source is a cursor over a token stream. *lexer.Scanner implements it.
// A non-nil error stops parsing and is returned to the caller as is.
type Source interface {
	Next() (token.Token, error)
}

// MaxDepth bounds both the nesting of unary operators and parentheses and
// the height of the resulting tree. Deeper input is rejected with an
// UnexpectedTokenError at the token that crosses the limit.
const MaxDepth = 10000

// Parser reads tokens from a Source with one token of lookahead.
type Parser struct {
	source  Source
	current token.Token
	filled  bool

	depth  int // nesting of unary and primary calls in progress
	height int // height of the node returned last
}

func NewParser(source Source) *Parser {
	return &Parser{source: source}
}

// Parse parses a single expression that spans the whole source.
func Parse(source Source) (ast.Node, error) {
	return NewParser(source).ParseExpr()
}

// ParseExpr parses an expression followed by EOF.
// It returns the first error it encounters.
func (p *Parser) ParseExpr() (ast.Node, error) {
	expr, err := p.expr()
	if err != nil {
		return nil, err
	}

	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind != token.EOF {
		return nil, unexpectedToken(tok)
	}

	return expr, nil
}

// expr = equality ;
func (p *Parser) expr() (ast.Node, error) {
	return p.equality()
}

// equality = comparison (("!=" | "==") comparison)* ;
func (p *Parser) equality() (ast.Node, error) {
	return p.binary(p.comparison, token.BANGEQUAL, token.EQUALEQUAL)
}

// comparison = term ((">" | ">=" | "<" | "<=") term)* ;
func (p *Parser) comparison() (ast.Node, error) {
	return p.binary(p.term, token.GREATER, token.GREATEREQUAL, token.LESS, token.LESSEQUAL)
}

// term = factor (("+" | "-") factor)* ;
func (p *Parser) term() (ast.Node, error) {
	return p.binary(p.factor, token.PLUS, token.MINUS)
}

// factor = unary (("/" | "*") unary)* ;
func (p *Parser) factor() (ast.Node, error) {
	return p.binary(p.unary, token.SLASH, token.STAR)
}

// binary folds operand (op operand)* into a left-leaning tree.
func (p *Parser) binary(operand func() (ast.Node, error), ops ...token.Kind) (ast.Node, error) {
	expr, err := operand()
	if err != nil {
		return nil, err
	}
	height := p.height

	for {
		op, ok, err := p.match(ops...)
		if err != nil {
			return nil, err
		}
		if !ok {
			p.height = height

			return expr, nil
		}
		right, err := operand()
		if err != nil {
			return nil, err
		}
		height = max(height, p.height) + 1
		if height > MaxDepth {
			return nil, unexpectedToken(op)
		}
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
}

// unary = ("!" | "-") unary | primary ;
func (p *Parser) unary() (ast.Node, error) {
	p.depth++
	defer func() { p.depth-- }()

	op, ok, err := p.match(token.BANG, token.MINUS)
	if err != nil {
		return nil, err
	}
	if p.depth > MaxDepth {
		return nil, unexpectedToken(op)
	}
	if !ok {
		return p.primary()
	}

	operand, err := p.unary()
	if err != nil {
		return nil, err
	}
	p.height++
	if p.height > MaxDepth {
		return nil, unexpectedToken(op)
	}

	return &ast.Unary{Op: op, Operand: operand}, nil
}

// primary = NUMBER | STRING | "true" | "false" | "nil" | "(" expr ")" ;
func (p *Parser) primary() (ast.Node, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}

	//exhaustive:ignore
	switch tok.Kind {
	case token.NUMBER, token.STRING:
		p.advance()
		v, err := literalValue(tok)
		if err != nil {
			return nil, err
		}

		p.height = 1

		return &ast.Literal{Token: tok, Value: v}, nil
	case token.TRUE:
		p.advance()

		p.height = 1

		return &ast.Literal{Token: tok, Value: value.Boolean(true)}, nil
	case token.FALSE:
		p.advance()

		p.height = 1

		return &ast.Literal{Token: tok, Value: value.Boolean(false)}, nil
	case token.NIL:
		p.advance()

		p.height = 1

		return &ast.Literal{Token: tok, Value: value.Nil{}}, nil
	case token.LEFTPAREN:
		p.advance()
		expr, err := p.expr()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RIGHTPAREN); err != nil {
			return nil, err
		}

		return expr, nil
	default:
		return nil, unexpectedToken(tok)
	}
}

// literalValue decodes the payload of a NUMBER or STRING token.
// Tokens built by hand may come without a Literal, so the lexeme is the fallback.
func literalValue(tok token.Token) (value.Value, error) {
	if tok.Kind == token.STRING {
		if s, ok := tok.Literal.(string); ok {
			return value.String(s), nil
		}
		s, err := strconv.Unquote(tok.Lexeme)
		if err != nil {
			return nil, unexpectedToken(tok)
		}

		return value.String(s), nil
	}

	if f, ok := tok.Literal.(float64); ok {
		return value.Number(f), nil
	}
	f, err := strconv.ParseFloat(tok.Lexeme, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return nil, unexpectedToken(tok)
	}

	return value.Number(f), nil
}

func (p *Parser) peek() (token.Token, error) {
	if !p.filled {
		tok, err := p.source.Next()
		if err != nil {
			return token.Token{}, err
		}
		p.current = tok
		p.filled = true
	}

	return p.current, nil
}

// advance drops the token returned by the last peek.
// EOF is sticky so the source is never pulled past its end.
func (p *Parser) advance() token.Token {
	tok := p.current
	if tok.Kind != token.EOF {
		p.filled = false
	}

	return tok
}

func (p *Parser) match(kinds ...token.Kind) (token.Token, bool, error) {
	tok, err := p.peek()
	if err != nil {
		return token.Token{}, false, err
	}
	if tok.Kind == token.EOF || !slices.Contains(kinds, tok.Kind) {
		return tok, false, nil
	}

	return p.advance(), true, nil
}

func (p *Parser) consume(kind token.Kind) (token.Token, error) {
	tok, ok, err := p.match(kind)
	if err != nil {
		return token.Token{}, err
	}
	if !ok {
		return tok, expectedToken(tok, kind)
	}

	return tok, nil
}
