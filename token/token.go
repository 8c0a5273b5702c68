package token

import "fmt"

//go:generate go run golang.org/x/tools/cmd/stringer@v0.13.0 -type=Kind
type Kind int

const (
	EOF Kind = iota

	// Single-character tokens.
	LEFTPAREN
	RIGHTPAREN
	LEFTBRACE
	RIGHTBRACE
	COMMA
	DOT
	MINUS
	PLUS
	SEMICOLON
	SLASH
	STAR

	// One or two character tokens.
	BANG
	BANGEQUAL
	EQUAL
	EQUALEQUAL
	GREATER
	GREATEREQUAL
	LESS
	LESSEQUAL

	// Literals and identifiers.
	IDENT
	STRING
	NUMBER

	// Keywords.
	AND
	CLASS
	DEF
	ELSE
	FALSE
	FOR
	FUN
	IF
	NIL
	OR
	PRINT
	RETURN
	SUPER
	THIS
	TRUE
	VAR
	WHILE
)

// Token is a classified lexeme. Line and Column are 1-based and point at the
// first character of the lexeme.
type Token struct {
	Kind    Kind
	Lexeme  string
	Line    int
	Column  int
	Literal any
}

func (t Token) String() string {
	return fmt.Sprintf("{%v, %q, %d:%d, %v}", t.Kind, t.Lexeme, t.Line, t.Column, t.Literal)
}
