package lexer

import "fmt"

type UnterminatedStringError struct {
	Line   int
	Column int
}

func (e *UnterminatedStringError) Error() string {
	return fmt.Sprintf("at %d:%d: unterminated string", e.Line, e.Column)
}

type UnrecognizedCharacterError struct {
	Char   rune
	Line   int
	Column int
}

func (e *UnrecognizedCharacterError) Error() string {
	return fmt.Sprintf("at %d:%d: unrecognized character %q", e.Line, e.Column, e.Char)
}
