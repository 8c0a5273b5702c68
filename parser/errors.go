package parser

import (
	"fmt"

	"github.com/takoeight0821/lox/token"
	"github.com/takoeight0821/lox/utils"
)

// UnexpectedTokenError reports a token that no grammar rule accepts at its position.
type UnexpectedTokenError struct {
	Found token.Token
}

func (e *UnexpectedTokenError) Error() string {
	if e.Found.Kind == token.EOF {
		return "unexpected end of input"
	}

	return fmt.Sprintf("unexpected token: %v", e.Found.Kind)
}

// ExpectedTokenError reports a missing token of a required kind.
type ExpectedTokenError struct {
	Expected token.Kind
	Found    token.Token
}

func (e *ExpectedTokenError) Error() string {
	return fmt.Sprintf("expected %v, found %v", e.Expected, e.Found.Kind)
}

func unexpectedToken(t token.Token) error {
	return utils.PosError{Where: t, Err: &UnexpectedTokenError{Found: t}}
}

func expectedToken(t token.Token, expected token.Kind) error {
	return utils.PosError{Where: t, Err: &ExpectedTokenError{Expected: expected, Found: t}}
}
