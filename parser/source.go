package parser

import "github.com/takoeight0821/lox/token"

// tokenSlice is a Source over already materialized tokens.
type tokenSlice struct {
	tokens  []token.Token
	current int
}

// FromTokens returns a Source reading tokens in order. If the slice has no
// EOF token, one is synthesized after the last element.
func FromTokens(tokens []token.Token) Source {
	return &tokenSlice{tokens: tokens}
}

func (s *tokenSlice) Next() (token.Token, error) {
	if s.current >= len(s.tokens) {
		eof := token.Token{Kind: token.EOF, Line: 1, Column: 1}
		if len(s.tokens) > 0 {
			last := s.tokens[len(s.tokens)-1]
			eof.Line = last.Line
			eof.Column = last.Column + len([]rune(last.Lexeme))
		}

		return eof, nil
	}

	tok := s.tokens[s.current]
	s.current++

	return tok, nil
}
