package lexer

import (
	"errors"
	"iter"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/takoeight0821/lox/token"
)

// Lex scans the whole source and returns every token it could recognize,
// terminated by EOF. Scan errors do not stop scanning; they are joined and
// returned together with the tokens.
func Lex(source string) ([]token.Token, error) {
	tokens := []token.Token{}

	var err error

	for tok, scanErr := range Tokens(source) {
		if scanErr != nil {
			err = errors.Join(err, scanErr)

			continue
		}
		tokens = append(tokens, tok)
	}

	return tokens, err
}

// Tokens returns the lazy token sequence of source. Each element is either a
// token or a scan error. The last element is the EOF token.
// Every range over the sequence rescans source from the start.
func Tokens(source string) iter.Seq2[token.Token, error] {
	return func(yield func(token.Token, error) bool) {
		s := NewScanner(source)
		for {
			tok, err := s.Next()
			if !yield(tok, err) {
				return
			}
			if err == nil && tok.Kind == token.EOF {
				return
			}
		}
	}
}

// Scanner produces tokens one at a time from its remaining input.
type Scanner struct {
	source string

	start   int // start of current lexeme
	current int // current position in source
	line    int // current line number
	column  int // column of the rune at current

	startLine   int
	startColumn int
}

func NewScanner(source string) *Scanner {
	return &Scanner{
		source:  source,
		start:   0,
		current: 0,
		line:    1,
		column:  1,
	}
}

// Next returns the next token or the scan error for the next unrecognized
// lexeme. Once the input is exhausted it returns EOF on every call.
func (s *Scanner) Next() (token.Token, error) {
	s.skipTrivia()
	s.start = s.current
	s.startLine = s.line
	s.startColumn = s.column

	if s.isAtEnd() {
		return token.Token{Kind: token.EOF, Lexeme: "", Line: s.line, Column: s.column, Literal: nil}, nil
	}

	return s.scanToken()
}

func (s *Scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

func (s *Scanner) peek() rune {
	if s.isAtEnd() {
		return '\x00'
	}
	r, _ := utf8.DecodeRuneInString(s.source[s.current:])

	return r
}

func (s *Scanner) peekNext() rune {
	if s.isAtEnd() {
		return '\x00'
	}
	_, size := utf8.DecodeRuneInString(s.source[s.current:])
	if s.current+size >= len(s.source) {
		return '\x00'
	}
	r, _ := utf8.DecodeRuneInString(s.source[s.current+size:])

	return r
}

func (s *Scanner) advance() rune {
	r, size := utf8.DecodeRuneInString(s.source[s.current:])
	s.current += size
	if r == '\n' {
		s.line++
		s.column = 1
	} else {
		s.column++
	}

	return r
}

func (s *Scanner) match(expected rune) bool {
	if s.peek() != expected || s.isAtEnd() {
		return false
	}
	s.advance()

	return true
}

func (s *Scanner) makeToken(kind token.Kind, literal any) token.Token {
	return token.Token{
		Kind:    kind,
		Lexeme:  s.source[s.start:s.current],
		Line:    s.startLine,
		Column:  s.startColumn,
		Literal: literal,
	}
}

// skipTrivia consumes whitespace, newlines and line comments.
func (s *Scanner) skipTrivia() {
	for !s.isAtEnd() {
		switch s.peek() {
		case ' ', '\r', '\t', '\n':
			s.advance()
		case '/':
			if s.peekNext() != '/' {
				return
			}
			for s.peek() != '\n' && !s.isAtEnd() {
				s.advance()
			}
		default:
			return
		}
	}
}

func (s *Scanner) scanToken() (token.Token, error) {
	c := s.advance()
	if k, ok := singleChars[c]; ok {
		return s.makeToken(k, nil), nil
	}

	switch c {
	case '!':
		return s.either('=', token.BANGEQUAL, token.BANG), nil
	case '=':
		return s.either('=', token.EQUALEQUAL, token.EQUAL), nil
	case '<':
		return s.either('=', token.LESSEQUAL, token.LESS), nil
	case '>':
		return s.either('=', token.GREATEREQUAL, token.GREATER), nil
	case '"':
		return s.string()
	}

	if isDigit(c) {
		return s.number(), nil
	}
	if isAlpha(c) {
		return s.identifier(), nil
	}

	return token.Token{}, &UnrecognizedCharacterError{Char: c, Line: s.startLine, Column: s.startColumn}
}

// either picks the two-character form when the next rune is second.
func (s *Scanner) either(second rune, two, one token.Kind) token.Token {
	if s.match(second) {
		return s.makeToken(two, nil)
	}

	return s.makeToken(one, nil)
}

func (s *Scanner) string() (token.Token, error) {
	for s.peek() != '"' && !s.isAtEnd() {
		s.advance()
	}

	if s.isAtEnd() {
		return token.Token{}, &UnterminatedStringError{Line: s.startLine, Column: s.startColumn}
	}

	// closing quote
	s.advance()

	value := s.source[s.start+1 : s.current-1]

	return s.makeToken(token.STRING, value), nil
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func (s *Scanner) number() token.Token {
	for isDigit(s.peek()) {
		s.advance()
	}

	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance()
		for isDigit(s.peek()) {
			s.advance()
		}
	}

	// The lexeme is always well-formed; out of range literals become +Inf.
	value, _ := strconv.ParseFloat(s.source[s.start:s.current], 64)

	return s.makeToken(token.NUMBER, value)
}

func isAlpha(c rune) bool {
	return unicode.IsLetter(c) || c == '_'
}

func (s *Scanner) identifier() token.Token {
	for isAlpha(s.peek()) || isDigit(s.peek()) {
		s.advance()
	}

	if k, ok := keywords[s.source[s.start:s.current]]; ok {
		return s.makeToken(k, nil)
	}

	return s.makeToken(token.IDENT, nil)
}

// Both tables are read-only after package initialization.
var (
	keywords = map[string]token.Kind{
		"and":    token.AND,
		"class":  token.CLASS,
		"def":    token.DEF,
		"else":   token.ELSE,
		"false":  token.FALSE,
		"for":    token.FOR,
		"fun":    token.FUN,
		"if":     token.IF,
		"nil":    token.NIL,
		"or":     token.OR,
		"print":  token.PRINT,
		"return": token.RETURN,
		"super":  token.SUPER,
		"this":   token.THIS,
		"true":   token.TRUE,
		"var":    token.VAR,
		"while":  token.WHILE,
	}

	singleChars = map[rune]token.Kind{
		'(': token.LEFTPAREN,
		')': token.RIGHTPAREN,
		'{': token.LEFTBRACE,
		'}': token.RIGHTBRACE,
		',': token.COMMA,
		'.': token.DOT,
		'-': token.MINUS,
		'+': token.PLUS,
		';': token.SEMICOLON,
		'*': token.STAR,
		'/': token.SLASH,
	}
)
