// File: lexer.go
// Title: Source Lexer
// Description: Converts program text into the terminal names consumed by the
//              parser. Reserved words are emitted literally, identifiers as
//              "id", digit runs as "num" and punctuation as itself. Position
//              information is kept for error reporting.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-13
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-13 v0.1.0: Initial lexer implementation

package lexer

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	llerror "github.com/msto63/llrec/foundation/core/error"
)

// TokenType represents the lexical class of a token
type TokenType int

const (
	TokenKeyword    TokenType = iota // int, if, else, def, print, return
	TokenIdentifier                  // x, total1
	TokenNumber                      // 42
	TokenOperator                    // := <= >= <> == and single character operators
	TokenDelimiter                   // ( ) { } , ;
	TokenEndMarker                   // $
	TokenOther                       // anything else, passed through unchanged
)

// String returns a string representation of the token type
func (tt TokenType) String() string {
	switch tt {
	case TokenKeyword:
		return "KEYWORD"
	case TokenIdentifier:
		return "IDENTIFIER"
	case TokenNumber:
		return "NUMBER"
	case TokenOperator:
		return "OPERATOR"
	case TokenDelimiter:
		return "DELIMITER"
	case TokenEndMarker:
		return "END"
	case TokenOther:
		return "OTHER"
	default:
		return "UNKNOWN"
	}
}

// Token is a lexeme together with the terminal name it maps to
type Token struct {
	Type     TokenType `json:"type"`
	Value    string    `json:"value"` // terminal name handed to the parser
	Text     string    `json:"text"`  // source text of the lexeme
	Position int       `json:"position"`
	Line     int       `json:"line"`
	Column   int       `json:"column"`
}

func (t Token) String() string {
	if t.Value == t.Text {
		return fmt.Sprintf("%s(%s)", t.Type, t.Value)
	}
	return fmt.Sprintf("%s(%s=%s)", t.Type, t.Value, t.Text)
}

// ErrTooManyTokens is returned when the input exceeds Options.MaxTokens
var ErrTooManyTokens = errors.New("too many tokens")

var keywords = map[string]bool{
	"int":    true,
	"if":     true,
	"else":   true,
	"def":    true,
	"print":  true,
	"return": true,
}

var delimiters = map[string]bool{
	"(": true, ")": true, "{": true, "}": true, ",": true, ";": true,
}

// Options controls lexing
type Options struct {
	// LegacyEquality lexes "==" as two "=" tokens
	LegacyEquality bool

	// MaxTokens bounds the number of tokens, 0 means unbounded
	MaxTokens int
}

// Lexer is safe for concurrent use, it holds no per-input state
type Lexer struct {
	opts Options
}

// New creates a lexer
func New(opts Options) *Lexer {
	return &Lexer{opts: opts}
}

// Tokenize splits src into tokens. The end marker is lexed like any other
// punctuation and is not required.
func (l *Lexer) Tokenize(src string) ([]Token, error) {
	s := newScanner(src)
	var tokens []Token

	for {
		s.skipWhitespace()
		if s.ch == eof {
			return tokens, nil
		}
		if l.opts.MaxTokens > 0 && len(tokens) >= l.opts.MaxTokens {
			return tokens, llerror.Wrap(ErrTooManyTokens, fmt.Sprintf("lex: more than %d tokens", l.opts.MaxTokens)).
				WithCode(llerror.CodeCapacityExceeded).
				WithDetail("limit", l.opts.MaxTokens).
				WithDetail("line", s.line).
				WithDetail("column", s.column)
		}
		tokens = append(tokens, l.next(s))
	}
}

func (l *Lexer) next(s *scanner) Token {
	tok := Token{Position: s.pos, Line: s.line, Column: s.column}

	switch {
	case isLetter(s.ch):
		tok.Text = s.readWhile(func(r rune) bool { return isLetter(r) || isDigit(r) })
		if keywords[tok.Text] {
			tok.Type, tok.Value = TokenKeyword, tok.Text
		} else {
			tok.Type, tok.Value = TokenIdentifier, "id"
		}
		return tok

	case isDigit(s.ch):
		tok.Text = s.readWhile(isDigit)
		tok.Type, tok.Value = TokenNumber, "num"
		return tok

	case isPunct(s.ch):
		if l.isComposite(string(s.ch) + string(s.peek())) {
			s.advance()
		}
		s.advance()

		tok.Text = s.input[tok.Position:s.pos]
		tok.Value = tok.Text
		switch {
		case tok.Text == "$":
			tok.Type = TokenEndMarker
		case delimiters[tok.Text]:
			tok.Type = TokenDelimiter
		default:
			tok.Type = TokenOperator
		}
		return tok

	default:
		s.advance()
		tok.Text = s.input[tok.Position:s.pos]
		tok.Value = tok.Text
		tok.Type = TokenOther
		return tok
	}
}

func (l *Lexer) isComposite(pair string) bool {
	switch pair {
	case ":=", "<=", ">=", "<>":
		return true
	case "==":
		return !l.opts.LegacyEquality
	default:
		return false
	}
}

// Terminals returns the terminal names of src in order
func (l *Lexer) Terminals(src string) ([]string, error) {
	tokens, err := l.Tokenize(src)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Value
	}
	return out, nil
}

// Lex returns the terminal names of src joined by single spaces
func (l *Lexer) Lex(src string) (string, error) {
	terms, err := l.Terminals(src)
	if err != nil {
		return "", err
	}
	return strings.Join(terms, " "), nil
}

const eof rune = -1

type scanner struct {
	input  string
	pos    int // byte offset of ch
	next   int // byte offset after ch
	ch     rune
	line   int
	column int
}

func newScanner(input string) *scanner {
	s := &scanner{input: input, line: 1}
	s.advance()
	return s
}

func (s *scanner) advance() {
	if s.ch == '\n' {
		s.line++
		s.column = 0
	}
	s.pos = s.next
	if s.next >= len(s.input) {
		s.ch = eof
		return
	}
	r, w := utf8.DecodeRuneInString(s.input[s.next:])
	s.ch = r
	s.next += w
	s.column++
}

func (s *scanner) peek() rune {
	if s.next >= len(s.input) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(s.input[s.next:])
	return r
}

func (s *scanner) readWhile(ok func(rune) bool) string {
	start := s.pos
	for s.ch != eof && ok(s.ch) {
		s.advance()
	}
	return s.input[start:s.pos]
}

func (s *scanner) skipWhitespace() {
	for isSpace(s.ch) {
		s.advance()
	}
}

func isLetter(r rune) bool { return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' }

func isDigit(r rune) bool { return '0' <= r && r <= '9' }

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// isPunct matches the printable ASCII characters that are neither letters,
// digits nor space.
func isPunct(r rune) bool {
	return r > ' ' && r < 0x7f && !isLetter(r) && !isDigit(r)
}
