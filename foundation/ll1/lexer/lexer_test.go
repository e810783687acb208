// File: lexer_test.go
// Title: Source Lexer Tests
// Description: Table-driven tests for terminal mapping, composite operators,
//              pass-through characters, positions and token limits.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-13
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-13 v0.1.0: Initial test suite

package lexer

import (
	"errors"
	"reflect"
	"testing"

	llerror "github.com/msto63/llrec/foundation/core/error"
)

func TestLex(t *testing.T) {
	tests := []struct {
		name  string
		opts  Options
		input string
		want  string
	}{
		{
			name:  "declarations and arithmetic",
			input: "int x ;\nx := 1 + 2 * 3 ;\nprint x ;$",
			want:  "int id ; id := num + num * num ; print id ; $",
		},
		{
			name:  "if statement",
			input: "if ( x < 1 ) { print x ; }$",
			want:  "if ( id < num ) { print id ; } $",
		},
		{
			name:  "no spaces needed",
			input: "x:=y<=3;",
			want:  "id := id <= num ;",
		},
		{
			name:  "relational composites",
			input: "a >= b <> c < d > e",
			want:  "id >= id <> id < id > id",
		},
		{
			name:  "equality harmonized",
			input: "a == b",
			want:  "id == id",
		},
		{
			name:  "legacy equality",
			opts:  Options{LegacyEquality: true},
			input: "a == b",
			want:  "id = = id",
		},
		{
			name:  "keywords are case sensitive",
			input: "def Def print PRINT return else",
			want:  "def id print id return else",
		},
		{
			name:  "identifiers with digits",
			input: "x1 total2a",
			want:  "id id",
		},
		{
			name:  "number followed by identifier",
			input: "12abc",
			want:  "num id",
		},
		{
			name:  "underscore is punctuation",
			input: "_x",
			want:  "_ id",
		},
		{
			name:  "unknown characters pass through",
			input: "x @ é",
			want:  "id @ é",
		},
		{
			name:  "all whitespace kinds",
			input: " \t\v\f\r\n",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(tt.opts).Lex(tt.input)
			if err != nil {
				t.Fatalf("Lex() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Lex(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTokenizeDetails(t *testing.T) {
	tokens, err := New(Options{}).Tokenize("int x;\n  y := 42 $")
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}

	want := []Token{
		{Type: TokenKeyword, Value: "int", Text: "int", Position: 0, Line: 1, Column: 1},
		{Type: TokenIdentifier, Value: "id", Text: "x", Position: 4, Line: 1, Column: 5},
		{Type: TokenDelimiter, Value: ";", Text: ";", Position: 5, Line: 1, Column: 6},
		{Type: TokenIdentifier, Value: "id", Text: "y", Position: 9, Line: 2, Column: 3},
		{Type: TokenOperator, Value: ":=", Text: ":=", Position: 11, Line: 2, Column: 5},
		{Type: TokenNumber, Value: "num", Text: "42", Position: 14, Line: 2, Column: 8},
		{Type: TokenEndMarker, Value: "$", Text: "$", Position: 17, Line: 2, Column: 11},
	}

	if !reflect.DeepEqual(tokens, want) {
		t.Errorf("Tokenize() =\n%v\nwant\n%v", tokens, want)
	}
}

func TestTerminals(t *testing.T) {
	got, err := New(Options{}).Terminals("return ;$")
	if err != nil {
		t.Fatalf("Terminals() error = %v", err)
	}
	if want := []string{"return", ";", "$"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Terminals() = %q, want %q", got, want)
	}

	empty, err := New(Options{}).Terminals("")
	if err != nil || len(empty) != 0 {
		t.Errorf("Terminals(\"\") = %q, %v", empty, err)
	}
}

func TestMaxTokens(t *testing.T) {
	lx := New(Options{MaxTokens: 3})

	if _, err := lx.Tokenize("a b c"); err != nil {
		t.Fatalf("three tokens should fit, got %v", err)
	}

	tokens, err := lx.Tokenize("a b c d")
	if err == nil {
		t.Fatal("expected capacity error")
	}
	if !errors.Is(err, ErrTooManyTokens) {
		t.Errorf("error should wrap ErrTooManyTokens: %v", err)
	}
	if !llerror.HasCode(err, llerror.CodeCapacityExceeded) {
		t.Errorf("code = %v", llerror.GetCode(err))
	}
	if len(tokens) != 3 {
		t.Errorf("partial tokens = %d, want 3", len(tokens))
	}
}

func TestTokenString(t *testing.T) {
	if s := (Token{Type: TokenIdentifier, Value: "id", Text: "x"}).String(); s != "IDENTIFIER(id=x)" {
		t.Errorf("String() = %q", s)
	}
	if s := (Token{Type: TokenDelimiter, Value: ";", Text: ";"}).String(); s != "DELIMITER(;)" {
		t.Errorf("String() = %q", s)
	}
}
