// File: symbol.go
// Title: Grammar Symbols
// Description: Symbol and Production value types shared by the grammar
//              table, the production tokenizer and the parser engine.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-13
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-13 v0.1.0: Initial implementation

package grammar

import "strings"

// Kind distinguishes terminals from nonterminals
type Kind int

const (
	// KindTerminal is a symbol matched against input tokens
	KindTerminal Kind = iota

	// KindNonTerminal is a symbol expanded through the table
	KindNonTerminal
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindTerminal:
		return "terminal"
	case KindNonTerminal:
		return "nonterminal"
	default:
		return "unknown"
	}
}

// Symbol is a grammar symbol. Two symbols are equal iff their names are.
type Symbol struct {
	Name string `json:"name" yaml:"name" toml:"name"`
	Kind Kind   `json:"-" yaml:"-" toml:"-"`
}

// IsTerminal reports whether the symbol is a terminal
func (s Symbol) IsTerminal() bool { return s.Kind == KindTerminal }

func (s Symbol) String() string { return s.Name }

// Production is one right-hand side of a nonterminal. An empty body is
// the epsilon production.
type Production struct {
	Head string `json:"head" yaml:"head" toml:"head"`
	Body string `json:"body" yaml:"body" toml:"body"`
}

// IsEpsilon reports whether the body derives the empty string directly
func (p Production) IsEpsilon() bool {
	return strings.TrimSpace(p.Body) == ""
}

// String renders the production as "HEAD -> body" with ε for empty bodies
func (p Production) String() string {
	if p.IsEpsilon() {
		return p.Head + " -> ε"
	}
	return p.Head + " -> " + p.Body
}
