// File: stack.go
// Title: Parse Stack
// Description: Growable LIFO of grammar symbols with an explicit capacity.
//              Pushing past the capacity fails instead of growing further.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-14
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-14 v0.1.0: Initial implementation

package parser

import (
	"errors"

	"github.com/msto63/llrec/foundation/ll1/grammar"
)

// ErrStackFull is returned by Push when the capacity would be exceeded
var ErrStackFull = errors.New("parse stack full")

// Stack is a bounded LIFO of symbols. The zero value is unbounded.
type Stack struct {
	items []grammar.Symbol
	limit int
}

// NewStack creates a stack holding at most limit symbols, limit <= 0
// means unbounded
func NewStack(limit int) *Stack {
	initial := 16
	if limit > 0 && limit < initial {
		initial = limit
	}
	return &Stack{items: make([]grammar.Symbol, 0, initial), limit: limit}
}

// Push adds symbols so that the last argument ends on top. Either all
// symbols are pushed or none.
func (s *Stack) Push(symbols ...grammar.Symbol) error {
	if s.limit > 0 && len(s.items)+len(symbols) > s.limit {
		return ErrStackFull
	}
	s.items = append(s.items, symbols...)
	return nil
}

// PushReversed pushes symbols so that symbols[0] ends on top
func (s *Stack) PushReversed(symbols []grammar.Symbol) error {
	if s.limit > 0 && len(s.items)+len(symbols) > s.limit {
		return ErrStackFull
	}
	for i := len(symbols) - 1; i >= 0; i-- {
		s.items = append(s.items, symbols[i])
	}
	return nil
}

// Pop removes and returns the top symbol
func (s *Stack) Pop() (grammar.Symbol, bool) {
	if len(s.items) == 0 {
		return grammar.Symbol{}, false
	}
	top := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return top, true
}

// Peek returns the top symbol without removing it
func (s *Stack) Peek() (grammar.Symbol, bool) {
	if len(s.items) == 0 {
		return grammar.Symbol{}, false
	}
	return s.items[len(s.items)-1], true
}

// Len returns the number of symbols on the stack
func (s *Stack) Len() int { return len(s.items) }

// Limit returns the capacity, 0 when unbounded
func (s *Stack) Limit() int { return s.limit }

// Snapshot returns the symbol names from top to bottom
func (s *Stack) Snapshot() []string {
	out := make([]string, len(s.items))
	for i, sym := range s.items {
		out[len(s.items)-1-i] = sym.Name
	}
	return out
}
