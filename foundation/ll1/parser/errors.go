// File: errors.go
// Title: Parse Errors
// Description: Rejection reasons of the parser engine. Every rejection is a
//              *ParseError carrying its kind plus the configuration the
//              engine was in, and maps onto a foundation error code.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-14
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-14 v0.1.0: Initial implementation

package parser

import (
	"fmt"

	llerror "github.com/msto63/llrec/foundation/core/error"
)

// EndOfInput is reported as the actual token when the input is exhausted
const EndOfInput = "<EOF>"

// ErrorKind classifies a rejection
type ErrorKind int

const (
	// KindSyntax is a terminal mismatch or a missing table entry
	KindSyntax ErrorKind = iota

	// KindUnterminatedInput means the end marker was reached on the stack
	// while the input holds something other than the end marker
	KindUnterminatedInput

	// KindStackUnderflow means the stack emptied while running
	KindStackUnderflow

	// KindTokenize means a production body could not be split
	KindTokenize

	// KindInvalidSymbol means a production names an unknown symbol
	KindInvalidSymbol

	// KindCapacityExceeded means the stack or input bound was hit
	KindCapacityExceeded
)

// String returns the string representation of the kind
func (k ErrorKind) String() string {
	switch k {
	case KindSyntax:
		return "syntax"
	case KindUnterminatedInput:
		return "unterminated_input"
	case KindStackUnderflow:
		return "stack_underflow"
	case KindTokenize:
		return "tokenize"
	case KindInvalidSymbol:
		return "invalid_symbol"
	case KindCapacityExceeded:
		return "capacity_exceeded"
	default:
		return "unknown"
	}
}

// Code maps the kind onto a foundation error code
func (k ErrorKind) Code() llerror.Code {
	switch k {
	case KindSyntax:
		return llerror.CodeSyntax
	case KindUnterminatedInput:
		return llerror.CodeUnterminatedInput
	case KindStackUnderflow:
		return llerror.CodeStackUnderflow
	case KindTokenize:
		return llerror.CodeTokenize
	case KindInvalidSymbol:
		return llerror.CodeInvalidSymbol
	case KindCapacityExceeded:
		return llerror.CodeCapacityExceeded
	default:
		return llerror.CodeUnknown
	}
}

// ParseError describes why a parse was rejected. Which fields are set
// depends on Kind.
type ParseError struct {
	Kind ErrorKind `json:"kind"`

	// Terminal mismatch (KindSyntax, KindUnterminatedInput)
	Expected string `json:"expected,omitempty"`
	Actual   string `json:"actual,omitempty"`

	// Missing table entry (KindSyntax), or the expanded nonterminal
	NonTerminal string `json:"nonterminal,omitempty"`
	Lookahead   string `json:"lookahead,omitempty"`

	Production string `json:"production,omitempty"`
	Symbol     string `json:"symbol,omitempty"`

	// Resource and Limit are set for KindCapacityExceeded
	Resource string `json:"resource,omitempty"`
	Limit    int    `json:"limit,omitempty"`

	Step     int   `json:"step"`
	Position int   `json:"position"`
	Cause    error `json:"-"`
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case KindSyntax:
		if e.NonTerminal != "" {
			return fmt.Sprintf("syntax error at token %d: no production for %s on %q", e.Position, e.NonTerminal, e.Lookahead)
		}
		return fmt.Sprintf("syntax error at token %d: expected %q, got %q", e.Position, e.Expected, e.Actual)
	case KindUnterminatedInput:
		return fmt.Sprintf("input not terminated at token %d: expected %q, got %q", e.Position, e.Expected, e.Actual)
	case KindStackUnderflow:
		return fmt.Sprintf("parse stack empty at step %d", e.Step)
	case KindTokenize:
		return fmt.Sprintf("cannot tokenize production %q of %s: %v", e.Production, e.NonTerminal, e.Cause)
	case KindInvalidSymbol:
		return fmt.Sprintf("production %q of %s references unknown symbol %q", e.Production, e.NonTerminal, e.Symbol)
	case KindCapacityExceeded:
		return fmt.Sprintf("%s capacity of %d exceeded at step %d", e.Resource, e.Limit, e.Step)
	default:
		return "parse rejected"
	}
}

// Unwrap returns the underlying cause, if any
func (e *ParseError) Unwrap() error { return e.Cause }

// Code returns the foundation error code of the rejection
func (e *ParseError) Code() llerror.Code { return e.Kind.Code() }

// Structured converts the rejection into a foundation error for logging
// and transport.
func (e *ParseError) Structured() *llerror.Error {
	err := llerror.New(e.Error()).
		WithCode(e.Code()).
		WithOperation("parser.Parse").
		WithDetail("kind", e.Kind.String()).
		WithDetail("step", e.Step).
		WithDetail("position", e.Position)

	if e.Limit > 0 {
		err = err.WithDetail("limit", e.Limit)
	}
	if e.Cause != nil {
		err = err.WithDetail("cause", e.Cause.Error())
	}
	for k, v := range map[string]string{
		"expected":    e.Expected,
		"actual":      e.Actual,
		"nonterminal": e.NonTerminal,
		"lookahead":   e.Lookahead,
		"production":  e.Production,
		"symbol":      e.Symbol,
		"resource":    e.Resource,
	} {
		if v != "" {
			err = err.WithDetail(k, v)
		}
	}
	return err
}
