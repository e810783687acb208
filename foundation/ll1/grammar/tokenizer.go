// File: tokenizer.go
// Title: Production Tokenizer
// Description: Splits a production body into grammar symbol names. Used when
//              validating grammars and by the parser on every expansion.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-13
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-13 v0.1.0: Initial implementation

package grammar

import (
	"errors"
	"fmt"
	"unicode"

	llerror "github.com/msto63/llrec/foundation/core/error"
)

// ErrTooManyTokens is returned when a body holds more symbols than allowed
var ErrTooManyTokens = errors.New("production holds too many symbols")

// composites are the two-character operators recognized greedily
var composites = map[string]bool{
	":=": true,
	"<=": true,
	">=": true,
	"==": true,
	"<>": true,
}

func isWordRune(r rune) bool {
	return r == '_' || (r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)))
}

// TokenizeProduction splits body into symbol names. Whitespace separates
// symbols, runs of letters, digits and underscores form one symbol, the
// operators := <= >= == <> are single symbols and any other character
// stands alone. max <= 0 disables the limit. An empty body yields an
// empty, non-nil slice.
func TokenizeProduction(body string, max int) ([]string, error) {
	runes := []rune(body)
	symbols := make([]string, 0, 8)

	emit := func(s string) error {
		if max > 0 && len(symbols) >= max {
			return llerror.Wrap(ErrTooManyTokens, fmt.Sprintf("tokenize production %q", body)).
				WithCode(llerror.CodeCapacityExceeded).
				WithDetail("limit", max)
		}
		symbols = append(symbols, s)
		return nil
	}

	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case isWordRune(r):
			j := i
			for j < len(runes) && isWordRune(runes[j]) {
				j++
			}
			if err := emit(string(runes[i:j])); err != nil {
				return nil, err
			}
			i = j
		default:
			width := 1
			if i+1 < len(runes) && composites[string(runes[i:i+2])] {
				width = 2
			}
			if err := emit(string(runes[i : i+width])); err != nil {
				return nil, err
			}
			i += width
		}
	}

	return symbols, nil
}
