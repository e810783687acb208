// File: source.go
// Title: Program Source Loader
// Description: Reads a program file into a single input line. Non-empty
//              lines are joined with one space, trailing whitespace is
//              trimmed and the result must end with the end marker.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-14
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-14 v0.1.0: Initial implementation

package source

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
	"unicode"

	llerror "github.com/msto63/llrec/foundation/core/error"
)

// DefaultMaxBytes bounds the joined input including separators
const DefaultMaxBytes = 8192

// EndMarker must be the last non-space character of every program
const EndMarker = "$"

var (
	// ErrMissingEndMarker is returned when the input does not end with "$"
	ErrMissingEndMarker = errors.New("input must end with '$'")

	// ErrTooLarge is returned when the joined input exceeds MaxBytes
	ErrTooLarge = errors.New("input too large")
)

// Options configures Load. MaxBytes <= 0 selects DefaultMaxBytes.
type Options struct {
	MaxBytes int
}

// Load reads r line by line and returns the joined program text
func Load(r io.Reader, opts Options) (string, error) {
	maxBytes := opts.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	var b strings.Builder
	br := bufio.NewReader(r)
	for {
		line, readErr := br.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return "", llerror.Wrap(readErr, "failed to read source").
				WithCode(llerror.CodeInvalidInput).
				WithOperation("source.Load")
		}

		if i := strings.IndexAny(line, "\r\n"); i >= 0 {
			line = line[:i]
		}

		if line != "" {
			if b.Len()+len(line)+1 >= maxBytes {
				return "", llerror.Wrap(ErrTooLarge, "source exceeds size limit").
					WithCode(llerror.CodeCapacityExceeded).
					WithOperation("source.Load").
					WithDetail("limit", maxBytes)
			}
			b.WriteString(line)
			b.WriteByte(' ')
		}

		if readErr == io.EOF {
			break
		}
	}

	input := strings.TrimRightFunc(b.String(), unicode.IsSpace)
	if !strings.HasSuffix(input, EndMarker) {
		last := input
		if len(last) > 40 {
			last = "..." + last[len(last)-40:]
		}
		return "", llerror.Wrap(ErrMissingEndMarker, "input must end with '$'").
			WithCode(llerror.CodeMissingEndMarker).
			WithOperation("source.Load").
			WithDetail("tail", last)
	}

	return input, nil
}

// LoadFile opens path and loads it with opts
func LoadFile(path string, opts Options) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		code := llerror.CodeInvalidInput
		if os.IsNotExist(err) {
			code = llerror.CodeNotFound
		}
		return "", llerror.Wrap(err, "failed to open source file").
			WithCode(code).
			WithOperation("source.LoadFile").
			WithDetail("path", path)
	}
	defer f.Close()

	return Load(f, opts)
}
