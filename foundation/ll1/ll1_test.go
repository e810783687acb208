// File: ll1_test.go
// Title: LL(1) Recognizer Tests
// Description: End-to-end tests from source text to verdict, including
//              logging of rejections and run IDs.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-15
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-15 v0.1.0: Initial test suite

package ll1

import (
	"bytes"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"

	llerror "github.com/msto63/llrec/foundation/core/error"
	lllog "github.com/msto63/llrec/foundation/core/log"
	"github.com/msto63/llrec/foundation/ll1/grammar"
	"github.com/msto63/llrec/foundation/ll1/lexer"
	"github.com/msto63/llrec/foundation/ll1/parser"
)

func newQuiet(t *testing.T, opts Options) *Recognizer {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = lllog.Discard()
	}
	r, err := New(opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return r
}

func TestRecognize(t *testing.T) {
	r := newQuiet(t, Options{})

	tests := []struct {
		name     string
		src      string
		lexed    string
		accepted bool
	}{
		{
			name:     "declarations and arithmetic",
			src:      "int x ;\nx := 1 + 2 * 3 ;\nprint x ;$",
			lexed:    "int id ; id := num + num * num ; print id ; $",
			accepted: true,
		},
		{
			name:     "if statement",
			src:      "if ( x < 1 ) { print x ; }$",
			lexed:    "if ( id < num ) { print id ; } $",
			accepted: true,
		},
		{
			name:     "missing closing brace",
			src:      "if ( x < 1 ) { print x ; $",
			lexed:    "if ( id < num ) { print id ; $",
			accepted: false,
		},
		{
			name:     "equality comparison",
			src:      "if ( a == b ) print a ; $",
			lexed:    "if ( id == id ) print id ; $",
			accepted: true,
		},
		{
			name:     "unknown character",
			src:      "print x @ ; $",
			lexed:    "print id @ ; $",
			accepted: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := r.Recognize(tt.src)
			if err != nil {
				t.Fatalf("Recognize() error = %v", err)
			}
			if got := out.Lexed(); got != tt.lexed {
				t.Errorf("Lexed() = %q, want %q", got, tt.lexed)
			}
			if out.Accepted() != tt.accepted {
				t.Errorf("Accepted() = %v, want %v (err: %v)", out.Accepted(), tt.accepted, out.Result.Err)
			}
			if _, err := uuid.Parse(out.RunID); err != nil {
				t.Errorf("RunID %q is not a UUID", out.RunID)
			}
			if out.Source != tt.src {
				t.Errorf("Source = %q", out.Source)
			}
		})
	}
}

func TestMissingBraceNamesExpectedToken(t *testing.T) {
	r := newQuiet(t, Options{})
	out, err := r.Recognize("if ( x < 1 ) {\n  print x ;\n$")
	if err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}

	perr := out.Result.Err
	if perr == nil || perr.Kind != parser.KindSyntax || perr.Expected != "}" {
		t.Fatalf("Err = %v, want syntax error expecting }", perr)
	}

	tok, ok := out.ErrorToken()
	if !ok {
		t.Fatal("ErrorToken() should locate the end marker")
	}
	if tok.Value != "$" || tok.Line != 3 || tok.Column != 1 {
		t.Errorf("ErrorToken() = %+v", tok)
	}
}

func TestErrorTokenAtEndOfInput(t *testing.T) {
	r := newQuiet(t, Options{})
	out, err := r.Recognize("print x ;")
	if err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}
	if out.Accepted() {
		t.Fatal("input without end marker must be rejected")
	}
	if _, ok := out.ErrorToken(); ok {
		t.Error("ErrorToken() should report false past the input")
	}
}

func TestRecognizeTraced(t *testing.T) {
	r := newQuiet(t, Options{})

	var rec parser.Recorder
	out, err := r.RecognizeTraced("; $", &rec)
	if err != nil {
		t.Fatalf("RecognizeTraced() error = %v", err)
	}
	if len(out.Result.Trace) == 0 || len(out.Result.Trace) != len(rec.Events) {
		t.Errorf("trace = %d events, recorder = %d", len(out.Result.Trace), len(rec.Events))
	}

	plain, _ := r.Recognize("; $")
	if plain.Result.Trace != nil {
		t.Error("Recognize() should not record a trace")
	}
}

func TestLegacyOptions(t *testing.T) {
	r := newQuiet(t, Options{
		Table: grammar.Legacy(),
		Lexer: lexer.Options{LegacyEquality: true},
	})

	out, err := r.Recognize("if ( a == b ) ; $")
	if err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}
	if out.Lexed() != "if ( id = = id ) ; $" {
		t.Errorf("Lexed() = %q", out.Lexed())
	}
	if out.Accepted() {
		t.Error("split equality must not be accepted")
	}
	if r.Table().Variant() != grammar.VariantLegacy {
		t.Errorf("Variant() = %v", r.Table().Variant())
	}
}

func TestLexerCapacityIsAnError(t *testing.T) {
	r := newQuiet(t, Options{Lexer: lexer.Options{MaxTokens: 2}})

	out, err := r.Recognize("print x ; $")
	if err == nil {
		t.Fatal("expected capacity error")
	}
	if out != nil {
		t.Error("outcome should be nil on lex failure")
	}
	if !llerror.HasCode(err, llerror.CodeCapacityExceeded) {
		t.Errorf("code = %v", llerror.GetCode(err))
	}
}

func TestRejectionIsLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := lllog.NewWithConfig(lllog.Config{
		Level:  lllog.LevelDebug,
		Format: lllog.FormatJSON,
		Output: &buf,
	})
	r := newQuiet(t, Options{Logger: logger})

	out, err := r.Recognize("if ( x < 1 ) { print x ; $")
	if err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}

	var warned map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry map[string]interface{}
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("invalid log line %q: %v", line, err)
		}
		if entry["level"] == "warn" {
			warned = entry
		}
	}

	if warned == nil {
		t.Fatalf("no warning logged:\n%s", buf.String())
	}
	if warned["correlation_id"] != out.RunID {
		t.Errorf("correlation_id = %v, want %v", warned["correlation_id"], out.RunID)
	}
	if warned["component"] != "recognizer" || warned["kind"] != "syntax" {
		t.Errorf("entry = %v", warned)
	}
}

func TestConcurrentRecognize(t *testing.T) {
	r := newQuiet(t, Options{})
	srcs := map[string]bool{
		"int x ;\nx := 1 + 2 * 3 ;\nprint x ;$": true,
		"if ( x < 1 ) { print x ; }$":          true,
		"if ( x < 1 ) { print x ; $":           false,
	}

	var wg sync.WaitGroup
	for src, want := range srcs {
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func(src string, want bool) {
				defer wg.Done()
				out, err := r.Recognize(src)
				if err != nil || out.Accepted() != want {
					t.Errorf("Recognize(%q) = %v, %v", src, out.Accepted(), err)
				}
			}(src, want)
		}
	}
	wg.Wait()
}
