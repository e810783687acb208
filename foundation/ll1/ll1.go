// File: ll1.go
// Title: LL(1) Recognizer
// Description: Facade combining lexer and parser engine. A Recognizer is
//              built once and may be used from many goroutines; every call
//              gets its own run ID used as log correlation ID.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-15
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-15 v0.1.0: Initial implementation

package ll1

import (
	"strings"
	"time"

	"github.com/google/uuid"

	lllog "github.com/msto63/llrec/foundation/core/log"
	"github.com/msto63/llrec/foundation/ll1/grammar"
	"github.com/msto63/llrec/foundation/ll1/lexer"
	"github.com/msto63/llrec/foundation/ll1/parser"
)

// Options configures a Recognizer
type Options struct {
	// Table defaults to grammar.Default()
	Table  *grammar.Table
	Lexer  lexer.Options
	Parser parser.Options
	Logger *lllog.Logger
}

// Recognizer lexes and parses programs of the fixed grammar
type Recognizer struct {
	table  *grammar.Table
	lexer  *lexer.Lexer
	engine *parser.Engine
	logger *lllog.Logger
}

// Outcome is the result of one recognizer run
type Outcome struct {
	RunID     string         `json:"run_id"`
	Source    string         `json:"source"`
	Tokens    []lexer.Token  `json:"tokens"`
	Terminals []string       `json:"terminals"`
	Result    *parser.Result `json:"result"`
	Started   time.Time      `json:"started"`
	Duration  time.Duration  `json:"duration_ns"`
}

// Accepted reports whether the program was recognized
func (o *Outcome) Accepted() bool { return o.Result != nil && o.Result.Accepted() }

// Lexed returns the terminal sequence joined by single spaces
func (o *Outcome) Lexed() string { return strings.Join(o.Terminals, " ") }

// ErrorToken returns the source token the parse stopped at. It reports
// false for accepted runs and when the input was exhausted.
func (o *Outcome) ErrorToken() (lexer.Token, bool) {
	if o.Result == nil || o.Result.Err == nil {
		return lexer.Token{}, false
	}
	pos := o.Result.Err.Position
	if pos < 0 || pos >= len(o.Tokens) {
		return lexer.Token{}, false
	}
	return o.Tokens[pos], true
}

// New creates a recognizer
func New(opts Options) (*Recognizer, error) {
	logger := opts.Logger
	if logger == nil {
		logger = lllog.GetDefault()
	}

	table := opts.Table
	if table == nil {
		table = grammar.Default()
	}

	parserOpts := opts.Parser
	parserOpts.Logger = logger
	engine, err := parser.New(table, parserOpts)
	if err != nil {
		return nil, err
	}

	return &Recognizer{
		table:  table,
		lexer:  lexer.New(opts.Lexer),
		engine: engine,
		logger: logger.WithField("component", "recognizer"),
	}, nil
}

// Table returns the parse table in use
func (r *Recognizer) Table() *grammar.Table { return r.table }

// Lexer returns the lexer in use
func (r *Recognizer) Lexer() *lexer.Lexer { return r.lexer }

// Engine returns the parser engine in use
func (r *Recognizer) Engine() *parser.Engine { return r.engine }

// Recognize lexes and parses src. A rejected program is reported in the
// outcome; the error is only set when src could not be lexed.
func (r *Recognizer) Recognize(src string) (*Outcome, error) {
	return r.run(src, nil, false)
}

// RecognizeTraced is Recognize with the derivation trace recorded in the
// result and forwarded to tracer if it is not nil
func (r *Recognizer) RecognizeTraced(src string, tracer parser.Tracer) (*Outcome, error) {
	return r.run(src, tracer, true)
}

func (r *Recognizer) run(src string, tracer parser.Tracer, traced bool) (*Outcome, error) {
	out := &Outcome{
		RunID:   uuid.NewString(),
		Source:  src,
		Started: time.Now(),
	}
	logger := r.logger.WithCorrelationID(out.RunID)
	timer := logger.StartTimer("recognize")

	tokens, err := r.lexer.Tokenize(src)
	if err != nil {
		timer.StopWithError(err)
		return nil, err
	}
	out.Tokens = tokens
	out.Terminals = make([]string, len(tokens))
	for i, tok := range tokens {
		out.Terminals[i] = tok.Value
	}

	if traced {
		out.Result = r.engine.ParseTraced(out.Terminals, tracer)
	} else {
		out.Result = r.engine.Parse(out.Terminals)
	}

	out.Duration = timer.
		WithField("tokens", len(tokens)).
		WithField("steps", out.Result.Steps).
		WithField("state", out.Result.State.String()).
		Stop()

	if perr := out.Result.Err; perr != nil {
		fields := lllog.Fields{
			"kind":     perr.Kind.String(),
			"step":     perr.Step,
			"position": perr.Position,
		}
		if tok, ok := out.ErrorToken(); ok {
			fields["line"] = tok.Line
			fields["column"] = tok.Column
		}
		logger.WarnWithErr("Input rejected", perr, fields)
	}

	return out, nil
}
