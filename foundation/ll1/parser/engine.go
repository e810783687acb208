// File: engine.go
// Title: LL(1) Parser Engine
// Description: Table-driven predictive parser with an explicit stack. The
//              engine itself is stateless and safe for concurrent use; each
//              parse runs on its own Run holding stack and input cursor.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-14
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-14 v0.1.0: Initial implementation

package parser

import (
	llerror "github.com/msto63/llrec/foundation/core/error"
	lllog "github.com/msto63/llrec/foundation/core/log"
	"github.com/msto63/llrec/foundation/ll1/grammar"
)

const (
	DefaultMaxStack            = 500
	DefaultMaxProductionTokens = 50
	DefaultMaxInputTokens      = 300
)

// Table is the read-only view of a predictive table the engine needs
type Table interface {
	Grammar() *grammar.Grammar
	Lookup(nonTerminal, terminal string) (grammar.Production, bool)
}

// Options configures an Engine. Zero limits select the defaults, negative
// limits disable the bound.
type Options struct {
	MaxStack            int
	MaxProductionTokens int
	MaxInputTokens      int
	Logger              *lllog.Logger
}

// State is the lifecycle state of a parse
type State int

const (
	StateRunning State = iota
	StateAccepted
	StateRejected
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateAccepted:
		return "accepted"
	case StateRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Result is the outcome of a parse
type Result struct {
	State    State        `json:"state"`
	Err      *ParseError  `json:"error,omitempty"`
	Steps    int          `json:"steps"`
	Consumed int          `json:"consumed"`
	Trace    []TraceEvent `json:"trace,omitempty"`
}

// Accepted reports whether the input was recognized
func (r *Result) Accepted() bool { return r.State == StateAccepted }

// Engine drives parses against one shared table
type Engine struct {
	table   Table
	grammar *grammar.Grammar
	opts    Options
	logger  *lllog.Logger
}

func normalizeLimit(v, def int) int {
	switch {
	case v == 0:
		return def
	case v < 0:
		return 0
	default:
		return v
	}
}

// New creates an engine for table
func New(table Table, opts Options) (*Engine, error) {
	if table == nil || table.Grammar() == nil {
		return nil, llerror.New("table is required").
			WithCode(llerror.CodeInvalidInput).
			WithOperation("parser.New")
	}

	opts.MaxStack = normalizeLimit(opts.MaxStack, DefaultMaxStack)
	opts.MaxProductionTokens = normalizeLimit(opts.MaxProductionTokens, DefaultMaxProductionTokens)
	opts.MaxInputTokens = normalizeLimit(opts.MaxInputTokens, DefaultMaxInputTokens)
	if opts.MaxStack == 1 {
		return nil, llerror.New("stack capacity must hold the end marker and start symbol").
			WithCode(llerror.CodeInvalidInput).
			WithOperation("parser.New").
			WithDetail("max_stack", opts.MaxStack)
	}

	logger := opts.Logger
	if logger == nil {
		logger = lllog.GetDefault()
	}

	e := &Engine{
		table:   table,
		grammar: table.Grammar(),
		opts:    opts,
		logger:  logger.WithField("component", "parser"),
	}

	e.logger.Debug("Parser engine created", lllog.Fields{
		"max_stack":             opts.MaxStack,
		"max_production_tokens": opts.MaxProductionTokens,
		"max_input_tokens":      opts.MaxInputTokens,
	})

	return e, nil
}

// Options returns the effective options
func (e *Engine) Options() Options { return e.opts }

// Table returns the table the engine parses with
func (e *Engine) Table() Table { return e.table }

// Parse recognizes tokens without recording a trace
func (e *Engine) Parse(tokens []string) *Result {
	run := e.begin(tokens, nil, false)
	for run.Step() {
	}
	return run.Result()
}

// ParseTraced recognizes tokens, records the trace in the result and
// forwards every event to tracer if it is not nil
func (e *Engine) ParseTraced(tokens []string, tracer Tracer) *Result {
	run := e.begin(tokens, tracer, true)
	for run.Step() {
	}
	return run.Result()
}

// Begin starts a parse that the caller advances with Step
func (e *Engine) Begin(tokens []string, tracer Tracer) *Run {
	return e.begin(tokens, tracer, true)
}

func (e *Engine) begin(tokens []string, tracer Tracer, record bool) *Run {
	r := &Run{
		engine: e,
		tokens: append([]string(nil), tokens...),
		stack:  NewStack(e.opts.MaxStack),
		tracer: tracer,
		record: record,
		state:  StateRunning,
	}

	if e.opts.MaxInputTokens > 0 && len(r.tokens) > e.opts.MaxInputTokens {
		r.reject(&ParseError{Kind: KindCapacityExceeded, Resource: "input", Limit: e.opts.MaxInputTokens})
		return r
	}

	end, _ := e.grammar.Classify(e.grammar.EndMarker())
	start, _ := e.grammar.Classify(e.grammar.Start())
	if err := r.stack.Push(end, start); err != nil {
		r.reject(&ParseError{Kind: KindCapacityExceeded, Resource: "stack", Limit: e.opts.MaxStack, Cause: err})
	}
	return r
}

// Run is the state of a single parse. It is not safe for concurrent use.
type Run struct {
	engine *Engine
	tokens []string
	stack  *Stack
	cursor int
	steps  int
	state  State
	err    *ParseError
	tracer Tracer
	record bool
	trace  []TraceEvent
}

// State returns the current state
func (r *Run) State() State { return r.state }

// Stack returns the current stack from top to bottom
func (r *Run) Stack() []string { return r.stack.Snapshot() }

// Remaining returns the unconsumed input
func (r *Run) Remaining() []string { return r.tokens[r.cursor:] }

// Result returns the outcome so far
func (r *Run) Result() *Result {
	return &Result{
		State:    r.state,
		Err:      r.err,
		Steps:    r.steps,
		Consumed: r.cursor,
		Trace:    r.trace,
	}
}

func (r *Run) lookahead() (string, bool) {
	if r.cursor < len(r.tokens) {
		return r.tokens[r.cursor], true
	}
	return EndOfInput, false
}

// Step executes one engine step and reports whether the parse is still
// running afterwards.
func (r *Run) Step() bool {
	if r.state != StateRunning {
		return false
	}
	r.steps++

	g := r.engine.grammar
	top, ok := r.stack.Peek()
	if !ok {
		r.reject(&ParseError{Kind: KindStackUnderflow})
		return false
	}

	la, hasLA := r.lookahead()

	switch {
	case top.Name == g.EndMarker():
		if hasLA && la == top.Name {
			r.stack.Pop()
			r.cursor++
			r.state = StateAccepted
			r.emit(TraceEvent{Kind: EventAccept, Symbol: top.Name, Token: la})
			return false
		}
		r.reject(&ParseError{Kind: KindUnterminatedInput, Expected: top.Name, Actual: la})

	case top.IsTerminal():
		if hasLA && la == top.Name {
			r.stack.Pop()
			r.cursor++
			r.emit(TraceEvent{Kind: EventMatch, Symbol: top.Name, Token: la})
			return true
		}
		r.reject(&ParseError{Kind: KindSyntax, Expected: top.Name, Actual: la})

	default:
		r.expand(top, la, hasLA)
	}

	return r.state == StateRunning
}

func (r *Run) expand(top grammar.Symbol, la string, hasLA bool) {
	if !hasLA {
		r.reject(&ParseError{Kind: KindSyntax, NonTerminal: top.Name, Lookahead: la})
		return
	}

	p, ok := r.engine.table.Lookup(top.Name, la)
	if !ok {
		r.reject(&ParseError{Kind: KindSyntax, NonTerminal: top.Name, Lookahead: la})
		return
	}

	r.stack.Pop()

	names, err := grammar.TokenizeProduction(p.Body, r.engine.opts.MaxProductionTokens)
	if err != nil {
		r.reject(&ParseError{Kind: KindTokenize, NonTerminal: top.Name, Lookahead: la, Production: p.Body, Cause: err})
		return
	}

	symbols := make([]grammar.Symbol, 0, len(names))
	for _, name := range names {
		sym, ok := r.engine.grammar.Classify(name)
		if !ok {
			r.reject(&ParseError{Kind: KindInvalidSymbol, NonTerminal: top.Name, Lookahead: la, Production: p.Body, Symbol: name})
			return
		}
		symbols = append(symbols, sym)
	}

	if err := r.stack.PushReversed(symbols); err != nil {
		r.reject(&ParseError{
			Kind:        KindCapacityExceeded,
			Resource:    "stack",
			Limit:       r.stack.Limit(),
			NonTerminal: top.Name,
			Production:  p.Body,
			Cause:       err,
		})
		return
	}

	r.emit(TraceEvent{
		Kind:       EventExpand,
		Symbol:     top.Name,
		Production: p.Body,
		Epsilon:    p.IsEpsilon(),
		Token:      la,
	})
}

func (r *Run) reject(err *ParseError) {
	err.Step = r.steps
	err.Position = r.cursor
	r.err = err
	r.state = StateRejected
	r.emit(TraceEvent{Kind: EventReject, Error: err.Error(), Token: err.Actual})
}

func (r *Run) emit(ev TraceEvent) {
	if r.tracer == nil && !r.record {
		return
	}
	ev.Step = r.steps
	ev.Stack = r.stack.Snapshot()
	ev.Remaining = r.tokens[r.cursor:]
	if r.record {
		r.trace = append(r.trace, ev)
	}
	if r.tracer != nil {
		r.tracer.OnEvent(ev)
	}
}
