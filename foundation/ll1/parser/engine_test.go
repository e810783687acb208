// File: engine_test.go
// Title: Parser Engine Tests
// Description: Acceptance and rejection scenarios, capacity limits, trace
//              consistency and concurrent use of one engine.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-14
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-14 v0.1.0: Initial test suite

package parser

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"

	llerror "github.com/msto63/llrec/foundation/core/error"
	lllog "github.com/msto63/llrec/foundation/core/log"
	"github.com/msto63/llrec/foundation/ll1/grammar"
)

const (
	declarationProgram = "int id ; id := num + num * num ; print id ; $"
	ifProgram          = "if ( id < num ) { print id ; } $"
	unclosedIfProgram  = "if ( id < num ) { print id ; $"
)

func newTestEngine(t *testing.T, table Table, opts Options) *Engine {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = lllog.Discard()
	}
	e, err := New(table, opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return e
}

func TestParseScenarios(t *testing.T) {
	e := newTestEngine(t, grammar.Default(), Options{})

	tests := []struct {
		name     string
		input    string
		accepted bool
		consumed int
	}{
		{"declarations and arithmetic", declarationProgram, true, 15},
		{"if statement", ifProgram, true, 12},
		{"empty program", "$", true, 1},
		{"function list", "def id ( int id ) { return ; } $", true, 11},
		{"if else", "if ( id ) ; else print num ; $", true, 10},
		{"nested blocks", "{ { ; } } $", true, 6},
		{"call expression", "print id ( id , id ) ; $", true, 9},
		{"missing closing brace", unclosedIfProgram, false, 10},
		{"missing semicolon", "print id $", false, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := e.Parse(strings.Fields(tt.input))
			if res.Accepted() != tt.accepted {
				t.Fatalf("Accepted() = %v, want %v (err: %v)", res.Accepted(), tt.accepted, res.Err)
			}
			if res.Consumed != tt.consumed {
				t.Errorf("Consumed = %d, want %d", res.Consumed, tt.consumed)
			}
			if tt.accepted && res.Err != nil {
				t.Errorf("accepted result carries error %v", res.Err)
			}
			if res.Trace != nil {
				t.Errorf("Parse() should not record a trace")
			}
		})
	}
}

func TestMissingClosingBrace(t *testing.T) {
	e := newTestEngine(t, grammar.Default(), Options{})
	res := e.Parse(strings.Fields(unclosedIfProgram))

	if res.State != StateRejected {
		t.Fatalf("State = %v, want rejected", res.State)
	}
	err := res.Err
	if err.Kind != KindSyntax {
		t.Fatalf("Kind = %v, want syntax", err.Kind)
	}
	if err.Expected != "}" || err.Actual != "$" {
		t.Errorf("Expected/Actual = %q/%q, want \"}\"/\"$\"", err.Expected, err.Actual)
	}
	if err.Position != 10 {
		t.Errorf("Position = %d, want 10", err.Position)
	}
	if !strings.Contains(err.Error(), `expected "}"`) {
		t.Errorf("Error() = %q", err.Error())
	}
	structured := err.Structured()
	if !llerror.HasCode(structured, llerror.CodeSyntax) {
		t.Errorf("code = %v", structured.Code())
	}
	if v, ok := structured.Detail("expected"); !ok || v != "}" {
		t.Errorf("expected detail = %v", v)
	}
}

func TestMissingEndMarker(t *testing.T) {
	e := newTestEngine(t, grammar.Default(), Options{})
	res := e.Parse(strings.Fields("int id ;"))

	if res.Accepted() {
		t.Fatal("input without end marker must not be accepted")
	}
	if res.Err.Kind != KindSyntax || res.Err.NonTerminal != "STMTLISTP" || res.Err.Lookahead != EndOfInput {
		t.Errorf("Err = %+v", res.Err)
	}
}

func TestMissingTableEntry(t *testing.T) {
	e := newTestEngine(t, grammar.Default(), Options{})
	res := e.Parse(strings.Fields("else $"))

	if res.Err == nil || res.Err.Kind != KindSyntax {
		t.Fatalf("Err = %v, want syntax", res.Err)
	}
	if res.Err.NonTerminal != "S" || res.Err.Lookahead != "else" {
		t.Errorf("NonTerminal/Lookahead = %q/%q", res.Err.NonTerminal, res.Err.Lookahead)
	}
	if res.Steps != 1 || res.Consumed != 0 {
		t.Errorf("Steps/Consumed = %d/%d, want 1/0", res.Steps, res.Consumed)
	}
}

func TestTrailingTokensIgnored(t *testing.T) {
	e := newTestEngine(t, grammar.Default(), Options{})
	res := e.Parse(strings.Fields("; $ print id"))

	if !res.Accepted() {
		t.Fatalf("expected accept, got %v", res.Err)
	}
	if res.Consumed != 2 {
		t.Errorf("Consumed = %d, want 2", res.Consumed)
	}
}

func TestLegacyTable(t *testing.T) {
	e := newTestEngine(t, grammar.Legacy(), Options{})

	single := e.Parse(strings.Fields("int id ; $"))
	if !single.Accepted() {
		t.Fatalf("legacy table should accept a single statement, got %v", single.Err)
	}

	res := e.Parse(strings.Fields(declarationProgram))
	if res.Accepted() {
		t.Fatal("legacy table only accepts single statement programs")
	}
	if res.Err.Kind != KindUnterminatedInput {
		t.Fatalf("Kind = %v, want unterminated_input", res.Err.Kind)
	}
	if res.Err.Expected != "$" || res.Err.Actual != "id" || res.Err.Position != 3 {
		t.Errorf("Err = %+v", res.Err)
	}
	if !llerror.HasCode(res.Err.Structured(), llerror.CodeUnterminatedInput) {
		t.Errorf("code = %v", res.Err.Code())
	}
}

func TestParseTracedMatchesSteps(t *testing.T) {
	e := newTestEngine(t, grammar.Default(), Options{})

	var forwarded Recorder
	res := e.ParseTraced(strings.Fields(ifProgram), &forwarded)

	if !res.Accepted() {
		t.Fatalf("expected accept, got %v", res.Err)
	}
	if len(res.Trace) != res.Steps {
		t.Errorf("trace has %d events for %d steps", len(res.Trace), res.Steps)
	}
	if !reflect.DeepEqual(res.Trace, forwarded.Events) {
		t.Error("forwarded events differ from recorded trace")
	}

	first := res.Trace[0]
	if first.Kind != EventExpand || first.Symbol != "S" || first.Production != "MAIN" {
		t.Errorf("first event = %v", first)
	}
	last := res.Trace[len(res.Trace)-1]
	if last.Kind != EventAccept || len(last.Stack) != 0 || len(last.Remaining) != 0 {
		t.Errorf("last event = %v", last)
	}

	for i, ev := range res.Trace {
		if ev.Step != i+1 {
			t.Errorf("event %d has step %d", i, ev.Step)
		}
	}
}

func TestEpsilonStepsShrinkStack(t *testing.T) {
	e := newTestEngine(t, grammar.Default(), Options{})
	res := e.ParseTraced(strings.Fields(declarationProgram), nil)

	epsilons := 0
	for i := 1; i < len(res.Trace); i++ {
		prev, ev := res.Trace[i-1], res.Trace[i]
		if !ev.Epsilon {
			continue
		}
		epsilons++
		if len(ev.Stack) != len(prev.Stack)-1 {
			t.Errorf("step %d: stack %d -> %d, want shrink by one", ev.Step, len(prev.Stack), len(ev.Stack))
		}
		if !reflect.DeepEqual(ev.Remaining, prev.Remaining) {
			t.Errorf("step %d consumed input on epsilon", ev.Step)
		}
	}
	if epsilons == 0 {
		t.Error("expected epsilon expansions")
	}
}

func TestRejectEventCarriesError(t *testing.T) {
	e := newTestEngine(t, grammar.Default(), Options{})
	res := e.ParseTraced(strings.Fields(unclosedIfProgram), nil)

	last := res.Trace[len(res.Trace)-1]
	if last.Kind != EventReject {
		t.Fatalf("last event kind = %v", last.Kind)
	}
	if last.Error != res.Err.Error() {
		t.Errorf("event error = %q, want %q", last.Error, res.Err.Error())
	}
	if !strings.HasPrefix(last.String(), "reject: syntax error") {
		t.Errorf("String() = %q", last.String())
	}
}

func TestEnginesAreIndependent(t *testing.T) {
	a := newTestEngine(t, grammar.Default(), Options{})
	b := newTestEngine(t, grammar.Default(), Options{})

	for _, input := range []string{declarationProgram, ifProgram, unclosedIfProgram} {
		ra := a.ParseTraced(strings.Fields(input), nil)
		rb := b.ParseTraced(strings.Fields(input), nil)
		if !reflect.DeepEqual(ra, rb) {
			t.Errorf("results differ for %q", input)
		}

		again := a.ParseTraced(strings.Fields(input), nil)
		if !reflect.DeepEqual(ra, again) {
			t.Errorf("repeated parse differs for %q", input)
		}
	}
}

func TestCapacityLimits(t *testing.T) {
	tokens := strings.Fields(declarationProgram)

	t.Run("stack", func(t *testing.T) {
		e := newTestEngine(t, grammar.Default(), Options{MaxStack: 2})
		res := e.Parse(tokens)
		if res.Err == nil || res.Err.Kind != KindCapacityExceeded {
			t.Fatalf("Err = %v, want capacity", res.Err)
		}
		if res.Err.Resource != "stack" || res.Err.Limit != 2 {
			t.Errorf("Resource/Limit = %q/%d", res.Err.Resource, res.Err.Limit)
		}
		if !errors.Is(res.Err, ErrStackFull) {
			t.Error("error should wrap ErrStackFull")
		}
	})

	t.Run("input", func(t *testing.T) {
		e := newTestEngine(t, grammar.Default(), Options{MaxInputTokens: 3})
		res := e.Parse(tokens)
		if res.Err == nil || res.Err.Kind != KindCapacityExceeded || res.Err.Resource != "input" {
			t.Fatalf("Err = %v, want input capacity", res.Err)
		}
		if res.Steps != 0 || res.Consumed != 0 {
			t.Errorf("Steps/Consumed = %d/%d, want 0/0", res.Steps, res.Consumed)
		}
		if v, ok := res.Err.Structured().Detail("limit"); !ok || v != 3 {
			t.Errorf("limit detail = %v", v)
		}
	})

	t.Run("production tokens", func(t *testing.T) {
		e := newTestEngine(t, grammar.Default(), Options{MaxProductionTokens: 2})
		res := e.Parse(tokens)
		if res.Err == nil || res.Err.Kind != KindTokenize {
			t.Fatalf("Err = %v, want tokenize", res.Err)
		}
		if res.Err.NonTerminal != "STMT" || res.Err.Production != "int VARLIST ;" {
			t.Errorf("NonTerminal/Production = %q/%q", res.Err.NonTerminal, res.Err.Production)
		}
		if !errors.Is(res.Err, grammar.ErrTooManyTokens) {
			t.Error("error should wrap grammar.ErrTooManyTokens")
		}
	})

	t.Run("unbounded", func(t *testing.T) {
		e := newTestEngine(t, grammar.Default(), Options{MaxStack: -1, MaxInputTokens: -1, MaxProductionTokens: -1})
		if res := e.Parse(tokens); !res.Accepted() {
			t.Errorf("expected accept, got %v", res.Err)
		}
		if got := e.Options(); got.MaxStack != 0 || got.MaxInputTokens != 0 {
			t.Errorf("Options() = %+v", got)
		}
	})
}

func TestNewDefaults(t *testing.T) {
	e := newTestEngine(t, grammar.Default(), Options{})
	got := e.Options()
	if got.MaxStack != DefaultMaxStack || got.MaxProductionTokens != DefaultMaxProductionTokens || got.MaxInputTokens != DefaultMaxInputTokens {
		t.Errorf("Options() = %+v", got)
	}

	if _, err := New(nil, Options{}); !llerror.HasCode(err, llerror.CodeInvalidInput) {
		t.Errorf("New(nil) error = %v, want INVALID_INPUT", err)
	}
	if _, err := New(grammar.Default(), Options{MaxStack: 1}); !llerror.HasCode(err, llerror.CodeInvalidInput) {
		t.Errorf("New(MaxStack: 1) error = %v, want INVALID_INPUT", err)
	}
}

type stubTable struct {
	body string
}

func (s stubTable) Grammar() *grammar.Grammar { return grammar.Fixed() }

func (s stubTable) Lookup(nonTerminal, terminal string) (grammar.Production, bool) {
	return grammar.Production{Head: nonTerminal, Body: s.body}, true
}

func TestInvalidSymbol(t *testing.T) {
	e := newTestEngine(t, stubTable{body: "MAIN bogus"}, Options{})
	res := e.Parse([]string{"$"})

	if res.Err == nil || res.Err.Kind != KindInvalidSymbol {
		t.Fatalf("Err = %v, want invalid_symbol", res.Err)
	}
	if res.Err.Symbol != "bogus" || res.Err.NonTerminal != "S" {
		t.Errorf("Symbol/NonTerminal = %q/%q", res.Err.Symbol, res.Err.NonTerminal)
	}
	if res.Err.Code() != llerror.CodeInvalidSymbol {
		t.Errorf("Code() = %v", res.Err.Code())
	}
}

func TestStackUnderflow(t *testing.T) {
	e := newTestEngine(t, grammar.Default(), Options{})
	run := e.Begin([]string{"$"}, nil)
	run.stack = NewStack(0)

	if run.Step() {
		t.Fatal("Step() should stop on an empty stack")
	}
	res := run.Result()
	if res.Err == nil || res.Err.Kind != KindStackUnderflow {
		t.Fatalf("Err = %v, want stack_underflow", res.Err)
	}
}

func TestStepwiseRun(t *testing.T) {
	e := newTestEngine(t, grammar.Default(), Options{})
	run := e.Begin(strings.Fields("; $"), nil)

	if got := run.Stack(); !reflect.DeepEqual(got, []string{"S", "$"}) {
		t.Errorf("initial stack = %q", got)
	}

	steps := 0
	for run.Step() {
		steps++
		if run.State() != StateRunning {
			t.Fatal("Step() returned true for a finished run")
		}
	}
	if run.State() != StateAccepted {
		t.Fatalf("State() = %v, want accepted", run.State())
	}
	if run.Step() {
		t.Error("Step() after completion should return false")
	}
	if got := run.Result().Steps; got != steps+1 {
		t.Errorf("Steps = %d, want %d", got, steps+1)
	}
	if len(run.Remaining()) != 0 {
		t.Errorf("Remaining() = %q", run.Remaining())
	}
}

func TestConcurrentParses(t *testing.T) {
	e := newTestEngine(t, grammar.Default(), Options{})
	inputs := []string{declarationProgram, ifProgram, unclosedIfProgram}

	want := make([]*Result, len(inputs))
	for i, in := range inputs {
		want[i] = e.ParseTraced(strings.Fields(in), nil)
	}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				idx := (g + i) % len(inputs)
				got := e.ParseTraced(strings.Fields(inputs[idx]), nil)
				if !reflect.DeepEqual(got, want[idx]) {
					t.Errorf("goroutine %d: result differs for %q", g, inputs[idx])
					return
				}
			}
		}(g)
	}
	wg.Wait()
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateRunning, "running"},
		{StateAccepted, "accepted"},
		{StateRejected, "rejected"},
		{State(9), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
