// File: stack_test.go
// Title: Parse Stack and Trace Tests
// Description: Tests for stack ordering, capacity handling and the tracer
//              helpers.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-14
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-14 v0.1.0: Initial test suite

package parser

import (
	"reflect"
	"testing"

	"github.com/msto63/llrec/foundation/ll1/grammar"
)

func syms(names ...string) []grammar.Symbol {
	out := make([]grammar.Symbol, len(names))
	for i, n := range names {
		out[i], _ = grammar.Fixed().Classify(n)
	}
	return out
}

func TestStackOrder(t *testing.T) {
	s := NewStack(0)
	if err := s.Push(syms("$", "S")...); err != nil {
		t.Fatalf("Push() error = %v", err)
	}
	if err := s.PushReversed(syms("id", ":=", "EXPR")); err != nil {
		t.Fatalf("PushReversed() error = %v", err)
	}

	want := []string{"id", ":=", "EXPR", "S", "$"}
	if got := s.Snapshot(); !reflect.DeepEqual(got, want) {
		t.Errorf("Snapshot() = %q, want %q", got, want)
	}

	top, ok := s.Peek()
	if !ok || top.Name != "id" || !top.IsTerminal() {
		t.Errorf("Peek() = %v, %v", top, ok)
	}

	for _, name := range want {
		sym, ok := s.Pop()
		if !ok || sym.Name != name {
			t.Fatalf("Pop() = %v, %v, want %s", sym, ok, name)
		}
	}
	if _, ok := s.Pop(); ok {
		t.Error("Pop() on empty stack should fail")
	}
	if _, ok := s.Peek(); ok {
		t.Error("Peek() on empty stack should fail")
	}
}

func TestStackCapacity(t *testing.T) {
	tests := []struct {
		name    string
		limit   int
		initial int
		push    int
		wantErr bool
	}{
		{"fits exactly", 3, 1, 2, false},
		{"one over", 3, 2, 2, true},
		{"unbounded", 0, 100, 50, false},
		{"empty push on full stack", 2, 2, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStack(tt.limit)
			for i := 0; i < tt.initial; i++ {
				if err := s.Push(syms("id")...); err != nil {
					t.Fatalf("setup Push() error = %v", err)
				}
			}

			body := make([]grammar.Symbol, tt.push)
			err := s.PushReversed(body)
			if (err != nil) != tt.wantErr {
				t.Fatalf("PushReversed() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && s.Len() != tt.initial {
				t.Errorf("failed push changed the stack: Len() = %d", s.Len())
			}
			if s.Limit() != tt.limit {
				t.Errorf("Limit() = %d", s.Limit())
			}
		})
	}
}

func TestTee(t *testing.T) {
	var a, b Recorder
	count := 0
	tracer := Tee(&a, nil, TracerFunc(func(TraceEvent) { count++ }), &b)

	tracer.OnEvent(TraceEvent{Step: 1, Kind: EventMatch, Symbol: "id"})
	tracer.OnEvent(TraceEvent{Step: 2, Kind: EventAccept})

	if len(a.Events) != 2 || !reflect.DeepEqual(a.Events, b.Events) || count != 2 {
		t.Errorf("events a=%d b=%d func=%d", len(a.Events), len(b.Events), count)
	}

	a.Reset()
	if len(a.Events) != 0 {
		t.Error("Reset() should drop events")
	}
}

func TestTraceEventString(t *testing.T) {
	tests := []struct {
		ev   TraceEvent
		want string
	}{
		{
			TraceEvent{Kind: EventMatch, Symbol: "id", Stack: []string{";", "$"}, Remaining: []string{";", "$"}},
			"match id | stack: ; $ | input: ; $",
		},
		{
			TraceEvent{Kind: EventExpand, Symbol: "STMT", Production: "PRINTST ;", Stack: []string{"PRINTST", ";"}, Remaining: []string{"print"}},
			"expand STMT -> PRINTST ; | stack: PRINTST ; | input: print",
		},
		{
			TraceEvent{Kind: EventExpand, Symbol: "TERMP", Epsilon: true, Stack: []string{"$"}, Remaining: []string{"$"}},
			"expand TERMP -> ε | stack: $ | input: $",
		},
	}

	for _, tt := range tests {
		if got := tt.ev.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
