// File: trace.go
// Title: Derivation Trace
// Description: Step events emitted by the engine. The engine performs no
//              output of its own; callers observe a parse through a Tracer.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-14
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-14 v0.1.0: Initial implementation

package parser

import "strings"

// EventKind classifies a trace event
type EventKind string

const (
	EventMatch  EventKind = "match"
	EventExpand EventKind = "expand"
	EventAccept EventKind = "accept"
	EventReject EventKind = "reject"
)

// TraceEvent describes one engine step. Stack and Remaining reflect the
// state after the step; Stack is listed from top to bottom.
type TraceEvent struct {
	Step       int       `json:"step" yaml:"step"`
	Kind       EventKind `json:"kind" yaml:"kind"`
	Symbol     string    `json:"symbol,omitempty" yaml:"symbol,omitempty"`
	Production string    `json:"production,omitempty" yaml:"production,omitempty"`
	Epsilon    bool      `json:"epsilon,omitempty" yaml:"epsilon,omitempty"`
	Token      string    `json:"token,omitempty" yaml:"token,omitempty"`
	Stack      []string  `json:"stack" yaml:"stack"`
	Remaining  []string  `json:"remaining" yaml:"remaining"`
	Error      string    `json:"error,omitempty" yaml:"error,omitempty"`
}

// String renders the event on one line
func (e TraceEvent) String() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	switch e.Kind {
	case EventMatch:
		b.WriteString(" " + e.Symbol)
	case EventExpand:
		if e.Epsilon {
			b.WriteString(" " + e.Symbol + " -> ε")
		} else {
			b.WriteString(" " + e.Symbol + " -> " + e.Production)
		}
	case EventReject:
		b.WriteString(": " + e.Error)
	}
	b.WriteString(" | stack: " + strings.Join(e.Stack, " "))
	b.WriteString(" | input: " + strings.Join(e.Remaining, " "))
	return b.String()
}

// Tracer receives engine events in order
type Tracer interface {
	OnEvent(TraceEvent)
}

// TracerFunc adapts a function to the Tracer interface
type TracerFunc func(TraceEvent)

// OnEvent calls f(ev)
func (f TracerFunc) OnEvent(ev TraceEvent) { f(ev) }

// Recorder collects all events of a parse
type Recorder struct {
	Events []TraceEvent
}

// OnEvent appends ev
func (r *Recorder) OnEvent(ev TraceEvent) { r.Events = append(r.Events, ev) }

// Reset drops all recorded events
func (r *Recorder) Reset() { r.Events = r.Events[:0] }

type multiTracer []Tracer

func (m multiTracer) OnEvent(ev TraceEvent) {
	for _, t := range m {
		t.OnEvent(ev)
	}
}

// Tee returns a Tracer forwarding every event to all non-nil tracers
func Tee(tracers ...Tracer) Tracer {
	var out multiTracer
	for _, t := range tracers {
		if t != nil {
			out = append(out, t)
		}
	}
	return out
}
