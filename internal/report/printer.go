// ============================================================================
// llrec - LL(1) Recognizer
// ============================================================================
//
// Package:     report
// Description: Console rendering of derivation traces and verdicts
// Author:      msto63
// Created:     2026-10-16
// License:     MIT
// ============================================================================

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/msto63/llrec/foundation/ll1"
	"github.com/msto63/llrec/foundation/ll1/grammar"
	"github.com/msto63/llrec/foundation/ll1/lexer"
	"github.com/msto63/llrec/foundation/ll1/parser"
)

// Options configures a Printer
type Options struct {
	// Plain disables all styling
	Plain bool
	// Compact prints one line per step instead of three
	Compact bool
	// Table is used to list the expected terminals of a failed expansion
	Table *grammar.Table
}

// Printer writes traces to a terminal. It implements parser.Tracer so a
// parse can be printed while it runs.
type Printer struct {
	w       io.Writer
	styles  Styles
	compact bool
	table   *grammar.Table
	err     error
}

// NewPrinter creates a printer writing to w
func NewPrinter(w io.Writer, opts Options) *Printer {
	styles := DefaultStyles()
	if opts.Plain {
		styles = PlainStyles()
	}
	return &Printer{w: w, styles: styles, compact: opts.Compact, table: opts.Table}
}

// Err returns the first write error
func (p *Printer) Err() error { return p.err }

func (p *Printer) printf(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

// Header prints the source and its terminal sequence
func (p *Printer) Header(out *ll1.Outcome) {
	p.printf("%s\n", p.styles.Header.Render("Eingabe"))
	p.printf("  %s %s\n", p.styles.Label.Render("Quelle:"), out.Source)
	p.printf("  %s %s\n", p.styles.Label.Render("Lexed: "), p.styles.TokenValue.Render(out.Lexed()))
	p.printf("  %s %s\n\n", p.styles.Label.Render("Run:   "), out.RunID)
}

// Tokens prints a token table with positions
func (p *Printer) Tokens(tokens []lexer.Token) {
	p.printf("%s\n", p.styles.Header.Render("Tokens"))
	for i, tok := range tokens {
		p.printf("  %3d  %-6s %-12s %s\n", i,
			p.styles.TokenValue.Render(tok.Value),
			tok.Type.String(),
			p.styles.Step.Render(fmt.Sprintf("%d:%d %q", tok.Line, tok.Column, tok.Text)))
	}
	p.printf("\n")
}

// OnEvent prints one step
func (p *Printer) OnEvent(ev parser.TraceEvent) {
	step := p.styles.Step.Render(fmt.Sprintf("[%3d]", ev.Step))
	action := p.action(ev)

	if p.compact {
		p.printf("%s %s\n", step, ev.String())
		return
	}

	p.printf("%s %s\n", step, action)
	p.printf("      %s %s\n", p.styles.Label.Render("Stack:  "), p.styles.Stack.Render(join(ev.Stack)))
	p.printf("      %s %s\n", p.styles.Label.Render("Eingabe:"), p.styles.Input.Render(join(ev.Remaining)))
}

func (p *Printer) action(ev parser.TraceEvent) string {
	switch ev.Kind {
	case parser.EventMatch:
		return p.styles.Match.Render("match  " + ev.Symbol)
	case parser.EventExpand:
		if ev.Epsilon {
			return p.styles.Expand.Render("expand "+ev.Symbol+" -> ") + p.styles.Epsilon.Render("ε")
		}
		return p.styles.Expand.Render("expand " + ev.Symbol + " -> " + ev.Production)
	case parser.EventAccept:
		return p.styles.Accepted.Render("accept")
	case parser.EventReject:
		return p.styles.Rejected.Render("reject ") + p.styles.ErrorText.Render(ev.Error)
	default:
		return string(ev.Kind)
	}
}

// Trace prints all events of a recorded trace
func (p *Printer) Trace(events []parser.TraceEvent) {
	p.printf("%s\n", p.styles.Header.Render("Ableitung"))
	for _, ev := range events {
		p.OnEvent(ev)
	}
	p.printf("\n")
}

// Verdict prints the final result line and, for rejections, where the
// parse stopped
func (p *Printer) Verdict(out *ll1.Outcome) {
	res := out.Result
	if res == nil {
		return
	}

	if res.Accepted() {
		p.printf("%s  %s\n", p.styles.Accepted.Render("ACCEPTED"),
			p.styles.Step.Render(fmt.Sprintf("%d Schritte, %d Tokens", res.Steps, res.Consumed)))
		return
	}

	p.printf("%s  %s\n", p.styles.Rejected.Render("REJECTED"), p.styles.ErrorText.Render(res.Err.Error()))
	if tok, ok := out.ErrorToken(); ok {
		p.printf("  %s Zeile %d, Spalte %d bei %q\n", p.styles.Label.Render("Position:"), tok.Line, tok.Column, tok.Text)
	} else {
		p.printf("  %s Eingabeende\n", p.styles.Label.Render("Position:"))
	}
	if expected := p.expected(res.Err); len(expected) > 0 {
		p.printf("  %s %s\n", p.styles.Label.Render("Erwartet:"), strings.Join(expected, " "))
	}
}

// expected lists the terminals that would have been accepted at the
// failing step
func (p *Printer) expected(perr *parser.ParseError) []string {
	switch {
	case perr.Expected != "":
		return []string{perr.Expected}
	case perr.Kind == parser.KindSyntax && perr.NonTerminal != "" && p.table != nil:
		return p.table.Expected(perr.NonTerminal)
	}
	return nil
}

func join(symbols []string) string {
	if len(symbols) == 0 {
		return "-"
	}
	return strings.Join(symbols, " ")
}
