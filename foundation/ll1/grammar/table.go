// File: table.go
// Title: Predictive Parse Table
// Description: Builds and queries the LL(1) table mapping (nonterminal,
//              lookahead terminal) to a production. Lookahead entries are
//              written before fallback (FOLLOW) entries and a fallback only
//              fills an empty cell. A built table is never modified.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-13
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-13 v0.1.0: Initial implementation with derived and legacy variants

package grammar

import (
	"strings"
	"sync"

	llerror "github.com/msto63/llrec/foundation/core/error"
)

// Variant names a table construction strategy
type Variant string

const (
	// VariantDerived builds the table from FIRST/FOLLOW analysis
	VariantDerived Variant = "derived"

	// VariantLegacy reproduces the hand enumerated compatibility table
	VariantLegacy Variant = "legacy"
)

// ParseVariant parses a variant name, the empty string selects derived
func ParseVariant(name string) (Variant, error) {
	switch Variant(strings.ToLower(strings.TrimSpace(name))) {
	case VariantDerived, "":
		return VariantDerived, nil
	case VariantLegacy:
		return VariantLegacy, nil
	default:
		return "", llerror.Newf("unknown table variant %q", name).
			WithCode(llerror.CodeInvalidInput).
			WithDetail("variant", name)
	}
}

// Alternative predicts Body on each Lookahead terminal
type Alternative struct {
	Body      string
	Lookahead []string
}

// Fallback predicts Body on each terminal in On unless the cell is taken
type Fallback struct {
	Body string
	On   []string
}

// Rule groups the construction entries of one nonterminal
type Rule struct {
	Head         string
	Alternatives []Alternative
	Fallbacks    []Fallback
}

// Shadow records a fallback entry that was skipped because the cell was
// already predicted by a lookahead entry.
type Shadow struct {
	NonTerminal string `json:"nonterminal" yaml:"nonterminal" toml:"nonterminal"`
	Terminal    string `json:"terminal" yaml:"terminal" toml:"terminal"`
	Kept        string `json:"kept" yaml:"kept" toml:"kept"`
	Skipped     string `json:"skipped" yaml:"skipped" toml:"skipped"`
}

// Cell is one populated table entry
type Cell struct {
	NonTerminal string `json:"nonterminal" yaml:"nonterminal" toml:"nonterminal"`
	Terminal    string `json:"terminal" yaml:"terminal" toml:"terminal"`
	Body        string `json:"body" yaml:"body" toml:"body"`
	Fallback    bool   `json:"fallback" yaml:"fallback" toml:"fallback"`
}

type entry struct {
	production Production
	fallback   bool
}

// Table is an immutable predictive parse table
type Table struct {
	grammar *Grammar
	variant Variant
	cells   [][]*entry
	shadows []Shadow
}

// Build constructs a table from rules. Writing two different bodies into one
// cell from lookahead entries is a grammar conflict. Unknown heads,
// terminals or body symbols are symbol errors.
func Build(g *Grammar, variant Variant, rules []Rule) (*Table, error) {
	t := &Table{
		grammar: g,
		variant: variant,
		cells:   make([][]*entry, len(g.nonTerminals)),
	}
	for i := range t.cells {
		t.cells[i] = make([]*entry, len(g.terminals))
	}

	for _, rule := range rules {
		row, ok := g.ntIndex[rule.Head]
		if !ok {
			return nil, buildError(llerror.CodeGrammarSymbol, "rule head is not a nonterminal", rule.Head, "")
		}
		for _, alt := range rule.Alternatives {
			if err := g.checkBody(alt.Body); err != nil {
				return nil, err
			}
			for _, term := range alt.Lookahead {
				col, ok := g.tIndex[term]
				if !ok {
					return nil, buildError(llerror.CodeGrammarSymbol, "lookahead is not a terminal", rule.Head, term)
				}
				if existing := t.cells[row][col]; existing != nil {
					if existing.production.Body != alt.Body {
						return nil, buildError(llerror.CodeGrammarConflict, "conflicting predictions", rule.Head, term).
							WithDetail("kept", existing.production.Body).
							WithDetail("rejected", alt.Body)
					}
					continue
				}
				t.cells[row][col] = &entry{production: Production{Head: rule.Head, Body: alt.Body}}
			}
		}
	}

	for _, rule := range rules {
		row := g.ntIndex[rule.Head]
		for _, fb := range rule.Fallbacks {
			if err := g.checkBody(fb.Body); err != nil {
				return nil, err
			}
			for _, term := range fb.On {
				col, ok := g.tIndex[term]
				if !ok {
					return nil, buildError(llerror.CodeGrammarSymbol, "fallback terminal is not a terminal", rule.Head, term)
				}
				if existing := t.cells[row][col]; existing != nil {
					if existing.production.Body != fb.Body {
						t.shadows = append(t.shadows, Shadow{
							NonTerminal: rule.Head,
							Terminal:    term,
							Kept:        existing.production.Body,
							Skipped:     fb.Body,
						})
					}
					continue
				}
				t.cells[row][col] = &entry{production: Production{Head: rule.Head, Body: fb.Body}, fallback: true}
			}
		}
	}

	return t, nil
}

func buildError(code llerror.Code, msg, head, term string) *llerror.Error {
	err := llerror.New(msg).
		WithCode(code).
		WithOperation("grammar.Build").
		WithDetail("nonterminal", head)
	if term != "" {
		err = err.WithDetail("terminal", term)
	}
	return err
}

// NewDerived analyzes g and builds its derived table
func NewDerived(g *Grammar) (*Table, error) {
	sets, err := Analyze(g)
	if err != nil {
		return nil, err
	}
	return Build(g, VariantDerived, DeriveRules(g, sets))
}

// NewLegacy builds the compatibility table over the fixed grammar
func NewLegacy() (*Table, error) {
	return Build(Fixed(), VariantLegacy, LegacyRules())
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
	legacyOnce   sync.Once
	legacyTable  *Table
)

// Default returns the shared derived table of the fixed grammar
func Default() *Table {
	defaultOnce.Do(func() {
		t, err := NewDerived(Fixed())
		if err != nil {
			panic("grammar: derived table: " + err.Error())
		}
		defaultTable = t
	})
	return defaultTable
}

// Legacy returns the shared compatibility table
func Legacy() *Table {
	legacyOnce.Do(func() {
		t, err := NewLegacy()
		if err != nil {
			panic("grammar: legacy table: " + err.Error())
		}
		legacyTable = t
	})
	return legacyTable
}

// ForVariant returns the shared table of the given variant
func ForVariant(v Variant) (*Table, error) {
	switch v {
	case VariantDerived, "":
		return Default(), nil
	case VariantLegacy:
		return Legacy(), nil
	default:
		return nil, llerror.Newf("unknown table variant %q", v).
			WithCode(llerror.CodeInvalidInput).
			WithOperation("grammar.ForVariant").
			WithDetail("variant", string(v))
	}
}

// Grammar returns the grammar the table was built for
func (t *Table) Grammar() *Grammar { return t.grammar }

// Variant returns the construction strategy of the table
func (t *Table) Variant() Variant { return t.variant }

// Lookup returns the production predicted for nonterminal on terminal
func (t *Table) Lookup(nonTerminal, terminal string) (Production, bool) {
	row, ok := t.grammar.ntIndex[nonTerminal]
	if !ok {
		return Production{}, false
	}
	col, ok := t.grammar.tIndex[terminal]
	if !ok {
		return Production{}, false
	}
	return t.LookupIndex(row, col)
}

// LookupIndex is Lookup by row and column index
func (t *Table) LookupIndex(row, col int) (Production, bool) {
	if row < 0 || row >= len(t.cells) || col < 0 || col >= len(t.cells[row]) {
		return Production{}, false
	}
	e := t.cells[row][col]
	if e == nil {
		return Production{}, false
	}
	return e.production, true
}

// Cells returns every populated entry ordered by row then column
func (t *Table) Cells() []Cell {
	var out []Cell
	for row, cols := range t.cells {
		for col, e := range cols {
			if e == nil {
				continue
			}
			out = append(out, Cell{
				NonTerminal: t.grammar.nonTerminals[row],
				Terminal:    t.grammar.terminals[col],
				Body:        e.production.Body,
				Fallback:    e.fallback,
			})
		}
	}
	return out
}

// Row returns the populated entries of one nonterminal as terminal -> body
func (t *Table) Row(nonTerminal string) map[string]string {
	row, ok := t.grammar.ntIndex[nonTerminal]
	if !ok {
		return nil
	}
	out := make(map[string]string)
	for col, e := range t.cells[row] {
		if e != nil {
			out[t.grammar.terminals[col]] = e.production.Body
		}
	}
	return out
}

// Shadows returns the fallback entries skipped during construction
func (t *Table) Shadows() []Shadow {
	return append([]Shadow(nil), t.shadows...)
}

// Expected lists the terminals with an entry for nonTerminal, in column order
func (t *Table) Expected(nonTerminal string) []string {
	row, ok := t.grammar.ntIndex[nonTerminal]
	if !ok {
		return nil
	}
	var out []string
	for col, e := range t.cells[row] {
		if e != nil {
			out = append(out, t.grammar.terminals[col])
		}
	}
	return out
}
