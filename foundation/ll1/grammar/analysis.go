// File: analysis.go
// Title: FIRST and FOLLOW Analysis
// Description: Computes nullable, FIRST and FOLLOW sets of a grammar by
//              fixed-point iteration and derives the per-nonterminal table
//              construction rules from them.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-13
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-13 v0.1.0: Initial implementation

package grammar

import (
	"sort"
)

type termSet map[string]struct{}

func (s termSet) add(t string) bool {
	if _, ok := s[t]; ok {
		return false
	}
	s[t] = struct{}{}
	return true
}

func (s termSet) addAll(other termSet) bool {
	changed := false
	for t := range other {
		if s.add(t) {
			changed = true
		}
	}
	return changed
}

// Sets holds the analysis results for one grammar
type Sets struct {
	g        *Grammar
	nullable map[string]bool
	first    map[string]termSet
	follow   map[string]termSet
	bodies   map[string][]string
}

// Analyze computes nullable, FIRST and FOLLOW for every nonterminal of g
func Analyze(g *Grammar) (*Sets, error) {
	s := &Sets{
		g:        g,
		nullable: make(map[string]bool),
		first:    make(map[string]termSet),
		follow:   make(map[string]termSet),
		bodies:   make(map[string][]string),
	}

	for _, nt := range g.nonTerminals {
		s.first[nt] = termSet{}
		s.follow[nt] = termSet{}
	}
	for _, p := range g.productions {
		if _, ok := s.bodies[p.Body]; ok {
			continue
		}
		symbols, err := TokenizeProduction(p.Body, 0)
		if err != nil {
			return nil, err
		}
		s.bodies[p.Body] = symbols
	}

	for changed := true; changed; {
		changed = false
		for _, p := range g.productions {
			first, nullable := s.firstOf(s.bodies[p.Body])
			if s.first[p.Head].addAll(first) {
				changed = true
			}
			if nullable && !s.nullable[p.Head] {
				s.nullable[p.Head] = true
				changed = true
			}
		}
	}

	s.follow[g.start].add(g.end)
	for changed := true; changed; {
		changed = false
		for _, p := range g.productions {
			symbols := s.bodies[p.Body]
			for i, sym := range symbols {
				if _, isNT := g.ntIndex[sym]; !isNT {
					continue
				}
				rest, restNullable := s.firstOf(symbols[i+1:])
				if s.follow[sym].addAll(rest) {
					changed = true
				}
				if restNullable && s.follow[sym].addAll(s.follow[p.Head]) {
					changed = true
				}
			}
		}
	}

	return s, nil
}

// firstOf returns FIRST of a symbol sequence and whether it is nullable
func (s *Sets) firstOf(symbols []string) (termSet, bool) {
	out := termSet{}
	for _, sym := range symbols {
		if _, isT := s.g.tIndex[sym]; isT {
			out.add(sym)
			return out, false
		}
		out.addAll(s.first[sym])
		if !s.nullable[sym] {
			return out, false
		}
	}
	return out, true
}

func (s *Sets) ordered(set termSet) []string {
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return s.g.tIndex[out[i]] < s.g.tIndex[out[j]] })
	return out
}

// Nullable reports whether nt derives the empty string
func (s *Sets) Nullable(nt string) bool { return s.nullable[nt] }

// First returns FIRST(nt) without ε, in terminal index order
func (s *Sets) First(nt string) []string { return s.ordered(s.first[nt]) }

// Follow returns FOLLOW(nt) in terminal index order
func (s *Sets) Follow(nt string) []string { return s.ordered(s.follow[nt]) }

// FirstOfBody returns FIRST of a production body and whether it is nullable
func (s *Sets) FirstOfBody(body string) ([]string, bool, error) {
	symbols, ok := s.bodies[body]
	if !ok {
		var err error
		if symbols, err = TokenizeProduction(body, 0); err != nil {
			return nil, false, err
		}
	}
	set, nullable := s.firstOf(symbols)
	return s.ordered(set), nullable, nil
}

// DeriveRules turns the analysis into table construction rules: each
// production is predicted on FIRST of its body, nullable bodies are
// additionally predicted on FOLLOW of the head as a fallback.
func DeriveRules(g *Grammar, s *Sets) []Rule {
	rules := make([]Rule, 0, len(g.nonTerminals))
	for _, nt := range g.nonTerminals {
		rule := Rule{Head: nt}
		for _, p := range g.byHead[nt] {
			set, nullable := s.firstOf(s.bodies[p.Body])
			if len(set) > 0 {
				rule.Alternatives = append(rule.Alternatives, Alternative{Body: p.Body, Lookahead: s.ordered(set)})
			}
			if nullable {
				rule.Fallbacks = append(rule.Fallbacks, Fallback{Body: p.Body, On: s.Follow(nt)})
			}
		}
		rules = append(rules, rule)
	}
	return rules
}
