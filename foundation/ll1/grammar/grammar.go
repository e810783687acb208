// File: grammar.go
// Title: Grammar Vocabulary and Productions
// Description: Holds the ordered terminal and nonterminal vocabularies, the
//              precomputed name to index maps and the production list of the
//              recognized language. The fixed grammar of the language is
//              built once and shared.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-13
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-13 v0.1.0: Initial implementation

package grammar

import (
	"sync"

	llerror "github.com/msto63/llrec/foundation/core/error"
)

const (
	// StartSymbol is the nonterminal every derivation starts from
	StartSymbol = "S"

	// EndMarker terminates every token sequence
	EndMarker = "$"
)

var fixedNonTerminals = []string{
	"S", "MAIN", "FLIST", "FLISTP", "FDEF",
	"PARLIST", "PARLISTP", "VARLIST", "VARLISTP",
	"STMT", "ATRIBST", "PRINTST", "RETURNST",
	"RETURNSTP", "IFSTMT", "IFSTMTTAIL",
	"STMTLIST", "STMTLISTP",
	"EXPR", "EXPRP",
	"NUMEXPR", "NUMEXPRP",
	"TERM", "TERMP",
	"FACTOR", "FACTORP",
	"PARLISTCALL", "PARLISTCALLP",
}

var fixedTerminals = []string{
	"def", "int", "id", "num", "if", "else", "return", "print",
	"{", "}", "(", ")", ",", ";", ":=",
	"<", "<=", ">", ">=", "=", "<>", "==", "+", "-", "*", "/",
	"$",
}

// fixedProductions lists every production in nonterminal order. A program is
// a statement list, a function list or empty.
var fixedProductions = []Production{
	{"S", "MAIN"},
	{"MAIN", "STMTLIST"},
	{"MAIN", "FLIST"},
	{"MAIN", ""},
	{"FLIST", "FDEF FLISTP"},
	{"FLISTP", "FDEF FLISTP"},
	{"FLISTP", ""},
	{"FDEF", "def id ( PARLIST ) { STMTLIST }"},
	{"PARLIST", "int id PARLISTP"},
	{"PARLIST", ""},
	{"PARLISTP", ", int id PARLISTP"},
	{"PARLISTP", ""},
	{"VARLIST", "id VARLISTP"},
	{"VARLISTP", ", id VARLISTP"},
	{"VARLISTP", ""},
	{"STMT", "int VARLIST ;"},
	{"STMT", "ATRIBST ;"},
	{"STMT", "PRINTST ;"},
	{"STMT", "RETURNST ;"},
	{"STMT", "IFSTMT"},
	{"STMT", "{ STMTLIST }"},
	{"STMT", ";"},
	{"ATRIBST", "id := EXPR"},
	{"PRINTST", "print EXPR"},
	{"RETURNST", "return RETURNSTP"},
	{"RETURNSTP", "id"},
	{"RETURNSTP", ""},
	{"IFSTMT", "if ( EXPR ) STMT IFSTMTTAIL"},
	{"IFSTMTTAIL", "else STMT"},
	{"IFSTMTTAIL", ""},
	{"STMTLIST", "STMT STMTLISTP"},
	{"STMTLISTP", "STMT STMTLISTP"},
	{"STMTLISTP", ""},
	{"EXPR", "NUMEXPR EXPRP"},
	{"EXPRP", "< NUMEXPR"},
	{"EXPRP", "<= NUMEXPR"},
	{"EXPRP", "> NUMEXPR"},
	{"EXPRP", ">= NUMEXPR"},
	{"EXPRP", "== NUMEXPR"},
	{"EXPRP", "<> NUMEXPR"},
	{"EXPRP", ""},
	{"NUMEXPR", "TERM NUMEXPRP"},
	{"NUMEXPRP", "+ TERM NUMEXPRP"},
	{"NUMEXPRP", "- TERM NUMEXPRP"},
	{"NUMEXPRP", ""},
	{"TERM", "FACTOR TERMP"},
	{"TERMP", "* FACTOR TERMP"},
	{"TERMP", "/ FACTOR TERMP"},
	{"TERMP", ""},
	{"FACTOR", "num"},
	{"FACTOR", "( NUMEXPR )"},
	{"FACTOR", "id FACTORP"},
	{"FACTORP", "( PARLISTCALL )"},
	{"FACTORP", ""},
	{"PARLISTCALL", "id PARLISTCALLP"},
	{"PARLISTCALL", ""},
	{"PARLISTCALLP", ", id PARLISTCALLP"},
	{"PARLISTCALLP", ""},
}

// Grammar is an immutable vocabulary plus production list
type Grammar struct {
	nonTerminals []string
	terminals    []string
	ntIndex      map[string]int
	tIndex       map[string]int
	productions  []Production
	byHead       map[string][]Production
	start        string
	end          string
}

// New validates the vocabularies and productions and builds a Grammar.
// Names must be unique across both vocabularies, start must be a
// nonterminal, end a terminal and every body symbol must be known.
func New(nonTerminals, terminals []string, start, end string, productions []Production) (*Grammar, error) {
	g := &Grammar{
		nonTerminals: append([]string(nil), nonTerminals...),
		terminals:    append([]string(nil), terminals...),
		ntIndex:      make(map[string]int, len(nonTerminals)),
		tIndex:       make(map[string]int, len(terminals)),
		productions:  append([]Production(nil), productions...),
		byHead:       make(map[string][]Production),
		start:        start,
		end:          end,
	}

	for i, name := range g.nonTerminals {
		if _, dup := g.ntIndex[name]; dup || name == "" {
			return nil, symbolError("duplicate or empty nonterminal", name)
		}
		g.ntIndex[name] = i
	}
	for i, name := range g.terminals {
		_, dup := g.tIndex[name]
		_, clash := g.ntIndex[name]
		if dup || clash || name == "" {
			return nil, symbolError("duplicate or empty terminal", name)
		}
		g.tIndex[name] = i
	}

	if _, ok := g.ntIndex[start]; !ok {
		return nil, symbolError("start symbol is not a nonterminal", start)
	}
	if _, ok := g.tIndex[end]; !ok {
		return nil, symbolError("end marker is not a terminal", end)
	}

	for _, p := range g.productions {
		if _, ok := g.ntIndex[p.Head]; !ok {
			return nil, symbolError("production head is not a nonterminal", p.Head)
		}
		if err := g.checkBody(p.Body); err != nil {
			return nil, err
		}
		g.byHead[p.Head] = append(g.byHead[p.Head], p)
	}

	return g, nil
}

func (g *Grammar) checkBody(body string) error {
	symbols, err := TokenizeProduction(body, 0)
	if err != nil {
		return err
	}
	for _, s := range symbols {
		if _, ok := g.Classify(s); !ok {
			return symbolError("unknown symbol in production body", s).WithDetail("body", body)
		}
	}
	return nil
}

func symbolError(msg, name string) *llerror.Error {
	return llerror.New(msg).
		WithCode(llerror.CodeGrammarSymbol).
		WithOperation("grammar.New").
		WithDetail("symbol", name)
}

var (
	fixedOnce sync.Once
	fixed     *Grammar
)

// Fixed returns the grammar of the recognized language. The value is built
// on first use and shared by every caller.
func Fixed() *Grammar {
	fixedOnce.Do(func() {
		g, err := New(fixedNonTerminals, fixedTerminals, StartSymbol, EndMarker, fixedProductions)
		if err != nil {
			panic("grammar: invalid fixed grammar: " + err.Error())
		}
		fixed = g
	})
	return fixed
}

// NonTerminals returns the nonterminal names in index order
func (g *Grammar) NonTerminals() []string {
	return append([]string(nil), g.nonTerminals...)
}

// Terminals returns the terminal names in index order
func (g *Grammar) Terminals() []string {
	return append([]string(nil), g.terminals...)
}

// NumNonTerminals returns the number of nonterminals
func (g *Grammar) NumNonTerminals() int { return len(g.nonTerminals) }

// NumTerminals returns the number of terminals
func (g *Grammar) NumTerminals() int { return len(g.terminals) }

// Start returns the start symbol
func (g *Grammar) Start() string { return g.start }

// EndMarker returns the end-of-input terminal
func (g *Grammar) EndMarker() string { return g.end }

// IndexOfNonTerminal resolves a nonterminal name to its row index
func (g *Grammar) IndexOfNonTerminal(name string) (int, bool) {
	i, ok := g.ntIndex[name]
	return i, ok
}

// IndexOfTerminal resolves a terminal name to its column index
func (g *Grammar) IndexOfTerminal(name string) (int, bool) {
	i, ok := g.tIndex[name]
	return i, ok
}

// Classify resolves a name to a terminal or nonterminal symbol
func (g *Grammar) Classify(name string) (Symbol, bool) {
	if _, ok := g.tIndex[name]; ok {
		return Symbol{Name: name, Kind: KindTerminal}, true
	}
	if _, ok := g.ntIndex[name]; ok {
		return Symbol{Name: name, Kind: KindNonTerminal}, true
	}
	return Symbol{}, false
}

// Productions returns all productions in declaration order
func (g *Grammar) Productions() []Production {
	return append([]Production(nil), g.productions...)
}

// ProductionsOf returns the alternatives of one nonterminal
func (g *Grammar) ProductionsOf(head string) []Production {
	return append([]Production(nil), g.byHead[head]...)
}
