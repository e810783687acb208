// File: legacy.go
// Title: Legacy Compatibility Rules
// Description: Hand enumerated table rules of the first recognizer release.
//              Programs are a single statement or a function list, RETURNST
//              predicts a bare "return" on ";" and FOLLOW(IFSTMTTAIL) does
//              not contain "$". Kept so old inputs can be checked unchanged.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-13
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-13 v0.1.0: Initial implementation

package grammar

var stmtStarts = []string{"int", "id", "print", "return", "if", "{", ";"}

var relationalOps = []string{"<", "<=", ">", ">=", "==", "<>"}

// LegacyRules returns the construction rules of the compatibility table
func LegacyRules() []Rule {
	exprpAlts := make([]Alternative, 0, len(relationalOps))
	for _, op := range relationalOps {
		exprpAlts = append(exprpAlts, Alternative{Body: op + " NUMEXPR", Lookahead: []string{op}})
	}

	return []Rule{
		{
			Head: "S",
			Alternatives: []Alternative{
				{Body: "MAIN", Lookahead: []string{"def", "int", "id", "print", "return", "if", "{", ";", "$"}},
			},
		},
		{
			Head: "MAIN",
			Alternatives: []Alternative{
				{Body: "STMT", Lookahead: stmtStarts},
				{Body: "FLIST", Lookahead: []string{"def"}},
			},
			Fallbacks: []Fallback{{Body: "", On: []string{"$"}}},
		},
		{
			Head:         "FLIST",
			Alternatives: []Alternative{{Body: "FDEF FLISTP", Lookahead: []string{"def"}}},
		},
		{
			Head:         "FLISTP",
			Alternatives: []Alternative{{Body: "FDEF FLISTP", Lookahead: []string{"def"}}},
			Fallbacks:    []Fallback{{Body: "", On: []string{"$"}}},
		},
		{
			Head:         "FDEF",
			Alternatives: []Alternative{{Body: "def id ( PARLIST ) { STMTLIST }", Lookahead: []string{"def"}}},
		},
		{
			Head:         "PARLIST",
			Alternatives: []Alternative{{Body: "int id PARLISTP", Lookahead: []string{"int"}}},
			Fallbacks:    []Fallback{{Body: "", On: []string{")"}}},
		},
		{
			Head:         "PARLISTP",
			Alternatives: []Alternative{{Body: ", int id PARLISTP", Lookahead: []string{","}}},
			Fallbacks:    []Fallback{{Body: "", On: []string{")"}}},
		},
		{
			Head:         "VARLIST",
			Alternatives: []Alternative{{Body: "id VARLISTP", Lookahead: []string{"id"}}},
		},
		{
			Head:         "VARLISTP",
			Alternatives: []Alternative{{Body: ", id VARLISTP", Lookahead: []string{","}}},
			Fallbacks:    []Fallback{{Body: "", On: []string{";", "}"}}},
		},
		{
			Head: "STMT",
			Alternatives: []Alternative{
				{Body: "int VARLIST ;", Lookahead: []string{"int"}},
				{Body: "ATRIBST ;", Lookahead: []string{"id"}},
				{Body: "PRINTST ;", Lookahead: []string{"print"}},
				{Body: "RETURNST ;", Lookahead: []string{"return"}},
				{Body: "IFSTMT", Lookahead: []string{"if"}},
				{Body: "{ STMTLIST }", Lookahead: []string{"{"}},
				{Body: ";", Lookahead: []string{";"}},
			},
		},
		{
			Head:         "ATRIBST",
			Alternatives: []Alternative{{Body: "id := EXPR", Lookahead: []string{"id"}}},
		},
		{
			Head:         "PRINTST",
			Alternatives: []Alternative{{Body: "print EXPR", Lookahead: []string{"print"}}},
		},
		{
			Head:         "RETURNST",
			Alternatives: []Alternative{{Body: "return RETURNSTP", Lookahead: []string{"return"}}},
			Fallbacks:    []Fallback{{Body: "return", On: []string{";"}}},
		},
		{
			Head:         "RETURNSTP",
			Alternatives: []Alternative{{Body: "id", Lookahead: []string{"id"}}},
			Fallbacks:    []Fallback{{Body: "", On: []string{";"}}},
		},
		{
			Head:         "IFSTMT",
			Alternatives: []Alternative{{Body: "if ( EXPR ) STMT IFSTMTTAIL", Lookahead: []string{"if"}}},
		},
		{
			Head:         "IFSTMTTAIL",
			Alternatives: []Alternative{{Body: "else STMT", Lookahead: []string{"else"}}},
			Fallbacks:    []Fallback{{Body: "", On: []string{";", "}"}}},
		},
		{
			Head:         "STMTLIST",
			Alternatives: []Alternative{{Body: "STMT STMTLISTP", Lookahead: stmtStarts}},
		},
		{
			Head:         "STMTLISTP",
			Alternatives: []Alternative{{Body: "STMT STMTLISTP", Lookahead: stmtStarts}},
			Fallbacks:    []Fallback{{Body: "", On: []string{"}"}}},
		},
		{
			Head:         "EXPR",
			Alternatives: []Alternative{{Body: "NUMEXPR EXPRP", Lookahead: []string{"id", "num", "("}}},
		},
		{
			Head:         "EXPRP",
			Alternatives: exprpAlts,
			Fallbacks:    []Fallback{{Body: "", On: []string{";", ")", "}", ","}}},
		},
		{
			Head:         "NUMEXPR",
			Alternatives: []Alternative{{Body: "TERM NUMEXPRP", Lookahead: []string{"id", "num", "("}}},
		},
		{
			Head: "NUMEXPRP",
			Alternatives: []Alternative{
				{Body: "+ TERM NUMEXPRP", Lookahead: []string{"+"}},
				{Body: "- TERM NUMEXPRP", Lookahead: []string{"-"}},
			},
			Fallbacks: []Fallback{{Body: "", On: []string{"<", "<=", ">", ">=", "==", "<>", ";", ")", "}", ",", "$"}}},
		},
		{
			Head:         "TERM",
			Alternatives: []Alternative{{Body: "FACTOR TERMP", Lookahead: []string{"id", "num", "("}}},
		},
		{
			Head: "TERMP",
			Alternatives: []Alternative{
				{Body: "* FACTOR TERMP", Lookahead: []string{"*"}},
				{Body: "/ FACTOR TERMP", Lookahead: []string{"/"}},
			},
			Fallbacks: []Fallback{{Body: "", On: []string{"+", "-", "<", "<=", ">", ">=", "==", "<>", ";", ")", "}", ",", "$"}}},
		},
		{
			Head: "FACTOR",
			Alternatives: []Alternative{
				{Body: "num", Lookahead: []string{"num"}},
				{Body: "( NUMEXPR )", Lookahead: []string{"("}},
				{Body: "id FACTORP", Lookahead: []string{"id"}},
			},
		},
		{
			Head:         "FACTORP",
			Alternatives: []Alternative{{Body: "( PARLISTCALL )", Lookahead: []string{"("}}},
			Fallbacks:    []Fallback{{Body: "", On: []string{"+", "-", "*", "/", "<", "<=", ">", ">=", "==", "<>", ";", ")", "}", ","}}},
		},
		{
			Head:         "PARLISTCALL",
			Alternatives: []Alternative{{Body: "id PARLISTCALLP", Lookahead: []string{"id"}}},
			Fallbacks:    []Fallback{{Body: "", On: []string{")"}}},
		},
		{
			Head:         "PARLISTCALLP",
			Alternatives: []Alternative{{Body: ", id PARLISTCALLP", Lookahead: []string{","}}},
			Fallbacks:    []Fallback{{Body: "", On: []string{")"}}},
		},
	}
}
