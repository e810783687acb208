// File: describe.go
// Title: Table Description
// Description: Serializable view of a parse table together with the grammar
//              and its FIRST/FOLLOW sets, used for dumps and the HTTP API.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-16
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-16 v0.1.0: Initial implementation

package grammar

// SetEntry holds the analysis results of one nonterminal
type SetEntry struct {
	NonTerminal string   `json:"nonterminal" yaml:"nonterminal" toml:"nonterminal"`
	Nullable    bool     `json:"nullable" yaml:"nullable" toml:"nullable"`
	First       []string `json:"first" yaml:"first" toml:"first"`
	Follow      []string `json:"follow" yaml:"follow" toml:"follow"`
}

// Description is a complete, serializable snapshot of a table
type Description struct {
	Variant      Variant      `json:"variant" yaml:"variant" toml:"variant"`
	Start        string       `json:"start" yaml:"start" toml:"start"`
	EndMarker    string       `json:"end_marker" yaml:"end_marker" toml:"end_marker"`
	NonTerminals []string     `json:"nonterminals" yaml:"nonterminals" toml:"nonterminals"`
	Terminals    []string     `json:"terminals" yaml:"terminals" toml:"terminals"`
	Productions  []Production `json:"productions" yaml:"productions" toml:"productions"`
	Sets         []SetEntry   `json:"sets" yaml:"sets" toml:"sets"`
	Cells        []Cell       `json:"cells" yaml:"cells" toml:"cells"`
	Shadows      []Shadow     `json:"shadows,omitempty" yaml:"shadows,omitempty" toml:"shadows,omitempty"`
}

// Describe builds the description of t
func Describe(t *Table) (*Description, error) {
	g := t.Grammar()
	sets, err := Analyze(g)
	if err != nil {
		return nil, err
	}

	d := &Description{
		Variant:      t.Variant(),
		Start:        g.Start(),
		EndMarker:    g.EndMarker(),
		NonTerminals: g.NonTerminals(),
		Terminals:    g.Terminals(),
		Productions:  g.Productions(),
		Cells:        t.Cells(),
		Shadows:      t.Shadows(),
	}
	for _, nt := range d.NonTerminals {
		d.Sets = append(d.Sets, SetEntry{
			NonTerminal: nt,
			Nullable:    sets.Nullable(nt),
			First:       sets.First(nt),
			Follow:      sets.Follow(nt),
		})
	}
	return d, nil
}
