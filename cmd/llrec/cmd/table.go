package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/msto63/llrec/foundation/ll1/grammar"
)

var (
	tableVariant string
	tableFormat  string
)

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Gibt Grammatik und Parse-Tabelle aus",
	Long: `Gibt die Produktionen, die FIRST/FOLLOW-Mengen und die belegten Zellen
der Parse-Tabelle aus.

Formate: text, json, yaml, toml

Beispiele:
  llrec table
  llrec table --variant legacy
  llrec table --format yaml > table.yaml`,
	Args: cobra.NoArgs,
	RunE: runTable,
}

func init() {
	rootCmd.AddCommand(tableCmd)

	tableCmd.Flags().StringVar(&tableVariant, "variant", "", "Tabellenvariante: derived oder legacy (default: aus Config)")
	tableCmd.Flags().StringVarP(&tableFormat, "format", "f", "text", "Ausgabeformat: text, json, yaml, toml")
}

func runTable(cmd *cobra.Command, args []string) error {
	name := tableVariant
	if name == "" {
		name = appConfig.Grammar.Table
	}
	variant, err := grammar.ParseVariant(name)
	if err != nil {
		return err
	}
	tbl, err := grammar.ForVariant(variant)
	if err != nil {
		return err
	}
	desc, err := grammar.Describe(tbl)
	if err != nil {
		return err
	}

	return writeDescription(cmd.OutOrStdout(), desc, tableFormat)
}

func writeDescription(w io.Writer, desc *grammar.Description, format string) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(desc)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(desc); err != nil {
			return err
		}
		return enc.Close()
	case "toml":
		return toml.NewEncoder(w).Encode(desc)
	case "text", "":
		return writeTableText(w, desc)
	default:
		return fmt.Errorf("unbekanntes Format: %s", format)
	}
}

func writeTableText(w io.Writer, desc *grammar.Description) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Tabelle: %s (Start %s, Ende %s)\n\n", desc.Variant, desc.Start, desc.EndMarker)

	b.WriteString("Produktionen\n")
	for _, p := range desc.Productions {
		fmt.Fprintf(&b, "  %s\n", p)
	}

	sets := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Nichtterminal", "Nullable", "FIRST", "FOLLOW")
	for _, s := range desc.Sets {
		sets.Row(s.NonTerminal, fmt.Sprint(s.Nullable),
			"{ "+strings.Join(s.First, " ")+" }", "{ "+strings.Join(s.Follow, " ")+" }")
	}
	b.WriteString("\nMengen\n")
	b.WriteString(sets.String())
	b.WriteString("\n")

	cells := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Nichtterminal", "Lookahead", "Produktion", "")
	for _, c := range desc.Cells {
		body := c.Body
		if strings.TrimSpace(body) == "" {
			body = "ε"
		}
		mark := ""
		if c.Fallback {
			mark = "FOLLOW"
		}
		cells.Row(c.NonTerminal, c.Terminal, body, mark)
	}
	b.WriteString("\nZellen\n")
	b.WriteString(cells.String())
	b.WriteString("\n")

	if len(desc.Shadows) > 0 {
		shadows := append([]grammar.Shadow(nil), desc.Shadows...)
		sort.Slice(shadows, func(i, j int) bool {
			if shadows[i].NonTerminal != shadows[j].NonTerminal {
				return shadows[i].NonTerminal < shadows[j].NonTerminal
			}
			return shadows[i].Terminal < shadows[j].Terminal
		})
		b.WriteString("\nÜberdeckte FOLLOW-Einträge\n")
		for _, s := range shadows {
			fmt.Fprintf(&b, "  %s, %s: behalten %q, verworfen %q\n", s.NonTerminal, s.Terminal, s.Kept, s.Skipped)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
