package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msto63/llrec/foundation/ll1/lexer"
	"github.com/msto63/llrec/internal/report"
)

var (
	lexExpr   string
	lexTokens bool
	lexJSON   bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [datei]",
	Short: "Zeigt die Terminalfolge eines Programms",
	Long: `Zerlegt ein Programm in Terminale, ohne es zu parsen.

Bezeichner werden zu 'id', Zahlen zu 'num'. Schlüsselwörter, Operatoren
und Trennzeichen bleiben erhalten.

Beispiele:
  llrec lex programm.txt
  llrec lex --tokens -e 'x := 10 ; $'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexExpr, "expr", "e", "", "Programm direkt angeben statt Datei")
	lexCmd.Flags().BoolVar(&lexTokens, "tokens", false, "Token-Tabelle mit Positionen ausgeben")
	lexCmd.Flags().BoolVar(&lexJSON, "json", false, "Tokens als JSON ausgeben")
}

func runLex(cmd *cobra.Command, args []string) error {
	src, _, err := readSource(appConfig, args, lexExpr, cmd.InOrStdin())
	if err != nil {
		return err
	}

	lx := lexer.New(lexer.Options{
		LegacyEquality: appConfig.Lexer.LegacyEquality,
		MaxTokens:      appConfig.Parser.MaxInputTokens,
	})
	tokens, err := lx.Tokenize(src)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	switch {
	case lexJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tokens)
	case lexTokens:
		printer := report.NewPrinter(w, report.Options{Plain: !isTerminal(os.Stdout)})
		printer.Tokens(tokens)
		return printer.Err()
	default:
		terms := make([]string, len(tokens))
		for i, tok := range tokens {
			terms[i] = tok.Value
		}
		_, err = fmt.Fprintln(w, strings.Join(terms, " "))
		return err
	}
}
