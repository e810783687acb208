package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	lllog "github.com/msto63/llrec/foundation/core/log"
	"github.com/msto63/llrec/foundation/ll1"
	"github.com/msto63/llrec/foundation/ll1/parser"
	"github.com/msto63/llrec/internal/history/store"
	"github.com/msto63/llrec/internal/report"
)

var (
	parseExpr      string
	parseTrace     bool
	parseCompact   bool
	parseTokens    bool
	parsePlain     bool
	parseJSON      bool
	parseNoHistory bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [datei]",
	Short: "Erkennt ein Programm",
	Long: `Liest ein Programm, zerlegt es in Terminale und prüft es mit dem
LL(1)-Parser.

Die Eingabe muss mit '$' enden. Zeilen werden wie in einer Quelldatei
mit Leerzeichen verbunden. Ohne Datei oder mit '-' wird von stdin gelesen.

Der Exit-Code ist 0 für ACCEPTED und 1 für REJECTED.

Beispiele:
  llrec parse programm.txt
  llrec parse --trace programm.txt
  llrec parse -e 'int x ; x := 1 ; $'
  echo 'print ( x ) ; $' | llrec parse --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseExpr, "expr", "e", "", "Programm direkt angeben statt Datei")
	parseCmd.Flags().BoolVarP(&parseTrace, "trace", "t", false, "Ableitung Schritt für Schritt ausgeben")
	parseCmd.Flags().BoolVar(&parseCompact, "compact", false, "Eine Zeile pro Schritt")
	parseCmd.Flags().BoolVar(&parseTokens, "tokens", false, "Token-Tabelle ausgeben")
	parseCmd.Flags().BoolVar(&parsePlain, "plain", false, "Keine Farben")
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "Ergebnis als JSON ausgeben")
	parseCmd.Flags().BoolVar(&parseNoHistory, "no-history", false, "Lauf nicht in der History speichern")
}

func runParse(cmd *cobra.Command, args []string) error {
	src, origin, err := readSource(appConfig, args, parseExpr, cmd.InOrStdin())
	if err != nil {
		return err
	}

	recognizer, err := newRecognizer(appConfig, appLogger)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	printer := report.NewPrinter(w, report.Options{
		Plain:   parsePlain || !isTerminal(os.Stdout),
		Compact: parseCompact,
		Table:   recognizer.Table(),
	})

	var tracer parser.Tracer
	if parseTrace && !parseJSON {
		tracer = printer
	}

	// Traces are always recorded so the history can replay them
	out, err := recognizer.RecognizeTraced(src, tracer)
	if err != nil {
		return err
	}

	if !parseNoHistory {
		recordRun(out, string(recognizer.Table().Variant()))
	}

	if parseJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if !parseTrace {
			out.Result.Trace = nil
		}
		if err := enc.Encode(out); err != nil {
			return err
		}
	} else {
		if parseTokens {
			printer.Tokens(out.Tokens)
		}
		if parseTrace {
			fmt.Fprintln(w)
		}
		printer.Verdict(out)
		if err := printer.Err(); err != nil {
			return err
		}
	}

	appLogger.Debug("Parsed source", lllog.Fields{"origin": origin, "run_id": out.RunID})

	if !out.Accepted() {
		return errRejected
	}
	return nil
}

// recordRun stores the run if the history is enabled. Failures are logged
// and do not change the verdict.
func recordRun(out *ll1.Outcome, variant string) {
	history, err := openHistory(appConfig)
	if err != nil {
		appLogger.WarnWithErr("History not available", err)
		return
	}
	if history == nil {
		return
	}
	defer history.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := history.Record(ctx, store.FromOutcome(out, variant, store.OriginCLI)); err != nil {
		appLogger.WarnWithErr("Failed to record run", err, lllog.Fields{"run_id": out.RunID})
	}
}
