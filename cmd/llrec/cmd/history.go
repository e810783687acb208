package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/msto63/llrec/internal/history/store"
	"github.com/msto63/llrec/internal/report"
)

var (
	historyLimit   int
	historyVerdict string
	historyTable   string
	historySince   time.Duration
	historyJSON    bool
	historyPlain   bool
	pruneOlderThan time.Duration
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Gespeicherte Läufe anzeigen",
	Long: `Listet die in der History gespeicherten Läufe, neueste zuerst.

Die History muss in der Config aktiviert sein ([history] enabled = true).

Beispiele:
  llrec history
  llrec history --verdict rejected --since 24h
  llrec history show <run-id>
  llrec history stats
  llrec history prune --older-than 720h`,
	Args: cobra.NoArgs,
	RunE: runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Einen Lauf mit Ableitung anzeigen",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Statistik über alle Läufe",
	Args:  cobra.NoArgs,
	RunE:  runHistoryStats,
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Alte Läufe löschen",
	Args:  cobra.NoArgs,
	RunE:  runHistoryPrune,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyShowCmd, historyStatsCmd, historyPruneCmd)

	historyCmd.PersistentFlags().BoolVar(&historyJSON, "json", false, "Als JSON ausgeben")

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximale Anzahl")
	historyCmd.Flags().StringVar(&historyVerdict, "verdict", "", "Nur accepted oder rejected")
	historyCmd.Flags().StringVar(&historyTable, "table", "", "Nur Läufe mit dieser Tabelle")
	historyCmd.Flags().DurationVar(&historySince, "since", 0, "Nur Läufe der letzten Dauer (z.B. 24h)")

	historyShowCmd.Flags().BoolVar(&historyPlain, "plain", false, "Keine Farben")

	historyPruneCmd.Flags().DurationVar(&pruneOlderThan, "older-than", 30*24*time.Hour, "Läufe älter als diese Dauer löschen")
}

// withHistory opens the run store for the duration of fn
func withHistory(fn func(ctx context.Context, history store.RunStore) error) error {
	history, err := openHistory(appConfig)
	if err != nil {
		return err
	}
	if history == nil {
		return fmt.Errorf("History ist deaktiviert (history.enabled = false)")
	}
	defer history.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return fn(ctx, history)
}

func writeJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	filter := store.RunFilter{
		Table: historyTable,
		Limit: historyLimit,
	}
	switch strings.ToLower(historyVerdict) {
	case "":
	case "accepted":
		filter.Verdict = store.VerdictAccepted
	case "rejected":
		filter.Verdict = store.VerdictRejected
	default:
		return fmt.Errorf("unbekanntes Verdict: %s", historyVerdict)
	}
	if historySince > 0 {
		filter.StartTime = time.Now().Add(-historySince)
	}

	return withHistory(func(ctx context.Context, history store.RunStore) error {
		runs, err := history.Query(ctx, filter)
		if err != nil {
			return err
		}
		if historyJSON {
			return writeJSON(cmd, runs)
		}
		if len(runs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Keine Läufe gefunden.")
			return nil
		}

		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("ID", "Zeit", "Herkunft", "Tabelle", "Ergebnis", "Schritte", "Fehler")
		for _, run := range runs {
			t.Row(
				run.ID,
				run.Timestamp.Local().Format("2006-01-02 15:04:05"),
				run.Origin,
				run.Table,
				string(run.Verdict),
				strconv.Itoa(run.Steps),
				run.ErrorKind,
			)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), t.String())
		return err
	})
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	return withHistory(func(ctx context.Context, history store.RunStore) error {
		run, err := history.Get(ctx, args[0])
		if err != nil {
			return err
		}
		if historyJSON {
			return writeJSON(cmd, run)
		}

		w := cmd.OutOrStdout()
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintf(tw, "Run:\t%s\n", run.ID)
		fmt.Fprintf(tw, "Zeit:\t%s\n", run.Timestamp.Local().Format(time.RFC3339))
		fmt.Fprintf(tw, "Herkunft:\t%s\n", run.Origin)
		fmt.Fprintf(tw, "Tabelle:\t%s\n", run.Table)
		fmt.Fprintf(tw, "Quelle:\t%s\n", run.Source)
		fmt.Fprintf(tw, "Lexed:\t%s\n", run.Lexed)
		fmt.Fprintf(tw, "Dauer:\t%s\n", run.Duration)
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintln(w)

		printer := report.NewPrinter(w, report.Options{
			Plain: historyPlain || !isTerminal(os.Stdout),
		})
		if len(run.Trace) > 0 {
			printer.Trace(run.Trace)
		}
		if err := printer.Err(); err != nil {
			return err
		}

		if run.Verdict == store.VerdictAccepted {
			fmt.Fprintf(w, "ACCEPTED  %d Schritte, %d Tokens\n", run.Steps, run.Consumed)
		} else {
			fmt.Fprintf(w, "REJECTED  %s\n", run.ErrorMessage)
		}
		return nil
	})
}

func runHistoryStats(cmd *cobra.Command, args []string) error {
	return withHistory(func(ctx context.Context, history store.RunStore) error {
		stats, err := history.Stats(ctx)
		if err != nil {
			return err
		}
		if historyJSON {
			return writeJSON(cmd, stats)
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintf(tw, "Läufe:\t%d\n", stats.Total)
		fmt.Fprintf(tw, "Accepted:\t%d\n", stats.Accepted)
		fmt.Fprintf(tw, "Rejected:\t%d\n", stats.Rejected)
		fmt.Fprintf(tw, "Ø Schritte:\t%.1f\n", stats.AvgSteps)
		if !stats.LastRun.IsZero() {
			fmt.Fprintf(tw, "Letzter Lauf:\t%s\n", stats.LastRun.Local().Format(time.RFC3339))
		}
		for table, n := range stats.ByTable {
			fmt.Fprintf(tw, "Tabelle %s:\t%d\n", table, n)
		}
		for kind, n := range stats.ByErrorKind {
			fmt.Fprintf(tw, "Fehler %s:\t%d\n", kind, n)
		}
		return tw.Flush()
	})
}

func runHistoryPrune(cmd *cobra.Command, args []string) error {
	if pruneOlderThan <= 0 {
		return fmt.Errorf("--older-than muss positiv sein")
	}
	return withHistory(func(ctx context.Context, history store.RunStore) error {
		n, err := history.Prune(ctx, pruneOlderThan)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d Läufe gelöscht.\n", n)
		return nil
	})
}
