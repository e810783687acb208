package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/msto63/llrec/internal/tui/traceviewer"
)

var (
	stepExpr     string
	stepInterval time.Duration
)

var stepCmd = &cobra.Command{
	Use:   "step [datei]",
	Short: "Ableitung interaktiv ansehen",
	Long: `Öffnet den Trace-Viewer und führt den Parser Schritt für Schritt aus.

Tasten:
  n, Leertaste, →  nächster Schritt
  p, ←             vorheriger Schritt
  g / G            erster Schritt / bis zum Ende
  a                Autoplay an/aus
  r                Neustart
  q                Beenden

Beispiele:
  llrec step programm.txt
  llrec step -e 'print ( a + b ) ; $'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStep,
}

func init() {
	rootCmd.AddCommand(stepCmd)

	stepCmd.Flags().StringVarP(&stepExpr, "expr", "e", "", "Programm direkt angeben statt Datei")
	stepCmd.Flags().DurationVar(&stepInterval, "interval", 400*time.Millisecond, "Verzögerung im Autoplay")
}

func runStep(cmd *cobra.Command, args []string) error {
	if stepExpr == "" && (len(args) == 0 || args[0] == "-") {
		return fmt.Errorf("step benötigt eine Datei oder --expr")
	}

	src, _, err := readSource(appConfig, args, stepExpr, cmd.InOrStdin())
	if err != nil {
		return err
	}

	recognizer, err := newRecognizer(appConfig, appLogger)
	if err != nil {
		return err
	}

	return traceviewer.Run(traceviewer.Config{
		Recognizer: recognizer,
		Source:     src,
		Interval:   stepInterval,
	})
}
