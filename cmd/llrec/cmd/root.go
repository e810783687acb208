package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	lllog "github.com/msto63/llrec/foundation/core/log"
	"github.com/msto63/llrec/pkg/core/config"
	"github.com/msto63/llrec/pkg/core/logging"
)

var (
	cfgFile string
	verbose bool

	appConfig *config.Config
	appLogger *lllog.Logger
)

// errRejected signals a rejected program; the verdict is already printed
var errRejected = errors.New("program rejected")

var rootCmd = &cobra.Command{
	Use:   "llrec",
	Short: "llrec - LL(1) Recognizer",
	Long: `llrec prüft Programme einer kleinen imperativen Sprache mit einem
tabellengesteuerten LL(1)-Parser.

Befehle:
  parse    - Programm erkennen (ACCEPTED / REJECTED)
  lex      - Terminalfolge eines Programms anzeigen
  table    - Grammatik, FIRST/FOLLOW und Parse-Tabelle ausgeben
  step     - Ableitung interaktiv Schritt für Schritt ansehen
  history  - Gespeicherte Läufe anzeigen
  serve    - HTTP API starten`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errRejected) {
		printError("Befehl fehlgeschlagen", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config-Datei (default: ./configs/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose Output")
}

// setup loads the configuration and the logger before every command
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgFile)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	appConfig = cfg

	logCfg := logging.LoggerConfig{
		ServiceName: cfg.General.Name,
		Level:       cfg.General.LogLevel,
		Format:      cfg.General.LogFormat,
		Output:      cfg.General.LogOutput,
	}
	if verbose {
		logCfg.Level = "debug"
	}
	logger, err := logging.NewLogger(logCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warnung: %v\n", err)
	}
	appLogger = logger
	lllog.SetDefault(logger)

	appLogger.Debug("Configuration loaded", lllog.Fields{
		"path":  cfg.Path(),
		"table": cfg.Grammar.Table,
	})
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.LoadFromEnv()
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Fehler: %s: %v\n", msg, err)
}
