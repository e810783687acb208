package cmd

import (
	"io"
	"os"
	"strings"

	lllog "github.com/msto63/llrec/foundation/core/log"
	"github.com/msto63/llrec/foundation/ll1"
	"github.com/msto63/llrec/foundation/ll1/grammar"
	"github.com/msto63/llrec/foundation/ll1/lexer"
	"github.com/msto63/llrec/foundation/ll1/parser"
	"github.com/msto63/llrec/foundation/ll1/source"
	"github.com/msto63/llrec/internal/history/store"
	"github.com/msto63/llrec/pkg/core/config"
)

// recognizerOptions maps the configuration onto recognizer options
func recognizerOptions(cfg *config.Config, logger *lllog.Logger) (ll1.Options, error) {
	variant, err := grammar.ParseVariant(cfg.Grammar.Table)
	if err != nil {
		return ll1.Options{}, err
	}
	table, err := grammar.ForVariant(variant)
	if err != nil {
		return ll1.Options{}, err
	}

	return ll1.Options{
		Table: table,
		Lexer: lexer.Options{
			LegacyEquality: cfg.Lexer.LegacyEquality,
			MaxTokens:      cfg.Parser.MaxInputTokens,
		},
		Parser: parser.Options{
			MaxStack:            cfg.Parser.MaxStack,
			MaxProductionTokens: cfg.Parser.MaxProductionTokens,
			MaxInputTokens:      cfg.Parser.MaxInputTokens,
		},
		Logger: logger,
	}, nil
}

func newRecognizer(cfg *config.Config, logger *lllog.Logger) (*ll1.Recognizer, error) {
	opts, err := recognizerOptions(cfg, logger)
	if err != nil {
		return nil, err
	}
	return ll1.New(opts)
}

// readSource loads the program from expr, a file or stdin ("-" or no
// argument), applying the source file rules
func readSource(cfg *config.Config, args []string, expr string, stdin io.Reader) (string, string, error) {
	opts := source.Options{MaxBytes: cfg.Source.MaxBytes}

	switch {
	case expr != "":
		src, err := source.Load(strings.NewReader(expr), opts)
		return src, "<expr>", err
	case len(args) == 0 || args[0] == "-":
		src, err := source.Load(stdin, opts)
		return src, "<stdin>", err
	default:
		src, err := source.LoadFile(args[0], opts)
		return src, args[0], err
	}
}

// openHistory opens the run store if history is enabled, nil otherwise
func openHistory(cfg *config.Config) (*store.SQLiteRunStore, error) {
	if !cfg.History.Enabled {
		return nil, nil
	}
	return store.NewSQLiteRunStore(store.SQLiteRunConfig{Path: cfg.History.Path})
}

// isTerminal reports whether f is attached to a terminal
func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
