package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	lllog "github.com/msto63/llrec/foundation/core/log"
	"github.com/msto63/llrec/internal/history/store"
	"github.com/msto63/llrec/internal/server"
	"github.com/msto63/llrec/pkg/core/version"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Startet die HTTP API",
	Long: `Startet die HTTP API des Recognizers.

Endpunkte:
  POST /api/v1/parse       Programm erkennen
  GET  /api/v1/table       Grammatik und Parse-Tabelle
  GET  /api/v1/runs        Gespeicherte Läufe (History)
  GET  /api/v1/health      Health Check
  WS   /api/v1/ws          Ableitung als Event-Stream

Beispiele:
  llrec serve
  llrec serve --port 9000`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host (default: aus Config)")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port (default: aus Config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	recognizer, err := newRecognizer(appConfig, appLogger)
	if err != nil {
		return err
	}

	cfg := server.DefaultConfig()
	cfg.Host = appConfig.Server.Host
	cfg.Port = appConfig.Server.Port
	if serveHost != "" {
		cfg.Host = serveHost
	}
	if servePort != 0 {
		cfg.Port = servePort
	}
	cfg.ReadTimeout = appConfig.Server.ReadTimeout.Duration
	cfg.WriteTimeout = appConfig.Server.WriteTimeout.Duration
	cfg.MaxBodyBytes = appConfig.Server.MaxBodyBytes
	cfg.MaxSourceBytes = appConfig.Source.MaxBytes
	cfg.Version = version.Server
	cfg.Logger = appLogger

	var history store.RunStore
	sqlite, err := openHistory(appConfig)
	if err != nil {
		return err
	}
	if sqlite != nil {
		defer sqlite.Close()
		history = sqlite
	}

	srv, err := server.New(cfg, recognizer, history)
	if err != nil {
		return err
	}

	fmt.Printf("llrec API läuft auf http://%s (Tabelle: %s)\n", srv.Address(), recognizer.Table().Variant())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		appLogger.Info("Shutdown requested", lllog.Fields{"signal": sig.String()})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	fmt.Println("Server gestoppt.")
	return nil
}
