// ============================================================================
// llrec - LL(1) Recognizer
// ============================================================================
//
// Package:     server
// Description: HTTP API server for the recognizer
// Author:      msto63
// Created:     2026-10-16
// License:     MIT
// ============================================================================

package server

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	lllog "github.com/msto63/llrec/foundation/core/log"
	"github.com/msto63/llrec/foundation/ll1"
	"github.com/msto63/llrec/internal/history/store"
	"github.com/msto63/llrec/pkg/core/health"
	"github.com/msto63/llrec/pkg/core/logging"
	"github.com/msto63/llrec/pkg/core/version"
)

// Server is the llrec HTTP API server
type Server struct {
	httpServer *http.Server
	handler    *Handler
	health     *health.Registry
	logger     *logging.Logger
	config     Config
}

// Config holds server configuration
type Config struct {
	Host           string
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxBodyBytes   int64
	MaxSourceBytes int
	Version        string
	Logger         *lllog.Logger
}

// DefaultConfig returns default server configuration
func DefaultConfig() Config {
	return Config{
		Host:           "127.0.0.1",
		Port:           8095,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   30 * time.Second,
		MaxBodyBytes:   64 * 1024,
		MaxSourceBytes: 8192,
		Version:        version.Server,
	}
}

// New creates a new server. history may be nil to disable the run history.
func New(cfg Config, recognizer *ll1.Recognizer, history store.RunStore) (*Server, error) {
	if recognizer == nil {
		return nil, fmt.Errorf("server: recognizer is required")
	}
	logger := logging.Wrap(cfg.Logger, "llrec-server")

	// Create health registry
	healthRegistry := health.NewRegistry("llrec", cfg.Version)
	healthRegistry.Register(tableCheck(recognizer))
	if history != nil {
		healthRegistry.Register(health.LatencyCheck("history", 500*time.Millisecond, history.Ping))
	}

	h := NewHandler(cfg, recognizer, history, healthRegistry, logger.With("component", "handler"))
	wsHandler := NewWebSocketHandler(h, logger.With("component", "websocket"))

	mux := http.NewServeMux()
	mux.Handle("/api/v1/ws", wsHandler)
	mux.Handle("/", h)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      loggingMiddleware(logger, mux),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &Server{
		httpServer: httpServer,
		handler:    h,
		health:     healthRegistry,
		logger:     logger,
		config:     cfg,
	}, nil
}

// tableCheck parses the empty program as a canary for the shared table
func tableCheck(recognizer *ll1.Recognizer) health.Checker {
	return health.NewChecker("grammar", func(ctx context.Context) health.CheckResult {
		res := recognizer.Engine().Parse([]string{"$"})
		result := health.CheckResult{
			Name:    "grammar",
			Status:  health.StatusHealthy,
			Message: "table " + string(recognizer.Table().Variant()) + " ok",
			Details: map[string]interface{}{
				"variant": string(recognizer.Table().Variant()),
				"cells":   len(recognizer.Table().Cells()),
			},
		}
		if !res.Accepted() {
			result.Status = health.StatusUnhealthy
			result.Message = "canary rejected: " + res.Err.Error()
		}
		return result
	})
}

// loggingMiddleware adds request logging
func loggingMiddleware(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Wrap response writer to capture status code
		wrapper := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapper, r)

		logger.Info("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapper.statusCode,
			"duration", time.Since(start),
		)
	})
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (w *responseWrapper) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

// Hijack lets the WebSocket upgrade take over the connection
func (w *responseWrapper) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	return hj.Hijack()
}

// Start starts the server and blocks until it stops
func (s *Server) Start() error {
	s.logger.Info("Starting llrec API",
		"host", s.config.Host,
		"port", s.config.Port,
	)
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Serve accepts connections on l and blocks until the server stops
func (s *Server) Serve(l net.Listener) error {
	s.logger.Info("Starting llrec API", "address", l.Addr().String())
	err := s.httpServer.Serve(l)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Stop gracefully stops the server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping llrec API")
	return s.httpServer.Shutdown(ctx)
}

// Address returns the server address
func (s *Server) Address() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}

// Handler returns the root HTTP handler including middleware
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// HealthRegistry returns the health check registry
func (s *Server) HealthRegistry() *health.Registry {
	return s.health
}
