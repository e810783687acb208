// ============================================================================
// llrec - LL(1) Recognizer
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating loggers from configuration
// Author:      msto63
// Created:     2026-10-14
// License:     MIT
// ============================================================================

package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	lllog "github.com/msto63/llrec/foundation/core/log"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Component name, shown as the logger name
	ServiceName string

	// Log level (trace, debug, info, warn, error, fatal)
	Level string

	// Output format: json, text, console or logfmt (default: text)
	Format string

	// Output: "stderr", "stdout" or a file path (default: stderr)
	Output string

	// Additional outputs besides Output
	AdditionalOutputs []io.Writer

	EnableCaller bool
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(serviceName string) LoggerConfig {
	return LoggerConfig{
		ServiceName: serviceName,
		Level:       "info",
		Format:      "text",
		Output:      "stderr",
	}
}

// NewLogger creates a foundation logger. Invalid level or format strings
// are reported together with a usable logger using the defaults.
func NewLogger(cfg LoggerConfig) (*lllog.Logger, error) {
	var problems []string

	level, err := lllog.ParseLevel(cfg.Level)
	if err != nil {
		problems = append(problems, err.Error())
		level = lllog.DefaultLevel()
	}

	format, err := lllog.ParseFormat(cfg.Format)
	if err != nil {
		problems = append(problems, err.Error())
	}

	output, err := OpenOutput(cfg.Output)
	if err != nil {
		problems = append(problems, err.Error())
		output = os.Stderr
	}

	if len(cfg.AdditionalOutputs) > 0 {
		writers := append([]io.Writer{output}, cfg.AdditionalOutputs...)
		output = io.MultiWriter(writers...)
	}

	logger := lllog.NewWithConfig(lllog.Config{
		Level:        level,
		Format:       format,
		Output:       output,
		Name:         cfg.ServiceName,
		EnableCaller: cfg.EnableCaller,
	})

	if len(problems) > 0 {
		return logger, fmt.Errorf("logging: %s", strings.Join(problems, "; "))
	}
	return logger, nil
}

// NewSimpleLogger creates a logger with the default configuration
func NewSimpleLogger(serviceName string) *lllog.Logger {
	logger, _ := NewLogger(DefaultLoggerConfig(serviceName))
	return logger
}

// OpenOutput resolves an output name to a writer. Files are opened in
// append mode and their directory is created.
func OpenOutput(name string) (io.Writer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "stderr":
		return os.Stderr, nil
	case "stdout":
		return os.Stdout, nil
	}

	if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}
