// ============================================================================
// llrec - LL(1) Recognizer
// ============================================================================
//
// Package:     logging
// Description: Key-value logging wrapper around the foundation logger
// Author:      msto63
// Created:     2026-10-14
// License:     MIT
// ============================================================================

package logging

import (
	lllog "github.com/msto63/llrec/foundation/core/log"
)

// Logger wraps the foundation logger with key-value methods
type Logger struct {
	*lllog.Logger
	name string
}

// New creates a key-value logger with the default configuration
func New(name string) *Logger {
	return &Logger{
		Logger: NewSimpleLogger(name),
		name:   name,
	}
}

// Wrap adapts an existing foundation logger
func Wrap(logger *lllog.Logger, name string) *Logger {
	if logger == nil {
		logger = lllog.Discard()
	}
	return &Logger{Logger: logger.WithName(name), name: name}
}

// Name returns the component name
func (l *Logger) Name() string { return l.name }

// Foundation returns the underlying foundation logger
func (l *Logger) Foundation() *lllog.Logger { return l.Logger }

// With returns a logger carrying the given key-value pairs on every entry
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{
		Logger: l.Logger.WithFields(toFields(keysAndValues...)),
		name:   l.name,
	}
}

// Debug logs a debug message with key-value pairs
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.Logger.Debug(msg, toFields(keysAndValues...))
}

// Info logs an info message with key-value pairs
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.Logger.Info(msg, toFields(keysAndValues...))
}

// Warn logs a warning message with key-value pairs
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.Logger.Warn(msg, toFields(keysAndValues...))
}

// Error logs an error message with key-value pairs
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.Logger.Error(msg, toFields(keysAndValues...))
}

// toFields converts key-value pairs to lllog.Fields. A trailing key
// without value is dropped.
func toFields(keysAndValues ...interface{}) lllog.Fields {
	if len(keysAndValues) == 0 {
		return nil
	}

	fields := make(lllog.Fields)
	for i := 0; i < len(keysAndValues)-1; i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		if err, ok := keysAndValues[i+1].(error); ok {
			fields[key] = err.Error()
			continue
		}
		fields[key] = keysAndValues[i+1]
	}
	return fields
}
