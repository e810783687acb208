// File: timer.go
// Title: Performance Timer
// Description: Measures the duration of an operation and logs it on
//              completion, e.g. one recognizer run or one table build.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-12
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-12 v0.1.0: Initial implementation with performance timing
// - 2026-10-16 v0.2.0: Duration carried on the entry, single stop path

package log

import (
	"time"
)

// Timer represents a running measurement bound to a logger
type Timer struct {
	logger    *Logger
	operation string
	start     time.Time
	fields    Fields
	level     Level
	stopped   bool
}

// NewTimer creates a new timer for the given operation
func NewTimer(logger *Logger, operation string) *Timer {
	return &Timer{
		logger:    logger,
		operation: operation,
		start:     time.Now(),
		fields:    make(Fields),
		level:     LevelDebug,
	}
}

// WithLevel sets the level of the completion message
func (t *Timer) WithLevel(level Level) *Timer {
	t.level = level
	return t
}

// WithField adds a field logged on completion
func (t *Timer) WithField(key string, value interface{}) *Timer {
	t.fields[key] = value
	return t
}

// Elapsed returns the time since the timer was started
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// Stop logs "<operation> completed" with the elapsed time. Only the first
// call logs; later calls return 0.
func (t *Timer) Stop() time.Duration {
	return t.stop(nil)
}

// StopWithError logs "<operation> failed" at error level when err is set
func (t *Timer) StopWithError(err error) time.Duration {
	return t.stop(err)
}

func (t *Timer) stop(err error) time.Duration {
	if t.stopped {
		return 0
	}
	t.stopped = true
	elapsed := t.Elapsed()

	if t.logger == nil {
		return elapsed
	}

	fields := t.fields.Merge(Fields{"operation": t.operation})
	if err != nil {
		t.logger.logEntry(LevelError, t.operation+" failed", err, elapsed, fields)
	} else {
		t.logger.logEntry(t.level, t.operation+" completed", nil, elapsed, fields)
	}
	return elapsed
}
