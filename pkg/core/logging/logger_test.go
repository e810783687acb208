package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	lllog "github.com/msto63/llrec/foundation/core/log"
)

func TestDefaultLoggerConfig(t *testing.T) {
	cfg := DefaultLoggerConfig("my-service")

	if cfg.ServiceName != "my-service" {
		t.Errorf("ServiceName = %v, want my-service", cfg.ServiceName)
	}
	if cfg.Level != "info" {
		t.Errorf("Level = %v, want info", cfg.Level)
	}
	if cfg.Format != "text" {
		t.Errorf("Format = %v, want text", cfg.Format)
	}
	if cfg.Output != "stderr" {
		t.Errorf("Output = %v, want stderr", cfg.Output)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(LoggerConfig{
		ServiceName:       "test-service",
		Level:             "debug",
		Format:            "json",
		Output:            "stderr",
		AdditionalOutputs: []io.Writer{&buf},
	})
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	if logger.GetLevel() != lllog.LevelDebug {
		t.Errorf("level = %v, want debug", logger.GetLevel())
	}

	logger.Debug("copied")
	if !strings.Contains(buf.String(), `"message":"copied"`) {
		t.Errorf("additional output = %q", buf.String())
	}
}

func TestNewLoggerWritesJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logs", "llrec.log")

	logger, err := NewLogger(LoggerConfig{
		ServiceName: "recognizer",
		Level:       "info",
		Format:      "json",
		Output:      path,
	})
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}

	logger.Info("input accepted", lllog.Fields{"steps": 12})
	logger.Debug("filtered")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %s", len(lines), data)
	}

	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if entry["logger"] != "recognizer" || entry["message"] != "input accepted" || entry["steps"] != float64(12) {
		t.Errorf("entry = %v", entry)
	}
}

func TestNewLoggerInvalidSettings(t *testing.T) {
	tests := []struct {
		name   string
		level  string
		format string
	}{
		{"invalid level", "loud", "text"},
		{"invalid format", "info", "xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewLogger(LoggerConfig{Level: tt.level, Format: tt.format})
			if err == nil {
				t.Error("expected error")
			}
			if logger == nil {
				t.Fatal("a usable logger should still be returned")
			}
			if tt.level == "loud" && logger.GetLevel() != lllog.LevelInfo {
				t.Errorf("level = %v, want info fallback", logger.GetLevel())
			}
		})
	}
}

func TestOpenOutput(t *testing.T) {
	tests := []struct {
		name string
		want *os.File
	}{
		{"", os.Stderr},
		{"stderr", os.Stderr},
		{"STDOUT", os.Stdout},
	}
	for _, tt := range tests {
		w, err := OpenOutput(tt.name)
		if err != nil {
			t.Fatalf("OpenOutput(%q) error = %v", tt.name, err)
		}
		if w != tt.want {
			t.Errorf("OpenOutput(%q) returned wrong writer", tt.name)
		}
	}
}

func TestNewSimpleLogger(t *testing.T) {
	if NewSimpleLogger("test-service") == nil {
		t.Fatal("NewSimpleLogger() returned nil")
	}
}

func TestWrapKeyValues(t *testing.T) {
	var buf bytes.Buffer
	base := lllog.NewWithConfig(lllog.Config{
		Level:  lllog.LevelDebug,
		Format: lllog.FormatLogfmt,
		Output: &buf,
	})

	logger := Wrap(base, "server").With("addr", ":8080")
	if logger.Name() != "server" {
		t.Errorf("Name() = %q", logger.Name())
	}

	logger.Info("listening", "tls", false)
	logger.Error("request failed", "error", errors.New("boom"))

	out := buf.String()
	for _, want := range []string{`addr=":8080"`, "tls=false", `error="boom"`, "logger=server"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWrapNil(t *testing.T) {
	logger := Wrap(nil, "quiet")
	logger.Info("dropped")
	if logger.Foundation() == nil {
		t.Error("Foundation() should not be nil")
	}
}

func TestLogger_OddKeyValues(t *testing.T) {
	logger := Wrap(lllog.Discard(), "test")

	// Should not panic with odd number of key-values
	logger.Info("message", "key1", "value1", "orphan")
}

func TestToFields(t *testing.T) {
	if fields := toFields(); fields != nil {
		t.Error("toFields() with no args should return nil")
	}

	fields := toFields("key1", "value1", "key2", 42)
	if fields["key1"] != "value1" {
		t.Errorf("fields[key1] = %v, want value1", fields["key1"])
	}
	if fields["key2"] != 42 {
		t.Errorf("fields[key2] = %v, want 42", fields["key2"])
	}

	fields = toFields(123, "value")
	if len(fields) != 0 {
		t.Errorf("Non-string key should be skipped, got %v fields", len(fields))
	}
}

func BenchmarkLogger_Info(b *testing.B) {
	logger := Wrap(lllog.Discard(), "benchmark")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("benchmark message", "iteration", i)
	}
}
