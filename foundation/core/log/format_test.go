// File: format_test.go
// Title: Format Tests
// Description: Tests for level and format parsing and for the JSON, text,
//              console and logfmt formatters.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-12
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-12 v0.1.0: Initial format tests
// - 2026-10-16 v0.2.0: Deterministic field order, level parsing

package log

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func fixedEntry() *Entry {
	e := NewEntry(LevelWarn, "input rejected")
	e.Timestamp = time.Date(2026, 10, 16, 12, 30, 0, 0, time.UTC)
	e.Logger = "recognizer"
	e.CorrelationID = "abc"
	e.Fields = Fields{"kind": "syntax", "step": 4}
	return e
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"trace", LevelTrace, false},
		{"DEBUG", LevelDebug, false},
		{" info ", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"err", LevelError, false},
		{"fatal", LevelFatal, false},
		{"loud", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLevelStrings(t *testing.T) {
	if LevelWarn.String() != "warn" || LevelWarn.ShortString() != "WRN" {
		t.Errorf("unexpected warn strings %q %q", LevelWarn.String(), LevelWarn.ShortString())
	}
	if Level(42).String() != "unknown" || Level(42).ShortString() != "???" {
		t.Error("unknown level should render as unknown")
	}
	if !LevelError.ShouldLog(LevelWarn) || LevelDebug.ShouldLog(LevelInfo) {
		t.Error("ShouldLog() ordering mismatch")
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"TEXT", FormatText, false},
		{"console", FormatConsole, false},
		{" logfmt ", FormatLogfmt, false},
		{"", FormatText, false},
		{"xml", FormatText, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestJSONFormatter(t *testing.T) {
	e := fixedEntry()
	e.Error = errors.New("expected }")
	e.Duration = 1500 * time.Microsecond

	data, err := NewJSONFormatter().Format(e)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !strings.HasSuffix(string(data), "\n") {
		t.Error("JSON output should end with a newline")
	}

	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	checks := map[string]interface{}{
		"level":          "warn",
		"message":        "input rejected",
		"logger":         "recognizer",
		"correlation_id": "abc",
		"kind":           "syntax",
		"error":          "expected }",
		"duration_ms":    1.5,
	}
	for k, want := range checks {
		if m[k] != want {
			t.Errorf("%s = %v, want %v", k, m[k], want)
		}
	}
}

func TestJSONFormatterReservedKeys(t *testing.T) {
	e := fixedEntry()
	e.Fields["message"] = "overridden"

	data, _ := NewJSONFormatter().Format(e)
	var m map[string]interface{}
	_ = json.Unmarshal(data, &m)
	if m["message"] != "input rejected" {
		t.Errorf("fields must not override the entry message, got %v", m["message"])
	}
}

func TestTextFormatter(t *testing.T) {
	data, err := NewTextFormatter().Format(fixedEntry())
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	want := "12:30:00.000 [WRN] {recognizer} (run=abc) input rejected [kind=syntax step=4]\n"
	if string(data) != want {
		t.Errorf("Format() = %q, want %q", data, want)
	}
}

func TestConsoleFormatterWithoutColors(t *testing.T) {
	f := NewConsoleFormatter()
	f.DisableColors = true

	data, _ := f.Format(fixedEntry())
	text, _ := NewTextFormatter().Format(fixedEntry())
	if string(data) != string(text) {
		t.Errorf("console without colors = %q, want %q", data, text)
	}
}

func TestLogfmtFormatter(t *testing.T) {
	data, err := NewLogfmtFormatter().Format(fixedEntry())
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	want := `timestamp=2026-10-16T12:30:00Z level=warn message="input rejected" logger=recognizer correlation_id=abc kind="syntax" step=4` + "\n"
	if string(data) != want {
		t.Errorf("Format() = %q, want %q", data, want)
	}
}

func TestGetFormatter(t *testing.T) {
	if _, ok := GetFormatter(FormatJSON).(*JSONFormatter); !ok {
		t.Error("FormatJSON should yield *JSONFormatter")
	}
	if _, ok := GetFormatter(FormatConsole).(*ConsoleFormatter); !ok {
		t.Error("FormatConsole should yield *ConsoleFormatter")
	}
	if _, ok := GetFormatter(Format(99)).(*TextFormatter); !ok {
		t.Error("unknown format should fall back to text")
	}
}
