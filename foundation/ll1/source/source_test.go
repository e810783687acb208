// File: source_test.go
// Title: Program Source Loader Tests
// Description: Tests for line joining, size limits and the end marker check.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-14
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-14 v0.1.0: Initial test suite

package source

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	llerror "github.com/msto63/llrec/foundation/core/error"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		opts    Options
		want    string
		wantErr error
		code    llerror.Code
	}{
		{
			name:  "joins lines",
			input: "int x ;\nx := 1 + 2 * 3 ;\nprint x ;$\n",
			want:  "int x ; x := 1 + 2 * 3 ; print x ;$",
		},
		{
			name:  "skips empty lines and strips CRLF",
			input: "if ( x < 1 )\r\n\r\n{ print x ; }\r\n\n$",
			want:  "if ( x < 1 ) { print x ; } $",
		},
		{
			name:  "trailing whitespace after marker",
			input: "$   \t\n\n",
			want:  "$",
		},
		{
			name:  "no trailing newline",
			input: "print x ; $",
			want:  "print x ; $",
		},
		{
			name:    "missing end marker",
			input:   "print x ;\n",
			wantErr: ErrMissingEndMarker,
			code:    llerror.CodeMissingEndMarker,
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: ErrMissingEndMarker,
			code:    llerror.CodeMissingEndMarker,
		},
		{
			name:    "marker not last",
			input:   "$ print x",
			wantErr: ErrMissingEndMarker,
			code:    llerror.CodeMissingEndMarker,
		},
		{
			name:    "too large",
			input:   strings.Repeat("x", 10) + "\n$",
			opts:    Options{MaxBytes: 11},
			wantErr: ErrTooLarge,
			code:    llerror.CodeCapacityExceeded,
		},
		{
			name:  "just fits",
			input: strings.Repeat("x", 8) + "\n$",
			opts:  Options{MaxBytes: 12},
			want:  "xxxxxxxx $",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(strings.NewReader(tt.input), tt.opts)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Load() error = %v, want %v", err, tt.wantErr)
				}
				if !llerror.HasCode(err, tt.code) {
					t.Errorf("code = %v, want %v", llerror.GetCode(err), tt.code)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Load() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "program.txt")
	if err := os.WriteFile(path, []byte("int x ;\n$\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadFile(path, Options{})
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if got != "int x ; $" {
		t.Errorf("LoadFile() = %q", got)
	}

	_, err = LoadFile(filepath.Join(dir, "missing.txt"), Options{})
	if !llerror.HasCode(err, llerror.CodeNotFound) {
		t.Errorf("missing file code = %v", llerror.GetCode(err))
	}
}
