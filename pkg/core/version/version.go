// ============================================================================
// llrec - LL(1) Recognizer
// ============================================================================
//
// Package:     version
// Description: Central version management for all components
// Author:      msto63
// Created:     2026-10-14
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Version constants for all llrec components
const (
	// Application version
	Platform = "0.1.0"

	// Component versions
	Grammar = "0.1.0"
	Lexer   = "0.1.0"
	Parser  = "0.1.0"
	History = "0.1.0"
	Server  = "0.1.0"
)

// Set at build time with -ldflags "-X github.com/msto63/llrec/pkg/core/version.Commit=..."
var (
	Commit    = "unknown"
	BuildDate = "unknown"
)

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "grammar":
		return Grammar
	case "lexer":
		return Lexer
	case "parser":
		return Parser
	case "history":
		return History
	case "server":
		return Server
	default:
		return Platform
	}
}

// Info describes the running binary
type Info struct {
	Version    string            `json:"version" yaml:"version"`
	Commit     string            `json:"commit" yaml:"commit"`
	BuildDate  string            `json:"build_date" yaml:"build_date"`
	GoVersion  string            `json:"go_version" yaml:"go_version"`
	Platform   string            `json:"platform" yaml:"platform"`
	Components map[string]string `json:"components" yaml:"components"`
}

// Get returns the build information
func Get() Info {
	return Info{
		Version:   Platform,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		Components: map[string]string{
			"grammar": Grammar,
			"lexer":   Lexer,
			"parser":  Parser,
			"history": History,
			"server":  Server,
		},
	}
}

// String returns a one-line summary
func (i Info) String() string {
	return fmt.Sprintf("llrec %s (commit %s, built %s, %s %s)", i.Version, i.Commit, i.BuildDate, i.GoVersion, i.Platform)
}
