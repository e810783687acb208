// ============================================================================
// llrec - LL(1) Recognizer
// ============================================================================
//
// Package:     report
// Description: Styles for the console trace printer
// Author:      msto63
// Created:     2026-10-16
// License:     MIT
// ============================================================================

package report

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette, shared with the trace viewer
var (
	ColorPrimary   = lipgloss.Color("#8B5CF6") // Violet
	ColorSecondary = lipgloss.Color("#06B6D4") // Cyan
	ColorAccent    = lipgloss.Color("#F59E0B") // Amber
	ColorSuccess   = lipgloss.Color("#10B981") // Emerald
	ColorError     = lipgloss.Color("#EF4444") // Red
	ColorMuted     = lipgloss.Color("#6B7280") // Gray
	ColorText      = lipgloss.Color("#F8FAFC") // Slate 50
)

// Styles holds the styles used by the Printer
type Styles struct {
	Header     lipgloss.Style
	Step       lipgloss.Style
	Match      lipgloss.Style
	Expand     lipgloss.Style
	Epsilon    lipgloss.Style
	Label      lipgloss.Style
	Stack      lipgloss.Style
	Input      lipgloss.Style
	Accepted   lipgloss.Style
	Rejected   lipgloss.Style
	ErrorText  lipgloss.Style
	TokenValue lipgloss.Style
}

// DefaultStyles returns the colored styles
func DefaultStyles() Styles {
	return Styles{
		Header:     lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true),
		Step:       lipgloss.NewStyle().Foreground(ColorMuted),
		Match:      lipgloss.NewStyle().Foreground(ColorSuccess),
		Expand:     lipgloss.NewStyle().Foreground(ColorSecondary),
		Epsilon:    lipgloss.NewStyle().Foreground(ColorMuted).Italic(true),
		Label:      lipgloss.NewStyle().Foreground(ColorMuted),
		Stack:      lipgloss.NewStyle().Foreground(ColorAccent),
		Input:      lipgloss.NewStyle().Foreground(ColorText),
		Accepted:   lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true),
		Rejected:   lipgloss.NewStyle().Foreground(ColorError).Bold(true),
		ErrorText:  lipgloss.NewStyle().Foreground(ColorError),
		TokenValue: lipgloss.NewStyle().Foreground(ColorSecondary).Bold(true),
	}
}

// PlainStyles returns styles that render text unchanged
func PlainStyles() Styles {
	s := lipgloss.NewStyle()
	return Styles{
		Header: s, Step: s, Match: s, Expand: s, Epsilon: s, Label: s,
		Stack: s, Input: s, Accepted: s, Rejected: s, ErrorText: s, TokenValue: s,
	}
}
