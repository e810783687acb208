// ============================================================================
// llrec - LL(1) Recognizer
// ============================================================================
//
// Package:     traceviewer
// Description: Styles for the trace viewer TUI
// Author:      msto63
// Created:     2026-10-16
// License:     MIT
// ============================================================================

package traceviewer

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/llrec/internal/report"
)

var (
	ColorDimmed  = lipgloss.Color("#374151") // Dark Gray
	ColorBgPanel = lipgloss.Color("#1E293B") // Slate 800
	ColorBgSel   = lipgloss.Color("#3B0764") // Purple 950
	ColorTextDim = lipgloss.Color("#64748B") // Slate 500
)

// Panel styles
var (
	TitlePanelStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(report.ColorPrimary).
			Padding(0, 2)

	LogoStyle = lipgloss.NewStyle().
			Foreground(report.ColorPrimary).
			Bold(true)

	EventPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDimmed).
			Padding(0, 1)

	DetailPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(report.ColorPrimary).
				Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
			Background(ColorBgPanel).
			Foreground(report.ColorText).
			Padding(0, 1)
)

// Event styles
var (
	SelectedEventStyle = lipgloss.NewStyle().
				Background(ColorBgSel).
				Bold(true)

	EventStepStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)

	DetailLabelStyle = lipgloss.NewStyle().
				Foreground(report.ColorMuted).
				Width(9)
)

// Verdict styles
var (
	StateRunningStyle = lipgloss.NewStyle().
				Foreground(report.ColorAccent).
				Bold(true)

	StateAcceptedStyle = lipgloss.NewStyle().
				Foreground(report.ColorSuccess).
				Bold(true)

	StateRejectedStyle = lipgloss.NewStyle().
				Foreground(report.ColorError).
				Bold(true)
)

// Help styles
var (
	HelpStyle = lipgloss.NewStyle().
			Foreground(report.ColorMuted).
			MarginTop(1)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(report.ColorPrimary).
			Bold(true)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(report.ColorMuted)
)

// Logo
const Logo = "llrec Trace"

// RenderKeyHint renders a keyboard shortcut hint
func RenderKeyHint(key, description string) string {
	return HelpKeyStyle.Render(key) + " " + HelpDescStyle.Render(description)
}
