// ============================================================================
// llrec - LL(1) Recognizer
// ============================================================================
//
// Package:     traceviewer
// Description: Bubbletea model stepping through a derivation
// Author:      msto63
// Created:     2026-10-16
// License:     MIT
// ============================================================================

package traceviewer

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/llrec/foundation/ll1"
	"github.com/msto63/llrec/foundation/ll1/lexer"
	"github.com/msto63/llrec/foundation/ll1/parser"
)

// Config holds trace viewer configuration
type Config struct {
	Recognizer *ll1.Recognizer
	Source     string
	// Interval is the autoplay delay between steps
	Interval time.Duration
}

// Model is the Bubbletea model of the trace viewer
type Model struct {
	// State
	width    int
	height   int
	ready    bool
	autoplay bool
	err      error

	// Components
	viewport viewport.Model

	// Parse state
	recognizer *ll1.Recognizer
	source     string
	interval   time.Duration
	tokens     []lexer.Token
	run        *parser.Run
	selected   int
}

// New creates a new trace viewer model
func New(cfg Config) Model {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 400 * time.Millisecond
	}
	return Model{
		recognizer: cfg.Recognizer,
		source:     cfg.Source,
		interval:   interval,
		selected:   -1,
	}
}

// Init lexes the source
func (m Model) Init() tea.Cmd {
	return m.lex
}

func (m Model) lex() tea.Msg {
	tokens, err := m.recognizer.Lexer().Tokenize(m.source)
	return lexedMsg{tokens: tokens, err: err}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 4 // Title panel
		footerHeight := 9 // Detail panel + help
		viewportHeight := msg.Height - headerHeight - footerHeight
		if viewportHeight < 3 {
			viewportHeight = 3
		}

		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, viewportHeight)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = viewportHeight
		}
		m.updateViewportContent()

	case lexedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.tokens = msg.tokens
		m.restart()

	case tickMsg:
		if !m.autoplay {
			return m, nil
		}
		if !m.step() {
			m.autoplay = false
			return m, nil
		}
		return m, m.tick()
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit

	case tea.KeyRight, tea.KeyEnter:
		m.step()
		return m, nil

	case tea.KeyLeft:
		m.selectEvent(m.selected - 1)
		return m, nil

	case tea.KeyRunes:
		switch string(msg.Runes) {
		case "q":
			return m, tea.Quit

		// Next step
		case "n", " ":
			m.step()
			return m, nil

		// Previous event
		case "p":
			m.selectEvent(m.selected - 1)
			return m, nil

		// First event
		case "g":
			m.selectEvent(0)
			return m, nil

		// Run to the end
		case "G":
			for m.step() {
			}
			return m, nil

		// Restart
		case "r":
			m.autoplay = false
			m.restart()
			return m, nil

		// Autoplay toggle
		case "a":
			if m.run == nil || m.run.State() != parser.StateRunning {
				return m, nil
			}
			m.autoplay = !m.autoplay
			if m.autoplay {
				return m, m.tick()
			}
			return m, nil
		}
	}

	return m, nil
}

// restart begins a fresh run over the lexed tokens
func (m *Model) restart() {
	terminals := make([]string, len(m.tokens))
	for i, tok := range m.tokens {
		terminals[i] = tok.Value
	}
	m.run = m.recognizer.Engine().Begin(terminals, nil)
	m.selected = len(m.events()) - 1
	m.updateViewportContent()
}

// step advances the run by one step and selects the new event. It reports
// whether the run is still going.
func (m *Model) step() bool {
	if m.run == nil {
		return false
	}
	running := m.run.Step()
	m.selected = len(m.events()) - 1
	m.updateViewportContent()
	return running
}

func (m *Model) selectEvent(i int) {
	n := len(m.events())
	if n == 0 {
		return
	}
	if i < 0 {
		i = 0
	}
	if i >= n {
		i = n - 1
	}
	m.selected = i
	m.updateViewportContent()
}

func (m Model) events() []parser.TraceEvent {
	if m.run == nil {
		return nil
	}
	return m.run.Result().Trace
}

// Selected returns the selected event
func (m Model) Selected() (parser.TraceEvent, bool) {
	events := m.events()
	if m.selected < 0 || m.selected >= len(events) {
		return parser.TraceEvent{}, false
	}
	return events[m.selected], true
}

// Result returns the outcome of the run so far
func (m Model) Result() *parser.Result {
	if m.run == nil {
		return nil
	}
	return m.run.Result()
}

// View renders the UI
func (m Model) View() string {
	if m.err != nil {
		return StateRejectedStyle.Render("Fehler: "+m.err.Error()) + "\n"
	}
	if !m.ready {
		return "Lade Trace..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(EventPanelStyle.Width(m.width - 2).Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(m.renderDetail())
	b.WriteString("\n")
	b.WriteString(m.renderHelpBar())
	return b.String()
}

func (m Model) renderHeader() string {
	logo := LogoStyle.Render(Logo)
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		logo,
		strings.Repeat(" ", 3),
		m.renderState(),
	)
	return TitlePanelStyle.Width(m.width - 4).Render(header)
}

func (m Model) renderState() string {
	res := m.Result()
	if res == nil {
		return StateRunningStyle.Render("bereit")
	}
	steps := fmt.Sprintf("  Schritt %d", res.Steps)
	switch res.State {
	case parser.StateAccepted:
		return StateAcceptedStyle.Render("ACCEPTED") + EventStepStyle.Render(steps)
	case parser.StateRejected:
		return StateRejectedStyle.Render("REJECTED") + EventStepStyle.Render(steps)
	default:
		label := "läuft"
		if m.autoplay {
			label = "Autoplay"
		}
		return StateRunningStyle.Render(label) + EventStepStyle.Render(steps)
	}
}

func (m Model) renderDetail() string {
	var stack, input, note string
	if ev, ok := m.Selected(); ok {
		stack = strings.Join(ev.Stack, " ")
		input = strings.Join(ev.Remaining, " ")
		note = ev.Error
	} else if m.run != nil {
		stack = strings.Join(m.run.Stack(), " ")
		input = strings.Join(m.run.Remaining(), " ")
	}

	lines := []string{
		DetailLabelStyle.Render("Stack:") + stack,
		DetailLabelStyle.Render("Eingabe:") + input,
	}
	if note != "" {
		lines = append(lines, DetailLabelStyle.Render("Fehler:")+StateRejectedStyle.Render(note))
	}
	return DetailPanelStyle.Width(m.width - 2).Render(strings.Join(lines, "\n"))
}

func (m Model) renderHelpBar() string {
	items := []string{
		RenderKeyHint("n", "Schritt"),
		RenderKeyHint("p", "Zurück"),
		RenderKeyHint("g/G", "Anfang/Ende"),
		RenderKeyHint("a", "Autoplay"),
		RenderKeyHint("r", "Neustart"),
		RenderKeyHint("q", "Beenden"),
	}
	return HelpStyle.Render(strings.Join(items, "  "))
}

// updateViewportContent renders the event list, keeping the selected
// event visible
func (m *Model) updateViewportContent() {
	if !m.ready {
		return
	}

	var content strings.Builder
	for i, ev := range m.events() {
		line := fmt.Sprintf("%s %s", EventStepStyle.Render(fmt.Sprintf("[%3d]", ev.Step)), describe(ev))
		if i == m.selected {
			line = SelectedEventStyle.Render(line)
		}
		content.WriteString(line)
		content.WriteString("\n")
	}
	m.viewport.SetContent(content.String())

	if m.selected >= 0 {
		if m.selected < m.viewport.YOffset {
			m.viewport.SetYOffset(m.selected)
		} else if m.selected >= m.viewport.YOffset+m.viewport.Height {
			m.viewport.SetYOffset(m.selected - m.viewport.Height + 1)
		}
	}
}

// describe renders the action of an event without stack and input
func describe(ev parser.TraceEvent) string {
	switch ev.Kind {
	case parser.EventMatch:
		return "match  " + ev.Symbol
	case parser.EventExpand:
		if ev.Epsilon {
			return "expand " + ev.Symbol + " -> ε"
		}
		return "expand " + ev.Symbol + " -> " + ev.Production
	case parser.EventReject:
		return "reject " + ev.Error
	default:
		return string(ev.Kind)
	}
}

// Run starts the trace viewer TUI
func Run(cfg Config) error {
	p := tea.NewProgram(New(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
