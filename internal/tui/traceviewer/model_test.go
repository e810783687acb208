package traceviewer

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	lllog "github.com/msto63/llrec/foundation/core/log"
	"github.com/msto63/llrec/foundation/ll1"
	"github.com/msto63/llrec/foundation/ll1/lexer"
	"github.com/msto63/llrec/foundation/ll1/parser"
)

func newTestModel(t *testing.T, src string, lexOpts lexer.Options) Model {
	t.Helper()
	r, err := ll1.New(ll1.Options{Lexer: lexOpts, Logger: lllog.Discard()})
	if err != nil {
		t.Fatalf("ll1.New() error = %v", err)
	}

	m := New(Config{Recognizer: r, Source: src})
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m = update(t, m, m.lex())
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_StepThrough(t *testing.T) {
	m := newTestModel(t, "; $", lexer.Options{})

	if res := m.Result(); res == nil || res.State != parser.StateRunning || res.Steps != 0 {
		t.Fatalf("initial Result() = %+v", res)
	}
	if _, ok := m.Selected(); ok {
		t.Error("no event should be selected before the first step")
	}

	m = update(t, m, key("n"))
	ev, ok := m.Selected()
	if !ok || ev.Step != 1 || ev.Kind != parser.EventExpand || ev.Symbol != "S" {
		t.Errorf("after first step Selected() = %+v, %v", ev, ok)
	}

	m = update(t, m, key("G"))
	res := m.Result()
	if !res.Accepted() {
		t.Fatalf("run should be accepted, got %+v", res)
	}
	ev, _ = m.Selected()
	if ev.Kind != parser.EventAccept || ev.Step != res.Steps {
		t.Errorf("last Selected() = %+v", ev)
	}

	steps := res.Steps
	m = update(t, m, key("n"))
	if m.Result().Steps != steps {
		t.Error("stepping a finished run should not change it")
	}
}

func TestModel_Navigation(t *testing.T) {
	m := newTestModel(t, "print x ; $", lexer.Options{})
	m = update(t, m, key("G"))
	last, _ := m.Selected()

	m = update(t, m, key("p"))
	prev, _ := m.Selected()
	if prev.Step != last.Step-1 {
		t.Errorf("p selected step %d, want %d", prev.Step, last.Step-1)
	}

	m = update(t, m, key("g"))
	first, _ := m.Selected()
	if first.Step != 1 {
		t.Errorf("g selected step %d", first.Step)
	}

	// Moving before the first event stays there
	m = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if ev, _ := m.Selected(); ev.Step != 1 {
		t.Errorf("left selected step %d", ev.Step)
	}

	m = update(t, m, key("r"))
	if res := m.Result(); res.Steps != 0 || res.State != parser.StateRunning {
		t.Errorf("restart Result() = %+v", res)
	}
}

func TestModel_Autoplay(t *testing.T) {
	m := newTestModel(t, "; $", lexer.Options{})

	next, cmd := m.Update(key("a"))
	m = next.(Model)
	if !m.autoplay || cmd == nil {
		t.Fatal("a should start autoplay")
	}

	for i := 0; i < 20 && m.autoplay; i++ {
		m = update(t, m, tickMsg{})
	}
	if m.autoplay {
		t.Error("autoplay should stop when the run ends")
	}
	if !m.Result().Accepted() {
		t.Errorf("Result() = %+v", m.Result())
	}

	// Ticks after autoplay stopped are ignored
	steps := m.Result().Steps
	m = update(t, m, tickMsg{})
	if m.Result().Steps != steps {
		t.Error("tick after autoplay changed the run")
	}
}

func TestModel_View(t *testing.T) {
	m := newTestModel(t, "if ( x < 1 ) { print x ; $", lexer.Options{})
	m = update(t, m, key("G"))

	view := m.View()
	for _, want := range []string{Logo, "REJECTED", "Stack:", "reject", "Beenden"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestModel_LexError(t *testing.T) {
	m := newTestModel(t, "int a , b , c ; $", lexer.Options{MaxTokens: 3})

	if m.err == nil {
		t.Fatal("expected lex error")
	}
	if !strings.Contains(m.View(), "Fehler") {
		t.Errorf("View() = %q", m.View())
	}
	if m.Result() != nil {
		t.Error("no run should start after a lex error")
	}
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t, "$", lexer.Options{})

	for _, msg := range []tea.KeyMsg{key("q"), {Type: tea.KeyCtrlC}} {
		_, cmd := m.Update(msg)
		if cmd == nil {
			t.Fatalf("%v should quit", msg)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%v did not return tea.Quit", msg)
		}
	}
}
