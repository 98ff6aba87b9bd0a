package app

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vidyasagar/tcalc/internal/calc"
	"github.com/vidyasagar/tcalc/internal/storage"
	"github.com/vidyasagar/tcalc/internal/theme"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	t.Cleanup(func() { theme.Set("default") })

	m := New(Options{Session: &Session{Engine: calc.New()}, Log: zerolog.Nop()})
	m.copyText = func(string) error { return nil }
	return send(m, tea.WindowSizeMsg{Width: 100, Height: 40})
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func typed(s string) []tea.Msg {
	var msgs []tea.Msg
	for _, r := range s {
		msgs = append(msgs, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return msgs
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func TestTypingComputes(t *testing.T) {
	m := newTestModel(t)
	m = send(m, typed("7+3")...)
	m = send(m, enter)

	assert.Equal(t, "10", m.engine.MainDisplay())
	assert.Len(t, m.engine.History(), 1)
	assert.Equal(t, 1, m.historyPanel.Len())
	assert.Contains(t, m.View(), "7 + 3 =")
}

func TestPressFlashesButton(t *testing.T) {
	m := newTestModel(t)
	next, cmd := m.Update(typed("5")[0])
	require.NotNil(t, cmd)

	m = next.(Model)
	seq := m.flashSeq
	m = send(m, flashDoneMsg{seq: seq})
	assert.Equal(t, seq, m.flashSeq)
}

func TestKeypadCursorPress(t *testing.T) {
	m := newTestModel(t)
	// Cursor starts on "="; two left lands on "0".
	m = send(m, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyLeft})
	m = send(m, typed("4")...)
	m = send(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.Equal(t, "40", m.engine.MainDisplay())
}

func TestMouseClickPressesButton(t *testing.T) {
	m := newTestModel(t)
	// Row 2, column 0 is "7".
	click := tea.MouseMsg{
		X:      1,
		Y:      m.display.Height() + 2*3 + 1,
		Button: tea.MouseButtonLeft,
		Action: tea.MouseActionPress,
	}
	m = send(m, click)
	assert.Equal(t, "7", m.engine.MainDisplay())
}

func TestHistoryRecall(t *testing.T) {
	m := newTestModel(t)
	m = send(m, typed("7+3=2*4=")...)
	require.Len(t, m.engine.History(), 2)

	m = send(m, tab)
	assert.Equal(t, ModeHistory, m.mode)

	m = send(m, typed("j")...)
	m = send(m, enter)
	assert.Equal(t, ModeCalc, m.mode)
	assert.Equal(t, "10", m.engine.MainDisplay())
}

func TestClearHistoryNeedsConfirmation(t *testing.T) {
	m := newTestModel(t)
	m = send(m, typed("7+3=")...)

	m = send(m, tab)
	m = send(m, typed("D")...)
	assert.Equal(t, ModeConfirm, m.mode)
	m = send(m, typed("n")...)
	assert.Equal(t, ModeHistory, m.mode)
	assert.Len(t, m.engine.History(), 1)

	m = send(m, typed("D")...)
	m = send(m, typed("y")...)
	assert.Empty(t, m.engine.History())
	assert.Equal(t, "10", m.engine.MainDisplay())

	m = send(m, esc)
	assert.Equal(t, ModeCalc, m.mode)
}

func TestCommandKeySequence(t *testing.T) {
	m := newTestModel(t)
	m = send(m, typed(":")...)
	require.Equal(t, ModeCommand, m.mode)

	m = send(m, typed("6*7=")...)
	m = send(m, enter)
	assert.Equal(t, ModeCalc, m.mode)
	assert.Equal(t, "42", m.engine.MainDisplay())
}

func TestCommandErrors(t *testing.T) {
	m := newTestModel(t)
	m = send(m, typed(":7x")...)
	m = send(m, enter)
	assert.Contains(t, m.statusBar.Message(), `unknown key "x"`)

	m = send(m, typed(":theme nope")...)
	m = send(m, enter)
	assert.Contains(t, m.statusBar.Message(), "Unknown theme")
}

func TestCommandClearHistory(t *testing.T) {
	m := newTestModel(t)
	m = send(m, typed("1=:clear-history")...)
	m = send(m, enter)
	assert.Empty(t, m.engine.History())
}

func TestThemeCycle(t *testing.T) {
	m := newTestModel(t)
	want := theme.Next(theme.Current.Name)
	m = send(m, typed("t")...)
	assert.Equal(t, want, theme.Current.Name)
	assert.Contains(t, m.statusBar.Message(), want)
}

func TestCopyDisplay(t *testing.T) {
	m := newTestModel(t)
	var copied string
	m.copyText = func(s string) error {
		copied = s
		return nil
	}
	m = send(m, typed("12+30=y")...)
	assert.Equal(t, "42", copied)
	assert.Equal(t, "Copied 42", m.statusBar.Message())

	m.copyText = func(string) error { return errors.New("no clipboard") }
	m = send(m, typed("y")...)
	assert.Equal(t, "Clipboard unavailable", m.statusBar.Message())
}

func TestHelpOverlay(t *testing.T) {
	m := newTestModel(t)
	m = send(m, typed("?")...)
	assert.Equal(t, ModeHelp, m.mode)
	assert.Contains(t, m.View(), "press any key to dismiss")

	m = send(m, typed("5")...)
	assert.Equal(t, ModeCalc, m.mode)
	assert.Equal(t, "0", m.engine.MainDisplay())
}

func TestConfigReload(t *testing.T) {
	m := newTestModel(t)
	m = send(m, typed("1234567")...)
	assert.Contains(t, m.View(), "1,234,567")

	cfg := storage.DefaultConfig()
	cfg.GroupDigits = false
	cfg.ShowHistory = false
	cfg.Theme = "nord"
	m = send(m, ConfigReloadedMsg{Config: &cfg})

	assert.Contains(t, m.View(), "1234567")
	assert.False(t, m.historyPanel.IsVisible())
	assert.Equal(t, "nord", theme.Current.Name)
}

func TestSaveFailureShown(t *testing.T) {
	m := newTestModel(t)
	m = send(m, saveFailedMsg{err: errors.New("disk full")})
	assert.Contains(t, m.View(), "History not saved: disk full")
}

func TestQuit(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestSessionRestoresHistory(t *testing.T) {
	dir := t.TempDir()
	cfg := storage.DefaultConfig()

	s := OpenSession(&cfg, dir, zerolog.Nop())
	require.NotNil(t, s.DB)
	require.NotNil(t, s.Flusher)
	s.Engine.InputDigit('9')
	s.Engine.SquareRoot()
	s.Engine.Equals()
	s.Close()

	s = OpenSession(&cfg, dir, zerolog.Nop())
	defer s.Close()
	history := s.Engine.History()
	require.Len(t, history, 1)
	assert.Equal(t, "√(9) =", history[0].Expression)
	assert.Equal(t, "3", history[0].Result)
}

func TestSessionJSONBackend(t *testing.T) {
	dir := t.TempDir()
	cfg := storage.DefaultConfig()
	cfg.HistoryBackend = storage.BackendJSON

	s := OpenSession(&cfg, dir, zerolog.Nop())
	s.Engine.InputDigit('4')
	s.Engine.Equals()
	s.Close()

	assert.FileExists(t, dir+"/history.json")
}

func TestSessionInMemory(t *testing.T) {
	s := OpenSession(&storage.Config{}, "", zerolog.Nop())
	assert.Nil(t, s.DB)
	assert.Nil(t, s.Flusher)
	s.Engine.InputDigit('1')
	s.Close()
}
