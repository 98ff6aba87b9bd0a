package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/tcalc/internal/calc"
	"github.com/vidyasagar/tcalc/internal/theme"
)

// Status bar modes.
const (
	ModeCalc    = "CALC"
	ModeHistory = "HISTORY"
	ModeConfirm = "CONFIRM"
	ModeHelp    = "HELP"
)

// StatusBar shows the mode, a transient message and session counters at the
// bottom of the screen.
type StatusBar struct {
	mode    string
	width   int
	message string // temporary status message
	isError bool
	entries int
	pending string
}

// NewStatusBar creates a new status bar.
func NewStatusBar() StatusBar {
	return StatusBar{
		mode: ModeCalc,
	}
}

// SetWidth sets the status bar width.
func (s *StatusBar) SetWidth(w int) {
	s.width = w
}

// SetMode sets the current mode indicator.
func (s *StatusBar) SetMode(mode string) {
	s.mode = mode
}

// Mode returns the current mode indicator.
func (s *StatusBar) Mode() string {
	return s.mode
}

// SetMessage sets a temporary status message.
func (s *StatusBar) SetMessage(msg string) {
	s.message = msg
	s.isError = false
}

// SetError sets a temporary message shown in the error color.
func (s *StatusBar) SetError(msg string) {
	s.message = msg
	s.isError = true
}

// ClearMessage removes the temporary message.
func (s *StatusBar) ClearMessage() {
	s.message = ""
	s.isError = false
}

// Message returns the temporary message.
func (s *StatusBar) Message() string {
	return s.message
}

// SetHistoryCount sets the number of logged calculations.
func (s *StatusBar) SetHistoryCount(n int) {
	s.entries = n
}

// SetPending shows the pending operator symbol, "" for none.
func (s *StatusBar) SetPending(symbol string) {
	s.pending = symbol
}

// View renders the status bar.
func (s *StatusBar) View() string {
	t := theme.Current

	modeStyle := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Foreground(t.Background)

	switch s.mode {
	case ModeCalc:
		modeStyle = modeStyle.Background(t.Primary)
	case ModeHistory:
		modeStyle = modeStyle.Background(t.FunctionKey)
	case ModeConfirm:
		modeStyle = modeStyle.Background(t.Warning)
	default:
		modeStyle = modeStyle.Background(t.Accent)
	}
	mode := modeStyle.Render(s.mode)

	barStyle := lipgloss.NewStyle().
		Foreground(t.Text).
		Background(t.Surface)

	var left string
	if s.message != "" {
		color := t.Info
		if s.isError {
			color = t.Error
		}
		msgStyle := lipgloss.NewStyle().
			Foreground(color).
			Background(t.Surface).
			Padding(0, 1)
		left = msgStyle.Render(s.message)
	}

	rightStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface).
		Padding(0, 1)

	var right string
	if s.pending != "" {
		right += rightStyle.Render("pending " + s.pending)
	}
	right += rightStyle.Render(fmt.Sprintf("%d/%d", s.entries, calc.MaxHistory))
	right += rightStyle.Render(t.Name)

	spacerWidth := max(s.width-lipgloss.Width(mode)-lipgloss.Width(left)-lipgloss.Width(right), 0)
	spacer := lipgloss.NewStyle().
		Background(t.Surface).
		Render(fmt.Sprintf("%*s", spacerWidth, ""))

	return barStyle.Render(mode + left + spacer + right)
}
