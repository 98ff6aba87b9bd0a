package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/tcalc/internal/calc"
	"github.com/vidyasagar/tcalc/internal/theme"
)

// Display renders the expression trace above the main display.
type Display struct {
	width       int
	groupDigits bool
}

// NewDisplay creates a display with digit grouping on.
func NewDisplay() Display {
	return Display{groupDigits: true}
}

// SetWidth sets the display width.
func (d *Display) SetWidth(w int) {
	d.width = w
}

// SetGroupDigits toggles thousands separators in the main display.
func (d *Display) SetGroupDigits(on bool) {
	d.groupDigits = on
}

// Height is the number of lines View produces.
func (d *Display) Height() int {
	return 4
}

// View renders the two display lines for st inside a bordered box.
func (d *Display) View(st calc.State) string {
	t := theme.Current
	inner := d.width - 4
	if inner < 10 {
		inner = 10
	}

	traceStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Width(inner).
		Align(lipgloss.Right)

	mainStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.TextBright).
		Width(inner).
		Align(lipgloss.Right)

	main := st.MainDisplay
	if st.HasError() {
		mainStyle = mainStyle.Foreground(t.Error)
	} else if d.groupDigits {
		main = calc.FormatDisplay(main)
	}

	trace := truncateLeft(st.ExpressionTrace, inner)
	main = truncateLeft(main, inner)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)

	return box.Render(lipgloss.JoinVertical(lipgloss.Right,
		traceStyle.Render(trace),
		mainStyle.Render(main),
	))
}

// truncateLeft keeps the rightmost n cells of s, marking the cut with "…".
func truncateLeft(s string, n int) string {
	r := []rune(s)
	if len(r) <= n || n < 2 {
		return s
	}
	return "…" + string(r[len(r)-n+1:])
}
