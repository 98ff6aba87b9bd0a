package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/tcalc/internal/input"
	"github.com/vidyasagar/tcalc/internal/theme"
)

const (
	keyHeight = 3 // lines per button
	keyGap    = 1 // columns between buttons
	minKeyW   = 5
	maxKeyW   = 11
)

// Keypad renders the button grid and tracks the keyboard cursor and the
// briefly highlighted button.
type Keypad struct {
	keyWidth  int
	cursorRow int
	cursorCol int
	flashRow  int
	flashCol  int
	flashing  bool
	focused   bool
}

// NewKeypad creates a keypad with the cursor on "=".
func NewKeypad() Keypad {
	return Keypad{
		keyWidth:  7,
		cursorRow: input.KeypadRows - 1,
		cursorCol: input.KeypadCols - 1,
	}
}

// SetWidth fits the buttons into w columns.
func (k *Keypad) SetWidth(w int) {
	kw := (w - keyGap*(input.KeypadCols-1)) / input.KeypadCols
	if kw < minKeyW {
		kw = minKeyW
	}
	if kw > maxKeyW {
		kw = maxKeyW
	}
	k.keyWidth = kw
}

// Width returns the rendered width of the grid.
func (k *Keypad) Width() int {
	return k.keyWidth*input.KeypadCols + keyGap*(input.KeypadCols-1)
}

// Height returns the rendered height of the grid.
func (k *Keypad) Height() int {
	return keyHeight * input.KeypadRows
}

// SetFocused shows or hides the keyboard cursor.
func (k *Keypad) SetFocused(on bool) {
	k.focused = on
}

// MoveCursor moves the cursor by dr rows and dc columns, clamped to the grid.
func (k *Keypad) MoveCursor(dr, dc int) {
	k.cursorRow = clamp(k.cursorRow+dr, 0, input.KeypadRows-1)
	k.cursorCol = clamp(k.cursorCol+dc, 0, input.KeypadCols-1)
}

// Selected returns the button under the cursor.
func (k *Keypad) Selected() input.Button {
	return input.Keypad[k.cursorRow][k.cursorCol]
}

// Cursor returns the cursor position.
func (k *Keypad) Cursor() (row, col int) {
	return k.cursorRow, k.cursorCol
}

// Flash highlights the button at row, col until ClearFlash.
func (k *Keypad) Flash(row, col int) {
	k.flashRow, k.flashCol = row, col
	k.flashing = true
}

// ClearFlash removes the highlight.
func (k *Keypad) ClearFlash() {
	k.flashing = false
}

// HitTest maps a cell relative to the keypad's top-left corner to a button.
// Clicks on the gaps between buttons miss.
func (k *Keypad) HitTest(x, y int) (row, col int, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	span := k.keyWidth + keyGap
	col = x / span
	if x%span >= k.keyWidth {
		return 0, 0, false
	}
	row = y / keyHeight
	if row >= input.KeypadRows || col >= input.KeypadCols {
		return 0, 0, false
	}
	return row, col, true
}

// View renders the grid.
func (k *Keypad) View() string {
	rows := make([]string, 0, input.KeypadRows)
	gap := strings.Repeat(" ", keyGap)
	for r, row := range input.Keypad {
		cells := make([]string, 0, input.KeypadCols*2-1)
		for c, b := range row {
			if c > 0 {
				cells = append(cells, gap)
			}
			cells = append(cells, k.button(r, c, b))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (k *Keypad) button(r, c int, b input.Button) string {
	t := theme.Current
	style := lipgloss.NewStyle().
		Width(k.keyWidth).
		Height(keyHeight).
		Align(lipgloss.Center, lipgloss.Center)

	switch b.Kind {
	case input.ButtonDigit:
		style = style.Foreground(t.TextBright).Background(t.DigitKey).Bold(true)
	case input.ButtonOperator:
		style = style.Foreground(t.OperatorKey).Background(t.Surface).Bold(true)
	case input.ButtonEquals:
		style = style.Foreground(t.EqualsText).Background(t.EqualsKey).Bold(true)
	case input.ButtonClear:
		style = style.Foreground(t.Accent).Background(t.Surface)
	default:
		style = style.Foreground(t.FunctionKey).Background(t.Surface)
	}

	if k.flashing && r == k.flashRow && c == k.flashCol {
		style = style.Foreground(t.Background).Background(t.Pressed)
	} else if k.focused && r == k.cursorRow && c == k.cursorCol {
		style = style.Underline(true).Background(t.Selection)
	}
	return style.Render(b.Label)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
