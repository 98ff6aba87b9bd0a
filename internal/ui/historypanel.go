package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/vidyasagar/tcalc/internal/calc"
	"github.com/vidyasagar/tcalc/internal/theme"
)

// rowKey identifies one rendered history row.
type rowKey struct {
	id       int64
	width    int
	selected bool
	focused  bool
	theme    string
	age      string
}

// HistoryPanel displays the calculation log with vim navigation.
type HistoryPanel struct {
	entries  []calc.Entry
	cursor   int
	offset   int // scroll offset for visible window
	width    int
	height   int
	visible  bool
	focused  bool
	lastGKey bool // for gg detection within the panel
	rows     *lru.Cache[rowKey, string]
	now      func() time.Time
}

// NewHistoryPanel creates a new history panel.
func NewHistoryPanel() HistoryPanel {
	// Room for every entry in a few width/selection variants.
	rows, _ := lru.New[rowKey, string](calc.MaxHistory * 4)
	return HistoryPanel{rows: rows, now: time.Now}
}

// SetEntries updates the entries displayed, keeping the cursor in range.
func (hp *HistoryPanel) SetEntries(entries []calc.Entry) {
	hp.entries = entries
	if hp.cursor >= len(entries) {
		hp.cursor = len(entries) - 1
	}
	if hp.cursor < 0 {
		hp.cursor = 0
	}
	hp.ensureVisible()
}

// Len returns the number of entries.
func (hp *HistoryPanel) Len() int {
	return len(hp.entries)
}

// SetSize updates the panel dimensions.
func (hp *HistoryPanel) SetSize(w, h int) {
	hp.width = w
	hp.height = h
	hp.ensureVisible()
}

// Show makes the panel visible.
func (hp *HistoryPanel) Show() {
	hp.visible = true
}

// Hide closes the panel.
func (hp *HistoryPanel) Hide() {
	hp.visible = false
	hp.focused = false
	hp.lastGKey = false
}

// IsVisible reports whether the panel is shown.
func (hp *HistoryPanel) IsVisible() bool {
	return hp.visible
}

// Toggle switches visibility.
func (hp *HistoryPanel) Toggle() {
	if hp.visible {
		hp.Hide()
	} else {
		hp.Show()
	}
}

// Focus moves keyboard focus into the panel, starting at the newest entry.
func (hp *HistoryPanel) Focus() {
	hp.visible = true
	hp.focused = true
	hp.GotoTop()
}

// Blur returns keyboard focus to the calculator.
func (hp *HistoryPanel) Blur() {
	hp.focused = false
	hp.lastGKey = false
}

// CursorUp moves the cursor up one entry.
func (hp *HistoryPanel) CursorUp() {
	hp.lastGKey = false
	if hp.cursor > 0 {
		hp.cursor--
		hp.ensureVisible()
	}
}

// CursorDown moves the cursor down one entry.
func (hp *HistoryPanel) CursorDown() {
	hp.lastGKey = false
	if hp.cursor < len(hp.entries)-1 {
		hp.cursor++
		hp.ensureVisible()
	}
}

// GotoTop moves to the first entry.
func (hp *HistoryPanel) GotoTop() {
	hp.lastGKey = false
	hp.cursor = 0
	hp.offset = 0
}

// GotoBottom moves to the last entry.
func (hp *HistoryPanel) GotoBottom() {
	hp.lastGKey = false
	if len(hp.entries) > 0 {
		hp.cursor = len(hp.entries) - 1
		hp.ensureVisible()
	}
}

// HalfPageDown scrolls down half a page.
func (hp *HistoryPanel) HalfPageDown() {
	hp.lastGKey = false
	hp.cursor = clamp(hp.cursor+hp.visibleCount()/2, 0, max(len(hp.entries)-1, 0))
	hp.ensureVisible()
}

// HalfPageUp scrolls up half a page.
func (hp *HistoryPanel) HalfPageUp() {
	hp.lastGKey = false
	hp.cursor = clamp(hp.cursor-hp.visibleCount()/2, 0, max(len(hp.entries)-1, 0))
	hp.ensureVisible()
}

// HandleGKey handles the "g" key for gg detection.
// Returns true if "gg" was completed (go to top).
func (hp *HistoryPanel) HandleGKey() bool {
	if hp.lastGKey {
		hp.GotoTop()
		return true
	}
	hp.lastGKey = true
	return false
}

// ResetGKey resets the g key state (called on any non-g key press).
func (hp *HistoryPanel) ResetGKey() {
	hp.lastGKey = false
}

// SelectedIndex returns the cursor index, or -1 when the panel is empty.
func (hp *HistoryPanel) SelectedIndex() int {
	if len(hp.entries) == 0 {
		return -1
	}
	return hp.cursor
}

// visibleCount returns how many entries fit in the visible area.
// Each entry takes 2 lines (expression + result) below a 2 line header,
// with one line kept for the footer hint.
func (hp *HistoryPanel) visibleCount() int {
	return max((hp.height-3)/2, 1)
}

// ensureVisible adjusts offset so the cursor is within the visible window.
func (hp *HistoryPanel) ensureVisible() {
	visible := hp.visibleCount()
	if hp.cursor < hp.offset {
		hp.offset = hp.cursor
	}
	if hp.cursor >= hp.offset+visible {
		hp.offset = hp.cursor - visible + 1
	}
	if hp.offset < 0 {
		hp.offset = 0
	}
}

// View renders the history panel.
func (hp *HistoryPanel) View() string {
	if !hp.visible {
		return ""
	}

	t := theme.Current

	panelStyle := lipgloss.NewStyle().
		Width(hp.width).
		Height(hp.height)

	titleColor := t.TextDim
	if hp.focused {
		titleColor = t.Primary
	}
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(titleColor).
		Background(t.Surface).
		Width(hp.width).
		Padding(0, 1)

	separatorStyle := lipgloss.NewStyle().
		Foreground(t.Border)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Padding(0, 1)

	var sb strings.Builder

	sb.WriteString(titleStyle.Render(fmt.Sprintf("History (%d)", len(hp.entries))))
	sb.WriteString("\n")
	sb.WriteString(separatorStyle.Render(strings.Repeat("─", max(hp.width, 1))))
	sb.WriteString("\n")

	if len(hp.entries) == 0 {
		sb.WriteString(dimStyle.Render("There's no history yet."))
		sb.WriteString("\n")
		return panelStyle.Render(sb.String())
	}

	visible := hp.visibleCount()
	end := min(hp.offset+visible, len(hp.entries))
	for i := hp.offset; i < end; i++ {
		sb.WriteString(hp.row(hp.entries[i], i == hp.cursor))
		sb.WriteString("\n")
	}

	if hp.focused {
		linesUsed := 2 + (end-hp.offset)*2
		for i := linesUsed; i < hp.height-1; i++ {
			sb.WriteString("\n")
		}
		hintStyle := lipgloss.NewStyle().
			Foreground(t.TextDim).
			Italic(true).
			Padding(0, 1)
		sb.WriteString(hintStyle.Render("j/k:move  Enter:use  D:clear  Esc:back"))
	}

	return panelStyle.Render(sb.String())
}

// row renders one entry, reusing the cached rendering when nothing that
// affects it has changed.
func (hp *HistoryPanel) row(e calc.Entry, selected bool) string {
	key := rowKey{
		id:       e.ID,
		width:    hp.width,
		selected: selected,
		focused:  hp.focused,
		theme:    theme.Current.Name,
		age:      timeAgo(hp.now().Sub(e.CreatedAt)),
	}
	if s, ok := hp.rows.Get(key); ok {
		return s
	}

	t := theme.Current
	exprStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Width(hp.width).
		Padding(0, 1).
		Align(lipgloss.Right)
	resultStyle := lipgloss.NewStyle().
		Foreground(t.Text).
		Bold(true).
		Width(hp.width).
		Padding(0, 1).
		Align(lipgloss.Right)

	if selected && hp.focused {
		exprStyle = exprStyle.Background(t.Selection)
		resultStyle = resultStyle.Background(t.Selection).Foreground(t.TextBright)
	}

	inner := max(hp.width-2, 4)
	expr := truncateLeft(e.Expression, inner)
	result := truncateLeft(calc.FormatDisplay(e.Result), max(inner-len(key.age)-2, 4))

	s := exprStyle.Render(expr) + "\n" + resultStyle.Render(key.age+"  "+result)
	hp.rows.Add(key, s)
	return s
}

// timeAgo returns a human-readable relative time string.
func timeAgo(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
