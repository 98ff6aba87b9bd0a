package ui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/tcalc/internal/theme"
)

const helpMarkdown = `# Keys

| Key | Action |
|---|---|
| 0-9 | digit |
| . or , | decimal point |
| + - * / | operator |
| Enter or = | equals (repeat to reapply) |
| % | percentage |
| @ | square root |
| q | square |
| r | reciprocal |
| n or F9 | negate |
| Backspace | delete last digit |
| Delete | clear entry (CE) |
| Esc | clear (C) |

## Keypad

Arrow keys move the keypad cursor and Space presses the key under it.
Buttons can also be clicked.

## History

| Key | Action |
|---|---|
| Tab | focus history |
| j / k | move |
| gg / G | first / last |
| Enter | use result |
| D | clear history |
| h | show or hide the panel |

## App

| Key | Action |
|---|---|
| : | type keys or a command |
| y | copy the display |
| t | next theme |
| ? | this help |
| Ctrl+C | quit |

## Commands

| Command | Action |
|---|---|
| :12*3= | press a key sequence |
| :theme name | switch theme |
| :clear-history | clear history |
| :quit | quit |
`

// HelpPanel renders the key reference as a centered overlay.
type HelpPanel struct {
	visible bool
	width   int
	height  int
}

// Cached glamour renderer; View runs on copies of the model so the cache
// lives at package level.
var (
	helpRenderer      *glamour.TermRenderer
	helpRendererStyle string
	helpRendererWidth int
	helpRendererMu    sync.Mutex
)

// NewHelpPanel creates a hidden help panel.
func NewHelpPanel() HelpPanel {
	return HelpPanel{}
}

// Show makes the panel visible.
func (hp *HelpPanel) Show() {
	hp.visible = true
}

// Hide closes the panel.
func (hp *HelpPanel) Hide() {
	hp.visible = false
}

// IsVisible reports whether the panel is shown.
func (hp *HelpPanel) IsVisible() bool {
	return hp.visible
}

// SetSize sets the available area for rendering.
func (hp *HelpPanel) SetSize(w, h int) {
	hp.width = w
	hp.height = h
}

// View renders the help as a popup box.
func (hp *HelpPanel) View() string {
	if !hp.visible {
		return ""
	}

	t := theme.Current
	wrap := min(max(hp.width-8, 20), 72)

	body, err := renderMarkdown(helpMarkdown, t.Glamour, wrap)
	if err != nil {
		body = helpMarkdown
	}
	body = strings.Trim(body, "\n")
	if hp.height > 6 {
		lines := strings.Split(body, "\n")
		if len(lines) > hp.height-6 {
			body = strings.Join(lines[:hp.height-6], "\n")
		}
	}

	footer := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Italic(true).
		Render("press any key to dismiss")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(0, 1)

	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Center, body, footer))
}

// renderMarkdown reuses the glamour renderer until the style or width changes.
func renderMarkdown(md, style string, width int) (string, error) {
	helpRendererMu.Lock()
	defer helpRendererMu.Unlock()

	if helpRenderer == nil || helpRendererStyle != style || helpRendererWidth != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return "", err
		}
		helpRenderer = r
		helpRendererStyle = style
		helpRendererWidth = width
	}
	return helpRenderer.Render(md)
}
