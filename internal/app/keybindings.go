package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the application keybindings. Calculator keys themselves
// are mapped by the input package.
type KeyMap struct {
	// Keypad cursor
	Left  key.Binding
	Right key.Binding
	Up    key.Binding
	Down  key.Binding
	Press key.Binding

	// History panel
	HistoryFocus  key.Binding
	HistoryToggle key.Binding
	ScrollDown    key.Binding
	ScrollUp      key.Binding
	HalfPageDown  key.Binding
	HalfPageUp    key.Binding
	GotoTop       key.Binding
	GotoBottom    key.Binding
	Recall        key.Binding
	ClearHistory  key.Binding
	Back          key.Binding

	// Actions
	Quit        key.Binding
	Help        key.Binding
	Theme       key.Binding
	Copy        key.Binding
	CommandMode key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←/→/↑/↓", "keypad cursor"),
		),
		Right: key.NewBinding(key.WithKeys("right")),
		Up:    key.NewBinding(key.WithKeys("up")),
		Down:  key.NewBinding(key.WithKeys("down")),
		Press: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "press key"),
		),
		HistoryFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "history"),
		),
		HistoryToggle: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "toggle history"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "next"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "previous"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("Ctrl+d", "half page down"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("Ctrl+u", "half page up"),
		),
		GotoTop: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("gg", "newest"),
		),
		GotoBottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "oldest"),
		),
		Recall: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "use result"),
		),
		ClearHistory: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "clear history"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "tab"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "theme"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy"),
		),
		CommandMode: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "command"),
		),
	}
}

// ShortHelp implements help.KeyMap for the calculator footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.HistoryFocus, k.Theme, k.Copy, k.CommandMode, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Press},
		{k.HistoryFocus, k.HistoryToggle, k.ClearHistory},
		{k.Theme, k.Copy, k.CommandMode, k.Help, k.Quit},
	}
}

// historyKeys is the footer shown while the history panel has focus.
type historyKeys struct{ KeyMap }

func (h historyKeys) ShortHelp() []key.Binding {
	return []key.Binding{h.ScrollDown, h.ScrollUp, h.Recall, h.ClearHistory, h.Back}
}

func (h historyKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}
