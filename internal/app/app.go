package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/vidyasagar/tcalc/internal/calc"
	"github.com/vidyasagar/tcalc/internal/input"
	"github.com/vidyasagar/tcalc/internal/storage"
	"github.com/vidyasagar/tcalc/internal/theme"
	"github.com/vidyasagar/tcalc/internal/ui"
)

// Mode represents the current input mode.
type Mode int

const (
	ModeCalc    Mode = iota
	ModeHistory      // history panel focused
	ModeConfirm      // waiting for y/n before clearing history
	ModeHelp         // help overlay shown
	ModeCommand      // ":" prompt active
)

const flashDuration = 120 * time.Millisecond

// Model is the top-level bubbletea model for tcalc.
type Model struct {
	// UI components
	display      ui.Display
	keypad       ui.Keypad
	historyPanel ui.HistoryPanel
	statusBar    ui.StatusBar
	helpPanel    ui.HelpPanel
	commandBar   ui.CommandBar
	footer       help.Model

	engine   *calc.Engine
	db       *storage.DB
	flusher  *storage.Flusher
	config   *storage.Config
	log      zerolog.Logger
	copyText func(string) error

	keys     KeyMap
	mode     Mode
	width    int
	height   int
	ready    bool
	flashSeq int
}

// Options carries the collaborators a Model is built from.
type Options struct {
	Session *Session
	Config  *storage.Config
	Log     zerolog.Logger
}

// ConfigReloadedMsg delivers a config file change to the running program.
type ConfigReloadedMsg struct {
	Config *storage.Config
}

// flashDoneMsg ends the pressed-button highlight started with seq.
type flashDoneMsg struct{ seq int }

// saveFailedMsg reports a history write that did not reach storage.
type saveFailedMsg struct{ err error }

// New creates a new tcalc Model.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		def := storage.DefaultConfig()
		cfg = &def
	}
	sess := opts.Session
	if sess == nil {
		sess = &Session{Engine: calc.New()}
	}

	m := Model{
		display:      ui.NewDisplay(),
		keypad:       ui.NewKeypad(),
		historyPanel: ui.NewHistoryPanel(),
		statusBar:    ui.NewStatusBar(),
		helpPanel:    ui.NewHelpPanel(),
		commandBar:   ui.NewCommandBar(),
		footer:       help.New(),
		engine:       sess.Engine,
		db:           sess.DB,
		flusher:      sess.Flusher,
		config:       cfg,
		log:          opts.Log,
		copyText:     clipboard.WriteAll,
		keys:         DefaultKeyMap(),
		mode:         ModeCalc,
	}

	m.display.SetGroupDigits(cfg.GroupDigits)
	if cfg.ShowHistory {
		m.historyPanel.Show()
	}
	m.syncEngine()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.waitForSaveError()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case flashDoneMsg:
		if msg.seq == m.flashSeq {
			m.keypad.ClearFlash()
		}
		return m, nil

	case saveFailedMsg:
		m.statusBar.SetError("History not saved: " + msg.err.Error())
		return m, m.waitForSaveError()

	case ConfigReloadedMsg:
		return m.applyConfig(msg.Config)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	if m.mode == ModeCommand {
		_, cmd := m.commandBar.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "\n  Loading tcalc..."
	}

	// Layout:
	// [display | history panel]
	// [keypad  |              ]
	// [footer]
	// [status bar]
	// [command bar] (if active)

	calcColumn := lipgloss.JoinVertical(lipgloss.Left,
		m.display.View(m.engine.State()),
		m.keypad.View(),
	)

	body := calcColumn
	if m.panelShown() {
		t := theme.Current
		dividerStyle := lipgloss.NewStyle().Foreground(t.Border)
		divider := dividerStyle.Render(strings.TrimSuffix(strings.Repeat("│\n", m.contentHeight()), "\n"))
		body = lipgloss.JoinHorizontal(lipgloss.Top, calcColumn, divider, m.historyPanel.View())
	}

	sections := []string{
		lipgloss.NewStyle().Height(m.contentHeight()).Render(body),
		m.footerView(),
		m.statusBar.View(),
	}
	if m.commandBar.IsActive() {
		sections = append(sections, m.commandBar.View())
	}

	result := lipgloss.JoinVertical(lipgloss.Left, sections...)

	if m.helpPanel.IsVisible() {
		result = lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.helpPanel.View(),
			lipgloss.WithWhitespaceChars(" "),
			lipgloss.WithWhitespaceForeground(theme.Current.Background),
		)
	}

	return result
}

func (m Model) footerView() string {
	if m.mode == ModeHistory {
		return m.footer.View(historyKeys{m.keys})
	}
	return m.footer.View(m.keys)
}

// contentHeight is the space left for the calculator and history panel.
func (m *Model) contentHeight() int {
	h := m.height - 2 // footer + status bar
	if m.commandBar.IsActive() {
		h--
	}
	return max(h, 1)
}

// calcWidth is the width of the display and keypad column.
func (m *Model) calcWidth() int {
	return m.keypad.Width()
}

// panelShown reports whether the history panel fits next to the keypad.
func (m *Model) panelShown() bool {
	return m.historyPanel.IsVisible() && m.width-m.calcWidth()-1 >= 20
}

// layout recalculates dimensions for all components.
func (m *Model) layout() {
	m.statusBar.SetWidth(m.width)
	m.commandBar.SetWidth(m.width)
	m.footer.Width = m.width
	m.helpPanel.SetSize(m.width, m.height)

	m.keypad.SetWidth(min(m.width, 48))
	m.display.SetWidth(m.calcWidth())
	m.historyPanel.SetSize(m.width-m.calcWidth()-1, m.contentHeight())
}

// handleKeyMsg processes key events based on current mode.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	switch m.mode {
	case ModeHelp:
		m.helpPanel.Hide()
		m.setMode(ModeCalc)
		return m, nil
	case ModeConfirm:
		return m.handleConfirmMode(msg)
	case ModeHistory:
		return m.handleHistoryMode(msg)
	case ModeCommand:
		return m.handleCommandMode(msg)
	default:
		return m.handleCalcMode(msg)
	}
}

// handleCalcMode processes keys while the calculator has focus.
func (m Model) handleCalcMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.statusBar.ClearMessage()
	m.keypad.SetFocused(true)

	switch {
	case key.Matches(msg, m.keys.Help):
		m.helpPanel.Show()
		m.setMode(ModeHelp)
		return m, nil

	case key.Matches(msg, m.keys.HistoryFocus):
		m.historyPanel.Focus()
		m.setMode(ModeHistory)
		m.layout()
		return m, nil

	case key.Matches(msg, m.keys.HistoryToggle):
		m.historyPanel.Toggle()
		m.layout()
		return m, nil

	case key.Matches(msg, m.keys.Theme):
		return m.setTheme(theme.Next(theme.Current.Name))

	case key.Matches(msg, m.keys.Copy):
		return m.copyDisplay()

	case key.Matches(msg, m.keys.CommandMode):
		m.setMode(ModeCommand)
		cmd := m.commandBar.Open()
		m.layout()
		return m, cmd

	case key.Matches(msg, m.keys.Left):
		m.keypad.MoveCursor(0, -1)
		return m, nil
	case key.Matches(msg, m.keys.Right):
		m.keypad.MoveCursor(0, 1)
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.keypad.MoveCursor(-1, 0)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.keypad.MoveCursor(1, 0)
		return m, nil

	case key.Matches(msg, m.keys.Press):
		return m.press(m.keypad.Selected().Event)
	}

	if ev, ok := input.FromKey(msg.String()); ok {
		return m.press(ev)
	}
	return m, nil
}

// handleHistoryMode processes keys while the history panel has focus.
func (m Model) handleHistoryMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !key.Matches(msg, m.keys.GotoTop) {
		m.historyPanel.ResetGKey()
	}

	switch {
	case key.Matches(msg, m.keys.ScrollDown):
		m.historyPanel.CursorDown()
	case key.Matches(msg, m.keys.ScrollUp):
		m.historyPanel.CursorUp()
	case key.Matches(msg, m.keys.GotoTop):
		m.historyPanel.HandleGKey()
	case key.Matches(msg, m.keys.GotoBottom):
		m.historyPanel.GotoBottom()
	case key.Matches(msg, m.keys.HalfPageDown):
		m.historyPanel.HalfPageDown()
	case key.Matches(msg, m.keys.HalfPageUp):
		m.historyPanel.HalfPageUp()

	case key.Matches(msg, m.keys.Recall):
		if idx := m.historyPanel.SelectedIndex(); idx >= 0 {
			m.engine.Recall(idx)
			m.syncEngine()
		}
		m.leaveHistory()

	case key.Matches(msg, m.keys.ClearHistory):
		if m.historyPanel.Len() > 0 {
			m.setMode(ModeConfirm)
			m.statusBar.SetMessage("Clear all history? (y/n)")
		}

	case key.Matches(msg, m.keys.Back):
		m.leaveHistory()
	}
	return m, nil
}

func (m *Model) leaveHistory() {
	m.historyPanel.Blur()
	if !m.config.ShowHistory {
		m.historyPanel.Hide()
	}
	m.setMode(ModeCalc)
	m.layout()
}

// handleConfirmMode waits for the answer to the clear-history prompt.
func (m Model) handleConfirmMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.setMode(ModeHistory)
	if msg.String() == "y" || msg.String() == "Y" {
		m.engine.ClearHistory()
		m.syncEngine()
		m.statusBar.SetMessage("History cleared")
		m.log.Info().Msg("history cleared")
		return m, nil
	}
	m.statusBar.SetMessage("Cancelled")
	return m, nil
}

// handleCommandMode forwards keys to the ":" prompt.
func (m Model) handleCommandMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		val := m.commandBar.Submit()
		m.setMode(ModeCalc)
		m.layout()
		return m.executeCommand(val)
	}

	_, cmd := m.commandBar.Update(msg)
	if !m.commandBar.IsActive() {
		m.setMode(ModeCalc)
		m.layout()
	}
	return m, cmd
}

// executeCommand runs a ":" line: a named command or a key sequence.
func (m Model) executeCommand(line string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return m, nil
	}

	switch fields[0] {
	case "quit", "q":
		return m, tea.Quit
	case "help":
		m.helpPanel.Show()
		m.setMode(ModeHelp)
		return m, nil
	case "theme":
		if len(fields) < 2 {
			m.statusBar.SetMessage("Themes: " + strings.Join(theme.List(), ", "))
			return m, nil
		}
		return m.setTheme(fields[1])
	case "clear-history", "clearhistory":
		m.engine.ClearHistory()
		m.syncEngine()
		m.statusBar.SetMessage("History cleared")
		return m, nil
	case "copy":
		return m.copyDisplay()
	}

	events, err := input.Parse(line)
	if err != nil {
		m.statusBar.SetError(err.Error())
		return m, nil
	}
	for _, ev := range events {
		m.engine.Apply(ev)
	}
	m.syncEngine()
	return m, nil
}

// handleMouse presses keypad buttons on click and scrolls the history panel
// with the wheel.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode != ModeCalc && m.mode != ModeHistory {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if m.panelShown() {
			m.historyPanel.CursorUp()
		}
		return m, nil
	case tea.MouseButtonWheelDown:
		if m.panelShown() {
			m.historyPanel.CursorDown()
		}
		return m, nil
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
		row, col, ok := m.keypad.HitTest(msg.X, msg.Y-m.display.Height())
		if !ok {
			return m, nil
		}
		if m.mode == ModeHistory {
			m.leaveHistory()
		}
		return m.press(input.Keypad[row][col].Event)
	}
	return m, nil
}

// press runs one event through the engine and flashes its keypad button.
func (m Model) press(ev calc.Event) (tea.Model, tea.Cmd) {
	m.engine.Apply(ev)
	m.syncEngine()
	m.log.Debug().Stringer("event", ev).Str("display", m.engine.MainDisplay()).Msg("key")

	row, col, ok := input.ButtonFor(ev)
	if !ok {
		return m, nil
	}
	m.flashSeq++
	seq := m.flashSeq
	m.keypad.Flash(row, col)
	return m, tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return flashDoneMsg{seq: seq}
	})
}

// setTheme switches theme and remembers the choice.
func (m Model) setTheme(name string) (tea.Model, tea.Cmd) {
	if !theme.Set(name) {
		m.statusBar.SetError(fmt.Sprintf("Unknown theme: %s", name))
		return m, nil
	}
	if m.db != nil {
		if err := m.db.SaveThemePreference(name); err != nil {
			m.log.Warn().Err(err).Str("theme", name).Msg("saving theme")
		}
	}
	m.statusBar.SetMessage(fmt.Sprintf("Theme: %s", name))
	return m, nil
}

func (m Model) copyDisplay() (tea.Model, tea.Cmd) {
	text := m.engine.MainDisplay()
	if err := m.copyText(text); err != nil {
		m.log.Warn().Err(err).Msg("copying to clipboard")
		m.statusBar.SetError("Clipboard unavailable")
		return m, nil
	}
	m.statusBar.SetMessage("Copied " + text)
	return m, nil
}

// applyConfig takes over display settings from a reloaded config file.
func (m Model) applyConfig(cfg *storage.Config) (tea.Model, tea.Cmd) {
	if cfg == nil {
		return m, nil
	}
	if cfg.Theme != m.config.Theme {
		theme.Set(cfg.Theme)
	}
	m.display.SetGroupDigits(cfg.GroupDigits)
	if cfg.ShowHistory != m.config.ShowHistory && m.mode != ModeHistory {
		if cfg.ShowHistory {
			m.historyPanel.Show()
		} else {
			m.historyPanel.Hide()
		}
	}
	m.config = cfg
	m.layout()
	m.statusBar.SetMessage("Config reloaded")
	return m, nil
}

// waitForSaveError blocks until the flusher reports a failed write.
func (m Model) waitForSaveError() tea.Cmd {
	if m.flusher == nil {
		return nil
	}
	errs := m.flusher.Errors()
	return func() tea.Msg {
		err, ok := <-errs
		if !ok {
			return nil
		}
		return saveFailedMsg{err: err}
	}
}

// syncEngine copies engine state into the panel and status bar.
func (m *Model) syncEngine() {
	entries := m.engine.History()
	m.historyPanel.SetEntries(entries)
	m.statusBar.SetHistoryCount(len(entries))
	m.statusBar.SetPending(m.engine.State().PendingOperator.Symbol())
}

func (m *Model) setMode(mode Mode) {
	m.mode = mode
	m.keypad.SetFocused(mode == ModeCalc)
	switch mode {
	case ModeHistory:
		m.statusBar.SetMode(ui.ModeHistory)
	case ModeConfirm:
		m.statusBar.SetMode(ui.ModeConfirm)
	case ModeHelp:
		m.statusBar.SetMode(ui.ModeHelp)
	default:
		m.statusBar.SetMode(ui.ModeCalc)
	}
}
