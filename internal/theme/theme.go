package theme

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color palette for the calculator.
type Theme struct {
	Name string

	// Core colors
	Primary lipgloss.Color
	Accent  lipgloss.Color

	// Text colors
	Text       lipgloss.Color
	TextDim    lipgloss.Color
	TextBright lipgloss.Color

	// UI element colors
	Background  lipgloss.Color
	Surface     lipgloss.Color
	Border      lipgloss.Color
	BorderFocus lipgloss.Color
	Selection   lipgloss.Color

	// Keypad
	DigitKey    lipgloss.Color
	FunctionKey lipgloss.Color
	OperatorKey lipgloss.Color
	EqualsKey   lipgloss.Color
	EqualsText  lipgloss.Color
	Pressed     lipgloss.Color

	// Semantic colors
	Error   lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Info    lipgloss.Color

	// Glamour is the glamour style used for the help overlay.
	Glamour string
}

var themes = map[string]Theme{
	"default":    Default,
	"light":      Light,
	"gruvbox":    Gruvbox,
	"catppuccin": Catppuccin,
	"nord":       Nord,
	"dracula":    Dracula,
	"tokyonight": TokyoNight,
}

var Default = Theme{
	Name:        "default",
	Primary:     lipgloss.Color("#7C3AED"),
	Accent:      lipgloss.Color("#F59E0B"),
	Text:        lipgloss.Color("#E2E8F0"),
	TextDim:     lipgloss.Color("#64748B"),
	TextBright:  lipgloss.Color("#F8FAFC"),
	Background:  lipgloss.Color("#0F172A"),
	Surface:     lipgloss.Color("#1E293B"),
	Border:      lipgloss.Color("#334155"),
	BorderFocus: lipgloss.Color("#7C3AED"),
	Selection:   lipgloss.Color("#334155"),
	DigitKey:    lipgloss.Color("#1E293B"),
	FunctionKey: lipgloss.Color("#06B6D4"),
	OperatorKey: lipgloss.Color("#A78BFA"),
	EqualsKey:   lipgloss.Color("#7C3AED"),
	EqualsText:  lipgloss.Color("#F8FAFC"),
	Pressed:     lipgloss.Color("#F59E0B"),
	Error:       lipgloss.Color("#EF4444"),
	Success:     lipgloss.Color("#22C55E"),
	Warning:     lipgloss.Color("#F59E0B"),
	Info:        lipgloss.Color("#3B82F6"),
	Glamour:     "dark",
}

var Light = Theme{
	Name:        "light",
	Primary:     lipgloss.Color("#0067C0"),
	Accent:      lipgloss.Color("#C2410C"),
	Text:        lipgloss.Color("#1F2937"),
	TextDim:     lipgloss.Color("#6B7280"),
	TextBright:  lipgloss.Color("#000000"),
	Background:  lipgloss.Color("#F3F3F3"),
	Surface:     lipgloss.Color("#FFFFFF"),
	Border:      lipgloss.Color("#D1D5DB"),
	BorderFocus: lipgloss.Color("#0067C0"),
	Selection:   lipgloss.Color("#DBEAFE"),
	DigitKey:    lipgloss.Color("#FFFFFF"),
	FunctionKey: lipgloss.Color("#374151"),
	OperatorKey: lipgloss.Color("#0067C0"),
	EqualsKey:   lipgloss.Color("#0067C0"),
	EqualsText:  lipgloss.Color("#FFFFFF"),
	Pressed:     lipgloss.Color("#C2410C"),
	Error:       lipgloss.Color("#DC2626"),
	Success:     lipgloss.Color("#15803D"),
	Warning:     lipgloss.Color("#B45309"),
	Info:        lipgloss.Color("#1D4ED8"),
	Glamour:     "light",
}

var Gruvbox = Theme{
	Name:        "gruvbox",
	Primary:     lipgloss.Color("#D65D0E"),
	Accent:      lipgloss.Color("#D79921"),
	Text:        lipgloss.Color("#EBDBB2"),
	TextDim:     lipgloss.Color("#928374"),
	TextBright:  lipgloss.Color("#FBF1C7"),
	Background:  lipgloss.Color("#282828"),
	Surface:     lipgloss.Color("#3C3836"),
	Border:      lipgloss.Color("#504945"),
	BorderFocus: lipgloss.Color("#D65D0E"),
	Selection:   lipgloss.Color("#504945"),
	DigitKey:    lipgloss.Color("#3C3836"),
	FunctionKey: lipgloss.Color("#458588"),
	OperatorKey: lipgloss.Color("#FABD2F"),
	EqualsKey:   lipgloss.Color("#D65D0E"),
	EqualsText:  lipgloss.Color("#FBF1C7"),
	Pressed:     lipgloss.Color("#B8BB26"),
	Error:       lipgloss.Color("#FB4934"),
	Success:     lipgloss.Color("#B8BB26"),
	Warning:     lipgloss.Color("#FABD2F"),
	Info:        lipgloss.Color("#83A598"),
	Glamour:     "dark",
}

var Catppuccin = Theme{
	Name:        "catppuccin",
	Primary:     lipgloss.Color("#CBA6F7"),
	Accent:      lipgloss.Color("#F9E2AF"),
	Text:        lipgloss.Color("#CDD6F4"),
	TextDim:     lipgloss.Color("#6C7086"),
	TextBright:  lipgloss.Color("#F5E0DC"),
	Background:  lipgloss.Color("#1E1E2E"),
	Surface:     lipgloss.Color("#313244"),
	Border:      lipgloss.Color("#45475A"),
	BorderFocus: lipgloss.Color("#CBA6F7"),
	Selection:   lipgloss.Color("#45475A"),
	DigitKey:    lipgloss.Color("#313244"),
	FunctionKey: lipgloss.Color("#89DCEB"),
	OperatorKey: lipgloss.Color("#F5C2E7"),
	EqualsKey:   lipgloss.Color("#CBA6F7"),
	EqualsText:  lipgloss.Color("#1E1E2E"),
	Pressed:     lipgloss.Color("#F9E2AF"),
	Error:       lipgloss.Color("#F38BA8"),
	Success:     lipgloss.Color("#A6E3A1"),
	Warning:     lipgloss.Color("#F9E2AF"),
	Info:        lipgloss.Color("#89B4FA"),
	Glamour:     "dark",
}

var Nord = Theme{
	Name:        "nord",
	Primary:     lipgloss.Color("#88C0D0"),
	Accent:      lipgloss.Color("#EBCB8B"),
	Text:        lipgloss.Color("#ECEFF4"),
	TextDim:     lipgloss.Color("#4C566A"),
	TextBright:  lipgloss.Color("#ECEFF4"),
	Background:  lipgloss.Color("#2E3440"),
	Surface:     lipgloss.Color("#3B4252"),
	Border:      lipgloss.Color("#434C5E"),
	BorderFocus: lipgloss.Color("#88C0D0"),
	Selection:   lipgloss.Color("#434C5E"),
	DigitKey:    lipgloss.Color("#3B4252"),
	FunctionKey: lipgloss.Color("#81A1C1"),
	OperatorKey: lipgloss.Color("#B48EAD"),
	EqualsKey:   lipgloss.Color("#5E81AC"),
	EqualsText:  lipgloss.Color("#ECEFF4"),
	Pressed:     lipgloss.Color("#EBCB8B"),
	Error:       lipgloss.Color("#BF616A"),
	Success:     lipgloss.Color("#A3BE8C"),
	Warning:     lipgloss.Color("#EBCB8B"),
	Info:        lipgloss.Color("#5E81AC"),
	Glamour:     "dark",
}

var Dracula = Theme{
	Name:        "dracula",
	Primary:     lipgloss.Color("#BD93F9"),
	Accent:      lipgloss.Color("#F1FA8C"),
	Text:        lipgloss.Color("#F8F8F2"),
	TextDim:     lipgloss.Color("#6272A4"),
	TextBright:  lipgloss.Color("#F8F8F2"),
	Background:  lipgloss.Color("#282A36"),
	Surface:     lipgloss.Color("#44475A"),
	Border:      lipgloss.Color("#6272A4"),
	BorderFocus: lipgloss.Color("#BD93F9"),
	Selection:   lipgloss.Color("#44475A"),
	DigitKey:    lipgloss.Color("#44475A"),
	FunctionKey: lipgloss.Color("#8BE9FD"),
	OperatorKey: lipgloss.Color("#FF79C6"),
	EqualsKey:   lipgloss.Color("#BD93F9"),
	EqualsText:  lipgloss.Color("#282A36"),
	Pressed:     lipgloss.Color("#50FA7B"),
	Error:       lipgloss.Color("#FF5555"),
	Success:     lipgloss.Color("#50FA7B"),
	Warning:     lipgloss.Color("#F1FA8C"),
	Info:        lipgloss.Color("#8BE9FD"),
	Glamour:     "dracula",
}

var TokyoNight = Theme{
	Name:        "tokyonight",
	Primary:     lipgloss.Color("#7AA2F7"),
	Accent:      lipgloss.Color("#E0AF68"),
	Text:        lipgloss.Color("#C0CAF5"),
	TextDim:     lipgloss.Color("#565F89"),
	TextBright:  lipgloss.Color("#C0CAF5"),
	Background:  lipgloss.Color("#1A1B26"),
	Surface:     lipgloss.Color("#24283B"),
	Border:      lipgloss.Color("#3B4261"),
	BorderFocus: lipgloss.Color("#7AA2F7"),
	Selection:   lipgloss.Color("#3B4261"),
	DigitKey:    lipgloss.Color("#24283B"),
	FunctionKey: lipgloss.Color("#7DCFFF"),
	OperatorKey: lipgloss.Color("#BB9AF7"),
	EqualsKey:   lipgloss.Color("#7AA2F7"),
	EqualsText:  lipgloss.Color("#1A1B26"),
	Pressed:     lipgloss.Color("#9ECE6A"),
	Error:       lipgloss.Color("#F7768E"),
	Success:     lipgloss.Color("#9ECE6A"),
	Warning:     lipgloss.Color("#E0AF68"),
	Info:        lipgloss.Color("#7AA2F7"),
	Glamour:     "tokyo-night",
}

// Current is the active theme.
var Current = Default

// Set changes the active theme by name.
func Set(name string) bool {
	if t, ok := themes[name]; ok {
		Current = t
		return true
	}
	return false
}

// List returns all available theme names in a stable order.
func List() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Next returns the theme name that follows name in List order, wrapping
// around. Unknown names yield the first theme.
func Next(name string) string {
	names := List()
	for i, n := range names {
		if n == name {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}
