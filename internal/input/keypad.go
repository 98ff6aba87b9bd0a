package input

import "github.com/vidyasagar/tcalc/internal/calc"

// ButtonKind groups keypad buttons for styling.
type ButtonKind int

const (
	ButtonDigit ButtonKind = iota
	ButtonFunction
	ButtonOperator
	ButtonClear
	ButtonEquals
)

// Button is one keypad key.
type Button struct {
	Label string
	Kind  ButtonKind
	Event calc.Event
}

const (
	KeypadRows = 6
	KeypadCols = 4
)

// Keypad is the button grid, top row first.
var Keypad = [KeypadRows][KeypadCols]Button{
	{
		{"%", ButtonFunction, calc.Simple(calc.EventPercent)},
		{"CE", ButtonClear, calc.Simple(calc.EventClearEntry)},
		{"C", ButtonClear, calc.Simple(calc.EventClear)},
		{"⌫", ButtonClear, calc.Simple(calc.EventBackspace)},
	},
	{
		{"1/x", ButtonFunction, calc.Simple(calc.EventReciprocal)},
		{"x²", ButtonFunction, calc.Simple(calc.EventSquare)},
		{"√", ButtonFunction, calc.Simple(calc.EventSquareRoot)},
		{"÷", ButtonOperator, calc.Op(calc.OpDivide)},
	},
	{
		digitButton('7'), digitButton('8'), digitButton('9'),
		{"×", ButtonOperator, calc.Op(calc.OpMultiply)},
	},
	{
		digitButton('4'), digitButton('5'), digitButton('6'),
		{"−", ButtonOperator, calc.Op(calc.OpSubtract)},
	},
	{
		digitButton('1'), digitButton('2'), digitButton('3'),
		{"+", ButtonOperator, calc.Op(calc.OpAdd)},
	},
	{
		{"±", ButtonFunction, calc.Simple(calc.EventNegate)},
		digitButton('0'),
		{".", ButtonDigit, calc.Simple(calc.EventDecimal)},
		{"=", ButtonEquals, calc.Simple(calc.EventEquals)},
	},
}

func digitButton(d rune) Button {
	return Button{Label: string(d), Kind: ButtonDigit, Event: calc.Digit(d)}
}

// ButtonFor returns the keypad position that produces ev, so a key press can
// be echoed on the keypad.
func ButtonFor(ev calc.Event) (row, col int, ok bool) {
	for r := range Keypad {
		for c, b := range Keypad[r] {
			if b.Event == ev {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}
