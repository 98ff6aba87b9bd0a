// Package input translates keys, key sequences and keypad buttons into
// calculator events. It holds no calculation logic.
package input

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/vidyasagar/tcalc/internal/calc"
)

// keyEvents maps terminal key names (as reported by bubbletea) to events.
// Letters follow the Windows calculator shortcuts: @ for √, q for x²,
// r for 1/x and F9 for ±.
var keyEvents = map[string]calc.Event{
	".":         calc.Simple(calc.EventDecimal),
	",":         calc.Simple(calc.EventDecimal),
	"+":         calc.Op(calc.OpAdd),
	"-":         calc.Op(calc.OpSubtract),
	"*":         calc.Op(calc.OpMultiply),
	"/":         calc.Op(calc.OpDivide),
	"=":         calc.Simple(calc.EventEquals),
	"enter":     calc.Simple(calc.EventEquals),
	"%":         calc.Simple(calc.EventPercent),
	"@":         calc.Simple(calc.EventSquareRoot),
	"q":         calc.Simple(calc.EventSquare),
	"r":         calc.Simple(calc.EventReciprocal),
	"n":         calc.Simple(calc.EventNegate),
	"f9":        calc.Simple(calc.EventNegate),
	"backspace": calc.Simple(calc.EventBackspace),
	"delete":    calc.Simple(calc.EventClearEntry),
	"esc":       calc.Simple(calc.EventClear),
}

// glyphEvents covers the symbols printed on the keypad, so a sequence can be
// written the way it reads on screen.
var glyphEvents = map[rune]calc.Event{
	'×': calc.Op(calc.OpMultiply),
	'÷': calc.Op(calc.OpDivide),
	'−': calc.Op(calc.OpSubtract),
	'√': calc.Simple(calc.EventSquareRoot),
	'²': calc.Simple(calc.EventSquare),
	'±': calc.Simple(calc.EventNegate),
}

// wordEvents are the named tokens accepted by Parse.
var wordEvents = map[string]calc.Event{
	"sqrt":       calc.Simple(calc.EventSquareRoot),
	"sqr":        calc.Simple(calc.EventSquare),
	"square":     calc.Simple(calc.EventSquare),
	"x²":         calc.Simple(calc.EventSquare),
	"recip":      calc.Simple(calc.EventReciprocal),
	"reciprocal": calc.Simple(calc.EventReciprocal),
	"1/x":        calc.Simple(calc.EventReciprocal),
	"negate":     calc.Simple(calc.EventNegate),
	"neg":        calc.Simple(calc.EventNegate),
	"percent":    calc.Simple(calc.EventPercent),
	"equals":     calc.Simple(calc.EventEquals),
	"enter":      calc.Simple(calc.EventEquals),
	"back":       calc.Simple(calc.EventBackspace),
	"backspace":  calc.Simple(calc.EventBackspace),
	"ce":         calc.Simple(calc.EventClearEntry),
	"c":          calc.Simple(calc.EventClear),
	"clear":      calc.Simple(calc.EventClear),
	"esc":        calc.Simple(calc.EventClear),
	"add":        calc.Op(calc.OpAdd),
	"plus":       calc.Op(calc.OpAdd),
	"sub":        calc.Op(calc.OpSubtract),
	"minus":      calc.Op(calc.OpSubtract),
	"mul":        calc.Op(calc.OpMultiply),
	"times":      calc.Op(calc.OpMultiply),
	"div":        calc.Op(calc.OpDivide),
}

// FromKey returns the event bound to a terminal key name.
func FromKey(k string) (calc.Event, bool) {
	if len(k) == 1 && k[0] >= '0' && k[0] <= '9' {
		return calc.Digit(rune(k[0])), true
	}
	ev, ok := keyEvents[k]
	return ev, ok
}

// Parse turns a textual key sequence into events. Tokens are separated by
// whitespace; a token is either a named key ("sqrt", "ce", "negate") or a
// run of single-character keys ("7+3=").
func Parse(seq string) ([]calc.Event, error) {
	var events []calc.Event
	for _, tok := range strings.Fields(seq) {
		if ev, ok := wordEvents[strings.ToLower(tok)]; ok {
			events = append(events, ev)
			continue
		}
		for _, r := range tok {
			ev, ok := runeEvent(r)
			if !ok {
				return nil, fmt.Errorf("unknown key %q in %q", string(r), tok)
			}
			events = append(events, ev)
		}
	}
	return events, nil
}

func runeEvent(r rune) (calc.Event, bool) {
	if ev, ok := glyphEvents[r]; ok {
		return ev, true
	}
	return FromKey(string(unicode.ToLower(r)))
}
