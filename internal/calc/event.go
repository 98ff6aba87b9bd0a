package calc

import "fmt"

// EventKind enumerates the discrete user intents the engine accepts.
type EventKind int

const (
	EventDigit EventKind = iota
	EventDecimal
	EventOperator
	EventEquals
	EventPercent
	EventSquareRoot
	EventSquare
	EventReciprocal
	EventNegate
	EventBackspace
	EventClearEntry
	EventClear
	EventClearHistory
	EventRecall
)

var eventNames = map[EventKind]string{
	EventDigit:        "digit",
	EventDecimal:      "decimal",
	EventOperator:     "operator",
	EventEquals:       "equals",
	EventPercent:      "percent",
	EventSquareRoot:   "sqrt",
	EventSquare:       "square",
	EventReciprocal:   "reciprocal",
	EventNegate:       "negate",
	EventBackspace:    "backspace",
	EventClearEntry:   "clear-entry",
	EventClear:        "clear",
	EventClearHistory: "clear-history",
	EventRecall:       "recall",
}

func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return fmt.Sprintf("event(%d)", int(k))
}

// Event is a single user intent. Digit is set for EventDigit, Operator for
// EventOperator and Index for EventRecall.
type Event struct {
	Kind     EventKind
	Digit    rune
	Operator Operator
	Index    int
}

func (e Event) String() string {
	switch e.Kind {
	case EventDigit:
		return fmt.Sprintf("digit(%c)", e.Digit)
	case EventOperator:
		return "operator(" + e.Operator.String() + ")"
	case EventRecall:
		return fmt.Sprintf("recall(%d)", e.Index)
	}
	return e.Kind.String()
}

// Digit returns a digit event.
func Digit(d rune) Event { return Event{Kind: EventDigit, Digit: d} }

// Op returns an operator event.
func Op(o Operator) Event { return Event{Kind: EventOperator, Operator: o} }

// Recall returns a history recall event for the entry at index i.
func Recall(i int) Event { return Event{Kind: EventRecall, Index: i} }

// Simple returns an event that carries no payload.
func Simple(k EventKind) Event { return Event{Kind: k} }
