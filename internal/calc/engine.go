// Package calc implements the immediate-execution calculator: a single state
// machine that turns discrete key intents into a main display, an expression
// trace and an append-only calculation log.
package calc

import (
	"slices"
	"time"
)

// Engine owns the state of one calculator session. It is not safe for
// concurrent use; each session gets its own Engine.
type Engine struct {
	state     State
	now       func() time.Time
	onHistory func([]Entry)
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the time source used for history timestamps and ids.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithHistory seeds the log with previously persisted entries.
func WithHistory(entries []Entry) Option {
	return func(e *Engine) {
		e.state.History = normalizeHistory(entries)
		for _, h := range e.state.History {
			if h.ID > e.state.lastID {
				e.state.lastID = h.ID
			}
		}
	}
}

// WithHistoryListener registers fn to receive the full log after every
// history mutation. fn owns the slice it receives.
func WithHistoryListener(fn func([]Entry)) Option {
	return func(e *Engine) {
		e.onHistory = fn
	}
}

// New creates an engine in the initial state.
func New(opts ...Option) *Engine {
	e := &Engine{
		state: NewState(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Apply runs one event through the state machine and returns the new state.
func (e *Engine) Apply(ev Event) State {
	rev := e.state.historyRev
	e.state = e.state.Apply(ev, e.now())
	if e.state.historyRev != rev && e.onHistory != nil {
		e.onHistory(e.History())
	}
	return e.state
}

// State returns a snapshot of the session.
func (e *Engine) State() State {
	return e.state
}

// MainDisplay returns the main display text (ungrouped).
func (e *Engine) MainDisplay() string {
	return e.state.MainDisplay
}

// ExpressionTrace returns the small expression line.
func (e *Engine) ExpressionTrace() string {
	return e.state.ExpressionTrace
}

// HasError reports whether the engine shows an error.
func (e *Engine) HasError() bool {
	return e.state.HasError()
}

// ErrKind returns the current error kind, NoError when none.
func (e *Engine) ErrKind() ErrorKind {
	return e.state.Err
}

// History returns a copy of the log, most recent first.
func (e *Engine) History() []Entry {
	return slices.Clone(e.state.History)
}

func (e *Engine) InputDigit(d rune) { e.Apply(Digit(d)) }
func (e *Engine) InputDecimal() { e.Apply(Simple(EventDecimal)) }
func (e *Engine) Backspace() { e.Apply(Simple(EventBackspace)) }
func (e *Engine) ClearEntry() { e.Apply(Simple(EventClearEntry)) }
func (e *Engine) Clear() { e.Apply(Simple(EventClear)) }
func (e *Engine) Negate() { e.Apply(Simple(EventNegate)) }
func (e *Engine) Percentage() { e.Apply(Simple(EventPercent)) }
func (e *Engine) SquareRoot() { e.Apply(Simple(EventSquareRoot)) }
func (e *Engine) Square() { e.Apply(Simple(EventSquare)) }
func (e *Engine) Reciprocal() { e.Apply(Simple(EventReciprocal)) }
func (e *Engine) SetOperator(op Operator) { e.Apply(Op(op)) }
func (e *Engine) Equals() { e.Apply(Simple(EventEquals)) }
func (e *Engine) ClearHistory() { e.Apply(Simple(EventClearHistory)) }
func (e *Engine) Recall(i int) { e.Apply(Recall(i)) }
