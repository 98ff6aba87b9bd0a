package calc

import (
	"errors"
	"strings"
	"time"
)

// State is the complete record of one calculator session.
//
// Transitions replace slices rather than modifying them in place, so a State
// returned by Apply shares no mutable memory with the State it came from.
type State struct {
	// MainDisplay is the literal text of the current entry or last result.
	// It is the operand source for every operation; it is never re-derived
	// from a float. While Err is set it holds the error message.
	MainDisplay string

	Accumulator      float64
	PendingOperator  Operator
	AwaitingNewEntry bool

	// LastOperator and LastOperand drive repeated equals.
	LastOperator   Operator
	LastOperand    float64
	HasLastOperand bool

	ExpressionTrace string
	ExpressionTerms []string

	// PendingFunctionNotation is the live function expression, e.g. sqr(5).
	// A following function wraps it instead of the numeric result.
	PendingFunctionNotation string

	Err ErrorKind

	// History is most-recent-first and never longer than MaxHistory.
	History []Entry

	settled    settledResult
	lastID     int64
	historyRev uint64
}

// settledResult is a standalone function result waiting to be logged once
// the user moves on to a new entry.
type settledResult struct {
	expression string
	result     string
}

// NewState returns the initial session state.
func NewState() State {
	return State{MainDisplay: "0"}
}

// HasError reports whether the state is in the error display.
func (s State) HasError() bool {
	return s.Err != NoError
}

// Apply returns the state that results from ev occurring at time at.
// The receiver is left untouched.
func (s State) Apply(ev Event, at time.Time) State {
	next := s
	next.step(ev, at)
	return next
}

func (s *State) step(ev Event, at time.Time) {
	switch ev.Kind {
	case EventDigit:
		s.inputDigit(ev.Digit, at)
	case EventDecimal:
		s.inputDecimal(at)
	case EventOperator:
		s.setOperator(ev.Operator, at)
	case EventEquals:
		s.equals(at)
	case EventPercent:
		s.percentage()
	case EventSquareRoot:
		s.applyFunction(fnSquareRoot)
	case EventSquare:
		s.applyFunction(fnSquare)
	case EventReciprocal:
		s.applyFunction(fnReciprocal)
	case EventNegate:
		s.applyFunction(fnNegate)
	case EventBackspace:
		s.backspace()
	case EventClearEntry:
		s.clearEntry()
	case EventClear:
		s.reset()
	case EventClearHistory:
		s.clearHistory()
	case EventRecall:
		s.recall(ev.Index)
	}
}

// reset restores every default except the history log.
func (s *State) reset() {
	*s = State{
		MainDisplay: "0",
		History:     s.History,
		lastID:      s.lastID,
		historyRev:  s.historyRev,
	}
}

func (s *State) fail(kind ErrorKind) {
	s.Err = kind
	s.MainDisplay = kind.Message()
	s.ExpressionTrace = ""
	s.ExpressionTerms = nil
	s.PendingOperator = OpNone
	s.PendingFunctionNotation = ""
	s.settled = settledResult{}
}

// completed reports whether the trace shows a finished expression.
func (s *State) completed() bool {
	return strings.Contains(s.ExpressionTrace, "=")
}

// clearExpression drops the finished expression before a new entry starts.
func (s *State) clearExpression() {
	s.ExpressionTrace = ""
	s.ExpressionTerms = nil
	s.Accumulator = 0
	s.PendingOperator = OpNone
	s.LastOperator = OpNone
	s.LastOperand = 0
	s.HasLastOperand = false
	s.PendingFunctionNotation = ""
	s.settled = settledResult{}
}

// leftSide is the committed left part of the trace.
func (s *State) leftSide() string {
	if len(s.ExpressionTerms) > 0 {
		return strings.Join(s.ExpressionTerms, " ")
	}
	return formatNumber(s.Accumulator)
}

// operandText is what the trace and history show for the current operand.
func (s *State) operandText() string {
	if s.PendingFunctionNotation != "" {
		return s.PendingFunctionNotation
	}
	return s.MainDisplay
}

// pendingTrace is the trace while an operand is being typed.
func (s *State) pendingTrace() string {
	if s.PendingOperator == OpNone {
		return ""
	}
	return s.leftSide() + " " + s.PendingOperator.Symbol()
}

// beginEntry starts a fresh operand after a result or operator. A settled
// standalone function result is logged first.
func (s *State) beginEntry(text string, at time.Time) {
	if s.settled.expression != "" {
		s.appendHistory(s.settled.expression, s.settled.result, at)
		s.settled = settledResult{}
	}
	if s.PendingFunctionNotation != "" || s.PendingOperator == OpNone {
		s.ExpressionTrace = s.pendingTrace()
	}
	s.PendingFunctionNotation = ""
	s.MainDisplay = text
	s.AwaitingNewEntry = false
}

func (s *State) inputDigit(d rune, at time.Time) {
	if d < '0' || d > '9' {
		return
	}
	if s.HasError() {
		s.reset()
	}

	digit := string(d)
	if s.completed() {
		s.clearExpression()
		s.MainDisplay = digit
		s.AwaitingNewEntry = false
		return
	}
	if s.AwaitingNewEntry {
		s.beginEntry(digit, at)
		return
	}

	switch {
	case s.MainDisplay == "0":
		s.MainDisplay = digit
	case len(s.MainDisplay) < MaxInputLength:
		s.MainDisplay += digit
	case strings.HasPrefix(s.MainDisplay, "0.") && len(s.MainDisplay) < maxFractionInputLength:
		s.MainDisplay += digit
	}
}

func (s *State) inputDecimal(at time.Time) {
	if s.HasError() {
		s.reset()
	}

	if s.completed() {
		s.clearExpression()
		s.MainDisplay = "0."
		s.AwaitingNewEntry = false
		return
	}
	if s.AwaitingNewEntry {
		s.beginEntry("0.", at)
		return
	}
	if !strings.Contains(s.MainDisplay, ".") {
		s.MainDisplay += "."
	}
}

func (s *State) backspace() {
	if s.AwaitingNewEntry || s.HasError() {
		return
	}
	if len(s.MainDisplay) <= 1 {
		s.MainDisplay = "0"
		return
	}
	trimmed := s.MainDisplay[:len(s.MainDisplay)-1]
	if trimmed == "-" {
		trimmed = "0"
	}
	s.MainDisplay = trimmed
}

func (s *State) clearEntry() {
	s.MainDisplay = "0"
	s.Err = NoError
	s.PendingFunctionNotation = ""
	s.settled = settledResult{}
}

func (s *State) applyFunction(f function) {
	if s.HasError() {
		if f == fnNegate {
			return
		}
		s.reset()
	}

	operand := s.MainDisplay
	r, kind := f.eval(ParseNumber(operand))
	if kind != NoError {
		s.fail(kind)
		return
	}
	text, err := FormatResult(r)
	if err != nil {
		s.fail(Overflow)
		return
	}

	inner := operand
	if s.PendingFunctionNotation != "" {
		inner = s.PendingFunctionNotation
	}
	notation := f.wrap(inner)

	if s.PendingOperator != OpNone {
		s.ExpressionTrace = s.leftSide() + " " + s.PendingOperator.Symbol() + " " + notation
		s.settled = settledResult{}
	} else {
		s.ExpressionTrace = notation
		s.settled = settledResult{expression: notation + " =", result: text}
	}

	s.PendingFunctionNotation = notation
	s.MainDisplay = text
	s.AwaitingNewEntry = true
}

func (s *State) percentage() {
	if s.HasError() {
		return
	}

	v := ParseNumber(s.MainDisplay)
	var r float64
	switch s.PendingOperator {
	case OpMultiply, OpDivide:
		r = v / 100
	default:
		r = s.Accumulator * (v / 100)
	}

	text, err := FormatResult(r)
	if err != nil {
		s.fail(Overflow)
		return
	}

	s.PendingFunctionNotation = ""
	s.settled = settledResult{}
	s.MainDisplay = text

	if s.PendingOperator == OpNone {
		s.Accumulator = ParseNumber(text)
		s.ExpressionTerms = nil
		s.ExpressionTrace = text
		s.AwaitingNewEntry = true
		return
	}

	s.ExpressionTrace = s.leftSide() + " " + s.PendingOperator.Symbol() + " " + text
	// The percentage is a fresh operand: the next operator commits it.
	s.AwaitingNewEntry = false
}

func (s *State) setOperator(op Operator, at time.Time) {
	if s.HasError() || op == OpNone {
		return
	}

	operandText := s.operandText()
	value := ParseNumber(s.MainDisplay)
	hasOperand := !s.AwaitingNewEntry || s.PendingFunctionNotation != ""

	if s.PendingOperator != OpNone && hasOperand {
		expression := s.leftSide() + " " + s.PendingOperator.Symbol() + " " + operandText + " ="
		result, err := s.PendingOperator.Apply(s.Accumulator, value)
		if err != nil {
			s.fail(errorKind(err))
			return
		}
		s.appendHistory(expression, result, at)
		s.MainDisplay = result
		s.Accumulator = ParseNumber(result)
		s.ExpressionTerms = []string{result}
	} else {
		s.Accumulator = value
		s.ExpressionTerms = []string{operandText}
	}

	s.PendingFunctionNotation = ""
	s.settled = settledResult{}
	s.PendingOperator = op
	s.AwaitingNewEntry = true
	s.LastOperator = op
	s.LastOperand = 0
	s.HasLastOperand = false
	s.ExpressionTrace = s.leftSide() + " " + op.Symbol()
}

func (s *State) equals(at time.Time) {
	if s.HasError() {
		return
	}
	defer func() { s.AwaitingNewEntry = true }()

	switch {
	case s.PendingOperator == OpNone && !s.completed():
		expression := s.operandText() + " ="
		s.ExpressionTrace = expression
		s.ExpressionTerms = nil
		s.PendingFunctionNotation = ""
		s.settled = settledResult{}
		s.appendHistory(expression, s.MainDisplay, at)

	case s.AwaitingNewEntry && s.LastOperator != OpNone && s.HasLastOperand:
		expression := s.MainDisplay + " " + s.LastOperator.Symbol() + " " + formatNumber(s.LastOperand) + " ="
		result, err := s.LastOperator.Apply(ParseNumber(s.MainDisplay), s.LastOperand)
		if err != nil {
			s.fail(errorKind(err))
			return
		}
		s.MainDisplay = result
		s.Accumulator = ParseNumber(result)
		s.ExpressionTrace = expression
		s.appendHistory(expression, result, at)

	case s.PendingOperator != OpNone:
		operand := ParseNumber(s.MainDisplay)
		expression := s.leftSide() + " " + s.PendingOperator.Symbol() + " " + s.operandText() + " ="
		s.LastOperator = s.PendingOperator
		s.LastOperand = operand
		s.HasLastOperand = true

		result, err := s.PendingOperator.Apply(s.Accumulator, operand)
		if err != nil {
			s.fail(errorKind(err))
			return
		}
		s.MainDisplay = result
		s.Accumulator = ParseNumber(result)
		s.ExpressionTrace = expression
		s.ExpressionTerms = nil
		s.PendingOperator = OpNone
		s.PendingFunctionNotation = ""
		s.settled = settledResult{}
		s.appendHistory(expression, result, at)
	}
}

func (s *State) recall(i int) {
	if i < 0 || i >= len(s.History) {
		return
	}
	s.Err = NoError
	s.MainDisplay = s.History[i].Result
	s.PendingFunctionNotation = ""
	s.settled = settledResult{}
	s.AwaitingNewEntry = true
}

func (s *State) clearHistory() {
	s.History = nil
	s.historyRev++
}

func (s *State) appendHistory(expression, result string, at time.Time) {
	id := at.UnixNano()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	s.History = prependEntry(s.History, Entry{
		ID:         id,
		Expression: expression,
		Result:     result,
		CreatedAt:  at,
	})
	s.historyRev++
}

func errorKind(err error) ErrorKind {
	var kind ErrorKind
	if errors.As(err, &kind) {
		return kind
	}
	return Overflow
}
