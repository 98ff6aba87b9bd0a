package calc

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// press feeds a compact key sequence to the engine.
// √ sqrt, ² square, i reciprocal, ± negate, < backspace, E clear entry, C clear.
func press(e *Engine, seq string) {
	for _, r := range seq {
		switch r {
		case '+':
			e.SetOperator(OpAdd)
		case '-':
			e.SetOperator(OpSubtract)
		case '*':
			e.SetOperator(OpMultiply)
		case '/':
			e.SetOperator(OpDivide)
		case '=':
			e.Equals()
		case '.':
			e.InputDecimal()
		case '%':
			e.Percentage()
		case '√':
			e.SquareRoot()
		case '²':
			e.Square()
		case 'i':
			e.Reciprocal()
		case '±':
			e.Negate()
		case '<':
			e.Backspace()
		case 'E':
			e.ClearEntry()
		case 'C':
			e.Clear()
		case ' ':
		default:
			e.InputDigit(r)
		}
	}
}

func fixedClock() func() time.Time {
	t := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return t }
}

func newTestEngine(opts ...Option) *Engine {
	return New(append([]Option{WithClock(fixedClock())}, opts...)...)
}

func TestAdditionScenario(t *testing.T) {
	e := newTestEngine()
	press(e, "7+3=")

	assert.Equal(t, "10", e.MainDisplay())
	assert.Equal(t, "7 + 3 =", e.ExpressionTrace())
	require.Len(t, e.History(), 1)
	assert.Equal(t, "7 + 3 =", e.History()[0].Expression)
	assert.Equal(t, "10", e.History()[0].Result)
}

func TestRepeatedEquals(t *testing.T) {
	e := newTestEngine()
	press(e, "5+3=")
	assert.Equal(t, "8", e.MainDisplay())

	press(e, "=")
	assert.Equal(t, "11", e.MainDisplay())
	assert.Equal(t, "8 + 3 =", e.ExpressionTrace())

	press(e, "=")
	assert.Equal(t, "14", e.MainDisplay())

	history := e.History()
	require.Len(t, history, 3)
	assert.Equal(t, "11 + 3 =", history[0].Expression)
	assert.Equal(t, "14", history[0].Result)
}

func TestOperatorThenEqualsUsesDisplayAsOperand(t *testing.T) {
	e := newTestEngine()
	press(e, "5+=")
	assert.Equal(t, "10", e.MainDisplay())
	assert.Equal(t, "5 + 5 =", e.ExpressionTrace())

	press(e, "=")
	assert.Equal(t, "15", e.MainDisplay())
}

func TestLeftToRightEvaluation(t *testing.T) {
	e := newTestEngine()
	press(e, "2+3*")
	assert.Equal(t, "5", e.MainDisplay())
	assert.Equal(t, "5 ×", e.ExpressionTrace())

	press(e, "4=")
	assert.Equal(t, "20", e.MainDisplay())

	history := e.History()
	require.Len(t, history, 2)
	assert.Equal(t, "5 × 4 =", history[0].Expression)
	assert.Equal(t, "2 + 3 =", history[1].Expression)
	assert.Equal(t, "5", history[1].Result)
}

func TestChangingOperatorDoesNotCompute(t *testing.T) {
	e := newTestEngine()
	press(e, "8+-")
	assert.Equal(t, "8 −", e.ExpressionTrace())
	assert.Empty(t, e.History())

	press(e, "3=")
	assert.Equal(t, "5", e.MainDisplay())
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		name    string
		keys    string
		display string
		trace   string
	}{
		{name: "subtract takes percent of left operand", keys: "50-20%", display: "10", trace: "50 − 10"},
		{name: "add takes percent of left operand", keys: "200+10%", display: "20", trace: "200 + 20"},
		{name: "multiply uses fraction", keys: "200*15%", display: "0.15", trace: "200 × 0.15"},
		{name: "divide uses fraction", keys: "8/50%", display: "0.5", trace: "8 ÷ 0.5"},
		{name: "no operator uses accumulator", keys: "50%", display: "0", trace: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine()
			press(e, tt.keys)
			assert.Equal(t, tt.display, e.MainDisplay())
			assert.Equal(t, tt.trace, e.ExpressionTrace())
		})
	}
}

func TestPercentageThenEquals(t *testing.T) {
	e := newTestEngine()
	press(e, "50-20%=")
	assert.Equal(t, "40", e.MainDisplay())
	assert.Equal(t, "50 − 10 =", e.History()[0].Expression)
}

func TestPercentageChain(t *testing.T) {
	e := newTestEngine()
	press(e, "72-20%+")
	assert.Equal(t, "57.6", e.MainDisplay())
	assert.Equal(t, "57.6 +", e.ExpressionTrace())
	assert.Equal(t, "72 − 14.4 =", e.History()[0].Expression)

	press(e, "5%=")
	assert.Equal(t, "60.48", e.MainDisplay())
}

func TestSquareRootNesting(t *testing.T) {
	e := newTestEngine()
	press(e, "9√")
	assert.Equal(t, "3", e.MainDisplay())
	assert.Equal(t, "√(9)", e.ExpressionTrace())

	press(e, "√")
	assert.Equal(t, "√(√(9))", e.ExpressionTrace())
	assert.Equal(t, "1.73205080756888", e.MainDisplay())
	assert.True(t, e.State().AwaitingNewEntry)
}

func TestSquareNesting(t *testing.T) {
	e := newTestEngine()
	press(e, "9²")
	assert.Equal(t, "81", e.MainDisplay())
	assert.Equal(t, "sqr(9)", e.ExpressionTrace())

	press(e, "²")
	assert.Equal(t, "6561", e.MainDisplay())
	assert.Equal(t, "sqr(sqr(9))", e.ExpressionTrace())
}

func TestReciprocal(t *testing.T) {
	e := newTestEngine()
	press(e, "16i")
	assert.Equal(t, "0.0625", e.MainDisplay())
	assert.Equal(t, "1/(16)", e.ExpressionTrace())
}

func TestReciprocalOfZero(t *testing.T) {
	e := newTestEngine()
	press(e, "0i")
	assert.True(t, e.HasError())
	assert.Equal(t, DivideByZero, e.ErrKind())
	assert.Equal(t, "Cannot divide by zero", e.MainDisplay())
}

func TestNegate(t *testing.T) {
	e := newTestEngine()
	press(e, "5±")
	assert.Equal(t, "-5", e.MainDisplay())
	assert.Equal(t, "negate(5)", e.ExpressionTrace())

	press(e, "±")
	assert.Equal(t, "5", e.MainDisplay())
	assert.Equal(t, "negate(negate(5))", e.ExpressionTrace())
}

func TestNegateZeroShowsZero(t *testing.T) {
	e := newTestEngine()
	press(e, "±")
	assert.Equal(t, "0", e.MainDisplay())
}

func TestFunctionInOperandPosition(t *testing.T) {
	e := newTestEngine()
	press(e, "2+9√")
	assert.Equal(t, "2 + √(9)", e.ExpressionTrace())

	press(e, "=")
	assert.Equal(t, "5", e.MainDisplay())
	assert.Equal(t, "2 + √(9) =", e.ExpressionTrace())
	assert.Equal(t, "2 + √(9) =", e.History()[0].Expression)
}

func TestOperatorAfterFunctionOperandCommits(t *testing.T) {
	e := newTestEngine()
	press(e, "2+9√*")
	assert.Equal(t, "5", e.MainDisplay())
	assert.Equal(t, "5 ×", e.ExpressionTrace())
	assert.Equal(t, "2 + √(9) =", e.History()[0].Expression)
}

func TestFunctionThenOperatorSeedsTrace(t *testing.T) {
	e := newTestEngine()
	press(e, "4²+")
	assert.Equal(t, "sqr(4) +", e.ExpressionTrace())

	press(e, "1=")
	assert.Equal(t, "17", e.MainDisplay())
	assert.Equal(t, "sqr(4) + 1 =", e.History()[0].Expression)
}

func TestTypingOverOperandFunctionRestoresTrace(t *testing.T) {
	e := newTestEngine()
	press(e, "2+9√4")
	assert.Equal(t, "2 +", e.ExpressionTrace())
	assert.Equal(t, "4", e.MainDisplay())

	press(e, "=")
	assert.Equal(t, "6", e.MainDisplay())
}

func TestSettledFunctionLoggedOnNewEntry(t *testing.T) {
	e := newTestEngine()
	press(e, "9√")
	assert.Empty(t, e.History())

	press(e, "45")
	history := e.History()
	require.Len(t, history, 1)
	assert.Equal(t, "√(9) =", history[0].Expression)
	assert.Equal(t, "3", history[0].Result)
	assert.Equal(t, "45", e.MainDisplay())
	assert.Equal(t, "", e.ExpressionTrace())
}

func TestSettledFunctionNotLoggedWhenConsumed(t *testing.T) {
	e := newTestEngine()
	press(e, "9√=")
	require.Len(t, e.History(), 1)
	assert.Equal(t, "√(9) =", e.History()[0].Expression)

	press(e, "4")
	assert.Len(t, e.History(), 1)
}

func TestBareEquals(t *testing.T) {
	e := newTestEngine()
	press(e, "5=")
	assert.Equal(t, "5 =", e.ExpressionTrace())
	require.Len(t, e.History(), 1)
	assert.Equal(t, "5", e.History()[0].Result)
	assert.True(t, e.State().AwaitingNewEntry)
}

func TestDigitAfterCompletedExpressionStartsFresh(t *testing.T) {
	e := newTestEngine()
	press(e, "7+3=2")
	st := e.State()
	assert.Equal(t, "2", st.MainDisplay)
	assert.Equal(t, "", st.ExpressionTrace)
	assert.Equal(t, OpNone, st.PendingOperator)
	assert.Equal(t, OpNone, st.LastOperator)
	assert.False(t, st.HasLastOperand)

	press(e, "+1=")
	assert.Equal(t, "3", e.MainDisplay())
}

func TestDecimalAfterCompletedExpression(t *testing.T) {
	e := newTestEngine()
	press(e, "7+3=.5")
	assert.Equal(t, "0.5", e.MainDisplay())
	assert.Equal(t, "", e.ExpressionTrace())
}

func TestDivideByZero(t *testing.T) {
	for _, a := range []string{"0", "5", "123", "0.5"} {
		t.Run(a, func(t *testing.T) {
			e := newTestEngine()
			press(e, a+"/0=")
			assert.True(t, e.HasError())
			assert.Equal(t, DivideByZero, e.ErrKind())
			assert.Equal(t, "Cannot divide by zero", e.MainDisplay())
			assert.Equal(t, "", e.ExpressionTrace())
			assert.Empty(t, e.History())
		})
	}
}

func TestDivideByZeroOnChainedOperator(t *testing.T) {
	e := newTestEngine()
	press(e, "8/0+")
	assert.Equal(t, DivideByZero, e.ErrKind())
	assert.Empty(t, e.History())
}

func TestSquareRootOfNegative(t *testing.T) {
	tests := []string{"9±√", "5-9=√"}
	for _, keys := range tests {
		t.Run(keys, func(t *testing.T) {
			e := newTestEngine()
			press(e, keys)
			assert.Equal(t, InvalidDomain, e.ErrKind())
			assert.Equal(t, "Invalid input", e.MainDisplay())
		})
	}
}

func TestOverflow(t *testing.T) {
	e := newTestEngine()
	press(e, "9999999999999999²²²²")
	assert.False(t, e.HasError())

	press(e, "²")
	assert.Equal(t, Overflow, e.ErrKind())
	assert.Equal(t, "Result is undefined", e.MainDisplay())
}

func TestErrorRecovery(t *testing.T) {
	t.Run("digit resets", func(t *testing.T) {
		e := newTestEngine()
		press(e, "5/0=3")
		assert.False(t, e.HasError())
		assert.Equal(t, "3", e.MainDisplay())
	})

	t.Run("decimal resets", func(t *testing.T) {
		e := newTestEngine()
		press(e, "5/0=.")
		assert.False(t, e.HasError())
		assert.Equal(t, "0.", e.MainDisplay())
	})

	t.Run("operator ignored", func(t *testing.T) {
		e := newTestEngine()
		press(e, "5/0=+=")
		assert.True(t, e.HasError())
		assert.Equal(t, "Cannot divide by zero", e.MainDisplay())
	})

	t.Run("percent and backspace ignored", func(t *testing.T) {
		e := newTestEngine()
		press(e, "5/0=%<")
		assert.Equal(t, "Cannot divide by zero", e.MainDisplay())
	})

	t.Run("negate blocked", func(t *testing.T) {
		e := newTestEngine()
		press(e, "5/0=±")
		assert.True(t, e.HasError())
		assert.Equal(t, "Cannot divide by zero", e.MainDisplay())
	})

	t.Run("function resets then applies", func(t *testing.T) {
		e := newTestEngine()
		press(e, "5/0=√")
		assert.False(t, e.HasError())
		assert.Equal(t, "0", e.MainDisplay())
		assert.Equal(t, "√(0)", e.ExpressionTrace())
	})

	t.Run("clear entry exits", func(t *testing.T) {
		e := newTestEngine()
		press(e, "5/0=E")
		assert.False(t, e.HasError())
		assert.Equal(t, "0", e.MainDisplay())
	})
}

func TestInputLengthCap(t *testing.T) {
	e := newTestEngine()
	press(e, "12345678901234567890")
	assert.Equal(t, "1234567890123456", e.MainDisplay())

	e = newTestEngine()
	press(e, ".11111111111111111111")
	assert.Equal(t, "0.1111111111111111", e.MainDisplay())
	assert.Len(t, e.MainDisplay(), 18)
}

func TestLeadingZeroReplaced(t *testing.T) {
	e := newTestEngine()
	press(e, "0007")
	assert.Equal(t, "7", e.MainDisplay())
}

func TestDecimalInput(t *testing.T) {
	e := newTestEngine()
	press(e, ".")
	assert.Equal(t, "0.", e.MainDisplay())

	press(e, "5.2.")
	assert.Equal(t, "0.52", e.MainDisplay())

	press(e, "+.")
	assert.Equal(t, "0.", e.MainDisplay())
}

func TestBackspace(t *testing.T) {
	e := newTestEngine()
	press(e, "123<")
	assert.Equal(t, "12", e.MainDisplay())

	press(e, "<<")
	assert.Equal(t, "0", e.MainDisplay())

	press(e, "5+3=<")
	assert.Equal(t, "8", e.MainDisplay())
}

func TestClearEntryKeepsPendingOperation(t *testing.T) {
	e := newTestEngine()
	press(e, "9+5E2=")
	assert.Equal(t, "11", e.MainDisplay())
}

func TestClearResetsEverythingButHistory(t *testing.T) {
	e := newTestEngine()
	press(e, "7+3=2*")
	require.Len(t, e.History(), 1)

	press(e, "C")
	st := e.State()
	assert.Equal(t, "0", st.MainDisplay)
	assert.False(t, st.HasError())
	assert.Equal(t, OpNone, st.PendingOperator)
	assert.Equal(t, "", st.ExpressionTrace)
	assert.Equal(t, float64(0), st.Accumulator)
	assert.Len(t, st.History, 1)

	press(e, "5/0=C")
	assert.False(t, e.HasError())
	assert.Equal(t, "0", e.MainDisplay())
}

func TestHistoryBound(t *testing.T) {
	e := newTestEngine()
	for i := 0; i <= MaxHistory; i++ {
		press(e, "C"+strconv.Itoa(i)+"=")
	}

	history := e.History()
	require.Len(t, history, MaxHistory)
	assert.Equal(t, strconv.Itoa(MaxHistory)+" =", history[0].Expression)
	assert.Equal(t, "1 =", history[len(history)-1].Expression)
}

func TestHistoryIDsAreMonotonic(t *testing.T) {
	e := newTestEngine()
	press(e, "1=2=3=")

	history := e.History()
	require.Len(t, history, 3)
	assert.Greater(t, history[0].ID, history[1].ID)
	assert.Greater(t, history[1].ID, history[2].ID)
}

func TestRecall(t *testing.T) {
	e := newTestEngine()
	press(e, "7+3=2*4=")
	require.Len(t, e.History(), 2)

	e.Recall(1)
	st := e.State()
	assert.Equal(t, "10", st.MainDisplay)
	assert.True(t, st.AwaitingNewEntry)
	assert.Equal(t, float64(8), st.Accumulator)

	e.Recall(7)
	assert.Equal(t, "10", e.MainDisplay())
}

func TestClearHistory(t *testing.T) {
	e := newTestEngine()
	press(e, "7+3=")
	e.ClearHistory()
	assert.Empty(t, e.History())
	assert.Equal(t, "10", e.MainDisplay())
}

func TestHistoryListener(t *testing.T) {
	var calls [][]Entry
	e := newTestEngine(WithHistoryListener(func(entries []Entry) {
		calls = append(calls, entries)
	}))

	press(e, "7+")
	assert.Empty(t, calls)

	press(e, "3=")
	require.Len(t, calls, 1)
	assert.Len(t, calls[0], 1)

	e.ClearHistory()
	require.Len(t, calls, 2)
	assert.Empty(t, calls[1])
}

func TestWithHistorySeedsLog(t *testing.T) {
	seed := []Entry{
		{ID: 99, Expression: "1 + 1 =", Result: "2"},
		{ID: 98, Expression: "", Result: "junk"},
	}
	e := New(WithHistory(seed), WithClock(func() time.Time { return time.Unix(0, 5) }))
	require.Len(t, e.History(), 1)

	press(e, "4=")
	history := e.History()
	require.Len(t, history, 2)
	assert.Equal(t, int64(100), history[0].ID)
}

func TestStateApplyIsPure(t *testing.T) {
	at := time.Now()
	s0 := NewState()
	s1 := s0.Apply(Digit('7'), at)
	s2 := s1.Apply(Op(OpAdd), at)
	s3 := s2.Apply(Digit('3'), at).Apply(Simple(EventEquals), at)

	assert.Equal(t, "0", s0.MainDisplay)
	assert.Equal(t, "7", s1.MainDisplay)
	assert.Equal(t, "7 +", s2.ExpressionTrace)
	assert.Empty(t, s2.History)
	assert.Equal(t, "10", s3.MainDisplay)
	assert.Len(t, s3.History, 1)
}
