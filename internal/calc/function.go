package calc

import "math"

// function is a unary operation applied to the current operand.
type function int

const (
	fnSquareRoot function = iota
	fnSquare
	fnReciprocal
	fnNegate
)

// wrap builds the notation shown in the trace, e.g. sqr(9) or √(sqr(9)).
func (f function) wrap(inner string) string {
	switch f {
	case fnSquareRoot:
		return "√(" + inner + ")"
	case fnSquare:
		return "sqr(" + inner + ")"
	case fnReciprocal:
		return "1/(" + inner + ")"
	case fnNegate:
		return "negate(" + inner + ")"
	}
	return inner
}

// eval applies f after checking its domain.
func (f function) eval(v float64) (float64, ErrorKind) {
	switch f {
	case fnSquareRoot:
		if v < 0 {
			return 0, InvalidDomain
		}
		return math.Sqrt(v), NoError
	case fnSquare:
		return v * v, NoError
	case fnReciprocal:
		if v == 0 {
			return 0, DivideByZero
		}
		return 1 / v, NoError
	case fnNegate:
		return -v, NoError
	}
	return v, NoError
}
