package calc

// Operator is a binary arithmetic operator.
type Operator int

const (
	OpNone Operator = iota
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
)

// Symbol returns the glyph used in the expression trace and history.
func (o Operator) Symbol() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "−"
	case OpMultiply:
		return "×"
	case OpDivide:
		return "÷"
	}
	return ""
}

// String returns the operator name.
func (o Operator) String() string {
	switch o {
	case OpAdd:
		return "add"
	case OpSubtract:
		return "subtract"
	case OpMultiply:
		return "multiply"
	case OpDivide:
		return "divide"
	}
	return "none"
}

// Apply computes a <op> b and formats the result.
// Division by zero yields DivideByZero; a non-finite result yields Overflow.
func (o Operator) Apply(a, b float64) (string, error) {
	var r float64
	switch o {
	case OpAdd:
		r = a + b
	case OpSubtract:
		r = a - b
	case OpMultiply:
		r = a * b
	case OpDivide:
		if b == 0 {
			return "", DivideByZero
		}
		r = a / b
	default:
		return FormatResult(a)
	}
	return FormatResult(r)
}
