package calc

// ErrorKind identifies why the engine entered its error state.
// All kinds collapse into a single terminal display state; the kind is kept
// so adapters can report it.
type ErrorKind int

const (
	NoError ErrorKind = iota
	DivideByZero
	InvalidDomain
	Overflow
)

// Message returns the text shown on the main display for the error.
func (k ErrorKind) Message() string {
	switch k {
	case DivideByZero:
		return "Cannot divide by zero"
	case InvalidDomain:
		return "Invalid input"
	case Overflow:
		return "Result is undefined"
	}
	return ""
}

// Error implements error so a kind can be returned and matched with errors.Is.
func (k ErrorKind) Error() string {
	return k.Message()
}

// IsErrorMessage reports whether s is one of the error messages the engine
// writes into the main display.
func IsErrorMessage(s string) bool {
	return s == DivideByZero.Message() ||
		s == InvalidDomain.Message() ||
		s == Overflow.Message()
}
