package calc

import (
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

const (
	// MaxDisplayDigits is the longest plain rendering of a computed result.
	MaxDisplayDigits = 16
	// MaxInputLength caps how many characters a typed entry may have.
	MaxInputLength = 16
	// maxFractionInputLength is the cap for entries that start with "0.".
	maxFractionInputLength = 18

	roundingDigits = 15
	sciUpperBound  = 1e17
	sciLowerBound  = 1e-17
	sciFracDigits  = 10
)

// FormatResult renders a computed value for the main display.
//
// The value is rounded to 15 significant digits to absorb binary noise
// (0.1+0.2 renders as 0.3). Magnitudes above 1e17 or nonzero magnitudes
// below 1e-17 use scientific notation with a 10 digit mantissa fraction.
// Non-finite values return Overflow.
func FormatResult(v float64) (string, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "", Overflow
	}

	rounded := roundSignificant(v, roundingDigits)
	if math.IsInf(rounded, 0) {
		return "", Overflow
	}

	abs := math.Abs(rounded)
	if abs > sciUpperBound || (rounded != 0 && abs < sciLowerBound) {
		return strconv.FormatFloat(rounded, 'e', sciFracDigits, 64), nil
	}

	s := plainDecimal(rounded)
	if len(s) > MaxDisplayDigits {
		s = plainDecimal(roundSignificant(rounded, MaxDisplayDigits))
	}
	return s, nil
}

// FormatDisplay inserts thousands separators into the integer part of a
// numeric display string. Error messages and scientific notation pass through
// unchanged. The input string is never altered, so the grouped form is for
// presentation only.
func FormatDisplay(s string) string {
	if s == "" || IsErrorMessage(s) || strings.ContainsAny(s, "eE") {
		return s
	}

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	intPart, frac, hasFrac := strings.Cut(s, ".")
	grouped := intPart
	if n, err := strconv.ParseInt(intPart, 10, 64); err == nil && len(intPart) > 3 {
		grouped = humanize.Comma(n)
	}

	if hasFrac {
		return sign + grouped + "." + frac
	}
	return sign + grouped
}

// ParseNumber reads a display string as a float. Grouping separators are
// ignored; anything unparsable reads as zero.
func ParseNumber(s string) float64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0
	}
	return v
}

func roundSignificant(v float64, digits int) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'g', digits, 64), 64)
	return r
}

// plainDecimal is the shortest non-exponent rendering; -0 renders as 0.
func plainDecimal(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatNumber renders a value for the trace, falling back to the raw float
// when the value cannot be formatted.
func formatNumber(v float64) string {
	s, err := FormatResult(v)
	if err != nil {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return s
}
