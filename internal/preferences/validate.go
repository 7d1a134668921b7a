package preferences

import (
	"errors"
	"math"
	"math/big"
)

// MacroTolerance is how far, in percentage points, the macro split may drift from 100.
const MacroTolerance = 5

// ErrInvalidMacros is returned when the macro split is not close enough to 100%.
var ErrInvalidMacros = errors.New("macro percentages must add up to approximately 100%")

// ParseInt reads a leading integer the way a lenient form parser does:
// leading whitespace is skipped, an optional sign is accepted, then the
// longest run of digits is used and the rest of the text is ignored.
// ok is false when no digits are found or the digits do not fit in an int.
func ParseInt(s string) (n int, ok bool) {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}

	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}

	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		d := int(s[i] - '0')
		if n > (math.MaxInt-d)/10 {
			return 0, false
		}
		n = n*10 + d
		i++
	}
	if i == start {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

// ValidateMacros reports whether protein, carbs and fat sum to 100 within
// MacroTolerance. Any field that does not parse fails the check. The sum is
// exact, so huge values cannot wrap around into range.
func ValidateMacros(p Preferences) bool {
	total := new(big.Int)
	for _, s := range []string{p.Protein, p.Carbs, p.Fat} {
		v, ok := ParseInt(s)
		if !ok {
			return false
		}
		total.Add(total, big.NewInt(int64(v)))
	}

	diff := total.Sub(total, big.NewInt(100))
	return diff.CmpAbs(big.NewInt(MacroTolerance)) <= 0
}
