package resolve

import (
	"strings"

	"github.com/campuspulse/campuspulse/internal/domain/model"
)

// Numeric-code matching constants. Codes in the source data are three digits
// wide; longer digit strings are never treated as codes.
const (
	codeWidth     = 3
	maxCodeDigits = 3
)

// isAllDigits reports whether q is non-empty and consists only of decimal
// digits.
func isAllDigits(q string) bool {
	if q == "" {
		return false
	}
	for _, c := range q {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// padCode zero-left-pads a digit string to the standard code width.
func padCode(q string) string {
	if len(q) >= codeWidth {
		return q
	}
	return strings.Repeat("0", codeWidth-len(q)) + q
}

// matchCode resolves a purely numeric query against building codes.
//
// Digit strings longer than maxCodeDigits yield NoMatch immediately and are
// never retried against names: numeric input would otherwise false-match on
// numeric substrings of building names.
func matchCode(query string, records []model.BuildingRecord) Result {
	if len(query) > maxCodeDigits {
		return noMatch(TierCode)
	}
	padded := padCode(query)
	for _, r := range records {
		code := r.DisplayCode
		if code == "" {
			code = r.SensorCode
		}
		if strings.EqualFold(code, padded) {
			return exact(TierCode, r)
		}
	}
	return noMatch(TierCode)
}
