// Package phone canonicalizes Iranian mobile numbers. Every number that
// reaches storage, token claims, or SMS delivery goes through Normalize
// first, so the same subscriber always maps to the same key.
package phone

import (
	"errors"
	"strings"
)

// ErrInvalid is returned when the input cannot be read as an Iranian mobile number.
var ErrInvalid = errors.New("phone: not a valid Iranian mobile number")

// Normalize converts any accepted spelling of an Iranian mobile number to
// canonical E.164 form, "+989XXXXXXXXX".
//
// Accepted inputs, after stripping spaces, dashes, dots, and parentheses:
//
//	+989123456789
//	00989123456789
//	989123456789
//	09123456789
//	9123456789
//
// Anything else fails with ErrInvalid.
func Normalize(raw string) (string, error) {
	digits := strip(raw)

	// international prefixes
	digits = strings.TrimPrefix(digits, "00")

	switch {
	case strings.HasPrefix(digits, "989") && len(digits) == 12:
		// already canonical
	case strings.HasPrefix(digits, "09") && len(digits) == 11:
		digits = "98" + digits[1:]
	case strings.HasPrefix(digits, "9") && len(digits) == 10:
		digits = "98" + digits
	default:
		return "", ErrInvalid
	}

	if !isCanonical(digits) {
		return "", ErrInvalid
	}

	return "+" + digits, nil
}

// IsValid reports whether raw normalizes to a canonical mobile number.
func IsValid(raw string) bool {
	_, err := Normalize(raw)

	return err == nil
}

// strip drops formatting characters, keeping only digits. A leading plus is
// treated as formatting too since the country code carries the same meaning.
func strip(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))

	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	return b.String()
}

// isCanonical checks the 989XXXXXXXXX shape, all digits.
func isCanonical(digits string) bool {
	if len(digits) != 12 || !strings.HasPrefix(digits, "989") {
		return false
	}

	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
