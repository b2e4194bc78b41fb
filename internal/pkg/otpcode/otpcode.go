// Package otpcode generates the short numeric codes sent to users during
// phone login.
package otpcode

import (
	"crypto/rand"
	"errors"
	"math/big"
)

// ErrBadLength is returned for code lengths outside the supported range.
var ErrBadLength = errors.New("otpcode: length must be between 4 and 10")

// Generator produces one-time numeric codes.
type Generator interface {
	Generate() (string, error)
}

// Numeric generates fixed-length decimal codes from crypto/rand. The first
// digit is never zero, so a 6-digit code is uniform over 100000..999999.
// A failing entropy source is reported as an error, never papered over with
// a weaker fallback.
type Numeric struct {
	length int
}

// NewNumeric builds a generator for codes of the given length.
func NewNumeric(length int) (*Numeric, error) {
	if length < 4 || length > 10 {
		return nil, ErrBadLength
	}

	return &Numeric{length: length}, nil
}

// Generate returns a new random code.
func (n *Numeric) Generate() (string, error) {
	low := big.NewInt(1)
	for i := 1; i < n.length; i++ {
		low.Mul(low, big.NewInt(10))
	}

	// span = 9 * 10^(length-1), the count of codes with a nonzero first digit
	span := new(big.Int).Mul(low, big.NewInt(9))

	v, err := rand.Int(rand.Reader, span)
	if err != nil {
		return "", err
	}

	return v.Add(v, low).String(), nil
}
