// Package moneypkg parses money amounts expressed in the smallest currency unit.
package moneypkg

import (
	"errors"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrNotANumber indicates that the amount is not a number.
	ErrNotANumber = errors.New("amount is not a number")
	// ErrFractional indicates that the amount has a fractional part.
	ErrFractional = errors.New("amount must be a whole number of minor units")
	// ErrOutOfRange indicates that the amount does not fit into int64.
	ErrOutOfRange = errors.New("amount is out of range")
)

var maxAmount = decimal.NewFromInt(math.MaxInt64)

// Limits applied before any arithmetic: rescaling a decimal costs time and
// memory proportional to its exponent.
const (
	maxInputLen = 40
	maxExponent = 18
	minExponent = -18
)

// ParseAmount parses s as a whole number of minor units. Sign is preserved so
// the caller decides which signs are acceptable.
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrNotANumber
	}

	if len(s) > maxInputLen {
		return 0, ErrOutOfRange
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrNotANumber
	}

	if exp := d.Exponent(); exp > maxExponent || exp < minExponent {
		return 0, ErrOutOfRange
	}

	if !d.Equal(d.Truncate(0)) {
		return 0, ErrFractional
	}

	if d.Abs().GreaterThan(maxAmount) {
		return 0, ErrOutOfRange
	}

	return d.IntPart(), nil
}
