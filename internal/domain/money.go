package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParsePrice converts a major-unit decimal string ("19.99") into minor units.
// Sub-cent precision and non-positive values are rejected.
func ParsePrice(s string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, NewValidationError("invalid price %q", s)
	}
	cents := d.Shift(2)
	if !cents.Equal(cents.Truncate(0)) {
		return 0, NewValidationError("price %q has more than two decimal places", s)
	}
	if !cents.IsPositive() {
		return 0, NewValidationError("price must be positive, got %q", s)
	}
	return cents.IntPart(), nil
}

// FormatCents renders minor units as a fixed two-decimal string.
func FormatCents(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}
