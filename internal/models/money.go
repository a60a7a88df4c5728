// Package models defines the domain entities for Plano
package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ParseCents converts a decimal amount string (e.g. "123.45") to integer
// cents, rounding to the nearest cent.
func ParseCents(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d.Mul(hundred).Round(0).IntPart(), nil
}

// ReaisToCents converts a legacy float amount stored in reais to integer
// cents. Budget.AmountActual is the only field still stored in reais; every
// comparison against it must go through this conversion.
func ReaisToCents(v float64) int64 {
	return decimal.NewFromFloat(v).Mul(hundred).Round(0).IntPart()
}

// CentsToReais converts integer cents back to the legacy reais float.
func CentsToReais(cents int64) float64 {
	f, _ := decimal.New(cents, -2).Float64()
	return f
}

// FormatCents renders integer cents as a fixed two-decimal string ("1234.56").
func FormatCents(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}
