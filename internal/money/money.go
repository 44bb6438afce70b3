// Package money holds the fixed-precision amount helpers shared by the
// aggregation engines. All monetary values are decimal.Decimal; float64 never
// enters a money path.
package money

import "github.com/shopspring/decimal"

// MinorUnits is the minor-unit precision of the base currency (EUR).
const MinorUnits = 2

// FromCents builds an amount from an integer number of cents.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -MinorUnits)
}

// Cents returns the amount as an integer number of cents.
func Cents(d decimal.Decimal) int64 {
	return d.Shift(MinorUnits).Round(0).IntPart()
}

// RoundMinor rounds to minor-unit precision using round-half-even.
// Applied once at the point of currency normalization, never downstream.
func RoundMinor(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(MinorUnits)
}
