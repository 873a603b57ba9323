package units

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Canonical storage units. Every stock quantity is persisted in one of
// these (or, for countable goods, whatever unit it was created with).
const (
	Kilogram = "kg"
	Liter    = "L"
)

var (
	thousand = decimal.NewFromInt(1000)
	hundred  = decimal.NewFromInt(100)
	one      = decimal.NewFromInt(1)
)

// ToCanonical normalizes a user-entered quantity/unit pair to the canonical
// storage unit. Unrecognized units pass through unchanged: countable goods
// ("unit", "crate", ...) keep the unit they were entered with.
func ToCanonical(qty decimal.Decimal, unit string) (decimal.Decimal, string) {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "g", "gram", "grams", "gramme", "grammes":
		return qty.Div(thousand), Kilogram
	case "kg":
		return qty, Kilogram
	case "ml":
		return qty.Div(thousand), Liter
	case "cl":
		return qty.Div(hundred), Liter
	case "l":
		return qty, Liter
	}
	return qty, unit
}

// ToDisplay renders a canonical quantity in a friendlier unit: sub-kilogram
// masses in grams, sub-liter volumes in milliliters.
func ToDisplay(qty decimal.Decimal, unit string) (decimal.Decimal, string) {
	switch strings.ToLower(unit) {
	case "kg":
		if qty.LessThan(one) {
			return qty.Mul(thousand), "g"
		}
	case "l":
		if qty.LessThan(one) {
			return qty.Mul(thousand), "ml"
		}
	}
	return qty, unit
}
