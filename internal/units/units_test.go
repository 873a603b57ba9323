package units

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestToCanonical(t *testing.T) {
	tests := []struct {
		name     string
		qty      string
		unit     string
		wantQty  string
		wantUnit string
	}{
		{"grams to kg", "250", "g", "0.25", "kg"},
		{"gram word", "1500", "grams", "1.5", "kg"},
		{"kg stays", "2", "kg", "2", "kg"},
		{"uppercase kg", "2", "KG", "2", "kg"},
		{"ml to liters", "330", "ml", "0.33", "L"},
		{"cl to liters", "75", "cl", "0.75", "L"},
		{"liters stay", "20", "L", "20", "L"},
		{"unknown passes through", "6", "crate", "6", "crate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qty, unit := ToCanonical(decimal.RequireFromString(tt.qty), tt.unit)
			assert.Equal(t, tt.wantQty, qty.String())
			assert.Equal(t, tt.wantUnit, unit)
		})
	}
}

func TestToDisplay(t *testing.T) {
	tests := []struct {
		name     string
		qty      string
		unit     string
		wantQty  string
		wantUnit string
	}{
		{"sub-kilogram in grams", "0.25", "kg", "250", "g"},
		{"whole kilograms stay", "1.5", "kg", "1.5", "kg"},
		{"sub-liter in milliliters", "0.33", "L", "330", "ml"},
		{"whole liters stay", "20", "L", "20", "L"},
		{"zero shown in grams", "0", "kg", "0", "g"},
		{"count units stay", "6", "crate", "6", "crate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qty, unit := ToDisplay(decimal.RequireFromString(tt.qty), tt.unit)
			assert.Equal(t, tt.wantQty, qty.String())
			assert.Equal(t, tt.wantUnit, unit)
		})
	}
}

func TestGramRoundTrip(t *testing.T) {
	for _, grams := range []string{"1", "250", "999.5"} {
		in := decimal.RequireFromString(grams)

		canonical, unit := ToCanonical(in, "g")
		assert.Equal(t, "kg", unit)

		out, displayUnit := ToDisplay(canonical, unit)
		assert.Equal(t, "g", displayUnit)
		assert.True(t, out.Equal(in), "round trip of %s g gave %s", in, out)
	}
}
