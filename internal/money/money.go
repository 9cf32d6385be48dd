// Package money holds the rounding rules shared by settlement and reporting.
package money

import (
	"math"

	"github.com/shopspring/decimal"
)

// Places is the number of decimal places every monetary or percentage output carries.
const Places = 2

// Round2 rounds d to two decimal places, halves away from zero.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// RoundFloat rounds v to two decimal places. Non-finite input is returned as 0.
func RoundFloat(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return Round2(decimal.NewFromFloat(v)).InexactFloat64()
}

// Ratio returns numerator / denominator * 100, or 0 when the denominator is zero.
// The result is not rounded.
func Ratio(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator * 100
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
