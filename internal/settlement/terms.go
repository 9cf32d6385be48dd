package settlement

import (
	"regexp"
	"strconv"

	"github.com/shopspring/decimal"
)

// Default each-way terms applied when the free-text terms cannot be read.
var (
	DefaultPlaceFraction = decimal.NewFromInt(1).Div(decimal.NewFromInt(4))
	DefaultPaidPlaces    = 3
)

var (
	fractionPattern = regexp.MustCompile(`(\d+)\s*/\s*(\d+)`)
	placesPattern   = regexp.MustCompile(`(?i)(\d+)\s*(?:places?|pl)\b`)
)

// PlaceTerms are the place-portion terms of an each-way bet.
type PlaceTerms struct {
	Fraction          decimal.Decimal
	Places            int
	FractionDefaulted bool
	PlacesDefaulted   bool
}

// Parsed reports whether both fraction and places came from the text.
func (t PlaceTerms) Parsed() bool {
	return !t.FractionDefaulted && !t.PlacesDefaulted
}

// PlaceOdds derives the place price from the win price: 1 + (odds - 1) * fraction.
func (t PlaceTerms) PlaceOdds(winOdds decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(1).Add(winOdds.Sub(decimal.NewFromInt(1)).Mul(t.Fraction))
}

// DefaultPlaceTerms returns the house default of 1/4 odds, 3 places.
func DefaultPlaceTerms() PlaceTerms {
	return PlaceTerms{
		Fraction:          DefaultPlaceFraction,
		Places:            DefaultPaidPlaces,
		FractionDefaulted: true,
		PlacesDefaulted:   true,
	}
}

// ParsePlaceTerms reads text such as "1/4 odds, 3 places". Each component that is
// missing or nonsensical falls back to the default and is flagged as such.
func ParsePlaceTerms(text string) PlaceTerms {
	terms := DefaultPlaceTerms()

	if m := fractionPattern.FindStringSubmatch(text); m != nil {
		num, errNum := strconv.ParseInt(m[1], 10, 64)
		den, errDen := strconv.ParseInt(m[2], 10, 64)
		if errNum == nil && errDen == nil && num > 0 && den > 0 && num <= den {
			terms.Fraction = decimal.NewFromInt(num).Div(decimal.NewFromInt(den))
			terms.FractionDefaulted = false
		}
	}

	if m := placesPattern.FindStringSubmatch(text); m != nil {
		if places, err := strconv.Atoi(m[1]); err == nil && places > 0 {
			terms.Places = places
			terms.PlacesDefaulted = false
		}
	}

	return terms
}
