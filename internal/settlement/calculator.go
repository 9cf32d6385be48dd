// Package settlement derives the profit/loss of a single wager from its type-specific terms.
//
// Every function is pure. Insufficient or invalid input is reported as a
// *CannotComputeError rather than a fabricated amount; results are rounded to
// two decimal places as the final step.
package settlement

import (
	"math"

	"github.com/shopspring/decimal"
	"github.com/yourusername/bet-journal/internal/money"
)

var (
	one     = decimal.NewFromInt(1)
	two     = decimal.NewFromInt(2)
	hundred = decimal.NewFromInt(100)
)

// Win settles a win bet: stake * (odds - 1) when first, otherwise -stake.
func Win(stake, odds float64, position *int) (decimal.Decimal, error) {
	s, o, pos, err := validateBack(stake, odds, position)
	if err != nil {
		return decimal.Zero, err
	}
	return money.Round2(winProfit(s, o, pos)), nil
}

// Place settles a place bet at the supplied place odds. paidPlaces <= 0 means DefaultPaidPlaces.
func Place(stake, placeOdds float64, position *int, paidPlaces int) (decimal.Decimal, error) {
	s, o, pos, err := validateBack(stake, placeOdds, position)
	if err != nil {
		return decimal.Zero, err
	}
	if paidPlaces <= 0 {
		paidPlaces = DefaultPaidPlaces
	}
	return money.Round2(placeProfit(s, o, pos, paidPlaces)), nil
}

// EachWay splits stake evenly into a win half and a place half settled at terms.
func EachWay(stake, odds float64, terms PlaceTerms, position *int) (decimal.Decimal, error) {
	s, o, pos, err := validateBack(stake, odds, position)
	if err != nil {
		return decimal.Zero, err
	}
	if terms.Places <= 0 || !terms.Fraction.IsPositive() {
		terms = DefaultPlaceTerms()
	}

	half := s.Div(two)
	winPart := money.Round2(winProfit(half, o, pos))
	placePart := money.Round2(placeProfit(half, terms.PlaceOdds(o), pos, terms.Places))
	return money.Round2(winPart.Add(placePart)), nil
}

// Lay settles a lay bet. The layer pays the liability stake * (odds - 1) when the
// selection wins and collects the stake otherwise.
func Lay(stake, odds float64, position *int) (decimal.Decimal, error) {
	s, o, pos, err := validateBack(stake, odds, position)
	if err != nil {
		return decimal.Zero, err
	}
	return money.Round2(winProfit(s, o, pos).Neg()), nil
}

// Multi settles a multi-leg bet on its combined odds. Whether every leg won is decided by the caller.
// Recorded odds must be valid either way; a lost multi may omit them (0).
func Multi(stake, combinedOdds float64, allLegsWon bool) (decimal.Decimal, error) {
	s, err := validateStake(stake)
	if err != nil {
		return decimal.Zero, err
	}
	if !allLegsWon && combinedOdds == 0 {
		return money.Round2(s.Neg()), nil
	}
	o, err := validateOdds(combinedOdds)
	if err != nil {
		return decimal.Zero, err
	}
	if !allLegsWon {
		return money.Round2(s.Neg()), nil
	}
	return money.Round2(s.Mul(o.Sub(one))), nil
}

// Exotic settles a quinella, exacta, trifecta or first-four:
// dividend * clamp(flexi, 0, 100) / 100 - totalStake. An invalid dividend is a total loss.
// A nil, non-finite or non-positive flexi counts as 100%.
func Exotic(totalStake float64, dividend Dividend, flexiPercent *float64) (decimal.Decimal, error) {
	s, err := validateStake(totalStake)
	if err != nil {
		return decimal.Zero, err
	}
	if !dividend.Valid {
		return money.Round2(s.Neg()), nil
	}
	proportion := decimal.NewFromFloat(normalizeFlexi(flexiPercent)).Div(hundred)
	return money.Round2(dividend.Amount.Mul(proportion).Sub(s)), nil
}

// Other settles a manually recorded bet from its declared result and payout.
func Other(stake float64, won bool, payout *float64) (decimal.Decimal, error) {
	s, err := validateStake(stake)
	if err != nil {
		return decimal.Zero, err
	}
	if !won {
		return money.Round2(s.Neg()), nil
	}
	if payout == nil || !finite(*payout) {
		return decimal.Zero, cannotCompute(ReasonMissingPayout, "a winning bet needs a payout")
	}
	if *payout < 0 {
		return decimal.Zero, cannotCompute(ReasonInvalidPayout, "payout %v is negative", *payout)
	}
	return money.Round2(decimal.NewFromFloat(*payout).Sub(s)), nil
}

func winProfit(stake, odds decimal.Decimal, position int) decimal.Decimal {
	if position == 1 {
		return stake.Mul(odds.Sub(one))
	}
	return stake.Neg()
}

func placeProfit(stake, placeOdds decimal.Decimal, position, paidPlaces int) decimal.Decimal {
	if position >= 1 && position <= paidPlaces {
		return stake.Mul(placeOdds.Sub(one))
	}
	return stake.Neg()
}

func normalizeFlexi(flexi *float64) float64 {
	if flexi == nil || !finite(*flexi) || *flexi <= 0 {
		return 100
	}
	return math.Min(*flexi, 100)
}

func validateBack(stake, odds float64, position *int) (decimal.Decimal, decimal.Decimal, int, error) {
	s, err := validateStake(stake)
	if err != nil {
		return decimal.Zero, decimal.Zero, 0, err
	}
	o, err := validateOdds(odds)
	if err != nil {
		return decimal.Zero, decimal.Zero, 0, err
	}
	pos, err := validatePosition(position)
	if err != nil {
		return decimal.Zero, decimal.Zero, 0, err
	}
	return s, o, pos, nil
}

func validateStake(stake float64) (decimal.Decimal, error) {
	if !finite(stake) || stake < 0 {
		return decimal.Zero, cannotCompute(ReasonInvalidStake, "stake %v must be a finite number >= 0", stake)
	}
	return decimal.NewFromFloat(stake), nil
}

func validateOdds(odds float64) (decimal.Decimal, error) {
	if !finite(odds) || odds < 1 {
		return decimal.Zero, cannotCompute(ReasonInvalidOdds, "odds %v must be a finite number >= 1", odds)
	}
	return decimal.NewFromFloat(odds), nil
}

func validatePosition(position *int) (int, error) {
	if position == nil {
		return 0, cannotCompute(ReasonNotSettled, "finishing position not recorded")
	}
	if *position <= 0 {
		return 0, cannotCompute(ReasonInvalidPosition, "position %d must be a positive integer", *position)
	}
	return *position, nil
}

func finite(v float64) bool {
	return money.IsFinite(v)
}
