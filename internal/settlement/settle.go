package settlement

import (
	"github.com/shopspring/decimal"
	"github.com/yourusername/bet-journal/internal/models"
)

// Settle computes the profit/loss for w according to its type. It never mutates w.
func Settle(w *models.Wager) (decimal.Decimal, error) {
	switch w.Type {
	case models.WagerTypeWin:
		return Win(w.Stake, w.Odds, w.FinishingPosition)
	case models.WagerTypePlace:
		return Place(w.Stake, w.Odds, w.FinishingPosition, PaidPlacesFor(w))
	case models.WagerTypeEachWay:
		return EachWay(w.Stake, w.Odds, ParsePlaceTerms(w.PlaceTerms), w.FinishingPosition)
	case models.WagerTypeLay:
		return Lay(w.Stake, w.Odds, w.FinishingPosition)
	case models.WagerTypeMulti:
		if w.Won == nil {
			return decimal.Zero, cannotCompute(ReasonNotSettled, "multi result not recorded")
		}
		combined := w.Odds
		if w.CombinedOdds != nil {
			combined = *w.CombinedOdds
		}
		return Multi(w.Stake, combined, *w.Won)
	case models.WagerTypeQuinella, models.WagerTypeExacta, models.WagerTypeTrifecta, models.WagerTypeFirstFour:
		if _, err := validatePosition(w.FinishingPosition); err != nil {
			return decimal.Zero, err
		}
		return Exotic(w.Stake, ParseDividend(w.Dividend), w.FlexiPercent)
	case models.WagerTypeOther:
		if w.Won == nil {
			return decimal.Zero, cannotCompute(ReasonNotSettled, "result not recorded")
		}
		return Other(w.Stake, *w.Won, w.Payout)
	default:
		return decimal.Zero, cannotCompute(ReasonUnsupportedType, "wager type %q", w.Type)
	}
}

// SettleWager returns a copy of w with ProfitLoss populated.
// On error the copy keeps ProfitLoss nil.
func SettleWager(w models.Wager) (models.Wager, error) {
	pl, err := Settle(&w)
	if err != nil {
		w.ProfitLoss = nil
		return w, err
	}
	amount := pl.InexactFloat64()
	w.ProfitLoss = &amount
	return w, nil
}

// PaidPlacesFor resolves how many places a place bet pays: the explicit override,
// then the place terms text, then DefaultPaidPlaces.
func PaidPlacesFor(w *models.Wager) int {
	if w.PaidPlaces != nil && *w.PaidPlaces > 0 {
		return *w.PaidPlaces
	}
	if w.PlaceTerms != "" {
		if terms := ParsePlaceTerms(w.PlaceTerms); !terms.PlacesDefaulted {
			return terms.Places
		}
	}
	return DefaultPaidPlaces
}
