package models

import (
	"time"

	"github.com/google/uuid"
)

// WagerType is the closed set of bet kinds a journal entry can record
type WagerType string

const (
	WagerTypeWin       WagerType = "win"
	WagerTypePlace     WagerType = "place"
	WagerTypeEachWay   WagerType = "each-way"
	WagerTypeLay       WagerType = "lay"
	WagerTypeMulti     WagerType = "multi"
	WagerTypeQuinella  WagerType = "quinella"
	WagerTypeExacta    WagerType = "exacta"
	WagerTypeTrifecta  WagerType = "trifecta"
	WagerTypeFirstFour WagerType = "first-four"
	WagerTypeOther     WagerType = "other"
)

// WagerTypes lists every wager type in display order
var WagerTypes = []WagerType{
	WagerTypeWin,
	WagerTypePlace,
	WagerTypeEachWay,
	WagerTypeLay,
	WagerTypeMulti,
	WagerTypeQuinella,
	WagerTypeExacta,
	WagerTypeTrifecta,
	WagerTypeFirstFour,
	WagerTypeOther,
}

// IsExotic reports whether the type settles off a posted tote dividend
func (t WagerType) IsExotic() bool {
	switch t {
	case WagerTypeQuinella, WagerTypeExacta, WagerTypeTrifecta, WagerTypeFirstFour:
		return true
	default:
		return false
	}
}

// Valid reports whether t is one of the known wager types
func (t WagerType) Valid() bool {
	for _, known := range WagerTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ParseWagerType maps user input onto a WagerType
func ParseWagerType(s string) (WagerType, error) {
	t := WagerType(s)
	switch s {
	case "eachway", "each_way", "ew":
		t = WagerTypeEachWay
	case "first_four", "firstfour":
		t = WagerTypeFirstFour
	}
	if !t.Valid() {
		return "", ErrUnknownWagerType
	}
	return t, nil
}

// Wager represents one journaled bet, pending or settled
type Wager struct {
	ID                uuid.UUID `db:"id" json:"id" yaml:"id"`
	UserID            uuid.UUID `db:"user_id" json:"user_id" yaml:"user_id"`
	Type              WagerType `db:"wager_type" json:"type" yaml:"type" validate:"required,wagertype"`
	Stake             float64   `db:"stake" json:"stake" yaml:"stake" validate:"gte=0"`
	Odds              float64   `db:"odds" json:"odds" yaml:"odds" validate:"omitempty,gte=1"`
	FinishingPosition *int      `db:"finishing_position" json:"finishing_position" yaml:"finishing_position" validate:"omitempty,gt=0"`
	ProfitLoss        *float64  `db:"profit_loss" json:"profit_loss" yaml:"profit_loss"`
	BetDate           time.Time `db:"bet_date" json:"bet_date" yaml:"bet_date" validate:"required"`

	Venue         string   `db:"venue" json:"venue" yaml:"venue"`
	RaceClass     string   `db:"race_class" json:"race_class" yaml:"race_class"`
	ExoticNumbers string   `db:"exotic_numbers" json:"exotic_numbers" yaml:"exotic_numbers"`
	Description   string   `db:"description" json:"description" yaml:"description"`
	Notes         string   `db:"notes" json:"notes" yaml:"notes"`
	StrategyTags  []string `db:"strategy_tags" json:"strategy_tags" yaml:"strategy_tags"`

	PlaceTerms   string   `db:"place_terms" json:"place_terms" yaml:"place_terms"` // e.g. "1/4 odds, 3 places"
	PaidPlaces   *int     `db:"paid_places" json:"paid_places" yaml:"paid_places" validate:"omitempty,gt=0"`
	CombinedOdds *float64 `db:"combined_odds" json:"combined_odds" yaml:"combined_odds"`
	Dividend     string   `db:"dividend" json:"dividend" yaml:"dividend"` // raw tote dividend, may carry "$"
	FlexiPercent *float64 `db:"flexi_percent" json:"flexi_percent" yaml:"flexi_percent"`
	Payout       *float64 `db:"payout" json:"payout" yaml:"payout"`
	Won          *bool    `db:"won" json:"won" yaml:"won"` // multi: all legs won; other: declared result

	CreatedAt time.Time `db:"created_at" json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at" yaml:"updated_at"`
}

// IsSettled reports whether the wager carries a computed profit/loss
func (w *Wager) IsSettled() bool {
	return w.ProfitLoss != nil
}

// PL returns the settled profit/loss, or 0 when pending
func (w *Wager) PL() float64 {
	if w.ProfitLoss == nil {
		return 0
	}
	return *w.ProfitLoss
}

// GetROI returns the return on the wager's own stake as a percentage
func (w *Wager) GetROI() float64 {
	if w.Stake == 0 {
		return 0
	}
	return (w.PL() / w.Stake) * 100
}

// IsWin reports whether the settled result was profitable
func (w *Wager) IsWin() bool {
	return w.ProfitLoss != nil && *w.ProfitLoss > 0
}

// IntPtr returns a pointer to v
func IntPtr(v int) *int {
	return &v
}

// Float64Ptr returns a pointer to v
func Float64Ptr(v float64) *float64 {
	return &v
}

// BoolPtr returns a pointer to v
func BoolPtr(v bool) *bool {
	return &v
}
