// Package analytics aggregates settled wagers into the summaries, time series,
// streaks, buckets and insights consumed by the dashboard, the monthly email
// and the assistant context builder.
//
// Every function is pure: inputs are never mutated, unsettled wagers
// (nil ProfitLoss) are ignored, and ratios with a zero denominator are 0.
// Sums carry full precision; values are rounded to two places on output.
package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yourusername/bet-journal/internal/models"
	"github.com/yourusername/bet-journal/internal/money"
)

// Summary holds the period metrics for a set of wagers
type Summary struct {
	TotalProfit float64 `json:"total_profit"`
	Turnover    float64 `json:"turnover"`
	StrikeRate  float64 `json:"strike_rate"`
	POT         float64 `json:"pot"`
	BestWin     float64 `json:"best_win"`
	WorstLoss   float64 `json:"worst_loss"`
	Count       int     `json:"count"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
	AverageOdds float64 `json:"average_odds"`
}

// accumulator collects full-precision totals for one bucket.
type accumulator struct {
	profit    decimal.Decimal
	stake     decimal.Decimal
	oddsSum   decimal.Decimal
	oddsCount int
	count     int
	wins      int
	losses    int
	bestWin   float64
	worstLoss float64
}

func (a *accumulator) add(w *models.Wager) {
	pl := *w.ProfitLoss
	a.profit = a.profit.Add(decimal.NewFromFloat(pl))
	if money.IsFinite(w.Stake) {
		a.stake = a.stake.Add(decimal.NewFromFloat(w.Stake))
	}
	if odds, ok := effectiveOdds(w); ok {
		a.oddsSum = a.oddsSum.Add(decimal.NewFromFloat(odds))
		a.oddsCount++
	}
	a.count++
	switch {
	case pl > 0:
		a.wins++
		if pl > a.bestWin {
			a.bestWin = pl
		}
	case pl < 0:
		a.losses++
		if pl < a.worstLoss {
			a.worstLoss = pl
		}
	}
}

func (a *accumulator) summary() Summary {
	s := Summary{
		TotalProfit: money.Round2(a.profit).InexactFloat64(),
		Turnover:    money.Round2(a.stake).InexactFloat64(),
		BestWin:     money.RoundFloat(a.bestWin),
		WorstLoss:   money.RoundFloat(a.worstLoss),
		Count:       a.count,
		Wins:        a.wins,
		Losses:      a.losses,
	}
	if a.count > 0 {
		s.StrikeRate = money.RoundFloat(money.Ratio(float64(a.wins), float64(a.count)))
	}
	if !a.stake.IsZero() {
		s.POT = money.Round2(a.profit.Div(a.stake).Mul(decimal.NewFromInt(100))).InexactFloat64()
	}
	if a.oddsCount > 0 {
		s.AverageOdds = money.Round2(a.oddsSum.Div(decimal.NewFromInt(int64(a.oddsCount)))).InexactFloat64()
	}
	return s
}

// Summarize computes the period summary over the settled wagers in wagers.
func Summarize(wagers []models.Wager) Summary {
	var acc accumulator
	for i := range wagers {
		if countable(&wagers[i]) {
			acc.add(&wagers[i])
		}
	}
	return acc.summary()
}

// SummarizeByType computes a Summary per wager type. Types without settled wagers are absent.
func SummarizeByType(wagers []models.Wager) map[models.WagerType]Summary {
	accs := make(map[models.WagerType]*accumulator)
	for i := range wagers {
		w := &wagers[i]
		if !countable(w) {
			continue
		}
		acc, ok := accs[w.Type]
		if !ok {
			acc = &accumulator{}
			accs[w.Type] = acc
		}
		acc.add(w)
	}

	result := make(map[models.WagerType]Summary, len(accs))
	for t, acc := range accs {
		result[t] = acc.summary()
	}
	return result
}

// Settled returns the settled wagers of wagers, preserving order.
func Settled(wagers []models.Wager) []models.Wager {
	settled := make([]models.Wager, 0, len(wagers))
	for i := range wagers {
		if countable(&wagers[i]) {
			settled = append(settled, wagers[i])
		}
	}
	return settled
}

// FilterRange keeps wagers whose bet date falls within [from, to] by calendar date.
// A zero bound is open.
func FilterRange(wagers []models.Wager, from, to time.Time) []models.Wager {
	filtered := make([]models.Wager, 0, len(wagers))
	for _, w := range wagers {
		d := civilDate(w.BetDate)
		if !from.IsZero() && d.Before(civilDate(from)) {
			continue
		}
		if !to.IsZero() && d.After(civilDate(to)) {
			continue
		}
		filtered = append(filtered, w)
	}
	return filtered
}

// Chronological returns the settled wagers sorted by bet date ascending.
// Wagers on the same date keep their input order.
func Chronological(wagers []models.Wager) []models.Wager {
	sorted := Settled(wagers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return civilDate(sorted[i].BetDate).Before(civilDate(sorted[j].BetDate))
	})
	return sorted
}

// countable reports whether w takes part in aggregation.
func countable(w *models.Wager) bool {
	return w.ProfitLoss != nil && money.IsFinite(*w.ProfitLoss)
}

func effectiveOdds(w *models.Wager) (float64, bool) {
	odds := w.Odds
	if odds == 0 && w.CombinedOdds != nil {
		odds = *w.CombinedOdds
	}
	if !money.IsFinite(odds) || odds < 1 {
		return 0, false
	}
	return odds, true
}

// civilDate strips the clock from t, keeping the calendar date as written.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
