package analytics

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/yourusername/bet-journal/internal/models"
	"github.com/yourusername/bet-journal/internal/money"
)

// SeriesPoint is one wager on the running profit/loss curve
type SeriesPoint struct {
	WagerID    uuid.UUID `json:"wager_id"`
	Date       time.Time `json:"date"`
	ProfitLoss float64   `json:"profit_loss"`
	Cumulative float64   `json:"cumulative"`
}

// ProfitSeries is the cumulative profit/loss, one point per settled wager
type ProfitSeries []SeriesPoint

// BuildProfitSeries orders settled wagers by bet date and accumulates their profit/loss.
func BuildProfitSeries(wagers []models.Wager) ProfitSeries {
	ordered := Chronological(wagers)
	series := make(ProfitSeries, 0, len(ordered))
	running := decimal.Zero
	for _, w := range ordered {
		running = running.Add(decimal.NewFromFloat(*w.ProfitLoss))
		series = append(series, SeriesPoint{
			WagerID:    w.ID,
			Date:       civilDate(w.BetDate),
			ProfitLoss: money.RoundFloat(*w.ProfitLoss),
			Cumulative: money.Round2(running).InexactFloat64(),
		})
	}
	return series
}

// Final returns the last cumulative value, or 0 for an empty series.
func (s ProfitSeries) Final() float64 {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1].Cumulative
}

// ToCSV exports the series to a CSV string
func (s ProfitSeries) ToCSV() string {
	var buf bytes.Buffer
	buf.WriteString("date,wager_id,profit_loss,cumulative\n")
	for _, point := range s {
		buf.WriteString(point.Date.Format("2006-01-02"))
		buf.WriteString(",")
		buf.WriteString(point.WagerID.String())
		buf.WriteString(",")
		buf.WriteString(formatAmount(point.ProfitLoss))
		buf.WriteString(",")
		buf.WriteString(formatAmount(point.Cumulative))
		buf.WriteString("\n")
	}
	return buf.String()
}

// ToJSON exports the series to a JSON string
func (s ProfitSeries) ToJSON() string {
	data, _ := json.Marshal(s)
	return string(data)
}

// MonthlyPoint holds the totals for one calendar month
type MonthlyPoint struct {
	Month  string    `json:"month"` // YYYY-MM
	Start  time.Time `json:"start"`
	Profit float64   `json:"profit"`
	Stake  float64   `json:"stake"`
	ROI    float64   `json:"roi"`
	Count  int       `json:"count"`
}

// PeriodValue is a labelled scalar for simple charts
type PeriodValue struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// MonthlySeries buckets settled wagers by calendar month for the months most recent
// months ending with the month of asOf. A zero asOf means the latest settled bet date;
// months <= 0 spans back to the earliest settled month. Months without wagers are
// included with zero totals.
func MonthlySeries(wagers []models.Wager, months int, asOf time.Time) []MonthlyPoint {
	ordered := Chronological(wagers)
	if asOf.IsZero() {
		if len(ordered) == 0 {
			return []MonthlyPoint{}
		}
		asOf = ordered[len(ordered)-1].BetDate
	}

	last := monthStart(asOf)
	first := last
	if months > 0 {
		first = last.AddDate(0, -(months - 1), 0)
	} else if len(ordered) > 0 {
		if earliest := monthStart(ordered[0].BetDate); earliest.Before(last) {
			first = earliest
		}
	}

	type bucket struct {
		profit decimal.Decimal
		stake  decimal.Decimal
		count  int
	}
	buckets := make(map[time.Time]*bucket)
	for _, w := range ordered {
		m := monthStart(w.BetDate)
		if m.Before(first) || m.After(last) {
			continue
		}
		b, ok := buckets[m]
		if !ok {
			b = &bucket{}
			buckets[m] = b
		}
		b.profit = b.profit.Add(decimal.NewFromFloat(*w.ProfitLoss))
		if money.IsFinite(w.Stake) {
			b.stake = b.stake.Add(decimal.NewFromFloat(w.Stake))
		}
		b.count++
	}

	points := make([]MonthlyPoint, 0)
	for m := first; !m.After(last); m = m.AddDate(0, 1, 0) {
		point := MonthlyPoint{Month: m.Format("2006-01"), Start: m}
		if b, ok := buckets[m]; ok {
			point.Profit = money.Round2(b.profit).InexactFloat64()
			point.Stake = money.Round2(b.stake).InexactFloat64()
			point.Count = b.count
			if !b.stake.IsZero() {
				point.ROI = money.Round2(b.profit.Div(b.stake).Mul(decimal.NewFromInt(100))).InexactFloat64()
			}
		}
		points = append(points, point)
	}
	return points
}

// MonthlyProfitSeries returns total profit per month for the window.
func MonthlyProfitSeries(wagers []models.Wager, months int, asOf time.Time) []PeriodValue {
	points := MonthlySeries(wagers, months, asOf)
	values := make([]PeriodValue, 0, len(points))
	for _, p := range points {
		values = append(values, PeriodValue{Label: p.Month, Value: p.Profit})
	}
	return values
}

// MonthlyROISeries returns ROI per month for the window.
func MonthlyROISeries(wagers []models.Wager, months int, asOf time.Time) []PeriodValue {
	points := MonthlySeries(wagers, months, asOf)
	values := make([]PeriodValue, 0, len(points))
	for _, p := range points {
		values = append(values, PeriodValue{Label: p.Month, Value: p.ROI})
	}
	return values
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', money.Places, 64)
}
