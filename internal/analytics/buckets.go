package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/yourusername/bet-journal/internal/models"
)

// BucketSummary is a Summary for one group of wagers
type BucketSummary struct {
	Key     string  `json:"key"`
	Summary Summary `json:"summary"`
}

// PeriodSummary is a Summary for a date range
type PeriodSummary struct {
	Label   string    `json:"label"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	Summary Summary   `json:"summary"`
}

// OddsBandSummary is a Summary for one odds band
type OddsBandSummary struct {
	Band    OddsBand `json:"band"`
	Summary Summary  `json:"summary"`
}

// OddsRangePerformance summarises settled wagers per odds band, in band order.
// Wagers without usable odds, or outside every band, are grouped in a trailing
// "unknown" band that is only present when non-empty.
func OddsRangePerformance(wagers []models.Wager, bands []OddsBand) []OddsBandSummary {
	if len(bands) == 0 {
		bands = DefaultOddsBands()
	}
	accs := make([]accumulator, len(bands))
	var unknown accumulator

	for i := range wagers {
		w := &wagers[i]
		if !countable(w) {
			continue
		}
		odds, ok := effectiveOdds(w)
		placed := false
		if ok {
			for b := range bands {
				if bands[b].Contains(odds) {
					accs[b].add(w)
					placed = true
					break
				}
			}
		}
		if !placed {
			unknown.add(w)
		}
	}

	result := make([]OddsBandSummary, 0, len(bands)+1)
	for b := range bands {
		result = append(result, OddsBandSummary{Band: bands[b], Summary: accs[b].summary()})
	}
	if unknown.count > 0 {
		result = append(result, OddsBandSummary{Band: OddsBand{Label: UnknownKey}, Summary: unknown.summary()})
	}
	return result
}

// DayOfWeekPerformance summarises settled wagers by weekday of bet date, Sunday first.
// All seven days are always present.
func DayOfWeekPerformance(wagers []models.Wager) []BucketSummary {
	var accs [7]accumulator
	for i := range wagers {
		w := &wagers[i]
		if countable(w) {
			accs[w.BetDate.Weekday()].add(w)
		}
	}

	result := make([]BucketSummary, 0, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		result = append(result, BucketSummary{Key: d.String(), Summary: accs[d].summary()})
	}
	return result
}

// WeeklyPerformance summarises settled wagers per calendar week for the weeks most
// recent weeks ending with the week containing asOf, oldest first. A zero asOf means
// the latest settled bet date. Weeks begin on weekStart.
func WeeklyPerformance(wagers []models.Wager, weeks int, asOf time.Time, weekStart time.Weekday) []PeriodSummary {
	ordered := Chronological(wagers)
	if asOf.IsZero() {
		if len(ordered) == 0 {
			return []PeriodSummary{}
		}
		asOf = ordered[len(ordered)-1].BetDate
	}
	if weeks <= 0 {
		weeks = 1
	}

	last := weekStartOf(asOf, weekStart)
	first := last.AddDate(0, 0, -7*(weeks-1))
	accs := make([]accumulator, weeks)

	for i := range ordered {
		w := &ordered[i]
		start := weekStartOf(w.BetDate, weekStart)
		if start.Before(first) || start.After(last) {
			continue
		}
		idx := int(start.Sub(first).Hours()/24) / 7
		accs[idx].add(w)
	}

	result := make([]PeriodSummary, 0, weeks)
	for i := 0; i < weeks; i++ {
		start := first.AddDate(0, 0, 7*i)
		result = append(result, PeriodSummary{
			Label:   start.Format("2006-01-02"),
			Start:   start,
			End:     start.AddDate(0, 0, 6),
			Summary: accs[i].summary(),
		})
	}
	return result
}

// BreakdownByVenue groups settled wagers by venue.
func BreakdownByVenue(wagers []models.Wager) []BucketSummary {
	return Breakdown(wagers, func(w *models.Wager) []string { return []string{w.Venue} })
}

// BreakdownByRaceClass groups settled wagers by race class.
func BreakdownByRaceClass(wagers []models.Wager) []BucketSummary {
	return Breakdown(wagers, func(w *models.Wager) []string { return []string{w.RaceClass} })
}

// BreakdownByStrategyTag groups settled wagers by strategy tag. A wager counts
// toward each of its tags.
func BreakdownByStrategyTag(wagers []models.Wager) []BucketSummary {
	return Breakdown(wagers, func(w *models.Wager) []string { return w.StrategyTags })
}

// Breakdown groups settled wagers by the keys returned from keysOf. Blank or missing
// keys go to the "unknown" bucket. Buckets are ordered by total profit descending,
// then key ascending.
func Breakdown(wagers []models.Wager, keysOf func(*models.Wager) []string) []BucketSummary {
	accs := make(map[string]*accumulator)
	for i := range wagers {
		w := &wagers[i]
		if !countable(w) {
			continue
		}
		seen := make(map[string]bool)
		for _, key := range normalizeKeys(keysOf(w)) {
			if seen[key] {
				continue
			}
			seen[key] = true
			acc, ok := accs[key]
			if !ok {
				acc = &accumulator{}
				accs[key] = acc
			}
			acc.add(w)
		}
	}

	result := make([]BucketSummary, 0, len(accs))
	for key, acc := range accs {
		result = append(result, BucketSummary{Key: key, Summary: acc.summary()})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Summary.TotalProfit != result[j].Summary.TotalProfit {
			return result[i].Summary.TotalProfit > result[j].Summary.TotalProfit
		}
		return result[i].Key < result[j].Key
	})
	return result
}

// BestWager returns the settled wager with the highest profit/loss.
// Ties go to the earliest in date order.
func BestWager(wagers []models.Wager) (models.Wager, bool) {
	return pickWager(wagers, func(candidate, current float64) bool { return candidate > current })
}

// WorstWager returns the settled wager with the lowest profit/loss.
// Ties go to the earliest in date order.
func WorstWager(wagers []models.Wager) (models.Wager, bool) {
	return pickWager(wagers, func(candidate, current float64) bool { return candidate < current })
}

func pickWager(wagers []models.Wager, better func(candidate, current float64) bool) (models.Wager, bool) {
	ordered := Chronological(wagers)
	if len(ordered) == 0 {
		return models.Wager{}, false
	}
	best := 0
	for i := 1; i < len(ordered); i++ {
		if better(*ordered[i].ProfitLoss, *ordered[best].ProfitLoss) {
			best = i
		}
	}
	return ordered[best], true
}

func normalizeKeys(keys []string) []string {
	normalized := make([]string, 0, len(keys))
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			normalized = append(normalized, k)
		}
	}
	if len(normalized) == 0 {
		return []string{UnknownKey}
	}
	return normalized
}

func weekStartOf(t time.Time, weekStart time.Weekday) time.Time {
	d := civilDate(t)
	offset := (int(d.Weekday()) - int(weekStart) + 7) % 7
	return d.AddDate(0, 0, -offset)
}
