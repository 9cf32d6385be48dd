package analytics

import (
	"fmt"
	"strings"
	"time"

	"github.com/yourusername/bet-journal/internal/models"
)

// Report bundles every dashboard aggregate for one set of wagers
type Report struct {
	AsOf         time.Time                    `json:"as_of"`
	Summary      Summary                      `json:"summary"`
	ByType       map[models.WagerType]Summary `json:"by_type"`
	Monthly      []MonthlyPoint               `json:"monthly"`
	Weekly       []PeriodSummary              `json:"weekly"`
	Streaks      Streaks                      `json:"streaks"`
	OddsBands    []OddsBandSummary            `json:"odds_bands"`
	DayOfWeek    []BucketSummary              `json:"day_of_week"`
	Venues       []BucketSummary              `json:"venues"`
	RaceClasses  []BucketSummary              `json:"race_classes"`
	StrategyTags []BucketSummary              `json:"strategy_tags"`
	Series       ProfitSeries                 `json:"series"`
	Insights     []Insight                    `json:"insights"`
}

// BuildReport computes the full aggregate bundle. A zero asOf anchors the
// monthly and weekly windows on the latest settled bet.
func BuildReport(wagers []models.Wager, opts Options, asOf time.Time) Report {
	in := NewInsightInput(wagers, opts)
	return Report{
		AsOf:         asOf,
		Summary:      in.Summary,
		ByType:       in.ByType,
		Monthly:      MonthlySeries(wagers, opts.MonthlyWindow, asOf),
		Weekly:       WeeklyPerformance(wagers, opts.WeeklyWindow, asOf, opts.WeekStart),
		Streaks:      in.Streaks,
		OddsBands:    in.OddsBands,
		DayOfWeek:    in.DayOfWeek,
		Venues:       in.Venues,
		RaceClasses:  BreakdownByRaceClass(wagers),
		StrategyTags: BreakdownByStrategyTag(wagers),
		Series:       BuildProfitSeries(wagers),
		Insights:     GenerateInsights(in, DefaultInsightRules),
	}
}

// EmailReport is the input for the periodic email composer
type EmailReport struct {
	From      time.Time       `json:"from"`
	To        time.Time       `json:"to"`
	Summary   Summary         `json:"summary"`
	Best      *models.Wager   `json:"best,omitempty"`
	Worst     *models.Wager   `json:"worst,omitempty"`
	TopVenues []BucketSummary `json:"top_venues"`
}

// BuildEmailReport summarises the wagers dated within [from, to]. Only the
// topN most profitable named venues are kept; topN <= 0 keeps all.
func BuildEmailReport(wagers []models.Wager, from, to time.Time, topN int) EmailReport {
	period := FilterRange(wagers, from, to)
	report := EmailReport{
		From:      from,
		To:        to,
		Summary:   Summarize(period),
		TopVenues: make([]BucketSummary, 0),
	}
	if best, ok := BestWager(period); ok {
		report.Best = &best
	}
	if worst, ok := WorstWager(period); ok {
		report.Worst = &worst
	}
	for _, v := range BreakdownByVenue(period) {
		if v.Key == UnknownKey {
			continue
		}
		if topN > 0 && len(report.TopVenues) >= topN {
			break
		}
		report.TopVenues = append(report.TopVenues, v)
	}
	return report
}

// AssistantContext renders the summary and per-type breakdown as plain text
// for a text-generation collaborator. Output is stable for equal reports.
func AssistantContext(r Report) string {
	var b strings.Builder
	s := r.Summary
	fmt.Fprintf(&b, "Settled bets: %d (wins %d, losses %d)\n", s.Count, s.Wins, s.Losses)
	fmt.Fprintf(&b, "Total profit: %.2f\n", s.TotalProfit)
	fmt.Fprintf(&b, "Turnover: %.2f\n", s.Turnover)
	fmt.Fprintf(&b, "Strike rate: %.2f%%\n", s.StrikeRate)
	fmt.Fprintf(&b, "Profit on turnover: %.2f%%\n", s.POT)
	fmt.Fprintf(&b, "Average odds: %.2f\n", s.AverageOdds)
	fmt.Fprintf(&b, "Best win: %.2f, worst loss: %.2f\n", s.BestWin, s.WorstLoss)
	fmt.Fprintf(&b, "Streaks: current win %d, current loss %d, longest win %d, longest loss %d\n",
		r.Streaks.CurrentWin, r.Streaks.CurrentLoss, r.Streaks.LongestWin, r.Streaks.LongestLoss)

	if len(r.ByType) > 0 {
		b.WriteString("By bet type:\n")
		for _, t := range models.WagerTypes {
			ts, ok := r.ByType[t]
			if !ok {
				continue
			}
			fmt.Fprintf(&b, "- %s: %d bets, profit %.2f, strike rate %.2f%%, POT %.2f%%\n",
				t, ts.Count, ts.TotalProfit, ts.StrikeRate, ts.POT)
		}
	}

	if len(r.Insights) > 0 {
		b.WriteString("Insights:\n")
		for _, in := range r.Insights {
			fmt.Fprintf(&b, "- %s\n", in.Message)
		}
	}
	return b.String()
}
