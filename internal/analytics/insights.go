package analytics

import (
	"fmt"

	"github.com/yourusername/bet-journal/internal/models"
)

// Tone classifies an insight for presentation
type Tone string

const (
	TonePositive Tone = "positive"
	ToneNegative Tone = "negative"
	ToneNeutral  Tone = "neutral"
)

// Insight is one short observation about the user's betting
type Insight struct {
	ID      string  `json:"id"`
	Tone    Tone    `json:"tone"`
	Message string  `json:"message"`
	Value   float64 `json:"value"`
}

// InsightInput bundles the aggregates rules are evaluated against
type InsightInput struct {
	Summary   Summary
	ByType    map[models.WagerType]Summary
	OddsBands []OddsBandSummary
	DayOfWeek []BucketSummary
	Venues    []BucketSummary
	Streaks   Streaks
	Options   InsightThresholds
}

// InsightRule is a pure predicate over InsightInput plus a message template.
// Match returns the headline value and the template arguments when the rule fires.
type InsightRule struct {
	ID       string
	Tone     Tone
	Template string
	Match    func(in InsightInput) (value float64, args []any, ok bool)
}

// NewInsightInput computes the aggregates the default rules need.
func NewInsightInput(wagers []models.Wager, opts Options) InsightInput {
	return InsightInput{
		Summary:   Summarize(wagers),
		ByType:    SummarizeByType(wagers),
		OddsBands: OddsRangePerformance(wagers, opts.OddsBands),
		DayOfWeek: DayOfWeekPerformance(wagers),
		Venues:    BreakdownByVenue(wagers),
		Streaks:   CalculateStreaks(wagers),
		Options:   opts.Insights,
	}
}

// GenerateInsights evaluates rules in order and returns the ones that fire,
// capped at in.Options.MaxInsights when positive.
func GenerateInsights(in InsightInput, rules []InsightRule) []Insight {
	insights := make([]Insight, 0)
	for _, rule := range rules {
		if in.Options.MaxInsights > 0 && len(insights) >= in.Options.MaxInsights {
			break
		}
		value, args, ok := rule.Match(in)
		if !ok {
			continue
		}
		insights = append(insights, Insight{
			ID:      rule.ID,
			Tone:    rule.Tone,
			Message: fmt.Sprintf(rule.Template, args...),
			Value:   value,
		})
	}
	return insights
}

// DefaultInsightRules is the ordered rule table used for dashboards and reports.
var DefaultInsightRules = []InsightRule{
	{
		ID:       "longest-losing-streak",
		Tone:     ToneNegative,
		Template: "You are on your longest losing streak of the period (%d losers in a row).",
		Match: func(in InsightInput) (float64, []any, bool) {
			s := in.Streaks
			if s.CurrentLoss < in.Options.StreakAlert || s.CurrentLoss != s.LongestLoss {
				return 0, nil, false
			}
			return float64(s.CurrentLoss), []any{s.CurrentLoss}, true
		},
	},
	{
		ID:       "longest-winning-streak",
		Tone:     TonePositive,
		Template: "You are on your longest winning streak of the period (%d winners in a row).",
		Match: func(in InsightInput) (float64, []any, bool) {
			s := in.Streaks
			if s.CurrentWin < in.Options.StreakAlert || s.CurrentWin != s.LongestWin {
				return 0, nil, false
			}
			return float64(s.CurrentWin), []any{s.CurrentWin}, true
		},
	},
	{
		ID:       "favourites-outperform-outsiders",
		Tone:     ToneNeutral,
		Template: "Your strike rate on short-priced runners (%s) is %.2f%%, notably higher than %.2f%% on outsiders (%s).",
		Match: func(in InsightInput) (float64, []any, bool) {
			short, long, ok := priceExtremes(in)
			if !ok {
				return 0, nil, false
			}
			gap := short.Summary.StrikeRate - long.Summary.StrikeRate
			if gap < in.Options.StrikeRateGap {
				return 0, nil, false
			}
			return gap, []any{short.Band.Label, short.Summary.StrikeRate, long.Summary.StrikeRate, long.Band.Label}, true
		},
	},
	{
		ID:       "outsiders-outperform-favourites",
		Tone:     ToneNeutral,
		Template: "Your outsiders (%s) strike at %.2f%%, notably better than %.2f%% on short-priced runners (%s).",
		Match: func(in InsightInput) (float64, []any, bool) {
			short, long, ok := priceExtremes(in)
			if !ok {
				return 0, nil, false
			}
			gap := long.Summary.StrikeRate - short.Summary.StrikeRate
			if gap < in.Options.StrikeRateGap {
				return 0, nil, false
			}
			return gap, []any{long.Band.Label, long.Summary.StrikeRate, short.Summary.StrikeRate, short.Band.Label}, true
		},
	},
	{
		ID:       "most-profitable-type",
		Tone:     TonePositive,
		Template: "Your %s bets are your most profitable, returning %.2f%% on turnover.",
		Match: func(in InsightInput) (float64, []any, bool) {
			t, s, ok := extremeType(in, func(a, b float64) bool { return a > b })
			if !ok || s.POT <= 0 {
				return 0, nil, false
			}
			return s.POT, []any{t, s.POT}, true
		},
	},
	{
		ID:       "least-profitable-type",
		Tone:     ToneNegative,
		Template: "Your %s bets are costing you the most, at %.2f%% on turnover.",
		Match: func(in InsightInput) (float64, []any, bool) {
			t, s, ok := extremeType(in, func(a, b float64) bool { return a < b })
			if !ok || s.POT >= 0 {
				return 0, nil, false
			}
			return s.POT, []any{t, s.POT}, true
		},
	},
	{
		ID:       "best-day",
		Tone:     TonePositive,
		Template: "%s is your most profitable day, %.2f ahead from %d bets.",
		Match: func(in InsightInput) (float64, []any, bool) {
			var best *BucketSummary
			for i := range in.DayOfWeek {
				d := &in.DayOfWeek[i]
				if d.Summary.Count < in.Options.MinSample || d.Summary.TotalProfit <= 0 {
					continue
				}
				if best == nil || d.Summary.TotalProfit > best.Summary.TotalProfit {
					best = d
				}
			}
			if best == nil {
				return 0, nil, false
			}
			return best.Summary.TotalProfit, []any{best.Key, best.Summary.TotalProfit, best.Summary.Count}, true
		},
	},
	{
		ID:       "top-venue",
		Tone:     TonePositive,
		Template: "%s is your best venue, %.2f ahead at %.2f%% on turnover.",
		Match: func(in InsightInput) (float64, []any, bool) {
			for _, v := range in.Venues {
				if v.Key == UnknownKey || v.Summary.Count < in.Options.MinSample {
					continue
				}
				if v.Summary.TotalProfit <= 0 {
					return 0, nil, false
				}
				return v.Summary.TotalProfit, []any{v.Key, v.Summary.TotalProfit, v.Summary.POT}, true
			}
			return 0, nil, false
		},
	},
	{
		ID:       "overall-profit",
		Tone:     TonePositive,
		Template: "You are %.2f%% in profit on turnover across %d bets.",
		Match: func(in InsightInput) (float64, []any, bool) {
			s := in.Summary
			if s.Count < in.Options.MinSample || s.POT <= 0 {
				return 0, nil, false
			}
			return s.POT, []any{s.POT, s.Count}, true
		},
	},
	{
		ID:       "overall-loss",
		Tone:     ToneNegative,
		Template: "You are down %.2f%% on turnover across %d bets.",
		Match: func(in InsightInput) (float64, []any, bool) {
			s := in.Summary
			if s.Count < in.Options.MinSample || s.POT >= 0 {
				return 0, nil, false
			}
			return s.POT, []any{-s.POT, s.Count}, true
		},
	},
}

// priceExtremes returns the shortest and longest odds bands holding enough bets.
func priceExtremes(in InsightInput) (OddsBandSummary, OddsBandSummary, bool) {
	eligible := make([]OddsBandSummary, 0, len(in.OddsBands))
	for _, b := range in.OddsBands {
		if b.Band.Label == UnknownKey || b.Summary.Count < in.Options.MinSample {
			continue
		}
		eligible = append(eligible, b)
	}
	if len(eligible) < 2 {
		return OddsBandSummary{}, OddsBandSummary{}, false
	}
	return eligible[0], eligible[len(eligible)-1], true
}

// extremeType walks wager types in display order and keeps the first type that
// beats all others on POT.
func extremeType(in InsightInput, better func(a, b float64) bool) (models.WagerType, Summary, bool) {
	var (
		bestType models.WagerType
		best     Summary
		found    bool
	)
	for _, t := range models.WagerTypes {
		s, ok := in.ByType[t]
		if !ok || s.Count < in.Options.MinSample {
			continue
		}
		if !found || better(s.POT, best.POT) {
			bestType, best, found = t, s, true
		}
	}
	return bestType, best, found
}
