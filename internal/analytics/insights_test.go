package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/bet-journal/internal/models"
)

func thresholds() InsightThresholds {
	return InsightThresholds{MinSample: 5, StrikeRateGap: 10, StreakAlert: 3}
}

func insightIDs(insights []Insight) []string {
	ids := make([]string, 0, len(insights))
	for _, in := range insights {
		ids = append(ids, in.ID)
	}
	return ids
}

func TestGenerateInsightsFavouritesAndStreak(t *testing.T) {
	in := InsightInput{
		Options: thresholds(),
		Streaks: Streaks{CurrentLoss: 4, LongestLoss: 4, LongestWin: 2},
		OddsBands: []OddsBandSummary{
			{Band: OddsBand{Label: "<2", Min: 1, Max: 2}, Summary: Summary{Count: 10, StrikeRate: 60}},
			{Band: OddsBand{Label: "2-4", Min: 2, Max: 4}, Summary: Summary{Count: 1, StrikeRate: 100}},
			{Band: OddsBand{Label: "10+", Min: 10}, Summary: Summary{Count: 10, StrikeRate: 10}},
			{Band: OddsBand{Label: UnknownKey}, Summary: Summary{Count: 50, StrikeRate: 0}},
		},
	}

	insights := GenerateInsights(in, DefaultInsightRules)
	require.Equal(t, []string{"longest-losing-streak", "favourites-outperform-outsiders"}, insightIDs(insights))

	assert.Equal(t, ToneNegative, insights[0].Tone)
	assert.Equal(t, 4.0, insights[0].Value)
	assert.Equal(t,
		"Your strike rate on short-priced runners (<2) is 60.00%, notably higher than 10.00% on outsiders (10+).",
		insights[1].Message)
	assert.Equal(t, 50.0, insights[1].Value)
}

func TestGenerateInsightsStreakNotLongest(t *testing.T) {
	in := InsightInput{
		Options: thresholds(),
		Streaks: Streaks{CurrentLoss: 3, LongestLoss: 5},
	}
	assert.Empty(t, GenerateInsights(in, DefaultInsightRules))
}

func TestGenerateInsightsTypeRanking(t *testing.T) {
	in := InsightInput{
		Options: thresholds(),
		ByType: map[models.WagerType]Summary{
			models.WagerTypePlace: {Count: 6, POT: 12},
			models.WagerTypeWin:   {Count: 6, POT: 12},
			models.WagerTypeLay:   {Count: 9, POT: -30},
			models.WagerTypeMulti: {Count: 2, POT: 400},
		},
	}

	insights := GenerateInsights(in, DefaultInsightRules)
	require.Equal(t, []string{"most-profitable-type", "least-profitable-type"}, insightIDs(insights))
	assert.Equal(t, "Your win bets are your most profitable, returning 12.00% on turnover.", insights[0].Message)
	assert.Equal(t, "Your lay bets are costing you the most, at -30.00% on turnover.", insights[1].Message)
}

func TestGenerateInsightsCap(t *testing.T) {
	in := InsightInput{
		Options: InsightThresholds{MinSample: 1, StreakAlert: 1, StrikeRateGap: 10, MaxInsights: 1},
		Streaks: Streaks{CurrentWin: 2, LongestWin: 2},
		Summary: Summary{Count: 10, POT: 8},
	}
	insights := GenerateInsights(in, DefaultInsightRules)
	require.Len(t, insights, 1)
	assert.Equal(t, "longest-winning-streak", insights[0].ID)

	in.Options.MaxInsights = 0
	assert.Equal(t, []string{"longest-winning-streak", "overall-profit"}, insightIDs(GenerateInsights(in, DefaultInsightRules)))
}

func TestGenerateInsightsCustomRules(t *testing.T) {
	rules := []InsightRule{{
		ID:       "busy",
		Tone:     ToneNeutral,
		Template: "%d bets settled",
		Match: func(in InsightInput) (float64, []any, bool) {
			return float64(in.Summary.Count), []any{in.Summary.Count}, in.Summary.Count > 0
		},
	}}

	assert.Empty(t, GenerateInsights(InsightInput{}, rules))
	got := GenerateInsights(InsightInput{Summary: Summary{Count: 3}}, rules)
	assert.Equal(t, []Insight{{ID: "busy", Tone: ToneNeutral, Message: "3 bets settled", Value: 3}}, got)
}

func TestGenerateInsightsDeterministic(t *testing.T) {
	wagers := make([]models.Wager, 0)
	venues := []string{"Randwick", "Flemington", "Eagle Farm"}
	for i := 0; i < 30; i++ {
		odds := 1.5
		pl := 5.0
		if i%3 == 0 {
			odds = 12
			pl = -10
		}
		w := settled("2024-02-01", models.WagerTypeWin, 10, odds, pl)
		w.BetDate = w.BetDate.AddDate(0, 0, i)
		w.Venue = venues[i%len(venues)]
		wagers = append(wagers, w)
	}

	first := GenerateInsights(NewInsightInput(wagers, DefaultOptions()), DefaultInsightRules)
	second := GenerateInsights(NewInsightInput(wagers, DefaultOptions()), DefaultInsightRules)
	assert.NotEmpty(t, first)
	assert.Equal(t, first, second)
	assert.LessOrEqual(t, len(first), DefaultOptions().Insights.MaxInsights)
}
