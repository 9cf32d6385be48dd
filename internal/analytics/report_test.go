package analytics

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/bet-journal/internal/config"
	"github.com/yourusername/bet-journal/internal/models"
)

func TestBuildReport(t *testing.T) {
	wagers := sampleWagers()
	report := BuildReport(wagers, DefaultOptions(), time.Time{})

	assert.Equal(t, Summarize(wagers), report.Summary)
	assert.Len(t, report.ByType, 2)
	assert.Len(t, report.Monthly, 6)
	assert.Len(t, report.Weekly, 8)
	assert.Len(t, report.DayOfWeek, 7)
	assert.Len(t, report.Series, 3)
	assert.Equal(t, 15.0, report.Series.Final())
	assert.NotNil(t, report.Insights)
}

func TestBuildReportIgnoresUnsettled(t *testing.T) {
	tagged := func(w models.Wager, venue, class string, tags ...string) models.Wager {
		w.Venue = venue
		w.RaceClass = class
		w.StrategyTags = tags
		return w
	}
	base := []models.Wager{
		tagged(settled("2024-01-06", models.WagerTypeWin, 10, 1.8, 8), "Randwick", "Group 1", "favourite"),
		tagged(settled("2024-01-13", models.WagerTypeWin, 10, 2.5, -10), "Randwick", "BM72", "favourite"),
		tagged(settled("2024-01-20", models.WagerTypePlace, 20, 2, 20), "Flemington", "BM72"),
		tagged(settled("2024-02-03", models.WagerTypeEachWay, 10, 12, -10), "", "", "longshot"),
		tagged(settled("2024-02-10", models.WagerTypeLay, 10, 4, 10), "Rosehill", "Maiden"),
		tagged(settled("2024-02-17", models.WagerTypeTrifecta, 5, 0, 40), "Rosehill", "Group 1", "longshot"),
		tagged(settled("2024-02-24", models.WagerTypeWin, 10, 15, -10), "Randwick", "Maiden"),
	}

	withPending := make([]models.Wager, 0, len(base)+4)
	withPending = append(withPending, tagged(pending("2024-01-02", 100), "Ascot", "Listed", "speculative"))
	withPending = append(withPending, base[:4]...)
	withPending = append(withPending, tagged(pending("2024-02-05", 40), "Randwick", "Group 1", "favourite"))
	withPending = append(withPending, base[4:]...)
	nonFinite := tagged(pending("2024-02-26", 25), "Moonee Valley", "Cup", "speculative")
	nonFinite.ProfitLoss = models.Float64Ptr(math.NaN())
	withPending = append(withPending, nonFinite, tagged(pending("2024-03-30", 50), "Caulfield", "Group 2"))

	opts := DefaultOptions()
	opts.Insights.MinSample = 1
	asOf := day("2024-03-31")

	want := BuildReport(base, opts, asOf)
	got := BuildReport(withPending, opts, asOf)
	assert.Equal(t, want, got)
	assert.NotEmpty(t, got.Insights)
	assert.Equal(t, CalculateStreaks(base), CalculateStreaks(withPending))
	assert.Equal(t, MonthlySeries(base, 0, time.Time{}), MonthlySeries(withPending, 0, time.Time{}))
	assert.Equal(t, WeeklyPerformance(base, 4, time.Time{}, time.Monday), WeeklyPerformance(withPending, 4, time.Time{}, time.Monday))
}

func TestBuildEmailReport(t *testing.T) {
	a := settled("2024-03-01", models.WagerTypeWin, 10, 3, 20)
	a.Venue = "Randwick"
	b := settled("2024-03-02", models.WagerTypeWin, 10, 3, 5)
	b.Venue = "Rosehill"
	c := settled("2024-03-03", models.WagerTypeWin, 10, 3, -10)
	d := settled("2024-03-04", models.WagerTypeWin, 10, 3, 1)
	d.Venue = "Doomben"
	outside := settled("2024-04-01", models.WagerTypeWin, 10, 3, 500)
	outside.Venue = "Flemington"

	report := BuildEmailReport([]models.Wager{a, b, c, d, outside}, day("2024-03-01"), day("2024-03-31"), 2)

	assert.Equal(t, 4, report.Summary.Count)
	assert.Equal(t, 16.0, report.Summary.TotalProfit)
	require.NotNil(t, report.Best)
	assert.Equal(t, a.ID, report.Best.ID)
	require.NotNil(t, report.Worst)
	assert.Equal(t, c.ID, report.Worst.ID)
	require.Len(t, report.TopVenues, 2)
	assert.Equal(t, "Randwick", report.TopVenues[0].Key)
	assert.Equal(t, "Rosehill", report.TopVenues[1].Key)

	empty := BuildEmailReport(nil, day("2024-03-01"), day("2024-03-31"), 3)
	assert.Nil(t, empty.Best)
	assert.Nil(t, empty.Worst)
	assert.Empty(t, empty.TopVenues)
}

func TestAssistantContext(t *testing.T) {
	report := BuildReport(sampleWagers(), DefaultOptions(), time.Time{})
	text := AssistantContext(report)

	assert.True(t, strings.HasPrefix(text, "Settled bets: 3 (wins 2, losses 1)\n"))
	assert.Contains(t, text, "Total profit: 15.00\n")
	assert.Contains(t, text, "Profit on turnover: 37.50%\n")
	assert.Contains(t, text, "- win: 2 bets, profit 10.00, strike rate 50.00%, POT 50.00%\n")
	assert.Less(t, strings.Index(text, "- win:"), strings.Index(text, "- place:"))
	assert.Equal(t, text, AssistantContext(report))
}

func TestFromConfig(t *testing.T) {
	opts, err := FromConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultOptions(), opts)

	opts, err = FromConfig(&config.AnalyticsConfig{
		OddsBands:     []config.OddsBandConfig{{Label: "short", Min: 1, Max: 3}, {Label: "long", Min: 3}},
		MonthlyWindow: 12,
		WeekStart:     "sunday",
		Insights:      config.InsightsConfig{MaxInsights: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, []OddsBand{{Label: "short", Min: 1, Max: 3}, {Label: "long", Min: 3}}, opts.OddsBands)
	assert.Equal(t, 12, opts.MonthlyWindow)
	assert.Equal(t, 8, opts.WeeklyWindow)
	assert.Equal(t, time.Sunday, opts.WeekStart)
	assert.Equal(t, 2, opts.Insights.MaxInsights)
	assert.Equal(t, 5, opts.Insights.MinSample)

	_, err = FromConfig(&config.AnalyticsConfig{WeekStart: "someday"})
	assert.Error(t, err)
}
