package analytics

import (
	"fmt"
	"strings"
	"time"

	"github.com/yourusername/bet-journal/internal/config"
)

// UnknownKey labels the bucket for wagers lacking a grouping value.
const UnknownKey = "unknown"

// OddsBand is a half-open odds range [Min, Max). Max of 0 means unbounded.
type OddsBand struct {
	Label string  `json:"label"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// Contains reports whether odds falls within the band.
func (b OddsBand) Contains(odds float64) bool {
	if odds < b.Min {
		return false
	}
	return b.Max == 0 || odds < b.Max
}

// InsightThresholds tune when insight rules fire.
type InsightThresholds struct {
	MinSample     int
	StrikeRateGap float64
	StreakAlert   int
	MaxInsights   int
}

// Options configures the aggregations that need windows or bands.
type Options struct {
	OddsBands     []OddsBand
	MonthlyWindow int
	WeeklyWindow  int
	WeekStart     time.Weekday
	Insights      InsightThresholds
}

// DefaultOddsBands returns <2, 2-4, 4-6, 6-10 and 10+.
func DefaultOddsBands() []OddsBand {
	return []OddsBand{
		{Label: "<2", Min: 1, Max: 2},
		{Label: "2-4", Min: 2, Max: 4},
		{Label: "4-6", Min: 4, Max: 6},
		{Label: "6-10", Min: 6, Max: 10},
		{Label: "10+", Min: 10},
	}
}

// DefaultOptions returns the settings used by the dashboard.
func DefaultOptions() Options {
	return Options{
		OddsBands:     DefaultOddsBands(),
		MonthlyWindow: 6,
		WeeklyWindow:  8,
		WeekStart:     time.Monday,
		Insights: InsightThresholds{
			MinSample:     5,
			StrikeRateGap: 10,
			StreakAlert:   3,
			MaxInsights:   5,
		},
	}
}

// FromConfig converts the analytics config section to Options.
// Zero values keep their defaults.
func FromConfig(cfg *config.AnalyticsConfig) (Options, error) {
	opts := DefaultOptions()
	if cfg == nil {
		return opts, nil
	}

	if len(cfg.OddsBands) > 0 {
		bands := make([]OddsBand, 0, len(cfg.OddsBands))
		for _, b := range cfg.OddsBands {
			bands = append(bands, OddsBand{Label: b.Label, Min: b.Min, Max: b.Max})
		}
		opts.OddsBands = bands
	}
	if cfg.MonthlyWindow > 0 {
		opts.MonthlyWindow = cfg.MonthlyWindow
	}
	if cfg.WeeklyWindow > 0 {
		opts.WeeklyWindow = cfg.WeeklyWindow
	}
	if cfg.WeekStart != "" {
		day, err := parseWeekday(cfg.WeekStart)
		if err != nil {
			return Options{}, err
		}
		opts.WeekStart = day
	}

	in := cfg.Insights
	if in.MinSample > 0 {
		opts.Insights.MinSample = in.MinSample
	}
	if in.StrikeRateGap > 0 {
		opts.Insights.StrikeRateGap = in.StrikeRateGap
	}
	if in.StreakAlert > 0 {
		opts.Insights.StreakAlert = in.StreakAlert
	}
	if in.MaxInsights > 0 {
		opts.Insights.MaxInsights = in.MaxInsights
	}

	return opts, nil
}

func parseWeekday(s string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), s) {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("invalid week start %q", s)
}
