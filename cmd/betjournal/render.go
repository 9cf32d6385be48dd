package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/yourusername/bet-journal/internal/analytics"
	"github.com/yourusername/bet-journal/internal/models"
)

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

// renderTable writes one table, stopping at the first append or render error
func renderTable(out io.Writer, header []any, rows [][]any) error {
	table := tablewriter.NewWriter(out)
	table.Header(header...)
	for _, row := range rows {
		if err := table.Append(row...); err != nil {
			return fmt.Errorf("failed to append table row: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	return nil
}

func summaryRow(key string, s analytics.Summary) []any {
	return []any{key, strconv.Itoa(s.Count), money(s.TotalProfit), percent(s.StrikeRate), percent(s.POT)}
}

func renderSummary(out io.Writer, s analytics.Summary) error {
	return renderTable(out,
		[]any{"Bets", "Wins", "Losses", "Profit", "Turnover", "Strike", "POT", "Avg odds", "Best", "Worst"},
		[][]any{{
			strconv.Itoa(s.Count),
			strconv.Itoa(s.Wins),
			strconv.Itoa(s.Losses),
			money(s.TotalProfit),
			money(s.Turnover),
			percent(s.StrikeRate),
			percent(s.POT),
			money(s.AverageOdds),
			money(s.BestWin),
			money(s.WorstLoss),
		}},
	)
}

func renderByType(out io.Writer, byType map[models.WagerType]analytics.Summary) error {
	rows := make([][]any, 0, len(byType))
	for _, t := range models.WagerTypes {
		if s, ok := byType[t]; ok && s.Count > 0 {
			rows = append(rows, summaryRow(string(t), s))
		}
	}
	return renderTable(out, []any{"Type", "Bets", "Profit", "Strike", "POT"}, rows)
}

func renderBuckets(out io.Writer, title string, buckets []analytics.BucketSummary) error {
	rows := make([][]any, 0, len(buckets))
	for _, b := range buckets {
		rows = append(rows, summaryRow(b.Key, b.Summary))
	}
	return renderTable(out, []any{title, "Bets", "Profit", "Strike", "POT"}, rows)
}

func renderOddsBands(out io.Writer, bands []analytics.OddsBandSummary) error {
	rows := make([][]any, 0, len(bands))
	for _, b := range bands {
		rows = append(rows, summaryRow(b.Band.Label, b.Summary))
	}
	return renderTable(out, []any{"Odds", "Bets", "Profit", "Strike", "POT"}, rows)
}

func renderMonthly(out io.Writer, months []analytics.MonthlyPoint) error {
	rows := make([][]any, 0, len(months))
	for _, m := range months {
		rows = append(rows, []any{m.Month, strconv.Itoa(m.Count), money(m.Profit), money(m.Stake), percent(m.ROI)})
	}
	return renderTable(out, []any{"Month", "Bets", "Profit", "Stake", "ROI"}, rows)
}

func renderWeekly(out io.Writer, weeks []analytics.PeriodSummary) error {
	rows := make([][]any, 0, len(weeks))
	for _, w := range weeks {
		rows = append(rows, summaryRow(w.Label, w.Summary))
	}
	return renderTable(out, []any{"Week", "Bets", "Profit", "Strike", "POT"}, rows)
}

func renderInsights(out io.Writer, insights []analytics.Insight) error {
	if len(insights) == 0 {
		_, err := fmt.Fprintln(out, "No insights yet: settle more bets.")
		return err
	}
	for _, in := range insights {
		if _, err := fmt.Fprintf(out, "[%s] %s\n", in.Tone, in.Message); err != nil {
			return err
		}
	}
	return nil
}

func renderReport(out io.Writer, r *analytics.Report) error {
	if !r.AsOf.IsZero() {
		if _, err := fmt.Fprintf(out, "Report as of %s\n", r.AsOf.Format("2006-01-02")); err != nil {
			return err
		}
	}

	sections := []struct {
		title  string
		render func() error
	}{
		{"Summary", func() error { return renderSummary(out, r.Summary) }},
		{"By bet type", func() error { return renderByType(out, r.ByType) }},
		{"Monthly", func() error { return renderMonthly(out, r.Monthly) }},
		{"Weekly", func() error { return renderWeekly(out, r.Weekly) }},
		{"Odds ranges", func() error { return renderOddsBands(out, r.OddsBands) }},
		{"Day of week", func() error { return renderBuckets(out, "Day", r.DayOfWeek) }},
		{"Venues", func() error { return renderBuckets(out, "Venue", r.Venues) }},
	}
	for _, section := range sections {
		if _, err := fmt.Fprintf(out, "\n%s\n", section.title); err != nil {
			return err
		}
		if err := section.render(); err != nil {
			return fmt.Errorf("%s: %w", section.title, err)
		}
	}

	if _, err := fmt.Fprintf(out, "\nStreaks: current win %d, current loss %d, longest win %d, longest loss %d\n",
		r.Streaks.CurrentWin, r.Streaks.CurrentLoss, r.Streaks.LongestWin, r.Streaks.LongestLoss); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(out, "\nInsights"); err != nil {
		return err
	}
	return renderInsights(out, r.Insights)
}
