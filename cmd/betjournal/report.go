package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yourusername/bet-journal/internal/analytics"
)

type reportFlags struct {
	from      string
	to        string
	asOf      string
	format    string
	export    string
	assistant bool
}

var reportOpts reportFlags

func init() {
	for _, cmd := range []*cobra.Command{reportCmd, insightsCmd} {
		cmd.Flags().StringVar(&reportOpts.from, "from", "", "First bet date to include (YYYY-MM-DD)")
		cmd.Flags().StringVar(&reportOpts.to, "to", "", "Last bet date to include (YYYY-MM-DD)")
	}
	reportCmd.Flags().StringVar(&reportOpts.asOf, "as-of", "", "Anchor date for the monthly and weekly windows (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&reportOpts.format, "format", "table", "Output format: table or json")
	reportCmd.Flags().StringVar(&reportOpts.export, "export", "", "Export the cumulative profit series instead: csv or json")
	reportCmd.Flags().BoolVar(&reportOpts.assistant, "assistant", false, "Print the plain-text assistant context")
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the performance report",
	Example: `  betjournal report --file wagers.yaml
  betjournal report --from 2024-01-01 --to 2024-03-31 --format json
  betjournal report --file wagers.yaml --export csv > series.csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := loadReport(cmd, true)
		if err != nil {
			return err
		}
		return writeReport(cmd.OutOrStdout(), report, reportOpts)
	},
}

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Print the generated insights",
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := loadReport(cmd, false)
		if err != nil {
			return err
		}
		return renderInsights(cmd.OutOrStdout(), report.Insights)
	},
}

func loadReport(cmd *cobra.Command, withAsOf bool) (*analytics.Report, error) {
	id, err := userID()
	if err != nil {
		return nil, err
	}
	from, err := parseDateFlag("from", reportOpts.from)
	if err != nil {
		return nil, err
	}
	to, err := parseDateFlag("to", reportOpts.to)
	if err != nil {
		return nil, err
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return nil, fmt.Errorf("--to %s is before --from %s", reportOpts.to, reportOpts.from)
	}
	var asOf = to
	if withAsOf && reportOpts.asOf != "" {
		if asOf, err = parseDateFlag("as-of", reportOpts.asOf); err != nil {
			return nil, err
		}
	}

	repos, err := openRepositories(cmd.Context())
	if err != nil {
		return nil, err
	}
	svc, err := newReportService(repos)
	if err != nil {
		return nil, err
	}
	return svc.Dashboard(cmd.Context(), id, from, to, asOf)
}

func writeReport(out io.Writer, report *analytics.Report, opts reportFlags) error {
	switch opts.export {
	case "":
	case "csv":
		_, err := io.WriteString(out, report.Series.ToCSV())
		return err
	case "json":
		_, err := fmt.Fprintln(out, report.Series.ToJSON())
		return err
	default:
		return fmt.Errorf("unknown --export %q: expected csv or json", opts.export)
	}

	if opts.assistant {
		_, err := fmt.Fprintln(out, analytics.AssistantContext(*report))
		return err
	}

	switch opts.format {
	case "table":
		return renderReport(out, report)
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	default:
		return fmt.Errorf("unknown --format %q: expected table or json", opts.format)
	}
}
