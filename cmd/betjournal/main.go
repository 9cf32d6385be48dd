// Package main provides the bet-journal command line: settle wagers, print
// performance reports and run the monthly report scheduler.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/bet-journal/internal/analytics"
	"github.com/yourusername/bet-journal/internal/config"
	"github.com/yourusername/bet-journal/internal/database"
	"github.com/yourusername/bet-journal/internal/logger"
	"github.com/yourusername/bet-journal/internal/metrics"
	"github.com/yourusername/bet-journal/internal/repository"
	"github.com/yourusername/bet-journal/internal/service"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	wagerFile  string
	userFlag   string
	appLog     *logrus.Logger
	cfg        *config.Config
	db         *database.DB
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().StringVarP(&wagerFile, "file", "f", "", "Read wagers from a YAML or JSON file instead of the database")
	rootCmd.PersistentFlags().StringVarP(&userFlag, "user", "u", "", "User ID (defaults to the nil UUID used by file journals)")

	rootCmd.AddCommand(settleCmd, reportCmd, insightsCmd, scheduleCmd, versionCmd)
}

var rootCmd = &cobra.Command{
	Use:           "betjournal",
	Short:         "Bet journal settlement and performance analytics",
	Long:          `Computes profit/loss for journaled wagers and reports performance, streaks and insights.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == versionCmd.Name() {
			return nil
		}
		if err := loadConfig(cmd.Context()); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if db != nil {
			db.Close()
		}
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(ctx context.Context) error {
	var err error
	cfg, err = config.LoadWithDefaults(configFile)
	if err != nil {
		return err
	}

	if err := config.LoadSecretsFromAWS(ctx, cfg); err != nil {
		return err
	}

	if err := config.Validate(cfg); err != nil {
		return err
	}

	appLog = logger.NewLogger(cfg.App.LogLevel)
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
	}
	return nil
}

// openRepositories returns the file journal when --file is set, otherwise the database
func openRepositories(ctx context.Context) (*repository.Repositories, error) {
	if wagerFile != "" {
		return repository.NewFileRepositories(wagerFile)
	}

	connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	var err error
	db, err = database.Initialize(connectCtx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	appLog.Info("Database connection established")

	return repository.NewRepositories(db)
}

func userID() (uuid.UUID, error) {
	if userFlag == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(userFlag)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid --user %q: %w", userFlag, err)
	}
	return id, nil
}

func analyticsOptions() (analytics.Options, error) {
	return analytics.FromConfig(&cfg.Analytics)
}

func newReportService(repos *repository.Repositories) (*service.ReportService, error) {
	opts, err := analyticsOptions()
	if err != nil {
		return nil, err
	}
	cache := service.NewReportCache(cfg.Report.CacheTTL(), cfg.Report.CacheCleanup())
	return service.NewReportService(repos.Wager, opts, cache, logger.NewReportLogger(appLog)), nil
}

func parseDateFlag(name, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s %q: expected YYYY-MM-DD", name, value)
	}
	return t, nil
}
