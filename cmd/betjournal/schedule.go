package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/bet-journal/internal/health"
	"github.com/yourusername/bet-journal/internal/logger"
	"github.com/yourusername/bet-journal/internal/metrics"
	"github.com/yourusername/bet-journal/internal/scheduler"
	"github.com/yourusername/bet-journal/internal/service"
)

var (
	settleSchedule string
	runNow         bool
)

func init() {
	scheduleCmd.Flags().StringVar(&settleSchedule, "settle-schedule", "", "Cron expression for settling pending wagers (disabled when empty)")
	scheduleCmd.Flags().BoolVar(&runNow, "run-now", false, "Build and deliver last month's reports once before scheduling")
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the monthly report scheduler",
	Long:  `Runs the cron scheduler that builds last month's email report for every user, with health and metrics endpoints.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		repos, err := openRepositories(ctx)
		if err != nil {
			return err
		}
		reports, err := newReportService(repos)
		if err != nil {
			return err
		}
		settler := service.NewSettlementService(repos.Wager, reports, logger.NewSettlementLogger(appLog))
		if db != nil {
			settler.WithTransactor(db)
		}

		sched := scheduler.NewScheduler(repos.Wager, reports, settler, scheduler.LogSink{Logger: appLog}, appLog)
		if err := sched.ScheduleMonthlyReports(cfg.Report.Schedule, cfg.Report.TopVenues); err != nil {
			return err
		}
		if settleSchedule != "" {
			if err := sched.ScheduleSettlementSweep(settleSchedule); err != nil {
				return err
			}
		}

		if runNow {
			delivered, err := sched.RunMonthlyReports(ctx, time.Now(), cfg.Report.TopVenues)
			if err != nil {
				appLog.WithError(err).Warn("Initial report run finished with errors")
			}
			appLog.WithField("delivered", delivered).Info("Initial report run completed")
		}

		healthCfg := health.Config{
			ServiceName: cfg.App.Name,
			Version:     Version,
			Port:        strconv.Itoa(cfg.Metrics.Port),
			Logger:      appLog,
			Scheduler:   sched,
		}
		if db != nil {
			healthCfg.DB = db
		}
		if cfg.Metrics.Enabled {
			healthCfg.MetricsPath = cfg.Metrics.Path
			healthCfg.MetricsHandler = metrics.Handler()
		}
		healthServer := health.NewServer(healthCfg)
		// Shut down explicitly after the scheduler drains.
		if err := healthServer.Start(context.WithoutCancel(ctx)); err != nil {
			return err
		}

		if err := sched.Start(); err != nil {
			return err
		}
		healthServer.SetReady(true)

		appLog.WithFields(logrus.Fields{
			"schedule": cfg.Report.Schedule,
			"next_run": sched.GetNextRun(),
		}).Info("Report scheduler running")

		<-ctx.Done()
		appLog.Info("Shutdown signal received")
		healthServer.SetReady(false)

		if err := sched.Stop(); err != nil {
			appLog.WithError(err).Error("Scheduler did not stop cleanly")
		}
		return healthServer.Shutdown()
	},
}
