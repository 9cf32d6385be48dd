// Package scheduler runs the periodic report and settlement jobs.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/bet-journal/internal/analytics"
	"github.com/yourusername/bet-journal/internal/metrics"
	"github.com/yourusername/bet-journal/internal/service"
)

// UserLister lists every user with journaled wagers
type UserLister interface {
	ListUserIDs(ctx context.Context) ([]uuid.UUID, error)
}

// EmailBuilder builds the email report for a calendar month
type EmailBuilder interface {
	MonthlyEmail(ctx context.Context, userID uuid.UUID, month time.Time, topVenues int) (*analytics.EmailReport, error)
}

// PendingSettler settles a user's pending wagers
type PendingSettler interface {
	SettlePending(ctx context.Context, userID uuid.UUID) (*service.SettlementRun, error)
}

// ReportSink receives finished email reports, e.g. the mail composer
type ReportSink interface {
	Deliver(ctx context.Context, userID uuid.UUID, report *analytics.EmailReport) error
}

// LogSink delivers reports to the log
type LogSink struct {
	Logger *logrus.Logger
}

// Deliver logs the report summary
func (s LogSink) Deliver(ctx context.Context, userID uuid.UUID, report *analytics.EmailReport) error {
	s.Logger.WithFields(logrus.Fields{
		"user_id":      userID.String(),
		"from":         report.From.Format("2006-01-02"),
		"to":           report.To.Format("2006-01-02"),
		"bets":         report.Summary.Count,
		"total_profit": report.Summary.TotalProfit,
		"strike_rate":  report.Summary.StrikeRate,
		"top_venues":   len(report.TopVenues),
	}).Info("Monthly report ready")
	return nil
}

// Scheduler manages the cron jobs
type Scheduler struct {
	cron            *cron.Cron
	users           UserLister
	reports         EmailBuilder
	settler         PendingSettler
	sink            ReportSink
	logger          *logrus.Logger
	mu              sync.RWMutex
	isRunning       bool
	jobIDs          []cron.EntryID
	gracefulTimeout time.Duration
	now             func() time.Time
}

// NewScheduler creates a new scheduler. settler may be nil when no settlement sweep is scheduled.
func NewScheduler(users UserLister, reports EmailBuilder, settler PendingSettler, sink ReportSink, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:            cron.New(cron.WithLocation(time.UTC)),
		users:           users,
		reports:         reports,
		settler:         settler,
		sink:            sink,
		logger:          logger,
		jobIDs:          make([]cron.EntryID, 0),
		gracefulTimeout: 30 * time.Second,
		now:             time.Now,
	}
}

// ScheduleMonthlyReports schedules the previous-month email report for every user
func (s *Scheduler) ScheduleMonthlyReports(cronExpression string, topVenues int) error {
	return s.addJob(cronExpression, "monthly report", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Hour)
		defer cancel()

		delivered, err := s.RunMonthlyReports(ctx, s.now(), topVenues)
		if err != nil {
			s.logger.WithError(err).WithField("delivered", delivered).Error("Monthly report run finished with errors")
			return
		}
		s.logger.WithField("delivered", delivered).Info("Monthly report run completed")
	})
}

// ScheduleSettlementSweep schedules settling every user's pending wagers
func (s *Scheduler) ScheduleSettlementSweep(cronExpression string) error {
	if s.settler == nil {
		return fmt.Errorf("no settlement service configured")
	}
	return s.addJob(cronExpression, "settlement sweep", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()

		settled, err := s.RunSettlementSweep(ctx)
		if err != nil {
			s.logger.WithError(err).WithField("settled", settled).Error("Settlement sweep finished with errors")
			return
		}
		s.logger.WithField("settled", settled).Info("Settlement sweep completed")
	})
}

func (s *Scheduler) addJob(cronExpression, name string, job func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	entryID, err := s.cron.AddFunc(cronExpression, job)
	if err != nil {
		return fmt.Errorf("failed to add %s job: %w", name, err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithFields(logrus.Fields{
		"job":      name,
		"schedule": cronExpression,
	}).Info("Scheduled job")

	return nil
}

// RunMonthlyReports builds and delivers the report for the month before now for
// every user. A failing user does not stop the run; all failures are joined.
func (s *Scheduler) RunMonthlyReports(ctx context.Context, now time.Time, topVenues int) (int, error) {
	userIDs, err := s.users.ListUserIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list users: %w", err)
	}

	month := service.PreviousMonth(now)
	delivered := 0
	var errs []error
	for _, userID := range userIDs {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		report, err := s.reports.MonthlyEmail(ctx, userID, month, topVenues)
		if err != nil {
			errs = append(errs, fmt.Errorf("user %s: %w", userID, err))
			continue
		}
		if err := s.sink.Deliver(ctx, userID, report); err != nil {
			errs = append(errs, fmt.Errorf("user %s: failed to deliver report: %w", userID, err))
			continue
		}
		metrics.RecordEmailReport()
		delivered++
	}

	return delivered, errors.Join(errs...)
}

// RunSettlementSweep settles pending wagers for every user and returns how many settled.
// The pending gauge is set to the total left pending across users.
func (s *Scheduler) RunSettlementSweep(ctx context.Context) (int, error) {
	if s.settler == nil {
		return 0, fmt.Errorf("no settlement service configured")
	}

	userIDs, err := s.users.ListUserIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list users: %w", err)
	}

	settled, pending := 0, 0
	var errs []error
	for _, userID := range userIDs {
		run, err := s.settler.SettlePending(ctx, userID)
		if err != nil {
			errs = append(errs, fmt.Errorf("user %s: %w", userID, err))
			continue
		}
		settled += len(run.Settled)
		pending += len(run.Prompts)
	}
	metrics.SetPendingWagers(pending)

	return settled, errors.Join(errs...)
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}

	if len(s.jobIDs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.WithField("jobs", len(s.jobIDs)).Info("Scheduler started")

	return nil
}

// Stop waits for running jobs up to the graceful timeout and stops the scheduler
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	s.isRunning = false
	select {
	case <-s.cron.Stop().Done():
		s.logger.Info("Scheduler stopped")
		return nil
	case <-time.After(s.gracefulTimeout):
		return fmt.Errorf("scheduler stop timed out after %s", s.gracefulTimeout)
	}
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRun returns the time of the next scheduled job run
func (s *Scheduler) GetNextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning || len(s.jobIDs) == 0 {
		return time.Time{}
	}

	nextRun := time.Time{}
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() {
			if nextRun.IsZero() || entry.Next.Before(nextRun) {
				nextRun = entry.Next
			}
		}
	}

	return nextRun
}

// Entries returns information about scheduled entries
func (s *Scheduler) Entries() []cron.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]cron.Entry, 0, len(s.jobIDs))
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() {
			entries = append(entries, entry)
		}
	}

	return entries
}
