package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/bet-journal/internal/analytics"
	"github.com/yourusername/bet-journal/internal/logger"
	"github.com/yourusername/bet-journal/internal/metrics"
	"github.com/yourusername/bet-journal/internal/repository"
)

// ReportService builds dashboard, email and assistant reports from stored wagers
type ReportService struct {
	repo   repository.WagerRepository
	opts   analytics.Options
	cache  *ReportCache
	logger *logger.ReportLogger
}

// NewReportService creates a new report service. cache may be nil to disable caching.
func NewReportService(repo repository.WagerRepository, opts analytics.Options, cache *ReportCache, log *logger.ReportLogger) *ReportService {
	return &ReportService{
		repo:   repo,
		opts:   opts,
		cache:  cache,
		logger: log,
	}
}

// Dashboard returns the full aggregate report for the user's wagers dated within
// [from, to]. A zero asOf anchors the rolling windows on the latest settled bet.
func (s *ReportService) Dashboard(ctx context.Context, userID uuid.UUID, from, to, asOf time.Time) (*analytics.Report, error) {
	key := ReportKey{UserID: userID, From: from, To: to, AsOf: asOf}
	if s.cache != nil {
		report, ok := s.cache.Get(key)
		metrics.RecordCacheLookup(ok)
		if ok {
			s.logger.LogCacheHit(userID.String(), key.String())
			return report, nil
		}
	}

	start := time.Now()
	wagers, err := s.repo.ListByUser(ctx, userID, from, to)
	if err != nil {
		metrics.RecordReportBuilt("dashboard", "failure", 0)
		s.logger.LogReportFailure(userID.String(), "load", err)
		return nil, fmt.Errorf("failed to load wagers: %w", err)
	}

	report := analytics.BuildReport(wagers, s.opts, asOf)
	elapsed := time.Since(start)
	metrics.RecordReportBuilt("dashboard", "success", elapsed.Seconds())
	s.logger.LogReportBuilt(userID.String(), len(wagers), report.Summary.Count, len(report.Insights), float64(elapsed.Microseconds())/1000)

	if s.cache != nil {
		s.cache.Set(key, &report)
	}
	return &report, nil
}

// Insights returns the ordered insight list for the user's wagers within [from, to]
func (s *ReportService) Insights(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]analytics.Insight, error) {
	report, err := s.Dashboard(ctx, userID, from, to, time.Time{})
	if err != nil {
		return nil, err
	}
	return report.Insights, nil
}

// AssistantContext renders the user's report as text for the assistant
func (s *ReportService) AssistantContext(ctx context.Context, userID uuid.UUID, from, to time.Time) (string, error) {
	report, err := s.Dashboard(ctx, userID, from, to, time.Time{})
	if err != nil {
		return "", err
	}
	return analytics.AssistantContext(*report), nil
}

// MonthlyEmail builds the email report for the calendar month containing month
func (s *ReportService) MonthlyEmail(ctx context.Context, userID uuid.UUID, month time.Time, topVenues int) (*analytics.EmailReport, error) {
	from, to := MonthBounds(month)

	start := time.Now()
	wagers, err := s.repo.ListByUser(ctx, userID, from, to)
	if err != nil {
		metrics.RecordReportBuilt("email", "failure", 0)
		s.logger.LogReportFailure(userID.String(), "load", err)
		return nil, fmt.Errorf("failed to load wagers: %w", err)
	}

	report := analytics.BuildEmailReport(wagers, from, to, topVenues)
	metrics.RecordReportBuilt("email", "success", time.Since(start).Seconds())
	s.logger.LogEmailReport(userID.String(), from, to, report.Summary.Count, report.Summary.TotalProfit)
	return &report, nil
}

// Invalidate drops the user's cached reports
func (s *ReportService) Invalidate(userID uuid.UUID) {
	if s.cache != nil {
		s.cache.Invalidate(userID)
	}
}

// MonthBounds returns the first and last calendar day of t's month
func MonthBounds(t time.Time) (time.Time, time.Time) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, -1)
}

// PreviousMonth returns the first day of the month before t's month
func PreviousMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
}
