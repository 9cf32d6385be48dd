package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// ReportLogger provides dedicated logging for report generation.
type ReportLogger struct {
	*logrus.Entry
}

// NewReportLogger creates a new report logger.
func NewReportLogger(baseLogger *logrus.Logger) *ReportLogger {
	return &ReportLogger{
		Entry: baseLogger.WithField("component", "report"),
	}
}

// LogReportBuilt logs a freshly computed report.
func (rl *ReportLogger) LogReportBuilt(userID string, wagers, settled, insights int, durationMs float64) {
	rl.WithFields(logrus.Fields{
		"user_id":     userID,
		"wagers":      wagers,
		"settled":     settled,
		"insights":    insights,
		"duration_ms": durationMs,
	}).Info("Performance report built")
}

// LogCacheHit logs a report served from cache.
func (rl *ReportLogger) LogCacheHit(userID, cacheKey string) {
	rl.WithFields(logrus.Fields{
		"user_id":   userID,
		"cache_key": cacheKey,
	}).Debug("Performance report served from cache")
}

// LogEmailReport logs a periodic email report handed to the sink.
func (rl *ReportLogger) LogEmailReport(userID string, from, to time.Time, count int, totalProfit float64) {
	rl.WithFields(logrus.Fields{
		"user_id":      userID,
		"period_from":  from.Format("2006-01-02"),
		"period_to":    to.Format("2006-01-02"),
		"bet_count":    count,
		"total_profit": totalProfit,
	}).Info("Email report prepared")
}

// LogReportFailure logs a report that could not be produced.
func (rl *ReportLogger) LogReportFailure(userID, stage string, err error) {
	rl.WithFields(logrus.Fields{
		"user_id": userID,
		"stage":   stage,
	}).WithError(err).Error("Performance report failed")
}
