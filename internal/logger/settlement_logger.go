package logger

import (
	"github.com/sirupsen/logrus"
)

// SettlementLogger provides dedicated logging for wager settlement.
type SettlementLogger struct {
	*logrus.Entry
}

// NewSettlementLogger creates a new settlement logger.
func NewSettlementLogger(baseLogger *logrus.Logger) *SettlementLogger {
	return &SettlementLogger{
		Entry: baseLogger.WithField("component", "settlement"),
	}
}

// LogSettled logs a wager whose profit/loss was computed.
func (sl *SettlementLogger) LogSettled(wagerID, userID, wagerType string, stake, profitLoss float64) {
	sl.WithFields(logrus.Fields{
		"wager_id":    wagerID,
		"user_id":     userID,
		"wager_type":  wagerType,
		"stake":       stake,
		"profit_loss": profitLoss,
	}).Info("Wager settled")
}

// LogCannotCompute logs a wager that needs more information before it can settle.
func (sl *SettlementLogger) LogCannotCompute(wagerID, userID, wagerType, reason, detail string) {
	sl.WithFields(logrus.Fields{
		"wager_id":   wagerID,
		"user_id":    userID,
		"wager_type": wagerType,
		"reason":     reason,
		"detail":     detail,
	}).Warn("Wager profit/loss cannot be computed")
}

// LogBatch logs the outcome of a settlement run.
func (sl *SettlementLogger) LogBatch(userID string, settled, pending int, durationMs float64) {
	sl.WithFields(logrus.Fields{
		"user_id":     userID,
		"settled":     settled,
		"pending":     pending,
		"duration_ms": durationMs,
	}).Info("Settlement run completed")
}
