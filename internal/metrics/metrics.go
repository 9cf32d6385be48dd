// Package metrics provides the centralized Prometheus metrics registry for the bet journal.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bet_journal"

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Settlement counter vectors
var (
	WagersSettledTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "wagers_settled_total",
		Help:      "Total number of wagers whose profit/loss was computed, by wager type",
	}, []string{"wager_type"})
	WagersCannotComputeTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "wagers_cannot_compute_total",
		Help:      "Total number of settlement attempts that need more information, by wager type and reason",
	}, []string{"wager_type", "reason"})
)

// Gauge metrics
var (
	PendingWagers = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "pending_wagers",
		Help:      "Wagers left unsettled across all users after the last settlement sweep",
	})
)

// Histogram metrics
var (
	SettlementRunDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "settlement_run_duration_seconds",
		Help:      "Duration of settlement runs in seconds",
		Buckets:   prometheus.DefBuckets,
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(WagersSettledTotal)
		registry.MustRegister(WagersCannotComputeTotal)
		registry.MustRegister(PendingWagers)
		registry.MustRegister(SettlementRunDuration)

		registry.MustRegister(ReportsBuiltTotal)
		registry.MustRegister(ReportCacheTotal)
		registry.MustRegister(ReportBuildDuration)
		registry.MustRegister(EmailReportsTotal)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	return InitRegistry()
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordWagerSettled records a successful settlement.
func RecordWagerSettled(wagerType string) {
	WagersSettledTotal.WithLabelValues(wagerType).Inc()
}

// RecordCannotCompute records a settlement that could not be computed.
func RecordCannotCompute(wagerType, reason string) {
	WagersCannotComputeTotal.WithLabelValues(wagerType, reason).Inc()
}

// RecordSettlementRun records the duration of one user's settlement run.
func RecordSettlementRun(durationSeconds float64) {
	SettlementRunDuration.Observe(durationSeconds)
}

// SetPendingWagers records the wagers a full sweep left pending, summed over users.
func SetPendingWagers(pending int) {
	PendingWagers.Set(float64(pending))
}
