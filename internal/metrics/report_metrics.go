package metrics

import "github.com/prometheus/client_golang/prometheus"

// Report counter vectors
var (
	ReportsBuiltTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reports_built_total",
		Help:      "Total number of performance reports by kind and status",
	}, []string{"kind", "status"})
	ReportCacheTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "report_cache_total",
		Help:      "Report cache lookups by result",
	}, []string{"result"})
	EmailReportsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "email_reports_total",
		Help:      "Total number of email reports handed to the sink",
	})
)

// Report histogram vectors
var (
	ReportBuildDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "report_build_duration_seconds",
		Help:      "Duration of report aggregation in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}, []string{"kind"})
)

// RecordReportBuilt records a report build.
// kind should be one of: "dashboard", "email"
// status should be one of: "success", "failure"
func RecordReportBuilt(kind, status string, durationSeconds float64) {
	ReportsBuiltTotal.WithLabelValues(kind, status).Inc()
	if status == "success" {
		ReportBuildDuration.WithLabelValues(kind).Observe(durationSeconds)
	}
}

// RecordCacheLookup records a report cache hit or miss.
func RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	ReportCacheTotal.WithLabelValues(result).Inc()
}

// RecordEmailReport records an email report delivered to the sink.
func RecordEmailReport() {
	EmailReportsTotal.Inc()
}
