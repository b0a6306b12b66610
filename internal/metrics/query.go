package metrics

import "github.com/prometheus/client_golang/prometheus"

// Query engine metrics.
var (
	QueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_duration_seconds",
			Help:      "Directory query duration in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
		[]string{"status"}, // "ok" / "error"
	)

	QueryMatchedRecords = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_matched_records",
			Help:      "Records matching search and filters, before pagination",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		},
	)
)

// Patient source metrics.
var (
	SourceLoadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_loads_total",
			Help:      "Patient collection loads by driver and outcome",
		},
		[]string{"driver", "status"},
	)

	SourceRecords = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "source_records",
			Help:      "Records in the current patient snapshot",
		},
		[]string{"driver"},
	)
)

var (
	queryMetricsRegistered  bool
	sourceMetricsRegistered bool
)

// RegisterQueryMetrics registers query metrics. Must be called once from main.
func RegisterQueryMetrics() {
	if queryMetricsRegistered {
		return
	}
	prometheus.MustRegister(QueryDuration)
	prometheus.MustRegister(QueryMatchedRecords)
	queryMetricsRegistered = true
}

// RegisterSourceMetrics registers patient source metrics. Must be called once from main.
func RegisterSourceMetrics() {
	if sourceMetricsRegistered {
		return
	}
	prometheus.MustRegister(SourceLoadsTotal)
	prometheus.MustRegister(SourceRecords)
	sourceMetricsRegistered = true
}
