package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search and ingestion Prometheus metrics.
var (
	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "search_duration_seconds",
			Help:      "Time spent scoring and ranking one search",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)

	SearchCandidates = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "search_candidates",
			Help:      "Items scored per search after status and time filtering",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	SearchResultsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "search_items_total",
			Help:      "Items evaluated by search, by outcome",
		},
		[]string{"outcome"}, // "accepted" / "below_threshold" / "time_filtered"
	)

	IngestJobsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "ingest_jobs_total",
			Help:      "Finished ingestion jobs, by outcome",
		},
		[]string{"outcome"}, // "completed" / "failed" / "rejected"
	)

	IngestAttemptsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "ingest_attempts_total",
			Help:      "Analysis attempts, including retries",
		},
	)

	IngestRunning = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "ingest_running_workers",
			Help:      "Ingestion workers currently busy",
		},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers search and ingestion metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(SearchCandidates)
	prometheus.MustRegister(SearchResultsTotal)
	prometheus.MustRegister(IngestJobsTotal)
	prometheus.MustRegister(IngestAttemptsTotal)
	prometheus.MustRegister(IngestRunning)
	searchMetricsRegistered = true
}
