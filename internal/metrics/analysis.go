package metrics

import "github.com/prometheus/client_golang/prometheus"

// Namespace prefixes every snapdex metric.
const Namespace = "snapdex"

// Vision analysis Prometheus metrics.
var (
	AnalysisRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "analysis_requests_total",
			Help:      "Total number of image analysis requests",
		},
		[]string{"provider", "model", "status"},
	)

	AnalysisRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "analysis_request_duration_seconds",
			Help:      "Image analysis request duration in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 40, 80},
		},
		[]string{"provider", "model"},
	)

	AnalysisTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "analysis_tokens_total",
			Help:      "Total tokens consumed by image analysis",
		},
		[]string{"provider", "model", "type"},
	)

	AnalysisErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "analysis_errors_total",
			Help:      "Total image analysis errors",
		},
		[]string{"provider", "model", "error_type"},
	)

	AnalysisFallbackTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "analysis_fallback_parse_total",
			Help:      "Analyses whose output was not JSON and went through the section parser",
		},
		[]string{"provider", "model"},
	)

	AnalysisCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "analysis_cache_total",
			Help:      "Analysis cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var analysisMetricsRegistered bool

// RegisterAnalysisMetrics registers Prometheus analysis metrics. Must be called once from main.
func RegisterAnalysisMetrics() {
	if analysisMetricsRegistered {
		return
	}
	prometheus.MustRegister(AnalysisRequestsTotal)
	prometheus.MustRegister(AnalysisRequestDuration)
	prometheus.MustRegister(AnalysisTokensTotal)
	prometheus.MustRegister(AnalysisErrorsTotal)
	prometheus.MustRegister(AnalysisFallbackTotal)
	prometheus.MustRegister(AnalysisCacheTotal)
	analysisMetricsRegistered = true
}
