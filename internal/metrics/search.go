package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Search Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "provdir",
			Name:      "search_requests_total",
			Help:      "Total number of blended searches",
		},
		[]string{"outcome"}, // "ok" / "degraded"
	)

	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "provdir",
			Name:      "search_duration_seconds",
			Help:      "Blended search duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)

	SourceErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "provdir",
			Name:      "search_source_errors_total",
			Help:      "Source reads that failed and were treated as empty",
		},
		[]string{"source", "stage"},
	)

	SourceRows = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "provdir",
			Name:      "search_source_rows",
			Help:      "Rows contributed to a result page per source",
			Buckets:   []float64{0, 1, 5, 10, 20, 50, 100},
		},
		[]string{"source"},
	)

	CandidateCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "provdir",
			Name:      "candidate_cache_total",
			Help:      "Candidate cache hits and misses",
		},
		[]string{"source", "result"}, // result: "hit" / "miss"
	)
)

var registerOnce sync.Once

// Register registers all Prometheus metrics with the default registry.
// Must be called from main; repeated calls are no-ops.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			httpRequestDuration,
			httpRequestsTotal,
			SearchRequestsTotal,
			SearchDuration,
			SourceErrorsTotal,
			SourceRows,
			CandidateCacheTotal,
		)
	})
}
