package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Search and chat Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "socratic",
			Name:      "search_requests_total",
			Help:      "Total number of conversation searches",
		},
		[]string{"mode", "dense_status"},
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "socratic",
			Name:      "search_duration_seconds",
			Help:      "Search duration including corpus collection",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"mode"},
	)

	SearchCorpusSize = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "socratic",
			Name:      "search_corpus_documents",
			Help:      "Documents collected per search",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	SkippedRecordsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "socratic",
			Name:      "collector_skipped_records_total",
			Help:      "Malformed stored records skipped during collection",
		},
	)

	ChatRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "socratic",
			Name:      "chat_requests_total",
			Help:      "Total number of LLM chat completions",
		},
		[]string{"model", "status"},
	)
)

var registerSearchOnce sync.Once

// RegisterSearchMetrics registers search, collector and chat metrics. Safe to call more than once.
func RegisterSearchMetrics() {
	registerSearchOnce.Do(func() {
		prometheus.MustRegister(
			SearchRequestsTotal,
			SearchDuration,
			SearchCorpusSize,
			SkippedRecordsTotal,
			ChatRequestsTotal,
		)
	})
}
