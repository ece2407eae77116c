// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QueriesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_queries_processed_total",
			Help: "Total number of assistant queries by outcome",
		},
		[]string{"outcome"},
	)

	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "assistant_query_duration_seconds",
			Help:    "Duration of assistant query processing in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 60},
		},
		[]string{"outcome"},
	)

	SearchCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_search_calls_total",
			Help: "Total number of web search calls by outcome",
		},
		[]string{"outcome"},
	)

	GenerationCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_generation_calls_total",
			Help: "Total number of generation calls by outcome",
		},
		[]string{"outcome"},
	)

	LookupsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "college_lookups_total",
			Help: "Total number of college lookups by outcome",
		},
		[]string{"outcome"},
	)

	StoreMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_mutations_total",
			Help: "Total number of application state mutations",
		},
		[]string{"operation", "outcome"},
	)
)

// Outcome labels shared by the counters above.
const (
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
	OutcomeSkipped  = "skipped"
	OutcomeFallback = "fallback"
	OutcomeTimeout  = "timeout"
)

// Outcome maps an error to the success/failure label.
func Outcome(err error) string {
	if err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}
