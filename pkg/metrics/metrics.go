// Package metrics exposes Prometheus instruments for the matching service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Skip reasons used as the "reason" label.
const (
	ReasonDimensionMismatch = "dimension_mismatch"
	ReasonNotFound          = "not_found"
	ReasonFetchError        = "fetch_error"
	ReasonJobClosed         = "job_closed"
	ReasonMalformed         = "malformed_embedding"
)

var (
	// ScoresTotal counts computed match results by operation.
	ScoresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "match",
		Name:      "scores_total",
		Help:      "Number of candidate-job pairs scored.",
	}, []string{"operation"})

	// SkippedTotal counts batch elements skipped instead of scored.
	SkippedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "match",
		Name:      "skipped_total",
		Help:      "Number of batch elements skipped, by reason.",
	}, []string{"operation", "reason"})

	// ScoreValue observes the overall score distribution.
	ScoreValue = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "match",
		Name:      "score_value",
		Help:      "Distribution of overall match scores.",
		Buckets:   prometheus.LinearBuckets(0, 0.1, 11),
	})

	// CacheResults counts match cache lookups by outcome (hit, miss).
	CacheResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "match",
		Name:      "cache_lookups_total",
		Help:      "Match result cache lookups by outcome.",
	}, []string{"outcome"})

	// BreakerState reports the embedding store circuit breaker state
	// (0 closed, 1 half-open, 2 open).
	BreakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "match",
		Name:      "breaker_state",
		Help:      "Circuit breaker state for the embedding store.",
	}, []string{"name"})
)

// ObserveScore records one scored pair.
func ObserveScore(operation string, overall float64) {
	ScoresTotal.WithLabelValues(operation).Inc()
	ScoreValue.Observe(overall)
}

// ObserveSkip records one skipped batch element.
func ObserveSkip(operation, reason string) {
	SkippedTotal.WithLabelValues(operation, reason).Inc()
}
