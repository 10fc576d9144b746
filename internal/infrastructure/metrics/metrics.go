// Package metrics exposes Prometheus instruments for the matching service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SwipesTotal counts recorded swipes by action
	SwipesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "matchmaker",
			Subsystem: "swipe",
			Name:      "total",
			Help:      "Total number of recorded swipes by action",
		},
		[]string{"action"},
	)

	// DuplicateSwipesTotal counts rejected repeat swipes
	DuplicateSwipesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "matchmaker",
			Subsystem: "swipe",
			Name:      "duplicates_total",
			Help:      "Total number of swipes rejected because the pair was already acted on",
		},
	)

	// MatchesTotal counts match lifecycle transitions
	MatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "matchmaker",
			Subsystem: "match",
			Name:      "events_total",
			Help:      "Total number of match lifecycle events by kind",
		},
		[]string{"event"},
	)

	// MatchRacesTotal counts mutual likes that found the match already created
	MatchRacesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "matchmaker",
			Subsystem: "match",
			Name:      "races_lost_total",
			Help:      "Total number of mutual likes that lost the creation race and returned the existing match",
		},
	)

	// CompatibilityScore tracks the distribution of computed total scores
	CompatibilityScore = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "matchmaker",
			Subsystem: "compatibility",
			Name:      "score",
			Help:      "Distribution of compatibility total scores",
			Buckets:   prometheus.LinearBuckets(0, 10, 11),
		},
		[]string{"source"},
	)

	// RankDuration tracks discovery ranking latency
	RankDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "matchmaker",
			Subsystem: "discovery",
			Name:      "rank_duration_seconds",
			Help:      "Duration of candidate filtering, scoring and ranking",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	// RankCandidates tracks the size of ranked candidate pools
	RankCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "matchmaker",
			Subsystem: "discovery",
			Name:      "candidates",
			Help:      "Number of candidates loaded for ranking",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		},
	)

	// BlocksTotal counts blocks by reason
	BlocksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "matchmaker",
			Subsystem: "block",
			Name:      "total",
			Help:      "Total number of blocks by reason",
		},
		[]string{"reason"},
	)

	// HTTPRequestDuration tracks API latency by route and status
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "matchmaker",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests by method, route and status",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// EventsPublished counts outbound domain events by type and status
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "matchmaker",
			Subsystem: "events",
			Name:      "published_total",
			Help:      "Total number of domain events published by type and status",
		},
		[]string{"type", "status"},
	)
)

const (
	MatchCreated     = "created"
	MatchDeactivated = "deactivated"
	MatchDeleted     = "deleted"
	MatchesReset     = "reset"
)

func RecordSwipe(action string) {
	SwipesTotal.WithLabelValues(action).Inc()
}

func RecordMatchEvent(event string) {
	MatchesTotal.WithLabelValues(event).Inc()
}

func ObserveScore(source string, score int) {
	CompatibilityScore.WithLabelValues(source).Observe(float64(score))
}

func RecordBlock(reason string) {
	if reason == "" {
		reason = "unspecified"
	}
	BlocksTotal.WithLabelValues(reason).Inc()
}

func RecordEvent(eventType string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	EventsPublished.WithLabelValues(eventType, status).Inc()
}

func ObserveHTTP(method, route, status string, elapsed time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, route, status).Observe(elapsed.Seconds())
}
