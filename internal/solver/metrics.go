package solver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultSolved      = "solved"
	resultUnreachable = "unreachable"
	resultAborted     = "aborted"
)

var (
	// searchTotal counts searches by outcome
	searchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reshuffle_search_total",
		Help: "Total searches by result",
	}, []string{"result"})

	searchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "reshuffle_search_duration_seconds",
		Help:    "Search duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10), // 0.1ms to ~26s
	})

	searchVisited = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "reshuffle_search_visited_configurations",
		Help:    "Distinct configurations visited per search",
		Buckets: prometheus.ExponentialBuckets(1, 4, 12),
	})

	solutionMoves = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "reshuffle_solution_moves",
		Help:    "Number of moves per solution",
		Buckets: []float64{0, 1, 2, 4, 8, 12, 16, 24, 32},
	})
)
