// Package metrics exposes Prometheus collectors for sandbox runs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "mazebot"

var (
	// runsTotal counts finished runs.
	// Labels: engine, outcome (reached, budget_exhausted, failed)
	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "sandbox",
		Name:      "runs_total",
		Help:      "Total finished runs by engine and outcome",
	}, []string{"engine", "outcome"})

	// runSteps tracks how many moves a run took.
	runSteps = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "sandbox",
		Name:      "run_steps",
		Help:      "Distribution of moves per run",
		Buckets:   prometheus.ExponentialBuckets(4, 2, 10),
	}, []string{"engine"})

	// runDuration measures wall time spent inside the simulation.
	runDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "sandbox",
		Name:      "run_duration_seconds",
		Help:      "Simulation wall time per run in seconds",
		Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"engine"})

	// rejectedBoards counts boards that failed to parse.
	rejectedBoards = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "sandbox",
		Name:      "rejected_boards_total",
		Help:      "Total submitted boards that could not be parsed",
	})

	// rateLimited counts requests refused by the rate limiter.
	rateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "rate_limited_total",
		Help:      "Total requests refused by the per-client rate limiter",
	})
)

// RecordRun records the outcome of one finished run.
func RecordRun(engine, outcome string, steps int, d time.Duration) {
	runsTotal.WithLabelValues(engine, outcome).Inc()
	runSteps.WithLabelValues(engine).Observe(float64(steps))
	runDuration.WithLabelValues(engine).Observe(d.Seconds())
}

// RecordRejectedBoard records a board that failed to parse.
func RecordRejectedBoard() {
	rejectedBoards.Inc()
}

// RecordRateLimited records a request refused by the rate limiter.
func RecordRateLimited() {
	rateLimited.Inc()
}
