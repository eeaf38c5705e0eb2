// internal/observability/metrics.go
//
// Prometheus metrics for the Hangman server, registered once on the default
// registry and served by promhttp at /metrics.

package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hangman",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hangman",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
	gamesStarted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hangman",
			Subsystem: "game",
			Name:      "started_total",
			Help:      "Games started.",
		},
		[]string{"daily"},
	)
	guesses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hangman",
			Subsystem: "game",
			Name:      "guesses_total",
			Help:      "Guesses evaluated, by outcome.",
		},
		[]string{"outcome"},
	)
	gamesFinished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hangman",
			Subsystem: "game",
			Name:      "finished_total",
			Help:      "Games finished, by status.",
		},
		[]string{"status"},
	)
)

// RegisterMetrics registers every collector; safe to call more than once.
func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, gamesStarted, guesses, gamesFinished)
	})
}

// RecordHTTPRequest counts one request and observes its latency.
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(method, route, statusLabel).Inc()
	httpDuration.WithLabelValues(method, route, statusLabel).Observe(duration.Seconds())
}

// RecordGameStarted counts a new game, labelled by whether it is the daily one.
func RecordGameStarted(daily bool) {
	RegisterMetrics()
	gamesStarted.WithLabelValues(strconv.FormatBool(daily)).Inc()
}

// RecordGuess counts a guess by outcome.
func RecordGuess(outcome string) {
	RegisterMetrics()
	guesses.WithLabelValues(outcome).Inc()
}

// RecordGameFinished counts a game ending in status won or lost.
func RecordGameFinished(status string) {
	RegisterMetrics()
	gamesFinished.WithLabelValues(status).Inc()
}
