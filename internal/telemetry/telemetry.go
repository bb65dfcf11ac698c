// Package telemetry sets up structured logging and Prometheus metrics for
// the engine process. Grounded on the pack's zerolog/prometheus usage
// (see SPEC_FULL.md §C); the teacher itself only used the standard log
// package, so this is the one ambient concern with no direct teacher
// precedent to adapt — the rest of the pack supplies it instead.
package telemetry

import (
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// NewLogger builds a process-wide logger: a human-readable console writer
// in "console" format, structured JSON otherwise.
func NewLogger(level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	if format == "json" {
		return zerolog.New(os.Stdout).With().Timestamp().Logger()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
}

// Metrics holds the engine process's Prometheus collectors. cmd/server's
// CORE observer updates StageThroughput and RecordsEmitted; QueueDepth and
// MatchLatency are registered but nothing in the repository updates them.
type Metrics struct {
	StageThroughput *prometheus.CounterVec
	QueueDepth      *prometheus.GaugeVec
	MatchLatency    prometheus.Histogram
	RecordsEmitted  prometheus.Counter
}

// NewMetrics registers every collector against the default registerer.
// Called once per process.
func NewMetrics() *Metrics {
	return &Metrics{
		StageThroughput: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "matching_engine",
			Name:      "stage_tasks_total",
			Help:      "Tasks processed by each pipeline stage.",
		}, []string{"stage"}),
		QueueDepth: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "matching_engine",
			Name:      "queue_depth",
			Help:      "Current number of items queued at each pipeline hop.",
		}, []string{"hop"}),
		MatchLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: "matching_engine",
			Name:      "match_latency_seconds",
			Help:      "Time from NewOrder submission to its last match/accept record.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
		RecordsEmitted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "matching_engine",
			Name:      "records_emitted_total",
			Help:      "Total outbound records handed to the sink.",
		}),
	}
}
