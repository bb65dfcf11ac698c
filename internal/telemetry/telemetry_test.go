package telemetry

import "testing"

func TestNewLoggerDefaultsOnBadLevel(t *testing.T) {
	log := NewLogger("not-a-level", "console")
	// zerolog.ParseLevel failing must not panic; the logger should still
	// be usable.
	log.Info().Msg("telemetry smoke test")
}

func TestNewMetricsRegistersCollectors(t *testing.T) {
	m := NewMetrics()
	m.StageThroughput.WithLabelValues("pre").Inc()
	m.QueueDepth.WithLabelValues("pre_to_rc").Set(3)
	m.MatchLatency.Observe(0.001)
	m.RecordsEmitted.Inc()
}
