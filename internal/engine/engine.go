package engine

import (
	"github.com/google/uuid"

	bookpkg "github.com/rishav/order-matching-engine/internal/book"
	"github.com/rishav/order-matching-engine/internal/commands"
	"github.com/rishav/order-matching-engine/internal/execreporter"
	"github.com/rishav/order-matching-engine/internal/ids"
	"github.com/rishav/order-matching-engine/internal/messages"
	"github.com/rishav/order-matching-engine/internal/pipeline"
	"github.com/rishav/order-matching-engine/internal/preprocessor"
	"github.com/rishav/order-matching-engine/internal/riskcheck"
	"github.com/rishav/order-matching-engine/internal/sink"
)

// Engine is the process-facing facade spec §6 names: New(sink), Process,
// Close. It carries a per-instance id (ID; nothing else in the repository
// reads it) and wires PRE/RC/CORE/EXE behind a SessionRouter
// so one Engine can serve several instrument partitions.
type Engine struct {
	ID       uuid.UUID
	router   *SessionRouter
	pipeline *pipeline.Pipeline
	out      sink.Sink
}

// Config controls the pieces of Engine construction spec.md leaves to
// collaborators: queue sizing and the risk-check thresholds.
type Config struct {
	QueueCapacity int
	Risk          riskcheck.Config

	// Observers are called, in order, on every task CORE emits before EXE
	// consumes it — the wiring point for downstream feeds (marketdata,
	// settlement) that must never influence matching itself.
	Observers []func(messages.Task)
}

func DefaultConfig() Config {
	return Config{
		QueueCapacity: pipeline.DefaultQueueCapacity,
		Risk:          riskcheck.DefaultConfig(),
	}
}

// New constructs an Engine and starts its pipeline workers, wired to out.
func New(cfg Config, out sink.Sink) *Engine {
	router := NewSessionRouter()
	e := &Engine{
		ID:     uuid.New(),
		router: router,
		out:    out,
	}
	e.pipeline = pipeline.New(
		cfg.QueueCapacity,
		preprocessor.New(),
		riskcheck.NewChecker(cfg.Risk),
		router,
		execreporter.New(),
		out,
		cfg.Observers...,
	)
	return e
}

// Process submits one inbound command (spec §6's Engine::process).
func (e *Engine) Process(cmd commands.Command) {
	e.pipeline.Submit(cmd)
}

// Close drains the pipeline, joins every stage, and returns the sink so
// the caller can observe its counters (spec §6's close() contract).
func (e *Engine) Close() sink.Sink {
	e.pipeline.Close()
	return e.out
}

// Symbols lists every instrument partition the engine has seen.
func (e *Engine) Symbols() []string {
	return e.router.Symbols()
}

// Depth returns up to n best-first levels on each side of sec's book.
func (e *Engine) Depth(sec ids.SecurityID, n int) (bids, asks []bookpkg.DepthLevel, ok bool) {
	return e.router.Depth(sec, n)
}
