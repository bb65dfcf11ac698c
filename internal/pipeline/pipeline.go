package pipeline

import (
	"sync"

	"github.com/rishav/order-matching-engine/internal/commands"
	"github.com/rishav/order-matching-engine/internal/core"
	"github.com/rishav/order-matching-engine/internal/execreporter"
	"github.com/rishav/order-matching-engine/internal/messages"
	"github.com/rishav/order-matching-engine/internal/preprocessor"
	"github.com/rishav/order-matching-engine/internal/riskcheck"
	"github.com/rishav/order-matching-engine/internal/sink"
)

// DefaultQueueCapacity is the per-hop bound used unless overridden by
// configuration (SPEC_FULL.md §E).
const DefaultQueueCapacity = 8192

// Pipeline runs the four PRE → RC → CORE → EXE stages, each on its own
// goroutine, connected by bounded Queues (spec §2, §5). There is no shared
// mutable state between stages: every message transfers ownership
// forward across a Queue.
type Pipeline struct {
	toRC, toCORE, toEXE *Queue
	inbound             *Queue
	observers           []func(messages.Task)

	wg sync.WaitGroup
}

// New starts the four stage goroutines and returns a Pipeline ready to
// accept commands via Submit. session owns the order books; reporter
// assigns exec_ids; out receives every encoded record. observers (if any)
// are called, in order, with every task CORE produces, after CORE but
// before EXE — the hook spec's supplemented market-data distribution
// feature (SPEC_FULL.md §D) uses to see match/accept/cancel events
// without sitting on the matching path itself.
func New(queueCapacity int, pre *preprocessor.PreProcessor, rc *riskcheck.Checker, session core.Handler, reporter *execreporter.Reporter, out sink.Sink, observers ...func(messages.Task)) *Pipeline {
	if queueCapacity <= 0 {
		queueCapacity = DefaultQueueCapacity
	}

	p := &Pipeline{
		inbound:   NewQueue(queueCapacity),
		toRC:      NewQueue(queueCapacity),
		toCORE:    NewQueue(queueCapacity),
		toEXE:     NewQueue(queueCapacity),
		observers: observers,
	}

	p.wg.Add(4)
	go p.runPRE(pre)
	go p.runRC(rc)
	go p.runCORE(session)
	go p.runEXE(reporter, out)

	return p
}

// Submit hands one inbound command to PRE. Submit itself never blocks
// indefinitely longer than the inbound queue's configured capacity allows
// (spec §2's implicit backpressure).
func (p *Pipeline) Submit(cmd commands.Command) {
	p.inbound.Put(cmd)
}

// Close sends the EndOfStream sentinel and blocks until all four stages
// have drained and joined (spec §5 — shutdown is complete only when every
// worker has joined, and in-flight orders are processed to completion
// first).
func (p *Pipeline) Close() {
	p.inbound.Put(commands.EndOfStream{})
	p.wg.Wait()
}

func (p *Pipeline) runPRE(pre *preprocessor.PreProcessor) {
	defer p.wg.Done()
	for {
		cmd := p.inbound.Get().(commands.Command)
		switch c := cmd.(type) {
		case commands.NewOrder:
			p.toRC.Put(pre.HandleNewOrder(c))
		case commands.CancelRequest:
			p.toRC.Put(pre.HandleCancelRequest(c))
		case commands.EndOfStream:
			p.toRC.Put(messages.EndOfStream{})
			return
		}
	}
}

func (p *Pipeline) runRC(rc *riskcheck.Checker) {
	defer p.wg.Done()
	for {
		task := p.toRC.Get().(messages.Task)
		switch t := task.(type) {
		case messages.NewOrderTask:
			t.RC = rc.Tag(t.Order)
			p.toCORE.Put(t)
		case messages.EndOfStream:
			p.toCORE.Put(t)
			return
		default:
			p.toCORE.Put(t)
		}
	}
}

func (p *Pipeline) runCORE(session core.Handler) {
	defer p.wg.Done()
	for {
		task := p.toCORE.Get().(messages.Task)
		if _, eos := task.(messages.EndOfStream); eos {
			p.toEXE.Put(task)
			return
		}
		for _, out := range session.Handle(task) {
			for _, observe := range p.observers {
				observe(out)
			}
			p.toEXE.Put(out)
		}
	}
}

func (p *Pipeline) runEXE(reporter *execreporter.Reporter, out sink.Sink) {
	defer p.wg.Done()
	for {
		task := p.toEXE.Get().(messages.Task)
		if _, eos := task.(messages.EndOfStream); eos {
			return
		}
		for _, record := range reporter.Report(task) {
			out.Send(record.Encode())
		}
	}
}
