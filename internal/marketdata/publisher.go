// Package marketdata distributes market data to subscribers: a trade
// report for every match, and L2 depth snapshots published on demand.
// There is no L1 quote stream. Adapted from the
// teacher's internal/marketdata.Publisher, generalized from the old
// orders.Order/Trade types onto ids/book/messages, and wired as a
// pipeline observer (see internal/pipeline.New's observers parameter)
// instead of being called directly from the matcher.
package marketdata

import (
	"sync"

	"github.com/rishav/order-matching-engine/internal/book"
	"github.com/rishav/order-matching-engine/internal/ids"
	"github.com/rishav/order-matching-engine/internal/messages"
)

// TradeReport is published for every match CORE produces.
type TradeReport struct {
	SecurityID ids.SecurityID
	Price      ids.Price
	Qty        ids.Qty
}

// L2Depth is a point-in-time snapshot of both sides of one instrument's
// book, requested on demand (see Publisher.PublishDepth) rather than
// streamed on every mutation.
type L2Depth struct {
	SecurityID ids.SecurityID
	Bids       []book.DepthLevel
	Asks       []book.DepthLevel
}

// Update is the single envelope type delivered to every subscriber
// channel; exactly one field is set.
type Update struct {
	Trade *TradeReport
	Depth *L2Depth
}

// Publisher fans Updates out to per-symbol and all-symbol subscribers.
// Grounded on the teacher's Publisher: per-symbol channel maps plus a
// broadcast list, non-blocking send that drops to a slow subscriber
// rather than stalling the publisher (market-data fanout tolerates loss;
// the durable EXE record stream, in package sink, does not).
type Publisher struct {
	mu         sync.RWMutex
	bySymbol   map[ids.SecurityID][]chan Update
	allSymbols []chan Update
}

func NewPublisher() *Publisher {
	return &Publisher{
		bySymbol: make(map[ids.SecurityID][]chan Update),
	}
}

// Subscribe returns a channel that receives every Update for sec.
func (p *Publisher) Subscribe(sec ids.SecurityID) <-chan Update {
	ch := make(chan Update, 64)
	p.mu.Lock()
	p.bySymbol[sec] = append(p.bySymbol[sec], ch)
	p.mu.Unlock()
	return ch
}

// SubscribeAll returns a channel that receives every Update across every
// instrument.
func (p *Publisher) SubscribeAll() <-chan Update {
	ch := make(chan Update, 256)
	p.mu.Lock()
	p.allSymbols = append(p.allSymbols, ch)
	p.mu.Unlock()
	return ch
}

func (p *Publisher) publish(sec ids.SecurityID, u Update) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, ch := range p.bySymbol[sec] {
		select {
		case ch <- u:
		default:
		}
	}
	for _, ch := range p.allSymbols {
		select {
		case ch <- u:
		default:
		}
	}
}

// PublishDepth publishes an on-demand L2 snapshot.
func (p *Publisher) PublishDepth(d L2Depth) {
	p.publish(d.SecurityID, Update{Depth: &d})
}

// Observe is a pipeline.New observer: it turns a NewOrderMatched CORE
// output into a TradeReport. Every other task type is ignored — PRE/RC
// rejections and accepts carry no new book-state delta a quote feed
// needs.
func (p *Publisher) Observe(task messages.Task) {
	m, ok := task.(messages.NewOrderMatched)
	if !ok {
		return
	}
	report := TradeReport{
		SecurityID: m.Order1.SecurityID,
		Price:      m.LastPx,
		Qty:        m.LastQty,
	}
	p.publish(m.Order1.SecurityID, Update{Trade: &report})
}
