// Package engine provides the process-facing facade (spec §6:
// Engine.new(sink) / process(Command) / close()) and the multi-symbol
// extension spec §9 names but leaves unspecified: partitioning CORE's
// book state by SecurityID instead of assuming one instrument per engine.
package engine

import (
	"sync"

	"github.com/huandu/skiplist"
	"github.com/rishav/order-matching-engine/internal/book"
	"github.com/rishav/order-matching-engine/internal/core"
	"github.com/rishav/order-matching-engine/internal/ids"
	"github.com/rishav/order-matching-engine/internal/messages"
)

// SessionRouter dispatches each task to the TradingSession for its
// SecurityID, creating sessions lazily on first sight. It implements
// core.Handler, so the pipeline's CORE stage can't tell it apart from a
// single bare TradingSession (spec §9's "single-instrument assumption" is
// what this generalizes).
//
// The registry is a huandu/skiplist kept in SecurityID order purely so an
// admin dump or a Symbols() call is deterministic; CORE itself only ever
// does point lookups.
type SessionRouter struct {
	mu       sync.Mutex
	sessions *skiplist.SkipList
}

func NewSessionRouter() *SessionRouter {
	return &SessionRouter{
		sessions: skiplist.New(skiplist.String),
	}
}

func (r *SessionRouter) sessionFor(sec ids.SecurityID) *core.TradingSession {
	key := sec.String()
	r.mu.Lock()
	defer r.mu.Unlock()
	if elem := r.sessions.Get(key); elem != nil {
		return elem.Value.(*core.TradingSession)
	}
	session := core.NewTradingSession()
	r.sessions.Set(key, session)
	return session
}

// Depth returns up to n best-first levels on each side of sec's book. The
// second return is false if sec has never been seen (no session was ever
// created for it).
func (r *SessionRouter) Depth(sec ids.SecurityID, n int) (bids, asks []book.DepthLevel, ok bool) {
	key := sec.String()
	r.mu.Lock()
	elem := r.sessions.Get(key)
	r.mu.Unlock()
	if elem == nil {
		return nil, nil, false
	}
	bids, asks = elem.Value.(*core.TradingSession).Depth(n)
	return bids, asks, true
}

// Symbols returns every instrument partition seen so far, in sorted order.
func (r *SessionRouter) Symbols() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for elem := r.sessions.Front(); elem != nil; elem = elem.Next() {
		out = append(out, elem.Key().(string))
	}
	return out
}

// Handle routes task to the session owning its SecurityID. EndOfStream has
// no SecurityID to route on and simply passes through.
func (r *SessionRouter) Handle(task messages.Task) []messages.Task {
	switch t := task.(type) {
	case messages.NewOrderTask:
		return r.sessionFor(t.Order.SecurityID).Handle(t)
	case messages.NewOrderRejected:
		return []messages.Task{t}
	case messages.CancelRequestTask:
		return r.sessionFor(t.Info.SecurityID).Handle(t)
	case messages.CancelRequestRejected:
		return []messages.Task{t}
	case messages.EndOfStream:
		return []messages.Task{t}
	default:
		panic(book.InvariantViolation{Msg: "engine: unroutable task reached SessionRouter"})
	}
}
