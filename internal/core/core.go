// Package core implements CORE, the third pipeline stage: it owns the two
// order books for a single instrument partition and runs the continuous
// matching algorithm (spec §4.3).
//
// Grounded on the teacher's internal/matching.Engine — the resting-
// order-price-wins trade policy and accept-then-match shape carry over —
// but rebuilt on package book's single signed-key tree instead of the
// teacher's two-RBTree OrderBook, and FOK/IOC all-or-nothing semantics are
// dropped (spec's Non-goals exclude order types beyond plain limit).
package core

import (
	"github.com/rishav/order-matching-engine/internal/book"
	"github.com/rishav/order-matching-engine/internal/commands"
	"github.com/rishav/order-matching-engine/internal/ids"
	"github.com/rishav/order-matching-engine/internal/messages"
)

// Handler is satisfied by TradingSession and by any dispatcher that routes
// a task to the right session (spec §9's multi-instrument variant, which
// indexes books by SecurityID and routes on arrival at CORE).
type Handler interface {
	Handle(task messages.Task) []messages.Task
}

// TradingSession holds one instrument's two books and the set of orders
// still referenceable after acceptance (spec §3's ownership note: EXE may
// reference an order after it has left the book, for the cancel-accepted
// report).
type TradingSession struct {
	buy    *book.PriceOrderBook // HIGH_FIRST
	sell   *book.PriceOrderBook // LOW_FIRST
	orders map[ids.OrderID]commands.NewOrder
}

func NewTradingSession() *TradingSession {
	return &TradingSession{
		buy:    book.NewPriceOrderBook(book.HighFirst),
		sell:   book.NewPriceOrderBook(book.LowFirst),
		orders: make(map[ids.OrderID]commands.NewOrder),
	}
}

// Handle applies a single inbound task and returns the ordered sequence of
// outbound tasks it produces, per spec §4.3.
func (s *TradingSession) Handle(task messages.Task) []messages.Task {
	switch t := task.(type) {
	case messages.NewOrderTask:
		return s.handleNewOrder(t.Order)
	case messages.NewOrderRejected:
		return []messages.Task{t}
	case messages.CancelRequestTask:
		return s.handleCancel(t.Info, t.Cancel)
	case messages.CancelRequestRejected:
		return []messages.Task{t}
	case messages.EndOfStream:
		return []messages.Task{t}
	default:
		panic(book.InvariantViolation{Msg: "core: unknown task type reached CORE"})
	}
}

func (s *TradingSession) handleNewOrder(o commands.NewOrder) []messages.Task {
	out := []messages.Task{messages.NewOrderAccepted{Order: o}}
	s.orders[o.OrderID] = o

	contra, own := s.sideBooks(o.Side)
	leaves, consumed := contra.ConsumeOrder(o.Qty, o.Price)

	cum := ids.Qty(0)
	for _, e := range consumed {
		cum += e.ConsumedQty
		out = append(out, messages.NewOrderMatched{
			Order1:     o,
			LeavesQty1: o.Qty - cum,
			Order2:     e.Orig,
			LeavesQty2: e.LeavesQtyAfter,
			LastPx:     e.Orig.Price,
			LastQty:    e.ConsumedQty,
		})
	}

	if leaves > 0 {
		own.InsertOrderWithLeavesQty(leaves, o)
	}
	return out
}

func (s *TradingSession) handleCancel(info commands.OrigOrderInfoForCancel, c commands.CancelRequest) []messages.Task {
	var target *book.PriceOrderBook
	if info.Side == ids.Buy {
		target = s.buy
	} else {
		target = s.sell
	}

	consumed, ok := target.RemoveOrder(info.OrderID)
	if !ok {
		return []messages.Task{messages.CancelRequestRejected{Reason: messages.OrderNotExisted, Cancel: c}}
	}

	orig, ok := s.orders[info.OrderID]
	if !ok {
		panic(book.InvariantViolation{Msg: "core: cancelled an order the session never accepted"})
	}

	return []messages.Task{messages.CancelRequestAccepted{
		LeavesQtyBeforeCancel: consumed.ConsumedQty,
		Cancel:                c,
		OrigOrder:             orig,
	}}
}

func (s *TradingSession) sideBooks(side ids.Side) (contra, own *book.PriceOrderBook) {
	if side == ids.Buy {
		return s.sell, s.buy
	}
	return s.buy, s.sell
}

// Depth returns up to n best-first levels on each side, for market-data
// snapshots and admin/CLI book views. It never participates in matching
// itself (spec §1 treats market-data publication as an external
// collaborator).
func (s *TradingSession) Depth(n int) (bids, asks []book.DepthLevel) {
	return s.buy.Depth(n), s.sell.Depth(n)
}
