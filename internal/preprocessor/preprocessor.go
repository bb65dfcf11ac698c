// Package preprocessor implements PRE, the first pipeline stage: duplicate
// detection and cancel↔order pairing (spec §4.1). It is a pure monotonic
// filter confined to a single goroutine — no locking, same as the
// teacher's single-threaded EventProcessor consumers.
package preprocessor

import (
	"github.com/rishav/order-matching-engine/internal/commands"
	"github.com/rishav/order-matching-engine/internal/messages"
)

type clOrdKey struct {
	pbu   [6]byte
	clOrd [10]byte
}

func keyOf(pbuID [6]byte, clOrdID [10]byte) clOrdKey {
	return clOrdKey{pbu: pbuID, clOrd: clOrdID}
}

// PreProcessor holds PRE's two ever-growing maps. It never shrinks for the
// lifetime of a session (spec §9 — a time-bucketed reset policy is the
// natural production extension, wired through RcResult, and deliberately
// out of scope here).
type PreProcessor struct {
	seenOrders  map[clOrdKey]commands.OrigOrderInfoForCancel
	seenCancels map[clOrdKey]struct{}
}

func New() *PreProcessor {
	return &PreProcessor{
		seenOrders:  make(map[clOrdKey]commands.OrigOrderInfoForCancel),
		seenCancels: make(map[clOrdKey]struct{}),
	}
}

// HandleNewOrder applies spec §4.1's NewOrder contract and returns the task
// to forward to RC.
func (p *PreProcessor) HandleNewOrder(o commands.NewOrder) messages.Task {
	k := keyOf(o.PBUID, o.ClOrdID)

	if _, dup := p.seenCancels[k]; dup {
		return messages.NewOrderRejected{Reason: messages.Duplicated, Order: o}
	}
	if _, dup := p.seenOrders[k]; dup {
		return messages.NewOrderRejected{Reason: messages.Duplicated, Order: o}
	}

	p.seenOrders[k] = o.GetInfoForCancel()
	return messages.NewOrderTask{Order: o}
}

// HandleCancelRequest applies spec §4.1's CancelRequest contract and
// returns the task to forward to RC.
func (p *PreProcessor) HandleCancelRequest(c commands.CancelRequest) messages.Task {
	k := keyOf(c.PBUID, c.ClOrdID)
	if _, reused := p.seenOrders[k]; reused {
		return messages.CancelRequestRejected{Reason: messages.Duplicated, Cancel: c}
	}

	if _, already := p.seenCancels[k]; already {
		return messages.CancelRequestRejected{Reason: messages.Duplicated, Cancel: c}
	}
	p.seenCancels[k] = struct{}{}

	targetKey := keyOf(c.PBUID, c.OrigClOrdID)
	info, ok := p.seenOrders[targetKey]
	if !ok {
		return messages.CancelRequestRejected{Reason: messages.OrderNotExisted, Cancel: c}
	}
	if info.SecurityID != c.SecurityID {
		return messages.CancelRequestRejected{Reason: messages.InvalidSecurity, Cancel: c}
	}
	return messages.CancelRequestTask{Info: info, Cancel: c}
}
