// Package messages defines the task types that flow between pipeline
// stages (PRE → RC → CORE → EXE). Unlike the raw wire commands in package
// commands, these carry the annotations each stage adds: PRE's resolved
// cancel target, RC's risk verdict, CORE's match/cancel outcomes.
package messages

import (
	"github.com/rishav/order-matching-engine/internal/commands"
	"github.com/rishav/order-matching-engine/internal/ids"
)

// CancelReasonCode is the taxonomy of domain-level rejection reasons
// (spec §7). Passed is the sentinel "no error" used as the default in
// reports that were never rejected.
type CancelReasonCode uint32

const (
	Passed CancelReasonCode = iota
	Duplicated
	InvalidSecurity
	OrderNotExisted
)

func (c CancelReasonCode) String() string {
	switch c {
	case Passed:
		return "Passed"
	case Duplicated:
		return "Duplicated"
	case InvalidSecurity:
		return "InvalidSecurity"
	case OrderNotExisted:
		return "OrderNotExisted"
	default:
		return "Unknown"
	}
}

// RcResult is the risk-check extension point (spec §4.2, §9). It is
// plumbed through to CORE even when empty, so downstream components can
// reference the outcome of risk decisions without RC ever rejecting.
type RcResult struct {
	Passed    bool
	Reason    string
	ChecksRun []string
}

// EndOfStream is the sentinel every stage forwards and then terminates on
// (spec §5).
type EndOfStream struct{}

// Task is the marker interface implemented by every message that flows
// through a stage queue.
type Task interface {
	isTask()
}

// NewOrderTask carries a NewOrder forward. Between PRE and RC, RC is the
// zero value. Between RC and CORE, RC holds the computed risk verdict.
type NewOrderTask struct {
	Order commands.NewOrder
	RC    RcResult
}

func (NewOrderTask) isTask() {}

// NewOrderRejected carries a rejected new order and why.
type NewOrderRejected struct {
	Reason CancelReasonCode
	Order  commands.NewOrder
}

func (NewOrderRejected) isTask() {}

// CancelRequestTask carries a cancel request together with the resolved
// location of its target order, as produced by PRE.
type CancelRequestTask struct {
	Info   commands.OrigOrderInfoForCancel
	Cancel commands.CancelRequest
}

func (CancelRequestTask) isTask() {}

// CancelRequestRejected carries a rejected cancel request and why.
type CancelRequestRejected struct {
	Reason CancelReasonCode
	Cancel commands.CancelRequest
}

func (CancelRequestRejected) isTask() {}

// NewOrderAccepted is CORE's immediate ack of an accepted new order, issued
// before any match walk runs (spec §4.3).
type NewOrderAccepted struct {
	Order commands.NewOrder
}

func (NewOrderAccepted) isTask() {}

// NewOrderMatched describes one match event: the aggressor (order1) against
// one consumed resting order (order2). last_px is always the resting
// order's price (spec §4.3's trade-price policy).
type NewOrderMatched struct {
	Order1          commands.NewOrder
	LeavesQty1      ids.Qty
	Order2          commands.NewOrder
	LeavesQty2      ids.Qty
	LastPx          ids.Price
	LastQty         ids.Qty
}

func (NewOrderMatched) isTask() {}

// CancelRequestAccepted is CORE's report that a resting order was removed.
type CancelRequestAccepted struct {
	LeavesQtyBeforeCancel ids.Qty
	Cancel                commands.CancelRequest
	OrigOrder             commands.NewOrder
}

func (CancelRequestAccepted) isTask() {}

func (EndOfStream) isTask() {}
