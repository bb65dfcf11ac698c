// Package reports defines the outbound record surface EXE produces —
// ExecutionReport, TradeCaptureReport, CancelReject — and their bit-exact,
// length-prefixed little-endian binary encoding (spec §6).
package reports

import (
	"github.com/rishav/order-matching-engine/internal/ids"
	"github.com/rishav/order-matching-engine/internal/messages"
)

// ExecType is the single-byte execution type character constant.
type ExecType byte

const (
	ExecTypeNew       ExecType = '0'
	ExecTypeCancelled ExecType = '4'
	ExecTypeReject    ExecType = '8'
	ExecTypeTrade     ExecType = 'F'
)

// OrdStatus is the single-byte order status character constant.
type OrdStatus byte

const (
	OrdStatusNew             OrdStatus = '0'
	OrdStatusPartiallyFilled OrdStatus = '1'
	OrdStatusFilled          OrdStatus = '2'
	OrdStatusCancelled       OrdStatus = '4'
	OrdStatusReject          OrdStatus = '8'
)

// ExecutionReport is one execution/state-change record for a single order.
type ExecutionReport struct {
	OrderID        ids.OrderID
	PBUID          ids.PBUID
	ClOrdID        ids.ClOrdID
	OrigClOrdID    ids.ClOrdID
	SecurityID     ids.SecurityID
	Side           ids.Side
	Price          ids.Price
	Qty            ids.Qty
	CumQty         ids.Qty
	LeavesQty      ids.Qty
	RejectedReason messages.CancelReasonCode
	ExecType       ExecType
	OrdStatus      OrdStatus
	LastPx         ids.Price
	LastQty        ids.Qty
	ExecID         ids.ExecID
}

// TradeCaptureReport reports one side of a trade for capture/clearing.
// Both counterparties carry the same ExecID (spec §4.6, §9 — intentional).
type TradeCaptureReport struct {
	SecurityID            ids.SecurityID
	OrderID               ids.OrderID
	PBUID                 ids.PBUID
	ClOrdID               ids.ClOrdID
	ExecID                ids.ExecID
	CounterpartyOrderID   ids.OrderID
	CounterpartyPBUID     ids.PBUID
	CounterpartyClOrdID   ids.ClOrdID
	CounterpartyExecID    ids.ExecID
	LastPx                ids.Price
	LastQty               ids.Qty
}

// CancelReject reports a rejected cancel request. It carries no ExecID —
// rejecting a cancel is not a stateful execution (spec §4.6, §9).
type CancelReject struct {
	OrderID        ids.OrderID
	PBUID          ids.PBUID
	ClOrdID        ids.ClOrdID
	OrigClOrdID    ids.ClOrdID
	SecurityID     ids.SecurityID
	RejectedReason messages.CancelReasonCode
}

// Record is implemented by every outbound record type, so the codec can
// dispatch on the concrete type without a type switch at every call site.
type Record interface {
	Encode() []byte
}
