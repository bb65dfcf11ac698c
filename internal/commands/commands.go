// Package commands defines the inbound command surface that flows into the
// Pre-Processor stage: NewOrder, CancelRequest, and the EndOfStream
// sentinel that drives ordered pipeline shutdown.
package commands

import "github.com/rishav/order-matching-engine/internal/ids"

// NewOrder is a client's request to enter a new limit order. Immutable once
// accepted; shared read-only by every execution/match report that
// references it afterwards.
type NewOrder struct {
	OrderID    ids.OrderID
	PBUID      ids.PBUID
	ClOrdID    ids.ClOrdID
	SecurityID ids.SecurityID
	Side       ids.Side
	Price      ids.Price
	Qty        ids.Qty
}

// OrigOrderInfoForCancel is the minimum a cancel needs to locate the
// resting order in its book: security, venue order id, side, and price.
type OrigOrderInfoForCancel struct {
	SecurityID ids.SecurityID
	OrderID    ids.OrderID
	Side       ids.Side
	Price      ids.Price
}

// GetInfoForCancel projects a NewOrder down to what PRE needs to keep in
// its duplicate-detection map.
func (o NewOrder) GetInfoForCancel() OrigOrderInfoForCancel {
	return OrigOrderInfoForCancel{
		SecurityID: o.SecurityID,
		OrderID:    o.OrderID,
		Side:       o.Side,
		Price:      o.Price,
	}
}

// CancelRequest asks for the resting order identified by OrigClOrdID
// (owned by the same PBUID) to be removed.
type CancelRequest struct {
	OrderID     ids.OrderID
	PBUID       ids.PBUID
	ClOrdID     ids.ClOrdID
	OrigClOrdID ids.ClOrdID
	SecurityID  ids.SecurityID
}

// EndOfStream is the sentinel that flows through every stage queue to drive
// deterministic, ordered shutdown (spec §5).
type EndOfStream struct{}

// Command is the marker interface for everything PRE accepts from the
// decoder (spec §6's inbound command surface).
type Command interface {
	isCommand()
}

func (NewOrder) isCommand()      {}
func (CancelRequest) isCommand() {}
func (EndOfStream) isCommand()   {}
