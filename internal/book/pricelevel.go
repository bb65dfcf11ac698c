// Package book implements the resting order book: a single price-ordered
// tree per side, lazily-tombstoned FIFO price levels, and the direction
// trick that lets one tree shape serve both a HIGH_FIRST (bid) and a
// LOW_FIRST (ask) book (spec §4.4, §4.5).
//
// Adapted from the teacher's internal/orderbook package: the FIFO linked
// list and RB-tree shape carry over, but cancellation changes from the
// teacher's eager unlink-on-cancel to an in-place tombstone, so a match
// walk in progress never observes a list mutation underneath it.
package book

import "github.com/rishav/order-matching-engine/internal/commands"
import "github.com/rishav/order-matching-engine/internal/ids"

// InvariantViolation is panicked when a caller breaks a contract the book
// itself relies on (spec §7 — these are bugs, not domain rejections).
type InvariantViolation struct{ Msg string }

func (e InvariantViolation) Error() string { return e.Msg }

// RestingOrder is one FIFO-queued order at a price level.
type RestingOrder struct {
	Orig      commands.NewOrder
	LeavesQty ids.Qty
}

// ConsumedOrder describes the effect of a match or cancel on one resting
// order: how much was taken off it and what it had left afterward.
type ConsumedOrder struct {
	Orig           commands.NewOrder
	ConsumedQty    ids.Qty
	LeavesQtyAfter ids.Qty
}

type orderNode struct {
	order RestingOrder
	tomb  bool
	prev  *orderNode
	next  *orderNode
}

// PriceLevel is a FIFO of resting orders at a single price. Cancelled
// orders are marked with leaves_qty = 0 and a tombstone flag rather than
// unlinked immediately, so an in-progress iterator never has a node pulled
// out from under it (spec §4.5).
type PriceLevel struct {
	Price ids.Price
	total ids.Qty
	head  *orderNode
	tail  *orderNode
	byID  map[ids.OrderID]*orderNode
}

func newPriceLevel(price ids.Price) *PriceLevel {
	return &PriceLevel{
		Price: price,
		byID:  make(map[ids.OrderID]*orderNode),
	}
}

// Total is the live (non-tombstoned) resting quantity at this level.
func (pl *PriceLevel) Total() ids.Qty { return pl.total }

func (pl *PriceLevel) IsEmpty() bool { return pl.total == 0 }

// AppendOrderWithLeavesQty appends a resting order to the back of the
// FIFO. leavesQty must be non-zero; a zero leaves_qty order has nothing
// left to rest and is an invariant violation to insert.
func (pl *PriceLevel) AppendOrderWithLeavesQty(leavesQty ids.Qty, order commands.NewOrder) {
	if leavesQty == 0 {
		panic(InvariantViolation{"AppendOrderWithLeavesQty: leaves_qty is zero"})
	}
	n := &orderNode{order: RestingOrder{Orig: order, LeavesQty: leavesQty}}
	if pl.tail == nil {
		pl.head = n
		pl.tail = n
	} else {
		n.prev = pl.tail
		pl.tail.next = n
		pl.tail = n
	}
	pl.byID[order.OrderID] = n
	pl.total += leavesQty
}

// RemoveOrder tombstones a resting order in place (spec §4.5's lazy
// cancellation) and returns what it held before removal. The second
// return is false if the order is not (or no longer) resting here.
func (pl *PriceLevel) RemoveOrder(orderID ids.OrderID) (ConsumedOrder, bool) {
	n, ok := pl.byID[orderID]
	if !ok || n.tomb {
		return ConsumedOrder{}, false
	}
	before := n.order.LeavesQty
	n.tomb = true
	n.order.LeavesQty = 0
	pl.total -= before
	delete(pl.byID, orderID)
	return ConsumedOrder{Orig: n.order.Orig, ConsumedQty: before, LeavesQtyAfter: 0}, true
}

// ConsumeOrder walks the FIFO from the front, filling qty against live
// orders in time priority, skipping (and unlinking) tombstones as it
// passes them. It returns the quantity left unfilled (0 unless qty
// exceeded the level's live total) and the list of orders it consumed
// from, each annotated with how much it took and what was left.
func (pl *PriceLevel) ConsumeOrder(qty ids.Qty) (ids.Qty, []ConsumedOrder) {
	var consumed []ConsumedOrder
	for qty > 0 {
		pl.sweepFront()
		n := pl.head
		if n == nil {
			break
		}
		take := n.order.LeavesQty
		if take > qty {
			take = qty
		}
		n.order.LeavesQty -= take
		pl.total -= take
		qty -= take
		consumed = append(consumed, ConsumedOrder{
			Orig:           n.order.Orig,
			ConsumedQty:    take,
			LeavesQtyAfter: n.order.LeavesQty,
		})
		if n.order.LeavesQty == 0 {
			n.tomb = true
			delete(pl.byID, n.order.Orig.OrderID)
			pl.unlink(n)
		}
	}
	return qty, consumed
}

// sweepFront drops tombstoned nodes at the head of the list.
func (pl *PriceLevel) sweepFront() {
	for pl.head != nil && pl.head.tomb {
		pl.unlink(pl.head)
	}
}

// sweepBack drops tombstoned nodes at the tail of the list.
func (pl *PriceLevel) sweepBack() {
	for pl.tail != nil && pl.tail.tomb {
		pl.unlink(pl.tail)
	}
}

func (pl *PriceLevel) unlink(n *orderNode) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		pl.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		pl.tail = n.prev
	}
	n.prev = nil
	n.next = nil
}

// LiveOrders returns every still-resting order at this level in FIFO
// (time priority) order, sweeping tombstones at both ends as it goes.
// It is used by depth/market-data views, never by the matching path.
func (pl *PriceLevel) LiveOrders() []RestingOrder {
	pl.sweepFront()
	pl.sweepBack()
	var out []RestingOrder
	for n := pl.head; n != nil; n = n.next {
		if n.tomb {
			continue
		}
		out = append(out, n.order)
	}
	return out
}
