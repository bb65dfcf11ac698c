package book

import "github.com/rishav/order-matching-engine/internal/commands"
import "github.com/rishav/order-matching-engine/internal/ids"

// Direction is a book's iteration order over price. HighFirst books (bids)
// want the highest price first; LowFirst books (asks) want the lowest
// price first.
type Direction int

const (
	HighFirst Direction = iota
	LowFirst
)

// multiplier returns the signed factor applied to a price to produce the
// tree key, so that ascending key order is always best-price-first
// regardless of direction (spec §4.4).
func (d Direction) multiplier() int64 {
	if d == HighFirst {
		return -1
	}
	return 1
}

// PriceOrderBook is one side of a trading session's book: a price-ordered
// tree of PriceLevels, each a time-priority FIFO of resting orders.
type PriceOrderBook struct {
	direction Direction
	mult      int64
	tree      *priceTree
	levelOf   map[ids.OrderID]ids.Price // tracks which level an order rests at, for O(1) cancel lookup
}

// NewPriceOrderBook constructs an empty book for the given direction.
func NewPriceOrderBook(direction Direction) *PriceOrderBook {
	return &PriceOrderBook{
		direction: direction,
		mult:      direction.multiplier(),
		tree:      newPriceTree(),
		levelOf:   make(map[ids.OrderID]ids.Price),
	}
}

func (b *PriceOrderBook) key(price ids.Price) int64 {
	return int64(price) * b.mult
}

// Best returns the best (first-priority) resting price and whether the
// book is non-empty.
func (b *PriceOrderBook) Best() (ids.Price, bool) {
	lvl := b.tree.Min()
	if lvl == nil {
		return 0, false
	}
	return lvl.Price, true
}

// Crosses reports whether the book's best level crosses against an
// incoming limit price for the given direction — i.e. whether a contra
// order resting at the book's best price must trade against an aggressor
// limited at limit. This is the unified cross predicate of spec §4.3:
// best.key <= limit * m, where m is this book's own direction multiplier.
func (b *PriceOrderBook) Crosses(limit ids.Price) bool {
	lvl := b.tree.Min()
	if lvl == nil {
		return false
	}
	return int64(lvl.Price)*b.mult <= int64(limit)*b.mult
}

// InsertOrderWithLeavesQty rests a new order on this book at its limit
// price, creating the price level if this is the first order there.
func (b *PriceOrderBook) InsertOrderWithLeavesQty(leavesQty ids.Qty, order commands.NewOrder) {
	k := b.key(order.Price)
	lvl := b.tree.Get(k)
	if lvl == nil {
		lvl = newPriceLevel(order.Price)
		b.tree.Insert(k, lvl)
	}
	lvl.AppendOrderWithLeavesQty(leavesQty, order)
	b.levelOf[order.OrderID] = order.Price
}

// RemoveOrder cancels a resting order by id, tombstoning it in place at
// its price level and dropping the level from the tree if it falls empty.
func (b *PriceOrderBook) RemoveOrder(orderID ids.OrderID) (ConsumedOrder, bool) {
	price, ok := b.levelOf[orderID]
	if !ok {
		return ConsumedOrder{}, false
	}
	k := b.key(price)
	lvl := b.tree.Get(k)
	if lvl == nil {
		return ConsumedOrder{}, false
	}
	consumed, ok := lvl.RemoveOrder(orderID)
	if !ok {
		return ConsumedOrder{}, false
	}
	delete(b.levelOf, orderID)
	if lvl.IsEmpty() {
		b.tree.Delete(k)
	}
	return consumed, true
}

// ConsumeOrder fills qty against this book's resting liquidity, walking
// price levels best-first and only while they cross the aggressor's limit
// price, in time priority within each level. It returns the quantity left
// unfilled and every resting order it consumed from, in the order they
// were consumed.
func (b *PriceOrderBook) ConsumeOrder(qty ids.Qty, limit ids.Price) (ids.Qty, []ConsumedOrder) {
	var consumed []ConsumedOrder
	for qty > 0 {
		lvl := b.tree.Min()
		if lvl == nil {
			break
		}
		if int64(lvl.Price)*b.mult > int64(limit)*b.mult {
			break
		}
		remaining, got := lvl.ConsumeOrder(qty)
		consumed = append(consumed, got...)
		for _, c := range got {
			if c.LeavesQtyAfter == 0 {
				delete(b.levelOf, c.Orig.OrderID)
			}
		}
		qty = remaining
		if lvl.IsEmpty() {
			b.tree.Delete(b.key(lvl.Price))
		}
	}
	return qty, consumed
}

// Depth returns up to n price levels best-first, each with its aggregate
// live quantity, for market-data snapshots (spec's supplemented
// marketdata feature — never consulted by the matching path itself).
type DepthLevel struct {
	Price ids.Price
	Qty   ids.Qty
}

func (b *PriceOrderBook) Depth(n int) []DepthLevel {
	var out []DepthLevel
	b.tree.ForEach(func(lvl *PriceLevel) bool {
		if len(out) >= n {
			return false
		}
		out = append(out, DepthLevel{Price: lvl.Price, Qty: lvl.Total()})
		return true
	})
	return out
}

// LevelCount is the number of distinct (non-empty) price levels resting
// on this book.
func (b *PriceOrderBook) LevelCount() int { return b.tree.Size() }
