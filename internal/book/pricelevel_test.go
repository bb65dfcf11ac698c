package book

import (
	"testing"

	"github.com/rishav/order-matching-engine/internal/commands"
	"github.com/rishav/order-matching-engine/internal/ids"
)

func newOrder(id uint64, price ids.Price, qty ids.Qty) commands.NewOrder {
	return commands.NewOrder{
		OrderID: ids.OrderID{Lo: id},
		Price:   price,
		Qty:     qty,
	}
}

func TestPriceLevelAppendAndConsumeFIFO(t *testing.T) {
	lvl := newPriceLevel(100)
	lvl.AppendOrderWithLeavesQty(10, newOrder(1, 100, 10))
	lvl.AppendOrderWithLeavesQty(5, newOrder(2, 100, 5))

	if lvl.Total() != 15 {
		t.Fatalf("total = %d, want 15", lvl.Total())
	}

	remaining, consumed := lvl.ConsumeOrder(12)
	if remaining != 0 {
		t.Fatalf("remaining = %d, want 0", remaining)
	}
	if len(consumed) != 2 {
		t.Fatalf("consumed %d orders, want 2", len(consumed))
	}
	if consumed[0].Orig.OrderID.Lo != 1 || consumed[0].ConsumedQty != 10 {
		t.Fatalf("first consumption = %+v, want order 1 fully consumed", consumed[0])
	}
	if consumed[1].Orig.OrderID.Lo != 2 || consumed[1].ConsumedQty != 2 || consumed[1].LeavesQtyAfter != 3 {
		t.Fatalf("second consumption = %+v, want order 2 partially consumed to 3 left", consumed[1])
	}
	if lvl.Total() != 3 {
		t.Fatalf("total after consume = %d, want 3", lvl.Total())
	}
}

func TestPriceLevelAppendZeroLeavesPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on zero leaves_qty append")
		}
	}()
	lvl := newPriceLevel(100)
	lvl.AppendOrderWithLeavesQty(0, newOrder(1, 100, 10))
}

func TestPriceLevelCancelTombstonesInPlace(t *testing.T) {
	lvl := newPriceLevel(100)
	lvl.AppendOrderWithLeavesQty(10, newOrder(1, 100, 10))
	lvl.AppendOrderWithLeavesQty(5, newOrder(2, 100, 5))
	lvl.AppendOrderWithLeavesQty(7, newOrder(3, 100, 7))

	consumed, ok := lvl.RemoveOrder(ids.OrderID{Lo: 2})
	if !ok {
		t.Fatal("expected cancel of order 2 to succeed")
	}
	if consumed.ConsumedQty != 5 {
		t.Fatalf("cancelled consumed_qty = %d, want 5", consumed.ConsumedQty)
	}
	if lvl.Total() != 17 {
		t.Fatalf("total after cancel = %d, want 17 (10+7)", lvl.Total())
	}

	live := lvl.LiveOrders()
	if len(live) != 2 {
		t.Fatalf("live orders = %d, want 2", len(live))
	}
	if live[0].Orig.OrderID.Lo != 1 || live[1].Orig.OrderID.Lo != 3 {
		t.Fatalf("live FIFO order wrong: %+v", live)
	}
}

func TestPriceLevelCancelMiddleThenConsumeSkipsTombstone(t *testing.T) {
	lvl := newPriceLevel(100)
	lvl.AppendOrderWithLeavesQty(10, newOrder(1, 100, 10))
	lvl.AppendOrderWithLeavesQty(5, newOrder(2, 100, 5))
	lvl.AppendOrderWithLeavesQty(7, newOrder(3, 100, 7))

	if _, ok := lvl.RemoveOrder(ids.OrderID{Lo: 2}); !ok {
		t.Fatal("expected cancel to succeed")
	}

	remaining, consumed := lvl.ConsumeOrder(17)
	if remaining != 0 {
		t.Fatalf("remaining = %d, want 0", remaining)
	}
	if len(consumed) != 2 {
		t.Fatalf("consumed %d orders, want 2 (tombstone skipped)", len(consumed))
	}
	if consumed[0].Orig.OrderID.Lo != 1 || consumed[1].Orig.OrderID.Lo != 3 {
		t.Fatalf("consumed wrong orders: %+v", consumed)
	}
}

func TestPriceLevelCancelUnknownOrderFails(t *testing.T) {
	lvl := newPriceLevel(100)
	lvl.AppendOrderWithLeavesQty(10, newOrder(1, 100, 10))
	if _, ok := lvl.RemoveOrder(ids.OrderID{Lo: 99}); ok {
		t.Fatal("expected cancel of unknown order to fail")
	}
}

func TestPriceLevelConsumeMoreThanAvailableLeavesRemainder(t *testing.T) {
	lvl := newPriceLevel(100)
	lvl.AppendOrderWithLeavesQty(10, newOrder(1, 100, 10))

	remaining, consumed := lvl.ConsumeOrder(15)
	if remaining != 5 {
		t.Fatalf("remaining = %d, want 5", remaining)
	}
	if len(consumed) != 1 || consumed[0].ConsumedQty != 10 {
		t.Fatalf("consumed = %+v, want single full consumption of 10", consumed)
	}
	if !lvl.IsEmpty() {
		t.Fatal("expected level to be empty after consuming all liquidity")
	}
}
