package core

import (
	"testing"

	"github.com/rishav/order-matching-engine/internal/commands"
	"github.com/rishav/order-matching-engine/internal/ids"
	"github.com/rishav/order-matching-engine/internal/messages"
)

func ord(id uint64, pbu, clOrd, sec string, side ids.Side, price ids.Price, qty ids.Qty) commands.NewOrder {
	return commands.NewOrder{
		OrderID:    ids.OrderID{Lo: id},
		PBUID:      ids.NewPBUID(pbu),
		ClOrdID:    ids.NewClOrdID(clOrd),
		SecurityID: ids.NewSecurityID(sec),
		Side:       side,
		Price:      price,
		Qty:        qty,
	}
}

// TestS1BasicCross reproduces the spec's S1 end-to-end scenario.
func TestS1BasicCross(t *testing.T) {
	s := NewTradingSession()

	out1 := s.Handle(messages.NewOrderTask{Order: ord(1, "000100", "123", "SEC001", ids.Buy, 100, 30)})
	if len(out1) != 1 {
		t.Fatalf("order 1: got %d tasks, want 1 (accept only)", len(out1))
	}
	if _, ok := out1[0].(messages.NewOrderAccepted); !ok {
		t.Fatalf("order 1: got %T, want NewOrderAccepted", out1[0])
	}

	out2 := s.Handle(messages.NewOrderTask{Order: ord(2, "000100", "124", "SEC001", ids.Buy, 110, 50)})
	if len(out2) != 1 {
		t.Fatalf("order 2: got %d tasks, want 1 (accept only)", len(out2))
	}

	out3 := s.Handle(messages.NewOrderTask{Order: ord(3, "000100", "125", "SEC001", ids.Sell, 100, 120)})
	if len(out3) != 3 {
		t.Fatalf("order 3: got %d tasks, want 3 (accept + 2 matches)", len(out3))
	}
	if _, ok := out3[0].(messages.NewOrderAccepted); !ok {
		t.Fatalf("order 3 task 0: got %T, want NewOrderAccepted", out3[0])
	}

	m1, ok := out3[1].(messages.NewOrderMatched)
	if !ok {
		t.Fatalf("order 3 task 1: got %T, want NewOrderMatched", out3[1])
	}
	if m1.Order2.OrderID.Lo != 2 || m1.LastPx != 110 || m1.LastQty != 50 || m1.LeavesQty1 != 70 || m1.LeavesQty2 != 0 {
		t.Fatalf("first match = %+v, want against order 2 @110 qty 50, leaves1=70 leaves2=0", m1)
	}

	m2, ok := out3[2].(messages.NewOrderMatched)
	if !ok {
		t.Fatalf("order 3 task 2: got %T, want NewOrderMatched", out3[2])
	}
	if m2.Order2.OrderID.Lo != 1 || m2.LastPx != 100 || m2.LastQty != 30 || m2.LeavesQty1 != 40 || m2.LeavesQty2 != 0 {
		t.Fatalf("second match = %+v, want against order 1 @100 qty 30, leaves1=40 leaves2=0", m2)
	}

	if best, ok := s.sell.Best(); !ok || best != 100 {
		t.Fatalf("residual sell best = %v, ok=%v, want 100", best, ok)
	}
	if qty := s.sell.Depth(1)[0].Qty; qty != 40 {
		t.Fatalf("residual sell qty at 100 = %d, want 40", qty)
	}
}

// TestS2CancelAfterPartialFill reproduces S2, chained after S1.
func TestS2CancelAfterPartialFill(t *testing.T) {
	s := NewTradingSession()
	s.Handle(messages.NewOrderTask{Order: ord(1, "000100", "123", "SEC001", ids.Buy, 100, 30)})
	s.Handle(messages.NewOrderTask{Order: ord(2, "000100", "124", "SEC001", ids.Buy, 110, 50)})
	s.Handle(messages.NewOrderTask{Order: ord(3, "000100", "125", "SEC001", ids.Sell, 100, 120)})

	out := s.Handle(messages.CancelRequestTask{
		Info: commands.OrigOrderInfoForCancel{
			SecurityID: ids.NewSecurityID("SEC001"),
			OrderID:    ids.OrderID{Lo: 3},
			Side:       ids.Sell,
			Price:      100,
		},
		Cancel: commands.CancelRequest{
			OrderID:     ids.OrderID{Lo: 3},
			PBUID:       ids.NewPBUID("000100"),
			ClOrdID:     ids.NewClOrdID("C1"),
			OrigClOrdID: ids.NewClOrdID("125"),
			SecurityID:  ids.NewSecurityID("SEC001"),
		},
	})
	if len(out) != 1 {
		t.Fatalf("got %d tasks, want 1", len(out))
	}
	accepted, ok := out[0].(messages.CancelRequestAccepted)
	if !ok {
		t.Fatalf("got %T, want CancelRequestAccepted", out[0])
	}
	if accepted.LeavesQtyBeforeCancel != 40 {
		t.Fatalf("leaves before cancel = %d, want 40", accepted.LeavesQtyBeforeCancel)
	}
	if s.sell.LevelCount() != 0 {
		t.Fatal("expected sell book empty after cancelling its only resting order")
	}
}

// TestS6SweepThroughMultipleLevels sweeps a sell aggressor through several
// bid levels (scenario S6), resting the unfilled remainder on the sell book.
func TestS6SweepThroughMultipleLevels(t *testing.T) {
	s := NewTradingSession()
	s.Handle(messages.NewOrderTask{Order: ord(1, "000100", "1", "SEC001", ids.Buy, 100, 10)})
	s.Handle(messages.NewOrderTask{Order: ord(2, "000100", "2", "SEC001", ids.Buy, 100, 10)})
	s.Handle(messages.NewOrderTask{Order: ord(3, "000100", "3", "SEC001", ids.Buy, 101, 10)})
	s.Handle(messages.NewOrderTask{Order: ord(4, "000100", "4", "SEC001", ids.Buy, 101, 10)})
	s.Handle(messages.NewOrderTask{Order: ord(5, "000100", "5", "SEC001", ids.Buy, 102, 10)})

	out := s.Handle(messages.NewOrderTask{Order: ord(6, "000100", "6", "SEC001", ids.Sell, 101, 100)})
	// accept + 3 matches: order 5 at 102 (best bid) first, then orders 3 and 4
	// at 101; the bids at 100 are below the sell's limit and stay untouched.
	if len(out) != 4 {
		t.Fatalf("got %d tasks, want 4 (accept + 3 matches)", len(out))
	}
	wantOrder := []uint64{5, 3, 4}
	wantPx := []ids.Price{102, 101, 101}
	for i, want := range wantOrder {
		m, ok := out[i+1].(messages.NewOrderMatched)
		if !ok {
			t.Fatalf("task %d: got %T, want NewOrderMatched", i+1, out[i+1])
		}
		if m.Order2.OrderID.Lo != want {
			t.Fatalf("task %d matched against order %d, want %d", i+1, m.Order2.OrderID.Lo, want)
		}
		if m.LastPx != wantPx[i] {
			t.Fatalf("task %d last_px = %v, want %v (resting price wins)", i+1, m.LastPx, wantPx[i])
		}
	}
	m := out[3].(messages.NewOrderMatched)
	if m.LeavesQty1 != 70 {
		t.Fatalf("aggressor leaves after sweep = %d, want 70", m.LeavesQty1)
	}
	if best, ok := s.sell.Best(); !ok || best != 101 {
		t.Fatalf("residual sell best = %v, ok=%v, want 101", best, ok)
	}
}

func TestCancelMissingOrderRejected(t *testing.T) {
	s := NewTradingSession()
	out := s.Handle(messages.CancelRequestTask{
		Info: commands.OrigOrderInfoForCancel{OrderID: ids.OrderID{Lo: 999}, Side: ids.Buy, Price: 100},
		Cancel: commands.CancelRequest{
			OrigClOrdID: ids.NewClOrdID("999"),
		},
	})
	if len(out) != 1 {
		t.Fatalf("got %d tasks, want 1", len(out))
	}
	rej, ok := out[0].(messages.CancelRequestRejected)
	if !ok || rej.Reason != messages.OrderNotExisted {
		t.Fatalf("got %+v, want CancelRequestRejected(OrderNotExisted)", out[0])
	}
}
