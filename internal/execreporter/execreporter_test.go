package execreporter

import (
	"testing"

	"github.com/rishav/order-matching-engine/internal/commands"
	"github.com/rishav/order-matching-engine/internal/ids"
	"github.com/rishav/order-matching-engine/internal/messages"
	"github.com/rishav/order-matching-engine/internal/reports"
)

func TestFirstExecIDIsOne(t *testing.T) {
	r := New()
	recs := r.Report(messages.NewOrderAccepted{Order: commands.NewOrder{OrderID: ids.OrderID{Lo: 1}, Qty: 10}})
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}
	er := recs[0].(reports.ExecutionReport)
	if er.ExecID.Lo != 1 {
		t.Fatalf("first exec_id = %d, want 1", er.ExecID.Lo)
	}
	if er.ExecType != reports.ExecTypeNew || er.OrdStatus != reports.OrdStatusNew {
		t.Fatalf("got exec_type=%c ord_status=%c, want NEW/NEW", er.ExecType, er.OrdStatus)
	}
	if er.LeavesQty != 10 {
		t.Fatalf("leaves_qty = %d, want 10 (full order qty)", er.LeavesQty)
	}
}

func TestMatchProducesThreeRecordsSharingOneExecID(t *testing.T) {
	r := New()
	r.Report(messages.NewOrderAccepted{Order: commands.NewOrder{OrderID: ids.OrderID{Lo: 1}}}) // burn exec_id 1

	order1 := commands.NewOrder{OrderID: ids.OrderID{Lo: 2}, Qty: 100}
	order2 := commands.NewOrder{OrderID: ids.OrderID{Lo: 3}, Qty: 30, Price: 100}
	recs := r.Report(messages.NewOrderMatched{
		Order1:     order1,
		LeavesQty1: 70,
		Order2:     order2,
		LeavesQty2: 0,
		LastPx:     100,
		LastQty:    30,
	})
	if len(recs) != 3 {
		t.Fatalf("got %d records, want 3", len(recs))
	}

	leg1 := recs[0].(reports.ExecutionReport)
	leg2 := recs[1].(reports.ExecutionReport)
	capture := recs[2].(reports.TradeCaptureReport)

	if leg1.ExecID.Lo != 2 || leg2.ExecID.Lo != 2 || capture.ExecID.Lo != 2 {
		t.Fatalf("exec_ids = %d/%d/%d, want all 2", leg1.ExecID.Lo, leg2.ExecID.Lo, capture.ExecID.Lo)
	}
	if leg1.OrdStatus != reports.OrdStatusPartiallyFilled {
		t.Fatalf("leg1 ord_status = %c, want PARTIALLY_FILLED (leaves=70)", leg1.OrdStatus)
	}
	if leg2.OrdStatus != reports.OrdStatusFilled {
		t.Fatalf("leg2 ord_status = %c, want FILLED (leaves=0)", leg2.OrdStatus)
	}
	if leg1.CumQty != 30 {
		t.Fatalf("leg1 cum_qty = %d, want 30", leg1.CumQty)
	}
	if capture.CounterpartyExecID.Lo != 2 {
		t.Fatal("counterparty_exec_id must equal exec_id (spec §9)")
	}

	next := r.Report(messages.NewOrderAccepted{Order: commands.NewOrder{OrderID: ids.OrderID{Lo: 4}}})
	if next[0].(reports.ExecutionReport).ExecID.Lo != 3 {
		t.Fatal("exec_id must advance by exactly one after a match pair, not one per record")
	}
}

func TestCancelAcceptedCumQty(t *testing.T) {
	r := New()
	recs := r.Report(messages.CancelRequestAccepted{
		LeavesQtyBeforeCancel: 40,
		OrigOrder:             commands.NewOrder{OrderID: ids.OrderID{Lo: 1}, Qty: 120},
		Cancel:                commands.CancelRequest{ClOrdID: ids.NewClOrdID("C1")},
	})
	er := recs[0].(reports.ExecutionReport)
	if er.CumQty != 80 {
		t.Fatalf("cum_qty = %d, want 80 (120-40)", er.CumQty)
	}
	if er.ExecType != reports.ExecTypeCancelled || er.OrdStatus != reports.OrdStatusCancelled {
		t.Fatalf("got exec_type=%c ord_status=%c, want CANCELLED/CANCELLED", er.ExecType, er.OrdStatus)
	}
}

func TestCancelRejectCarriesNoExecID(t *testing.T) {
	r := New()
	recs := r.Report(messages.CancelRequestRejected{Reason: messages.OrderNotExisted})
	if _, ok := recs[0].(reports.CancelReject); !ok {
		t.Fatalf("got %T, want CancelReject", recs[0])
	}
}

func TestEndOfStreamProducesNoRecords(t *testing.T) {
	r := New()
	recs := r.Report(messages.EndOfStream{})
	if recs != nil {
		t.Fatalf("got %d records, want 0", len(recs))
	}
}
