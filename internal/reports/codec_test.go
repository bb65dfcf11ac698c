package reports

import (
	"encoding/binary"
	"testing"

	"github.com/rishav/order-matching-engine/internal/ids"
	"github.com/rishav/order-matching-engine/internal/messages"
)

func TestExecutionReportRoundTrip(t *testing.T) {
	want := ExecutionReport{
		OrderID:        ids.OrderID{Hi: 1, Lo: 2},
		PBUID:          ids.NewPBUID("000100"),
		ClOrdID:        ids.NewClOrdID("123"),
		OrigClOrdID:    ids.NewClOrdID("999"),
		SecurityID:     ids.NewSecurityID("SEC001"),
		Side:           ids.Sell,
		Price:          100,
		Qty:            30,
		CumQty:         30,
		LeavesQty:      0,
		RejectedReason: messages.Passed,
		ExecType:       ExecTypeTrade,
		OrdStatus:      OrdStatusFilled,
		LastPx:         100,
		LastQty:        30,
		ExecID:         ids.ExecID{Hi: 0, Lo: 5},
	}

	encoded := want.Encode()
	length := binary.LittleEndian.Uint32(encoded[0:4])
	if int(length) != len(encoded)-4 {
		t.Fatalf("length prefix = %d, want %d", length, len(encoded)-4)
	}

	got := DecodeExecutionReport(encoded[4:])
	if got != want {
		t.Fatalf("round trip mismatch:\n got  %+v\n want %+v", got, want)
	}
}

func TestExecutionReportEncodeIsDeterministic(t *testing.T) {
	r := ExecutionReport{OrderID: ids.OrderID{Lo: 1}, Side: ids.Buy, ExecType: ExecTypeNew, OrdStatus: OrdStatusNew}
	a := r.Encode()
	b := r.Encode()
	if len(a) != len(b) {
		t.Fatal("encode length differs across calls")
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("encode output differs at byte %d", i)
		}
	}
}
