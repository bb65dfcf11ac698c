package settlement

import (
	"testing"

	"github.com/rishav/order-matching-engine/internal/ids"
	"github.com/rishav/order-matching-engine/internal/reports"
)

func TestRecordNetsOppositePositions(t *testing.T) {
	c := NewClearingHouse()
	c.Record(reports.TradeCaptureReport{
		PBUID:             ids.NewPBUID("000100"),
		SecurityID:        ids.NewSecurityID("SEC001"),
		CounterpartyPBUID: ids.NewPBUID("000200"),
		LastQty:           30,
	})

	positions := c.Positions()
	if len(positions) != 2 {
		t.Fatalf("got %d positions, want 2", len(positions))
	}
	if positions[0].PBUID.String() != "000100" || positions[0].NetQty != 30 {
		t.Fatalf("first position = %+v, want 000100 long 30", positions[0])
	}
	if positions[1].PBUID.String() != "000200" || positions[1].NetQty != -30 {
		t.Fatalf("second position = %+v, want 000200 short 30", positions[1])
	}
}

func TestGenerateSettlementInstructionsDirection(t *testing.T) {
	c := NewClearingHouse()
	c.Record(reports.TradeCaptureReport{
		PBUID:             ids.NewPBUID("000100"),
		SecurityID:        ids.NewSecurityID("SEC001"),
		CounterpartyPBUID: ids.NewPBUID("000200"),
		LastQty:           30,
	})

	instructions := c.GenerateSettlementInstructions()
	if len(instructions) != 2 {
		t.Fatalf("got %d instructions, want 2", len(instructions))
	}
	if instructions[0].Direction != "RECEIVE" || instructions[0].Qty != 30 {
		t.Fatalf("buyer instruction = %+v, want RECEIVE 30", instructions[0])
	}
	if instructions[1].Direction != "DELIVER" || instructions[1].Qty != 30 {
		t.Fatalf("seller instruction = %+v, want DELIVER 30", instructions[1])
	}
}

func TestZeroNetPositionOmitted(t *testing.T) {
	c := NewClearingHouse()
	c.Record(reports.TradeCaptureReport{
		PBUID:             ids.NewPBUID("000100"),
		SecurityID:        ids.NewSecurityID("SEC001"),
		CounterpartyPBUID: ids.NewPBUID("000200"),
		LastQty:           30,
	})
	// Reverse trade flattens both sides back to zero.
	c.Record(reports.TradeCaptureReport{
		PBUID:             ids.NewPBUID("000200"),
		SecurityID:        ids.NewSecurityID("SEC001"),
		CounterpartyPBUID: ids.NewPBUID("000100"),
		LastQty:           30,
	})

	if positions := c.Positions(); len(positions) != 0 {
		t.Fatalf("got %d non-zero positions, want 0", len(positions))
	}
}
