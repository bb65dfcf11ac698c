package riskcheck

import (
	"testing"

	"github.com/rishav/order-matching-engine/internal/commands"
	"github.com/rishav/order-matching-engine/internal/ids"
)

func TestTagAlwaysPasses(t *testing.T) {
	c := NewChecker(DefaultConfig())
	result := c.Tag(commands.NewOrder{
		PBUID: ids.NewPBUID("000100"),
		Side:  ids.Buy,
		Price: 100,
		Qty:   10_000_000, // well over every threshold
	})
	if !result.Passed {
		t.Fatal("RC is a placeholder stage and must never fail an order")
	}
	if result.Reason == "" {
		t.Fatal("expected a non-empty reason tag for an over-threshold order")
	}
	if len(result.ChecksRun) == 0 {
		t.Fatal("expected ChecksRun to record which checks ran")
	}
}

func TestTagWithinLimitsHasNoReason(t *testing.T) {
	c := NewChecker(DefaultConfig())
	result := c.Tag(commands.NewOrder{
		PBUID: ids.NewPBUID("000100"),
		Side:  ids.Buy,
		Price: 100,
		Qty:   10,
	})
	if !result.Passed {
		t.Fatal("expected Passed")
	}
	if result.Reason != "" {
		t.Fatalf("reason = %q, want empty for a well-within-limits order", result.Reason)
	}
}
