// Package riskcheck implements RC, the second pipeline stage. Spec §4.2
// defines RC as a placeholder: it forwards everything PRE hands it
// unchanged, producing an RcResult for accepted new orders that downstream
// stages may reference but which never causes a rejection.
//
// Adapted from the teacher's internal/risk.Checker: the per-PBU position
// tracking and the order-size and order-value checks survive, but drive a
// tag instead of a reject —
// RC here can only ever report Passed=true, plus a reason string carrying
// which check (if any) would have tripped, a seam left for the position-
// limit/credit/price-collar policy spec §4.2 says is coming.
package riskcheck

import (
	"fmt"
	"sync"

	"github.com/rishav/order-matching-engine/internal/commands"
	"github.com/rishav/order-matching-engine/internal/ids"
	"github.com/rishav/order-matching-engine/internal/messages"
)

// Config mirrors the teacher's risk.Config: informational thresholds that
// would gate order flow in a non-placeholder RC.
type Config struct {
	MaxOrderQty    ids.Qty
	MaxOrderValue  int64 // price ticks * qty
	MaxPositionQty ids.Qty
}

func DefaultConfig() Config {
	return Config{
		MaxOrderQty:    1_000_000,
		MaxOrderValue:  1_000_000_000,
		MaxPositionQty: 5_000_000,
	}
}

// Checker tags every accepted new order with an RcResult, tracking
// per-PBU net position the way the teacher's Checker did, but never
// rejecting (spec §4.2).
type Checker struct {
	cfg Config

	mu       sync.Mutex
	position map[ids.PBUID]int64 // signed net shares: +buy, -sell
}

func NewChecker(cfg Config) *Checker {
	return &Checker{
		cfg:      cfg,
		position: make(map[ids.PBUID]int64),
	}
}

// Tag runs every configured check against o, records its effect on the
// PBU's tracked position, and returns an RcResult. Passed is always true —
// RC is a pass-through stage; Reason is only ever informational.
func (c *Checker) Tag(o commands.NewOrder) messages.RcResult {
	var checksRun []string
	var reason string

	checksRun = append(checksRun, "order_qty")
	if o.Qty > c.cfg.MaxOrderQty {
		reason = fmt.Sprintf("order_qty %d exceeds limit %d", o.Qty, c.cfg.MaxOrderQty)
	}

	checksRun = append(checksRun, "order_value")
	value := int64(o.Price) * int64(o.Qty)
	if reason == "" && value > c.cfg.MaxOrderValue {
		reason = fmt.Sprintf("order_value %d exceeds limit %d", value, c.cfg.MaxOrderValue)
	}

	checksRun = append(checksRun, "position")
	c.mu.Lock()
	delta := int64(o.Qty)
	if o.Side == ids.Sell {
		delta = -delta
	}
	pos := c.position[o.PBUID] + delta
	c.position[o.PBUID] = pos
	c.mu.Unlock()
	if reason == "" {
		abs := pos
		if abs < 0 {
			abs = -abs
		}
		if ids.Qty(abs) > c.cfg.MaxPositionQty {
			reason = fmt.Sprintf("resulting position %d exceeds limit %d", pos, c.cfg.MaxPositionQty)
		}
	}

	return messages.RcResult{
		Passed:    true,
		Reason:    reason,
		ChecksRun: checksRun,
	}
}
