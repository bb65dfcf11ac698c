// Package settlement simulates netting and settlement instruction
// generation, fed TradeCaptureReport values that cmd/server builds from
// CORE's match events (ahead of EXE). It is a pure
// downstream observer — spec §1 names settlement an external
// collaborator, and this package never feeds back into matching.
//
// Adapted from the teacher's internal/settlement.ClearingHouse: the net-
// position-per-participant model and DVP settlement-instruction shape
// carry over; the sorted iteration by participant now uses
// emirpasic/gods/v2's red-black tree instead of the teacher's ranging
// over a Go map (which has no iteration order at all).
package settlement

import (
	"github.com/emirpasic/gods/v2/trees/redblacktree"
	"github.com/emirpasic/gods/v2/utils"

	"github.com/rishav/order-matching-engine/internal/ids"
	"github.com/rishav/order-matching-engine/internal/reports"
)

// Position is one participant's net holding in one instrument.
type Position struct {
	PBUID      ids.PBUID
	SecurityID ids.SecurityID
	NetQty     int64 // positive = long, negative = short
}

type positionKey struct {
	pbu string
	sec string
}

// ClearingHouse tracks net positions per (PBUID, SecurityID) pair as trade
// captures arrive, and can emit deterministic settlement instructions.
//
// Simplifying assumption (documented, since TradeCaptureReport carries no
// Side field per spec §6): the report's primary party is treated as the
// buyer and its counterparty as the seller. This is accurate only when the
// aggressor is a buy order; for a sell aggressor (as in S1) the two
// positions come out with their signs reversed. A production clearing
// feed would instead consume the original Side alongside the capture.
type ClearingHouse struct {
	positions *redblacktree.Tree[positionKey, int64]
}

func keyLess(a, b positionKey) int {
	if a.pbu != b.pbu {
		return utils.StringComparator(a.pbu, b.pbu)
	}
	return utils.StringComparator(a.sec, b.sec)
}

func NewClearingHouse() *ClearingHouse {
	return &ClearingHouse{
		positions: redblacktree.NewWith[positionKey, int64](keyLess),
	}
}

// Record applies one trade capture's effect on both parties' net
// positions.
func (c *ClearingHouse) Record(t reports.TradeCaptureReport) {
	qty := int64(t.LastQty)
	c.adjust(t.PBUID, t.SecurityID, qty)
	c.adjust(t.CounterpartyPBUID, t.SecurityID, -qty)
}

func (c *ClearingHouse) adjust(pbu ids.PBUID, sec ids.SecurityID, delta int64) {
	key := positionKey{pbu: pbu.String(), sec: sec.String()}
	existing, _ := c.positions.Get(key)
	c.positions.Put(key, existing+delta)
}

// Positions returns every non-zero net position, sorted by (PBUID,
// SecurityID) for deterministic output.
func (c *ClearingHouse) Positions() []Position {
	var out []Position
	it := c.positions.Iterator()
	for it.Next() {
		if it.Value() == 0 {
			continue
		}
		out = append(out, Position{
			PBUID:      ids.NewPBUID(it.Key().pbu),
			SecurityID: ids.NewSecurityID(it.Key().sec),
			NetQty:     it.Value(),
		})
	}
	return out
}

// Instruction is one leg of a DVP (delivery-versus-payment) settlement.
type Instruction struct {
	PBUID      ids.PBUID
	SecurityID ids.SecurityID
	Direction  string // "DELIVER" or "RECEIVE"
	Qty        ids.Qty
}

// GenerateSettlementInstructions turns every non-zero position into one
// DVP instruction, in deterministic (sorted) order.
func (c *ClearingHouse) GenerateSettlementInstructions() []Instruction {
	positions := c.Positions()
	out := make([]Instruction, 0, len(positions))
	for _, p := range positions {
		direction := "RECEIVE"
		qty := p.NetQty
		if qty < 0 {
			direction = "DELIVER"
			qty = -qty
		}
		out = append(out, Instruction{
			PBUID:      p.PBUID,
			SecurityID: p.SecurityID,
			Direction:  direction,
			Qty:        ids.Qty(qty),
		})
	}
	return out
}
