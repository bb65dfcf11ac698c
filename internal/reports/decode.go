package reports

import (
	"encoding/binary"

	"github.com/rishav/order-matching-engine/internal/ids"
	"github.com/rishav/order-matching-engine/internal/messages"
)

func getU128(b []byte) (hi, lo uint64) {
	lo = binary.LittleEndian.Uint64(b[0:8])
	hi = binary.LittleEndian.Uint64(b[8:16])
	return hi, lo
}

// DecodeExecutionReport reverses Encode's body (the length prefix must
// already be stripped). It exists for tests that verify the codec is a
// faithful, bit-exact round trip of spec §6's field layout.
func DecodeExecutionReport(body []byte) ExecutionReport {
	var r ExecutionReport
	i := 0

	hi, lo := getU128(body[i:])
	r.OrderID.Hi, r.OrderID.Lo = hi, lo
	i += 16

	copy(r.PBUID[:], body[i:i+6])
	i += 6
	copy(r.ClOrdID[:], body[i:i+10])
	i += 10
	copy(r.OrigClOrdID[:], body[i:i+10])
	i += 10
	copy(r.SecurityID[:], body[i:i+8])
	i += 8

	r.Side = ids.SideFromChar(body[i])
	i++

	r.Price = ids.Price(binary.LittleEndian.Uint64(body[i:]))
	i += 8
	r.Qty = ids.Qty(binary.LittleEndian.Uint64(body[i:]))
	i += 8
	r.CumQty = ids.Qty(binary.LittleEndian.Uint64(body[i:]))
	i += 8
	r.LeavesQty = ids.Qty(binary.LittleEndian.Uint64(body[i:]))
	i += 8

	r.RejectedReason = messages.CancelReasonCode(binary.LittleEndian.Uint32(body[i:]))
	i += 4

	r.ExecType = ExecType(body[i])
	i++
	r.OrdStatus = OrdStatus(body[i])
	i++

	r.LastPx = ids.Price(binary.LittleEndian.Uint64(body[i:]))
	i += 8
	r.LastQty = ids.Qty(binary.LittleEndian.Uint64(body[i:]))
	i += 8

	hi, lo = getU128(body[i:])
	r.ExecID.Hi, r.ExecID.Lo = hi, lo
	i += 16

	return r
}
