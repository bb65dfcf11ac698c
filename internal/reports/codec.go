package reports

import (
	"encoding/binary"
)

// Each record is written length-prefixed: a uint32 little-endian byte count
// followed by the fixed-field-order body described in spec §6. No pack
// repo ships a general serialization library for this externally-dictated
// byte layout (see SPEC_FULL.md §C), so the codec is hand-written over
// encoding/binary the way the wire format itself is hand-written.

func u128Bytes(hi, lo uint64) [16]byte {
	var b [16]byte
	binary.LittleEndian.PutUint64(b[0:8], lo)
	binary.LittleEndian.PutUint64(b[8:16], hi)
	return b
}

// Encode serializes an ExecutionReport per spec §6's field order:
// order_id, pbu_id, cl_ord_id, orig_cl_ord_id, security_id, side(1),
// price(i64), qty(u64), cum_qty(u64), leaves_qty(u64),
// rejected_reason(u32), exec_type(1), ord_status(1), last_px(i64),
// last_qty(u64), exec_id(u128).
func (r ExecutionReport) Encode() []byte {
	const bodyLen = 16 + 6 + 10 + 10 + 8 + 1 + 8 + 8 + 8 + 8 + 4 + 1 + 1 + 8 + 8 + 16
	body := make([]byte, bodyLen)
	i := 0

	idBytes := u128Bytes(r.OrderID.Hi, r.OrderID.Lo)
	copy(body[i:], idBytes[:])
	i += 16

	copy(body[i:], r.PBUID[:])
	i += 6
	copy(body[i:], r.ClOrdID[:])
	i += 10
	copy(body[i:], r.OrigClOrdID[:])
	i += 10
	copy(body[i:], r.SecurityID[:])
	i += 8

	body[i] = r.Side.Char()
	i++

	binary.LittleEndian.PutUint64(body[i:], uint64(r.Price))
	i += 8
	binary.LittleEndian.PutUint64(body[i:], uint64(r.Qty))
	i += 8
	binary.LittleEndian.PutUint64(body[i:], uint64(r.CumQty))
	i += 8
	binary.LittleEndian.PutUint64(body[i:], uint64(r.LeavesQty))
	i += 8

	binary.LittleEndian.PutUint32(body[i:], uint32(r.RejectedReason))
	i += 4

	body[i] = byte(r.ExecType)
	i++
	body[i] = byte(r.OrdStatus)
	i++

	binary.LittleEndian.PutUint64(body[i:], uint64(r.LastPx))
	i += 8
	binary.LittleEndian.PutUint64(body[i:], uint64(r.LastQty))
	i += 8

	execBytes := u128Bytes(r.ExecID.Hi, r.ExecID.Lo)
	copy(body[i:], execBytes[:])
	i += 16

	return withLengthPrefix(body)
}

// Encode serializes a TradeCaptureReport per spec §6's field order:
// security_id, order_id, pbu_id, cl_ord_id, exec_id,
// counterparty_order_id, counterparty_pbu_id, counterparty_cl_ord_id,
// counterparty_exec_id, last_px, last_qty.
func (t TradeCaptureReport) Encode() []byte {
	const bodyLen = 8 + 16 + 6 + 10 + 16 + 16 + 6 + 10 + 16 + 8 + 8
	body := make([]byte, bodyLen)
	i := 0

	copy(body[i:], t.SecurityID[:])
	i += 8

	orderID := u128Bytes(t.OrderID.Hi, t.OrderID.Lo)
	copy(body[i:], orderID[:])
	i += 16

	copy(body[i:], t.PBUID[:])
	i += 6
	copy(body[i:], t.ClOrdID[:])
	i += 10

	execID := u128Bytes(t.ExecID.Hi, t.ExecID.Lo)
	copy(body[i:], execID[:])
	i += 16

	cpOrderID := u128Bytes(t.CounterpartyOrderID.Hi, t.CounterpartyOrderID.Lo)
	copy(body[i:], cpOrderID[:])
	i += 16

	copy(body[i:], t.CounterpartyPBUID[:])
	i += 6
	copy(body[i:], t.CounterpartyClOrdID[:])
	i += 10

	cpExecID := u128Bytes(t.CounterpartyExecID.Hi, t.CounterpartyExecID.Lo)
	copy(body[i:], cpExecID[:])
	i += 16

	binary.LittleEndian.PutUint64(body[i:], uint64(t.LastPx))
	i += 8
	binary.LittleEndian.PutUint64(body[i:], uint64(t.LastQty))
	i += 8

	return withLengthPrefix(body)
}

// Encode serializes a CancelReject per spec §6's field order: order_id,
// pbu_id, cl_ord_id, orig_cl_ord_id, security_id, rejected_reason.
func (c CancelReject) Encode() []byte {
	const bodyLen = 16 + 6 + 10 + 10 + 8 + 4
	body := make([]byte, bodyLen)
	i := 0

	orderID := u128Bytes(c.OrderID.Hi, c.OrderID.Lo)
	copy(body[i:], orderID[:])
	i += 16

	copy(body[i:], c.PBUID[:])
	i += 6
	copy(body[i:], c.ClOrdID[:])
	i += 10
	copy(body[i:], c.OrigClOrdID[:])
	i += 10
	copy(body[i:], c.SecurityID[:])
	i += 8

	binary.LittleEndian.PutUint32(body[i:], uint32(c.RejectedReason))
	i += 4

	return withLengthPrefix(body)
}

func withLengthPrefix(body []byte) []byte {
	out := make([]byte, 4+len(body))
	binary.LittleEndian.PutUint32(out[0:4], uint32(len(body)))
	copy(out[4:], body)
	return out
}
