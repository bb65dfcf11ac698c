// Package execreporter implements EXE, the fourth and final pipeline
// stage: it assigns exec_ids, turns each inbound task into its outbound
// record(s) (spec §4.6), and hands them to a sink.
package execreporter

import (
	"github.com/rishav/order-matching-engine/internal/ids"
	"github.com/rishav/order-matching-engine/internal/messages"
	"github.com/rishav/order-matching-engine/internal/reports"
)

// Reporter owns the monotonic exec_id counter. It starts at 0 and is
// incremented before assignment, so the first report has exec_id = 1
// (spec §4.6).
type Reporter struct {
	execID ids.ExecID
}

func New() *Reporter {
	return &Reporter{}
}

func (r *Reporter) nextExecID() ids.ExecID {
	r.execID = r.execID.Inc()
	return r.execID
}

// Report turns one inbound task into its outbound record(s), in the order
// spec §4.6 describes. EndOfStream produces no records.
func (r *Reporter) Report(task messages.Task) []reports.Record {
	switch t := task.(type) {
	case messages.NewOrderAccepted:
		return []reports.Record{reports.ExecutionReport{
			OrderID:    t.Order.OrderID,
			PBUID:      t.Order.PBUID,
			ClOrdID:    t.Order.ClOrdID,
			SecurityID: t.Order.SecurityID,
			Side:       t.Order.Side,
			Price:      t.Order.Price,
			Qty:        t.Order.Qty,
			LeavesQty:  t.Order.Qty,
			ExecType:   reports.ExecTypeNew,
			OrdStatus:  reports.OrdStatusNew,
			ExecID:     r.nextExecID(),
		}}

	case messages.NewOrderRejected:
		return []reports.Record{reports.ExecutionReport{
			OrderID:        t.Order.OrderID,
			PBUID:          t.Order.PBUID,
			ClOrdID:        t.Order.ClOrdID,
			SecurityID:     t.Order.SecurityID,
			Side:           t.Order.Side,
			Price:          t.Order.Price,
			Qty:            t.Order.Qty,
			RejectedReason: t.Reason,
			ExecType:       reports.ExecTypeReject,
			OrdStatus:      reports.OrdStatusReject,
			ExecID:         r.nextExecID(),
		}}

	case messages.NewOrderMatched:
		execID := r.nextExecID()

		status1 := reports.OrdStatusPartiallyFilled
		if t.LeavesQty1 == 0 {
			status1 = reports.OrdStatusFilled
		}
		leg1 := reports.ExecutionReport{
			OrderID:    t.Order1.OrderID,
			PBUID:      t.Order1.PBUID,
			ClOrdID:    t.Order1.ClOrdID,
			SecurityID: t.Order1.SecurityID,
			Side:       t.Order1.Side,
			Price:      t.Order1.Price,
			Qty:        t.Order1.Qty,
			CumQty:     t.Order1.Qty - t.LeavesQty1,
			LeavesQty:  t.LeavesQty1,
			ExecType:   reports.ExecTypeTrade,
			OrdStatus:  status1,
			LastPx:     t.LastPx,
			LastQty:    t.LastQty,
			ExecID:     execID,
		}

		status2 := reports.OrdStatusPartiallyFilled
		if t.LeavesQty2 == 0 {
			status2 = reports.OrdStatusFilled
		}
		leg2 := reports.ExecutionReport{
			OrderID:    t.Order2.OrderID,
			PBUID:      t.Order2.PBUID,
			ClOrdID:    t.Order2.ClOrdID,
			SecurityID: t.Order2.SecurityID,
			Side:       t.Order2.Side,
			Price:      t.Order2.Price,
			Qty:        t.Order2.Qty,
			CumQty:     t.Order2.Qty - t.LeavesQty2,
			LeavesQty:  t.LeavesQty2,
			ExecType:   reports.ExecTypeTrade,
			OrdStatus:  status2,
			LastPx:     t.LastPx,
			LastQty:    t.LastQty,
			ExecID:     execID,
		}

		capture := reports.TradeCaptureReport{
			SecurityID:           t.Order1.SecurityID,
			OrderID:              t.Order1.OrderID,
			PBUID:                t.Order1.PBUID,
			ClOrdID:              t.Order1.ClOrdID,
			ExecID:               execID,
			CounterpartyOrderID:  t.Order2.OrderID,
			CounterpartyPBUID:    t.Order2.PBUID,
			CounterpartyClOrdID:  t.Order2.ClOrdID,
			CounterpartyExecID:   execID,
			LastPx:               t.LastPx,
			LastQty:              t.LastQty,
		}

		return []reports.Record{leg1, leg2, capture}

	case messages.CancelRequestAccepted:
		return []reports.Record{reports.ExecutionReport{
			OrderID:     t.OrigOrder.OrderID,
			PBUID:       t.OrigOrder.PBUID,
			ClOrdID:     t.Cancel.ClOrdID,
			OrigClOrdID: t.OrigOrder.ClOrdID,
			SecurityID:  t.OrigOrder.SecurityID,
			Side:        t.OrigOrder.Side,
			Price:       t.OrigOrder.Price,
			Qty:         t.OrigOrder.Qty,
			CumQty:      t.OrigOrder.Qty - t.LeavesQtyBeforeCancel,
			ExecType:    reports.ExecTypeCancelled,
			OrdStatus:   reports.OrdStatusCancelled,
			ExecID:      r.nextExecID(),
		}}

	case messages.CancelRequestRejected:
		return []reports.Record{reports.CancelReject{
			OrderID:        t.Cancel.OrderID,
			PBUID:          t.Cancel.PBUID,
			ClOrdID:        t.Cancel.ClOrdID,
			OrigClOrdID:    t.Cancel.OrigClOrdID,
			SecurityID:     t.Cancel.SecurityID,
			RejectedReason: t.Reason,
		}}

	case messages.EndOfStream:
		return nil

	default:
		panic(unknownTaskType{t})
	}
}

type unknownTaskType struct{ task messages.Task }

func (u unknownTaskType) Error() string { return "execreporter: unknown task type reached EXE" }
