// Package order models the customer order as the client sees it: the
// fixed status lifecycle, the checkout draft, and the tax-inclusive amount
// breakdown shown on the status page.
package order

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Status is the server-owned order state.
type Status string

const (
	StatusPlaced  Status = "PLACED"
	StatusCooking Status = "COOKING"
	StatusReady   Status = "READY"
	StatusServed  Status = "SERVED"
)

// Sequence is the full lifecycle in order. It is strictly linear: no skips,
// no rollback, SERVED is terminal.
var Sequence = []Status{StatusPlaced, StatusCooking, StatusReady, StatusServed}

// ProgressIndex returns the position of s in the lifecycle, or -1 when s is
// not a known status (an unknown status marks no steps complete).
func ProgressIndex(s Status) int {
	for i, step := range Sequence {
		if step == s {
			return i
		}
	}
	return -1
}

// IsTerminal reports whether no further advance is possible.
func IsTerminal(s Status) bool { return s == StatusServed }

// Next returns the only allowed advance from s. ok is false at the terminal
// state and for unknown statuses; the caller offers no advance action then.
func Next(s Status) (next Status, ok bool) {
	idx := ProgressIndex(s)
	if idx < 0 || idx == len(Sequence)-1 {
		return "", false
	}
	return Sequence[idx+1], true
}

// ValidateTransition checks an explicit advance request against the linear
// lifecycle. The client only ever names the next status in sequence.
func ValidateTransition(current, requested Status) error {
	next, ok := Next(current)
	if !ok {
		return fmt.Errorf("order at %s cannot advance", current)
	}
	if requested != next {
		return fmt.Errorf("order at %s can only advance to %s, not %s", current, next, requested)
	}
	return nil
}

var inclusiveRate = decimal.NewFromFloat(1.18)

// Amounts is the display breakdown of a tax-inclusive total held in paise.
type Amounts struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// SplitInclusiveTotal derives subtotal and tax from a total that already
// includes 18% GST: subtotal = total/1.18, tax = total - subtotal. The
// derivation matches the status page display digit for digit.
func SplitInclusiveTotal(totalPaise int64) Amounts {
	total := decimal.NewFromInt(totalPaise).Div(decimal.NewFromInt(100))
	subtotal := total.Div(inclusiveRate)
	return Amounts{
		Subtotal: subtotal,
		Tax:      total.Sub(subtotal),
		Total:    total,
	}
}
