package ledgerview

import (
	"time"

	"github.com/shopspring/decimal"
)

// day is the reference instant of most tests: 2024-06-15 at noon UTC.
var day = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

// line is a helper for tests to create a ledger line from constants.
func line(id string, at time.Time, amount float64) LedgerLine {
	a := decimal.NewFromFloat(amount)
	return LedgerLine{
		OccurredAt:    at,
		SourceEventID: id,
		SignedAmount:  a,
		Direction:     DirectionOf(a),
	}
}

// D is a helper for tests to create a decimal from a constant.
func D(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }
