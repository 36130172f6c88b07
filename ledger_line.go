package ledgerview

import (
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

// Direction tells whether money came in or went out.
type Direction string

const (
	Inflow  Direction = "inflow"
	Outflow Direction = "outflow"
)

// ParseDirection parses a direction, case-insensitively. Anything else
// returns "" and false.
func ParseDirection(s string) (Direction, bool) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case Inflow:
		return Inflow, true
	case Outflow:
		return Outflow, true
	default:
		return "", false
	}
}

// DirectionOf returns the direction implied by the sign of amount.
// Zero is an inflow.
func DirectionOf(amount decimal.Decimal) Direction {
	if amount.IsNegative() {
		return Outflow
	}
	return Inflow
}

// Categorization describes how a category was assigned to a line. It is
// informative only and never used in arithmetic.
type Categorization struct {
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason,omitempty"`
	Source     string  `json:"source,omitempty"`
	Status     string  `json:"status,omitempty"`
}

// LedgerLine is one financial event as served by the ledger source, after
// normalization.
//
// Lines are read projections: nothing in this package modifies a line it
// has been given.
type LedgerLine struct {
	OccurredAt       time.Time
	SourceEventID    string
	Description      string
	CounterpartyHint string
	Direction        Direction
	SignedAmount     decimal.Decimal

	// Classification dimensions. Empty means unclassified.
	CategoryName   string
	AccountName    string
	AccountType    string
	AccountSubtype string

	Categorization *Categorization
}

// Magnitude returns the absolute value of the signed amount.
func (l LedgerLine) Magnitude() decimal.Decimal { return l.SignedAmount.Abs() }

// VendorKey returns the normalized counterparty key used to group lines by
// vendor: the counterparty hint, or the description when there is no hint,
// lower-cased, with punctuation removed and numeric tokens of three digits
// or more (card numbers, references) dropped.
func (l LedgerLine) VendorKey() string { return vendorKey(l.vendorLabel()) }

func (l LedgerLine) vendorLabel() string {
	if hint := strings.TrimSpace(l.CounterpartyHint); hint != "" {
		return hint
	}
	return strings.TrimSpace(l.Description)
}

func vendorKey(s string) string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	kept := fields[:0]
	for _, f := range fields {
		if len(f) >= 3 && strings.IndexFunc(f, func(r rune) bool { return !unicode.IsDigit(r) }) < 0 {
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " ")
}

// MarshalJSON writes the line with the ledger source field names.
func (l LedgerLine) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("occurred_at", l.OccurredAt.Format(time.RFC3339Nano))
	w.Append("source_event_id", l.SourceEventID)
	w.Append("description", l.Description)
	w.Append("counterparty_hint", l.CounterpartyHint)
	w.Append("direction", l.Direction)
	w.Amount("signed_amount", l.SignedAmount)
	w.Append("category_name", nullable(l.CategoryName))
	w.Append("account_name", nullable(l.AccountName))
	w.Append("account_type", nullable(l.AccountType))
	w.Append("account_subtype", nullable(l.AccountSubtype))
	w.Optional("categorization", l.Categorization)
	return w.MarshalJSON()
}

// nullable maps the empty string to a JSON null.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
