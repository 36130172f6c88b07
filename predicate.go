package ledgerview

import (
	"slices"
	"strings"
)

// Match reports whether line passes the row filters of the state: account,
// vendor, category, direction and q. Absent fields impose no constraint.
// Dates are not checked here, they bound the fetch.
//
// List fields match when the line's value equals one of the members. Vendor
// members are compared on the normalized vendor key. UnclassifiedKey selects
// the lines without an account or vendor. Q is a case-insensitive
// substring of the description followed by the counterparty hint. Direction
// is read from the sign of the amount, never from the stored field.
func (s FilterState) Match(line LedgerLine) bool {
	if len(s.Account) > 0 && !slices.ContainsFunc(s.Account, func(a string) bool { return memberMatches(a, line.AccountName) }) {
		return false
	}
	if len(s.Category) > 0 && !slices.Contains(s.Category, line.CategoryName) {
		return false
	}
	if len(s.Vendor) > 0 && !slices.ContainsFunc(s.Vendor, func(v string) bool {
		if v != UnclassifiedKey {
			v = vendorKey(v)
		}
		return memberMatches(v, line.VendorKey())
	}) {
		return false
	}
	if s.Direction != "" && DirectionOf(line.SignedAmount) != s.Direction {
		return false
	}
	if q := strings.TrimSpace(s.Q); q != "" {
		haystack := strings.ToLower(line.Description + " " + line.CounterpartyHint)
		if !strings.Contains(haystack, strings.ToLower(q)) {
			return false
		}
	}
	return true
}

// memberMatches reports whether a list filter member selects value.
func memberMatches(member, value string) bool {
	if member == UnclassifiedKey {
		return value == ""
	}
	return member == value
}

// FilterLines returns the lines matching the state, in input order. It must
// run before sorting and aggregation so that metrics describe the visible
// rows only.
func FilterLines(lines []LedgerLine, s FilterState) []LedgerLine {
	out := make([]LedgerLine, 0, len(lines))
	for _, l := range lines {
		if s.Match(l) {
			out = append(out, l)
		}
	}
	return out
}
