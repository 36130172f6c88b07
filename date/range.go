package date

import (
	"fmt"
	"time"
)

// MonthFormat is the layout of a month label.
const MonthFormat = "2006-01"

// Range represents an inclusive range of dates.
type Range struct{ From, To Date }

// NewRange return the well known period containing d.
func NewRange(d Date, period Period) Range {
	return Range{From: d.StartOf(period), To: d.EndOf(period)}
}

// Between returns the range [from, to] as is, without reordering.
func Between(from, to Date) Range { return Range{From: from, To: to} }

// ParseRange parses both endpoints strictly.
func ParseRange(from, to string) (Range, error) {
	f, err := Parse(from)
	if err != nil {
		return Range{}, fmt.Errorf("invalid range start: %w", err)
	}
	t, err := Parse(to)
	if err != nil {
		return Range{}, fmt.Errorf("invalid range end: %w", err)
	}
	return Range{From: f, To: t}, nil
}

// IsZero reports whether both endpoints are unset.
func (r Range) IsZero() bool { return r.From.IsZero() && r.To.IsZero() }

// Valid reports whether both endpoints are set and From is not after To.
func (r Range) Valid() bool { return !r.From.IsZero() && !r.To.IsZero() && !r.From.After(r.To) }

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool { return !date.Before(r.From) && !date.After(r.To) }

// ContainsTime reports whether the calendar day of t, in t's location, is in the range.
func (r Range) ContainsTime(t time.Time) bool { return r.Contains(FromTime(t)) }

// Days returns the number of days in the range, boundaries included, or 0
// for an invalid range.
func (r Range) Days() int {
	if !r.Valid() {
		return 0
	}
	return int(r.To.time().Sub(r.From.time())/(24*time.Hour)) + 1
}

// Intersect returns the overlap of r and b, and false when they do not overlap.
func (r Range) Intersect(b Range) (Range, bool) {
	out := r
	if out.From.Before(b.From) {
		out.From = b.From
	}
	if out.To.After(b.To) {
		out.To = b.To
	}
	if out.From.After(out.To) {
		return Range{}, false
	}
	return out, true
}

// Clamp moves each endpoint of r into bounds.
//
// When r overlaps bounds the result is their intersection. When r lies
// entirely outside, both endpoints collapse onto the nearest edge of bounds.
func (r Range) Clamp(bounds Range) Range {
	clamp := func(d Date) Date {
		if d.Before(bounds.From) {
			return bounds.From
		}
		if d.After(bounds.To) {
			return bounds.To
		}
		return d
	}
	return Range{From: clamp(r.From), To: clamp(r.To)}
}

// String formats the range as "from..to".
func (r Range) String() string { return fmt.Sprintf("%s..%s", r.From, r.To) }

// MonthLabel returns the YYYY-MM label of the month containing d.
func MonthLabel(d Date) string { return d.time().Format(MonthFormat) }

// MonthBounds returns the first and last day of the month named by a
// YYYY-MM label. Malformed labels return false.
func MonthBounds(label string) (Range, bool) {
	on, err := time.Parse(MonthFormat, label)
	if err != nil {
		return Range{}, false
	}
	return NewRange(FromTime(on), Monthly), true
}
