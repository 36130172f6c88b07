package ledgerview

import (
	"fmt"
	"strings"
	"time"

	"github.com/etnz/ledgerview/date"
)

// ParseBounds reads the valid bounds of a dataset. Each end is either a
// YYYY-MM-DD date or an RFC3339 timestamp, in which case its calendar day in
// its own offset is used.
func ParseBounds(startAt, endAt string) (date.Range, error) {
	from, err := boundDate(startAt)
	if err != nil {
		return date.Range{}, fmt.Errorf("invalid start_at: %w", err)
	}
	to, err := boundDate(endAt)
	if err != nil {
		return date.Range{}, fmt.Errorf("invalid end_at: %w", err)
	}
	r := date.Between(from, to)
	if !r.Valid() {
		return date.Range{}, fmt.Errorf("%w: bounds %s", ErrInvalidRange, r)
	}
	return r, nil
}

func boundDate(s string) (date.Date, error) {
	s = strings.TrimSpace(s)
	if d, err := date.Parse(s); err == nil {
		return d, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return date.Date{}, err
	}
	return date.FromTime(t), nil
}

// ClampFiltersToRange fits the resolved range of s into bounds.
//
// When the resolved range already lies within bounds it returns false: no
// update is needed. Otherwise it returns a copy of s with a custom window
// and each end clamped into bounds; a range entirely outside bounds
// collapses onto the nearest bound.
func ClampFiltersToRange(s FilterState, bounds date.Range, now time.Time) (FilterState, bool) {
	if !bounds.Valid() {
		return FilterState{}, false
	}
	requested := ResolveDateRange(s, now).Range()
	clamped := requested.Clamp(bounds)
	if clamped == requested {
		return FilterState{}, false
	}
	return s.WithRange(clamped), true
}
