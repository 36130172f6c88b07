package ledgerview

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/etnz/ledgerview/date"
)

// ErrInvalidRange reports a resolved range that must not be used to query
// the ledger source.
var ErrInvalidRange = errors.New("invalid date range")

// Query keys, in canonical order.
const (
	KeyStart      = "start"
	KeyEnd        = "end"
	KeyWindow     = "window"
	KeyAccount    = "account"
	KeyVendor     = "vendor"
	KeyCategory   = "category"
	KeyDirection  = "direction"
	KeyQ          = "q"
	KeyAnchor     = "anchor_source_event_id"
	KeyHighlights = "highlight_source_event_ids"
)

// QueryKeys lists the recognized query keys in canonical order.
var QueryKeys = []string{KeyStart, KeyEnd, KeyWindow, KeyAccount, KeyVendor, KeyCategory, KeyDirection, KeyQ, KeyAnchor, KeyHighlights}

// FilterState is the canonical description of what the user is looking at.
//
// List fields hold sorted, distinct, non-empty tokens. A canonical state
// survives Encode then ParseQuery unchanged.
type FilterState struct {
	Start  date.Date
	End    date.Date
	Window Window

	Account  []string
	Vendor   []string
	Category []string

	Direction Direction
	Q         string

	AnchorSourceEventID     string
	HighlightSourceEventIDs []string
}

// ParseQuery parses a raw query string, with or without a leading "?".
// Pairs with a broken escape are dropped, the others are still read.
func ParseQuery(query string) FilterState {
	values, _ := url.ParseQuery(strings.TrimPrefix(query, "?"))
	return ParseFilterState(values)
}

// ParseFilterState reads the recognized keys of params. Unknown keys are
// ignored and malformed values are treated as absent: it never fails.
//
// When a key is repeated only its first value is read.
func ParseFilterState(params url.Values) FilterState {
	var s FilterState
	if d, err := date.Parse(strings.TrimSpace(params.Get(KeyStart))); err == nil {
		s.Start = d
	}
	if d, err := date.Parse(strings.TrimSpace(params.Get(KeyEnd))); err == nil {
		s.End = d
	}
	if w, ok := ParseWindow(strings.TrimSpace(params.Get(KeyWindow))); ok {
		s.Window = w
	}
	s.Account = splitList(params.Get(KeyAccount))
	s.Vendor = splitList(params.Get(KeyVendor))
	s.Category = splitList(params.Get(KeyCategory))
	if d, ok := ParseDirection(params.Get(KeyDirection)); ok {
		s.Direction = d
	}
	s.Q = strings.TrimSpace(params.Get(KeyQ))
	s.AnchorSourceEventID = strings.TrimSpace(params.Get(KeyAnchor))
	s.HighlightSourceEventIDs = splitList(params.Get(KeyHighlights))
	return s
}

// splitList splits a comma-joined list into sorted distinct non-empty tokens.
func splitList(s string) []string {
	var out []string
	for _, tok := range strings.Split(s, ",") {
		if tok = strings.TrimSpace(tok); tok != "" {
			out = append(out, tok)
		}
	}
	if len(out) == 0 {
		return nil
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// Canonical returns the state with every list sorted and deduplicated and
// every text field trimmed.
func (s FilterState) Canonical() FilterState {
	s.Account = splitList(strings.Join(s.Account, ","))
	s.Vendor = splitList(strings.Join(s.Vendor, ","))
	s.Category = splitList(strings.Join(s.Category, ","))
	s.HighlightSourceEventIDs = splitList(strings.Join(s.HighlightSourceEventIDs, ","))
	s.Q = strings.TrimSpace(s.Q)
	s.AnchorSourceEventID = strings.TrimSpace(s.AnchorSourceEventID)
	if _, ok := ParseDirection(string(s.Direction)); !ok {
		s.Direction = ""
	}
	if _, ok := ParseWindow(string(s.Window)); !ok {
		s.Window = ""
	}
	return s
}

// Values returns the canonical query parameters of the state, omitting
// every absent field.
func (s FilterState) Values() url.Values {
	s = s.Canonical()
	v := url.Values{}
	set := func(key, value string) {
		if value != "" {
			v.Set(key, value)
		}
	}
	set(KeyStart, s.Start.String())
	set(KeyEnd, s.End.String())
	set(KeyWindow, string(s.Window))
	set(KeyAccount, strings.Join(s.Account, ","))
	set(KeyVendor, strings.Join(s.Vendor, ","))
	set(KeyCategory, strings.Join(s.Category, ","))
	set(KeyDirection, string(s.Direction))
	set(KeyQ, s.Q)
	set(KeyAnchor, s.AnchorSourceEventID)
	set(KeyHighlights, strings.Join(s.HighlightSourceEventIDs, ","))
	return v
}

// Encode returns the canonical query string of the state: keys in QueryKeys
// order, list members sorted and joined with unescaped commas.
func (s FilterState) Encode() string {
	v := s.Values()
	var b strings.Builder
	for _, key := range QueryKeys {
		value := v.Get(key)
		if value == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(key)
		b.WriteByte('=')
		parts := strings.Split(value, ",")
		for i, p := range parts {
			parts[i] = url.QueryEscape(p)
		}
		b.WriteString(strings.Join(parts, ","))
	}
	return b.String()
}

// BuildSearchParams is s.Encode().
func BuildSearchParams(s FilterState) string { return s.Encode() }

// String returns the canonical query string.
func (s FilterState) String() string { return s.Encode() }

// Equal reports whether both states have the same canonical form.
func (s FilterState) Equal(x FilterState) bool { return s.Encode() == x.Encode() }

// WithWindow selects a window. A preset recomputes start and end from now;
// custom keeps the current dates.
func (s FilterState) WithWindow(w Window, now time.Time) FilterState {
	s.Window = w
	if r, ok := DateRangeForWindow(w, now); ok {
		s.Start, s.End = r.From, r.To
	}
	return s
}

// WithStart sets the start date. The window becomes custom so the new date
// is not overridden by a stale preset.
func (s FilterState) WithStart(d date.Date) FilterState {
	s.Start, s.Window = d, WindowCustom
	return s
}

// WithEnd sets the end date. The window becomes custom so the new date is
// not overridden by a stale preset.
func (s FilterState) WithEnd(d date.Date) FilterState {
	s.End, s.Window = d, WindowCustom
	return s
}

// WithRange sets both dates and makes the window custom.
func (s FilterState) WithRange(r date.Range) FilterState {
	s.Start, s.End, s.Window = r.From, r.To, WindowCustom
	return s
}

// MarshalJSON writes the canonical fields of the state, omitting the absent ones.
func (s FilterState) MarshalJSON() ([]byte, error) {
	s = s.Canonical()
	var w jsonObjectWriter
	w.Optional(KeyStart, s.Start.String())
	w.Optional(KeyEnd, s.End.String())
	w.Optional(KeyWindow, s.Window)
	w.Optional(KeyAccount, s.Account)
	w.Optional(KeyVendor, s.Vendor)
	w.Optional(KeyCategory, s.Category)
	w.Optional(KeyDirection, s.Direction)
	w.Optional(KeyQ, s.Q)
	w.Optional(KeyAnchor, s.AnchorSourceEventID)
	w.Optional(KeyHighlights, s.HighlightSourceEventIDs)
	return w.MarshalJSON()
}

// ValidateRange checks a resolved range before it is used to query the
// ledger source. Failures wrap ErrInvalidRange.
func ValidateRange(r date.Range) error {
	switch {
	case r.From.IsZero() || r.To.IsZero():
		return fmt.Errorf("%w: missing start or end", ErrInvalidRange)
	case r.From.After(r.To):
		return fmt.Errorf("%w: start %s is after end %s", ErrInvalidRange, r.From, r.To)
	default:
		return nil
	}
}

// ValidateISORange is ValidateRange over raw YYYY-MM-DD strings.
func ValidateISORange(start, end string) error {
	r, err := date.ParseRange(start, end)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRange, err)
	}
	return ValidateRange(r)
}
