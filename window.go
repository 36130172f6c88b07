package ledgerview

import (
	"time"

	"github.com/etnz/ledgerview/date"
)

// Window is a named date window preset.
type Window string

const (
	Window7         Window = "7"
	Window30        Window = "30"
	Window90        Window = "90"
	WindowCustom    Window = "custom"
	WindowMonth     Window = "month"      // current calendar month
	WindowLastMonth Window = "last_month" // previous calendar month
)

// DefaultWindow is applied when a filter state resolves to no range at all.
const DefaultWindow = Window30

// Windows lists every recognized window, presets first.
var Windows = []Window{Window7, Window30, Window90, WindowMonth, WindowLastMonth, WindowCustom}

// ParseWindow parses a window name. Unknown names return "" and false.
func ParseWindow(s string) (Window, bool) {
	for _, w := range Windows {
		if string(w) == s {
			return w, true
		}
	}
	return "", false
}

// IsPreset reports whether the window derives its own start and end.
func (w Window) IsPreset() bool {
	_, ok := w.trailingDays()
	return ok || w == WindowMonth || w == WindowLastMonth
}

func (w Window) trailingDays() (int, bool) {
	switch w {
	case Window7:
		return 7, true
	case Window30:
		return 30, true
	case Window90:
		return 90, true
	default:
		return 0, false
	}
}

// DateRangeForWindow computes the range of a preset window relative to the
// calendar day of now, in now's location.
//
// Trailing presets span "today minus N days" through today. Month presets
// span whole calendar months. Custom and unknown windows return false.
func DateRangeForWindow(w Window, now time.Time) (date.Range, bool) {
	today := date.Today(now)
	if n, ok := w.trailingDays(); ok {
		return date.Between(today.Add(-n), today), true
	}
	switch w {
	case WindowMonth:
		return date.NewRange(today, date.Monthly), true
	case WindowLastMonth:
		return date.NewRange(today.StartOf(date.Monthly).Add(-1), date.Monthly), true
	default:
		return date.Range{}, false
	}
}

// Selection is how a filter state picks its dates: either a Preset window or
// an Explicit pair. The two are exclusive.
type Selection interface {
	isSelection()
}

// Preset selects the dates derived from a preset window.
type Preset struct{ Window Window }

// Explicit selects a caller-provided pair of dates.
type Explicit struct{ Range date.Range }

func (Preset) isSelection()   {}
func (Explicit) isSelection() {}

// Selection returns the authoritative date selection of the state.
//
// A preset window wins over any start and end present. Without a preset, a
// complete start/end pair is used as is. Otherwise the DefaultWindow applies.
func (s FilterState) Selection() Selection {
	switch {
	case s.Window.IsPreset():
		return Preset{Window: s.Window}
	case !s.Start.IsZero() && !s.End.IsZero():
		return Explicit{Range: date.Between(s.Start, s.End)}
	default:
		return Preset{Window: DefaultWindow}
	}
}

// Resolution is a concrete date range and the window it came from.
type Resolution struct {
	Start  date.Date `json:"start"`
	End    date.Date `json:"end"`
	Window Window    `json:"window,omitempty"`
}

// Range returns the resolved [Start, End] range.
func (r Resolution) Range() date.Range { return date.Between(r.Start, r.End) }

// ResolveDateRange resolves the state into concrete dates. It is a pure
// function of its arguments.
//
// Explicit pairs are passed through unchanged, even when inverted: callers
// validate the result with ValidateRange before fetching.
func ResolveDateRange(s FilterState, now time.Time) Resolution {
	switch sel := s.Selection().(type) {
	case Preset:
		r, _ := DateRangeForWindow(sel.Window, now)
		return Resolution{Start: r.From, End: r.To, Window: sel.Window}
	case Explicit:
		return Resolution{Start: sel.Range.From, End: sel.Range.To, Window: s.Window}
	default:
		panic("unknown selection")
	}
}
