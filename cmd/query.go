package cmd

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/etnz/ledgerview"
	"github.com/etnz/ledgerview/date"
)

// queryFlags are the filter flags shared by the commands reading ledger
// lines. They override the fields of an optional query string argument.
type queryFlags struct {
	start, end string
	window     string
	account    string
	vendor     string
	category   string
	direction  string
	q          string
	currency   string
}

func (c *queryFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.start, "start", "", "First day (YYYY-MM-DD), makes the window custom, runs through today without -end")
	f.StringVar(&c.end, "end", "", "Last day (YYYY-MM-DD), makes the window custom")
	f.StringVar(&c.window, "window", "", "Window: "+windowNames())
	f.StringVar(&c.account, "account", "", "Comma separated account names")
	f.StringVar(&c.vendor, "vendor", "", "Comma separated vendors")
	f.StringVar(&c.category, "category", "", "Comma separated category names")
	f.StringVar(&c.direction, "direction", "", "inflow or outflow")
	f.StringVar(&c.q, "q", "", "Text searched in descriptions and counterparties")
	f.StringVar(&c.currency, "currency", "USD", "ISO currency used to format amounts")
}

func windowNames() string {
	names := make([]string, len(ledgerview.Windows))
	for i, w := range ledgerview.Windows {
		names[i] = string(w)
	}
	return strings.Join(names, ", ")
}

// state builds the filter state from an optional query string and the
// flags. Malformed query values are dropped like in a URL; malformed flags
// are usage errors.
func (c *queryFlags) state(args []string) (ledgerview.FilterState, error) {
	var s ledgerview.FilterState
	switch len(args) {
	case 0:
	case 1:
		s = ledgerview.ParseQuery(args[0])
	default:
		return s, fmt.Errorf("expected at most one query argument, got %d", len(args))
	}

	if c.window != "" {
		w, ok := ledgerview.ParseWindow(c.window)
		if !ok {
			return s, fmt.Errorf("unknown window %q, want one of %s", c.window, windowNames())
		}
		s.Window = w
	}
	if c.start != "" {
		d, err := date.Parse(c.start)
		if err != nil {
			return s, err
		}
		s = s.WithStart(d)
	}
	if c.end != "" {
		d, err := date.Parse(c.end)
		if err != nil {
			return s, err
		}
		s = s.WithEnd(d)
	}
	list := func(v string, dst *[]string) {
		if v != "" {
			*dst = strings.Split(v, ",")
		}
	}
	list(c.account, &s.Account)
	list(c.vendor, &s.Vendor)
	list(c.category, &s.Category)
	if c.direction != "" {
		d, ok := ledgerview.ParseDirection(c.direction)
		if !ok {
			return s, fmt.Errorf("unknown direction %q, want inflow or outflow", c.direction)
		}
		s.Direction = d
	}
	if c.q != "" {
		s.Q = c.q
	}
	return s.Canonical(), nil
}

// throughToday ends an open-ended custom range today, so that a lone -start
// is honored instead of falling back to the default window.
func throughToday(s ledgerview.FilterState, now time.Time) ledgerview.FilterState {
	if s.Window.IsPreset() || s.Start.IsZero() || !s.End.IsZero() {
		return s
	}
	return s.WithEnd(date.Today(now))
}

// clampNotice fits state into bounds and describes the correction, if any.
func clampNotice(s ledgerview.FilterState, bounds date.Range, now time.Time) (ledgerview.FilterState, string) {
	clamped, ok := ledgerview.ClampFiltersToRange(s, bounds, now)
	if !ok {
		return s, ""
	}
	r := ledgerview.ResolveDateRange(clamped, now).Range()
	return clamped, fmt.Sprintf("data only covers %s, showing %s", bounds, r)
}
