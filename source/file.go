package source

import (
	"context"
	"fmt"
	"os"

	"github.com/etnz/ledgerview"
	"github.com/etnz/ledgerview/date"
)

// File serves lines read once from a local JSON file, typically a demo
// dataset. Rollups are computed locally.
type File struct {
	lines  []ledgerview.LedgerLine
	bounds date.Range
}

// OpenFile reads and normalizes the lines of a JSON file.
func OpenFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read ledger file: %w", err)
	}
	lines, err := ledgerview.DecodeLines(data)
	if err != nil {
		return nil, fmt.Errorf("cannot decode ledger file %q: %w", path, err)
	}
	return NewFile(lines), nil
}

// NewFile serves lines from memory.
func NewFile(lines []ledgerview.LedgerLine) *File {
	f := &File{lines: ledgerview.SortLines(lines)}
	for _, l := range f.lines {
		if l.OccurredAt.IsZero() {
			continue
		}
		d := date.FromTime(l.OccurredAt)
		if f.bounds.From.IsZero() || d.Before(f.bounds.From) {
			f.bounds.From = d
		}
		if f.bounds.To.IsZero() || d.After(f.bounds.To) {
			f.bounds.To = d
		}
	}
	return f
}

// Bounds returns the first and last day of the dataset, and false when no
// line has a timestamp.
func (f *File) Bounds() (date.Range, bool) { return f.bounds, f.bounds.Valid() }

// Lines returns the lines whose calendar day is in the query range, in
// canonical order, at most q.Limit of them. A zero range returns every line.
func (f *File) Lines(ctx context.Context, q Query) ([]ledgerview.LedgerLine, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]ledgerview.LedgerLine, 0)
	for _, l := range f.lines {
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
		if !q.Range.IsZero() && !q.Range.ContainsTime(l.OccurredAt) {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

// Dimensions rolls the lines of the query up along dim, with spend totals.
func (f *File) Dimensions(ctx context.Context, dim Dimension, q Query) ([]ledgerview.DimensionRow, error) {
	lines, err := f.Lines(ctx, q)
	if err != nil {
		return nil, err
	}
	switch dim {
	case Accounts:
		return ledgerview.RollupByAccount(lines, ledgerview.SpendTotals), nil
	case Vendors:
		return ledgerview.RollupByVendor(lines, ledgerview.SpendTotals), nil
	default:
		return nil, fmt.Errorf("unknown dimension %q", dim)
	}
}
