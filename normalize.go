package ledgerview

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// ErrNotAnArray is returned by DecodeLines when the payload holds no list of lines.
var ErrNotAnArray = errors.New("ledger payload is not an array of lines")

// timeLayouts are tried in order to read occurred_at.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// DecodeLines decodes a ledger source payload into normalized lines.
//
// The payload is either a JSON array of line objects, or an object holding
// that array under "lines", "items" or "data". Elements that are not JSON
// objects are skipped; every object becomes a line, whatever its content.
func DecodeLines(data []byte) ([]LedgerLine, error) {
	list, err := decodeList(data)
	if err != nil {
		return nil, err
	}
	lines := make([]LedgerLine, 0, len(list))
	for _, item := range list {
		if _, ok := item.(map[string]any); !ok {
			continue
		}
		lines = append(lines, NormalizeLine(item))
	}
	return lines, nil
}

// DecodeDimensionRows decodes the rollup rows computed by a ledger source.
// Each row names its group under field ("account" or "vendor"), with an
// optional "label", a "count" and a "total". Rows are returned in rollup
// order, keyed the way RollupByAccount and RollupByVendor key them.
func DecodeDimensionRows(data []byte, field string) ([]DimensionRow, error) {
	list, err := decodeList(data)
	if err != nil {
		return nil, err
	}
	rows := make([]DimensionRow, 0, len(list))
	for _, item := range list {
		if _, ok := item.(map[string]any); !ok {
			continue
		}
		name := coerceString(lookup(item, "$."+field, "$.key"))
		r := DimensionRow{
			Key:   name,
			Label: coerceString(lookup(item, "$.label")),
			Count: int(coerceDecimal(lookup(item, "$.count")).IntPart()),
			Total: coerceDecimal(lookup(item, "$.total")),
		}
		if field == "vendor" {
			r.Key = vendorKey(name)
		}
		if r.Label == "" {
			r.Label = name
		}
		if r.Key == "" {
			r.Key = UnclassifiedKey
			r.Label = UnassignedAccount
			if field == "vendor" {
				r.Label = UnknownVendor
			}
		}
		rows = append(rows, r)
	}
	sortRows(rows)
	return rows, nil
}

// decodeList decodes a JSON array, possibly wrapped in an object under
// "lines", "items" or "data".
func decodeList(data []byte) ([]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("cannot decode ledger payload: %w", err)
	}

	if obj, ok := payload.(map[string]any); ok {
		for _, key := range []string{"lines", "items", "data"} {
			if list, ok := obj[key].([]any); ok {
				payload = list
				break
			}
		}
	}
	list, ok := payload.([]any)
	if !ok {
		return nil, fmt.Errorf("got %T: %w", payload, ErrNotAnArray)
	}
	return list, nil
}

// NormalizeLine turns one decoded JSON object into a LedgerLine.
//
// It never fails: absent or malformed strings become "", malformed amounts
// become zero, malformed timestamps become the zero time. The direction is
// always made consistent with the sign of the amount; it is only used to
// sign an unsigned "amount" when "signed_amount" is missing.
func NormalizeLine(raw any) LedgerLine {
	l := LedgerLine{
		OccurredAt:       coerceTime(lookup(raw, "$.occurred_at", "$.date")),
		SourceEventID:    coerceString(lookup(raw, "$.source_event_id", "$.id")),
		Description:      coerceString(lookup(raw, "$.description")),
		CounterpartyHint: coerceString(lookup(raw, "$.counterparty_hint", "$.counterparty")),
		CategoryName:     coerceString(lookup(raw, "$.category_name", "$.category.name")),
		AccountName:      coerceString(lookup(raw, "$.account_name", "$.account.name")),
		AccountType:      coerceString(lookup(raw, "$.account_type", "$.account.type")),
		AccountSubtype:   coerceString(lookup(raw, "$.account_subtype", "$.account.subtype")),
	}

	declared, hasDirection := ParseDirection(coerceString(lookup(raw, "$.direction")))
	if v := lookup(raw, "$.signed_amount"); v != nil {
		l.SignedAmount = coerceDecimal(v)
	} else if v := lookup(raw, "$.amount"); v != nil {
		l.SignedAmount = coerceDecimal(v)
		if hasDirection && declared == Outflow && l.SignedAmount.IsPositive() {
			l.SignedAmount = l.SignedAmount.Neg()
		}
	}
	l.Direction = DirectionOf(l.SignedAmount)

	if c, ok := lookup(raw, "$.categorization").(map[string]any); ok {
		l.Categorization = &Categorization{
			Confidence: coerceFloat(lookup(c, "$.confidence")),
			Reason:     coerceString(lookup(c, "$.reason")),
			Source:     coerceString(lookup(c, "$.source")),
			Status:     coerceString(lookup(c, "$.status")),
		}
	}
	return l
}

// lookup returns the first non-null value found at one of the json paths.
func lookup(raw any, paths ...string) any {
	for _, path := range paths {
		v, err := jsonpath.Get(path, raw)
		if err != nil || v == nil {
			continue
		}
		return v
	}
	return nil
}

func coerceString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}

func coerceDecimal(v any) decimal.Decimal {
	var s string
	switch t := v.(type) {
	case json.Number:
		s = t.String()
	case string:
		s = strings.TrimSpace(t)
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(t)
	default:
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func coerceFloat(v any) float64 {
	f, _ := coerceDecimal(v).Float64()
	return f
}

// coerceTime reads a timestamp string, or a unix epoch number in seconds
// (milliseconds when it is too large to be seconds).
func coerceTime(v any) time.Time {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range timeLayouts {
			if on, err := time.Parse(layout, s); err == nil {
				return on
			}
		}
	case json.Number, float64:
		n := coerceDecimal(t).IntPart()
		if n > 1e11 {
			return time.UnixMilli(n).UTC()
		}
		return time.Unix(n, 0).UTC()
	}
	return time.Time{}
}
