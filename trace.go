package ledgerview

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ComputationVersion identifies the rules used to compute summary metrics.
// It changes whenever a rule change could change a published figure.
const ComputationVersion = "ledger_summary.v1"

// CanonicalOrder names the order lines are walked in, as recorded in traces.
const CanonicalOrder = "occurred_at asc, source_event_id asc"

// traceNamespace scopes trace fingerprints.
var traceNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/etnz/ledgerview/trace"))

// TraceBundle records which lines produced a figure and how.
//
// SupportingEventIDs lists the lines in canonical order, so two runs over
// the same lines produce byte-identical bundles.
type TraceBundle struct {
	SupportingEventIDs  []string
	SupportingLineCount int
	ComputationVersion  string
	FeaturesSnapshot    map[string]any
}

func newTrace(features map[string]any) TraceBundle {
	return TraceBundle{
		SupportingEventIDs: []string{},
		ComputationVersion: ComputationVersion,
		FeaturesSnapshot:   features,
	}
}

// add records a supporting line.
func (t *TraceBundle) add(id string) {
	t.SupportingEventIDs = append(t.SupportingEventIDs, id)
	t.SupportingLineCount = len(t.SupportingEventIDs)
}

// MarshalJSON writes the bundle with a fixed field order. Map keys of the
// features snapshot are sorted by encoding/json.
func (t TraceBundle) MarshalJSON() ([]byte, error) {
	ids := t.SupportingEventIDs
	if ids == nil {
		ids = []string{}
	}
	features := t.FeaturesSnapshot
	if features == nil {
		features = map[string]any{}
	}
	var w jsonObjectWriter
	w.Append("supporting_event_ids", ids)
	w.Append("supporting_line_count", t.SupportingLineCount)
	w.Append("computation_version", t.ComputationVersion)
	w.Append("features_snapshot", features)
	return w.MarshalJSON()
}

// Fingerprint returns a name-based UUID of the bundle content. Equal bundles
// have equal fingerprints, so the fingerprint can be quoted in reports to
// identify a figure's provenance.
func (t TraceBundle) Fingerprint() uuid.UUID {
	b, err := t.MarshalJSON()
	if err != nil {
		// features are built by this package from plain values.
		panic(err)
	}
	return uuid.NewSHA1(traceNamespace, b)
}

// TracedMetric is a monetary figure together with its provenance.
type TracedMetric struct {
	Value decimal.Decimal
	Trace TraceBundle
}

// MarshalJSON writes the value as a JSON number, then the trace.
func (m TracedMetric) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Amount("value", m.Value)
	w.Append("trace", m.Trace)
	return w.MarshalJSON()
}
