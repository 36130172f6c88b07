// Package ledgerview resolves ledger filter state and computes auditable
// ledger analytics.
//
// The package has two halves:
//   - Filter resolution: parsing URL query parameters into a canonical
//     FilterState, resolving window presets into concrete dates, clamping
//     ranges to the bounds of a dataset, and serializing the state back into
//     a canonical query string.
//   - Ledger analytics: sorting LedgerLine values into a canonical order,
//     totalling inflows and outflows into TracedMetric values that name every
//     supporting line, running balances, and rollups by account and vendor.
//
// Everything here is a pure function of its arguments: the current time is
// passed in explicitly, nothing is cached, nothing performs I/O. Fetching
// lines is the job of the source package.
package ledgerview
