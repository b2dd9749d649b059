// Package format holds the pure formatting and derivation helpers shared by
// the store, the report generator and the CLI: money and date rendering,
// margin and profit arithmetic, month buckets and text folding.
package format
