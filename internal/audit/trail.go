// Package audit keeps the bounded, newest-first activity trail.
package audit

import (
	"slices"
	"strings"
	"time"

	"github.com/roach88/bizdesk/internal/format"
	"github.com/roach88/bizdesk/internal/model"
)

// DefaultLimit is the number of entries a trail retains.
const DefaultLimit = 1000

// Trail is an append-only log that keeps only the newest entries.
// Entries()[0] is always the most recent.
//
// Trail is not safe for concurrent use.
type Trail struct {
	limit   int
	entries []model.LogEntry
}

// NewTrail creates an empty trail holding at most limit entries. A
// non-positive limit means DefaultLimit.
func NewTrail(limit int) *Trail {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Trail{limit: limit}
}

// Add records e as the newest entry, dropping the oldest beyond the limit.
func (t *Trail) Add(e model.LogEntry) {
	t.entries = slices.Insert(t.entries, 0, e)
	if len(t.entries) > t.limit {
		t.entries = t.entries[:t.limit]
	}
}

// Entries returns a copy of the trail, newest first.
func (t *Trail) Entries() []model.LogEntry {
	return slices.Clone(t.entries)
}

// Len returns the number of retained entries.
func (t *Trail) Len() int {
	return len(t.entries)
}

// Limit returns the retention bound.
func (t *Trail) Limit() int {
	return t.limit
}

// Reset replaces the trail with entries, which must already be newest
// first. Anything beyond the limit is dropped.
func (t *Trail) Reset(entries []model.LogEntry) {
	if len(entries) > t.limit {
		entries = entries[:t.limit]
	}
	t.entries = slices.Clone(entries)
}

// Clear empties the trail.
func (t *Trail) Clear() {
	t.entries = nil
}

// Filter selects log entries. Empty fields and the value "all" match
// everything; non-empty fields combine with AND.
type Filter struct {
	Action model.Action
	Module string
	// Date is a prefix of the RFC 3339 timestamp: "2026", "2026-03" or
	// "2026-03-15".
	Date   string
	UserID string
	// Search matches details, module and user name, ignoring case and
	// accents.
	Search string
}

// Match reports whether e satisfies every criterion of f.
func (f Filter) Match(e model.LogEntry) bool {
	if active(string(f.Action)) && e.Action != f.Action {
		return false
	}
	if active(f.Module) && e.Module != f.Module {
		return false
	}
	if f.Date != "" && !strings.HasPrefix(timestamp(e), f.Date) {
		return false
	}
	if f.UserID != "" && e.UserID != f.UserID {
		return false
	}
	if f.Search != "" && !format.ContainsFold(f.Search, e.Details, e.Module, e.UserName) {
		return false
	}
	return true
}

// Filter returns the entries matching f, newest first.
func (t *Trail) Filter(f Filter) []model.LogEntry {
	var out []model.LogEntry
	for _, e := range t.entries {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	return out
}

func active(v string) bool {
	return v != "" && v != "all"
}

func timestamp(e model.LogEntry) string {
	return e.Timestamp.UTC().Format(time.RFC3339)
}
