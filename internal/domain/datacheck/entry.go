// Package datacheck implements the diagnostic engine of spec.md §4.5:
// a thread-safe collection of data-quality findings plus
// false-positive reconciliation against a curated allow-list.
package datacheck

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/andrescamacho/tm-siteupdate/internal/domain/model"
)

// Entry is one datacheck finding (spec.md §3). Label2/Label3 are
// empty when not applicable.
type Entry struct {
	Route  *model.Route
	Label1 string
	Label2 string
	Label3 string
	Code   string
	Info   string

	FalsePositive bool
}

// RouteRoot returns the owning route's root, or "" if Route is nil
// (an entry can be recorded without a route, e.g. a hidden vertex with
// no incident edge).
func (e *Entry) RouteRoot() string {
	if e.Route == nil {
		return ""
	}
	return e.Route.Root
}

// key is the five-field tuple FP matching is keyed on.
func (e *Entry) key() [5]string {
	return [5]string{e.RouteRoot(), e.Label1, e.Label2, e.Label3, e.Code}
}

// sortKey is the canonical field concatenation datacheck.log is
// ordered by (spec.md §4.5).
func (e *Entry) sortKey() string {
	return strings.Join([]string{e.RouteRoot(), e.Label1, e.Label2, e.Label3, e.Code, e.Info}, ";")
}

// String renders one datacheck.log line.
func (e *Entry) String() string {
	return fmt.Sprintf("%s;%s;%s;%s;%s;%s", e.RouteRoot(), e.Label1, e.Label2, e.Label3, e.Code, e.Info)
}

// alwaysError is the set of codes that may never be marked a false
// positive (spec.md §4.5, §7).
var alwaysError = map[string]bool{
	"ABBREV_AS_CHOP_BANNER":  true,
	"ABBREV_AS_CON_BANNER":   true,
	"ABBREV_NO_CITY":         true,
	"BAD_ANGLE":              true,
	"CON_BANNER_MISMATCH":    true,
	"CON_ROUTE_MISMATCH":     true,
	"DISCONNECTED_ROUTE":     true,
	"DUPLICATE_LABEL":        true,
	"HIDDEN_TERMINUS":        true,
	"INTERSTATE_NO_HYPHEN":   true,
	"INVALID_FINAL_CHAR":     true,
	"INVALID_FIRST_CHAR":     true,
	"LABEL_INVALID_CHAR":     true,
	"LABEL_LOWERCASE":        true,
	"LABEL_PARENS":           true,
	"LABEL_SLASHES":          true,
	"LABEL_TOO_LONG":         true,
	"LABEL_UNDERSCORES":      true,
	"LONG_UNDERSCORE":        true,
	"LOWERCASE_SUFFIX":       true,
	"MALFORMED_LAT":          true,
	"MALFORMED_LON":          true,
	"MALFORMED_URL":          true,
	"MULTI_REGION_OVERLAP":   true,
	"NONTERMINAL_UNDERSCORE": true,
	"SINGLE_FIELD_LINE":      true,
	"US_LETTER":              true,
}

// List is the global, mutex-protected, append-only (during stages
// 1-10) collection of datacheck entries (spec.md §5).
type List struct {
	mu      sync.Mutex
	entries []*Entry
}

// NewList returns an empty datacheck list.
func NewList() *List {
	return &List{}
}

// Add appends an entry. Thread-safe (spec.md §4.5).
func (l *List) Add(e *Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, e)
}

// AddCode is a convenience wrapper building and adding an Entry.
func (l *List) AddCode(route *model.Route, label1, label2, label3, code, info string) {
	l.Add(&Entry{Route: route, Label1: label1, Label2: label2, Label3: label3, Code: code, Info: info})
}

// Empty reports whether no entries have been recorded.
func (l *List) Empty() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries) == 0
}

// Entries returns a snapshot of all entries (FP and non-FP alike).
func (l *List) Entries() []*Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// NonFalsePositives returns entries not marked FP, sorted per
// spec.md §4.5 (lexicographic on the canonical field concatenation).
func (l *List) NonFalsePositives() []*Entry {
	l.mu.Lock()
	all := make([]*Entry, len(l.entries))
	copy(all, l.entries)
	l.mu.Unlock()

	out := make([]*Entry, 0, len(all))
	for _, e := range all {
		if !e.FalsePositive {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].sortKey() < out[j].sortKey() })
	return out
}
