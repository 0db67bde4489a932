// Package errs implements the fatal-at-end ErrorList of spec.md §7:
// structural ingest problems (malformed manifest lines, unknown
// region/country/continent codes, missing files) accumulate here
// without aborting their stage; the driver inspects the list only
// once, at the very end of the run.
package errs

import (
	"fmt"
	"sync"
)

// List is a mutex-protected, append-only error collection.
type List struct {
	mu   sync.Mutex
	errs []error
}

// NewList returns an empty error list.
func NewList() *List {
	return &List{}
}

// Add records err. Safe for concurrent use across worker-pool stages.
func (l *List) Add(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errs = append(l.errs, err)
}

// Addf is a convenience wrapper around fmt.Errorf.
func (l *List) Addf(format string, args ...any) {
	l.Add(fmt.Errorf(format, args...))
}

// Empty reports whether no errors have been recorded.
func (l *List) Empty() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.errs) == 0
}

// Errors returns a snapshot of every recorded error, in the order
// added.
func (l *List) Errors() []error {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]error, len(l.errs))
	copy(out, l.errs)
	return out
}
