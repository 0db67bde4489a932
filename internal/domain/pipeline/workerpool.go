package pipeline

import "golang.org/x/sync/errgroup"

// runStage fans work out over a worker pool of size workers, one
// errgroup goroutine per item, bounded by errgroup's SetLimit rather
// than a hand-rolled channel semaphore (the pattern grounded on the
// pack's embedding-cache warmer, adapted to this package's newer
// golang.org/x/sync with native limiting). fn never returns an error:
// per-item failures are structural-vs-diagnostic findings that belong
// on errs.List/datacheck.List, not a stage-aborting error, matching
// spec.md §4.8's "individual errors do not abort their stage."
// runStage blocks until every item has been processed, the
// cross-stage barrier required by spec.md §5.
func runStage[T any](workers int, items []T, fn func(T)) {
	if workers < 1 {
		workers = 1
	}
	g := new(errgroup.Group)
	g.SetLimit(workers)
	for _, item := range items {
		it := item
		g.Go(func() error {
			fn(it)
			return nil
		})
	}
	_ = g.Wait()
}
