// Package clinch implements the ClinchAugmenter of spec.md §4.7: it
// propagates each traveler's directly-declared clinched segments
// across concurrency rings, so that clinching one of several
// concurrent routes counts as clinching all of them.
package clinch

import (
	"fmt"
	"sort"

	"github.com/andrescamacho/tm-siteupdate/internal/domain/model"
)

// Augment runs the augmentation pass over every traveler and returns
// the concurrencies.log lines it produced, sorted for reproducible
// output (spec.md §5). Safe to call with travelers processed
// concurrently by distinct workers (stage 8 is per-traveler); the
// at-most-once guarantee on each segment's ClinchedBy set comes from
// that segment's route mutex, not from any lock held here.
func Augment(travelers []*model.TravelerList) []string {
	var lines []string
	for _, t := range travelers {
		lines = append(lines, augmentOne(t)...)
	}
	sort.Strings(lines)
	return lines
}

// augmentOne propagates t's already-clinched segments across their
// concurrency rings (spec.md §4.7).
func augmentOne(t *model.TravelerList) []string {
	var lines []string
	for _, s := range t.ClinchedSegments() {
		if s.Concurrent == nil {
			continue
		}
		for _, hs := range s.Concurrent.Segments {
			if hs == s {
				continue
			}
			if hs.Route == nil || hs.Route.System == nil || !hs.Route.System.Level.ActiveOrPreview() {
				continue
			}
			if line, ok := addClinch(t, hs); ok {
				lines = append(lines, line)
			}
		}
	}
	return lines
}

// addClinch attempts to record t against hs, returning the
// concurrencies.log line and true iff the addition was new.
func addClinch(t *model.TravelerList, hs *model.HighwaySegment) (string, bool) {
	mu := hs.Route.Mutex()
	mu.Lock()
	_, already := hs.ClinchedBy[t.Name]
	if !already {
		hs.ClinchedBy[t.Name] = t
	}
	mu.Unlock()
	if already {
		return "", false
	}
	// A segment t already holds (declared directly, or added by an
	// earlier pass) earns no second mileage credit.
	if !t.AddClinch(hs) {
		return "", false
	}

	region := ""
	if hs.Route.Region != nil {
		region = hs.Route.Region.Code
	}
	active := hs.Route.System.Level == model.LevelActive
	t.AddMileage(hs.Route.System.SystemName, region, hs.Length, active)

	return fmt.Sprintf("%s;%s;%s;%s", t.Name, hs.Route.Root, hs.Waypoint1.Label, hs.Waypoint2.Label), true
}
