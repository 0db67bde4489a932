// Package concurrency implements the ConcurrencyDetector of
// spec.md §4.3: segment-ring linking across colocated endpoints, and
// connected-route endpoint verification with its reversal rescues.
package concurrency

import "github.com/andrescamacho/tm-siteupdate/internal/domain/model"

// incidentSegments returns the (at most two) segments of w's route
// that touch w.
func incidentSegments(w *model.Waypoint) []*model.HighwaySegment {
	if w == nil || w.Route == nil {
		return nil
	}
	var out []*model.HighwaySegment
	for _, s := range w.Route.Segments {
		if s.Waypoint1 == w || s.Waypoint2 == w {
			out = append(out, s)
		}
	}
	return out
}

// DetectSegment links s into a concurrency ring with every other
// segment that shares its unordered endpoint pair under colocation
// (spec.md §4.3): for each waypoint a' colocated with s.Waypoint1,
// scan a''s route's adjacent segments for one whose other endpoint
// colocates with s.Waypoint2.
func DetectSegment(s *model.HighwaySegment) {
	a, b := s.Waypoint1, s.Waypoint2
	if a.Colocated == nil {
		return
	}
	for _, aPrime := range a.Colocated.Members {
		if aPrime.Route == nil {
			continue
		}
		for _, candidate := range incidentSegments(aPrime) {
			if candidate == s {
				continue
			}
			other := candidate.OtherEnd(aPrime)
			if other.ColocatedWith(b) {
				model.LinkConcurrent(s, candidate)
			}
		}
	}
}

// DetectAll runs DetectSegment over every segment of every route in
// every system. Must run after all routes are parsed and inserted, so
// colocation rings are frozen (spec.md §4.2).
func DetectAll(systems []*model.HighwaySystem) {
	for _, sys := range systems {
		for _, r := range sys.Routes {
			for _, s := range r.Segments {
				DetectSegment(s)
			}
		}
	}
}
