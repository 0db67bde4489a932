package model

// ConcurrencyRing is the shared set of all HighwaySegments, across
// routes, whose unordered endpoint pairs are colocation-equal
// (spec.md §3, §4.3). The canonical member is Segments[0], fixed at
// first-link order.
type ConcurrencyRing struct {
	Segments []*HighwaySegment
}

// Canonical returns the ring's stable first member.
func (r *ConcurrencyRing) Canonical() *HighwaySegment {
	if len(r.Segments) == 0 {
		return nil
	}
	return r.Segments[0]
}

// HighwaySegment is one edge of a Route between two adjacent
// waypoints.
type HighwaySegment struct {
	Waypoint1 *Waypoint
	Waypoint2 *Waypoint
	Route     *Route
	Length    float64 // great-circle miles

	Concurrent *ConcurrencyRing

	// ClinchedBy is the set of travelers who have clinched this
	// segment, keyed by traveler name. Mutations during the clinch
	// stage must hold the owning Route's mutex (spec.md §4.7, §9).
	ClinchedBy map[string]*TravelerList
}

// NewHighwaySegment builds a segment between two waypoints on r, with
// its length precomputed by the caller (spec.md §4.2).
func NewHighwaySegment(r *Route, w1, w2 *Waypoint, length float64) *HighwaySegment {
	return &HighwaySegment{
		Waypoint1:  w1,
		Waypoint2:  w2,
		Route:      r,
		Length:     length,
		ClinchedBy: make(map[string]*TravelerList),
	}
}

// OtherEnd returns the endpoint of s that is not w.
func (s *HighwaySegment) OtherEnd(w *Waypoint) *Waypoint {
	if s.Waypoint1 == w {
		return s.Waypoint2
	}
	return s.Waypoint1
}

// EndpointsColocationEqual reports whether s and t share the same
// unordered pair of endpoints under colocation (spec.md §3 invariant).
func (s *HighwaySegment) EndpointsColocationEqual(t *HighwaySegment) bool {
	if s.Waypoint1.ColocatedWith(t.Waypoint1) && s.Waypoint2.ColocatedWith(t.Waypoint2) {
		return true
	}
	return s.Waypoint1.ColocatedWith(t.Waypoint2) && s.Waypoint2.ColocatedWith(t.Waypoint1)
}

// LinkConcurrent merges s and t into one concurrency ring, creating
// one if neither has one. Caller (ConcurrencyDetector) serializes
// calls that could touch the same ring.
func LinkConcurrent(s, t *HighwaySegment) {
	if s.Concurrent != nil && s.Concurrent == t.Concurrent {
		return
	}
	switch {
	case s.Concurrent == nil && t.Concurrent == nil:
		ring := &ConcurrencyRing{Segments: []*HighwaySegment{s, t}}
		s.Concurrent = ring
		t.Concurrent = ring
	case s.Concurrent != nil && t.Concurrent == nil:
		s.Concurrent.Segments = append(s.Concurrent.Segments, t)
		t.Concurrent = s.Concurrent
	case s.Concurrent == nil && t.Concurrent != nil:
		t.Concurrent.Segments = append(t.Concurrent.Segments, s)
		s.Concurrent = t.Concurrent
	default:
		merged := t.Concurrent
		for _, m := range merged.Segments {
			m.Concurrent = s.Concurrent
		}
		s.Concurrent.Segments = append(s.Concurrent.Segments, merged.Segments...)
	}
}
