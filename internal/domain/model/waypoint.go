package model

// HiddenMarker is the label prefix that designates a waypoint as a
// shaping point for the collapsed graph (spec.md GLOSSARY, §4.6).
const HiddenMarker = "+"

// ColocationRing is the shared, transitively-closed set of waypoints
// that sit at exactly equal coordinates. All members point to the
// same ring; Lead is the ring's first element, stable across inserts.
type ColocationRing struct {
	Members []*Waypoint
}

// Lead returns the ring's canonical member.
func (r *ColocationRing) Lead() *Waypoint {
	if len(r.Members) == 0 {
		return nil
	}
	return r.Members[0]
}

// Waypoint is a named geographic point on a Route.
type Waypoint struct {
	Label string
	Lat   float64
	Lng   float64
	Route *Route

	// Colocated is nil until a second waypoint is found at the exact
	// same coordinates; then every colocated waypoint shares the same
	// ring pointer (invariant, spec.md §8).
	Colocated *ColocationRing
}

// IsHidden reports whether the waypoint's label carries the
// hidden-waypoint marker (spec.md GLOSSARY).
func (w *Waypoint) IsHidden() bool {
	return len(w.Label) > 0 && w.Label[0:1] == HiddenMarker
}

// ColocatedWith reports whether w and x occupy the same coordinates,
// i.e. share a colocation ring (or are the same waypoint).
func (w *Waypoint) ColocatedWith(x *Waypoint) bool {
	if w == x {
		return true
	}
	return w.Colocated != nil && w.Colocated == x.Colocated
}

// IsLead reports whether w is the canonical member of its colocation
// ring (or is alone, i.e. trivially its own lead).
func (w *Waypoint) IsLead() bool {
	if w.Colocated == nil {
		return true
	}
	return w.Colocated.Lead() == w
}

// Link joins w and x into the same colocation ring, creating one if
// neither waypoint has one yet. Not safe for concurrent use on the
// same pair of rings without external locking (the caller, typically
// the quadtree, is responsible for serialization per spec.md §4.1).
func Link(w, x *Waypoint) {
	if w.ColocatedWith(x) {
		return
	}
	switch {
	case w.Colocated == nil && x.Colocated == nil:
		ring := &ColocationRing{Members: []*Waypoint{w, x}}
		w.Colocated = ring
		x.Colocated = ring
	case w.Colocated != nil && x.Colocated == nil:
		w.Colocated.Members = append(w.Colocated.Members, x)
		x.Colocated = w.Colocated
	case w.Colocated == nil && x.Colocated != nil:
		x.Colocated.Members = append(x.Colocated.Members, w)
		w.Colocated = x.Colocated
	default:
		// Two distinct rings at the same coordinates: merge x's into w's.
		merged := x.Colocated
		for _, m := range merged.Members {
			m.Colocated = w.Colocated
		}
		w.Colocated.Members = append(w.Colocated.Members, merged.Members...)
	}
}
