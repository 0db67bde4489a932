// Package graph implements the HighwayGraph of spec.md §4.6: vertex
// and edge construction (simple + collapsed), the hidden-vertex
// collapse pass, filtered subgraph queries, and TMG text emission.
package graph

import "github.com/andrescamacho/tm-siteupdate/internal/domain/model"

// Vertex is one graph node: a colocation-ring lead (or an unpaired
// waypoint) with a unique label.
//
// graphVertex satisfies model.GraphVertex, letting HighwaySystem and
// Region carry pre-built Vertex membership sets (spec.md §3).
type Vertex struct {
	Label string
	Lat   float64
	Lng   float64

	// Colocated lists every waypoint this vertex represents.
	Colocated []*model.Waypoint

	// Hidden is true while the vertex is still eligible to be
	// collapsed away in the collapsed graph; the collapse pass may
	// flip it back to false (HIDDEN_TERMINUS / HIDDEN_JUNCTION).
	Hidden bool

	Incident          []*SimpleEdge
	CollapsedIncident []*CollapsedEdge
}

func (v *Vertex) graphVertex() {}

// SimpleEdge is one non-collapsed edge: exactly one HighwaySegment's
// worth of adjacency, or the canonical member's worth when the
// segment is concurrent.
//
// graphEdge satisfies model.GraphEdge, letting HighwaySystem and
// Region carry pre-built SimpleEdge membership sets (spec.md §3).
type SimpleEdge struct {
	V1, V2 *Vertex
	// Segments holds every HighwaySegment this edge represents: just
	// the segment itself, or the whole concurrency ring when
	// concurrent, so region/system filters see every route sharing
	// this edge.
	Segments []*model.HighwaySegment
}

func (e *SimpleEdge) graphEdge() {}

// CollapsedEdge is a (possibly spliced) edge in the collapsed graph.
// Path holds every vertex from V1 to V2 inclusive, in order; interior
// entries are hidden vertices kept only for their lat/lng as shaping
// points.
type CollapsedEdge struct {
	V1, V2   *Vertex
	Path     []*Vertex
	Segments []*model.HighwaySegment
}

// Shaping returns the interior (hidden) vertices of e, in order from
// V1 to V2.
func (e *CollapsedEdge) Shaping() []*Vertex {
	if len(e.Path) <= 2 {
		return nil
	}
	return e.Path[1 : len(e.Path)-1]
}

// routesOf returns the distinct routes backing a set of segments.
func routesOf(segs []*model.HighwaySegment) []*model.Route {
	seen := make(map[*model.Route]bool)
	var out []*model.Route
	for _, s := range segs {
		if !seen[s.Route] {
			seen[s.Route] = true
			out = append(out, s.Route)
		}
	}
	return out
}

// RepresentativeRoute picks the edge label's source route: the first
// segment's route, matching the original's "canonical member first"
// convention.
func (e *SimpleEdge) RepresentativeRoute() *model.Route {
	if len(e.Segments) == 0 {
		return nil
	}
	return e.Segments[0].Route
}

func (e *CollapsedEdge) RepresentativeRoute() *model.Route {
	if len(e.Segments) == 0 {
		return nil
	}
	return e.Segments[0].Route
}

func (e *SimpleEdge) regions() map[*model.Region]bool {
	out := make(map[*model.Region]bool)
	for _, r := range routesOf(e.Segments) {
		if r.Region != nil {
			out[r.Region] = true
		}
	}
	return out
}

func (e *SimpleEdge) systems() map[*model.HighwaySystem]bool {
	out := make(map[*model.HighwaySystem]bool)
	for _, r := range routesOf(e.Segments) {
		if r.System != nil {
			out[r.System] = true
		}
	}
	return out
}

func (e *CollapsedEdge) regions() map[*model.Region]bool {
	out := make(map[*model.Region]bool)
	for _, r := range routesOf(e.Segments) {
		if r.Region != nil {
			out[r.Region] = true
		}
	}
	return out
}

func (e *CollapsedEdge) systems() map[*model.HighwaySystem]bool {
	out := make(map[*model.HighwaySystem]bool)
	for _, r := range routesOf(e.Segments) {
		if r.System != nil {
			out[r.System] = true
		}
	}
	return out
}
