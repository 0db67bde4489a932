package graph

import (
	"github.com/andrescamacho/tm-siteupdate/internal/domain/datacheck"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/model"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/namer"
)

// HighwayGraph is the simple + collapsed vertex/edge model of spec.md
// §4.6, built once from every active-or-preview system's routes.
type HighwayGraph struct {
	Vertices       []*Vertex
	SimpleEdges    []*SimpleEdge
	CollapsedEdges []*CollapsedEdge
}

// ringKey identifies a colocation ring (or a lone waypoint) for the
// "visit each ring exactly once" pass below.
type ringKey interface{}

func keyOf(w *model.Waypoint) ringKey {
	if w.Colocated != nil {
		return w.Colocated
	}
	return w
}

// Build constructs the graph from every active-or-preview system's
// routes: one vertex per colocation ring (or unpaired waypoint), one
// simple edge per segment (concurrency-ring members collapse to their
// canonical segment), then runs the hidden-vertex collapse pass,
// emitting HIDDEN_TERMINUS/HIDDEN_JUNCTION datacheck entries for
// vertices that cannot cleanly splice (spec.md §4.6). Restricting both
// passes to active-or-preview systems is what "skips devel-only
// colocations": a ring touched only by devel routes is never visited.
func Build(systems []*model.HighwaySystem, n *namer.Namer, dc *datacheck.List) *HighwayGraph {
	g := &HighwayGraph{}
	vertexOf := make(map[*model.Waypoint]*Vertex)
	seenRing := make(map[ringKey]bool)

	for _, sys := range systems {
		if !sys.Level.ActiveOrPreview() {
			continue
		}
		for _, r := range sys.Routes {
			for _, w := range r.Points {
				k := keyOf(w)
				if seenRing[k] {
					continue
				}
				seenRing[k] = true

				members := []*model.Waypoint{w}
				if w.Colocated != nil {
					members = w.Colocated.Members
				}

				hidden := true
				for _, m := range members {
					if !m.IsHidden() {
						hidden = false
						break
					}
				}

				lead := members[0]
				v := &Vertex{
					Label:     n.Name(lead),
					Lat:       lead.Lat,
					Lng:       lead.Lng,
					Colocated: members,
					Hidden:    hidden,
				}
				g.Vertices = append(g.Vertices, v)
				for _, m := range members {
					vertexOf[m] = v
					indexVertex(m, v)
				}
			}
		}
	}

	for _, sys := range systems {
		if !sys.Level.ActiveOrPreview() {
			continue
		}
		for _, r := range sys.Routes {
			for _, s := range r.Segments {
				// A concurrent segment is emitted once, by its ring's
				// canonical member; the other members alias the same
				// edge and contribute their routes/systems to it.
				if s.Concurrent != nil && s.Concurrent.Canonical() != s {
					continue
				}
				segs := []*model.HighwaySegment{s}
				if s.Concurrent != nil {
					segs = s.Concurrent.Segments
				}
				v1, v2 := vertexOf[s.Waypoint1], vertexOf[s.Waypoint2]
				if v1 == nil || v2 == nil {
					continue
				}

				se := &SimpleEdge{V1: v1, V2: v2, Segments: segs}
				g.SimpleEdges = append(g.SimpleEdges, se)
				v1.Incident = append(v1.Incident, se)
				v2.Incident = append(v2.Incident, se)
				indexEdge(se)

				ce := &CollapsedEdge{V1: v1, V2: v2, Path: []*Vertex{v1, v2}, Segments: segs}
				g.CollapsedEdges = append(g.CollapsedEdges, ce)
				v1.CollapsedIncident = append(v1.CollapsedIncident, ce)
				v2.CollapsedIncident = append(v2.CollapsedIncident, ce)
			}
		}
	}

	g.collapse(dc)
	return g
}

// indexVertex records v in the Vertices set of m's owning system and
// region, so subgraph filters (query.go) can look membership up
// without rescanning colocation rings (spec.md §3).
func indexVertex(m *model.Waypoint, v *Vertex) {
	if m.Route == nil {
		return
	}
	if sys := m.Route.System; sys != nil {
		if sys.Vertices == nil {
			sys.Vertices = make(map[model.GraphVertex]bool)
		}
		sys.Vertices[v] = true
	}
	if reg := m.Route.Region; reg != nil {
		if reg.Vertices == nil {
			reg.Vertices = make(map[model.GraphVertex]bool)
		}
		reg.Vertices[v] = true
	}
}

// indexEdge records se in the Edges set of every system and region
// backing it, derived from se's own segments (se.systems/se.regions)
// rather than its endpoint vertices: an edge's membership must follow
// its own routes, not whatever else happens to colocate at either end
// (spec.md §3).
func indexEdge(se *SimpleEdge) {
	for sys := range se.systems() {
		if sys.Edges == nil {
			sys.Edges = make(map[model.GraphEdge]bool)
		}
		sys.Edges[se] = true
	}
	for reg := range se.regions() {
		if reg.Edges == nil {
			reg.Edges = make(map[model.GraphEdge]bool)
		}
		reg.Edges[se] = true
	}
}
