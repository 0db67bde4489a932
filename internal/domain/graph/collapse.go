package graph

import (
	"fmt"

	"github.com/andrescamacho/tm-siteupdate/internal/domain/datacheck"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/model"
)

// collapse runs the hidden-vertex splice pass of spec.md §4.6: every
// hidden vertex with exactly two incident collapsed edges is removed,
// joining its two edges into one with the vertex's coordinates folded
// in as a shaping point. A hidden vertex with any other incidence
// count cannot be collapsed cleanly; it is un-hidden (becomes a real,
// visible vertex in the collapsed graph) and logged.
func (g *HighwayGraph) collapse(dc *datacheck.List) {
	for _, v := range g.Vertices {
		if !v.Hidden {
			continue
		}

		if len(v.CollapsedIncident) == 2 && v.CollapsedIncident[0] != v.CollapsedIncident[1] {
			e1, e2 := v.CollapsedIncident[0], v.CollapsedIncident[1]
			merged := spliceCollapsed(e1, e2, v)
			g.replaceCollapsedEdges(e1, e2, merged, v)
			continue
		}

		code := "HIDDEN_TERMINUS"
		if len(v.CollapsedIncident) > 2 {
			code = "HIDDEN_JUNCTION"
		}
		var route *model.Route
		if len(v.CollapsedIncident) > 0 {
			route = v.CollapsedIncident[0].RepresentativeRoute()
		}
		v.Hidden = false
		dc.AddCode(route, v.Label, "", "", code, fmt.Sprintf("%d", len(v.CollapsedIncident)))
	}
}

// spliceCollapsed joins e1 and e2 at their shared vertex v into one
// edge running from e1's far endpoint to e2's far endpoint, with v
// folded into the path as a shaping point.
func spliceCollapsed(e1, e2 *CollapsedEdge, v *Vertex) *CollapsedEdge {
	p1 := append([]*Vertex{}, e1.Path...)
	if p1[len(p1)-1] != v {
		reverseVertices(p1)
	}
	p2 := append([]*Vertex{}, e2.Path...)
	if p2[0] != v {
		reverseVertices(p2)
	}

	newPath := append(p1, p2[1:]...)
	segs := append(append([]*model.HighwaySegment{}, e1.Segments...), e2.Segments...)
	return &CollapsedEdge{V1: newPath[0], V2: newPath[len(newPath)-1], Path: newPath, Segments: segs}
}

func reverseVertices(vs []*Vertex) {
	for i, j := 0, len(vs)-1; i < j; i, j = i+1, j-1 {
		vs[i], vs[j] = vs[j], vs[i]
	}
}

func otherEndpoint(e *CollapsedEdge, v *Vertex) *Vertex {
	if e.V1 == v {
		return e.V2
	}
	return e.V1
}

// replaceCollapsedEdges retires e1 and e2 from the graph and from
// their far endpoints' incidence lists, installing merged in their
// place.
func (g *HighwayGraph) replaceCollapsedEdges(e1, e2, merged *CollapsedEdge, v *Vertex) {
	g.CollapsedEdges = removeCollapsedEdge(g.CollapsedEdges, e1)
	g.CollapsedEdges = removeCollapsedEdge(g.CollapsedEdges, e2)
	g.CollapsedEdges = append(g.CollapsedEdges, merged)

	far1 := otherEndpoint(e1, v)
	far2 := otherEndpoint(e2, v)
	far1.CollapsedIncident = replaceIncident(far1.CollapsedIncident, e1, merged)
	far2.CollapsedIncident = replaceIncident(far2.CollapsedIncident, e2, merged)
	v.CollapsedIncident = nil
}

func removeCollapsedEdge(list []*CollapsedEdge, target *CollapsedEdge) []*CollapsedEdge {
	out := make([]*CollapsedEdge, 0, len(list))
	for _, e := range list {
		if e != target {
			out = append(out, e)
		}
	}
	return out
}

func replaceIncident(list []*CollapsedEdge, old, repl *CollapsedEdge) []*CollapsedEdge {
	out := make([]*CollapsedEdge, len(list))
	done := false
	for i, e := range list {
		if e == old && !done {
			out[i] = repl
			done = true
			continue
		}
		out[i] = e
	}
	return out
}
