package graph

import "github.com/andrescamacho/tm-siteupdate/internal/domain/model"

func regionMatch(have map[*model.Region]bool, filter []*model.Region) bool {
	if len(filter) == 0 {
		return true
	}
	for _, r := range filter {
		if have[r] {
			return true
		}
	}
	return false
}

func systemMatch(have map[*model.HighwaySystem]bool, filter []*model.HighwaySystem) bool {
	if len(filter) == 0 {
		return true
	}
	for _, s := range filter {
		if have[s] {
			return true
		}
	}
	return false
}

// unionRegionVertices and unionSystemVertices union the pre-built
// Vertices sets of the given regions/systems, mirroring
// HighwayGraph.cpp's matching_vertices reading r->vertices/h->vertices.
func unionRegionVertices(regions []*model.Region) map[model.GraphVertex]bool {
	out := make(map[model.GraphVertex]bool)
	for _, r := range regions {
		for v := range r.Vertices {
			out[v] = true
		}
	}
	return out
}

func unionSystemVertices(systems []*model.HighwaySystem) map[model.GraphVertex]bool {
	out := make(map[model.GraphVertex]bool)
	for _, s := range systems {
		for v := range s.Vertices {
			out[v] = true
		}
	}
	return out
}

func unionRegionEdges(regions []*model.Region) map[model.GraphEdge]bool {
	out := make(map[model.GraphEdge]bool)
	for _, r := range regions {
		for e := range r.Edges {
			out[e] = true
		}
	}
	return out
}

func unionSystemEdges(systems []*model.HighwaySystem) map[model.GraphEdge]bool {
	out := make(map[model.GraphEdge]bool)
	for _, s := range systems {
		for e := range s.Edges {
			out[e] = true
		}
	}
	return out
}

// MatchingVertices implements the region/system/place-radius subgraph
// filter of spec.md §3, §4.6 by intersecting the pre-built vertex sets
// HighwaySystem/Region carry (populated once by Build), mirroring
// HighwayGraph.cpp's matching_vertices: an empty region or an empty
// system filter imposes no restriction on that axis; when both are
// given, the result is the region union with the system union's
// members removed, matching the ground truth's own combination rule.
// visibleOnly restricts the result to non-hidden vertices.
func MatchingVertices(g *HighwayGraph, regions []*model.Region, systems []*model.HighwaySystem, pr *model.PlaceRadius, visibleOnly bool) []*Vertex {
	var candidates map[model.GraphVertex]bool
	switch {
	case len(regions) > 0:
		candidates = unionRegionVertices(regions)
		for v := range unionSystemVertices(systems) {
			delete(candidates, v)
		}
	case len(systems) > 0:
		candidates = unionSystemVertices(systems)
	}

	var out []*Vertex
	for _, v := range g.Vertices {
		if candidates != nil && !candidates[v] {
			continue
		}
		if visibleOnly && v.Hidden {
			continue
		}
		if pr != nil && !pr.Contains(v.Lat, v.Lng) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func vertexSet(vs []*Vertex) map[*Vertex]bool {
	out := make(map[*Vertex]bool, len(vs))
	for _, v := range vs {
		out[v] = true
	}
	return out
}

// MatchingSimpleEdges mirrors matching_edges: membership comes from
// the edge-owning systems'/regions' pre-built Edges sets, so an edge
// whose own route lies outside the filter is excluded even when both
// its endpoints sit in the matching vertex set (a border-junction
// vertex shared with an unrelated route's colocation ring).
func MatchingSimpleEdges(mv []*Vertex, g *HighwayGraph, regions []*model.Region, systems []*model.HighwaySystem) []*SimpleEdge {
	set := vertexSet(mv)

	var candidates map[model.GraphEdge]bool
	switch {
	case len(regions) > 0:
		candidates = unionRegionEdges(regions)
		for e := range unionSystemEdges(systems) {
			delete(candidates, e)
		}
	case len(systems) > 0:
		candidates = unionSystemEdges(systems)
	}

	var out []*SimpleEdge
	for _, e := range g.SimpleEdges {
		if !set[e.V1] || !set[e.V2] {
			continue
		}
		if candidates != nil && !candidates[e] {
			continue
		}
		out = append(out, e)
	}
	return out
}

// MatchingCollapsedEdges mirrors matching_collapsed_edges: region and
// system membership is checked against the edge's own backing routes
// (e.regions/e.systems), not the endpoint vertices', since a collapsed
// edge's shaping path can run through vertices shared with unrelated
// systems or regions.
func MatchingCollapsedEdges(mv []*Vertex, g *HighwayGraph, regions []*model.Region, systems []*model.HighwaySystem) []*CollapsedEdge {
	set := vertexSet(mv)
	var out []*CollapsedEdge
	for _, e := range g.CollapsedEdges {
		if !set[e.V1] || !set[e.V2] {
			continue
		}
		if !regionMatch(e.regions(), regions) {
			continue
		}
		if !systemMatch(e.systems(), systems) {
			continue
		}
		out = append(out, e)
	}
	return out
}
