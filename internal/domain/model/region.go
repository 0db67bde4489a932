package model

// Continent is a long-lived manifest entry, immutable after load.
type Continent struct {
	Code string
	Name string
}

// Country is a long-lived manifest entry, immutable after load.
type Country struct {
	Code string
	Name string
}

// Region ties a short code to its Country and Continent and accumulates
// mileage aggregates as systems/routes are ingested. Immutable after
// manifest load except for the mileage fields, which the stats stage
// populates once, serially, in stage 9.
type Region struct {
	Code      string
	Name      string
	Country   *Country
	Continent *Continent

	ActiveOnlyMileage    float64
	ActivePreviewMileage float64

	// Vertices and Edges are this region's subgraph-filter membership
	// sets, populated by graph.Build (spec.md §3, §4.6).
	Vertices map[GraphVertex]bool
	Edges    map[GraphEdge]bool
}
