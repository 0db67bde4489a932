package model

// Level is a highway system's lifecycle tier, controlling inclusion in
// graphs and stats.
type Level int

const (
	LevelActive Level = iota
	LevelPreview
	LevelDevel
)

func (l Level) String() string {
	switch l {
	case LevelActive:
		return "active"
	case LevelPreview:
		return "preview"
	case LevelDevel:
		return "devel"
	default:
		return "unknown"
	}
}

// ActiveOrPreview reports whether the level participates in graphs,
// stats and the canonical naming pass (spec.md §4.4, §4.6).
func (l Level) ActiveOrPreview() bool {
	return l == LevelActive || l == LevelPreview
}

// GraphVertex and GraphEdge are opaque handles that package graph's
// Vertex and SimpleEdge types satisfy. HighwaySystem and Region carry
// sets of these, populated once by graph.Build, so subgraph filters
// can intersect pre-built membership sets instead of re-deriving them
// at query time (spec.md §3; HighwaySystem.h's vertices/edges
// TMBitset fields). Declared as marker interfaces here, rather than as
// direct references to package graph's types, because graph already
// imports model and a field of graph.Vertex would cycle back.
type GraphVertex interface{ graphVertex() }
type GraphEdge interface{ graphEdge() }

// HighwaySystem groups Routes and ConnectedRoutes under one country,
// color and lifecycle level. Identified by its unique SystemName.
type HighwaySystem struct {
	SystemName  string // unique key, e.g. "usai"
	Country     *Country
	FullName    string
	Color       string
	Tier        int
	Level       Level

	Routes          []*Route
	ConnectedRoutes []*ConnectedRoute

	// RegionMileage accumulates this system's mileage per region code,
	// populated during the stats stage (spec.md §4.8 stage 9).
	RegionMileage map[string]float64

	// Vertices and Edges are this system's subgraph-filter membership
	// sets, populated by graph.Build (spec.md §3, §4.6).
	Vertices map[GraphVertex]bool
	Edges    map[GraphEdge]bool
}

// NewHighwaySystem constructs a system with its maps ready for use.
func NewHighwaySystem(systemName, fullName, color string, tier int, level Level, country *Country) *HighwaySystem {
	return &HighwaySystem{
		SystemName:    systemName,
		Country:       country,
		FullName:      fullName,
		Color:         color,
		Tier:          tier,
		Level:         level,
		RegionMileage: make(map[string]float64),
		Vertices:      make(map[GraphVertex]bool),
		Edges:         make(map[GraphEdge]bool),
	}
}
