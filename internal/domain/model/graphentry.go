package model

// Format is a GraphListEntry's output variant.
type Format int

const (
	FormatSimple Format = iota
	FormatCollapsed
)

func (f Format) String() string {
	if f == FormatCollapsed {
		return "collapsed"
	}
	return "simple"
}

// GraphListEntry describes one output graph: which vertices/edges it
// covers (by region set, system set, and/or place-radius), which
// format to emit, and the population counts filled in after emission
// (spec.md §3).
type GraphListEntry struct {
	Root     string
	Descr    string
	Category byte // matches the original "graphs" table category codes

	Regions     map[string]*Region
	Systems     map[string]*HighwaySystem
	PlaceRadius *PlaceRadius

	Format Format

	// Populated after emission.
	Vertices int
	Edges    int
	Travelers int
}

// NewGraphListEntry builds a subgraph descriptor. Any of regions,
// systems or pr may be nil/empty; matching_vertices/matching_edges in
// the graph package interpret empty-vs-nil identically.
func NewGraphListEntry(root, descr string, category byte, format Format, regions map[string]*Region, systems map[string]*HighwaySystem, pr *PlaceRadius) *GraphListEntry {
	return &GraphListEntry{
		Root:        root,
		Descr:       descr,
		Category:    category,
		Regions:     regions,
		Systems:     systems,
		PlaceRadius: pr,
		Format:      format,
	}
}

// Filename is the output .tmg file's base name.
func (g *GraphListEntry) Filename() string {
	return g.Root + ".tmg"
}
