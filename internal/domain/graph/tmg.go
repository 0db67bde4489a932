package graph

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/andrescamacho/tm-siteupdate/internal/domain/namer"
)

func fmtCoord(f float64) string {
	return strconv.FormatFloat(f, 'g', 15, 64)
}

// WriteSimpleTMG renders vs/es as a "TMG 1.0 simple" file (spec.md
// §6): header, vertex count and edge count, one vertex line per
// vertex (label, lat, lng at 15 significant digits), one edge line per
// edge (v1-index, v2-index, route label).
func WriteSimpleTMG(vs []*Vertex, es []*SimpleEdge) string {
	index := make(map[*Vertex]int, len(vs))
	for i, v := range vs {
		index[v] = i
	}

	var b strings.Builder
	fmt.Fprintln(&b, "TMG 1.0 simple")
	fmt.Fprintf(&b, "%d %d\n", len(vs), len(es))
	for _, v := range vs {
		fmt.Fprintf(&b, "%s %s %s\n", v.Label, fmtCoord(v.Lat), fmtCoord(v.Lng))
	}
	for _, e := range es {
		fmt.Fprintf(&b, "%d %d %s\n", index[e.V1], index[e.V2], namer.RouteShortName(e.RepresentativeRoute()))
	}
	return b.String()
}

// WriteCollapsedTMG renders vs/es as a "TMG 1.0 collapsed" file: each
// edge line additionally carries its shaping points (the hidden
// vertices folded into the edge by the collapse pass), in order from
// v1 to v2.
func WriteCollapsedTMG(vs []*Vertex, es []*CollapsedEdge) string {
	index := make(map[*Vertex]int, len(vs))
	for i, v := range vs {
		index[v] = i
	}

	var b strings.Builder
	fmt.Fprintln(&b, "TMG 1.0 collapsed")
	fmt.Fprintf(&b, "%d %d\n", len(vs), len(es))
	for _, v := range vs {
		fmt.Fprintf(&b, "%s %s %s\n", v.Label, fmtCoord(v.Lat), fmtCoord(v.Lng))
	}
	for _, e := range es {
		fmt.Fprintf(&b, "%d %d %s", index[e.V1], index[e.V2], namer.RouteShortName(e.RepresentativeRoute()))
		for _, s := range e.Shaping() {
			fmt.Fprintf(&b, " %s %s", fmtCoord(s.Lat), fmtCoord(s.Lng))
		}
		fmt.Fprintln(&b)
	}
	return b.String()
}
