package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/tm-siteupdate/internal/domain/datacheck"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/graph"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/model"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/namer"
)

func newPoint(label string, lat, lng float64, r *model.Route) *model.Waypoint {
	return &model.Waypoint{Label: label, Lat: lat, Lng: lng, Route: r}
}

func TestBuild_HiddenVertexChainCollapsesToOneEdge(t *testing.T) {
	r := model.NewRoute(nil, nil, "usaiI90", "I-90", "", "")
	a := newPoint("A", 0, 0, r)
	h := newPoint("+H", 1, 0, r)
	b := newPoint("B", 2, 0, r)
	r.Points = []*model.Waypoint{a, h, b}
	r.BuildSegments(func(w1, w2 *model.Waypoint) float64 { return 1 })

	sys := model.NewHighwaySystem("usai", "Interstates", "red", 1, model.LevelActive, nil)
	sys.Routes = []*model.Route{r}

	dc := datacheck.NewList()
	g := graph.Build([]*model.HighwaySystem{sys}, namer.New(), dc)

	require.Len(t, g.Vertices, 3)
	require.Len(t, g.SimpleEdges, 2)
	assert.Empty(t, dc.Entries())

	visible := graph.MatchingVertices(g, nil, nil, nil, true)
	require.Len(t, visible, 2)
	collapsed := graph.MatchingCollapsedEdges(visible, g, nil, nil)
	require.Len(t, collapsed, 1)

	shaping := collapsed[0].Shaping()
	require.Len(t, shaping, 1)
	assert.Equal(t, 1.0, shaping[0].Lat)
	assert.Equal(t, 0.0, shaping[0].Lng)
}

func TestBuild_HiddenTerminusUnhidesAndLogs(t *testing.T) {
	r := model.NewRoute(nil, nil, "usaiI90", "I-90", "", "")
	h := newPoint("+H", 1, 0, r)
	a := newPoint("A", 2, 0, r)
	r.Points = []*model.Waypoint{h, a}
	r.BuildSegments(func(w1, w2 *model.Waypoint) float64 { return 1 })

	sys := model.NewHighwaySystem("usai", "Interstates", "red", 1, model.LevelActive, nil)
	sys.Routes = []*model.Route{r}

	dc := datacheck.NewList()
	g := graph.Build([]*model.HighwaySystem{sys}, namer.New(), dc)

	entries := dc.NonFalsePositives()
	require.Len(t, entries, 1)
	assert.Equal(t, "HIDDEN_TERMINUS", entries[0].Code)

	visible := graph.MatchingVertices(g, nil, nil, nil, true)
	assert.Len(t, visible, 2)
}

func TestBuild_DevelOnlySystemSkipped(t *testing.T) {
	r := model.NewRoute(nil, nil, "usaiI90d", "I-90", "", "")
	a := newPoint("A", 0, 0, r)
	b := newPoint("B", 1, 0, r)
	r.Points = []*model.Waypoint{a, b}
	r.BuildSegments(func(w1, w2 *model.Waypoint) float64 { return 1 })

	sys := model.NewHighwaySystem("usai", "Interstates", "red", 1, model.LevelDevel, nil)
	sys.Routes = []*model.Route{r}

	g := graph.Build([]*model.HighwaySystem{sys}, namer.New(), datacheck.NewList())

	assert.Empty(t, g.Vertices)
	assert.Empty(t, g.SimpleEdges)
}

func TestWriteSimpleTMG_FormatsHeaderAndLines(t *testing.T) {
	r := model.NewRoute(nil, nil, "usaiI90", "I-90", "", "")
	a := newPoint("A", 0, 0, r)
	b := newPoint("B", 1, 0, r)
	r.Points = []*model.Waypoint{a, b}
	r.BuildSegments(func(w1, w2 *model.Waypoint) float64 { return 1 })

	sys := model.NewHighwaySystem("usai", "Interstates", "red", 1, model.LevelActive, nil)
	sys.Routes = []*model.Route{r}

	g := graph.Build([]*model.HighwaySystem{sys}, namer.New(), datacheck.NewList())
	out := graph.WriteSimpleTMG(g.Vertices, g.SimpleEdges)

	assert.Contains(t, out, "TMG 1.0 simple\n")
	assert.Contains(t, out, "2 1\n")
	assert.Contains(t, out, "I-90@A 0")
	assert.Contains(t, out, "0 1 I-90")
}

func TestMatchingVertices_PlaceRadiusFilter(t *testing.T) {
	r := model.NewRoute(nil, nil, "usaiI90", "I-90", "", "")
	near := newPoint("A", 0, 0, r)
	far := newPoint("B", 45, 45, r)
	r.Points = []*model.Waypoint{near, far}
	r.BuildSegments(func(w1, w2 *model.Waypoint) float64 { return 1 })

	sys := model.NewHighwaySystem("usai", "Interstates", "red", 1, model.LevelActive, nil)
	sys.Routes = []*model.Route{r}

	g := graph.Build([]*model.HighwaySystem{sys}, namer.New(), datacheck.NewList())
	pr := model.NewPlaceRadius("here", "Here", 0, 0, 10)

	mv := graph.MatchingVertices(g, nil, nil, pr, false)
	require.Len(t, mv, 1)
	assert.Equal(t, "A", mv[0].Colocated[0].Label)
}

func TestBuild_ConcurrentSegmentEmittedOnceByCanonicalMember(t *testing.T) {
	r1 := model.NewRoute(nil, nil, "usaiI90", "I-90", "", "")
	r2 := model.NewRoute(nil, nil, "usaiI94", "I-94", "", "")
	a1 := newPoint("A", 0, 0, r1)
	b1 := newPoint("B", 1, 0, r1)
	a2 := newPoint("C", 0, 0, r2)
	b2 := newPoint("D", 1, 0, r2)
	r1.Points = []*model.Waypoint{a1, b1}
	r2.Points = []*model.Waypoint{a2, b2}
	r1.BuildSegments(func(w1, w2 *model.Waypoint) float64 { return 1 })
	r2.BuildSegments(func(w1, w2 *model.Waypoint) float64 { return 1 })

	model.Link(a1, a2)
	model.Link(b1, b2)
	model.LinkConcurrent(r1.Segments[0], r2.Segments[0])

	sys := model.NewHighwaySystem("usai", "Interstates", "red", 1, model.LevelActive, nil)
	sys.Routes = []*model.Route{r1, r2}

	g := graph.Build([]*model.HighwaySystem{sys}, namer.New(), datacheck.NewList())

	require.Len(t, g.Vertices, 2)
	require.Len(t, g.SimpleEdges, 1)
	assert.Len(t, g.SimpleEdges[0].Segments, 2)
}
