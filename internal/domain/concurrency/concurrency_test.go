package concurrency_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/tm-siteupdate/internal/domain/concurrency"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/datacheck"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/model"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/quadtree"
)

// buildRoute inserts a simple two-point route [label1@(lat1,lng1), label2@(lat2,lng2)]
// into q, wires its segment, and returns it.
func buildRoute(q *quadtree.Quadtree, root string, p1, p2 [3]float64, l1, l2 string) *model.Route {
	r := model.NewRoute(nil, nil, root, "", "", "")
	w1 := &model.Waypoint{Label: l1, Lat: p1[0], Lng: p1[1], Route: r}
	w2 := &model.Waypoint{Label: l2, Lat: p2[0], Lng: p2[1], Route: r}
	r.Points = []*model.Waypoint{w1, w2}
	q.Insert(w1)
	q.Insert(w2)
	r.BuildSegments(func(a, b *model.Waypoint) float64 { return 1 })
	return r
}

func TestDetectAll_TwoRoutesSameEndpointsBothDirections(t *testing.T) {
	q := quadtree.New()
	r1 := buildRoute(q, "R1", [3]float64{0, 0, 0}, [3]float64{1, 0, 0}, "A", "B")
	r2 := buildRoute(q, "R2", [3]float64{0, 0, 0}, [3]float64{1, 0, 0}, "C", "D")

	sys := model.NewHighwaySystem("sys", "Sys", "red", 1, model.LevelActive, nil)
	sys.Routes = []*model.Route{r1, r2}
	concurrency.DetectAll([]*model.HighwaySystem{sys})

	require.NotNil(t, r1.Segments[0].Concurrent)
	assert.Same(t, r1.Segments[0].Concurrent, r2.Segments[0].Concurrent)
	assert.Len(t, r1.Segments[0].Concurrent.Segments, 2)
}

func TestDetectAll_NoConcurrencyWhenEndpointsDiffer(t *testing.T) {
	q := quadtree.New()
	r1 := buildRoute(q, "R1", [3]float64{0, 0, 0}, [3]float64{1, 0, 0}, "A", "B")
	r2 := buildRoute(q, "R2", [3]float64{1, 0, 0}, [3]float64{2, 0, 0}, "C", "D")

	sys := model.NewHighwaySystem("sys", "Sys", "red", 1, model.LevelActive, nil)
	sys.Routes = []*model.Route{r1, r2}
	concurrency.DetectAll([]*model.HighwaySystem{sys})

	assert.Nil(t, r1.Segments[0].Concurrent)
	assert.Nil(t, r2.Segments[0].Concurrent)
}

func TestVerifyConnectedRoutes_DisconnectedEmitsTwoEntries(t *testing.T) {
	q := quadtree.New()
	r1 := buildRoute(q, "R1", [3]float64{0, 0, 0}, [3]float64{0, 0, 0}, "A", "B")
	r2 := buildRoute(q, "R2", [3]float64{5, 5, 0}, [3]float64{6, 6, 0}, "C", "D")
	cr := model.NewConnectedRoute(nil, "CR", []*model.Route{r1, r2})

	dc := datacheck.NewList()
	concurrency.VerifyConnectedRoutes([]*model.ConnectedRoute{cr}, dc)

	assert.True(t, r1.Disconnected)
	assert.True(t, r2.Disconnected)
	entries := dc.Entries()
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, "DISCONNECTED_ROUTE", e.Code)
	}
}

func TestVerifyConnectedRoutes_RescueReversesR(t *testing.T) {
	q := quadtree.New()
	// q ends at (1,0); r's end (not begin) colocates with q's end, so r
	// must be reversed to connect begin-to-end.
	r1 := buildRoute(q, "R1", [3]float64{0, 0, 0}, [3]float64{1, 0, 0}, "A", "B")
	r2 := buildRoute(q, "R2", [3]float64{9, 9, 0}, [3]float64{1, 0, 0}, "C", "D")
	cr := model.NewConnectedRoute(nil, "CR", []*model.Route{r1, r2})

	dc := datacheck.NewList()
	concurrency.VerifyConnectedRoutes([]*model.ConnectedRoute{cr}, dc)

	assert.False(t, r1.Disconnected)
	assert.False(t, r2.Disconnected)
	assert.True(t, r2.Reversed)
	assert.Empty(t, dc.Entries())
}

func TestVerifyConnectedRoutes_ConnectedRouteOfLengthOneNeverDisconnected(t *testing.T) {
	q := quadtree.New()
	r1 := buildRoute(q, "R1", [3]float64{0, 0, 0}, [3]float64{1, 0, 0}, "A", "B")
	cr := model.NewConnectedRoute(nil, "CR", []*model.Route{r1})

	dc := datacheck.NewList()
	concurrency.VerifyConnectedRoutes([]*model.ConnectedRoute{cr}, dc)

	assert.False(t, r1.Disconnected)
	assert.Empty(t, dc.Entries())
}
