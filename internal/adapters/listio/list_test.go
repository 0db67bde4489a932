package listio_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/tm-siteupdate/internal/adapters/listio"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/errs"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/geo"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/model"
)

func buildRoute(sys *model.HighwaySystem, root string, labels ...string) *model.Route {
	r := model.NewRoute(sys, nil, root, "", "", "")
	for i, l := range labels {
		r.Points = append(r.Points, &model.Waypoint{Label: l, Lat: float64(i), Lng: 0, Route: r})
	}
	r.BuildLabelHashes()
	r.BuildSegments(func(w1, w2 *model.Waypoint) float64 {
		return geo.Distance(w1.Lat, w1.Lng, w2.Lat, w2.Lng)
	})
	return r
}

func TestReadTravelerList_FourFieldChoppedRoute(t *testing.T) {
	sys := model.NewHighwaySystem("usai", "Interstates", "red", 1, model.LevelActive, nil)
	r := buildRoute(sys, "usaiI90", "A", "B", "C", "D")
	sys.Routes = append(sys.Routes, r)

	dir := t.TempDir()
	path := filepath.Join(dir, "traveler.list")
	content := "# a comment\nusai usaiI90 A C\n\nusai usaiI90 C D\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	idx := listio.NewRouteIndex([]*model.HighwaySystem{sys})
	tl := model.NewTravelerList("traveler")
	el := errs.NewList()

	require.NoError(t, listio.ReadTravelerList(path, tl, idx, el))
	assert.True(t, el.Empty())
	assert.Len(t, tl.ClinchedSegments(), 3)
	assert.Len(t, tl.Lines, 4)
	assert.True(t, tl.UpdatedRoutes["usaiI90"])
}

func TestReadTravelerList_SixFieldConnectedRoute(t *testing.T) {
	sys := model.NewHighwaySystem("usai", "Interstates", "red", 1, model.LevelActive, nil)
	r1 := buildRoute(sys, "usaiI90a", "A", "B")
	r2 := buildRoute(sys, "usaiI90b", "C", "D")
	r3 := buildRoute(sys, "usaiI90c", "E", "F")
	sys.Routes = append(sys.Routes, r1, r2, r3)
	sys.ConnectedRoutes = append(sys.ConnectedRoutes, model.NewConnectedRoute(sys, "I90", []*model.Route{r1, r2, r3}))

	dir := t.TempDir()
	path := filepath.Join(dir, "traveler.list")
	content := "usai usaiI90a A usai usaiI90c F\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	idx := listio.NewRouteIndex([]*model.HighwaySystem{sys})
	tl := model.NewTravelerList("traveler")
	el := errs.NewList()

	require.NoError(t, listio.ReadTravelerList(path, tl, idx, el))
	assert.True(t, el.Empty())
	assert.Len(t, tl.ClinchedSegments(), 3) // one segment per route: r1, r2, r3
	assert.True(t, tl.UpdatedRoutes["usaiI90a"])
	assert.True(t, tl.UpdatedRoutes["usaiI90b"])
	assert.True(t, tl.UpdatedRoutes["usaiI90c"])
}

func TestReadTravelerList_UnrecognizedRootLogsError(t *testing.T) {
	sys := model.NewHighwaySystem("usai", "Interstates", "red", 1, model.LevelActive, nil)
	r := buildRoute(sys, "usaiI90", "A", "B")
	sys.Routes = append(sys.Routes, r)

	dir := t.TempDir()
	path := filepath.Join(dir, "traveler.list")
	content := "usai usaiI99 A B\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	idx := listio.NewRouteIndex([]*model.HighwaySystem{sys})
	tl := model.NewTravelerList("traveler")
	el := errs.NewList()

	require.NoError(t, listio.ReadTravelerList(path, tl, idx, el))
	assert.False(t, el.Empty())
	assert.Empty(t, tl.ClinchedSegments())
}

func TestReadTravelerList_WrongFieldCountLogsError(t *testing.T) {
	sys := model.NewHighwaySystem("usai", "Interstates", "red", 1, model.LevelActive, nil)

	dir := t.TempDir()
	path := filepath.Join(dir, "traveler.list")
	content := "usai usaiI90 A\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	idx := listio.NewRouteIndex([]*model.HighwaySystem{sys})
	tl := model.NewTravelerList("traveler")
	el := errs.NewList()

	require.NoError(t, listio.ReadTravelerList(path, tl, idx, el))
	assert.False(t, el.Empty())
}
