package wptio_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/tm-siteupdate/internal/adapters/wptio"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/datacheck"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/model"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/quadtree"
)

func TestParseLine_QueryStyleURL(t *testing.T) {
	label, lat, lng, ok := wptio.ParseLine("A http://maps.example/?lat=41.5&lon=-73.5")
	require.True(t, ok)
	assert.Equal(t, "A", label)
	assert.Equal(t, 41.5, lat)
	assert.Equal(t, -73.5, lng)
}

func TestParseLine_PathStyleURL(t *testing.T) {
	label, lat, lng, ok := wptio.ParseLine("B http://maps.example/@40.1,-74.2,15z")
	require.True(t, ok)
	assert.Equal(t, "B", label)
	assert.Equal(t, 40.1, lat)
	assert.Equal(t, -74.2, lng)
}

func TestParseLine_MalformedURLFails(t *testing.T) {
	_, _, _, ok := wptio.ParseLine("A http://maps.example/nope")
	assert.False(t, ok)
}

func TestReadRoute_ParsesLinesAndSkipsComments(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "I90.wpt")
	content := "# comment\nA http://maps.example/?lat=0&lon=0\n\nB http://maps.example/?lat=1&lon=0\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	sys := model.NewHighwaySystem("usai", "Interstates", "red", 1, model.LevelActive, nil)
	r := model.NewRoute(sys, nil, "usaiI90", "", "", "")
	qt := quadtree.New()
	dc := datacheck.NewList()

	require.NoError(t, wptio.ReadRoute(path, r, qt, dc))
	require.Len(t, r.Points, 2)
	assert.Equal(t, "A", r.Points[0].Label)
	assert.Equal(t, "B", r.Points[1].Label)
	assert.True(t, dc.Empty())
}

func TestReadRoute_MalformedLineLogsDatacheckAndContinues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "I90.wpt")
	content := "A http://maps.example/?lat=0&lon=0\nBADLINE\nB http://maps.example/?lat=1&lon=0\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	sys := model.NewHighwaySystem("usai", "Interstates", "red", 1, model.LevelActive, nil)
	r := model.NewRoute(sys, nil, "usaiI90", "", "", "")
	qt := quadtree.New()
	dc := datacheck.NewList()

	require.NoError(t, wptio.ReadRoute(path, r, qt, dc))
	require.Len(t, r.Points, 2)
	assert.False(t, dc.Empty())
	assert.Equal(t, "MALFORMED_URL", dc.Entries()[0].Code)
}
