package userlog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/tm-siteupdate/internal/adapters/userlog"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/geo"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/model"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/stats"
)

func buildRoute(sys *model.HighwaySystem, region *model.Region, root string, labels ...string) *model.Route {
	r := model.NewRoute(sys, region, root, "", "", "")
	for i, l := range labels {
		r.Points = append(r.Points, &model.Waypoint{Label: l, Lat: float64(i), Lng: 0, Route: r})
	}
	r.BuildLabelHashes()
	r.BuildSegments(func(w1, w2 *model.Waypoint) float64 {
		return geo.Distance(w1.Lat, w1.Lng, w2.Lat, w2.Lng)
	})
	return r
}

func TestWriteLog_ProducesSummaryFile(t *testing.T) {
	region := &model.Region{Code: "usny", Name: "New York"}
	sys := model.NewHighwaySystem("usai", "Interstates", "red", 1, model.LevelActive, nil)
	r := buildRoute(sys, region, "usaiI90", "A", "B", "C")
	sys.Routes = append(sys.Routes, r)
	sys.ConnectedRoutes = append(sys.ConnectedRoutes, model.NewConnectedRoute(sys, "I90", []*model.Route{r}))

	stats.Aggregate([]*model.HighwaySystem{sys})

	tl := model.NewTravelerList("traveler")
	tl.ClinchSegment(r.Segments[0])
	tl.AddMileage(sys.SystemName, region.Code, r.Segments[0].Length, true)

	dir := t.TempDir()
	require.NoError(t, userlog.WriteLog(dir, tl, []*model.HighwaySystem{sys}, region.ActiveOnlyMileage, region.ActivePreviewMileage))

	content, err := os.ReadFile(filepath.Join(dir, "traveler.log"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "Clinched Highway Statistics")
	assert.Contains(t, string(content), "usny:")
	assert.Contains(t, string(content), "System usai")
}
