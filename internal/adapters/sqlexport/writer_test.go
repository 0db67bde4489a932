package sqlexport_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/andrescamacho/tm-siteupdate/internal/adapters/sqlexport"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/datacheck"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, sqlexport.AutoMigrate(db))
	return db
}

func TestDump_WritesRegionsSystemsRoutesAndDatacheck(t *testing.T) {
	db := openTestDB(t)

	country := &model.Country{Code: "us", Name: "United States"}
	continent := &model.Continent{Code: "namerica", Name: "North America"}
	region := &model.Region{Code: "usny", Name: "New York", Country: country, Continent: continent}

	sys := model.NewHighwaySystem("usai", "Interstates", "red", 1, model.LevelActive, country)
	sys.RegionMileage["usny"] = 42.0
	r := model.NewRoute(sys, region, "usaiI90", "I-90", "", "")
	r.Points = []*model.Waypoint{{Label: "A", Route: r}, {Label: "B", Route: r}}
	r.BuildSegments(func(w1, w2 *model.Waypoint) float64 { return 5 })
	sys.Routes = []*model.Route{r}

	trav := model.NewTravelerList("alice")
	trav.ClinchSegment(r.Segments[0])

	dc := datacheck.NewList()
	dc.AddCode(r, "A", "", "", "DISCONNECTED_ROUTE", "test")

	err := sqlexport.Dump(db, []*model.Region{region}, []*model.HighwaySystem{sys}, []*model.TravelerList{trav}, dc)
	require.NoError(t, err)

	var regionCount, systemCount, routeCount, wptCount, dcCount, clinchCount int64
	db.Model(&sqlexport.RegionModel{}).Count(&regionCount)
	db.Model(&sqlexport.SystemModel{}).Count(&systemCount)
	db.Model(&sqlexport.RouteModel{}).Count(&routeCount)
	db.Model(&sqlexport.WaypointModel{}).Count(&wptCount)
	db.Model(&sqlexport.DatacheckModel{}).Count(&dcCount)
	db.Model(&sqlexport.ClinchedSegmentModel{}).Count(&clinchCount)

	require.EqualValues(t, 1, regionCount)
	require.EqualValues(t, 1, systemCount)
	require.EqualValues(t, 1, routeCount)
	require.EqualValues(t, 2, wptCount)
	require.EqualValues(t, 1, dcCount)
	require.EqualValues(t, 1, clinchCount)

	var route sqlexport.RouteModel
	require.NoError(t, db.First(&route, "root = ?", "usaiI90").Error)
	require.Equal(t, 5.0, route.Mileage)
}
