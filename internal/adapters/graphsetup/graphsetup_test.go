package graphsetup_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/tm-siteupdate/internal/adapters/graphsetup"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/errs"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/model"
)

func TestMasterGroup(t *testing.T) {
	g := graphsetup.MasterGroup()
	assert.Equal(t, "tm-master", g.Root)
	assert.Empty(t, g.Regions)
	assert.Empty(t, g.Systems)
}

func TestContinentGroups_SkipsRegionsWithoutMileage(t *testing.T) {
	na := &model.Continent{Code: "NAmer", Name: "North America"}
	r1 := &model.Region{Code: "usny", Name: "New York", Continent: na, ActivePreviewMileage: 10}
	r2 := &model.Region{Code: "usct", Name: "Connecticut", Continent: na, ActivePreviewMileage: 0}

	groups := graphsetup.ContinentGroups([]*model.Region{r1, r2})
	require.Len(t, groups, 1)
	assert.Equal(t, "NAmer-continent", groups[0].Root)
	assert.Len(t, groups[0].Regions, 1)
}

func TestMultiRegionGroups_ParsesManifestAndReportsUnknownCode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "multiregion.csv")
	content := "descr;title;regions\nNortheast corridor;Northeast;usny,usct\nBad one;Bad;nope\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	r1 := &model.Region{Code: "usny"}
	r2 := &model.Region{Code: "usct"}
	byCode := map[string]*model.Region{"usny": r1, "usct": r2}

	el := errs.NewList()
	groups := graphsetup.MultiRegionGroups(path, byCode, el)
	require.Len(t, groups, 1)
	assert.Equal(t, "Northeast", groups[0].Root)
	assert.Len(t, groups[0].Regions, 2)
	assert.False(t, el.Empty())
}

func TestAreaGroups_ParsesPlaceRadius(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "area.csv")
	content := "descr;title;lat;lng;miles\nAround NYC;NYC;40.7;-74.0;50\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	el := errs.NewList()
	groups := graphsetup.AreaGroups(path, el)
	require.Len(t, groups, 1)
	require.NotNil(t, groups[0].PlaceRadius)
	assert.Equal(t, 50.0, groups[0].PlaceRadius.Miles)
	assert.True(t, el.Empty())
}
