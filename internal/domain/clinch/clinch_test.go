package clinch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/tm-siteupdate/internal/domain/clinch"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/model"
)

func concurrentPair(t *testing.T, level1, level2 model.Level) (*model.HighwaySegment, *model.HighwaySegment) {
	t.Helper()
	region := &model.Region{Code: "usny"}
	sys1 := model.NewHighwaySystem("sys1", "Sys1", "red", 1, level1, nil)
	sys2 := model.NewHighwaySystem("sys2", "Sys2", "blue", 1, level2, nil)
	r1 := model.NewRoute(sys1, region, "R1", "R1", "", "")
	r2 := model.NewRoute(sys2, region, "R2", "R2", "", "")
	r1.Points = []*model.Waypoint{{Label: "A", Route: r1}, {Label: "B", Route: r1}}
	r2.Points = []*model.Waypoint{{Label: "C", Route: r2}, {Label: "D", Route: r2}}
	r1.BuildSegments(func(w1, w2 *model.Waypoint) float64 { return 10 })
	r2.BuildSegments(func(w1, w2 *model.Waypoint) float64 { return 10 })
	model.LinkConcurrent(r1.Segments[0], r2.Segments[0])
	return r1.Segments[0], r2.Segments[0]
}

func TestAugment_PropagatesAcrossConcurrencyRing(t *testing.T) {
	s1, s2 := concurrentPair(t, model.LevelActive, model.LevelActive)

	trav := model.NewTravelerList("alice")
	trav.ClinchSegment(s1)

	lines := clinch.Augment([]*model.TravelerList{trav})

	assert.True(t, trav.Clinched(s2))
	_, present := s2.ClinchedBy["alice"]
	assert.True(t, present)
	require.Len(t, lines, 1)
	assert.Equal(t, 10.0, trav.ActivePreviewMileageByRegion["usny"])
	assert.Equal(t, 10.0, trav.ActiveOnlyMileageByRegion["usny"])
	assert.Equal(t, 10.0, trav.SystemRegionMileages["sys2"]["usny"])
}

func TestAugment_IdempotentOnRepeatedRuns(t *testing.T) {
	s1, _ := concurrentPair(t, model.LevelActive, model.LevelActive)

	trav := model.NewTravelerList("alice")
	trav.ClinchSegment(s1)

	first := clinch.Augment([]*model.TravelerList{trav})
	second := clinch.Augment([]*model.TravelerList{trav})

	require.Len(t, first, 1)
	assert.Empty(t, second)
	assert.Equal(t, 10.0, trav.ActivePreviewMileageByRegion["usny"])
}

func TestAugment_SkipsDevelSystemMembers(t *testing.T) {
	s1, s2 := concurrentPair(t, model.LevelActive, model.LevelDevel)

	trav := model.NewTravelerList("alice")
	trav.ClinchSegment(s1)

	lines := clinch.Augment([]*model.TravelerList{trav})

	assert.False(t, trav.Clinched(s2))
	assert.Empty(t, lines)
}

func TestAugment_PreviewSystemCountsTowardActivePreviewOnly(t *testing.T) {
	s1, s2 := concurrentPair(t, model.LevelActive, model.LevelPreview)

	trav := model.NewTravelerList("alice")
	trav.ClinchSegment(s1)

	clinch.Augment([]*model.TravelerList{trav})

	assert.True(t, trav.Clinched(s2))
	assert.Equal(t, 10.0, trav.ActivePreviewMileageByRegion["usny"])
	assert.Equal(t, 0.0, trav.ActiveOnlyMileageByRegion["usny"])
}
