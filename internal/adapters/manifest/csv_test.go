package manifest_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/tm-siteupdate/internal/adapters/manifest"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/errs"
)

func TestParseContinents_SkipsHeaderAndParsesFields(t *testing.T) {
	el := errs.NewList()
	continents := manifest.ParseContinents(strings.NewReader("code;name\nnamerica;North America\neurope;Europe\n"), el)

	require.True(t, el.Empty())
	require.Len(t, continents, 2)
	assert.Equal(t, "namerica", continents[0].Code)
	assert.Equal(t, "North America", continents[0].Name)
}

func TestParseContinents_MalformedLineRecordsError(t *testing.T) {
	el := errs.NewList()
	manifest.ParseContinents(strings.NewReader("code;name\nbadline\n"), el)

	require.False(t, el.Empty())
	assert.Contains(t, el.Errors()[0].Error(), "badline")
}

func TestParseRegions_ResolvesCountryAndContinent(t *testing.T) {
	el := errs.NewList()
	continents := manifest.ParseContinents(strings.NewReader("code;name\nnamerica;North America\n"), el)
	countries := manifest.ParseCountries(strings.NewReader("code;name\nusa;United States\n"), el)
	regions := manifest.ParseRegions(strings.NewReader("code;name;country;continent\nusny;New York;usa;namerica\n"), countries, continents, el)

	require.True(t, el.Empty())
	require.Len(t, regions, 1)
	assert.Equal(t, "usny", regions[0].Code)
	assert.Equal(t, "usa", regions[0].Country.Code)
	assert.Equal(t, "namerica", regions[0].Continent.Code)
}

func TestParseRegions_UnrecognizedCountryRecordsError(t *testing.T) {
	el := errs.NewList()
	continents := manifest.ParseContinents(strings.NewReader("code;name\nnamerica;North America\n"), el)
	countries := manifest.ParseCountries(strings.NewReader("code;name\nusa;United States\n"), el)
	regions := manifest.ParseRegions(strings.NewReader("code;name;country;continent\nusny;New York;zzz;namerica\n"), countries, continents, el)

	assert.Empty(t, regions)
	require.False(t, el.Empty())
	assert.Contains(t, el.Errors()[0].Error(), "zzz")
}

func TestParseSystems_ResolvesLevelAndCountry(t *testing.T) {
	el := errs.NewList()
	countries := manifest.ParseCountries(strings.NewReader("code;name\nusa;United States\n"), el)
	systems := manifest.ParseSystems(strings.NewReader("name;country;fullname;color;tier;level\nusai;usa;Interstates;red;1;active\n"), countries, el)

	require.True(t, el.Empty())
	require.Len(t, systems, 1)
	assert.Equal(t, "usai", systems[0].SystemName)
	assert.Equal(t, "usa", systems[0].Country.Code)
	assert.Equal(t, 1, systems[0].Tier)
}

func TestParseSystems_IgnoresCommentLines(t *testing.T) {
	el := errs.NewList()
	countries := manifest.ParseCountries(strings.NewReader("code;name\nusa;United States\n"), el)
	systems := manifest.ParseSystems(strings.NewReader("name;country;fullname;color;tier;level\n#a comment\nusai;usa;Interstates;red;1;active\n"), countries, el)

	require.True(t, el.Empty())
	require.Len(t, systems, 1)
}

func TestBuildRoutesAndConnectedRoutes_ResolveAcrossManifest(t *testing.T) {
	el := errs.NewList()
	countries := manifest.ParseCountries(strings.NewReader("code;name\nusa;United States\n"), el)
	continents := manifest.ParseContinents(strings.NewReader("code;name\nnamerica;North America\n"), el)
	regions := manifest.ParseRegions(strings.NewReader("code;name;country;continent\nusny;New York;usa;namerica\n"), countries, continents, el)
	regionIdx := manifest.RegionIndex(regions)

	systems := manifest.ParseSystems(strings.NewReader("name;country;fullname;color;tier;level\nusai;usa;Interstates;red;1;active\n"), countries, el)
	sys := systems[0]

	routeEntries := manifest.ParseSystemRoutes(strings.NewReader(
		"region;banner;abbrev;city;root;first;last\nusny;;;;usaiI90;A;B\n"), sys.SystemName, el)
	manifest.BuildRoutes(sys, routeEntries, regionIdx, el)
	require.True(t, el.Empty())
	require.Len(t, sys.Routes, 1)
	assert.Equal(t, "usaiI90", sys.Routes[0].Root)

	conEntries := manifest.ParseConnectedRoutes(strings.NewReader(
		"name;roots\nI-90;usaiI90\n"), sys.SystemName, el)
	manifest.BuildConnectedRoutes(sys, conEntries, el)
	require.True(t, el.Empty())
	require.Len(t, sys.ConnectedRoutes, 1)
	assert.Equal(t, sys.Routes[0], sys.ConnectedRoutes[0].Roots[0])
}

func TestBuildConnectedRoutes_UnknownRootRecordsErrorAndSkipsEntry(t *testing.T) {
	el := errs.NewList()
	countries := manifest.ParseCountries(strings.NewReader("code;name\nusa;United States\n"), el)
	systems := manifest.ParseSystems(strings.NewReader("name;country;fullname;color;tier;level\nusai;usa;Interstates;red;1;active\n"), countries, el)
	sys := systems[0]

	conEntries := manifest.ParseConnectedRoutes(strings.NewReader("name;roots\nI-90;missingroot\n"), sys.SystemName, el)
	manifest.BuildConnectedRoutes(sys, conEntries, el)

	assert.Empty(t, sys.ConnectedRoutes)
	require.False(t, el.Empty())
	assert.Contains(t, el.Errors()[0].Error(), "missingroot")
}
