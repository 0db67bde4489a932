// Package manifest parses the ';'-separated, DOS-line-ending-tolerant
// manifest files named in spec.md §6: continents.csv, countries.csv,
// regions.csv, the systems file, and each system's route/connected-route
// csv. Parse failures become errs.List entries (structural problems),
// never datacheck findings, per spec.md §7.
package manifest

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/andrescamacho/tm-siteupdate/internal/domain/errs"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/model"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/shared"
)

// readLines yields the DOS-ending-stripped, non-empty lines of r,
// skipping the header line. Lines are not otherwise trimmed, and
// '#'-prefixed lines are passed through for the caller to handle.
func readLines(r io.Reader) []string {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var lines []string
	first := true
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if first {
			first = false
			continue // header line ignored
		}
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func fields(line string, n int) ([]string, bool) {
	parts := strings.Split(line, ";")
	if len(parts) != n {
		return nil, false
	}
	return parts, true
}

// ParseContinents reads continents.csv (code;name).
func ParseContinents(r io.Reader, el *errs.List) []*model.Continent {
	var out []*model.Continent
	for _, line := range readLines(r) {
		f, ok := fields(line, 2)
		if !ok {
			el.Addf("could not parse continents.csv line %q: expected 2 fields", line)
			continue
		}
		out = append(out, &model.Continent{Code: f[0], Name: f[1]})
	}
	return out
}

// ParseCountries reads countries.csv (code;name).
func ParseCountries(r io.Reader, el *errs.List) []*model.Country {
	var out []*model.Country
	for _, line := range readLines(r) {
		f, ok := fields(line, 2)
		if !ok {
			el.Addf("could not parse countries.csv line %q: expected 2 fields", line)
			continue
		}
		out = append(out, &model.Country{Code: f[0], Name: f[1]})
	}
	return out
}

// ParseRegions reads regions.csv (code;name;country;continent),
// resolving country/continent codes against the already-parsed lists.
func ParseRegions(r io.Reader, countries []*model.Country, continents []*model.Continent, el *errs.List) []*model.Region {
	countryByCode := make(map[string]*model.Country, len(countries))
	for _, c := range countries {
		countryByCode[c.Code] = c
	}
	continentByCode := make(map[string]*model.Continent, len(continents))
	for _, c := range continents {
		continentByCode[c.Code] = c
	}

	var out []*model.Region
	for i, line := range readLines(r) {
		f, ok := fields(line, 4)
		if !ok {
			el.Add(shared.NewManifestError("regions.csv", i+1, fmt.Sprintf("could not parse line %q: expected 4 fields", line)))
			continue
		}
		country, ok := countryByCode[f[2]]
		if !ok {
			el.Add(shared.NewManifestError("regions.csv", i+1, fmt.Sprintf("unrecognized country code %q in line %q", f[2], line)))
			continue
		}
		continent, ok := continentByCode[f[3]]
		if !ok {
			el.Add(shared.NewManifestError("regions.csv", i+1, fmt.Sprintf("unrecognized continent code %q in line %q", f[3], line)))
			continue
		}
		out = append(out, &model.Region{Code: f[0], Name: f[1], Country: country, Continent: continent})
	}
	return out
}

// levelFromCode maps a systems.csv level field to model.Level.
func levelFromCode(code string) (model.Level, bool) {
	switch code {
	case "active":
		return model.LevelActive, true
	case "preview":
		return model.LevelPreview, true
	case "devel":
		return model.LevelDevel, true
	default:
		return 0, false
	}
}

// ParseSystems reads the systems file
// (systemname;country;fullname;color;tier;level), resolving country
// codes against countries. Lines beginning '#' are tolerated comments
// within the body, matching the reference ignoring logic (spec.md §6
// lists the systems file as a manifest with an ignored header; the
// original additionally tolerates '#'-prefixed lines mid-file).
func ParseSystems(r io.Reader, countries []*model.Country, el *errs.List) []*model.HighwaySystem {
	countryByCode := make(map[string]*model.Country, len(countries))
	for _, c := range countries {
		countryByCode[c.Code] = c
	}

	var out []*model.HighwaySystem
	for _, line := range readLines(r) {
		if strings.HasPrefix(line, "#") {
			continue
		}
		f, ok := fields(line, 6)
		if !ok {
			el.Addf("could not parse systems line %q: expected 6 fields", line)
			continue
		}
		country, ok := countryByCode[f[1]]
		if !ok {
			el.Addf("systems line %q: unrecognized country code %q", line, f[1])
			continue
		}
		tier, err := strconv.Atoi(f[4])
		if err != nil {
			el.Addf("systems line %q: invalid tier %q", line, f[4])
			continue
		}
		level, ok := levelFromCode(f[5])
		if !ok {
			el.Addf("systems line %q: unrecognized level %q", line, f[5])
			continue
		}
		out = append(out, model.NewHighwaySystem(f[0], f[2], f[3], tier, level, country))
	}
	return out
}

// RouteManifestEntry is one line of a system's route csv
// (region;banner;abbrev;city;root;first_waypoint;last_waypoint), prior
// to wpt-file population.
type RouteManifestEntry struct {
	RegionCode    string
	Banner        string
	Abbrev        string
	City          string
	Root          string
	FirstWaypoint string
	LastWaypoint  string
}

// ParseSystemRoutes reads one <system>.csv file's route entries.
func ParseSystemRoutes(r io.Reader, systemName string, el *errs.List) []RouteManifestEntry {
	var out []RouteManifestEntry
	for _, line := range readLines(r) {
		f, ok := fields(line, 7)
		if !ok {
			el.Addf("could not parse %s.csv line %q: expected 7 fields", systemName, line)
			continue
		}
		out = append(out, RouteManifestEntry{
			RegionCode:    f[0],
			Banner:        f[1],
			Abbrev:        f[2],
			City:          f[3],
			Root:          f[4],
			FirstWaypoint: f[5],
			LastWaypoint:  f[6],
		})
	}
	return out
}

// BuildRoutes instantiates the system's Route objects from its parsed
// manifest entries, resolving each entry's region code and appending
// to sys.Routes in file order.
func BuildRoutes(sys *model.HighwaySystem, entries []RouteManifestEntry, regionByCode map[string]*model.Region, el *errs.List) {
	for _, e := range entries {
		region, ok := regionByCode[e.RegionCode]
		if !ok {
			el.Addf("system %s route %s: unrecognized region code %q", sys.SystemName, e.Root, e.RegionCode)
			continue
		}
		r := model.NewRoute(sys, region, e.Root, e.Banner, e.Abbrev, e.City)
		sys.Routes = append(sys.Routes, r)
	}
}

// ConnectedRouteManifestEntry is one line of a system's _con.csv file:
// a connected-route name followed by the ordered list of route roots
// it spans.
type ConnectedRouteManifestEntry struct {
	Name  string
	Roots []string
}

// ParseConnectedRoutes reads one <system>_con.csv file
// (name;root1;root2;...).
func ParseConnectedRoutes(r io.Reader, systemName string, el *errs.List) []ConnectedRouteManifestEntry {
	var out []ConnectedRouteManifestEntry
	for _, line := range readLines(r) {
		parts := strings.Split(line, ";")
		if len(parts) < 2 {
			el.Addf("could not parse %s_con.csv line %q: expected a name and at least one root", systemName, line)
			continue
		}
		out = append(out, ConnectedRouteManifestEntry{Name: parts[0], Roots: parts[1:]})
	}
	return out
}

// BuildConnectedRoutes resolves each entry's route roots against the
// system's already-built routes (indexed by root) and constructs the
// ConnectedRoute objects, appending to sys.ConnectedRoutes.
func BuildConnectedRoutes(sys *model.HighwaySystem, entries []ConnectedRouteManifestEntry, el *errs.List) {
	byRoot := make(map[string]*model.Route, len(sys.Routes))
	for _, r := range sys.Routes {
		byRoot[r.Root] = r
	}

	for _, e := range entries {
		roots := make([]*model.Route, 0, len(e.Roots))
		ok := true
		for _, rootName := range e.Roots {
			r, found := byRoot[rootName]
			if !found {
				el.Addf("system %s connected route %s: unrecognized route root %q", sys.SystemName, e.Name, rootName)
				ok = false
				continue
			}
			roots = append(roots, r)
		}
		if !ok || len(roots) == 0 {
			continue
		}
		sys.ConnectedRoutes = append(sys.ConnectedRoutes, model.NewConnectedRoute(sys, e.Name, roots))
	}
}

// RegionIndex builds a code -> *Region lookup, appending an "error"
// sentinel region so unrecognized region codes elsewhere resolve to a
// catch-all rather than a nil pointer (mirrors the reference's dummy
// region for unrecognized codes).
func RegionIndex(regions []*model.Region) map[string]*model.Region {
	idx := make(map[string]*model.Region, len(regions)+1)
	for _, r := range regions {
		idx[r.Code] = r
	}
	if _, ok := idx["error"]; !ok {
		idx["error"] = &model.Region{Code: "error", Name: "unrecognized region code"}
	}
	return idx
}
