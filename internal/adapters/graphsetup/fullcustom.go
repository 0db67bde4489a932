package graphsetup

import (
	"strconv"
	"strings"

	"github.com/andrescamacho/tm-siteupdate/internal/domain/errs"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/model"
)

// FullCustomGroups reads graphs/fullcustom.csv (root;descr;
// comma-separated region codes;comma-separated system names;
// lat;lng;miles, the last three blank when no place-radius filter
// applies) and builds one fully custom graph per line, combining every
// filter axis GraphListEntry supports in one definition
// (tasks/subgraphs/fullcustom.cpp is not present in the retrieved
// source; this is the natural superset of the single-axis group kinds
// above).
func FullCustomGroups(path string, regionsByCode map[string]*model.Region, systemsByName map[string]*model.HighwaySystem, el *errs.List) []*model.GraphListEntry {
	var out []*model.GraphListEntry
	for _, fields := range readManifestCSVLines(path, el) {
		if len(fields) != 7 {
			el.Addf("could not parse fullcustom.csv line: expected 7 fields, found %d", len(fields))
			continue
		}
		root, descr := fields[0], fields[1]

		var regions map[string]*model.Region
		if codesCSV := strings.TrimSpace(fields[2]); codesCSV != "" {
			regions = make(map[string]*model.Region)
			for _, code := range strings.Split(codesCSV, ",") {
				code = strings.TrimSpace(code)
				if r, ok := regionsByCode[code]; ok {
					regions[code] = r
				} else {
					el.Addf("unrecognized region code %q in fullcustom.csv line for %q", code, root)
				}
			}
		}

		var systems map[string]*model.HighwaySystem
		if namesCSV := strings.TrimSpace(fields[3]); namesCSV != "" {
			systems = make(map[string]*model.HighwaySystem)
			for _, name := range strings.Split(namesCSV, ",") {
				name = strings.TrimSpace(name)
				if s, ok := systemsByName[name]; ok {
					systems[name] = s
				} else {
					el.Addf("unrecognized system %q in fullcustom.csv line for %q", name, root)
				}
			}
		}

		var pr *model.PlaceRadius
		if latStr := strings.TrimSpace(fields[4]); latStr != "" {
			lat, errLat := strconv.ParseFloat(latStr, 64)
			lng, errLng := strconv.ParseFloat(strings.TrimSpace(fields[5]), 64)
			miles, errMiles := strconv.ParseFloat(strings.TrimSpace(fields[6]), 64)
			if errLat != nil || errLng != nil || errMiles != nil {
				el.Addf("could not parse place-radius fields in fullcustom.csv line for %q", root)
			} else {
				pr = model.NewPlaceRadius(descr, root, lat, lng, miles)
			}
		}

		out = append(out, model.NewGraphListEntry(root, descr, 'X', model.FormatCollapsed, regions, systems, pr))
	}
	return out
}
