package graphsetup

import (
	"strconv"
	"strings"

	"github.com/andrescamacho/tm-siteupdate/internal/domain/errs"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/model"
)

// AreaGroups reads graphs/area.csv (descr;title;lat;lng;miles) and
// builds one place-radius-filtered graph per line (spec.md §3's
// PlaceRadius predicate; tasks/subgraphs/area.cpp is not present in
// the retrieved source, so the field layout follows PlaceRadius's own
// five manifest attributes in manifest-CSV field order).
func AreaGroups(path string, el *errs.List) []*model.GraphListEntry {
	var out []*model.GraphListEntry
	for _, fields := range readManifestCSVLines(path, el) {
		if len(fields) != 5 {
			el.Addf("could not parse area.csv line: expected 5 fields, found %d", len(fields))
			continue
		}
		descr, title := fields[0], fields[1]
		lat, errLat := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
		lng, errLng := strconv.ParseFloat(strings.TrimSpace(fields[3]), 64)
		miles, errMiles := strconv.ParseFloat(strings.TrimSpace(fields[4]), 64)
		if errLat != nil || errLng != nil || errMiles != nil {
			el.Addf("could not parse numeric fields in area.csv line for %q", title)
			continue
		}
		pr := model.NewPlaceRadius(descr, title, lat, lng, miles)
		out = append(out, model.NewGraphListEntry(title, descr, 'P', model.FormatCollapsed, nil, nil, pr))
	}
	return out
}
