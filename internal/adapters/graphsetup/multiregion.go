package graphsetup

import (
	"strings"

	"github.com/andrescamacho/tm-siteupdate/internal/domain/errs"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/model"
)

// MultiRegionGroups reads graphs/multiregion.csv (descr;title;
// comma-separated region codes) and builds one graph per line
// (tasks/subgraphs/multiregion.cpp).
func MultiRegionGroups(path string, regionsByCode map[string]*model.Region, el *errs.List) []*model.GraphListEntry {
	var out []*model.GraphListEntry
	for _, fields := range readManifestCSVLines(path, el) {
		if len(fields) != 3 {
			el.Addf("could not parse multiregion.csv line: expected 3 fields, found %d", len(fields))
			continue
		}
		descr, title, codesCSV := fields[0], fields[1], fields[2]

		set := make(map[string]*model.Region)
		for _, code := range strings.Split(codesCSV, ",") {
			code = strings.TrimSpace(code)
			r, ok := regionsByCode[code]
			if !ok {
				el.Addf("unrecognized region code %q in multiregion.csv line: %s", code, title)
				continue
			}
			set[code] = r
		}
		if len(set) == 0 {
			continue
		}
		out = append(out, model.NewGraphListEntry(title, descr, 'R', model.FormatCollapsed, set, nil, nil))
	}
	return out
}
