package graphsetup

import (
	"strings"

	"github.com/andrescamacho/tm-siteupdate/internal/domain/errs"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/model"
)

// MultiSystemGroups reads graphs/multisystem.csv (descr;title;
// comma-separated system names) and builds one graph per line, the
// system-axis sibling of MultiRegionGroups (tasks/subgraphs/
// multisystem.cpp is not present in the retrieved source; this mirrors
// multiregion.cpp's proven three-field dispatch).
func MultiSystemGroups(path string, systemsByName map[string]*model.HighwaySystem, el *errs.List) []*model.GraphListEntry {
	var out []*model.GraphListEntry
	for _, fields := range readManifestCSVLines(path, el) {
		if len(fields) != 3 {
			el.Addf("could not parse multisystem.csv line: expected 3 fields, found %d", len(fields))
			continue
		}
		descr, title, namesCSV := fields[0], fields[1], fields[2]

		set := make(map[string]*model.HighwaySystem)
		for _, name := range strings.Split(namesCSV, ",") {
			name = strings.TrimSpace(name)
			sys, ok := systemsByName[name]
			if !ok {
				el.Addf("unrecognized system %q in multisystem.csv line for %q", name, title)
				continue
			}
			set[name] = sys
		}
		if len(set) == 0 {
			continue
		}
		out = append(out, model.NewGraphListEntry(title, descr, 'U', model.FormatCollapsed, nil, set, nil))
	}
	return out
}
