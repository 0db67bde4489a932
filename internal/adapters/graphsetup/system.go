package graphsetup

import "github.com/andrescamacho/tm-siteupdate/internal/domain/model"

// SystemGroups builds one graph per active-or-preview highway system
// (tasks/subgraphs/system.cpp is not present in the retrieved source;
// this mirrors graph_setup.cpp's dispatch and GraphListEntry's
// system-filtered constructor).
func SystemGroups(systems []*model.HighwaySystem) []*model.GraphListEntry {
	var out []*model.GraphListEntry
	for _, sys := range systems {
		if !sys.Level.ActiveOrPreview() {
			continue
		}
		out = append(out, model.NewGraphListEntry(
			sys.SystemName,
			sys.FullName,
			'S', model.FormatCollapsed, nil, map[string]*model.HighwaySystem{sys.SystemName: sys}, nil))
	}
	return out
}
