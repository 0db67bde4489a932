package graphsetup

import "github.com/andrescamacho/tm-siteupdate/internal/domain/model"

// RegionGroups builds one graph per region with active+preview
// mileage (tasks/subgraphs/region.cpp is not present in the retrieved
// source; this follows continent.cpp's single-region-set pattern at
// the region granularity named in graph_setup.cpp's dispatch list).
func RegionGroups(regions []*model.Region) []*model.GraphListEntry {
	var out []*model.GraphListEntry
	for _, r := range regions {
		if r.ActivePreviewMileage <= 0 {
			continue
		}
		out = append(out, model.NewGraphListEntry(
			r.Code,
			r.Name+" All Routes",
			'R', model.FormatCollapsed, map[string]*model.Region{r.Code: r}, nil, nil))
	}
	return out
}
