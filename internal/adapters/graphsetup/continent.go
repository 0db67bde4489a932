package graphsetup

import "github.com/andrescamacho/tm-siteupdate/internal/domain/model"

// ContinentGroups builds one graph per continent that has at least one
// region with active+preview mileage (tasks/subgraphs/continent.cpp).
func ContinentGroups(regions []*model.Region) []*model.GraphListEntry {
	byContinent := make(map[*model.Continent][]*model.Region)
	var order []*model.Continent
	for _, r := range regions {
		if r.Continent == nil || r.ActivePreviewMileage <= 0 {
			continue
		}
		if _, ok := byContinent[r.Continent]; !ok {
			order = append(order, r.Continent)
		}
		byContinent[r.Continent] = append(byContinent[r.Continent], r)
	}

	var out []*model.GraphListEntry
	for _, c := range order {
		set := make(map[string]*model.Region, len(byContinent[c]))
		for _, r := range byContinent[c] {
			set[r.Code] = r
		}
		out = append(out, model.NewGraphListEntry(
			c.Code+"-continent",
			c.Name+" All Routes on Continent",
			'C', model.FormatCollapsed, set, nil, nil))
	}
	return out
}
