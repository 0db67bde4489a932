package graphsetup

import "github.com/andrescamacho/tm-siteupdate/internal/domain/model"

// CountryGroups builds one graph per country that has at least one
// region with active+preview mileage, mirroring ContinentGroups'
// pattern one axis over (tasks/subgraphs/country.cpp is not present in
// the retrieved source; this follows continent.cpp's proven shape for
// the sibling "group regions by a manifest attribute" subgraph kind).
func CountryGroups(regions []*model.Region) []*model.GraphListEntry {
	byCountry := make(map[*model.Country][]*model.Region)
	var order []*model.Country
	for _, r := range regions {
		if r.Country == nil || r.ActivePreviewMileage <= 0 {
			continue
		}
		if _, ok := byCountry[r.Country]; !ok {
			order = append(order, r.Country)
		}
		byCountry[r.Country] = append(byCountry[r.Country], r)
	}

	var out []*model.GraphListEntry
	for _, c := range order {
		set := make(map[string]*model.Region, len(byCountry[c]))
		for _, r := range byCountry[c] {
			set[r.Code] = r
		}
		out = append(out, model.NewGraphListEntry(
			c.Code+"-country",
			c.Name+" All Routes in Country",
			'A', model.FormatCollapsed, set, nil, nil))
	}
	return out
}
