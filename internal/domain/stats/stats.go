// Package stats implements the StatsAggregator of spec.md §4.8 stage
// 9: per-region and per-system highway mileage summaries, computed in
// one serial pass over every system.
package stats

import "github.com/andrescamacho/tm-siteupdate/internal/domain/model"

// Aggregate sums segment mileage into each system's RegionMileage map
// and each region's active/active-preview totals. Every system
// attributes its own routes' full mileage regardless of concurrency
// overlap with other systems (it genuinely contains that highway);
// a region's physical-pavement total counts a concurrency ring only
// once, via its canonical segment, so shared pavement is not
// double-counted across concurrent routes.
func Aggregate(systems []*model.HighwaySystem) {
	for _, sys := range systems {
		if !sys.Level.ActiveOrPreview() {
			continue
		}
		for _, r := range sys.Routes {
			regionCode := ""
			if r.Region != nil {
				regionCode = r.Region.Code
			}
			for _, s := range r.Segments {
				sys.RegionMileage[regionCode] += s.Length

				if s.Concurrent != nil && s.Concurrent.Canonical() != s {
					continue
				}
				if r.Region == nil {
					continue
				}
				r.Region.ActivePreviewMileage += s.Length
				if sys.Level == model.LevelActive {
					r.Region.ActiveOnlyMileage += s.Length
				}
			}
		}
	}
}
