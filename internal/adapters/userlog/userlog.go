// Package userlog implements the per-traveler log emission of
// SPEC_FULL.md §4's user-log item: one users/<traveler>.log file summarizing
// clinched mileage overall, by region, by system, and by (connected)
// route, grounded on the reference's userlog.cpp report structure.
package userlog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/andrescamacho/tm-siteupdate/internal/domain/model"
)

// formatClinchedMi renders "<clinched> of <total> mi (<pct>%)", the
// report's recurring fraction-of-total format.
func formatClinchedMi(clinched, total float64) string {
	pct := 0.0
	if total != 0 {
		pct = 100 * clinched / total
	}
	return fmt.Sprintf("%.2f of %.2f mi (%.1f%%)", clinched, total, pct)
}

func routeMileage(r *model.Route) float64 {
	var total float64
	for _, s := range r.Segments {
		total += s.Length
	}
	return total
}

func clinchedMileage(r *model.Route, t *model.TravelerList) float64 {
	var total float64
	for _, s := range r.Segments {
		if t.Clinched(s) {
			total += s.Length
		}
	}
	return total
}

func readableRoute(r *model.Route) string {
	if r.System == nil {
		return r.Root
	}
	return r.System.SystemName + " " + r.Root
}

func readableConnectedRoute(cr *model.ConnectedRoute) string {
	if cr.System == nil {
		return cr.Name
	}
	return cr.System.SystemName + " " + cr.Name
}

// WriteLog emits dir/<t.Name>.log, overall and per-region, per-system
// and per-(connected-)route mileage breakdowns for t, against the
// region/system totals already computed by the stats stage.
func WriteLog(dir string, t *model.TravelerList, systems []*model.HighwaySystem, totalActiveOnlyMiles, totalActivePreviewMiles float64) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create user-log dir %s: %w", dir, err)
	}
	path := filepath.Join(dir, t.Name+".log")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create user log %s: %w", path, err)
	}
	defer f.Close()

	var activeOnly, activePreview float64
	for _, m := range t.ActiveOnlyMileageByRegion {
		activeOnly += m
	}
	for _, m := range t.ActivePreviewMileageByRegion {
		activePreview += m
	}

	fmt.Fprintln(f, "Clinched Highway Statistics")
	fmt.Fprintf(f, "Overall in active systems: %s\n", formatClinchedMi(activeOnly, totalActiveOnlyMiles))
	fmt.Fprintf(f, "Overall in active+preview systems: %s\n", formatClinchedMi(activePreview, totalActivePreviewMiles))

	fmt.Fprintln(f, "Overall by region: (each line reports active only then active+preview)")
	regionCodes := make([]string, 0, len(t.ActivePreviewMileageByRegion))
	for code := range t.ActivePreviewMileageByRegion {
		regionCodes = append(regionCodes, code)
	}
	sort.Strings(regionCodes)

	regionTotals := regionTotalsByCode(systems)
	for _, code := range regionCodes {
		rt := regionTotals[code]
		fmt.Fprintf(f, "%s: %s, %s\n", code,
			formatClinchedMi(t.ActiveOnlyMileageByRegion[code], rt.activeOnly),
			formatClinchedMi(t.ActivePreviewMileageByRegion[code], rt.activePreview))
	}

	var activeSystems, previewSystems, activeTraveled, previewTraveled, activeClinched, previewClinched int

	for _, sys := range systems {
		if !sys.Level.ActiveOrPreview() {
			continue
		}
		if sys.Level == model.LevelActive {
			activeSystems++
		} else {
			previewSystems++
		}

		sysTotal := systemTotalMileage(sys)
		sysTraveled := t.SystemRegionMileages[sys.SystemName]
		var sysOverall float64
		for _, m := range sysTraveled {
			sysOverall += m
		}

		fmt.Fprintf(f, "System %s (%s) overall: %s\n", sys.SystemName, sys.Level, formatClinchedMi(sysOverall, sysTotal))
		if sysOverall > 0 {
			if sys.Level == model.LevelActive {
				activeTraveled++
			} else {
				previewTraveled++
			}
		}
		if sysOverall == sysTotal && sysTotal > 0 {
			if sys.Level == model.LevelActive {
				activeClinched++
			} else {
				previewClinched++
			}
		}

		if sysOverall > 0 && len(sys.RegionMileage) > 1 {
			fmt.Fprintf(f, "System %s by region:\n", sys.SystemName)
			codes := make([]string, 0, len(sys.RegionMileage))
			for code := range sys.RegionMileage {
				codes = append(codes, code)
			}
			sort.Strings(codes)
			for _, code := range codes {
				fmt.Fprintf(f, "  %s: %s\n", code, formatClinchedMi(sysTraveled[code], sys.RegionMileage[code]))
			}
		}

		if sysOverall > 0 {
			writeSystemRoutes(f, sys, t)
		}
	}

	fmt.Fprintf(f, "Traveled %d of %d (%s) active systems\n", activeTraveled, activeSystems, pct(activeTraveled, activeSystems))
	fmt.Fprintf(f, "Clinched %d of %d (%s) active systems\n", activeClinched, activeSystems, pct(activeClinched, activeSystems))
	fmt.Fprintf(f, "Traveled %d of %d (%s) preview systems\n", previewTraveled, previewSystems, pct(previewTraveled, previewSystems))
	fmt.Fprintf(f, "Clinched %d of %d (%s) preview systems\n", previewClinched, previewSystems, pct(previewClinched, previewSystems))

	return nil
}

func pct(n, d int) string {
	if d == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", 100*float64(n)/float64(d))
}

func writeSystemRoutes(f *os.File, sys *model.HighwaySystem, t *model.TravelerList) {
	fmt.Fprintf(f, "System %s by route (traveled routes only):\n", sys.SystemName)
	var clinchedCount int
	for _, cr := range sys.ConnectedRoutes {
		var conTotal, conClinched float64
		var lines []string
		for _, r := range cr.Roots {
			miles := clinchedMileage(r, t)
			if miles > 0 {
				lines = append(lines, fmt.Sprintf("  %s: %s", readableRoute(r), formatClinchedMi(miles, routeMileage(r))))
				conClinched += miles
			}
			conTotal += routeMileage(r)
		}
		if conClinched == 0 {
			continue
		}
		if conClinched == conTotal {
			clinchedCount++
		}
		fmt.Fprintf(f, "%s: %s\n", readableConnectedRoute(cr), formatClinchedMi(conClinched, conTotal))
		if len(cr.Roots) == 1 {
			fmt.Fprintf(f, " (%s only)\n", readableRoute(cr.Roots[0]))
		} else {
			for _, l := range lines {
				fmt.Fprintln(f, l)
			}
		}
	}
	fmt.Fprintf(f, "System %s connected routes clinched: %d of %d\n", sys.SystemName, clinchedCount, len(sys.ConnectedRoutes))
}

type regionTotal struct {
	activeOnly    float64
	activePreview float64
}

func regionTotalsByCode(systems []*model.HighwaySystem) map[string]regionTotal {
	out := make(map[string]regionTotal)
	seen := make(map[*model.Region]bool)
	for _, sys := range systems {
		for _, r := range sys.Routes {
			if r.Region == nil || seen[r.Region] {
				continue
			}
			seen[r.Region] = true
			out[r.Region.Code] = regionTotal{
				activeOnly:    r.Region.ActiveOnlyMileage,
				activePreview: r.Region.ActivePreviewMileage,
			}
		}
	}
	return out
}

func systemTotalMileage(sys *model.HighwaySystem) float64 {
	var total float64
	for _, m := range sys.RegionMileage {
		total += m
	}
	return total
}
