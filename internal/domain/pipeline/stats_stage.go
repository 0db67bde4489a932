package pipeline

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/andrescamacho/tm-siteupdate/internal/domain/errs"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/model"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/stats"
)

// computeStats is stage 9: per-region and per-system mileage
// aggregation (spec.md §4.8 stage 9), then the CSV stats spec.md §6
// names (allbyregionactiveonly.csv, allbyregionactivepreview.csv, one
// per-system stats csv) plus a highwaydatastats.log summary line.
// Under --errorcheck the aggregation still runs but none of these
// files are written (spec.md §6).
func computeStats(cfg *Config, w *worldModel, runID string, el *errs.List, logger *log.Logger) {
	logger.Printf("stage 9: computing mileage statistics")
	stats.Aggregate(w.systems)

	if cfg.ErrorCheck {
		return
	}

	writeRegionCSV(filepath.Join(cfg.CSVStatDir, "allbyregionactiveonly.csv"), w.regions, el, func(r *model.Region) float64 { return r.ActiveOnlyMileage })
	writeRegionCSV(filepath.Join(cfg.CSVStatDir, "allbyregionactivepreview.csv"), w.regions, el, func(r *model.Region) float64 { return r.ActivePreviewMileage })

	for _, sys := range w.systems {
		writeSystemCSV(filepath.Join(cfg.CSVStatDir, sys.SystemName+".csv"), sys, el)
	}

	writeHighwayDataStatsLog(cfg, w, runID, el)
}

func sortedRegionCodes(regions []*model.Region) []*model.Region {
	out := append([]*model.Region{}, regions...)
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

func writeRegionCSV(path string, regions []*model.Region, el *errs.List, mileage func(*model.Region) float64) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		el.Addf("create csv stat dir for %s: %v", path, err)
		return
	}
	f, err := os.Create(path)
	if err != nil {
		el.Addf("create %s: %v", path, err)
		return
	}
	defer f.Close()

	fmt.Fprintln(f, "region;miles")
	for _, r := range sortedRegionCodes(regions) {
		fmt.Fprintf(f, "%s;%.2f\n", r.Code, mileage(r))
	}
}

func writeSystemCSV(path string, sys *model.HighwaySystem, el *errs.List) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		el.Addf("create csv stat dir for %s: %v", path, err)
		return
	}
	f, err := os.Create(path)
	if err != nil {
		el.Addf("create %s: %v", path, err)
		return
	}
	defer f.Close()

	codes := make([]string, 0, len(sys.RegionMileage))
	for code := range sys.RegionMileage {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	fmt.Fprintln(f, "region;miles")
	for _, code := range codes {
		fmt.Fprintf(f, "%s;%.2f\n", code, sys.RegionMileage[code])
	}
}

func writeHighwayDataStatsLog(cfg *Config, w *worldModel, runID string, el *errs.List) {
	var totalActive, totalActivePreview float64
	for _, r := range w.regions {
		totalActive += r.ActiveOnlyMileage
		totalActivePreview += r.ActivePreviewMileage
	}
	lines := []string{
		fmt.Sprintf("run: %s", runID),
		fmt.Sprintf("systems: %d", len(w.systems)),
		fmt.Sprintf("regions: %d", len(w.regions)),
		fmt.Sprintf("active miles: %.2f", totalActive),
		fmt.Sprintf("active+preview miles: %.2f", totalActivePreview),
	}
	writeLines(filepath.Join(cfg.LogDir, "highwaydatastats.log"), lines, el)
}

// totalMileages sums every region's active-only and active+preview
// mileage, the two grand totals userlog.WriteLog reports a traveler's
// fraction against.
func totalMileages(regions []*model.Region) (activeOnly, activePreview float64) {
	for _, r := range regions {
		activeOnly += r.ActiveOnlyMileage
		activePreview += r.ActivePreviewMileage
	}
	return
}
