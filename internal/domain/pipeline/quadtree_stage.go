package pipeline

import (
	"log"
	"path/filepath"
	"sort"

	"github.com/andrescamacho/tm-siteupdate/internal/adapters/wptio"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/errs"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/model"
)

// sortAndScanNearMiss is stage 2: sort the quadtree's leaves for
// reproducible output, then scan for near-miss points (spec.md §4.8
// stage 2, §4.1).
func sortAndScanNearMiss(cfg *Config, w *worldModel, el *errs.List, logger *log.Logger) {
	logger.Printf("stage 2: sorting quadtree and scanning for near-miss points")
	w.quadtree.Sort()

	lines := wptio.ScanNearMiss(w.quadtree, NearMissTolerance)
	sort.Strings(lines)
	writeLines(filepath.Join(cfg.LogDir, "nearmisspoints.log"), lines, el)
}

// emitNMPMerged is stage 3: when NMPMergeDir is set, write one
// near-miss-merged .wpt file per route, one worker per system
// (SPEC_FULL §4 item 1).
func emitNMPMerged(cfg *Config, w *worldModel, el *errs.List, logger *log.Logger) {
	if cfg.NMPMergeDir == "" {
		return
	}
	workers := cfg.Threads.ForStage(cfg.Threads.NmpMerged)
	lim := wptio.NewLimiter(workers * 4)
	logger.Printf("stage 3: emitting NMP-merged wpt files to %s", cfg.NMPMergeDir)
	runStage(workers, w.systems, func(sys *model.HighwaySystem) {
		for _, r := range sys.Routes {
			dir := filepath.Join(cfg.NMPMergeDir, regionCodeOf(r), sys.SystemName)
			if err := wptio.WriteNMPMerged(dir, r, lim); err != nil {
				el.Add(err)
			}
		}
	})
}

func regionCodeOf(r *model.Route) string {
	if r.Region != nil {
		return r.Region.Code
	}
	return "error"
}
