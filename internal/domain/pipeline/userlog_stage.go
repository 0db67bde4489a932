package pipeline

import (
	"log"
	"path/filepath"

	"github.com/andrescamacho/tm-siteupdate/internal/adapters/userlog"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/errs"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/model"
)

// emitUserLogs writes one users/<name>.log per traveler, one worker
// per traveler (spec.md §4.8 stage 9's user-log half, SPEC_FULL.md §4's
// user-log item). Skipped under --errorcheck along with the rest of stats.
func emitUserLogs(cfg *Config, w *worldModel, travelers []*model.TravelerList, el *errs.List, logger *log.Logger) {
	if cfg.ErrorCheck {
		return
	}
	logger.Printf("stage 9: writing %d user logs", len(travelers))

	activeOnly, activePreview := totalMileages(w.regions)
	dir := filepath.Join(cfg.LogDir, "users")
	workers := cfg.Threads.ForStage(cfg.Threads.UserLog)
	runStage(workers, travelers, func(t *model.TravelerList) {
		if err := userlog.WriteLog(dir, t, w.systems, activeOnly, activePreview); err != nil {
			el.Add(err)
		}
	})
}
