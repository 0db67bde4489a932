package pipeline

import (
	"log"

	"gorm.io/gorm"

	"github.com/andrescamacho/tm-siteupdate/internal/adapters/sqlexport"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/datacheck"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/errs"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/model"
)

// dumpSQL is stage 13: migrate and bulk-load the completed run into
// db, started alongside graph emission (spec.md §4.8 stage 13, §6).
// A nil db (no database configured) skips this stage entirely.
func dumpSQL(db *gorm.DB, w *worldModel, travelers []*model.TravelerList, dc *datacheck.List, el *errs.List, logger *log.Logger) {
	if db == nil {
		return
	}
	logger.Printf("stage 13: dumping SQL")

	if err := sqlexport.AutoMigrate(db); err != nil {
		el.Addf("SQL migrate: %v", err)
		return
	}
	if err := sqlexport.Dump(db, w.regions, w.systems, travelers, dc); err != nil {
		el.Addf("SQL dump: %v", err)
	}
}
