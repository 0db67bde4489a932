package pipeline

import (
	"log"
	"path/filepath"

	"github.com/andrescamacho/tm-siteupdate/internal/domain/clinch"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/errs"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/model"
)

// augmentClinches is stage 8 (spec.md §4.7, §4.8 stage 8).
func augmentClinches(cfg *Config, travelers []*model.TravelerList, el *errs.List, logger *log.Logger) {
	logger.Printf("stage 8: clinch-augmenting %d travelers", len(travelers))
	lines := clinch.Augment(travelers)
	writeLines(filepath.Join(cfg.LogDir, "concurrencies.log"), lines, el)
}
