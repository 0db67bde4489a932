package pipeline

import (
	"log"
	"path/filepath"

	"github.com/andrescamacho/tm-siteupdate/internal/domain/concurrency"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/datacheck"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/errs"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/model"
)

// detectConcurrencies is stage 4 (spec.md §4.3).
func detectConcurrencies(w *worldModel, logger *log.Logger) {
	logger.Printf("stage 4: detecting concurrencies")
	concurrency.DetectAll(w.systems)
}

// verifyRouteIntegrity is stage 5: build label hashes for O(1) lookup,
// then run connected-route endpoint verification, logging every
// flipped route (spec.md §4.8 stage 5, §4.3).
func verifyRouteIntegrity(cfg *Config, w *worldModel, dc *datacheck.List, el *errs.List, logger *log.Logger) {
	logger.Printf("stage 5: verifying route integrity")
	for _, sys := range w.systems {
		for _, r := range sys.Routes {
			r.BuildLabelHashes()
		}
	}

	var allConnected []*model.ConnectedRoute
	for _, sys := range w.systems {
		allConnected = append(allConnected, sys.ConnectedRoutes...)
	}
	concurrency.VerifyConnectedRoutes(allConnected, dc)

	if err := concurrency.WriteFlippedRoutesLog(filepath.Join(cfg.LogDir, "flippedroutes.log"), w.systems); err != nil {
		el.Add(err)
	}
}
