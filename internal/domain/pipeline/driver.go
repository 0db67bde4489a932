// Package pipeline implements the PipelineDriver of spec.md §4.8: the
// thirteen ordered stages that turn highway-data and user-list input
// into a validated graph model, SQL dump, stats, graphs and
// diagnostics, with per-stage worker pools sized from Threads and
// barriers between stages that depend on a prior stage's full output.
package pipeline

import (
	"fmt"
	"io"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andrescamacho/tm-siteupdate/internal/adapters/listio"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/datacheck"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/errs"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/model"
)

// Result summarizes one completed (or aborted) run: the exit-code
// contract of spec.md §6 is "errors.Empty() after Run returns".
type Result struct {
	Errors    []error
	Datacheck []string
	Travelers int
	Systems   int
	Regions   int
}

// Driver runs the full site-update pipeline once.
type Driver struct {
	Config Config
	DB     *gorm.DB // nil skips stage 13 entirely
	Logger *log.Logger

	// RunID stamps the stats and datacheck log headers, so two runs
	// against the same output directory can be told apart.
	RunID string
}

// New builds a Driver whose progress logger writes to w only; a caller
// wanting a second destination passes a combined writer as w.
func New(cfg Config, db *gorm.DB, w io.Writer) *Driver {
	return &Driver{
		Config: cfg,
		DB:     db,
		Logger: log.New(w, "", log.LstdFlags),
		RunID:  uuid.New().String(),
	}
}

// Run executes all thirteen stages in order, honoring the barriers
// spec.md §4.8 requires between a stage and whatever reads its full
// output (quadtree sort before near-miss scan, concurrency detection
// before endpoint verification, list reads before clinch augment,
// graph build before subgraph emission). Per-item failures inside a
// stage never abort it (spec.md §4.8): they land in el or dc and Run
// simply reports everything it has once every stage completes.
func (d *Driver) Run() (*Result, error) {
	cfg := &d.Config
	el := errs.NewList()
	dc := datacheck.NewList()
	logger := d.Logger
	logger.Printf("run %s: starting", d.RunID)

	// Stage 1: ingest manifests, systems, routes and wpt files.
	w := ingest(cfg, el, dc, logger)

	// Stage 2: sort the quadtree, scan for near-miss points.
	sortAndScanNearMiss(cfg, w, el, logger)

	// Stage 3: optional NMP-merged wpt emission.
	emitNMPMerged(cfg, w, el, logger)

	// Stage 4: detect concurrencies.
	detectConcurrencies(w, logger)

	// Stage 5: verify route/connected-route integrity.
	verifyRouteIntegrity(cfg, w, dc, el, logger)

	// Stage 6: read traveler list files.
	routeIndex := listio.NewRouteIndex(w.systems)
	travelers := readTravelerLists(cfg, routeIndex, el, logger)

	// Stage 7: sort and index travelers.
	sortAndIndexTravelers(travelers, logger)

	// Stage 8: augment clinches from concurrencies.
	augmentClinches(cfg, travelers, el, logger)

	// Stage 9: compute mileage stats, then per-traveler user logs.
	computeStats(cfg, w, d.RunID, el, logger)
	emitUserLogs(cfg, w, travelers, el, logger)

	// Stage 10: build the highway graph (serial: vertex naming order
	// must be deterministic across the whole run).
	g, _ := buildGraph(w, dc, logger)

	// Stages 11 and 13 run concurrently: subgraph/TMG emission reads
	// only the immutable graph and entry descriptors; SQL dump reads
	// only the immutable world model, travelers and datacheck list.
	// Stage 12 (FP reconciliation) must finish before either reads
	// dc.NonFalsePositives(), so it runs first.
	reconcileDatacheck(cfg, dc, d.RunID, el, logger)

	entries := buildSubgraphEntries(cfg, w, el)
	done := make(chan struct{})
	go func() {
		defer close(done)
		dumpSQL(d.DB, w, travelers, dc, el, logger)
	}()
	emitGraph(cfg, g, entries, el, logger)
	<-done

	result := &Result{
		Errors:    el.Errors(),
		Travelers: len(travelers),
		Systems:   len(w.systems),
		Regions:   len(w.regions),
	}
	for _, e := range dc.NonFalsePositives() {
		result.Datacheck = append(result.Datacheck, e.String())
	}

	if !el.Empty() {
		return result, fmt.Errorf("site update finished with %d error(s), see logs", len(result.Errors))
	}
	return result, nil
}
