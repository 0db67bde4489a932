package pipeline

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/andrescamacho/tm-siteupdate/internal/adapters/manifest"
	"github.com/andrescamacho/tm-siteupdate/internal/adapters/wptio"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/datacheck"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/errs"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/model"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/quadtree"
)

// worldModel holds everything ingest produces, carried through the
// remaining stages (spec.md §3's ownership DAG, reimplemented as an
// explicitly-passed context object per spec.md §9's Open Question
// resolution, rather than as process-wide singletons).
type worldModel struct {
	continents []*model.Continent
	countries  []*model.Country
	regions    []*model.Region
	regionByCode map[string]*model.Region
	systems    []*model.HighwaySystem
	quadtree   *quadtree.Quadtree
}

func openOrError(path string, el *errs.List) (*os.File, bool) {
	f, err := os.Open(path)
	if err != nil {
		el.Addf("could not open %s: %v", path, err)
		return nil, false
	}
	return f, true
}

// loadManifests reads continents.csv, countries.csv, regions.csv and
// the systems file, all directly under HighwayDataDir (spec.md §6
// groups them together as the top-level manifest set).
func loadManifests(cfg *Config, el *errs.List) (continents []*model.Continent, countries []*model.Country, regions []*model.Region, systems []*model.HighwaySystem) {
	if f, ok := openOrError(filepath.Join(cfg.HighwayDataDir, "continents.csv"), el); ok {
		continents = manifest.ParseContinents(f, el)
		f.Close()
	}
	if f, ok := openOrError(filepath.Join(cfg.HighwayDataDir, "countries.csv"), el); ok {
		countries = manifest.ParseCountries(f, el)
		f.Close()
	}
	if f, ok := openOrError(filepath.Join(cfg.HighwayDataDir, "regions.csv"), el); ok {
		regions = manifest.ParseRegions(f, countries, continents, el)
		f.Close()
	}
	systemsFile := cfg.SystemsFile
	if f, ok := openOrError(filepath.Join(cfg.HighwayDataDir, systemsFile), el); ok {
		systems = manifest.ParseSystems(f, countries, el)
		f.Close()
	}
	return
}

// loadSystemRoutes reads <systemname>.csv and <systemname>_con.csv for
// one system, building its Routes and ConnectedRoutes.
func loadSystemRoutes(cfg *Config, sys *model.HighwaySystem, regionByCode map[string]*model.Region, el *errs.List) {
	routesPath := filepath.Join(cfg.HighwayDataDir, sys.SystemName+".csv")
	if f, ok := openOrError(routesPath, el); ok {
		entries := manifest.ParseSystemRoutes(f, sys.SystemName, el)
		f.Close()
		manifest.BuildRoutes(sys, entries, regionByCode, el)
	}

	conPath := filepath.Join(cfg.HighwayDataDir, sys.SystemName+"_con.csv")
	if f, err := os.Open(conPath); err == nil {
		entries := manifest.ParseConnectedRoutes(f, sys.SystemName, el)
		f.Close()
		manifest.BuildConnectedRoutes(sys, entries, el)
	}
	// A missing _con.csv is not itself an error: not every system
	// groups its routes into connected routes.
}

// wptPath is the fixed hwy_data layout of spec.md §6:
// hwy_data/<region>/<system>/<root>.wpt.
func wptPath(cfg *Config, r *model.Route) string {
	region := "error"
	if r.Region != nil {
		region = r.Region.Code
	}
	system := ""
	if r.System != nil {
		system = r.System.SystemName
	}
	return filepath.Join(cfg.HighwayDataDir, "hwy_data", region, system, r.Root+".wpt")
}

// readWptFiles is stage 1: one worker per HighwaySystem, reading every
// route's .wpt file into qt and building its segment array (spec.md
// §4.8 stage 1, §4.2).
func readWptFiles(cfg *Config, systems []*model.HighwaySystem, qt *quadtree.Quadtree, dc *datacheck.List, el *errs.List) {
	workers := cfg.Threads.ForStage(cfg.Threads.ReadWpt)
	lim := wptio.NewLimiter(workers * 4)
	runStage(workers, systems, func(sys *model.HighwaySystem) {
		for _, r := range sys.Routes {
			if err := lim.Wait(context.Background()); err != nil {
				el.Add(err)
				continue
			}
			path := wptPath(cfg, r)
			if err := wptio.ReadRoute(path, r, qt, dc); err != nil {
				el.Add(fmt.Errorf("route %s: %w", r.Root, err))
				continue
			}
			wptio.BuildSegments(r)
		}
	})
}

// unprocessedWpts walks HighwayDataDir/hwy_data and reports every .wpt
// file whose path was not consumed by readWptFiles (spec.md §6's
// unprocessedwpts.log).
func unprocessedWpts(cfg *Config, systems []*model.HighwaySystem) []string {
	processed := make(map[string]bool)
	for _, sys := range systems {
		for _, r := range sys.Routes {
			abs, err := filepath.Abs(wptPath(cfg, r))
			if err == nil {
				processed[abs] = true
			}
		}
	}

	root := filepath.Join(cfg.HighwayDataDir, "hwy_data")
	var unprocessed []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(path) != ".wpt" {
			return nil
		}
		abs, aerr := filepath.Abs(path)
		if aerr != nil {
			return nil
		}
		if !processed[abs] {
			unprocessed = append(unprocessed, path)
		}
		return nil
	})
	sort.Strings(unprocessed)
	return unprocessed
}

func ingest(cfg *Config, el *errs.List, dc *datacheck.List, logger *log.Logger) *worldModel {
	continents, countries, regions, systems := loadManifests(cfg, el)
	regionByCode := manifest.RegionIndex(regions)

	for _, sys := range systems {
		loadSystemRoutes(cfg, sys, regionByCode, el)
	}

	qt := quadtree.New()
	logger.Printf("stage 1: reading wpt files for %d systems", len(systems))
	readWptFiles(cfg, systems, qt, dc, el)

	if unprocessed := unprocessedWpts(cfg, systems); len(unprocessed) > 0 {
		writeLines(filepath.Join(cfg.LogDir, "unprocessedwpts.log"), unprocessed, el)
		logger.Printf("%d .wpt files not processed, see unprocessedwpts.log", len(unprocessed))
	}

	return &worldModel{
		continents:   continents,
		countries:    countries,
		regions:      regions,
		regionByCode: regionByCode,
		systems:      systems,
		quadtree:     qt,
	}
}
