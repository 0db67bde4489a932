package pipeline

import (
	"log"
	"os"
	"path/filepath"

	"github.com/andrescamacho/tm-siteupdate/internal/domain/datacheck"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/errs"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/graph"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/model"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/namer"
)

// buildGraph is stage 10: the one serial pass that names every vertex
// and builds the simple/collapsed HighwayGraph (spec.md §4.6, §4.8
// stage 10 — serial because vertex naming must see every colocation
// ring in a fixed order to stay deterministic).
func buildGraph(w *worldModel, dc *datacheck.List, logger *log.Logger) (*graph.HighwayGraph, *namer.Namer) {
	logger.Printf("stage 10: building highway graph")
	n := namer.New()
	g := graph.Build(w.systems, n, dc)
	return g, n
}

func regionSlice(m map[string]*model.Region) []*model.Region {
	out := make([]*model.Region, 0, len(m))
	for _, r := range m {
		out = append(out, r)
	}
	return out
}

func systemSlice(m map[string]*model.HighwaySystem) []*model.HighwaySystem {
	out := make([]*model.HighwaySystem, 0, len(m))
	for _, s := range m {
		out = append(out, s)
	}
	return out
}

// emitGraph is stage 11: one worker per GraphListEntry, each computing
// its matching vertex/edge set and writing a .tmg file (spec.md §4.8
// stage 11). Skipped entirely when SkipGraphs is set (-k/--skipgraphs).
func emitGraph(cfg *Config, g *graph.HighwayGraph, entries []*model.GraphListEntry, el *errs.List, logger *log.Logger) {
	if cfg.SkipGraphs {
		logger.Printf("stage 11: skipping graph emission (--skipgraphs)")
		return
	}
	logger.Printf("stage 11: emitting %d graphs", len(entries))

	workers := cfg.Threads.ForStage(cfg.Threads.Graph)
	runStage(workers, entries, func(e *model.GraphListEntry) {
		regions := regionSlice(e.Regions)
		systems := systemSlice(e.Systems)

		vs := graph.MatchingVertices(g, regions, systems, e.PlaceRadius, e.Format == model.FormatCollapsed)
		e.Vertices = len(vs)

		var content string
		if e.Format == model.FormatCollapsed {
			es := graph.MatchingCollapsedEdges(vs, g, regions, systems)
			e.Edges = len(es)
			content = graph.WriteCollapsedTMG(vs, es)
		} else {
			es := graph.MatchingSimpleEdges(vs, g, regions, systems)
			e.Edges = len(es)
			content = graph.WriteSimpleTMG(vs, es)
		}

		path := filepath.Join(cfg.GraphDir, e.Filename())
		if err := os.MkdirAll(cfg.GraphDir, 0o755); err != nil {
			el.Addf("create graph dir %s: %v", cfg.GraphDir, err)
			return
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			el.Addf("write %s: %v", path, err)
		}
	})
}
