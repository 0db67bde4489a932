package pipeline

import (
	"path/filepath"

	"github.com/andrescamacho/tm-siteupdate/internal/adapters/graphsetup"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/errs"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/model"
)

// graphManifestPath resolves one of the graphs/*.csv definition files
// multiregion.cpp et al. read from. The reference reads these from a
// separate Args::datapath never wired to a CLI flag in the retrieved
// source; we fold it into the graphs/ subdirectory of HighwayDataDir,
// matching how every other manifest file in this pipeline already
// resolves relative to HighwayDataDir.
func graphManifestPath(cfg *Config, name string) string {
	return filepath.Join(cfg.HighwayDataDir, "graphs", name)
}

func systemsByName(systems []*model.HighwaySystem) map[string]*model.HighwaySystem {
	out := make(map[string]*model.HighwaySystem, len(systems))
	for _, s := range systems {
		out[s.SystemName] = s
	}
	return out
}

// buildSubgraphEntries assembles every GraphListEntry the subgraph
// emission stage will process: the master graph plus one group per
// subgraph kind (spec.md §3, SPEC_FULL.md §4 item 4).
func buildSubgraphEntries(cfg *Config, w *worldModel, el *errs.List) []*model.GraphListEntry {
	entries := []*model.GraphListEntry{graphsetup.MasterGroup()}
	entries = append(entries, graphsetup.ContinentGroups(w.regions)...)
	entries = append(entries, graphsetup.CountryGroups(w.regions)...)
	entries = append(entries, graphsetup.RegionGroups(w.regions)...)
	entries = append(entries, graphsetup.SystemGroups(w.systems)...)
	entries = append(entries, graphsetup.MultiRegionGroups(graphManifestPath(cfg, "multiregion.csv"), w.regionByCode, el)...)
	entries = append(entries, graphsetup.MultiSystemGroups(graphManifestPath(cfg, "multisystem.csv"), systemsByName(w.systems), el)...)
	entries = append(entries, graphsetup.AreaGroups(graphManifestPath(cfg, "area.csv"), el)...)
	entries = append(entries, graphsetup.FullCustomGroups(graphManifestPath(cfg, "fullcustom.csv"), w.regionByCode, systemsByName(w.systems), el)...)
	return entries
}
