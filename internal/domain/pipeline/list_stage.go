package pipeline

import (
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/andrescamacho/tm-siteupdate/internal/adapters/listio"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/errs"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/model"
)

// discoverTravelerFiles resolves which .list files stage 6 reads: the
// explicit `-U/--userlist` names when given, otherwise every *.list
// file directly under UserListDir (Arguments.cpp: an empty userlist
// means "process everybody").
func discoverTravelerFiles(cfg *Config, el *errs.List) []string {
	if len(cfg.UserList) > 0 {
		out := make([]string, 0, len(cfg.UserList))
		for _, name := range cfg.UserList {
			out = append(out, filepath.Join(cfg.UserListDir, name+".list"))
		}
		return out
	}

	entries, err := os.ReadDir(cfg.UserListDir)
	if err != nil {
		el.Addf("could not read user list directory %s: %v", cfg.UserListDir, err)
		return nil
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".list") {
			continue
		}
		out = append(out, filepath.Join(cfg.UserListDir, e.Name()))
	}
	sort.Strings(out)
	return out
}

// readTravelerLists is stage 6: one worker per traveler file (spec.md
// §4.8 stage 6, §7: a missing/unreadable file is an ErrorList entry
// and that traveler is skipped).
func readTravelerLists(cfg *Config, routes listio.RouteIndex, el *errs.List, logger *log.Logger) []*model.TravelerList {
	paths := discoverTravelerFiles(cfg, el)
	logger.Printf("stage 6: reading %d traveler list files", len(paths))

	travelers := make([]*model.TravelerList, len(paths))
	workers := cfg.Threads.ForStage(cfg.Threads.ReadList)
	runStage(workers, indices(len(paths)), func(i int) {
		path := paths[i]
		name := strings.TrimSuffix(filepath.Base(path), ".list")
		t := model.NewTravelerList(name)
		if err := listio.ReadTravelerList(path, t, routes, el); err != nil {
			el.Add(err)
			return
		}
		travelers[i] = t
	})

	out := make([]*model.TravelerList, 0, len(travelers))
	for _, t := range travelers {
		if t != nil {
			out = append(out, t)
		}
	}
	return out
}

func indices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// sortAndIndexTravelers is stage 7: a global sort by name, then index
// assignment (spec.md §4.8 stage 7, §3).
func sortAndIndexTravelers(travelers []*model.TravelerList, logger *log.Logger) {
	logger.Printf("stage 7: sorting %d travelers", len(travelers))
	sort.Slice(travelers, func(i, j int) bool { return travelers[i].Name < travelers[j].Name })
	for i, t := range travelers {
		t.Index = i
	}
}
