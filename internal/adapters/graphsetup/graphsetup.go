// Package graphsetup builds the GraphListEntry population of
// SPEC_FULL.md §4 item 4: the master graph plus every subgraph group
// (continent, country, system, region, multi-system, multi-region,
// area/place-radius, fully custom), grounded on the reference's
// tasks/graph_setup.cpp and tasks/subgraphs/*.cpp dispatch.
package graphsetup

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/andrescamacho/tm-siteupdate/internal/domain/errs"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/model"
)

// readManifestCSVLines opens path and yields every non-empty,
// semicolon-delimited data line after skipping the header, matching
// the reference's "getline header then loop" idiom (tasks/subgraphs/
// multiregion.cpp).
func readManifestCSVLines(path string, el *errs.List) [][]string {
	f, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			el.Addf("open %s: %v", path, err)
		}
		return nil
	}
	defer f.Close()

	var out [][]string
	sc := bufio.NewScanner(f)
	first := true
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if first {
			first = false
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, strings.Split(line, ";"))
	}
	return out
}

// MasterGroup is the all-routes "tm-master" graph (graph_setup.cpp).
func MasterGroup() *model.GraphListEntry {
	return model.NewGraphListEntry("tm-master", "All Travel Mapping Data", 'M', model.FormatCollapsed, nil, nil, nil)
}
