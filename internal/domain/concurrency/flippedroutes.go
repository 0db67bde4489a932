package concurrency

import (
	"fmt"
	"os"
	"sort"

	"github.com/andrescamacho/tm-siteupdate/internal/domain/model"
)

// WriteFlippedRoutesLog writes flippedroutes.log: one line per Route
// whose Reversed flag was set during VerifyConnectedRoutes, sorted by
// root for reproducibility (spec.md §5, SPEC_FULL §4 item 3).
func WriteFlippedRoutesLog(path string, systems []*model.HighwaySystem) error {
	var roots []string
	for _, sys := range systems {
		for _, r := range sys.Routes {
			if r.Reversed {
				roots = append(roots, r.Root)
			}
		}
	}
	sort.Strings(roots)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create flipped-routes log %s: %w", path, err)
	}
	defer f.Close()

	for _, root := range roots {
		fmt.Fprintln(f, root)
	}
	return nil
}
