package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/andrescamacho/tm-siteupdate/internal/domain/errs"
)

// writeLines writes one line per entry to path, creating parent
// directories as needed. Failures become ErrorList entries (spec.md
// §7: "an I/O failure during output-file creation is an ErrorList
// entry").
func writeLines(path string, lines []string, el *errs.List) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		el.Addf("create output dir for %s: %v", path, err)
		return
	}
	f, err := os.Create(path)
	if err != nil {
		el.Addf("create %s: %v", path, err)
		return
	}
	defer f.Close()
	for _, line := range lines {
		fmt.Fprintln(f, line)
	}
}
