package pipeline

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/andrescamacho/tm-siteupdate/internal/domain/datacheck"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/errs"
)

// readFPEntries parses HighwayDataDir/datacheckfps.csv, the curated
// false-positive allow-list (siteupdate.cpp: Datacheck::read_fps). A
// missing file is not an error: no FP entries to reconcile.
func readFPEntries(cfg *Config, el *errs.List) []datacheck.FPEntry {
	path := filepath.Join(cfg.HighwayDataDir, "datacheckfps.csv")
	f, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			el.Addf("open %s: %v", path, err)
		}
		return nil
	}
	defer f.Close()

	var out []datacheck.FPEntry
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
		fp, ok := datacheck.ParseFPEntry(line)
		if !ok {
			el.Addf("could not parse datacheckfps.csv line: %s", line)
			continue
		}
		out = append(out, fp)
	}
	return out
}

// reconcileDatacheck is stage 12: reconcile collected datacheck
// entries against the curated FP allow-list, then emit datacheck.log,
// nearmatchfps.log and unmatchedfps.log (spec.md §4.5, §4.8 stage 12,
// §6).
func reconcileDatacheck(cfg *Config, dc *datacheck.List, runID string, el *errs.List, logger *log.Logger) {
	logger.Printf("stage 12: reconciling datacheck false positives")

	fps := readFPEntries(cfg, el)
	result := dc.Reconcile(fps)
	for _, w := range result.Warnings {
		el.Addf("%s", w)
	}

	var unmatchedLines []string
	for _, u := range result.Unmatched {
		unmatchedLines = append(unmatchedLines,
			strings.Join([]string{u.Route, u.Label1, u.Label2, u.Label3, u.Code, u.Info}, ";"))
	}
	writeLines(filepath.Join(cfg.LogDir, "unmatchedfps.log"), unmatchedLines, el)
	writeLines(filepath.Join(cfg.LogDir, "nearmatchfps.log"), result.NearMatches, el)

	dcLines := []string{fmt.Sprintf("run: %s", runID)}
	for _, e := range dc.NonFalsePositives() {
		dcLines = append(dcLines, e.String())
	}
	writeLines(filepath.Join(cfg.LogDir, "datacheck.log"), dcLines, el)
}
