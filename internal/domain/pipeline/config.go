// Package pipeline implements the PipelineDriver of spec.md §4.8: the
// thirteen ordered, barrier-separated stages that carry raw highway
// manifests and traveler lists through to a validated model, a family
// of TMG graph files, stats/diagnostic logs, and (out of core) a SQL
// dump.
package pipeline

import "github.com/andrescamacho/tm-siteupdate/internal/adapters/wptio"

// Threads gives the global worker count plus the eight per-stage
// overrides named in Arguments.cpp. A zero override falls back to
// Default. Mirrors config.ThreadsConfig without importing the
// infrastructure layer from domain code; the cli package's
// toPipelineConfig copies the loaded config.ThreadsConfig into one of
// these.
type Threads struct {
	Default int

	ReadWpt   int
	NmpSearch int
	NmpMerged int
	ReadList  int
	ConcAug   int
	CompStats int
	UserLog   int
	Graph     int
}

// ForStage resolves the effective worker count for one override,
// falling back to Default when unset or non-positive.
func (t Threads) ForStage(override int) int {
	n := override
	if n <= 0 {
		n = t.Default
	}
	if n <= 0 {
		n = 1
	}
	return n
}

// Config is the Driver's full set of inputs (spec.md §6's command-line
// surface).
type Config struct {
	HighwayDataDir string
	SystemsFile    string
	UserListDir    string
	OutputDir      string
	GraphDir       string
	LogDir         string
	CSVStatDir     string
	NMPMergeDir    string

	Threads Threads

	SkipGraphs bool
	ErrorCheck bool
	UserList   []string

	SplitRegionPath string
	SplitRegionCode string
}

// NearMissTolerance is the bounding-box tolerance, in degrees, used
// for near-miss-point detection (spec.md §4.1, §9), re-exported here
// so callers need not import wptio just to reference it.
const NearMissTolerance = wptio.NearMissTolerance
