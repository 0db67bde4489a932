package config

// PathsConfig locates every input/output directory the pipeline
// touches (spec.md §6's command-line surface: data directories and
// output paths).
type PathsConfig struct {
	HighwayDataDir string `mapstructure:"highway_data_dir" validate:"required"`
	SystemsFile    string `mapstructure:"systems_file" validate:"required"`
	UserListDir    string `mapstructure:"user_list_dir" validate:"required"`
	OutputDir      string `mapstructure:"output_dir" validate:"required"`
	GraphDir       string `mapstructure:"graph_dir"`
	LogDir         string `mapstructure:"log_dir"`
	CSVStatDir     string `mapstructure:"csv_stat_dir"`

	// NMPMergeDir, when non-empty, enables near-miss-merged .wpt
	// emission (spec.md §6 `-n/--nmpmergepath`; SPEC_FULL §4 item 1).
	NMPMergeDir string `mapstructure:"nmp_merge_dir"`
}

// ThreadsConfig gives the global worker count plus the eight per-stage
// overrides named in Arguments.cpp (`--ReadWptThreads`,
// `--NmpSearchThreads`, `--NmpMergedThreads`, `--ReadListThreads`,
// `--ConcAugThreads`, `--CompStatsThreads`, `--UserLogThreads`,
// `--GraphThreads`). A zero override falls back to Default.
type ThreadsConfig struct {
	Default int `mapstructure:"default" validate:"min=1"`

	ReadWpt    int `mapstructure:"read_wpt"`
	NmpSearch  int `mapstructure:"nmp_search"`
	NmpMerged  int `mapstructure:"nmp_merged"`
	ReadList   int `mapstructure:"read_list"`
	ConcAug    int `mapstructure:"conc_aug"`
	CompStats  int `mapstructure:"comp_stats"`
	UserLog    int `mapstructure:"user_log"`
	Graph      int `mapstructure:"graph"`
}

// ForStage resolves the effective worker count for one named stage,
// falling back to Default when no override is set.
func (t ThreadsConfig) ForStage(override int) int {
	if override > 0 {
		return override
	}
	return t.Default
}

// RunConfig carries the pipeline's non-path, non-thread run-mode
// flags (spec.md §6).
type RunConfig struct {
	SkipGraphs bool     `mapstructure:"skip_graphs"`
	ErrorCheck bool     `mapstructure:"error_check"`
	UserList   []string `mapstructure:"user_list"`

	// SplitRegionPath and SplitRegionCode hold `--splitregionpath` and
	// `-p/--splitregion` (spec.md §6). They are copied into
	// pipeline.Config; no pipeline stage reads them, so region lookup
	// is the manifest's ordinary one whether or not they are set.
	SplitRegionPath string `mapstructure:"split_region_path"`
	SplitRegionCode string `mapstructure:"split_region_code"`
}
