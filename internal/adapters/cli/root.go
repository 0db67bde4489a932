// Package cli implements the command-line surface of spec.md §6: a
// siteupdate root command with run and validate subcommands sharing
// the full flag set Arguments.cpp exposes (data/output paths,
// per-stage thread overrides, userlist filtering, skip-graphs and
// error-check modes) as persistent flags, layered on top of
// the config package's file/env configuration.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/tm-siteupdate/internal/infrastructure/config"
)

var (
	cfgFile string

	highwayDataDir string
	systemsFile    string
	userListDir    string
	databaseName   string
	logFilePath    string
	csvStatPath    string
	graphFilePath  string
	skipGraphs     bool
	nmpMergePath   string
	splitRegionPath string
	splitRegion     string
	userList        []string
	numThreads      int
	errorCheck      bool

	readWptThreads   int
	nmpSearchThreads int
	nmpMergedThreads int
	readListThreads  int
	concAugThreads   int
	compStatsThreads int
	userLogThreads   int
	graphThreads     int
)

// NewRootCommand builds the siteupdate command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "siteupdate",
		Short: "Build SQL, stats, graphs and log files for the Travel Mapping project",
		Long: `siteupdate reads highway-definition files and per-user traveled-segment
lists, builds a validated in-memory graph model, and emits a SQL dump,
stats logs, TMG graph files, and data-quality diagnostics. Run one of
its subcommands: "run" for the full pipeline, "validate" for the
pipeline in error-check mode.`,
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "", "", "path to a config.yaml file")

	flags.StringVarP(&highwayDataDir, "highwaydatapath", "w", "", "path to the root of the highway data directory structure")
	flags.StringVarP(&systemsFile, "systemsfile", "s", "", "file of highway systems to include")
	flags.StringVarP(&userListDir, "userlistfilepath", "u", "", "path to the user list file data")
	flags.StringVarP(&databaseName, "databasename", "d", "", "database name for the .sql dump")
	flags.StringVarP(&logFilePath, "logfilepath", "l", "", "path to write log files, which should have a \"users\" subdirectory")
	flags.StringVarP(&csvStatPath, "csvstatfilepath", "c", "", "path to write csv statistics files")
	flags.StringVarP(&graphFilePath, "graphfilepath", "g", "", "path to write graph format data files")
	flags.BoolVarP(&skipGraphs, "skipgraphs", "k", false, "turn off generation of graph files")
	flags.StringVarP(&nmpMergePath, "nmpmergepath", "n", "", "path to write near-miss-point-merged wpt files")
	flags.StringVarP(&splitRegionPath, "splitregionpath", "", "", "splitregion path prefix (stored in the run config; no pipeline stage reads it)")
	flags.StringVarP(&splitRegion, "splitregion", "p", "", "splitregion region code (stored in the run config; no pipeline stage reads it)")
	flags.StringSliceVarP(&userList, "userlist", "U", nil, "specific traveler names to process (default: everyone)")
	flags.IntVarP(&numThreads, "numthreads", "t", 0, "default worker count for every stage")
	flags.BoolVarP(&errorCheck, "errorcheck", "e", false, "skip SQL emission and stats/user-log output")

	flags.IntVar(&readWptThreads, "ReadWptThreads", 0, "worker count override for the wpt-reading stage")
	flags.IntVar(&nmpSearchThreads, "NmpSearchThreads", 0, "worker count override for the near-miss-scan stage")
	flags.IntVar(&nmpMergedThreads, "NmpMergedThreads", 0, "worker count override for NMP-merged emission")
	flags.IntVar(&readListThreads, "ReadListThreads", 0, "worker count override for traveler-list reading")
	flags.IntVar(&concAugThreads, "ConcAugThreads", 0, "worker count override for concurrency detection")
	flags.IntVar(&compStatsThreads, "CompStatsThreads", 0, "worker count override for stats computation")
	flags.IntVar(&userLogThreads, "UserLogThreads", 0, "worker count override for user-log emission")
	flags.IntVar(&graphThreads, "GraphThreads", 0, "worker count override for graph emission")

	root.AddCommand(newRunCommand(), newValidateCommand())

	return root
}

// newRunCommand builds the "run" subcommand: the full pipeline
// (spec.md §6, §4.8).
func newRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Execute the full site-update pipeline",
		Long: `run executes every pipeline stage: ingest, concurrency and
connected-route verification, the datacheck pass, graph construction,
SQL dump, stats, and user-log emission.`,
		SilenceUsage: true,
		RunE:         runSiteupdate,
	}
}

// newValidateCommand builds the "validate" subcommand: the pipeline in
// error-check mode, for CI use (SPEC_FULL.md §2.2). Equivalent to
// run --errorcheck.
func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Run the pipeline in error-check mode, for CI use",
		Long: `validate runs every pipeline stage as run does, with --errorcheck
forced on: no SQL dump, stats files or user logs are written. Graph
files are still written unless --skipgraphs is given.`,
		SilenceUsage: true,
		RunE:         runValidate,
	}
}

// Execute runs the siteupdate command, exiting 1 on any fatal error
// (spec.md §6's exit-code contract).
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig layers explicitly-set CLI flags over the file/env config
// (spec.md §6: the CLI surface is the driver, config.yaml supplies
// defaults for anything not passed on the command line).
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed

	if changed("highwaydatapath") {
		cfg.Paths.HighwayDataDir = highwayDataDir
	}
	if changed("systemsfile") {
		cfg.Paths.SystemsFile = systemsFile
	}
	if changed("userlistfilepath") {
		cfg.Paths.UserListDir = userListDir
	}
	if changed("databasename") {
		cfg.Database.Name = databaseName
	}
	if changed("logfilepath") {
		cfg.Paths.LogDir = logFilePath
	}
	if changed("csvstatfilepath") {
		cfg.Paths.CSVStatDir = csvStatPath
	}
	if changed("graphfilepath") {
		cfg.Paths.GraphDir = graphFilePath
	}
	if changed("skipgraphs") {
		cfg.Run.SkipGraphs = skipGraphs
	}
	if changed("nmpmergepath") {
		cfg.Paths.NMPMergeDir = nmpMergePath
	}
	if changed("splitregionpath") {
		cfg.Run.SplitRegionPath = splitRegionPath
	}
	if changed("splitregion") {
		cfg.Run.SplitRegionCode = splitRegion
	}
	if changed("userlist") {
		cfg.Run.UserList = userList
	}
	if changed("numthreads") {
		cfg.Threads.Default = numThreads
	}
	if changed("errorcheck") {
		cfg.Run.ErrorCheck = errorCheck
	}

	if changed("ReadWptThreads") {
		cfg.Threads.ReadWpt = readWptThreads
	}
	if changed("NmpSearchThreads") {
		cfg.Threads.NmpSearch = nmpSearchThreads
	}
	if changed("NmpMergedThreads") {
		cfg.Threads.NmpMerged = nmpMergedThreads
	}
	if changed("ReadListThreads") {
		cfg.Threads.ReadList = readListThreads
	}
	if changed("ConcAugThreads") {
		cfg.Threads.ConcAug = concAugThreads
	}
	if changed("CompStatsThreads") {
		cfg.Threads.CompStats = compStatsThreads
	}
	if changed("UserLogThreads") {
		cfg.Threads.UserLog = userLogThreads
	}
	if changed("GraphThreads") {
		cfg.Threads.Graph = graphThreads
	}

	if err := config.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
