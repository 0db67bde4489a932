package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/andrescamacho/tm-siteupdate/internal/domain/pipeline"
	"github.com/andrescamacho/tm-siteupdate/internal/infrastructure/config"
	"github.com/andrescamacho/tm-siteupdate/internal/infrastructure/database"
)

// toPipelineConfig maps the loaded ambient config onto the
// domain-layer pipeline.Config, keeping pipeline free of any
// dependency on the infrastructure config package (spec.md §9's
// "explicitly-passed context objects" resolution applied one layer
// up: the domain layer never imports infrastructure).
func toPipelineConfig(cfg *config.Config) pipeline.Config {
	return pipeline.Config{
		HighwayDataDir: cfg.Paths.HighwayDataDir,
		SystemsFile:    cfg.Paths.SystemsFile,
		UserListDir:    cfg.Paths.UserListDir,
		OutputDir:      cfg.Paths.OutputDir,
		GraphDir:       cfg.Paths.GraphDir,
		LogDir:         cfg.Paths.LogDir,
		CSVStatDir:     cfg.Paths.CSVStatDir,
		NMPMergeDir:    cfg.Paths.NMPMergeDir,

		Threads: pipeline.Threads{
			Default:   cfg.Threads.Default,
			ReadWpt:   cfg.Threads.ReadWpt,
			NmpSearch: cfg.Threads.NmpSearch,
			NmpMerged: cfg.Threads.NmpMerged,
			ReadList:  cfg.Threads.ReadList,
			ConcAug:   cfg.Threads.ConcAug,
			CompStats: cfg.Threads.CompStats,
			UserLog:   cfg.Threads.UserLog,
			Graph:     cfg.Threads.Graph,
		},

		SkipGraphs: cfg.Run.SkipGraphs,
		ErrorCheck: cfg.Run.ErrorCheck,
		UserList:   cfg.Run.UserList,

		SplitRegionPath: cfg.Run.SplitRegionPath,
		SplitRegionCode: cfg.Run.SplitRegionCode,
	}
}

// runSiteupdate is the "run" subcommand's RunE: load config and run
// the full pipeline (spec.md §6's exit-code contract).
func runSiteupdate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	return runPipeline(cfg)
}

// runValidate is the "validate" subcommand's RunE: load config,
// force ErrorCheck so no SQL dump, stats files or user logs are
// written, then report the
// same exit-code contract as run (SPEC_FULL.md §2.2).
func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	cfg.Run.ErrorCheck = true
	return runPipeline(cfg)
}

// runPipeline opens the SQL target unless --errorcheck, drives the
// pipeline, and reports the spec.md §6 exit-code contract.
func runPipeline(cfg *config.Config) error {
	var db *gorm.DB
	var err error
	if !cfg.Run.ErrorCheck {
		db, err = database.NewConnection(&cfg.Database)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer database.Close(db)
	}

	driver := pipeline.New(toPipelineConfig(cfg), db, os.Stdout)
	result, runErr := driver.Run()

	fmt.Printf("%d systems, %d regions, %d travelers\n", result.Systems, result.Regions, result.Travelers)
	if len(result.Datacheck) > 0 {
		fmt.Printf("%d datacheck entries, see datacheck.log\n", len(result.Datacheck))
	}

	if runErr != nil {
		for _, e := range result.Errors {
			fmt.Fprintln(os.Stderr, e)
		}
		return runErr
	}
	return nil
}
