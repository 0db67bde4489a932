package config

import "time"

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Path defaults mirror Arguments.cpp's concrete defaults.
	if cfg.Paths.HighwayDataDir == "" {
		cfg.Paths.HighwayDataDir = "../../../HighwayData"
	}
	if cfg.Paths.SystemsFile == "" {
		cfg.Paths.SystemsFile = "systems.csv"
	}
	if cfg.Paths.UserListDir == "" {
		cfg.Paths.UserListDir = "../../../UserData/list_files"
	}
	if cfg.Paths.OutputDir == "" {
		cfg.Paths.OutputDir = "."
	}
	if cfg.Paths.GraphDir == "" {
		cfg.Paths.GraphDir = cfg.Paths.OutputDir
	}
	if cfg.Paths.LogDir == "" {
		cfg.Paths.LogDir = cfg.Paths.OutputDir
	}
	if cfg.Paths.CSVStatDir == "" {
		cfg.Paths.CSVStatDir = cfg.Paths.OutputDir
	}

	// Thread defaults (Arguments.cpp: -t/--numthreads default 4).
	if cfg.Threads.Default == 0 {
		cfg.Threads.Default = 4
	}

	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "TravelMapping"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = cfg.Paths.OutputDir + "/siteupdate.db"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 25
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 5
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
	if cfg.Logging.Rotation.MaxSize == 0 {
		cfg.Logging.Rotation.MaxSize = 100 // MB
	}
	if cfg.Logging.Rotation.MaxBackups == 0 {
		cfg.Logging.Rotation.MaxBackups = 3
	}
	if cfg.Logging.Rotation.MaxAge == 0 {
		cfg.Logging.Rotation.MaxAge = 28 // days
	}
}
