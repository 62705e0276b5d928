package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	SuitePath   string // suite definition (hcl)
	CatalogPath string // input catalog file or directory (hcl)
	Machine     string // shared | supermuc | horeka | generic-job-file

	DataDir         string
	OutputDir       string
	JobOutputDir    string
	CommandTemplate string
	SbatchTemplate  string
	BuildDir        string

	ModuleConfig     string
	ModuleRestoreCmd string

	MaxCores     int
	TasksPerNode int
	TimeLimit    int

	UseTestPartition   bool
	OmitJSONOutputPath bool
	OmitSeed           bool

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and applies defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.SuitePath == "" {
		return nil, errors.New("SuitePath is a required configuration field and cannot be empty")
	}
	if cfg.Machine == "" {
		cfg.Machine = "shared"
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "experiments"
	}
	return &cfg, nil
}
