// Package app wires the loaders and runners into one application: it loads
// the input catalog and the suite definition, resolves the suite's inputs,
// selects the runner for the target machine and executes it.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/expgridgo/internal/ctxlog"
	"github.com/vk/expgridgo/internal/hclconf"
	"github.com/vk/expgridgo/internal/runner"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
}

// New is the constructor for the main application, including its own
// isolated logger.
func New(outW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.")
	return &App{outW: outW, logger: logger, config: cfg}
}

// Run loads the suite, resolves its inputs against the catalog and hands it
// to the runner. Every configuration error surfaces here and terminates the
// program with a diagnostic; per-job execution failures do not.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	catalog, partitions, err := hclconf.LoadCatalog(ctx, a.config.CatalogPath)
	if err != nil {
		return fmt.Errorf("failed to load input catalog: %w", err)
	}

	s, err := hclconf.LoadSuite(ctx, a.config.SuitePath)
	if err != nil {
		return fmt.Errorf("failed to load suite: %w", err)
	}
	s.ResolveInputs(ctx, catalog, partitions)
	a.logger.Debug("Suite inputs resolved.", "suite", s.Name, "inputs", len(s.Inputs))

	r, err := runner.New(a.config.Machine, runner.Options{
		SuiteName:          s.Name,
		DataDir:            a.config.DataDir,
		OutputDir:          a.config.OutputDir,
		JobOutputDir:       a.config.JobOutputDir,
		CommandTemplate:    a.config.CommandTemplate,
		SbatchTemplate:     a.config.SbatchTemplate,
		BuildDir:           a.config.BuildDir,
		ModuleConfig:       a.config.ModuleConfig,
		ModuleRestoreCmd:   a.config.ModuleRestoreCmd,
		MaxCores:           a.config.MaxCores,
		TasksPerNode:       a.config.TasksPerNode,
		TimeLimit:          a.config.TimeLimit,
		UseTestPartition:   a.config.UseTestPartition,
		OmitJSONOutputPath: a.config.OmitJSONOutputPath,
		OmitSeed:           a.config.OmitSeed,
	})
	if err != nil {
		return err
	}

	return r.Execute(ctx, s)
}
