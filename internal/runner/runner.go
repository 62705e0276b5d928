// Package runner turns an expanded benchmark suite into work: the
// shared-memory runner executes every job of the grid synchronously on the
// local machine, the batch runner renders one submission script per
// (input, core-count) pair for a cluster scheduler. Job generation is
// single-threaded; the deterministic nested-loop order is an observable
// contract (log ordering, job numbering) and must not change.
package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vk/expgridgo/internal/command"
	"github.com/vk/expgridgo/internal/graphs"
	"github.com/vk/expgridgo/internal/suite"
	"github.com/vk/expgridgo/internal/tmpl"
)

// Runner generates and dispatches the jobs of one suite.
type Runner interface {
	Execute(ctx context.Context, s *suite.Suite) error
}

// Options carries caller-supplied settings shared by the runner variants.
// Empty strings and zero values select the documented defaults.
type Options struct {
	SuiteName          string
	DataDir            string // experiment data root; a dated suite directory is created below it
	OutputDir          string // default <data>/output
	JobOutputDir       string // default <data>/jobfiles (batch runners)
	CommandTemplate    string // file path; default is the machine's compiled-in template
	SbatchTemplate     string // file path; default is the machine's compiled-in template
	BuildDir           string // default BUILD_DIR env, then ../build next to the binary
	ModuleConfig       string
	ModuleRestoreCmd   string
	MaxCores           int // shared-memory: skip core counts above this; 0 = unlimited
	TasksPerNode       int // 0 selects the machine default
	TimeLimit          int // minutes per job when neither suite nor input override it
	UseTestPartition   bool
	OmitJSONOutputPath bool
	OmitSeed           bool
	Clock              func() time.Time // test hook; nil means time.Now
}

// New selects the runner variant for the given machine target. An unknown
// target is a configuration error.
func New(machine string, opts Options) (Runner, error) {
	switch machine {
	case "shared":
		return NewSharedMemoryRunner(opts)
	case "supermuc":
		return NewSBatchRunner(SuperMUC{}, opts)
	case "horeka":
		return NewSBatchRunner(Horeka{}, opts)
	case "generic-job-file":
		return NewSBatchRunner(GenericJobFile{}, opts)
	default:
		return nil, fmt.Errorf("unknown machine target %q", machine)
	}
}

// base carries the state every runner variant needs: the dated experiment
// directory, the per-job output directory, the loaded command template and
// the command builder.
type base struct {
	dataDir     string
	outputDir   string
	cmdTemplate string
	omitJSON    bool
	omitSeed    bool
	builder     *command.Builder
}

func newBase(opts Options, defaultCmdTemplate string) (*base, error) {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	dataDir := filepath.Join(opts.DataDir, opts.SuiteName+"_"+clock().Format("06_01_02"))
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating experiment data directory: %w", err)
	}
	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = filepath.Join(dataDir, "output")
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	cmdTemplate, err := tmpl.Load(opts.CommandTemplate, defaultCmdTemplate)
	if err != nil {
		return nil, err
	}
	return &base{
		dataDir:     dataDir,
		outputDir:   outputDir,
		cmdTemplate: cmdTemplate,
		omitJSON:    opts.OmitJSONOutputPath,
		omitSeed:    opts.OmitSeed,
		builder:     command.NewBuilder(opts.BuildDir),
	}, nil
}

// jobCommand assembles the argument vector for one job. The config is copied
// before the per-job output path and seed are injected, so jobs never share
// mutable state.
func (b *base) jobCommand(s *suite.Suite, input graphs.Graph, jobName string, mpiRanks, threadsPerRank, seed int, cfg suite.Params) ([]string, error) {
	cfg = cfg.Clone()
	if !b.omitJSON {
		cfg["json_output_path"] = filepath.Join(b.outputDir, jobName+"_timer.json")
	}
	if !b.omitSeed {
		cfg["seed"] = seed
	}
	return b.builder.Build(s.Executable, ".", input, mpiRanks, threadsPerRank, true, cfg)
}

// writeConfigDump records the expanded config list once per suite so results
// can be mapped back to their configuration by index.
func (b *base) writeConfigDump(s *suite.Suite) error {
	data, err := json.MarshalIndent(s.Configs, "", "    ")
	if err != nil {
		return fmt.Errorf("marshalling config dump: %w", err)
	}
	path := filepath.Join(b.outputDir, "config.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config dump: %w", err)
	}
	return nil
}

// jobName builds the per-job identifier used in file names and logs.
func jobName(input string, mpiRanks, threadsPerRank, configIndex, seed int) string {
	return fmt.Sprintf("%s-np%d-t%d-c%d-s%d", input, mpiRanks, threadsPerRank, configIndex, seed)
}

// formatDuration renders a wall-clock limit in seconds as the scheduler's
// days-HH:MM:SS form.
func formatDuration(seconds int) string {
	days := seconds / 86400
	seconds %= 86400
	hours := seconds / 3600
	seconds %= 3600
	return fmt.Sprintf("%d-%02d:%02d:%02d", days, hours, seconds/60, seconds%60)
}

// RequiredNodes is the node count for a core count: a ceiling division with
// a floor of one node.
func RequiredNodes(cores, tasksPerNode int) int {
	nodes := (cores + tasksPerNode - 1) / tasksPerNode
	if nodes < 1 {
		nodes = 1
	}
	return nodes
}
