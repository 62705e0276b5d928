package runner

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vk/expgridgo/internal/ctxlog"
	"github.com/vk/expgridgo/internal/runner/templates"
	"github.com/vk/expgridgo/internal/suite"
	"github.com/vk/expgridgo/internal/tmpl"
)

// SharedMemoryRunner executes every job of the sweep synchronously on the
// local machine, one at a time, in grid order. A failing job is counted and
// the sweep continues.
type SharedMemoryRunner struct {
	*base
	maxCores  int
	Failed    int
	TotalJobs int
}

// NewSharedMemoryRunner builds a runner for a single machine without a
// scheduler.
func NewSharedMemoryRunner(opts Options) (*SharedMemoryRunner, error) {
	b, err := newBase(opts, templates.Command("shared"))
	if err != nil {
		return nil, err
	}
	return &SharedMemoryRunner{base: b, maxCores: opts.MaxCores}, nil
}

// Execute sweeps input × config × cores × seed × threads-per-rank. The loop
// nesting is a contract: job numbering and log order depend on it.
func (r *SharedMemoryRunner) Execute(ctx context.Context, s *suite.Suite) error {
	logger := ctxlog.FromContext(ctx)
	logger.Info("Running suite.", "suite", s.Name)
	if err := r.writeConfigDump(s); err != nil {
		return err
	}
	for _, input := range s.Inputs {
		for i, cfg := range s.Configs {
			for _, ncores := range s.Cores {
				if r.maxCores > 0 && ncores > r.maxCores {
					continue
				}
				for _, seed := range s.Seeds {
					for _, threads := range s.ThreadsPerRank {
						mpiRanks := ncores / threads
						name := jobName(input.Name(), mpiRanks, threads, i, seed)
						cmd, err := r.jobCommand(s, input, name, mpiRanks, threads, seed, cfg)
						if err != nil {
							return err
						}
						cmdString, err := tmpl.Render(r.cmdTemplate, map[string]string{
							"cmd":       strings.Join(cmd, " "),
							"mpi_ranks": strconv.Itoa(mpiRanks),
						})
						if err != nil {
							return err
						}
						logger.Info("Running job.",
							"config", i,
							"input", input.Name(),
							"mpi_ranks", mpiRanks,
							"threads_per_rank", threads,
							"seed", seed,
						)
						if err := r.runJob(ctx, name, cmdString); err != nil {
							r.Failed++
							logger.Warn("Job failed.", "job", name, "error", err)
						} else {
							logger.Info("Job finished.", "job", name)
						}
						r.TotalJobs++
					}
				}
			}
		}
	}
	logger.Info("Finished suite.", "suite", s.Name, "output_dir", r.outputDir)
	logger.Info(fmt.Sprintf("Summary: %d out of %d failed.", r.Failed, r.TotalJobs))
	return nil
}

// runJob runs one rendered command line under sh with stdout and stderr
// captured into per-job log files.
func (r *SharedMemoryRunner) runJob(ctx context.Context, name, cmdString string) error {
	logFile, err := os.Create(filepath.Join(r.outputDir, name+"-log.txt"))
	if err != nil {
		return err
	}
	defer logFile.Close()
	errFile, err := os.Create(filepath.Join(r.outputDir, name+"-error-log.txt"))
	if err != nil {
		return err
	}
	defer errFile.Close()
	cmd := exec.CommandContext(ctx, "sh", "-c", cmdString)
	cmd.Stdout = logFile
	cmd.Stderr = errFile
	return cmd.Run()
}
