package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vk/expgridgo/internal/ctxlog"
	"github.com/vk/expgridgo/internal/suite"
	"github.com/vk/expgridgo/internal/tmpl"
)

// ProjectEnv names the account/project identifier consumed by batch
// templates. PROJECT_NOT_SET is substituted when it is absent so the emitted
// script fails visibly at submission instead of charging a random account.
const ProjectEnv = "PROJECT"

// SBatchRunner renders one submission script per (input, core-count) pair
// instead of executing anything. All (threads, config, seed) combinations of
// the pair are concatenated into the script; the aggregate wall-clock limit
// is the sum of the per-job limits.
type SBatchRunner struct {
	*base
	machine          Machine
	jobOutputDir     string
	sbatchTemplate   string
	moduleConfig     string
	moduleRestoreCmd string
	tasksPerNode     int
	timeLimit        int
	useTestPartition bool
}

// NewSBatchRunner builds a batch-script runner for the given machine
// profile.
func NewSBatchRunner(m Machine, opts Options) (*SBatchRunner, error) {
	b, err := newBase(opts, m.CommandTemplate())
	if err != nil {
		return nil, err
	}
	jobOutputDir := opts.JobOutputDir
	if jobOutputDir == "" {
		jobOutputDir = filepath.Join(b.dataDir, "jobfiles")
	}
	if err := os.MkdirAll(jobOutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating job output directory: %w", err)
	}
	sbatchTemplate, err := tmpl.Load(opts.SbatchTemplate, m.SbatchTemplate())
	if err != nil {
		return nil, err
	}
	tasksPerNode := opts.TasksPerNode
	if tasksPerNode == 0 {
		tasksPerNode = m.DefaultTasksPerNode()
	}
	return &SBatchRunner{
		base:             b,
		machine:          m,
		jobOutputDir:     jobOutputDir,
		sbatchTemplate:   sbatchTemplate,
		moduleConfig:     opts.ModuleConfig,
		moduleRestoreCmd: opts.ModuleRestoreCmd,
		tasksPerNode:     tasksPerNode,
		timeLimit:        opts.TimeLimit,
		useTestPartition: opts.UseTestPartition,
	}, nil
}

// Execute writes one job script per (input, core-count) pair and reports the
// count. Nothing is executed here; success or failure of the jobs is decided
// later by the external scheduler.
func (r *SBatchRunner) Execute(ctx context.Context, s *suite.Suite) error {
	logger := ctxlog.FromContext(ctx)
	project := os.Getenv(ProjectEnv)
	if project == "" {
		project = "PROJECT_NOT_SET"
	}
	if err := r.writeConfigDump(s); err != nil {
		return err
	}
	moduleSetup := "# no specific module setup given"
	if r.moduleConfig != "" {
		moduleSetup = r.moduleRestoreCmd + " " + r.moduleConfig
	}
	njobs := 0
	for _, input := range s.Inputs {
		inputName := input.Name()
		for _, ncores := range s.Cores {
			tasksPerNode := r.tasksPerNode
			if s.TasksPerNode > 0 {
				tasksPerNode = s.TasksPerNode
			}
			nodes := RequiredNodes(ncores, tasksPerNode)
			queue, err := r.machine.Queue(nodes, r.useTestPartition)
			if err != nil {
				return err
			}
			scriptName := fmt.Sprintf("%s-%s-cores%d", s.Name, inputName, ncores)

			totalMinutes := 0
			var commands []string
			for _, threads := range s.ThreadsPerRank {
				mpiRanks := ncores / threads
				ranksPerNode := tasksPerNode / threads
				for i, cfg := range s.Configs {
					for _, seed := range s.Seeds {
						jobLimit := s.InputTimeLimitFor(inputName)
						if jobLimit == 0 {
							jobLimit = r.timeLimit
						}
						totalMinutes += jobLimit
						name := jobName(inputName, mpiRanks, threads, i, seed)
						cmd, err := r.jobCommand(s, input, name, mpiRanks, threads, seed, cfg)
						if err != nil {
							return err
						}
						line, err := tmpl.Render(r.cmdTemplate, map[string]string{
							"cmd":              strings.Join(cmd, " "),
							"jobname":          name,
							"mpi_ranks":        strconv.Itoa(mpiRanks),
							"threads_per_rank": strconv.Itoa(threads),
							"ranks_per_node":   strconv.Itoa(ranksPerNode),
							"timeout":          strconv.Itoa(jobLimit * 60),
						})
						if err != nil {
							return err
						}
						commands = append(commands, line)
					}
				}
			}

			script, err := tmpl.Render(r.sbatchTemplate, map[string]string{
				"nodes":            strconv.Itoa(nodes),
				"ntasks":           strconv.Itoa(ncores),
				"ntasks_per_node":  strconv.Itoa(tasksPerNode),
				"output_log":       filepath.Join(r.outputDir, fmt.Sprintf("%s-cores%d-log.txt", inputName, ncores)),
				"error_output_log": filepath.Join(r.outputDir, fmt.Sprintf("%s-cores%d-error-log.txt", inputName, ncores)),
				"job_name":         scriptName,
				"job_queue":        queue,
				"islands":          strconv.Itoa(r.machine.Islands(nodes)),
				"account":          project,
				"module_setup":     moduleSetup,
				"commands":         strings.Join(commands, "\n"),
				"time_string":      formatDuration(totalMinutes * 60),
			})
			if err != nil {
				return err
			}
			if err := os.WriteFile(filepath.Join(r.jobOutputDir, scriptName), []byte(script), 0o644); err != nil {
				return fmt.Errorf("writing job script %s: %w", scriptName, err)
			}
			njobs++
		}
	}
	logger.Info(fmt.Sprintf("Created %d job files in directory %s.", njobs, r.jobOutputDir))
	return nil
}
