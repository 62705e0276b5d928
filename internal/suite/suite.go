// Package suite holds the format-agnostic model of one benchmark campaign:
// resolved inputs, exploded configurations and the parallelism grid, plus the
// combinatorial expansion that turns list-valued configuration fields into
// the full set of scalar configurations.
package suite

import (
	"context"

	"github.com/vk/expgridgo/internal/ctxlog"
	"github.com/vk/expgridgo/internal/graphs"
)

// Suite describes one benchmark campaign. After loading, Configs only
// contains fully scalar configurations; the loader runs Explode before the
// suite is handed to a runner.
type Suite struct {
	Name           string
	Executable     string
	Cores          []int
	ThreadsPerRank []int
	Inputs         []graphs.Graph
	Configs        []Params
	TasksPerNode   int // 0 selects the machine default
	TimeLimit      int // minutes; 0 selects the runner default
	Seeds          []int
	InputTimeLimit map[string]int
}

// New builds an empty suite with the documented defaults: a single
// thread per rank and the single seed 0. The slices are constructed per call
// so suites never share backing arrays.
func New(name, executable string) *Suite {
	return &Suite{
		Name:           name,
		Executable:     executable,
		ThreadsPerRank: []int{1},
		Seeds:          []int{0},
		InputTimeLimit: make(map[string]int),
	}
}

// SetInputTimeLimit records a per-input time limit override in minutes.
func (s *Suite) SetInputTimeLimit(inputName string, minutes int) {
	s.InputTimeLimit[inputName] = minutes
}

// InputTimeLimitFor returns the override for the given input, falling back
// to the suite-wide default. Zero means no limit was configured at all.
func (s *Suite) InputTimeLimitFor(inputName string) int {
	if limit, ok := s.InputTimeLimit[inputName]; ok {
		return limit
	}
	return s.TimeLimit
}

// ResolveInputs replaces catalog references with concrete file inputs,
// attaching partition tables to partitioned references. References missing
// from the catalog are logged and skipped. Input order is preserved; it is
// part of the job-ordering contract.
func (s *Suite) ResolveInputs(ctx context.Context, catalog map[string]*graphs.FileGraph, partitions map[string]map[int]string) {
	logger := ctxlog.FromContext(ctx)
	resolved := make([]graphs.Graph, 0, len(s.Inputs))
	for _, input := range s.Inputs {
		ref, ok := input.(*graphs.Ref)
		if !ok {
			resolved = append(resolved, input)
			continue
		}
		entry, ok := catalog[ref.RefName]
		if !ok {
			logger.Warn("Could not load input, skipping.", "input", ref.RefName)
			continue
		}
		g := entry.Clone()
		if ref.Partitioned {
			g.AddPartitions(partitions[ref.RefName])
			g.Partitioned = true
		}
		resolved = append(resolved, g)
	}
	s.Inputs = resolved
}
