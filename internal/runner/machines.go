package runner

import (
	"fmt"

	"github.com/vk/expgridgo/internal/runner/templates"
)

// Machine describes the scheduler profile of a batch target: queue
// selection, island placement and the compiled-in default templates.
type Machine interface {
	Name() string
	DefaultTasksPerNode() int
	// Queue picks the scheduler partition for the given node count. A node
	// count the machine cannot serve is a configuration error.
	Queue(nodes int, useTestPartition bool) (string, error)
	// Islands is the number of scheduler islands the job may span.
	Islands(nodes int) int
	CommandTemplate() string
	SbatchTemplate() string
}

// SuperMUC is the SuperMUC-NG profile: 48 tasks per node, micro/general/large
// partitions, two islands above 768 nodes.
type SuperMUC struct{}

func (SuperMUC) Name() string             { return "supermuc" }
func (SuperMUC) DefaultTasksPerNode() int { return 48 }

func (SuperMUC) Queue(nodes int, useTestPartition bool) (string, error) {
	switch {
	case nodes <= 16:
		if useTestPartition {
			return "test", nil
		}
		return "micro", nil
	case nodes <= 768:
		return "general", nil
	default:
		return "large", nil
	}
}

func (SuperMUC) Islands(nodes int) int {
	if nodes > 768 {
		return 2
	}
	return 1
}

func (SuperMUC) CommandTemplate() string { return templates.Command("intel") }
func (SuperMUC) SbatchTemplate() string  { return templates.Sbatch("supermuc") }

// Horeka is the HoreKa profile: 76 tasks per node, cpuonly partitions,
// hard limit of 192 nodes.
type Horeka struct{}

func (Horeka) Name() string             { return "horeka" }
func (Horeka) DefaultTasksPerNode() int { return 76 }

func (Horeka) Queue(nodes int, useTestPartition bool) (string, error) {
	switch {
	case nodes <= 12:
		if useTestPartition {
			return "dev_cpuonly", nil
		}
		return "cpuonly", nil
	case nodes <= 192:
		return "cpuonly", nil
	default:
		return "", fmt.Errorf("cannot use more than 192 compute nodes on HoreKa, requested %d", nodes)
	}
}

func (Horeka) Islands(nodes int) int   { return 1 }
func (Horeka) CommandTemplate() string { return templates.Command("generic") }
func (Horeka) SbatchTemplate() string  { return templates.Sbatch("horeka") }

// GenericJobFile emits scheduler-agnostic job files a human adapts by hand:
// one task per node, a fixed placeholder queue, no node-count branching.
type GenericJobFile struct{}

func (GenericJobFile) Name() string             { return "generic-job-file" }
func (GenericJobFile) DefaultTasksPerNode() int { return 1 }

func (GenericJobFile) Queue(nodes int, useTestPartition bool) (string, error) {
	return "generic_partition", nil
}

func (GenericJobFile) Islands(nodes int) int   { return 1 }
func (GenericJobFile) CommandTemplate() string { return templates.Command("generic") }
func (GenericJobFile) SbatchTemplate() string  { return templates.Sbatch("generic") }
