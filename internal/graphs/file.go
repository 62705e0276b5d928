package graphs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"
)

// Format enumerates the on-disk representations a file input may use.
type Format string

const (
	FormatMetis  Format = "metis"
	FormatBinary Format = "binary"
	FormatBrain  Format = "brain"
)

// FileGraph is a benchmark input stored on disk, optionally carrying
// precomputed partitionings keyed by MPI rank count. Partitions must be
// attached before the first Args call.
type FileGraph struct {
	name        string
	Path        string
	Format      Format
	Partitioned bool
	partitions  map[int]string
}

// NewFileGraph builds a file input. The name is slugged on construction.
func NewFileGraph(name, path string, format Format) *FileGraph {
	return &FileGraph{name: slug.Make(name), Path: path, Format: format}
}

// Clone returns a copy that can be specialized (partition attachment) without
// mutating the shared catalog entry.
func (g *FileGraph) Clone() *FileGraph {
	clone := *g
	clone.partitions = make(map[int]string, len(g.partitions))
	for ranks, path := range g.partitions {
		clone.partitions[ranks] = path
	}
	return &clone
}

// AddPartitions merges the given rank-count to partition-file mapping.
func (g *FileGraph) AddPartitions(parts map[int]string) {
	if g.partitions == nil {
		g.partitions = make(map[int]string, len(parts))
	}
	for ranks, path := range parts {
		g.partitions[ranks] = path
	}
}

func (g *FileGraph) Name() string {
	if g.Partitioned {
		return g.name + "_partitioned"
	}
	return g.name
}

// Args selects the input file. A partitioned input run on more than one rank
// must have a partitioning for that exact rank count; running without one
// would silently change the benchmark semantics, so it is a fatal
// misconfiguration.
func (g *FileGraph) Args(mpiRanks, threadsPerRank int, escape bool) ([]string, error) {
	args := []string{g.Path, "--input-format", string(g.Format)}
	if g.Partitioned && mpiRanks > 1 {
		partition, ok := g.partitions[mpiRanks]
		if !ok {
			return nil, fmt.Errorf("could not load partitioning for p=%d for input %s", mpiRanks, g.Name())
		}
		args = append(args, "--partitioning", partition)
	}
	return args, nil
}

// Exists reports whether the input's backing files are present.
func (g *FileGraph) Exists() bool {
	switch g.Format {
	case FormatMetis:
		return fileExists(g.Path)
	case FormatBinary:
		stem := strings.TrimSuffix(g.Path, filepath.Ext(g.Path))
		return fileExists(stem+".first_out") && fileExists(stem+".head")
	case FormatBrain:
		return true
	}
	return false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
