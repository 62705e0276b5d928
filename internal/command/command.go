// Package command assembles the argument vector for a benchmark executable
// from its build location, the selected input and a scalar configuration.
// Assembly is pure string construction; nothing is touched on disk.
package command

import (
	"os"
	"path/filepath"

	"github.com/vk/expgridgo/internal/graphs"
	"github.com/vk/expgridgo/internal/suite"
)

// BuildDirEnv overrides the directory benchmark executables are resolved
// from.
const BuildDirEnv = "BUILD_DIR"

// Builder resolves executables below a fixed build directory.
type Builder struct {
	BuildDir string
}

// NewBuilder picks the build directory: an explicit value wins, then the
// BUILD_DIR environment variable, then ../build next to the running binary.
func NewBuilder(buildDir string) *Builder {
	if buildDir == "" {
		buildDir = os.Getenv(BuildDirEnv)
	}
	if buildDir == "" {
		base := "."
		if exe, err := os.Executable(); err == nil {
			base = filepath.Dir(exe)
		}
		buildDir = filepath.Join(base, "..", "build")
	}
	return &Builder{BuildDir: buildDir}
}

// Build produces the full argument vector: resolved executable path, the
// input's arguments (if any), then the configuration flags. escape controls
// whether generator option strings are shell-quoted as a single token.
func (b *Builder) Build(executable, subdir string, input graphs.Graph, mpiRanks, threadsPerRank int, escape bool, cfg suite.Params) ([]string, error) {
	cmd := []string{filepath.Join(b.BuildDir, subdir, executable)}
	if input != nil {
		args, err := input.Args(mpiRanks, threadsPerRank, escape)
		if err != nil {
			return nil, err
		}
		cmd = append(cmd, args...)
	}
	return append(cmd, cfg.Flags()...), nil
}
