package graphs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileGraphNameIsSlugged(t *testing.T) {
	g := NewFileGraph("EU 2005", "/data/eu.graph", FormatMetis)
	assert.Equal(t, "eu-2005", g.Name())

	g.Partitioned = true
	assert.Equal(t, "eu-2005_partitioned", g.Name())
}

func TestFileGraphArgs(t *testing.T) {
	g := NewFileGraph("eu-2005", "/data/eu.graph", FormatMetis)
	args, err := g.Args(4, 1, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"/data/eu.graph", "--input-format", "metis"}, args)
}

func TestFileGraphPartitionLookup(t *testing.T) {
	g := NewFileGraph("eu-2005", "/data/eu.graph", FormatMetis)
	g.Partitioned = true
	g.AddPartitions(map[int]string{4: "/data/eu.4.part"})

	t.Run("partition present", func(t *testing.T) {
		args, err := g.Args(4, 1, false)
		require.NoError(t, err)
		assert.Equal(t, []string{"/data/eu.graph", "--input-format", "metis", "--partitioning", "/data/eu.4.part"}, args)
	})

	t.Run("missing partition is fatal", func(t *testing.T) {
		_, err := g.Args(8, 1, false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "p=8")
	})

	t.Run("single rank never needs a partition", func(t *testing.T) {
		args, err := g.Args(1, 1, false)
		require.NoError(t, err)
		assert.NotContains(t, args, "--partitioning")
	})
}

func TestFileGraphExists(t *testing.T) {
	dir := t.TempDir()

	t.Run("metis", func(t *testing.T) {
		path := filepath.Join(dir, "g.metis")
		g := NewFileGraph("g", path, FormatMetis)
		assert.False(t, g.Exists())
		require.NoError(t, os.WriteFile(path, []byte("0 0\n"), 0o644))
		assert.True(t, g.Exists())
	})

	t.Run("binary needs both companion files", func(t *testing.T) {
		path := filepath.Join(dir, "g.bin")
		g := NewFileGraph("g", path, FormatBinary)
		assert.False(t, g.Exists())
		require.NoError(t, os.WriteFile(filepath.Join(dir, "g.first_out"), nil, 0o644))
		assert.False(t, g.Exists())
		require.NoError(t, os.WriteFile(filepath.Join(dir, "g.head"), nil, 0o644))
		assert.True(t, g.Exists())
	})

	t.Run("brain format is always assumed present", func(t *testing.T) {
		g := NewFileGraph("g", filepath.Join(dir, "nowhere"), FormatBrain)
		assert.True(t, g.Exists())
	})
}

func TestFileGraphCloneIsolatesPartitions(t *testing.T) {
	original := NewFileGraph("eu-2005", "/data/eu.graph", FormatMetis)
	clone := original.Clone()
	clone.AddPartitions(map[int]string{4: "/data/eu.4.part"})
	clone.Partitioned = true

	assert.False(t, original.Partitioned)
	_, err := clone.Args(4, 1, false)
	assert.NoError(t, err)
}
