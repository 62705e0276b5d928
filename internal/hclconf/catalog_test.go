package hclconf

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/expgridgo/internal/graphs"
)

const exampleCatalog = `
input "eu-2005" {
  path   = "/data/eu-2005.graph"
  format = "metis"

  partitions = {
    "4"  = "/data/eu-2005.4.part"
    "16" = "/data/eu-2005.16.part"
  }
}

input "uk-2002" {
  path = "/data/uk-2002.graph"
}
`

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "catalog.hcl"), []byte(exampleCatalog), 0o644))

	catalog, partitions, err := LoadCatalog(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, catalog, 2)

	eu := catalog["eu-2005"]
	require.NotNil(t, eu)
	assert.Equal(t, "/data/eu-2005.graph", eu.Path)
	assert.Equal(t, graphs.FormatMetis, eu.Format)

	uk := catalog["uk-2002"]
	require.NotNil(t, uk)
	assert.Equal(t, graphs.FormatMetis, uk.Format, "format defaults to metis")

	require.Contains(t, partitions, "eu-2005")
	assert.Equal(t, "/data/eu-2005.4.part", partitions["eu-2005"][4])
	assert.Equal(t, "/data/eu-2005.16.part", partitions["eu-2005"][16])
	assert.NotContains(t, partitions, "uk-2002")
}

func TestLoadCatalogSkipsMissingPaths(t *testing.T) {
	catalog, partitions, err := LoadCatalog(context.Background(), filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Empty(t, catalog)
	assert.Empty(t, partitions)
}

func TestLoadCatalogSingleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.hcl")
	require.NoError(t, os.WriteFile(path, []byte(exampleCatalog), 0o644))

	catalog, _, err := LoadCatalog(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, catalog, 2)
}

func TestLoadCatalogBadPartitionKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
input "g" {
  path = "/data/g.graph"

  partitions = {
    "not-a-number" = "/data/g.part"
  }
}
`), 0o644))

	_, _, err := LoadCatalog(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not-a-number")
}
