package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequiredNodes(t *testing.T) {
	assert.Equal(t, 3, RequiredNodes(100, 48))
	assert.Equal(t, 1, RequiredNodes(48, 48))
	assert.Equal(t, 2, RequiredNodes(49, 48))
	assert.Equal(t, 1, RequiredNodes(1, 48))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0-00:01:00", formatDuration(60))
	assert.Equal(t, "1-01:01:01", formatDuration(90061))
	assert.Equal(t, "0-00:00:00", formatDuration(0))
	assert.Equal(t, "0-02:30:00", formatDuration(9000))
}

func TestJobName(t *testing.T) {
	assert.Equal(t, "eu-2005-np16-t2-c3-s7", jobName("eu-2005", 16, 2, 3, 7))
}

func TestNewUnknownMachineFails(t *testing.T) {
	_, err := New("bluegene", Options{SuiteName: "s", DataDir: t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bluegene")
}

func TestNewSelectsVariant(t *testing.T) {
	opts := Options{SuiteName: "s", DataDir: t.TempDir(), BuildDir: "/build"}

	r, err := New("shared", opts)
	require.NoError(t, err)
	assert.IsType(t, &SharedMemoryRunner{}, r)

	r, err = New("supermuc", opts)
	require.NoError(t, err)
	assert.IsType(t, &SBatchRunner{}, r)
}
