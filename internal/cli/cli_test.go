package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePopulatesConfig(t *testing.T) {
	var out bytes.Buffer
	cfg, shouldExit, err := Parse([]string{
		"--machine", "supermuc",
		"--catalog", "inputs/",
		"--time-limit", "30",
		"--test",
		"suite.hcl",
	}, &out)
	require.NoError(t, err)
	require.False(t, shouldExit)

	assert.Equal(t, "suite.hcl", cfg.SuitePath)
	assert.Equal(t, "supermuc", cfg.Machine)
	assert.Equal(t, "inputs/", cfg.CatalogPath)
	assert.Equal(t, 30, cfg.TimeLimit)
	assert.True(t, cfg.UseTestPartition)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestParseSuiteFlagWinsOverPositional(t *testing.T) {
	var out bytes.Buffer
	cfg, shouldExit, err := Parse([]string{"--suite", "a.hcl", "b.hcl"}, &out)
	require.NoError(t, err)
	require.False(t, shouldExit)
	assert.Equal(t, "a.hcl", cfg.SuitePath)
}

func TestParseNoSuitePrintsUsage(t *testing.T) {
	var out bytes.Buffer
	cfg, shouldExit, err := Parse(nil, &out)
	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParseInvalidLogLevel(t *testing.T) {
	var out bytes.Buffer
	_, _, err := Parse([]string{"--log-level", "loud", "suite.hcl"}, &out)
	require.Error(t, err)
	exitErr, ok := err.(*ExitError)
	require.True(t, ok)
	assert.Equal(t, 2, exitErr.Code)
}

func TestParseInvalidLogFormat(t *testing.T) {
	var out bytes.Buffer
	_, _, err := Parse([]string{"--log-format", "xml", "suite.hcl"}, &out)
	require.Error(t, err)
}

func TestParseUnknownFlag(t *testing.T) {
	var out bytes.Buffer
	_, _, err := Parse([]string{"--frobnicate"}, &out)
	require.Error(t, err)
	exitErr, ok := err.(*ExitError)
	require.True(t, ok)
	assert.Equal(t, 2, exitErr.Code)
}
