package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/expgridgo/internal/graphs"
	"github.com/vk/expgridgo/internal/suite"
)

func TestNewBuilderPrecedence(t *testing.T) {
	t.Run("explicit directory wins", func(t *testing.T) {
		t.Setenv(BuildDirEnv, "/env/build")
		b := NewBuilder("/explicit/build")
		assert.Equal(t, "/explicit/build", b.BuildDir)
	})

	t.Run("environment variable second", func(t *testing.T) {
		t.Setenv(BuildDirEnv, "/env/build")
		b := NewBuilder("")
		assert.Equal(t, "/env/build", b.BuildDir)
	})
}

func TestBuildAssemblyOrder(t *testing.T) {
	b := &Builder{BuildDir: "/build"}

	g, err := graphs.NewDummyGraph(map[string]any{"name": "warmup", "fast": true})
	require.NoError(t, err)

	cmd, err := b.Build("bench", "apps", g, 4, 2, false, suite.Params{"verbose": true})
	require.NoError(t, err)
	assert.Equal(t, []string{"/build/apps/bench", "--fast", "--verbose"}, cmd)
}

func TestBuildWithoutInput(t *testing.T) {
	b := &Builder{BuildDir: "/build"}
	cmd, err := b.Build("bench", ".", nil, 4, 1, false, suite.Params{"k": "v"})
	require.NoError(t, err)
	assert.Equal(t, []string{"/build/bench", "-k", "v"}, cmd)
}

func TestBuildPropagatesInputErrors(t *testing.T) {
	b := &Builder{BuildDir: "/build"}
	_, err := b.Build("bench", ".", &graphs.Ref{RefName: "missing"}, 4, 1, false, suite.Params{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
}
