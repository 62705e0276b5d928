package graphs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKaGenGraphRequiresType(t *testing.T) {
	_, err := NewKaGenGraph(map[string]any{"N": 20.0})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "type")
}

func TestKaGenExponentForm(t *testing.T) {
	g, err := NewKaGenGraph(map[string]any{"type": "rgg2d", "N": 20.0})
	require.NoError(t, err)
	assert.Equal(t, int64(1)<<20, g.N(1))
}

func TestKaGenDirectSizeWinsOverExponent(t *testing.T) {
	g, err := NewKaGenGraph(map[string]any{"type": "rgg2d", "n": 1024.0, "N": 20.0})
	require.NoError(t, err)
	assert.Equal(t, int64(1024), g.N(1))
}

func TestKaGenWeakScaling(t *testing.T) {
	g, err := NewKaGenGraph(map[string]any{"type": "rgg2d", "N": 20.0, "scale_weak": true})
	require.NoError(t, err)

	assert.Equal(t, int64(1)<<20, g.N(1))
	assert.Equal(t, (int64(1)<<20)*8, g.N(8))

	// The name stays independent of parallelism and records the exponent.
	assert.Contains(t, g.Name(), "n-20")
	assert.Contains(t, g.Name(), "weak")
}

func TestKaGenStrongScalingSizeIsFixed(t *testing.T) {
	g, err := NewKaGenGraph(map[string]any{"type": "rgg2d", "N": 20.0})
	require.NoError(t, err)
	assert.Equal(t, g.N(1), g.N(64))
	assert.NotContains(t, g.Name(), "weak")
}

func TestKaGenArgsOptionString(t *testing.T) {
	g, err := NewKaGenGraph(map[string]any{"type": "rgg2d", "n": 1024.0, "coords": true})
	require.NoError(t, err)

	args, err := g.Args(4, 2, false)
	require.NoError(t, err)
	require.Len(t, args, 2)
	assert.Equal(t, "--kagen_option_string", args[0])
	assert.Equal(t, "coords;type=rgg2d;n=1024", args[1])
}

func TestKaGenEscapeQuotesSingleToken(t *testing.T) {
	g, err := NewKaGenGraph(map[string]any{"type": "rgg2d", "n": 1024.0})
	require.NoError(t, err)

	escaped, err := g.Args(4, 1, true)
	require.NoError(t, err)
	option := escaped[1]
	assert.True(t, strings.HasPrefix(option, `"`) && strings.HasSuffix(option, `"`),
		"escaped option string must be one shell-quoted token, got %q", option)
	assert.Contains(t, option, ";")

	plain, err := g.Args(4, 1, false)
	require.NoError(t, err)
	assert.NotContains(t, plain[1], `"`)
}

func TestKaGenWeakScalingUsesTotalParallelism(t *testing.T) {
	g, err := NewKaGenGraph(map[string]any{"type": "rgg2d", "n": 1000.0, "scale_weak": true})
	require.NoError(t, err)

	// p = mpiRanks * threadsPerRank.
	args, err := g.Args(4, 2, false)
	require.NoError(t, err)
	assert.Contains(t, args[1], "n=8000")
}

func TestKaGenNameIsSlug(t *testing.T) {
	g, err := NewKaGenGraph(map[string]any{"type": "rgg2d", "N": 20.0})
	require.NoError(t, err)
	name := g.Name()
	assert.NotContains(t, name, " ")
	assert.Equal(t, strings.ToLower(name), name)
}
