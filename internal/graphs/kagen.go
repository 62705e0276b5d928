package graphs

import (
	"errors"
	"fmt"
	"maps"
	"math/bits"
	"slices"
	"strings"

	"github.com/gosimple/slug"
)

// KaGenGraph is an input produced by the KaGen generator at job startup
// instead of being read from disk. Vertex and edge counts may be given
// directly (n, m) or as power-of-two exponents (N, M); the direct form wins
// when both are present. With scale_weak the target size grows linearly with
// the total parallelism of the job.
type KaGenGraph struct {
	n, m      int64
	scaleWeak bool
	params    map[string]any
}

// NewKaGenGraph builds a generator input from a free-form parameter set. The
// set must declare a "type" field naming the KaGen generator to use.
func NewKaGenGraph(spec map[string]any) (*KaGenGraph, error) {
	params := make(map[string]any, len(spec))
	maps.Copy(params, spec)
	if _, ok := params["type"]; !ok {
		return nil, errors.New("kagen graph requires a type")
	}
	g := &KaGenGraph{params: params}
	var err error
	if g.n, err = takeSize(params, "n", "N"); err != nil {
		return nil, err
	}
	if g.m, err = takeSize(params, "m", "M"); err != nil {
		return nil, err
	}
	if weak, ok := params["scale_weak"].(bool); ok {
		g.scaleWeak = weak
	}
	delete(params, "scale_weak")
	return g, nil
}

// takeSize resolves a size parameter given either directly or as a
// power-of-two exponent, removing both spellings from the parameter set.
// Zero means the size was not specified.
func takeSize(params map[string]any, direct, exponent string) (int64, error) {
	defer delete(params, direct)
	defer delete(params, exponent)
	if v, ok := params[direct]; ok {
		return toInt64(v)
	}
	if v, ok := params[exponent]; ok {
		e, err := toInt64(v)
		if err != nil {
			return 0, err
		}
		if e < 0 || e > 62 {
			return 0, fmt.Errorf("exponent %s=%d out of range", exponent, e)
		}
		return 1 << e, nil
	}
	return 0, nil
}

// N returns the target vertex count for total parallelism p.
func (g *KaGenGraph) N(p int) int64 {
	if g.scaleWeak {
		return g.n * int64(p)
	}
	return g.n
}

// M returns the target edge count for total parallelism p.
func (g *KaGenGraph) M(p int) int64 {
	if g.scaleWeak {
		return g.m * int64(p)
	}
	return g.m
}

// Args renders the generator option string. All parameters are joined with
// ";" into a single option; with escape the whole option is quoted so the
// shell keeps it as one token.
func (g *KaGenGraph) Args(mpiRanks, threadsPerRank int, escape bool) ([]string, error) {
	p := mpiRanks * threadsPerRank
	params := g.stringifyParams()
	if g.n != 0 {
		params = append(params, fmt.Sprintf("n=%d", g.N(p)))
	}
	if g.m != 0 {
		params = append(params, fmt.Sprintf("m=%d", g.M(p)))
	}
	option := strings.Join(params, ";")
	if escape {
		option = `"` + option + `"`
	}
	return []string{"--kagen_option_string", option}, nil
}

// Name is independent of the requested parallelism: sizes appear as their
// base-two exponents, so weak-scaling runs of the same spec share a name.
func (g *KaGenGraph) Name() string {
	var parts []string
	if g.n != 0 {
		parts = append(parts, fmt.Sprintf("n=%d", log2(g.n)))
	}
	if g.m != 0 {
		parts = append(parts, fmt.Sprintf("m=%d", log2(g.m)))
	}
	parts = append(parts, g.stringifyParams()...)
	if g.scaleWeak {
		parts = append(parts, "weak")
	}
	return slug.Make("kagen_" + strings.Join(parts, "_"))
}

// stringifyParams renders the free-form parameters in sorted key order so
// option strings and names are reproducible.
func (g *KaGenGraph) stringifyParams() []string {
	params := make([]string, 0, len(g.params))
	for _, key := range slices.Sorted(maps.Keys(g.params)) {
		if b, ok := g.params[key].(bool); ok {
			if b {
				params = append(params, key)
			}
			continue
		}
		params = append(params, key+"="+formatValue(g.params[key]))
	}
	return params
}

func log2(v int64) int {
	return 63 - bits.LeadingZeros64(uint64(v))
}
