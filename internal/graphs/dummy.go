package graphs

import (
	"errors"
	"maps"
	"slices"
	"strings"

	"github.com/gosimple/slug"
)

// DummyGraph is a synthetic input: a free-form name plus parameters that are
// passed straight through to the executable. Useful for benchmarks whose
// "input" is not a graph at all.
type DummyGraph struct {
	name   string
	params map[string]any
}

// NewDummyGraph builds a synthetic input from a parameter set containing at
// least a "name" field.
func NewDummyGraph(spec map[string]any) (*DummyGraph, error) {
	name, ok := spec["name"].(string)
	if !ok || name == "" {
		return nil, errors.New("dummy instance requires a name")
	}
	params := make(map[string]any, len(spec))
	maps.Copy(params, spec)
	delete(params, "name")
	return &DummyGraph{name: name, params: params}, nil
}

// Args renders each parameter as a --key "value" pair. Booleans become bare
// flags. The reserved key "nokey" passes its value without a flag.
func (g *DummyGraph) Args(mpiRanks, threadsPerRank int, escape bool) ([]string, error) {
	var args []string
	for _, key := range slices.Sorted(maps.Keys(g.params)) {
		if key != "nokey" {
			args = append(args, "--"+key)
		}
		if _, isBool := g.params[key].(bool); !isBool {
			args = append(args, `"`+formatValue(g.params[key])+`"`)
		}
	}
	return args, nil
}

func (g *DummyGraph) Name() string {
	params := make([]string, 0, len(g.params))
	for _, key := range slices.Sorted(maps.Keys(g.params)) {
		if _, isBool := g.params[key].(bool); isBool {
			params = append(params, key)
			continue
		}
		params = append(params, key+"="+formatValue(g.params[key]))
	}
	return slug.Make(g.name + "_" + strings.Join(params, "_"))
}
