// Package hclconf loads suite definitions and input catalogs from HCL files
// and translates them into the format-agnostic suite model. Config blocks
// are exploded here, so a loaded suite only ever carries scalar
// configurations.
package hclconf

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/expgridgo/internal/ctxlog"
	"github.com/vk/expgridgo/internal/graphs"
	"github.com/vk/expgridgo/internal/suite"
)

// fileRoot decodes the top-level blocks of a suite definition file.
type fileRoot struct {
	Suites []*suiteBlock `hcl:"suite,block"`
}

type suiteBlock struct {
	Name           string            `hcl:"name,label"`
	Executable     string            `hcl:"executable"`
	Cores          []int             `hcl:"ncores"`
	ThreadsPerRank []int             `hcl:"threads_per_rank,optional"`
	Graphs         hcl.Expression    `hcl:"graphs,optional"`
	TasksPerNode   *int              `hcl:"tasks_per_node,optional"`
	TimeLimit      *int              `hcl:"time_limit,optional"`
	Seeds          []int             `hcl:"seeds,optional"`
	Generators     []*generatorBlock `hcl:"generator,block"`
	Configs        []*configBlock    `hcl:"config,block"`
}

// generatorBlock is a procedural input specification. The label selects the
// generator kind; everything else is free-form and passed to the generator.
type generatorBlock struct {
	Kind string   `hcl:"kind,label"`
	Body hcl.Body `hcl:",remain"`
}

// configBlock is a free-form configuration mapping, possibly list-valued.
type configBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// LoadSuite reads one suite definition from path. Config blocks are exploded
// into scalar configurations, kagen generator specs are exploded into one
// input per variant, and catalog references stay unresolved Refs until
// Suite.ResolveInputs runs.
func LoadSuite(ctx context.Context, path string) (*suite.Suite, error) {
	logger := ctxlog.FromContext(ctx)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse suite file %s: %w", path, diags)
	}
	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode suite file %s: %w", path, diags)
	}
	if len(root.Suites) != 1 {
		return nil, fmt.Errorf("suite file %s must contain exactly one suite block, found %d", path, len(root.Suites))
	}
	blk := root.Suites[0]

	s := suite.New(blk.Name, blk.Executable)
	s.Cores = blk.Cores
	if len(blk.ThreadsPerRank) > 0 {
		s.ThreadsPerRank = blk.ThreadsPerRank
	}
	if len(blk.Seeds) > 0 {
		s.Seeds = blk.Seeds
	}
	if blk.TasksPerNode != nil {
		s.TasksPerNode = *blk.TasksPerNode
	}
	if blk.TimeLimit != nil {
		s.TimeLimit = *blk.TimeLimit
	}

	if err := loadConfigs(s, blk.Configs); err != nil {
		return nil, err
	}
	if err := loadGraphRefs(s, blk.Graphs); err != nil {
		return nil, err
	}
	if err := loadGenerators(s, blk.Generators); err != nil {
		return nil, err
	}

	logger.Debug("Suite loaded.",
		"suite", s.Name,
		"inputs", len(s.Inputs),
		"configs", len(s.Configs),
		"cores", s.Cores,
	)
	return s, nil
}

// loadConfigs explodes every config block independently and concatenates the
// results. No config block means a single empty configuration.
func loadConfigs(s *suite.Suite, blocks []*configBlock) error {
	if len(blocks) == 0 {
		s.Configs = []suite.Params{{}}
		return nil
	}
	for _, blk := range blocks {
		m, err := decodeAttrs(blk.Body)
		if err != nil {
			return fmt.Errorf("config block: %w", err)
		}
		s.Configs = append(s.Configs, suite.Explode(m)...)
	}
	return nil
}

// loadGraphRefs decodes the graphs attribute: a list whose elements are
// either bare catalog names or {name, partitioned} objects.
func loadGraphRefs(s *suite.Suite, expr hcl.Expression) error {
	if expr == nil {
		return nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return fmt.Errorf("evaluating graphs: %w", diags)
	}
	if val.IsNull() {
		return nil
	}
	it := val.ElementIterator()
	for it.Next() {
		_, element := it.Element()
		switch {
		case element.Type() == cty.String:
			s.Inputs = append(s.Inputs, &graphs.Ref{RefName: element.AsString()})
		case element.Type().IsObjectType() || element.Type().IsMapType():
			ref, err := decodeGraphRef(element)
			if err != nil {
				return err
			}
			s.Inputs = append(s.Inputs, ref)
		default:
			return fmt.Errorf("graphs entries must be names or objects, got %s", element.Type().FriendlyName())
		}
	}
	return nil
}

func decodeGraphRef(element cty.Value) (*graphs.Ref, error) {
	native, err := ctyToNative(element)
	if err != nil {
		return nil, fmt.Errorf("graphs entry: %w", err)
	}
	obj := native.(map[string]any)
	name, ok := obj["name"].(string)
	if !ok || name == "" {
		return nil, fmt.Errorf("graphs entry is missing a name")
	}
	ref := &graphs.Ref{RefName: name}
	if partitioned, ok := obj["partitioned"].(bool); ok {
		ref.Partitioned = partitioned
	}
	return ref, nil
}

// loadGenerators constructs procedural inputs. A kagen spec may carry
// list-valued parameters and is exploded into one input per variant; a
// time_limit attribute becomes a per-input override rather than a generator
// parameter.
func loadGenerators(s *suite.Suite, blocks []*generatorBlock) error {
	for _, blk := range blocks {
		params, err := decodeAttrs(blk.Body)
		if err != nil {
			return fmt.Errorf("generator %q: %w", blk.Kind, err)
		}
		timeLimit := 0
		if v, ok := params["time_limit"]; ok {
			limit, err := toMinutes(v)
			if err != nil {
				return fmt.Errorf("generator %q: time_limit: %w", blk.Kind, err)
			}
			timeLimit = limit
			delete(params, "time_limit")
		}
		switch blk.Kind {
		case "kagen":
			for _, variant := range suite.Explode(params) {
				g, err := graphs.NewKaGenGraph(variant)
				if err != nil {
					return fmt.Errorf("generator %q: %w", blk.Kind, err)
				}
				s.Inputs = append(s.Inputs, g)
				if timeLimit > 0 {
					s.SetInputTimeLimit(g.Name(), timeLimit)
				}
			}
		case "dummy":
			g, err := graphs.NewDummyGraph(params)
			if err != nil {
				return fmt.Errorf("generator %q: %w", blk.Kind, err)
			}
			s.Inputs = append(s.Inputs, g)
			if timeLimit > 0 {
				s.SetInputTimeLimit(g.Name(), timeLimit)
			}
		default:
			return fmt.Errorf("%q is an unsupported generator kind, use one of [kagen, dummy]", blk.Kind)
		}
	}
	return nil
}

func toMinutes(v any) (int, error) {
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("expected a number, got %T", v)
	}
	return int(f), nil
}
