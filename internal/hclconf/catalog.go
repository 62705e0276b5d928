package hclconf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/expgridgo/internal/ctxlog"
	"github.com/vk/expgridgo/internal/graphs"
)

// catalogRoot decodes the top-level blocks of an input catalog file.
type catalogRoot struct {
	Inputs []*inputBlock `hcl:"input,block"`
}

type inputBlock struct {
	Name       string            `hcl:"name,label"`
	Path       string            `hcl:"path"`
	Format     string            `hcl:"format,optional"`
	Partitions map[string]string `hcl:"partitions,optional"`
}

// LoadCatalog reads all input catalog files below the given paths (a path
// may be a single .hcl file or a directory searched recursively) and returns
// the input map plus the partitioning table keyed by input name and rank
// count. Non-existent paths are skipped, matching an optional catalog.
func LoadCatalog(ctx context.Context, paths ...string) (map[string]*graphs.FileGraph, map[string]map[int]string, error) {
	logger := ctxlog.FromContext(ctx)

	catalog := make(map[string]*graphs.FileGraph)
	partitions := make(map[string]map[int]string)

	files, err := findHCLFiles(paths)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("Discovered catalog files.", "count", len(files))

	parser := hclparse.NewParser()
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, nil, fmt.Errorf("failed to parse catalog file %s: %w", file, diags)
		}
		var root catalogRoot
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
			return nil, nil, fmt.Errorf("failed to decode catalog file %s: %w", file, diags)
		}
		for _, input := range root.Inputs {
			format := graphs.Format(input.Format)
			if input.Format == "" {
				format = graphs.FormatMetis
			}
			catalog[input.Name] = graphs.NewFileGraph(input.Name, input.Path, format)
			if len(input.Partitions) == 0 {
				continue
			}
			table := make(map[int]string, len(input.Partitions))
			for ranks, path := range input.Partitions {
				n, err := strconv.Atoi(ranks)
				if err != nil {
					return nil, nil, fmt.Errorf("catalog input %q: partition key %q is not a rank count", input.Name, ranks)
				}
				table[n] = path
			}
			partitions[input.Name] = table
		}
	}

	logger.Debug("Catalog loaded.", "inputs", len(catalog))
	return catalog, partitions, nil
}

// findHCLFiles walks all given paths and returns a flat, de-duplicated list
// of the .hcl files found.
func findHCLFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})

	add := func(p string) {
		if _, wasSeen := seen[p]; !wasSeen {
			allFiles = append(allFiles, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		if path == "" {
			continue
		}
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue // It's not an error if a configured path doesn't exist.
			}
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}
		if !info.IsDir() {
			add(path)
			continue
		}
		err = filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !info.IsDir() && filepath.Ext(p) == ".hcl" {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return allFiles, nil
}
