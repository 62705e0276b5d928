package graphs

import (
	"fmt"

	"github.com/gosimple/slug"
)

// Ref is an unresolved reference to an input catalog entry. A suite loaded
// from its definition file holds Refs until it is resolved against the
// catalog, which replaces them with concrete FileGraphs.
type Ref struct {
	RefName     string
	Partitioned bool
}

func (r *Ref) Name() string {
	return slug.Make(r.RefName)
}

func (r *Ref) Args(mpiRanks, threadsPerRank int, escape bool) ([]string, error) {
	return nil, fmt.Errorf("input %q has not been resolved against the catalog", r.RefName)
}
