package suite

import (
	"maps"
	"slices"
)

// Explode expands a configuration containing list-valued fields into the
// Cartesian product of fully scalar configurations: the first list-valued
// field (in sorted key order, so config-index numbering is reproducible) is
// replaced by each of its elements in turn and every copy is expanded
// recursively. A configuration without list values expands to itself, so an
// empty mapping yields a single empty configuration.
func Explode(config Params) []Params {
	for _, key := range slices.Sorted(maps.Keys(config)) {
		list, ok := config[key].([]any)
		if !ok {
			continue
		}
		exploded := make([]Params, 0, len(list))
		for _, element := range list {
			variant := config.Clone()
			variant[key] = element
			exploded = append(exploded, Explode(variant)...)
		}
		return exploded
	}
	return []Params{config}
}
