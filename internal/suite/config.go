package suite

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
)

// Params is one fully scalar configuration: flag name to value, where the
// value is a boolean, a number or a string. List-valued fields only exist
// before expansion; see Explode.
type Params map[string]any

// Clone returns a shallow copy. Runners mutate per-job copies (seed, output
// path injection) and must never write through to the suite's config list.
func (p Params) Clone() Params {
	clone := make(Params, len(p))
	maps.Copy(clone, p)
	return clone
}

// Flags renders the configuration as command-line tokens in sorted key
// order. A true boolean becomes a bare flag, a false one is omitted, and any
// other value is the flag followed by its stringified value as a separate
// token. Single-character names get a single dash.
func (p Params) Flags() []string {
	var flags []string
	for _, name := range slices.Sorted(maps.Keys(p)) {
		dash := "--"
		if len(name) == 1 {
			dash = "-"
		}
		if b, ok := p[name].(bool); ok {
			if b {
				flags = append(flags, dash+name)
			}
			continue
		}
		flags = append(flags, dash+name, FormatValue(p[name]))
	}
	return flags
}

// FormatValue renders a scalar flag value. Numbers decoded from HCL arrive
// as float64; integral values must not pick up a decimal point or exponent.
func FormatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		if x == math.Trunc(x) && math.Abs(x) < 1e15 {
			return strconv.FormatInt(int64(x), 10)
		}
		return strconv.FormatFloat(x, 'g', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
