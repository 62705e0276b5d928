// Package graphs normalizes heterogeneous benchmark inputs (files on disk,
// procedural generators, synthetic dummies) behind a single argument-producing
// interface. Every input has a stable, filesystem-safe name so that job files
// and logs can be keyed by it.
package graphs

import (
	"fmt"
	"math"
	"strconv"
)

// Graph is a single benchmark input.
type Graph interface {
	// Name returns a stable slug usable as a path component.
	Name() string
	// Args produces the command-line arguments that select this input for a
	// job with the given parallelism. escape controls whether generator
	// option strings are shell-quoted into a single token.
	Args(mpiRanks, threadsPerRank int, escape bool) ([]string, error)
}

// formatValue renders a scalar parameter value the way the benchmark
// executables expect it on the command line. Numbers decoded from HCL arrive
// as float64; integral values must not pick up a decimal point or exponent.
func formatValue(v any) string {
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

// toInt64 coerces a decoded HCL scalar into an integer.
func toInt64(v any) (int64, error) {
	switch x := v.(type) {
	case int:
		return int64(x), nil
	case int64:
		return x, nil
	case float64:
		if x != math.Trunc(x) {
			return 0, fmt.Errorf("expected an integer, got %v", x)
		}
		return int64(x), nil
	default:
		return 0, fmt.Errorf("expected an integer, got %T", v)
	}
}
