// Package tmpl renders the plain-text command and job-script templates.
// Templates are data, not logic: they carry ${name} placeholders that are
// substituted from a flat string map.
package tmpl

import (
	"fmt"
	"io"
	"os"

	"github.com/valyala/fasttemplate"
)

const (
	startTag = "${"
	endTag   = "}"
)

// Render substitutes every ${name} placeholder in template from vars. A
// placeholder without a mapping is a configuration error; job scripts with
// holes must never be written out.
func Render(template string, vars map[string]string) (string, error) {
	return fasttemplate.ExecuteFuncStringWithErr(template, startTag, endTag,
		func(w io.Writer, tag string) (int, error) {
			value, ok := vars[tag]
			if !ok {
				return 0, fmt.Errorf("template references %q but no value was provided", tag)
			}
			return io.WriteString(w, value)
		})
}

// Load returns the template at path when one is given, otherwise the
// compiled-in fallback.
func Load(path, fallback string) (string, error) {
	if path == "" {
		return fallback, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading template: %w", err)
	}
	return string(data), nil
}
