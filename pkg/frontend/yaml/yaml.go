// Package yaml implements the document-tree front-end for YAML manifests
// (spec §4.1, §6), decoding with gopkg.in/yaml.v3.
package yaml

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/chipforge/drivergen/pkg/diag"
	"github.com/chipforge/drivergen/pkg/frontend/tree"
	"github.com/chipforge/drivergen/pkg/mir"
	"github.com/chipforge/drivergen/pkg/source"
)

// Parse decodes a YAML manifest into MIR.
func Parse(name string, contents []byte) (*mir.Manifest, *diag.Diagnostics, error) {
	file := source.NewFile(name, contents)

	var doc any
	if err := yaml.Unmarshal(contents, &doc); err != nil {
		return nil, nil, fmt.Errorf("%s: invalid YAML: %w", name, err)
	}

	root, err := tree.FromGeneric(normalize(doc))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", name, err)
	}

	manifest, diagnostics := tree.Build(root, file)

	return manifest, diagnostics, nil
}

// normalize recursively rewrites yaml.v3's map[string]interface{} (which it
// produces directly for string keys) and any stray
// map[interface{}]interface{} from looser documents into the
// map[string]any/[]any shape tree.FromGeneric expects, and widens yaml's
// int/uint64 scalar types to int64.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalize(val)
		}

		return out
	case map[any]any:
		out := make(map[string]any, len(t))

		for k, val := range t {
			out[fmt.Sprint(k)] = normalize(val)
		}

		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalize(val)
		}

		return out
	case int:
		return int64(t)
	case uint64:
		return int64(t)
	default:
		return v
	}
}
