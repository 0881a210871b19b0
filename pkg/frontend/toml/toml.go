// Package toml implements the document-tree front-end for TOML manifests
// (spec §4.1, §6), decoding with github.com/BurntSushi/toml — the same
// library the pack's surge project manifest loader uses.
package toml

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/chipforge/drivergen/pkg/diag"
	"github.com/chipforge/drivergen/pkg/frontend/tree"
	"github.com/chipforge/drivergen/pkg/mir"
	"github.com/chipforge/drivergen/pkg/source"
)

// Parse decodes a TOML manifest into MIR.
func Parse(name string, contents []byte) (*mir.Manifest, *diag.Diagnostics, error) {
	file := source.NewFile(name, contents)

	var doc map[string]any
	if _, err := toml.Decode(string(contents), &doc); err != nil {
		return nil, nil, fmt.Errorf("%s: invalid TOML: %w", name, err)
	}

	root, err := tree.FromGeneric(normalize(doc))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", name, err)
	}

	manifest, diagnostics := tree.Build(root, file)

	return manifest, diagnostics, nil
}

// normalize widens BurntSushi/toml's int64 (already int64, kept for
// symmetry with the YAML front-end) and recurses through nested
// map[string]any/[]any so tree.FromGeneric sees a uniform shape.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalize(val)
		}

		return out
	case []map[string]any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalize(val)
		}

		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalize(val)
		}

		return out
	default:
		return v
	}
}
