// Package json implements the document-tree front-end for JSON manifests
// (spec §4.1, §6). It decodes with the standard library decoder — no pack
// example reaches for a third-party JSON library for schema-less decoding,
// and encoding/json's json.Number preserves integer attributes exactly
// through the shared tree.FromGeneric conversion (see DESIGN.md).
package json

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/chipforge/drivergen/pkg/diag"
	"github.com/chipforge/drivergen/pkg/frontend/tree"
	"github.com/chipforge/drivergen/pkg/mir"
	"github.com/chipforge/drivergen/pkg/source"
)

// Parse decodes a JSON manifest into MIR.
func Parse(name string, contents []byte) (*mir.Manifest, *diag.Diagnostics, error) {
	file := source.NewFile(name, contents)

	dec := json.NewDecoder(bytes.NewReader(contents))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, nil, fmt.Errorf("%s: invalid JSON: %w", name, err)
	}

	root, err := tree.FromGeneric(doc)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", name, err)
	}

	manifest, diagnostics := tree.Build(root, file)

	return manifest, diagnostics, nil
}
