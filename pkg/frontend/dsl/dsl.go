// Package dsl implements the bespoke brace-and-const manifest syntax (spec
// §6 "DSL"). It lexes and parses directly to the shared tree.Node shape
// (tree/node.go) so format equivalence with KDL/JSON/YAML/TOML holds by
// construction (spec §8 property 1).
package dsl

import (
	"fmt"

	"github.com/chipforge/drivergen/pkg/diag"
	"github.com/chipforge/drivergen/pkg/frontend/tree"
	"github.com/chipforge/drivergen/pkg/mir"
	"github.com/chipforge/drivergen/pkg/source"
)

// Parse lexes and parses a DSL manifest into MIR.
func Parse(name string, contents []byte) (*mir.Manifest, *diag.Diagnostics, error) {
	file := source.NewFile(name, contents)

	root, err := parseDocument(contents)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", name, err)
	}

	manifest, diagnostics := tree.Build(root, file)

	return manifest, diagnostics, nil
}
