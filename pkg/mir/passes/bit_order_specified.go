package passes

import (
	"github.com/chipforge/drivergen/pkg/diag"
	"github.com/chipforge/drivergen/pkg/mir"
)

// BitOrderSpecified inherits missing per-field-set bit orders from the
// effective config, defaulting to LSB0 (spec §4.5 pass 4, invariant 10).
//
// Grounded on
// original_source/compiler/src/mir/passes/bit_order_specified.rs (and the
// generation/ crate's variant of the same pass).
func BitOrderSpecified(manifest *mir.Manifest, _ *diag.Diagnostics) map[mir.UniqueId]struct{} {
	c := mir.NewCursor(manifest)
	for c.Next() {
		fs, ok := c.Object().(*mir.FieldSet)
		if !ok {
			continue
		}

		if fs.BitOrder == mir.BitOrderUnspecified {
			fs.BitOrder = c.Config().BitOrderOrDefault()
		}
	}

	return nil
}
