package passes

import (
	"fmt"

	"github.com/chipforge/drivergen/pkg/diag"
	"github.com/chipforge/drivergen/pkg/mir"
)

// BaseTypesSpecified resolves Unspecified base types to Bool (1-bit fields)
// or Uint (wider), then promotes Uint/Int to the smallest FixedSize integer
// that holds the field's bit span. Emits a diagnostic if no supported
// integer fits (spec §4.5 pass 5, invariant 3).
//
// Grounded on
// original_source/compiler/src/mir/passes/base_types_specified.rs.
func BaseTypesSpecified(manifest *mir.Manifest, diagnostics *diag.Diagnostics) map[mir.UniqueId]struct{} {
	removed := map[mir.UniqueId]struct{}{}

	c := mir.NewCursor(manifest)
	for c.Next() {
		fs, ok := c.Object().(*mir.FieldSet)
		if !ok {
			continue
		}

		for _, f := range fs.Fields {
			sizeBits := f.Width()

			if f.BaseType.Kind == mir.BaseTypeUnspecified {
				if sizeBits == 1 {
					f.BaseType.Kind = mir.BaseTypeBool
				} else {
					f.BaseType.Kind = mir.BaseTypeUint
				}
			}

			signed := f.BaseType.Kind == mir.BaseTypeInt
			if f.BaseType.Kind != mir.BaseTypeUint && f.BaseType.Kind != mir.BaseTypeInt {
				continue
			}

			in, ok := mir.FindSmallestInteger(signed, sizeBits)
			if !ok {
				diagnostics.Add(diag.Report{
					Severity: diag.Error,
					Code:     CodeUnsupportedBitSize,
					Message: fmt.Sprintf(
						"field %q on field set %q uses %d bits which is too big for any of the supported integers",
						f.Name.Value(), fs.Name().Value(), sizeBits),
				})
				removed[fs.ID()] = struct{}{}

				continue
			}

			f.BaseType = mir.BaseType{Kind: mir.BaseTypeFixed, Integer: in}
		}
	}

	return removed
}
