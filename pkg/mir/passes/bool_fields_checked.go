package passes

import (
	"fmt"

	"github.com/chipforge/drivergen/pkg/diag"
	"github.com/chipforge/drivergen/pkg/mir"
)

// BoolFieldsChecked checks that every Bool field occupies exactly one bit:
// a zero-width field is extended to one bit, a wider one is reported and
// truncated to one bit so later passes stay well-typed (spec §4.5 pass 6,
// invariant 2).
//
// Grounded on
// original_source/compiler/src/mir/passes/bool_fields_checked.rs.
func BoolFieldsChecked(manifest *mir.Manifest, diagnostics *diag.Diagnostics) map[mir.UniqueId]struct{} {
	c := mir.NewCursor(manifest)
	for c.Next() {
		fs, ok := c.Object().(*mir.FieldSet)
		if !ok {
			continue
		}

		for _, f := range fs.Fields {
			if f.BaseType.Kind != mir.BaseTypeBool {
				continue
			}

			if f.Start == f.End {
				f.End = f.Start + 1
			}

			if f.Width() != 1 {
				diagnostics.Add(diag.Report{
					Severity: diag.Error,
					Code:     CodeBoolFieldTooLarge,
					Message: fmt.Sprintf(
						"bool field %q on field set %q spans %d bits; a bool field must be exactly one bit",
						f.Name.Value(), fs.Name().Value(), f.Width()),
				})
				f.End = f.Start + 1
			}
		}
	}

	return nil
}
