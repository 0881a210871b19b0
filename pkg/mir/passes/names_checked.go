package passes

import (
	"fmt"

	"github.com/chipforge/drivergen/pkg/diag"
	"github.com/chipforge/drivergen/pkg/ident"
	"github.com/chipforge/drivergen/pkg/mir"
)

// NamesChecked applies the configured word boundaries to every identifier
// and validates them (spec §4.5 pass 1). Devices are skipped: their name
// rules are checked by DeviceNameIsPascal instead.
//
// Grounded on original_source/compiler/src/mir/passes/names_checked.rs.
func NamesChecked(manifest *mir.Manifest, diagnostics *diag.Diagnostics) map[mir.UniqueId]struct{} {
	removed := map[mir.UniqueId]struct{}{}

	c := mir.NewCursor(manifest)
	for c.Next() {
		obj := c.Object()
		if obj.Kind() == mir.KindDevice {
			continue
		}

		boundaries := c.Config().BoundaryDirective()

		name := checkIdentifier(obj.Name(), boundaries, diagnostics, removed, obj.ID())
		obj.SetName(name)

		switch o := obj.(type) {
		case *mir.FieldSet:
			for _, f := range o.Fields {
				f.Name = checkIdentifier(f.Name, boundaries, diagnostics, removed, obj.ID())

				if f.Conversion != nil && f.Conversion.Kind == mir.ConversionEnum {
					f.Conversion.TypeName = checkIdentifier(f.Conversion.TypeName, boundaries, diagnostics, removed, obj.ID())
				}
			}
		case *mir.Enum:
			for i := range o.Variants {
				o.Variants[i].Name = checkIdentifier(o.Variants[i].Name, boundaries, diagnostics, removed, obj.ID())
			}
		}
	}

	return removed
}

func checkIdentifier(id ident.Identifier, boundaries string, diagnostics *diag.Diagnostics, removed map[mir.UniqueId]struct{}, owner mir.UniqueId) ident.Identifier {
	id = id.ApplyBoundaries(boundaries)
	if err := id.CheckValidity(); err != nil {
		diagnostics.Add(diag.Report{
			Severity: diag.Error,
			Code:     CodeInvalidIdentifier,
			Message:  fmt.Sprintf("invalid identifier: %s", err),
		})
		removed[owner] = struct{}{}
	}

	return id
}
