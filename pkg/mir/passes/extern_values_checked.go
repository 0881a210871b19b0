package passes

import (
	"fmt"

	"github.com/chipforge/drivergen/pkg/diag"
	"github.com/chipforge/drivergen/pkg/mir"
)

// ExternValuesChecked requires that every Extern has a fully fixed-size base
// type; a missing or dynamic width is an error (spec §4.5 pass 7, invariant
// 9).
//
// Grounded on
// original_source/compiler/src/mir/passes/extern_values_checked.rs.
func ExternValuesChecked(manifest *mir.Manifest, diagnostics *diag.Diagnostics) map[mir.UniqueId]struct{} {
	removed := map[mir.UniqueId]struct{}{}

	c := mir.NewCursor(manifest)
	for c.Next() {
		ext, ok := c.Object().(*mir.Extern)
		if !ok {
			continue
		}

		name := ext.Name().Value()

		switch {
		case ext.BaseType.Kind == mir.BaseTypeBool:
			diagnostics.Add(diag.Report{
				Severity: diag.Error,
				Code:     CodeExternInvalidBaseType,
				Message:  fmt.Sprintf("extern %q uses a bool as base type, which is not allowed", name),
			})
			removed[ext.ID()] = struct{}{}

			continue
		case ext.BaseType.Kind == mir.BaseTypeUnspecified && ext.SizeBits == nil:
			diagnostics.Add(diag.Report{
				Severity: diag.Error,
				Code:     CodeExternInvalidBaseType,
				Message:  fmt.Sprintf("extern %q has an unspecified base type and no bit size; this is not allowed", name),
			})
			removed[ext.ID()] = struct{}{}

			continue
		case (ext.BaseType.Kind == mir.BaseTypeUint || ext.BaseType.Kind == mir.BaseTypeInt) && ext.SizeBits == nil:
			diagnostics.Add(diag.Report{
				Severity: diag.Error,
				Code:     CodeExternInvalidBaseType,
				Message:  fmt.Sprintf("extern %q uses a dynamic-width integer base type without a bit size; this is not allowed", name),
			})
			removed[ext.ID()] = struct{}{}

			continue
		}

		var (
			in       mir.Integer
			foundOk  bool
			sizeBits uint32
		)

		switch ext.BaseType.Kind {
		case mir.BaseTypeFixed:
			if ext.SizeBits != nil && ext.BaseType.Integer.Bits() < *ext.SizeBits {
				diagnostics.Add(diag.Report{
					Severity: diag.Error,
					Code:     CodeExternInvalidBaseType,
					Message: fmt.Sprintf(
						"extern %q specifies a bit size larger than its base type", name),
				})
				removed[ext.ID()] = struct{}{}

				continue
			}

			in, foundOk = ext.BaseType.Integer, true
			if ext.SizeBits != nil {
				sizeBits = *ext.SizeBits
			} else {
				sizeBits = in.Bits()
			}
		default: // Uint, Int, Unspecified (each with a bit size)
			signed := ext.BaseType.Kind == mir.BaseTypeInt
			sizeBits = *ext.SizeBits
			in, foundOk = mir.FindSmallestInteger(signed, sizeBits)
		}

		if !foundOk {
			diagnostics.Add(diag.Report{
				Severity: diag.Error,
				Code:     CodeUnsupportedBitSize,
				Message:  fmt.Sprintf("no valid base type could be selected for extern %q", name),
			})
			removed[ext.ID()] = struct{}{}

			continue
		}

		ext.BaseType = mir.BaseType{Kind: mir.BaseTypeFixed, Integer: in}
		ext.SizeBits = &sizeBits
	}

	return removed
}
