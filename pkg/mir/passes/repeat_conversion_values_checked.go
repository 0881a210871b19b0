package passes

import (
	"fmt"

	"github.com/chipforge/drivergen/pkg/diag"
	"github.com/chipforge/drivergen/pkg/mir"
)

// RepeatConversionValuesChecked verifies that a Repeat's enum-valued count
// only uses an infallible conversion with no default/catch-all variants,
// and marks such enums "index-style" so codegen emits a plain cast rather
// than a fallible conversion (spec §4.5 pass 9).
//
// Grounded on
// original_source/generation/src/mir/passes/repeat_conversion_values_checked.rs.
func RepeatConversionValuesChecked(manifest *mir.Manifest, diagnostics *diag.Diagnostics) map[mir.UniqueId]struct{} {
	removed := map[mir.UniqueId]struct{}{}

	c := mir.NewCursor(manifest)
	for c.Next() {
		obj := c.Object()

		repeat := repeatOf(obj)
		if repeat == nil || repeat.Conversion == nil {
			continue
		}

		conv := repeat.Conversion
		if conv.UseTry {
			diagnostics.Add(diag.Report{
				Severity: diag.Error,
				Code:     CodeRepeatTryConversion,
				Message:  fmt.Sprintf("try conversions are not supported for repeat counts: found on object %q", obj.Name().Value()),
			})
			removed[obj.ID()] = struct{}{}

			continue
		}

		enumObj, found := mir.FindObjectByName(objectsOwnerDevice(manifest, obj), conv.EnumName)

		enumVal, isEnum := enumObj.(*mir.Enum)
		if !found || !isEnum {
			diagnostics.Add(diag.Report{
				Severity: diag.Error,
				Code:     CodeUnresolvedRef,
				Message:  fmt.Sprintf("repeat count of object %q names enum %q, which does not exist", obj.Name().Value(), conv.EnumName),
			})
			removed[obj.ID()] = struct{}{}

			continue
		}

		enumVal.GenerationStyle = mir.EnumStyleIndex

		for _, v := range enumVal.Variants {
			if v.Kind == mir.EnumValueDefault || v.Kind == mir.EnumValueCatchAll {
				diagnostics.Add(diag.Report{
					Severity: diag.Error,
					Code:     CodeRepeatCatchAllVariant,
					Message: fmt.Sprintf(
						"repeat count conversions don't support 'default' or 'catch-all' variants: found on object %q",
						obj.Name().Value()),
				})
				removed[obj.ID()] = struct{}{}

				break
			}
		}
	}

	return removed
}

func repeatOf(obj mir.Object) *mir.Repeat {
	switch o := obj.(type) {
	case *mir.Block:
		return o.Repeat
	case *mir.Register:
		return o.Repeat
	case *mir.Command:
		return o.Repeat
	case *mir.Buffer:
		return o.Repeat
	default:
		return nil
	}
}

// objectsOwnerDevice finds the device containing obj, so enum lookups by
// name can be scoped the same way ref resolution is. With a small number of
// devices per manifest a linear scan is simplest.
func objectsOwnerDevice(manifest *mir.Manifest, obj mir.Object) *mir.Device {
	for _, d := range manifest.Devices {
		if containsID(d.Objects, obj.ID()) || d.ID() == obj.ID() {
			return d
		}
	}

	if len(manifest.Devices) > 0 {
		return manifest.Devices[0]
	}

	return nil
}

func containsID(objs []mir.Object, id mir.UniqueId) bool {
	for _, o := range objs {
		if o.ID() == id {
			return true
		}

		if b, ok := o.(*mir.Block); ok && containsID(b.Objects, id) {
			return true
		}
	}

	return false
}
