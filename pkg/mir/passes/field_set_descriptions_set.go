package passes

import (
	"github.com/chipforge/drivergen/pkg/diag"
	"github.com/chipforge/drivergen/pkg/mir"
)

// FieldSetDescriptionsSet gives an inline field set with no description of
// its own the description of the object that declares it (spec §4.5 pass
// 12).
//
// Grounded on
// original_source/generation/src/mir/passes/field_set_descriptions_set.rs.
func FieldSetDescriptionsSet(manifest *mir.Manifest, _ *diag.Diagnostics) map[mir.UniqueId]struct{} {
	c := mir.NewCursor(manifest)
	for c.Next() {
		obj := c.Object()
		if obj.Description() == "" {
			continue
		}

		for _, fs := range fieldSetsOf(obj) {
			if fs.Description() == "" {
				fs.SetDescription(obj.Description())
			}
		}
	}

	return nil
}

func fieldSetsOf(obj mir.Object) []*mir.FieldSet {
	switch v := obj.(type) {
	case *mir.Register:
		if v.FieldSet != nil {
			return []*mir.FieldSet{v.FieldSet}
		}
	case *mir.Command:
		var out []*mir.FieldSet
		if v.InFieldSet != nil {
			out = append(out, v.InFieldSet)
		}

		if v.OutFieldSet != nil {
			out = append(out, v.OutFieldSet)
		}

		return out
	}

	return nil
}
