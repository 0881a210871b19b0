package passes

import (
	"github.com/chipforge/drivergen/pkg/diag"
	"github.com/chipforge/drivergen/pkg/mir"
)

// PropagateCfg combines every object's own cfg attribute with the
// conjunction of its ancestor blocks' cfg attributes, so downstream codegen
// can emit a single guard per generated item without re-walking the tree
// (spec §4.5 pass 10; §3 "Cfg"). Inline enum conversions on fields pick up
// their owning field's effective cfg too.
//
// Grounded on original_source/generation/src/mir/passes/propagate_cfg.rs.
func PropagateCfg(manifest *mir.Manifest, _ *diag.Diagnostics) map[mir.UniqueId]struct{} {
	for _, device := range manifest.Devices {
		propagateObjects(device.Objects, mir.NoCfg)
	}

	return nil
}

func propagateObjects(objs []mir.Object, ancestor mir.Cfg) {
	for _, o := range objs {
		effective := ancestor.Combine(o.CfgAttr())
		o.SetCfgAttr(effective)

		switch v := o.(type) {
		case *mir.Block:
			propagateObjects(v.Objects, effective)
		case *mir.FieldSet:
			propagateFields(v.Fields, effective)
		case *mir.Register:
			if v.FieldSet != nil {
				propagateFields(v.FieldSet.Fields, effective)
			}
		case *mir.Command:
			if v.InFieldSet != nil {
				propagateFields(v.InFieldSet.Fields, effective)
			}

			if v.OutFieldSet != nil {
				propagateFields(v.OutFieldSet.Fields, effective)
			}
		}
	}
}

func propagateFields(fields []*mir.Field, owner mir.Cfg) {
	for _, f := range fields {
		effective := owner.Combine(f.Cfg)
		f.Cfg = effective

		if f.Conversion != nil && f.Conversion.EnumValue != nil {
			f.Conversion.EnumValue.SetCfgAttr(effective.Combine(f.Conversion.EnumValue.CfgAttr()))
		}
	}
}
