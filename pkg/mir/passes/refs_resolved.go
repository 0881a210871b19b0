package passes

import (
	"github.com/chipforge/drivergen/pkg/diag"
	"github.com/chipforge/drivergen/pkg/mir"
)

// RefsResolved rewrites every Ref into a concrete object carrying the
// target's attributes, overlaid with the ref's own overrides. The resolved
// object keeps the *same* FieldSet pointer as its target, so two refs to the
// same register share one generated field-set type (spec §8 property 6,
// scenario S4). This pass assumes every Ref is valid; RefsValidated must run
// first (spec §4.5 pass 8b).
//
// Grounded on
// original_source/generation/src/mir/passes/refs_resolved.rs.
func RefsResolved(manifest *mir.Manifest, _ *diag.Diagnostics) map[mir.UniqueId]struct{} {
	c := mir.NewCursor(manifest)

	for c.Next() {
		ref, ok := c.Object().(*mir.Ref)
		if !ok {
			continue
		}

		target := followRefChain(objectsOwnerDevice(manifest, ref), ref)
		if target == nil {
			continue // already reported by RefsValidated; should not happen post-filter
		}

		c.Set(materialize(manifest, ref, target))
	}

	return nil
}

func followRefChain(device *mir.Device, ref *mir.Ref) mir.Object {
	name := ref.TargetName

	for i := 0; i < len(device.Objects)+1; i++ {
		target, ok := mir.FindObjectByName(device, name)
		if !ok {
			return nil
		}

		next, isRef := target.(*mir.Ref)
		if !isRef {
			return target
		}

		name = next.TargetName
	}

	return nil
}

func materialize(manifest *mir.Manifest, ref *mir.Ref, target mir.Object) mir.Object {
	id := manifest.NewID()

	switch t := target.(type) {
	case *mir.Register:
		clone := *t
		clone.Base = mir.Base{}
		clone.FieldSet = t.FieldSet
		clone.AliasOf = t.ID()
		setCommon(&clone.Base, id, ref)

		if ref.Overrides.Address != nil {
			clone.Address = *ref.Overrides.Address
		}

		return &clone
	case *mir.Command:
		clone := *t
		clone.Base = mir.Base{}
		clone.InFieldSet = t.InFieldSet
		clone.OutFieldSet = t.OutFieldSet
		clone.AliasOf = t.ID()
		setCommon(&clone.Base, id, ref)

		if ref.Overrides.Address != nil {
			clone.Address = *ref.Overrides.Address
		}

		return &clone
	case *mir.Buffer:
		clone := *t
		clone.Base = mir.Base{}
		clone.AliasOf = t.ID()
		setCommon(&clone.Base, id, ref)

		if ref.Overrides.Address != nil {
			clone.Address = *ref.Overrides.Address
		}

		return &clone
	default:
		// Blocks, field sets, enums, externs are not valid ref targets at
		// this point (RefsValidated's kind check would have removed the ref
		// already); fall back to leaving the ref in place defensively.
		return ref
	}
}

func setCommon(b *mir.Base, id mir.UniqueId, ref *mir.Ref) {
	*b = mir.Base{}
	b.AssignID(id)
	b.SetName(ref.Name())
	b.SetDescription(ref.Description())
	b.SetCfgAttr(ref.CfgAttr())
}
