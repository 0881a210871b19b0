package passes

import (
	"fmt"

	"github.com/chipforge/drivergen/pkg/diag"
	"github.com/chipforge/drivergen/pkg/mir"
)

// AddressesUnique checks, within each parent scope (a Device's or Block's
// own Objects list), that no two siblings of the same address-owning kind
// claim the same address (spec §4.5 pass 11b, invariant 6). A colliding
// sibling is removed, keeping the earliest declaration.
//
// Reuses CodeDuplicateName rather than CodeAddressOverlap: AddressOverlap is
// reserved for the field bit-range invariant (spec §7 line "an overlap in
// input produces exactly one AddressOverlap diagnostic per pair"), which is
// specifically about packed bit layout, not address-space placement.
func AddressesUnique(manifest *mir.Manifest, diagnostics *diag.Diagnostics) map[mir.UniqueId]struct{} {
	removed := map[mir.UniqueId]struct{}{}

	for _, device := range manifest.Devices {
		checkScope(device.Objects, diagnostics, removed)
	}

	return removed
}

func checkScope(objs []mir.Object, diagnostics *diag.Diagnostics, removed map[mir.UniqueId]struct{}) {
	seen := map[mir.Kind]map[int64]mir.Object{}

	for _, o := range objs {
		addrs, kind, ok := addressesOf(o)
		if !ok {
			if b, isBlock := o.(*mir.Block); isBlock {
				checkScope(b.Objects, diagnostics, removed)
			}

			continue
		}

		byAddr, exists := seen[kind]
		if !exists {
			byAddr = map[int64]mir.Object{}
			seen[kind] = byAddr
		}

		for _, addr := range addrs {
			if prior, collide := byAddr[addr]; collide {
				diagnostics.Add(diag.Report{
					Severity: diag.Error,
					Code:     CodeDuplicateName,
					Message: fmt.Sprintf(
						"%q and %q both claim address %#x",
						prior.Name().Value(), o.Name().Value(), addr),
				})
				removed[o.ID()] = struct{}{}

				break
			}

			byAddr[addr] = o
		}
	}
}

// addressesOf returns every address an object occupies (expanding a
// statically-sized Repeat), along with the kind bucket it competes in.
// Objects with an enum-indexed repeat count are not expanded here since
// their variant count is not known until codegen; only their base address
// is checked.
func addressesOf(o mir.Object) ([]int64, mir.Kind, bool) {
	switch v := o.(type) {
	case *mir.Register:
		return expandRepeat(v.Address, v.Repeat), mir.KindRegister, true
	case *mir.Command:
		return expandRepeat(v.Address, v.Repeat), mir.KindCommand, true
	case *mir.Buffer:
		return expandRepeat(v.Address, v.Repeat), mir.KindBuffer, true
	default:
		return nil, mir.KindDevice, false
	}
}

func expandRepeat(base int64, repeat *mir.Repeat) []int64 {
	if repeat == nil || repeat.Conversion != nil {
		return []int64{base}
	}

	addrs := make([]int64, 0, repeat.Count)
	for i := int64(0); i < repeat.Count; i++ {
		addrs = append(addrs, base+i*repeat.Stride)
	}

	return addrs
}
