package passes

import (
	"fmt"

	"github.com/chipforge/drivergen/pkg/diag"
	"github.com/chipforge/drivergen/pkg/mir"
)

// EnumValuesSpecified assigns every variant without an explicit value the
// next integer after the previous explicit value, then checks the whole
// variant set for uniqueness and for fit within the enum's base integer
// type (spec §4.5 pass 13). CatchAll variants carry no raw value and are
// skipped entirely; a Default variant's raw value participates in both
// checks.
//
// A literal variant colliding with a Default's raw value is treated as an
// error (DESIGN.md Open Question decision (b): spec §9 left this open).
func EnumValuesSpecified(manifest *mir.Manifest, diagnostics *diag.Diagnostics) map[mir.UniqueId]struct{} {
	removed := map[mir.UniqueId]struct{}{}

	c := mir.NewCursor(manifest)
	for c.Next() {
		e, ok := c.Object().(*mir.Enum)
		if !ok {
			continue
		}

		seen := map[int64]string{}
		var next int64

		for i := range e.Variants {
			v := &e.Variants[i]
			if v.Kind == mir.EnumValueCatchAll {
				continue
			}

			if v.Kind == mir.EnumValueUnspecified {
				v.Value = next
				v.Kind = mir.EnumValueSpecified
			}

			if prior, collide := seen[v.Value]; collide {
				diagnostics.Add(diag.Report{
					Severity: diag.Error,
					Code:     CodeEnumValueOutOfRange,
					Message: fmt.Sprintf(
						"enum %q: variants %q and %q both resolve to value %d",
						e.Name().Value(), prior, v.Name.Value(), v.Value),
				})
				removed[e.ID()] = struct{}{}
			} else {
				seen[v.Value] = v.Name.Value()
			}

			if !fitsIn(v.Value, e.BaseType) {
				diagnostics.Add(diag.Report{
					Severity: diag.Error,
					Code:     CodeEnumValueOutOfRange,
					Message: fmt.Sprintf(
						"enum %q: variant %q value %d does not fit in %s",
						e.Name().Value(), v.Name.Value(), v.Value, e.BaseType.Integer),
				})
				removed[e.ID()] = struct{}{}
			}

			next = v.Value + 1
		}
	}

	return removed
}

func fitsIn(value int64, bt mir.BaseType) bool {
	if bt.Kind != mir.BaseTypeFixed {
		return true // not a fixed-size integer; no pass resolves enum base types, so the range is not checked
	}

	bits := bt.Integer.Bits()
	if bt.Integer.Signed() {
		min := -(int64(1) << (bits - 1))
		max := int64(1)<<(bits-1) - 1

		return value >= min && value <= max
	}

	if value < 0 {
		return false
	}

	if bits >= 64 {
		return true
	}

	return value < int64(1)<<bits
}
