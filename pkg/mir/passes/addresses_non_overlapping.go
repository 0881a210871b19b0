package passes

import (
	"fmt"

	"github.com/chipforge/drivergen/pkg/diag"
	"github.com/chipforge/drivergen/pkg/mir"
)

// AddressesNonOverlapping checks, within each field set, that every pair of
// fields has a disjoint bit range (spec §4.5 pass 11a, invariant 5). An
// overlap produces exactly one AddressOverlap diagnostic per offending pair
// and removes the field set, since a field set with overlapping ranges has
// no well-defined packed layout.
func AddressesNonOverlapping(manifest *mir.Manifest, diagnostics *diag.Diagnostics) map[mir.UniqueId]struct{} {
	removed := map[mir.UniqueId]struct{}{}

	c := mir.NewCursor(manifest)
	for c.Next() {
		fs, ok := c.Object().(*mir.FieldSet)
		if !ok {
			continue
		}

		fields := fs.Fields
		for i := 0; i < len(fields); i++ {
			for j := i + 1; j < len(fields); j++ {
				a, b := fields[i], fields[j]
				if a.Start < b.End && b.Start < a.End {
					diagnostics.Add(diag.Report{
						Severity: diag.Error,
						Code:     CodeAddressOverlap,
						Message: fmt.Sprintf(
							"fields %q (%d..%d) and %q (%d..%d) of field set %q overlap",
							a.Name.Value(), a.Start, a.End, b.Name.Value(), b.Start, b.End, fs.Name().Value()),
					})
					removed[fs.ID()] = struct{}{}
				}
			}
		}
	}

	return removed
}
