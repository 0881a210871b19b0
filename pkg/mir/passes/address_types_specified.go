package passes

import (
	"fmt"

	"github.com/chipforge/drivergen/pkg/diag"
	"github.com/chipforge/drivergen/pkg/mir"
)

// AddressTypesSpecified requires that, for each object kind actually used
// (register/command/buffer), the corresponding address type is declared in
// the effective config (spec §4.5 pass 3, invariant 4).
//
// Grounded on
// original_source/compiler/src/mir/passes/address_types_specified.rs.
func AddressTypesSpecified(manifest *mir.Manifest, diagnostics *diag.Diagnostics) map[mir.UniqueId]struct{} {
	removed := map[mir.UniqueId]struct{}{}

	c := mir.NewCursor(manifest)
	for c.Next() {
		obj := c.Object()
		cfg := c.Config()

		var (
			kindName string
			missing  bool
		)

		switch obj.(type) {
		case *mir.Register:
			kindName, missing = "register", cfg.RegisterAddressType == nil
		case *mir.Command:
			kindName, missing = "command", cfg.CommandAddressType == nil
		case *mir.Buffer:
			kindName, missing = "buffer", cfg.BufferAddressType == nil
		default:
			continue
		}

		if !missing {
			continue
		}

		diagnostics.Add(diag.Report{
			Severity: diag.Error,
			Code:     CodeMissingAddressType,
			Message: fmt.Sprintf(
				"no %s address type is specified in the device config, but it's required since %s %q is defined",
				kindName, kindName, obj.Name().Value()),
		})
		removed[obj.ID()] = struct{}{}
	}

	return removed
}
