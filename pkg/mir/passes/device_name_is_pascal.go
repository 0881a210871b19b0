package passes

import (
	"fmt"

	"github.com/chipforge/drivergen/pkg/diag"
	"github.com/chipforge/drivergen/pkg/ident"
	"github.com/chipforge/drivergen/pkg/mir"
)

// DeviceNameIsPascal verifies device names use lenient PascalCase under the
// default boundary set, auto-normalizing and emitting a warning suggesting
// the canonical name; it removes the device if the identifier is
// structurally invalid (spec §4.5 pass 2).
//
// Grounded on
// original_source/compiler/src/mir/passes/device_name_is_pascal.rs.
func DeviceNameIsPascal(manifest *mir.Manifest, diagnostics *diag.Diagnostics) map[mir.UniqueId]struct{} {
	removed := map[mir.UniqueId]struct{}{}

	for _, device := range manifest.Devices {
		name := device.Name().ApplyBoundaries(ident.DefaultBoundaryDirective)

		if err := name.CheckValidity(); err != nil {
			diagnostics.Add(diag.Report{
				Severity: diag.Error,
				Code:     CodeInvalidIdentifier,
				Message:  fmt.Sprintf("device name %q is invalid: %s", device.Name().Value(), err),
			})
			removed[device.ID()] = struct{}{}

			continue
		}

		canonical := name.PascalCase()
		if device.Name().Value() == canonical {
			device.SetName(name)
			continue
		}

		diagnostics.Add(diag.Report{
			Severity: diag.Warning,
			Code:     CodeDeviceNameNotPascal,
			Message:  fmt.Sprintf("device name %q is not PascalCase", device.Name().Value()),
			Help:     fmt.Sprintf("rename to %q", canonical),
		})

		device.SetName(ident.New(canonical, device.Name().Span()).ApplyBoundaries(ident.DefaultBoundaryDirective))
	}

	return removed
}
