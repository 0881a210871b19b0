// Package passes implements the ordered MIR validation and normalization
// passes of spec §4.5, run by the Driver of spec §4.4.
package passes

import (
	"github.com/sirupsen/logrus"

	"github.com/chipforge/drivergen/pkg/diag"
	"github.com/chipforge/drivergen/pkg/mir"
)

// Pass is one MIR transformation/check. It returns the set of object ids it
// could not make well-formed; the Driver removes them before running the
// next pass (spec §4.4).
type Pass struct {
	Name string
	Run  func(*mir.Manifest, *diag.Diagnostics) map[mir.UniqueId]struct{}
}

// Logger is the package-level logrus logger used to trace pass execution,
// mirroring the teacher's direct use of logrus inside core (non-CLI)
// packages (SPEC_FULL.md §1.1). Callers may replace it, e.g. to redirect
// output or change formatting.
var Logger = logrus.New()

// Default returns the ordered pass list of spec §4.5, in the load-bearing
// order documented there.
func Default() []Pass {
	return []Pass{
		{"names_checked", NamesChecked},
		{"device_name_is_pascal", DeviceNameIsPascal},
		{"address_types_specified", AddressTypesSpecified},
		{"bit_order_specified", BitOrderSpecified},
		{"base_types_specified", BaseTypesSpecified},
		{"bool_fields_checked", BoolFieldsChecked},
		{"extern_values_checked", ExternValuesChecked},
		{"refs_validated", RefsValidated},
		{"refs_resolved", RefsResolved},
		{"repeat_conversion_values_checked", RepeatConversionValuesChecked},
		{"propagate_cfg", PropagateCfg},
		{"addresses_non_overlapping", AddressesNonOverlapping},
		{"addresses_unique", AddressesUnique},
		{"field_set_descriptions_set", FieldSetDescriptionsSet},
		{"enum_values_specified", EnumValuesSpecified},
	}
}

// Run executes passes in order against manifest, removing ids a pass
// reports after each step and aborting (returning false) as soon as
// diagnostics.HasError() is true, per spec §4.4: "abort = skip remaining
// passes and skip codegen, but return collected diagnostics".
func Run(manifest *mir.Manifest, diagnostics *diag.Diagnostics, pipeline []Pass) bool {
	for _, p := range pipeline {
		Logger.WithField("pass", p.Name).Debug("running pass")

		removed := p.Run(manifest, diagnostics)
		if len(removed) > 0 {
			Logger.WithFields(logrus.Fields{"pass": p.Name, "removed": len(removed)}).Warn("pass removed malformed objects")
			manifest.Remove(removed)
		}

		if diagnostics.HasError() {
			Logger.WithField("pass", p.Name).Error("aborting pipeline: diagnostics contain an error")
			return false
		}
	}

	return true
}
