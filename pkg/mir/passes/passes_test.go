package passes_test

import (
	"testing"

	"github.com/chipforge/drivergen/pkg/diag"
	"github.com/chipforge/drivergen/pkg/ident"
	"github.com/chipforge/drivergen/pkg/mir"
	"github.com/chipforge/drivergen/pkg/mir/passes"
	"github.com/chipforge/drivergen/pkg/source"
)

func name(s string) ident.Identifier {
	return ident.New(s, source.Span{})
}

func u8() mir.Integer { return mir.U8 }

func TestDefaultReturnsPassesInSpecOrder(t *testing.T) {
	pipeline := passes.Default()

	want := []string{
		"names_checked", "device_name_is_pascal", "address_types_specified",
		"bit_order_specified", "base_types_specified", "bool_fields_checked",
		"extern_values_checked", "refs_validated", "refs_resolved",
		"repeat_conversion_values_checked", "propagate_cfg",
		"addresses_non_overlapping", "addresses_unique",
		"field_set_descriptions_set", "enum_values_specified",
	}

	if len(pipeline) != len(want) {
		t.Fatalf("got %d passes, want %d", len(pipeline), len(want))
	}

	for i, p := range pipeline {
		if p.Name != want[i] {
			t.Errorf("pass %d = %q, want %q", i, p.Name, want[i])
		}
	}
}

func TestRunAbortsOnFirstErroringPass(t *testing.T) {
	m := mir.NewManifest()

	var ran []string

	pipeline := []passes.Pass{
		{Name: "ok", Run: func(*mir.Manifest, *diag.Diagnostics) map[mir.UniqueId]struct{} {
			ran = append(ran, "ok")
			return nil
		}},
		{Name: "fails", Run: func(_ *mir.Manifest, d *diag.Diagnostics) map[mir.UniqueId]struct{} {
			ran = append(ran, "fails")
			d.Errorf("TEST001", "synthetic failure")
			return nil
		}},
		{Name: "never", Run: func(*mir.Manifest, *diag.Diagnostics) map[mir.UniqueId]struct{} {
			ran = append(ran, "never")
			return nil
		}},
	}

	diagnostics := diag.New()
	ok := passes.Run(m, diagnostics, pipeline)

	if ok {
		t.Fatal("expected Run to report failure")
	}

	if len(ran) != 2 || ran[0] != "ok" || ran[1] != "fails" {
		t.Fatalf("unexpected pass execution order: %v", ran)
	}

	if !diagnostics.HasError() {
		t.Fatal("expected an accumulated error diagnostic")
	}
}

func TestRunRemovesObjectsAPassFlags(t *testing.T) {
	m := mir.NewManifest()

	reg := &mir.Register{Address: 0, SizeBits: 8}
	reg.AssignID(m.NewID())
	reg.SetName(name("Foo"))

	device := &mir.Device{}
	device.AssignID(m.NewID())
	device.SetName(name("Thermostat"))
	device.Objects = []mir.Object{reg}

	m.Devices = []*mir.Device{device}

	pipeline := []passes.Pass{
		{Name: "drop-foo", Run: func(manifest *mir.Manifest, _ *diag.Diagnostics) map[mir.UniqueId]struct{} {
			return map[mir.UniqueId]struct{}{manifest.Devices[0].Objects[0].ID(): {}}
		}},
	}

	ok := passes.Run(m, diag.New(), pipeline)
	if !ok {
		t.Fatal("expected Run to succeed (no error diagnostics)")
	}

	if len(m.Devices[0].Objects) != 0 {
		t.Fatalf("expected the flagged register to be removed, got %+v", m.Devices[0].Objects)
	}
}

func TestAddressTypesSpecifiedFlagsMissingRegisterAddressType(t *testing.T) {
	m := mir.NewManifest()

	reg := &mir.Register{Address: 0, SizeBits: 8}
	reg.AssignID(m.NewID())
	reg.SetName(name("Foo"))

	device := &mir.Device{}
	device.AssignID(m.NewID())
	device.SetName(name("Thermostat"))
	device.Objects = []mir.Object{reg}

	m.Devices = []*mir.Device{device}

	diagnostics := diag.New()
	removed := passes.AddressTypesSpecified(m, diagnostics)

	if !diagnostics.HasError() {
		t.Fatal("expected an error diagnostic for the missing register address type")
	}

	if _, ok := removed[reg.ID()]; !ok {
		t.Fatal("expected the register to be flagged for removal")
	}
}

func TestAddressTypesSpecifiedAcceptsConfiguredType(t *testing.T) {
	m := mir.NewManifest()

	reg := &mir.Register{Address: 0, SizeBits: 8}
	reg.AssignID(m.NewID())
	reg.SetName(name("Foo"))

	it := u8()
	device := &mir.Device{Config: mir.Config{RegisterAddressType: &it}}
	device.AssignID(m.NewID())
	device.SetName(name("Thermostat"))
	device.Objects = []mir.Object{reg}

	m.Devices = []*mir.Device{device}

	diagnostics := diag.New()
	removed := passes.AddressTypesSpecified(m, diagnostics)

	if diagnostics.HasError() {
		t.Fatalf("unexpected diagnostics: %v", diagnostics.Reports())
	}

	if len(removed) != 0 {
		t.Fatalf("expected nothing removed, got %+v", removed)
	}
}

func TestAddressesUniqueFlagsDuplicateSiblingAddresses(t *testing.T) {
	m := mir.NewManifest()

	foo := &mir.Register{Address: 0, SizeBits: 8}
	foo.AssignID(m.NewID())
	foo.SetName(name("Foo"))

	bar := &mir.Register{Address: 0, SizeBits: 8}
	bar.AssignID(m.NewID())
	bar.SetName(name("Bar"))

	device := &mir.Device{}
	device.AssignID(m.NewID())
	device.SetName(name("Thermostat"))
	device.Objects = []mir.Object{foo, bar}

	m.Devices = []*mir.Device{device}

	diagnostics := diag.New()
	removed := passes.AddressesUnique(m, diagnostics)

	if !diagnostics.HasError() {
		t.Fatal("expected a duplicate-address error diagnostic")
	}

	if _, ok := removed[bar.ID()]; !ok {
		t.Fatal("expected the later-declared register (Bar) to be removed")
	}

	if _, ok := removed[foo.ID()]; ok {
		t.Fatal("the earlier-declared register (Foo) should be kept")
	}
}

func TestAddressesUniqueAllowsDistinctAddresses(t *testing.T) {
	m := mir.NewManifest()

	foo := &mir.Register{Address: 0, SizeBits: 8}
	foo.AssignID(m.NewID())
	foo.SetName(name("Foo"))

	bar := &mir.Register{Address: 1, SizeBits: 8}
	bar.AssignID(m.NewID())
	bar.SetName(name("Bar"))

	device := &mir.Device{}
	device.AssignID(m.NewID())
	device.SetName(name("Thermostat"))
	device.Objects = []mir.Object{foo, bar}

	m.Devices = []*mir.Device{device}

	diagnostics := diag.New()
	removed := passes.AddressesUnique(m, diagnostics)

	if diagnostics.HasError() {
		t.Fatalf("unexpected diagnostics: %v", diagnostics.Reports())
	}

	if len(removed) != 0 {
		t.Fatalf("expected nothing removed, got %+v", removed)
	}
}

func TestDeviceNameIsPascalNormalizesSnakeCase(t *testing.T) {
	m := mir.NewManifest()

	device := &mir.Device{}
	device.AssignID(m.NewID())
	device.SetName(name("my_thermostat"))

	m.Devices = []*mir.Device{device}

	diagnostics := diag.New()
	removed := passes.DeviceNameIsPascal(m, diagnostics)

	if len(removed) != 0 {
		t.Fatalf("expected the device to survive renaming, got removed=%+v", removed)
	}

	if diagnostics.HasError() {
		t.Fatalf("renaming should only warn, got error diagnostics: %v", diagnostics.Reports())
	}

	if device.Name().Value() != "MyThermostat" {
		t.Errorf("device name = %q, want %q", device.Name().Value(), "MyThermostat")
	}
}
