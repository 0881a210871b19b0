package lir_test

import (
	"testing"

	"github.com/chipforge/drivergen/pkg/ident"
	"github.com/chipforge/drivergen/pkg/lir"
	"github.com/chipforge/drivergen/pkg/mir"
	"github.com/chipforge/drivergen/pkg/source"
)

func name(s string) ident.Identifier {
	return ident.New(s, source.Span{})
}

// buildFieldSet constructs a trivial one-field field set for use as a
// register body in the tests below.
func buildFieldSet(m *mir.Manifest, n string) *mir.FieldSet {
	fs := &mir.FieldSet{SizeBits: 8, BitOrder: mir.LSB0}
	fs.AssignID(m.NewID())
	fs.SetName(name(n))
	fs.Fields = []*mir.Field{{
		Name:     name("value"),
		Start:    0,
		End:      8,
		BaseType: mir.BaseType{Kind: mir.BaseTypeFixed, Integer: mir.U8},
		Access:   mir.AccessRW,
	}}

	return fs
}

// TestLowerFlattensNestedBlocks mirrors spec.md §8 scenario S2: a block with
// a repeat, offset 10, containing a register at address 0.
func TestLowerFlattensNestedBlocks(t *testing.T) {
	m := mir.NewManifest()

	reg := &mir.Register{Address: 0, SizeBits: 8, Access: mir.AccessRW}
	reg.AssignID(m.NewID())
	reg.SetName(name("Foo"))
	reg.FieldSet = buildFieldSet(m, "Foo")

	block := &mir.Block{AddressOffset: 10, Repeat: &mir.Repeat{Count: 2, Stride: 20}}
	block.AssignID(m.NewID())
	block.SetName(name("Bar"))
	block.Objects = []mir.Object{reg}

	device := &mir.Device{}
	device.AssignID(m.NewID())
	device.SetName(name("Thermostat"))
	device.Objects = []mir.Object{block}

	m.Devices = []*mir.Device{device}

	driver := lir.Lower(m)

	if len(driver.Devices) != 1 {
		t.Fatalf("expected 1 device, got %d", len(driver.Devices))
	}

	dev := driver.Devices[0]

	if len(dev.Blocks) != 1 {
		t.Fatalf("expected 1 flattened block, got %d", len(dev.Blocks))
	}

	gotBlock := dev.Blocks[0]
	if gotBlock.Name != "Bar" {
		t.Errorf("block name = %q, want %q", gotBlock.Name, "Bar")
	}

	if gotBlock.AddressOffset != 10 {
		t.Errorf("block address offset = %d, want 10", gotBlock.AddressOffset)
	}

	if gotBlock.Repeat == nil || gotBlock.Repeat.Stride != 20 || gotBlock.Repeat.Count != 2 {
		t.Fatalf("unexpected repeat: %+v", gotBlock.Repeat)
	}

	if len(gotBlock.Methods) != 1 || gotBlock.Methods[0].Kind != lir.MethodRegister {
		t.Fatalf("expected 1 register method on the block, got %+v", gotBlock.Methods)
	}

	if gotBlock.Methods[0].Address != 0 {
		t.Errorf("register address = %d, want 0 (local to the block)", gotBlock.Methods[0].Address)
	}

	if len(dev.Methods) != 1 || dev.Methods[0].Kind != lir.MethodBlock || dev.Methods[0].BlockName != "Bar" {
		t.Fatalf("expected one block-kind method on the device, got %+v", dev.Methods)
	}

	if dev.Methods[0].Address != 10 {
		t.Errorf("block method address = %d, want 10 (matching the block's own offset)", dev.Methods[0].Address)
	}
}

// TestLowerDeduplicatesSharedFieldSet mirrors spec.md §8 scenario S4/property
// 6: a ref-resolved register shares its target's *FieldSet pointer, and
// lowering must emit one FieldSet type, not two.
func TestLowerDeduplicatesSharedFieldSet(t *testing.T) {
	m := mir.NewManifest()

	shared := buildFieldSet(m, "Foo")

	original := &mir.Register{Address: 0, SizeBits: 8, FieldSet: shared}
	original.AssignID(m.NewID())
	original.SetName(name("Foo"))

	aliased := &mir.Register{Address: 3, SizeBits: 8, FieldSet: shared, AliasOf: original.ID()}
	aliased.AssignID(m.NewID())
	aliased.SetName(name("FooRef"))

	device := &mir.Device{}
	device.AssignID(m.NewID())
	device.SetName(name("Thermostat"))
	device.Objects = []mir.Object{original, aliased}

	m.Devices = []*mir.Device{device}

	driver := lir.Lower(m)
	dev := driver.Devices[0]

	if len(dev.FieldSets) != 1 {
		t.Fatalf("expected 1 deduplicated field set, got %d", len(dev.FieldSets))
	}

	if len(dev.Methods) != 2 {
		t.Fatalf("expected 2 register methods, got %d", len(dev.Methods))
	}

	for _, meth := range dev.Methods {
		if meth.FieldSetName != "Foo" {
			t.Errorf("method %q field set name = %q, want %q", meth.Name, meth.FieldSetName, "Foo")
		}
	}
}

// TestLowerIndexEnumSharedWithRepeat checks that a repeat driven by a named
// enum resolves to that enum and deduplicates it with the same enum declared
// at the device's top level, so only one enum is emitted.
func TestLowerIndexEnumSharedWithRepeat(t *testing.T) {
	m := mir.NewManifest()

	idx := &mir.Enum{
		BaseType:        mir.BaseType{Kind: mir.BaseTypeFixed, Integer: mir.U8},
		GenerationStyle: mir.EnumStyleIndex,
		Variants: []mir.EnumVariant{
			{Name: name("A"), Kind: mir.EnumValueSpecified, Value: 0},
			{Name: name("B"), Kind: mir.EnumValueSpecified, Value: 1},
		},
	}
	idx.AssignID(m.NewID())
	idx.SetName(name("Chan"))

	reg := &mir.Register{Address: 0, SizeBits: 8, Repeat: &mir.Repeat{Conversion: &mir.RepeatConversion{EnumName: "Chan"}}}
	reg.AssignID(m.NewID())
	reg.SetName(name("Foo"))
	reg.FieldSet = buildFieldSet(m, "Foo")

	device := &mir.Device{}
	device.AssignID(m.NewID())
	device.SetName(name("Thermostat"))
	device.Objects = []mir.Object{idx, reg}

	m.Devices = []*mir.Device{device}

	driver := lir.Lower(m)
	dev := driver.Devices[0]

	if len(dev.Enums) != 1 {
		t.Fatalf("expected 1 deduplicated enum, got %d", len(dev.Enums))
	}

	if dev.Enums[0].Name != "Chan" {
		t.Errorf("enum name = %q, want %q", dev.Enums[0].Name, "Chan")
	}

	if len(dev.Methods) != 1 || dev.Methods[0].Repeat == nil || dev.Methods[0].Repeat.IndexEnumName != "Chan" {
		t.Fatalf("expected the register method's repeat to reference enum %q, got %+v", "Chan", dev.Methods[0].Repeat)
	}
}
