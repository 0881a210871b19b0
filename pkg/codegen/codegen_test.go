package codegen_test

import (
	"strings"
	"testing"

	"github.com/chipforge/drivergen/pkg/codegen"
	"github.com/chipforge/drivergen/pkg/lir"
	"github.com/chipforge/drivergen/pkg/mir"
)

func sampleDriver() *lir.Driver {
	statusEnum := &lir.Enum{
		Name:     "Status",
		BaseType: mir.BaseType{Kind: mir.BaseTypeFixed, Integer: mir.U8},
		Variants: []lir.EnumVariant{
			{Name: "Idle", Kind: mir.EnumValueSpecified, Value: 0},
			{Name: "Busy", Kind: mir.EnumValueSpecified, Value: 1},
			{Name: "Unknown", Kind: mir.EnumValueCatchAll},
		},
	}

	fieldSet := &lir.FieldSet{
		Name:      "Foo",
		SizeBits:  8,
		ByteOrder: mir.LittleEndian,
		BitOrder:  mir.LSB0,
		Fields: []*lir.Field{
			{Name: "enabled", Start: 0, End: 1, BaseType: mir.BaseType{Kind: mir.BaseTypeBool}, Access: mir.AccessRW},
			{
				Name: "status", Start: 1, End: 3, Access: mir.AccessRW,
				BaseType:   mir.BaseType{Kind: mir.BaseTypeFixed, Integer: mir.U8},
				Conversion: &lir.FieldConversion{Kind: mir.ConversionEnum, TypeName: "Status"},
			},
		},
	}

	return &lir.Driver{
		Devices: []*lir.Device{
			{
				Name:      "MyTestDevice",
				FieldSets: []*lir.FieldSet{fieldSet},
				Enums:     []*lir.Enum{statusEnum},
				Methods: []*lir.Method{
					{Kind: lir.MethodRegister, Name: "foo", Address: 0, Access: mir.AccessRW, FieldSetName: "Foo"},
				},
			},
		},
	}
}

func TestGenerateProducesRegisterAccessors(t *testing.T) {
	out, err := codegen.Generate(codegen.Target{}, sampleDriver())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for _, want := range []string{
		"pub struct MyTestDevice<I>",
		"pub fn foo_read(&mut self) -> Result<field_sets::Foo, I::Error>",
		"pub fn foo_write(&mut self, value: field_sets::Foo) -> Result<(), I::Error>",
		"pub fn foo_modify(&mut self, f: impl FnOnce(&mut field_sets::Foo)) -> Result<(), I::Error>",
		"pub struct Foo {",
		"pub fn enabled(&self) -> bool",
		"raw != 0",
		"pub fn status(&self) -> Status",
		"Status::from(raw as u8)",
		"pub enum Status {",
		"Unknown",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("generated source missing %q\n---\n%s", want, out)
		}
	}
}

// TestGenerateEmitsBitPackingHelpers locks in that every field accessor's
// ByteOrder/BitOrder/extract_bits/insert_bits references resolve to actual
// emitted definitions, and that those helpers appear exactly once even
// though sampleDriver's device has multiple fields sharing one field set.
func TestGenerateEmitsBitPackingHelpers(t *testing.T) {
	out, err := codegen.Generate(codegen.Target{}, sampleDriver())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for _, want := range []string{
		"pub enum ByteOrder {",
		"pub enum BitOrder {",
		"fn extract_bits(",
		"fn insert_bits(",
		"fn sign_extend(",
	} {
		if n := strings.Count(out, want); n != 1 {
			t.Errorf("expected exactly one %q, got %d\n---\n%s", want, n, out)
		}
	}
}

func TestGenerateSignExtendsSignedField(t *testing.T) {
	driver := sampleDriver()
	driver.Devices[0].FieldSets[0].Fields = append(driver.Devices[0].FieldSets[0].Fields, &lir.Field{
		Name: "offset", Start: 3, End: 8, Access: mir.AccessRW,
		BaseType: mir.BaseType{Kind: mir.BaseTypeFixed, Integer: mir.I8},
	})

	out, err := codegen.Generate(codegen.Target{}, driver)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for _, want := range []string{
		"pub fn offset(&self) -> i8",
		"sign_extend(raw, 5) as i8",
		"pub fn set_offset(&mut self, value: i8)",
		"value as u64",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("generated source missing %q\n---\n%s", want, out)
		}
	}
}

func TestGenerateAsyncEmitsAsyncAccessors(t *testing.T) {
	out, err := codegen.Generate(codegen.Target{Async: true}, sampleDriver())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for _, want := range []string{
		"pub async fn foo_read_async(&mut self) -> Result<field_sets::Foo, I::Error>",
		"I: AsyncRegisterInterface",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("async generated source missing %q\n---\n%s", want, out)
		}
	}
}

func TestGenerateSyncOmitsAsyncAccessors(t *testing.T) {
	out, err := codegen.Generate(codegen.Target{}, sampleDriver())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if strings.Contains(out, "_read_async") {
		t.Errorf("sync-only generation should not emit async accessors:\n%s", out)
	}
}

// driverWithBlockCommandBuffer exercises the method kinds sampleDriver
// leaves out: a nested block, a command, and a buffer.
func driverWithBlockCommandBuffer() *lir.Driver {
	payload := &lir.FieldSet{
		Name:      "Cmd",
		SizeBits:  8,
		ByteOrder: mir.LittleEndian,
		BitOrder:  mir.LSB0,
		Fields: []*lir.Field{
			{Name: "value", Start: 0, End: 8, BaseType: mir.BaseType{Kind: mir.BaseTypeFixed, Integer: mir.U8}, Access: mir.AccessRW},
		},
	}

	block := &lir.Block{
		Name:          "Bar",
		AddressOffset: 0x10,
		Methods: []*lir.Method{
			{Kind: lir.MethodRegister, Name: "baz", Address: 0, Access: mir.AccessRW, FieldSetName: "Cmd"},
		},
	}

	return &lir.Driver{
		Devices: []*lir.Device{
			{
				Name:      "MyTestDevice",
				FieldSets: []*lir.FieldSet{payload},
				Blocks:    []*lir.Block{block},
				Methods: []*lir.Method{
					{Kind: lir.MethodBlock, Name: "bar", Address: 0x10, BlockName: "Bar"},
					{Kind: lir.MethodCommand, Name: "reset", Address: 0x20, InFieldSetName: "Cmd", OutFieldSetName: "Cmd"},
					{Kind: lir.MethodBuffer, Name: "buf", Address: 0x30, Access: mir.AccessRW},
				},
			},
		},
	}
}

func TestGenerateProducesBlockCommandAndBufferAccessors(t *testing.T) {
	out, err := codegen.Generate(codegen.Target{}, driverWithBlockCommandBuffer())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for _, want := range []string{
		"pub struct Bar<'a, I>",
		"pub fn bar(&mut self) -> Bar<'_, I>",
		"fn baz_address(&self) -> u64",
		"pub fn reset(&mut self, input: field_sets::Cmd) -> Result<field_sets::Cmd, I::Error>",
		"self.interface.dispatch(",
		"pub fn buf_read(&mut self, buf: &mut [u8]) -> Result<usize, I::Error>",
		"pub fn buf_write(&mut self, buf: &[u8]) -> Result<usize, I::Error>",
		"pub fn buf_flush(&mut self) -> Result<(), I::Error>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("generated source missing %q\n---\n%s", want, out)
		}
	}
}
