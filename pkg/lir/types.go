// Package lir implements the low-level intermediate representation that
// lowering (spec §4.6) produces and codegen (spec §4.7) consumes: a flat,
// emission-ready shape with every identifier already normalized to the
// target language's conventions and every field set/enum deduplicated by
// identity.
package lir

import "github.com/chipforge/drivergen/pkg/mir"

// Driver is the root of the LIR. It holds only the lowered devices; field
// sets and enums are held per Device (Device.FieldSets, Device.Enums).
type Driver struct {
	Devices []*Device
}

// Device is one flattened, name-resolved device ready for template
// rendering.
type Device struct {
	Name         string
	Description  string
	Cfg          mir.Cfg
	DefmtFeature string
	// Methods are the accessors exposed directly on the device (children
	// that were not nested inside a Block).
	Methods []*Method
	// Blocks holds every Block reachable from this device, at any original
	// nesting depth, flattened into one list (spec §4.6). A Block's own
	// AddressOffset is relative to its immediate parent (device or block),
	// not a globally-flattened absolute value: repeat indices are a runtime
	// quantity the manifest cannot resolve at compile time, so the emitted
	// accessor composes `parent_base + offset [+ index*stride]` at the call
	// site instead of baking a single absolute integer into the LIR. For any
	// chain with no repeated ancestor this composes to the same numeric
	// address a literal flattening would have produced.
	Blocks []*Block
	// FieldSets and Enums are every field set/enum reachable from this
	// device, pulled to the top level and deduplicated by the identity of
	// the MIR object they were lowered from (spec §4.6), so two refs
	// sharing a field set, or a repeat sharing an index enum, emit one type.
	FieldSets []*FieldSet
	Enums     []*Enum
}

// Block is one flattened block, addressed relative to its immediate parent.
type Block struct {
	// Name is fully-qualified (ancestor block names concatenated in
	// PascalCase) so that two differently-nested blocks sharing a leaf name
	// never collide in the flattened list.
	Name          string
	Description   string
	Cfg           mir.Cfg
	AddressOffset int64
	Repeat        *Repeat
	Methods       []*Method
}

// Repeat is the lowered form of mir.Repeat: a literal count, or a count
// driven by an index-style enum (spec §4.5 pass 9, repeat_conversion_values_
// checked), plus the stride between elements.
type Repeat struct {
	Count  int64
	Stride int64
	// IndexEnumName names the top-level Enum (already deduplicated into
	// Device.Enums) used to convert a repeat index to/from its raw integer,
	// or "" when Count is a plain literal.
	IndexEnumName string
}

// MethodKind tags what an accessor on a Device or Block does.
type MethodKind int

// Method kinds.
const (
	MethodRegister MethodKind = iota
	MethodCommand
	MethodBuffer
	// MethodBlock exposes a nested Block (by name, in the flattened Blocks
	// list) as a child accessor.
	MethodBlock
)

// Method is one accessor: `{kind, name, address, fieldset_name, repeat?}`
// (spec §4.6), generalized with the extra fields each kind needs.
type Method struct {
	Kind        MethodKind
	Name        string
	Description string
	Cfg         mir.Cfg
	// Address is the local address offset (relative to the owning Device's
	// or Block's own base). For MethodBlock this duplicates the referenced
	// Block's own AddressOffset, so the accessor template can read it
	// uniformly across every method kind.
	Address int64
	Access  mir.Access
	// FieldSetName names the lowered FieldSet for MethodRegister.
	FieldSetName string
	// InFieldSetName/OutFieldSetName name the lowered FieldSets for
	// MethodCommand; either may be "" if that side carries no payload.
	InFieldSetName  string
	OutFieldSetName string
	// BlockName names the lowered Block for MethodBlock.
	BlockName string
	Repeat    *Repeat
	// AliasOf is informational, carried through from a ref-resolved object
	// (spec §4.5 pass 8); zero when the method was not produced by a ref.
	AliasOf mir.UniqueId
}

// FieldSet is one lowered field set type.
type FieldSet struct {
	Name        string
	Description string
	Cfg         mir.Cfg
	SizeBits    uint32
	ByteOrder   mir.ByteOrder
	BitOrder    mir.BitOrder
	Fields      []*Field
}

// Field is one lowered bit-range accessor within a FieldSet.
type Field struct {
	Name        string
	Description string
	Cfg         mir.Cfg
	Start       uint32
	End         uint32
	BaseType    mir.BaseType
	Access      mir.Access
	Conversion  *FieldConversion
}

// Width returns the number of bits the field occupies.
func (f *Field) Width() uint32 { return f.End - f.Start }

// FieldConversion is the lowered form of mir.FieldConversion.
type FieldConversion struct {
	Kind mir.FieldConversionKind
	// TypeName is the generated Enum's lowered Name for Kind ==
	// ConversionEnum, or the literal external path for Kind ==
	// ConversionExternalType.
	TypeName string
	UseTry   bool
}

// Enum is one lowered enum type.
type Enum struct {
	Name            string
	Description     string
	Cfg             mir.Cfg
	BaseType        mir.BaseType
	GenerationStyle mir.EnumGenerationStyle
	Variants        []EnumVariant
}

// EnumVariant is one lowered enum member.
type EnumVariant struct {
	Name  string
	Kind  mir.EnumValueKind
	Value int64
	Cfg   mir.Cfg
}
