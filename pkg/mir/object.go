package mir

import "github.com/chipforge/drivergen/pkg/ident"

// Object is implemented by every variant of the closed MIR object sum (spec
// §3). Passes exhaustively type-switch on the concrete pointer type rather
// than relying on virtual dispatch, following the teacher's closed-AST
// style (see DESIGN.md, pkg/mir).
type Object interface {
	ID() UniqueId
	Kind() Kind
	Name() ident.Identifier
	SetName(ident.Identifier)
	Description() string
	SetDescription(string)
	CfgAttr() Cfg
	SetCfgAttr(Cfg)
}

// Base carries the fields common to every Object variant.
type Base struct {
	id          UniqueId
	name        ident.Identifier
	description string
	cfg         Cfg
}

// ID implements Object.
func (b *Base) ID() UniqueId { return b.id }

// Name implements Object.
func (b *Base) Name() ident.Identifier { return b.name }

// SetName implements Object.
func (b *Base) SetName(n ident.Identifier) { b.name = n }

// Description implements Object.
func (b *Base) Description() string { return b.description }

// SetDescription implements Object.
func (b *Base) SetDescription(d string) { b.description = d }

// CfgAttr implements Object.
func (b *Base) CfgAttr() Cfg { return b.cfg }

// SetCfgAttr implements Object.
func (b *Base) SetCfgAttr(c Cfg) { b.cfg = c }

// AssignID sets this Base's identity. Only meant for constructing fresh
// objects (front-ends) or materializing a Ref into a concrete clone
// (refs_resolved, spec §4.5 pass 8) — ordinary passes must never renumber an
// existing object.
func (b *Base) AssignID(id UniqueId) { b.id = id }

// NewBase constructs a Base with the given identity and name.
func NewBase(id UniqueId, name ident.Identifier) Base {
	return Base{id: id, name: name}
}

// Device is the root Object of a manifest entry: it owns a Config and an
// ordered list of child Objects.
type Device struct {
	Base
	Config  Config
	Objects []Object
}

// Kind implements Object.
func (*Device) Kind() Kind { return KindDevice }

// Repeat turns a child object into an indexed array (spec §3 "Repeat").
type Repeat struct {
	// Count is either a literal (Conversion == nil) or an enum conversion
	// whose variants index the array (spec §4.5 pass 9).
	Count      int64
	Conversion *RepeatConversion
	Stride     int64
}

// RepeatConversion names an enum used as a repeat count (spec §4.5 pass 9).
type RepeatConversion struct {
	EnumName string
	UseTry   bool
}

// Block is a named grouping with an address offset and optional repeat.
type Block struct {
	Base
	AddressOffset  int64
	Repeat         *Repeat
	ConfigOverride Config
	Objects        []Object
}

// Kind implements Object.
func (*Block) Kind() Kind { return KindBlock }

// Register is an addressable field set with a fixed bit size.
type Register struct {
	Base
	Address   int64
	SizeBits  uint32
	Access    Access
	ResetValue *uint64
	FieldSet  *FieldSet
	Repeat    *Repeat
	// AliasOf is set on a Register materialized from a Ref (spec §4.5 pass
	// 8, refs_resolved): it names the UniqueId of the Ref's ultimate
	// target, purely informational (e.g. for diagnostics).
	AliasOf UniqueId
}

// Kind implements Object.
func (*Register) Kind() Kind { return KindRegister }

// Command is an addressable in/out field-set pair.
type Command struct {
	Base
	Address     int64
	InFieldSet  *FieldSet
	OutFieldSet *FieldSet
	Repeat      *Repeat
	AliasOf     UniqueId
}

// Kind implements Object.
func (*Command) Kind() Kind { return KindCommand }

// Buffer is an addressable byte stream.
type Buffer struct {
	Base
	Address int64
	Access  Access
	Repeat  *Repeat
	AliasOf UniqueId
}

// Kind implements Object.
func (*Buffer) Kind() Kind { return KindBuffer }

// FieldSet is a named collection of bit-range Fields.
type FieldSet struct {
	Base
	SizeBits uint32
	BitOrder BitOrder
	Fields   []*Field
}

// Kind implements Object.
func (*FieldSet) Kind() Kind { return KindFieldSet }

// EnumValueKind tags an EnumVariant's value.
type EnumValueKind int

// EnumVariant value tags.
const (
	EnumValueUnspecified EnumValueKind = iota
	EnumValueSpecified
	EnumValueDefault
	EnumValueCatchAll
)

// EnumVariant is one member of an Enum.
type EnumVariant struct {
	Name  ident.Identifier
	Kind  EnumValueKind
	Value int64 // meaningful when Kind is EnumValueSpecified or EnumValueDefault
	Cfg   Cfg
}

// EnumGenerationStyle distinguishes an ordinary fallible/infallible enum
// from one generated purely to index a repeat (spec §4.5 pass 9).
type EnumGenerationStyle int

// Enum generation styles.
const (
	EnumStyleNormal EnumGenerationStyle = iota
	EnumStyleIndex
)

// Enum is a named sum type with explicit integer variant values.
type Enum struct {
	Base
	BaseType        BaseType
	Variants        []EnumVariant
	GenerationStyle EnumGenerationStyle
}

// Kind implements Object.
func (*Enum) Kind() Kind { return KindEnum }

// Extern is a user-supplied type of fixed bit width.
type Extern struct {
	Base
	BaseType BaseType
	SizeBits *uint32
}

// Kind implements Object.
func (*Extern) Kind() Kind { return KindExtern }

// RefOverrides names the attributes a Ref replaces on its target.
type RefOverrides struct {
	Address *int64
}

// Ref is a named alias redirecting to another object, with overrides.
type Ref struct {
	Base
	TargetName string
	// ExpectedKind is the kind the manifest's ref declaration named (e.g.
	// "ref FooRef = register Foo"), checked against the resolved target's
	// kind by refs_validated. A nil ExpectedKind means the front-end did not
	// restrict it.
	ExpectedKind *Kind
	Overrides    RefOverrides
}

// Kind implements Object.
func (*Ref) Kind() Kind { return KindRef }

// FieldConversionKind tags a FieldConversion.
type FieldConversionKind int

// FieldConversion tags.
const (
	// ConversionNone means the field's raw integer value is used directly.
	ConversionNone FieldConversionKind = iota
	// ConversionEnum converts through a named enum, generated inline from
	// the field's variant list.
	ConversionEnum
	// ConversionExternalType converts through a user-scoped path that is
	// not generated by this compiler (spec §3 supplement, "enum-same-name").
	ConversionExternalType
)

// FieldConversion describes how a Field's raw bits become a richer type.
type FieldConversion struct {
	Kind       FieldConversionKind
	TypeName   ident.Identifier
	// Path is the literal type path for ConversionExternalType (e.g.
	// "crate::X" or "::core::primitive::u8").
	Path string
	// EnumValue holds the generated enum when Kind == ConversionEnum; it is
	// populated by the front-end from an inline variant list and later
	// pulled to the top level during lowering.
	EnumValue *Enum
	// UseTry selects a fallible (TryFrom-style) conversion; infallible
	// conversions use an infallible From-style conversion instead.
	UseTry bool
}

// Field is a bit-range within its owning field set.
type Field struct {
	Name       ident.Identifier
	Start      uint32
	End        uint32
	BaseType   BaseType
	Access     Access
	Conversion *FieldConversion
	Cfg        Cfg
	Description string
}

// Width returns the number of bits the field occupies.
func (f *Field) Width() uint32 { return f.End - f.Start }
