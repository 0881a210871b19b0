// Package mir implements the mid-level intermediate representation: the
// object tree that front-ends build and that passes progressively enrich
// and validate in place (spec §3, §4.3).
package mir

import "fmt"

// UniqueId stably identifies one Object across the lifetime of a
// compilation, independent of its position in the tree. The pass driver
// uses it to propagate removals (spec §4.4) without passes needing to
// perform tree surgery themselves.
type UniqueId uint64

// idGen hands out monotonically increasing UniqueIds for newly constructed
// objects (including clones produced by ref resolution).
type idGen struct{ next UniqueId }

func (g *idGen) alloc() UniqueId {
	g.next++
	return g.next
}

// BaseType is the declared element type of a Field or Extern, before
// base_types_specified (spec §4.5 item 5) promotes Unspecified/Uint/Int to a
// concrete FixedSize integer.
type BaseType struct {
	Kind    BaseTypeKind
	Integer Integer // meaningful only when Kind == BaseTypeFixed
}

// BaseTypeKind enumerates the tags of BaseType.
type BaseTypeKind int

// BaseType tags.
const (
	BaseTypeUnspecified BaseTypeKind = iota
	BaseTypeBool
	BaseTypeUint
	BaseTypeInt
	BaseTypeFixed
)

// Integer is one of the fixed-size integer types a field or extern can
// ultimately resolve to.
type Integer int

// Supported integer widths, signed and unsigned.
const (
	U8 Integer = iota
	U16
	U32
	U64
	I8
	I16
	I32
	I64
)

// Bits returns the bit width of the integer type.
func (i Integer) Bits() uint32 {
	switch i {
	case U8, I8:
		return 8
	case U16, I16:
		return 16
	case U32, I32:
		return 32
	case U64, I64:
		return 64
	default:
		return 0
	}
}

// Signed reports whether the integer type is signed.
func (i Integer) Signed() bool {
	switch i {
	case I8, I16, I32, I64:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer, returning the Rust-style spelling used in
// emitted code (spec §4.7).
func (i Integer) String() string {
	switch i {
	case U8:
		return "u8"
	case U16:
		return "u16"
	case U32:
		return "u32"
	case U64:
		return "u64"
	case I8:
		return "i8"
	case I16:
		return "i16"
	case I32:
		return "i32"
	case I64:
		return "i64"
	default:
		return "?"
	}
}

// unsignedWidths/signedWidths are consulted in ascending order by
// FindSmallestInteger so the result is always the narrowest integer that
// fits — matching the teacher Rust crate's Integer::find_smallest.
var (
	unsignedWidths = []Integer{U8, U16, U32, U64}
	signedWidths   = []Integer{I8, I16, I32, I64}
)

// FindSmallestInteger returns the narrowest Integer type whose range can
// represent every value representable in sizeBits bits of the requested
// signedness, or false if no supported integer is wide enough (spec error
// UnsupportedBitSize).
func FindSmallestInteger(signed bool, sizeBits uint32) (Integer, bool) {
	widths := unsignedWidths
	if signed {
		widths = signedWidths
	}

	for _, in := range widths {
		if in.Bits() >= sizeBits {
			return in, true
		}
	}

	return 0, false
}

// Access is the read/write discipline of a Field or addressable object.
type Access int

// Supported access modes.
const (
	// AccessUnspecified means "use the effective config's default".
	AccessUnspecified Access = iota
	AccessRW
	AccessRO
	AccessWO
	// AccessCO is clear-on-read: read returns the current value, then the
	// underlying bits are cleared.
	AccessCO
	// AccessRC is read-clear-on-write: writing a 1 bit clears it, writing 0
	// leaves it unchanged.
	AccessRC
)

// String implements fmt.Stringer.
func (a Access) String() string {
	switch a {
	case AccessRW:
		return "RW"
	case AccessRO:
		return "RO"
	case AccessWO:
		return "WO"
	case AccessCO:
		return "CO"
	case AccessRC:
		return "RC"
	default:
		return "unspecified"
	}
}

// CanRead reports whether a value with this access mode supports reads.
func (a Access) CanRead() bool {
	switch a {
	case AccessRW, AccessRO, AccessCO, AccessRC:
		return true
	default:
		return false
	}
}

// CanWrite reports whether a value with this access mode supports writes.
func (a Access) CanWrite() bool {
	switch a {
	case AccessRW, AccessWO, AccessRC:
		return true
	default:
		return false
	}
}

// ByteOrder is the serialization order of an addressable object's bytes.
type ByteOrder int

// Supported byte orders.
const (
	ByteOrderUnspecified ByteOrder = iota
	LittleEndian
	BigEndian
)

// String implements fmt.Stringer.
func (b ByteOrder) String() string {
	if b == BigEndian {
		return "BE"
	}

	return "LE"
}

// BitOrder is the bit-numbering convention of a FieldSet's backing bytes
// (spec invariant 10).
type BitOrder int

// Supported bit orders.
const (
	BitOrderUnspecified BitOrder = iota
	LSB0
	MSB0
)

// String implements fmt.Stringer.
func (b BitOrder) String() string {
	if b == MSB0 {
		return "MSB0"
	}

	return "LSB0"
}

// Kind tags the variant of an Object (spec §3, the tagged object universe).
type Kind int

// Object kinds.
const (
	KindDevice Kind = iota
	KindBlock
	KindRegister
	KindCommand
	KindBuffer
	KindFieldSet
	KindEnum
	KindExtern
	KindRef
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindDevice:
		return "device"
	case KindBlock:
		return "block"
	case KindRegister:
		return "register"
	case KindCommand:
		return "command"
	case KindBuffer:
		return "buffer"
	case KindFieldSet:
		return "field set"
	case KindEnum:
		return "enum"
	case KindExtern:
		return "extern"
	case KindRef:
		return "ref"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}
