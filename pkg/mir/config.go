package mir

// Config holds the effective configuration keys enumerated in spec §6. All
// fields are pointers so that a Block-local override can be distinguished
// from "inherit the enclosing value" (nil means inherit).
type Config struct {
	RegisterAddressType  *Integer
	CommandAddressType   *Integer
	BufferAddressType    *Integer
	DefaultFieldAddrType *Integer
	DefaultByteOrder     *ByteOrder
	DefaultBitOrder      *BitOrder
	DefaultFieldAccess   *Access
	DefmtFeature         *string
	NameWordBoundaries   *string
}

// Merge overlays child's non-nil fields onto a copy of parent, implementing
// the per-device/per-block inheritance of spec §3 ("Effective config").
func (parent Config) Merge(child Config) Config {
	out := parent

	if child.RegisterAddressType != nil {
		out.RegisterAddressType = child.RegisterAddressType
	}

	if child.CommandAddressType != nil {
		out.CommandAddressType = child.CommandAddressType
	}

	if child.BufferAddressType != nil {
		out.BufferAddressType = child.BufferAddressType
	}

	if child.DefaultFieldAddrType != nil {
		out.DefaultFieldAddrType = child.DefaultFieldAddrType
	}

	if child.DefaultByteOrder != nil {
		out.DefaultByteOrder = child.DefaultByteOrder
	}

	if child.DefaultBitOrder != nil {
		out.DefaultBitOrder = child.DefaultBitOrder
	}

	if child.DefaultFieldAccess != nil {
		out.DefaultFieldAccess = child.DefaultFieldAccess
	}

	if child.DefmtFeature != nil {
		out.DefmtFeature = child.DefmtFeature
	}

	if child.NameWordBoundaries != nil {
		out.NameWordBoundaries = child.NameWordBoundaries
	}

	return out
}

// BoundaryDirective returns the configured NameWordBoundaries, or the
// package default when unset.
func (c Config) BoundaryDirective() string {
	if c.NameWordBoundaries != nil {
		return *c.NameWordBoundaries
	}

	return ""
}

// BitOrderOrDefault returns the configured DefaultBitOrder, falling back to
// LSB0 (spec §4.5 pass 4, bit_order_specified).
func (c Config) BitOrderOrDefault() BitOrder {
	if c.DefaultBitOrder != nil {
		return *c.DefaultBitOrder
	}

	return LSB0
}

// ByteOrderOrDefault returns the configured DefaultByteOrder, falling back
// to LE.
func (c Config) ByteOrderOrDefault() ByteOrder {
	if c.DefaultByteOrder != nil {
		return *c.DefaultByteOrder
	}

	return LittleEndian
}

// FieldAccessOrDefault returns the configured DefaultFieldAccess, falling
// back to RW.
func (c Config) FieldAccessOrDefault() Access {
	if c.DefaultFieldAccess != nil {
		return *c.DefaultFieldAccess
	}

	return AccessRW
}
