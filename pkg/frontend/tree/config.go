package tree

import "github.com/chipforge/drivergen/pkg/mir"

// configKeys are the attribute names recognized on a device or block node as
// Config overrides (spec §6 "Effective configuration keys").
var configKeys = []string{
	"register_address_type", "command_address_type", "buffer_address_type",
	"default_field_addr_type", "default_byte_order", "default_bit_order",
	"default_field_access", "defmt_feature", "name_word_boundaries",
}

func buildConfig(n *Node) mir.Config {
	var cfg mir.Config

	if v, ok := n.Attr("register_address_type"); ok {
		if s, ok := v.AsString(); ok {
			if in, ok := parseInteger(s); ok {
				cfg.RegisterAddressType = &in
			}
		}
	}

	if v, ok := n.Attr("command_address_type"); ok {
		if s, ok := v.AsString(); ok {
			if in, ok := parseInteger(s); ok {
				cfg.CommandAddressType = &in
			}
		}
	}

	if v, ok := n.Attr("buffer_address_type"); ok {
		if s, ok := v.AsString(); ok {
			if in, ok := parseInteger(s); ok {
				cfg.BufferAddressType = &in
			}
		}
	}

	if v, ok := n.Attr("default_field_addr_type"); ok {
		if s, ok := v.AsString(); ok {
			if in, ok := parseInteger(s); ok {
				cfg.DefaultFieldAddrType = &in
			}
		}
	}

	if v, ok := n.Attr("default_byte_order"); ok {
		if s, ok := v.AsString(); ok {
			if bo, ok := parseByteOrder(s); ok {
				cfg.DefaultByteOrder = &bo
			}
		}
	}

	if v, ok := n.Attr("default_bit_order"); ok {
		if s, ok := v.AsString(); ok {
			if bo, ok := parseBitOrder(s); ok {
				cfg.DefaultBitOrder = &bo
			}
		}
	}

	if v, ok := n.Attr("default_field_access"); ok {
		if s, ok := v.AsString(); ok {
			if a, ok := parseAccess(s); ok {
				cfg.DefaultFieldAccess = &a
			}
		}
	}

	if v, ok := n.Attr("defmt_feature"); ok {
		if s, ok := v.AsString(); ok {
			cfg.DefmtFeature = &s
		}
	}

	if v, ok := n.Attr("name_word_boundaries"); ok {
		if s, ok := v.AsString(); ok {
			cfg.NameWordBoundaries = &s
		}
	}

	return cfg
}

func parseInteger(s string) (mir.Integer, bool) {
	switch s {
	case "u8":
		return mir.U8, true
	case "u16":
		return mir.U16, true
	case "u32":
		return mir.U32, true
	case "u64":
		return mir.U64, true
	case "i8":
		return mir.I8, true
	case "i16":
		return mir.I16, true
	case "i32":
		return mir.I32, true
	case "i64":
		return mir.I64, true
	default:
		return 0, false
	}
}

func parseAccess(s string) (mir.Access, bool) {
	switch s {
	case "RW":
		return mir.AccessRW, true
	case "RO":
		return mir.AccessRO, true
	case "WO":
		return mir.AccessWO, true
	case "CO":
		return mir.AccessCO, true
	case "RC":
		return mir.AccessRC, true
	default:
		return mir.AccessUnspecified, false
	}
}

func parseByteOrder(s string) (mir.ByteOrder, bool) {
	switch s {
	case "LE":
		return mir.LittleEndian, true
	case "BE":
		return mir.BigEndian, true
	default:
		return mir.ByteOrderUnspecified, false
	}
}

func parseBitOrder(s string) (mir.BitOrder, bool) {
	switch s {
	case "LSB0":
		return mir.LSB0, true
	case "MSB0":
		return mir.MSB0, true
	default:
		return mir.BitOrderUnspecified, false
	}
}

func parseBaseType(s string) mir.BaseType {
	switch s {
	case "bool":
		return mir.BaseType{Kind: mir.BaseTypeBool}
	case "uint":
		return mir.BaseType{Kind: mir.BaseTypeUint}
	case "int":
		return mir.BaseType{Kind: mir.BaseTypeInt}
	default:
		if in, ok := parseInteger(s); ok {
			return mir.BaseType{Kind: mir.BaseTypeFixed, Integer: in}
		}

		return mir.BaseType{Kind: mir.BaseTypeUnspecified}
	}
}
