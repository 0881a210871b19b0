// Package codegen renders a lowered LIR Driver into target-language source
// (spec §4.7). The Rust target is the only one implemented; the `Target`
// struct and the swappable template set are the seam spec.md §1 carves out
// for adding others later.
//
// Grounded on original_source/generation/src/lir/code_transform.rs's
// "one template per LIR shape" decomposition (there expressed with askama,
// a Rust macro-based template engine with no Go analogue in the pack),
// adapted to stdlib text/template, which spec.md §1 explicitly names as the
// swappable collaborator this package owns.
package codegen

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/chipforge/drivergen/pkg/lir"
	"github.com/chipforge/drivergen/pkg/mir"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Target selects codegen options. Async additionally emits `_read_async`/
// `_write_async` accessors for each register, bounded on
// AsyncRegisterInterface (SPEC_FULL.md §3's capability-trait-gated async
// support). Commands, buffers and `_modify` are emitted in sync form only.
type Target struct {
	Async bool
}

// Generate renders every device in driver into one Rust source string.
func Generate(target Target, driver *lir.Driver) (string, error) {
	var out strings.Builder

	out.WriteString("// Code generated by drivergen. DO NOT EDIT.\n")

	bitops, err := generateBitops(target)
	if err != nil {
		return "", err
	}

	out.WriteString(bitops)

	for _, device := range driver.Devices {
		rendered, err := generateDevice(target, device)
		if err != nil {
			return "", fmt.Errorf("device %s: %w", device.Name, err)
		}

		out.WriteString(rendered)
	}

	return out.String(), nil
}

// generateBitops renders the ByteOrder/BitOrder types and the extract_bits/
// insert_bits/sign_extend helpers every field accessor calls, once per
// module regardless of how many devices it emits.
func generateBitops(target Target) (string, error) {
	funcs := newFuncMap(target, &lir.Device{}, map[string]int{})

	tmpl, err := template.New("bitops").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "bitops", nil); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// generateDevice renders a single device. The FuncMap is rebuilt per device
// because defmtDerive and fieldSetByteLen both depend on that device's own
// state (its DefmtFeature flag and its FieldSets list, respectively).
func generateDevice(target Target, device *lir.Device) (string, error) {
	byteLen := make(map[string]int, len(device.FieldSets))
	for _, fs := range device.FieldSets {
		byteLen[fs.Name] = bytesFor(fs.SizeBits)
	}

	funcs := newFuncMap(target, device, byteLen)

	tmpl, err := template.New("device").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "device", device); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func bytesFor(bits uint32) int {
	return int((bits + 7) / 8)
}

func newFuncMap(target Target, device *lir.Device, fsByteLen map[string]int) template.FuncMap {
	return template.FuncMap{
		"cfgAttr": func(cfg mir.Cfg) string {
			if cfg.IsEmpty() {
				return ""
			}

			return fmt.Sprintf("#[cfg(%s)]\n", cfg.Render())
		},
		"docComment": func(description string) string {
			if description == "" {
				return ""
			}

			lines := strings.Split(strings.TrimRight(description, "\n"), "\n")
			for i, l := range lines {
				lines[i] = "/// " + l
			}

			return strings.Join(lines, "\n") + "\n"
		},
		"defmtDerive":  func() bool { return device.DefmtFeature != "" },
		"asyncEnabled": func() bool { return target.Async },
		"bytesFor":    bytesFor,
		"byteOrder": func(b mir.ByteOrder) string {
			if b == mir.BigEndian {
				return "BigEndian"
			}

			return "LittleEndian"
		},
		"bitOrder": func(b mir.BitOrder) string {
			if b == mir.MSB0 {
				return "Msb0"
			}

			return "Lsb0"
		},
		"baseType":  rustBaseType,
		"canRead":   func(a mir.Access) bool { return a.CanRead() },
		"canWrite":  func(a mir.Access) bool { return a.CanWrite() },
		"modifyEligible": func(a mir.Access) bool {
			return a.CanRead() && a.CanWrite()
		},
		"fieldReturnType": fieldReturnType,
		"fieldArgType":    fieldArgType,
		"fieldFromRaw":    fieldFromRaw,
		"fieldToRaw":      fieldToRaw,
		"isSpecified":     func(v lir.EnumVariant) bool { return v.Kind == mir.EnumValueSpecified },
		"isIndexStyle":    func(e *lir.Enum) bool { return e.GenerationStyle == mir.EnumStyleIndex },
		"hasDefault":      func(e *lir.Enum) bool { return findVariant(e, mir.EnumValueDefault) != nil },
		"hasCatchAll":     func(e *lir.Enum) bool { return findVariant(e, mir.EnumValueCatchAll) != nil },
		"defaultVariant": func(e *lir.Enum) string {
			if v := findVariant(e, mir.EnumValueDefault); v != nil {
				return v.Name
			}

			return ""
		},
		"catchAllVariant": func(e *lir.Enum) string {
			if v := findVariant(e, mir.EnumValueCatchAll); v != nil {
				return v.Name
			}

			return ""
		},
		"methodIsBlock":    func(m *lir.Method) bool { return m.Kind == lir.MethodBlock },
		"methodIsRegister": func(m *lir.Method) bool { return m.Kind == lir.MethodRegister },
		"methodIsCommand":  func(m *lir.Method) bool { return m.Kind == lir.MethodCommand },
		"addressExpr":      addressExprString,
		"repeatBound":      func(r *lir.Repeat) string { return fmt.Sprintf("%d", r.Count) },
		"repeatIndexParam": func(r *lir.Repeat) string {
			if r == nil {
				return ""
			}

			return ", index: usize"
		},
		"repeatIndexParamLeading": func(r *lir.Repeat) string {
			if r == nil {
				return ", "
			}

			return ", index: usize, "
		},
		"repeatIndexArg": func(r *lir.Repeat) string {
			if r == nil {
				return ""
			}

			return "index"
		},
		"repeatIndexArgLeading": func(r *lir.Repeat) string {
			if r == nil {
				return ""
			}

			return "index, "
		},
		"fieldSetByteLen": func(name string) int { return fsByteLen[name] },
		"commandInputParam": func(m *lir.Method) string {
			if m.InFieldSetName == "" {
				return ""
			}

			return fmt.Sprintf(", input: field_sets::%s", m.InFieldSetName)
		},
		"commandResultType": func(m *lir.Method) string {
			if m.OutFieldSetName == "" {
				return "Result<(), I::Error>"
			}

			return fmt.Sprintf("Result<field_sets::%s, I::Error>", m.OutFieldSetName)
		},
		"commandDispatchCall": func(m *lir.Method) string {
			addr := fmt.Sprintf("self.base_address + %s", addressExprString(m))

			input := "&[]"
			if m.InFieldSetName != "" {
				input = "&input.to_bytes()"
			}

			if m.OutFieldSetName == "" {
				return fmt.Sprintf("self.interface.dispatch(%s, %s, &mut [])", addr, input)
			}

			return fmt.Sprintf(
				"let mut bytes = [0u8; %d];\n        self.interface.dispatch(%s, %s, &mut bytes)?;\n        Ok(field_sets::%s::from_bytes(bytes))",
				fsByteLen[m.OutFieldSetName], addr, input, m.OutFieldSetName,
			)
		},
	}
}

func addressExprString(m *lir.Method) string {
	return fmt.Sprintf("0x%x", uint64(m.Address))
}

func findVariant(e *lir.Enum, kind mir.EnumValueKind) *lir.EnumVariant {
	for i := range e.Variants {
		if e.Variants[i].Kind == kind {
			return &e.Variants[i]
		}
	}

	return nil
}

// rustBaseType returns the Rust primitive spelling of a resolved BaseType.
// By codegen time base_types_specified (spec §4.5 item 5) has already
// promoted every field to BaseTypeBool or BaseTypeFixed.
func rustBaseType(bt mir.BaseType) string {
	if bt.Kind == mir.BaseTypeBool {
		return "bool"
	}

	return bt.Integer.String()
}

// fieldReturnType is the Rust type a field's getter returns: a fallible
// Result when the raw value may not map to any known variant, the converted
// type otherwise (or the raw primitive type for an unconverted field).
func fieldReturnType(f *lir.Field) string {
	if f.Conversion == nil {
		return rustBaseType(f.BaseType)
	}

	if f.Conversion.UseTry {
		return fmt.Sprintf("Result<%s, %s>", f.Conversion.TypeName, rustBaseType(f.BaseType))
	}

	return f.Conversion.TypeName
}

// fieldArgType is the Rust type a field's setter accepts. Unlike the
// getter's return type this is never wrapped in Result: converting a
// variant back to its raw form is always infallible (every generated enum
// implements From<Enum> for its base type), whether or not reading it back
// out of raw bits was fallible.
func fieldArgType(f *lir.Field) string {
	if f.Conversion == nil {
		return rustBaseType(f.BaseType)
	}

	return f.Conversion.TypeName
}

// fieldFromRaw converts the u64 extract_bits returns into the getter's
// return type. A signed field is sign-extended in declared-order bit space
// (Open Question (a)) before the narrowing cast; an unconverted unsigned
// field or a conversion target is simply cast down to its base width, since
// extract_bits already reassembled it there.
func fieldFromRaw(f *lir.Field) string {
	if f.Conversion == nil {
		if f.BaseType.Kind == mir.BaseTypeBool {
			return "raw != 0"
		}

		if f.BaseType.Integer.Signed() {
			return fmt.Sprintf("sign_extend(raw, %d) as %s", f.Width(), f.BaseType.Integer.String())
		}

		return fmt.Sprintf("raw as %s", rustBaseType(f.BaseType))
	}

	base := rustBaseType(f.BaseType)

	if f.Conversion.UseTry {
		return fmt.Sprintf("%s::try_from(raw as %s)", f.Conversion.TypeName, base)
	}

	return fmt.Sprintf("%s::from(raw as %s)", f.Conversion.TypeName, base)
}

// fieldToRaw converts the setter's accepted value back into the u64
// insert_bits expects. Always infallible: every generated enum and every
// external conversion type is expected to implement
// `From<T> for <base type>`. Widening a signed base type with `as u64`
// preserves its two's-complement pattern in the low bits, which is exactly
// the declared-order bit space insert_bits writes from.
func fieldToRaw(f *lir.Field) string {
	if f.Conversion == nil {
		return "value as u64"
	}

	return fmt.Sprintf("%s::from(value) as u64", rustBaseType(f.BaseType))
}
