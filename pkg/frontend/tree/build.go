package tree

import (
	"fmt"

	"github.com/chipforge/drivergen/pkg/diag"
	"github.com/chipforge/drivergen/pkg/ident"
	"github.com/chipforge/drivergen/pkg/mir"
	"github.com/chipforge/drivergen/pkg/source"
)

// Structural diagnostic codes, shared by every front-end that funnels
// through Build (spec §7).
const (
	CodeUnknownRootKeyword = "UnknownRootKeyword"
	CodeMissingObjectName  = "MissingObjectName"
	CodeUnexpectedEntries  = "UnexpectedEntries"
)

var topLevelKeywords = map[string]bool{
	"device": true,
}

var objectKeywords = map[string]bool{
	"block": true, "register": true, "command": true, "buffer": true,
	"field_set": true, "enum": true, "extern": true, "ref": true,
}

// Build turns a root Node (one manifest document, whose children are
// top-level "device" nodes) into a Manifest, reporting structural errors as
// diagnostics rather than failing outright, matching the MIR passes'
// recover-and-report policy (spec §7).
func Build(root *Node, file *source.File) (*mir.Manifest, *diag.Diagnostics) {
	manifest := mir.NewManifest()
	diagnostics := diag.New()

	devices := root.ChildrenOf("device")
	if len(devices) == 0 && root.Keyword == "device" {
		devices = []*Node{root}
	}

	for _, d := range devices {
		if device, ok := buildDevice(d, manifest, diagnostics, file); ok {
			manifest.Devices = append(manifest.Devices, device)
		}
	}

	for _, c := range root.Children {
		if c.Keyword != "device" && !topLevelKeywords[c.Keyword] {
			diagnostics.Add(diag.Report{
				Severity: diag.Error,
				Code:     CodeUnknownRootKeyword,
				Message:  fmt.Sprintf("unrecognized top-level keyword %q (expected \"device\")", c.Keyword),
				File:     file,
				Labels:   []diag.Label{{Span: c.Span, Message: "here"}},
			})
		}
	}

	return manifest, diagnostics
}

func requireName(n *Node, diagnostics *diag.Diagnostics, file *source.File) (ident.Identifier, bool) {
	if n.Name == "" {
		diagnostics.Add(diag.Report{
			Severity: diag.Error,
			Code:     CodeMissingObjectName,
			Message:  fmt.Sprintf("%s declaration is missing a name", n.Keyword),
			File:     file,
			Labels:   []diag.Label{{Span: n.Span, Message: "here"}},
		})

		return ident.Identifier{}, false
	}

	return ident.New(n.Name, n.NameSpan), true
}

func buildDevice(n *Node, manifest *mir.Manifest, diagnostics *diag.Diagnostics, file *source.File) (*mir.Device, bool) {
	name, ok := requireName(n, diagnostics, file)
	if !ok {
		return nil, false
	}

	device := &mir.Device{Config: buildConfig(n)}
	device.AssignID(manifest.NewID())
	device.SetName(name)
	device.SetDescription(descriptionOf(n))
	device.SetCfgAttr(cfgOf(n))

	for _, c := range n.Children {
		if !objectKeywords[c.Keyword] {
			continue
		}

		if obj, ok := buildObject(c, manifest, diagnostics, file); ok {
			device.Objects = append(device.Objects, obj)
		}
	}

	return device, true
}

func buildObject(n *Node, manifest *mir.Manifest, diagnostics *diag.Diagnostics, file *source.File) (mir.Object, bool) {
	switch n.Keyword {
	case "block":
		return buildBlock(n, manifest, diagnostics, file)
	case "register":
		return buildRegister(n, manifest, diagnostics, file)
	case "command":
		return buildCommand(n, manifest, diagnostics, file)
	case "buffer":
		return buildBuffer(n, manifest, diagnostics, file)
	case "field_set":
		return buildFieldSet(n, manifest, diagnostics, file)
	case "enum":
		return buildEnum(n, manifest, diagnostics, file)
	case "extern":
		return buildExtern(n, manifest, diagnostics, file)
	case "ref":
		return buildRef(n, manifest, diagnostics, file)
	default:
		return nil, false
	}
}

func buildBlock(n *Node, manifest *mir.Manifest, diagnostics *diag.Diagnostics, file *source.File) (*mir.Block, bool) {
	name, ok := requireName(n, diagnostics, file)
	if !ok {
		return nil, false
	}

	b := &mir.Block{ConfigOverride: buildConfig(n), Repeat: repeatOf(n)}
	b.AssignID(manifest.NewID())
	b.SetName(name)
	b.SetDescription(descriptionOf(n))
	b.SetCfgAttr(cfgOf(n))

	if v, ok := n.Attr("address_offset"); ok {
		if i, ok := v.AsInt(); ok {
			b.AddressOffset = i
		}
	}

	for _, c := range n.Children {
		if !objectKeywords[c.Keyword] {
			continue
		}

		if obj, ok := buildObject(c, manifest, diagnostics, file); ok {
			b.Objects = append(b.Objects, obj)
		}
	}

	return b, true
}

func buildRegister(n *Node, manifest *mir.Manifest, diagnostics *diag.Diagnostics, file *source.File) (*mir.Register, bool) {
	name, ok := requireName(n, diagnostics, file)
	if !ok {
		return nil, false
	}

	r := &mir.Register{Repeat: repeatOf(n)}
	r.AssignID(manifest.NewID())
	r.SetName(name)
	r.SetDescription(descriptionOf(n))
	r.SetCfgAttr(cfgOf(n))

	if v, ok := n.Attr("address"); ok {
		if i, ok := v.AsInt(); ok {
			r.Address = i
		}
	}

	if v, ok := n.Attr("size_bits"); ok {
		if i, ok := v.AsInt(); ok {
			r.SizeBits = uint32(i)
		}
	}

	if v, ok := n.Attr("access"); ok {
		if s, ok := v.AsString(); ok {
			if a, ok := parseAccess(s); ok {
				r.Access = a
			}
		}
	}

	if v, ok := n.Attr("reset_value"); ok {
		if i, ok := v.AsInt(); ok {
			u := uint64(i)
			r.ResetValue = &u
		}
	}

	r.FieldSet = buildInlineFieldSet(n, name, manifest, diagnostics, file)

	return r, true
}

func buildCommand(n *Node, manifest *mir.Manifest, diagnostics *diag.Diagnostics, file *source.File) (*mir.Command, bool) {
	name, ok := requireName(n, diagnostics, file)
	if !ok {
		return nil, false
	}

	cmd := &mir.Command{Repeat: repeatOf(n)}
	cmd.AssignID(manifest.NewID())
	cmd.SetName(name)
	cmd.SetDescription(descriptionOf(n))
	cmd.SetCfgAttr(cfgOf(n))

	if v, ok := n.Attr("address"); ok {
		if i, ok := v.AsInt(); ok {
			cmd.Address = i
		}
	}

	if in := firstChildOf(n, "in"); in != nil {
		cmd.InFieldSet = buildInlineFieldSet(in, ident.New(name.Value()+"In", in.Span), manifest, diagnostics, file)
	}

	if out := firstChildOf(n, "out"); out != nil {
		cmd.OutFieldSet = buildInlineFieldSet(out, ident.New(name.Value()+"Out", out.Span), manifest, diagnostics, file)
	}

	return cmd, true
}

func buildBuffer(n *Node, manifest *mir.Manifest, diagnostics *diag.Diagnostics, file *source.File) (*mir.Buffer, bool) {
	name, ok := requireName(n, diagnostics, file)
	if !ok {
		return nil, false
	}

	buf := &mir.Buffer{Repeat: repeatOf(n)}
	buf.AssignID(manifest.NewID())
	buf.SetName(name)
	buf.SetDescription(descriptionOf(n))
	buf.SetCfgAttr(cfgOf(n))

	if v, ok := n.Attr("address"); ok {
		if i, ok := v.AsInt(); ok {
			buf.Address = i
		}
	}

	if v, ok := n.Attr("access"); ok {
		if s, ok := v.AsString(); ok {
			if a, ok := parseAccess(s); ok {
				buf.Access = a
			}
		}
	}

	return buf, true
}

func buildFieldSet(n *Node, manifest *mir.Manifest, diagnostics *diag.Diagnostics, file *source.File) (*mir.FieldSet, bool) {
	name, ok := requireName(n, diagnostics, file)
	if !ok {
		return nil, false
	}

	return buildInlineFieldSet(n, name, manifest, diagnostics, file), true
}

func buildInlineFieldSet(n *Node, name ident.Identifier, manifest *mir.Manifest, diagnostics *diag.Diagnostics, file *source.File) *mir.FieldSet {
	fs := &mir.FieldSet{}
	fs.AssignID(manifest.NewID())
	fs.SetName(name)
	fs.SetDescription(descriptionOf(n))
	fs.SetCfgAttr(cfgOf(n))

	if v, ok := n.Attr("size_bits"); ok {
		if i, ok := v.AsInt(); ok {
			fs.SizeBits = uint32(i)
		}
	}

	if v, ok := n.Attr("bit_order"); ok {
		if s, ok := v.AsString(); ok {
			if bo, ok := parseBitOrder(s); ok {
				fs.BitOrder = bo
			}
		}
	}

	for _, c := range n.ChildrenOf("field") {
		fs.Fields = append(fs.Fields, buildField(c, manifest, diagnostics, file))
	}

	return fs
}

func buildField(n *Node, manifest *mir.Manifest, diagnostics *diag.Diagnostics, file *source.File) *mir.Field {
	name, _ := requireName(n, diagnostics, file)

	f := &mir.Field{
		Name:        name,
		Cfg:         cfgOf(n),
		Description: descriptionOf(n),
	}

	if v, ok := n.Attr("start"); ok {
		if i, ok := v.AsInt(); ok {
			f.Start = uint32(i)
		}
	}

	if v, ok := n.Attr("end"); ok {
		if i, ok := v.AsInt(); ok {
			f.End = uint32(i)
		}
	}

	if v, ok := n.Attr("base_type"); ok {
		if s, ok := v.AsString(); ok {
			f.BaseType = parseBaseType(s)
		}
	}

	if v, ok := n.Attr("access"); ok {
		if s, ok := v.AsString(); ok {
			if a, ok := parseAccess(s); ok {
				f.Access = a
			}
		}
	}

	f.Conversion = buildFieldConversion(n, manifest, diagnostics, file)

	return f
}

func buildFieldConversion(n *Node, manifest *mir.Manifest, diagnostics *diag.Diagnostics, file *source.File) *mir.FieldConversion {
	if v, ok := n.Attr("type"); ok {
		if s, ok := v.AsString(); ok {
			return &mir.FieldConversion{Kind: mir.ConversionExternalType, Path: s}
		}
	}

	variants := n.ChildrenOf("variant")
	if len(variants) == 0 {
		return nil
	}

	useTry, _ := boolAttr(n, "try")

	enumName := ident.New(fmt.Sprintf("%sKind", n.Name), n.Span)
	if v, ok := n.Attr("enum"); ok {
		if s, ok := v.AsString(); ok {
			enumName = ident.New(s, n.Span)
		}
	}

	e := buildEnumFromVariants(enumName, n, manifest, diagnostics, file)

	return &mir.FieldConversion{Kind: mir.ConversionEnum, TypeName: enumName, EnumValue: e, UseTry: useTry}
}

func buildEnum(n *Node, manifest *mir.Manifest, diagnostics *diag.Diagnostics, file *source.File) (*mir.Enum, bool) {
	name, ok := requireName(n, diagnostics, file)
	if !ok {
		return nil, false
	}

	return buildEnumFromVariants(name, n, manifest, diagnostics, file), true
}

func buildEnumFromVariants(name ident.Identifier, n *Node, manifest *mir.Manifest, diagnostics *diag.Diagnostics, file *source.File) *mir.Enum {
	e := &mir.Enum{}
	e.AssignID(manifest.NewID())
	e.SetName(name)
	e.SetDescription(descriptionOf(n))
	e.SetCfgAttr(cfgOf(n))

	if v, ok := n.Attr("base_type"); ok {
		if s, ok := v.AsString(); ok {
			e.BaseType = parseBaseType(s)
		}
	}

	for _, vn := range n.ChildrenOf("variant") {
		vname, _ := requireName(vn, diagnostics, file)

		variant := mir.EnumVariant{Name: vname, Cfg: cfgOf(vn)}

		isDefault, _ := boolAttr(vn, "default")
		isCatchAll, _ := boolAttr(vn, "catch_all")

		switch {
		case isDefault:
			variant.Kind = mir.EnumValueDefault
		case isCatchAll:
			variant.Kind = mir.EnumValueCatchAll
		default:
			variant.Kind = mir.EnumValueUnspecified
		}

		if v, ok := vn.Attr("value"); ok {
			if i, ok := v.AsInt(); ok {
				variant.Value = i
				if variant.Kind == mir.EnumValueUnspecified {
					variant.Kind = mir.EnumValueSpecified
				}
			}
		}

		e.Variants = append(e.Variants, variant)
	}

	return e
}

func buildExtern(n *Node, manifest *mir.Manifest, diagnostics *diag.Diagnostics, file *source.File) (*mir.Extern, bool) {
	name, ok := requireName(n, diagnostics, file)
	if !ok {
		return nil, false
	}

	ext := &mir.Extern{}
	ext.AssignID(manifest.NewID())
	ext.SetName(name)
	ext.SetDescription(descriptionOf(n))
	ext.SetCfgAttr(cfgOf(n))

	if v, ok := n.Attr("base_type"); ok {
		if s, ok := v.AsString(); ok {
			ext.BaseType = parseBaseType(s)
		}
	}

	if v, ok := n.Attr("size_bits"); ok {
		if i, ok := v.AsInt(); ok {
			u := uint32(i)
			ext.SizeBits = &u
		}
	}

	return ext, true
}

func buildRef(n *Node, manifest *mir.Manifest, diagnostics *diag.Diagnostics, file *source.File) (*mir.Ref, bool) {
	name, ok := requireName(n, diagnostics, file)
	if !ok {
		return nil, false
	}

	r := &mir.Ref{}
	r.AssignID(manifest.NewID())
	r.SetName(name)
	r.SetDescription(descriptionOf(n))
	r.SetCfgAttr(cfgOf(n))

	if v, ok := n.Attr("target"); ok {
		if s, ok := v.AsString(); ok {
			r.TargetName = s
		}
	}

	if v, ok := n.Attr("kind"); ok {
		if s, ok := v.AsString(); ok {
			if k, ok := parseKind(s); ok {
				r.ExpectedKind = &k
			}
		}
	}

	if v, ok := n.Attr("address"); ok {
		if i, ok := v.AsInt(); ok {
			r.Overrides.Address = &i
		}
	}

	return r, true
}

func parseKind(s string) (mir.Kind, bool) {
	switch s {
	case "register":
		return mir.KindRegister, true
	case "command":
		return mir.KindCommand, true
	case "buffer":
		return mir.KindBuffer, true
	default:
		return mir.KindDevice, false
	}
}

func repeatOf(n *Node) *mir.Repeat {
	count, hasCount := n.Attr("repeat_count")
	enumName, hasEnum := n.Attr("repeat_enum")

	if !hasCount && !hasEnum {
		return nil
	}

	r := &mir.Repeat{}

	if hasCount {
		if i, ok := count.AsInt(); ok {
			r.Count = i
		}
	}

	if hasEnum {
		if s, ok := enumName.AsString(); ok {
			useTry, _ := boolAttr(n, "repeat_try")
			r.Conversion = &mir.RepeatConversion{EnumName: s, UseTry: useTry}
		}
	}

	if v, ok := n.Attr("repeat_stride"); ok {
		if i, ok := v.AsInt(); ok {
			r.Stride = i
		}
	}

	return r
}

func cfgOf(n *Node) mir.Cfg {
	v, ok := n.Attr("cfg")
	if !ok {
		return mir.NoCfg
	}

	items, _ := v.AsList()

	var exprs []string

	for _, item := range items {
		if s, ok := item.AsString(); ok {
			exprs = append(exprs, s)
		}
	}

	return mir.Cfg{Exprs: exprs}
}

func descriptionOf(n *Node) string {
	if v, ok := n.Attr("description"); ok {
		if s, ok := v.AsString(); ok {
			return s
		}
	}

	return ""
}

func boolAttr(n *Node, key string) (bool, bool) {
	v, ok := n.Attr(key)
	if !ok {
		return false, false
	}

	return v.AsBool()
}

func firstChildOf(n *Node, keyword string) *Node {
	for _, c := range n.Children {
		if c.Keyword == keyword {
			return c
		}
	}

	return nil
}
