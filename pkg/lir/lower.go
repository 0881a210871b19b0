package lir

import "github.com/chipforge/drivergen/pkg/mir"

// Lower turns a validated Manifest into a Driver, one lowered Device per MIR
// Device. Lowering is a pure structural transformation, not validation: it
// assumes every invariant spec §3 lists already holds (the pass pipeline has
// run to completion with no errors).
//
// Grounded on the teacher's own lowering style
// (Consensys-go-corset/pkg/hir/lower.go: a flat walk that copies/translates
// each source construct into its destination-schema counterpart, rather than
// a generic visitor), generalized to the tree-flattening and identity-
// deduplication spec §4.6 requires.
func Lower(manifest *mir.Manifest) *Driver {
	driver := &Driver{}

	for _, device := range manifest.Devices {
		driver.Devices = append(driver.Devices, lowerDevice(device))
	}

	return driver
}

// ctx accumulates the per-device dedup tables while lowerObjects recurses.
// fsOrder/enumOrder hold first-seen order, becoming Device.FieldSets/Enums.
type ctx struct {
	device    *mir.Device
	fsByPtr   map[*mir.FieldSet]*FieldSet
	enumByPtr map[*mir.Enum]*Enum
	fsOrder   []*FieldSet
	enumOrder []*Enum
}

func lowerDevice(device *mir.Device) *Device {
	c := &ctx{
		device:    device,
		fsByPtr:   map[*mir.FieldSet]*FieldSet{},
		enumByPtr: map[*mir.Enum]*Enum{},
	}

	out := &Device{
		Name:        device.Name().PascalCase(),
		Description: device.Description(),
		Cfg:         device.CfgAttr(),
	}

	if device.Config.DefmtFeature != nil {
		out.DefmtFeature = *device.Config.DefmtFeature
	}

	out.Methods, out.Blocks = c.lowerObjects(device.Objects, device.Config, "")
	out.FieldSets = c.fsOrder
	out.Enums = c.enumOrder

	return out
}

// lowerObjects lowers one scope's object list (a Device's or a Block's
// immediate children) into the accessors exposed at that scope plus every
// Block nested anywhere below it, flattened.
func (c *ctx) lowerObjects(objs []mir.Object, cfg mir.Config, namePrefix string) ([]*Method, []*Block) {
	var methods []*Method

	var blocks []*Block

	for _, obj := range objs {
		switch v := obj.(type) {
		case *mir.Register:
			methods = append(methods, &Method{
				Kind:         MethodRegister,
				Name:         v.Name().SnakeCase(),
				Description:  v.Description(),
				Cfg:          v.CfgAttr(),
				Address:      v.Address,
				Access:       v.Access,
				FieldSetName: c.lowerFieldSet(v.FieldSet, cfg),
				Repeat:       c.lowerRepeat(v.Repeat),
				AliasOf:      v.AliasOf,
			})
		case *mir.Command:
			methods = append(methods, &Method{
				Kind:            MethodCommand,
				Name:            v.Name().SnakeCase(),
				Description:     v.Description(),
				Cfg:             v.CfgAttr(),
				Address:         v.Address,
				InFieldSetName:  c.lowerFieldSet(v.InFieldSet, cfg),
				OutFieldSetName: c.lowerFieldSet(v.OutFieldSet, cfg),
				Repeat:          c.lowerRepeat(v.Repeat),
				AliasOf:         v.AliasOf,
			})
		case *mir.Buffer:
			methods = append(methods, &Method{
				Kind:        MethodBuffer,
				Name:        v.Name().SnakeCase(),
				Description: v.Description(),
				Cfg:         v.CfgAttr(),
				Address:     v.Address,
				Access:      v.Access,
				Repeat:      c.lowerRepeat(v.Repeat),
				AliasOf:     v.AliasOf,
			})
		case *mir.Block:
			blockName := namePrefix + v.Name().PascalCase()

			childMethods, childBlocks := c.lowerObjects(v.Objects, cfg.Merge(v.ConfigOverride), blockName)

			methods = append(methods, &Method{
				Kind:        MethodBlock,
				Name:        v.Name().SnakeCase(),
				Description: v.Description(),
				Cfg:         v.CfgAttr(),
				Address:     v.AddressOffset,
				BlockName:   blockName,
				Repeat:      c.lowerRepeat(v.Repeat),
			})

			blocks = append(blocks, &Block{
				Name:          blockName,
				Description:   v.Description(),
				Cfg:           v.CfgAttr(),
				AddressOffset: v.AddressOffset,
				Repeat:        c.lowerRepeat(v.Repeat),
				Methods:       childMethods,
			})
			blocks = append(blocks, childBlocks...)
		case *mir.Enum:
			// A top-level named enum: register it for dedup even when only
			// referenced by a repeat conversion and no field (so it still
			// surfaces in Driver.Enums for emission).
			c.lowerEnum(v)
		}
	}

	return methods, blocks
}

func (c *ctx) lowerRepeat(r *mir.Repeat) *Repeat {
	if r == nil {
		return nil
	}

	out := &Repeat{Count: r.Count, Stride: r.Stride}

	if r.Conversion != nil {
		if target, ok := mir.FindObjectByName(c.device, r.Conversion.EnumName); ok {
			if e, ok := target.(*mir.Enum); ok {
				out.IndexEnumName = c.lowerEnum(e)
			}
		}
	}

	return out
}

func (c *ctx) lowerFieldSet(fs *mir.FieldSet, cfg mir.Config) string {
	if fs == nil {
		return ""
	}

	if existing, ok := c.fsByPtr[fs]; ok {
		return existing.Name
	}

	out := &FieldSet{
		Name:        fs.Name().PascalCase(),
		Description: fs.Description(),
		Cfg:         fs.CfgAttr(),
		SizeBits:    fs.SizeBits,
		BitOrder:    fs.BitOrder,
		ByteOrder:   cfg.ByteOrderOrDefault(),
	}

	c.fsByPtr[fs] = out
	c.fsOrder = append(c.fsOrder, out)

	for _, f := range fs.Fields {
		out.Fields = append(out.Fields, c.lowerField(f))
	}

	return out.Name
}

func (c *ctx) lowerField(f *mir.Field) *Field {
	out := &Field{
		Name:        f.Name.SnakeCase(),
		Description: f.Description,
		Cfg:         f.Cfg,
		Start:       f.Start,
		End:         f.End,
		BaseType:    f.BaseType,
		Access:      f.Access,
	}

	if f.Conversion != nil {
		conv := &FieldConversion{Kind: f.Conversion.Kind, UseTry: f.Conversion.UseTry}

		switch f.Conversion.Kind {
		case mir.ConversionEnum:
			if f.Conversion.EnumValue != nil {
				conv.TypeName = c.lowerEnum(f.Conversion.EnumValue)
			} else {
				conv.TypeName = f.Conversion.TypeName.PascalCase()
			}
		case mir.ConversionExternalType:
			conv.TypeName = f.Conversion.Path
		}

		out.Conversion = conv
	}

	return out
}

func (c *ctx) lowerEnum(e *mir.Enum) string {
	if existing, ok := c.enumByPtr[e]; ok {
		return existing.Name
	}

	out := &Enum{
		Name:            e.Name().PascalCase(),
		Description:     e.Description(),
		Cfg:             e.CfgAttr(),
		BaseType:        e.BaseType,
		GenerationStyle: e.GenerationStyle,
	}

	for _, v := range e.Variants {
		out.Variants = append(out.Variants, EnumVariant{
			Name:  v.Name.PascalCase(),
			Kind:  v.Kind,
			Value: v.Value,
			Cfg:   v.Cfg,
		})
	}

	c.enumByPtr[e] = out
	c.enumOrder = append(c.enumOrder, out)

	return out.Name
}
