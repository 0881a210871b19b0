package mir

// Cursor performs a pre-order walk of a Manifest, yielding the current
// Object together with its EffectiveConfig (spec §4.3: "flat iteration with
// effective config"). It holds exactly one live mutable view at a time: call
// Next to advance, then Object/Config/Set to inspect or replace the current
// item, before calling Next again. This mirrors the teacher's iterative
// scope-descent style (pkg/corset/compiler/resolver.go) rather than a
// recursive-callback API, since passes need to both read ancestor state and
// write the current node without re-deriving the whole path each time.
type Cursor struct {
	frames []*frame
	cur    *frame
	curIdx int
}

type frame struct {
	objs []Object
	idx  int
	cfg  Config
}

// NewCursor constructs a cursor over every device in the manifest. Each
// device is visited as an Object in its own right (with an empty
// EffectiveConfig, since a device has no ancestor to inherit from), then its
// children are visited using the device's own Config as their effective
// config.
func NewCursor(m *Manifest) *Cursor {
	objs := make([]Object, len(m.Devices))
	for i, d := range m.Devices {
		objs[i] = d
	}

	return &Cursor{frames: []*frame{{objs: objs}}}
}

// Next advances the cursor to the next object in pre-order, returning false
// once the walk is exhausted.
func (c *Cursor) Next() bool {
	for len(c.frames) > 0 {
		top := c.frames[len(c.frames)-1]
		if top.idx >= len(top.objs) {
			c.frames = c.frames[:len(c.frames)-1]
			continue
		}

		obj := top.objs[top.idx]
		c.cur = top
		c.curIdx = top.idx
		top.idx++

		if children, childCfg, ok := childrenOf(obj, top.cfg); ok {
			c.frames = append(c.frames, &frame{objs: children, cfg: childCfg})
		}

		return true
	}

	c.cur = nil

	return false
}

// Object returns the object at the cursor's current position.
func (c *Cursor) Object() Object {
	return c.cur.objs[c.curIdx]
}

// Config returns the EffectiveConfig in effect for the current object (i.e.
// the config inherited from its parent, before any overrides the current
// object itself declares).
func (c *Cursor) Config() Config {
	return c.cur.cfg
}

// Set replaces the object at the cursor's current position in place. The
// replacement does not re-descend into the new object's children during
// this walk; start a fresh Cursor to do so.
func (c *Cursor) Set(o Object) {
	c.cur.objs[c.curIdx] = o
}

// childrenOf returns the child object list and the EffectiveConfig those
// children should inherit, for Object kinds that have children.
func childrenOf(obj Object, parentCfg Config) ([]Object, Config, bool) {
	switch o := obj.(type) {
	case *Device:
		return o.Objects, parentCfg.Merge(o.Config), true
	case *Block:
		return o.Objects, parentCfg.Merge(o.ConfigOverride), true
	case *Register:
		if o.FieldSet == nil {
			return nil, Config{}, false
		}

		return []Object{o.FieldSet}, parentCfg, true
	case *Command:
		var children []Object
		if o.InFieldSet != nil {
			children = append(children, o.InFieldSet)
		}

		if o.OutFieldSet != nil {
			children = append(children, o.OutFieldSet)
		}

		if len(children) == 0 {
			return nil, Config{}, false
		}

		return children, parentCfg, true
	default:
		return nil, Config{}, false
	}
}
