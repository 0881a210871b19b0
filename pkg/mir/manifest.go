package mir

// Manifest is the root of the MIR: zero or more Devices, matching a source
// document that may (in principle) describe more than one device, though in
// practice every front-end in this compiler emits exactly one per source
// file.
type Manifest struct {
	Devices []*Device
	ids     idGen
}

// NewManifest constructs an empty manifest.
func NewManifest() *Manifest {
	return &Manifest{}
}

// NewID allocates a fresh UniqueId, used both by front-ends constructing
// objects and by passes that synthesize new objects (e.g. ref resolution
// cloning a target, spec §4.5 pass 8).
func (m *Manifest) NewID() UniqueId {
	return m.ids.alloc()
}

// AllObjects returns every Object in the manifest, pre-order, ignoring
// effective config. Equivalent to draining a Cursor but convenient for
// read-only passes that do not need the config.
func (m *Manifest) AllObjects() []Object {
	var out []Object

	c := NewCursor(m)
	for c.Next() {
		out = append(out, c.Object())
	}

	return out
}

// FindByID searches the manifest for the Object with the given id.
func (m *Manifest) FindByID(id UniqueId) (Object, bool) {
	c := NewCursor(m)
	for c.Next() {
		if c.Object().ID() == id {
			return c.Object(), true
		}
	}

	return nil, false
}
