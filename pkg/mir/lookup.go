package mir

// FindObjectByName searches a device's object tree (including nested
// blocks) for an object with the given name, matching the teacher's
// search_object helper (original_source/generation/src/mir/passes/
// refs_resolved.rs).
func FindObjectByName(device *Device, name string) (Object, bool) {
	return findIn(device.Objects, name)
}

func findIn(objs []Object, name string) (Object, bool) {
	for _, o := range objs {
		if o.Name().Value() == name {
			return o, true
		}

		if b, ok := o.(*Block); ok {
			if found, ok := findIn(b.Objects, name); ok {
				return found, true
			}
		}
	}

	return nil, false
}
