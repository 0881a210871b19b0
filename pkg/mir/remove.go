package mir

// Remove deletes every Object (at any depth, including whole Devices) whose
// UniqueId is present in ids, compacting the containing slice. This is the
// driver-side half of spec §4.4's removal-propagation contract: a pass
// reports ids it could not make well-formed, and the driver — not the pass —
// performs the tree surgery, so passes never have to reason about slice
// indices.
func (m *Manifest) Remove(ids map[UniqueId]struct{}) {
	if len(ids) == 0 {
		return
	}

	m.Devices = filterDevices(m.Devices, ids)

	for _, d := range m.Devices {
		d.Objects = filterObjects(d.Objects, ids)
	}
}

func filterDevices(devices []*Device, ids map[UniqueId]struct{}) []*Device {
	out := devices[:0]

	for _, d := range devices {
		if _, removed := ids[d.ID()]; removed {
			continue
		}

		out = append(out, d)
	}

	return out
}

func filterObjects(objs []Object, ids map[UniqueId]struct{}) []Object {
	out := objs[:0]

	for _, o := range objs {
		if _, removed := ids[o.ID()]; removed {
			continue
		}

		if fieldSetRemoved(o, ids) {
			continue
		}

		if b, ok := o.(*Block); ok {
			b.Objects = filterObjects(b.Objects, ids)
		}

		out = append(out, o)
	}

	return out
}

// fieldSetRemoved reports whether a Register or Command's attached field
// set(s) were marked for removal. A field set is never a sibling in an
// Objects slice (it hangs off its owner by pointer), so a pass that finds it
// malformed has no tree position of its own to be filtered from; the owning
// Register/Command is removed instead, cascading the same way a Block's
// malformed child would.
func fieldSetRemoved(o Object, ids map[UniqueId]struct{}) bool {
	switch v := o.(type) {
	case *Register:
		if v.FieldSet == nil {
			return false
		}

		_, removed := ids[v.FieldSet.ID()]

		return removed
	case *Command:
		if v.InFieldSet != nil {
			if _, removed := ids[v.InFieldSet.ID()]; removed {
				return true
			}
		}

		if v.OutFieldSet != nil {
			if _, removed := ids[v.OutFieldSet.ID()]; removed {
				return true
			}
		}

		return false
	default:
		return false
	}
}
