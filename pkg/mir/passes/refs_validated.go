package passes

import (
	"fmt"

	"github.com/chipforge/drivergen/pkg/diag"
	"github.com/chipforge/drivergen/pkg/mir"
)

// RefsValidated checks that each Ref points at an existing, non-cyclic
// chain terminating in a concrete object of a compatible kind (spec §4.5
// pass 8a, invariant 7; §9 design note "cyclic refs"). It must run before
// RefsResolved, which assumes every remaining Ref is valid.
//
// Grounded on spec §9's worklist-with-visited-set guidance; resolution
// target-lookup semantics from
// original_source/generation/src/mir/passes/refs_resolved.rs.
func RefsValidated(manifest *mir.Manifest, diagnostics *diag.Diagnostics) map[mir.UniqueId]struct{} {
	removed := map[mir.UniqueId]struct{}{}

	for _, device := range manifest.Devices {
		refs := collectRefs(device.Objects)

		for _, ref := range refs {
			if _, ok := resolveChain(device, ref, diagnostics, removed); !ok {
				continue
			}
		}
	}

	return removed
}

func collectRefs(objs []mir.Object) []*mir.Ref {
	var out []*mir.Ref

	for _, o := range objs {
		switch v := o.(type) {
		case *mir.Ref:
			out = append(out, v)
		case *mir.Block:
			out = append(out, collectRefs(v.Objects)...)
		}
	}

	return out
}

// resolveChain follows ref.TargetName until it reaches a non-Ref object,
// detecting cycles via a visited set. It reports UnresolvedRef for a
// missing target or a cycle, and RefKindMismatch if the ref declared an
// expected kind that the resolved target does not match.
func resolveChain(device *mir.Device, ref *mir.Ref, diagnostics *diag.Diagnostics, removed map[mir.UniqueId]struct{}) (mir.Object, bool) {
	visited := map[mir.UniqueId]struct{}{ref.ID(): {}}
	currentName := ref.TargetName

	for {
		target, ok := mir.FindObjectByName(device, currentName)
		if !ok {
			diagnostics.Add(diag.Report{
				Severity: diag.Error,
				Code:     CodeUnresolvedRef,
				Message:  fmt.Sprintf("ref %q targets %q, which does not exist", ref.Name().Value(), currentName),
			})
			removed[ref.ID()] = struct{}{}

			return nil, false
		}

		next, isRef := target.(*mir.Ref)
		if !isRef {
			if ref.ExpectedKind != nil && *ref.ExpectedKind != target.Kind() {
				diagnostics.Add(diag.Report{
					Severity: diag.Error,
					Code:     CodeRefKindMismatch,
					Message: fmt.Sprintf(
						"ref %q expected a %s but %q is a %s",
						ref.Name().Value(), ref.ExpectedKind.String(), currentName, target.Kind()),
				})
				removed[ref.ID()] = struct{}{}

				return nil, false
			}

			return target, true
		}

		if _, seen := visited[next.ID()]; seen {
			diagnostics.Add(diag.Report{
				Severity: diag.Error,
				Code:     CodeUnresolvedRef,
				Message:  fmt.Sprintf("ref %q forms a cycle through %q", ref.Name().Value(), currentName),
			})
			removed[ref.ID()] = struct{}{}

			return nil, false
		}

		visited[next.ID()] = struct{}{}
		currentName = next.TargetName
	}
}
