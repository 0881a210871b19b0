package tree

import (
	"encoding/json"
	"fmt"

	"github.com/chipforge/drivergen/pkg/source"
)

// FromGeneric converts a decoded JSON/YAML/TOML document — maps, slices,
// strings, bools, and whichever numeric type that format's decoder
// produces (float64, int, int64 or json.Number) — into the schema-less Node
// tree that Build consumes. All three document-tree front-ends share this
// one conversion, which is what gives them identical MIR output for
// equivalent content (spec §8 property 1).
//
// The document schema is:
//
//	device:
//	  name: Foo
//	  register_address_type: u8
//	  objects:
//	    - kind: register
//	      name: Ctrl
//	      address: 0
//	      size_bits: 8
//	      fields:
//	        - name: enable
//	          start: 0
//	          end: 1
//	    - kind: block
//	      name: Bank
//	      objects: [...]
//
// "device" may be a single mapping or a list of mappings; nested "objects"
// entries require a "kind" key naming the MIR variant.
func FromGeneric(doc any) (*Node, error) {
	root := &Node{Keyword: "root"}

	top, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("manifest document must be a mapping at the top level")
	}

	raw, ok := top["device"]
	if !ok {
		return root, nil
	}

	switch v := raw.(type) {
	case map[string]any:
		n, err := genericObject("device", v)
		if err != nil {
			return nil, err
		}

		root.Children = append(root.Children, n)
	case []any:
		for _, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("device list entries must be mappings")
			}

			n, err := genericObject("device", m)
			if err != nil {
				return nil, err
			}

			root.Children = append(root.Children, n)
		}
	default:
		return nil, fmt.Errorf(`"device" must be a mapping or a list of mappings`)
	}

	return root, nil
}

func genericObject(keyword string, m map[string]any) (*Node, error) {
	n := &Node{Keyword: keyword, Attrs: map[string]Value{}}

	for k, v := range m {
		var err error

		switch k {
		case "name":
			if s, ok := v.(string); ok {
				n.Name = s
			}
		case "objects":
			err = appendList(n, v, genericKindedObject)
		case "fields":
			err = appendList(n, v, func(m map[string]any) (*Node, error) { return genericObject("field", m) })
		case "variants":
			err = appendList(n, v, func(m map[string]any) (*Node, error) { return genericObject("variant", m) })
		case "in", "out":
			mm, ok := v.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%q must be a mapping", k)
			}

			child, childErr := genericObject(k, mm)
			if childErr != nil {
				return nil, childErr
			}

			n.Children = append(n.Children, child)
		default:
			val, valErr := genericValue(v)
			if valErr != nil {
				return nil, valErr
			}

			n.Attrs[k] = val
		}

		if err != nil {
			return nil, err
		}
	}

	return n, nil
}

func genericKindedObject(m map[string]any) (*Node, error) {
	kind, ok := m["kind"].(string)
	if !ok {
		return nil, fmt.Errorf("object in \"objects\" list is missing a string \"kind\"")
	}

	return genericObject(kind, m)
}

func appendList(n *Node, raw any, convert func(map[string]any) (*Node, error)) error {
	items, ok := raw.([]any)
	if !ok {
		return fmt.Errorf("expected a list, got %T", raw)
	}

	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return fmt.Errorf("list entries must be mappings, got %T", item)
		}

		child, err := convert(m)
		if err != nil {
			return err
		}

		n.Children = append(n.Children, child)
	}

	return nil
}

func genericValue(v any) (Value, error) {
	switch t := v.(type) {
	case string:
		return String(t, source.Span{}), nil
	case bool:
		return Bool(t, source.Span{}), nil
	case int:
		return Int(int64(t), source.Span{}), nil
	case int64:
		return Int(t, source.Span{}), nil
	case float64:
		return Int(int64(t), source.Span{}), nil
	case json.Number:
		i, err := t.Int64()
		if err != nil {
			return Value{}, fmt.Errorf("expected an integer, got %q", t)
		}

		return Int(i, source.Span{}), nil
	case []any:
		items := make([]Value, 0, len(t))

		for _, e := range t {
			val, err := genericValue(e)
			if err != nil {
				return Value{}, err
			}

			items = append(items, val)
		}

		return List(items, source.Span{}), nil
	default:
		return Value{}, fmt.Errorf("unsupported attribute value type %T", v)
	}
}
