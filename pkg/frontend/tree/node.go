package tree

import "github.com/chipforge/drivergen/pkg/source"

// Node is one object-kind declaration in the schema-less tree: a keyword
// (the MIR variant it names — "device", "block", "register", "command",
// "buffer", "field_set", "field", "enum", "variant", "extern", "ref"), an
// optional name, a bag of attributes, and nested child nodes.
//
// KDL maps onto this directly (node name → Keyword, first positional entry
// → Name, key=value properties → Attrs, children → Children; a second
// positional entry is a parse error). JSON,
// YAML and TOML front-ends build it from their decoded maps; the DSL
// front-end builds it from its own recursive-descent parse. One Builder
// (build.go) then turns any Node tree into MIR, which is what makes the
// four formats provably equivalent.
type Node struct {
	Keyword  string
	Name     string
	NameSpan source.Span
	Span     source.Span
	Attrs    map[string]Value
	Children []*Node
}

// Attr looks up an attribute by key.
func (n *Node) Attr(key string) (Value, bool) {
	v, ok := n.Attrs[key]

	return v, ok
}

// ChildrenOf returns every direct child with the given keyword, preserving
// document order.
func (n *Node) ChildrenOf(keyword string) []*Node {
	var out []*Node

	for _, c := range n.Children {
		if c.Keyword == keyword {
			out = append(out, c)
		}
	}

	return out
}
