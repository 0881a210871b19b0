// Package tree implements the schema-less node/value abstraction that the
// JSON, YAML, TOML, KDL and DSL front-ends all converge on before a single
// shared Builder turns it into MIR (spec §4.1, §6 "document tree"). Funneling
// every format through one tree shape is what makes format equivalence
// (spec §8 property 1) hold by construction rather than by coincidence.
package tree

import (
	"strconv"

	"github.com/chipforge/drivergen/pkg/source"
)

// ValueKind tags the scalar/compound shapes a manifest attribute can take.
type ValueKind int

// Value kinds.
const (
	KindString ValueKind = iota
	KindInt
	KindBool
	KindList
)

// Value is one attribute value attached to a Node, carrying its source span
// for diagnostics.
type Value struct {
	Kind ValueKind
	Str  string
	Int  int64
	Bool bool
	List []Value
	Span source.Span
}

// String constructs a string Value.
func String(s string, span source.Span) Value {
	return Value{Kind: KindString, Str: s, Span: span}
}

// Int constructs an integer Value.
func Int(i int64, span source.Span) Value {
	return Value{Kind: KindInt, Int: i, Span: span}
}

// Bool constructs a boolean Value.
func Bool(b bool, span source.Span) Value {
	return Value{Kind: KindBool, Bool: b, Span: span}
}

// List constructs a list Value.
func List(items []Value, span source.Span) Value {
	return Value{Kind: KindList, List: items, Span: span}
}

// AsString returns the value as a string, coercing scalars; ok is false for
// a list.
func (v Value) AsString() (string, bool) {
	switch v.Kind {
	case KindString:
		return v.Str, true
	case KindBool:
		if v.Bool {
			return "true", true
		}

		return "false", true
	case KindInt:
		return strconv.FormatInt(v.Int, 10), true
	default:
		return "", false
	}
}

// AsInt returns the value as an int64; ok is false for non-numeric kinds.
func (v Value) AsInt() (int64, bool) {
	if v.Kind != KindInt {
		return 0, false
	}

	return v.Int, true
}

// AsBool returns the value as a bool; ok is false for non-boolean kinds.
func (v Value) AsBool() (bool, bool) {
	if v.Kind != KindBool {
		return false, false
	}

	return v.Bool, true
}

// AsList returns the value's elements; a scalar is treated as a
// single-element list so callers can accept either shape uniformly (e.g. a
// Cfg expressed as one string or a list of strings).
func (v Value) AsList() ([]Value, bool) {
	if v.Kind == KindList {
		return v.List, true
	}

	return []Value{v}, true
}
