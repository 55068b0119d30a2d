// Package phptype models PHP's type system (C2) and the name/value
// heuristics the transformer uses to guess a static type for a
// dynamically-typed JS binding.
package phptype

import "strings"

// Primitive is one of PHP's built-in scalar/compound type names.
type Primitive string

const (
	Int      Primitive = "int"
	Float    Primitive = "float"
	String   Primitive = "string"
	Bool     Primitive = "bool"
	Array    Primitive = "array"
	Object   Primitive = "object"
	Mixed    Primitive = "mixed"
	Void     Primitive = "void"
	Null     Primitive = "null"
	Callable Primitive = "callable"
	Iterable Primitive = "iterable"
	Never    Primitive = "never"
)

// Kind tags which shape a Type carries.
type Kind int

const (
	KindPrimitive Kind = iota
	KindNullable
	KindTypedArray
	KindClass
	KindUnion
)

// Type is a closed sum over everything PHP 8.1+ can express in a type
// slot. Construct instances with the New* helpers below; do not build
// Type literals directly outside this package.
type Type struct {
	kind      Kind
	primitive Primitive
	class     string
	inner     *Type   // Nullable / TypedArray element type
	union     []*Type // Union members
}

// NewPrimitive wraps a primitive type name.
func NewPrimitive(p Primitive) *Type { return &Type{kind: KindPrimitive, primitive: p} }

// NewClass wraps a user-defined class/interface name.
func NewClass(name string) *Type { return &Type{kind: KindClass, class: name} }

// NewNullable wraps another type as `?T`. Nullable-of-nullable collapses.
func NewNullable(t *Type) *Type {
	if t.kind == KindNullable {
		return t
	}
	if t.kind == KindPrimitive && t.primitive == Null {
		return t
	}
	return &Type{kind: KindNullable, inner: t}
}

// NewTypedArray wraps an element type; it always renders as bare `array`
// (the element type is carried only for doc-block purposes, spec §3.1).
func NewTypedArray(elem *Type) *Type { return &Type{kind: KindTypedArray, inner: elem} }

// NewUnion builds `A|B|...`.
func NewUnion(members ...*Type) *Type { return &Type{kind: KindUnion, union: members} }

// Kind reports the tag of this type.
func (t *Type) Kind() Kind { return t.kind }

// IsNullable reports whether the type is (or resolves through) `?T`.
func (t *Type) IsNullable() bool { return t.kind == KindNullable }

// Inner returns the wrapped type for Nullable/TypedArray, else nil.
func (t *Type) Inner() *Type { return t.inner }

// Equal compares two types by rendered form; sufficient for the
// first-assignment-wins tracking in the transformer.
func (t *Type) Equal(o *Type) bool {
	if t == nil || o == nil {
		return t == o
	}
	return t.String() == o.String()
}

// String renders the type the way it appears in a PHP signature slot.
func (t *Type) String() string {
	if t == nil {
		return string(Mixed)
	}
	switch t.kind {
	case KindPrimitive:
		return string(t.primitive)
	case KindClass:
		return t.class
	case KindNullable:
		return "?" + t.inner.String()
	case KindTypedArray:
		return string(Array)
	case KindUnion:
		parts := make([]string, len(t.union))
		for i, m := range t.union {
			parts[i] = m.String()
		}
		return strings.Join(parts, "|")
	default:
		return string(Mixed)
	}
}

// DocString renders the richer doc-block form (`Type[]` for typed
// arrays), which is not valid in a signature slot; nothing in this module
// calls it.
func (t *Type) DocString() string {
	if t == nil {
		return string(Mixed)
	}
	if t.kind == KindTypedArray {
		return t.inner.DocString() + "[]"
	}
	return t.String()
}
