// Package types implements Luka's value-type representation: equality,
// duplication, size, signedness, and pretty-printing. See ast.Number,
// ast.Variable, and the other type-bearing nodes in package ast for how
// a Type attaches to the tree.
package types

import "fmt"

// Base is the closed set of type kinds in Luka.
type Base int

const (
	Any Base = iota
	Bool
	S8
	S16
	S32
	S64
	U8
	U16
	U32
	U64
	F32
	F64
	String
	Void
	Ptr
	Struct
	Enum
	Array
	Alias
)

func (b Base) String() string {
	switch b {
	case Any:
		return "any"
	case Bool:
		return "bool"
	case S8:
		return "s8"
	case S16:
		return "s16"
	case S32:
		return "s32"
	case S64:
		return "s64"
	case U8:
		return "u8"
	case U16:
		return "u16"
	case U32:
		return "u32"
	case U64:
		return "u64"
	case F32:
		return "f32"
	case F64:
		return "f64"
	case String:
		return "string"
	case Void:
		return "void"
	case Ptr:
		return "ptr"
	case Struct:
		return "struct"
	case Enum:
		return "enum"
	case Array:
		return "array"
	case Alias:
		return "alias"
	default:
		return "?"
	}
}

// PointerWidthBits is the size in bits of a pointer, string, or array
// value on the target the front end assumes (matching the reference
// implementation's LP64 assumption).
const PointerWidthBits = 64

// Type is a value type: a base kind, an optional owning inner type (for
// ptr/array/alias chains), an optional nominal payload name (for
// struct/enum/alias), and a mutability bit.
//
// Types are owned by the node that introduces them; propagating a type
// to another node always duplicates it — see Duplicate. There is no
// sharing/aliasing of *Type values across the tree.
type Type struct {
	Base    Base
	Inner   *Type
	Payload string
	Mutable bool
}

// New constructs a primitive (payload-less, inner-less) type.
func New(base Base) *Type {
	return &Type{Base: base}
}

// NewPtr constructs a pointer-to-inner type. inner is owned by the
// returned type (not duplicated); callers that reuse inner elsewhere
// must duplicate it first.
func NewPtr(inner *Type) *Type {
	return &Type{Base: Ptr, Inner: inner}
}

// NewArray constructs a pointer-to-many ("array"/slice) type over inner.
func NewArray(inner *Type) *Type {
	return &Type{Base: Array, Inner: inner}
}

// NewNamed constructs a struct or enum type identified by name.
func NewNamed(base Base, name string) *Type {
	if base != Struct && base != Enum {
		panic("types: NewNamed requires Struct or Enum base")
	}
	return &Type{Base: base, Payload: name}
}

// NewAlias constructs an unresolved alias reference; ast.ResolveType
// replaces these in place once the alias table is consulted.
func NewAlias(name string) *Type {
	return &Type{Base: Alias, Payload: name}
}

// WithMutable returns t with Mutable set, for fluent construction.
func (t *Type) WithMutable(mutable bool) *Type {
	t.Mutable = mutable
	return t
}

// Duplicate deep-copies t, including any owned inner-type chain and
// payload string. No result shares a pointer with t.
func (t *Type) Duplicate() *Type {
	if t == nil {
		return nil
	}
	return &Type{
		Base:    t.Base,
		Inner:   t.Inner.Duplicate(),
		Payload: t.Payload,
		Mutable: t.Mutable,
	}
}

// Equal reports structural equality: equal bases, recursively equal
// inner chains, equal nominal payload on payload-bearing kinds, and
// equal mutability — except that Any compares equal to every type at
// its level, propagating the wildcard up through the recursion.
func Equal(a, b *Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Base == Any || b.Base == Any {
		return true
	}
	if a.Base != b.Base {
		return false
	}
	if a.Mutable != b.Mutable {
		return false
	}
	switch a.Base {
	case Struct, Enum, Alias:
		if a.Payload != b.Payload {
			return false
		}
	}
	if a.Base == Ptr || a.Base == Array {
		return Equal(a.Inner, b.Inner)
	}
	return true
}

// SizeBits returns the size, in bits, of a value of type t at this
// layer of the pipeline. struct/void/any are opaque here (0): their
// real size is a code-generation concern that depends on field layout.
func (t *Type) SizeBits() int {
	switch t.Base {
	case Bool:
		return 1
	case S8, U8:
		return 8
	case S16, U16:
		return 16
	case S32, U32, F32:
		return 32
	case S64, U64, F64:
		return 64
	case Ptr, Array, String:
		return PointerWidthBits
	case Any, Void, Struct:
		return 0
	case Enum:
		return 32 // enum constants are 32-bit integers, per spec §8 scenario 4
	case Alias:
		if t.Inner != nil {
			return t.Inner.SizeBits()
		}
		return 0
	default:
		return 0
	}
}

// Signed reports whether t is one of the signed integer kinds.
func (t *Type) Signed() bool {
	switch t.Base {
	case S8, S16, S32, S64:
		return true
	default:
		return false
	}
}

// IsInteger reports whether t is any sized integer kind (signed or
// unsigned), excluding bool.
func (t *Type) IsInteger() bool {
	switch t.Base {
	case S8, S16, S32, S64, U8, U16, U32, U64:
		return true
	default:
		return false
	}
}

// IsFloat reports whether t is f32 or f64.
func (t *Type) IsFloat() bool {
	return t.Base == F32 || t.Base == F64
}

// IsNumeric reports whether t participates in arithmetic.
func (t *Type) IsNumeric() bool {
	return t.IsInteger() || t.IsFloat()
}

// String pretty-prints t the way the reference front end's
// pretty-printer does: "mut s32", "u8*", "u8[]", "struct Foo",
// "enum Bar", "alias Name".
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	prefix := ""
	if t.Mutable {
		prefix = "mut "
	}
	switch t.Base {
	case Ptr:
		return fmt.Sprintf("%s%s*", prefix, t.Inner.String())
	case Array:
		return fmt.Sprintf("%s%s[]", prefix, t.Inner.String())
	case Struct:
		return fmt.Sprintf("%sstruct %s", prefix, t.Payload)
	case Enum:
		return fmt.Sprintf("%senum %s", prefix, t.Payload)
	case Alias:
		return fmt.Sprintf("%salias %s", prefix, t.Payload)
	default:
		return prefix + t.Base.String()
	}
}
