package types_test

import (
	"testing"

	"github.com/luka-lang/lukac/internal/types"
)

func TestEqualReflexive(t *testing.T) {
	cases := []*types.Type{
		types.New(types.S32),
		types.NewPtr(types.New(types.U8)),
		types.NewArray(types.New(types.F64)),
		types.NewNamed(types.Struct, "Point"),
		types.NewNamed(types.Enum, "Color"),
	}
	for _, tt := range cases {
		if !types.Equal(tt, tt) {
			t.Fatalf("expected %s to equal itself", tt)
		}
	}
}

func TestEqualAnyWildcard(t *testing.T) {
	any := types.New(types.Any)
	s32 := types.New(types.S32)
	ptr := types.NewPtr(types.New(types.Struct))

	if !types.Equal(any, s32) {
		t.Fatalf("expected any to equal s32")
	}
	if !types.Equal(s32, any) {
		t.Fatalf("expected s32 to equal any (symmetric)")
	}
	if !types.Equal(any, ptr) {
		t.Fatalf("expected any to equal a pointer type")
	}
}

func TestEqualStructRequiresSamePayload(t *testing.T) {
	a := types.NewNamed(types.Struct, "Point")
	b := types.NewNamed(types.Struct, "Vector")
	if types.Equal(a, b) {
		t.Fatalf("expected differently named structs to be unequal")
	}
	c := types.NewNamed(types.Struct, "Point")
	if !types.Equal(a, c) {
		t.Fatalf("expected same-named structs to be equal")
	}
}

func TestEqualMutabilityMatters(t *testing.T) {
	mut := types.New(types.S32).WithMutable(true)
	immut := types.New(types.S32).WithMutable(false)
	if types.Equal(mut, immut) {
		t.Fatalf("expected mutable and immutable s32 to be unequal")
	}
}

func TestEqualPointerRecursesIntoInner(t *testing.T) {
	a := types.NewPtr(types.New(types.S32))
	b := types.NewPtr(types.New(types.U8))
	if types.Equal(a, b) {
		t.Fatalf("expected ptr s32 and ptr u8 to be unequal")
	}
}

func TestDuplicateIsolatesMutation(t *testing.T) {
	original := types.NewPtr(types.NewNamed(types.Struct, "Point"))
	dup := original.Duplicate()

	dup.Inner.Payload = "Mutated"
	dup.Mutable = true

	if original.Inner.Payload != "Point" {
		t.Fatalf("mutating duplicate leaked into original payload: %q", original.Inner.Payload)
	}
	if original.Mutable {
		t.Fatalf("mutating duplicate leaked into original mutability")
	}
	if dup.Inner == original.Inner {
		t.Fatalf("expected duplicate to own a distinct inner pointer")
	}
}

func TestSizeBits(t *testing.T) {
	cases := []struct {
		t    *types.Type
		bits int
	}{
		{types.New(types.Bool), 1},
		{types.New(types.S8), 8},
		{types.New(types.U16), 16},
		{types.New(types.S32), 32},
		{types.New(types.F32), 32},
		{types.New(types.S64), 64},
		{types.New(types.F64), 64},
		{types.NewPtr(types.New(types.U8)), types.PointerWidthBits},
		{types.New(types.Any), 0},
		{types.New(types.Void), 0},
		{types.NewNamed(types.Enum, "Color"), 32},
	}
	for _, c := range cases {
		if got := c.t.SizeBits(); got != c.bits {
			t.Fatalf("%s: expected %d bits, got %d", c.t, c.bits, got)
		}
	}
}

func TestStringPrettyPrint(t *testing.T) {
	cases := []struct {
		t    *types.Type
		want string
	}{
		{types.New(types.S32).WithMutable(true), "mut s32"},
		{types.NewPtr(types.New(types.U8)), "u8*"},
		{types.NewArray(types.New(types.U8)), "u8[]"},
		{types.NewNamed(types.Struct, "Foo"), "struct Foo"},
		{types.NewNamed(types.Enum, "Bar"), "enum Bar"},
	}
	for _, c := range cases {
		if got := c.t.String(); got != c.want {
			t.Fatalf("expected %q, got %q", c.want, got)
		}
	}
}

func TestSignedAndNumericClassification(t *testing.T) {
	if !types.New(types.S32).Signed() {
		t.Fatalf("expected s32 to be signed")
	}
	if types.New(types.U32).Signed() {
		t.Fatalf("expected u32 to not be signed")
	}
	if !types.New(types.U8).IsInteger() {
		t.Fatalf("expected u8 to be an integer kind")
	}
	if !types.New(types.F32).IsFloat() {
		t.Fatalf("expected f32 to be a float kind")
	}
	if !types.New(types.F64).IsNumeric() {
		t.Fatalf("expected f64 to be numeric")
	}
	if types.New(types.Bool).IsNumeric() {
		t.Fatalf("expected bool to not be numeric")
	}
}
