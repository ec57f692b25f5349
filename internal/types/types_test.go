package types

import (
	"testing"

	"github.com/circuitlang/circuitc/internal/bignum"
)

func noAliases(string) (Variant, bool) { return Variant{}, false }

func TestEqualStructuralArrayAndTuple(t *testing.T) {
	a := Array(Int(bignum.Unsigned(8)), 3)
	b := Array(Int(bignum.Unsigned(8)), 3)
	if !Equal(a, b, noAliases) {
		t.Errorf("structurally identical arrays should be equal")
	}
	c := Array(Int(bignum.Unsigned(16)), 3)
	if Equal(a, c, noAliases) {
		t.Errorf("arrays of differing element type should not be equal")
	}
	t1 := Tuple(Bool(), Int(bignum.Unsigned(8)))
	t2 := Tuple(Bool(), Int(bignum.Unsigned(8)))
	if !Equal(t1, t2, noAliases) {
		t.Errorf("structurally identical tuples should be equal")
	}
}

func TestEqualNominalStructAndEnum(t *testing.T) {
	s1 := Struct("Point", []Field{{Name: "x", Type: Int(bignum.Unsigned(8))}})
	s2 := Struct("Point", []Field{{Name: "x", Type: Int(bignum.Unsigned(16))}})
	if !Equal(s1, s2, noAliases) {
		t.Errorf("structs with the same name should be nominally equal regardless of field types")
	}
	s3 := Struct("Other", s1.Struct.Fields)
	if Equal(s1, s3, noAliases) {
		t.Errorf("structs with different names should not be equal")
	}

	e1 := Enum("Color", []EnumVariant{{Name: "Red", Value: 0}})
	e2 := Enum("Color", []EnumVariant{{Name: "Red", Value: 1}})
	if !Equal(e1, e2, noAliases) {
		t.Errorf("enums with the same name should be nominally equal")
	}
}

func TestResolveAlias(t *testing.T) {
	target := Int(bignum.Unsigned(32))
	resolve := func(name string) (Variant, bool) {
		if name == "Age" {
			return target, true
		}
		return Variant{}, false
	}
	resolved := Resolve(Alias("Age"), resolve)
	if resolved.Tag != TagInt || resolved.Int.BitLength != 32 {
		t.Errorf("Resolve(Alias) = %v, want %v", resolved, target)
	}
}

func TestSize(t *testing.T) {
	cases := []struct {
		v    Variant
		want int
	}{
		{Unit(), 0},
		{Bool(), 1},
		{Int(bignum.Unsigned(8)), 1},
		{Array(Int(bignum.Unsigned(8)), 4), 4},
		{Tuple(Bool(), Bool(), Int(bignum.Unsigned(8))), 3},
		{Enum("E", []EnumVariant{{Name: "A", Value: 0}}), 1},
		{Map(Int(bignum.Unsigned(8)), Bool()), 0},
	}
	for _, c := range cases {
		if got := Size(c.v); got != c.want {
			t.Errorf("Size(%s) = %d, want %d", c.v, got, c.want)
		}
	}
}

func TestEnumVariantValue(t *testing.T) {
	e := Enum("Suit", []EnumVariant{{Name: "Clubs", Value: 0}, {Name: "Spades", Value: 3}})
	v, ok := EnumVariantValue(e.Enum, "Spades")
	if !ok || v != 3 {
		t.Errorf("EnumVariantValue(Spades) = %d, %v, want 3, true", v, ok)
	}
	if _, ok := EnumVariantValue(e.Enum, "Hearts"); ok {
		t.Errorf("EnumVariantValue(Hearts) should report not found")
	}
}

func TestMinimalEnumBitLength(t *testing.T) {
	small := Enum("Small", []EnumVariant{{Name: "A", Value: 0}, {Name: "B", Value: 200}})
	if small.Enum.BitLength != 8 {
		t.Errorf("bit length = %d, want 8", small.Enum.BitLength)
	}
	big := Enum("Big", []EnumVariant{{Name: "A", Value: 70000}})
	if big.Enum.BitLength != 24 {
		t.Errorf("bit length = %d, want 24", big.Enum.BitLength)
	}
}

func TestString(t *testing.T) {
	arr := Array(Int(bignum.Unsigned(8)), 3)
	if got, want := arr.String(), "[u8; 3]"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
