package value

import (
	"math/big"
	"testing"

	"github.com/circuitlang/circuitc/internal/bignum"
	"github.com/circuitlang/circuitc/internal/types"
)

func u8(n int64) Value {
	i, err := bignum.FromSemantic(big.NewInt(n), bignum.Unsigned(8))
	if err != nil {
		panic(err)
	}
	return Integer(i)
}

func TestArrayRejectsMixedElementTypes(t *testing.T) {
	_, err := Array(types.Int(bignum.Unsigned(8)), []Value{u8(1), Bool(true)})
	if err == nil {
		t.Fatal("expected error for mismatched element type")
	}
}

func TestEnumConstructsDiscriminant(t *testing.T) {
	suit := types.Enum("Suit", []types.EnumVariant{{Name: "Clubs", Value: 0}, {Name: "Spades", Value: 3}})
	v, err := Enum(suit, "Spades")
	if err != nil {
		t.Fatalf("Enum: %v", err)
	}
	if v.EnumVariant != "Spades" {
		t.Errorf("EnumVariant = %q, want Spades", v.EnumVariant)
	}
	if v.Int.Semantic().Int64() != 3 {
		t.Errorf("discriminant = %s, want 3", v.Int.Semantic())
	}
}

func TestEnumUnknownVariant(t *testing.T) {
	suit := types.Enum("Suit", []types.EnumVariant{{Name: "Clubs", Value: 0}})
	if _, err := Enum(suit, "Hearts"); err == nil {
		t.Fatal("expected error for unknown variant")
	}
}

func TestEqualArray(t *testing.T) {
	a, _ := Array(types.Int(bignum.Unsigned(8)), []Value{u8(1), u8(2)})
	b, _ := Array(types.Int(bignum.Unsigned(8)), []Value{u8(1), u8(2)})
	c, _ := Array(types.Int(bignum.Unsigned(8)), []Value{u8(1), u8(3)})
	if !Equal(a, b) {
		t.Errorf("expected equal arrays to compare equal")
	}
	if Equal(a, c) {
		t.Errorf("expected differing arrays to compare unequal")
	}
}

func TestEqualEnum(t *testing.T) {
	suit := types.Enum("Suit", []types.EnumVariant{{Name: "Clubs", Value: 0}, {Name: "Spades", Value: 3}})
	a, _ := Enum(suit, "Spades")
	b, _ := Enum(suit, "Spades")
	c, _ := Enum(suit, "Clubs")
	if !Equal(a, b) {
		t.Errorf("same enum variant should compare equal")
	}
	if Equal(a, c) {
		t.Errorf("different enum variants should compare unequal")
	}
}

func TestStringEnum(t *testing.T) {
	suit := types.Enum("Suit", []types.EnumVariant{{Name: "Spades", Value: 3}})
	v, _ := Enum(suit, "Spades")
	if got, want := v.String(), "Suit::Spades"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestFlatRoundTripScalarAndArray(t *testing.T) {
	arrType := types.Array(types.Int(bignum.Unsigned(8)), 3)
	arr, _ := Array(types.Int(bignum.Unsigned(8)), []Value{u8(1), u8(2), u8(3)})
	flat := arr.ToFlat()
	if len(flat) != 3 {
		t.Fatalf("ToFlat() len = %d, want 3", len(flat))
	}
	back, err := FromFlat(arrType, flat)
	if err != nil {
		t.Fatalf("FromFlat: %v", err)
	}
	if !Equal(arr, back) {
		t.Errorf("round trip mismatch: %s != %s", arr, back)
	}
}

func TestFlatRoundTripEnum(t *testing.T) {
	suit := types.Enum("Suit", []types.EnumVariant{{Name: "Clubs", Value: 0}, {Name: "Spades", Value: 3}})
	v, _ := Enum(suit, "Spades")
	flat := v.ToFlat()
	back, err := FromFlat(suit, flat)
	if err != nil {
		t.Fatalf("FromFlat: %v", err)
	}
	if !Equal(v, back) {
		t.Errorf("round trip mismatch: %s != %s", v, back)
	}
}

func TestJSONRoundTripStruct(t *testing.T) {
	point := Struct("Point", []FieldEntry{{Name: "x", Value: u8(1)}, {Name: "y", Value: u8(2)}})
	doc, err := point.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	back, err := FromJSON(point.Type, doc)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if !Equal(point, back) {
		t.Errorf("round trip mismatch: %s != %s", point, back)
	}
}

func TestJSONRoundTripEnum(t *testing.T) {
	suit := types.Enum("Suit", []types.EnumVariant{{Name: "Spades", Value: 3}})
	v, _ := Enum(suit, "Spades")
	doc, err := v.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	if doc != "Spades" {
		t.Errorf("ToJSON() = %v, want %q", doc, "Spades")
	}
	back, err := FromJSON(suit, doc)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if !Equal(v, back) {
		t.Errorf("round trip mismatch: %s != %s", v, back)
	}
}

func TestJSONUnitRoundTripsThroughNull(t *testing.T) {
	doc, err := Unit().ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	if doc != nil {
		t.Errorf("ToJSON(unit) = %v, want nil", doc)
	}
	back, err := FromJSON(types.Unit(), nil)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if !Equal(Unit(), back) {
		t.Errorf("round trip mismatch")
	}
}
