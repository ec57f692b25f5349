package place

import (
	"math/big"
	"testing"

	"github.com/circuitlang/circuitc/internal/bignum"
	"github.com/circuitlang/circuitc/internal/cerrors"
	"github.com/circuitlang/circuitc/internal/srcloc"
	"github.com/circuitlang/circuitc/internal/value"
)

func u8(n int64) value.Value {
	i, err := bignum.FromSemantic(big.NewInt(n), bignum.Unsigned(8))
	if err != nil {
		panic(err)
	}
	return value.Integer(i)
}

func TestFieldAndIndexProjection(t *testing.T) {
	point := value.Struct("Point", []value.FieldEntry{{Name: "x", Value: u8(1)}, {Name: "y", Value: u8(2)}})
	root := New("p", point, true)
	y, err := root.Field(srcloc.Location{}, "y")
	if err != nil {
		t.Fatalf("Field: %v", err)
	}
	if got, want := y.Path(), "p.y"; got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
	if !value.Equal(y.Current, u8(2)) {
		t.Errorf("Current = %s, want 2", y.Current)
	}
}

func TestFieldUnknownName(t *testing.T) {
	point := value.Struct("Point", []value.FieldEntry{{Name: "x", Value: u8(1)}})
	root := New("p", point, true)
	if _, err := root.Field(srcloc.Location{}, "z"); err == nil || err.Kind != cerrors.KindItemUndeclared {
		t.Fatalf("want ItemUndeclared, got %v", err)
	}
}

func TestIndexOutOfBounds(t *testing.T) {
	arr, _ := value.Array(u8(0).Type, []value.Value{u8(1), u8(2)})
	root := New("a", arr, true)
	if _, err := root.Index(srcloc.Location{}, 5); err == nil || err.Kind != cerrors.KindIndexOperandTypes {
		t.Fatalf("want IndexOperandTypes, got %v", err)
	}
}

func TestAssignRejectsImmutable(t *testing.T) {
	root := New("x", u8(1), false)
	if _, err := Assign(u8(1), root, u8(2)); err == nil || err.Kind != cerrors.KindAssignmentToImmutable {
		t.Fatalf("want AssignmentToImmutable, got %v", err)
	}
}

func TestAssignThroughArrayIndex(t *testing.T) {
	arr, _ := value.Array(u8(0).Type, []value.Value{u8(1), u8(2), u8(3)})
	root := New("a", arr, true)
	elem, err := root.Index(srcloc.Location{}, 1)
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	updated, err := Assign(arr, elem, u8(9))
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if !value.Equal(updated.Array[1], u8(9)) {
		t.Errorf("updated.Array[1] = %s, want 9", updated.Array[1])
	}
	if !value.Equal(updated.Array[0], u8(1)) {
		t.Errorf("assignment should not disturb sibling element 0")
	}
}

func TestAssignThroughStructField(t *testing.T) {
	point := value.Struct("Point", []value.FieldEntry{{Name: "x", Value: u8(1)}, {Name: "y", Value: u8(2)}})
	root := New("p", point, true)
	field, err := root.Field(srcloc.Location{}, "x")
	if err != nil {
		t.Fatalf("Field: %v", err)
	}
	updated, err := Assign(point, field, u8(7))
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if !value.Equal(updated.Struct[0].Value, u8(7)) {
		t.Errorf("updated x = %s, want 7", updated.Struct[0].Value)
	}
}
