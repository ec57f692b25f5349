package element

import (
	"math/big"
	"testing"

	"github.com/circuitlang/circuitc/internal/bignum"
	"github.com/circuitlang/circuitc/internal/cerrors"
	"github.com/circuitlang/circuitc/internal/constraintsystem"
	"github.com/circuitlang/circuitc/internal/place"
	"github.com/circuitlang/circuitc/internal/srcloc"
	"github.com/circuitlang/circuitc/internal/types"
	"github.com/circuitlang/circuitc/internal/value"
)

func u8(n int64) Element {
	i, err := bignum.FromSemantic(big.NewInt(n), bignum.Unsigned(8))
	if err != nil {
		panic(err)
	}
	return FromValue(srcloc.Location{}, value.Integer(i))
}

func TestAddOverflow(t *testing.T) {
	sys := constraintsystem.NewTestSystem()
	if _, err := Add(sys, srcloc.Location{}, u8(200), u8(100)); err == nil || err.Kind != cerrors.KindOverflow {
		t.Fatalf("want Overflow, got %v", err)
	}
}

func TestAddNonInteger(t *testing.T) {
	sys := constraintsystem.NewTestSystem()
	b := FromValue(srcloc.Location{}, value.Bool(true))
	if _, err := Add(sys, srcloc.Location{}, u8(1), b); err == nil || err.Kind != cerrors.KindExpectedInteger {
		t.Fatalf("want ExpectedInteger, got %v", err)
	}
}

func TestDivByZero(t *testing.T) {
	sys := constraintsystem.NewTestSystem()
	if _, err := Div(sys, srcloc.Location{}, u8(5), u8(0)); err == nil || err.Kind != cerrors.KindZeroDivision {
		t.Fatalf("want ZeroDivision, got %v", err)
	}
}

func TestDivisionProducesExactlyOneGadgetChainedIntoEquality(t *testing.T) {
	sys := constraintsystem.NewTestSystem()
	z, err := Div(sys, srcloc.Location{}, u8(40), u8(8))
	if err != nil {
		t.Fatalf("Div: %v", err)
	}
	if _, err := Equal(sys, srcloc.Location{}, z, u8(5), nil); err != nil {
		t.Fatalf("Equal: %v", err)
	}
	var ops []string
	for _, c := range sys.Constraints {
		ops = append(ops, c.Op)
	}
	if len(ops) < 2 || ops[len(ops)-2] != "div" || ops[len(ops)-1] != "eq" {
		t.Fatalf("want constraint sequence ending div,eq, got %v", ops)
	}
}

func TestEqualRequiresSameType(t *testing.T) {
	sys := constraintsystem.NewTestSystem()
	b := FromValue(srcloc.Location{}, value.Bool(true))
	if _, err := Equal(sys, srcloc.Location{}, u8(1), b, nil); err == nil || err.Kind != cerrors.KindTypesMismatch {
		t.Fatalf("want TypesMismatch, got %v", err)
	}
}

func TestIndexIntoArrayValue(t *testing.T) {
	one, _ := bignum.FromSemantic(big.NewInt(1), bignum.Unsigned(8))
	two, _ := bignum.FromSemantic(big.NewInt(2), bignum.Unsigned(8))
	arrVal, err := value.Array(types.Int(bignum.Unsigned(8)), []value.Value{value.Integer(one), value.Integer(two)})
	if err != nil {
		t.Fatalf("value.Array: %v", err)
	}
	elem, err2 := Index(srcloc.Location{}, FromValue(srcloc.Location{}, arrVal), u8(1))
	if err2 != nil {
		t.Fatalf("Index: %v", err2)
	}
	v, _ := elem.AsValue()
	if v.Int.Semantic().Int64() != 2 {
		t.Errorf("Index(arr, 1) = %s, want 2", v.Int.Semantic())
	}
}

func TestIndexOutOfBounds(t *testing.T) {
	one, _ := bignum.FromSemantic(big.NewInt(1), bignum.Unsigned(8))
	arrVal, _ := value.Array(types.Int(bignum.Unsigned(8)), []value.Value{value.Integer(one)})
	if _, err := Index(srcloc.Location{}, FromValue(srcloc.Location{}, arrVal), u8(9)); err == nil || err.Kind != cerrors.KindIndexOperandTypes {
		t.Fatalf("want IndexOperandTypes, got %v", err)
	}
}

func TestDotOnStructValue(t *testing.T) {
	point := value.Struct("Point", []value.FieldEntry{{Name: "x", Value: value.Bool(true)}})
	elem, err := Dot(srcloc.Location{}, FromValue(srcloc.Location{}, point), "x")
	if err != nil {
		t.Fatalf("Dot: %v", err)
	}
	v, _ := elem.AsValue()
	if !v.Bool {
		t.Errorf("Dot(point, x) = %v, want true", v.Bool)
	}
}

func TestDotThroughPlaceStaysAssignable(t *testing.T) {
	point := value.Struct("Point", []value.FieldEntry{{Name: "x", Value: value.Bool(true)}})
	root := place.New("p", point, true)
	elem, err := Dot(srcloc.Location{}, FromPlace(srcloc.Location{}, root), "x")
	if err != nil {
		t.Fatalf("Dot: %v", err)
	}
	if elem.Kind != KindPlace {
		t.Errorf("Dot through a place should produce a place, got Kind=%v", elem.Kind)
	}
}

func TestPathConcatenatesSegments(t *testing.T) {
	a := FromPath(srcloc.Location{}, []string{"E"})
	b := FromPath(srcloc.Location{}, []string{"A"})
	joined, err := Path(srcloc.Location{}, a, b)
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	if got, want := joined.PathString(), "E::A"; got != want {
		t.Errorf("PathString() = %q, want %q", got, want)
	}
}

func TestRangeRequiresSameKind(t *testing.T) {
	wide, _ := bignum.FromSemantic(big.NewInt(1), bignum.Unsigned(16))
	other := FromValue(srcloc.Location{}, value.Integer(wide))
	if _, err := RangeExclusive(srcloc.Location{}, u8(0), other); err == nil || err.Kind != cerrors.KindRangeOperand {
		t.Fatalf("want RangeOperand, got %v", err)
	}
}

func TestCastToNonIntegerFails(t *testing.T) {
	toBool := FromType(srcloc.Location{}, types.Bool())
	if _, err := Cast(srcloc.Location{}, u8(1), toBool); err == nil || err.Kind != cerrors.KindCastingToInvalidType {
		t.Fatalf("want CastingToInvalidType, got %v", err)
	}
}

func TestAssignRequiresPlaceOnLeft(t *testing.T) {
	if _, _, err := Assign(srcloc.Location{}, u8(1), u8(2)); err == nil || err.Kind != cerrors.KindAssignmentFirstOperandExpectedPlace {
		t.Fatalf("want AssignmentFirstOperandExpectedPlace, got %v", err)
	}
}
