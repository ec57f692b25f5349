package constraintsystem

import (
	"math/big"
	"testing"

	"github.com/circuitlang/circuitc/internal/bignum"
	"github.com/circuitlang/circuitc/internal/cerrors"
	"github.com/circuitlang/circuitc/internal/value"
)

func u8(t *testing.T, n int64) value.Value {
	t.Helper()
	i, err := bignum.FromSemantic(big.NewInt(n), bignum.Unsigned(8))
	if err != nil {
		t.Fatalf("FromSemantic: %v", err)
	}
	return value.Integer(i)
}

func TestTestSystemAddRecordsConstraint(t *testing.T) {
	sys := NewTestSystem()
	a, err := sys.AllocateConstant("a", u8(t, 1))
	if err != nil {
		t.Fatalf("AllocateConstant: %v", err)
	}
	b, err := sys.AllocateConstant("b", u8(t, 2))
	if err != nil {
		t.Fatalf("AllocateConstant: %v", err)
	}
	sum, err := sys.Add(a, b)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if sum.Value.Int.Semantic().Int64() != 3 {
		t.Errorf("sum = %s, want 3", sum.Value.Int.Semantic())
	}
	if len(sys.Constraints) != 3 {
		t.Errorf("Constraints len = %d, want 3 (2 allocs + 1 add)", len(sys.Constraints))
	}
}

func TestTestSystemAddOverflowPropagates(t *testing.T) {
	sys := NewTestSystem()
	a, _ := sys.AllocateConstant("a", u8(t, 200))
	b, _ := sys.AllocateConstant("b", u8(t, 100))
	if _, err := sys.Add(a, b); err == nil || err.Kind != cerrors.KindOverflow {
		t.Fatalf("want Overflow, got %v", err)
	}
}

func TestTestSystemNamespaceNesting(t *testing.T) {
	sys := NewTestSystem()
	pop := sys.Namespace("outer")
	inner := sys.Namespace("inner")
	a, _ := sys.AllocateConstant("a", u8(t, 1))
	if a.Var.Namespace != "outer.inner" {
		t.Errorf("namespace = %q, want %q", a.Var.Namespace, "outer.inner")
	}
	inner()
	b, _ := sys.AllocateConstant("b", u8(t, 1))
	if b.Var.Namespace != "outer" {
		t.Errorf("namespace = %q, want %q", b.Var.Namespace, "outer")
	}
	pop()
}

func TestTestSystemAssertEqualFailsOnMismatch(t *testing.T) {
	sys := NewTestSystem()
	a, _ := sys.AllocateConstant("a", u8(t, 1))
	b, _ := sys.AllocateConstant("b", u8(t, 2))
	if err := sys.AssertEqual(a, b); err == nil || err.Kind != cerrors.KindRequireFailed {
		t.Fatalf("want RequireFailed, got %v", err)
	}
}

func TestTestSystemEqRequiresMatchingTypes(t *testing.T) {
	sys := NewTestSystem()
	a, _ := sys.AllocateConstant("a", u8(t, 1))
	b, err := sys.AllocateBoolean("b", true)
	if err != nil {
		t.Fatalf("AllocateBoolean: %v", err)
	}
	if _, err := sys.Eq(a, b); err == nil || err.Kind != cerrors.KindTypesMismatch {
		t.Fatalf("want TypesMismatch, got %v", err)
	}
}
