package bignum

import (
	"math/big"
	"testing"

	"github.com/circuitlang/circuitc/internal/cerrors"
)

func mustInt(t *testing.T, v int64, kind Kind) Integer {
	t.Helper()
	n, err := FromSemantic(big.NewInt(v), kind)
	if err != nil {
		t.Fatalf("FromSemantic(%d, %s): %v", v, kind, err)
	}
	return n
}

func TestFromSemanticRoundTrip(t *testing.T) {
	cases := []struct {
		v    int64
		kind Kind
	}{
		{0, Unsigned(8)},
		{255, Unsigned(8)},
		{-128, Signed(8)},
		{127, Signed(8)},
		{42, Field},
	}
	for _, c := range cases {
		n := mustInt(t, c.v, c.kind)
		if got := n.Semantic(); got.Cmp(big.NewInt(c.v)) != 0 {
			t.Errorf("Semantic() of %d %s = %s, want %d", c.v, c.kind, got, c.v)
		}
	}
}

func TestFromSemanticOverflow(t *testing.T) {
	_, err := FromSemantic(big.NewInt(256), Unsigned(8))
	if err == nil || err.Kind != cerrors.KindOverflow {
		t.Fatalf("want Overflow, got %v", err)
	}
}

func TestAddOverflow(t *testing.T) {
	a := mustInt(t, 200, Unsigned(8))
	b := mustInt(t, 100, Unsigned(8))
	if _, err := Add(a, b); err == nil || err.Kind != cerrors.KindOverflow {
		t.Fatalf("want Overflow, got %v", err)
	}
}

func TestAddMismatchedKinds(t *testing.T) {
	a := mustInt(t, 1, Unsigned(8))
	b := mustInt(t, 1, Unsigned(16))
	if _, err := Add(a, b); err == nil || err.Kind != cerrors.KindTypesMismatch {
		t.Fatalf("want TypesMismatch, got %v", err)
	}
}

func TestDivEuclidean(t *testing.T) {
	a := mustInt(t, -7, Signed(8))
	b := mustInt(t, 2, Signed(8))
	q, err := Div(a, b)
	if err != nil {
		t.Fatalf("Div: %v", err)
	}
	r, err := Mod(a, b)
	if err != nil {
		t.Fatalf("Mod: %v", err)
	}
	if q.Semantic().Int64() != -4 {
		t.Errorf("q = %s, want -4", q.Semantic())
	}
	if r.Semantic().Int64() != 1 {
		t.Errorf("r = %s, want 1", r.Semantic())
	}
}

func TestDivByZero(t *testing.T) {
	a := mustInt(t, 5, Unsigned(8))
	z := mustInt(t, 0, Unsigned(8))
	if _, err := Div(a, z); err == nil || err.Kind != cerrors.KindZeroDivision {
		t.Fatalf("want ZeroDivision, got %v", err)
	}
	if _, err := Mod(a, z); err == nil || err.Kind != cerrors.KindZeroRemainder {
		t.Fatalf("want ZeroRemainder, got %v", err)
	}
}

func TestFieldForbidsDivisionAndBitwise(t *testing.T) {
	a := mustInt(t, 5, Field)
	b := mustInt(t, 2, Field)
	if _, err := Div(a, b); err == nil || err.Kind != cerrors.KindForbiddenFieldDivision {
		t.Fatalf("want ForbiddenFieldDivision, got %v", err)
	}
	if _, err := Mod(a, b); err == nil || err.Kind != cerrors.KindForbiddenFieldRemainder {
		t.Fatalf("want ForbiddenFieldRemainder, got %v", err)
	}
	if _, err := Not(a); err == nil || err.Kind != cerrors.KindForbiddenFieldBitwise {
		t.Fatalf("want ForbiddenFieldBitwise, got %v", err)
	}
	if _, err := Neg(a); err == nil || err.Kind != cerrors.KindForbiddenFieldNegation {
		t.Fatalf("want ForbiddenFieldNegation, got %v", err)
	}
}

func TestNegSignExtendsUnsigned(t *testing.T) {
	a := mustInt(t, 5, Unsigned(8))
	neg, err := Neg(a)
	if err != nil {
		t.Fatalf("Neg: %v", err)
	}
	if !neg.Kind.Signed || neg.Kind.BitLength != 9 {
		t.Errorf("Neg(u8) kind = %s, want i9", neg.Kind)
	}
	if neg.Semantic().Int64() != -5 {
		t.Errorf("Neg(5) = %s, want -5", neg.Semantic())
	}
}

func TestCastRoundTrip(t *testing.T) {
	a := mustInt(t, 10, Unsigned(8))
	wide, err := Cast(a, Unsigned(16))
	if err != nil {
		t.Fatalf("Cast up: %v", err)
	}
	if wide.Semantic().Int64() != 10 {
		t.Errorf("wide = %s, want 10", wide.Semantic())
	}
	if _, err := Cast(wide, Unsigned(8)); err != nil {
		t.Fatalf("Cast back down in range: %v", err)
	}
	tooWide := mustInt(t, 300, Unsigned(16))
	if _, err := Cast(tooWide, Unsigned(8)); err == nil || err.Kind != cerrors.KindCastingToInvalidType {
		t.Fatalf("want CastingToInvalidType, got %v", err)
	}
}

func TestCastToField(t *testing.T) {
	a := mustInt(t, 10, Unsigned(8))
	f, err := Cast(a, Field)
	if err != nil {
		t.Fatalf("Cast to field: %v", err)
	}
	if !f.Kind.IsField {
		t.Errorf("Cast to field did not set IsField")
	}
}

func TestShlWrap(t *testing.T) {
	a := mustInt(t, 1, Unsigned(8))
	shifted, err := Shl(a, 8)
	if err != nil {
		t.Fatalf("Shl: %v", err)
	}
	if shifted.Field.Sign() != 0 {
		t.Errorf("Shl(1, 8) of u8 = %s, want 0 (wrapped out)", shifted.Field)
	}
}

func TestInferMinimalBitLength(t *testing.T) {
	b, err := InferMinimalBitLength([]*big.Int{big.NewInt(0), big.NewInt(300)}, false)
	if err != nil {
		t.Fatalf("InferMinimalBitLength: %v", err)
	}
	if b != 16 {
		t.Errorf("bit length = %d, want 16", b)
	}
}

func TestInferMinimalBitLengthSignsOnNegative(t *testing.T) {
	b, err := InferMinimalBitLength([]*big.Int{big.NewInt(-1), big.NewInt(100)}, false)
	if err != nil {
		t.Fatalf("InferMinimalBitLength: %v", err)
	}
	kind := Signed(b)
	if !kind.InRange(big.NewInt(-1)) || !kind.InRange(big.NewInt(100)) {
		t.Errorf("inferred i%d does not fit both bounds", b)
	}
}

func TestInferEnoughBitLengthRange(t *testing.T) {
	b, err := InferEnoughBitLength(big.NewInt(0), big.NewInt(3))
	if err != nil {
		t.Fatalf("InferEnoughBitLength: %v", err)
	}
	if b != 8 {
		t.Errorf("bit length = %d, want 8", b)
	}
}
