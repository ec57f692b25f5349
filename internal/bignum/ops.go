package bignum

import (
	"math/big"

	"github.com/circuitlang/circuitc/internal/cerrors"
)

func sameKind(op string, a, b Integer) *cerrors.Error {
	if !a.Kind.Equal(b.Kind) {
		return typesMismatch(op, a.Kind, b.Kind)
	}
	return nil
}

// Add returns a+b, reduced and range-checked against their shared kind.
func Add(a, b Integer) (Integer, *cerrors.Error) {
	if err := sameKind("Addition", a, b); err != nil {
		return Integer{}, err
	}
	result := new(big.Int).Add(a.Semantic(), b.Semantic())
	return fromChecked("Addition", result, a.Kind)
}

// Sub returns a-b.
func Sub(a, b Integer) (Integer, *cerrors.Error) {
	if err := sameKind("Subtraction", a, b); err != nil {
		return Integer{}, err
	}
	result := new(big.Int).Sub(a.Semantic(), b.Semantic())
	return fromChecked("Subtraction", result, a.Kind)
}

// Mul returns a*b.
func Mul(a, b Integer) (Integer, *cerrors.Error) {
	if err := sameKind("Multiplication", a, b); err != nil {
		return Integer{}, err
	}
	result := new(big.Int).Mul(a.Semantic(), b.Semantic())
	return fromChecked("Multiplication", result, a.Kind)
}

// Div performs Euclidean division on the signed interpretation of a and b
// (spec §4.1). Forbidden for the field kind.
func Div(a, b Integer) (Integer, *cerrors.Error) {
	if err := sameKind("Division", a, b); err != nil {
		return Integer{}, err
	}
	if a.Kind.IsField {
		return Integer{}, forbiddenFieldDivision()
	}
	bv := b.Semantic()
	if bv.Sign() == 0 {
		return Integer{}, zeroDivision()
	}
	q, _ := euclideanDivMod(a.Semantic(), bv)
	return fromChecked("Division", q, a.Kind)
}

// Mod performs Euclidean remainder. Forbidden for the field kind.
func Mod(a, b Integer) (Integer, *cerrors.Error) {
	if err := sameKind("Remainder", a, b); err != nil {
		return Integer{}, err
	}
	if a.Kind.IsField {
		return Integer{}, forbiddenFieldRemainder()
	}
	bv := b.Semantic()
	if bv.Sign() == 0 {
		return Integer{}, zeroRemainder()
	}
	_, r := euclideanDivMod(a.Semantic(), bv)
	return fromChecked("Division", r, a.Kind)
}

// euclideanDivMod implements Euclidean division: the remainder is always
// non-negative, regardless of the sign of either operand.
func euclideanDivMod(a, b *big.Int) (*big.Int, *big.Int) {
	q, r := new(big.Int), new(big.Int)
	q.QuoRem(a, b, r)
	if r.Sign() < 0 {
		if b.Sign() > 0 {
			r.Add(r, b)
			q.Sub(q, big.NewInt(1))
		} else {
			r.Sub(r, b)
			q.Add(q, big.NewInt(1))
		}
	}
	return q, r
}

// Neg negates a, sign-extending an unsigned n-bit kind to a signed
// (n+1)-bit kind per spec §4.1. Forbidden for the field kind.
func Neg(a Integer) (Integer, *cerrors.Error) {
	if a.Kind.IsField {
		return Integer{}, forbiddenFieldNegation()
	}
	result := new(big.Int).Neg(a.Semantic())
	targetKind := a.Kind
	if !a.Kind.Signed {
		targetKind = Signed(a.Kind.BitLength + 1)
		if targetKind.BitLength > MaxBitLength {
			return Integer{}, overflowError("Negation", result, targetKind)
		}
	}
	return fromChecked("Negation", result, targetKind)
}

// Not computes the bitwise complement within the kind's bit-length.
// Forbidden for the field kind.
func Not(a Integer) (Integer, *cerrors.Error) {
	if a.Kind.IsField {
		return Integer{}, forbiddenFieldBitwise()
	}
	mask := new(big.Int).Sub(a.Kind.modulus(), big.NewInt(1))
	complement := new(big.Int).Xor(a.Field, mask)
	return Integer{Kind: a.Kind, Field: reduce(complement)}, nil
}

// Inc returns a+1 of the same kind (used for range/loop bookkeeping).
func Inc(a Integer) (Integer, *cerrors.Error) {
	return Add(a, mustOne(a.Kind))
}

func mustOne(kind Kind) Integer {
	enc := encode(big.NewInt(1), kind)
	return Integer{Kind: kind, Field: enc}
}

// Shl / Shr are left/right bit shifts by a small unsigned amount, wrapping
// within the kind's bit-length. Forbidden for the field kind (it has no
// declared bit-length to shift within).
func Shl(a Integer, amount uint) (Integer, *cerrors.Error) {
	if a.Kind.IsField {
		return Integer{}, forbiddenFieldBitwise()
	}
	shifted := new(big.Int).Lsh(a.Field, amount)
	mask := new(big.Int).Sub(a.Kind.modulus(), big.NewInt(1))
	shifted.And(shifted, mask)
	return Integer{Kind: a.Kind, Field: shifted}, nil
}

func Shr(a Integer, amount uint) (Integer, *cerrors.Error) {
	if a.Kind.IsField {
		return Integer{}, forbiddenFieldBitwise()
	}
	shifted := new(big.Int).Rsh(a.Field, amount)
	return Integer{Kind: a.Kind, Field: shifted}, nil
}

// Cmp compares the semantic values of a and b, which must share a kind.
func Cmp(a, b Integer) (int, *cerrors.Error) {
	if err := sameKind("Comparison", a, b); err != nil {
		return 0, err
	}
	return a.Semantic().Cmp(b.Semantic()), nil
}

// Cast converts a to the destination kind, preserving the value modulo the
// field prime (integer<->field) or failing with CastingToInvalidType if the
// semantic value does not fit an explicit destination bit-length.
func Cast(a Integer, to Kind) (Integer, *cerrors.Error) {
	if to.IsField {
		return Integer{Kind: Field, Field: reduce(a.Semantic())}, nil
	}
	v := a.Semantic()
	if a.Kind.IsField {
		// Field -> integer: interpret the raw field residue as unsigned,
		// it is only valid if it already fits the destination range.
		v = new(big.Int).Set(a.Field)
	}
	if !to.InRange(v) {
		return Integer{}, castingError(a.Kind, to)
	}
	return Integer{Kind: to, Field: encode(v, to)}, nil
}

func fromChecked(op string, semantic *big.Int, kind Kind) (Integer, *cerrors.Error) {
	if kind.IsField {
		return Integer{Kind: kind, Field: reduce(semantic)}, nil
	}
	if !kind.InRange(semantic) {
		return Integer{}, overflowError(op, semantic, kind)
	}
	return Integer{Kind: kind, Field: encode(semantic, kind)}, nil
}
