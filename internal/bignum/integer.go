package bignum

import (
	"math/big"

	"github.com/circuitlang/circuitc/internal/cerrors"
	"github.com/circuitlang/circuitc/internal/srcloc"
)

// Integer is a typed, field-reduced integer value: the semantic value
// encoded per spec §3.1's two's-complement-offset-by-2^b convention, always
// stored in [0, FieldPrime).
type Integer struct {
	Kind  Kind
	Field *big.Int
}

// FromSemantic encodes a mathematical value into an Integer of the given
// kind, failing with Overflow if it does not fit the kind's range.
func FromSemantic(v *big.Int, kind Kind) (Integer, *cerrors.Error) {
	if !kind.IsField && !kind.InRange(v) {
		return Integer{}, overflowError("Casting", v, kind)
	}
	return Integer{Kind: kind, Field: encode(v, kind)}, nil
}

// encode converts a semantic value to its field-element encoding.
func encode(v *big.Int, kind Kind) *big.Int {
	if kind.IsField {
		return reduce(v)
	}
	enc := new(big.Int).Set(v)
	if enc.Sign() < 0 {
		enc.Add(enc, kind.modulus())
	}
	return reduce(enc)
}

// Semantic decodes the Integer's field-element back to a mathematical
// value, undoing the two's-complement offset for signed kinds.
func (i Integer) Semantic() *big.Int {
	if i.Kind.IsField {
		return new(big.Int).Set(i.Field)
	}
	v := new(big.Int).Set(i.Field)
	if i.Kind.Signed {
		half := new(big.Int).Lsh(one, uint(i.Kind.BitLength-1))
		if v.Cmp(half) >= 0 {
			v.Sub(v, i.Kind.modulus())
		}
	}
	return v
}

func reduce(v *big.Int) *big.Int {
	r := new(big.Int).Mod(v, FieldPrime)
	if r.Sign() < 0 {
		r.Add(r, FieldPrime)
	}
	return r
}

// --- error constructors (zero Location; callers attach one) ---

func typesMismatch(op string, a, b Kind) *cerrors.Error {
	return cerrors.New(cerrors.KindTypesMismatch, zeroLoc(), op+": operand types differ", map[string]any{
		"operator": op, "first": a.String(), "second": b.String(),
	})
}

func overflowError(op string, v *big.Int, kind Kind) *cerrors.Error {
	return cerrors.New(cerrors.KindOverflow, zeroLoc(), op+" overflows "+kind.String(), map[string]any{
		"operation": op, "value": v.String(), "type": kind.String(),
	})
}

func zeroDivision() *cerrors.Error {
	return cerrors.New(cerrors.KindZeroDivision, zeroLoc(), "division by zero", nil)
}

func zeroRemainder() *cerrors.Error {
	return cerrors.New(cerrors.KindZeroRemainder, zeroLoc(), "remainder with zero divisor", nil)
}

func forbiddenFieldDivision() *cerrors.Error {
	return cerrors.New(cerrors.KindForbiddenFieldDivision, zeroLoc(), "field type forbids division", nil)
}

func forbiddenFieldRemainder() *cerrors.Error {
	return cerrors.New(cerrors.KindForbiddenFieldRemainder, zeroLoc(), "field type forbids remainder", nil)
}

func forbiddenFieldBitwise() *cerrors.Error {
	return cerrors.New(cerrors.KindForbiddenFieldBitwise, zeroLoc(), "field type forbids bitwise operators", nil)
}

func forbiddenFieldNegation() *cerrors.Error {
	return cerrors.New(cerrors.KindForbiddenFieldNegation, zeroLoc(), "field type forbids negation", nil)
}

func castingError(from, to Kind) *cerrors.Error {
	return cerrors.New(cerrors.KindCastingToInvalidType, zeroLoc(), "value does not fit destination type", map[string]any{
		"from": from.String(), "to": to.String(),
	})
}

// zeroLoc keeps the zero-value construction explicit and documents why:
// this package has no access to source Location, see cerrors.Error.WithLocation.
func zeroLoc() srcloc.Location { return srcloc.Location{} }
