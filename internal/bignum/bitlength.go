package bignum

import (
	"math/big"

	"github.com/circuitlang/circuitc/internal/cerrors"
)

// InferMinimalBitLength returns the smallest byte-multiple bit-length
// b ∈ {8,16,...,248} such that every value in vs fits a kind of that
// bit-length and signedness (spec §4.1). signed is forced to true if any
// value is negative.
func InferMinimalBitLength(vs []*big.Int, signed bool) (int, *cerrors.Error) {
	for _, v := range vs {
		if v.Sign() < 0 {
			signed = true
			break
		}
	}
	for b := 8; b <= MaxBitLength; b += 8 {
		kind := Kind{Signed: signed, BitLength: b}
		if fitsAll(vs, kind) {
			return b, nil
		}
	}
	return 0, cerrors.New(cerrors.KindBitlengthInference, zeroLoc(),
		"no bit-length up to 248 bits fits every literal", nil)
}

func fitsAll(vs []*big.Int, kind Kind) bool {
	for _, v := range vs {
		if !kind.InRange(v) {
			return false
		}
	}
	return true
}

// InferEnoughBitLength is the single-set-of-two-bounds convenience used by
// `for` loop range inference (spec §4.7): it infers a bit-length that fits
// both the start and the end of the range.
func InferEnoughBitLength(start, end *big.Int) (int, *cerrors.Error) {
	return InferMinimalBitLength([]*big.Int{start, end}, false)
}
