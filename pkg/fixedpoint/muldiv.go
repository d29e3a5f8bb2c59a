package fixedpoint

import (
	"fmt"
	"math/big"

	"github.com/johnayoung/go-clamm-router/pkg/clammerr"
	"lukechampine.com/uint128"
)

// mulDivFloor computes floor(a*b/denominator) using a big.Int intermediate
// so the a*b product never overflows 128 bits before the division, mirroring
// the widening-multiplication pattern the on-chain program itself relies on.
func mulDivFloor(a, b, denominator *big.Int) (*big.Int, error) {
	if denominator.Sign() == 0 {
		return nil, clammerr.ErrDivideByZero
	}
	num := new(big.Int).Mul(a, b)
	return new(big.Int).Quo(num, denominator), nil
}

// mulDivCeil computes ceil(a*b/denominator).
func mulDivCeil(a, b, denominator *big.Int) (*big.Int, error) {
	if denominator.Sign() == 0 {
		return nil, clammerr.ErrDivideByZero
	}
	num := new(big.Int).Mul(a, b)
	q, r := new(big.Int).QuoRem(num, denominator, new(big.Int))
	if r.Sign() != 0 {
		q.Add(q, big.NewInt(1))
	}
	return q, nil
}

// mulDiv rounds up when roundUp is true, down otherwise.
func mulDiv(a, b, denominator *big.Int, roundUp bool) (*big.Int, error) {
	if roundUp {
		return mulDivCeil(a, b, denominator)
	}
	return mulDivFloor(a, b, denominator)
}

// toU128 narrows a widened big.Int back to the wire-width uint128, failing
// with ErrArithmeticOverflow if the value doesn't fit.
func toU128(v *big.Int) (uint128.Uint128, error) {
	if v.Sign() < 0 || v.Cmp(maxU128) > 0 {
		return uint128.Uint128{}, fmt.Errorf("%w: %s does not fit in u128", clammerr.ErrArithmeticOverflow, v.String())
	}
	return uint128.FromBig(v), nil
}

// toU64 narrows a widened big.Int back to the wire-width uint64 token
// amount, failing with ErrArithmeticOverflow if the value doesn't fit.
func toU64(v *big.Int) (uint64, error) {
	if v.Sign() < 0 || v.Cmp(maxU64) > 0 {
		return 0, fmt.Errorf("%w: %s does not fit in u64", clammerr.ErrArithmeticOverflow, v.String())
	}
	return v.Uint64(), nil
}

// ToU128 exports toU128 for callers outside the package (position's
// liquidity-from-token-amount math reuses the same narrowing check).
func ToU128(v *big.Int) (uint128.Uint128, error) {
	return toU128(v)
}

// ToU64 exports toU64 for the same reason.
func ToU64(v *big.Int) (uint64, error) {
	return toU64(v)
}
