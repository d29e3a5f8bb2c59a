package position

import (
	"math/big"

	"github.com/johnayoung/go-clamm-router/pkg/clammerr"
	"github.com/johnayoung/go-clamm-router/pkg/fixedpoint"
	"lukechampine.com/uint128"
)

// GetLiquidityFromTokenA inverts fixedpoint.GetAmountADelta: given the token
// A amount a depositor is willing to commit across [sqrtPLo, sqrtPHi],
// returns the liquidity that amount supports.
//
//	L = amountA * sqrtPLo * sqrtPHi / (2^64 * (sqrtPHi - sqrtPLo))
func GetLiquidityFromTokenA(sqrtPLo, sqrtPHi uint128.Uint128, amountA uint64) (uint128.Uint128, error) {
	lo, hi := orderSqrtPricesLocal(sqrtPLo, sqrtPHi)
	diff := new(big.Int).Sub(hi.Big(), lo.Big())
	if diff.Sign() == 0 {
		return uint128.Uint128{}, clammerr.ErrZeroLiquidity
	}

	product := new(big.Int).Mul(lo.Big(), hi.Big())
	numerator := new(big.Int).Mul(new(big.Int).SetUint64(amountA), product)
	denominator := new(big.Int).Lsh(diff, fixedpoint.Q64Resolution)

	result := new(big.Int).Quo(numerator, denominator)
	return fixedpoint.ToU128(result)
}

// GetLiquidityFromTokenB inverts fixedpoint.GetAmountBDelta:
//
//	L = amountB * 2^64 / (sqrtPHi - sqrtPLo)
func GetLiquidityFromTokenB(sqrtPLo, sqrtPHi uint128.Uint128, amountB uint64) (uint128.Uint128, error) {
	lo, hi := orderSqrtPricesLocal(sqrtPLo, sqrtPHi)
	diff := new(big.Int).Sub(hi.Big(), lo.Big())
	if diff.Sign() == 0 {
		return uint128.Uint128{}, clammerr.ErrZeroLiquidity
	}

	numerator := new(big.Int).Lsh(new(big.Int).SetUint64(amountB), fixedpoint.Q64Resolution)
	result := new(big.Int).Quo(numerator, diff)
	return fixedpoint.ToU128(result)
}

func orderSqrtPricesLocal(a, b uint128.Uint128) (uint128.Uint128, uint128.Uint128) {
	if a.Cmp(b) > 0 {
		return b, a
	}
	return a, b
}
