package fixedpoint

import (
	"math/big"

	"github.com/johnayoung/go-clamm-router/pkg/clammerr"
	"lukechampine.com/uint128"
)

// orderSqrtPrices returns (lo, hi) such that lo <= hi, swapping if needed.
func orderSqrtPrices(a, b uint128.Uint128) (uint128.Uint128, uint128.Uint128) {
	if a.Cmp(b) > 0 {
		return b, a
	}
	return a, b
}

// GetAmountADelta computes the token A required to move liquidity L across
// [sqrtPLo, sqrtPHi]:
//
//	ceil_or_floor( L * 2^64 * (sqrtPHi - sqrtPLo) / (sqrtPHi * sqrtPLo) )
//
// roundUp should be true when estimating tokens required to deposit or to
// fulfil a swap input, false when estimating tokens received.
func GetAmountADelta(sqrtPLo, sqrtPHi uint128.Uint128, liquidity uint128.Uint128, roundUp bool) (uint64, error) {
	lo, hi := orderSqrtPrices(sqrtPLo, sqrtPHi)
	if lo.IsZero() {
		return 0, clammerr.ErrDivideByZero
	}

	numerator1 := new(big.Int).Lsh(liquidity.Big(), Q64Resolution)
	numerator2 := new(big.Int).Sub(hi.Big(), lo.Big())

	if roundUp {
		step1, err := mulDivCeil(numerator1, numerator2, hi.Big())
		if err != nil {
			return 0, err
		}
		result, err := mulDivCeil(step1, big.NewInt(1), lo.Big())
		if err != nil {
			return 0, err
		}
		return toU64(result)
	}

	step1, err := mulDivFloor(numerator1, numerator2, hi.Big())
	if err != nil {
		return 0, err
	}
	result := new(big.Int).Quo(step1, lo.Big())
	return toU64(result)
}

// GetAmountBDelta computes the token B required to move liquidity L across
// [sqrtPLo, sqrtPHi]:
//
//	ceil_or_floor( L * (sqrtPHi - sqrtPLo) / 2^64 )
func GetAmountBDelta(sqrtPLo, sqrtPHi uint128.Uint128, liquidity uint128.Uint128, roundUp bool) (uint64, error) {
	lo, hi := orderSqrtPrices(sqrtPLo, sqrtPHi)
	diff := new(big.Int).Sub(hi.Big(), lo.Big())

	result, err := mulDiv(liquidity.Big(), diff, q64One, roundUp)
	if err != nil {
		return 0, err
	}
	return toU64(result)
}

// GetNextSqrtPriceFromAmountIn computes the sqrt price reached after
// consuming amount of the input token, holding liquidity fixed. aToB
// selects which token is being input (A decreases price, B increases it).
func GetNextSqrtPriceFromAmountIn(sqrtP uint128.Uint128, liquidity uint128.Uint128, amount uint64, aToB bool) (uint128.Uint128, error) {
	if aToB {
		return nextSqrtPriceFromTokenAmountA(sqrtP, liquidity, amount, true)
	}
	return nextSqrtPriceFromTokenAmountB(sqrtP, liquidity, amount, true)
}

// GetNextSqrtPriceFromAmountOut computes the sqrt price reached after
// producing amount of the output token, holding liquidity fixed. aToB
// selects the swap direction of the trade being simulated (not the token
// amount's denomination: an aToB swap's output is token B).
func GetNextSqrtPriceFromAmountOut(sqrtP uint128.Uint128, liquidity uint128.Uint128, amount uint64, aToB bool) (uint128.Uint128, error) {
	if aToB {
		return nextSqrtPriceFromTokenAmountB(sqrtP, liquidity, amount, false)
	}
	return nextSqrtPriceFromTokenAmountA(sqrtP, liquidity, amount, false)
}

// nextSqrtPriceFromTokenAmountA solves for sqrtPNext in:
//
//	amount = L*2^64*(1/sqrtPNext - 1/sqrtP)   (add == true, price falls)
//	amount = L*2^64*(1/sqrtP - 1/sqrtPNext)   (add == false, price rises)
func nextSqrtPriceFromTokenAmountA(sqrtP uint128.Uint128, liquidity uint128.Uint128, amount uint64, add bool) (uint128.Uint128, error) {
	if amount == 0 {
		return sqrtP, nil
	}
	numerator1 := new(big.Int).Lsh(liquidity.Big(), Q64Resolution)
	amountBig := new(big.Int).SetUint64(amount)

	if add {
		product := new(big.Int).Mul(amountBig, sqrtP.Big())
		denominator := new(big.Int).Add(numerator1, product)
		if denominator.Cmp(numerator1) >= 0 {
			result, err := mulDivCeil(numerator1, sqrtP.Big(), denominator)
			if err != nil {
				return uint128.Uint128{}, err
			}
			return toU128(result)
		}
		// denominator overflowed u128 headroom; fall back to the
		// division-first form to avoid losing precision.
		temp := new(big.Int).Quo(numerator1, sqrtP.Big())
		temp.Add(temp, amountBig)
		result := new(big.Int).Quo(numerator1, temp)
		return toU128(result)
	}

	product := new(big.Int).Mul(amountBig, sqrtP.Big())
	if numerator1.Cmp(product) <= 0 {
		return uint128.Uint128{}, clammerr.ErrZeroLiquidity
	}
	denominator := new(big.Int).Sub(numerator1, product)
	result, err := mulDivCeil(numerator1, sqrtP.Big(), denominator)
	if err != nil {
		return uint128.Uint128{}, err
	}
	return toU128(result)
}

// nextSqrtPriceFromTokenAmountB solves for sqrtPNext in:
//
//	amount = L*(sqrtPNext - sqrtP)    (add == true, price rises)
//	amount = L*(sqrtP - sqrtPNext)    (add == false, price falls)
func nextSqrtPriceFromTokenAmountB(sqrtP uint128.Uint128, liquidity uint128.Uint128, amount uint64, add bool) (uint128.Uint128, error) {
	deltaScaled := new(big.Int).Lsh(new(big.Int).SetUint64(amount), Q64Resolution)

	if add {
		quotient, err := mulDivFloor(deltaScaled, big.NewInt(1), liquidity.Big())
		if err != nil {
			return uint128.Uint128{}, err
		}
		result := new(big.Int).Add(sqrtP.Big(), quotient)
		return toU128(result)
	}

	quotient, err := mulDivCeil(deltaScaled, big.NewInt(1), liquidity.Big())
	if err != nil {
		return uint128.Uint128{}, err
	}
	if sqrtP.Big().Cmp(quotient) <= 0 {
		return uint128.Uint128{}, clammerr.ErrZeroLiquidity
	}
	result := new(big.Int).Sub(sqrtP.Big(), quotient)
	return toU128(result)
}
