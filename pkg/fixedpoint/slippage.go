package fixedpoint

import (
	"fmt"
	"math/big"

	"lukechampine.com/uint128"
)

// Slippage is a non-negative rational percentage (numerator/denominator),
// e.g. {Numerator: 1, Denominator: 100} for 1%.
type Slippage struct {
	Numerator   uint64
	Denominator uint64
}

// SqrtPriceBound pairs a slipped sqrt price with the tick it falls in (the
// greatest tick whose sqrt price is at or below it, for both bounds),
// matching the [p, t] pairs in spec section 4.A.
type SqrtPriceBound struct {
	SqrtPriceX64 uint128.Uint128
	TickIndex    int32
}

// GetSlippageBoundForSqrtPrice scales the *price* (sqrtPrice^2) by (1-s) and
// (1+s), not the sqrt price directly, then takes the square root of each
// scaled value. Scaling price directly and then re-deriving sqrt price is
// what keeps the bound price-faithful: a naive scale-then-sqrt of the sqrt
// price itself would not correspond to a symmetric price-percentage move.
func GetSlippageBoundForSqrtPrice(sqrtPriceX64 uint128.Uint128, slippage Slippage) (lower SqrtPriceBound, upper SqrtPriceBound, err error) {
	if slippage.Denominator == 0 {
		return SqrtPriceBound{}, SqrtPriceBound{}, fmt.Errorf("fixedpoint: slippage denominator cannot be zero")
	}

	lowerSqrtPrice, err := scaledSqrtPrice(sqrtPriceX64, slippage, false)
	if err != nil {
		return SqrtPriceBound{}, SqrtPriceBound{}, err
	}
	upperSqrtPrice, err := scaledSqrtPrice(sqrtPriceX64, slippage, true)
	if err != nil {
		return SqrtPriceBound{}, SqrtPriceBound{}, err
	}

	if lowerSqrtPrice.Cmp(MinSqrtPriceX64) < 0 {
		lowerSqrtPrice = MinSqrtPriceX64
	}
	if upperSqrtPrice.Cmp(MaxSqrtPriceX64) > 0 {
		upperSqrtPrice = MaxSqrtPriceX64
	}

	lowerTick, err := SqrtPriceX64ToTickIndex(lowerSqrtPrice)
	if err != nil {
		return SqrtPriceBound{}, SqrtPriceBound{}, err
	}
	upperTick, err := SqrtPriceX64ToTickIndex(upperSqrtPrice)
	if err != nil {
		return SqrtPriceBound{}, SqrtPriceBound{}, err
	}

	return SqrtPriceBound{SqrtPriceX64: lowerSqrtPrice, TickIndex: lowerTick},
		SqrtPriceBound{SqrtPriceX64: upperSqrtPrice, TickIndex: upperTick}, nil
}

// scaledSqrtPrice returns floor( sqrtPrice * sqrt(1 +/- s) ), computed
// via price^2 scaling to stay faithful to "scale the price, not the sqrt
// price": sqrt(price * (1+/-s)) = sqrtPrice * sqrt(1+/-s).
func scaledSqrtPrice(sqrtPriceX64 uint128.Uint128, slippage Slippage, positive bool) (uint128.Uint128, error) {
	num := new(big.Float).SetPrec(bitPrecision).SetUint64(slippage.Denominator)
	delta := new(big.Float).SetPrec(bitPrecision).SetUint64(slippage.Numerator)
	delta.Quo(delta, num)

	factor := new(big.Float).SetPrec(bitPrecision).SetInt64(1)
	if positive {
		factor.Add(factor, delta)
	} else {
		factor.Sub(factor, delta)
		if factor.Sign() < 0 {
			factor.SetInt64(0)
		}
	}

	sqrtFactor := new(big.Float).SetPrec(bitPrecision).Sqrt(factor)
	sqrtPriceFloat := new(big.Float).SetPrec(bitPrecision).SetInt(sqrtPriceX64.Big())
	scaled := new(big.Float).SetPrec(bitPrecision).Mul(sqrtPriceFloat, sqrtFactor)

	rounded, _ := scaled.Int(nil)
	return toU128(rounded)
}
