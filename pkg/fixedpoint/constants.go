// Package fixedpoint implements the Q64.64 sqrt-price and liquidity
// arithmetic that every other component in this module builds on: tick
// index <-> sqrt price conversion, token amount <-> liquidity conversion,
// and the sqrt-price stepping used by the swap simulator.
//
// All public types stay wire-compatible with the on-chain account layout
// (uint128.Uint128 for 128-bit values, u64 for token amounts, i32 for tick
// indices); internal widening multiplication uses math/big so intermediate
// products never truncate.
package fixedpoint

import (
	"math/big"

	"lukechampine.com/uint128"
)

const (
	// MinTick is the smallest valid tick index, symmetric with MaxTick.
	MinTick int32 = -443636

	// MaxTick is the largest valid tick index.
	MaxTick int32 = 443636

	// TickArraySize is the number of tick slots in one on-chain tick array.
	TickArraySize = 88

	// Q64Resolution is the number of fractional bits in Q64.64.
	Q64Resolution = 64

	// FeeRateDenominator is the divisor for a pool's u16 fee rate, i.e. fee
	// rate is expressed in parts-per-million of the input amount.
	FeeRateDenominator uint32 = 1_000_000
)

var (
	// MinSqrtPriceX64 is tickIndexToSqrtPriceX64(MinTick).
	MinSqrtPriceX64 = uint128.From64(4295048016)

	// MaxSqrtPriceX64 is tickIndexToSqrtPriceX64(MaxTick).
	MaxSqrtPriceX64 = uint128.Max

	// q64One is 2^64, the Q64.64 fixed-point representation of 1.0.
	q64One = new(big.Int).Lsh(big.NewInt(1), Q64Resolution)

	// q128 is 2^128, used when inverting a Q64.64 value (1/x in Q64.64 is
	// q128 / x expressed with another q64One of scale).
	q128 = new(big.Int).Lsh(big.NewInt(1), 2*Q64Resolution)

	// maxU128 bounds every widened product before it is narrowed back to a
	// wire-width uint128.Uint128.
	maxU128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

	// maxU64 bounds every widened product before it is narrowed back to a
	// wire-width uint64 token amount.
	maxU64 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 64), big.NewInt(1))
)

func init() {
	// MaxSqrtPriceX64 is set from the real Whirlpool on-chain bound
	// (79226673515401279992447579055), not the all-ones 2^128-1 value
	// uint128.Max would otherwise suggest.
	max, ok := new(big.Int).SetString("79226673515401279992447579055", 10)
	if !ok {
		panic("fixedpoint: invalid MaxSqrtPriceX64 literal")
	}
	MaxSqrtPriceX64 = uint128.FromBig(max)
}
