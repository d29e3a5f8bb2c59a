package fixedpoint

import (
	"fmt"
	"math/big"
	"sort"
	"sync"

	"github.com/johnayoung/go-clamm-router/pkg/clammerr"
	"lukechampine.com/uint128"
)

// bitPrecision is the mantissa precision (in bits) used for the
// product-of-powers table. 443636 needs 19 bits of decomposition; 200 bits
// of headroom keeps rounding error many orders of magnitude below a single
// Q64.64 unit at the table's widest values.
const bitPrecision = 200

// tickBits is the number of bits needed to decompose MaxTick.
const tickBits = 19

// powers[i] holds 1.0001^(2^(i-1)) as a big.Float, i.e. powers[0] is
// sqrt(1.0001) and powers[i] = powers[i-1]^2 for i >= 1. Decomposing a tick
// index in binary and multiplying together the entries whose bit is set
// yields 1.0001^(tick/2), which is exactly sqrtPrice(tick).
var (
	powersOnce sync.Once
	powers     [tickBits]*big.Float
)

func buildPowers() {
	base := new(big.Float).SetPrec(bitPrecision).SetInt64(10001)
	base.Quo(base, new(big.Float).SetPrec(bitPrecision).SetInt64(10000))

	d0 := new(big.Float).SetPrec(bitPrecision).Sqrt(base)
	powers[0] = d0
	for i := 1; i < tickBits; i++ {
		prev := powers[i-1]
		powers[i] = new(big.Float).SetPrec(bitPrecision).Mul(prev, prev)
	}
}

// TickIndexToSqrtPriceX64 computes sqrt(1.0001^t) scaled to Q64.64. It is
// exact up to the last-bit rounding of the initial fixed-precision table,
// and is monotonically non-decreasing in t.
func TickIndexToSqrtPriceX64(t int32) (uint128.Uint128, error) {
	if t < MinTick || t > MaxTick {
		return uint128.Uint128{}, fmt.Errorf("%w: tick %d outside [%d, %d]", clammerr.ErrTickOutOfBounds, t, MinTick, MaxTick)
	}
	powersOnce.Do(buildPowers)

	abs := t
	if abs < 0 {
		abs = -abs
	}

	result := new(big.Float).SetPrec(bitPrecision).SetInt64(1)
	for i := 0; i < tickBits; i++ {
		if abs&(1<<uint(i)) != 0 {
			result.Mul(result, powers[i])
		}
	}
	if t < 0 {
		one := new(big.Float).SetPrec(bitPrecision).SetInt64(1)
		result = one.Quo(one, result)
	}

	scaled := new(big.Float).SetPrec(bitPrecision).Mul(result, new(big.Float).SetPrec(bitPrecision).SetInt(q64One))
	rounded, _ := scaled.Int(nil)

	// Clamp at the published on-chain bounds rather than the raw table
	// value, since MinTick/MaxTick are defined to round-trip exactly to
	// MinSqrtPriceX64/MaxSqrtPriceX64.
	if t == MinTick {
		return MinSqrtPriceX64, nil
	}
	if t == MaxTick {
		return MaxSqrtPriceX64, nil
	}
	return toU128(rounded)
}

// SqrtPriceX64ToTickIndex returns the greatest tick t such that
// TickIndexToSqrtPriceX64(t) <= p, via binary search over the monotonic
// forward conversion.
func SqrtPriceX64ToTickIndex(p uint128.Uint128) (int32, error) {
	if p.Cmp(MinSqrtPriceX64) < 0 || p.Cmp(MaxSqrtPriceX64) > 0 {
		return 0, fmt.Errorf("%w: sqrt price %s outside [%s, %s]", clammerr.ErrTickOutOfBounds, p.String(), MinSqrtPriceX64.String(), MaxSqrtPriceX64.String())
	}

	lo, hi := int(MinTick), int(MaxTick)
	// sort.Search finds the smallest index for which f(index) is true; we
	// want the smallest tick whose sqrt price exceeds p, then step back one.
	idx := sort.Search(hi-lo+1, func(i int) bool {
		candidate := int32(lo + i)
		sp, err := TickIndexToSqrtPriceX64(candidate)
		if err != nil {
			return false
		}
		return sp.Cmp(p) > 0
	})

	tick := int32(lo+idx) - 1
	if tick < MinTick {
		tick = MinTick
	}
	return tick, nil
}
