// Package quote implements the per-pool swap simulator (component D) and
// the increase-liquidity quote (component E) that the router composes into
// multi-hop split routes.
package quote

import (
	"math/big"

	"github.com/johnayoung/go-clamm-router/pkg/clammerr"
	"github.com/johnayoung/go-clamm-router/pkg/fixedpoint"
	"github.com/johnayoung/go-clamm-router/pkg/tickarray"
	"github.com/johnayoung/go-clamm-router/pkg/whirlpool"
	"lukechampine.com/uint128"
)

// SwapParams describes a single-pool swap to simulate.
type SwapParams struct {
	Pool *whirlpool.Pool
	// Ticks supplies whatever tick arrays the caller has loaded for this
	// pool. The simulator walks it lazily and returns
	// ErrInsufficientTickArrays if it needs a tick beyond what's loaded.
	Ticks *tickarray.Sequence
	// AToB selects swap direction: true spends token A for token B.
	AToB bool
	// AmountSpecifiedIsInput selects exact-in (true) vs exact-out (false).
	AmountSpecifiedIsInput bool
	Amount                 uint64
	Slippage               fixedpoint.Slippage
}

// SwapQuote is the result of simulating a swap through a single pool.
type SwapQuote struct {
	AmountIn             uint64
	AmountOut            uint64
	FeeAmount            uint64
	OtherAmountThreshold uint64
	SqrtPriceAfter       uint128.Uint128
	TickIndexAfter       int32
}

// ComputeSwapQuote steps the swap across initialized ticks one price range
// at a time: within each range the constant-product curve is exact, and
// liquidity only changes at tick boundaries, so the state machine applies
// the entire remaining amount against the current range, then either
// finishes (if that range absorbed everything) or crosses into the next
// one and repeats. It is iterative, not recursive, so a route with many
// crossings can't grow the call stack.
func ComputeSwapQuote(params SwapParams) (*SwapQuote, error) {
	if params.Pool.Liquidity.IsZero() {
		return nil, clammerr.ErrZeroLiquidity
	}
	if params.Amount == 0 {
		return &SwapQuote{SqrtPriceAfter: params.Pool.SqrtPrice, TickIndexAfter: params.Pool.TickCurrentIndex}, nil
	}

	var lowerBound, upperBound fixedpoint.SqrtPriceBound
	if params.Slippage.Denominator == 0 {
		// A zero-value Slippage sets no price limit beyond the protocol's own
		// sqrt price range.
		lowerBound = fixedpoint.SqrtPriceBound{SqrtPriceX64: fixedpoint.MinSqrtPriceX64, TickIndex: fixedpoint.MinTick}
		upperBound = fixedpoint.SqrtPriceBound{SqrtPriceX64: fixedpoint.MaxSqrtPriceX64, TickIndex: fixedpoint.MaxTick}
	} else {
		var err error
		lowerBound, upperBound, err = fixedpoint.GetSlippageBoundForSqrtPrice(params.Pool.SqrtPrice, params.Slippage)
		if err != nil {
			return nil, err
		}
	}
	var sqrtPriceLimit uint128.Uint128
	if params.AToB {
		sqrtPriceLimit = lowerBound.SqrtPriceX64
	} else {
		sqrtPriceLimit = upperBound.SqrtPriceX64
	}

	sqrtPrice := params.Pool.SqrtPrice
	liquidity := params.Pool.Liquidity
	tickIndex := params.Pool.TickCurrentIndex
	remaining := params.Amount

	var totalIn, totalOut, totalFee uint64

	for remaining > 0 {
		nextTick, tick, err := params.Ticks.NextInitializedTick(tickIndex, params.AToB)
		if err != nil {
			return nil, err
		}

		targetSqrtPrice, err := fixedpoint.TickIndexToSqrtPriceX64(nextTick)
		if err != nil {
			return nil, err
		}
		if params.AToB {
			if targetSqrtPrice.Cmp(sqrtPriceLimit) < 0 {
				targetSqrtPrice = sqrtPriceLimit
			}
		} else {
			if targetSqrtPrice.Cmp(sqrtPriceLimit) > 0 {
				targetSqrtPrice = sqrtPriceLimit
			}
		}

		stepIn, stepOut, stepFee, nextSqrtPrice, stepConsumed, err := swapStep(
			sqrtPrice, targetSqrtPrice, liquidity, remaining, params.AToB, params.AmountSpecifiedIsInput, params.Pool.FeeRatePPM())
		if err != nil {
			return nil, err
		}

		totalIn += stepIn
		totalOut += stepOut
		totalFee += stepFee
		remaining -= stepConsumed
		sqrtPrice = nextSqrtPrice

		if sqrtPrice.Equals(sqrtPriceLimit) {
			tickIndex = boundaryTickIndex(params.AToB, lowerBound.TickIndex, upperBound.TickIndex)
			break
		}
		if remaining == 0 {
			newTick, err := fixedpoint.SqrtPriceX64ToTickIndex(sqrtPrice)
			if err != nil {
				return nil, err
			}
			tickIndex = newTick
			break
		}

		// Fully consumed this range: cross the boundary tick and update
		// liquidity by its signed net, flipping sign depending on which way
		// price is moving through it.
		net := new(big.Int).Set(tick.LiquidityNet)
		if params.AToB {
			net.Neg(net)
		}
		liquidity, err = applyLiquidityNet(liquidity, net)
		if err != nil {
			return nil, err
		}
		if params.AToB {
			tickIndex = nextTick - 1
		} else {
			tickIndex = nextTick
		}
	}

	quote := &SwapQuote{
		AmountIn:       totalIn,
		AmountOut:      totalOut,
		FeeAmount:      totalFee,
		SqrtPriceAfter: sqrtPrice,
		TickIndexAfter: tickIndex,
	}
	quote.OtherAmountThreshold = thresholdFor(params.AmountSpecifiedIsInput, totalIn, totalOut, params.Slippage)
	return quote, nil
}

func boundaryTickIndex(aToB bool, lowerTick, upperTick int32) int32 {
	if aToB {
		return lowerTick
	}
	return upperTick
}

// applyLiquidityNet adds a signed delta to an unsigned liquidity value,
// failing if the result would go negative (a corrupt or inconsistent tick
// array, never a swap the router should produce on its own).
func applyLiquidityNet(liquidity uint128.Uint128, delta *big.Int) (uint128.Uint128, error) {
	result := new(big.Int).Add(liquidity.Big(), delta)
	if result.Sign() < 0 {
		return uint128.Uint128{}, clammerr.ErrZeroLiquidity
	}
	return fixedpoint.ToU128(result)
}

// swapStep computes one constant-liquidity segment of the swap, from
// sqrtPrice toward (but not past) targetSqrtPrice, consuming at most
// amountRemaining of the specified side.
//
// For an exact-in step, the fee is charged against the full remaining
// budget up front — feeOnInput(amountRemaining) — before checking whether
// that leaves enough room to reach targetSqrtPrice. If it does, the step
// doesn't cross: the fee stands as computed and the net amount (remaining
// minus fee) is exactly what moves the curve. If the net amount would
// overshoot the target, the step crosses instead: amountIn is capped at
// the curve's capacity to the target and the fee is recomputed against
// that capped amount, never the original budget.
func swapStep(sqrtPrice, targetSqrtPrice, liquidity uint128.Uint128, amountRemaining uint64, aToB, amountSpecifiedIsInput bool, feeRatePPM uint32) (amountIn, amountOut, feeAmount uint64, nextSqrtPrice uint128.Uint128, consumed uint64, err error) {
	if amountSpecifiedIsInput {
		maxIn, err := amountDeltaForDirection(sqrtPrice, targetSqrtPrice, liquidity, aToB, true)
		if err != nil {
			return 0, 0, 0, uint128.Uint128{}, 0, err
		}

		feeOnFull := feeOnInputAmount(amountRemaining, feeRatePPM)
		netFull := amountRemaining - feeOnFull

		if netFull <= maxIn {
			amountIn = netFull
			feeAmount = feeOnFull
			nextSqrtPrice, err = fixedpoint.GetNextSqrtPriceFromAmountIn(sqrtPrice, liquidity, amountIn, aToB)
			if err != nil {
				return 0, 0, 0, uint128.Uint128{}, 0, err
			}
		} else {
			amountIn = maxIn
			feeAmount = feeOnInputAmount(amountIn, feeRatePPM)
			nextSqrtPrice = targetSqrtPrice
		}

		amountOut, err = amountDeltaForDirection(sqrtPrice, nextSqrtPrice, liquidity, aToB, false)
		if err != nil {
			return 0, 0, 0, uint128.Uint128{}, 0, err
		}

		consumed = amountIn + feeAmount
		return amountIn, amountOut, feeAmount, nextSqrtPrice, consumed, nil
	}

	maxOut, err := amountDeltaForDirection(sqrtPrice, targetSqrtPrice, liquidity, aToB, false)
	if err != nil {
		return 0, 0, 0, uint128.Uint128{}, 0, err
	}

	if amountRemaining >= maxOut {
		amountOut = maxOut
		nextSqrtPrice = targetSqrtPrice
	} else {
		amountOut = amountRemaining
		nextSqrtPrice, err = fixedpoint.GetNextSqrtPriceFromAmountOut(sqrtPrice, liquidity, amountOut, aToB)
		if err != nil {
			return 0, 0, 0, uint128.Uint128{}, 0, err
		}
	}

	amountIn, err = amountDeltaForDirection(sqrtPrice, nextSqrtPrice, liquidity, aToB, true)
	if err != nil {
		return 0, 0, 0, uint128.Uint128{}, 0, err
	}
	// Exact-out charges the fee on top of amountIn at the plain rate: the
	// user's cap is on the output side, so there's no input budget to net
	// the fee out of the way spec §4.D step 3 does for exact-in.
	feeAmount = feeOnOutputAmount(amountIn, feeRatePPM)
	consumed = amountOut
	return amountIn, amountOut, feeAmount, nextSqrtPrice, consumed, nil
}

// amountDeltaForDirection picks GetAmountADelta or GetAmountBDelta
// depending on which token is moving: aToB input / bToA output is token A,
// the other side is token B. roundUp follows the standard "round up what
// you require, round down what you receive" policy.
func amountDeltaForDirection(sqrtPriceA, sqrtPriceB, liquidity uint128.Uint128, aToB, wantIn bool) (uint64, error) {
	isTokenA := aToB == wantIn
	if isTokenA {
		return fixedpoint.GetAmountADelta(sqrtPriceA, sqrtPriceB, liquidity, wantIn)
	}
	return fixedpoint.GetAmountBDelta(sqrtPriceA, sqrtPriceB, liquidity, wantIn)
}

// feeOnInputAmount returns ceil(amount * feeRatePPM / (FeeRateDenominator -
// feeRatePPM)): the fee an exact-in step owes when amount is the token
// total the user put up, grossed over the net-of-fee denominator so that
// (amount - fee) is exactly what the curve receives.
func feeOnInputAmount(amount uint64, feeRatePPM uint32) uint64 {
	if feeRatePPM == 0 {
		return 0
	}
	num := new(big.Int).Mul(new(big.Int).SetUint64(amount), new(big.Int).SetUint64(uint64(feeRatePPM)))
	denom := new(big.Int).SetUint64(uint64(fixedpoint.FeeRateDenominator) - uint64(feeRatePPM))
	return ceilDiv(num, denom)
}

// feeOnOutputAmount returns ceil(amountIn * feeRatePPM / FeeRateDenominator):
// the fee an exact-out step owes on top of the amountIn the curve required,
// at the plain fee rate rather than the net-of-fee one, since there's no
// input budget to net the fee out of.
func feeOnOutputAmount(amountIn uint64, feeRatePPM uint32) uint64 {
	if feeRatePPM == 0 {
		return 0
	}
	num := new(big.Int).Mul(new(big.Int).SetUint64(amountIn), new(big.Int).SetUint64(uint64(feeRatePPM)))
	denom := new(big.Int).SetUint64(uint64(fixedpoint.FeeRateDenominator))
	return ceilDiv(num, denom)
}

func ceilDiv(num, denom *big.Int) uint64 {
	q, r := new(big.Int).QuoRem(num, denom, new(big.Int))
	if r.Sign() != 0 {
		q.Add(q, big.NewInt(1))
	}
	return q.Uint64()
}

// thresholdFor applies the legacy percentage-based slippage tolerance to
// the computed amount: a minimum acceptable output for exact-in swaps, a
// maximum acceptable input for exact-out swaps. The simulation itself is
// already bounded by the price-based sqrt price limit; this is the
// transaction-level number a caller places on-chain alongside it.
func thresholdFor(amountSpecifiedIsInput bool, amountIn, amountOut uint64, slippage fixedpoint.Slippage) uint64 {
	if slippage.Denominator == 0 {
		if amountSpecifiedIsInput {
			return amountOut
		}
		return amountIn
	}
	if amountSpecifiedIsInput {
		num := new(big.Int).Mul(new(big.Int).SetUint64(amountOut), new(big.Int).SetUint64(slippage.Denominator-minUint64(slippage.Numerator, slippage.Denominator)))
		return new(big.Int).Quo(num, new(big.Int).SetUint64(slippage.Denominator)).Uint64()
	}
	num := new(big.Int).Mul(new(big.Int).SetUint64(amountIn), new(big.Int).SetUint64(slippage.Denominator+slippage.Numerator))
	q, r := new(big.Int).QuoRem(num, new(big.Int).SetUint64(slippage.Denominator), new(big.Int))
	if r.Sign() != 0 {
		q.Add(q, big.NewInt(1))
	}
	return q.Uint64()
}

func minUint64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}
