package position

import (
	"github.com/johnayoung/go-clamm-router/pkg/clammerr"
	"github.com/johnayoung/go-clamm-router/pkg/fixedpoint"
	"lukechampine.com/uint128"
)

// AddLiquidityQuote is the result of converting one or two deposited token
// amounts into the liquidity they support, together with the actual token
// amounts that liquidity consumes (which can be less than what was offered,
// since only one side binds in the Below/Above classifications and the
// smaller implied liquidity binds In-range).
type AddLiquidityQuote struct {
	Liquidity  uint128.Uint128
	TokenA     uint64
	TokenB     uint64
	Classified Classification
}

// QuoteAddLiquidity dispatches on the position's classification relative to
// sqrtPCurrent and derives liquidity from whichever side(s) the caller
// supplies. Pass wantA=false (or wantB=false) when that side's amount is not
// a constraint, e.g. a single-sided input-token quote that only bounds
// token A.
//
//   - Below:  only token A is meaningful; liquidity = GetLiquidityFromTokenA
//     over the full [lower, upper] range.
//   - Above:  only token B is meaningful; liquidity = GetLiquidityFromTokenB
//     over the full [lower, upper] range.
//   - In:     liquidity is bound by token A over [current, upper] and by
//     token B over [lower, current]; the smaller of the two (when both
//     sides are supplied) determines the deposit.
func QuoteAddLiquidity(sqrtPCurrent, sqrtPLower, sqrtPUpper uint128.Uint128, amountA, amountB uint64, wantA, wantB bool) (AddLiquidityQuote, error) {
	class := ClassifyBySqrtPrice(sqrtPCurrent, sqrtPLower, sqrtPUpper)

	switch class {
	case Below:
		if !wantA {
			return AddLiquidityQuote{}, clammerr.ErrZeroLiquidity
		}
		liquidity, err := GetLiquidityFromTokenA(sqrtPLower, sqrtPUpper, amountA)
		if err != nil {
			return AddLiquidityQuote{}, err
		}
		tokenA, err := fixedpoint.GetAmountADelta(sqrtPLower, sqrtPUpper, liquidity, true)
		if err != nil {
			return AddLiquidityQuote{}, err
		}
		return AddLiquidityQuote{Liquidity: liquidity, TokenA: tokenA, TokenB: 0, Classified: class}, nil

	case Above:
		if !wantB {
			return AddLiquidityQuote{}, clammerr.ErrZeroLiquidity
		}
		liquidity, err := GetLiquidityFromTokenB(sqrtPLower, sqrtPUpper, amountB)
		if err != nil {
			return AddLiquidityQuote{}, err
		}
		tokenB, err := fixedpoint.GetAmountBDelta(sqrtPLower, sqrtPUpper, liquidity, true)
		if err != nil {
			return AddLiquidityQuote{}, err
		}
		return AddLiquidityQuote{Liquidity: liquidity, TokenA: 0, TokenB: tokenB, Classified: class}, nil

	default: // In
		var liquidityFromA, liquidityFromB uint128.Uint128
		var haveA, haveB bool

		if wantA {
			l, err := GetLiquidityFromTokenA(sqrtPCurrent, sqrtPUpper, amountA)
			if err != nil {
				return AddLiquidityQuote{}, err
			}
			liquidityFromA, haveA = l, true
		}
		if wantB {
			l, err := GetLiquidityFromTokenB(sqrtPLower, sqrtPCurrent, amountB)
			if err != nil {
				return AddLiquidityQuote{}, err
			}
			liquidityFromB, haveB = l, true
		}

		var liquidity uint128.Uint128
		switch {
		case haveA && haveB:
			if liquidityFromA.Cmp(liquidityFromB) < 0 {
				liquidity = liquidityFromA
			} else {
				liquidity = liquidityFromB
			}
		case haveA:
			liquidity = liquidityFromA
		case haveB:
			liquidity = liquidityFromB
		default:
			return AddLiquidityQuote{}, clammerr.ErrZeroLiquidity
		}
		if liquidity.IsZero() {
			return AddLiquidityQuote{}, clammerr.ErrZeroLiquidity
		}

		tokenA, err := fixedpoint.GetAmountADelta(sqrtPCurrent, sqrtPUpper, liquidity, true)
		if err != nil {
			return AddLiquidityQuote{}, err
		}
		tokenB, err := fixedpoint.GetAmountBDelta(sqrtPLower, sqrtPCurrent, liquidity, true)
		if err != nil {
			return AddLiquidityQuote{}, err
		}
		return AddLiquidityQuote{Liquidity: liquidity, TokenA: tokenA, TokenB: tokenB, Classified: class}, nil
	}
}

// TokensForLiquidity computes the token A/B amounts a fixed liquidity value
// occupies at a given current price, using the same Below/In/Above
// dispatch as QuoteAddLiquidity but without deriving liquidity. Callers use
// this to re-evaluate a deposit's token requirements at a slipped price
// bound, holding the liquidity already quoted at the nominal price fixed.
func TokensForLiquidity(sqrtPCurrent, sqrtPLower, sqrtPUpper, liquidity uint128.Uint128, roundUp bool) (tokenA, tokenB uint64, err error) {
	switch ClassifyBySqrtPrice(sqrtPCurrent, sqrtPLower, sqrtPUpper) {
	case Below:
		tokenA, err = fixedpoint.GetAmountADelta(sqrtPLower, sqrtPUpper, liquidity, roundUp)
		return tokenA, 0, err
	case Above:
		tokenB, err = fixedpoint.GetAmountBDelta(sqrtPLower, sqrtPUpper, liquidity, roundUp)
		return 0, tokenB, err
	default:
		tokenA, err = fixedpoint.GetAmountADelta(sqrtPCurrent, sqrtPUpper, liquidity, roundUp)
		if err != nil {
			return 0, 0, err
		}
		tokenB, err = fixedpoint.GetAmountBDelta(sqrtPLower, sqrtPCurrent, liquidity, roundUp)
		if err != nil {
			return 0, 0, err
		}
		return tokenA, tokenB, nil
	}
}
