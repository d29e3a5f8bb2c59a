package quote

import (
	"math/big"

	"github.com/gagliardetto/solana-go"
	"github.com/johnayoung/go-clamm-router/pkg/fixedpoint"
	"github.com/johnayoung/go-clamm-router/pkg/position"
	"github.com/johnayoung/go-clamm-router/pkg/whirlpool"
	"lukechampine.com/uint128"
)

// LiquidityQuote is the result of quoting a deposit into a position range:
// the liquidity it represents, the token amounts estimated at the pool's
// current price, and the worst-case token amounts a depositor should be
// prepared to provide given the requested slippage tolerance.
type LiquidityQuote struct {
	Liquidity uint128.Uint128
	TokenEstA uint64
	TokenEstB uint64
	TokenMaxA uint64
	TokenMaxB uint64
}

// IncreaseLiquidityQuoteByInputToken quotes a deposit bounded by a single
// input token amount: the other side of the position (if any, when the
// range straddles the current price) is derived, not specified. Token max
// amounts are computed by re-evaluating the quoted liquidity's token
// requirements at both ends of the price-based slippage bound and taking
// the larger of each side, per section 4.A's scale-the-price policy.
func IncreaseLiquidityQuoteByInputToken(pool *whirlpool.Pool, inputMint solana.PublicKey, inputAmount uint64, tickLower, tickUpper int32, slippage fixedpoint.Slippage) (*LiquidityQuote, error) {
	aToB, err := pool.OrientationForInput(inputMint)
	if err != nil {
		return nil, err
	}

	sqrtLower, err := fixedpoint.TickIndexToSqrtPriceX64(tickLower)
	if err != nil {
		return nil, err
	}
	sqrtUpper, err := fixedpoint.TickIndexToSqrtPriceX64(tickUpper)
	if err != nil {
		return nil, err
	}

	var amountA, amountB uint64
	if aToB {
		amountA = inputAmount
	} else {
		amountB = inputAmount
	}

	base, err := position.QuoteAddLiquidity(pool.SqrtPrice, sqrtLower, sqrtUpper, amountA, amountB, aToB, !aToB)
	if err != nil {
		return nil, err
	}

	return quoteWithSlippageBound(pool, base.Liquidity, sqrtLower, sqrtUpper, base.TokenA, base.TokenB, slippage)
}

// IncreaseLiquidityQuoteByLiquidity quotes the token amounts a caller-chosen
// liquidity value requires, at the current price and at the slippage
// bound.
func IncreaseLiquidityQuoteByLiquidity(pool *whirlpool.Pool, liquidity uint128.Uint128, tickLower, tickUpper int32, slippage fixedpoint.Slippage) (*LiquidityQuote, error) {
	sqrtLower, err := fixedpoint.TickIndexToSqrtPriceX64(tickLower)
	if err != nil {
		return nil, err
	}
	sqrtUpper, err := fixedpoint.TickIndexToSqrtPriceX64(tickUpper)
	if err != nil {
		return nil, err
	}

	tokenA, tokenB, err := position.TokensForLiquidity(pool.SqrtPrice, sqrtLower, sqrtUpper, liquidity, true)
	if err != nil {
		return nil, err
	}

	return quoteWithSlippageBound(pool, liquidity, sqrtLower, sqrtUpper, tokenA, tokenB, slippage)
}

func quoteWithSlippageBound(pool *whirlpool.Pool, liquidity uint128.Uint128, sqrtLower, sqrtUpper uint128.Uint128, tokenEstA, tokenEstB uint64, slippage fixedpoint.Slippage) (*LiquidityQuote, error) {
	lowerBound, upperBound, err := fixedpoint.GetSlippageBoundForSqrtPrice(pool.SqrtPrice, slippage)
	if err != nil {
		return nil, err
	}

	aAtLower, bAtLower, err := position.TokensForLiquidity(lowerBound.SqrtPriceX64, sqrtLower, sqrtUpper, liquidity, true)
	if err != nil {
		return nil, err
	}
	aAtUpper, bAtUpper, err := position.TokensForLiquidity(upperBound.SqrtPriceX64, sqrtLower, sqrtUpper, liquidity, true)
	if err != nil {
		return nil, err
	}

	return &LiquidityQuote{
		Liquidity: liquidity,
		TokenEstA: tokenEstA,
		TokenEstB: tokenEstB,
		TokenMaxA: maxUint64(aAtLower, aAtUpper),
		TokenMaxB: maxUint64(bAtLower, bAtUpper),
	}, nil
}

// LegacyLiquidityQuoteByInputToken reproduces the token-amount-percentage
// slippage style older integrators expect: TokenMax is simply
// TokenEst*(1+slippage) rather than re-evaluated at a slipped price.
//
// Deprecated: price-based slippage via IncreaseLiquidityQuoteByInputToken
// more faithfully bounds worst-case deposit cost; this entry point exists
// only for callers migrating off the older percentage convention.
func LegacyLiquidityQuoteByInputToken(pool *whirlpool.Pool, inputMint solana.PublicKey, inputAmount uint64, tickLower, tickUpper int32, slippage fixedpoint.Slippage) (*LiquidityQuote, error) {
	aToB, err := pool.OrientationForInput(inputMint)
	if err != nil {
		return nil, err
	}
	sqrtLower, err := fixedpoint.TickIndexToSqrtPriceX64(tickLower)
	if err != nil {
		return nil, err
	}
	sqrtUpper, err := fixedpoint.TickIndexToSqrtPriceX64(tickUpper)
	if err != nil {
		return nil, err
	}

	var amountA, amountB uint64
	if aToB {
		amountA = inputAmount
	} else {
		amountB = inputAmount
	}

	base, err := position.QuoteAddLiquidity(pool.SqrtPrice, sqrtLower, sqrtUpper, amountA, amountB, aToB, !aToB)
	if err != nil {
		return nil, err
	}

	return &LiquidityQuote{
		Liquidity: base.Liquidity,
		TokenEstA: base.TokenA,
		TokenEstB: base.TokenB,
		TokenMaxA: scaleUpByPercent(base.TokenA, slippage),
		TokenMaxB: scaleUpByPercent(base.TokenB, slippage),
	}, nil
}

func scaleUpByPercent(amount uint64, slippage fixedpoint.Slippage) uint64 {
	if slippage.Denominator == 0 {
		return amount
	}
	num := new(big.Int).Mul(new(big.Int).SetUint64(amount), new(big.Int).SetUint64(slippage.Denominator+slippage.Numerator))
	q, r := new(big.Int).QuoRem(num, new(big.Int).SetUint64(slippage.Denominator), new(big.Int))
	if r.Sign() != 0 {
		q.Add(q, big.NewInt(1))
	}
	return q.Uint64()
}

func maxUint64(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}
