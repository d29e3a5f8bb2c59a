// Package concentrated_liquidity adapts this module's Whirlpool-style
// quoting primitives to the framework's generic LiquidityPool mechanism
// interface, so a concentrated liquidity position can be plugged into the
// same Calculate/AddLiquidity/RemoveLiquidity contract as any other AMM
// mechanism the framework models.
package concentrated_liquidity

import (
	"context"
	"errors"
	"fmt"

	"github.com/johnayoung/go-clamm-router/pkg/fixedpoint"
	"github.com/johnayoung/go-clamm-router/pkg/mechanisms"
	"github.com/johnayoung/go-clamm-router/pkg/position"
	"github.com/johnayoung/go-clamm-router/pkg/primitives"
	"github.com/johnayoung/go-clamm-router/pkg/whirlpool"
)

// ErrInvalidTickRange is returned when tick range is invalid.
var ErrInvalidTickRange = errors.New("invalid tick range: tickLower must be less than tickUpper")

// Pool implements mechanisms.LiquidityPool for one Whirlpool-style pool and
// a single managed position range. A caller managing several ranges on the
// same pool constructs one Pool value per range.
type Pool struct {
	pool            *whirlpool.Pool
	tickLower       int32
	tickUpper       int32
	defaultSlippage fixedpoint.Slippage
}

// NewPool wraps a decoded whirlpool.Pool and a managed tick range.
func NewPool(pool *whirlpool.Pool, tickLower, tickUpper int32, defaultSlippage fixedpoint.Slippage) (*Pool, error) {
	if tickLower >= tickUpper {
		return nil, ErrInvalidTickRange
	}
	return &Pool{pool: pool, tickLower: tickLower, tickUpper: tickUpper, defaultSlippage: defaultSlippage}, nil
}

// Mechanism identifies this as a liquidity pool mechanism.
func (p *Pool) Mechanism() mechanisms.MechanismType {
	return mechanisms.MechanismTypeLiquidityPool
}

// Venue identifies the protocol this pool belongs to.
func (p *Pool) Venue() string {
	return mechanisms.VenueOrcaWhirlpool
}

// Calculate reports the pool's current spot price and liquidity. params is
// accepted for interface compatibility but concentrated liquidity pools
// carry no additional calculation parameters beyond their own decoded
// state.
func (p *Pool) Calculate(ctx context.Context, params mechanisms.PoolParams) (mechanisms.PoolState, error) {
	spotPrice, err := primitives.PriceFromSqrtPriceX64(p.pool.SqrtPrice.Big(), fixedpoint.Q64Resolution)
	if err != nil {
		return mechanisms.PoolState{}, fmt.Errorf("computing spot price: %w", err)
	}
	liquidityAmount, err := primitives.NewAmountFromBigInt(p.pool.Liquidity.Big())
	if err != nil {
		return mechanisms.PoolState{}, fmt.Errorf("converting liquidity: %w", err)
	}

	return mechanisms.PoolState{
		SpotPrice:          spotPrice,
		Liquidity:          liquidityAmount,
		EffectiveLiquidity: liquidityAmount,
		AccumulatedFeesA:   primitives.ZeroAmount(),
		AccumulatedFeesB:   primitives.ZeroAmount(),
		Metadata: map[string]interface{}{
			"tick_current": p.pool.TickCurrentIndex,
			mechanisms.MetadataTickLower: p.tickLower,
			mechanisms.MetadataTickUpper: p.tickUpper,
			"fee_rate_ppm": p.pool.FeeRatePPM(),
		},
	}, nil
}

// AddLiquidity quotes depositing amounts into the pool's managed tick
// range, classifying the range Below/In/Above the current price and
// deriving liquidity from whichever side(s) amounts specifies.
func (p *Pool) AddLiquidity(ctx context.Context, amounts mechanisms.TokenAmounts) (mechanisms.PoolPosition, error) {
	amountA, err := amounts.AmountA.Uint64()
	if err != nil {
		return mechanisms.PoolPosition{}, fmt.Errorf("token A amount: %w", err)
	}
	amountB, err := amounts.AmountB.Uint64()
	if err != nil {
		return mechanisms.PoolPosition{}, fmt.Errorf("token B amount: %w", err)
	}
	if amountA == 0 && amountB == 0 {
		return mechanisms.PoolPosition{}, errors.New("at least one of token A or token B must be nonzero")
	}

	sqrtLower, err := fixedpoint.TickIndexToSqrtPriceX64(p.tickLower)
	if err != nil {
		return mechanisms.PoolPosition{}, err
	}
	sqrtUpper, err := fixedpoint.TickIndexToSqrtPriceX64(p.tickUpper)
	if err != nil {
		return mechanisms.PoolPosition{}, err
	}

	quote, err := position.QuoteAddLiquidity(p.pool.SqrtPrice, sqrtLower, sqrtUpper, amountA, amountB, amountA > 0, amountB > 0)
	if err != nil {
		return mechanisms.PoolPosition{}, err
	}

	depositedA, err := primitives.NewAmountFromUint64(quote.TokenA)
	if err != nil {
		return mechanisms.PoolPosition{}, err
	}
	depositedB, err := primitives.NewAmountFromUint64(quote.TokenB)
	if err != nil {
		return mechanisms.PoolPosition{}, err
	}
	liquidityAmount, err := primitives.NewAmountFromBigInt(quote.Liquidity.Big())
	if err != nil {
		return mechanisms.PoolPosition{}, err
	}

	return mechanisms.PoolPosition{
		PoolID:    p.pool.Address.String(),
		Liquidity: liquidityAmount,
		TokensDeposited: mechanisms.TokenAmounts{
			AmountA: depositedA,
			AmountB: depositedB,
		},
		Metadata: map[string]interface{}{
			mechanisms.MetadataTickLower: p.tickLower,
			mechanisms.MetadataTickUpper: p.tickUpper,
			"classification":             quote.Classified.String(),
		},
	}, nil
}

// RemoveLiquidity computes the token amounts a position's liquidity
// resolves to at the pool's current price, rounding down since this is an
// estimate of what a withdrawal would return.
func (p *Pool) RemoveLiquidity(ctx context.Context, pos mechanisms.PoolPosition) (mechanisms.TokenAmounts, error) {
	tickLower, tickUpper, ok := tickRangeFromMetadata(pos.Metadata)
	if !ok {
		tickLower, tickUpper = p.tickLower, p.tickUpper
	}

	liquidityBig, err := pos.Liquidity.BigInt()
	if err != nil {
		return mechanisms.TokenAmounts{}, fmt.Errorf("position liquidity: %w", err)
	}
	liquidity, err := fixedpoint.ToU128(liquidityBig)
	if err != nil {
		return mechanisms.TokenAmounts{}, fmt.Errorf("position liquidity: %w", err)
	}

	sqrtLower, err := fixedpoint.TickIndexToSqrtPriceX64(tickLower)
	if err != nil {
		return mechanisms.TokenAmounts{}, err
	}
	sqrtUpper, err := fixedpoint.TickIndexToSqrtPriceX64(tickUpper)
	if err != nil {
		return mechanisms.TokenAmounts{}, err
	}

	tokenA, tokenB, err := position.TokensForLiquidity(p.pool.SqrtPrice, sqrtLower, sqrtUpper, liquidity, false)
	if err != nil {
		return mechanisms.TokenAmounts{}, err
	}

	amountA, err := primitives.NewAmountFromUint64(tokenA)
	if err != nil {
		return mechanisms.TokenAmounts{}, err
	}
	amountB, err := primitives.NewAmountFromUint64(tokenB)
	if err != nil {
		return mechanisms.TokenAmounts{}, err
	}

	return mechanisms.TokenAmounts{AmountA: amountA, AmountB: amountB}, nil
}

func tickRangeFromMetadata(metadata map[string]interface{}) (int32, int32, bool) {
	lower, ok := metadata[mechanisms.MetadataTickLower].(int32)
	if !ok {
		return 0, 0, false
	}
	upper, ok := metadata[mechanisms.MetadataTickUpper].(int32)
	if !ok {
		return 0, 0, false
	}
	return lower, upper, true
}
