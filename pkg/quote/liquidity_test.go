package quote

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/johnayoung/go-clamm-router/pkg/fixedpoint"
)

func TestIncreaseLiquidityQuoteByInputTokenInRange(t *testing.T) {
	pool, _ := testPool(t, 3000)
	slippage := fixedpoint.Slippage{Numerator: 1, Denominator: 100}

	quote, err := IncreaseLiquidityQuoteByInputToken(pool, pool.TokenMintA, 1_000_000, -1000, 1000, slippage)
	if err != nil {
		t.Fatal(err)
	}
	if quote.Liquidity.IsZero() {
		t.Error("expected nonzero liquidity")
	}
	if quote.TokenMaxA < quote.TokenEstA {
		t.Errorf("TokenMaxA (%d) should be >= TokenEstA (%d)", quote.TokenMaxA, quote.TokenEstA)
	}
	if quote.TokenMaxB < quote.TokenEstB {
		t.Errorf("TokenMaxB (%d) should be >= TokenEstB (%d)", quote.TokenMaxB, quote.TokenEstB)
	}
}

func TestIncreaseLiquidityQuoteByInputTokenBelowRange(t *testing.T) {
	pool, _ := testPool(t, 3000)
	slippage := fixedpoint.Slippage{Numerator: 1, Denominator: 100}

	quote, err := IncreaseLiquidityQuoteByInputToken(pool, pool.TokenMintA, 1_000_000, 1000, 2000, slippage)
	if err != nil {
		t.Fatal(err)
	}
	if quote.TokenEstB != 0 {
		t.Errorf("expected zero token B estimate below range, got %d", quote.TokenEstB)
	}
}

func TestIncreaseLiquidityQuoteByLiquidityMatchesEstimate(t *testing.T) {
	pool, _ := testPool(t, 3000)
	slippage := fixedpoint.Slippage{Numerator: 1, Denominator: 100}

	byInput, err := IncreaseLiquidityQuoteByInputToken(pool, pool.TokenMintA, 1_000_000, -1000, 1000, slippage)
	if err != nil {
		t.Fatal(err)
	}

	byLiquidity, err := IncreaseLiquidityQuoteByLiquidity(pool, byInput.Liquidity, -1000, 1000, slippage)
	if err != nil {
		t.Fatal(err)
	}
	if byLiquidity.TokenEstA != byInput.TokenEstA || byLiquidity.TokenEstB != byInput.TokenEstB {
		t.Errorf("expected matching estimates, got %+v vs %+v", byLiquidity, byInput)
	}
}

func TestLegacyLiquidityQuoteByInputTokenAppliesFlatPercentage(t *testing.T) {
	pool, _ := testPool(t, 3000)
	slippage := fixedpoint.Slippage{Numerator: 1, Denominator: 100}

	quote, err := LegacyLiquidityQuoteByInputToken(pool, pool.TokenMintA, 1_000_000, -1000, 1000, slippage)
	if err != nil {
		t.Fatal(err)
	}
	if quote.TokenMaxA <= quote.TokenEstA {
		t.Errorf("expected TokenMaxA > TokenEstA under a positive slippage tolerance, got %d vs %d", quote.TokenMaxA, quote.TokenEstA)
	}
}

func TestIncreaseLiquidityQuoteByInputTokenRejectsWrongMint(t *testing.T) {
	pool, _ := testPool(t, 3000)
	slippage := fixedpoint.Slippage{Numerator: 1, Denominator: 100}
	wrongMint := solana.PublicKey{99}

	if _, err := IncreaseLiquidityQuoteByInputToken(pool, wrongMint, 1_000_000, -1000, 1000, slippage); err == nil {
		t.Error("expected an error quoting with a mint that is not in the pool")
	}
}
