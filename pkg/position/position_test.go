package position

import (
	"testing"

	"github.com/johnayoung/go-clamm-router/pkg/fixedpoint"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name                          string
		current, lower, upper         int32
		want                          Classification
	}{
		{"below", -100, -50, 50, Below},
		{"at lower is in", -50, -50, 50, In},
		{"interior", 0, -50, 50, In},
		{"at upper is above", 50, -50, 50, Above},
		{"above", 100, -50, 50, Above},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.current, tt.lower, tt.upper); got != tt.want {
				t.Errorf("Classify(%d,%d,%d) = %v, want %v", tt.current, tt.lower, tt.upper, got, tt.want)
			}
		})
	}
}

func TestSnapTickToSpacing(t *testing.T) {
	tests := []struct {
		tick, spacing int32
		roundUp       bool
		want          int32
	}{
		{100, 64, true, 128},
		{100, 64, false, 64},
		{-100, 64, true, -64},
		{-100, 64, false, -128},
		{128, 64, true, 128},
		{128, 64, false, 128},
	}
	for _, tt := range tests {
		if got := SnapTickToSpacing(tt.tick, tt.spacing, tt.roundUp); got != tt.want {
			t.Errorf("SnapTickToSpacing(%d,%d,%v) = %d, want %d", tt.tick, tt.spacing, tt.roundUp, got, tt.want)
		}
	}
}

func TestGetLiquidityFromTokenARoundTrip(t *testing.T) {
	lo, err := fixedpoint.TickIndexToSqrtPriceX64(-1000)
	if err != nil {
		t.Fatal(err)
	}
	hi, err := fixedpoint.TickIndexToSqrtPriceX64(1000)
	if err != nil {
		t.Fatal(err)
	}

	const amountA = uint64(5_000_000_000)
	liquidity, err := GetLiquidityFromTokenA(lo, hi, amountA)
	if err != nil {
		t.Fatal(err)
	}
	if liquidity.IsZero() {
		t.Fatal("expected nonzero liquidity")
	}

	back, err := fixedpoint.GetAmountADelta(lo, hi, liquidity, false)
	if err != nil {
		t.Fatal(err)
	}
	// Rounding down through the inverse should never exceed the original
	// deposit and should stay close to it.
	if back > amountA {
		t.Errorf("round-trip amount %d exceeds input %d", back, amountA)
	}
	if amountA-back > amountA/1000+2 {
		t.Errorf("round-trip amount %d drifted too far from input %d", back, amountA)
	}
}

func TestGetLiquidityFromTokenBRoundTrip(t *testing.T) {
	lo, err := fixedpoint.TickIndexToSqrtPriceX64(-1000)
	if err != nil {
		t.Fatal(err)
	}
	hi, err := fixedpoint.TickIndexToSqrtPriceX64(1000)
	if err != nil {
		t.Fatal(err)
	}

	const amountB = uint64(5_000_000_000)
	liquidity, err := GetLiquidityFromTokenB(lo, hi, amountB)
	if err != nil {
		t.Fatal(err)
	}

	back, err := fixedpoint.GetAmountBDelta(lo, hi, liquidity, false)
	if err != nil {
		t.Fatal(err)
	}
	if back > amountB {
		t.Errorf("round-trip amount %d exceeds input %d", back, amountB)
	}
}

func TestQuoteAddLiquidityBelow(t *testing.T) {
	current, err := fixedpoint.TickIndexToSqrtPriceX64(-2000)
	if err != nil {
		t.Fatal(err)
	}
	lower, err := fixedpoint.TickIndexToSqrtPriceX64(-1000)
	if err != nil {
		t.Fatal(err)
	}
	upper, err := fixedpoint.TickIndexToSqrtPriceX64(1000)
	if err != nil {
		t.Fatal(err)
	}

	quote, err := QuoteAddLiquidity(current, lower, upper, 1_000_000, 0, true, false)
	if err != nil {
		t.Fatal(err)
	}
	if quote.Classified != Below {
		t.Errorf("expected Below classification, got %v", quote.Classified)
	}
	if quote.TokenB != 0 {
		t.Errorf("expected zero token B for a Below position, got %d", quote.TokenB)
	}
	if quote.TokenA == 0 {
		t.Error("expected nonzero token A")
	}
}

func TestQuoteAddLiquidityAbove(t *testing.T) {
	current, err := fixedpoint.TickIndexToSqrtPriceX64(2000)
	if err != nil {
		t.Fatal(err)
	}
	lower, err := fixedpoint.TickIndexToSqrtPriceX64(-1000)
	if err != nil {
		t.Fatal(err)
	}
	upper, err := fixedpoint.TickIndexToSqrtPriceX64(1000)
	if err != nil {
		t.Fatal(err)
	}

	quote, err := QuoteAddLiquidity(current, lower, upper, 0, 1_000_000, false, true)
	if err != nil {
		t.Fatal(err)
	}
	if quote.Classified != Above {
		t.Errorf("expected Above classification, got %v", quote.Classified)
	}
	if quote.TokenA != 0 {
		t.Errorf("expected zero token A for an Above position, got %d", quote.TokenA)
	}
	if quote.TokenB == 0 {
		t.Error("expected nonzero token B")
	}
}

func TestQuoteAddLiquidityInRangeBothSides(t *testing.T) {
	current, err := fixedpoint.TickIndexToSqrtPriceX64(0)
	if err != nil {
		t.Fatal(err)
	}
	lower, err := fixedpoint.TickIndexToSqrtPriceX64(-1000)
	if err != nil {
		t.Fatal(err)
	}
	upper, err := fixedpoint.TickIndexToSqrtPriceX64(1000)
	if err != nil {
		t.Fatal(err)
	}

	quote, err := QuoteAddLiquidity(current, lower, upper, 1_000_000, 1_000_000, true, true)
	if err != nil {
		t.Fatal(err)
	}
	if quote.Classified != In {
		t.Errorf("expected In classification, got %v", quote.Classified)
	}
	if quote.TokenA == 0 || quote.TokenB == 0 {
		t.Errorf("expected both sides nonzero, got A=%d B=%d", quote.TokenA, quote.TokenB)
	}
}

func TestQuoteAddLiquidityWrongSideIsZeroLiquidity(t *testing.T) {
	current, err := fixedpoint.TickIndexToSqrtPriceX64(-2000)
	if err != nil {
		t.Fatal(err)
	}
	lower, err := fixedpoint.TickIndexToSqrtPriceX64(-1000)
	if err != nil {
		t.Fatal(err)
	}
	upper, err := fixedpoint.TickIndexToSqrtPriceX64(1000)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := QuoteAddLiquidity(current, lower, upper, 0, 1_000_000, false, true); err == nil {
		t.Error("expected error supplying only token B to a Below position")
	}
}
