package quote

import (
	"math/big"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/johnayoung/go-clamm-router/pkg/fixedpoint"
	"github.com/johnayoung/go-clamm-router/pkg/tickarray"
	"github.com/johnayoung/go-clamm-router/pkg/whirlpool"
	"lukechampine.com/uint128"
)

// testPool builds a pool centered at tick 0 with two wide tick arrays whose
// only initialized ticks are far boundary markers with zero net liquidity
// change, so a swap of modest size never crosses a liquidity-changing tick.
func testPool(t *testing.T, feeRatePPM uint16) (*whirlpool.Pool, *tickarray.Sequence) {
	t.Helper()
	const spacing = int32(8)

	sqrtPrice, err := fixedpoint.TickIndexToSqrtPriceX64(0)
	if err != nil {
		t.Fatal(err)
	}
	mintA := solana.PublicKey{1}
	mintB := solana.PublicKey{2}
	pool, err := whirlpool.NewPool(solana.PublicKey{9}, mintA, mintB, uint16(spacing), feeRatePPM, uint128.From64(1_000_000_000_000), sqrtPrice, 0)
	if err != nil {
		t.Fatal(err)
	}

	lower := &tickarray.TickArray{StartTickIndex: -704, TickSpacing: spacing}
	lower.Ticks[0] = tickarray.Tick{Initialized: true, LiquidityNet: big.NewInt(0), LiquidityGross: big.NewInt(0)}

	upper := &tickarray.TickArray{StartTickIndex: 0, TickSpacing: spacing}
	upper.Ticks[tickarray.Size-1] = tickarray.Tick{Initialized: true, LiquidityNet: big.NewInt(0), LiquidityGross: big.NewInt(0)}

	seq := tickarray.NewSequence([]*tickarray.TickArray{lower, upper})
	return pool, seq
}

func TestComputeSwapQuoteExactInAToB(t *testing.T) {
	pool, seq := testPool(t, 3000) // 0.3%

	quote, err := ComputeSwapQuote(SwapParams{
		Pool:                   pool,
		Ticks:                  seq,
		AToB:                   true,
		AmountSpecifiedIsInput: true,
		Amount:                 1_000_000,
		Slippage:               fixedpoint.Slippage{Numerator: 1, Denominator: 100},
	})
	if err != nil {
		t.Fatal(err)
	}
	if quote.AmountOut == 0 {
		t.Error("expected nonzero amount out")
	}
	if quote.FeeAmount == 0 {
		t.Error("expected nonzero fee")
	}
	if quote.SqrtPriceAfter.Cmp(pool.SqrtPrice) >= 0 {
		t.Error("aToB swap should decrease sqrt price")
	}
	if quote.AmountIn+quote.FeeAmount > 1_000_000 {
		t.Errorf("amount in (%d) plus fee (%d) should not exceed input budget", quote.AmountIn, quote.FeeAmount)
	}
	if quote.OtherAmountThreshold == 0 || quote.OtherAmountThreshold > quote.AmountOut {
		t.Errorf("otherAmountThreshold %d should be a positive value <= amountOut %d", quote.OtherAmountThreshold, quote.AmountOut)
	}
}

func TestComputeSwapQuoteExactOutBToA(t *testing.T) {
	pool, seq := testPool(t, 3000)

	quote, err := ComputeSwapQuote(SwapParams{
		Pool:                   pool,
		Ticks:                  seq,
		AToB:                   false,
		AmountSpecifiedIsInput: false,
		Amount:                 1_000_000,
		Slippage:               fixedpoint.Slippage{Numerator: 1, Denominator: 100},
	})
	if err != nil {
		t.Fatal(err)
	}
	if quote.AmountOut != 1_000_000 {
		t.Errorf("exact-out swap should deliver exactly the requested amount, got %d", quote.AmountOut)
	}
	if quote.AmountIn == 0 {
		t.Error("expected nonzero amount in")
	}
	if quote.SqrtPriceAfter.Cmp(pool.SqrtPrice) <= 0 {
		t.Error("bToA swap should increase sqrt price")
	}
	if quote.OtherAmountThreshold < quote.AmountIn {
		t.Errorf("otherAmountThreshold %d should be >= amountIn %d for an exact-out quote", quote.OtherAmountThreshold, quote.AmountIn)
	}
}

// TestComputeSwapQuoteExactFeeSplit pins the documented worked example: a
// 0.3% pool, 1,000,000 A in, price staying inside a single tick array.
// ceil(1,000,000*3000/997000) = 3010, leaving 996,990 A to actually cross
// the curve.
func TestComputeSwapQuoteExactFeeSplit(t *testing.T) {
	pool, seq := testPool(t, 3000)

	quote, err := ComputeSwapQuote(SwapParams{
		Pool:                   pool,
		Ticks:                  seq,
		AToB:                   true,
		AmountSpecifiedIsInput: true,
		Amount:                 1_000_000,
	})
	if err != nil {
		t.Fatal(err)
	}
	if quote.FeeAmount != 3010 {
		t.Errorf("FeeAmount = %d, want 3010", quote.FeeAmount)
	}
	if quote.AmountIn != 996_990 {
		t.Errorf("AmountIn = %d, want 996990", quote.AmountIn)
	}
	if quote.AmountIn+quote.FeeAmount != 1_000_000 {
		t.Errorf("AmountIn+FeeAmount = %d, want the full 1,000,000 budget consumed", quote.AmountIn+quote.FeeAmount)
	}

	wantOut, err := fixedpoint.GetAmountBDelta(pool.SqrtPrice, quote.SqrtPriceAfter, pool.Liquidity, false)
	if err != nil {
		t.Fatal(err)
	}
	if quote.AmountOut != wantOut {
		t.Errorf("AmountOut = %d, want %d (delta formula on the realized 996,990 A)", quote.AmountOut, wantOut)
	}
}

func TestComputeSwapQuoteZeroLiquidityPool(t *testing.T) {
	pool, seq := testPool(t, 3000)
	pool.Liquidity = uint128.Uint128{}

	_, err := ComputeSwapQuote(SwapParams{
		Pool:                   pool,
		Ticks:                  seq,
		AToB:                   true,
		AmountSpecifiedIsInput: true,
		Amount:                 1000,
	})
	if err == nil {
		t.Error("expected an error quoting against a zero-liquidity pool")
	}
}

func TestComputeSwapQuoteZeroAmountIsNoOp(t *testing.T) {
	pool, seq := testPool(t, 3000)
	quote, err := ComputeSwapQuote(SwapParams{Pool: pool, Ticks: seq, AToB: true, AmountSpecifiedIsInput: true, Amount: 0})
	if err != nil {
		t.Fatal(err)
	}
	if quote.AmountIn != 0 || quote.AmountOut != 0 {
		t.Error("expected a zero-amount quote to be a no-op")
	}
}

func TestFeeOnInputAmount(t *testing.T) {
	tests := []struct {
		amount     uint64
		feeRatePPM uint32
		want       uint64
	}{
		{1_000_000, 3000, 3010},
		{0, 3000, 0},
		{1_000_000, 0, 0},
		{997_000, 3000, 3000}, // divides evenly: no rounding up needed
	}
	for _, tt := range tests {
		if got := feeOnInputAmount(tt.amount, tt.feeRatePPM); got != tt.want {
			t.Errorf("feeOnInputAmount(%d, %d) = %d, want %d", tt.amount, tt.feeRatePPM, got, tt.want)
		}
	}
}

func TestFeeOnOutputAmount(t *testing.T) {
	tests := []struct {
		amountIn   uint64
		feeRatePPM uint32
		want       uint64
	}{
		{1_000_000, 3000, 3000}, // divides evenly
		{0, 3000, 0},
		{1_000_000, 0, 0},
		{1, 3000, 1}, // ceil(1*3000/1_000_000) rounds up to 1
	}
	for _, tt := range tests {
		if got := feeOnOutputAmount(tt.amountIn, tt.feeRatePPM); got != tt.want {
			t.Errorf("feeOnOutputAmount(%d, %d) = %d, want %d", tt.amountIn, tt.feeRatePPM, got, tt.want)
		}
	}
}
