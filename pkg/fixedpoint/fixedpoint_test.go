package fixedpoint

import (
	"math/big"
	"testing"

	"lukechampine.com/uint128"
)

func TestTickIndexToSqrtPriceX64Zero(t *testing.T) {
	got, err := TickIndexToSqrtPriceX64(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := uint128.FromBig(q64One)
	if !got.Equals(want) {
		t.Errorf("TickIndexToSqrtPriceX64(0) = %s, want %s", got.String(), want.String())
	}

	tick, err := SqrtPriceX64ToTickIndex(want)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tick != 0 {
		t.Errorf("SqrtPriceX64ToTickIndex(2^64) = %d, want 0", tick)
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []int32{
		MinTick, MinTick + 1, -443636 + 1000, -128, -64, -1, 0, 1, 64, 128,
		1000, 64000, 443635, MaxTick,
	}
	for _, tick := range tests {
		sp, err := TickIndexToSqrtPriceX64(tick)
		if err != nil {
			t.Fatalf("tick %d: %v", tick, err)
		}
		got, err := SqrtPriceX64ToTickIndex(sp)
		if err != nil {
			t.Fatalf("tick %d: %v", tick, err)
		}
		if got != tick {
			t.Errorf("round-trip(%d) = %d", tick, got)
		}
	}
}

func TestMonotonic(t *testing.T) {
	prev, err := TickIndexToSqrtPriceX64(MinTick)
	if err != nil {
		t.Fatal(err)
	}
	for tick := MinTick + 997; tick < MaxTick; tick += 997 {
		cur, err := TickIndexToSqrtPriceX64(tick)
		if err != nil {
			t.Fatal(err)
		}
		if cur.Cmp(prev) <= 0 {
			t.Fatalf("sqrt price not increasing at tick %d", tick)
		}
		prev = cur
	}
}

func TestTickOutOfBounds(t *testing.T) {
	if _, err := TickIndexToSqrtPriceX64(MaxTick + 1); err == nil {
		t.Error("expected error for tick beyond MaxTick")
	}
	if _, err := TickIndexToSqrtPriceX64(MinTick - 1); err == nil {
		t.Error("expected error for tick below MinTick")
	}
}

func TestAmountDeltaRoundingDirection(t *testing.T) {
	lo, err := TickIndexToSqrtPriceX64(-64)
	if err != nil {
		t.Fatal(err)
	}
	hi, err := TickIndexToSqrtPriceX64(64)
	if err != nil {
		t.Fatal(err)
	}
	liquidity := uint128.From64(1_000_000_000)

	down, err := GetAmountADelta(lo, hi, liquidity, false)
	if err != nil {
		t.Fatal(err)
	}
	up, err := GetAmountADelta(lo, hi, liquidity, true)
	if err != nil {
		t.Fatal(err)
	}
	if up < down {
		t.Errorf("round-up amount %d should be >= round-down amount %d", up, down)
	}

	bDown, err := GetAmountBDelta(lo, hi, liquidity, false)
	if err != nil {
		t.Fatal(err)
	}
	bUp, err := GetAmountBDelta(lo, hi, liquidity, true)
	if err != nil {
		t.Fatal(err)
	}
	if bUp < bDown {
		t.Errorf("round-up amount %d should be >= round-down amount %d", bUp, bDown)
	}
}

func TestGetNextSqrtPriceFromAmountInDirection(t *testing.T) {
	sqrtP, err := TickIndexToSqrtPriceX64(0)
	if err != nil {
		t.Fatal(err)
	}
	liquidity := uint128.From64(5_000_000_000)
	const amountIn = uint64(1_000_000)

	nextAToB, err := GetNextSqrtPriceFromAmountIn(sqrtP, liquidity, amountIn, true)
	if err != nil {
		t.Fatal(err)
	}
	if nextAToB.Cmp(sqrtP) >= 0 {
		t.Errorf("aToB swap should decrease sqrt price")
	}

	nextBToA, err := GetNextSqrtPriceFromAmountIn(sqrtP, liquidity, amountIn, false)
	if err != nil {
		t.Fatal(err)
	}
	if nextBToA.Cmp(sqrtP) <= 0 {
		t.Errorf("bToA swap should increase sqrt price")
	}
}

func TestGetSlippageBoundForSqrtPriceEnvelope(t *testing.T) {
	sqrtP, err := TickIndexToSqrtPriceX64(1000)
	if err != nil {
		t.Fatal(err)
	}
	lower, upper, err := GetSlippageBoundForSqrtPrice(sqrtP, Slippage{Numerator: 1, Denominator: 100})
	if err != nil {
		t.Fatal(err)
	}
	if lower.SqrtPriceX64.Cmp(sqrtP) > 0 {
		t.Errorf("lower bound %s should be <= current %s", lower.SqrtPriceX64.String(), sqrtP.String())
	}
	if upper.SqrtPriceX64.Cmp(sqrtP) < 0 {
		t.Errorf("upper bound %s should be >= current %s", upper.SqrtPriceX64.String(), sqrtP.String())
	}
	if lower.TickIndex > upper.TickIndex {
		t.Errorf("lower tick %d should be <= upper tick %d", lower.TickIndex, upper.TickIndex)
	}
}

func TestToU128Overflow(t *testing.T) {
	tooBig := new(big.Int).Lsh(big.NewInt(1), 129)
	if _, err := toU128(tooBig); err == nil {
		t.Error("expected overflow error")
	}
}
