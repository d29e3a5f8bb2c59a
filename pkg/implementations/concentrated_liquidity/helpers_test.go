package concentrated_liquidity_test

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/johnayoung/go-clamm-router/pkg/primitives"
	"github.com/johnayoung/go-clamm-router/pkg/whirlpool"
	"lukechampine.com/uint128"
)

func whirlpoolNewPool(tokenA, tokenB solana.PublicKey, feeRate uint16, liquidity, sqrtPrice uint128.Uint128, tickCurrent int32) (*whirlpool.Pool, error) {
	return whirlpool.NewPool(solana.PublicKey{9}, tokenA, tokenB, 8, feeRate, liquidity, sqrtPrice, tickCurrent)
}

func mechAmount(t *testing.T, s string) (primitives.Amount, error) {
	t.Helper()
	dec, err := primitives.NewDecimalFromString(s)
	if err != nil {
		t.Fatalf("decimal %q: %v", s, err)
	}
	a, err := primitives.NewAmount(dec)
	if err != nil {
		t.Fatalf("amount %q: %v", s, err)
	}
	return a, nil
}
