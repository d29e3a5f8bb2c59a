package whirlpool

import (
	"math/big"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/johnayoung/go-clamm-router/pkg/tickarray"
	"lukechampine.com/uint128"
)

var oneShiftedBy64 = uint128.FromBig(new(big.Int).Lsh(big.NewInt(1), 64))

func TestCompareMints(t *testing.T) {
	a := solana.PublicKey{}
	b := solana.PublicKey{}
	b[31] = 1
	if CompareMints(a, b) >= 0 {
		t.Error("expected a < b")
	}
	if CompareMints(b, a) <= 0 {
		t.Error("expected b > a")
	}
	if CompareMints(a, a) != 0 {
		t.Error("expected equal mints to compare equal")
	}
}

func TestNewPoolRejectsMisorderedMints(t *testing.T) {
	a := solana.PublicKey{}
	b := solana.PublicKey{}
	b[31] = 1
	// b sorts after a, so passing (b, a) as (mintA, mintB) must be rejected.
	if _, err := NewPool(solana.PublicKey{}, b, a, 64, 300, uint128.From64(1), uint128.From64(1<<32), 0); err == nil {
		t.Error("expected error constructing a pool with misordered mints")
	}
}

func TestPoolEncodeDecodeRoundTrip(t *testing.T) {
	mintA := solana.PublicKey{}
	mintB := solana.PublicKey{}
	mintB[31] = 1

	original := &Pool{
		Address:          solana.PublicKey{2},
		TickSpacing:      64,
		FeeRate:          300,
		ProtocolFeeRate:  100,
		Liquidity:        uint128.From64(123456789),
		SqrtPrice:        oneShiftedBy64,
		TickCurrentIndex: -1234,
		ProtocolFeeOwedA: 10,
		ProtocolFeeOwedB: 20,
		TokenMintA:       mintA,
		TokenVaultA:      solana.PublicKey{3},
		FeeGrowthGlobalA: uint128.From64(1),
		TokenMintB:       mintB,
		TokenVaultB:      solana.PublicKey{4},
		FeeGrowthGlobalB: uint128.From64(2),
	}

	encoded := original.Encode()
	decoded, err := Decode(original.Address, encoded)
	if err != nil {
		t.Fatal(err)
	}

	if decoded.TickSpacing != original.TickSpacing || decoded.FeeRate != original.FeeRate {
		t.Errorf("tick spacing/fee rate mismatch: got %+v", decoded)
	}
	if !decoded.Liquidity.Equals(original.Liquidity) {
		t.Errorf("liquidity mismatch: got %s want %s", decoded.Liquidity, original.Liquidity)
	}
	if !decoded.SqrtPrice.Equals(original.SqrtPrice) {
		t.Errorf("sqrt price mismatch: got %s want %s", decoded.SqrtPrice, original.SqrtPrice)
	}
	if decoded.TickCurrentIndex != original.TickCurrentIndex {
		t.Errorf("tick current mismatch: got %d want %d", decoded.TickCurrentIndex, original.TickCurrentIndex)
	}
	if !decoded.TokenMintA.Equals(original.TokenMintA) || !decoded.TokenMintB.Equals(original.TokenMintB) {
		t.Error("mint mismatch")
	}
}

func TestTickArrayEncodeDecodeRoundTrip(t *testing.T) {
	arr := &tickarray.TickArray{StartTickIndex: -704, TickSpacing: 8}
	arr.Ticks[0] = tickarray.Tick{Initialized: true, LiquidityNet: big.NewInt(-500), LiquidityGross: big.NewInt(500)}
	arr.Ticks[10] = tickarray.Tick{Initialized: true, LiquidityNet: big.NewInt(1_000_000), LiquidityGross: big.NewInt(1_000_000)}

	account := &TickArrayAccount{Address: solana.PublicKey{9}, Array: arr}
	encoded := account.Encode()

	decoded, err := DecodeTickArray(account.Address, encoded, 8)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Array.StartTickIndex != arr.StartTickIndex {
		t.Errorf("start tick mismatch: got %d want %d", decoded.Array.StartTickIndex, arr.StartTickIndex)
	}
	if !decoded.Array.Ticks[0].Initialized || decoded.Array.Ticks[0].LiquidityNet.Cmp(big.NewInt(-500)) != 0 {
		t.Errorf("tick 0 mismatch: %+v", decoded.Array.Ticks[0])
	}
	if !decoded.Array.Ticks[10].Initialized || decoded.Array.Ticks[10].LiquidityNet.Cmp(big.NewInt(1_000_000)) != 0 {
		t.Errorf("tick 10 mismatch: %+v", decoded.Array.Ticks[10])
	}
	if decoded.Array.Ticks[1].Initialized {
		t.Error("tick 1 should not be initialized")
	}
}
