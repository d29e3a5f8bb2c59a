// Package whirlpool defines the on-chain account shapes a concentrated
// liquidity pool is decoded from (component G: the wire-exact data model
// the rest of this module quotes against) and the byte-lexicographic mint
// ordering the protocol itself uses to assign token A/B.
package whirlpool

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/johnayoung/go-clamm-router/pkg/clammerr"
	"github.com/johnayoung/go-clamm-router/pkg/fixedpoint"
	"lukechampine.com/uint128"
)

// RewardInfo mirrors one of a pool's (up to three) liquidity mining reward
// slots. The router never schedules on emission rate, but it is part of
// the account layout and is kept so Decode/Encode round-trip the full
// account.
type RewardInfo struct {
	Mint                  solana.PublicKey
	Vault                 solana.PublicKey
	Authority             solana.PublicKey
	EmissionsPerSecondX64 uint128.Uint128
	GrowthGlobalX64       uint128.Uint128
}

// Pool is a decoded concentrated liquidity pool account.
type Pool struct {
	Address solana.PublicKey

	TickSpacing     uint16
	FeeRate         uint16 // parts per FeeRateDenominator taken from swap input
	ProtocolFeeRate uint16

	Liquidity        uint128.Uint128
	SqrtPrice        uint128.Uint128
	TickCurrentIndex int32

	ProtocolFeeOwedA uint64
	ProtocolFeeOwedB uint64

	TokenMintA       solana.PublicKey
	TokenVaultA      solana.PublicKey
	FeeGrowthGlobalA uint128.Uint128

	TokenMintB       solana.PublicKey
	TokenVaultB      solana.PublicKey
	FeeGrowthGlobalB uint128.Uint128

	RewardLastUpdatedTimestamp uint64
	RewardInfos                [3]RewardInfo
}

// NewPool validates and constructs a Pool from already-decoded fields, the
// path unit tests use to build fixtures without round-tripping bytes.
func NewPool(address, mintA, mintB solana.PublicKey, tickSpacing, feeRate uint16, liquidity, sqrtPrice uint128.Uint128, tickCurrentIndex int32) (*Pool, error) {
	if tickSpacing == 0 {
		return nil, fmt.Errorf("whirlpool: tick spacing must be positive")
	}
	if uint32(feeRate) >= fixedpoint.FeeRateDenominator {
		return nil, fmt.Errorf("whirlpool: fee rate %d exceeds denominator %d", feeRate, fixedpoint.FeeRateDenominator)
	}
	if mintA.Equals(mintB) {
		return nil, fmt.Errorf("whirlpool: token mints must differ")
	}
	if CompareMints(mintA, mintB) >= 0 {
		return nil, fmt.Errorf("whirlpool: token mint A must sort before token mint B")
	}
	if tickCurrentIndex < fixedpoint.MinTick || tickCurrentIndex > fixedpoint.MaxTick {
		return nil, fmt.Errorf("%w: current tick %d out of bounds", clammerr.ErrTickOutOfBounds, tickCurrentIndex)
	}

	return &Pool{
		Address:          address,
		TickSpacing:      tickSpacing,
		FeeRate:          feeRate,
		Liquidity:        liquidity,
		SqrtPrice:        sqrtPrice,
		TickCurrentIndex: tickCurrentIndex,
		TokenMintA:       mintA,
		TokenMintB:       mintB,
	}, nil
}

// CompareMints orders two mints the way the protocol itself does when
// assigning token A/B to a pool: byte-lexicographic over the 32-byte
// public key, matching solana.PublicKey's on-wire representation.
func CompareMints(a, b solana.PublicKey) int {
	for i := 0; i < len(a); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// OrientationForInput reports whether inputMint is token A in this pool
// (aToB=true) or token B (aToB=false), returning ErrInputMintMismatch if
// inputMint is neither.
func (p *Pool) OrientationForInput(inputMint solana.PublicKey) (aToB bool, err error) {
	switch {
	case inputMint.Equals(p.TokenMintA):
		return true, nil
	case inputMint.Equals(p.TokenMintB):
		return false, nil
	default:
		return false, fmt.Errorf("%w: mint %s is not in pool %s", clammerr.ErrInputMintMismatch, inputMint.String(), p.Address.String())
	}
}

// OutputMint returns the mint received when swapping in the given
// direction.
func (p *Pool) OutputMint(aToB bool) solana.PublicKey {
	if aToB {
		return p.TokenMintB
	}
	return p.TokenMintA
}

// InputMint returns the mint spent when swapping in the given direction.
func (p *Pool) InputMint(aToB bool) solana.PublicKey {
	if aToB {
		return p.TokenMintA
	}
	return p.TokenMintB
}

// FeeRatePPM returns the fee rate as parts per fixedpoint.FeeRateDenominator.
func (p *Pool) FeeRatePPM() uint32 {
	return uint32(p.FeeRate)
}
