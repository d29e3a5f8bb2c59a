package whirlpool

import (
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"lukechampine.com/uint128"
)

// accountSize is the byte length of a pool account, discriminator included.
const accountSize = 8 + 32 + 1 + 2 + 2 + 2 + 2 + 16 + 16 + 4 + 8 + 8 + 32 + 32 + 16 + 32 + 32 + 16 + 8 + 3*128

// Decode parses a raw pool account's bytes (Anchor's 8-byte discriminator
// included) into a Pool. The field layout follows the on-chain program's
// struct order exactly: discriminator, config key, bump, spacing, fee seed,
// fee rate, protocol fee rate, liquidity, sqrt price, current tick, owed
// protocol fees, then the two token sides and reward slots.
func Decode(address solana.PublicKey, data []byte) (*Pool, error) {
	if len(data) < accountSize {
		return nil, fmt.Errorf("whirlpool: account data too short: got %d bytes, want %d", len(data), accountSize)
	}
	buf := data[8:]
	off := 0

	readU16 := func() uint16 {
		v := binary.LittleEndian.Uint16(buf[off : off+2])
		off += 2
		return v
	}
	readU32 := func() uint32 {
		v := binary.LittleEndian.Uint32(buf[off : off+4])
		off += 4
		return v
	}
	readU64 := func() uint64 {
		v := binary.LittleEndian.Uint64(buf[off : off+8])
		off += 8
		return v
	}
	readU128 := func() uint128.Uint128 {
		v := uint128.FromBytes(buf[off : off+16])
		off += 16
		return v
	}
	readPubkey := func() solana.PublicKey {
		v := solana.PublicKeyFromBytes(buf[off : off+32])
		off += 32
		return v
	}
	skip := func(n int) { off += n }

	p := &Pool{Address: address}

	skip(32) // whirlpoolsConfig
	skip(1)  // bump
	p.TickSpacing = readU16()
	skip(2) // fee tier index seed
	p.FeeRate = readU16()
	p.ProtocolFeeRate = readU16()
	p.Liquidity = readU128()
	p.SqrtPrice = readU128()
	p.TickCurrentIndex = int32(readU32())
	p.ProtocolFeeOwedA = readU64()
	p.ProtocolFeeOwedB = readU64()

	p.TokenMintA = readPubkey()
	p.TokenVaultA = readPubkey()
	p.FeeGrowthGlobalA = readU128()

	p.TokenMintB = readPubkey()
	p.TokenVaultB = readPubkey()
	p.FeeGrowthGlobalB = readU128()

	p.RewardLastUpdatedTimestamp = readU64()
	for i := range p.RewardInfos {
		p.RewardInfos[i] = RewardInfo{
			Mint:                  readPubkey(),
			Vault:                 readPubkey(),
			Authority:             readPubkey(),
			EmissionsPerSecondX64: readU128(),
			GrowthGlobalX64:       readU128(),
		}
	}

	return p, nil
}

// Encode serializes a Pool back into account bytes in the same layout
// Decode reads, filling the skipped bookkeeping fields (config key, bump,
// fee tier seed) with zeros since the router never round-trips them.
func (p *Pool) Encode() []byte {
	buf := make([]byte, accountSize)
	off := 8 // leave discriminator zeroed

	writeU16 := func(v uint16) {
		binary.LittleEndian.PutUint16(buf[off:off+2], v)
		off += 2
	}
	writeU32 := func(v uint32) {
		binary.LittleEndian.PutUint32(buf[off:off+4], v)
		off += 4
	}
	writeU64 := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[off:off+8], v)
		off += 8
	}
	writeU128 := func(v uint128.Uint128) {
		copy(buf[off:off+16], v.Bytes())
		off += 16
	}
	writePubkey := func(v solana.PublicKey) {
		copy(buf[off:off+32], v[:])
		off += 32
	}
	skip := func(n int) { off += n }

	skip(32) // whirlpoolsConfig
	skip(1)  // bump
	writeU16(p.TickSpacing)
	skip(2) // fee tier index seed
	writeU16(p.FeeRate)
	writeU16(p.ProtocolFeeRate)
	writeU128(p.Liquidity)
	writeU128(p.SqrtPrice)
	writeU32(uint32(p.TickCurrentIndex))
	writeU64(p.ProtocolFeeOwedA)
	writeU64(p.ProtocolFeeOwedB)

	writePubkey(p.TokenMintA)
	writePubkey(p.TokenVaultA)
	writeU128(p.FeeGrowthGlobalA)

	writePubkey(p.TokenMintB)
	writePubkey(p.TokenVaultB)
	writeU128(p.FeeGrowthGlobalB)

	writeU64(p.RewardLastUpdatedTimestamp)
	for _, r := range p.RewardInfos {
		writePubkey(r.Mint)
		writePubkey(r.Vault)
		writePubkey(r.Authority)
		writeU128(r.EmissionsPerSecondX64)
		writeU128(r.GrowthGlobalX64)
	}

	return buf
}
