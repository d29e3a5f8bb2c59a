package whirlpool

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/gagliardetto/solana-go"
	"github.com/johnayoung/go-clamm-router/pkg/tickarray"
)

// tickSlotSize is initialized(1) + liquidityNet(16, signed) +
// liquidityGross(16) + two fee-growth-outside accumulators(16 each) + one
// reserved 16-byte slot, matching the on-chain Tick struct; the last three
// fields are skipped since nothing in this module consumes them.
const tickSlotSize = 1 + 16 + 16 + 16 + 16 + 16

// tickArrayAccountSize is the byte length of a tick array account,
// discriminator included: 8 + whirlpool key(32) + startTickIndex(4) +
// 88 tick slots.
const tickArrayAccountSize = 8 + 32 + 4 + tickarray.Size*tickSlotSize

// TickArrayAccount is a decoded tick array account together with the
// address it was fetched from.
type TickArrayAccount struct {
	Address solana.PublicKey
	Array   *tickarray.TickArray
}

// DecodeTickArray parses a raw tick array account's bytes into a
// tickarray.TickArray. tickSpacing comes from the owning pool, since the
// account itself does not carry it.
func DecodeTickArray(address solana.PublicKey, data []byte, tickSpacing int32) (*TickArrayAccount, error) {
	if len(data) < tickArrayAccountSize {
		return nil, fmt.Errorf("whirlpool: tick array data too short: got %d bytes, want %d", len(data), tickArrayAccountSize)
	}
	buf := data[8:]
	off := 0

	startTickIndex := int32(binary.LittleEndian.Uint32(buf[off : off+4]))
	off += 4
	off += 32 // owning whirlpool pubkey, not needed once arrays are grouped by pool

	arr := &tickarray.TickArray{StartTickIndex: startTickIndex, TickSpacing: tickSpacing}

	for i := 0; i < tickarray.Size; i++ {
		initialized := buf[off] != 0
		off++

		liquidityNet := decodeI128(buf[off : off+16])
		off += 16
		liquidityGross := new(big.Int).SetBytes(reverse(buf[off : off+16]))
		off += 16
		off += 16 // feeGrowthOutsideA
		off += 16 // feeGrowthOutsideB
		off += 16 // reserved/padding

		arr.Ticks[i] = tickarray.Tick{
			Initialized:    initialized,
			LiquidityNet:   liquidityNet,
			LiquidityGross: liquidityGross,
		}
	}

	return &TickArrayAccount{Address: address, Array: arr}, nil
}

// Encode serializes a tick array account back into bytes in the same
// layout DecodeTickArray reads.
func (t *TickArrayAccount) Encode() []byte {
	buf := make([]byte, tickArrayAccountSize)
	off := 8

	binary.LittleEndian.PutUint32(buf[off:off+4], uint32(t.Array.StartTickIndex))
	off += 4
	off += 32 // whirlpool key left zeroed, unused by decode consumers

	for i := 0; i < tickarray.Size; i++ {
		tick := t.Array.Ticks[i]
		if tick.Initialized {
			buf[off] = 1
		}
		off++

		copy(buf[off:off+16], encodeI128(tick.LiquidityNet))
		off += 16

		gross := tick.LiquidityGross
		if gross == nil {
			gross = big.NewInt(0)
		}
		copy(buf[off:off+16], reverse(leftPad(gross.Bytes(), 16)))
		off += 16

		off += 16 // feeGrowthOutsideA
		off += 16 // feeGrowthOutsideB
		off += 16 // reserved/padding
	}

	return buf
}

// decodeI128 reads a little-endian two's-complement signed 128-bit integer.
func decodeI128(b []byte) *big.Int {
	be := reverse(b)
	v := new(big.Int).SetBytes(be)
	if be[0]&0x80 != 0 {
		// Negative: v - 2^128.
		mod := new(big.Int).Lsh(big.NewInt(1), 128)
		v.Sub(v, mod)
	}
	return v
}

// encodeI128 writes v as a little-endian two's-complement signed 128-bit
// integer.
func encodeI128(v *big.Int) []byte {
	if v == nil {
		v = big.NewInt(0)
	}
	n := new(big.Int).Set(v)
	if n.Sign() < 0 {
		mod := new(big.Int).Lsh(big.NewInt(1), 128)
		n.Add(n, mod)
	}
	be := leftPad(n.Bytes(), 16)
	return reverse(be)
}

func reverse(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}

func leftPad(b []byte, size int) []byte {
	if len(b) >= size {
		return b[len(b)-size:]
	}
	out := make([]byte, size)
	copy(out[size-len(b):], b)
	return out
}
