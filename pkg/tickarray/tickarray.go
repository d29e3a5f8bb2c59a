// Package tickarray implements component C: the dense tick-array data
// layout pools use to store initialized ticks, and the navigation logic a
// swap needs to walk from one initialized tick to the next across however
// many arrays have been loaded.
package tickarray

import (
	"math/big"

	"github.com/johnayoung/go-clamm-router/pkg/fixedpoint"
)

// Size is the number of tick slots packed into a single on-chain tick array
// account.
const Size = fixedpoint.TickArraySize

// Tick is a single initialized (or uninitialized) tick slot. LiquidityNet is
// signed: crossing the tick left-to-right (increasing tick index) adds
// LiquidityNet to pool liquidity, crossing it right-to-left subtracts it.
type Tick struct {
	Initialized    bool
	LiquidityNet   *big.Int
	LiquidityGross *big.Int
}

// TickArray is Size consecutive tick slots starting at StartTickIndex, which
// is always a multiple of TickSpacing*Size.
type TickArray struct {
	StartTickIndex int32
	TickSpacing    int32
	Ticks          [Size]Tick
}

// offset returns the slot index within the array for tickIndex, or false if
// tickIndex falls outside [StartTickIndex, StartTickIndex+Size*TickSpacing).
func (a *TickArray) offset(tickIndex int32) (int, bool) {
	if a.TickSpacing <= 0 {
		return 0, false
	}
	delta := tickIndex - a.StartTickIndex
	if delta < 0 {
		return 0, false
	}
	if delta%a.TickSpacing != 0 {
		return 0, false
	}
	idx := int(delta / a.TickSpacing)
	if idx >= Size {
		return 0, false
	}
	return idx, true
}

// TickAt returns the tick slot for tickIndex within this array, if present.
func (a *TickArray) TickAt(tickIndex int32) (Tick, bool) {
	idx, ok := a.offset(tickIndex)
	if !ok {
		return Tick{}, false
	}
	return a.Ticks[idx], true
}

// Contains reports whether tickIndex falls within this array's range,
// regardless of whether that slot is initialized.
func (a *TickArray) Contains(tickIndex int32) bool {
	_, ok := a.offset(tickIndex)
	return ok
}

// LastTickIndex returns the highest tick index addressable by this array.
func (a *TickArray) LastTickIndex() int32 {
	return a.StartTickIndex + (int32(Size)-1)*a.TickSpacing
}
