package tickarray

import (
	"sort"

	"github.com/johnayoung/go-clamm-router/pkg/clammerr"
)

// Index locates a tick slot by which loaded array it falls in and its
// offset within that array, mirroring the (array, offset) addressing the
// on-chain program uses for a tick index.
type Index struct {
	ArrayIndex  int
	OffsetIndex int
}

// Sequence is an ordered, caller-loaded run of tick arrays for one pool,
// used to walk from the current tick to the next initialized tick during a
// swap. Arrays need not be contiguous or cover the whole tick range: gaps
// simply mean NextInitializedTick reports ErrInsufficientTickArrays once the
// walk runs off the loaded edge without crossing an initialized tick.
type Sequence struct {
	arrays []*TickArray
}

// NewSequence builds a Sequence from arrays in any order; they are sorted
// ascending by StartTickIndex internally.
func NewSequence(arrays []*TickArray) *Sequence {
	sorted := make([]*TickArray, len(arrays))
	copy(sorted, arrays)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartTickIndex < sorted[j].StartTickIndex
	})
	return &Sequence{arrays: sorted}
}

// arrayFor returns the index into s.arrays containing tickIndex, or -1.
func (s *Sequence) arrayFor(tickIndex int32) int {
	for i, a := range s.arrays {
		if a.Contains(tickIndex) {
			return i
		}
	}
	return -1
}

// NextInitializedTick walks from currentTickIndex toward lower ticks
// (aToB=true) or higher ticks (aToB=false) and returns the first
// initialized tick encountered. currentTickIndex itself is included in the
// search for aToB (a swap can land exactly on an initialized tick and must
// cross it), and excluded for !aToB in line with the half-open tick
// convention (a position's upper tick is exclusive of its own range).
//
// It returns clammerr.ErrInsufficientTickArrays when the walk reaches the
// edge of the loaded arrays without crossing an initialized tick, signaling
// the caller needs to fetch and append another array before continuing.
func (s *Sequence) NextInitializedTick(currentTickIndex int32, aToB bool) (int32, Tick, error) {
	if len(s.arrays) == 0 {
		return 0, Tick{}, clammerr.ErrInsufficientTickArrays
	}

	arrIdx := s.arrayFor(currentTickIndex)
	if arrIdx == -1 {
		arrIdx = s.nearestArray(currentTickIndex, aToB)
		if arrIdx == -1 {
			return 0, Tick{}, clammerr.ErrInsufficientTickArrays
		}
	}

	if aToB {
		return s.walkDown(arrIdx, currentTickIndex)
	}
	return s.walkUp(arrIdx, currentTickIndex)
}

func (s *Sequence) nearestArray(tickIndex int32, aToB bool) int {
	if aToB {
		for i := len(s.arrays) - 1; i >= 0; i-- {
			if s.arrays[i].StartTickIndex <= tickIndex {
				return i
			}
		}
		return -1
	}
	for i := 0; i < len(s.arrays); i++ {
		if s.arrays[i].LastTickIndex() >= tickIndex {
			return i
		}
	}
	return -1
}

func (s *Sequence) walkDown(arrIdx int, fromTick int32) (int32, Tick, error) {
	for arrIdx >= 0 {
		arr := s.arrays[arrIdx]
		spacing := arr.TickSpacing
		start := fromTick
		if start > arr.LastTickIndex() {
			start = arr.LastTickIndex()
		} else if !arr.Contains(start) {
			// Off this array's slot grid: step down to the slot below fromTick.
			start -= (start - arr.StartTickIndex) % spacing
		}
		for t := start; t >= arr.StartTickIndex; t -= spacing {
			tick, ok := arr.TickAt(t)
			if ok && tick.Initialized {
				return t, tick, nil
			}
		}
		arrIdx--
		if arrIdx >= 0 {
			fromTick = s.arrays[arrIdx].LastTickIndex()
		}
	}
	return 0, Tick{}, clammerr.ErrInsufficientTickArrays
}

func (s *Sequence) walkUp(arrIdx int, fromTick int32) (int32, Tick, error) {
	for arrIdx < len(s.arrays) {
		arr := s.arrays[arrIdx]
		spacing := arr.TickSpacing
		start := fromTick + spacing
		if start < arr.StartTickIndex {
			start = arr.StartTickIndex
		} else if !arr.Contains(start) {
			// Off the slot grid or past the array's end: step down to the
			// first slot above fromTick (past the end, the loop below is skipped).
			start -= (start - arr.StartTickIndex) % spacing
		}
		for t := start; t <= arr.LastTickIndex(); t += spacing {
			tick, ok := arr.TickAt(t)
			if ok && tick.Initialized {
				return t, tick, nil
			}
		}
		arrIdx++
		if arrIdx < len(s.arrays) {
			fromTick = s.arrays[arrIdx].StartTickIndex - spacing
		}
	}
	return 0, Tick{}, clammerr.ErrInsufficientTickArrays
}
