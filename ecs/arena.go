package ecs

import "math"

const (
	arenaBlockSize = 64
)

type slotState uint8

const (
	slotFree slotState = iota
	slotPending
	slotLive
	slotDead
	// slotRetired slots have used up their generations and are never handed
	// out again.
	slotRetired
)

type slot struct {
	generation uint32
	state      slotState
	entity     *Entity
}

// arena stores entity slots in fixed size blocks. Blocks are allocated
// individually so slot addresses never move while the arena grows.
// Indices remain stable - released slots go on a free list and their
// generation is bumped so ids minted for the previous occupant stop matching.
type arena struct {
	blocks    []*[arenaBlockSize]slot
	freeSlots []int
	nextIndex int
	// genFloor is the lowest generation a brand new slot may start at. It is
	// raised when trailing slots are trimmed so their old ids never resolve.
	genFloor uint32
}

// alloc returns the index of a free slot, reusing released slots first.
func (a *arena) alloc() int {
	if len(a.freeSlots) > 0 {
		index := a.freeSlots[len(a.freeSlots)-1]
		a.freeSlots = a.freeSlots[:len(a.freeSlots)-1]
		return index
	}

	index := a.nextIndex
	a.nextIndex++

	blockIdx := index / arenaBlockSize
	slotIdx := index % arenaBlockSize

	if blockIdx >= len(a.blocks) {
		a.blocks = append(a.blocks, new([arenaBlockSize]slot))
	}

	a.blocks[blockIdx][slotIdx] = slot{generation: max(a.genFloor, 1)}
	return index
}

// at returns the slot at index, or nil if the index was never allocated.
func (a *arena) at(index int) *slot {
	if index < 0 || index >= a.nextIndex {
		return nil
	}
	return &a.blocks[index/arenaBlockSize][index%arenaBlockSize]
}

// release frees the slot at index for reuse. A slot whose generation reaches
// the maximum is retired instead, so generations never wrap and an old id can
// never match a later occupant.
func (a *arena) release(index int) {
	s := a.at(index)
	if s == nil || s.state == slotFree || s.state == slotRetired {
		return
	}
	s.entity = nil
	s.generation++
	if s.generation == math.MaxUint32 {
		s.state = slotRetired
		return
	}
	s.state = slotFree
	a.freeSlots = append(a.freeSlots, index)
}

func (a *arena) len() int {
	return a.nextIndex
}

// compact trims free slots from the end of the arena and drops blocks that no
// longer hold any slot. Live and retired slots never move.
func (a *arena) compact() {
	trimmed := false
	for a.nextIndex > 0 {
		s := a.at(a.nextIndex - 1)
		if s.state != slotFree {
			break
		}
		a.genFloor = max(a.genFloor, s.generation)
		a.nextIndex--
		trimmed = true
	}
	if !trimmed {
		return
	}

	kept := a.freeSlots[:0]
	for _, index := range a.freeSlots {
		if index < a.nextIndex {
			kept = append(kept, index)
		}
	}
	a.freeSlots = kept

	numBlocks := (a.nextIndex + arenaBlockSize - 1) / arenaBlockSize
	for i := numBlocks; i < len(a.blocks); i++ {
		a.blocks[i] = nil
	}
	a.blocks = a.blocks[:numBlocks]
}
