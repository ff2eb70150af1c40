package ecs

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArenaRelease(t *testing.T) {
	t.Run("released slots are reused with a new generation", func(t *testing.T) {
		var a arena
		index := a.alloc()
		gen := a.at(index).generation
		a.at(index).state = slotLive

		a.release(index)
		assert.Equal(t, index, a.alloc())
		assert.Equal(t, gen+1, a.at(index).generation)
	})

	t.Run("slot at the last generation is retired", func(t *testing.T) {
		var a arena
		index := a.alloc()
		s := a.at(index)
		s.state = slotLive
		s.generation = math.MaxUint32 - 1

		a.release(index)
		assert.Equal(t, slotRetired, s.state)
		assert.Equal(t, uint32(math.MaxUint32), s.generation, "generation does not wrap")
		assert.Empty(t, a.freeSlots)

		a.release(index)
		assert.Empty(t, a.freeSlots, "releasing a retired slot is a no-op")

		assert.NotEqual(t, index, a.alloc())
	})

	t.Run("compact keeps retired slots", func(t *testing.T) {
		var a arena
		first := a.alloc()
		last := a.alloc()
		a.at(first).state = slotLive
		s := a.at(last)
		s.state = slotLive
		s.generation = math.MaxUint32 - 1

		a.release(last)
		a.compact()
		require.Equal(t, 2, a.len())
		assert.Equal(t, slotRetired, a.at(last).state)
		assert.Equal(t, 2, a.alloc(), "new slots go past the retired one")
	})
}

func TestRegistryRetiredSlot(t *testing.T) {
	r := NewRegistry()
	id, err := r.Add(NewEntity(KindHazard))
	require.NoError(t, err)
	r.Commit()

	r.slots.at(int(id.Index())).generation = math.MaxUint32 - 1
	stale := NewEntityId(math.MaxUint32-1, id.Index())
	r.Remove(stale)
	r.Commit()

	next, err := r.Add(NewEntity(KindHazard))
	require.NoError(t, err)
	r.Commit()
	assert.NotEqual(t, id.Index(), next.Index())
	assert.False(t, r.Contains(stale))
	assert.True(t, r.Contains(next))
}
