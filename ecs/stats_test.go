package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryStats(t *testing.T) {
	r := NewRegistry()

	stats := r.CollectStats()
	assert.Equal(t, RegistryStats{ByKind: map[Kind]int{}}, stats)

	var ids []EntityId
	for _, kind := range []Kind{KindPlayer, KindPlatform, KindPlatform, KindHazard} {
		id, err := r.Add(NewEntity(kind))
		require.NoError(t, err)
		ids = append(ids, id)
	}

	stats = r.CollectStats()
	assert.Equal(t, 0, stats.Live)
	assert.Equal(t, 4, stats.Pending)
	assert.Equal(t, 4, stats.Buffered)
	assert.Empty(t, stats.ByKind)

	r.Commit()
	r.Remove(ids[3])

	stats = r.CollectStats()
	assert.Equal(t, 3, stats.Live)
	assert.Equal(t, 1, stats.Dead)
	assert.Equal(t, arenaBlockSize, stats.Capacity)
	assert.Equal(t, map[Kind]int{KindPlayer: 1, KindPlatform: 2}, stats.ByKind)

	r.Commit()
	stats = r.CollectStats()
	assert.Equal(t, 0, stats.Dead)
	assert.Equal(t, 1, stats.Free)
	assert.Equal(t, len(r.slots.freeSlots), stats.Free)
}
