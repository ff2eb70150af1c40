package ecs_test

import (
	"testing"

	"github.com/plus3/leapfrog/ecs"
	"github.com/plus3/leapfrog/gfx"
	"github.com/stretchr/testify/require"
)

// Common test behaviors
type Crate struct {
	Weight int
}

func (Crate) Kind() ecs.Kind { return ecs.KindDecoration }

type Counter struct {
	Ticks int
}

func (*Counter) Kind() ecs.Kind { return ecs.KindPlatform }

func (c *Counter) Think(e *ecs.Entity, frame *ecs.UpdateFrame) error {
	c.Ticks++
	return nil
}

func newEntityAt(kind ecs.Kind, x, y float64) *ecs.Entity {
	e := ecs.NewEntity(kind)
	e.Position = gfx.Vec2{X: x, Y: y}
	e.Size = gfx.Size{W: 1, H: 1}
	return e
}

// spawnLive adds n entities of kind and commits so they are live.
func spawnLive(t testing.TB, r *ecs.Registry, kind ecs.Kind, n int) []ecs.EntityId {
	t.Helper()
	ids := make([]ecs.EntityId, 0, n)
	for i := 0; i < n; i++ {
		id, err := r.Add(newEntityAt(kind, float64(i), 0))
		require.NoError(t, err)
		ids = append(ids, id)
	}
	r.Commit()
	return ids
}

func countAll(r *ecs.Registry) int {
	n := 0
	for range r.All() {
		n++
	}
	return n
}
