package systems_test

import (
	"testing"
	"time"

	"github.com/plus3/leapfrog/assets"
	"github.com/plus3/leapfrog/config"
	"github.com/plus3/leapfrog/ecs"
	"github.com/plus3/leapfrog/gfx"
	"github.com/stretchr/testify/require"
)

func frameOf(r *ecs.Registry, dt time.Duration, target gfx.Target) *ecs.UpdateFrame {
	return &ecs.UpdateFrame{
		Elapsed:   dt,
		DeltaTime: dt.Seconds(),
		Number:    1,
		Registry:  r,
		Target:    target,
	}
}

func addLive(t testing.TB, r *ecs.Registry, entities ...*ecs.Entity) {
	t.Helper()
	for _, e := range entities {
		_, err := r.Add(e)
		require.NoError(t, err)
	}
	r.Commit()
}

func entity(kind ecs.Kind, x, y, w, h float64) *ecs.Entity {
	e := ecs.NewEntity(kind)
	e.Position = gfx.Vec2{X: x, Y: y}
	e.Size = gfx.Size{W: w, H: h}
	return e
}

func defaultGameplay(t testing.TB) config.Gameplay {
	t.Helper()
	g, err := config.New().Gameplay()
	require.NoError(t, err)
	return g
}

type recordingPlayer struct {
	played []assets.SoundHandle
}

func (p *recordingPlayer) Play(h assets.SoundHandle) {
	p.played = append(p.played, h)
}
