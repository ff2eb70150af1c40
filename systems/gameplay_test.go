package systems_test

import (
	"testing"
	"time"

	"github.com/plus3/leapfrog/config"
	"github.com/plus3/leapfrog/ecs"
	"github.com/plus3/leapfrog/gfx"
	"github.com/plus3/leapfrog/systems"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControl(t *testing.T) {
	keys := config.Keys{Left: []string{"A"}, Right: []string{"D"}, Jump: []string{"Space"}}

	setup := func(t *testing.T) (*ecs.Registry, *ecs.Entity, *systems.KeyboardInput, *systems.Control) {
		r := ecs.NewRegistry()
		player := entity(ecs.KindPlayer, 0, 0, 1, 1)
		addLive(t, r, player)

		input := systems.NewKeyboardInput()
		control := &systems.Control{Input: input, Bindings: systems.NewBindings(keys), RunSpeed: 10, JumpSpeed: 20}
		return r, player, input, control
	}

	t.Run("run", func(t *testing.T) {
		r, player, input, control := setup(t)
		frame := frameOf(r, 0, nil)

		input.SignalPressed("d")
		require.NoError(t, input.Execute(frame))
		require.NoError(t, control.Execute(frame))
		assert.Equal(t, 10.0, player.Velocity.X)

		input.SignalPressed("a")
		require.NoError(t, input.Execute(frame))
		require.NoError(t, control.Execute(frame))
		assert.Equal(t, 0.0, player.Velocity.X, "opposite keys cancel out")
	})

	t.Run("jump needs ground", func(t *testing.T) {
		r, player, input, control := setup(t)
		frame := frameOf(r, 0, nil)

		input.SignalPressed("space")
		require.NoError(t, input.Execute(frame))
		require.NoError(t, control.Execute(frame))
		assert.Equal(t, 0.0, player.Velocity.Y)
		assert.False(t, player.Events.Has(ecs.EventJumped))
	})

	t.Run("jump once per press", func(t *testing.T) {
		r, player, input, control := setup(t)
		frame := frameOf(r, 0, nil)
		player.Grounded = true

		input.SignalPressed("space")
		require.NoError(t, input.Execute(frame))
		require.NoError(t, control.Execute(frame))
		assert.Equal(t, -20.0, player.Velocity.Y)
		assert.True(t, player.Events.Has(ecs.EventJumped))
		assert.False(t, player.Grounded)

		player.Events = 0
		player.Grounded = true
		require.NoError(t, input.Execute(frame))
		require.NoError(t, control.Execute(frame))
		assert.False(t, player.Events.Has(ecs.EventJumped), "holding jump must not jump again")
	})

	t.Run("no player", func(t *testing.T) {
		control := &systems.Control{Input: systems.NewKeyboardInput()}
		assert.NoError(t, control.Execute(frameOf(ecs.NewRegistry(), 0, nil)))
	})
}

func TestPhysics(t *testing.T) {
	const dt = 100 * time.Millisecond

	t.Run("falls under gravity", func(t *testing.T) {
		r := ecs.NewRegistry()
		player := entity(ecs.KindPlayer, 0, 0, 1, 1)
		addLive(t, r, player)

		physics := &systems.Physics{Gravity: 10}
		require.NoError(t, physics.Execute(frameOf(r, dt, nil)))

		assert.InDelta(t, 1.0, player.Velocity.Y, 1e-9)
		assert.InDelta(t, 0.1, player.Position.Y, 1e-9)
		assert.False(t, player.Grounded)
	})

	t.Run("lands on platform from above", func(t *testing.T) {
		r := ecs.NewRegistry()
		player := entity(ecs.KindPlayer, 0, 0, 1, 1)
		player.Velocity.Y = 20
		platform := entity(ecs.KindPlatform, -5, 2, 10, 1)
		addLive(t, r, player, platform)

		physics := &systems.Physics{Gravity: 10}
		require.NoError(t, physics.Execute(frameOf(r, dt, nil)))

		assert.True(t, player.Grounded)
		assert.Equal(t, 1.0, player.Position.Y)
		assert.Equal(t, 0.0, player.Velocity.Y)
		assert.True(t, player.Events.Has(ecs.EventLanded))

		player.Events = 0
		require.NoError(t, physics.Execute(frameOf(r, dt, nil)))
		assert.True(t, player.Grounded, "standing still keeps the player grounded")
		assert.False(t, player.Events.Has(ecs.EventLanded), "landing is only raised once")
	})

	t.Run("passes through platform going up", func(t *testing.T) {
		r := ecs.NewRegistry()
		player := entity(ecs.KindPlayer, 0, 3, 1, 1)
		player.Velocity.Y = -20
		platform := entity(ecs.KindPlatform, -5, 2, 10, 1)
		addLive(t, r, player, platform)

		physics := &systems.Physics{Gravity: 10}
		require.NoError(t, physics.Execute(frameOf(r, dt, nil)))
		assert.False(t, player.Grounded)
		assert.Less(t, player.Position.Y, 3.0)
	})

	t.Run("hazard contact", func(t *testing.T) {
		r := ecs.NewRegistry()
		player := entity(ecs.KindPlayer, 0, 0, 2, 2)
		player.Behavior = &systems.Player{}
		hazard := entity(ecs.KindHazard, 1, 1, 1, 1)
		far := entity(ecs.KindHazard, 50, 50, 1, 1)
		addLive(t, r, player, hazard, far)

		physics := &systems.Physics{}
		require.NoError(t, physics.Execute(frameOf(r, dt, nil)))

		assert.True(t, player.Events.Has(ecs.EventHit))
		assert.Equal(t, 1, player.Behavior.(*systems.Player).Hits)
		assert.False(t, r.Contains(hazard.ID()))
		assert.True(t, r.Contains(far.ID()))
	})
}

func TestBehavior(t *testing.T) {
	r := ecs.NewRegistry()
	still := entity(ecs.KindPlatform, 10, 0, 5, 1)
	still.Behavior = &systems.Platform{Origin: still.Position}
	moving := entity(ecs.KindPlatform, 20, 0, 5, 1)
	moving.Behavior = &systems.Platform{Origin: moving.Position, Amplitude: 4, Period: 2}
	addLive(t, r, still, moving, entity(ecs.KindDecoration, 0, 0, 1, 1))

	var behavior systems.Behavior
	require.NoError(t, behavior.Execute(frameOf(r, 500*time.Millisecond, nil)))

	assert.Equal(t, 10.0, still.Position.X)
	assert.InDelta(t, 24.0, moving.Position.X, 1e-9, "quarter period puts it at full amplitude")
	assert.InDelta(t, 8.0, moving.Velocity.X, 1e-9)
}

type failingThinker struct{}

func (failingThinker) Kind() ecs.Kind { return ecs.KindDecoration }

func (failingThinker) Think(e *ecs.Entity, frame *ecs.UpdateFrame) error {
	return assert.AnError
}

func TestBehaviorError(t *testing.T) {
	r := ecs.NewRegistry()
	e := entity(ecs.KindDecoration, 0, 0, 1, 1)
	e.Behavior = failingThinker{}
	addLive(t, r, e)

	var behavior systems.Behavior
	err := behavior.Execute(frameOf(r, 0, nil))
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), e.ID().String())
}

func TestCamera(t *testing.T) {
	r := ecs.NewRegistry()
	player := entity(ecs.KindPlayer, 10, 0, 1, 1)
	addLive(t, r, player)

	camera := systems.NewCamera(gfx.Size{W: 90, H: 90})
	frame := frameOf(r, 0, nil)

	require.NoError(t, camera.Execute(frame))
	assert.Equal(t, 0.0, camera.Origin.X, "no scrolling before the lead point")

	player.Position.X = 100
	require.NoError(t, camera.Execute(frame))
	assert.InDelta(t, 70.0, camera.Origin.X, 1e-9)
	assert.Equal(t, 100.0, camera.Distance)

	player.Position.X = 50
	require.NoError(t, camera.Execute(frame))
	assert.InDelta(t, 70.0, camera.Origin.X, 1e-9, "camera never scrolls back")
	assert.Equal(t, 100.0, camera.Distance)
}
