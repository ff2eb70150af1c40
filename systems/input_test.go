package systems_test

import (
	"testing"

	"github.com/plus3/leapfrog/config"
	"github.com/plus3/leapfrog/ecs"
	"github.com/plus3/leapfrog/systems"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyboardInput(t *testing.T) {
	space := systems.ParseKey("Space")
	frame := frameOf(ecs.NewRegistry(), 0, nil)

	t.Run("edge is consumed once", func(t *testing.T) {
		input := systems.NewKeyboardInput()
		input.SignalPressed(space)

		require.NoError(t, input.Execute(frame))
		assert.True(t, input.JustPressed(space))
		assert.True(t, input.Held(space))
		assert.Len(t, input.Edges(), 1)

		require.NoError(t, input.Execute(frame))
		assert.False(t, input.JustPressed(space))
		assert.True(t, input.Held(space))
		assert.Empty(t, input.Edges())
	})

	t.Run("repeat press while held is ignored", func(t *testing.T) {
		input := systems.NewKeyboardInput()
		input.SignalPressed(space)
		require.NoError(t, input.Execute(frame))

		input.SignalPressed(space)
		require.NoError(t, input.Execute(frame))
		assert.False(t, input.JustPressed(space))
	})

	t.Run("release edge", func(t *testing.T) {
		input := systems.NewKeyboardInput()
		input.SignalPressed(space)
		require.NoError(t, input.Execute(frame))

		input.SignalReleased(space)
		assert.False(t, input.Held(space), "held state follows signals immediately")
		assert.False(t, input.JustReleased(space), "edges wait for the next update")

		require.NoError(t, input.Execute(frame))
		assert.True(t, input.JustReleased(space))
		assert.False(t, input.JustPressed(space))
	})

	t.Run("release without press", func(t *testing.T) {
		input := systems.NewKeyboardInput()
		input.SignalReleased(space)
		require.NoError(t, input.Execute(frame))
		assert.Empty(t, input.Edges())
	})

	t.Run("tap within one frame", func(t *testing.T) {
		input := systems.NewKeyboardInput()
		input.SignalPressed(space)
		input.SignalReleased(space)

		require.NoError(t, input.Execute(frame))
		assert.True(t, input.JustPressed(space))
		assert.True(t, input.JustReleased(space))
		assert.False(t, input.Held(space))
		assert.Equal(t, []systems.KeyEdge{
			{Key: space, Pressed: true},
			{Key: space, Pressed: false},
		}, input.Edges())
	})
}

func TestParseKey(t *testing.T) {
	assert.Equal(t, systems.Key("arrowleft"), systems.ParseKey(" ArrowLeft "))
	assert.Equal(t, systems.ParseKey("a"), systems.ParseKey("A"))
}

func TestBindings(t *testing.T) {
	bindings := systems.NewBindings(config.Keys{
		Left:  []string{"ArrowLeft", "A"},
		Right: []string{"ArrowRight"},
		Jump:  []string{"Space"},
	})
	input := systems.NewKeyboardInput()
	frame := frameOf(ecs.NewRegistry(), 0, nil)

	input.SignalPressed(systems.ParseKey("a"))
	require.NoError(t, input.Execute(frame))

	assert.True(t, bindings.Held(input, systems.ActionLeft))
	assert.True(t, bindings.JustPressed(input, systems.ActionLeft))
	assert.False(t, bindings.Held(input, systems.ActionRight))
	assert.False(t, bindings.JustPressed(input, systems.ActionJump))
}

type keyLog struct {
	pressed, released []systems.Key
}

func (l *keyLog) SignalKeyPressed(key systems.Key)  { l.pressed = append(l.pressed, key) }
func (l *keyLog) SignalKeyReleased(key systems.Key) { l.released = append(l.released, key) }

func TestKeyGate(t *testing.T) {
	right := systems.ParseKey("ArrowRight")

	t.Run("release while blocked", func(t *testing.T) {
		input := systems.NewKeyboardInput()
		blocked := false
		gate := systems.KeyGate{Sink: sinkFor(input), Blocked: func() bool { return blocked }}

		gate.SignalKeyPressed(right)
		require.True(t, input.Held(right))
		blocked = true
		gate.SignalKeyReleased(right)

		assert.False(t, input.Held(right), "a key released while blocked is not left held")
	})

	t.Run("press while blocked is dropped", func(t *testing.T) {
		log := &keyLog{}
		gate := systems.KeyGate{Sink: log, Blocked: func() bool { return true }}

		gate.SignalKeyPressed(right)
		gate.SignalKeyReleased(right)
		assert.Empty(t, log.pressed)
		assert.Equal(t, []systems.Key{right}, log.released)
	})

	t.Run("nil blocked forwards everything", func(t *testing.T) {
		log := &keyLog{}
		gate := systems.KeyGate{Sink: log}

		gate.SignalKeyPressed(right)
		assert.Equal(t, []systems.Key{right}, log.pressed)
	})
}

// inputSink adapts a KeyboardInput to KeySink the way the game model does.
type inputSink struct{ input *systems.KeyboardInput }

func (s inputSink) SignalKeyPressed(key systems.Key)  { s.input.SignalPressed(key) }
func (s inputSink) SignalKeyReleased(key systems.Key) { s.input.SignalReleased(key) }

func sinkFor(input *systems.KeyboardInput) systems.KeySink {
	return inputSink{input: input}
}
