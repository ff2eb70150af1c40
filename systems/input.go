package systems

import (
	"strings"

	"github.com/plus3/leapfrog/config"
	"github.com/plus3/leapfrog/ecs"
)

// Key names a keyboard key. Names follow ebiten's key names and are stored in
// lower case, so "ArrowLeft" and "arrowleft" are the same key.
type Key string

// ParseKey normalises a key name.
func ParseKey(name string) Key {
	return Key(strings.ToLower(strings.TrimSpace(name)))
}

// KeyEdge is a transition of a single key.
type KeyEdge struct {
	Key     Key
	Pressed bool
}

// KeyboardInput tracks which keys are held and which changed state since the
// previous frame.
//
// Each key moves between released and pressed. SignalPressed and
// SignalReleased only record real transitions, so key repeat from the host is
// ignored. Execute publishes the transitions recorded since the previous
// frame as the current frame's edges; they are visible for exactly one frame.
type KeyboardInput struct {
	held    map[Key]bool
	pending []KeyEdge
	edges   []KeyEdge
}

// NewKeyboardInput creates an input with every key released.
func NewKeyboardInput() *KeyboardInput {
	return &KeyboardInput{
		held: make(map[Key]bool),
	}
}

// SignalPressed records key going down. Pressing a key that is already held
// is ignored.
func (k *KeyboardInput) SignalPressed(key Key) {
	if k.held[key] {
		return
	}
	k.held[key] = true
	k.pending = append(k.pending, KeyEdge{Key: key, Pressed: true})
}

// SignalReleased records key going up. Releasing a key that is not held is
// ignored.
func (k *KeyboardInput) SignalReleased(key Key) {
	if !k.held[key] {
		return
	}
	delete(k.held, key)
	k.pending = append(k.pending, KeyEdge{Key: key, Pressed: false})
}

// Execute publishes the transitions recorded since the previous frame as this
// frame's edges.
func (k *KeyboardInput) Execute(frame *ecs.UpdateFrame) error {
	k.edges = append(k.edges[:0], k.pending...)
	k.pending = k.pending[:0]
	return nil
}

// Held reports whether key is currently down.
func (k *KeyboardInput) Held(key Key) bool {
	return k.held[key]
}

// JustPressed reports whether key went down since the previous frame.
func (k *KeyboardInput) JustPressed(key Key) bool {
	return k.hasEdge(key, true)
}

// JustReleased reports whether key went up since the previous frame.
func (k *KeyboardInput) JustReleased(key Key) bool {
	return k.hasEdge(key, false)
}

func (k *KeyboardInput) hasEdge(key Key, pressed bool) bool {
	for _, e := range k.edges {
		if e.Key == key && e.Pressed == pressed {
			return true
		}
	}
	return false
}

// Edges returns the transitions of the current frame in the order they
// happened. The slice is reused by the next Execute.
func (k *KeyboardInput) Edges() []KeyEdge {
	return k.edges
}

// KeySink receives key transitions.
type KeySink interface {
	SignalKeyPressed(key Key)
	SignalKeyReleased(key Key)
}

// KeyGate forwards key transitions to Sink, dropping presses while Blocked
// reports true. Releases always go through so that a key let go while
// blocked does not stay held.
type KeyGate struct {
	Sink    KeySink
	Blocked func() bool
}

func (g KeyGate) SignalKeyPressed(key Key) {
	if g.Blocked != nil && g.Blocked() {
		return
	}
	g.Sink.SignalKeyPressed(key)
}

func (g KeyGate) SignalKeyReleased(key Key) {
	g.Sink.SignalKeyReleased(key)
}

// Action is something the player can do.
type Action uint8

const (
	ActionLeft Action = iota
	ActionRight
	ActionJump
)

// Bindings maps each action to the keys that trigger it.
type Bindings map[Action][]Key

// NewBindings builds bindings from the key section of the configuration.
func NewBindings(keys config.Keys) Bindings {
	parse := func(names []string) []Key {
		out := make([]Key, 0, len(names))
		for _, name := range names {
			out = append(out, ParseKey(name))
		}
		return out
	}

	return Bindings{
		ActionLeft:  parse(keys.Left),
		ActionRight: parse(keys.Right),
		ActionJump:  parse(keys.Jump),
	}
}

// Held reports whether any key bound to a is held.
func (b Bindings) Held(input *KeyboardInput, a Action) bool {
	for _, key := range b[a] {
		if input.Held(key) {
			return true
		}
	}
	return false
}

// JustPressed reports whether any key bound to a went down this frame.
func (b Bindings) JustPressed(input *KeyboardInput, a Action) bool {
	for _, key := range b[a] {
		if input.JustPressed(key) {
			return true
		}
	}
	return false
}
