package ecs

import (
	"fmt"

	"github.com/plus3/leapfrog/assets"
	"github.com/plus3/leapfrog/gfx"
)

// EntityId encodes both the slot generation (upper 32 bits) and the slot index (lower 32 bits)
type EntityId uint64

// NewEntityId creates an EntityId from a slot generation and slot index
func NewEntityId(generation uint32, index uint32) EntityId {
	return EntityId(uint64(generation)<<32 | uint64(index))
}

// Generation extracts the slot generation from the entity ID
func (e EntityId) Generation() uint32 {
	return uint32(e >> 32)
}

// Index extracts the slot index from the entity ID
func (e EntityId) Index() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

func (e EntityId) String() string {
	return fmt.Sprintf("%d@%d", e.Index(), e.Generation())
}

// Kind tags what sort of game object an entity is.
type Kind uint8

const (
	KindNone Kind = iota
	KindPlayer
	KindPlatform
	KindHazard
	KindDecoration
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindPlatform:
		return "platform"
	case KindHazard:
		return "hazard"
	case KindDecoration:
		return "decoration"
	default:
		return "none"
	}
}

// Event is a set of transient flags raised on an entity during a frame and
// consumed by a later system in the same frame.
type Event uint8

const (
	EventJumped Event = 1 << iota
	EventLanded
	EventHit
	EventFell
)

// Has reports whether every flag in f is set.
func (e Event) Has(f Event) bool {
	return e&f == f
}

// Behavior is the kind-specific payload of an entity.
type Behavior interface {
	Kind() Kind
}

// Thinker is implemented by behaviors that need to run logic every frame.
type Thinker interface {
	Think(e *Entity, frame *UpdateFrame) error
}

// Entity is a single game object. Entities are owned by a Registry; code
// outside the current frame should only keep the EntityId.
type Entity struct {
	id   EntityId
	kind Kind

	Position gfx.Vec2
	Velocity gfx.Vec2
	Size     gfx.Size
	Sprite   assets.TextureHandle
	Events   Event
	Grounded bool
	Behavior Behavior
}

// NewEntity creates an unregistered entity of the given kind.
func NewEntity(kind Kind) *Entity {
	return &Entity{kind: kind}
}

// ID returns the identity assigned by the registry, or zero if the entity was
// never added.
func (e *Entity) ID() EntityId {
	return e.id
}

// Kind returns the kind the entity was created with.
func (e *Entity) Kind() Kind {
	return e.kind
}

// Bounds returns the world-space rectangle covered by the entity.
func (e *Entity) Bounds() gfx.Rect {
	return gfx.Rect{Min: e.Position, Size: e.Size}
}

// Raise sets event flags to be picked up later in the frame.
func (e *Entity) Raise(ev Event) {
	e.Events |= ev
}
