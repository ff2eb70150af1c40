package ecs

import (
	"errors"
	"fmt"
	"iter"

	"github.com/kamstrup/intmap"
)

// ErrDuplicateEntity is returned when an entity that already has an identity
// is added again.
var ErrDuplicateEntity = errors.New("entity already registered")

// Registry exclusively owns every entity in the game.
//
// Additions are buffered: an added entity receives its EntityId straight away
// but only becomes visible to Get and iteration after the next Commit.
// Removals take effect immediately for lookups and iteration, while the slot
// itself is reclaimed at the next Commit. This lets systems add and remove
// entities while iterating without disturbing the traversal.
type Registry struct {
	slots    arena
	commands Commands
	kinds    *intmap.Map[Kind, int]

	live      int
	pending   int
	dead      int
	iterating int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		kinds: intmap.New[Kind, int](8),
	}
}

// Add takes ownership of e and assigns its identity. The entity becomes
// visible at the next Commit.
func (r *Registry) Add(e *Entity) (EntityId, error) {
	if e == nil {
		panic("cannot add nil entity")
	}
	if e.id != 0 {
		return e.id, fmt.Errorf("add %s: %w", e.id, ErrDuplicateEntity)
	}

	index := r.slots.alloc()
	s := r.slots.at(index)
	s.state = slotPending
	s.entity = e
	e.id = NewEntityId(s.generation, uint32(index))

	r.commands.spawn(index)
	r.pending++
	return e.id, nil
}

// Remove marks the entity for deletion. It disappears from lookups and
// iteration immediately; its slot is reclaimed at the next Commit. Removing
// an entity that is unknown or already removed is a no-op and returns false.
func (r *Registry) Remove(id EntityId) bool {
	s := r.lookup(id)
	if s == nil {
		return false
	}

	switch s.state {
	case slotLive:
		r.live--
		r.countKind(s.entity.kind, -1)
	case slotPending:
		r.pending--
	}
	s.state = slotDead
	r.dead++
	r.commands.delete(int(id.Index()))
	return true
}

// Get returns the live entity for id. Pending, removed and stale ids are not
// found.
func (r *Registry) Get(id EntityId) (*Entity, bool) {
	s := r.lookup(id)
	if s == nil || s.state != slotLive {
		return nil, false
	}
	return s.entity, true
}

// Contains reports whether id refers to a live entity.
func (r *Registry) Contains(id EntityId) bool {
	_, ok := r.Get(id)
	return ok
}

// lookup returns the slot id points at if the generation still matches and
// the slot is pending or live.
func (r *Registry) lookup(id EntityId) *slot {
	if id == 0 {
		return nil
	}
	s := r.slots.at(int(id.Index()))
	if s == nil || s.generation != id.Generation() {
		return nil
	}
	if s.state != slotLive && s.state != slotPending {
		return nil
	}
	return s
}

// All returns an iterator over the live entities in slot order. Entities
// added during the iteration are not visited, entities removed during the
// iteration are not visited after their removal.
func (r *Registry) All() iter.Seq[*Entity] {
	return func(yield func(*Entity) bool) {
		r.iterating++
		defer func() { r.iterating-- }()

		n := r.slots.len()
		for i := 0; i < n; i++ {
			s := r.slots.at(i)
			if s.state != slotLive {
				continue
			}
			if !yield(s.entity) {
				return
			}
		}
	}
}

// Each calls fn for every live entity, stopping at the first error.
func (r *Registry) Each(fn func(*Entity) error) error {
	for e := range r.All() {
		if err := fn(e); err != nil {
			return err
		}
	}
	return nil
}

// OfKind returns an iterator over the live entities of the given kind.
func (r *Registry) OfKind(kind Kind) iter.Seq[*Entity] {
	return func(yield func(*Entity) bool) {
		for e := range r.All() {
			if e.kind != kind {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

// First returns the first live entity of the given kind.
func (r *Registry) First(kind Kind) (*Entity, bool) {
	for e := range r.OfKind(kind) {
		return e, true
	}
	return nil, false
}

// Defer queues fn to run at the next Commit.
func (r *Registry) Defer(fn func()) {
	r.commands.Defer(fn)
}

// Commit is the safe point where buffered changes are applied: removed
// entities are reclaimed, pending entities become live and deferred functions
// run. Committing while an iteration is in progress is a programming error.
func (r *Registry) Commit() {
	if r.iterating > 0 {
		panic("ecs: Commit called during iteration")
	}
	r.commands.Flush(r)
}

// Compact releases storage held by trailing free slots. Ids of live entities
// are unaffected.
func (r *Registry) Compact() {
	if r.iterating > 0 {
		panic("ecs: Compact called during iteration")
	}
	r.slots.compact()
}

// Clear drops every entity, live or pending, together with buffered spawns
// and removals. Deferred functions are kept. Ids handed out before Clear
// never resolve again.
func (r *Registry) Clear() {
	if r.iterating > 0 {
		panic("ecs: Clear called during iteration")
	}
	for i := 0; i < r.slots.len(); i++ {
		r.slots.release(i)
	}
	r.commands.spawns = r.commands.spawns[:0]
	r.commands.deletes = r.commands.deletes[:0]
	r.live, r.pending, r.dead = 0, 0, 0
	r.kinds.Clear()
}

func (r *Registry) reclaim(index int) {
	s := r.slots.at(index)
	if s == nil || s.state != slotDead {
		return
	}
	r.dead--
	r.slots.release(index)
}

func (r *Registry) promote(index int) {
	s := r.slots.at(index)
	if s == nil || s.state != slotPending {
		return
	}
	s.state = slotLive
	r.pending--
	r.live++
	r.countKind(s.entity.kind, 1)
}

func (r *Registry) countKind(kind Kind, delta int) {
	n, _ := r.kinds.Get(kind)
	r.kinds.Put(kind, n+delta)
}

// Len returns the number of live entities.
func (r *Registry) Len() int {
	return r.live
}

// Pending returns the number of entities waiting for the next Commit.
func (r *Registry) Pending() int {
	return r.pending
}

// CountKind returns the number of live entities of the given kind.
func (r *Registry) CountKind(kind Kind) int {
	n, _ := r.kinds.Get(kind)
	return n
}
