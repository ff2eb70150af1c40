package ecs

// Commands buffers the structural changes requested on a Registry during a
// frame so they can be applied together at the commit point. This keeps
// storage stable while systems iterate over it.
type Commands struct {
	spawns  []int
	deletes []int
	defers  []deferCommand
}

type deferCommand struct {
	fn func()
}

// Defer queues a function to run at the commit point, after removals and
// additions have been applied.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, deferCommand{fn: fn})
}

func (c *Commands) spawn(index int) {
	c.spawns = append(c.spawns, index)
}

func (c *Commands) delete(index int) {
	c.deletes = append(c.deletes, index)
}

// Len returns the number of buffered operations.
func (c *Commands) Len() int {
	return len(c.spawns) + len(c.deletes) + len(c.defers)
}

// Flush applies all buffered operations to the registry, resetting the buffer
// state. Additions and removals requested by deferred functions are applied
// before Flush returns; functions they defer are kept for the next flush.
func (c *Commands) Flush(r *Registry) {
	c.apply(r)

	defers := c.defers
	c.defers = nil
	for _, df := range defers {
		df.fn()
	}

	c.apply(r)
}

func (c *Commands) apply(r *Registry) {
	for _, index := range c.deletes {
		r.reclaim(index)
	}
	for _, index := range c.spawns {
		r.promote(index)
	}
	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
}
