package ecs

// RegistryStats summarises the state of a Registry.
type RegistryStats struct {
	Live     int
	Pending  int
	Dead     int
	Free     int
	Capacity int
	Buffered int
	ByKind   map[Kind]int
}

// CollectStats gathers statistics about the registry.
func (r *Registry) CollectStats() RegistryStats {
	stats := RegistryStats{
		Live:     r.live,
		Pending:  r.pending,
		Dead:     r.dead,
		Free:     len(r.slots.freeSlots),
		Capacity: len(r.slots.blocks) * arenaBlockSize,
		Buffered: r.commands.Len(),
		ByKind:   make(map[Kind]int, r.kinds.Len()),
	}

	r.kinds.ForEach(func(kind Kind, n int) bool {
		if n > 0 {
			stats.ByKind[kind] = n
		}
		return true
	})

	return stats
}
