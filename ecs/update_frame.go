package ecs

import (
	"time"

	"github.com/plus3/leapfrog/gfx"
)

// UpdateFrame is handed to every system during a single scheduler pass.
type UpdateFrame struct {
	// Elapsed is the wall-clock time since the previous frame.
	Elapsed time.Duration
	// DeltaTime is Elapsed in seconds.
	DeltaTime float64
	// Number counts frames starting at 1.
	Number   uint64
	Registry *Registry
	// Target is nil for headless frames.
	Target gfx.Target
}

func newUpdateFrame(number uint64, elapsed time.Duration, registry *Registry, target gfx.Target) *UpdateFrame {
	return &UpdateFrame{
		Elapsed:   elapsed,
		DeltaTime: elapsed.Seconds(),
		Number:    number,
		Registry:  registry,
		Target:    target,
	}
}
