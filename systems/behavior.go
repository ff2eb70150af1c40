package systems

import (
	"fmt"

	"github.com/plus3/leapfrog/ecs"
)

// Behavior runs the per-frame logic of every entity whose payload implements
// ecs.Thinker.
type Behavior struct{}

func (Behavior) Execute(frame *ecs.UpdateFrame) error {
	return frame.Registry.Each(func(e *ecs.Entity) error {
		thinker, ok := e.Behavior.(ecs.Thinker)
		if !ok {
			return nil
		}
		if err := thinker.Think(e, frame); err != nil {
			return fmt.Errorf("entity %s (%s): %w", e.ID(), e.Kind(), err)
		}
		return nil
	})
}
