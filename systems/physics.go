package systems

import (
	"github.com/plus3/leapfrog/ecs"
)

// landingTolerance absorbs float error when checking whether the player was
// above a platform on the previous frame.
const landingTolerance = 1e-6

// Physics moves the player. Platforms are one-way: the player passes through
// them going up and lands on them coming down. Touching a hazard raises
// EventHit and removes the hazard.
type Physics struct {
	Gravity float64
}

func (p *Physics) Execute(frame *ecs.UpdateFrame) error {
	dt := frame.DeltaTime
	r := frame.Registry

	for e := range r.OfKind(ecs.KindPlayer) {
		prevBottom := e.Position.Y + e.Size.H

		e.Velocity.Y += p.Gravity * dt
		e.Position = e.Position.Add(e.Velocity.Scale(dt))

		wasGrounded := e.Grounded
		e.Grounded = false

		if e.Velocity.Y >= 0 {
			bounds := e.Bounds()
			for platform := range r.OfKind(ecs.KindPlatform) {
				top := platform.Position.Y
				pb := platform.Bounds()
				if bounds.Max().X <= pb.Min.X || bounds.Min.X >= pb.Max().X {
					continue
				}
				if prevBottom > top+landingTolerance || bounds.Max().Y < top {
					continue
				}

				e.Position.Y = top - e.Size.H
				e.Velocity.Y = 0
				e.Grounded = true
				if !wasGrounded {
					e.Raise(ecs.EventLanded)
				}
				break
			}
		}

		bounds := e.Bounds()
		for hazard := range r.OfKind(ecs.KindHazard) {
			if !bounds.Overlaps(hazard.Bounds()) {
				continue
			}
			e.Raise(ecs.EventHit)
			if pl, ok := e.Behavior.(*Player); ok {
				pl.Hits++
			}
			r.Remove(hazard.ID())
		}
	}
	return nil
}
