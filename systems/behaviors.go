package systems

import (
	"math"

	"github.com/plus3/leapfrog/ecs"
	"github.com/plus3/leapfrog/gfx"
)

// Player is the payload of the player entity.
type Player struct {
	Hits  int
	Falls int
}

func (*Player) Kind() ecs.Kind { return ecs.KindPlayer }

// Platform is the payload of a platform. Platforms with a non-zero amplitude
// slide back and forth around Origin.
type Platform struct {
	Origin    gfx.Vec2
	Amplitude float64
	Period    float64

	elapsed float64
}

func (*Platform) Kind() ecs.Kind { return ecs.KindPlatform }

// Moving reports whether the platform oscillates.
func (p *Platform) Moving() bool {
	return p.Amplitude != 0 && p.Period > 0
}

func (p *Platform) Think(e *ecs.Entity, frame *ecs.UpdateFrame) error {
	if !p.Moving() {
		return nil
	}
	p.elapsed += frame.DeltaTime

	prev := e.Position.X
	e.Position.X = p.Origin.X + p.Amplitude*math.Sin(2*math.Pi*p.elapsed/p.Period)
	if frame.DeltaTime > 0 {
		e.Velocity.X = (e.Position.X - prev) / frame.DeltaTime
	}
	return nil
}

// Hazard is the payload of something that hurts the player on contact.
type Hazard struct{}

func (Hazard) Kind() ecs.Kind { return ecs.KindHazard }
