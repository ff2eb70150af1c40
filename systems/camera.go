package systems

import (
	"github.com/plus3/leapfrog/ecs"
	"github.com/plus3/leapfrog/gfx"
)

// Camera scrolls the view horizontally to follow the player. It only ever
// moves forward. View is the visible area in world units.
type Camera struct {
	Origin gfx.Vec2
	View   gfx.Size
	// Lead is the fraction of the view kept behind the player.
	Lead float64
	// Distance is the furthest the player has travelled.
	Distance float64
}

// NewCamera creates a camera showing view world units.
func NewCamera(view gfx.Size) *Camera {
	return &Camera{View: view, Lead: 1.0 / 3}
}

func (c *Camera) Execute(frame *ecs.UpdateFrame) error {
	player, ok := frame.Registry.First(ecs.KindPlayer)
	if !ok {
		return nil
	}

	if x := player.Position.X - c.View.W*c.Lead; x > c.Origin.X {
		c.Origin.X = x
	}
	c.Distance = max(c.Distance, player.Position.X)
	return nil
}

// Visible returns the world rectangle currently in view.
func (c *Camera) Visible() gfx.Rect {
	return gfx.Rect{Min: c.Origin, Size: c.View}
}
