package systems

import (
	"github.com/plus3/leapfrog/ecs"
	"github.com/plus3/leapfrog/gfx"
)

// Renderer draws every live entity that has a sprite, in registry order. It
// maps world units to target pixels through the camera and a letterboxed
// viewport with the aspect ratio of the camera view. It never modifies
// entities.
type Renderer struct {
	Camera *Camera
	// ViewSize is used when the target does not report a size.
	ViewSize gfx.Size

	drawn int
}

func (r *Renderer) Execute(frame *ecs.UpdateFrame) error {
	r.drawn = 0
	target := frame.Target
	if target == nil {
		return nil
	}

	bounds := target.Bounds()
	if bounds.Empty() {
		bounds = r.ViewSize
	}
	view := r.Camera.View
	if bounds.Empty() || view.Empty() {
		return nil
	}

	viewport := gfx.Letterbox(bounds, view.W/view.H)
	sx := viewport.Size.W / view.W
	sy := viewport.Size.H / view.H
	visible := r.Camera.Visible()

	for e := range frame.Registry.All() {
		if !e.Sprite.Valid() || !visible.Overlaps(e.Bounds()) {
			continue
		}

		rel := e.Position.Sub(r.Camera.Origin)
		target.Draw(gfx.DrawCommand{
			Texture: e.Sprite,
			Dst: gfx.Rect{
				Min:  gfx.Vec2{X: viewport.Min.X + rel.X*sx, Y: viewport.Min.Y + rel.Y*sy},
				Size: gfx.Size{W: e.Size.W * sx, H: e.Size.H * sy},
			},
		})
		r.drawn++
	}
	return nil
}

// Drawn returns the number of draw commands issued in the last frame.
func (r *Renderer) Drawn() int {
	return r.drawn
}
