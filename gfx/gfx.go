// Package gfx holds the geometry and draw command types shared between the
// simulation and whatever backend ends up putting pixels on screen.
package gfx

import "github.com/plus3/leapfrog/assets"

// Vec2 is a 2D vector in world units.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec2) Scale(f float64) Vec2 {
	return Vec2{X: v.X * f, Y: v.Y * f}
}

// Size is a width/height pair. Depending on context it is measured in world
// units or target pixels.
type Size struct {
	W, H float64
}

// Empty reports whether either dimension is zero or negative.
func (s Size) Empty() bool {
	return s.W <= 0 || s.H <= 0
}

// Rect is an axis aligned rectangle anchored at its top-left corner.
type Rect struct {
	Min  Vec2
	Size Size
}

func (r Rect) Max() Vec2 {
	return Vec2{X: r.Min.X + r.Size.W, Y: r.Min.Y + r.Size.H}
}

// Overlaps reports whether r and o share any area.
func (r Rect) Overlaps(o Rect) bool {
	rmax, omax := r.Max(), o.Max()
	return r.Min.X < omax.X && o.Min.X < rmax.X && r.Min.Y < omax.Y && o.Min.Y < rmax.Y
}

// DrawCommand asks a Target to draw a cached texture stretched into Dst.
// Dst is measured in target pixels.
type DrawCommand struct {
	Texture assets.TextureHandle
	Dst     Rect
}

// Target accepts draw commands. The renderer never reads anything back from
// it except its size.
type Target interface {
	Bounds() Size
	Draw(cmd DrawCommand)
}

// Recorder is a Target that keeps every command it receives. Useful for
// headless runs and tests.
type Recorder struct {
	Size     Size
	Commands []DrawCommand
}

func (r *Recorder) Bounds() Size {
	return r.Size
}

func (r *Recorder) Draw(cmd DrawCommand) {
	r.Commands = append(r.Commands, cmd)
}

// Reset drops the recorded commands but keeps the backing array.
func (r *Recorder) Reset() {
	r.Commands = r.Commands[:0]
}

// Letterbox returns the largest rectangle with the given width/height aspect
// ratio that fits centered inside outer. The bars are left on the long axis.
func Letterbox(outer Size, aspect float64) Rect {
	if outer.Empty() || aspect <= 0 {
		return Rect{}
	}

	if outer.W/outer.H > aspect {
		w := outer.H * aspect
		return Rect{Min: Vec2{X: (outer.W - w) / 2}, Size: Size{W: w, H: outer.H}}
	}
	h := outer.W / aspect
	return Rect{Min: Vec2{Y: (outer.H - h) / 2}, Size: Size{W: outer.W, H: h}}
}
