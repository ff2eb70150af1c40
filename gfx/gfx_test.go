package gfx_test

import (
	"testing"

	"github.com/plus3/leapfrog/gfx"
	"github.com/stretchr/testify/assert"
)

func TestRectOverlaps(t *testing.T) {
	a := gfx.Rect{Min: gfx.Vec2{X: 0, Y: 0}, Size: gfx.Size{W: 10, H: 10}}

	tests := []struct {
		name string
		b    gfx.Rect
		want bool
	}{
		{"inside", gfx.Rect{Min: gfx.Vec2{X: 2, Y: 2}, Size: gfx.Size{W: 1, H: 1}}, true},
		{"partial", gfx.Rect{Min: gfx.Vec2{X: 9, Y: 9}, Size: gfx.Size{W: 5, H: 5}}, true},
		{"touching edge", gfx.Rect{Min: gfx.Vec2{X: 10, Y: 0}, Size: gfx.Size{W: 5, H: 5}}, false},
		{"apart", gfx.Rect{Min: gfx.Vec2{X: 20, Y: 20}, Size: gfx.Size{W: 5, H: 5}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(a))
		})
	}
}

func TestLetterbox(t *testing.T) {
	t.Run("landscape", func(t *testing.T) {
		r := gfx.Letterbox(gfx.Size{W: 1024, H: 768}, 1)
		assert.Equal(t, gfx.Rect{Min: gfx.Vec2{X: 128}, Size: gfx.Size{W: 768, H: 768}}, r)
	})

	t.Run("portrait", func(t *testing.T) {
		r := gfx.Letterbox(gfx.Size{W: 600, H: 800}, 1)
		assert.Equal(t, gfx.Rect{Min: gfx.Vec2{Y: 100}, Size: gfx.Size{W: 600, H: 600}}, r)
	})

	t.Run("exact fit", func(t *testing.T) {
		r := gfx.Letterbox(gfx.Size{W: 200, H: 100}, 2)
		assert.Equal(t, gfx.Rect{Size: gfx.Size{W: 200, H: 100}}, r)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, gfx.Rect{}, gfx.Letterbox(gfx.Size{}, 1))
		assert.Equal(t, gfx.Rect{}, gfx.Letterbox(gfx.Size{W: 10, H: 10}, 0))
	})
}

func TestRecorder(t *testing.T) {
	r := &gfx.Recorder{Size: gfx.Size{W: 4, H: 3}}
	var target gfx.Target = r

	assert.Equal(t, gfx.Size{W: 4, H: 3}, target.Bounds())
	target.Draw(gfx.DrawCommand{Texture: 1})
	target.Draw(gfx.DrawCommand{Texture: 2})
	assert.Len(t, r.Commands, 2)

	r.Reset()
	assert.Empty(t, r.Commands)
}
