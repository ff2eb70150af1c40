// Package ebiten connects the game systems to the Ebiten game engine: it
// draws gfx commands onto an *ebiten.Image, plays cached sounds through an
// audio.Context and translates Ebiten keys.
//
// This is the only place that imports Ebiten's root package, which needs a
// display when it is initialised.
package ebiten

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/leapfrog/assets"
	"github.com/plus3/leapfrog/config"
	"github.com/plus3/leapfrog/gfx"
	"github.com/plus3/leapfrog/systems"
)

// ScreenTarget is a gfx.Target drawing onto the Ebiten screen. Cached
// textures are uploaded to the GPU the first time they are drawn and kept for
// the life of the target.
type ScreenTarget struct {
	cache  *assets.Cache
	images map[assets.TextureHandle]*ebiten.Image
	screen *ebiten.Image
}

func NewScreenTarget(cache *assets.Cache) *ScreenTarget {
	return &ScreenTarget{
		cache:  cache,
		images: make(map[assets.TextureHandle]*ebiten.Image),
	}
}

// SetScreen points the target at the image handed to ebiten.Game.Draw.
func (t *ScreenTarget) SetScreen(screen *ebiten.Image) {
	t.screen = screen
}

func (t *ScreenTarget) Bounds() gfx.Size {
	if t.screen == nil {
		return gfx.Size{}
	}
	b := t.screen.Bounds()
	return gfx.Size{W: float64(b.Dx()), H: float64(b.Dy())}
}

func (t *ScreenTarget) Draw(cmd gfx.DrawCommand) {
	if t.screen == nil {
		return
	}
	img := t.image(cmd.Texture)
	if img == nil {
		return
	}

	b := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(cmd.Dst.Size.W/float64(b.Dx()), cmd.Dst.Size.H/float64(b.Dy()))
	op.GeoM.Translate(cmd.Dst.Min.X, cmd.Dst.Min.Y)
	t.screen.DrawImage(img, op)
}

func (t *ScreenTarget) image(h assets.TextureHandle) *ebiten.Image {
	if img, ok := t.images[h]; ok {
		return img
	}
	src := t.cache.Texture(h)
	if src == nil {
		return nil
	}
	img := ebiten.NewImageFromImage(src)
	t.images[h] = img
	return img
}

// Uploaded returns the number of textures living on the GPU.
func (t *ScreenTarget) Uploaded() int {
	return len(t.images)
}

// KeyOf translates an Ebiten key.
func KeyOf(k ebiten.Key) systems.Key {
	return systems.ParseKey(k.String())
}

// ValidateKeys checks that every bound key name is one Ebiten knows under its
// canonical name, so that KeyOf produces the same key at runtime.
func ValidateKeys(keys config.Keys) error {
	var errs []error
	for _, names := range [][]string{keys.Left, keys.Right, keys.Jump} {
		for _, name := range names {
			var k ebiten.Key
			if err := k.UnmarshalText([]byte(name)); err != nil {
				errs = append(errs, err)
				continue
			}
			if KeyOf(k) != systems.ParseKey(name) {
				errs = append(errs, fmt.Errorf("key %q: use the name %q", name, k.String()))
			}
		}
	}
	return errors.Join(errs...)
}

// PumpKeys forwards the keys that changed state during the current tick to
// sink. buf is reused between calls to avoid allocations and returned.
func PumpKeys(sink systems.KeySink, buf []ebiten.Key) []ebiten.Key {
	buf = inpututil.AppendJustPressedKeys(buf[:0])
	for _, k := range buf {
		sink.SignalKeyPressed(KeyOf(k))
	}
	buf = inpututil.AppendJustReleasedKeys(buf[:0])
	for _, k := range buf {
		sink.SignalKeyReleased(KeyOf(k))
	}
	return buf
}
