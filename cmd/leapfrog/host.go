package main

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/plus3/leapfrog/config"
	"github.com/plus3/leapfrog/ecs/debugui"
	debugui_ebiten "github.com/plus3/leapfrog/ecs/debugui/ebiten"
	"github.com/plus3/leapfrog/game"
	"github.com/plus3/leapfrog/gfx"
	"github.com/plus3/leapfrog/systems"
	ebitensys "github.com/plus3/leapfrog/systems/ebiten"
)

// host implements ebiten.Game. The model runs in Update and records its draw
// commands; Draw replays them onto the screen.
type host struct {
	model  *game.Model
	cfg    *config.Configuration
	logger *zap.Logger

	screen   *ebitensys.ScreenTarget
	recorder gfx.Recorder
	keys     []ebiten.Key
	last     time.Time

	// Both nil unless the debug overlay is enabled.
	overlay *debugui.Overlay
	imgui   *debugui_ebiten.ImguiBackend
}

func (h *host) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if h.overlay != nil && inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		h.overlay.Toggle()
	}

	if g := h.cfg.Graphics(); g.Restart {
		ebiten.SetWindowSize(g.Resolution.Width, g.Resolution.Height)
		h.cfg.SetRestart(false)
		h.logger.Info("window resized",
			zap.Int("width", g.Resolution.Width),
			zap.Int("height", g.Resolution.Height),
		)
	}

	h.keys = ebitensys.PumpKeys(h.keyGate(), h.keys)

	now := time.Now()
	elapsed := now.Sub(h.last)
	h.last = now

	h.recorder.Reset()
	update := func() error {
		// A failed frame is logged by the model; the game keeps going.
		_ = h.model.Update(elapsed, &h.recorder)
		return nil
	}
	if h.imgui != nil {
		return h.imgui.Frame(update)
	}
	return update()
}

// keyGate holds back key presses while ImGui has the keyboard. Releases are
// always forwarded.
func (h *host) keyGate() systems.KeyGate {
	return systems.KeyGate{
		Sink: h.model,
		Blocked: func() bool {
			return h.overlay != nil && h.overlay.Input.WantCaptureKeyboard
		},
	}
}

func (h *host) Draw(screen *ebiten.Image) {
	h.screen.SetScreen(screen)
	for _, cmd := range h.recorder.Commands {
		h.screen.Draw(cmd)
	}
	if h.imgui != nil {
		h.imgui.Draw(screen)
	}
}

func (h *host) Layout(outsideWidth, outsideHeight int) (int, int) {
	h.recorder.Size = gfx.Size{W: float64(outsideWidth), H: float64(outsideHeight)}
	if h.imgui != nil {
		h.imgui.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
