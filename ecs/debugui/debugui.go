// Package debugui draws Dear ImGui windows that inspect a running registry
// and scheduler. Windows render at the commit point of the frame they were
// queued in, so the host must call Update between the backend's BeginFrame
// and EndFrame.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/leapfrog/ecs"
)

// Window is a single ImGui window drawn once per frame.
type Window interface {
	Render(frame *ecs.UpdateFrame)
}

// WindowFunc adapts a plain function to the Window interface.
type WindowFunc func(frame *ecs.UpdateFrame)

func (f WindowFunc) Render(frame *ecs.UpdateFrame) {
	f(frame)
}

// InputState tracks whether Dear ImGui is consuming mouse or keyboard input.
// Hosts should stop forwarding keys to the game while WantCaptureKeyboard is
// set.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Overlay is the system that queues every window for rendering.
type Overlay struct {
	Windows []Window
	Input   InputState
	Hidden  bool
}

// New builds an overlay with the standard set of windows: performance
// statistics, the kind summary, the entity browser and the entity inspector.
func New(scheduler *ecs.Scheduler) *Overlay {
	kinds := NewKindViewer()
	browser := NewEntityBrowser(kinds, 100)
	return &Overlay{
		Windows: []Window{
			NewPerformanceStats(scheduler, 120),
			kinds,
			browser,
			NewEntityInspector(browser),
		},
	}
}

func (o *Overlay) Name() string {
	return "DebugOverlay"
}

func (o *Overlay) Execute(frame *ecs.UpdateFrame) error {
	io := imgui.CurrentIO()
	o.Input.WantCaptureMouse = io.WantCaptureMouse()
	o.Input.WantCaptureKeyboard = io.WantCaptureKeyboard()

	if o.Hidden {
		return nil
	}
	for _, w := range o.Windows {
		frame.Registry.Defer(func() {
			w.Render(frame)
		})
	}
	return nil
}

// Toggle shows or hides every window.
func (o *Overlay) Toggle() {
	o.Hidden = !o.Hidden
}
