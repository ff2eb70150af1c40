package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/leapfrog/ecs"
)

// PerformanceStats shows registry counters, frame times and per system
// timings.
type PerformanceStats struct {
	Scheduler *ecs.Scheduler
	history   *frameHistory
}

func NewPerformanceStats(scheduler *ecs.Scheduler, historyFrames int) *PerformanceStats {
	return &PerformanceStats{
		Scheduler: scheduler,
		history:   newFrameHistory(historyFrames),
	}
}

func (ps *PerformanceStats) Render(frame *ecs.UpdateFrame) {
	ps.history.record(float32(frame.DeltaTime * 1000.0))

	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := frame.Registry.CollectStats()

	imgui.Text(fmt.Sprintf("Frame: %d", frame.Number))
	imgui.Text(fmt.Sprintf("Live Entities: %d", stats.Live))
	imgui.Text(fmt.Sprintf("Pending: %d  Dead: %d  Free: %d", stats.Pending, stats.Dead, stats.Free))
	imgui.Text(fmt.Sprintf("Capacity: %d", stats.Capacity))

	avg := ps.history.average()
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
	}

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.history.samples[0], int32(len(ps.history.samples)))

	if ps.Scheduler != nil && imgui.TreeNodeStr("Systems") {
		ps.renderSystems(ps.Scheduler.GetStats())
		imgui.TreePop()
	}

	imgui.End()
}

func (ps *PerformanceStats) renderSystems(stats ecs.SchedulerStats) {
	imgui.Text(fmt.Sprintf("Frames: %d  Failures: %d", stats.Frames, stats.Failures))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if !imgui.BeginTableV("SystemStatsTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		return
	}
	imgui.TableSetupColumn("System")
	imgui.TableSetupColumn("Runs")
	imgui.TableSetupColumn("Failures")
	imgui.TableSetupColumn("Avg")
	imgui.TableSetupColumn("Max")
	imgui.TableHeadersRow()

	for _, sys := range stats.Systems {
		imgui.TableNextRow()
		imgui.TableNextColumn()
		imgui.Text(sys.Name)
		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%d", sys.ExecutionCount))
		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%d", sys.FailureCount))
		imgui.TableNextColumn()
		imgui.Text(sys.AvgDuration.Round(time.Microsecond).String())
		imgui.TableNextColumn()
		imgui.Text(sys.MaxDuration.Round(time.Microsecond).String())
	}
	imgui.EndTable()
}

// frameHistory is a ring of frame times in milliseconds.
type frameHistory struct {
	samples []float32
	next    int
	filled  int
}

func newFrameHistory(n int) *frameHistory {
	return &frameHistory{samples: make([]float32, max(n, 1))}
}

func (h *frameHistory) record(ms float32) {
	h.samples[h.next] = ms
	h.next = (h.next + 1) % len(h.samples)
	h.filled = min(h.filled+1, len(h.samples))
}

// average only counts recorded samples.
func (h *frameHistory) average() float32 {
	if h.filled == 0 {
		return 0
	}
	var sum float32
	for i := 0; i < h.filled; i++ {
		sum += h.samples[i]
	}
	return sum / float32(h.filled)
}
