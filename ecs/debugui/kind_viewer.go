package debugui

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/leapfrog/ecs"
)

type KindInfo struct {
	Kind  ecs.Kind
	Count int
}

// KindViewer lists how many live entities there are of each kind. Clicking
// a row restricts the entity browser to that kind.
type KindViewer struct {
	selected *ecs.Kind
}

func NewKindViewer() *KindViewer {
	return &KindViewer{}
}

// Selected returns the kind picked in the viewer, if any.
func (kv *KindViewer) Selected() (ecs.Kind, bool) {
	if kv.selected == nil {
		return ecs.KindNone, false
	}
	return *kv.selected, true
}

func (kv *KindViewer) Render(frame *ecs.UpdateFrame) {
	if !imgui.BeginV("Kinds", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	rows := kindRows(frame.Registry.CollectStats())

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("KindTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Kind")
		imgui.TableSetupColumn("Count")
		imgui.TableHeadersRow()

		for _, row := range rows {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			isSelected := kv.selected != nil && *kv.selected == row.Kind
			if imgui.SelectableBoolV(row.Kind.String(), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				kv.toggle(row.Kind)
			}
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", row.Count))
		}
		imgui.EndTable()
	}

	if kv.selected != nil {
		if imgui.Button("Show All") {
			kv.selected = nil
		}
	}

	imgui.End()
}

func (kv *KindViewer) toggle(kind ecs.Kind) {
	if kv.selected != nil && *kv.selected == kind {
		kv.selected = nil
		return
	}
	kv.selected = &kind
}

func kindRows(stats ecs.RegistryStats) []KindInfo {
	rows := make([]KindInfo, 0, len(stats.ByKind))
	for kind, n := range stats.ByKind {
		rows = append(rows, KindInfo{Kind: kind, Count: n})
	}
	slices.SortFunc(rows, func(a, b KindInfo) int {
		return cmp.Compare(a.Kind, b.Kind)
	})
	return rows
}
