package debugui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/leapfrog/ecs"
	"github.com/plus3/leapfrog/gfx"
)

type EntityInfo struct {
	ID       ecs.EntityId
	Kind     ecs.Kind
	Position gfx.Vec2
	Velocity gfx.Vec2
}

const (
	columnID = iota
	columnKind
	columnX
	columnY
)

// EntityBrowser is a sortable, filterable, paged table of live entities.
type EntityBrowser struct {
	Kinds *KindViewer

	entities         []EntityInfo
	selectedEntityId ecs.EntityId
	filterText       string
	sortColumn       int
	sortAscending    bool
	pageSize         int
	currentPage      int
}

func NewEntityBrowser(kinds *KindViewer, pageSize int) *EntityBrowser {
	return &EntityBrowser{
		Kinds:         kinds,
		sortColumn:    columnID,
		sortAscending: true,
		pageSize:      max(pageSize, 1),
	}
}

func (eb *EntityBrowser) Render(frame *ecs.UpdateFrame) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.refresh(frame.Registry)

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
	}

	filtered := eb.filtered()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity ID")
		imgui.TableSetupColumn("Kind")
		imgui.TableSetupColumn("X")
		imgui.TableSetupColumn("Y")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.sortColumn = int(spec.ColumnIndex())
			eb.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			eb.sortEntities(filtered)
			sortSpecs.SetSpecsDirty(false)
		}

		start, end := eb.pageBounds(len(filtered))
		for _, entity := range filtered[start:end] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := eb.selectedEntityId == entity.ID
			if imgui.SelectableBoolV(entity.ID.String(), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selectedEntityId = entity.ID
			}
			imgui.TableNextColumn()
			imgui.Text(entity.Kind.String())
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%.2f", entity.Position.X))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%.2f", entity.Position.Y))
		}

		imgui.EndTable()
	}

	if len(filtered) > eb.pageSize {
		totalPages := (len(filtered) + eb.pageSize - 1) / eb.pageSize
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(filtered)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filtered)))
	}

	imgui.End()
}

// refresh rebuilds the table from the registry. Entities move every frame so
// nothing is carried over except the selection.
func (eb *EntityBrowser) refresh(r *ecs.Registry) {
	eb.entities = eb.entities[:0]
	for e := range r.All() {
		eb.entities = append(eb.entities, EntityInfo{
			ID:       e.ID(),
			Kind:     e.Kind(),
			Position: e.Position,
			Velocity: e.Velocity,
		})
	}
	if eb.selectedEntityId != 0 && !r.Contains(eb.selectedEntityId) {
		eb.selectedEntityId = 0
	}
	eb.sortEntities(eb.entities)
}

func (eb *EntityBrowser) sortEntities(entities []EntityInfo) {
	slices.SortStableFunc(entities, func(a, b EntityInfo) int {
		var c int
		switch eb.sortColumn {
		case columnKind:
			c = cmp.Compare(a.Kind, b.Kind)
		case columnX:
			c = cmp.Compare(a.Position.X, b.Position.X)
		case columnY:
			c = cmp.Compare(a.Position.Y, b.Position.Y)
		default:
			c = cmp.Compare(a.ID.Index(), b.ID.Index())
		}
		if !eb.sortAscending {
			return -c
		}
		return c
	})
}

func (eb *EntityBrowser) filtered() []EntityInfo {
	kind, byKind := ecs.KindNone, false
	if eb.Kinds != nil {
		kind, byKind = eb.Kinds.Selected()
	}
	if eb.filterText == "" && !byKind {
		return eb.entities
	}

	filterLower := strings.ToLower(eb.filterText)
	filtered := make([]EntityInfo, 0, len(eb.entities))
	for _, entity := range eb.entities {
		if byKind && entity.Kind != kind {
			continue
		}
		if filterLower != "" &&
			!strings.Contains(entity.ID.String(), filterLower) &&
			!strings.Contains(entity.Kind.String(), filterLower) {
			continue
		}
		filtered = append(filtered, entity)
	}
	return filtered
}

func (eb *EntityBrowser) pageBounds(n int) (int, int) {
	totalPages := max((n+eb.pageSize-1)/eb.pageSize, 1)
	eb.currentPage = min(eb.currentPage, totalPages-1)
	start := eb.currentPage * eb.pageSize
	return start, min(start+eb.pageSize, n)
}

// Selected returns the entity picked in the table, or zero.
func (eb *EntityBrowser) Selected() ecs.EntityId {
	return eb.selectedEntityId
}
