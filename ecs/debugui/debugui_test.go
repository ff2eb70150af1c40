package debugui

import (
	"reflect"
	"testing"

	"github.com/plus3/leapfrog/ecs"
	"github.com/plus3/leapfrog/gfx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func populate(t *testing.T) *ecs.Registry {
	t.Helper()
	r := ecs.NewRegistry()
	for i, kind := range []ecs.Kind{ecs.KindPlatform, ecs.KindPlayer, ecs.KindHazard, ecs.KindPlatform} {
		e := ecs.NewEntity(kind)
		e.Position = gfx.Vec2{X: float64(10 - i), Y: float64(i)}
		_, err := r.Add(e)
		require.NoError(t, err)
	}
	r.Commit()
	return r
}

func TestKindViewer(t *testing.T) {
	r := populate(t)

	rows := kindRows(r.CollectStats())
	assert.Equal(t, []KindInfo{
		{Kind: ecs.KindPlayer, Count: 1},
		{Kind: ecs.KindPlatform, Count: 2},
		{Kind: ecs.KindHazard, Count: 1},
	}, rows)

	kv := NewKindViewer()
	_, ok := kv.Selected()
	assert.False(t, ok)

	kv.toggle(ecs.KindHazard)
	kind, ok := kv.Selected()
	assert.True(t, ok)
	assert.Equal(t, ecs.KindHazard, kind)

	kv.toggle(ecs.KindHazard)
	_, ok = kv.Selected()
	assert.False(t, ok, "clicking the selected kind again clears it")
}

func TestEntityBrowser(t *testing.T) {
	t.Run("sorting", func(t *testing.T) {
		r := populate(t)
		eb := NewEntityBrowser(nil, 10)
		eb.refresh(r)
		require.Len(t, eb.entities, 4)
		assert.Equal(t, ecs.KindPlatform, eb.entities[0].Kind, "slot order by default")

		eb.sortColumn, eb.sortAscending = columnX, true
		eb.sortEntities(eb.entities)
		assert.Equal(t, 7.0, eb.entities[0].Position.X)

		eb.sortColumn, eb.sortAscending = columnY, false
		eb.sortEntities(eb.entities)
		assert.Equal(t, 3.0, eb.entities[0].Position.Y)
	})

	t.Run("filtering", func(t *testing.T) {
		r := populate(t)
		kinds := NewKindViewer()
		eb := NewEntityBrowser(kinds, 10)
		eb.refresh(r)

		assert.Len(t, eb.filtered(), 4)

		eb.filterText = "HAZ"
		require.Len(t, eb.filtered(), 1)
		assert.Equal(t, ecs.KindHazard, eb.filtered()[0].Kind)

		eb.filterText = ""
		kinds.toggle(ecs.KindPlatform)
		assert.Len(t, eb.filtered(), 2)
	})

	t.Run("selection cleared on removal", func(t *testing.T) {
		r := populate(t)
		eb := NewEntityBrowser(nil, 10)
		eb.refresh(r)

		eb.selectedEntityId = eb.entities[1].ID
		eb.refresh(r)
		assert.Equal(t, eb.entities[1].ID, eb.Selected())

		r.Remove(eb.Selected())
		eb.refresh(r)
		assert.Zero(t, eb.Selected())
		assert.Len(t, eb.entities, 3)
	})

	t.Run("paging", func(t *testing.T) {
		eb := NewEntityBrowser(nil, 3)

		start, end := eb.pageBounds(7)
		assert.Equal(t, 0, start)
		assert.Equal(t, 3, end)

		eb.currentPage = 2
		start, end = eb.pageBounds(7)
		assert.Equal(t, 6, start)
		assert.Equal(t, 7, end)

		start, end = eb.pageBounds(2)
		assert.Equal(t, 0, start, "page clamps when the list shrinks")
		assert.Equal(t, 2, end)

		start, end = eb.pageBounds(0)
		assert.Equal(t, 0, start)
		assert.Equal(t, 0, end)
	})
}

func TestFrameHistory(t *testing.T) {
	h := newFrameHistory(3)
	assert.Zero(t, h.average())

	h.record(10)
	assert.Equal(t, float32(10), h.average())

	h.record(20)
	h.record(30)
	h.record(40)
	assert.Equal(t, float32(30), h.average())
	assert.Equal(t, []float32{40, 20, 30}, h.samples)
}

func TestFieldCache(t *testing.T) {
	type payload struct {
		Exported float64
		hidden   int
		Flag     bool
	}

	fc := newFieldCache()
	fields := fc.get(reflect.TypeOf(payload{}))
	assert.Equal(t, []fieldInfo{{Name: "Exported", Index: 0}, {Name: "Flag", Index: 2}}, fields)
	assert.Nil(t, fc.get(reflect.TypeOf(0)))

	entityFields := fc.get(reflect.TypeOf(ecs.Entity{}))
	var names []string
	for _, f := range entityFields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"Position", "Velocity", "Size", "Sprite", "Events", "Grounded", "Behavior"}, names)
}
