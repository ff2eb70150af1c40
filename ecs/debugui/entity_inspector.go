package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/leapfrog/ecs"
)

// EntityInspector shows and edits the fields of the entity selected in the
// browser, including its behavior payload.
type EntityInspector struct {
	Browser *EntityBrowser
}

func NewEntityInspector(browser *EntityBrowser) *EntityInspector {
	return &EntityInspector{Browser: browser}
}

func (ei *EntityInspector) Render(frame *ecs.UpdateFrame) {
	if !imgui.BeginV("Entity Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	id := ei.Browser.Selected()
	if id == 0 {
		imgui.Text("No entity selected")
		return
	}
	e, ok := frame.Registry.Get(id)
	if !ok {
		imgui.Text(fmt.Sprintf("Entity %s is gone", id))
		return
	}

	imgui.Text(fmt.Sprintf("Entity ID: %s", id))
	imgui.Text(fmt.Sprintf("Kind: %s", e.Kind()))
	imgui.Separator()

	renderStruct(reflect.ValueOf(e).Elem())
}

func renderStruct(val reflect.Value) {
	for _, f := range structFields.get(val.Type()) {
		renderField(f.Name, val.Field(f.Index))
	}
}

// renderField draws an input for v. Edits are written straight back, so v
// must be addressable for them to stick.
func renderField(name string, val reflect.Value) {
	if val.Kind() == reflect.Interface || val.Kind() == reflect.Ptr {
		if val.IsNil() {
			imgui.Text(fmt.Sprintf("%s: nil", name))
			return
		}
		val = val.Elem()
		if val.Kind() == reflect.Ptr {
			val = val.Elem()
		}
	}

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) && val.CanSet() {
			val.SetInt(int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) && v >= 0 && val.CanSet() {
			val.SetUint(uint64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(fmt.Sprintf("##%s", name), &v) && val.CanSet() {
			val.SetFloat(float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) && val.CanSet() {
			val.SetBool(v)
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(fmt.Sprintf("%s (%s)", name, val.Type().Name())) {
			renderStruct(val)
			imgui.TreePop()
		}

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
}
