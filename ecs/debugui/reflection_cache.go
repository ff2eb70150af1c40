package debugui

import (
	"reflect"
	"sync"
)

type fieldInfo struct {
	Name  string
	Index int
}

// fieldCache remembers the exported fields of the struct types the
// inspector has shown.
type fieldCache struct {
	mu     sync.RWMutex
	fields map[reflect.Type][]fieldInfo
}

func newFieldCache() *fieldCache {
	return &fieldCache{
		fields: make(map[reflect.Type][]fieldInfo),
	}
}

func (fc *fieldCache) get(t reflect.Type) []fieldInfo {
	fc.mu.RLock()
	cached, ok := fc.fields[t]
	fc.mu.RUnlock()
	if ok {
		return cached
	}

	fc.mu.Lock()
	defer fc.mu.Unlock()

	var fields []fieldInfo
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			if f := t.Field(i); f.IsExported() {
				fields = append(fields, fieldInfo{Name: f.Name, Index: i})
			}
		}
	}
	fc.fields[t] = fields
	return fields
}

var structFields = newFieldCache()
