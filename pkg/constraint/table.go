package constraint

import (
	"reflect"
	"sort"
	"sync"
	"time"
)

// TypeTable resolves type names used in constraint expressions.
// Safe for concurrent use.
type TypeTable struct {
	mu    sync.RWMutex
	types map[string]reflect.Type
}

// NewTypeTable creates a table preloaded with the Go builtin types and a few
// common aliases (list, map, bytes, time, duration).
func NewTypeTable() *TypeTable {
	t := &TypeTable{types: make(map[string]reflect.Type)}
	for name, typ := range builtinTypes {
		t.types[name] = typ
	}
	return t
}

var builtinTypes = map[string]reflect.Type{
	"bool":     reflect.TypeFor[bool](),
	"string":   reflect.TypeFor[string](),
	"int":      reflect.TypeFor[int](),
	"int8":     reflect.TypeFor[int8](),
	"int16":    reflect.TypeFor[int16](),
	"int32":    reflect.TypeFor[int32](),
	"int64":    reflect.TypeFor[int64](),
	"uint":     reflect.TypeFor[uint](),
	"uint8":    reflect.TypeFor[uint8](),
	"uint16":   reflect.TypeFor[uint16](),
	"uint32":   reflect.TypeFor[uint32](),
	"uint64":   reflect.TypeFor[uint64](),
	"float32":  reflect.TypeFor[float32](),
	"float64":  reflect.TypeFor[float64](),
	"byte":     reflect.TypeFor[byte](),
	"rune":     reflect.TypeFor[rune](),
	"error":    reflect.TypeFor[error](),
	"bytes":    reflect.TypeFor[[]byte](),
	"list":     reflect.TypeFor[[]any](),
	"map":      reflect.TypeFor[map[string]any](),
	"time":     reflect.TypeFor[time.Time](),
	"duration": reflect.TypeFor[time.Duration](),
}

// Register associates name with typ. An existing entry is overwritten.
func (t *TypeTable) Register(name string, typ reflect.Type) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.types[name] = typ
}

// Lookup returns the type registered under name.
func (t *TypeTable) Lookup(name string) (reflect.Type, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	typ, ok := t.types[name]
	return typ, ok
}

// Names returns the registered names in lexical order.
func (t *TypeTable) Names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	names := make([]string, 0, len(t.types))
	for name := range t.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegisterType registers T under name.
func RegisterType[T any](t *TypeTable, name string) {
	t.Register(name, reflect.TypeFor[T]())
}
