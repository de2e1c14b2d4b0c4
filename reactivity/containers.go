package reactivity

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
)

// Container is raw storage that can be wrapped into an Object. Implementations
// must have a pointer or map underlying type so their identity is stable.
type Container interface {
	Load(key any) (value any, ok bool)
	// Store reports whether the value was written.
	Store(key, value any) bool
	// Delete reports whether the key was removed.
	Delete(key any) bool
	Keys() []any
}

// refLoader is implemented by containers whose nested values can be handed
// out by address, making nested structs and slices trackable in place.
type refLoader interface {
	loadRef(key any) (value any, ok bool)
}

var recordType = reflect.TypeOf(map[string]any(nil))

// containerOf reports whether v can be tracked, and if so returns the storage
// adapter and raw identity for it.
func containerOf(v any) (Container, identity, bool) {
	switch t := v.(type) {
	case nil, *Object:
		return nil, identity{}, false
	case map[string]any:
		if t == nil {
			return nil, identity{}, false
		}
		return record(t), identity{typ: recordType, ptr: uintptr(reflect.ValueOf(t).UnsafePointer())}, true
	case Container:
		rv := reflect.ValueOf(t)
		switch rv.Kind() {
		case reflect.Pointer, reflect.Map:
			if rv.IsNil() {
				return nil, identity{}, false
			}
			return t, identity{typ: rv.Type(), ptr: uintptr(rv.UnsafePointer())}, true
		}
		return nil, identity{}, false
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.IsNil() {
			return nil, identity{}, false
		}
		return mapContainer{rv: rv}, identity{typ: rv.Type(), ptr: uintptr(rv.UnsafePointer())}, true
	case reflect.Slice:
		if rv.Len() == 0 {
			return nil, identity{}, false
		}
		return sliceContainer{rv: rv}, identity{typ: rv.Type(), ptr: uintptr(rv.UnsafePointer()), n: rv.Len()}, true
	case reflect.Pointer:
		if rv.IsNil() {
			return nil, identity{}, false
		}
		id := identity{typ: rv.Type(), ptr: uintptr(rv.UnsafePointer())}
		switch rv.Elem().Kind() {
		case reflect.Slice:
			return sliceContainer{rv: rv.Elem(), growable: true}, id, true
		case reflect.Struct:
			return structContainer{rv: rv.Elem()}, id, true
		}
	}
	return nil, identity{}, false
}

// record is the fast path for map[string]any.
type record map[string]any

func (r record) Load(key any) (any, bool) {
	k, ok := key.(string)
	if !ok {
		return nil, false
	}
	v, ok := r[k]
	return v, ok
}

func (r record) Store(key, value any) bool {
	k, ok := key.(string)
	if !ok {
		return false
	}
	r[k] = value
	return true
}

func (r record) Delete(key any) bool {
	k, ok := key.(string)
	if !ok {
		return false
	}
	if _, ok := r[k]; !ok {
		return false
	}
	delete(r, k)
	return true
}

func (r record) Keys() []any {
	keys := make([]any, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeys)
	return keys
}

type mapContainer struct {
	rv reflect.Value
}

func (m mapContainer) key(key any) (reflect.Value, bool) {
	return assignable(key, m.rv.Type().Key())
}

func (m mapContainer) Load(key any) (any, bool) {
	k, ok := m.key(key)
	if !ok {
		return nil, false
	}
	v := m.rv.MapIndex(k)
	if !v.IsValid() {
		return nil, false
	}
	return v.Interface(), true
}

func (m mapContainer) Store(key, value any) bool {
	k, ok := m.key(key)
	if !ok {
		return false
	}
	v, ok := assignable(value, m.rv.Type().Elem())
	if !ok {
		return false
	}
	m.rv.SetMapIndex(k, v)
	return true
}

func (m mapContainer) Delete(key any) bool {
	k, ok := m.key(key)
	if !ok || !m.rv.MapIndex(k).IsValid() {
		return false
	}
	m.rv.SetMapIndex(k, reflect.Value{})
	return true
}

func (m mapContainer) Keys() []any {
	keys := make([]any, 0, m.rv.Len())
	for _, k := range m.rv.MapKeys() {
		keys = append(keys, k.Interface())
	}
	slices.SortFunc(keys, compareKeys)
	return keys
}

// sliceContainer tracks elements by int index. Only slices reached through a
// pointer can grow.
type sliceContainer struct {
	rv       reflect.Value
	growable bool
}

func (s sliceContainer) index(key any) (int, bool) {
	i, ok := key.(int)
	return i, ok && i >= 0
}

func (s sliceContainer) Load(key any) (any, bool) {
	i, ok := s.index(key)
	if !ok || i >= s.rv.Len() {
		return nil, false
	}
	return s.rv.Index(i).Interface(), true
}

func (s sliceContainer) Store(key, value any) bool {
	i, ok := s.index(key)
	if !ok {
		return false
	}
	v, ok := assignable(value, s.rv.Type().Elem())
	if !ok {
		return false
	}
	switch n := s.rv.Len(); {
	case i < n:
		s.rv.Index(i).Set(v)
		return true
	case i == n && s.growable:
		s.rv.Set(reflect.Append(s.rv, v))
		return true
	}
	return false
}

// Delete zeroes the element; slices keep their length.
func (s sliceContainer) Delete(key any) bool {
	i, ok := s.index(key)
	if !ok || i >= s.rv.Len() {
		return false
	}
	s.rv.Index(i).SetZero()
	return true
}

func (s sliceContainer) Keys() []any {
	keys := make([]any, s.rv.Len())
	for i := range keys {
		keys[i] = i
	}
	return keys
}

// structContainer exposes the exported, directly declared fields of an
// addressable struct by name.
type structContainer struct {
	rv reflect.Value
}

func (s structContainer) field(key any) (reflect.Value, bool) {
	name, ok := key.(string)
	if !ok {
		return reflect.Value{}, false
	}
	sf, ok := s.rv.Type().FieldByName(name)
	if !ok || !sf.IsExported() || len(sf.Index) != 1 {
		return reflect.Value{}, false
	}
	return s.rv.Field(sf.Index[0]), true
}

func (s structContainer) Load(key any) (any, bool) {
	f, ok := s.field(key)
	if !ok {
		return nil, false
	}
	return f.Interface(), true
}

func (s structContainer) loadRef(key any) (any, bool) {
	f, ok := s.field(key)
	if !ok {
		return nil, false
	}
	switch f.Kind() {
	case reflect.Struct, reflect.Slice:
		return f.Addr().Interface(), true
	}
	return f.Interface(), true
}

func (s structContainer) Store(key, value any) bool {
	f, ok := s.field(key)
	if !ok || !f.CanSet() {
		return false
	}
	v, ok := assignable(value, f.Type())
	if !ok {
		return false
	}
	f.Set(v)
	return true
}

// Delete always fails: struct fields cannot be removed.
func (s structContainer) Delete(any) bool {
	return false
}

func (s structContainer) Keys() []any {
	t := s.rv.Type()
	keys := make([]any, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if sf := t.Field(i); sf.IsExported() {
			keys = append(keys, sf.Name)
		}
	}
	return keys
}

func assignable(v any, t reflect.Type) (reflect.Value, bool) {
	if v == nil {
		switch t.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(t), true
		}
		return reflect.Value{}, false
	}
	rv := reflect.ValueOf(v)
	if !rv.Type().AssignableTo(t) {
		return reflect.Value{}, false
	}
	return rv, true
}

func compareKeys(a, b any) int {
	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return cmp.Compare(x, y)
		}
	case int:
		if y, ok := b.(int); ok {
			return cmp.Compare(x, y)
		}
	}
	return cmp.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

// SameValue reports whether a write of b over a is a no-op. Comparable
// values use ==, maps and slices compare by backing storage, functions never
// compare equal.
func SameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	if va.Comparable() {
		return va.Equal(vb)
	}
	switch va.Kind() {
	case reflect.Map:
		return va.UnsafePointer() == vb.UnsafePointer()
	case reflect.Slice:
		return va.UnsafePointer() == vb.UnsafePointer() && va.Len() == vb.Len()
	}
	return false
}
