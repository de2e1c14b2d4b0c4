package reactivity

import (
	"fmt"
	"runtime"
	"weak"
)

// Object intercepts reads and writes on a raw container. Reads made while a
// computation runs are tracked per key; writes that change a value notify
// the computations that read that key.
type Object struct {
	rs  *ReactiveSystem
	raw any
	id  identity
	c   Container
}

// Reactive wraps target for tracking. Untrackable values (scalars, strings,
// nil maps and pointers, empty plain slices) and objects that are already
// wrapped are returned unchanged.
func Reactive(rs *ReactiveSystem, target any) any {
	if o, ok := Wrap(rs, target); ok {
		return o
	}
	return target
}

// Wrap returns the wrapper for target, creating and caching it on first use.
// Repeated calls on the same raw target return the same *Object for as long
// as that wrapper is reachable. The cache itself pins neither wrappers nor
// targets.
func Wrap(rs *ReactiveSystem, target any) (*Object, bool) {
	if o, ok := target.(*Object); ok {
		return o, true
	}
	c, id, ok := containerOf(target)
	if !ok {
		return nil, false
	}
	rs.sweepProxies()
	if wp, ok := rs.proxies[id]; ok {
		if o := wp.Value(); o != nil {
			return o, true
		}
	}
	o := &Object{
		rs:  rs,
		raw: target,
		id:  id,
		c:   c,
	}
	rs.proxies[id] = weak.Make(o)
	dead := rs.deadProxies
	runtime.AddCleanup(o, func(id identity) {
		dead.Add(id)
	}, id)
	return o, true
}

// sweepProxies drops cache entries whose wrapper was collected. An entry
// that was replaced by a live wrapper in the meantime is kept.
func (rs *ReactiveSystem) sweepProxies() {
	if rs.deadProxies.Cardinality() == 0 {
		return
	}
	for _, id := range rs.deadProxies.ToSlice() {
		rs.deadProxies.Remove(id)
		if wp, ok := rs.proxies[id]; ok && wp.Value() == nil {
			delete(rs.proxies, id)
		}
	}
}

func IsReactive(v any) bool {
	_, ok := v.(*Object)
	return ok
}

// ToRaw returns the backing value of a wrapper; anything else is returned as is.
func ToRaw(v any) any {
	if o, ok := v.(*Object); ok {
		return o.raw
	}
	return v
}

// As converts a value read from an Object to T. A nil value yields the zero
// T; any other mismatch panics.
func As[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}
	t, ok := v.(T)
	if !ok {
		panic(fmt.Sprintf("reactivity: value of type %T is not %T", v, t))
	}
	return t
}

func (o *Object) Raw() any {
	return o.raw
}

func (o *Object) System() *ReactiveSystem {
	return o.rs
}

func (o *Object) load(key any) (any, bool) {
	if rl, ok := o.c.(refLoader); ok {
		return rl.loadRef(key)
	}
	return o.c.Load(key)
}

// Get reads key, tracking it for the active computation. Nested trackable
// values are returned wrapped.
func (o *Object) Get(key any) any {
	v, _ := o.load(key)
	o.rs.track(o, key)
	if nested, ok := Wrap(o.rs, v); ok {
		return nested
	}
	return v
}

// Set writes value under key. Wrapped values are stored raw. Dependents of
// key run only when the stored value actually changed; adding a new key also
// notifies iteration.
func (o *Object) Set(key, value any) bool {
	value = ToRaw(value)
	old, had := o.c.Load(key)
	if !o.c.Store(key, value) {
		return false
	}
	switch {
	case !had:
		o.rs.trigger(o, key, IterateKey)
	case !SameValue(old, value):
		o.rs.trigger(o, key)
	}
	return true
}

// Delete removes key. Dependents are notified only when the key existed and
// was removed.
func (o *Object) Delete(key any) bool {
	_, had := o.c.Load(key)
	if !had {
		return false
	}
	if !o.c.Delete(key) {
		return false
	}
	o.rs.trigger(o, key, IterateKey)
	return true
}

func (o *Object) Has(key any) bool {
	_, ok := o.c.Load(key)
	o.rs.track(o, key)
	return ok
}

// Keys lists the keys in a stable order and tracks iteration.
func (o *Object) Keys() []any {
	o.rs.track(o, IterateKey)
	return o.c.Keys()
}

func (o *Object) Len() int {
	return len(o.Keys())
}

// Range calls fn for each key in Keys order, reading each value through Get.
// Iteration stops when fn returns false.
func (o *Object) Range(fn func(key, value any) bool) {
	for _, k := range o.Keys() {
		if !fn(k, o.Get(k)) {
			return
		}
	}
}

// Push appends value to a growable array (a wrapped *[]T).
func (o *Object) Push(value any) bool {
	sc, ok := o.c.(sliceContainer)
	if !ok || !sc.growable {
		return false
	}
	return o.Set(sc.rv.Len(), value)
}

func (o *Object) String() string {
	return fmt.Sprintf("reactive(%T)", o.raw)
}
