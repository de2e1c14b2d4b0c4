package reactivity

// ComputedRef is a lazily evaluated, memoized value derived from tracked
// reads. Reading it inside a computation makes that computation depend on it.
type ComputedRef[T any] struct {
	rs     *ReactiveSystem
	value  T
	dirty  bool
	dep    *dep
	effect *EffectRunner
}

func Computed[T any](rs *ReactiveSystem, getter func() T) *ComputedRef[T] {
	c := &ComputedRef[T]{
		rs:    rs,
		dirty: true,
	}
	c.dep = newDep(c)
	c.effect = newEffectRunner(rs, func() {
		c.value = getter()
	}, Lazy(), WithScheduler(c.markDirty))
	c.effect.computed = true
	return c
}

// markDirty runs when an upstream dependency changes. The value itself is
// recomputed on the next read.
func (c *ComputedRef[T]) markDirty(*EffectRunner) {
	if c.dirty {
		return
	}
	c.dirty = true
	c.rs.triggerDep(c.dep)
}

func (c *ComputedRef[T]) Value() T {
	if c.dirty {
		c.effect.Run()
		c.dirty = false
	}
	c.rs.trackDep(c.dep)
	return c.value
}

// Dirty reports whether the next read will run the getter.
func (c *ComputedRef[T]) Dirty() bool {
	return c.dirty
}

// Stop detaches the computed from its upstream dependencies. The cached value
// is kept and never refreshed again.
func (c *ComputedRef[T]) Stop() {
	c.effect.Stop()
}
