package reactivity

import (
	"fmt"
	"sync"

	"github.com/petermattis/goid"
)

var systems sync.Map // goroutine id -> *ReactiveSystem

// ForGoroutine returns the system bound to the calling goroutine, creating it
// on first use. The returned system panics when used from any other
// goroutine.
func ForGoroutine(opts ...SystemOption) *ReactiveSystem {
	gid := goid.Get()
	if rs, ok := systems.Load(gid); ok {
		return rs.(*ReactiveSystem)
	}
	rs := CreateReactiveSystem(append(opts, WithGoroutineCheck())...)
	systems.Store(gid, rs)
	return rs
}

// ReleaseGoroutine forgets the system bound to the calling goroutine.
func ReleaseGoroutine() {
	systems.Delete(goid.Get())
}

// WithGoroutineCheck binds the system to the goroutine that creates it.
// Tracking, triggering and flushing from another goroutine panic with
// ErrWrongGoroutine.
func WithGoroutineCheck() SystemOption {
	return func(rs *ReactiveSystem) {
		rs.gid = goid.Get()
	}
}

func (rs *ReactiveSystem) checkGoroutine() {
	if rs.gid == 0 {
		return
	}
	if gid := goid.Get(); gid != rs.gid {
		panic(fmt.Errorf("%w: bound to %d, called from %d", ErrWrongGoroutine, rs.gid, gid))
	}
}
