package reactivity

import (
	"fmt"
	"reflect"

	mapset "github.com/deckarep/golang-set/v2"
)

// Flush selects when a watcher reacts to a change.
type Flush int

const (
	// FlushSync reacts inside the write that caused the change.
	FlushSync Flush = iota
	// FlushPost defers the reaction to the next Flush of the system. Several
	// writes before that collapse into one callback.
	FlushPost
)

func (f Flush) String() string {
	switch f {
	case FlushSync:
		return "sync"
	case FlushPost:
		return "post"
	}
	return fmt.Sprintf("Flush(%d)", int(f))
}

// WatchCallback receives the new and previous value of a watched source.
// Calling onCleanup registers a function that runs before the next callback
// and when the watcher is stopped.
type WatchCallback[T any] func(newValue, oldValue T, onCleanup func(func()))

type watchOptions struct {
	immediate bool
	deep      bool
	flush     Flush
}

type WatchOption func(*watchOptions)

// Immediate calls the callback once at creation with the zero value as the
// previous value.
func Immediate() WatchOption {
	return func(o *watchOptions) {
		o.immediate = true
	}
}

// Deep tracks every nested key reachable from the source's result, and
// calls the callback on every change even when the result is the same
// object.
func Deep() WatchOption {
	return func(o *watchOptions) {
		o.deep = true
	}
}

func WithFlush(f Flush) WatchOption {
	return func(o *watchOptions) {
		o.flush = f
	}
}

// Watch observes source and calls cb when its result changes. Source may be
// a func() T getter, a *ComputedRef[T], an *Object (watched deeply) or a
// plain T, which never changes. The returned function stops the watcher.
func Watch[T any](rs *ReactiveSystem, source any, cb WatchCallback[T], opts ...WatchOption) (stop func()) {
	o := &watchOptions{}
	for _, opt := range opts {
		opt(o)
	}

	getter := watchGetter[T](source, o)
	if o.deep {
		shallow := getter
		getter = func() T {
			v := shallow()
			traverse(rs, v, mapset.NewThreadUnsafeSet[identity]())
			return v
		}
	}

	var (
		oldValue, newValue T
		cleanup            func()
		queued             bool
		effect             *EffectRunner
	)

	runCleanup := func() {
		if cleanup == nil {
			return
		}
		fn := cleanup
		cleanup = nil
		fn()
	}
	onCleanup := func(fn func()) {
		cleanup = fn
	}

	job := func() {
		if !effect.Active() {
			return
		}
		effect.Run()
		if !o.immediate && !o.deep && SameValue(newValue, oldValue) {
			return
		}
		runCleanup()
		Untrack(rs, func() struct{} {
			cb(newValue, oldValue, onCleanup)
			return struct{}{}
		})
		oldValue = newValue
	}

	var scheduler Scheduler
	switch o.flush {
	case FlushPost:
		scheduler = func(*EffectRunner) {
			if queued {
				return
			}
			queued = true
			rs.queueJob(func() {
				queued = false
				if !effect.Active() {
					rs.logger.Debug("skipped deferred job of stopped watcher")
					return
				}
				job()
			})
		}
	default:
		scheduler = func(*EffectRunner) {
			job()
		}
	}

	effect = newEffectRunner(rs, func() {
		newValue = getter()
	}, Lazy(), WithScheduler(scheduler), OnStop(runCleanup))

	if o.immediate {
		job()
	} else {
		effect.Run()
		oldValue = newValue
	}

	return effect.Stop
}

func watchGetter[T any](source any, o *watchOptions) func() T {
	switch s := source.(type) {
	case func() T:
		return s
	case *ComputedRef[T]:
		return s.Value
	case *Object:
		v, ok := any(s).(T)
		if !ok {
			panic(fmt.Errorf("%w: %s cannot be watched as %T", ErrInvalidWatchSource, s, v))
		}
		o.deep = true
		return func() T {
			return v
		}
	case T:
		// With an interface T any getter matches here; only a source of
		// exactly type T is a constant.
		if st := reflect.TypeOf(s); st.Kind() == reflect.Func && st != reflect.TypeFor[T]() {
			break
		}
		return func() T {
			return s
		}
	}
	var zero T
	panic(fmt.Errorf("%w: %T is not a getter, computed or %T", ErrInvalidWatchSource, source, zero))
}
