package reactivity

import (
	"io"
	"log/slog"
	"weak"

	mapset "github.com/deckarep/golang-set/v2"
)

// OnErrorFunc receives panics recovered from deferred jobs.
type OnErrorFunc func(err error)

// ReactiveSystem owns every piece of mutable tracking state: the dependency
// registry, the active computation stack, the wrapper cache and the deferred
// job queue. It is not safe for concurrent use; confine each system to one
// goroutine (see ForGoroutine and WithGoroutineCheck).
type ReactiveSystem struct {
	targets map[identity]map[any]*dep

	// proxies holds wrappers weakly. Cleanups run on another goroutine, so
	// they only record the identity in deadProxies (a thread-safe set) and
	// the entry is removed on the next Wrap.
	proxies     map[identity]weak.Pointer[Object]
	deadProxies mapset.Set[identity]

	stack       []*EffectRunner
	shouldTrack bool
	pauseStack  []bool

	batchDepth int
	batched    []*EffectRunner
	batchedSet mapset.Set[*EffectRunner]

	jobs     []func()
	flushing bool

	activeScope *EffectScope

	gid     int64
	logger  *slog.Logger
	onError OnErrorFunc
	hooks   Hooks
}

// SystemOption configures a ReactiveSystem.
type SystemOption func(*ReactiveSystem)

// WithLogger sets the logger used for debug records. The default discards.
func WithLogger(logger *slog.Logger) SystemOption {
	return func(rs *ReactiveSystem) {
		if logger != nil {
			rs.logger = logger
		}
	}
}

// WithErrorHandler recovers panics raised by deferred jobs and hands them to
// fn instead of letting them escape Flush.
func WithErrorHandler(fn OnErrorFunc) SystemOption {
	return func(rs *ReactiveSystem) {
		rs.onError = fn
	}
}

// WithHooks installs debug hooks.
func WithHooks(h Hooks) SystemOption {
	return func(rs *ReactiveSystem) {
		rs.hooks = h
	}
}

func CreateReactiveSystem(opts ...SystemOption) *ReactiveSystem {
	rs := &ReactiveSystem{
		targets:     make(map[identity]map[any]*dep),
		proxies:     make(map[identity]weak.Pointer[Object]),
		deadProxies: mapset.NewSet[identity](),
		shouldTrack: true,
		batchedSet:  mapset.NewThreadUnsafeSet[*EffectRunner](),
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(rs)
	}
	return rs
}

// ActiveEffect returns the computation currently running, or nil.
func (rs *ReactiveSystem) ActiveEffect() *EffectRunner {
	if n := len(rs.stack); n > 0 {
		return rs.stack[n-1]
	}
	return nil
}

// push makes e the active computation and turns tracking on for its body.
// The returned value must be handed back to pop.
func (rs *ReactiveSystem) push(e *EffectRunner) (prevShouldTrack bool) {
	rs.stack = append(rs.stack, e)
	prevShouldTrack = rs.shouldTrack
	rs.shouldTrack = true
	return prevShouldTrack
}

func (rs *ReactiveSystem) pop(prevShouldTrack bool) {
	last := len(rs.stack) - 1
	rs.stack[last] = nil
	rs.stack = rs.stack[:last]
	rs.shouldTrack = prevShouldTrack
}

func (rs *ReactiveSystem) PauseTracking() {
	rs.pauseStack = append(rs.pauseStack, rs.shouldTrack)
	rs.shouldTrack = false
}

func (rs *ReactiveSystem) ResumeTracking() {
	lastIdx := len(rs.pauseStack) - 1
	if lastIdx < 0 {
		rs.shouldTrack = true
		return
	}
	rs.shouldTrack = rs.pauseStack[lastIdx]
	rs.pauseStack = rs.pauseStack[:lastIdx]
}

// Untrack runs fn without recording any dependency for the active computation.
func Untrack[T any](rs *ReactiveSystem, fn func() T) T {
	rs.PauseTracking()
	defer rs.ResumeTracking()
	return fn()
}

func (rs *ReactiveSystem) isTracking() bool {
	return rs.shouldTrack && len(rs.stack) > 0
}

// track records that the active computation read key on o.
func (rs *ReactiveSystem) track(o *Object, key any) {
	rs.checkGoroutine()
	if !rs.isTracking() {
		return
	}

	byKey, ok := rs.targets[o.id]
	if !ok {
		byKey = make(map[any]*dep)
		rs.targets[o.id] = byKey
	}
	d, ok := byKey[key]
	if !ok {
		d = newDep(o.raw)
		d.target = o.id
		d.key = key
		d.keyed = true
		byKey[key] = d
	}
	rs.trackDep(d)
}

func (rs *ReactiveSystem) trackDep(d *dep) {
	if !rs.isTracking() {
		return
	}
	e := rs.ActiveEffect()
	// A body that stopped its own runner keeps executing; nothing it reads
	// afterwards may be recorded.
	if !e.active || !d.subs.Add(e) {
		return
	}
	e.deps = append(e.deps, d)

	if rs.hooks != nil {
		rs.hooks.OnTrack(DebugEvent{Effect: e, Target: d.raw, Key: d.key})
	}
}

// trigger notifies every computation that read one of keys on o.
func (rs *ReactiveSystem) trigger(o *Object, keys ...any) {
	rs.checkGoroutine()
	byKey, ok := rs.targets[o.id]
	if !ok {
		return
	}

	var snapshot []*EffectRunner
	for _, key := range keys {
		d, ok := byKey[key]
		if !ok {
			continue
		}
		if rs.hooks != nil {
			rs.hooks.OnTrigger(DebugEvent{Target: o.raw, Key: key})
		}
		snapshot = append(snapshot, d.subs.ToSlice()...)
	}
	if len(keys) > 1 {
		snapshot = dedupe(snapshot)
	}
	rs.notify(snapshot)
}

func (rs *ReactiveSystem) triggerDep(d *dep) {
	if d.subs.Cardinality() == 0 {
		return
	}
	if rs.hooks != nil {
		rs.hooks.OnTrigger(DebugEvent{Target: d.raw})
	}
	rs.notify(d.subs.ToSlice())
}

func dedupe(effects []*EffectRunner) []*EffectRunner {
	if len(effects) < 2 {
		return effects
	}
	seen := mapset.NewThreadUnsafeSet[*EffectRunner]()
	out := effects[:0]
	for _, e := range effects {
		if seen.Add(e) {
			out = append(out, e)
		}
	}
	return out
}

func (rs *ReactiveSystem) notify(effects []*EffectRunner) {
	running := rs.ActiveEffect()
	for _, e := range effects {
		if !e.active {
			continue
		}
		if e == running && !e.allowRecurse {
			continue
		}
		if rs.batchDepth > 0 && !e.computed {
			if rs.batchedSet.Add(e) {
				rs.batched = append(rs.batched, e)
			}
			continue
		}
		rs.schedule(e)
	}
}

func (rs *ReactiveSystem) schedule(e *EffectRunner) {
	if e.scheduler != nil {
		e.scheduler(e)
		return
	}
	e.Run()
}

// cleanupEffect removes e from every dependency set it belongs to and drops
// registry entries nobody depends on anymore.
func (rs *ReactiveSystem) cleanupEffect(e *EffectRunner) {
	for _, d := range e.deps {
		d.subs.Remove(e)
		if d.keyed && d.subs.Cardinality() == 0 {
			rs.dropDep(d)
		}
	}
	clear(e.deps)
	e.deps = e.deps[:0]
}

func (rs *ReactiveSystem) dropDep(d *dep) {
	byKey, ok := rs.targets[d.target]
	if !ok || byKey[d.key] != d {
		return
	}
	delete(byKey, d.key)
	if len(byKey) == 0 {
		delete(rs.targets, d.target)
	}
}

func (rs *ReactiveSystem) StartBatch() {
	rs.batchDepth++
}

// EndBatch closes the innermost batch and, once the outermost one closes,
// runs the queued computations. It panics with ErrUnbalancedBatch when no
// batch is open.
func (rs *ReactiveSystem) EndBatch() {
	if rs.batchDepth == 0 {
		panic(ErrUnbalancedBatch)
	}
	rs.batchDepth--
	if rs.batchDepth > 0 {
		return
	}
	for len(rs.batched) > 0 {
		e := rs.batched[0]
		rs.batched[0] = nil
		rs.batched = rs.batched[1:]
		rs.batchedSet.Remove(e)
		if e.active {
			rs.schedule(e)
		}
	}
}

// Batch defers re-running notified computations until fn returns. Each
// computation runs at most once per batch.
func (rs *ReactiveSystem) Batch(fn func()) {
	rs.StartBatch()
	defer rs.EndBatch()
	fn()
}
