package reactivity

// Scheduler is invoked instead of re-running a computation when one of its
// dependencies changes.
type Scheduler func(e *EffectRunner)

// EffectRunner is a re-runnable computation. Every run re-establishes its
// dependency set from scratch.
type EffectRunner struct {
	rs        *ReactiveSystem
	fn        func()
	active    bool
	scheduler Scheduler
	deps      []*dep

	lazy         bool
	allowRecurse bool
	computed     bool
	onStop       []func()
}

type EffectOption func(*EffectRunner)

func WithScheduler(s Scheduler) EffectOption {
	return func(e *EffectRunner) {
		e.scheduler = s
	}
}

// Lazy skips the initial run; the first Run establishes the dependencies.
func Lazy() EffectOption {
	return func(e *EffectRunner) {
		e.lazy = true
	}
}

// OnStop registers fn to run once when the effect is stopped.
func OnStop(fn func()) EffectOption {
	return func(e *EffectRunner) {
		e.onStop = append(e.onStop, fn)
	}
}

// AllowRecurse lets a write made by the effect body re-trigger the effect
// itself.
func AllowRecurse() EffectOption {
	return func(e *EffectRunner) {
		e.allowRecurse = true
	}
}

// Effect creates a computation over fn and runs it once immediately.
func Effect(rs *ReactiveSystem, fn func(), opts ...EffectOption) *EffectRunner {
	e := newEffectRunner(rs, fn, opts...)
	if !e.lazy {
		e.Run()
	}
	return e
}

func newEffectRunner(rs *ReactiveSystem, fn func(), opts ...EffectOption) *EffectRunner {
	e := &EffectRunner{
		rs:     rs,
		fn:     fn,
		active: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	if rs.activeScope != nil {
		rs.activeScope.add(e)
	}
	return e
}

// Run executes the body. An active runner first drops its previous
// dependencies and tracks the ones read during this run; a stopped runner
// just calls the body.
func (e *EffectRunner) Run() {
	if !e.active {
		e.fn()
		return
	}

	rs := e.rs
	rs.checkGoroutine()
	rs.cleanupEffect(e)

	prev := rs.push(e)
	defer rs.pop(prev)

	if rs.hooks != nil {
		rs.hooks.OnEffectRun(e)
	}
	e.fn()
}

// Stop deactivates the runner for good and releases its dependencies.
func (e *EffectRunner) Stop() {
	if !e.active {
		return
	}
	e.rs.cleanupEffect(e)
	e.active = false
	for _, fn := range e.onStop {
		fn()
	}
	e.onStop = nil
	e.rs.logger.Debug("effect stopped")
}

func (e *EffectRunner) Active() bool {
	return e.active
}

// DepCount reports how many dependency sets the runner currently belongs to.
func (e *EffectRunner) DepCount() int {
	return len(e.deps)
}

// Stop deactivates e. Stopping twice is a no-op.
func Stop(e *EffectRunner) {
	e.Stop()
}
