package reactivity

import "time"

// DebugEvent describes a single track or trigger. Effect is nil for triggers.
type DebugEvent struct {
	Effect *EffectRunner
	Target any
	Key    any
}

// FlushEvent summarises one drain of the deferred queue.
type FlushEvent struct {
	Start  time.Time
	End    time.Time
	Jobs   int
	Errors int
}

// Hooks observes engine activity. Implementations are called synchronously
// from inside tracking and must not read or write reactive state.
type Hooks interface {
	OnTrack(ev DebugEvent)
	OnTrigger(ev DebugEvent)
	OnEffectRun(e *EffectRunner)
	OnFlush(ev FlushEvent)
}

// NopHooks implements Hooks with no-ops; embed it to override a subset.
type NopHooks struct{}

func (NopHooks) OnTrack(DebugEvent)        {}
func (NopHooks) OnTrigger(DebugEvent)      {}
func (NopHooks) OnEffectRun(*EffectRunner) {}
func (NopHooks) OnFlush(FlushEvent)        {}

// MultiHooks fans every event out to each of its members in order.
type MultiHooks []Hooks

func (m MultiHooks) OnTrack(ev DebugEvent) {
	for _, h := range m {
		h.OnTrack(ev)
	}
}

func (m MultiHooks) OnTrigger(ev DebugEvent) {
	for _, h := range m {
		h.OnTrigger(ev)
	}
}

func (m MultiHooks) OnEffectRun(e *EffectRunner) {
	for _, h := range m {
		h.OnEffectRun(e)
	}
}

func (m MultiHooks) OnFlush(ev FlushEvent) {
	for _, h := range m {
		h.OnFlush(ev)
	}
}
