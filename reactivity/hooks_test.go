package reactivity_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/delaneyj/reactiveparty/reactivity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingHooks struct {
	reactivity.NopHooks
	tracks, triggers, runs int
	flushes                []reactivity.FlushEvent
}

func (h *countingHooks) OnTrack(reactivity.DebugEvent)        { h.tracks++ }
func (h *countingHooks) OnTrigger(reactivity.DebugEvent)      { h.triggers++ }
func (h *countingHooks) OnEffectRun(*reactivity.EffectRunner) { h.runs++ }
func (h *countingHooks) OnFlush(ev reactivity.FlushEvent)     { h.flushes = append(h.flushes, ev) }

func TestHooks(t *testing.T) {
	a, b := &countingHooks{}, &countingHooks{}
	rs := reactivity.CreateReactiveSystem(reactivity.WithHooks(reactivity.MultiHooks{a, b}))
	state := newState(t, rs, map[string]any{"x": 1})

	reactivity.Effect(rs, func() {
		state.Get("x")
		state.Get("x")
	})
	state.Set("x", 2)
	rs.Task(func() {
		rs.NextTick(func() {})
	})

	for _, h := range []*countingHooks{a, b} {
		assert.Equal(t, 2, h.tracks, "repeat reads track once per run")
		assert.Equal(t, 1, h.triggers)
		assert.Equal(t, 2, h.runs)
		require.Len(t, h.flushes, 1)
		assert.Equal(t, 1, h.flushes[0].Jobs)
		assert.False(t, h.flushes[0].End.Before(h.flushes[0].Start))
	}
}

func TestNopHooksEmbedding(t *testing.T) {
	var h reactivity.Hooks = struct{ reactivity.NopHooks }{}
	rs := reactivity.CreateReactiveSystem(reactivity.WithHooks(h))
	state := newState(t, rs, map[string]any{"x": 1})
	reactivity.Effect(rs, func() {
		state.Get("x")
	})
	assert.True(t, state.Set("x", 2))
}

func TestDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	rs := reactivity.CreateReactiveSystem(reactivity.WithLogger(logger))

	e := reactivity.Effect(rs, func() {})
	e.Stop()
	rs.Task(func() {
		rs.NextTick(func() {})
	})

	out := buf.String()
	assert.Contains(t, out, "effect stopped")
	assert.Contains(t, out, "flushed deferred jobs")
	assert.Contains(t, out, "jobs=1")
}
