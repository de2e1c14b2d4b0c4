package reactivity_test

import (
	"testing"

	"github.com/delaneyj/reactiveparty/reactivity"
	"github.com/stretchr/testify/assert"
)

// should pause tracking
func TestShouldPauseTracking(t *testing.T) {
	rs := reactivity.CreateReactiveSystem()
	state := newState(t, rs, map[string]any{"src": 0})

	c := reactivity.Computed(rs, func() int {
		rs.PauseTracking()
		value := state.Get("src").(int)
		rs.ResumeTracking()
		return value
	})
	assert.Equal(t, 0, c.Value())

	state.Set("src", 1)
	assert.Equal(t, 0, c.Value())
}

func TestUntrack(t *testing.T) {
	rs := reactivity.CreateReactiveSystem()
	state := newState(t, rs, map[string]any{"a": 1, "b": 1})

	runs := 0
	reactivity.Effect(rs, func() {
		runs++
		state.Get("a")
		reactivity.Untrack(rs, func() int {
			return state.Get("b").(int)
		})
	})

	state.Set("b", 2)
	assert.Equal(t, 1, runs)
	state.Set("a", 2)
	assert.Equal(t, 2, runs)
}

// should track again inside an effect started while paused
func TestEffectResumesTrackingInsidePause(t *testing.T) {
	rs := reactivity.CreateReactiveSystem()
	state := newState(t, rs, map[string]any{"a": 1})

	runs := 0
	rs.PauseTracking()
	reactivity.Effect(rs, func() {
		runs++
		state.Get("a")
	})
	rs.ResumeTracking()

	state.Set("a", 2)
	assert.Equal(t, 2, runs)
}
