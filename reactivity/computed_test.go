package reactivity_test

import (
	"fmt"
	"testing"

	"github.com/delaneyj/reactiveparty/reactivity"
	"github.com/stretchr/testify/assert"
)

// should only run the getter once per upstream change
func TestComputedMemoization(t *testing.T) {
	rs := reactivity.CreateReactiveSystem()
	state := newState(t, rs, map[string]any{"a": 1})

	calls := 0
	c := reactivity.Computed(rs, func() int {
		calls++
		return state.Get("a").(int) * 2
	})
	assert.Equal(t, 0, calls, "computed values are lazy")
	assert.True(t, c.Dirty())

	assert.Equal(t, 2, c.Value())
	assert.Equal(t, 2, c.Value())
	assert.Equal(t, 1, calls)

	state.Set("a", 5)
	assert.Equal(t, 1, calls)
	assert.True(t, c.Dirty())

	assert.Equal(t, 10, c.Value())
	assert.Equal(t, 10, c.Value())
	assert.Equal(t, 2, calls)
}

func TestComputedDropAbaUpdates(t *testing.T) {
	rs := reactivity.CreateReactiveSystem()
	state := newState(t, rs, map[string]any{"a": 2})

	//     A
	//   / |
	//  B  |
	//   \ |
	//     C
	//     |
	//     D
	b := reactivity.Computed(rs, func() int {
		return state.Get("a").(int) - 1
	})
	c := reactivity.Computed(rs, func() int {
		return state.Get("a").(int) + b.Value()
	})
	callCount := 0
	d := reactivity.Computed(rs, func() string {
		callCount++
		return fmt.Sprintf("d: %d", c.Value())
	})

	assert.Equal(t, "d: 3", d.Value())
	assert.Equal(t, 1, callCount)

	state.Set("a", 4)
	assert.Equal(t, "d: 7", d.Value())
	assert.Equal(t, 2, callCount)
}

func TestComputedDiamondRunsOnce(t *testing.T) {
	rs := reactivity.CreateReactiveSystem()
	state := newState(t, rs, map[string]any{"a": "a"})

	//     A
	//   /   \
	//  B     C
	//   \   /
	//     D
	b := reactivity.Computed(rs, func() string {
		return state.Get("a").(string)
	})
	c := reactivity.Computed(rs, func() string {
		return state.Get("a").(string)
	})
	calls := 0
	d := reactivity.Computed(rs, func() string {
		calls++
		return b.Value() + " " + c.Value()
	})

	assert.Equal(t, "a a", d.Value())
	assert.Equal(t, 1, calls)

	state.Set("a", "aa")
	assert.Equal(t, "aa aa", d.Value())
	assert.Equal(t, 2, calls)
}

// should re-run an effect that reads a computed when its upstream changes
func TestComputedInsideEffect(t *testing.T) {
	rs := reactivity.CreateReactiveSystem()
	state := newState(t, rs, map[string]any{"first": "Ada", "last": "Lovelace"})

	full := reactivity.Computed(rs, func() string {
		return state.Get("first").(string) + " " + state.Get("last").(string)
	})

	var seen []string
	reactivity.Effect(rs, func() {
		seen = append(seen, full.Value())
	})

	state.Set("last", "Byron")
	state.Set("last", "Byron")
	assert.Equal(t, []string{"Ada Lovelace", "Ada Byron"}, seen)
}

func TestComputedChain(t *testing.T) {
	rs := reactivity.CreateReactiveSystem()
	state := newState(t, rs, map[string]any{"n": 1})

	head := reactivity.Computed(rs, func() int {
		return state.Get("n").(int)
	})
	current := head
	for i := 0; i < 10; i++ {
		prev := current
		current = reactivity.Computed(rs, func() int {
			return prev.Value() + 1
		})
	}
	tail := current

	assert.Equal(t, 11, tail.Value())
	state.Set("n", 5)
	assert.Equal(t, 15, tail.Value())
}

func TestComputedStop(t *testing.T) {
	rs := reactivity.CreateReactiveSystem()
	state := newState(t, rs, map[string]any{"a": 1})

	c := reactivity.Computed(rs, func() int {
		return state.Get("a").(int)
	})
	assert.Equal(t, 1, c.Value())

	c.Stop()
	state.Set("a", 2)
	assert.False(t, c.Dirty())
	assert.Equal(t, 1, c.Value())
}
