package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticGraphSum(t *testing.T) {
	counter := new(int64)

	//  s0   s1
	//  | \ / |
	//  |  X  |
	//  | / \ |
	//  n0   n1
	graph, isDynamic := benchmarkMakeGraph(&benchmarkMakeGraphConfig{
		counter:        counter,
		width:          2,
		totalLayers:    2,
		nSources:       2,
		staticFraction: 1,
	})
	require.Len(t, graph.layers, 1)
	assert.Equal(t, [][]bool{{false, false}}, isDynamic)

	sum := benchmarkRunGraph(&benchmarkRunGraphConfig{
		graph:        graph,
		iterations:   2,
		readFraction: 1,
	})
	// s0 is rewritten with its own value, then s1 becomes 2.
	assert.Equal(t, 4, sum)
	assert.Equal(t, int64(4), *counter)
}

func TestGraphOnlyRecomputesWhatChanged(t *testing.T) {
	counter := new(int64)
	graph, _ := benchmarkMakeGraph(&benchmarkMakeGraphConfig{
		counter:        counter,
		width:          10,
		totalLayers:    5,
		nSources:       2,
		staticFraction: 1,
	})

	sum := benchmarkRunGraph(&benchmarkRunGraphConfig{
		graph:        graph,
		iterations:   1,
		readFraction: 1,
	})
	assert.Positive(t, sum)
	evaluated := *counter
	assert.Equal(t, int64(40), evaluated, "every node is computed once")

	for _, leaf := range graph.layers[len(graph.layers)-1] {
		leaf.Value()
	}
	assert.Equal(t, evaluated, *counter, "reads without writes are memoized")
}

func TestDynamicGraphMatchesRepeatRuns(t *testing.T) {
	cfg := &benchmarkMakeGraphConfig{
		counter:        new(int64),
		width:          10,
		totalLayers:    6,
		nSources:       4,
		staticFraction: 0.5,
	}
	a, _ := benchmarkMakeGraph(cfg)
	b, _ := benchmarkMakeGraph(cfg)

	run := func(g *benchmarkGraph) int {
		return benchmarkRunGraph(&benchmarkRunGraphConfig{graph: g, iterations: 50, readFraction: 0.5})
	}
	assert.Equal(t, run(a), run(b))
}

func TestLoadConfigs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "graphs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
repeats: 2
tests:
  - name: tiny
    width: 2
    total_layers: 3
    static_fraction: 1
    n_sources: 2
    read_fraction: 1
    iterations: 10
`), 0o644))

	file, err := loadConfigs(path)
	require.NoError(t, err)
	assert.Equal(t, 2, file.Repeats)
	require.Len(t, file.Tests, 1)
	assert.Equal(t, benchmarkTestConfig{
		Name:           "tiny",
		Width:          2,
		TotalLayers:    3,
		StaticFraction: 1,
		NSources:       2,
		ReadFraction:   1,
		Iterations:     10,
	}, file.Tests[0])

	require.NoError(t, os.WriteFile(path, []byte("tests:\n  - name: bad\n    width: 0\n"), 0o644))
	_, err = loadConfigs(path)
	assert.ErrorContains(t, err, "width must be positive")
}

func TestDefaultConfigsAreValid(t *testing.T) {
	for _, cfg := range defaultConfigs {
		assert.NoError(t, cfg.validate(), cfg.Name)
	}
}
