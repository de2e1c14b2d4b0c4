package main

import (
	"math"
	"math/rand"

	"github.com/delaneyj/reactiveparty/reactivity"
)

type benchmarkGraph struct {
	rs      *reactivity.ReactiveSystem
	sources *reactivity.Object
	layers  [][]*reactivity.ComputedRef[int]
}

type benchmarkMakeGraphConfig struct {
	counter                      *int64
	width, totalLayers, nSources int
	staticFraction               float64
	opts                         []reactivity.SystemOption
}

// benchmarkMakeGraph tracks width integer sources in one slice and stacks
// totalLayers-1 rows of computed values on top of them.
func benchmarkMakeGraph(cfg *benchmarkMakeGraphConfig) (graph *benchmarkGraph, isDynamic [][]bool) {
	rs := reactivity.CreateReactiveSystem(cfg.opts...)
	raw := make([]int, cfg.width)
	for i := range raw {
		raw[i] = i
	}
	sources, _ := reactivity.Wrap(rs, raw)

	readers := make([]func() int, cfg.width)
	for i := range readers {
		readers[i] = func() int {
			return sources.Get(i).(int)
		}
	}

	graph = &benchmarkGraph{rs: rs, sources: sources}
	graph.layers, isDynamic = makeBenchmarkDependentRows(&benchmarkMakeDependentRowsConfig{
		rs:             rs,
		sources:        readers,
		numRows:        cfg.totalLayers - 1,
		counter:        cfg.counter,
		staticFraction: cfg.staticFraction,
		nSources:       cfg.nSources,
	})
	return graph, isDynamic
}

type benchmarkRunGraphConfig struct {
	graph        *benchmarkGraph
	iterations   int
	readFraction float64
}

// benchmarkRunGraph writes one of the sources per iteration and reads some
// or all of the leaves, returning the sum of the read leaves at the end.
func benchmarkRunGraph(cfg *benchmarkRunGraphConfig) int {
	random := rand.New(rand.NewSource(0))
	g := cfg.graph
	leaves := g.layers[len(g.layers)-1]
	skipCount := int(math.Round(float64(len(leaves)) * (1 - cfg.readFraction)))
	readLeaves := benchmarkRemoveElems(leaves, skipCount, random)
	nSources := g.sources.Len()

	for i := 0; i < cfg.iterations; i++ {
		g.rs.Batch(func() {
			sourceDex := i % nSources
			g.sources.Set(sourceDex, i+sourceDex)
		})

		for _, leaf := range readLeaves {
			leaf.Value()
		}
	}

	sum := 0
	for _, leaf := range readLeaves {
		sum += leaf.Value()
	}
	return sum
}

func benchmarkRemoveElems[T any](src []T, rmCount int, rand *rand.Rand) []T {
	copyWithRemovals := make([]T, len(src))
	copy(copyWithRemovals, src)
	for i := 0; i < rmCount; i++ {
		rmDex := rand.Intn(len(copyWithRemovals))
		copyWithRemovals[rmDex] = copyWithRemovals[len(copyWithRemovals)-1]
		copyWithRemovals = copyWithRemovals[:len(copyWithRemovals)-1]
	}
	return copyWithRemovals
}

type benchmarkMakeDependentRowsConfig struct {
	rs                *reactivity.ReactiveSystem
	sources           []func() int
	numRows, nSources int
	counter           *int64
	staticFraction    float64
}

func makeBenchmarkDependentRows(cfg *benchmarkMakeDependentRowsConfig) (rows [][]*reactivity.ComputedRef[int], allDynamic [][]bool) {
	prevRow := cfg.sources

	random := rand.New(rand.NewSource(0))
	rows = make([][]*reactivity.ComputedRef[int], cfg.numRows)
	allDynamic = make([][]bool, cfg.numRows)
	for l := 0; l < cfg.numRows; l++ {
		row, isDynamic := makeBenchmarkRow(&benchmarkRowConfig{
			rs:             cfg.rs,
			sources:        prevRow,
			counter:        cfg.counter,
			staticFraction: cfg.staticFraction,
			nSources:       cfg.nSources,
			rand:           random,
		})
		rows[l] = row
		allDynamic[l] = isDynamic

		prevRow = make([]func() int, len(row))
		for i, c := range row {
			prevRow[i] = c.Value
		}
	}

	return rows, allDynamic
}

type benchmarkRowConfig struct {
	rs             *reactivity.ReactiveSystem
	sources        []func() int
	counter        *int64
	staticFraction float64
	nSources       int
	rand           *rand.Rand
}

func makeBenchmarkRow(cfg *benchmarkRowConfig) (row []*reactivity.ComputedRef[int], isDynamic []bool) {
	row = make([]*reactivity.ComputedRef[int], len(cfg.sources))
	isDynamic = make([]bool, len(cfg.sources))

	for myDex := range cfg.sources {
		mySources := make([]func() int, 0, cfg.nSources)
		for sourceDex := 0; sourceDex < cfg.nSources; sourceDex++ {
			mySources = append(mySources, cfg.sources[(myDex+sourceDex)%len(cfg.sources)])
		}

		staticNode := cfg.rand.Float64() < cfg.staticFraction
		if staticNode || len(mySources) < 2 {
			// static node, always reference sources
			row[myDex] = reactivity.Computed(cfg.rs, func() int {
				*cfg.counter++
				sum := 0
				for _, source := range mySources {
					sum += source()
				}
				return sum
			})
			continue
		}

		first := mySources[0]
		tail := mySources[1:]
		row[myDex] = reactivity.Computed(cfg.rs, func() int {
			*cfg.counter++
			sum := first()
			shouldDrop := sum&0x1 > 0
			dropDex := sum % len(tail)

			for i := 0; i < len(tail); i++ {
				if shouldDrop && i == dropDex {
					continue
				}
				sum += tail[i]()
			}
			return sum
		})
		isDynamic[myDex] = true
	}

	return row, isDynamic
}
