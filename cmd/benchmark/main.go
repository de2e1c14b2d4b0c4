package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"strconv"
	"time"

	"github.com/delaneyj/reactiveparty/reactivity"
	"github.com/delaneyj/reactiveparty/reactivity/promhooks"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v3"
)

const (
	widthsKey     = "width"
	heightsKey    = "height"
	iterationsKey = "iterations"
	metricsKey    = "metrics"
	cpuProfileKey = "cpuprofile"
)

func main() {
	cmd := &cli.Command{
		Name:  "benchmark",
		Usage: "Measure write propagation through chains of computed values",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  widthsKey,
				Usage: "Number of independent chains hanging off the source",
				Value: []string{"1", "10", "100", "1000"},
			},
			&cli.StringSliceFlag{
				Name:  heightsKey,
				Usage: "Number of computed values in each chain",
				Value: []string{"1", "10", "100", "1000"},
			},
			&cli.IntFlag{
				Name:  iterationsKey,
				Usage: "Writes measured per configuration",
				Value: 100,
			},
			&cli.BoolFlag{
				Name:  metricsKey,
				Usage: "Collect engine metrics and print them after the run",
			},
			&cli.StringFlag{
				Name:  cpuProfileKey,
				Usage: "Write a CPU profile to this file, empty to disable",
				Value: "default.pgo",
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	if path := cmd.String(cpuProfileKey); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create cpu profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("start cpu profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	ww, err := parseSizes(cmd.StringSlice(widthsKey))
	if err != nil {
		return fmt.Errorf("%s: %w", widthsKey, err)
	}
	hh, err := parseSizes(cmd.StringSlice(heightsKey))
	if err != nil {
		return fmt.Errorf("%s: %w", heightsKey, err)
	}
	iters := int(cmd.Int(iterationsKey))

	var (
		registry *prometheus.Registry
		opts     []reactivity.SystemOption
	)
	if cmd.Bool(metricsKey) {
		registry = prometheus.NewRegistry()
		opts = append(opts, reactivity.WithHooks(promhooks.New(
			promhooks.WithRegistry(registry),
			promhooks.WithNamespace("benchmark"),
		)))
	}

	log.Printf("warming up")
	benchmarkPropagate(ww, hh, iters, false, opts...)
	benchmarkPropagate(ww, hh, iters, true, opts...)

	if registry != nil {
		return renderMetrics(registry)
	}
	return nil
}

func parseSizes(values []string) ([]int, error) {
	sizes := make([]int, 0, len(values))
	for _, v := range values {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, err
		}
		if n < 1 {
			return nil, fmt.Errorf("size %d must be positive", n)
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}

// benchmarkPropagate builds w chains of h computed values over a single
// tracked source, each ending in an effect, and times writes to the source.
func benchmarkPropagate(ww, hh []int, iters int, shouldRender bool, opts ...reactivity.SystemOption) {
	tbl := table.NewWriter()
	tbl.SetTitle("Reactive Propagation")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})

	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			rs := reactivity.CreateReactiveSystem(opts...)
			state, _ := reactivity.Wrap(rs, map[string]any{"src": 1})
			src := reactivity.Computed(rs, func() int {
				return state.Get("src").(int)
			})
			for i := 0; i < w; i++ {
				last := src
				for j := 0; j < h; j++ {
					prev := last
					last = reactivity.Computed(rs, func() int {
						return prev.Value() + 1
					})
				}

				reactivity.Effect(rs, func() {
					last.Value()
				})
			}

			for i := 0; i < iters; i++ {
				start := time.Now()
				state.Set("src", state.Get("src").(int)+1)
				tach.AddTime(time.Since(start))
			}

			calc := tach.Calc()
			tbl.AppendRows([]table.Row{
				{
					fmt.Sprintf("propagate: %d * %d", w, h),
					calc.Time.Avg,
					calc.Time.Min,
					calc.Time.P75,
					calc.Time.P99,
					calc.Time.Max,
				},
			})
		}
	}

	if shouldRender {
		tbl.Render()
	}
}

func renderMetrics(registry *prometheus.Registry) error {
	families, err := registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	tbl := table.NewWriter()
	tbl.SetTitle("Engine Metrics")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"metric", "value"})
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				tbl.AppendRow(table.Row{mf.GetName(), m.GetCounter().GetValue()})
			case m.GetHistogram() != nil:
				tbl.AppendRow(table.Row{mf.GetName() + " (count)", m.GetHistogram().GetSampleCount()})
			}
		}
	}
	tbl.Render()
	return nil
}
