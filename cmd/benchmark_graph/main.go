package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"
)

const (
	configKey  = "config"
	repeatsKey = "repeats"
	onlyKey    = "only"
)

func main() {
	cmd := &cli.Command{
		Name:  "benchmark_graph",
		Usage: "Run layered dependency graph benchmarks against the reactive engine",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  configKey,
				Usage: "YAML file with the graph configurations to run",
			},
			&cli.IntFlag{
				Name:  repeatsKey,
				Usage: "Timed runs per configuration; the best one is reported",
				Value: 5,
			},
			&cli.StringFlag{
				Name:  onlyKey,
				Usage: "Only run configurations whose name contains this string",
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

type results struct {
	sum       int
	count     int64
	duration  time.Duration
	isDynamic [][]bool
}

func run(ctx context.Context, cmd *cli.Command) error {
	log.Print("Starting graph benchmark, please wait...")
	defer log.Print("Finished graph benchmark")

	cfgs := defaultConfigs
	testRepeats := int(cmd.Int(repeatsKey))
	if path := cmd.String(configKey); path != "" {
		file, err := loadConfigs(path)
		if err != nil {
			return err
		}
		cfgs = file.Tests
		if file.Repeats > 0 && !cmd.IsSet(repeatsKey) {
			testRepeats = file.Repeats
		}
	}
	if testRepeats < 1 {
		return fmt.Errorf("%s must be positive", repeatsKey)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{
		"size", "nSources", "read%", "static%",
		"nTimes", "test", "time", "sum", "updateRate", "title",
	})

	only := cmd.String(onlyKey)
	for _, cfg := range cfgs {
		if only != "" && !strings.Contains(cfg.Name, only) {
			continue
		}
		best := runConfig(cfg, testRepeats)
		updateRate := float64(best.count) / (float64(best.duration) / float64(time.Millisecond))

		table.Append([]string{
			fmt.Sprintf("%dx%d", cfg.Width, cfg.TotalLayers), // size
			fmt.Sprint(cfg.NSources),                         // nSources
			fmt.Sprint(cfg.ReadFraction),                     // read%
			fmt.Sprint(cfg.StaticFraction),                   // static%
			humanize.Comma(int64(cfg.Iterations)),            // nTimes
			cfg.Name,                                         // test
			fmt.Sprint(best.duration),                        // time
			humanize.Comma(int64(best.sum)),                  // sum
			humanize.Comma(int64(updateRate)),                // updateRate
			makeTitle(cfg),                                   // title
		})
	}
	table.Render()
	return nil
}

func runConfig(cfg benchmarkTestConfig, testRepeats int) *results {
	log.Printf("Running '%s' config", cfg.Name)
	counter := new(int64)
	graph, isDynamic := benchmarkMakeGraph(&benchmarkMakeGraphConfig{
		counter:        counter,
		width:          cfg.Width,
		totalLayers:    cfg.TotalLayers,
		nSources:       cfg.NSources,
		staticFraction: cfg.StaticFraction,
	})

	runOnce := func() int {
		return benchmarkRunGraph(&benchmarkRunGraphConfig{
			graph:        graph,
			iterations:   cfg.Iterations,
			readFraction: cfg.ReadFraction,
		})
	}
	// run once to warm up
	runOnce()

	best := &results{
		duration: time.Hour,
	}
	for i := 0; i < testRepeats; i++ {
		log.Printf("Running '%s' config, iteration %d/%d %d%%", cfg.Name, i+1, testRepeats, (i+1)*100/testRepeats)
		*counter = 0
		start := time.Now()
		sum := runOnce()
		duration := time.Since(start)

		if duration < best.duration {
			best.duration = duration
			best.sum = sum
			best.count = *counter
			best.isDynamic = isDynamic
		}
	}
	return best
}

func makeTitle(cfg benchmarkTestConfig) string {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("%dx%d %d sources", cfg.Width, cfg.TotalLayers, cfg.NSources))
	if cfg.StaticFraction < 1 {
		sb.WriteString(" dynamic")
	}
	if cfg.ReadFraction < 1 {
		sb.WriteString(fmt.Sprintf(" read %0.2f%%", 100*cfg.ReadFraction))
	}
	return sb.String()
}
