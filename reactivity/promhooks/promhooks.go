// Package promhooks exports reactive engine activity as Prometheus metrics.
package promhooks

import (
	"github.com/delaneyj/reactiveparty/reactivity"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Config configures the collectors registered by New.
type Config struct {
	// Namespace is the metrics namespace (default: "reactivity").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for flush duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

type Option func(*Config)

func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "reactivity",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Hooks implements reactivity.Hooks by counting events.
type Hooks struct {
	Tracks        prometheus.Counter
	Triggers      prometheus.Counter
	EffectRuns    prometheus.Counter
	Flushes       prometheus.Counter
	FlushedJobs   prometheus.Counter
	FlushErrors   prometheus.Counter
	FlushDuration prometheus.Histogram
}

var _ reactivity.Hooks = (*Hooks)(nil)

// New registers the collectors and returns hooks feeding them. Registering
// twice against the same registry panics, as promauto does.
func New(opts ...Option) *Hooks {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	counter := func(name, help string) prometheus.Counter {
		return factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		})
	}

	return &Hooks{
		Tracks:      counter("tracks_total", "Dependencies recorded by running computations"),
		Triggers:    counter("triggers_total", "Change notifications delivered to dependency sets"),
		EffectRuns:  counter("effect_runs_total", "Tracked computation runs"),
		Flushes:     counter("flushes_total", "Drains of the deferred job queue"),
		FlushedJobs: counter("flushed_jobs_total", "Deferred jobs run by flushes"),
		FlushErrors: counter("flush_errors_total", "Deferred jobs that panicked and were recovered"),
		FlushDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "flush_duration_seconds",
			Help:        "Time spent draining the deferred job queue",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),
	}
}

func (h *Hooks) OnTrack(reactivity.DebugEvent) {
	h.Tracks.Inc()
}

func (h *Hooks) OnTrigger(reactivity.DebugEvent) {
	h.Triggers.Inc()
}

func (h *Hooks) OnEffectRun(*reactivity.EffectRunner) {
	h.EffectRuns.Inc()
}

func (h *Hooks) OnFlush(ev reactivity.FlushEvent) {
	h.Flushes.Inc()
	h.FlushedJobs.Add(float64(ev.Jobs))
	h.FlushErrors.Add(float64(ev.Errors))
	h.FlushDuration.Observe(ev.End.Sub(ev.Start).Seconds())
}
