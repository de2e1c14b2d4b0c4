// Package otelhooks records deferred flushes of a reactive system as
// OpenTelemetry spans.
package otelhooks

import (
	"context"
	"fmt"

	"github.com/delaneyj/reactiveparty/reactivity"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const defaultTracerName = "github.com/delaneyj/reactiveparty/reactivity"

// Config configures the tracing hooks.
type Config struct {
	// TracerName is the name of the tracer (default: the engine import path).
	TracerName string

	// TracerProvider supplies the tracer.
	// Default: otel.GetTracerProvider()
	TracerProvider trace.TracerProvider

	// Context is the parent of every flush span (default: context.Background()).
	Context context.Context
}

type Option func(*Config)

func WithTracerName(name string) Option {
	return func(c *Config) {
		c.TracerName = name
	}
}

func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Config) {
		c.TracerProvider = tp
	}
}

// WithContext parents flush spans under the span carried by ctx.
func WithContext(ctx context.Context) Option {
	return func(c *Config) {
		c.Context = ctx
	}
}

// Hooks emits one span per flush carrying the triggers and effect runs seen
// since the previous flush.
type Hooks struct {
	reactivity.NopHooks

	ctx    context.Context
	tracer trace.Tracer

	triggers   int
	effectRuns int
}

var _ reactivity.Hooks = (*Hooks)(nil)

func New(opts ...Option) *Hooks {
	config := Config{
		TracerName: defaultTracerName,
		Context:    context.Background(),
	}
	for _, opt := range opts {
		opt(&config)
	}
	if config.TracerProvider == nil {
		config.TracerProvider = otel.GetTracerProvider()
	}

	return &Hooks{
		ctx:    config.Context,
		tracer: config.TracerProvider.Tracer(config.TracerName),
	}
}

func (h *Hooks) OnTrigger(reactivity.DebugEvent) {
	h.triggers++
}

func (h *Hooks) OnEffectRun(*reactivity.EffectRunner) {
	h.effectRuns++
}

func (h *Hooks) OnFlush(ev reactivity.FlushEvent) {
	_, span := h.tracer.Start(h.ctx, "reactivity.flush",
		trace.WithTimestamp(ev.Start),
		trace.WithAttributes(
			attribute.Int("reactivity.jobs", ev.Jobs),
			attribute.Int("reactivity.errors", ev.Errors),
			attribute.Int("reactivity.triggers", h.triggers),
			attribute.Int("reactivity.effect_runs", h.effectRuns),
		),
	)
	if ev.Errors > 0 {
		span.SetStatus(codes.Error, fmt.Sprintf("%d deferred jobs panicked", ev.Errors))
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End(trace.WithTimestamp(ev.End))

	h.triggers, h.effectRuns = 0, 0
}
