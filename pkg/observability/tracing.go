package observability

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// instrumentationName identifies spans opened by this module.
const instrumentationName = "github.com/matzehuels/synthgraph"

var (
	tracerMu sync.RWMutex
	tracer   trace.Tracer = noop.NewTracerProvider().Tracer(instrumentationName)
)

// SetTracerProvider sets the provider used by Tracer. A nil provider
// restores the no-op provider.
func SetTracerProvider(tp trace.TracerProvider) {
	if tp == nil {
		tp = noop.NewTracerProvider()
	}
	tracerMu.Lock()
	defer tracerMu.Unlock()
	tracer = tp.Tracer(instrumentationName)
}

// Tracer returns the tracer for pipeline spans.
func Tracer() trace.Tracer {
	tracerMu.RLock()
	defer tracerMu.RUnlock()
	return tracer
}

// TracingHooks records generation and sink events as span events on the
// span carried by the context. Errors mark the span as failed.
type TracingHooks struct{}

func (TracingHooks) OnGenerateStart(ctx context.Context, model string, nodes int) {
	trace.SpanFromContext(ctx).AddEvent("generate.start", trace.WithAttributes(
		attribute.String("model", model),
		attribute.Int("nodes", nodes),
	))
}

func (TracingHooks) OnGenerateComplete(ctx context.Context, model string, edges int, d time.Duration, err error) {
	span := trace.SpanFromContext(ctx)
	span.AddEvent("generate.complete", trace.WithAttributes(
		attribute.String("model", model),
		attribute.Int("edges", edges),
		attribute.Int64("duration_ms", d.Milliseconds()),
	))
	recordError(span, err)
}

func (TracingHooks) OnPhaseStart(ctx context.Context, phase string, total int) {
	trace.SpanFromContext(ctx).AddEvent(phase+".start", trace.WithAttributes(attribute.Int("total", total)))
}

func (TracingHooks) OnPhaseComplete(ctx context.Context, phase string, done int, d time.Duration, err error) {
	span := trace.SpanFromContext(ctx)
	span.AddEvent(phase+".complete", trace.WithAttributes(
		attribute.Int("done", done),
		attribute.Int64("duration_ms", d.Milliseconds()),
	))
	recordError(span, err)
}

func (TracingHooks) OnBatchCommit(ctx context.Context, phase string, batch, size int, d time.Duration) {
	trace.SpanFromContext(ctx).AddEvent("commit", trace.WithAttributes(
		attribute.String("phase", phase),
		attribute.Int("batch", batch),
		attribute.Int("size", size),
		attribute.Int64("duration_ms", d.Milliseconds()),
	))
}

func (TracingHooks) OnSinkError(ctx context.Context, op string, err error) {
	span := trace.SpanFromContext(ctx)
	span.AddEvent("sink.error", trace.WithAttributes(attribute.String("op", op)))
	recordError(span, err)
}

func recordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

var (
	_ GenerationHooks = TracingHooks{}
	_ SinkHooks       = TracingHooks{}
)
