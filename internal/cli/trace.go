package cli

import (
	"context"

	"github.com/charmbracelet/log"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/matzehuels/synthgraph/pkg/observability"
)

// logExporter writes finished spans to the CLI logger at debug level.
type logExporter struct {
	logger *log.Logger
}

func (e logExporter) ExportSpans(_ context.Context, spans []sdktrace.ReadOnlySpan) error {
	for _, s := range spans {
		e.logger.Debug("span",
			"name", s.Name(),
			"trace_id", s.SpanContext().TraceID().String(),
			"events", len(s.Events()),
			"duration", s.EndTime().Sub(s.StartTime()),
			"status", s.Status().Code.String(),
		)
	}
	return nil
}

func (logExporter) Shutdown(context.Context) error { return nil }

// enableTracing installs a tracer provider that logs spans and routes
// generation and sink hooks into them. The returned func restores the
// previous no-op setup.
func (c *CLI) enableTracing() func(context.Context) error {
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(logExporter{logger: c.Logger}))
	observability.SetTracerProvider(tp)
	observability.SetGenerationHooks(observability.TracingHooks{})
	observability.SetSinkHooks(observability.TracingHooks{})

	return func(ctx context.Context) error {
		observability.Reset()
		return tp.Shutdown(ctx)
	}
}
