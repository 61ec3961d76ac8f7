package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/goliatone/go-dataview/components/dataview"
)

const instrumentationName = "github.com/goliatone/go-dataview"

// Tracer records dataview events as span events. Events outside a recording
// span get a span of their own.
type Tracer struct {
	tracer trace.Tracer
}

var _ dataview.Telemetry = (*Tracer)(nil)

// NewTracer builds a Tracer; a nil provider uses the global one.
func NewTracer(provider trace.TracerProvider) *Tracer {
	if provider == nil {
		provider = otel.GetTracerProvider()
	}
	return &Tracer{tracer: provider.Tracer(instrumentationName)}
}

// Record implements dataview.Telemetry.
func (t *Tracer) Record(ctx context.Context, event string, payload map[string]any) {
	attrs := Attributes(payload)
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.AddEvent(event, trace.WithAttributes(attrs...))
		return
	}
	_, span = t.tracer.Start(ctx, event, trace.WithAttributes(attrs...))
	span.End()
}

// Attributes converts an event payload into span attributes.
func Attributes(payload map[string]any) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(payload))
	for k, v := range payload {
		key := "dataview." + k
		switch value := v.(type) {
		case string:
			attrs = append(attrs, attribute.String(key, value))
		case int:
			attrs = append(attrs, attribute.Int(key, value))
		case int64:
			attrs = append(attrs, attribute.Int64(key, value))
		case float64:
			attrs = append(attrs, attribute.Float64(key, value))
		case bool:
			attrs = append(attrs, attribute.Bool(key, value))
		default:
			attrs = append(attrs, attribute.String(key, fmt.Sprint(value)))
		}
	}
	return attrs
}
