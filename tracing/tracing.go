package tracing

import (
	"context"
	"io"
	"os"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/viant/bpmflow"

// Span attribute keys.
const (
	VersionKey = attribute.Key("bpmflow.version")
	TaskKey    = attribute.Key("bpmflow.task_id")
	EventKey   = attribute.Key("bpmflow.event_id")
	PluginKey  = attribute.Key("bpmflow.plugin")
)

var (
	providerOnce sync.Once
	providerErr  error
)

// Init installs a stdout exporter writing to outputFile, or os.Stdout when
// empty. The first call wins.
func Init(serviceName, serviceVersion, outputFile string) error {
	var w io.Writer = os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return err
		}
		w = f
	}
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return err
	}
	return InitWithExporter(serviceName, serviceVersion, exporter)
}

// InitWithExporter installs exporter, for example an OTLP one. The first call
// wins; a nil exporter is ignored.
func InitWithExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) error {
	if exporter == nil {
		return nil
	}
	providerOnce.Do(func() {
		res, err := resource.New(context.Background(), resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", serviceVersion),
		))
		if err != nil {
			providerErr = err
			return
		}
		otel.SetTracerProvider(sdktrace.NewTracerProvider(
			sdktrace.WithSpanProcessor(sdktrace.NewSimpleSpanProcessor(exporter)),
			sdktrace.WithResource(res),
		))
	})
	return providerErr
}

// Span is an in-flight span; a nil Span is a no-op.
type Span struct {
	span trace.Span
}

// End records err, if any, and ends the span.
func (s *Span) End(err error) {
	if s == nil {
		return
	}
	if err != nil {
		s.span.RecordError(err)
		s.span.SetStatus(codes.Error, err.Error())
	} else {
		s.span.SetStatus(codes.Ok, "")
	}
	s.span.End()
}

// Start starts an internal span.
func Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, *Span) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...))
	return ctx, &Span{span: span}
}

// Event returns the attributes identifying an event application.
func Event(version string, taskID, eventID int) []attribute.KeyValue {
	return []attribute.KeyValue{VersionKey.String(version), TaskKey.Int(taskID), EventKey.Int(eventID)}
}
