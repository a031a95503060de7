package telemetry

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Options selects the span exporter. The zero value disables tracing.
type Options struct {
	// OTLPEndpoint enables the OTLP gRPC exporter when set.
	OTLPEndpoint string
	// Console writes spans to ConsoleWriter (stderr by default) when no
	// OTLP endpoint is configured.
	Console       bool
	ConsoleWriter io.Writer
}

// OptionsFromEnv reads OTEL_EXPORTER_OTLP_ENDPOINT and OTEL_TRACES_EXPORTER
// through lookup (os.LookupEnv in production).
func OptionsFromEnv(lookup func(string) (string, bool)) Options {
	endpoint, _ := lookup("OTEL_EXPORTER_OTLP_ENDPOINT")
	exporter, _ := lookup("OTEL_TRACES_EXPORTER")
	return Options{
		OTLPEndpoint: endpoint,
		Console:      exporter == "console",
	}
}

// InitTracer installs a global tracer provider and returns its shutdown
// function. With tracing disabled nothing is installed and the returned
// shutdown is a no-op; spans then go to the global no-op tracer.
func InitTracer(ctx context.Context, serviceName string, opts Options) (func(context.Context) error, error) {
	var exporter sdktrace.SpanExporter
	var err error

	switch {
	case opts.OTLPEndpoint != "":
		exporter, err = otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(opts.OTLPEndpoint),
			otlptracegrpc.WithInsecure(),
			otlptracegrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create otlp exporter: %w", err)
		}
	case opts.Console:
		w := opts.ConsoleWriter
		if w == nil {
			// stdout carries the table listing
			w = os.Stderr
		}
		exporter, err = stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("failed to create stdout exporter: %w", err)
		}
	default:
		return func(context.Context) error { return nil }, nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
			semconv.ServiceVersionKey.String("1.0.0"),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	// Short-lived process: export synchronously so nothing is lost on exit.
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}
