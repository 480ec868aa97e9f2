// Package telemetry — трейсинг OpenTelemetry: OTLP/HTTP экспорт и глобальные пропагаторы.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

const defaultEndpoint = "localhost:4318"

// Options — параметры трейсинга.
type Options struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string  // host:port OTLP/HTTP коллектора
	SampleRatio    float64 // доля корневых спанов, [0..1]
}

// ShutdownFunc — сброс буфера спанов и остановка провайдера.
type ShutdownFunc func(context.Context) error

// SetupTracing поднимает OTLP/HTTP экспорт и регистрирует глобальные провайдер и пропагаторы.
func SetupTracing(ctx context.Context, opts Options) (ShutdownFunc, error) {
	if opts.Endpoint == "" {
		opts.Endpoint = defaultEndpoint
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(opts.Endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("otlp exporter: %w", err)
	}

	tp := newTracerProvider(sdktrace.WithBatcher(exporter), opts)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))

	return tp.Shutdown, nil
}

// newTracerProvider — провайдер с ресурсом сервиса. Семплер уважает решение родителя
// из входящего traceparent, поэтому трасса не рвётся между сервисами.
func newTracerProvider(processor sdktrace.TracerProviderOption, opts Options) *sdktrace.TracerProvider {
	attrs := []attribute.KeyValue{semconv.ServiceName(opts.ServiceName)}
	if opts.ServiceVersion != "" {
		attrs = append(attrs, semconv.ServiceVersion(opts.ServiceVersion))
	}

	return sdktrace.NewTracerProvider(
		processor,
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(clampRatio(opts.SampleRatio)))),
		sdktrace.WithResource(resource.NewWithAttributes(semconv.SchemaURL, attrs...)),
	)
}

func clampRatio(r float64) float64 {
	switch {
	case r < 0:
		return 0
	case r > 1:
		return 1
	default:
		return r
	}
}
