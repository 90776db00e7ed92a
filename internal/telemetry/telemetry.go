package telemetry

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/contrib/instrumentation/host"
	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Setup installs the global tracer and meter providers plus the W3C
// propagators. The returned func flushes and stops every exporter.
func Setup(ctx context.Context, opts ...Option) (func(context.Context) error, error) {
	options := NewOptions(opts...)

	var shutdowns []func(context.Context) error

	shutdown := func(ctx context.Context) error {
		var errs []error
		for i := len(shutdowns) - 1; i >= 0; i-- {
			errs = append(errs, shutdowns[i](ctx))
		}
		return errors.Join(errs...)
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			attribute.String("service.name", options.Name),
			attribute.String("service.version", options.Version),
			attribute.String("deployment.environment", options.Env),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build telemetry resource: %w", err)
	}

	// traces
	traceOpts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
	}

	if len(options.TracesAddress) > 0 {
		exporter, err := otlptracehttp.New(
			ctx,
			otlptracehttp.WithEndpoint(options.TracesAddress),
			otlptracehttp.WithInsecure(),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create trace exporter: %w", err)
		}

		traceOpts = append(traceOpts, sdktrace.WithBatcher(exporter))
	}

	tracerProvider := sdktrace.NewTracerProvider(traceOpts...)
	shutdowns = append(shutdowns, tracerProvider.Shutdown)

	otel.SetTracerProvider(tracerProvider)

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	// metrics
	if len(options.MetricsAddress) > 0 {
		exporter, err := otlpmetrichttp.New(
			ctx,
			otlpmetrichttp.WithEndpoint(options.MetricsAddress),
			otlpmetrichttp.WithInsecure(),
		)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("failed to create metric exporter: %w", err), shutdown(ctx))
		}

		meterProvider := sdkmetric.NewMeterProvider(
			sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)),
			sdkmetric.WithResource(res),
		)
		shutdowns = append(shutdowns, meterProvider.Shutdown)

		otel.SetMeterProvider(meterProvider)

		if err := runtime.Start(runtime.WithMeterProvider(meterProvider)); err != nil {
			return nil, errors.Join(fmt.Errorf("failed to start runtime instrumentation: %w", err), shutdown(ctx))
		}

		if err := host.Start(host.WithMeterProvider(meterProvider)); err != nil {
			return nil, errors.Join(fmt.Errorf("failed to start host instrumentation: %w", err), shutdown(ctx))
		}
	}

	return shutdown, nil
}
