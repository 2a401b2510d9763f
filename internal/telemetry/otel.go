package telemetry

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
)

// Config describes where telemetry is shipped. An empty endpoint keeps the
// matching signal in-process only.
type Config struct {
	ServiceName     string
	ServiceVersion  string
	Env             string
	SampleRatio     float64
	TracingEndpoint string
	MetricsEndpoint string
	LogsEndpoint    string
}

type Provider struct {
	propagator     propagation.TextMapPropagator
	tracerProvider *trace.TracerProvider
	meterProvider  *metric.MeterProvider
	loggerProvider *sdklog.LoggerProvider

	shutdownFuncs []func(context.Context) error
}

func NewProvider(ctx context.Context, config Config) (*Provider, error) {
	res, err := newResource(ctx, config)
	if err != nil {
		return nil, err
	}

	tracerProvider, err := newTracerProvider(ctx, config, res)
	if err != nil {
		return nil, err
	}

	meterProvider, err := newMeterProvider(ctx, config, res)
	if err != nil {
		return nil, errors.Join(err, tracerProvider.Shutdown(ctx))
	}

	loggerProvider, err := newLoggerProvider(ctx, config, res)
	if err != nil {
		return nil, errors.Join(err, tracerProvider.Shutdown(ctx), meterProvider.Shutdown(ctx))
	}

	shutdownFuncs := []func(context.Context) error{
		tracerProvider.Shutdown,
		meterProvider.Shutdown,
		loggerProvider.Shutdown,
	}

	return &Provider{
		propagator:     newPropagator(),
		tracerProvider: tracerProvider,
		meterProvider:  meterProvider,
		loggerProvider: loggerProvider,
		shutdownFuncs:  shutdownFuncs,
	}, nil
}

// Setup installs the providers as the process-wide OpenTelemetry globals.
func (p *Provider) Setup() {
	otel.SetTextMapPropagator(p.propagator)
	otel.SetTracerProvider(p.tracerProvider)
	otel.SetMeterProvider(p.meterProvider)
	global.SetLoggerProvider(p.loggerProvider)
}

// LogCore returns a zap core that forwards entries to the logger provider.
func (p *Provider) LogCore(name string) *otelzap.Core {
	return otelzap.NewCore(name, otelzap.WithLoggerProvider(p.loggerProvider))
}

// Shutdown calls cleanup functions registered via shutdownFuncs.
// The errors from each function are joined and returned as a single error.
func (p *Provider) Shutdown(ctx context.Context) error {
	var err error
	for _, fn := range p.shutdownFuncs {
		err = errors.Join(err, fn(ctx))
	}
	p.shutdownFuncs = nil

	return err
}

func newPropagator() propagation.TextMapPropagator {
	return propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	)
}

// Resource = service identity
func newResource(ctx context.Context, config Config) (*resource.Resource, error) {
	return resource.New(
		ctx,
		resource.WithAttributes(
			semconv.ServiceName(config.ServiceName),
			semconv.ServiceVersion(config.ServiceVersion),
			attribute.String("environment", config.Env),
		),
	)
}

func newTracerProvider(ctx context.Context, config Config, res *resource.Resource) (*trace.TracerProvider, error) {
	opts := []trace.TracerProviderOption{
		trace.WithResource(res),
		trace.WithSampler(trace.ParentBased(trace.TraceIDRatioBased(config.SampleRatio))),
	}

	if config.TracingEndpoint != "" {
		exporter, err := otlptracegrpc.New(
			ctx,
			otlptracegrpc.WithEndpoint(config.TracingEndpoint),
			otlptracegrpc.WithInsecure(),
		)
		if err != nil {
			return nil, err
		}
		opts = append(opts, trace.WithBatcher(exporter))
	}

	return trace.NewTracerProvider(opts...), nil
}

func newMeterProvider(ctx context.Context, config Config, res *resource.Resource) (*metric.MeterProvider, error) {
	opts := []metric.Option{metric.WithResource(res)}

	if config.MetricsEndpoint != "" {
		exporter, err := otlpmetricgrpc.New(
			ctx,
			otlpmetricgrpc.WithEndpoint(config.MetricsEndpoint),
			otlpmetricgrpc.WithInsecure(),
		)
		if err != nil {
			return nil, err
		}

		reader := metric.NewPeriodicReader(
			exporter,
			metric.WithInterval(30*time.Second),
		)
		opts = append(opts, metric.WithReader(reader))
	}

	return metric.NewMeterProvider(opts...), nil
}

func newLoggerProvider(ctx context.Context, config Config, res *resource.Resource) (*sdklog.LoggerProvider, error) {
	opts := []sdklog.LoggerProviderOption{sdklog.WithResource(res)}

	if config.LogsEndpoint != "" {
		exporter, err := otlploggrpc.New(
			ctx,
			otlploggrpc.WithEndpoint(config.LogsEndpoint),
			otlploggrpc.WithInsecure(),
		)
		if err != nil {
			return nil, err
		}
		opts = append(opts, sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter)))
	}

	return sdklog.NewLoggerProvider(opts...), nil
}
