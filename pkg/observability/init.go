package observability

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/metric"
	noopmetric "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"
)

const (
	instrumentationName = "symptomline"

	// envTracesSampler, when set, hands sampler selection to the OTel SDK.
	envTracesSampler = "OTEL_TRACES_SAMPLER"
)

// Providers holds the initialized observability providers.
type Providers struct {
	// Tracer is the named tracer for creating spans.
	Tracer trace.Tracer

	// Meter is the named meter for creating instruments.
	Meter metric.Meter

	// Logger is the context-aware structured logger.
	Logger *slog.Logger

	// MetricsHandler serves /metrics. Nil unless Config.Prometheus is set.
	MetricsHandler http.Handler

	// Shutdown flushes pending telemetry. Later calls return the first result.
	Shutdown func(ctx context.Context) error
}

type shutdownFunc func(ctx context.Context) error

// teardown runs registered shutdown funcs in reverse order.
type teardown []shutdownFunc

func (td teardown) run(ctx context.Context) error {
	errs := make([]error, 0, len(td))
	for _, fn := range slices.Backward(td) {
		errs = append(errs, fn(ctx))
	}

	return errors.Join(errs...)
}

// Init sets up tracing, metrics and logging for one symptomline process.
// The tracer is a no-op without an OTLP endpoint; the meter is a no-op
// unless OTLP or Prometheus is configured. Entry content is kept out of
// every signal.
func Init(cfg Config) (Providers, error) {
	ctx := context.Background()
	logger := buildLogger(cfg)

	res, err := resource.New(ctx, resource.WithAttributes(resourceAttributes(cfg)...))
	if err != nil {
		return Providers{}, fmt.Errorf("build otel resource: %w", err)
	}

	var td teardown

	tp, err := tracerProvider(ctx, cfg, res, logger, &td)
	if err != nil {
		return Providers{}, fmt.Errorf("build tracer provider: %w", err)
	}

	mp, metricsHandler, err := meterProvider(ctx, cfg, res, &td)
	if err != nil {
		return Providers{}, errors.Join(fmt.Errorf("build meter provider: %w", err), td.run(ctx))
	}

	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return Providers{
		Tracer:         tp.Tracer(instrumentationName),
		Meter:          mp.Meter(instrumentationName),
		Logger:         logger,
		MetricsHandler: metricsHandler,
		Shutdown:       boundedShutdown(td, cfg.ShutdownTimeoutSec),
	}, nil
}

func boundedShutdown(td teardown, timeoutSec int) shutdownFunc {
	if timeoutSec <= 0 {
		timeoutSec = defaultShutdownTimeoutSec
	}

	var (
		once   sync.Once
		result error
	)

	return func(ctx context.Context) error {
		once.Do(func() {
			deadlineCtx, cancel := context.WithTimeout(ctx, time.Duration(timeoutSec)*time.Second)
			defer cancel()

			result = td.run(deadlineCtx)
		})

		return result
	}
}

func resourceAttributes(cfg Config) []attribute.KeyValue {
	attrs := []attribute.KeyValue{semconv.ServiceName(cfg.ServiceName)}

	if cfg.ServiceVersion != "" {
		attrs = append(attrs, semconv.ServiceVersion(cfg.ServiceVersion))
	}

	if cfg.Environment != "" {
		attrs = append(attrs, semconv.DeploymentEnvironment(cfg.Environment))
	}

	if cfg.Mode != "" {
		attrs = append(attrs, attribute.String(attrResourceMode, string(cfg.Mode)))
	}

	return attrs
}

// otlpOptions builds the settings the trace and metric gRPC exporters share
// under their distinct option types.
func otlpOptions[O any](
	cfg Config, endpoint func(string) O, insecure func() O, headers func(map[string]string) O,
) []O {
	opts := []O{endpoint(cfg.OTLPEndpoint)}

	if cfg.OTLPInsecure {
		opts = append(opts, insecure())
	}

	if len(cfg.OTLPHeaders) > 0 {
		opts = append(opts, headers(cfg.OTLPHeaders))
	}

	return opts
}

func tracerProvider(
	ctx context.Context, cfg Config, res *resource.Resource, logger *slog.Logger, td *teardown,
) (trace.TracerProvider, error) {
	if cfg.OTLPEndpoint == "" {
		return nooptrace.NewTracerProvider(), nil
	}

	exporter, err := otlptracegrpc.New(ctx, otlpOptions(cfg,
		otlptracegrpc.WithEndpoint, otlptracegrpc.WithInsecure, otlptracegrpc.WithHeaders)...)
	if err != nil {
		return nil, fmt.Errorf("create trace exporter: %w", err)
	}

	var filterLogger *slog.Logger
	if cfg.DebugTrace {
		filterLogger = logger
	}

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithSpanProcessor(NewAttributeFilter(sdktrace.NewBatchSpanProcessor(exporter), filterLogger)),
		sdktrace.WithResource(res),
	}

	if sampler := selectSampler(cfg); sampler != nil {
		opts = append(opts, sdktrace.WithSampler(sampler))
	}

	tp := sdktrace.NewTracerProvider(opts...)
	*td = append(*td, tp.Shutdown)

	return tp, nil
}

// selectSampler returns the sampler cfg asks for, or nil to keep the SDK
// default. The SDK default is parent-based always-on and honors
// OTEL_TRACES_SAMPLER, which wins over SampleRatio but not over DebugTrace.
func selectSampler(cfg Config) sdktrace.Sampler {
	switch {
	case cfg.DebugTrace:
		return sdktrace.AlwaysSample()
	case os.Getenv(envTracesSampler) != "":
		return nil
	case cfg.SampleRatio > 0:
		return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))
	default:
		return nil
	}
}

func meterProvider(
	ctx context.Context, cfg Config, res *resource.Resource, td *teardown,
) (metric.MeterProvider, http.Handler, error) {
	if cfg.OTLPEndpoint == "" && !cfg.Prometheus {
		return noopmetric.NewMeterProvider(), nil, nil
	}

	opts := []sdkmetric.Option{
		sdkmetric.WithResource(res),
		sdkmetric.WithView(sdkmetric.NewView(
			sdkmetric.Instrument{Name: "*"},
			sdkmetric.Stream{AttributeFilter: withoutEntryContent},
		)),
	}

	var handler http.Handler

	if cfg.Prometheus {
		reader, promHandler, err := NewPrometheusReader()
		if err != nil {
			return nil, nil, err
		}

		opts = append(opts, sdkmetric.WithReader(reader))
		handler = promHandler
	}

	if cfg.OTLPEndpoint != "" {
		exporter, err := otlpmetricgrpc.New(ctx, otlpOptions(cfg,
			otlpmetricgrpc.WithEndpoint, otlpmetricgrpc.WithInsecure, otlpmetricgrpc.WithHeaders)...)
		if err != nil {
			return nil, nil, fmt.Errorf("create metric exporter: %w", err)
		}

		opts = append(opts, sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)))
	}

	mp := sdkmetric.NewMeterProvider(opts...)
	*td = append(*td, mp.Shutdown)

	return mp, handler, nil
}

func buildLogger(cfg Config) *slog.Logger {
	var out io.Writer = os.Stderr
	if cfg.LogOutput != nil {
		out = cfg.LogOutput
	}

	handlerOpts := &slog.HandlerOptions{Level: cfg.LogLevel}

	var inner slog.Handler = slog.NewTextHandler(out, handlerOpts)
	if cfg.LogJSON {
		inner = slog.NewJSONHandler(out, handlerOpts)
	}

	return slog.New(NewTracingHandler(inner, cfg))
}

// ParseOTLPHeaders reads OTEL_EXPORTER_OTLP_HEADERS syntax ("k=v,k=v").
// Pairs without "=" are ignored; nil means no usable pair.
func ParseOTLPHeaders(raw string) map[string]string {
	var headers map[string]string

	for pair := range strings.SplitSeq(raw, ",") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}

		if headers == nil {
			headers = make(map[string]string)
		}

		headers[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	return headers
}
