package observability

import (
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

// instrument describes one OTel instrument symptomline registers.
type instrument struct {
	name   string
	desc   string
	unit   string
	bounds []float64
}

// durationBounds covers 1ms to 10s; aggregating a personal log is
// sub-second, writing a chart page to disk can take a few seconds.
var durationBounds = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

// seriesBounds covers the number of distinct symptoms a person tracks.
var seriesBounds = []float64{0, 1, 2, 5, 10, 20, 50}

var (
	requestsTotal    = instrument{"symptomline.requests.total", "Commands, tool calls and diagnostics requests", "{request}", nil}
	requestDuration  = instrument{"symptomline.request.duration.seconds", "Request duration in seconds", "s", durationBounds}
	errorsTotal      = instrument{"symptomline.errors.total", "Requests that failed", "{error}", nil}
	inflightRequests = instrument{"symptomline.inflight.requests", "Requests in progress", "{request}", nil}

	entriesTotal    = instrument{"symptomline.timeline.entries.total", "Entries read by history and trend runs", "{entry}", nil}
	malformedTotal  = instrument{"symptomline.timeline.malformed.total", "Entries skipped for unusable timestamps", "{entry}", nil}
	seriesPerRun    = instrument{"symptomline.timeline.series", "Series produced per trend run", "{series}", seriesBounds}
	surfaceUpdates  = instrument{"symptomline.surface.updates.total", "Surface updates by resulting state", "{update}", nil}
	surfaceFailures = instrument{"symptomline.surface.acquire.failures.total", "Visualization resources that could not be acquired", "{failure}", nil}
)

// metricBuilder registers instruments on one meter and keeps the first
// error, so a constructor checks once after building everything.
type metricBuilder struct {
	meter metric.Meter
	err   error
}

func (b *metricBuilder) counter(in instrument) metric.Int64Counter {
	c, err := b.meter.Int64Counter(in.name, metric.WithDescription(in.desc), metric.WithUnit(in.unit))
	b.keep(in, err)

	return c
}

func (b *metricBuilder) gauge(in instrument) metric.Int64UpDownCounter {
	g, err := b.meter.Int64UpDownCounter(in.name, metric.WithDescription(in.desc), metric.WithUnit(in.unit))
	b.keep(in, err)

	return g
}

func (b *metricBuilder) histogram(in instrument) metric.Float64Histogram {
	opts := []metric.Float64HistogramOption{metric.WithDescription(in.desc), metric.WithUnit(in.unit)}
	if len(in.bounds) > 0 {
		opts = append(opts, metric.WithExplicitBucketBoundaries(in.bounds...))
	}

	h, err := b.meter.Float64Histogram(in.name, opts...)
	b.keep(in, err)

	return h
}

func (b *metricBuilder) keep(in instrument, err error) {
	if err != nil && b.err == nil {
		b.err = fmt.Errorf("create %s: %w", in.name, err)
	}
}
