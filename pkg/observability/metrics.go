package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	attrOp     = "op"
	attrStatus = "status"

	// StatusOK marks a successful request.
	StatusOK = "ok"
	// StatusError marks a failed request.
	StatusError = "error"
)

// REDMetrics counts rate, errors and duration per operation. An operation
// is a CLI command, an MCP tool or a diagnostics route.
type REDMetrics struct {
	requests metric.Int64Counter
	duration metric.Float64Histogram
	errors   metric.Int64Counter
	inflight metric.Int64UpDownCounter
}

// NewREDMetrics registers the request instruments on mt.
func NewREDMetrics(mt metric.Meter) (*REDMetrics, error) {
	b := &metricBuilder{meter: mt}

	red := &REDMetrics{
		requests: b.counter(requestsTotal),
		duration: b.histogram(requestDuration),
		errors:   b.counter(errorsTotal),
		inflight: b.gauge(inflightRequests),
	}

	if b.err != nil {
		return nil, b.err
	}

	return red, nil
}

// RecordRequest records one finished operation.
func (rm *REDMetrics) RecordRequest(ctx context.Context, op, status string, duration time.Duration) {
	opAttr := attribute.String(attrOp, op)
	attrs := metric.WithAttributes(opAttr, attribute.String(attrStatus, status))

	rm.requests.Add(ctx, 1, attrs)
	rm.duration.Record(ctx, duration.Seconds(), attrs)

	if status == StatusError {
		rm.errors.Add(ctx, 1, metric.WithAttributes(opAttr))
	}
}

// TrackInflight marks op as running until the returned func is called.
func (rm *REDMetrics) TrackInflight(ctx context.Context, op string) func() {
	attrs := metric.WithAttributes(attribute.String(attrOp, op))
	rm.inflight.Add(ctx, 1, attrs)

	return func() { rm.inflight.Add(ctx, -1, attrs) }
}
