package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	attrView  = "view"
	attrState = "state"

	viewTrend          = "trend"
	surfaceUnavailable = "unavailable"
)

// TimelineMetrics holds OTel instruments for aggregation and surface activity.
type TimelineMetrics struct {
	entries         metric.Int64Counter
	malformed       metric.Int64Counter
	series          metric.Float64Histogram
	surfaceUpdates  metric.Int64Counter
	surfaceFailures metric.Int64Counter
}

// AggregationStats describes one grouping or aggregation run.
type AggregationStats struct {
	// View is "history" or "trend".
	View      string
	Entries   int
	Malformed int
	// Series is the number of trend series; zero for history runs.
	Series int
}

// NewTimelineMetrics registers the timeline instruments on mt.
func NewTimelineMetrics(mt metric.Meter) (*TimelineMetrics, error) {
	b := &metricBuilder{meter: mt}

	tm := &TimelineMetrics{
		entries:         b.counter(entriesTotal),
		malformed:       b.counter(malformedTotal),
		series:          b.histogram(seriesPerRun),
		surfaceUpdates:  b.counter(surfaceUpdates),
		surfaceFailures: b.counter(surfaceFailures),
	}

	if b.err != nil {
		return nil, b.err
	}

	return tm, nil
}

// RecordAggregation records one run and annotates the span in ctx with its
// counts. Safe to call on a nil receiver.
func (tm *TimelineMetrics) RecordAggregation(ctx context.Context, stats AggregationStats) {
	span := trace.SpanFromContext(ctx)
	span.SetAttributes(
		attribute.String(AttrView, stats.View),
		attribute.Int(AttrEntries, stats.Entries),
		attribute.Int(AttrSkipped, stats.Malformed),
	)

	if stats.View == viewTrend {
		span.SetAttributes(attribute.Int(AttrSeries, stats.Series))
	}

	if tm == nil {
		return
	}

	attrs := metric.WithAttributes(attribute.String(attrView, stats.View))

	tm.entries.Add(ctx, int64(stats.Entries), attrs)
	tm.malformed.Add(ctx, int64(stats.Malformed), attrs)

	if stats.View == viewTrend {
		tm.series.Record(ctx, float64(stats.Series))
	}
}

// RecordSurfaceState records the state a surface update settled in and
// annotates the span in ctx. Safe to call on a nil receiver.
func (tm *TimelineMetrics) RecordSurfaceState(ctx context.Context, state string) {
	trace.SpanFromContext(ctx).SetAttributes(attribute.String(AttrSurfaceState, state))

	if tm == nil {
		return
	}

	tm.surfaceUpdates.Add(ctx, 1, metric.WithAttributes(attribute.String(attrState, state)))

	if state == surfaceUnavailable {
		tm.surfaceFailures.Add(ctx, 1)
	}
}
