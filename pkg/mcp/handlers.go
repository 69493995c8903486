package mcp

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Sumatoshi-tech/symptomline/pkg/entrylog"
	"github.com/Sumatoshi-tech/symptomline/pkg/observability"
	"github.com/Sumatoshi-tech/symptomline/pkg/plotpage"
	"github.com/Sumatoshi-tech/symptomline/pkg/surface"
	"github.com/Sumatoshi-tech/symptomline/pkg/symptom"
	"github.com/Sumatoshi-tech/symptomline/pkg/timeline"
)

const (
	chartURI      = "symptomline://trend.html"
	chartMIMEType = "text/html"
)

// toolset carries the dependencies shared by the tool handlers.
type toolset struct {
	deps   ServerDeps
	logger *slog.Logger
}

func newToolset(deps ServerDeps) *toolset {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &toolset{deps: deps, logger: logger}
}

// handleHistory processes symptom_history tool calls.
func (ts *toolset) handleHistory(
	ctx context.Context,
	_ *mcpsdk.CallToolRequest,
	input HistoryInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	entries, loc, err := ts.prepare(input.Entries, input.Timezone)
	if err != nil {
		return errorResult(err)
	}

	grouper := timeline.Grouper{Location: loc, Now: ts.deps.Now, DisplayLayout: ts.deps.DisplayLayout}
	buckets, diags := grouper.Group(entries)

	ts.report(ctx, ToolNameHistory, diags)
	ts.deps.Timeline.RecordAggregation(ctx, observability.AggregationStats{
		View: "history", Entries: len(entries), Malformed: len(diags),
	})

	return jsonResult(timeline.Annotate(buckets, diags))
}

// handleTrend processes symptom_trend tool calls.
func (ts *toolset) handleTrend(
	ctx context.Context,
	_ *mcpsdk.CallToolRequest,
	input TrendInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	entries, loc, err := ts.prepare(input.Entries, input.Timezone)
	if err != nil {
		return errorResult(err)
	}

	rng, err := parseRange(input)
	if err != nil {
		return errorResult(err)
	}

	ds, diags, err := ts.aggregator(loc).Aggregate(entries, rng)
	if err != nil {
		return errorResult(err)
	}

	ts.report(ctx, ToolNameTrend, diags)
	ts.deps.Timeline.RecordAggregation(ctx, observability.AggregationStats{
		View: "trend", Entries: len(entries), Malformed: len(diags), Series: len(ds.Series),
	})

	return jsonResult(timeline.TrendReport{Range: rng, Dataset: ds, Skipped: diags})
}

// handleChart processes symptom_chart tool calls. Each call holds its own
// surface for exactly as long as it takes to render the page.
func (ts *toolset) handleChart(
	ctx context.Context,
	_ *mcpsdk.CallToolRequest,
	input TrendInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	entries, loc, err := ts.prepare(input.Entries, input.Timezone)
	if err != nil {
		return errorResult(err)
	}

	rng, err := parseRange(input)
	if err != nil {
		return errorResult(err)
	}

	adapter := surface.NewAdapter(
		surface.ChartFactory{Theme: ts.deps.Theme},
		surface.WithAggregator(ts.aggregator(loc)),
		surface.WithLogger(ts.logger),
		surface.WithObserver(func(ctx context.Context, snap surface.Snapshot) {
			ts.deps.Timeline.RecordSurfaceState(ctx, snap.State.String())
		}),
	)

	defer func() {
		closeErr := adapter.Close()
		if closeErr != nil {
			ts.logger.WarnContext(ctx, "closing chart surface", "error", closeErr)
		}
	}()

	snap, err := adapter.Update(ctx, entries, rng)
	ts.report(ctx, ToolNameChart, snap.Diagnostics)

	switch {
	case snap.State == surface.StateNoData:
		return jsonResult(chartSummary(rng.String(), snap, 0))
	case err != nil:
		return errorResult(err)
	}

	var buf bytes.Buffer

	err = adapter.Render(&buf)
	if err != nil {
		return errorResult(fmt.Errorf("render chart: %w", err))
	}

	summary := chartSummary(rng.String(), snap, buf.Len())

	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: summary.Message},
			&mcpsdk.EmbeddedResource{Resource: &mcpsdk.ResourceContents{
				URI:      chartURI,
				MIMEType: chartMIMEType,
				Text:     buf.String(),
			}},
		},
	}, ToolOutput{Data: summary}, nil
}

// ChartSummary is the structured output of symptom_chart.
type ChartSummary struct {
	State   string               `json:"state"`
	Series  []string             `json:"series"`
	Bytes   int                  `json:"bytes"`
	Skipped timeline.Diagnostics `json:"skipped,omitempty"`
	Message string               `json:"message"`
}

func chartSummary(rangeLabel string, snap surface.Snapshot, size int) ChartSummary {
	names := make([]string, len(snap.Dataset.Series))
	for i, s := range snap.Dataset.Series {
		names[i] = s.Name
	}

	msg := fmt.Sprintf("no entries between %s", rangeLabel)
	if snap.State == surface.StateReady {
		msg = fmt.Sprintf("%d series charted for %s", len(names), rangeLabel)
	}

	return ChartSummary{
		State:   snap.State.String(),
		Series:  names,
		Bytes:   size,
		Skipped: snap.Diagnostics,
		Message: msg,
	}
}

func (ts *toolset) prepare(records []entrylog.Record, timezone string) ([]symptom.Entry, *time.Location, error) {
	err := validateEntries(records)
	if err != nil {
		return nil, nil, err
	}

	loc, err := resolveLocation(timezone, ts.deps.Location)
	if err != nil {
		return nil, nil, err
	}

	return entrylog.Resolve(records, loc), loc, nil
}

func (ts *toolset) aggregator(loc *time.Location) timeline.Aggregator {
	return timeline.Aggregator{
		Location:   loc,
		AxisLayout: ts.deps.AxisLayout,
		Palette:    plotpage.GetChartPalette(ts.deps.Theme).Series,
	}
}

func (ts *toolset) report(ctx context.Context, tool string, diags timeline.Diagnostics) {
	if len(diags) == 0 {
		return
	}

	ts.logger.WarnContext(ctx, "entries skipped",
		"tool", tool,
		"count", len(diags),
		"ids", diags.EntryIDs(),
	)
}
