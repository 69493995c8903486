package mcp

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Sumatoshi-tech/symptomline/pkg/calendar"
	"github.com/Sumatoshi-tech/symptomline/pkg/entrylog"
)

// Tool name constants.
const (
	ToolNameHistory = "symptom_history"
	ToolNameTrend   = "symptom_trend"
	ToolNameChart   = "symptom_chart"
)

// MaxEntries bounds the entries accepted by one call.
const MaxEntries = 100_000

// Sentinel errors for tool input validation.
var (
	// ErrTooManyEntries indicates the entries parameter exceeds MaxEntries.
	ErrTooManyEntries = errors.New("too many entries")
	// ErrUnknownTimezone indicates the timezone parameter is not an IANA zone name.
	ErrUnknownTimezone = errors.New("unknown timezone")
	// ErrMissingRange indicates from or to was not supplied.
	ErrMissingRange = errors.New("from and to are required (YYYY-MM-DD)")
)

// Input types (auto-generate JSON schemas via struct tags).

// HistoryInput is the input schema for the symptom_history tool.
type HistoryInput struct {
	Entries  []entrylog.Record `json:"entries"            jsonschema:"symptom log entries: name, severity 0-5, timestamp, optional id, category, notes"`
	Timezone string            `json:"timezone,omitempty" jsonschema:"IANA zone defining calendar days (default: server zone)"`
}

// TrendInput is the input schema for the symptom_trend and symptom_chart tools.
type TrendInput struct {
	Entries  []entrylog.Record `json:"entries"            jsonschema:"symptom log entries: name, severity 0-5, timestamp, optional id, category, notes"`
	From     string            `json:"from"               jsonschema:"first day of the range, YYYY-MM-DD"`
	To       string            `json:"to"                 jsonschema:"last day of the range, YYYY-MM-DD, inclusive"`
	Timezone string            `json:"timezone,omitempty" jsonschema:"IANA zone defining calendar days (default: server zone)"`
}

// Output type (used as structured output for generic AddTool).

// ToolOutput is a generic wrapper for tool results.
type ToolOutput struct {
	Data any `json:"data"`
}

// Result helpers.

// errorResult builds a CallToolResult with isError set.
func errorResult(err error) (*mcpsdk.CallToolResult, ToolOutput, error) {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: err.Error()},
		},
		IsError: true,
	}, ToolOutput{}, nil
}

// jsonResult builds a CallToolResult with JSON-encoded content.
func jsonResult(value any) (*mcpsdk.CallToolResult, ToolOutput, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return errorResult(fmt.Errorf("encode result: %w", err))
	}

	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: string(data)},
		},
	}, ToolOutput{Data: value}, nil
}

// validateEntries checks the size limit shared by every tool.
func validateEntries(records []entrylog.Record) error {
	if len(records) > MaxEntries {
		return fmt.Errorf("%w: %d (max %d)", ErrTooManyEntries, len(records), MaxEntries)
	}

	return nil
}

// resolveLocation returns fallback for an empty name.
func resolveLocation(name string, fallback *time.Location) (*time.Location, error) {
	if name == "" {
		if fallback == nil {
			return time.Local, nil
		}

		return fallback, nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTimezone, name)
	}

	return loc, nil
}

// parseRange validates the trend bounds of input, including their span.
func parseRange(input TrendInput) (calendar.Range, error) {
	if input.From == "" || input.To == "" {
		return calendar.Range{}, ErrMissingRange
	}

	rng, err := calendar.ParseRange(input.From, input.To)
	if err != nil {
		return calendar.Range{}, fmt.Errorf("range: %w", err)
	}

	err = rng.CheckLen(calendar.MaxRangeDays)
	if err != nil {
		return calendar.Range{}, err
	}

	return rng, nil
}
