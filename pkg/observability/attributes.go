package observability

import (
	"strings"

	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Span attribute keys set by symptomline code.
const (
	AttrTool         = "mcp.tool"
	AttrToolIsError  = "mcp.is_error"
	AttrView         = "timeline.view"
	AttrEntries      = "timeline.entries"
	AttrSkipped      = "timeline.skipped"
	AttrSeries       = "timeline.series"
	AttrSurfaceState = "surface.state"

	attrHTTPTarget   = "http.target"
	attrHTTPMethod   = string(semconv.HTTPRequestMethodKey)
	attrHTTPStatus   = string(semconv.HTTPResponseStatusCodeKey)
	attrSemconvError = "error"
	attrResourceMode = "symptomline.mode"

	entryNamespace = "entry."
	ownNamespace   = "symptomline."
	errorNamespace = "error."
)

// freeTextKeys are bare keys that carry what a user typed about a symptom.
var freeTextKeys = map[string]bool{
	"notes":   true,
	"symptom": true,
}

// spanKeys are the exact keys exported on spans.
var spanKeys = map[string]bool{
	AttrTool:         true,
	AttrToolIsError:  true,
	AttrView:         true,
	AttrEntries:      true,
	AttrSkipped:      true,
	AttrSeries:       true,
	AttrSurfaceState: true,
	attrHTTPTarget:   true,
	attrHTTPMethod:   true,
	attrHTTPStatus:   true,
	attrSemconvError: true,
}

// IsEntryContent reports whether key holds symptom entry content: anything
// under "entry." or a free-text field such as notes. Such values are health
// data and never leave the process.
func IsEntryContent(key string) bool {
	return strings.HasPrefix(key, entryNamespace) || freeTextKeys[key]
}

// exportableSpanKey reports whether a span attribute may reach the exporter.
func exportableSpanKey(key string) bool {
	if IsEntryContent(key) {
		return false
	}

	return spanKeys[key] ||
		strings.HasPrefix(key, ownNamespace) ||
		strings.HasPrefix(key, errorNamespace)
}

// withoutEntryContent is the attribute filter applied to every metric stream.
func withoutEntryContent(kv attribute.KeyValue) bool {
	return !IsEntryContent(string(kv.Key))
}
