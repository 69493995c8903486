package observability

import (
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// spanRedactor is a SpanProcessor that hands the delegate a view of each
// ended span without entry content or keys outside the span catalogue.
type spanRedactor struct {
	sdktrace.SpanProcessor

	logger *slog.Logger
	warned sync.Map
}

// NewAttributeFilter wraps delegate so exported spans keep only catalogued
// keys and symptomline./error. namespaces. Entry content such as entry.name or
// notes is always dropped. With a non-nil logger each dropped key is
// reported once at warn level.
func NewAttributeFilter(delegate sdktrace.SpanProcessor, logger *slog.Logger) sdktrace.SpanProcessor {
	return &spanRedactor{SpanProcessor: delegate, logger: logger}
}

// OnEnd forwards a filtered view of s.
func (r *spanRedactor) OnEnd(s sdktrace.ReadOnlySpan) {
	r.SpanProcessor.OnEnd(redactedSpan{ReadOnlySpan: s, keep: r.keep})
}

func (r *spanRedactor) keep(kv attribute.KeyValue) bool {
	key := string(kv.Key)
	if exportableSpanKey(key) {
		return true
	}

	if r.logger != nil {
		if _, seen := r.warned.LoadOrStore(key, struct{}{}); !seen {
			r.logger.Warn("span attribute blocked", "key", key, "entry_content", IsEntryContent(key))
		}
	}

	return false
}

type redactedSpan struct {
	sdktrace.ReadOnlySpan

	keep attribute.Filter
}

func (s redactedSpan) Attributes() []attribute.KeyValue {
	all := s.ReadOnlySpan.Attributes()
	kept := make([]attribute.KeyValue, 0, len(all))

	for _, kv := range all {
		if s.keep(kv) {
			kept = append(kept, kv)
		}
	}

	return kept
}
