package entrylog

import (
	"math"
	"strings"
	"time"
)

// Layouts without a zone are read in the decoder's location.
var zonedLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05Z0700", "2006-01-02 15:04:05Z07:00"}

var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Numbers above this are epoch milliseconds rather than seconds.
const millisThreshold = 1e11

// ParseTimestamp resolves a decoded timestamp value to an instant. Strings
// are tried against RFC 3339 and common local layouts, numbers are epoch
// seconds (or milliseconds when large). It reports false when v cannot be
// resolved; callers keep the entry with a zero timestamp.
func ParseTimestamp(v any, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}

	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case string:
		return parseString(strings.TrimSpace(t), loc)
	case float64:
		return fromEpoch(t)
	case int:
		return fromEpoch(float64(t))
	case int64:
		return fromEpoch(float64(t))
	case uint64:
		return fromEpoch(float64(t))
	default:
		return time.Time{}, false
	}
}

func parseString(s string, loc *time.Location) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range zonedLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, true
		}
	}

	for _, layout := range localLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

func fromEpoch(v float64) (time.Time, bool) {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return time.Time{}, false
	}

	if v >= millisThreshold {
		return time.UnixMilli(int64(v)), true
	}

	sec, frac := math.Modf(v)

	return time.Unix(int64(sec), int64(frac*float64(time.Second))), true
}
