package timeline_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/symptomline/pkg/calendar"
	"github.com/Sumatoshi-tech/symptomline/pkg/symptom"
	"github.com/Sumatoshi-tech/symptomline/pkg/timeline"
)

var fixedNow = time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)

func at(day, hour, minute int) time.Time {
	return time.Date(2024, 3, day, hour, minute, 0, 0, time.UTC)
}

func entry(id, name string, severity float64, ts time.Time) symptom.Entry {
	return symptom.Entry{
		ID:        id,
		Name:      name,
		Category:  symptom.CategoryPhysical,
		Severity:  severity,
		Timestamp: ts,
	}
}

func newGrouper() timeline.Grouper {
	return timeline.Grouper{
		Location: time.UTC,
		Now:      func() time.Time { return fixedNow },
	}
}

func TestGroup_Empty(t *testing.T) {
	t.Parallel()

	buckets, diags := newGrouper().Group(nil)

	require.NotNil(t, buckets)
	assert.Empty(t, buckets)
	assert.Empty(t, diags)
}

func TestGroup_NewestFirstAndStableWithinDay(t *testing.T) {
	t.Parallel()

	entries := []symptom.Entry{
		entry("a", "Fatigue", 2, at(8, 10, 0)),
		entry("b", "Hot flash", 4, at(10, 7, 0)),
		entry("c", "Headache", 1, at(8, 9, 0)),
		entry("d", "Fatigue", 3, at(9, 22, 0)),
		entry("e", "Insomnia", 5, at(10, 1, 0)),
	}

	buckets, diags := newGrouper().Group(entries)
	require.Empty(t, diags)
	require.Len(t, buckets, 3)

	assert.Equal(t, calendar.Date(2024, 3, 10), buckets[0].Day)
	assert.Equal(t, calendar.Date(2024, 3, 9), buckets[1].Day)
	assert.Equal(t, calendar.Date(2024, 3, 8), buckets[2].Day)

	// Input order is kept inside a bucket, not timestamp order.
	assert.Equal(t, []string{"b", "e"}, ids(buckets[0].Entries))
	assert.Equal(t, []string{"a", "c"}, ids(buckets[2].Entries))
}

func TestGroup_DisplayDates(t *testing.T) {
	t.Parallel()

	entries := []symptom.Entry{
		entry("a", "Fatigue", 2, at(10, 8, 0)),
		entry("b", "Fatigue", 2, at(9, 8, 0)),
		entry("c", "Fatigue", 2, at(1, 8, 0)),
	}

	buckets, _ := newGrouper().Group(entries)
	require.Len(t, buckets, 3)

	assert.Equal(t, calendar.LabelToday, buckets[0].DisplayDate)
	assert.Equal(t, calendar.LabelYesterday, buckets[1].DisplayDate)
	assert.Equal(t, "Fri, Mar 1 2024", buckets[2].DisplayDate)
}

func TestGroup_CalendarDayNotElapsedTime(t *testing.T) {
	t.Parallel()

	entries := []symptom.Entry{
		entry("late", "Fatigue", 2, at(8, 23, 59)),
		entry("early", "Fatigue", 2, at(9, 0, 1)),
	}

	buckets, _ := newGrouper().Group(entries)

	assert.Len(t, buckets, 2)
}

func TestGroup_UsesConfiguredLocation(t *testing.T) {
	t.Parallel()

	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	g := newGrouper()
	g.Location = tokyo

	// 20:00 UTC on the 8th is the 9th in Tokyo.
	buckets, _ := g.Group([]symptom.Entry{entry("a", "Fatigue", 2, at(8, 20, 0))})

	require.Len(t, buckets, 1)
	assert.Equal(t, calendar.Date(2024, 3, 9), buckets[0].Day)
}

func TestGroup_PartitionProperty(t *testing.T) {
	t.Parallel()

	entries := make([]symptom.Entry, 0, 60)
	for i := range 60 {
		entries = append(entries, entry(
			fmt.Sprintf("e%02d", i),
			[]string{"Fatigue", "Hot flash", "Brain fog"}[i%3],
			float64(i%6),
			at(1+(i*7)%10, (i*5)%24, i%60),
		))
	}

	buckets, diags := newGrouper().Group(entries)
	require.Empty(t, diags)

	counts := make(map[string]int)

	for _, b := range buckets {
		for _, e := range b.Entries {
			counts[e.ID]++
			assert.Equal(t, b.Day, calendar.DayOf(e.Timestamp, time.UTC))
		}
	}

	require.Len(t, counts, len(entries))

	for _, e := range entries {
		assert.Equal(t, 1, counts[e.ID], "entry %s", e.ID)
	}
}

func TestGroup_MalformedEntriesReported(t *testing.T) {
	t.Parallel()

	entries := []symptom.Entry{
		entry("ok", "Fatigue", 2, at(9, 8, 0)),
		entry("bad", "Fatigue", 2, time.Time{}),
	}

	buckets, diags := newGrouper().Group(entries)

	require.Len(t, buckets, 1)
	assert.Equal(t, []string{"ok"}, ids(buckets[0].Entries))

	require.Len(t, diags, 1)
	assert.Equal(t, "bad", diags[0].EntryID)
	require.ErrorIs(t, diags.Err(), timeline.ErrMalformedEntry)
}

func TestGroup_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	entries := []symptom.Entry{
		entry("a", "Fatigue", 2, at(8, 10, 0)),
		entry("b", "Fatigue", 3, at(10, 10, 0)),
	}
	snapshot := append([]symptom.Entry(nil), entries...)

	_, _ = newGrouper().Group(entries)

	assert.Equal(t, snapshot, entries)
}

func TestGroup_Idempotent(t *testing.T) {
	t.Parallel()

	entries := []symptom.Entry{
		entry("a", "Fatigue", 2, at(8, 10, 0)),
		entry("b", "Hot flash", 3, at(10, 10, 0)),
		entry("c", "Fatigue", 1, at(8, 11, 0)),
	}

	first, _ := newGrouper().Group(entries)
	second, _ := newGrouper().Group(entries)

	assert.Equal(t, first, second)
}

func ids(entries []symptom.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}

	return out
}
