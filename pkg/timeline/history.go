// Package timeline turns a flat symptom log into a newest-first history of
// day buckets and into a gap-filled, multi-series trend dataset.
//
// Both transformations are pure: inputs are never mutated and nothing is
// cached between calls.
package timeline

import (
	"slices"
	"time"

	"github.com/Sumatoshi-tech/symptomline/pkg/calendar"
	"github.com/Sumatoshi-tech/symptomline/pkg/symptom"
)

// DayBucket holds the entries observed on one calendar day.
type DayBucket struct {
	Day         calendar.Day    `json:"date"`
	DisplayDate string          `json:"display_date"`
	Entries     []symptom.Entry `json:"entries"`
}

// Grouper groups a log into day buckets. The zero value groups in the
// local time zone relative to the wall clock.
type Grouper struct {
	// Location defines calendar days. Nil means time.Local.
	Location *time.Location
	// Now supplies the current instant for Today/Yesterday labels. Nil means time.Now.
	Now func() time.Time
	// DisplayLayout formats days older than yesterday.
	DisplayLayout string
}

// Group partitions entries into day buckets ordered newest day first.
// Entries keep their input order inside a bucket. Entries without a
// resolvable timestamp are left out of every bucket and reported in the
// returned Diagnostics.
func (g Grouper) Group(entries []symptom.Entry) ([]DayBucket, Diagnostics) {
	if len(entries) == 0 {
		return []DayBucket{}, nil
	}

	loc := g.location()

	var diags Diagnostics

	index := make(map[calendar.Day]int)
	buckets := make([]DayBucket, 0)

	for _, e := range entries {
		if !e.Resolved() {
			diags = append(diags, malformed(e))

			continue
		}

		day := calendar.DayOf(e.Timestamp, loc)

		i, ok := index[day]
		if !ok {
			i = len(buckets)
			index[day] = i
			buckets = append(buckets, DayBucket{Day: day})
		}

		buckets[i].Entries = append(buckets[i].Entries, e)
	}

	slices.SortStableFunc(buckets, func(a, b DayBucket) int {
		return b.Day.Compare(a.Day)
	})

	today := calendar.Today(g.now(), loc)

	for i := range buckets {
		buckets[i].DisplayDate = calendar.Label(buckets[i].Day, today, g.DisplayLayout)
	}

	return buckets, diags
}

func (g Grouper) location() *time.Location {
	if g.Location == nil {
		return time.Local
	}

	return g.Location
}

func (g Grouper) now() time.Time {
	if g.Now == nil {
		return time.Now()
	}

	return g.Now()
}
