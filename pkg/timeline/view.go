package timeline

import (
	"github.com/Sumatoshi-tech/symptomline/pkg/calendar"
	"github.com/Sumatoshi-tech/symptomline/pkg/symptom"
)

// AnnotatedEntry is an entry with its display classification.
type AnnotatedEntry struct {
	symptom.Entry
	symptom.Classification
}

// HistoryDay is a DayBucket ready for display.
type HistoryDay struct {
	Day         calendar.Day     `json:"date"`
	DisplayDate string           `json:"display_date"`
	Entries     []AnnotatedEntry `json:"entries"`
}

// HistoryReport is the display form of one Group call.
type HistoryReport struct {
	Days    []HistoryDay `json:"days"`
	Skipped Diagnostics  `json:"skipped,omitempty"`
}

// TrendReport is the display form of one Aggregate call.
type TrendReport struct {
	Range   calendar.Range `json:"range"`
	Dataset Dataset        `json:"dataset"`
	Skipped Diagnostics    `json:"skipped,omitempty"`
}

// Annotate classifies every entry of every bucket.
func Annotate(buckets []DayBucket, diags Diagnostics) HistoryReport {
	days := make([]HistoryDay, len(buckets))

	for i, b := range buckets {
		entries := make([]AnnotatedEntry, len(b.Entries))
		for j, e := range b.Entries {
			entries[j] = AnnotatedEntry{Entry: e, Classification: symptom.Classify(e)}
		}

		days[i] = HistoryDay{Day: b.Day, DisplayDate: b.DisplayDate, Entries: entries}
	}

	return HistoryReport{Days: days, Skipped: diags}
}
