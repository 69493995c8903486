package timeline_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/symptomline/pkg/symptom"
	"github.com/Sumatoshi-tech/symptomline/pkg/timeline"
)

func TestAnnotate(t *testing.T) {
	t.Parallel()

	log := []symptom.Entry{
		entry("a", "Headache", 4, at(9, 8, 0)),
		entry("b", "Headache", 1, at(10, 8, 0)),
		{ID: "c", Name: "Fog", Severity: 2},
	}

	report := timeline.Annotate(newGrouper().Group(log))

	require.Len(t, report.Days, 2)
	assert.Equal(t, "Today", report.Days[0].DisplayDate)
	assert.Equal(t, symptom.GlyphLow, report.Days[0].Entries[0].Glyph)
	assert.Equal(t, symptom.ClassSeverityHigh, report.Days[1].Entries[0].BandClass)
	assert.Equal(t, symptom.ClassPhysical, report.Days[1].Entries[0].CategoryClass)
	assert.Equal(t, []string{"c"}, report.Skipped.EntryIDs())
}

func TestAnnotate_JSONFlattensClassification(t *testing.T) {
	t.Parallel()

	report := timeline.Annotate(newGrouper().Group([]symptom.Entry{entry("a", "Nausea", 2, at(8, 12, 0))}))

	data, err := json.Marshal(report)
	require.NoError(t, err)

	var decoded struct {
		Days []struct {
			Date    string           `json:"date"`
			Entries []map[string]any `json:"entries"`
		} `json:"days"`
	}

	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded.Days, 1)
	assert.Equal(t, "2024-03-08", decoded.Days[0].Date)

	got := decoded.Days[0].Entries[0]
	assert.Equal(t, "Nausea", got["name"])
	assert.Equal(t, "moderate", got["band"])
	assert.Equal(t, symptom.GlyphModerate, got["glyph"])
	assert.NotContains(t, string(data), "skipped")
}
