package symptom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/symptomline/pkg/symptom"
)

func TestBandOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		severity float64
		expected symptom.Band
	}{
		{name: "absent", severity: 0, expected: symptom.BandLow},
		{name: "one_is_low", severity: 1, expected: symptom.BandLow},
		{name: "just_above_one", severity: 1.5, expected: symptom.BandModerate},
		{name: "three_is_moderate", severity: 3, expected: symptom.BandModerate},
		{name: "four_is_high", severity: 4, expected: symptom.BandHigh},
		{name: "max", severity: 5, expected: symptom.BandHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, symptom.BandOf(tt.severity))
		})
	}
}

func TestBand_ClassAndGlyph(t *testing.T) {
	t.Parallel()

	assert.Equal(t, symptom.ClassSeverityHigh, symptom.BandHigh.Class())
	assert.Equal(t, symptom.ClassSeverityModerate, symptom.BandModerate.Class())
	assert.Equal(t, symptom.ClassSeverityLow, symptom.BandLow.Class())

	assert.Equal(t, symptom.GlyphHigh, symptom.BandHigh.Glyph())
	assert.Equal(t, symptom.GlyphModerate, symptom.BandModerate.Glyph())
	assert.Equal(t, symptom.GlyphLow, symptom.BandLow.Glyph())

	assert.Equal(t, "high", symptom.BandHigh.String())
}

func TestCategoryClass(t *testing.T) {
	t.Parallel()

	assert.Equal(t, symptom.ClassPhysical, symptom.CategoryClass(symptom.CategoryPhysical))
	assert.Equal(t, symptom.ClassEmotional, symptom.CategoryClass(symptom.CategoryEmotional))
	assert.Equal(t, symptom.ClassCognitive, symptom.CategoryClass(symptom.CategoryCognitive))
	assert.Equal(t, symptom.ClassSleep, symptom.CategoryClass(symptom.CategorySleep))
	assert.Equal(t, symptom.ClassDefault, symptom.CategoryClass(symptom.CategoryOther))
	assert.Equal(t, symptom.ClassDefault, symptom.CategoryClass("DIGESTIVE"))
}

func TestParseCategory(t *testing.T) {
	t.Parallel()

	assert.Equal(t, symptom.CategorySleep, symptom.ParseCategory(" sleep "))
	assert.True(t, symptom.ParseCategory("physical").Known())
	assert.False(t, symptom.ParseCategory("digestive").Known())
}

func TestClassify(t *testing.T) {
	t.Parallel()

	c := symptom.Classify(symptom.Entry{Category: symptom.CategoryEmotional, Severity: 4})

	assert.Equal(t, symptom.ClassEmotional, c.CategoryClass)
	assert.Equal(t, "high", c.Band)
	assert.Equal(t, symptom.ClassSeverityHigh, c.BandClass)
	assert.Equal(t, symptom.GlyphHigh, c.Glyph)
}
