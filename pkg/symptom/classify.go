package symptom

// Band is the severity banding used for display.
type Band int

// Severity bands.
const (
	BandLow Band = iota
	BandModerate
	BandHigh
)

// Band thresholds: severity > bandHighFloor is high, severity > bandModerateFloor is moderate.
const (
	bandHighFloor     = 3
	bandModerateFloor = 1
)

// Display classes for categories.
const (
	ClassPhysical  = "category-physical"
	ClassEmotional = "category-emotional"
	ClassCognitive = "category-cognitive"
	ClassSleep     = "category-sleep"
	ClassDefault   = "category-default"
)

// Display classes for severity bands.
const (
	ClassSeverityHigh     = "severity-red"
	ClassSeverityModerate = "severity-yellow"
	ClassSeverityLow      = "severity-green"
)

// Glyphs for severity bands.
const (
	GlyphHigh     = "▲"
	GlyphModerate = "■"
	GlyphLow      = "●"
)

// BandOf classifies a severity: > 3 high, (1, 3] moderate, <= 1 low.
func BandOf(severity float64) Band {
	switch {
	case severity > bandHighFloor:
		return BandHigh
	case severity > bandModerateFloor:
		return BandModerate
	default:
		return BandLow
	}
}

// String returns the lower-case band name.
func (b Band) String() string {
	switch b {
	case BandHigh:
		return "high"
	case BandModerate:
		return "moderate"
	default:
		return "low"
	}
}

// Class returns the fixed colour class of the band.
func (b Band) Class() string {
	switch b {
	case BandHigh:
		return ClassSeverityHigh
	case BandModerate:
		return ClassSeverityModerate
	default:
		return ClassSeverityLow
	}
}

// Glyph returns the fixed glyph of the band.
func (b Band) Glyph() string {
	switch b {
	case BandHigh:
		return GlyphHigh
	case BandModerate:
		return GlyphModerate
	default:
		return GlyphLow
	}
}

// CategoryClass returns the display class for a category. OTHER and
// unrecognised categories share the default class.
func CategoryClass(c Category) string {
	switch c {
	case CategoryPhysical:
		return ClassPhysical
	case CategoryEmotional:
		return ClassEmotional
	case CategoryCognitive:
		return ClassCognitive
	case CategorySleep:
		return ClassSleep
	default:
		return ClassDefault
	}
}

// Classification bundles the derived display attributes of one entry.
type Classification struct {
	CategoryClass string `json:"category_class"`
	Band          string `json:"band"`
	BandClass     string `json:"band_class"`
	Glyph         string `json:"glyph"`
}

// Classify derives the display attributes of e.
func Classify(e Entry) Classification {
	band := BandOf(e.Severity)

	return Classification{
		CategoryClass: CategoryClass(e.Category),
		Band:          band.String(),
		BandClass:     band.Class(),
		Glyph:         band.Glyph(),
	}
}
