package timeline

import (
	"fmt"

	"github.com/Sumatoshi-tech/symptomline/pkg/alg/hashutil"
)

const (
	hueDegrees      = 360
	hueSaturation   = 65
	hueLightness    = 55
	hueColorPattern = "hsl(%d, %d%%, %d%%)"
)

// SeriesColor derives a stable colour for a series name: a palette entry
// when palette is non-empty, otherwise an HSL hue. The same name always
// gets the same colour, so re-renders do not flicker.
func SeriesColor(name string, palette []string) string {
	if len(palette) > 0 {
		return palette[hashutil.Bucket(name, len(palette))]
	}

	return fmt.Sprintf(hueColorPattern, hashutil.Bucket(name, hueDegrees), hueSaturation, hueLightness)
}
