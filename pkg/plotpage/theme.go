package plotpage

// Theme represents a color theme for visualizations.
type Theme string

const (
	// ThemeLight is the light color theme.
	ThemeLight Theme = "light"
	// ThemeDark is the dark color theme.
	ThemeDark Theme = "dark"
)

// ParseTheme maps a config string to a Theme, defaulting to light.
func ParseTheme(s string) Theme {
	if Theme(s) == ThemeDark {
		return ThemeDark
	}

	return ThemeLight
}

// ThemeConfig holds the styling values a chart page needs.
type ThemeConfig struct {
	Background    string
	Surface       string
	Border        string
	TextPrimary   string
	TextMuted     string
	Accent        string
	ChartGrid     string
	ChartAxis     string
	ChartText     string
	ChartTextDim  string
	ChartBackdrop string
}

// ChartPalette is the colour set series names hash onto, plus the fixed
// severity band colours.
type ChartPalette struct {
	Series []string
	Bands  struct {
		Low      string
		Moderate string
		High     string
	}
}

// GetThemeConfig returns the configuration for a given theme.
func GetThemeConfig(theme Theme) ThemeConfig {
	if theme == ThemeDark {
		return darkTheme
	}

	return lightTheme
}

// GetChartPalette returns the chart color palette for a given theme.
func GetChartPalette(theme Theme) ChartPalette {
	if theme == ThemeDark {
		return darkChartPalette
	}

	return lightChartPalette
}

var lightTheme = ThemeConfig{
	Background:    "#fafaf9", // stone-50.
	Surface:       "#ffffff",
	Border:        "#e7e5e4", // stone-200.
	TextPrimary:   "#1c1917", // stone-900.
	TextMuted:     "#78716c", // stone-500.
	Accent:        "#0f766e", // teal-700.
	ChartGrid:     "#e7e5e4",
	ChartAxis:     "#a8a29e", // stone-400.
	ChartText:     "#44403c", // stone-700.
	ChartTextDim:  "#78716c",
	ChartBackdrop: "transparent",
}

var darkTheme = ThemeConfig{
	Background:    "#0c0a09", // stone-950.
	Surface:       "#1c1917", // stone-900.
	Border:        "#44403c", // stone-700.
	TextPrimary:   "#fafaf9",
	TextMuted:     "#a8a29e",
	Accent:        "#2dd4bf", // teal-400.
	ChartGrid:     "#44403c",
	ChartAxis:     "#57534e", // stone-600.
	ChartText:     "#d6d3d1", // stone-300.
	ChartTextDim:  "#a8a29e",
	ChartBackdrop: "transparent",
}

var lightChartPalette = newPalette(
	[]string{
		"#0369a1", // sky-700.
		"#be185d", // pink-700.
		"#4d7c0f", // lime-700.
		"#7c3aed", // violet-600.
		"#c2410c", // orange-700.
		"#0891b2", // cyan-600.
		"#a16207", // amber-700.
		"#4338ca", // indigo-700.
		"#15803d", // green-700.
		"#b91c1c", // red-700.
	},
	"#16a34a", "#ca8a04", "#dc2626",
)

var darkChartPalette = newPalette(
	[]string{
		"#38bdf8", // sky-400.
		"#f472b6", // pink-400.
		"#a3e635", // lime-400.
		"#a78bfa", // violet-400.
		"#fb923c", // orange-400.
		"#22d3ee", // cyan-400.
		"#fbbf24", // amber-400.
		"#818cf8", // indigo-400.
		"#4ade80", // green-400.
		"#f87171", // red-400.
	},
	"#22c55e", "#eab308", "#ef4444",
)

func newPalette(series []string, low, moderate, high string) ChartPalette {
	p := ChartPalette{Series: series}
	p.Bands.Low = low
	p.Bands.Moderate = moderate
	p.Bands.High = high

	return p
}
