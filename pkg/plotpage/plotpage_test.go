package plotpage_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/symptomline/pkg/plotpage"
)

var errChartBroken = errors.New("chart broken")

type stubChart struct {
	html string
	err  error
}

func (s stubChart) Render(w io.Writer) error {
	if s.err != nil {
		return s.err
	}

	_, err := io.WriteString(w, s.html)

	return err
}

const echartsPage = `<!DOCTYPE html>
<html>
<head><title>x</title></head>
<body>
<div class="container">
  <div class="item" id="abc"></div>
</div>
<style>.container {display: flex;}</style>
<script>var chart_abc = echarts.init();</script>
</body>
</html>`

func TestPage_RendersSectionsAndTheme(t *testing.T) {
	t.Parallel()

	page := plotpage.NewPage("Trends", "Daily severity").WithTheme(plotpage.ThemeDark)
	page.Add(plotpage.Section{
		Title:    "Headache",
		Subtitle: "mean per day",
		Hint:     plotpage.Hint{Title: "Reading", Items: []string{"gaps are days without entries"}},
		Chart:    stubChart{html: echartsPage},
	})

	var buf bytes.Buffer

	require.NoError(t, page.Render(&buf))

	out := buf.String()
	assert.Contains(t, out, "<h1>Trends</h1>")
	assert.Contains(t, out, "Symptomline")
	assert.Contains(t, out, "<h2>Headache</h2>")
	assert.Contains(t, out, "gaps are days without entries")
	assert.Contains(t, out, plotpage.GetThemeConfig(plotpage.ThemeDark).Background)
	assert.Contains(t, out, `class="echart-box"`)
	assert.Contains(t, out, "echarts.init()")
	assert.Contains(t, out, plotpage.EChartsAssetURL)
	assert.Equal(t, 1, strings.Count(out, "<!DOCTYPE html>"))
}

func TestPage_SectionErrorIsWrapped(t *testing.T) {
	t.Parallel()

	page := plotpage.NewPage("Trends", "")
	page.Add(plotpage.Section{Title: "Broken", Chart: stubChart{err: errChartBroken}})

	err := page.Render(io.Discard)
	require.ErrorIs(t, err, errChartBroken)
	assert.Contains(t, err.Error(), `"Broken"`)
}

func TestPage_NilChartSection(t *testing.T) {
	t.Parallel()

	page := plotpage.NewPage("Empty", "")
	page.Add(plotpage.Section{Title: "Nothing yet"})

	var buf bytes.Buffer

	require.NoError(t, page.Render(&buf))
	assert.Contains(t, buf.String(), "Nothing yet")
}

func TestWrapChart_StripsScaffolding(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, plotpage.WrapChart(stubChart{html: echartsPage}).Render(&buf))

	out := buf.String()
	assert.NotContains(t, out, "<!DOCTYPE")
	assert.NotContains(t, out, "<style>")
	assert.NotContains(t, out, "</body>")
	assert.True(t, strings.HasPrefix(out, `<div class="echart-box">`))
}

func TestWrapChart_PassesThroughFragments(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, plotpage.WrapChart(stubChart{html: "<div>fragment</div>"}).Render(&buf))
	assert.Equal(t, "<div>fragment</div>", buf.String())
}

func TestParseTheme(t *testing.T) {
	t.Parallel()

	assert.Equal(t, plotpage.ThemeDark, plotpage.ParseTheme("dark"))
	assert.Equal(t, plotpage.ThemeLight, plotpage.ParseTheme("light"))
	assert.Equal(t, plotpage.ThemeLight, plotpage.ParseTheme("neon"))
}

func TestGetChartPalette(t *testing.T) {
	t.Parallel()

	light := plotpage.GetChartPalette(plotpage.ThemeLight)
	dark := plotpage.GetChartPalette(plotpage.ThemeDark)

	require.NotEmpty(t, light.Series)
	assert.Len(t, dark.Series, len(light.Series))
	assert.NotEqual(t, light.Series[0], dark.Series[0])
	assert.NotEmpty(t, light.Bands.High)
}
