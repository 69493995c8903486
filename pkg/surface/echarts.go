package surface

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/dustin/go-humanize"

	"github.com/Sumatoshi-tech/symptomline/pkg/plotpage"
	"github.com/Sumatoshi-tech/symptomline/pkg/symptom"
	"github.com/Sumatoshi-tech/symptomline/pkg/timeline"
)

const (
	defaultPageTitle = "Symptom trends"
	severityAxisName = "Severity"
	severityDecimals = 1
)

// ChartFactory renders datasets as go-echarts line chart pages held in memory.
type ChartFactory struct {
	Theme  plotpage.Theme
	Title  string
	Width  string
	Height string
}

// Acquire builds the page for ds.
func (f ChartFactory) Acquire(ctx context.Context, ds timeline.Dataset) (Resource, error) {
	err := ctx.Err()
	if err != nil {
		return nil, err
	}

	if ds.Empty() {
		return nil, fmt.Errorf("chart of %d days: %w", len(ds.Days), ErrNoSeries)
	}

	return &pageResource{page: f.BuildPage(ds)}, nil
}

// BuildPage lays out ds as a single-chart page with a per-series summary.
func (f ChartFactory) BuildPage(ds timeline.Dataset) *plotpage.Page {
	title := f.Title
	if title == "" {
		title = defaultPageTitle
	}

	page := plotpage.NewPage(title, rangeDescription(ds)).WithTheme(f.Theme)

	cOpts := plotpage.NewChartOpts(f.Theme).WithSize(f.Width, f.Height)
	chart := plotpage.BuildLineChart(cOpts, ds.AxisLabels, LineSeries(ds),
		cOpts.SeverityAxis(severityAxisName, symptom.SeverityMin, symptom.SeverityMax))

	page.Add(plotpage.Section{
		Title:    "Mean daily severity",
		Subtitle: fmt.Sprintf("%d symptoms over %d days", len(ds.Series), len(ds.Days)),
		Chart:    plotpage.WrapChart(chart),
		Hint: plotpage.Hint{
			Title: "Reading the chart",
			Items: summaryItems(ds),
		},
	})

	return page
}

// LineSeries converts dataset series to chart series, mapping days without
// entries to plotpage.NoData so they render as gaps rather than zero.
func LineSeries(ds timeline.Dataset) []plotpage.LineSeries {
	out := make([]plotpage.LineSeries, 0, len(ds.Series))

	for _, s := range ds.Series {
		data := make([]plotpage.SeriesData, len(s.Points))

		for i, p := range s.Points {
			if p.Valid {
				data[i] = p.Value
			} else {
				data[i] = plotpage.NoData
			}
		}

		out = append(out, plotpage.LineSeries{Name: s.Name, Data: data, Color: s.Color})
	}

	return out
}

func rangeDescription(ds timeline.Dataset) string {
	if len(ds.Days) == 0 {
		return ""
	}

	return fmt.Sprintf("%s to %s", ds.Days[0], ds.Days[len(ds.Days)-1])
}

func summaryItems(ds timeline.Dataset) []string {
	items := make([]string, 0, len(ds.Series)+1)
	items = append(items, "Gaps are days with no entries for that symptom, not severity 0.")

	for _, s := range ds.Series {
		items = append(items, fmt.Sprintf("%s: mean %s, peak %s on %s, %s",
			s.Name,
			humanize.FtoaWithDigits(s.Summary.Mean, severityDecimals),
			humanize.FtoaWithDigits(s.Summary.Peak, severityDecimals),
			s.Summary.PeakDay,
			pluralDays(s.Summary.DaysObserved),
		))
	}

	return items
}

func pluralDays(n int) string {
	return humanize.Comma(int64(n)) + " " + plural(n, "day", "days") + " observed"
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}

	return many
}

// pageResource is an in-memory rendered page.
type pageResource struct {
	mu       sync.Mutex
	page     *plotpage.Page
	released bool
}

func (r *pageResource) Render(w io.Writer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.released {
		return ErrReleased
	}

	return r.page.Render(w)
}

func (r *pageResource) Release() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.released {
		return ErrReleased
	}

	r.released = true
	r.page = nil

	return nil
}
