package plotpage

import (
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// NoData is the echarts value that leaves a gap in a line series.
const NoData = "-"

const (
	defaultChartWidth  = "100%"
	defaultChartHeight = "500px"
	lineWidth          = 2
	symbolSize         = 7
)

// SeriesData represents a single value in a chart series: a number, or
// NoData for a missing point.
type SeriesData any

// LineSeries defines the properties and data for a single line chart series.
type LineSeries struct {
	Name  string
	Data  []SeriesData
	Color string // Optional, uses theme if empty.
}

// BuildLineChart constructs a fully configured go-echarts Line chart.
// If cOpts is nil, DefaultChartOpts() is used.
func BuildLineChart(cOpts *ChartOpts, labels []string, series []LineSeries, yAxis opts.YAxis) *charts.Line {
	if cOpts == nil {
		cOpts = DefaultChartOpts()
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(cOpts.Init(cOpts.width, cOpts.height)),
		charts.WithTooltipOpts(cOpts.Tooltip("axis")),
		charts.WithDataZoomOpts(cOpts.DataZoom()...),
		charts.WithXAxisOpts(cOpts.XAxis("")),
		charts.WithYAxisOpts(yAxis),
		charts.WithLegendOpts(cOpts.Legend()),
		charts.WithGridOpts(cOpts.Grid()),
	)

	line.SetXAxis(labels)

	for _, s := range series {
		lineData := make([]opts.LineData, len(s.Data))
		for i, v := range s.Data {
			lineData[i] = opts.LineData{Value: v, SymbolSize: symbolSize}
		}

		seriesOpts := []charts.SeriesOpts{
			charts.WithLineStyleOpts(opts.LineStyle{Width: lineWidth}),
		}

		if s.Color != "" {
			seriesOpts = append(seriesOpts,
				charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}),
				charts.WithLineStyleOpts(opts.LineStyle{Color: s.Color, Width: lineWidth}),
			)
		}

		line.AddSeries(s.Name, lineData, seriesOpts...)
	}

	return line
}
