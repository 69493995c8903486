package timeline

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Sumatoshi-tech/symptomline/pkg/alg/stats"
	"github.com/Sumatoshi-tech/symptomline/pkg/calendar"
	"github.com/Sumatoshi-tech/symptomline/pkg/symptom"
)

// DefaultAxisLayout formats axis labels.
const DefaultAxisLayout = "Jan 2"

// Point is the aggregate of one series on one day. Valid is false when no
// entry was observed, which is distinct from a mean severity of 0.
type Point struct {
	Day   calendar.Day
	Value float64
	Valid bool
	// Count is the number of entries averaged into Value.
	Count int
}

type pointJSON struct {
	Day   calendar.Day `json:"date"`
	Value *float64     `json:"value"`
	Count int          `json:"count"`
}

// MarshalJSON renders the no-data marker as a null value.
func (p Point) MarshalJSON() ([]byte, error) {
	out := pointJSON{Day: p.Day, Count: p.Count}
	if p.Valid {
		v := p.Value
		out.Value = &v
	}

	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("marshal point: %w", err)
	}

	return data, nil
}

// SeriesSummary describes the observed days of a series.
type SeriesSummary struct {
	// Mean is the mean of the daily means.
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
	Median float64 `json:"median"`
	// Peak is the highest daily mean, first reached on PeakDay.
	Peak         float64      `json:"peak"`
	PeakDay      calendar.Day `json:"peak_day"`
	DaysObserved int          `json:"days_observed"`
	Entries      int          `json:"entries"`
}

// Series is the per-day aggregate of one symptom name over the range.
type Series struct {
	Name    string        `json:"name"`
	Points  []Point       `json:"points"`
	Color   string        `json:"color"`
	Summary SeriesSummary `json:"summary"`
}

// Dataset is a dense multi-series trend aligned to one shared date axis.
type Dataset struct {
	AxisLabels []string       `json:"axis_labels"`
	Days       []calendar.Day `json:"days"`
	Series     []Series       `json:"series"`
}

// Empty reports whether the dataset has no series to draw.
func (d Dataset) Empty() bool {
	return len(d.Series) == 0
}

// Aggregator computes trend datasets. The zero value uses time.Local,
// DefaultAxisLayout, and hue-derived colours.
type Aggregator struct {
	// Location defines calendar days. Nil means time.Local.
	Location *time.Location
	// AxisLayout formats axis labels.
	AxisLayout string
	// Palette, when non-empty, is the set of colours series names hash onto.
	Palette []string
}

// Aggregate builds the dataset for entries over the inclusive range rng.
//
// An inverted range fails with ErrInvalidRange and no dataset. An empty log
// yields an empty dataset without enumerating the axis. Otherwise every day
// of the range appears on the axis, entries outside the range are ignored,
// and each (day, name) point is the mean severity of its entries.
func (a Aggregator) Aggregate(entries []symptom.Entry, rng calendar.Range) (Dataset, Diagnostics, error) {
	err := rng.Validate()
	if err != nil {
		return Dataset{}, nil, fmt.Errorf("aggregate: %w", err)
	}

	if len(entries) == 0 {
		return Dataset{AxisLabels: []string{}, Days: []calendar.Day{}, Series: []Series{}}, nil, nil
	}

	days, err := rng.Days()
	if err != nil {
		return Dataset{}, nil, fmt.Errorf("aggregate: %w", err)
	}

	loc := a.Location
	if loc == nil {
		loc = time.Local
	}

	var diags Diagnostics

	// day -> name -> severities, names in first-appearance order.
	byDay := make(map[calendar.Day]map[string][]float64, len(days))
	names := make([]string, 0)
	seen := make(map[string]struct{})

	for _, e := range entries {
		if !e.Resolved() {
			diags = append(diags, malformed(e))

			continue
		}

		day := calendar.DayOf(e.Timestamp, loc)
		if !rng.Contains(day) {
			continue
		}

		if _, ok := seen[e.Name]; !ok {
			seen[e.Name] = struct{}{}
			names = append(names, e.Name)
		}

		bucket, ok := byDay[day]
		if !ok {
			bucket = make(map[string][]float64)
			byDay[day] = bucket
		}

		bucket[e.Name] = append(bucket[e.Name], e.Severity)
	}

	series := make([]Series, 0, len(names))

	for _, name := range names {
		points := make([]Point, len(days))

		for i, day := range days {
			severities := byDay[day][name]
			points[i] = Point{Day: day, Count: len(severities)}

			if len(severities) > 0 {
				points[i].Value = stats.Mean(severities)
				points[i].Valid = true
			}
		}

		series = append(series, Series{
			Name:    name,
			Points:  points,
			Color:   SeriesColor(name, a.Palette),
			Summary: summarize(points),
		})
	}

	layout := a.AxisLayout
	if layout == "" {
		layout = DefaultAxisLayout
	}

	labels := make([]string, len(days))
	for i, day := range days {
		labels[i] = day.Format(layout)
	}

	return Dataset{AxisLabels: labels, Days: days, Series: series}, diags, nil
}

func summarize(points []Point) SeriesSummary {
	values := make([]float64, 0, len(points))
	observed := make([]calendar.Day, 0, len(points))

	var summary SeriesSummary

	for _, p := range points {
		if !p.Valid {
			continue
		}

		values = append(values, p.Value)
		observed = append(observed, p.Day)
		summary.Entries += p.Count
	}

	if len(values) == 0 {
		return summary
	}

	summary.DaysObserved = len(values)
	summary.Mean, summary.StdDev = stats.MeanStdDev(values)
	summary.Median = stats.Median(values)

	peak := stats.ArgMax(values)
	summary.Peak = values[peak]
	summary.PeakDay = observed[peak]

	return summary
}
