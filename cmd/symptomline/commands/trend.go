package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/symptomline/pkg/calendar"
	"github.com/Sumatoshi-tech/symptomline/pkg/observability"
	"github.com/Sumatoshi-tech/symptomline/pkg/plotpage"
	"github.com/Sumatoshi-tech/symptomline/pkg/timeline"
)

const (
	trendCmdUse     = "trend <entries-file>"
	trendCmdShort   = "Show mean daily severity per symptom over a date range"
	defaultSpanDays = 7
)

// ErrBadDate is returned when --from or --to is not a YYYY-MM-DD date.
var ErrBadDate = errors.New("dates must be YYYY-MM-DD")

// rangeFlags are shared by trend and render.
type rangeFlags struct {
	from string
	to   string
}

func (f *rangeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.from, "from", "", "first day, YYYY-MM-DD (default: six days before --to)")
	cmd.Flags().StringVar(&f.to, "to", "", "last day inclusive, YYYY-MM-DD (default: today)")
}

// resolve builds the range and bounds its span. Order is not validated, so
// an inverted range reaches the aggregator and fails there.
func (f *rangeFlags) resolve(today calendar.Day) (calendar.Range, error) {
	end := today

	if f.to != "" {
		day, err := calendar.ParseDay(f.to)
		if err != nil {
			return calendar.Range{}, fmt.Errorf("%w: --to %q", ErrBadDate, f.to)
		}

		end = day
	}

	start := end.AddDays(-(defaultSpanDays - 1))

	if f.from != "" {
		day, err := calendar.ParseDay(f.from)
		if err != nil {
			return calendar.Range{}, fmt.Errorf("%w: --from %q", ErrBadDate, f.from)
		}

		start = day
	}

	rng := calendar.Range{Start: start, End: end}

	err := rng.CheckLen(calendar.MaxRangeDays)
	if err != nil {
		return calendar.Range{}, err
	}

	return rng, nil
}

type trendOptions struct {
	rangeFlags

	json bool
}

// NewTrendCommand creates the trend subcommand.
func NewTrendCommand(a *app) *cobra.Command {
	var opts trendOptions

	cmd := &cobra.Command{
		Use:   trendCmdUse,
		Short: trendCmdShort,
		Long: `Aggregate a symptom log export into one series per symptom name.

Every day of the inclusive range is listed. A day with entries shows their mean
severity; a day without entries shows "-", which is not the same as 0.`,
		Args: cobra.ExactArgs(1),
		RunE: a.run("trend", nil, func(ctx context.Context, cmd *cobra.Command, args []string) error {
			return a.runTrend(ctx, cmd, args[0], opts)
		}),
	}

	opts.register(cmd)
	cmd.Flags().BoolVar(&opts.json, "json", false, "print JSON instead of a table")

	return cmd
}

// aggregator colours series from the palette of theme.
func (a *app) aggregator(theme plotpage.Theme) timeline.Aggregator {
	return timeline.Aggregator{
		Location:   a.loc,
		AxisLayout: a.cfg.Timeline.AxisLayout,
		Palette:    plotpage.GetChartPalette(theme).Series,
	}
}

func (a *app) runTrend(ctx context.Context, cmd *cobra.Command, path string, opts trendOptions) error {
	rng, err := opts.resolve(calendar.Today(time.Now(), a.loc))
	if err != nil {
		return err
	}

	entries, err := a.readEntries(path)
	if err != nil {
		return err
	}

	ds, diags, err := a.aggregator(plotpage.ParseTheme(a.cfg.Render.Theme)).Aggregate(entries, rng)
	if err != nil {
		return err
	}

	a.timeline.RecordAggregation(ctx, observability.AggregationStats{
		View: "trend", Entries: len(entries), Malformed: len(diags), Series: len(ds.Series),
	})
	a.reportSkipped(ctx, cmd, diags)

	if opts.json {
		return writeJSON(cmd.OutOrStdout(), timeline.TrendReport{Range: rng, Dataset: ds, Skipped: diags})
	}

	writeTrend(cmd.OutOrStdout(), rng, ds)

	return nil
}

func writeTrend(w io.Writer, rng calendar.Range, ds timeline.Dataset) {
	if ds.Empty() {
		fmt.Fprintf(w, "No entries between %s.\n", rng)

		return
	}

	tbl := newTable()

	header := table.Row{"Day"}
	for _, s := range ds.Series {
		header = append(header, s.Name)
	}

	tbl.AppendHeader(header)

	for i, label := range ds.AxisLabels {
		row := table.Row{label}
		for _, s := range ds.Series {
			p := s.Points[i]
			row = append(row, meanCell(p.Value, p.Valid))
		}

		tbl.AppendRow(row)
	}

	mean := table.Row{"Mean"}
	peak := table.Row{"Peak"}
	observed := table.Row{"Days"}

	for _, s := range ds.Series {
		mean = append(mean, humanize.FtoaWithDigits(s.Summary.Mean, severityDecimals))
		peak = append(peak, fmt.Sprintf("%s on %s",
			humanize.FtoaWithDigits(s.Summary.Peak, severityDecimals), s.Summary.PeakDay.Format(timeline.DefaultAxisLayout)))
		observed = append(observed, fmt.Sprintf("%d/%d", s.Summary.DaysObserved, len(ds.Days)))
	}

	tbl.AppendFooter(mean)
	tbl.AppendFooter(peak)
	tbl.AppendFooter(observed)

	fmt.Fprintf(w, "%s (%s)\n", rng, plural(len(ds.Days), "day", "days"))
	fmt.Fprintln(w, tbl.Render())
}
