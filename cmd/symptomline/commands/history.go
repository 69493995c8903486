package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/symptomline/pkg/calendar"
	"github.com/Sumatoshi-tech/symptomline/pkg/observability"
	"github.com/Sumatoshi-tech/symptomline/pkg/timeline"
)

const (
	historyCmdUse   = "history <entries-file>"
	historyCmdShort = "Show entries grouped by calendar day, newest first"
	timeLayout      = "15:04"
)

type historyOptions struct {
	json bool
	days int
}

// NewHistoryCommand creates the history subcommand.
func NewHistoryCommand(a *app) *cobra.Command {
	var opts historyOptions

	cmd := &cobra.Command{
		Use:   historyCmdUse,
		Short: historyCmdShort,
		Long: `Group a symptom log export into calendar days in the configured timezone.

Days are listed newest first with entries in log order. Today and yesterday are
labelled as such; older days use timeline.date_layout. Pass "-" to read stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: a.run("history", nil, func(ctx context.Context, cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("days") {
				opts.days = a.cfg.Timeline.HistoryDays
			}

			return a.runHistory(ctx, cmd, args[0], opts)
		}),
	}

	cmd.Flags().BoolVar(&opts.json, "json", false, "print JSON instead of tables")
	cmd.Flags().IntVar(&opts.days, "days", 0, "only show the most recent N days (0 shows all; default timeline.history_days)")

	return cmd
}

func (a *app) runHistory(ctx context.Context, cmd *cobra.Command, path string, opts historyOptions) error {
	entries, err := a.readEntries(path)
	if err != nil {
		return err
	}

	now := time.Now()
	grouper := timeline.Grouper{
		Location:      a.loc,
		Now:           func() time.Time { return now },
		DisplayLayout: a.cfg.Timeline.DateLayout,
	}

	buckets, diags := grouper.Group(entries)

	a.timeline.RecordAggregation(ctx, observability.AggregationStats{
		View: "history", Entries: len(entries), Malformed: len(diags),
	})
	a.reportSkipped(ctx, cmd, diags)

	buckets = recentDays(buckets, calendar.Today(now, a.loc), opts.days)
	report := timeline.Annotate(buckets, diags)

	if opts.json {
		return writeJSON(cmd.OutOrStdout(), report)
	}

	writeHistory(cmd.OutOrStdout(), report, a.loc, now)

	return nil
}

// recentDays keeps buckets no older than days-1 days before today.
func recentDays(buckets []timeline.DayBucket, today calendar.Day, days int) []timeline.DayBucket {
	if days <= 0 {
		return buckets
	}

	oldest := today.AddDays(-(days - 1))

	for i, b := range buckets {
		if b.Day.Before(oldest) {
			return buckets[:i]
		}
	}

	return buckets
}

func writeHistory(w io.Writer, report timeline.HistoryReport, loc *time.Location, now time.Time) {
	if len(report.Days) == 0 {
		fmt.Fprintln(w, "No entries.")

		return
	}

	var (
		count  int
		latest time.Time
	)

	bold := color.New(color.Bold)

	for _, day := range report.Days {
		bold.Fprintf(w, "%s (%s)\n", day.DisplayDate, day.Day)

		tbl := newTable()
		tbl.AppendHeader(table.Row{"Time", "Symptom", "Category", "Severity", "Notes"})

		for _, e := range day.Entries {
			tbl.AppendRow(table.Row{
				e.Timestamp.In(loc).Format(timeLayout),
				e.Name,
				categoryLabel(e.Category),
				severityCell(e.Severity),
				truncate(e.Notes, notesWidth),
			})

			if e.Timestamp.After(latest) {
				latest = e.Timestamp
			}
		}

		count += len(day.Entries)

		fmt.Fprintln(w, tbl.Render())
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "%s over %s, latest %s\n",
		plural(count, "entry", "entries"),
		plural(len(report.Days), "day", "days"),
		humanize.RelTime(latest, now, "ago", "from now"))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return humanize.Comma(int64(n)) + " " + one
	}

	return humanize.Comma(int64(n)) + " " + many
}
