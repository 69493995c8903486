package commands

import (
	"context"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/symptomline/pkg/calendar"
	"github.com/Sumatoshi-tech/symptomline/pkg/config"
	"github.com/Sumatoshi-tech/symptomline/pkg/plotpage"
	"github.com/Sumatoshi-tech/symptomline/pkg/safeconv"
	"github.com/Sumatoshi-tech/symptomline/pkg/surface"
)

const (
	renderCmdUse   = "render <entries-file>"
	renderCmdShort = "Write the trend line chart as a standalone HTML page"
)

type renderOptions struct {
	rangeFlags

	output    string
	name      string
	title     string
	theme     string
	ephemeral bool
}

// NewRenderCommand creates the render subcommand.
func NewRenderCommand(a *app) *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   renderCmdUse,
		Short: renderCmdShort,
		Long: `Aggregate a symptom log export over a date range and write the result as an
interactive line chart page (go-echarts).

Nothing is written when no symptom has entries in the range. With --ephemeral
the page is streamed to stdout and the file is removed afterwards.`,
		Args: cobra.ExactArgs(1),
		RunE: a.run("render", nil, func(ctx context.Context, cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("output") {
				opts.output = a.cfg.Render.OutputDir
			}

			if !cmd.Flags().Changed("theme") {
				opts.theme = a.cfg.Render.Theme
			}

			if !cmd.Flags().Changed("ephemeral") {
				opts.ephemeral = a.cfg.Render.Ephemeral
			}

			return a.runRender(ctx, cmd, args[0], opts)
		}),
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output directory (default render.output_dir)")
	cmd.Flags().StringVar(&opts.name, "name", "trend", "file name without extension")
	cmd.Flags().StringVar(&opts.title, "title", "", "page title")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "light or dark (default render.theme)")
	cmd.Flags().BoolVar(&opts.ephemeral, "ephemeral", false, "stream the page to stdout and remove the file")

	return cmd
}

func (a *app) runRender(ctx context.Context, cmd *cobra.Command, path string, opts renderOptions) error {
	if !slices.Contains([]string{"light", "dark"}, opts.theme) {
		return fmt.Errorf("%w: %q", config.ErrInvalidTheme, opts.theme)
	}

	theme := plotpage.ParseTheme(opts.theme)

	rng, err := opts.resolve(calendar.Today(time.Now(), a.loc))
	if err != nil {
		return err
	}

	entries, err := a.readEntries(path)
	if err != nil {
		return err
	}

	factory := surface.FileFactory{
		Dir:  opts.output,
		Name: opts.name,
		Chart: surface.ChartFactory{
			Theme:  theme,
			Title:  opts.title,
			Width:  a.cfg.Render.Width,
			Height: a.cfg.Render.Height,
		},
		Ephemeral: opts.ephemeral,
	}

	adapter := surface.NewAdapter(factory,
		surface.WithAggregator(a.aggregator(theme)),
		surface.WithLogger(a.logger),
		surface.WithObserver(func(ctx context.Context, snap surface.Snapshot) {
			a.timeline.RecordSurfaceState(ctx, snap.State.String())
		}),
	)

	defer func() {
		closeErr := adapter.Close()
		if closeErr != nil {
			a.logger.WarnContext(ctx, "closing trend surface", "error", closeErr)
		}
	}()

	snap, err := adapter.Update(ctx, entries, rng)
	a.reportSkipped(ctx, cmd, snap.Diagnostics)

	if snap.State == surface.StateNoData {
		fmt.Fprintf(cmd.ErrOrStderr(), "No entries between %s; nothing written.\n", rng)

		return nil
	}

	if err != nil {
		return err
	}

	if opts.ephemeral {
		return adapter.Render(cmd.OutOrStdout())
	}

	info, err := os.Stat(factory.Path())
	if err != nil {
		return fmt.Errorf("stat rendered page: %w", err)
	}

	if !a.quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%s, %s)\n",
			factory.Path(), humanize.Bytes(safeconv.MustInt64ToUint64(info.Size())), plural(len(snap.Dataset.Series), "series", "series"))
	}

	return nil
}
