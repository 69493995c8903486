package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/symptomline/pkg/config"
	"github.com/Sumatoshi-tech/symptomline/pkg/entrylog"
	"github.com/Sumatoshi-tech/symptomline/pkg/observability"
	"github.com/Sumatoshi-tech/symptomline/pkg/symptom"
	"github.com/Sumatoshi-tech/symptomline/pkg/timeline"
	"github.com/Sumatoshi-tech/symptomline/pkg/version"
)

const (
	cliSpanPrefix  = "cli."
	envOTLPHeaders = "OTEL_EXPORTER_OTLP_HEADERS"
)

// app is the state shared by every command of one invocation.
type app struct {
	configPath string
	verbose    bool
	quiet      bool
	noColor    bool
	mcpServe   mcpServeFunc

	cfg       *config.Config
	loc       *time.Location
	logger    *slog.Logger
	tracer    trace.Tracer
	red       *observability.REDMetrics
	timeline  *observability.TimelineMetrics
	providers observability.Providers
}

// commandFunc is the body of an instrumented command.
type commandFunc func(ctx context.Context, cmd *cobra.Command, args []string) error

// setupOptions tunes observability for one command.
type setupOptions struct {
	mode       observability.AppMode
	logJSON    bool
	prometheus bool
	debug      bool
}

// run loads configuration, starts observability, and executes fn inside a
// span with RED metrics. opts sees the loaded configuration. Telemetry is
// flushed before returning.
func (a *app) run(op string, opts func(*config.Config) setupOptions, fn commandFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(a.configPath)
		if err != nil {
			return err
		}

		setup := setupOptions{mode: observability.ModeCLI}
		if opts != nil {
			setup = opts(cfg)
		}

		err = a.setup(cmd, cfg, setup)
		if err != nil {
			return err
		}

		defer a.shutdown()

		ctx, span := a.tracer.Start(cmd.Context(), cliSpanPrefix+op, trace.WithSpanKind(trace.SpanKindInternal))
		defer span.End()

		start := time.Now()
		done := a.red.TrackInflight(ctx, op)

		err = fn(ctx, cmd, args)

		done()

		status := observability.StatusOK
		if err != nil {
			status = observability.StatusError

			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}

		a.red.RecordRequest(ctx, op, status, time.Since(start))

		return err
	}
}

func (a *app) setup(cmd *cobra.Command, cfg *config.Config, opts setupOptions) error {
	loc, err := cfg.Timeline.Location()
	if err != nil {
		return err
	}

	if a.noColor {
		color.NoColor = true //nolint:reassign // intentional override of library global
	}

	obsCfg := observability.DefaultConfig()
	obsCfg.ServiceVersion = version.Version
	obsCfg.Mode = opts.mode
	obsCfg.OTLPEndpoint = cfg.Observability.OTLPEndpoint
	obsCfg.OTLPInsecure = cfg.Observability.OTLPInsecure
	obsCfg.OTLPHeaders = observability.ParseOTLPHeaders(os.Getenv(envOTLPHeaders))
	obsCfg.SampleRatio = cfg.Observability.SampleRatio
	obsCfg.Prometheus = opts.prometheus
	obsCfg.DebugTrace = opts.debug
	obsCfg.LogLevel = a.logLevel(cfg.Logging.Level, opts.debug)
	obsCfg.LogJSON = opts.logJSON || strings.EqualFold(cfg.Logging.Format, "json")
	obsCfg.LogOutput = cmd.ErrOrStderr()

	providers, err := observability.Init(obsCfg)
	if err != nil {
		return fmt.Errorf("init observability: %w", err)
	}

	red, err := observability.NewREDMetrics(providers.Meter)
	if err != nil {
		return joinShutdown(providers, err)
	}

	tm, err := observability.NewTimelineMetrics(providers.Meter)
	if err != nil {
		return joinShutdown(providers, err)
	}

	a.cfg = cfg
	a.loc = loc
	a.providers = providers
	a.logger = providers.Logger
	a.tracer = providers.Tracer
	a.red = red
	a.timeline = tm

	return nil
}

func (a *app) logLevel(configured string, debug bool) slog.Level {
	switch {
	case debug || a.verbose:
		return slog.LevelDebug
	case a.quiet:
		return slog.LevelError
	default:
		return observability.ParseLevel(configured)
	}
}

func (a *app) shutdown() {
	err := a.providers.Shutdown(context.Background())
	if err != nil {
		a.logger.Warn("observability shutdown failed", "error", err)
	}
}

func joinShutdown(providers observability.Providers, err error) error {
	shutdownErr := providers.Shutdown(context.Background())
	if shutdownErr != nil {
		return fmt.Errorf("%w (shutdown: %w)", err, shutdownErr)
	}

	return err
}

// readEntries decodes the export at path; "-" reads standard input.
func (a *app) readEntries(path string) ([]symptom.Entry, error) {
	decoder := entrylog.Decoder{Location: a.loc, Format: entrylog.FormatFromPath(path)}

	entries, err := decoder.ReadFile(path)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("entries loaded", "path", path, "count", len(entries))

	return entries, nil
}

// reportSkipped logs entries left out for unusable timestamps and tells
// the user on stderr unless --quiet is set.
func (a *app) reportSkipped(ctx context.Context, cmd *cobra.Command, diags timeline.Diagnostics) {
	if len(diags) == 0 {
		return
	}

	a.logger.WarnContext(ctx, "entries skipped", "count", len(diags), "ids", diags.EntryIDs())

	if a.quiet {
		return
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "%s %d entries without a usable timestamp: %s\n",
		color.YellowString("skipped"), len(diags), strings.Join(diags.EntryIDs(), ", "))
}
