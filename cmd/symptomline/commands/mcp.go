package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/symptomline/pkg/config"
	"github.com/Sumatoshi-tech/symptomline/pkg/mcp"
	"github.com/Sumatoshi-tech/symptomline/pkg/observability"
	"github.com/Sumatoshi-tech/symptomline/pkg/plotpage"
	"github.com/Sumatoshi-tech/symptomline/pkg/version"
)

const diagnosticsShutdownTimeout = 5 * time.Second

// mcpServeFunc runs srv until ctx ends or the client disconnects.
// diagnosticsAddr is the bound diagnostics address, or empty.
type mcpServeFunc func(ctx context.Context, srv *mcp.Server, diagnosticsAddr string) error

func serveStdio(ctx context.Context, srv *mcp.Server, _ string) error {
	return srv.Run(ctx)
}

// NewMCPCommand creates the MCP server command.
func NewMCPCommand(a *app) *cobra.Command {
	var (
		debug           bool
		diagnosticsAddr string
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for AI agent integration",
		Long: `Start a Model Context Protocol (MCP) server on stdio transport.

Tools:
  - symptom_history: entries grouped by calendar day with severity bands
  - symptom_trend: mean daily severity per symptom over a date range
  - symptom_chart: the trend rendered as an interactive HTML line chart

With --diagnostics-addr an HTTP listener serves /healthz, /readyz and
Prometheus /metrics while the server runs.`,
		Args: cobra.NoArgs,
	}

	setup := func(cfg *config.Config) setupOptions {
		if !cmd.Flags().Changed("diagnostics-addr") {
			diagnosticsAddr = cfg.Observability.DiagnosticsAddr
		}

		return setupOptions{
			mode:       observability.ModeMCP,
			logJSON:    true,
			prometheus: diagnosticsAddr != "",
			debug:      debug,
		}
	}

	cmd.RunE = a.run("mcp", setup, func(ctx context.Context, cmd *cobra.Command, _ []string) error {
		var boundAddr string

		if diagnosticsAddr != "" {
			diag, err := observability.NewDiagnosticsServer(ctx, diagnosticsAddr, observability.DiagnosticsOptions{
				Metrics: a.providers.MetricsHandler,
				Tracer:  a.tracer,
				RED:     a.red,
				Checks:  []observability.ReadyCheck{func(context.Context) error { return ctx.Err() }},
				Logger:  a.logger,
			})
			if err != nil {
				return err
			}

			boundAddr = diag.Addr()
			a.logger.InfoContext(ctx, "diagnostics listening", "addr", boundAddr)

			defer func() {
				closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), diagnosticsShutdownTimeout)
				defer cancel()

				closeErr := diag.Close(closeCtx)
				if closeErr != nil {
					a.logger.Warn("diagnostics shutdown failed", "error", closeErr)
				}
			}()
		}

		srv := mcp.NewServer(mcp.ServerDeps{
			Logger:        a.logger,
			Metrics:       a.red,
			Timeline:      a.timeline,
			Tracer:        a.tracer,
			Version:       version.Version,
			Location:      a.loc,
			DisplayLayout: a.cfg.Timeline.DateLayout,
			AxisLayout:    a.cfg.Timeline.AxisLayout,
			Theme:         plotpage.ParseTheme(a.cfg.Render.Theme),
		})

		return a.mcpServe(ctx, srv, boundAddr)
	})

	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging and full trace sampling")
	cmd.Flags().StringVar(&diagnosticsAddr, "diagnostics-addr", "",
		"serve /healthz, /readyz and /metrics at this address (default observability.diagnostics_addr)")

	return cmd
}
