package observability

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"go.opentelemetry.io/otel/trace"
)

// DiagnosticsServer exposes health, readiness and metrics endpoints over
// HTTP while the MCP server runs.
type DiagnosticsServer struct {
	server   *http.Server
	listener net.Listener
	logger   *slog.Logger
}

// DiagnosticsOptions configures a [DiagnosticsServer].
type DiagnosticsOptions struct {
	// Metrics serves /metrics. Nil leaves the route unregistered.
	Metrics http.Handler
	// Tracer and RED wrap every route in [HTTPMiddleware] when both are set.
	Tracer trace.Tracer
	RED    *REDMetrics
	// Checks back /readyz.
	Checks []ReadyCheck
	Logger *slog.Logger
}

// NewDiagnosticsServer starts an HTTP server at addr with /healthz, /readyz
// and, when a handler is given, /metrics.
func NewDiagnosticsServer(ctx context.Context, addr string, opts DiagnosticsOptions) (*DiagnosticsServer, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	mux.Handle("/healthz", HealthHandler())
	mux.Handle("/readyz", ReadyHandler(opts.Checks...))

	if opts.Metrics != nil {
		mux.Handle("/metrics", opts.Metrics)
	}

	var handler http.Handler = mux
	if opts.Tracer != nil && opts.RED != nil {
		handler = HTTPMiddleware(opts.Tracer, opts.RED, mux)
	}

	var lc net.ListenConfig

	listener, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	srv := &http.Server{Handler: handler, ReadHeaderTimeout: readHeaderTimeout}

	go func() {
		serveErr := srv.Serve(listener)
		if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			logger.Warn("diagnostics server stopped", "error", serveErr)
		}
	}()

	return &DiagnosticsServer{server: srv, listener: listener, logger: logger}, nil
}

// Addr returns the address the server is listening on.
func (d *DiagnosticsServer) Addr() string {
	return d.listener.Addr().String()
}

// Close gracefully shuts down the diagnostics server.
func (d *DiagnosticsServer) Close(ctx context.Context) error {
	err := d.server.Shutdown(ctx)
	if err != nil {
		return fmt.Errorf("shutdown diagnostics server: %w", err)
	}

	return nil
}
