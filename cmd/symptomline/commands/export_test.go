package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/symptomline/pkg/mcp"
)

// NewRootCommandServing builds the command tree with serve in place of the
// stdio MCP loop.
func NewRootCommandServing(serve func(ctx context.Context, srv *mcp.Server, diagnosticsAddr string) error) *cobra.Command {
	return newRootCommand(&app{mcpServe: serve})
}
