// Package commands implements the symptomline cobra commands.
package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCommand builds the symptomline command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&app{mcpServe: serveStdio})
}

func newRootCommand(a *app) *cobra.Command {

	rootCmd := &cobra.Command{
		Use:   "symptomline",
		Short: "Symptomline - symptom log history and trends",
		Long: `Symptomline turns a symptom log export (JSON or YAML) into a day-by-day
history and per-symptom severity trends.

Commands:
  history   Entries grouped by calendar day, newest first
  trend     Mean daily severity per symptom over a date range
  render    Trend line chart written as a standalone HTML page
  mcp       Model Context Protocol server on stdio`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default: ./config.yaml, ./config/config.yaml or ~/.symptomline/config.yaml)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")
	flags.BoolVarP(&a.quiet, "quiet", "q", false, "suppress output")
	flags.BoolVar(&a.noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(NewHistoryCommand(a))
	rootCmd.AddCommand(NewTrendCommand(a))
	rootCmd.AddCommand(NewRenderCommand(a))
	rootCmd.AddCommand(NewMCPCommand(a))
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}
