// Package cli provides the mcp-fess command line.
package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags.
var version = "dev"

// configPath overrides the configuration file location.
var configPath string

var rootCmd = &cobra.Command{
	Use:   "mcp-fess",
	Short: "Expose a Fess search server to agents over MCP",
	Long: `mcp-fess bridges a Fess enterprise search server to the Model Context
Protocol. Each instance serves one knowledge domain whose tools and resources
are namespaced by the configured domain id.

The configuration file is read from --config, $MCP_FESS_CONFIG or
~/.mcp-fess/config.toml, in that order.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "configuration file path")
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
