package cli

import (
	"github.com/spf13/cobra"

	"github.com/Buttje/mcp-fess/internal/adapters/driving/mcp"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("mcp-fess version %s (MCP server %s)\n", version, mcp.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
