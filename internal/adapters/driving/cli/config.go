package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Buttje/mcp-fess/internal/adapters/driven/config/file"
)

var configInitForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := file.NewConfigStore(configPath)
		if err != nil {
			return err
		}
		cmd.Println(store.Path())
		return nil
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := file.NewConfigStore(configPath)
		if err != nil {
			return err
		}
		cfg, err := store.Load()
		if err != nil {
			return err
		}
		cmd.Printf("%s is valid\n", store.Path())
		cmd.Printf("  domain:        %s (%s)\n", cfg.Domain.Name, cfg.Domain.ID)
		cmd.Printf("  fess:          %s\n", cfg.FessBaseURL)
		cmd.Printf("  default label: %s\n", cfg.EffectiveDefaultLabel())
		cmd.Printf("  labels:        %d configured, strict=%t\n", len(cfg.Labels), cfg.StrictLabels)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter configuration file",
	Long: `Writes a starter configuration pointing at a local Fess server. The format
follows the file extension: .toml, .json/.jsonc or .yaml/.yml.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := file.NewConfigStore(configPath)
		if err != nil {
			return err
		}
		if err := store.WriteStarter(configInitForce); err != nil {
			return fmt.Errorf("writing starter config: %w", err)
		}
		cmd.Printf("Wrote %s\n", store.Path())
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing file")
	configCmd.AddCommand(configPathCmd, configValidateCmd, configInitCmd)
	rootCmd.AddCommand(configCmd)
}
