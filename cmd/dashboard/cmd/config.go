package cmd

import (
	"fmt"

	"github.com/midbel/barchart/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Generate or validate configuration files",
	Long: `Manage dashboard configuration files.

Subcommands:
  init     - Generate a default configuration file
  validate - Validate an existing configuration file

Examples:
  dashboard config init -o dashboard.yaml
  dashboard config validate -f dashboard.yaml`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default configuration file",
	RunE:  runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	RunE:  runConfigValidate,
}

var (
	configInitOutput   string
	configValidatePath string
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)

	configInitCmd.Flags().StringVarP(&configInitOutput, "output", "o", "dashboard.yaml", "output config file path")
	configValidateCmd.Flags().StringVarP(&configValidatePath, "file", "f", "", "path to config file (required)")
	configValidateCmd.MarkFlagRequired("file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if err := cfg.SaveToFile(configInitOutput); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "created default configuration: %s\n", configInitOutput)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(configValidatePath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "configuration valid: %s\n", configValidatePath)
	fmt.Fprintf(out, "  bff: %s (attempts: %d, timeout: %s)\n", cfg.BFF.URL, cfg.BFF.Attempts, cfg.BFF.Timeout)
	fmt.Fprintf(out, "  cache: %s (ttl: %s)\n", cfg.Cache.Kind, cfg.Cache.TTL)
	fmt.Fprintf(out, "  chart: %gx%g\n", cfg.Chart.Width, cfg.Chart.Height)
	return nil
}
