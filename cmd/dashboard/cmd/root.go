package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/midbel/barchart"
	"github.com/midbel/barchart/dash"
	"github.com/midbel/barchart/internal/config"
	"github.com/midbel/barchart/internal/logging"
	"github.com/midbel/barchart/internal/telemetry"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Render the risk, trading and ledger bar charts",
	Long: `Dashboard renders the bar chart panels of the operations dashboard.

It can render the panels of a single snapshot to SVG or PNG files, draw a
bar chart from a CSV file, or serve the live dashboard refreshed from the
BFF at a fixed interval.

Examples:
  dashboard render -s snapshot.json -o out
  dashboard draw -t "Exposure" accounts.csv
  dashboard serve -c dashboard.yaml`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

var (
	configPath string

	settings *config.Config
	shutdown telemetry.ShutdownFunc
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file (YAML or JSON)")
}

func setup(cmd *cobra.Command, args []string) error {
	if configPath == "" {
		settings = config.Default()
	} else {
		cfg, err := config.LoadFromFile(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		settings = cfg
	}
	logging.Init(logging.Config{
		Level:  settings.Log.Level,
		Format: settings.Log.Format,
		Output: os.Stderr,
	})

	fn, err := telemetry.Setup(telemetry.Config{
		Exporter: settings.Tracing.Exporter,
		Sample:   settings.Tracing.Sample,
		Output:   os.Stderr,
	})
	if err != nil {
		return fmt.Errorf("tracing: %w", err)
	}
	shutdown = fn
	return nil
}

func teardown(cmd *cobra.Command, args []string) error {
	if shutdown == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return shutdown(ctx)
}

func layout() dash.Layout {
	return dash.Layout{
		Width:  settings.Chart.Width,
		Height: settings.Chart.Height,
		Palette: barchart.SignPalette{
			Positive: settings.Chart.Positive,
			Negative: settings.Chart.Negative,
		},
	}
}

func httpOptions() dash.HTTPOptions {
	return dash.HTTPOptions{
		Timeout:   settings.BFF.Timeout.Std(),
		Attempts:  settings.BFF.Attempts,
		Delay:     settings.BFF.Delay.Std(),
		Failures:  settings.BFF.Failures,
		OpenDelay: settings.BFF.OpenDelay.Std(),
	}
}
