package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/midbel/barchart"
	"github.com/midbel/barchart/dash"
	"github.com/midbel/barchart/internal/logging"
	"github.com/midbel/barchart/surface"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render [panel...]",
	Short: "Render dashboard panels to files",
	Long: `Render the panels of one snapshot to SVG or PNG files.

The snapshot is read from a JSON or YAML file, or fetched from the BFF when
the source is an http(s) url. Without arguments every panel is rendered.

Examples:
  dashboard render -s snapshot.json
  dashboard render -s http://bff-java:8080 -f png trading ledger`,
	RunE: runRender,
}

var (
	renderSource  string
	renderOutput  string
	renderFormats []string
	renderSave    string
)

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderSource, "source", "s", "", "snapshot file or BFF url (default is bff.url)")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", ".", "output directory")
	renderCmd.Flags().StringSliceVarP(&renderFormats, "format", "f", []string{"svg"}, "output formats: svg, png")
	renderCmd.Flags().StringVar(&renderSave, "save", "", "also save the snapshot to this file")
}

func runRender(cmd *cobra.Command, args []string) error {
	location := renderSource
	if location == "" {
		location = settings.BFF.URL
	}
	src, err := dash.OpenSource(location, httpOptions())
	if err != nil {
		return err
	}
	snap, err := src.Fetch(cmd.Context())
	if err != nil {
		return fmt.Errorf("fetch snapshot: %w", err)
	}
	if renderSave != "" {
		if err := dash.SaveSnapshot(renderSave, snap); err != nil {
			return err
		}
	}

	panels, err := selectPanels(args)
	if err != nil {
		return err
	}
	var surfaces []surface.Surface
	for _, f := range renderFormats {
		s, err := surface.ByName(f)
		if err != nil {
			return err
		}
		surfaces = append(surfaces, s)
	}
	if err := os.MkdirAll(renderOutput, 0o755); err != nil {
		return fmt.Errorf("output directory: %w", err)
	}
	for _, p := range panels {
		scene := p.Render(snap)
		for _, s := range surfaces {
			file := filepath.Join(renderOutput, p.Name+"."+s.Extension())
			if err := writeScene(file, s, p.Name, scene); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), file)
		}
	}
	return nil
}

func selectPanels(names []string) ([]dash.Panel, error) {
	lay := layout()
	if len(names) == 0 {
		return dash.Panels(lay), nil
	}
	var list []dash.Panel
	for _, n := range names {
		p, err := dash.PanelByName(n, lay)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, nil
}

func writeScene(file string, s surface.Surface, name string, scene barchart.Scene) error {
	var buf bytes.Buffer
	if err := s.Render(&buf, scene); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if err := os.WriteFile(file, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", file, err)
	}
	logging.Debug().With(logging.Panel(name), logging.Bars(len(scene.Bars))).Msg("panel written")
	return nil
}
