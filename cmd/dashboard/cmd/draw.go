package cmd

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/midbel/barchart"
	"github.com/midbel/barchart/surface"
	"github.com/spf13/cobra"
)

var drawCmd = &cobra.Command{
	Use:   "draw <file.csv>",
	Short: "Draw a bar chart from a CSV file",
	Long: `Draw a bar chart from the label and value columns of a CSV file.

The first row is a header and is skipped. The output format follows the
extension of the output file.

Example:
  dashboard draw -t "Cash by currency" --zero --values -o cash.png balances.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runDraw,
}

var (
	drawTitle  string
	drawWidth  float64
	drawHeight float64
	drawXCol   int
	drawYCol   int
	drawXLabel string
	drawYLabel string
	drawZero   bool
	drawValues bool
	drawOutput string
)

func init() {
	rootCmd.AddCommand(drawCmd)

	drawCmd.Flags().StringVarP(&drawTitle, "title", "t", "", "chart title")
	drawCmd.Flags().Float64Var(&drawWidth, "width", 0, "chart width (default is chart.width)")
	drawCmd.Flags().Float64Var(&drawHeight, "height", 0, "chart height (default is chart.height)")
	drawCmd.Flags().IntVar(&drawXCol, "xcol", 0, "index of label column")
	drawCmd.Flags().IntVar(&drawYCol, "ycol", 1, "index of value column")
	drawCmd.Flags().StringVar(&drawXLabel, "xlabel", "", "x axis title")
	drawCmd.Flags().StringVar(&drawYLabel, "ylabel", "", "y axis title")
	drawCmd.Flags().BoolVar(&drawZero, "zero", false, "draw the zero line")
	drawCmd.Flags().BoolVar(&drawValues, "values", false, "draw value labels")
	drawCmd.Flags().StringVarP(&drawOutput, "output", "o", "", "output file (default is stdout as svg)")
}

func runDraw(cmd *cobra.Command, args []string) error {
	r, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer r.Close()

	data, err := readData(r, drawXCol, drawYCol)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	var (
		width  = drawWidth
		height = drawHeight
	)
	if width <= 0 {
		width = settings.Chart.Width
	}
	if height <= 0 {
		height = settings.Chart.Height
	}
	cfg := barchart.DefaultConfig()
	cfg.Title = drawTitle
	cfg.ShowZeroLine = drawZero
	cfg.ShowValueLabels = drawValues
	cfg.AxisLabels = barchart.AxisLabels{X: drawXLabel, Y: drawYLabel}
	cfg.BarColorPolicy = layout().Palette.Color
	if cfg.Title != "" {
		cfg.Margin.Top += barchart.TitleFontSize * 2
	}
	scene := barchart.Render(data, cfg.Sized(width, height))

	surf, err := surface.ByName(filepath.Ext(drawOutput))
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := surf.Render(&buf, scene); err != nil {
		return err
	}
	if drawOutput == "" {
		_, err = cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}
	return os.WriteFile(drawOutput, buf.Bytes(), 0o644)
}

func readData(r io.Reader, x, y int) ([]barchart.Datum, error) {
	if x < 0 || y < 0 || x == y {
		return nil, fmt.Errorf("invalid label/value column indices")
	}
	var (
		rs   = csv.NewReader(r)
		data []barchart.Datum
	)
	rs.FieldsPerRecord = -1
	if _, err := rs.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	for {
		row, err := rs.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		if x >= len(row) || y >= len(row) {
			return nil, fmt.Errorf("row %d: missing label/value columns", len(data)+1)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(row[y]), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", len(data)+1, err)
		}
		data = append(data, barchart.NewDatum(strings.TrimSpace(row[x]), v))
	}
	return data, nil
}
