package barchart

import (
	"fmt"
	"math"
)

const (
	FontSize      = 12.0
	LabelFontSize = 11.0
	TitleFontSize = 14.0

	ValueLabelMinHeight = 25.0
	MinLabelSpacing     = 30.0
	MaxLabelLength      = 12
	MinThinnedLabels    = 5
	TickSpacing         = 50.0
	CategoryLabelAngle  = -45.0

	DefaultBandPadding = 0.1
	MaxBandPadding     = 0.9
)

const (
	PositiveColor = "#4caf50"
	NegativeColor = "#f44336"
	AxisColor     = "#333"
	TextColor     = "#333"
	LabelColor    = "white"
)

type Padding struct {
	Top    float64 `json:"top" yaml:"top"`
	Right  float64 `json:"right" yaml:"right"`
	Bottom float64 `json:"bottom" yaml:"bottom"`
	Left   float64 `json:"left" yaml:"left"`
}

func (p Padding) Horizontal() float64 {
	return p.Left + p.Right
}

func (p Padding) Vertical() float64 {
	return p.Top + p.Bottom
}

func (p Padding) clamp() Padding {
	p.Top = positive(p.Top)
	p.Right = positive(p.Right)
	p.Bottom = positive(p.Bottom)
	p.Left = positive(p.Left)
	return p
}

type AxisLabels struct {
	X string `json:"x" yaml:"x"`
	Y string `json:"y" yaml:"y"`
}

type Config struct {
	Title      string
	PlotWidth  float64
	PlotHeight float64
	Margin     Padding

	ShowZeroLine    bool
	ShowValueLabels bool

	ValueLabelFormatter func(float64) string
	AxisValueFormatter  func(float64) string
	BarColorPolicy      func(float64) string

	AxisLabels  AxisLabels
	BandPadding float64
}

func DefaultConfig() Config {
	cfg := Config{
		PlotWidth:   510,
		PlotHeight:  300,
		Margin:      Padding{Top: 20, Right: 20, Bottom: 80, Left: 70},
		BandPadding: DefaultBandPadding,
	}
	return cfg.normalize()
}

// Sized returns a copy of the configuration whose plot area fits an outer
// box of the given dimension once margins are removed.
func (c Config) Sized(width, height float64) Config {
	c.Margin = c.Margin.clamp()
	c.PlotWidth = positive(width - c.Margin.Horizontal())
	c.PlotHeight = positive(height - c.Margin.Vertical())
	return c
}

func (c Config) Width() float64 {
	return c.PlotWidth + c.Margin.Horizontal()
}

func (c Config) Height() float64 {
	return c.PlotHeight + c.Margin.Vertical()
}

func (c Config) normalize() Config {
	c.PlotWidth = positive(c.PlotWidth)
	c.PlotHeight = positive(c.PlotHeight)
	c.Margin = c.Margin.clamp()
	switch {
	case math.IsNaN(c.BandPadding) || c.BandPadding < 0:
		c.BandPadding = 0
	case c.BandPadding >= 1:
		c.BandPadding = MaxBandPadding
	}
	if c.ValueLabelFormatter == nil {
		c.ValueLabelFormatter = FormatNumber
	}
	if c.AxisValueFormatter == nil {
		c.AxisValueFormatter = FormatNumber
	}
	if c.BarColorPolicy == nil {
		c.BarColorPolicy = SignColor
	}
	return c
}

func FormatNumber(v float64) string {
	return fmt.Sprintf("%g", v)
}

// FormatThousands renders values as whole thousands of dollars, 12500 gives $13k.
func FormatThousands(v float64) string {
	k := math.Round(v / 1000)
	if k == 0 {
		k = 0 // no negative zero
	}
	return fmt.Sprintf("$%.0fk", k)
}

func positive(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}
