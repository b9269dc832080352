package barchart

import (
	"math"
)

type ValueLabel struct {
	Text string
	X    float64
	Y    float64
}

type Bar struct {
	Datum
	Index      int
	X          float64
	Y          float64
	Width      float64
	Height     float64
	Color      string
	ValueLabel *ValueLabel
}

func (b Bar) Center() float64 {
	return b.X + b.Width/2
}

func valueDomain(data []Datum, withZero bool) Range {
	if len(data) == 0 {
		return NewRange(0, 1)
	}
	fst, lst := extent(data)
	if withZero {
		fst = math.Min(0, fst)
	}
	if fst == lst {
		if fst == 0 {
			return NewRange(0, 1)
		}
		fst, lst = math.Min(0, fst), math.Max(0, lst)
	}
	return NewRange(fst, lst)
}

func resolveBars(data []Datum, xs BandScale, ys LinearScale, cfg Config) []Bar {
	var (
		bars  = make([]Bar, 0, len(data))
		zero  = ys.Scale(0)
		width = xs.Bandwidth()
	)
	for i, d := range data {
		x, ok := xs.Scale(d.Label)
		if !ok {
			continue
		}
		y, h := barExtent(ys.Scale(d.Value), zero, cfg.PlotHeight)
		b := Bar{
			Datum:  d,
			Index:  i,
			X:      x,
			Y:      y,
			Width:  width,
			Height: h,
			Color:  cfg.BarColorPolicy(d.Value),
		}
		if cfg.ShowValueLabels && h > ValueLabelMinHeight {
			b.ValueLabel = &ValueLabel{
				Text: cfg.ValueLabelFormatter(d.Value),
				X:    b.Center(),
				Y:    y + h/2,
			}
		}
		bars = append(bars, b)
	}
	return bars
}

func barExtent(value, zero, height float64) (float64, float64) {
	top, bottom := math.Min(value, zero), math.Max(value, zero)
	top = clamp(top, 0, height)
	bottom = clamp(bottom, 0, height)
	return top, bottom - top
}

func clamp(v, lower, upper float64) float64 {
	return math.Max(lower, math.Min(v, upper))
}
