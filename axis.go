package barchart

import (
	"math"

	"github.com/midbel/slices"
)

const (
	thinThreshold = 10
	tickLength    = 6
	tickOffset    = 10
	bandTick      = 8
	bandTextY     = 15
)

// thinLabels returns the indices of the category labels to draw on an axis
// of the given width holding n bands.
func thinLabels(n int, width float64) []int {
	if n <= 0 {
		return nil
	}
	step := width / float64(n)
	if step >= MinLabelSpacing || n <= thinThreshold {
		return sequence(n)
	}
	var (
		kept  = skipLabels(n, step)
		limit = len(kept)
	)
	for i := n - 1; i > thinThreshold; i-- {
		s := width / float64(i)
		if s >= MinLabelSpacing {
			break
		}
		limit = min(limit, countSkipLabels(i, s))
	}
	if limit < MinThinnedLabels && n >= MinThinnedLabels {
		if len(kept) < MinThinnedLabels {
			return spreadLabels(n, MinThinnedLabels)
		}
		limit = MinThinnedLabels
	}
	if limit < len(kept) {
		kept = pickLabels(kept, limit)
	}
	return kept
}

func labelSkip(step float64) int {
	if step <= 0 {
		return math.MaxInt32
	}
	return max(1, int(math.Ceil(MinLabelSpacing/step)))
}

func countSkipLabels(n int, step float64) int {
	skip := labelSkip(step)
	return (n + skip - 1) / skip
}

func skipLabels(n int, step float64) []int {
	var (
		skip = labelSkip(step)
		list []int
	)
	for i := 0; i < n; i += skip {
		list = append(list, i)
	}
	if last := slices.Lst(list); last != n-1 {
		list[len(list)-1] = n - 1
	}
	return list
}

func pickLabels(kept []int, count int) []int {
	if count <= 1 {
		return []int{slices.Lst(kept)}
	}
	var (
		list = make([]int, count)
		part = float64(len(kept)-1) / float64(count-1)
	)
	for i := range list {
		list[i] = kept[int(math.Round(float64(i)*part))]
	}
	return list
}

func spreadLabels(n, count int) []int {
	var (
		list []int
		part = float64(n-1) / float64(count-1)
	)
	for i := 0; i < count; i++ {
		x := int(math.Round(float64(i) * part))
		if len(list) > 0 && slices.Lst(list) == x {
			continue
		}
		list = append(list, x)
	}
	return list
}

func sequence(n int) []int {
	list := make([]int, n)
	for i := range list {
		list[i] = i
	}
	return list
}

func truncateLabel(str string) string {
	rs := []rune(str)
	if len(rs) <= MaxLabelLength {
		return str
	}
	return string(rs[:MaxLabelLength]) + "..."
}

func categoryTicks(data []Datum, xs BandScale, cfg Config) []CategoryTick {
	var list []CategoryTick
	for _, i := range thinLabels(len(data), cfg.PlotWidth) {
		label := data[i].Label
		x, ok := xs.Center(label)
		if !ok {
			continue
		}
		tick := CategoryTick{
			Index: i,
			Label: label,
			Text:  truncateLabel(label),
			X:     x,
		}
		list = append(list, tick)
	}
	return list
}

func valueTicks(ys LinearScale, cfg Config) []ValueTick {
	var list []ValueTick
	for _, v := range ys.Ticks(tickCount(cfg.PlotHeight)) {
		tick := ValueTick{
			Value: v,
			Text:  cfg.AxisValueFormatter(v),
			Y:     ys.Scale(v),
		}
		list = append(list, tick)
	}
	return list
}

func tickCount(height float64) int {
	return max(1, int(math.Floor(height/TickSpacing)))
}

func drawCategoryAxis(ticks []CategoryTick, width, top float64) *Group {
	g := NewGroup("x-axis", 0, top)
	g.Append(domainLine(0, 0, width, 0))
	for _, t := range ticks {
		g.Append(domainLine(t.X, 0, t.X, bandTick))
		g.Append(tickText(t.Text, t.X, bandTextY, "end", CategoryLabelAngle))
	}
	return g
}

func drawValueAxis(ticks []ValueTick, height float64) *Group {
	g := NewGroup("y-axis", 0, 0)
	g.Append(domainLine(0, 0, 0, height))
	for _, t := range ticks {
		g.Append(domainLine(-tickLength, t.Y, 0, t.Y))
		g.Append(tickText(t.Text, -tickOffset, t.Y, "end", 0))
	}
	return g
}

func drawZeroLine(width, y float64) Element {
	z := domainLine(0, y, width, y)
	z.StrokeWidth = 2
	z.Dash = []float64{5, 5}
	return z
}

func drawAxisTitles(labels AxisLabels, cfg Config) *Group {
	g := NewGroup("axis-label", 0, 0)
	if labels.Y != "" {
		tx := titleText(labels.Y, -cfg.Margin.Left+15, cfg.PlotHeight/2)
		tx.Rotate = -90
		g.Append(tx)
	}
	if labels.X != "" {
		tx := titleText(labels.X, cfg.PlotWidth/2, cfg.PlotHeight+cfg.Margin.Bottom-10)
		g.Append(tx)
	}
	return g
}

func domainLine(x1, y1, x2, y2 float64) Line {
	return Line{
		X1:          x1,
		Y1:          y1,
		X2:          x2,
		Y2:          y2,
		Stroke:      AxisColor,
		StrokeWidth: 1,
	}
}

func tickText(str string, x, y float64, anchor string, angle float64) Text {
	return Text{
		Content:  str,
		X:        x,
		Y:        y,
		Size:     FontSize,
		Fill:     TextColor,
		Anchor:   anchor,
		Baseline: "middle",
		Rotate:   angle,
	}
}

func titleText(str string, x, y float64) Text {
	return Text{
		Content: str,
		X:       x,
		Y:       y,
		Size:    TitleFontSize,
		Bold:    true,
		Fill:    TextColor,
		Anchor:  "middle",
	}
}
