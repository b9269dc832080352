package barchart

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		PlotWidth:    200,
		PlotHeight:   200,
		Margin:       Padding{Top: 20, Right: 20, Bottom: 80, Left: 70},
		ShowZeroLine: true,
		BandPadding:  0.2,
	}
}

func TestRenderPositiveNegative(t *testing.T) {
	data := []Datum{{"A", 100}, {"B", -50}}
	scene := Render(data, testConfig())

	require.True(t, scene.ZeroLine)
	assert.InDelta(t, 125, scene.ZeroY, 1e-9)
	assert.Equal(t, NewRange(-60, 100), scene.Domain)
	require.Len(t, scene.Bars, 2)

	a, b := scene.Bars[0], scene.Bars[1]
	assert.InDelta(t, 0, a.Y, 1e-9)
	assert.InDelta(t, 125, a.Height, 1e-9)
	assert.InDelta(t, scene.ZeroY, b.Y, 1e-9)
	assert.InDelta(t, 62.5, b.Height, 1e-9)
	assert.InDelta(t, 2, a.Height/b.Height, 1e-9)

	assert.Equal(t, 290.0, scene.Width)
	assert.Equal(t, 300.0, scene.Height)
}

func TestRenderNiceDomain(t *testing.T) {
	tests := []struct {
		name   string
		data   []Datum
		height float64
		want   Range
	}{
		{
			name:   "hundreds",
			data:   []Datum{{"A", 1234}},
			height: 300,
			want:   NewRange(0, 1300),
		},
		{
			name:   "mixed sign",
			data:   []Datum{{"A", 100}, {"B", -50}},
			height: 300,
			want:   NewRange(-60, 100),
		},
		{
			name:   "short plot",
			data:   []Datum{{"A", 1234}},
			height: 60,
			want:   NewRange(0, 1300),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.PlotHeight = tt.height
			scene := Render(tt.data, cfg)
			assert.Equal(t, tt.want, scene.Domain)
		})
	}
}

func TestRenderExtremeValues(t *testing.T) {
	tests := []struct {
		name string
		data []Datum
	}{
		{
			name: "near max",
			data: []Datum{{"A", 1.7e308}},
		},
		{
			name: "wide span",
			data: []Datum{{"A", 1e308}, {"B", -1e308}},
		},
		{
			name: "overflowing span",
			data: []Datum{{"A", 9e307}, {"B", -9e307}},
		},
		{
			name: "near max negative",
			data: []Datum{{"A", -math.MaxFloat64}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.ShowValueLabels = true

			var scene Scene
			require.NotPanics(t, func() {
				scene = Render(tt.data, cfg)
			})
			require.Len(t, scene.Bars, len(tt.data))
			assert.True(t, isFinite(scene.Domain.F))
			assert.True(t, isFinite(scene.Domain.T))
			assert.True(t, isFinite(scene.ZeroY))
			for _, b := range scene.Bars {
				assert.True(t, isFinite(b.X), b.Datum.Label)
				assert.True(t, isFinite(b.Y), b.Datum.Label)
				assert.True(t, isFinite(b.Height), b.Datum.Label)
				assert.GreaterOrEqual(t, b.Height, 0.0, b.Datum.Label)
			}
			require.NotNil(t, scene.Root)
		})
	}
}

func TestRenderEmpty(t *testing.T) {
	scene := Render(nil, testConfig())

	assert.True(t, scene.Empty())
	assert.Empty(t, scene.Categories)
	assert.NotEmpty(t, scene.Values)
	assert.Equal(t, NewRange(0, 1), scene.Domain)
	require.NotNil(t, scene.Root)

	var classes []string
	for _, el := range scene.Root.Elements {
		if g, ok := el.(*Group); ok {
			classes = append(classes, g.Class...)
		}
	}
	assert.Contains(t, classes, "x-axis")
	assert.Contains(t, classes, "y-axis")
	scene.Walk(func(el Element) {
		_, ok := el.(Rect)
		assert.False(t, ok, "empty scene should hold no bar")
	})
}

func TestRenderIdempotent(t *testing.T) {
	cfg := testConfig()
	cfg.ShowValueLabels = true
	cfg.AxisLabels = AxisLabels{X: "Symbol", Y: "PnL ($)"}
	cfg.Title = "pnl"
	data := []Datum{{"AAPL", 1200}, {"MSFT", -340}, {"GOOG", 75}}

	fst := Render(data, cfg)
	snd := Render(data, cfg)
	assert.Equal(t, fst, snd)
}

func TestRenderZeroSum(t *testing.T) {
	data := []Datum{{"A", 120}, {"B", -80}, {"C", 33}, {"D", -7}, {"E", 0}}
	scene := Render(data, testConfig())
	require.True(t, scene.ZeroLine)
	for _, b := range scene.Bars {
		if b.Datum.Value >= 0 {
			assert.InDelta(t, scene.ZeroY, b.Y+b.Height, 1e-9, b.Datum.Label)
		} else {
			assert.InDelta(t, scene.ZeroY, b.Y, 1e-9, b.Datum.Label)
		}
	}
}

func TestRenderSignColor(t *testing.T) {
	data := []Datum{{"A", 1}, {"B", -1}, {"C", 0}}
	scene := Render(data, testConfig())
	require.Len(t, scene.Bars, 3)
	assert.Equal(t, PositiveColor, scene.Bars[0].Color)
	assert.Equal(t, NegativeColor, scene.Bars[1].Color)
	assert.Equal(t, PositiveColor, scene.Bars[2].Color)

	cfg := testConfig()
	cfg.BarColorPolicy = SignPalette{Positive: "0000ff", Negative: "orange"}.Color
	scene = Render(data, cfg)
	assert.Equal(t, "#0000ff", scene.Bars[0].Color)
	assert.Equal(t, "orange", scene.Bars[1].Color)
}

func TestRenderManyBars(t *testing.T) {
	var data []Datum
	for i := 0; i < 50; i++ {
		data = append(data, NewDatum(fmt.Sprintf("L%02d", i), float64(i+1)))
	}
	cfg := testConfig()
	cfg.PlotWidth = 400
	scene := Render(data, cfg)

	require.Len(t, scene.Bars, 50)
	assert.Less(t, len(scene.Categories), 50)
	assert.Equal(t, "L49", scene.Categories[len(scene.Categories)-1].Label)
}

func TestRenderZeroValue(t *testing.T) {
	cfg := testConfig()
	cfg.ShowValueLabels = true
	scene := Render([]Datum{{"X", 0}}, cfg)

	require.Len(t, scene.Bars, 1)
	assert.Equal(t, 0.0, scene.Bars[0].Height)
	assert.Nil(t, scene.Bars[0].ValueLabel)
}

func TestRenderSkipsNonFinite(t *testing.T) {
	data := []Datum{{"A", 10}, {"B", math.NaN()}, {"C", math.Inf(1)}}
	scene := Render(data, testConfig())
	require.Len(t, scene.Bars, 1)
	assert.Equal(t, "A", scene.Bars[0].Datum.Label)
}

func TestRenderClampConfig(t *testing.T) {
	cfg := Config{
		PlotWidth:   -100,
		PlotHeight:  -10,
		Margin:      Padding{Top: -5, Right: 10, Bottom: -1, Left: 3},
		BandPadding: 4,
	}
	scene := Render([]Datum{{"A", 10}}, cfg)
	assert.Equal(t, Padding{Right: 10, Left: 3}, scene.Margin)
	assert.Equal(t, 0.0, scene.PlotWidth)
	assert.Equal(t, 0.0, scene.PlotHeight)
	require.Len(t, scene.Bars, 1)
	assert.Equal(t, 0.0, scene.Bars[0].Width)
}

func TestRenderWithoutZeroLine(t *testing.T) {
	cfg := testConfig()
	cfg.ShowZeroLine = false
	scene := Render([]Datum{{"A", 150}, {"B", 300}}, cfg)

	assert.False(t, scene.ZeroLine)
	for _, b := range scene.Bars {
		assert.InDelta(t, cfg.PlotHeight, b.Y+b.Height, 1e-9)
	}
}

func TestChartLifecycle(t *testing.T) {
	c, err := NewChart(testConfig())
	require.NoError(t, err)
	assert.Equal(t, Uninitialized, c.State())
	assert.False(t, c.Rendered())

	c.Render(nil)
	assert.Equal(t, Uninitialized, c.State())

	scene := c.Render([]Datum{{"A", 1}})
	assert.Equal(t, Rendered, c.State())
	assert.Equal(t, 1, c.Renders())
	assert.Equal(t, scene, c.Scene())

	c.Render([]Datum{{"A", 1}, {"B", 2}})
	assert.Equal(t, Rendered, c.State())
	assert.Len(t, c.Scene().Bars, 2)
	assert.Equal(t, 2, c.Renders())

	scene = c.Render(nil)
	assert.Equal(t, Rendered, c.State())
	assert.Equal(t, 3, c.Renders())
	assert.Empty(t, scene.Bars)
	require.NotNil(t, scene.Root)
	var groups int
	for _, el := range scene.Root.Elements {
		if _, ok := el.(*Group); ok {
			groups++
		}
	}
	assert.NotZero(t, groups)
}

func TestChartMount(t *testing.T) {
	c, err := NewChart(testConfig())
	require.NoError(t, err)

	scene, ok := c.Mount([]Datum{{"A", 1}})
	assert.True(t, ok)
	assert.Len(t, scene.Bars, 1)

	again, ok := c.Mount([]Datum{{"A", 1}, {"B", 2}})
	assert.False(t, ok)
	assert.Equal(t, scene, again)
}
