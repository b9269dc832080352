package barchart

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

type State string

const (
	Uninitialized State = "uninitialized"
	Rendered      State = "rendered"
)

const eventRender = "RENDER"

// niceCount is the tick count used to round the value domain outward.
const niceCount = 10

func Render(data []Datum, cfg Config) Scene {
	cfg = cfg.normalize()
	data = validData(data)

	var (
		xs = NewBandScale(labels(data), NewRange(0, cfg.PlotWidth), cfg.BandPadding)
		ys = NewLinearScale(valueDomain(data, cfg.ShowZeroLine), NewRange(cfg.PlotHeight, 0))
	)
	ys = ys.Nice(niceCount)

	scene := Scene{
		Width:      cfg.Width(),
		Height:     cfg.Height(),
		Margin:     cfg.Margin,
		PlotWidth:  cfg.PlotWidth,
		PlotHeight: cfg.PlotHeight,
		Domain:     ys.Domain,
		ZeroY:      ys.Scale(0),
	}
	scene.ZeroLine = cfg.ShowZeroLine && scene.ZeroY >= 0 && scene.ZeroY <= cfg.PlotHeight
	scene.Bars = resolveBars(data, xs, ys, cfg)
	scene.Categories = categoryTicks(data, xs, cfg)
	scene.Values = valueTicks(ys, cfg)

	axisY := cfg.PlotHeight
	if scene.ZeroLine {
		axisY = scene.ZeroY
	}

	root := NewGroup("chart", cfg.Margin.Left, cfg.Margin.Top)
	if cfg.Title != "" {
		tx := titleText(cfg.Title, cfg.PlotWidth/2, -cfg.Margin.Top/2)
		tx.Baseline = "middle"
		root.Append(tx)
	}
	root.Append(drawBars(scene.Bars), drawValueLabels(scene.Bars))
	if scene.ZeroLine {
		root.Append(drawZeroLine(cfg.PlotWidth, scene.ZeroY))
	}
	root.Append(drawCategoryAxis(scene.Categories, cfg.PlotWidth, axisY))
	root.Append(drawValueAxis(scene.Values, cfg.PlotHeight))
	if titles := drawAxisTitles(cfg.AxisLabels, cfg); titles.Len() > 0 {
		root.Append(titles)
	}
	scene.Root = root
	return scene
}

func drawBars(bars []Bar) *Group {
	g := NewGroup("bars", 0, 0)
	for _, b := range bars {
		r := Rect{
			X:           b.X,
			Y:           b.Y,
			Width:       b.Width,
			Height:      b.Height,
			Fill:        b.Color,
			Stroke:      AxisColor,
			StrokeWidth: 1,
			Title:       b.Datum.Label,
		}
		g.Append(r)
	}
	return g
}

func drawValueLabels(bars []Bar) *Group {
	g := NewGroup("value-labels", 0, 0)
	for _, b := range bars {
		if b.ValueLabel == nil {
			continue
		}
		tx := Text{
			Content: b.ValueLabel.Text,
			X:       b.ValueLabel.X,
			Y:       b.ValueLabel.Y,
			Dy:      0.35,
			Size:    LabelFontSize,
			Bold:    true,
			Fill:    LabelColor,
			Anchor:  "middle",
		}
		g.Append(tx)
	}
	return g
}

type lifecycle struct {
	Renders int
}

func countRender(ctx **lifecycle, _ statekit.Event) {
	if ctx == nil || *ctx == nil {
		return
	}
	(*ctx).Renders++
}

func newLifecycle() (*statekit.MachineConfig[*lifecycle], error) {
	return statekit.NewMachine[*lifecycle]("chart").
		WithInitial(statekit.StateID(Uninitialized)).
		WithContext(&lifecycle{}).
		WithAction("count", countRender).
		State(statekit.StateID(Uninitialized)).
		On(eventRender).Target(statekit.StateID(Rendered)).Do("count").
		Done().
		State(statekit.StateID(Rendered)).
		On(eventRender).Target(statekit.StateID(Rendered)).Do("count").
		Done().
		Build()
}

// Chart is a bar chart bound to one rendering surface. It replaces its scene
// on every call to Render and remembers whether it has rendered data at least
// once.
type Chart struct {
	Config Config

	ctx    *lifecycle
	interp *statekit.Interpreter[*lifecycle]
	scene  Scene
}

func NewChart(cfg Config) (*Chart, error) {
	machine, err := newLifecycle()
	if err != nil {
		return nil, fmt.Errorf("chart lifecycle: %w", err)
	}
	c := Chart{
		Config: cfg,
		ctx:    &lifecycle{},
		interp: statekit.NewInterpreter(machine),
	}
	c.interp.UpdateContext(func(x **lifecycle) {
		*x = c.ctx
	})
	c.interp.Start()
	c.scene = Render(nil, cfg)
	return &c, nil
}

func (c *Chart) Render(data []Datum) Scene {
	c.scene = Render(data, c.Config)
	if !c.scene.Empty() || c.Rendered() {
		c.interp.Send(statekit.Event{Type: eventRender})
	}
	return c.scene
}

// Mount performs the initial render unless the chart already holds a
// rendered scene, in which case that scene is returned untouched.
func (c *Chart) Mount(data []Datum) (Scene, bool) {
	if c.Rendered() {
		return c.scene, false
	}
	return c.Render(data), true
}

func (c *Chart) Rendered() bool {
	return c.interp.Matches(statekit.StateID(Rendered))
}

func (c *Chart) State() State {
	return State(c.interp.State().Value)
}

func (c *Chart) Renders() int {
	return c.ctx.Renders
}

func (c *Chart) Scene() Scene {
	return c.scene
}
