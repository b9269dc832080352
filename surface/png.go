package surface

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/midbel/barchart"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const deg2rad = math.Pi / 180

type PNG struct{}

func (PNG) ContentType() string {
	return "image/png"
}

func (PNG) Extension() string {
	return "png"
}

func (p PNG) Render(w io.Writer, scene barchart.Scene) error {
	var (
		width  = max(1, int(math.Ceil(scene.Width)))
		height = max(1, int(math.Ceil(scene.Height)))
	)
	r, err := chart.PNG(width, height)
	if err != nil {
		return fmt.Errorf("png surface: %w", err)
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return fmt.Errorf("png font: %w", err)
	}
	r.SetFont(font)

	r.SetFillColor(drawing.ColorWhite)
	r.SetStrokeColor(drawing.ColorWhite)
	r.SetStrokeWidth(0)
	rectangle(r, 0, 0, float64(width), float64(height))
	r.Fill()

	if scene.Root != nil {
		p.draw(r, scene.Root, 0, 0)
	}
	return r.Save(w)
}

func (p PNG) draw(r chart.Renderer, el barchart.Element, dx, dy float64) {
	switch e := el.(type) {
	case *barchart.Group:
		for _, x := range e.Elements {
			p.draw(r, x, dx+e.TX, dy+e.TY)
		}
	case barchart.Rect:
		p.drawRect(r, e, dx, dy)
	case barchart.Line:
		p.drawLine(r, e, dx, dy)
	case barchart.Text:
		p.drawText(r, e, dx, dy)
	}
}

func (p PNG) drawRect(r chart.Renderer, e barchart.Rect, dx, dy float64) {
	r.SetFillColor(parseColor(e.Fill))
	r.SetStrokeColor(parseColor(e.Stroke))
	r.SetStrokeWidth(e.StrokeWidth)
	r.SetStrokeDashArray(nil)
	rectangle(r, dx+e.X, dy+e.Y, e.Width, e.Height)
	if e.Stroke == "" || e.StrokeWidth <= 0 {
		r.Fill()
		return
	}
	r.FillStroke()
}

func (p PNG) drawLine(r chart.Renderer, e barchart.Line, dx, dy float64) {
	r.SetStrokeColor(parseColor(e.Stroke))
	r.SetStrokeWidth(e.StrokeWidth)
	r.SetStrokeDashArray(e.Dash)
	r.MoveTo(pixel(dx+e.X1), pixel(dy+e.Y1))
	r.LineTo(pixel(dx+e.X2), pixel(dy+e.Y2))
	r.Stroke()
	r.SetStrokeDashArray(nil)
}

func (p PNG) drawText(r chart.Renderer, e barchart.Text, dx, dy float64) {
	r.SetFontColor(parseColor(e.Fill))
	r.SetFontSize(e.Size)

	var (
		box   = r.MeasureText(e.Content)
		ox    float64
		oy    float64
		theta = e.Rotate * deg2rad
	)
	switch e.Anchor {
	case "middle":
		ox = -float64(box.Width()) / 2
	case "end":
		ox = -float64(box.Width())
	}
	switch {
	case e.Baseline == "middle" || e.Dy != 0:
		oy = float64(box.Height()) / 2
	case e.Baseline == "hanging":
		oy = float64(box.Height())
	}
	var (
		x = dx + e.X + ox*math.Cos(theta) - oy*math.Sin(theta)
		y = dy + e.Y + ox*math.Sin(theta) + oy*math.Cos(theta)
	)
	if theta != 0 {
		r.SetTextRotation(theta)
		defer r.ClearTextRotation()
	}
	r.Text(e.Content, pixel(x), pixel(y))
}

func rectangle(r chart.Renderer, x, y, w, h float64) {
	r.MoveTo(pixel(x), pixel(y))
	r.LineTo(pixel(x+w), pixel(y))
	r.LineTo(pixel(x+w), pixel(y+h))
	r.LineTo(pixel(x), pixel(y+h))
	r.Close()
}

func pixel(v float64) int {
	return int(math.Round(v))
}

func parseColor(str string) drawing.Color {
	str = strings.ToLower(strings.TrimSpace(str))
	switch str {
	case "", "none", "transparent":
		return drawing.ColorTransparent
	case "white":
		return drawing.ColorWhite
	case "black":
		return drawing.ColorBlack
	}
	str = strings.TrimPrefix(str, "#")
	if len(str) == 3 {
		str = string([]byte{str[0], str[0], str[1], str[1], str[2], str[2]})
	}
	return drawing.ColorFromHex(str)
}
