package surface

import (
	"bufio"
	"io"
	"math"

	"github.com/midbel/barchart"
	"github.com/midbel/svg"
)

type SVG struct{}

func (SVG) ContentType() string {
	return "image/svg+xml"
}

func (SVG) Extension() string {
	return "svg"
}

func (s SVG) Render(w io.Writer, scene barchart.Scene) error {
	el := svg.NewSVG()
	el.Dim = svg.NewDim(scene.Width, scene.Height)
	el.OmitProlog = true
	if scene.Root != nil {
		el.Append(s.convert(scene.Root))
	}
	bw := bufio.NewWriter(w)
	el.Render(bw)
	return bw.Flush()
}

func (s SVG) convert(el barchart.Element) svg.Element {
	switch e := el.(type) {
	case *barchart.Group:
		return s.convertGroup(e)
	case barchart.Rect:
		return s.convertRect(e)
	case barchart.Line:
		return s.convertLine(e)
	case barchart.Text:
		return s.convertText(e)
	default:
		return nil
	}
}

func (s SVG) convertGroup(g *barchart.Group) svg.Element {
	var grp svg.Group
	grp.Class = append(grp.Class, g.Class...)
	if g.TX != 0 || g.TY != 0 {
		grp.Transform = svg.Translate(g.TX, g.TY)
	}
	for _, e := range g.Elements {
		if x := s.convert(e); x != nil {
			grp.Append(x)
		}
	}
	return grp.AsElement()
}

func (s SVG) convertRect(r barchart.Rect) svg.Element {
	var grp svg.Group
	grp.Class = append(grp.Class, "bar")
	if r.Stroke != "" {
		grp.Stroke = svg.NewStroke(r.Stroke, r.StrokeWidth)
	}
	var el svg.Rect
	el.Pos = svg.NewPos(r.X, r.Y)
	el.Dim = svg.NewDim(r.Width, r.Height)
	el.Fill = svg.NewFill(r.Fill)
	el.Title = r.Title
	grp.Append(el.AsElement())
	return grp.AsElement()
}

func (s SVG) convertLine(l barchart.Line) svg.Element {
	li := svg.NewLine(svg.NewPos(l.X1, l.Y1), svg.NewPos(l.X2, l.Y2))
	li.Stroke = svg.NewStroke(l.Stroke, l.StrokeWidth)
	for _, d := range l.Dash {
		li.Stroke.DashArray = append(li.Stroke.DashArray, int(math.Round(d)))
	}
	return li.AsElement()
}

func (s SVG) convertText(t barchart.Text) svg.Element {
	var grp svg.Group
	if t.Bold {
		grp.Class = append(grp.Class, "bold")
	}
	grp.Transform = svg.Translate(t.X, t.Y+t.Dy*t.Size)
	grp.Transform.RA = t.Rotate

	tx := svg.NewText(t.Content)
	tx.Pos = svg.NewPos(0, 0)
	tx.Font = svg.NewFont(t.Size)
	if t.Bold {
		tx.Font.Weight = "bold"
	}
	if t.Fill != "" {
		tx.Font.Fill = t.Fill
	}
	if t.Anchor != "" {
		tx.Anchor = t.Anchor
	}
	if t.Baseline != "" {
		tx.Baseline = t.Baseline
	}
	grp.Append(tx.AsElement())
	return grp.AsElement()
}
