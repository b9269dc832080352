package barchart

type Element interface {
	element()
}

type Group struct {
	Class    []string
	TX       float64
	TY       float64
	Elements []Element
}

func NewGroup(class string, tx, ty float64) *Group {
	g := Group{
		TX: tx,
		TY: ty,
	}
	if class != "" {
		g.Class = append(g.Class, class)
	}
	return &g
}

func (g *Group) Append(el ...Element) {
	for _, e := range el {
		if e == nil {
			continue
		}
		g.Elements = append(g.Elements, e)
	}
}

func (g *Group) Len() int {
	return len(g.Elements)
}

type Rect struct {
	X           float64
	Y           float64
	Width       float64
	Height      float64
	Fill        string
	Stroke      string
	StrokeWidth float64
	Title       string
}

type Line struct {
	X1          float64
	Y1          float64
	X2          float64
	Y2          float64
	Stroke      string
	StrokeWidth float64
	Dash        []float64
}

type Text struct {
	Content  string
	X        float64
	Y        float64
	Dy       float64
	Size     float64
	Bold     bool
	Fill     string
	Anchor   string
	Baseline string
	Rotate   float64
}

func (*Group) element() {}
func (Rect) element()   {}
func (Line) element()   {}
func (Text) element()   {}

type CategoryTick struct {
	Index int
	Label string
	Text  string
	X     float64
}

type ValueTick struct {
	Value float64
	Text  string
	Y     float64
}

type Scene struct {
	Width  float64
	Height float64
	Margin Padding

	PlotWidth  float64
	PlotHeight float64

	Bars       []Bar
	Categories []CategoryTick
	Values     []ValueTick
	Domain     Range

	ZeroLine bool
	ZeroY    float64

	Root *Group
}

func (s Scene) Empty() bool {
	return len(s.Bars) == 0
}

// Walk visits every element of the scene depth first.
func (s Scene) Walk(fn func(Element)) {
	if s.Root == nil {
		return
	}
	walk(s.Root, fn)
}

func walk(el Element, fn func(Element)) {
	fn(el)
	g, ok := el.(*Group)
	if !ok {
		return
	}
	for _, e := range g.Elements {
		walk(e, fn)
	}
}
