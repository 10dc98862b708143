// Package model defines the render model: an ordered list of drawing
// primitives produced by the chart assemblers and consumed by sinks.
//
// Primitives are pure data. Each carries exactly one shape, a [Style]
// whose values are passed through from the chart configuration unchanged,
// the [Layer] that produced it, and, for record-bound marks, the index of
// the dataset record it represents. Sinks paint primitives in slice
// order; later primitives cover earlier ones.
package model

import "github.com/matzehuels/stackchart/pkg/render/chart/path"

// NoIndex marks a primitive that is not bound to a dataset record.
const NoIndex = -1

// Layer names the assembly stage that emitted a primitive.
type Layer string

// Layers in paint order.
const (
	LayerBackground Layer = "background"
	LayerXAxis      Layer = "x-axis"
	LayerYAxis      Layer = "y-axis"
	LayerHGrid      Layer = "h-grid"
	LayerVGrid      Layer = "v-grid"
	LayerShadow     Layer = "shadow"
	LayerXTicks     Layer = "x-ticks"
	LayerXLabels    Layer = "x-labels"
	LayerYTicks     Layer = "y-ticks"
	LayerYLabels    Layer = "y-labels"
	LayerLine       Layer = "line"
	LayerBars       Layer = "bars"
	LayerBars3D     Layer = "bars-3d"
	LayerPoints     Layer = "points"
	LayerTooltips   Layer = "tooltips"
)

// Kind names a primitive's shape.
type Kind string

// Shape kinds.
const (
	KindRect   Kind = "rect"
	KindCircle Kind = "circle"
	KindLine   Kind = "line"
	KindPath   Kind = "path"
	KindText   Kind = "text"
)

// Rect is an axis-aligned rectangle with optional rounded corners.
type Rect struct {
	X, Y, W, H, RX float64
}

// Circle is a circle.
type Circle struct {
	CX, CY, R float64
}

// Line is a straight segment.
type Line struct {
	X1, Y1, X2, Y2 float64
}

// Text is a single line of text. X is interpreted through Style.Anchor and
// Y is the text baseline.
type Text struct {
	X, Y    float64
	Content string
}

// Stop is one color stop of a gradient.
type Stop struct {
	Offset  float64 `json:"offset" toml:"offset"`
	Color   string  `json:"color" toml:"color"`
	Opacity float64 `json:"opacity" toml:"opacity"`
}

// Gradient is a vertical linear gradient spanning the chart height.
type Gradient struct {
	ID    string `json:"id"`
	Start Stop   `json:"start"`
	End   Stop   `json:"end"`
}

// Style holds paint attributes. Opacity is always explicit: 1 is fully
// opaque and 0 is invisible. Empty strings mean "not set".
type Style struct {
	Fill        string
	Gradient    *Gradient // overrides Fill when set
	Stroke      string
	StrokeWidth float64
	Opacity     float64

	FontSize   float64
	FontWeight string
	Anchor     string  // start, middle or end
	Rotation   float64 // degrees around the text anchor
}

// Primitive is one drawable element. Exactly one shape field is set.
type Primitive struct {
	Layer  Layer
	Index  int
	Style  Style
	Rect   *Rect
	Circle *Circle
	Line   *Line
	Path   *path.Path
	Text   *Text
}

// Kind reports which shape the primitive carries.
func (p Primitive) Kind() Kind {
	switch {
	case p.Rect != nil:
		return KindRect
	case p.Circle != nil:
		return KindCircle
	case p.Line != nil:
		return KindLine
	case p.Path != nil:
		return KindPath
	default:
		return KindText
	}
}

// NewRect returns an unbound rectangle primitive.
func NewRect(l Layer, r Rect, s Style) Primitive {
	return Primitive{Layer: l, Index: NoIndex, Style: s, Rect: &r}
}

// NewCircle returns an unbound circle primitive.
func NewCircle(l Layer, c Circle, s Style) Primitive {
	return Primitive{Layer: l, Index: NoIndex, Style: s, Circle: &c}
}

// NewLine returns an unbound line primitive.
func NewLine(l Layer, ln Line, s Style) Primitive {
	return Primitive{Layer: l, Index: NoIndex, Style: s, Line: &ln}
}

// NewPath returns an unbound path primitive.
func NewPath(l Layer, p path.Path, s Style) Primitive {
	return Primitive{Layer: l, Index: NoIndex, Style: s, Path: &p}
}

// NewText returns an unbound text primitive.
func NewText(l Layer, t Text, s Style) Primitive {
	return Primitive{Layer: l, Index: NoIndex, Style: s, Text: &t}
}

// Bind returns a copy of p bound to dataset record i.
func (p Primitive) Bind(i int) Primitive {
	p.Index = i
	return p
}

// Model is a complete, ordered chart drawing.
type Model struct {
	Kind       string // "line" or "bar"
	Width      float64
	Height     float64
	Margin     float64
	Primitives []Primitive
}

// Add appends primitives in paint order.
func (m *Model) Add(ps ...Primitive) {
	m.Primitives = append(m.Primitives, ps...)
}

// Layer returns the primitives emitted by stage l, in paint order.
func (m Model) Layer(l Layer) []Primitive {
	var out []Primitive
	for _, p := range m.Primitives {
		if p.Layer == l {
			out = append(out, p)
		}
	}
	return out
}

// Layers returns the distinct layers in first-appearance order.
func (m Model) Layers() []Layer {
	var out []Layer
	seen := make(map[Layer]bool)
	for _, p := range m.Primitives {
		if !seen[p.Layer] {
			seen[p.Layer] = true
			out = append(out, p.Layer)
		}
	}
	return out
}

// Gradients returns the distinct gradients referenced by the model, in
// first-use order.
func (m Model) Gradients() []Gradient {
	var out []Gradient
	seen := make(map[string]bool)
	for _, p := range m.Primitives {
		g := p.Style.Gradient
		if g == nil || seen[g.ID] {
			continue
		}
		seen[g.ID] = true
		out = append(out, *g)
	}
	return out
}

// Bound returns the primitives bound to dataset record i.
func (m Model) Bound(i int) []Primitive {
	var out []Primitive
	for _, p := range m.Primitives {
		if p.Index == i {
			out = append(out, p)
		}
	}
	return out
}
