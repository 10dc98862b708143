package sink

import (
	"encoding/json"

	"github.com/matzehuels/stackchart/pkg/dataset"
	"github.com/matzehuels/stackchart/pkg/render/chart/model"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	records dataset.Dataset
	id      string
}

// WithJSONRecords includes the source records, so a consumer can resolve
// the index of a bound primitive back to its record.
func WithJSONRecords(ds dataset.Dataset) JSONOption {
	return func(r *jsonRenderer) { r.records = ds }
}

// WithJSONID records the render job ID in the output.
func WithJSONID(id string) JSONOption { return func(r *jsonRenderer) { r.id = id } }

type jsonOutput struct {
	ID         string          `json:"id,omitempty"`
	Kind       string          `json:"kind"`
	Width      float64         `json:"width"`
	Height     float64         `json:"height"`
	Margin     float64         `json:"margin"`
	Gradients  []jsonGradient  `json:"gradients,omitempty"`
	Primitives []jsonPrimitive `json:"primitives"`
	Records    dataset.Dataset `json:"records,omitempty"`
}

type jsonGradient struct {
	ID    string     `json:"id"`
	Start model.Stop `json:"start"`
	End   model.Stop `json:"end"`
}

type jsonPrimitive struct {
	Layer  model.Layer `json:"layer"`
	Kind   model.Kind  `json:"kind"`
	Index  *int        `json:"index,omitempty"`
	Style  jsonStyle   `json:"style"`
	Rect   *jsonRect   `json:"rect,omitempty"`
	Circle *jsonCircle `json:"circle,omitempty"`
	Line   *jsonLine   `json:"line,omitempty"`
	Path   string      `json:"d,omitempty"`
	Text   *jsonText   `json:"text,omitempty"`
}

type jsonRect struct {
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	W  float64 `json:"width"`
	H  float64 `json:"height"`
	RX float64 `json:"rx,omitempty"`
}

type jsonLine struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

type jsonText struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Content string  `json:"content"`
}

type jsonCircle struct {
	CX float64 `json:"cx"`
	CY float64 `json:"cy"`
	R  float64 `json:"r"`
}

type jsonStyle struct {
	Fill        string  `json:"fill,omitempty"`
	Gradient    string  `json:"gradient,omitempty"`
	Stroke      string  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"stroke_width,omitempty"`
	Opacity     float64 `json:"opacity"`
	FontSize    float64 `json:"font_size,omitempty"`
	FontWeight  string  `json:"font_weight,omitempty"`
	Anchor      string  `json:"anchor,omitempty"`
	Rotation    float64 `json:"rotation,omitempty"`
}

// RenderJSON exports the render model as indented JSON. Paths are written
// as SVG path data.
func RenderJSON(m model.Model, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		ID:         r.id,
		Kind:       m.Kind,
		Width:      m.Width,
		Height:     m.Height,
		Margin:     m.Margin,
		Primitives: make([]jsonPrimitive, 0, len(m.Primitives)),
		Records:    r.records,
	}
	for _, g := range m.Gradients() {
		out.Gradients = append(out.Gradients, jsonGradient{ID: g.ID, Start: g.Start, End: g.End})
	}
	for _, p := range m.Primitives {
		out.Primitives = append(out.Primitives, toJSONPrimitive(p))
	}
	return json.MarshalIndent(out, "", "  ")
}

func toJSONPrimitive(p model.Primitive) jsonPrimitive {
	jp := jsonPrimitive{
		Layer: p.Layer,
		Kind:  p.Kind(),
		Style: jsonStyle{
			Fill:        p.Style.Fill,
			Stroke:      p.Style.Stroke,
			StrokeWidth: p.Style.StrokeWidth,
			Opacity:     p.Style.Opacity,
			FontSize:    p.Style.FontSize,
			FontWeight:  p.Style.FontWeight,
			Anchor:      p.Style.Anchor,
			Rotation:    p.Style.Rotation,
		},
	}
	if p.Index != model.NoIndex {
		i := p.Index
		jp.Index = &i
	}
	if p.Style.Gradient != nil {
		jp.Style.Gradient = p.Style.Gradient.ID
	}
	if p.Rect != nil {
		jp.Rect = &jsonRect{X: p.Rect.X, Y: p.Rect.Y, W: p.Rect.W, H: p.Rect.H, RX: p.Rect.RX}
	}
	if p.Line != nil {
		jp.Line = &jsonLine{X1: p.Line.X1, Y1: p.Line.Y1, X2: p.Line.X2, Y2: p.Line.Y2}
	}
	if p.Text != nil {
		jp.Text = &jsonText{X: p.Text.X, Y: p.Text.Y, Content: p.Text.Content}
	}
	if p.Circle != nil {
		jp.Circle = &jsonCircle{CX: p.Circle.CX, CY: p.Circle.CY, R: p.Circle.R}
	}
	if p.Path != nil {
		jp.Path = p.Path.String()
	}
	return jp
}
