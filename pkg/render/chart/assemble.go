package chart

import (
	"github.com/matzehuels/stackchart/pkg/dataset"
	"github.com/matzehuels/stackchart/pkg/render/chart/axis"
	"github.com/matzehuels/stackchart/pkg/render/chart/model"
	"github.com/matzehuels/stackchart/pkg/render/chart/scale"
)

// Gradient IDs referenced by background and shadow fills.
const (
	BackgroundGradientID = "chart-background"
	ShadowGradientID     = "chart-shadow"
)

// assembler emits the stages shared by both engines.
type assembler struct {
	cfg Config
	ds  dataset.Dataset
	acc dataset.Accessor
	s   scale.Scale
	m   model.Model
}

func newAssembler(kind string, ds dataset.Dataset, acc dataset.Accessor, cfg Config, mode scale.Mode) *assembler {
	s := scale.Compute(ds, acc, cfg.Height, cfg.Width, cfg.Margin, mode)
	return &assembler{
		cfg: cfg,
		ds:  ds,
		acc: acc,
		s:   s,
		m: model.Model{
			Kind:   kind,
			Width:  cfg.Width,
			Height: cfg.Height,
			Margin: cfg.Margin,
		},
	}
}

func (a *assembler) background() {
	bg := a.cfg.Background
	if !bg.Show {
		return
	}
	g := model.Gradient{ID: BackgroundGradientID, Start: bg.Start, End: bg.End}
	a.m.Add(model.NewRect(model.LayerBackground,
		model.Rect{X: 0, Y: 0, W: a.cfg.Width, H: a.cfg.Height, RX: bg.Radius},
		model.Style{Gradient: &g, Opacity: 1},
	))
}

func (a *assembler) axes() {
	ax := a.cfg.Axes
	if !ax.Show {
		return
	}
	m, w := a.cfg.Margin, a.cfg.Width
	base := a.s.Baseline()

	marker := model.Style{
		Fill:        ax.MarkerFill,
		Stroke:      ax.MarkerStroke,
		StrokeWidth: ax.StrokeWidth,
		Opacity:     ax.MarkerOpacity,
	}
	line := a.axisStroke(1)

	a.m.Add(
		model.NewCircle(model.LayerXAxis, model.Circle{CX: m, CY: base, R: ax.MarkerRadius}, marker),
		model.NewCircle(model.LayerXAxis, model.Circle{CX: w - m, CY: base, R: ax.MarkerRadius}, marker),
		model.NewLine(model.LayerXAxis, model.Line{X1: m, Y1: base, X2: w - m, Y2: base}, line),
		model.NewCircle(model.LayerYAxis, model.Circle{CX: m, CY: m, R: ax.MarkerRadius}, marker),
		model.NewLine(model.LayerYAxis, model.Line{X1: m, Y1: m, X2: m, Y2: base}, line),
	)
}

func (a *assembler) axisStroke(opacity float64) model.Style {
	return model.Style{
		Stroke:      a.cfg.Axes.Color,
		StrokeWidth: a.cfg.Axes.StrokeWidth,
		Opacity:     opacity,
	}
}

func (a *assembler) grid() {
	g := a.cfg.Grid
	m, w := a.cfg.Margin, a.cfg.Width
	if g.Horizontal {
		style := a.axisStroke(g.HorizontalOpacity)
		for _, t := range axis.YTicks(a.s) {
			a.m.Add(model.NewLine(model.LayerHGrid, model.Line{X1: m, Y1: t.Y, X2: w - m, Y2: t.Y}, style))
		}
	}
	if g.Vertical {
		style := a.axisStroke(g.VerticalOpacity)
		for _, t := range axis.XTicks(a.s) {
			a.m.Add(model.NewLine(model.LayerVGrid, model.Line{X1: t.X, Y1: t.Y, X2: t.X, Y2: m}, style))
		}
	}
}

func (a *assembler) xAxisMarks() {
	ticks := axis.XTicks(a.s)
	length := a.cfg.Ticks.Length

	if a.cfg.Ticks.X {
		style := a.axisStroke(1)
		for _, t := range ticks {
			a.m.Add(model.NewLine(model.LayerXTicks, model.Line{X1: t.X, Y1: t.Y, X2: t.X, Y2: t.Y + length}, style))
		}
	}

	lc := a.cfg.XLabels
	if !lc.Show {
		return
	}
	labels := axis.XLabels(a.ds, a.acc, a.cfg.XFormatter)
	style := labelStyle(lc)
	dx := lc.OffsetX
	if a.s.Mode == scale.Bucketed {
		dx = -dx
	}
	for i, t := range ticks {
		a.m.Add(model.NewText(model.LayerXLabels, model.Text{
			X:       t.X + dx,
			Y:       t.Y + length + lc.FontSize + lc.OffsetY,
			Content: labels[i],
		}, style).Bind(i))
	}
}

func (a *assembler) yAxisMarks() {
	ticks := axis.YTicks(a.s)
	length := a.cfg.Ticks.Length

	if a.cfg.Ticks.Y {
		style := a.axisStroke(1)
		for _, t := range ticks {
			a.m.Add(model.NewLine(model.LayerYTicks, model.Line{X1: t.X, Y1: t.Y, X2: t.X - length, Y2: t.Y}, style))
		}
	}

	lc := a.cfg.YLabels
	if !lc.Show {
		return
	}
	labels := a.yLabels()
	style := labelStyle(lc)
	for i, t := range ticks {
		a.m.Add(model.NewText(model.LayerYLabels, model.Text{
			X:       t.X - length - yLabelGap + lc.OffsetX,
			Y:       t.Y + lc.FontSize/3 + lc.OffsetY,
			Content: labels[i],
		}, style))
	}
}

func (a *assembler) yLabels() []string {
	if a.cfg.YLabelMemo != nil {
		return a.cfg.YLabelMemo.YLabels(a.cfg.MemoKey, a.s, a.cfg.YFormatter)
	}
	return axis.YLabels(a.s, a.cfg.YFormatter)
}

func labelStyle(lc AxisLabel) model.Style {
	return model.Style{
		Fill:       lc.Fill,
		Opacity:    1,
		FontSize:   lc.FontSize,
		FontWeight: lc.FontWeight,
		Anchor:     lc.Anchor,
		Rotation:   lc.Rotation,
	}
}
