package chart

import (
	"github.com/matzehuels/stackchart/pkg/dataset"
	"github.com/matzehuels/stackchart/pkg/render/chart/bars"
	"github.com/matzehuels/stackchart/pkg/render/chart/model"
	"github.com/matzehuels/stackchart/pkg/render/chart/scale"
)

// BarChart is an assembled bar chart.
type BarChart struct {
	Model model.Model
	Scale scale.Scale
	Bars  []bars.Bar
}

// Bar lays out a bar chart. Each record owns an equal horizontal bucket
// and its bar is centered in it.
func Bar(ds dataset.Dataset, acc dataset.Accessor, cfg Config) BarChart {
	a := newAssembler("bar", ds, acc, cfg, scale.Bucketed)
	bs := bars.Build(ds, acc, a.s, bars.Options{
		Width:  cfg.Bars.Width,
		ThreeD: cfg.ThreeD.Show,
		Depth:  cfg.ThreeD.Depth,
	})

	a.background()
	a.axes()
	a.grid()
	a.xAxisMarks()
	a.yAxisMarks()
	if cfg.Bars.Show {
		for _, b := range bs {
			a.barMarks(b)
		}
	}

	return BarChart{Model: a.m, Scale: a.s, Bars: bs}
}

func (a *assembler) barMarks(b bars.Bar) {
	bc := a.cfg.Bars
	edge := model.Style{
		Stroke:      bc.Color,
		StrokeWidth: a.cfg.ThreeD.StrokeWidth,
		Opacity:     1,
	}
	for _, e := range b.Edges {
		a.m.Add(model.NewLine(model.LayerBars3D, model.Line(e), edge).Bind(b.Index))
	}
	a.m.Add(model.NewRect(model.LayerBars, model.Rect{X: b.Left, Y: b.Top, W: b.Width, H: b.Height}, model.Style{
		Fill:        bc.Fill,
		Stroke:      bc.Color,
		StrokeWidth: bc.StrokeWidth,
		Opacity:     bc.Opacity,
	}).Bind(b.Index))
}
