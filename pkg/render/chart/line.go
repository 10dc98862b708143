package chart

import (
	"github.com/matzehuels/stackchart/pkg/dataset"
	"github.com/matzehuels/stackchart/pkg/render/chart/model"
	"github.com/matzehuels/stackchart/pkg/render/chart/path"
	"github.com/matzehuels/stackchart/pkg/render/chart/scale"
	"github.com/matzehuels/stackchart/pkg/render/chart/tooltip"
)

// LineChart is an assembled line chart.
type LineChart struct {
	Model  model.Model
	Scale  scale.Scale
	Points []path.Point // pixel position of every record
	Path   path.Path    // the data line, before shadow closing

	records dataset.Dataset
	onPress func(int, dataset.Record)
}

// Press forwards record i to the configured OnPointPress callback. It
// reports whether a callback ran.
func (c LineChart) Press(i int) bool {
	if c.onPress == nil || i < 0 || i >= len(c.records) {
		return false
	}
	c.onPress(i, c.records[i])
	return true
}

// Record returns the dataset record behind point i.
func (c LineChart) Record(i int) (dataset.Record, bool) {
	if i < 0 || i >= len(c.records) {
		return nil, false
	}
	return c.records[i], true
}

// Line lays out a line chart. Records are placed left to right in dataset
// order, the first on the left plot edge and the last on the right.
func Line(ds dataset.Dataset, acc dataset.Accessor, cfg Config) LineChart {
	a := newAssembler("line", ds, acc, cfg, scale.Anchored)

	points := make([]path.Point, len(ds))
	for i, r := range ds {
		points[i] = path.Point{X: a.s.XAnchored(i), Y: a.s.YPixel(acc.Y(r).Float())}
	}
	line := path.Build(points, cfg.Line.Curve)

	a.background()
	a.axes()
	a.grid()
	if cfg.Shadow.Show && !line.Empty() {
		g := model.Gradient{ID: ShadowGradientID, Start: cfg.Shadow.Start, End: cfg.Shadow.End}
		a.m.Add(model.NewPath(model.LayerShadow, line.Shadow(a.s.Baseline()), model.Style{Gradient: &g, Opacity: 1}))
	}
	a.xAxisMarks()
	a.yAxisMarks()
	if cfg.Line.Show && !line.Empty() {
		a.m.Add(model.NewPath(model.LayerLine, line, model.Style{
			Stroke:      cfg.Line.Stroke,
			StrokeWidth: cfg.Line.StrokeWidth,
			Opacity:     1,
		}))
	}
	for i, p := range points {
		a.pointMarks(i, p)
	}

	return LineChart{
		Model:   a.m,
		Scale:   a.s,
		Points:  points,
		Path:    line,
		records: ds,
		onPress: cfg.OnPointPress,
	}
}

// pointMarks emits the marker and tooltip of record i.
func (a *assembler) pointMarks(i int, p path.Point) {
	pc, tc := a.cfg.Points, a.cfg.Tooltip
	if pc.Show {
		a.m.Add(model.NewCircle(model.LayerPoints, model.Circle{CX: p.X, CY: p.Y, R: pc.Radius}, model.Style{
			Fill:        pc.Fill,
			Stroke:      pc.Stroke,
			StrokeWidth: pc.StrokeWidth,
			Opacity:     1,
		}).Bind(i))
	}
	if !tc.Show {
		return
	}

	g := tooltip.Place(p.X, p.Y, pc.Radius, tooltip.Config{Width: tc.Width, Height: tc.Height, Radius: tc.Radius})
	text := a.cfg.TooltipFormatter.Apply(a.acc.Y(a.ds[i]).String())
	a.m.Add(
		model.NewLine(model.LayerTooltips, model.Line(g.Connector), model.Style{
			Stroke:      pc.Stroke,
			StrokeWidth: pc.StrokeWidth,
			Opacity:     tc.ConnectorOpacity,
		}).Bind(i),
		model.NewRect(model.LayerTooltips, model.Rect(g.Box), model.Style{
			Fill:    tc.Fill,
			Opacity: 1,
		}).Bind(i),
		model.NewText(model.LayerTooltips, model.Text{X: g.Text.X, Y: g.Text.Y, Content: text}, model.Style{
			Fill:       tc.TextFill,
			Opacity:    1,
			FontSize:   tc.FontSize,
			FontWeight: tc.FontWeight,
			Anchor:     tc.Anchor,
		}).Bind(i),
	)
}
