// Package chart assembles line and bar charts into an ordered render model.
//
// # Overview
//
// The chart engines turn an ordered dataset, an accessor naming its X and Y
// fields, and a [Config] into pixel geometry. Both engines share one scaling
// model ([scale]) and one tick model ([axis]); the line engine adds a path
// ([path]) and tooltips ([tooltip]), the bar engine adds bar marks ([bars]).
// The result is a [model.Model]: a flat list of primitives in paint order,
// ready for a sink ([sink]) to draw.
//
//	ds, _ := dataset.ReadFile("sales.csv")
//	acc := dataset.Keys{XKey: "month", YKey: "sales"}
//
//	cfg := chart.LineDefaults(900)
//	cfg.YFormatter = func(v string) string { return "$" + v }
//
//	c := chart.Line(ds, acc, cfg)
//	svg := sink.RenderSVG(c.Model)
//
// # Paint Order
//
// Primitives are emitted in a fixed order, each tagged with its
// [model.Layer]:
//
//  1. Background
//  2. X axis line and endpoint markers, then the Y axis line and marker
//  3. Horizontal gridlines, then vertical gridlines
//  4. Area shadow (line only)
//  5. X ticks, X labels, Y ticks, Y labels
//  6. The line path, or the bars with their 3D edges
//  7. Point markers and tooltips (line only)
//
// A disabled stage emits nothing. An empty dataset produces only the
// background and the axes.
//
// # Degenerate Input
//
// Layout never fails. Non-numeric Y values count as 0 (with float-prefix
// parsing, so "12px" is 12). Datasets with fewer than two records, or with
// every value at zero, put all marks on the baseline instead of dividing by
// zero.
//
// # Interaction
//
// Point markers, tooltips, bars and X labels carry the index of the record
// they represent. A host that detects a press on a point calls
// [LineChart.Press], which hands the original record to
// [Config].OnPointPress.
//
// [scale]: github.com/matzehuels/stackchart/pkg/render/chart/scale
// [axis]: github.com/matzehuels/stackchart/pkg/render/chart/axis
// [path]: github.com/matzehuels/stackchart/pkg/render/chart/path
// [tooltip]: github.com/matzehuels/stackchart/pkg/render/chart/tooltip
// [bars]: github.com/matzehuels/stackchart/pkg/render/chart/bars
// [sink]: github.com/matzehuels/stackchart/pkg/render/chart/sink
package chart
