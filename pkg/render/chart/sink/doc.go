// Package sink provides output format renderers for chart render models.
//
// # Overview
//
// A "sink" paints a [model.Model] produced by the chart assemblers into a
// final output format:
//
//   - SVG: Scalable vector graphics, optionally interactive
//   - JSON: The render model itself, for external renderers
//   - PDF: Print-ready vector output, painted with tdewolff/canvas
//   - PNG: Raster output, painted with tdewolff/canvas
//
// Every sink paints primitives in model order and passes style values
// through unchanged.
//
// # SVG Output
//
// [RenderSVG] writes one element per primitive. Elements are classed with
// their layer name, and record-bound elements carry data-index:
//
//	svg := sink.RenderSVG(c.Model, sink.WithInteraction())
//
// [WithInteraction] hides tooltips until their point is hovered and fires
// a "chartpress" DOM event with the record index when a point or bar is
// clicked. Gradients become userSpaceOnUse linear gradients spanning the
// chart height.
//
// # JSON Output
//
// [RenderJSON] exports every primitive with its layer, record index,
// geometry and style. Paths are written as SVG path data.
//
// # PDF and PNG Output
//
// [RenderPDF] and [RenderPNG] paint the model through tdewolff/canvas,
// converting chart pixels at 96 per inch. Text needs a real font: pass a
// file with [WithPDFFont] or [WithPNGFont], or the first installed family
// of fonts.SystemFamilies is used. Models without text need no font.
// Gradients are painted flat with the color halfway between their stops.
//
//	pdf, err := sink.RenderPDF(c.Model)
//	png, err := sink.RenderPNG(c.Model, sink.WithScale(3))
//
// [model.Model]: github.com/matzehuels/stackchart/pkg/render/chart/model.Model
package sink
