// Package bars computes the rectangles and pseudo-3D wireframes of bar
// charts.
//
// Bars stand on the baseline and are centered in their bucket (see
// [scale.Bucketed]). A bar's height is the distance from the baseline to
// the value's pixel Y; negative values clamp to zero height, so bars never
// grow downward.
//
// With 3D enabled each bar gets five receding edges offset by the diagonal
// (-Depth, -Depth): three from the front-left-bottom, front-left-top and
// front-right-top corners, plus the back-left vertical and the back-top
// horizontal. Together they suggest a box seen from the upper left.
package bars

import (
	"github.com/matzehuels/stackchart/pkg/dataset"
	"github.com/matzehuels/stackchart/pkg/render/chart/scale"
)

// Options controls bar geometry.
type Options struct {
	Width  float64 // bar width in pixels
	ThreeD bool    // add the receding wireframe
	Depth  float64 // diagonal offset of the wireframe
}

// Edge is a straight wireframe segment.
type Edge struct {
	X1, Y1, X2, Y2 float64
}

// Bar is the geometry of one record's mark.
type Bar struct {
	Index   int
	Value   float64
	CenterX float64
	Left    float64
	Top     float64
	Width   float64
	Height  float64
	Edges   []Edge // nil unless Options.ThreeD
}

// Right returns the bar's right edge.
func (b Bar) Right() float64 { return b.Left + b.Width }

// Bottom returns the bar's bottom edge (the baseline).
func (b Bar) Bottom() float64 { return b.Top + b.Height }

// Build returns one bar per record, in dataset order.
func Build(ds dataset.Dataset, acc dataset.Accessor, s scale.Scale, opts Options) []Bar {
	baseline := s.Baseline()
	out := make([]Bar, len(ds))
	for i, r := range ds {
		v := acc.Y(r).Float()
		h := baseline - s.YPixel(v)
		if h < 0 {
			h = 0
		}
		cx := s.XCentered(i)
		b := Bar{
			Index:   i,
			Value:   v,
			CenterX: cx,
			Left:    cx - opts.Width/2,
			Top:     baseline - h,
			Width:   opts.Width,
			Height:  h,
		}
		if opts.ThreeD {
			b.Edges = wireframe(b, opts.Depth)
		}
		out[i] = b
	}
	return out
}

func wireframe(b Bar, d float64) []Edge {
	left, right := b.Left, b.Right()
	top, bottom := b.Top, b.Bottom()
	return []Edge{
		{left, bottom, left - d, bottom - d},
		{left, top, left - d, top - d},
		{left - d, bottom - d, left - d, top - d},
		{left - d, top - d, right - d, top - d},
		{right, top, right - d, top - d},
	}
}
