// Package tooltip places value callouts above line chart points.
//
// A tooltip is a short vertical connector rising from the top of the
// point marker, a rounded box sitting on the connector and centered on
// the point, and a text anchor inside the box. Tooltips never avoid each
// other or the container edges.
package tooltip

// ConnectorLength is the vertical distance between the marker and the box.
const ConnectorLength = 10

// textLift raises the text baseline from the box's vertical center.
const textLift = 5

// Config sizes the tooltip box.
type Config struct {
	Width  float64
	Height float64
	Radius float64 // corner radius of the box
}

// Line is a connector segment.
type Line struct {
	X1, Y1, X2, Y2 float64
}

// Box is the tooltip rectangle.
type Box struct {
	X, Y, W, H, RX float64
}

// Anchor is the text position, centered horizontally.
type Anchor struct {
	X, Y float64
}

// Geometry is the placed tooltip.
type Geometry struct {
	Connector Line
	Box       Box
	Text      Anchor
}

// Place positions a tooltip for the point (x, y) whose marker has radius
// pointRadius.
func Place(x, y, pointRadius float64, cfg Config) Geometry {
	top := y - pointRadius/2
	return Geometry{
		Connector: Line{X1: x, Y1: top, X2: x, Y2: top - ConnectorLength},
		Box: Box{
			X:  x - cfg.Width/2,
			Y:  top - cfg.Height - ConnectorLength,
			W:  cfg.Width,
			H:  cfg.Height,
			RX: cfg.Radius,
		},
		Text: Anchor{X: x, Y: top - cfg.Height/2 - textLift},
	}
}
