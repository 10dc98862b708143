// Package scale maps data values onto the pixel space of a chart.
//
// A [Scale] is computed once per chart from the dataset and the container
// geometry, then queried for pixel positions. Pixel Y grows downward: the
// largest value sits at the top margin and zero sits on the baseline
// (Height - Margin).
//
// Two horizontal modes exist. [Anchored] places the first and last points
// on the left and right edges of the plot area (line charts). [Bucketed]
// splits the plot area into one bucket per record and places each mark at
// the center of its bucket (bar charts). The vertical spacing always uses
// n-1 gaps, so the two modes disagree on the X divisor only.
package scale

import "github.com/matzehuels/stackchart/pkg/dataset"

// Mode selects how records are spread horizontally.
type Mode int

const (
	// Anchored spreads n records over n-1 gaps.
	Anchored Mode = iota
	// Bucketed spreads n records over n buckets.
	Bucketed
)

func (m Mode) String() string {
	if m == Bucketed {
		return "bucketed"
	}
	return "anchored"
}

// Scale is the derived scaling model of one chart.
type Scale struct {
	ValueMax float64 // largest Y value, floored at 0
	ValueMin float64 // always 0
	PixelGap float64 // vertical pixels between adjacent ticks
	ValueGap float64 // data units between adjacent ticks
	XGap     float64 // horizontal pixels between adjacent records

	Width, Height, Margin float64
	N                     int
	Mode                  Mode
}

// Compute derives the scale for ds. It never divides by zero: datasets
// with fewer than two records get zero vertical gaps.
func Compute(ds dataset.Dataset, acc dataset.Accessor, height, width, margin float64, mode Mode) Scale {
	s := Scale{
		Width:  width,
		Height: height,
		Margin: margin,
		N:      len(ds),
		Mode:   mode,
	}

	for _, r := range ds {
		if v := acc.Y(r).Float(); v > s.ValueMax {
			s.ValueMax = v
		}
	}

	n := float64(s.N)
	if s.N > 1 {
		s.PixelGap = (height - 2*margin) / (n - 1)
		s.ValueGap = (s.ValueMax - s.ValueMin) / (n - 1)
	}

	switch {
	case mode == Bucketed && s.N > 0:
		s.XGap = (width - 2*margin) / n
	case mode == Anchored && s.N > 1:
		s.XGap = (width - 2*margin) / (n - 1)
	}
	return s
}

// Baseline returns the pixel Y of the value 0.
func (s Scale) Baseline() float64 { return s.Height - s.Margin }

// YPixel maps a data value to its pixel Y. When the value gap is zero
// (flat data or fewer than two records) every value sits on the baseline.
func (s Scale) YPixel(v float64) float64 {
	if s.ValueGap == 0 {
		return s.Baseline()
	}
	return (s.ValueMax-v)*(s.PixelGap/s.ValueGap) + s.Margin
}

// XAnchored returns the pixel X of record i placed on a gap boundary.
func (s Scale) XAnchored(i int) float64 {
	return s.Margin + s.XGap*float64(i)
}

// XCentered returns the pixel X of the center of record i's bucket.
func (s Scale) XCentered(i int) float64 {
	return s.Margin + s.XGap*float64(i) + s.XGap/2
}

// X returns the pixel X of record i according to the scale's mode.
func (s Scale) X(i int) float64 {
	if s.Mode == Bucketed {
		return s.XCentered(i)
	}
	return s.XAnchored(i)
}

// YTick returns the pixel Y of the i-th horizontal tick, counted upward
// from the baseline.
func (s Scale) YTick(i int) float64 {
	return s.Height - s.Margin - s.PixelGap*float64(i)
}
