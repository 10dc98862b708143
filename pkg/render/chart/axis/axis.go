// Package axis generates tick positions and label strings for chart axes.
//
// The Y axis carries one synthetic tick per record: n evenly spaced values
// from 0 to the scale's ValueMax. These ticks are not data values; they
// only subdivide the value range. The X axis carries one tick per record
// in dataset order, labeled with the record's raw X value.
//
// Labels pass through an optional [Formatter]. A nil formatter leaves the
// raw string unchanged.
package axis

import (
	"slices"
	"strconv"

	"github.com/matzehuels/stackchart/pkg/dataset"
	"github.com/matzehuels/stackchart/pkg/render/chart/scale"
)

// Formatter turns a raw label string into its displayed form.
type Formatter func(string) string

// Apply runs f on s, or returns s unchanged when f is nil.
func (f Formatter) Apply(s string) string {
	if f == nil {
		return s
	}
	return f(s)
}

// Tick is the pixel anchor of one axis tick.
type Tick struct {
	Index int
	X, Y  float64
}

// FormatValue renders a tick value in shortest round-trip form, so that
// parsing the label recovers the value exactly.
func FormatValue(v float64) string {
	if v == 0 {
		v = 0 // drop negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// YTickValues returns the n synthetic Y tick values in ascending order.
// A single record yields [0]; an empty dataset yields none.
func YTickValues(s scale.Scale) []float64 {
	n := s.N
	if n <= 0 {
		return []float64{}
	}
	vals := make([]float64, n)
	if n == 1 {
		return vals
	}
	gap := s.ValueMax / float64(n-1)
	for i := range vals {
		vals[i] = gap * float64(i)
	}
	vals[n-1] = s.ValueMax
	slices.Sort(vals)
	return vals
}

// YLabels returns the formatted Y tick labels, bottom to top.
func YLabels(s scale.Scale, f Formatter) []string {
	vals := YTickValues(s)
	labels := make([]string, len(vals))
	for i, v := range vals {
		labels[i] = f.Apply(FormatValue(v))
	}
	return labels
}

// XLabels returns one formatted label per record, in dataset order.
func XLabels(ds dataset.Dataset, acc dataset.Accessor, f Formatter) []string {
	labels := make([]string, len(ds))
	for i, r := range ds {
		labels[i] = f.Apply(acc.X(r).String())
	}
	return labels
}

// XTicks returns the X axis tick anchors on the baseline. Anchored scales
// put ticks on gap boundaries, bucketed scales at bucket centers.
func XTicks(s scale.Scale) []Tick {
	ticks := make([]Tick, s.N)
	for i := range ticks {
		ticks[i] = Tick{Index: i, X: s.X(i), Y: s.Baseline()}
	}
	return ticks
}

// YTicks returns the Y axis tick anchors on the left plot edge, bottom to
// top.
func YTicks(s scale.Scale) []Tick {
	ticks := make([]Tick, s.N)
	for i := range ticks {
		ticks[i] = Tick{Index: i, X: s.Margin, Y: s.YTick(i)}
	}
	return ticks
}
