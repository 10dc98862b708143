// Package path builds the polyline and smoothed-curve outlines of line
// charts.
//
// A [Path] is a list of structured drawing commands. [Path.String] renders
// it as SVG path data; sinks that paint through other backends walk
// [Path.Commands] directly.
//
// Smoothing uses two quadratic Béziers per segment. For a segment from
// prev to curr with dx = (curr.X-prev.X)/4 and dy = (curr.Y-prev.Y)/2:
//
//	Q (prev.X+dx, prev.Y)    (prev.X+2dx, prev.Y+dy)
//	Q (prev.X+3dx, prev.Y+2dy) (curr.X, curr.Y)
//
// The curve leaves each point horizontally and passes through the
// midpoint of every segment.
package path

import (
	"math"
	"strconv"
	"strings"
)

// Point is a pixel coordinate.
type Point struct {
	X, Y float64
}

// Op is a drawing operation.
type Op byte

// Supported drawing operations, named by their SVG letters.
const (
	MoveTo Op = 'M'
	LineTo Op = 'L'
	QuadTo Op = 'Q'
	Close  Op = 'Z'
)

func (o Op) String() string { return string(o) }

// Command is one drawing step. Ctrl is used by QuadTo only; To is unused
// by Close.
type Command struct {
	Op   Op
	Ctrl Point
	To   Point
}

// Path is an ordered list of drawing commands.
type Path struct {
	Commands []Command
}

// Build returns the outline through points. With curve set, consecutive
// points are joined by two quadratic segments each; otherwise by straight
// lines. No points yield an empty path.
func Build(points []Point, curve bool) Path {
	if len(points) == 0 {
		return Path{}
	}

	size := len(points)
	if curve {
		size = 1 + 2*(len(points)-1)
	}
	cmds := make([]Command, 0, size)
	cmds = append(cmds, Command{Op: MoveTo, To: points[0]})

	for i := 1; i < len(points); i++ {
		prev, curr := points[i-1], points[i]
		if !curve {
			cmds = append(cmds, Command{Op: LineTo, To: curr})
			continue
		}
		dx := (curr.X - prev.X) / 4
		dy := (curr.Y - prev.Y) / 2
		cmds = append(cmds,
			Command{
				Op:   QuadTo,
				Ctrl: Point{prev.X + dx, prev.Y},
				To:   Point{prev.X + 2*dx, prev.Y + dy},
			},
			Command{
				Op:   QuadTo,
				Ctrl: Point{prev.X + 3*dx, prev.Y + 2*dy},
				To:   curr,
			},
		)
	}
	return Path{Commands: cmds}
}

// Empty reports whether the path has no commands.
func (p Path) Empty() bool { return len(p.Commands) == 0 }

// Count returns how many commands use op.
func (p Path) Count(op Op) int {
	n := 0
	for _, c := range p.Commands {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Start returns the first point of the path.
func (p Path) Start() (Point, bool) {
	if p.Empty() {
		return Point{}, false
	}
	return p.Commands[0].To, true
}

// End returns the last drawn point of the path.
func (p Path) End() (Point, bool) {
	for i := len(p.Commands) - 1; i >= 0; i-- {
		if p.Commands[i].Op != Close {
			return p.Commands[i].To, true
		}
	}
	return Point{}, false
}

// Shadow closes the path down to baseline, producing the filled area
// under the line: the original commands, then a line straight down from
// the last point, across the baseline to below the first point, and a
// close.
func (p Path) Shadow(baseline float64) Path {
	first, ok := p.Start()
	if !ok {
		return Path{}
	}
	last, _ := p.End()

	cmds := make([]Command, len(p.Commands), len(p.Commands)+3)
	copy(cmds, p.Commands)
	cmds = append(cmds,
		Command{Op: LineTo, To: Point{last.X, baseline}},
		Command{Op: LineTo, To: Point{first.X, baseline}},
		Command{Op: Close},
	)
	return Path{Commands: cmds}
}

// String renders the path as SVG path data, e.g. "M50,250 L450,150".
// Coordinates are rounded to two decimals.
func (p Path) String() string {
	var b strings.Builder
	for i, c := range p.Commands {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(byte(c.Op))
		switch c.Op {
		case MoveTo, LineTo:
			writePoint(&b, c.To)
		case QuadTo:
			writePoint(&b, c.Ctrl)
			b.WriteByte(' ')
			writePoint(&b, c.To)
		}
	}
	return b.String()
}

func writePoint(b *strings.Builder, p Point) {
	b.WriteString(FormatNumber(p.X))
	b.WriteByte(',')
	b.WriteString(FormatNumber(p.Y))
}

// FormatNumber formats v rounded to two decimals without trailing zeros.
func FormatNumber(v float64) string {
	r := math.Round(v*100) / 100
	if r == 0 {
		r = 0 // drop negative zero
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
