package chart

import (
	"github.com/matzehuels/stackchart/pkg/dataset"
	"github.com/matzehuels/stackchart/pkg/render/chart/axis"
	"github.com/matzehuels/stackchart/pkg/render/chart/model"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultHeight is the container height in pixels.
	DefaultHeight = 300.0

	// DefaultLineMargin is the plot inset of line charts.
	DefaultLineMargin = 20.0

	// DefaultBarMargin is the plot inset of bar charts.
	DefaultBarMargin = 50.0

	// DefaultTickLength is the length of axis tick marks.
	DefaultTickLength = 10.0
)

// yLabelGap separates Y labels from the end of their tick.
const yLabelGap = 3.0

// Formatter turns a raw label string into its displayed form.
type Formatter = axis.Formatter

// =============================================================================
// Configuration
// =============================================================================

// Config is the complete configuration of one chart. Start from
// [LineDefaults] or [BarDefaults] and change what you need; the assemblers
// use every field as given and never substitute defaults.
type Config struct {
	Width  float64
	Height float64
	Margin float64

	XFormatter       Formatter // X axis labels
	YFormatter       Formatter // Y axis labels
	TooltipFormatter Formatter // line tooltips

	// OnPointPress receives the record behind a pressed line point.
	// See [LineChart.Press].
	OnPointPress func(index int, r dataset.Record)

	// YLabelMemo, when set, serves Y labels from a memo keyed by MemoKey.
	YLabelMemo *axis.Memo
	MemoKey    string

	Background Background
	Axes       Axes
	Grid       Grid
	Ticks      Ticks
	XLabels    AxisLabel
	YLabels    AxisLabel

	// Line engine only.
	Line    LineStyle
	Shadow  Shadow
	Points  Points
	Tooltip Tooltip

	// Bar engine only.
	Bars   BarStyle
	ThreeD ThreeD
}

// Background is the rounded container rectangle behind the plot.
type Background struct {
	Show   bool
	Radius float64
	Start  model.Stop
	End    model.Stop
}

// Axes styles the axis lines and their round endpoint markers.
type Axes struct {
	Show          bool
	Color         string // axis lines, ticks and gridlines
	StrokeWidth   float64
	MarkerRadius  float64
	MarkerFill    string
	MarkerStroke  string
	MarkerOpacity float64
}

// Grid toggles the gridlines drawn through every tick.
type Grid struct {
	Horizontal        bool
	Vertical          bool
	HorizontalOpacity float64
	VerticalOpacity   float64
}

// Ticks toggles the axis tick marks.
type Ticks struct {
	X      bool
	Y      bool
	Length float64
}

// AxisLabel styles the labels of one axis. Offsets shift every label;
// a positive OffsetX moves line chart X labels right and bar chart X
// labels left.
type AxisLabel struct {
	Show       bool
	FontSize   float64
	Anchor     string
	Fill       string
	FontWeight string
	Rotation   float64
	OffsetX    float64
	OffsetY    float64
}

// LineStyle styles the data line.
type LineStyle struct {
	Show        bool
	Curve       bool
	Stroke      string
	StrokeWidth float64
}

// Shadow is the gradient-filled area under the line.
type Shadow struct {
	Show  bool
	Start model.Stop
	End   model.Stop
}

// Points styles the circular markers on every data point.
type Points struct {
	Show        bool
	Radius      float64
	Fill        string
	Stroke      string
	StrokeWidth float64
}

// Tooltip styles the value callouts above data points.
type Tooltip struct {
	Show             bool
	Width            float64
	Height           float64
	Radius           float64
	Fill             string
	TextFill         string
	FontSize         float64
	FontWeight       string
	Anchor           string
	ConnectorOpacity float64
}

// BarStyle styles the bar rectangles. An empty Fill leaves bars hollow.
type BarStyle struct {
	Show        bool
	Width       float64
	Color       string // outline and 3D edges
	Fill        string
	Opacity     float64
	StrokeWidth float64
}

// ThreeD toggles the receding wireframe drawn behind each bar.
type ThreeD struct {
	Show        bool
	Depth       float64
	StrokeWidth float64
}

// LineDefaults returns the default line chart configuration for a
// container of the given width.
func LineDefaults(width float64) Config {
	cfg := shared(width)
	cfg.Margin = DefaultLineMargin
	return cfg
}

// BarDefaults returns the default bar chart configuration for a container
// of the given width.
func BarDefaults(width float64) Config {
	cfg := shared(width)
	cfg.Margin = DefaultBarMargin
	return cfg
}

func shared(width float64) Config {
	label := AxisLabel{
		Show:       true,
		FontSize:   12,
		Fill:       "#fff",
		FontWeight: "400",
	}
	xLabels, yLabels := label, label
	xLabels.Anchor = "middle"
	yLabels.Anchor = "end"

	return Config{
		Width:  width,
		Height: DefaultHeight,
		Background: Background{
			Show:   true,
			Radius: 20,
			Start:  model.Stop{Offset: 0, Color: "#6491d9", Opacity: 0.3},
			End:    model.Stop{Offset: 1, Color: "#35578f", Opacity: 0.8},
		},
		Axes: Axes{
			Show:          true,
			Color:         "#fff",
			StrokeWidth:   2,
			MarkerRadius:  5,
			MarkerFill:    "#fff",
			MarkerStroke:  "#fff",
			MarkerOpacity: 0.8,
		},
		Grid: Grid{
			Horizontal:        true,
			Vertical:          true,
			HorizontalOpacity: 0.3,
			VerticalOpacity:   0.3,
		},
		Ticks:   Ticks{X: true, Y: true, Length: DefaultTickLength},
		XLabels: xLabels,
		YLabels: yLabels,
		Line: LineStyle{
			Show:        true,
			Curve:       true,
			Stroke:      "#fff",
			StrokeWidth: 2,
		},
		Shadow: Shadow{
			Show:  true,
			Start: model.Stop{Offset: 0, Color: "#6831ee", Opacity: 0.8},
			End:   model.Stop{Offset: 1, Color: "#35578f", Opacity: 0.2},
		},
		Points: Points{
			Show:        true,
			Radius:      5,
			Fill:        "#0000ff",
			Stroke:      "#fff",
			StrokeWidth: 1,
		},
		Tooltip: Tooltip{
			Show:             true,
			Width:            60,
			Height:           20,
			Radius:           7,
			Fill:             "#fff",
			TextFill:         "#000",
			FontSize:         12,
			FontWeight:       "bold",
			Anchor:           "middle",
			ConnectorOpacity: 0.6,
		},
		Bars: BarStyle{
			Show:        true,
			Width:       20,
			Color:       "#d69e9e",
			Opacity:     0.8,
			StrokeWidth: 2,
		},
		ThreeD: ThreeD{
			Show:        true,
			Depth:       10,
			StrokeWidth: 1,
		},
	}
}
