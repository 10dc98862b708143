package config

import (
	"github.com/matzehuels/stackchart/pkg/render/chart"
	"github.com/matzehuels/stackchart/pkg/render/chart/model"
)

// Style overrides individual chart styling knobs. Nil fields keep the
// default of the chart kind.
type Style struct {
	// Toggles
	Background *bool `toml:"background" json:"background,omitempty"`
	Axes       *bool `toml:"axes" json:"axes,omitempty"`
	Grid       *bool `toml:"grid" json:"grid,omitempty"`
	Ticks      *bool `toml:"ticks" json:"ticks,omitempty"`
	Labels     *bool `toml:"labels" json:"labels,omitempty"`
	Line       *bool `toml:"line" json:"line,omitempty"`
	Curve      *bool `toml:"curve" json:"curve,omitempty"`
	Shadow     *bool `toml:"shadow" json:"shadow,omitempty"`
	Points     *bool `toml:"points" json:"points,omitempty"`
	Tooltips   *bool `toml:"tooltips" json:"tooltips,omitempty"`
	Bars       *bool `toml:"bars" json:"bars,omitempty"`
	ThreeD     *bool `toml:"three_d" json:"three_d,omitempty"`

	// Colors and sizes
	AxisColor        *string  `toml:"axis_color" json:"axis_color,omitempty"`
	LabelColor       *string  `toml:"label_color" json:"label_color,omitempty"`
	LabelSize        *float64 `toml:"label_size" json:"label_size,omitempty"`
	YLabelRotation   *float64 `toml:"y_label_rotation" json:"y_label_rotation,omitempty"`
	XLabelRotation   *float64 `toml:"x_label_rotation" json:"x_label_rotation,omitempty"`
	LineColor        *string  `toml:"line_color" json:"line_color,omitempty"`
	LineWidth        *float64 `toml:"line_width" json:"line_width,omitempty"`
	PointFill        *string  `toml:"point_fill" json:"point_fill,omitempty"`
	PointRadius      *float64 `toml:"point_radius" json:"point_radius,omitempty"`
	TooltipFill      *string  `toml:"tooltip_fill" json:"tooltip_fill,omitempty"`
	TooltipTextColor *string  `toml:"tooltip_text_color" json:"tooltip_text_color,omitempty"`
	BarWidth         *float64 `toml:"bar_width" json:"bar_width,omitempty"`
	BarFill          *string  `toml:"bar_fill" json:"bar_fill,omitempty"`
	BarColor         *string  `toml:"bar_color" json:"bar_color,omitempty"`
	BarOpacity       *float64 `toml:"bar_opacity" json:"bar_opacity,omitempty"`
	Depth            *float64 `toml:"depth" json:"depth,omitempty"`
	CornerRadius     *float64 `toml:"corner_radius" json:"corner_radius,omitempty"`

	// Gradients
	BackgroundStart *model.Stop `toml:"background_start" json:"background_start,omitempty"`
	BackgroundEnd   *model.Stop `toml:"background_end" json:"background_end,omitempty"`
	ShadowStart     *model.Stop `toml:"shadow_start" json:"shadow_start,omitempty"`
	ShadowEnd       *model.Stop `toml:"shadow_end" json:"shadow_end,omitempty"`
}

// Apply writes every set field into cfg.
func (s Style) Apply(cfg *chart.Config) {
	set(&cfg.Background.Show, s.Background)
	set(&cfg.Axes.Show, s.Axes)
	if s.Grid != nil {
		cfg.Grid.Horizontal, cfg.Grid.Vertical = *s.Grid, *s.Grid
	}
	if s.Ticks != nil {
		cfg.Ticks.X, cfg.Ticks.Y = *s.Ticks, *s.Ticks
	}
	if s.Labels != nil {
		cfg.XLabels.Show, cfg.YLabels.Show = *s.Labels, *s.Labels
	}
	set(&cfg.Line.Show, s.Line)
	set(&cfg.Line.Curve, s.Curve)
	set(&cfg.Shadow.Show, s.Shadow)
	set(&cfg.Points.Show, s.Points)
	set(&cfg.Tooltip.Show, s.Tooltips)
	set(&cfg.Bars.Show, s.Bars)
	set(&cfg.ThreeD.Show, s.ThreeD)

	if s.AxisColor != nil {
		cfg.Axes.Color, cfg.Axes.MarkerFill, cfg.Axes.MarkerStroke = *s.AxisColor, *s.AxisColor, *s.AxisColor
	}
	if s.LabelColor != nil {
		cfg.XLabels.Fill, cfg.YLabels.Fill = *s.LabelColor, *s.LabelColor
	}
	if s.LabelSize != nil {
		cfg.XLabels.FontSize, cfg.YLabels.FontSize = *s.LabelSize, *s.LabelSize
	}
	set(&cfg.XLabels.Rotation, s.XLabelRotation)
	set(&cfg.YLabels.Rotation, s.YLabelRotation)
	if s.LineColor != nil {
		cfg.Line.Stroke, cfg.Points.Stroke = *s.LineColor, *s.LineColor
	}
	set(&cfg.Line.StrokeWidth, s.LineWidth)
	set(&cfg.Points.Fill, s.PointFill)
	set(&cfg.Points.Radius, s.PointRadius)
	set(&cfg.Tooltip.Fill, s.TooltipFill)
	set(&cfg.Tooltip.TextFill, s.TooltipTextColor)
	set(&cfg.Bars.Width, s.BarWidth)
	set(&cfg.Bars.Fill, s.BarFill)
	set(&cfg.Bars.Color, s.BarColor)
	set(&cfg.Bars.Opacity, s.BarOpacity)
	set(&cfg.ThreeD.Depth, s.Depth)
	set(&cfg.Background.Radius, s.CornerRadius)

	set(&cfg.Background.Start, s.BackgroundStart)
	set(&cfg.Background.End, s.BackgroundEnd)
	set(&cfg.Shadow.Start, s.ShadowStart)
	set(&cfg.Shadow.End, s.ShadowEnd)
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
