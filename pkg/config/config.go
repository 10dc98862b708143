// Package config loads stackchart configuration files.
//
// A configuration file is TOML with four optional sections:
//
//	[chart]
//	kind = "bar"
//	x_key = "month"
//	y_key = "sales"
//	width = 640
//
//	[output]
//	formats = ["svg", "png"]
//	font = "fonts/Inter.ttf"
//
//	[format]
//	y = 'compact(1) | prefix("$")'
//	tooltip = 'thousands()'
//
//	[style]
//	curve = false
//	line_color = "#ffd166"
//	background_start = { offset = 0, color = "#1d3557", opacity = 1 }
//
//	[cache]
//	backend = "redis"
//	url = "redis://localhost:6379/0"
//
// Style keys override single fields of the chart kind's defaults; keys
// left out keep their default. Command-line flags override the file.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/stackchart/pkg/cache"
	"github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/fonts"
	"github.com/matzehuels/stackchart/pkg/format"
	"github.com/matzehuels/stackchart/pkg/pipeline"
	"github.com/matzehuels/stackchart/pkg/render/chart"
	"github.com/matzehuels/stackchart/pkg/render/chart/axis"
)

// File is a decoded configuration file.
type File struct {
	Chart  Chart        `toml:"chart" json:"chart"`
	Output Output       `toml:"output" json:"output"`
	Format Format       `toml:"format" json:"format"`
	Style  Style        `toml:"style" json:"style"`
	Cache  cache.Config `toml:"cache" json:"cache"`
}

// Chart selects the chart kind, its fields and its container.
type Chart struct {
	Kind   string  `toml:"kind" json:"kind,omitempty"`
	XKey   string  `toml:"x_key" json:"x_key,omitempty"`
	YKey   string  `toml:"y_key" json:"y_key,omitempty"`
	Width  float64 `toml:"width" json:"width,omitempty"`
	Height float64 `toml:"height" json:"height,omitempty"`
	Margin float64 `toml:"margin" json:"margin,omitempty"`
	Strict bool    `toml:"strict" json:"strict,omitempty"`
}

// Output configures the rendered artifacts.
type Output struct {
	Formats     []string `toml:"formats" json:"formats,omitempty"`
	Scale       float64  `toml:"scale" json:"scale,omitempty"`
	Title       string   `toml:"title" json:"title,omitempty"`
	Interactive bool     `toml:"interactive" json:"interactive,omitempty"`
	Font        string   `toml:"font" json:"font,omitempty"`
}

// Format holds formatter expressions, see package format.
type Format struct {
	X       string `toml:"x" json:"x,omitempty"`
	Y       string `toml:"y" json:"y,omitempty"`
	Tooltip string `toml:"tooltip" json:"tooltip,omitempty"`
}

// Load reads and decodes the configuration file at path. Unknown keys
// are rejected so that typos do not silently fall back to defaults.
func Load(path string) (*File, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	var f File
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode %s", path)
	}
	if err := checkUndecoded(md); err != nil {
		return nil, err
	}
	return &f, nil
}

// Parse decodes configuration from TOML text.
func Parse(data string) (*File, error) {
	var f File
	md, err := toml.Decode(data, &f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if err := checkUndecoded(md); err != nil {
		return nil, err
	}
	return &f, nil
}

func checkUndecoded(md toml.MetaData) error {
	if keys := md.Undecoded(); len(keys) > 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", keys[0].String())
	}
	return nil
}

// Formatters compiles the three formatter expressions.
func (f Format) Formatters() (x, y, tooltip axis.Formatter, err error) {
	fns := make([]axis.Formatter, 3)
	for i, src := range []string{f.X, f.Y, f.Tooltip} {
		fn, err := format.Compile(src)
		if err != nil {
			return nil, nil, nil, err
		}
		fns[i] = fn
	}
	return fns[0], fns[1], fns[2], nil
}

// Customizer compiles the formatters and returns a function that applies
// them and the style overrides to a chart configuration.
func Customizer(f Format, s Style) (func(*chart.Config), error) {
	x, y, tooltip, err := f.Formatters()
	if err != nil {
		return nil, err
	}
	return func(cfg *chart.Config) {
		cfg.XFormatter = x
		cfg.YFormatter = y
		cfg.TooltipFormatter = tooltip
		s.Apply(cfg)
	}, nil
}

// PipelineOptions converts the file into pipeline options. The font file,
// if any, is read here.
func (f *File) PipelineOptions() (pipeline.Options, error) {
	customize, err := Customizer(f.Format, f.Style)
	if err != nil {
		return pipeline.Options{}, err
	}
	opts := pipeline.Options{
		Kind:        f.Chart.Kind,
		XKey:        f.Chart.XKey,
		YKey:        f.Chart.YKey,
		Width:       f.Chart.Width,
		Height:      f.Chart.Height,
		Margin:      f.Chart.Margin,
		Strict:      f.Chart.Strict,
		Formats:     f.Output.Formats,
		Scale:       f.Output.Scale,
		Title:       f.Output.Title,
		Interactive: f.Output.Interactive,
		Customize:   customize,
	}
	if f.Output.Font != "" {
		data, err := fonts.Load(f.Output.Font)
		if err != nil {
			return pipeline.Options{}, err
		}
		opts.Font = data
	}
	return opts, nil
}

// ChartConfig returns the complete chart configuration described by the
// file.
func (f *File) ChartConfig() (chart.Config, error) {
	opts, err := f.PipelineOptions()
	if err != nil {
		return chart.Config{}, err
	}
	return opts.ChartConfig(), nil
}
