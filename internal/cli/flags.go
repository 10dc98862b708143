package cli

import (
	"github.com/spf13/pflag"

	"github.com/matzehuels/stackchart/pkg/config"
	"github.com/matzehuels/stackchart/pkg/pipeline"
)

// chartFlags holds the layout flags shared by render, layout and inspect.
// Only flags set on the command line override the configuration file.
type chartFlags struct {
	kind    string
	xKey    string
	yKey    string
	width   float64
	height  float64
	margin  float64
	strict  bool
	sheet   string
	noCache bool
}

func (f *chartFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.kind, "kind", "k", pipeline.DefaultKind, "chart kind: line, bar")
	fs.StringVarP(&f.xKey, "x-key", "x", "", "record field plotted on the X axis")
	fs.StringVarP(&f.yKey, "y-key", "y", "", "record field plotted on the Y axis")
	fs.Float64Var(&f.width, "width", pipeline.DefaultWidth, "container width")
	fs.Float64Var(&f.height, "height", pipeline.DefaultHeight, "container height")
	fs.Float64Var(&f.margin, "margin", 0, "plot margin (default: 20 for line, 50 for bar)")
	fs.BoolVar(&f.strict, "strict", false, "reject records with missing fields or non-numeric values")
	fs.StringVar(&f.sheet, "sheet", "", "worksheet of an Excel dataset (default: first sheet)")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable caching")
}

// apply overlays the flags that were set on opts.
func (f *chartFlags) apply(fs *pflag.FlagSet, opts *pipeline.Options) {
	if fs.Changed("kind") || opts.Kind == "" {
		opts.Kind = f.kind
	}
	if fs.Changed("x-key") {
		opts.XKey = f.xKey
	}
	if fs.Changed("y-key") {
		opts.YKey = f.yKey
	}
	if fs.Changed("width") {
		opts.Width = f.width
	}
	if fs.Changed("height") {
		opts.Height = f.height
	}
	if fs.Changed("margin") {
		opts.Margin = f.margin
	}
	if fs.Changed("strict") {
		opts.Strict = f.strict
	}
}

// options merges the configuration file and the flags.
func (f *chartFlags) options(fs *pflag.FlagSet, cfg *config.File) (pipeline.Options, error) {
	opts, err := cfg.PipelineOptions()
	if err != nil {
		return pipeline.Options{}, err
	}
	f.apply(fs, &opts)
	return opts, nil
}
