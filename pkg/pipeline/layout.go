package pipeline

import (
	"github.com/matzehuels/stackchart/pkg/dataset"
	"github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/render/chart"
	"github.com/matzehuels/stackchart/pkg/render/chart/model"
)

// Layout computes the render model of ds. In strict mode every record
// must carry both keys and a numeric Y value; otherwise missing or
// non-numeric values are laid out as zero.
func Layout(ds dataset.Dataset, opts Options) (model.Model, error) {
	cfg, err := prepare(ds, &opts)
	if err != nil {
		return model.Model{}, err
	}
	switch opts.Kind {
	case KindBar:
		return chart.Bar(ds, opts.Keys(), cfg).Model, nil
	default:
		return chart.Line(ds, opts.Keys(), cfg).Model, nil
	}
}

// LineChart lays out ds as a line chart and keeps the point positions and
// press callback that [Layout] discards.
func LineChart(ds dataset.Dataset, opts Options) (chart.LineChart, error) {
	opts.Kind = KindLine
	cfg, err := prepare(ds, &opts)
	if err != nil {
		return chart.LineChart{}, err
	}
	return chart.Line(ds, opts.Keys(), cfg), nil
}

// prepare validates opts against ds and resolves the chart configuration.
func prepare(ds dataset.Dataset, opts *Options) (chart.Config, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return chart.Config{}, err
	}
	if opts.Strict {
		keys := opts.Keys()
		if err := ds.CheckKeys(keys); err != nil {
			return chart.Config{}, err
		}
		if err := ds.CheckNumeric(keys); err != nil {
			return chart.Config{}, err
		}
	}
	cfg := opts.ChartConfig()
	if err := errors.ValidateDimensions(cfg.Width, cfg.Height, cfg.Margin); err != nil {
		return chart.Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "chart config")
	}
	return cfg, nil
}
