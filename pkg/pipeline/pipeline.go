// Package pipeline provides the chart pipeline shared by the CLI and the
// HTTP server.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read a dataset from a JSON, CSV, TSV or Excel file
//  2. Layout: Compute the render model of a line or bar chart
//  3. Render: Paint the model in various formats (SVG, PNG, PDF, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
// Loaded datasets and rendered artifacts are cached; layout is cheap and
// always recomputed.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	ds, _, err := runner.LoadDataset(ctx, "sales.csv", "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	opts := pipeline.Options{
//	    Kind:    "line",
//	    XKey:    "month",
//	    YKey:    "sales",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, ds, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/stackchart/pkg/cache"
	"github.com/matzehuels/stackchart/pkg/dataset"
	"github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/render/chart"
	"github.com/matzehuels/stackchart/pkg/render/chart/model"
	"github.com/matzehuels/stackchart/pkg/render/chart/sink"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultWidth is the default container width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default container height in pixels.
	DefaultHeight = chart.DefaultHeight

	// DefaultScale is the default PNG pixel density.
	DefaultScale = 2.0

	// MaxScale is the largest accepted PNG pixel density.
	MaxScale = 8.0

	// DefaultKind is the default chart kind.
	DefaultKind = KindLine
)

// Chart kinds.
const (
	KindLine = "line"
	KindBar  = "bar"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the chart pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Kind   string  `json:"kind"`
	XKey   string  `json:"x_key"`
	YKey   string  `json:"y_key"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Margin float64 `json:"margin,omitempty"` // 0 selects the kind's default
	Strict bool    `json:"strict,omitempty"` // reject missing fields and non-numeric values

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Scale       float64  `json:"scale,omitempty"` // PNG only
	Title       string   `json:"title,omitempty"` // PDF only
	Interactive bool     `json:"interactive,omitempty"`

	// Runtime options (not serialized)
	Font      []byte              `json:"-"` // font file for text, see fonts.Load
	Customize func(*chart.Config) `json:"-"` // applied to the kind's defaults
	Logger    *log.Logger         `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ID identifies this run in logs and responses.
	ID uuid.UUID

	// DatasetHash is the content hash of the canonical dataset.
	DatasetHash string

	// Model is the laid out chart.
	Model model.Model

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Records    int
	Primitives int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Kind == "" {
		o.Kind = DefaultKind
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Margin == 0 {
		o.Margin = defaultMargin(o.Kind)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := errors.ValidateKind(o.Kind); err != nil {
		return err
	}
	if err := o.Keys().Validate(); err != nil {
		return err
	}
	return errors.ValidateDimensions(o.Width, o.Height, o.Margin)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if o.Scale < 0 || o.Scale > MaxScale {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be in (0, %g] (got %g)", MaxScale, o.Scale)
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if slices.Contains(o.Formats, FormatPNG) {
		if px := o.Width * o.Height * o.Scale * o.Scale; px > sink.MaxPNGPixels {
			return errors.New(errors.ErrCodeInvalidDimensions,
				"png of %gx%g at scale %g exceeds %d pixels", o.Width, o.Height, o.Scale, sink.MaxPNGPixels)
		}
	}
	return nil
}

// Keys returns the field accessor for the configured keys.
func (o *Options) Keys() dataset.Keys {
	return dataset.Keys{XKey: o.XKey, YKey: o.YKey}
}

// ChartConfig returns the complete chart configuration: the defaults of
// the chart kind, sized by the options, then passed through Customize.
func (o *Options) ChartConfig() chart.Config {
	o.SetLayoutDefaults()
	var cfg chart.Config
	if o.Kind == KindBar {
		cfg = chart.BarDefaults(o.Width)
	} else {
		cfg = chart.LineDefaults(o.Width)
	}
	cfg.Height = o.Height
	cfg.Margin = o.Margin
	if o.Customize != nil {
		o.Customize(&cfg)
	}
	return cfg
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format}
	if len(o.Font) > 0 {
		opts.FontHash = cache.Hash(o.Font)
	}
	switch format {
	case FormatPNG:
		opts.Scale = o.Scale
	case FormatSVG:
		opts.Interactive = o.Interactive
	case FormatPDF:
		opts.Title = o.Title
	}
	return opts
}

func defaultMargin(kind string) float64 {
	if kind == KindBar {
		return chart.DefaultBarMargin
	}
	return chart.DefaultLineMargin
}
