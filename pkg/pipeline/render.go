package pipeline

import (
	"fmt"

	"github.com/matzehuels/stackchart/pkg/dataset"
	"github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/render/chart/model"
	"github.com/matzehuels/stackchart/pkg/render/chart/sink"
)

// Render generates output artifacts in the requested formats. The JSON
// artifact carries ds so bound primitives resolve to their records.
func Render(m model.Model, ds dataset.Dataset, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(m, buildSVGOptions(opts)...)
		case FormatPNG:
			data, err = sink.RenderPNG(m, sink.WithPNGFont(opts.Font), sink.WithScale(opts.Scale))
		case FormatPDF:
			data, err = sink.RenderPDF(m, sink.WithPDFFont(opts.Font), sink.WithPDFTitle(pdfTitle(m, opts)))
		case FormatJSON:
			data, err = sink.RenderJSON(m, sink.WithJSONRecords(ds))
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// buildSVGOptions builds SVG rendering options.
func buildSVGOptions(opts Options) []sink.SVGOption {
	var svgOpts []sink.SVGOption
	if len(opts.Font) > 0 {
		svgOpts = append(svgOpts, sink.WithEmbeddedFont(opts.Font))
	}
	if opts.Interactive {
		svgOpts = append(svgOpts, sink.WithInteraction())
	}
	return svgOpts
}

func pdfTitle(m model.Model, opts Options) string {
	if opts.Title != "" {
		return opts.Title
	}
	return m.Kind + " chart"
}
