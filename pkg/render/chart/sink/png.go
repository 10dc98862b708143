package sink

import (
	"bytes"
	"image/png"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/render/chart/model"
)

// MaxPNGPixels bounds the size of a rasterized image, in output pixels
// after scaling.
const MaxPNGPixels = 1 << 25

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	font  []byte
	scale float64
}

// WithPNGFont sets the font file used for text (see [fonts.Load]).
//
// [fonts.Load]: github.com/matzehuels/stackchart/pkg/fonts.Load
func WithPNGFont(data []byte) PNGOption { return func(r *pngRenderer) { r.font = data } }

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// RenderPNG rasterizes the model. The image is Width×Height chart pixels
// times the scale factor.
func RenderPNG(m model.Model, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "png scale must be positive")
	}
	if px := m.Width * m.Height * r.scale * r.scale; px > MaxPNGPixels {
		return nil, errors.New(errors.ErrCodeInvalidDimensions,
			"png of %gx%g at scale %g exceeds %d pixels", m.Width, m.Height, r.scale, MaxPNGPixels)
	}

	p := painter{font: r.font}
	c, err := p.newCanvas(m)
	if err != nil {
		return nil, err
	}

	img := rasterizer.Draw(c, canvas.DPMM(r.scale/pxToMM), canvas.DefaultColorSpace)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}
