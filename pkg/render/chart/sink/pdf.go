package sink

import (
	"bytes"

	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/render/chart/model"
)

// PDFOption configures PDF rendering.
type PDFOption func(*pdfRenderer)

type pdfRenderer struct {
	font  []byte
	title string
}

// WithPDFFont sets the font file used for text (see [fonts.Load]).
//
// [fonts.Load]: github.com/matzehuels/stackchart/pkg/fonts.Load
func WithPDFFont(data []byte) PDFOption { return func(r *pdfRenderer) { r.font = data } }

// WithPDFTitle sets the document title metadata.
func WithPDFTitle(title string) PDFOption { return func(r *pdfRenderer) { r.title = title } }

// RenderPDF paints the model as a single-page vector PDF sized to the
// chart.
func RenderPDF(m model.Model, opts ...PDFOption) ([]byte, error) {
	r := pdfRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	p := painter{font: r.font}
	c, err := p.newCanvas(m)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := pdf.New(&buf, c.W, c.H, nil)
	writer.SetInfo(r.title, "", "", "", "stackchart")
	c.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "write pdf")
	}
	return buf.Bytes(), nil
}
