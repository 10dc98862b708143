package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/matzehuels/stackchart/pkg/fonts"
	"github.com/matzehuels/stackchart/pkg/render/chart/model"
	"github.com/matzehuels/stackchart/pkg/render/chart/path"
)

const pointInteractionCSS = `
    .tooltips { visibility: hidden; }
    .tooltips.active { visibility: visible; }
    .points, .bars { cursor: pointer; }`

// Hovering a bound mark reveals the tooltip of the same record; pressing
// it dispatches a "chartpress" event carrying the record index.
const pointInteractionJS = `
    function marks(i) { return document.querySelectorAll('[data-index="' + i + '"]'); }
    document.querySelectorAll('.points, .bars').forEach(el => {
      const i = el.dataset.index;
      el.addEventListener('mouseenter', () => marks(i).forEach(m => m.classList.add('active')));
      el.addEventListener('mouseleave', () => marks(i).forEach(m => m.classList.remove('active')));
      el.addEventListener('click', () => el.ownerSVGElement.dispatchEvent(
        new CustomEvent('chartpress', { detail: { index: Number(i) }, bubbles: true })));
    });`

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	fontFamily  string
	font        []byte
	interactive bool
}

// WithFontFamily sets the CSS font stack of all text.
func WithFontFamily(f string) SVGOption { return func(r *svgRenderer) { r.fontFamily = f } }

// WithEmbeddedFont embeds a font file (see [fonts.Load]) and uses it for
// all text, so the output renders the same on every viewer.
func WithEmbeddedFont(data []byte) SVGOption { return func(r *svgRenderer) { r.font = data } }

// WithInteraction hides tooltips until their point is hovered and emits
// a "chartpress" DOM event when a point or bar is clicked.
func WithInteraction() SVGOption { return func(r *svgRenderer) { r.interactive = true } }

// RenderSVG paints the model as a standalone SVG document. Primitives are
// written in model order; each element is classed with its layer and
// record-bound elements carry a data-index attribute.
func RenderSVG(m model.Model, opts ...SVGOption) []byte {
	r := svgRenderer{fontFamily: fonts.FallbackFontFamily}
	for _, opt := range opts {
		opt(&r)
	}
	if len(r.font) > 0 {
		r.fontFamily = fmt.Sprintf("'%s', %s", fonts.EmbeddedFontFamily, r.fontFamily)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s" class="chart chart-%s">`+"\n",
		num(m.Width), num(m.Height), num(m.Width), num(m.Height), escape(m.Kind))

	renderDefs(&buf, m)
	renderStyle(&buf, r)
	for _, p := range m.Primitives {
		renderPrimitive(&buf, p)
	}
	if r.interactive {
		fmt.Fprintf(&buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", pointInteractionJS)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderDefs(buf *bytes.Buffer, m model.Model) {
	gs := m.Gradients()
	if len(gs) == 0 {
		return
	}
	buf.WriteString("  <defs>\n")
	for _, g := range gs {
		fmt.Fprintf(buf, `    <linearGradient id="%s" x1="0" y1="0" x2="0" y2="%s" gradientUnits="userSpaceOnUse">`+"\n",
			escape(g.ID), num(m.Height))
		for _, s := range []model.Stop{g.Start, g.End} {
			fmt.Fprintf(buf, `      <stop offset="%s" stop-color="%s" stop-opacity="%s"/>`+"\n",
				num(s.Offset), escape(s.Color), num(s.Opacity))
		}
		buf.WriteString("    </linearGradient>\n")
	}
	buf.WriteString("  </defs>\n")
}

func renderStyle(buf *bytes.Buffer, r svgRenderer) {
	buf.WriteString("  <style>\n")
	if len(r.font) > 0 {
		fmt.Fprintf(buf, "    %s\n", fonts.FontFace(r.font))
	}
	fmt.Fprintf(buf, "    text { font-family: %s; }", r.fontFamily)
	if r.interactive {
		buf.WriteString(pointInteractionCSS)
	}
	buf.WriteString("\n  </style>\n")
}

func renderPrimitive(buf *bytes.Buffer, p model.Primitive) {
	attrs := commonAttrs(p)
	switch p.Kind() {
	case model.KindRect:
		r := p.Rect
		fmt.Fprintf(buf, `  <rect%s x="%s" y="%s" width="%s" height="%s"`, attrs, num(r.X), num(r.Y), num(r.W), num(r.H))
		if r.RX > 0 {
			fmt.Fprintf(buf, ` rx="%s"`, num(r.RX))
		}
		fmt.Fprintf(buf, "%s/>\n", paintAttrs(p.Style, true))
	case model.KindCircle:
		c := p.Circle
		fmt.Fprintf(buf, `  <circle%s cx="%s" cy="%s" r="%s"%s/>`+"\n", attrs, num(c.CX), num(c.CY), num(c.R), paintAttrs(p.Style, true))
	case model.KindLine:
		l := p.Line
		fmt.Fprintf(buf, `  <line%s x1="%s" y1="%s" x2="%s" y2="%s"%s/>`+"\n", attrs, num(l.X1), num(l.Y1), num(l.X2), num(l.Y2), paintAttrs(p.Style, false))
	case model.KindPath:
		fmt.Fprintf(buf, `  <path%s d="%s"%s/>`+"\n", attrs, p.Path.String(), paintAttrs(p.Style, true))
	case model.KindText:
		renderText(buf, attrs, p)
	}
}

func renderText(buf *bytes.Buffer, attrs string, p model.Primitive) {
	t, s := p.Text, p.Style
	fmt.Fprintf(buf, `  <text%s x="%s" y="%s"`, attrs, num(t.X), num(t.Y))
	if s.Anchor != "" {
		fmt.Fprintf(buf, ` text-anchor="%s"`, escape(s.Anchor))
	}
	if s.FontSize > 0 {
		fmt.Fprintf(buf, ` font-size="%s"`, num(s.FontSize))
	}
	if s.FontWeight != "" {
		fmt.Fprintf(buf, ` font-weight="%s"`, escape(s.FontWeight))
	}
	if s.Rotation != 0 {
		fmt.Fprintf(buf, ` transform="rotate(%s %s %s)"`, num(s.Rotation), num(t.X), num(t.Y))
	}
	fmt.Fprintf(buf, "%s>%s</text>\n", paintAttrs(s, false), escape(t.Content))
}

func commonAttrs(p model.Primitive) string {
	a := fmt.Sprintf(` class="%s"`, p.Layer)
	if p.Index != model.NoIndex {
		a += fmt.Sprintf(` data-index="%d"`, p.Index)
	}
	return a
}

// paintAttrs writes fill, stroke and opacity. Closed shapes without a fill
// are hollow; text and lines without one keep the SVG default.
func paintAttrs(s model.Style, closed bool) string {
	var b strings.Builder
	switch {
	case s.Gradient != nil:
		fmt.Fprintf(&b, ` fill="url(#%s)"`, escape(s.Gradient.ID))
	case s.Fill != "":
		fmt.Fprintf(&b, ` fill="%s"`, escape(s.Fill))
	case closed:
		b.WriteString(` fill="none"`)
	}
	if s.Stroke != "" {
		fmt.Fprintf(&b, ` stroke="%s" stroke-width="%s"`, escape(s.Stroke), num(s.StrokeWidth))
	}
	if s.Opacity != 1 {
		fmt.Fprintf(&b, ` opacity="%s"`, num(s.Opacity))
	}
	return b.String()
}

func num(v float64) string { return path.FormatNumber(v) }

func escape(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
