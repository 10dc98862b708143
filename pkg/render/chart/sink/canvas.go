package sink

import (
	"image/color"
	"strings"

	"github.com/tdewolff/canvas"
	"golang.org/x/image/colornames"

	"github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/fonts"
	"github.com/matzehuels/stackchart/pkg/render/chart/model"
	"github.com/matzehuels/stackchart/pkg/render/chart/path"
)

// Canvas units are millimetres; chart pixels follow CSS at 96 per inch.
const (
	pxToMM = 25.4 / 96
	pxToPt = 0.75
)

var transparent = color.RGBA{0, 0, 0, 0}

// painter draws a model onto a tdewolff/canvas context.
type painter struct {
	font    []byte
	regular *canvas.FontFamily
	bold    bool
}

// newCanvas paints m onto a fresh canvas sized to the model.
func (p *painter) newCanvas(m model.Model) (*canvas.Canvas, error) {
	c := canvas.New(m.Width*pxToMM, m.Height*pxToMM)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV)

	if hasText(m) {
		if err := p.loadFont(); err != nil {
			return nil, err
		}
	}
	for _, prim := range m.Primitives {
		p.draw(ctx, prim)
	}
	return c, nil
}

func (p *painter) draw(ctx *canvas.Context, prim model.Primitive) {
	s := prim.Style
	if prim.Kind() == model.KindText {
		p.drawText(ctx, prim.Text, s)
		return
	}

	ctx.SetFillColor(fillColor(s))
	if s.Stroke != "" && s.StrokeWidth > 0 {
		ctx.SetStrokeColor(parseColor(s.Stroke, s.Opacity))
		ctx.SetStrokeWidth(s.StrokeWidth * pxToMM)
	} else {
		ctx.SetStrokeColor(transparent)
		ctx.SetStrokeWidth(0)
	}

	switch prim.Kind() {
	case model.KindRect:
		r := prim.Rect
		shape := canvas.Rectangle(r.W*pxToMM, r.H*pxToMM)
		if r.RX > 0 {
			shape = canvas.RoundedRectangle(r.W*pxToMM, r.H*pxToMM, r.RX*pxToMM)
		}
		ctx.DrawPath(r.X*pxToMM, r.Y*pxToMM, shape)
	case model.KindCircle:
		c := prim.Circle
		ctx.DrawPath(c.CX*pxToMM, c.CY*pxToMM, canvas.Circle(c.R*pxToMM))
	case model.KindLine:
		l := prim.Line
		ctx.SetFillColor(transparent)
		seg := &canvas.Path{}
		seg.MoveTo(0, 0)
		seg.LineTo((l.X2-l.X1)*pxToMM, (l.Y2-l.Y1)*pxToMM)
		ctx.DrawPath(l.X1*pxToMM, l.Y1*pxToMM, seg)
	case model.KindPath:
		ctx.DrawPath(0, 0, toCanvasPath(*prim.Path))
	}
}

func (p *painter) drawText(ctx *canvas.Context, t *model.Text, s model.Style) {
	if t.Content == "" || p.regular == nil {
		return
	}
	fill := s.Fill
	if fill == "" {
		fill = "#000"
	}
	style := canvas.FontRegular
	if p.bold && isBold(s.FontWeight) {
		style = canvas.FontBold
	}
	face := p.regular.Face(s.FontSize*pxToPt, parseColor(fill, s.Opacity), style, canvas.FontNormal)

	align := canvas.Left
	switch s.Anchor {
	case "middle":
		align = canvas.Center
	case "end":
		align = canvas.Right
	}
	x, y := t.X*pxToMM, t.Y*pxToMM
	line := canvas.NewTextLine(face, t.Content, align)
	if s.Rotation == 0 {
		ctx.DrawText(x, y, line)
		return
	}
	ctx.Push()
	ctx.ComposeView(canvas.Identity.RotateAbout(s.Rotation, x, y))
	ctx.DrawText(x, y, line)
	ctx.Pop()
}

// loadFont resolves the text font once: the configured file if any,
// otherwise the first installed family of [fonts.SystemFamilies].
func (p *painter) loadFont() error {
	if p.regular != nil {
		return nil
	}
	family := canvas.NewFontFamily("stackchart")
	if len(p.font) > 0 {
		if err := family.LoadFont(p.font, 0, canvas.FontRegular); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidFormat, err, "load font")
		}
		p.regular = family
		return nil
	}
	for _, name := range fonts.SystemFamilies {
		if err := family.LoadSystemFont(name, canvas.FontRegular); err != nil {
			continue
		}
		p.bold = family.LoadSystemFont(name, canvas.FontBold) == nil
		p.regular = family
		return nil
	}
	return errors.New(errors.ErrCodeUnsupported,
		"no system font found for chart text; pass a font file or disable labels and tooltips")
}

func toCanvasPath(src path.Path) *canvas.Path {
	dst := &canvas.Path{}
	for _, c := range src.Commands {
		switch c.Op {
		case path.MoveTo:
			dst.MoveTo(c.To.X*pxToMM, c.To.Y*pxToMM)
		case path.LineTo:
			dst.LineTo(c.To.X*pxToMM, c.To.Y*pxToMM)
		case path.QuadTo:
			dst.QuadTo(c.Ctrl.X*pxToMM, c.Ctrl.Y*pxToMM, c.To.X*pxToMM, c.To.Y*pxToMM)
		case path.Close:
			dst.Close()
		}
	}
	return dst
}

// fillColor resolves the fill of a closed shape. Gradients are painted
// flat with the color halfway between their stops.
func fillColor(s model.Style) color.Color {
	if g := s.Gradient; g != nil {
		a, aok := rgba(g.Start.Color)
		b, bok := rgba(g.End.Color)
		if !aok || !bok {
			return transparent
		}
		var mid [4]float64
		for i := range mid {
			mid[i] = (a[i] + b[i]) / 2
		}
		alpha := mid[3] * (g.Start.Opacity + g.End.Opacity) / 2 * s.Opacity
		return canvas.RGBA(mid[0], mid[1], mid[2], alpha)
	}
	if s.Fill == "" {
		return transparent
	}
	return parseColor(s.Fill, s.Opacity)
}

// parseColor converts a CSS hex or named color, scaling its alpha by
// opacity. Unknown colors paint nothing.
func parseColor(css string, opacity float64) color.Color {
	c, ok := rgba(css)
	if !ok {
		return transparent
	}
	return canvas.RGBA(c[0], c[1], c[2], c[3]*opacity)
}

// rgba returns straight (non-premultiplied) components in [0,1].
func rgba(css string) ([4]float64, bool) {
	css = strings.ToLower(strings.TrimSpace(css))
	var c color.Color
	switch {
	case css == "", css == "none", css == "transparent":
		return [4]float64{}, false
	case strings.HasPrefix(css, "#"):
		c = canvas.Hex(css)
	default:
		named, ok := colornames.Map[css]
		if !ok {
			return [4]float64{}, false
		}
		c = named
	}
	r, g, b, a := c.RGBA()
	if a == 0 {
		return [4]float64{}, true
	}
	fa := float64(a)
	return [4]float64{float64(r) / fa, float64(g) / fa, float64(b) / fa, fa / 0xffff}, true
}

func isBold(weight string) bool {
	switch weight {
	case "bold", "bolder", "600", "700", "800", "900":
		return true
	}
	return false
}

func hasText(m model.Model) bool {
	for _, p := range m.Primitives {
		if p.Text != nil && p.Text.Content != "" {
			return true
		}
	}
	return false
}
