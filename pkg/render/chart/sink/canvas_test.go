package sink

import (
	"bytes"
	"image/png"
	"math"
	"testing"

	"github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/render/chart"
	"github.com/matzehuels/stackchart/pkg/render/chart/model"
)

// textless charts paint without any font installed.
func textlessModel() model.Model {
	cfg := chart.LineDefaults(200)
	cfg.Height = 100
	cfg.XLabels.Show = false
	cfg.YLabels.Show = false
	cfg.Tooltip.Show = false
	return chart.Line(sales, salesKeys, cfg).Model
}

func TestRenderPDF(t *testing.T) {
	data, err := RenderPDF(textlessModel(), WithPDFTitle("sales"))
	if err != nil {
		t.Fatalf("RenderPDF() error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output does not start with %%PDF: %q", data[:min(8, len(data))])
	}
}

func TestRenderPNG(t *testing.T) {
	tests := []struct {
		scale float64
		w, h  int
	}{
		{1, 200, 100},
		{2, 400, 200},
	}
	for _, tt := range tests {
		data, err := RenderPNG(textlessModel(), WithScale(tt.scale))
		if err != nil {
			t.Fatalf("RenderPNG(scale %v) error: %v", tt.scale, err)
		}
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("png.Decode() error: %v", err)
		}
		b := img.Bounds()
		if abs(b.Dx()-tt.w) > 1 || abs(b.Dy()-tt.h) > 1 {
			t.Errorf("scale %v: size = %dx%d, want %dx%d", tt.scale, b.Dx(), b.Dy(), tt.w, tt.h)
		}
	}
}

func TestRenderPNGInvalidScale(t *testing.T) {
	_, err := RenderPNG(textlessModel(), WithScale(0))
	if errors.GetCode(err) != errors.ErrCodeInvalidInput {
		t.Errorf("code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidInput)
	}
}

func TestRenderPNGTooLarge(t *testing.T) {
	tests := []struct {
		name  string
		m     model.Model
		scale float64
	}{
		{"wide chart", model.Model{Width: 1e6, Height: 300}, 1},
		{"high scale", model.Model{Width: 4000, Height: 3000}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RenderPNG(tt.m, WithScale(tt.scale))
			if errors.GetCode(err) != errors.ErrCodeInvalidDimensions {
				t.Errorf("code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidDimensions)
			}
		})
	}
}

func TestRenderPDFBadFont(t *testing.T) {
	m := model.Model{Width: 50, Height: 50}
	m.Add(model.NewText(model.LayerXLabels, model.Text{X: 1, Y: 1, Content: "x"}, model.Style{Opacity: 1, FontSize: 12}))
	_, err := RenderPDF(m, WithPDFFont([]byte("not a font")))
	if errors.GetCode(err) != errors.ErrCodeInvalidFormat {
		t.Errorf("code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidFormat)
	}
}

func TestRGBA(t *testing.T) {
	tests := []struct {
		css  string
		want [4]float64
		ok   bool
	}{
		{"#ffffff", [4]float64{1, 1, 1, 1}, true},
		{"#f00", [4]float64{1, 0, 0, 1}, true},
		{"blue", [4]float64{0, 0, 1, 1}, true},
		{" White ", [4]float64{1, 1, 1, 1}, true},
		{"none", [4]float64{}, false},
		{"", [4]float64{}, false},
		{"chartreuse-ish", [4]float64{}, false},
	}
	for _, tt := range tests {
		got, ok := rgba(tt.css)
		if ok != tt.ok {
			t.Errorf("rgba(%q) ok = %v, want %v", tt.css, ok, tt.ok)
			continue
		}
		for i := range got {
			if math.Abs(got[i]-tt.want[i]) > 1e-3 {
				t.Errorf("rgba(%q) = %v, want %v", tt.css, got, tt.want)
				break
			}
		}
	}
}

func TestFillColorGradientMidpoint(t *testing.T) {
	s := model.Style{Opacity: 1, Gradient: &model.Gradient{
		Start: model.Stop{Color: "#000000", Opacity: 1},
		End:   model.Stop{Color: "#ffffff", Opacity: 0},
	}}
	r, g, b, a := fillColor(s).RGBA()
	if a < 0x7f00 || a > 0x8100 {
		t.Errorf("alpha = %#x, want about half", a)
	}
	if r != g || g != b {
		t.Errorf("midpoint not gray: %d %d %d", r, g, b)
	}
	if _, _, _, a := fillColor(model.Style{Opacity: 1}).RGBA(); a != 0 {
		t.Errorf("empty fill alpha = %d, want 0", a)
	}
}

func TestIsBold(t *testing.T) {
	for w, want := range map[string]bool{"bold": true, "700": true, "400": false, "": false} {
		if got := isBold(w); got != want {
			t.Errorf("isBold(%q) = %v, want %v", w, got, want)
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
