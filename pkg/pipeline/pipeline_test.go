package pipeline

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stackchart/pkg/cache"
	"github.com/matzehuels/stackchart/pkg/dataset"
	"github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/observability"
	"github.com/matzehuels/stackchart/pkg/render/chart"
)

var sales = dataset.Dataset{
	{"month": "Jan", "sales": 10},
	{"month": "Feb", "sales": 40},
	{"month": "Mar", "sales": 20},
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && errors.GetCode(err) != errors.ErrCodeInvalidFormat {
			t.Errorf("ValidateFormat(%q) code = %q", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestSetLayoutDefaults(t *testing.T) {
	tests := []struct {
		name       string
		opts       Options
		wantKind   string
		wantMargin float64
	}{
		{"empty is line", Options{}, KindLine, chart.DefaultLineMargin},
		{"bar", Options{Kind: KindBar}, KindBar, chart.DefaultBarMargin},
		{"explicit margin", Options{Kind: KindBar, Margin: 5}, KindBar, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := tt.opts
			o.SetLayoutDefaults()
			if o.Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", o.Kind, tt.wantKind)
			}
			if o.Margin != tt.wantMargin {
				t.Errorf("Margin = %v, want %v", o.Margin, tt.wantMargin)
			}
			if o.Width != DefaultWidth || o.Height != DefaultHeight {
				t.Errorf("size = %vx%v, want %vx%v", o.Width, o.Height, DefaultWidth, DefaultHeight)
			}
			if o.Logger == nil {
				t.Error("Logger should default to a discarding logger")
			}
		})
	}
}

func TestValidateForLayout(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"valid", Options{XKey: "month", YKey: "sales"}, ""},
		{"unknown kind", Options{Kind: "pie", XKey: "month", YKey: "sales"}, errors.ErrCodeInvalidKind},
		{"missing x key", Options{YKey: "sales"}, errors.ErrCodeInvalidField},
		{"margin too wide", Options{XKey: "month", YKey: "sales", Width: 100, Margin: 50}, errors.ErrCodeInvalidDimensions},
		{"negative width", Options{XKey: "month", YKey: "sales", Width: -1}, errors.ErrCodeInvalidDimensions},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := tt.opts
			err := o.ValidateForLayout()
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %q, want %q (err %v)", got, tt.code, err)
			}
		})
	}
}

func TestValidateForRender(t *testing.T) {
	o := Options{}
	if err := o.ValidateForRender(); err != nil {
		t.Fatalf("ValidateForRender: %v", err)
	}
	if len(o.Formats) != 1 || o.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", o.Formats)
	}
	if o.Scale != DefaultScale {
		t.Errorf("Scale = %v, want %v", o.Scale, DefaultScale)
	}

	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"negative scale", Options{Scale: -1}, errors.ErrCodeInvalidInput},
		{"scale over max", Options{Scale: MaxScale + 1}, errors.ErrCodeInvalidInput},
		{"png over pixel budget", Options{Width: 8000, Height: 8000, Scale: 4, Formats: []string{FormatSVG, FormatPNG}}, errors.ErrCodeInvalidDimensions},
		{"svg has no pixel budget", Options{Width: 8000, Height: 8000, Scale: 4, Formats: []string{FormatSVG}}, ""},
		{"png within budget", Options{Width: 1600, Height: 900, Scale: 2, Formats: []string{FormatPNG}}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForRender()
			if errors.GetCode(err) != tt.code || (tt.code == "") != (err == nil) {
				t.Errorf("ValidateForRender() = %v, want code %q", err, tt.code)
			}
		})
	}
}

func TestChartConfig(t *testing.T) {
	o := Options{
		Kind:   KindBar,
		Width:  600,
		Height: 200,
		Customize: func(c *chart.Config) {
			c.ThreeD.Show = false
			c.Bars.Fill = "#ff0000"
		},
	}
	cfg := o.ChartConfig()

	if cfg.Width != 600 || cfg.Height != 200 || cfg.Margin != chart.DefaultBarMargin {
		t.Errorf("size = %vx%v margin %v", cfg.Width, cfg.Height, cfg.Margin)
	}
	if cfg.ThreeD.Show || cfg.Bars.Fill != "#ff0000" {
		t.Error("Customize was not applied")
	}
	if !cfg.Background.Show {
		t.Error("defaults should survive customization")
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	o := Options{Scale: 3, Interactive: true, Title: "t", Font: []byte("wOFF")}

	png := o.ArtifactKeyOpts(FormatPNG)
	if png.Scale != 3 || png.Interactive || png.Title != "" {
		t.Errorf("png opts = %+v", png)
	}
	svg := o.ArtifactKeyOpts(FormatSVG)
	if svg.Scale != 0 || !svg.Interactive {
		t.Errorf("svg opts = %+v", svg)
	}
	if svg.FontHash != cache.Hash([]byte("wOFF")) {
		t.Errorf("FontHash = %q", svg.FontHash)
	}
	if pdf := o.ArtifactKeyOpts(FormatPDF); pdf.Title != "t" {
		t.Errorf("pdf opts = %+v", pdf)
	}
}

func TestLayout(t *testing.T) {
	t.Run("line", func(t *testing.T) {
		m, err := Layout(sales, Options{XKey: "month", YKey: "sales"})
		if err != nil {
			t.Fatalf("Layout: %v", err)
		}
		if m.Kind != KindLine || len(m.Primitives) == 0 {
			t.Errorf("model kind %q with %d primitives", m.Kind, len(m.Primitives))
		}
	})

	t.Run("bar", func(t *testing.T) {
		m, err := Layout(sales, Options{Kind: KindBar, XKey: "month", YKey: "sales"})
		if err != nil {
			t.Fatalf("Layout: %v", err)
		}
		if m.Kind != KindBar {
			t.Errorf("Kind = %q", m.Kind)
		}
	})

	dirty := dataset.Dataset{
		{"month": "Jan", "sales": 10},
		{"month": "Feb", "sales": "n/a"},
	}
	t.Run("lenient", func(t *testing.T) {
		if _, err := Layout(dirty, Options{XKey: "month", YKey: "sales"}); err != nil {
			t.Errorf("lenient layout failed: %v", err)
		}
	})
	t.Run("strict", func(t *testing.T) {
		_, err := Layout(dirty, Options{XKey: "month", YKey: "sales", Strict: true})
		if errors.GetCode(err) != errors.ErrCodeInvalidValue {
			t.Errorf("code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidValue)
		}
	})
	t.Run("strict missing field", func(t *testing.T) {
		_, err := Layout(sales, Options{XKey: "month", YKey: "profit", Strict: true})
		if errors.GetCode(err) != errors.ErrCodeInvalidField {
			t.Errorf("code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidField)
		}
	})
	t.Run("customized margin", func(t *testing.T) {
		_, err := Layout(sales, Options{
			XKey: "month", YKey: "sales",
			Customize: func(c *chart.Config) { c.Margin = 500 },
		})
		if errors.GetCode(err) != errors.ErrCodeInvalidConfig {
			t.Errorf("code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidConfig)
		}
	})
}

func TestLineChartPress(t *testing.T) {
	var pressed []int
	lc, err := LineChart(sales, Options{
		Kind: KindBar, // overridden
		XKey: "month", YKey: "sales",
		Customize: func(c *chart.Config) {
			c.OnPointPress = func(i int, _ dataset.Record) { pressed = append(pressed, i) }
		},
	})
	if err != nil {
		t.Fatalf("LineChart: %v", err)
	}
	if len(lc.Points) != len(sales) {
		t.Fatalf("Points = %d, want %d", len(lc.Points), len(sales))
	}
	if !lc.Press(2) || len(pressed) != 1 || pressed[0] != 2 {
		t.Errorf("pressed = %v", pressed)
	}
}

func TestRender(t *testing.T) {
	m, err := Layout(sales, Options{XKey: "month", YKey: "sales"})
	if err != nil {
		t.Fatal(err)
	}
	artifacts, err := Render(m, sales, Options{Formats: []string{FormatSVG, FormatJSON}, Interactive: true})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(artifacts[FormatSVG], []byte("<svg")) {
		t.Error("svg artifact should start with <svg")
	}
	if !bytes.Contains(artifacts[FormatSVG], []byte("chartpress")) {
		t.Error("interactive svg should carry the press script")
	}
	if !bytes.Contains(artifacts[FormatJSON], []byte(`"records"`)) {
		t.Error("json artifact should embed the records")
	}
}

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return NewRunner(c, nil, log.New(io.Discard))
}

func TestExecuteCachesArtifacts(t *testing.T) {
	ctx := context.Background()
	r := newTestRunner(t)
	defer r.Close()

	opts := Options{XKey: "month", YKey: "sales", Formats: []string{FormatSVG, FormatJSON}}

	first, err := r.Execute(ctx, sales, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if first.CacheInfo.RenderHit {
		t.Error("first run should miss the cache")
	}
	if first.Stats.Records != 3 || first.Stats.Primitives != len(first.Model.Primitives) {
		t.Errorf("Stats = %+v", first.Stats)
	}
	if first.DatasetHash == "" {
		t.Error("DatasetHash should be set")
	}

	second, err := r.Execute(ctx, sales, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should hit the cache")
	}
	if first.ID == second.ID {
		t.Error("every run should get its own ID")
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("cached svg differs from rendered svg")
	}

	// A different record set with the same geometry must not share the
	// JSON artifact.
	relabeled := dataset.Dataset{
		{"month": "Jan", "sales": 10, "note": "x"},
		{"month": "Feb", "sales": 40},
		{"month": "Mar", "sales": 20},
	}
	third, err := r.Execute(ctx, relabeled, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if third.CacheInfo.RenderHit {
		t.Error("changed records should miss the cache")
	}
}

func TestExecuteInvalid(t *testing.T) {
	r := NewRunner(nil, nil, log.New(io.Discard))
	_, err := r.Execute(context.Background(), sales, Options{XKey: "month", YKey: "sales", Formats: []string{"gif"}})
	if errors.GetCode(err) != errors.ErrCodeInvalidFormat {
		t.Errorf("code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidFormat)
	}
}

func TestLoadDataset(t *testing.T) {
	ctx := context.Background()
	r := newTestRunner(t)
	defer r.Close()

	path := filepath.Join(t.TempDir(), "sales.csv")
	if err := os.WriteFile(path, []byte("month,sales\nJan,10\nFeb,40\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ds, hit, err := r.LoadDataset(ctx, path, "")
	if err != nil {
		t.Fatalf("LoadDataset: %v", err)
	}
	if hit {
		t.Error("first load should miss the cache")
	}
	if len(ds) != 2 || ds[1]["sales"] != "40" {
		t.Errorf("dataset = %v", ds)
	}

	cached, hit, err := r.LoadDataset(ctx, path, "")
	if err != nil {
		t.Fatalf("LoadDataset: %v", err)
	}
	if !hit {
		t.Error("second load should hit the cache")
	}
	if len(cached) != 2 || cached[0]["month"] != "Jan" {
		t.Errorf("cached dataset = %v", cached)
	}

	t.Run("missing", func(t *testing.T) {
		_, _, err := r.LoadDataset(ctx, filepath.Join(t.TempDir(), "nope.csv"), "")
		if errors.GetCode(err) != errors.ErrCodeFileNotFound {
			t.Errorf("code = %q", errors.GetCode(err))
		}
	})
	t.Run("unsupported", func(t *testing.T) {
		_, _, err := r.LoadDataset(ctx, "sales.parquet", "")
		if errors.GetCode(err) != errors.ErrCodeUnsupported {
			t.Errorf("code = %q", errors.GetCode(err))
		}
	})
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	observability.NoopCacheHooks

	mu      sync.Mutex
	layouts []string
	renders int
	hits    int
	misses  int
}

func (h *recordingHooks) OnLayoutComplete(_ context.Context, kind string, _ int, _ time.Duration, _ error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.layouts = append(h.layouts, kind)
}

func (h *recordingHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.renders++
}

func (h *recordingHooks) OnCacheHit(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hits++
}

func (h *recordingHooks) OnCacheMiss(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.misses++
}

func TestExecuteHooks(t *testing.T) {
	h := &recordingHooks{}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
	t.Cleanup(observability.Reset)

	r := newTestRunner(t)
	defer r.Close()
	opts := Options{Kind: KindBar, XKey: "month", YKey: "sales"}
	for range 2 {
		if _, err := r.Execute(context.Background(), sales, opts); err != nil {
			t.Fatal(err)
		}
	}

	if len(h.layouts) != 2 || h.layouts[0] != KindBar {
		t.Errorf("layouts = %v", h.layouts)
	}
	if h.renders != 2 {
		t.Errorf("renders = %d, want 2", h.renders)
	}
	if h.misses != 1 || h.hits != 1 {
		t.Errorf("cache misses/hits = %d/%d, want 1/1", h.misses, h.hits)
	}
}
