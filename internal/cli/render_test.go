package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"github.com/matzehuels/stackchart/pkg/config"
	"github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/pipeline"
)

const salesCSV = "month,sales\nJan,120\nFeb,80\nMar,150\n"

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,pdf,png", []string{"svg", "pdf", "png"}},
		{"spaces and case", " SVG , json ", []string{"svg", "json"}},
		{"empty entries dropped", "svg,,png,", []string{"svg", "png"}},
		{"separators only", " , ,", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i, v := range got {
				if v != tt.want[i] {
					t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
				}
			}
		})
	}
}

func TestChartFlagsApply(t *testing.T) {
	tests := []struct {
		name string
		args []string
		base pipeline.Options
		want pipeline.Options
	}{
		{
			name: "defaults fill an empty kind only",
			base: pipeline.Options{XKey: "m", YKey: "v", Width: 500},
			want: pipeline.Options{Kind: "line", XKey: "m", YKey: "v", Width: 500},
		},
		{
			name: "set flags override the file",
			args: []string{"-k", "bar", "--x-key", "day", "--width", "640", "--strict"},
			base: pipeline.Options{Kind: "line", XKey: "m", YKey: "v", Width: 500},
			want: pipeline.Options{Kind: "bar", XKey: "day", YKey: "v", Width: 640, Strict: true},
		},
		{
			name: "unset flags keep the file",
			args: []string{"-y", "total"},
			base: pipeline.Options{Kind: "bar", Height: 420, Margin: 30},
			want: pipeline.Options{Kind: "bar", YKey: "total", Height: 420, Margin: 30},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f chartFlags
			fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
			f.register(fs)
			if err := fs.Parse(tt.args); err != nil {
				t.Fatal(err)
			}
			got := tt.base
			f.apply(fs, &got)

			if got.Kind != tt.want.Kind || got.XKey != tt.want.XKey || got.YKey != tt.want.YKey ||
				got.Width != tt.want.Width || got.Height != tt.want.Height ||
				got.Margin != tt.want.Margin || got.Strict != tt.want.Strict {
				t.Errorf("apply() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRenderOptsApply(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		base        pipeline.Options
		wantFormats []string
		wantScale   float64
		wantCode    errors.Code
		wantErr     bool
	}{
		{
			name:        "default format",
			wantFormats: []string{"svg"},
		},
		{
			name:        "file formats kept",
			base:        pipeline.Options{Formats: []string{"png"}, Scale: 3},
			wantFormats: []string{"png"},
			wantScale:   3,
		},
		{
			name:        "flags override",
			args:        []string{"-f", "pdf,json", "--scale", "1"},
			base:        pipeline.Options{Formats: []string{"png"}, Scale: 3},
			wantFormats: []string{"pdf", "json"},
			wantScale:   1,
		},
		{
			name:     "invalid format",
			args:     []string{"-f", "gif"},
			wantCode: errors.ErrCodeInvalidFormat,
			wantErr:  true,
		},
		{
			name:     "missing font",
			args:     []string{"--font", "nope.ttf"},
			wantCode: errors.ErrCodeFileNotFound,
			wantErr:  true,
		},
		{
			name:     "separators only",
			args:     []string{"-f", ",", "-o", "-"},
			wantCode: errors.ErrCodeInvalidFormat,
			wantErr:  true,
		},
		{
			name:     "several formats to stdout",
			args:     []string{"-o", "-", "-f", "svg,png"},
			wantCode: errors.ErrCodeInvalidInput,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var o renderOpts
			fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
			o.register(fs)
			if err := fs.Parse(tt.args); err != nil {
				t.Fatal(err)
			}
			got := tt.base
			err := o.apply(fs, &got)
			if (err != nil) != tt.wantErr {
				t.Fatalf("apply() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if tt.wantCode != "" && errors.GetCode(err) != tt.wantCode {
					t.Errorf("code = %q, want %q", errors.GetCode(err), tt.wantCode)
				}
				return
			}
			if strings.Join(got.Formats, ",") != strings.Join(tt.wantFormats, ",") {
				t.Errorf("Formats = %v, want %v", got.Formats, tt.wantFormats)
			}
			if got.Scale != tt.wantScale {
				t.Errorf("Scale = %g, want %g", got.Scale, tt.wantScale)
			}
		})
	}
}

func TestChartFlagsOptionsFromConfig(t *testing.T) {
	cfg, err := config.Parse(`
[chart]
kind = "bar"
x_key = "month"
y_key = "sales"
`)
	if err != nil {
		t.Fatal(err)
	}
	var f chartFlags
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f.register(fs)
	if err := fs.Parse([]string{"--height", "200"}); err != nil {
		t.Fatal(err)
	}
	opts, err := f.options(fs, cfg)
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if opts.Kind != "bar" || opts.XKey != "month" || opts.Height != 200 {
		t.Errorf("options = %+v", opts)
	}
	if opts.Customize == nil {
		t.Error("options should carry the file's customizer")
	}
}

func TestRenderCommand(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir := t.TempDir()
	input := filepath.Join(dir, "sales.csv")
	if err := os.WriteFile(input, []byte(salesCSV), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"render", input, "-x", "month", "-y", "sales", "-f", "svg,json"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("render: %v", err)
	}

	svg, err := os.ReadFile(filepath.Join(dir, "sales.svg"))
	if err != nil {
		t.Fatalf("read svg: %v", err)
	}
	if !strings.HasPrefix(string(svg), "<svg") || !strings.Contains(string(svg), ">Feb</text>") {
		t.Errorf("unexpected svg output:\n%s", svg)
	}
	js, err := os.ReadFile(filepath.Join(dir, "sales.json"))
	if err != nil {
		t.Fatalf("read json: %v", err)
	}
	if !strings.Contains(string(js), `"kind": "line"`) {
		t.Errorf("json artifact missing kind:\n%s", js)
	}
}

func TestRenderCommandErrors(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	input := writeTemp(t, "sales.csv", salesCSV)

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"missing dataset", []string{"render", filepath.Join(t.TempDir(), "none.csv"), "-x", "month", "-y", "sales"}, errors.ErrCodeFileNotFound},
		{"missing key", []string{"render", input, "-x", "month"}, errors.ErrCodeInvalidField},
		{"unknown kind", []string{"render", input, "-x", "month", "-y", "sales", "-k", "pie"}, errors.ErrCodeInvalidKind},
		{"strict rejects missing field", []string{"render", input, "-x", "month", "-y", "profit", "--strict"}, errors.ErrCodeInvalidField},
		{"blank format list to stdout", []string{"render", input, "-x", "month", "-y", "sales", "-f", ",", "-o", "-"}, errors.ErrCodeInvalidFormat},
		{"missing config", []string{"render", input, "-x", "month", "-y", "sales", "--config", "nope.toml"}, errors.ErrCodeFileNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := New(io.Discard, LogInfo).RootCommand()
			root.SetArgs(append(tt.args, "--no-cache"))
			root.SetOut(io.Discard)
			root.SetErr(io.Discard)
			err := root.ExecuteContext(context.Background())
			if err == nil {
				t.Fatal("expected error")
			}
			if errors.GetCode(err) != tt.code {
				t.Errorf("code = %q, want %q (%v)", errors.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestLayoutCommand(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	input := writeTemp(t, "sales.csv", salesCSV)
	output := filepath.Join(t.TempDir(), "model.json")

	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs([]string{"layout", input, "-k", "bar", "-x", "month", "-y", "sales", "-o", output})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("layout: %v", err)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"kind": "bar"`, `"layer": "bars"`, `"records"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("layout output missing %s", want)
		}
	}
}
