package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/stackchart/pkg/cache"
	"github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/fonts"
	"github.com/matzehuels/stackchart/pkg/format"
	"github.com/matzehuels/stackchart/pkg/pipeline"
)

// stdoutPath selects standard output for a single artifact.
const stdoutPath = "-"

// renderOpts holds the output flags of the render command.
type renderOpts struct {
	output      string  // output file (single format) or base path (multiple)
	formats     string  // comma-separated output formats
	scale       float64 // PNG pixel density
	title       string  // PDF document title
	font        string  // font file for chart text
	interactive bool    // SVG hover tooltips and press events
}

// renderCommand creates the render command for generating chart files.
//
// Default settings:
//   - kind: line
//   - width: 800px, height: 300px
//   - margin: 20px (line), 50px (bar)
//   - format: svg
func (c *CLI) renderCommand() *cobra.Command {
	var (
		chart chartFlags
		out   renderOpts
	)

	cmd := &cobra.Command{
		Use:   "render [dataset]",
		Short: "Render a dataset as a line or bar chart",
		Long: `Render a dataset as a line or bar chart.

The dataset is a JSON array of objects, a CSV or TSV file with a header row,
or an Excel workbook. Each record is one point (line) or one bar (bar); --x-key
and --y-key name the record fields plotted on each axis.

Output files are named after the dataset unless --output is given:

  stackchart render sales.csv -x month -y total            # sales.svg
  stackchart render sales.csv -x month -y total -f svg,png # sales.svg, sales.png
  stackchart render sales.xlsx --sheet 2024 -k bar -o -    # SVG to stdout

Axis and tooltip formatters are set in the [format] section of the config
file as pipelines of functions, e.g. y = 'compact(1) | prefix("$")'.
Available functions: `+strings.Join(format.Functions(), ", ")+`.

Loaded datasets and rendered artifacts are cached locally.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts, err := chart.options(cmd.Flags(), cfg)
			if err != nil {
				return err
			}
			if err := out.apply(cmd.Flags(), &opts); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], &chart, out.output, cfg.Cache, opts)
		},
	}

	chart.register(cmd.Flags())
	out.register(cmd.Flags())

	return cmd
}

func (o *renderOpts) register(fs *pflag.FlagSet) {
	fs.StringVarP(&o.output, "output", "o", "", "output file (single format), base path (multiple) or - for stdout")
	fs.StringVarP(&o.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	fs.Float64Var(&o.scale, "scale", pipeline.DefaultScale, "PNG pixel density")
	fs.StringVar(&o.title, "title", "", "PDF document title")
	fs.StringVar(&o.font, "font", "", "TTF, OTF or WOFF file for chart text")
	fs.BoolVar(&o.interactive, "interactive", false, "SVG tooltips appear on hover and points emit press events")
}

// apply overlays the output flags that were set on opts.
func (o *renderOpts) apply(fs *pflag.FlagSet, opts *pipeline.Options) error {
	if fs.Changed("format") || len(opts.Formats) == 0 {
		opts.Formats = parseFormats(o.formats)
		if len(opts.Formats) == 0 {
			return errors.New(errors.ErrCodeInvalidFormat, "no output format in %q", o.formats)
		}
	}
	if err := pipeline.ValidateFormats(opts.Formats); err != nil {
		return err
	}
	if fs.Changed("scale") {
		opts.Scale = o.scale
	}
	if fs.Changed("title") {
		opts.Title = o.title
	}
	if fs.Changed("interactive") {
		opts.Interactive = o.interactive
	}
	if o.font != "" {
		data, err := fonts.Load(o.font)
		if err != nil {
			return err
		}
		opts.Font = data
	}
	if o.output == stdoutPath && len(opts.Formats) > 1 {
		return errors.New(errors.ErrCodeInvalidInput, "cannot write %d formats to stdout", len(opts.Formats))
	}
	return nil
}

// runRender loads the dataset, runs the pipeline and writes one file per
// format.
func (c *CLI) runRender(ctx context.Context, input string, chart *chartFlags, output string, cacheCfg cache.Config, opts pipeline.Options) error {
	done := startTimer(loggerFromContext(ctx), "rendered chart")

	runner, err := c.newRunner(ctx, cacheCfg, chart.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spin := startSpinner(ctx, c.stderr, "Loading "+filepath.Base(input)+"...")
	defer spin.stop()

	ds, _, err := runner.LoadDataset(ctx, input, chart.sheet)
	if err != nil {
		return err
	}

	spin.stage(fmt.Sprintf("Rendering %s chart...", opts.Kind))
	result, err := runner.Execute(ctx, ds, opts)
	spin.stop()
	if err != nil {
		c.ui.fail("Render failed")
		return err
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if output == stdoutPath {
		return writeArtifact(os.Stdout, result.Artifacts[opts.Formats[0]])
	}

	paths := outputPaths(output, input, opts.Formats)
	for _, f := range opts.Formats {
		if err := writeFile(paths[f], result.Artifacts[f]); err != nil {
			return err
		}
	}
	done("input", input, "formats", strings.Join(opts.Formats, ","))

	c.ui.success("Chart rendered")
	for _, f := range opts.Formats {
		c.ui.file(paths[f], len(result.Artifacts[f]))
	}
	c.ui.summary(result)
	return nil
}

// outputPaths maps each format to its file. A single format is written to
// output as given; otherwise files share the base path of output or input.
func outputPaths(output, input string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" && !pipeline.ValidFormats[strings.TrimPrefix(filepath.Ext(output), ".")] {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func writeFile(path string, data []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := writeArtifact(f, data); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func writeArtifact(w io.Writer, data []byte) error {
	_, err := w.Write(data)
	return err
}
