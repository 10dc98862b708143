package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackchart/pkg/cache"
	"github.com/matzehuels/stackchart/pkg/pipeline"
)

// layoutCommand creates the layout command for computing chart render models.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		chart  chartFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "layout [dataset]",
		Short: "Compute the render model of a chart",
		Long: `Compute the render model of a chart.

The layout command lays out a dataset and writes the render model as JSON
(same format as 'render -f json'): every rectangle, circle, line, path and
text of the chart with its style, in paint order, plus the source records.
Primitives bound to a record carry its index.

Results are cached locally for faster subsequent runs.`,
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
			opts.Formats = []string{pipeline.FormatJSON}
			return c.runLayout(cmd.Context(), args[0], &chart, output, cfg.Cache, opts)
		},
	}

	chart.register(cmd.Flags())
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")

	return cmd
}

// runLayout loads the dataset, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, chart *chartFlags, output string, cacheCfg cache.Config, opts pipeline.Options) error {
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

	spin.stage(fmt.Sprintf("Computing %s layout...", opts.Kind))
	result, err := runner.Execute(ctx, ds, opts)
	spin.stop()
	if err != nil {
		c.ui.fail("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}

	if err := writeFile(outputPath, result.Artifacts[pipeline.FormatJSON]); err != nil {
		return err
	}

	c.ui.success("Layout complete")
	c.ui.file(outputPath, len(result.Artifacts[pipeline.FormatJSON]))
	c.ui.summary(result)
	c.ui.field("Chart ID", result.ID.String())
	c.ui.next("Render", fmt.Sprintf("stackchart render %s -k %s -x %s -y %s", input, opts.Kind, opts.XKey, opts.YKey))

	return nil
}
