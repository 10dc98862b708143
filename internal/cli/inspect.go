package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stackchart/pkg/cache"
	"github.com/matzehuels/stackchart/pkg/pipeline"
)

// inspectCommand creates the inspect command for browsing chart points.
func (c *CLI) inspectCommand() *cobra.Command {
	var chart chartFlags

	cmd := &cobra.Command{
		Use:   "inspect [dataset]",
		Short: "Browse the points of a line chart interactively",
		Long: `Browse the points of a line chart interactively.

Each row shows a record with its formatted values and the pixel position of
its point. Pressing enter presses the point, the same event an interactive
SVG emits on click, and prints the record behind it.

The chart follows the terminal width, so resizing the window lays it out
again.`,
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
			if opts.Kind != pipeline.KindLine {
				return fmt.Errorf("inspect supports line charts only (got %q)", opts.Kind)
			}
			return c.runInspect(cmd.Context(), args[0], &chart, cfg.Cache, opts)
		},
	}

	chart.register(cmd.Flags())

	return cmd
}

// runInspect loads the dataset and runs the point browser.
func (c *CLI) runInspect(ctx context.Context, input string, chart *chartFlags, cacheCfg cache.Config, opts pipeline.Options) error {
	runner, err := c.newRunner(ctx, cacheCfg, chart.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	ds, _, err := runner.LoadDataset(ctx, input, chart.sheet)
	if err != nil {
		return err
	}
	canonical, err := ds.Canonical()
	if err != nil {
		return err
	}

	m, err := NewPointListModel(ds, opts, cache.Hash(canonical))
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return err
	}

	fm, ok := final.(PointListModel)
	if !ok {
		return nil
	}
	if fm.Err != nil {
		return fm.Err
	}
	loggerFromContext(ctx).Debug("inspect finished", "memo_hits", fm.MemoHits())

	press, ok := fm.Pressed()
	if !ok {
		c.ui.detail("No point pressed")
		return nil
	}
	c.ui.success("Pressed point %d", press.Index)
	c.ui.record(press.Record)
	return nil
}
