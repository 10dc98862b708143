package cli

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackchart/internal/server"
	"github.com/matzehuels/stackchart/pkg/observability"
)

const defaultAddr = ":8080"

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		noCache   bool
		noMetrics bool
		maxBody   int64
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the chart rendering HTTP API",
		Long: `Run the chart rendering HTTP API.

Routes:
  POST /v1/charts/{kind}  render a line or bar chart
  GET  /healthz           liveness and build information
  GET  /metrics           Prometheus metrics

A request body carries the records and a configuration in the layout of
the --config file:

  {"dataset": [{"m": "Jan", "v": 3}], "x_key": "m", "y_key": "v",
   "format": "svg", "config": {"style": {"curve": false}}}

The [cache] section of --config selects where artifacts are cached (file,
memory, redis or mongo); requests cannot change it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			runner, err := c.newRunner(ctx, cfg.Cache, noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			var metrics http.Handler
			if !noMetrics {
				hooks := observability.NewPrometheusHooks()
				observability.SetPipelineHooks(hooks)
				observability.SetCacheHooks(hooks)
				observability.SetHTTPHooks(hooks)
				defer observability.Reset()
				metrics = hooks.Handler()
			}

			srv := server.New(server.Options{
				Runner:       runner,
				Logger:       c.Logger,
				Metrics:      metrics,
				MaxBodyBytes: maxBody,
			})
			return server.ListenAndServe(ctx, addr, srv, c.Logger)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", defaultAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&noMetrics, "no-metrics", false, "disable the /metrics endpoint")
	cmd.Flags().Int64Var(&maxBody, "max-body", server.DefaultMaxBodyBytes, "maximum request body size in bytes")

	return cmd
}
