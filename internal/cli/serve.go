package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/backtoschool/progcompare/internal/api"
	"github.com/backtoschool/progcompare/pkg/observability"
)

// serverKeyScope prefixes cache keys written by the server, so a shared
// cache never serves a CLI export to an API client or the reverse.
const serverKeyScope = "api:"

type serveOpts struct {
	addr    string
	catalog string
	noCache bool
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve comparison exports over HTTP",
		Long: `Serve runs the HTTP API:

  GET  /healthz
  GET  /api/programs
  GET  /api/programs/{id}
  POST /api/compare/ai-explain
  POST /api/compare/export

The server shuts down gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().StringVar(&opts.catalog, "catalog", "", "serve programs from a JSON catalog instead of the database")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if opts.addr != "" {
		cfg.Server.Addr = opts.addr
	}

	runner, err := c.newRunner(ctx, cfg, runnerSetup{noCache: opts.noCache, catalog: opts.catalog, scope: serverKeyScope})
	if err != nil {
		return err
	}
	defer runner.Close()

	if runner.Store == nil {
		printWarning("No program source configured; only inline programs can be exported")
	}
	if runner.Explainer == nil {
		printWarning("OpenAI API key not set; AI explanations are disabled")
	}

	observability.RegisterLogHooks(c.Logger)
	defer observability.Reset()

	srv := api.New(runner,
		api.WithLogger(c.Logger),
		api.WithMaxBodyBytes(cfg.Server.MaxBodyBytes),
	)
	return srv.Run(ctx, api.RunConfig{
		Addr:            cfg.Server.Addr,
		ReadTimeout:     cfg.Server.ReadTimeout.Duration,
		WriteTimeout:    cfg.Server.WriteTimeout.Duration,
		ShutdownTimeout: cfg.Server.ShutdownTimeout.Duration,
	})
}
