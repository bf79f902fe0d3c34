package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/backtoschool/progcompare/pkg/buildinfo"
	"github.com/backtoschool/progcompare/pkg/cache"
	"github.com/backtoschool/progcompare/pkg/config"
	"github.com/backtoschool/progcompare/pkg/explain"
	"github.com/backtoschool/progcompare/pkg/pipeline"
	"github.com/backtoschool/progcompare/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "progcompare"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Progcompare exports side-by-side comparisons of study programs",
		Long: `Progcompare renders two university programs as a side-by-side comparison
document (A4 PDF or a JSON layout recording), optionally with an AI-written
summary, and serves the same exports over HTTP.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/progcompare/config.toml)")

	root.AddCommand(c.exportCommand())
	root.AddCommand(c.explainCommand())
	root.AddCommand(c.programsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the configuration once per process.
func (c *CLI) loadConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	var (
		cfg *config.Config
		err error
	)
	if c.configPath != "" {
		cfg, err = config.LoadFromPath(c.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	c.cfg = cfg
	return cfg, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// runnerSetup holds per-command overrides of the configured runner.
type runnerSetup struct {
	noCache bool   // use the null cache regardless of config
	catalog string // read programs from this JSON file instead of the database
	scope   string // key prefix separating this runner's cache entries
}

// newRunner creates a pipeline runner wired to the configured cache, program
// store and explainer.
func (c *CLI) newRunner(ctx context.Context, cfg *config.Config, setup runnerSetup) (*pipeline.Runner, error) {
	ch, err := newCache(ctx, cfg, setup.noCache)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewDefaultKeyer()
	if setup.scope != "" {
		keyer = cache.NewScopedKeyer(keyer, setup.scope)
	}

	opts := []pipeline.RunnerOption{
		pipeline.WithProducer(cfg.Export.Producer),
		pipeline.WithCompression(cfg.Export.Compress),
	}

	st, err := c.newStore(ctx, cfg, setup.catalog, ch, keyer)
	if err != nil {
		_ = ch.Close()
		return nil, err
	}
	if st != nil {
		opts = append(opts, pipeline.WithStore(st))
	}
	if ex := c.newExplainer(cfg, ch, keyer); ex != nil {
		opts = append(opts, pipeline.WithExplainer(ex))
	}

	return pipeline.NewRunner(ch, keyer, c.Logger, opts...), nil
}

func newCache(ctx context.Context, cfg *config.Config, noCache bool) (cache.Cache, error) {
	backend := cfg.CacheBackend()
	if noCache {
		backend = config.CacheNone
	}

	switch backend {
	case config.CacheNone:
		return cache.NewNullCache(), nil
	case config.CacheRedis:
		rc, err := cache.NewRedisCache(ctx, cfg.Redis.URL, cfg.Redis.Prefix)
		if err != nil {
			return nil, err
		}
		return rc, nil
	default:
		dir := cfg.Cache.Dir
		if dir == "" {
			d, err := cacheDir()
			if err != nil {
				return cache.NewNullCache(), nil
			}
			dir = d
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		return fc, nil
	}
}

// newStore opens the program store. A catalog override wins over the
// database URL, which wins over the configured catalog. Database reads go
// through the cache; catalogs are already in memory. It returns nil when no
// source is configured.
func (c *CLI) newStore(ctx context.Context, cfg *config.Config, catalog string, ch cache.Cache, keyer cache.Keyer) (store.Store, error) {
	switch {
	case catalog != "":
		return store.LoadCatalog(catalog)
	case cfg.Database.URL != "":
		pg, err := store.OpenPostgres(ctx, cfg.Database.URL)
		if err != nil {
			return nil, err
		}
		return store.NewCached(pg, ch, keyer, c.Logger), nil
	case cfg.Database.Catalog != "":
		return store.LoadCatalog(cfg.Database.Catalog)
	}
	return nil, nil
}

// newExplainer returns nil when no API key is configured.
func (c *CLI) newExplainer(cfg *config.Config, ch cache.Cache, keyer cache.Keyer) *explain.Explainer {
	if cfg.OpenAI.APIKey == "" {
		return nil
	}
	client := explain.NewOpenAI(cfg.OpenAI.APIKey,
		explain.WithModel(cfg.OpenAI.Model),
		explain.WithBaseURL(cfg.OpenAI.BaseURL),
		explain.WithSampling(cfg.OpenAI.Temperature, cfg.OpenAI.MaxTokens),
	)
	return explain.New(client,
		explain.WithCache(ch, keyer),
		explain.WithTTL(cache.ExplanationTTL),
		explain.WithLogger(c.Logger),
	)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/progcompare/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
