package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/backtoschool/progcompare/pkg/cache"
	"github.com/backtoschool/progcompare/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the program, explanation and document cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached entry from the configured backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			ch, err := newCache(cmd.Context(), cfg, false)
			if err != nil {
				return err
			}
			defer ch.Close()

			clearer, ok := ch.(cache.Clearer)
			if !ok {
				printInfo("Cache backend %q keeps nothing to clear", cfg.CacheBackend())
				return nil
			}
			count, err := clearer.Clear(cmd.Context())
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			if count == 0 {
				printInfo("Cache is empty")
				return nil
			}
			printSuccess("Cleared %d cached %s", count, plural(count, "entry", "entries"))
			printDetail("Backend: %s", cacheLocation(cfg))
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where the cache lives",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			fmt.Println(cacheLocation(cfg))
			return nil
		},
	}
}

// cacheLocation describes the configured backend: a directory for the file
// cache, the masked URL for redis.
func cacheLocation(cfg *config.Config) string {
	switch cfg.CacheBackend() {
	case config.CacheRedis:
		return maskURL(cfg.Redis.URL) + " (prefix " + cfg.Redis.Prefix + ")"
	case config.CacheNone:
		return "disabled"
	}
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir
	}
	dir, err := cacheDir()
	if err != nil {
		return "unavailable: " + err.Error()
	}
	return dir
}
