package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

// Execute builds the root command with a --verbose flag and runs it under
// ctx. It is the entry point used by cmd/progcompare.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
func Execute(ctx context.Context, args []string) error {
	return newRootWithVerbose(New(os.Stderr, LogInfo), args).ExecuteContext(ctx)
}

// newRootWithVerbose wires --verbose into the CLI logger ahead of the root
// command's own pre-run hook.
func newRootWithVerbose(c *CLI, args []string) *cobra.Command {
	var verbose bool

	root := c.RootCommand()
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	inner := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		level := LogInfo
		if verbose {
			level = LogDebug
		}
		c.SetLogLevel(level)

		if inner != nil {
			return inner(cmd, args)
		}
		return nil
	}

	if args != nil {
		root.SetArgs(args)
	}
	return root
}
