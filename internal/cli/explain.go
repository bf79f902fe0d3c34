package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/backtoschool/progcompare/pkg/errors"
	"github.com/backtoschool/progcompare/pkg/explain"
	"github.com/backtoschool/progcompare/pkg/pipeline"
)

// explainCommand creates the explain command.
func (c *CLI) explainCommand() *cobra.Command {
	var s sides

	cmd := &cobra.Command{
		Use:   "explain [program-a-id] [program-b-id]",
		Short: "Print an AI-written comparison of two programs",
		Long: `Explain asks the configured OpenAI model for a short comparison of two
programs covering cost, duration, career prospects and who each suits.

Requires openai.api_key in the config file or OPENAI_API_KEY.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExplain(cmd.Context(), args, &s)
		},
	}
	s.register(cmd)
	return cmd
}

func (c *CLI) runExplain(ctx context.Context, args []string, s *sides) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, cfg, runnerSetup{noCache: s.noCache, catalog: s.catalog})
	if err != nil {
		return err
	}
	defer runner.Close()

	if runner.Explainer == nil {
		return errors.New(errors.ErrCodeAIUnavailable, explain.NotConfiguredMessage)
	}

	var opts pipeline.Options
	if err := s.apply(&opts, args); err != nil {
		return err
	}
	a, b, err := runner.Resolve(ctx, opts)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Asking "+cfg.OpenAI.Model+"...")
	spinner.Start()
	summary, err := runner.Explainer.Explain(ctx, a, b)
	if err != nil {
		spinner.StopWithError("Explanation failed")
		return err
	}
	spinner.Stop()

	fmt.Println(StyleTitle.Render(a.DisplayName("Program A")) +
		StyleDim.Render(" vs ") +
		StyleTitle.Render(b.DisplayName("Program B")))
	printNewline()
	fmt.Println(summary)
	return nil
}
