package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/backtoschool/progcompare/pkg/errors"
	"github.com/backtoschool/progcompare/pkg/format"
	"github.com/backtoschool/progcompare/pkg/program"
)

// programsCommand creates the programs command.
func (c *CLI) programsCommand() *cobra.Command {
	var (
		catalog string
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "programs",
		Short: "List programs available for comparison",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPrograms(cmd.Context(), catalog, limit)
		},
	}

	cmd.Flags().StringVar(&catalog, "catalog", "", "list a JSON catalog instead of the database")
	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "maximum number of programs (0 for all)")

	return cmd
}

func (c *CLI) runPrograms(ctx context.Context, catalog string, limit int) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, cfg, runnerSetup{catalog: catalog})
	if err != nil {
		return err
	}
	defer runner.Close()

	if runner.Store == nil {
		return errors.New(errors.ErrCodeInvalidInput, "no program source: set database.url, database.catalog or --catalog")
	}
	programs, err := runner.Store.Programs(ctx, limit)
	if err != nil {
		return err
	}
	if len(programs) == 0 {
		printInfo("No programs found")
		return nil
	}

	fmt.Println(programsTable(programs))
	printDetail("%d %s", len(programs), plural(len(programs), "program", "programs"))
	return nil
}

// programsTable renders programs as a bordered table.
func programsTable(programs []program.Program) string {
	rows := make([][]string, len(programs))
	for i, p := range programs {
		rows[i] = []string{
			strconv.FormatInt(p.ID, 10),
			p.DisplayName("Unnamed program"),
			orDash(format.UniversityName(p.University)),
			orDash(format.Level(p.Level)),
			orDash(format.Duration(p.Duration, p.DurationMonths)),
			orDash(format.Currency(p.TuitionFeeAmount, p.Currency, p.TuitionFeePeriod)),
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Program", "University", "Level", "Duration", "Fee").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return listHeaderStyle
			case col == 0:
				return StyleHighlight
			case col >= 3:
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return StyleValue
		}).
		Render()
}
