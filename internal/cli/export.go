package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/backtoschool/progcompare/pkg/errors"
	"github.com/backtoschool/progcompare/pkg/pipeline"
	"github.com/backtoschool/progcompare/pkg/program"
)

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	sides

	output      string // output file path (default: generated file name)
	format      string // "pdf" or "json"
	ai          bool   // generate an AI summary when none is supplied
	explanation string // AI summary text to print as-is
	request     string // JSON export request file (programA, programB, ...)
	interactive bool   // pick both programs from the store
	refresh     bool   // re-render even when the document is cached
}

// sides names the two programs of a comparison on the command line, either
// by id (positional arguments) or by JSON file.
type sides struct {
	fileA   string
	fileB   string
	catalog string
	noCache bool
}

func (s *sides) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.fileA, "a-file", "", "read program A from a JSON file")
	cmd.Flags().StringVar(&s.fileB, "b-file", "", "read program B from a JSON file")
	cmd.Flags().StringVar(&s.catalog, "catalog", "", "resolve ids from a JSON catalog instead of the database")
	cmd.Flags().BoolVar(&s.noCache, "no-cache", false, "disable caching")
}

// apply fills the program fields of opts from args and the file flags. A file
// flag wins over the positional id for the same side.
func (s *sides) apply(opts *pipeline.Options, args []string) error {
	ids := make([]int64, len(args))
	for i, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return errors.New(errors.ErrCodeInvalidProgram, "program id must be a number, got %q", arg)
		}
		ids[i] = id
	}

	var err error
	switch {
	case s.fileA != "":
		if opts.ProgramA, err = program.ImportJSON(s.fileA); err != nil {
			return err
		}
	case len(ids) > 0:
		opts.ProgramAID = ids[0]
	}
	switch {
	case s.fileB != "":
		if opts.ProgramB, err = program.ImportJSON(s.fileB); err != nil {
			return err
		}
	case len(ids) > 1:
		opts.ProgramBID = ids[1]
	case len(ids) == 1 && s.fileA != "":
		opts.ProgramBID = ids[0]
	}

	if opts.ProgramA == nil && opts.ProgramB == nil && len(ids) == 2 {
		return errors.ValidateProgramPair(ids[0], ids[1])
	}
	return nil
}

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var opts exportOpts

	cmd := &cobra.Command{
		Use:   "export [program-a-id] [program-b-id]",
		Short: "Export a comparison document for two programs",
		Long: `Export renders two programs side by side as an A4 PDF.

Programs are named by id (resolved from the configured database or --catalog),
read from JSON files with --a-file/--b-file, taken from a saved request with
--request, or picked interactively with -i.`,
		Example: `  progcompare export 12 40
  progcompare export --a-file accounting.json --b-file finance.json -o out.pdf
  progcompare export 12 40 --ai --format json`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd.Context(), args, &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: generated from program names)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: pdf (default), json")
	cmd.Flags().BoolVar(&opts.ai, "ai", false, "include an AI-generated comparison summary")
	cmd.Flags().StringVar(&opts.explanation, "explanation", "", "include this text as the AI comparison summary")
	cmd.Flags().StringVar(&opts.request, "request", "", "read an export request (programA, programB, aiExplanation) from a JSON file")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "pick both programs interactively")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore a cached document")

	return cmd
}

func (c *CLI) runExport(ctx context.Context, args []string, opts *exportOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	req := pipeline.Options{
		Format:                opts.format,
		Refresh:               opts.refresh,
		AIExplanation:         opts.explanation,
		IncludeAIExplanation:  opts.ai || opts.explanation != "",
		GenerateAIExplanation: opts.ai,
		Logger:                logger,
	}
	if req.Format == "" {
		req.Format = cfg.Export.Format
	}
	if opts.request != "" {
		if err := applyRequestFile(&req, opts.request); err != nil {
			return err
		}
	}

	runner, err := c.newRunner(ctx, cfg, runnerSetup{noCache: opts.noCache, catalog: opts.catalog})
	if err != nil {
		return err
	}
	defer runner.Close()

	switch {
	case opts.interactive:
		a, b, err := pickPrograms(ctx, runner)
		if err != nil {
			return err
		}
		if a == nil {
			printInfo("No programs selected")
			return nil
		}
		req.ProgramA, req.ProgramB = a, b
	case opts.request == "":
		if err := opts.apply(&req, args); err != nil {
			return err
		}
	}

	spinner := newSpinnerWithContext(ctx, "Rendering comparison...")
	spinner.Start()
	prog := newProgress(logger)
	res, err := runner.Execute(ctx, req)
	if err != nil {
		spinner.StopWithError("Export failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Exported %d %s", res.Pages, plural(res.Pages, "page", "pages")))

	path := opts.output
	if path == "" {
		path = res.Filename
	}
	if err := writeFileAtomic(path, res.Data); err != nil {
		return err
	}

	printSuccess("Comparison exported")
	printFile(path)
	printExportStats(res.Pages, len(res.Data), res.CacheInfo.ArtifactHit)
	for _, w := range res.Warnings {
		printWarning("%s", w)
	}
	return nil
}

// applyRequestFile copies a saved export request into opts. Flags already set
// on the command line win for the summary text.
func applyRequestFile(opts *pipeline.Options, path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.New(errors.ErrCodeFileNotFound, "file not found: %s", path)
		}
		return err
	}
	defer f.Close()

	r, err := program.ReadRequest(f)
	if err != nil {
		return err
	}
	opts.ProgramA, opts.ProgramB = &r.ProgramA, &r.ProgramB
	if opts.AIExplanation == "" {
		opts.AIExplanation = r.AIExplanation
	}
	opts.IncludeAIExplanation = opts.IncludeAIExplanation || r.IncludeAIExplanation
	return nil
}

// pickPrograms lists programs from the runner's store and runs the picker.
// It returns nil, nil when the user quits.
func pickPrograms(ctx context.Context, runner *pipeline.Runner) (*program.Program, *program.Program, error) {
	if runner.Store == nil {
		return nil, nil, errors.New(errors.ErrCodeInvalidInput, "interactive mode needs a database or --catalog")
	}
	programs, err := runner.Store.Programs(ctx, 0)
	if err != nil {
		return nil, nil, err
	}
	if len(programs) < 2 {
		return nil, nil, errors.New(errors.ErrCodeInvalidInput, "need at least two programs to compare, found %d", len(programs))
	}

	final, err := tea.NewProgram(NewProgramPickerModel(programs), tea.WithContext(ctx)).Run()
	if err != nil {
		return nil, nil, err
	}
	a, b := final.(ProgramPickerModel).Selection()
	return a, b, nil
}

// writeFileAtomic writes data to a temporary file beside path and renames it
// into place.
func writeFileAtomic(path string, data []byte) error {
	if err := errors.ValidateOutputPath(path); err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
