package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/backtoschool/progcompare/pkg/cache"
	"github.com/backtoschool/progcompare/pkg/errors"
	"github.com/backtoschool/progcompare/pkg/observability"
	"github.com/backtoschool/progcompare/pkg/program"
	"github.com/backtoschool/progcompare/pkg/render/compare"
	"github.com/backtoschool/progcompare/pkg/store"
)

// Explainer generates the AI comparison summary. *explain.Explainer
// implements it.
type Explainer interface {
	Explain(ctx context.Context, a, b *program.Program) (string, error)
}

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating lookup and caching logic.
//
// The Runner is stateless except for its collaborators - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache     cache.Cache
	Keyer     cache.Keyer
	Logger    *log.Logger
	Store     store.Store
	Explainer Explainer

	// Producer is recorded in the PDF metadata.
	Producer string
	// Compress controls PDF stream compression.
	Compress bool
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithStore sets the store used to resolve program ids.
func WithStore(s store.Store) RunnerOption { return func(r *Runner) { r.Store = s } }

// WithExplainer sets the summary generator.
func WithExplainer(e Explainer) RunnerOption { return func(r *Runner) { r.Explainer = e } }

// WithProducer sets the PDF producer string.
func WithProducer(s string) RunnerOption { return func(r *Runner) { r.Producer = s } }

// WithCompression toggles PDF stream compression.
func WithCompression(on bool) RunnerOption { return func(r *Runner) { r.Compress = on } }

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger, opts ...RunnerOption) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	r := &Runner{
		Cache:    c,
		Keyer:    keyer,
		Logger:   logger,
		Compress: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Execute runs the complete resolve → explain → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (result *Result, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	start := time.Now()
	observability.Export().OnExportStart(ctx, opts.Format)
	defer func() {
		pages, size := 0, 0
		if result != nil {
			pages, size = result.Pages, len(result.Data)
		}
		observability.Export().OnExportComplete(ctx, opts.Format, pages, size, time.Since(start), err)
	}()

	result = &Result{}

	// Stage 1: Resolve
	resolveStart := time.Now()
	a, b, err := r.Resolve(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.ResolveTime = time.Since(resolveStart)
	opts.Logger.Debug("resolved programs",
		"programA", a.DisplayName("Program A"),
		"programB", b.DisplayName("Program B"),
		"duration", result.Stats.ResolveTime)

	// Stage 2: Explain
	req := program.Request{
		ProgramA:             *a,
		ProgramB:             *b,
		IncludeAIExplanation: opts.IncludeAIExplanation,
		AIExplanation:        opts.AIExplanation,
	}
	if opts.WantsGeneratedExplanation() {
		explainStart := time.Now()
		summary, warn := r.explain(ctx, a, b)
		result.Stats.ExplainTime = time.Since(explainStart)
		if warn != "" {
			result.Warnings = append(result.Warnings, warn)
		}
		req.AIExplanation = summary
	}
	if req.IncludeAIExplanation {
		result.Explanation = req.AIExplanation
	}

	// Stage 3: Render
	renderStart := time.Now()
	doc, hit, err := r.RenderWithCacheInfo(ctx, req, opts)
	if err != nil {
		return nil, err
	}
	result.Filename = doc.Filename
	result.ContentType = doc.ContentType
	result.Data = doc.Data
	result.Pages = doc.Pages
	result.Stats.RenderTime = time.Since(renderStart)
	result.Stats.Size = len(doc.Data)
	result.CacheInfo.ArtifactHit = hit

	opts.Logger.Info("exported comparison",
		"file", doc.Filename,
		"pages", doc.Pages,
		"bytes", len(doc.Data),
		"cached", hit,
		"duration", time.Since(start))

	return result, nil
}

// Resolve returns the two programs named by opts.
func (r *Runner) Resolve(ctx context.Context, opts Options) (*program.Program, *program.Program, error) {
	a, err := r.resolveOne(ctx, opts.ProgramA, opts.ProgramAID)
	if err != nil {
		return nil, nil, err
	}
	b, err := r.resolveOne(ctx, opts.ProgramB, opts.ProgramBID)
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

func (r *Runner) resolveOne(ctx context.Context, inline *program.Program, id int64) (*program.Program, error) {
	if inline != nil {
		return inline, nil
	}
	if r.Store == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "program %d given by id but no program store is configured", id)
	}
	return r.Store.Program(ctx, id)
}

// explain generates the summary. A failure never fails the export: the
// document is produced without the summary and the reason is returned as a
// warning.
func (r *Runner) explain(ctx context.Context, a, b *program.Program) (summary, warning string) {
	if r.Explainer == nil {
		return "", "AI explanation skipped: no explainer configured"
	}
	summary, err := r.Explainer.Explain(ctx, a, b)
	if err != nil {
		r.Logger.Warn("continuing without AI explanation", "error", err)
		return "", "AI explanation skipped: " + errors.UserMessage(err)
	}
	return summary, ""
}

// artifact is the cached form of a rendered document.
type artifact struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Pages       int    `json:"pages"`
	Data        []byte `json:"data"`
}

// RenderWithCacheInfo renders req in opts.Format, reusing a cached document
// for the same request and day when one exists.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, req program.Request, opts Options) (*compare.Document, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	now := opts.Now()

	var cacheKey string
	if reqHash, err := cache.HashJSON(req); err == nil {
		cacheKey = r.Keyer.ArtifactKey(reqHash, opts.ArtifactKeyOpts(now))
	}

	if cacheKey != "" && !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var a artifact
			if err := json.Unmarshal(data, &a); err == nil {
				observability.Cache().OnCacheHit(ctx, "artifact")
				return &compare.Document{
					Filename:    a.Filename,
					ContentType: a.ContentType,
					Data:        a.Data,
					Pages:       a.Pages,
				}, true, nil
			}
			// If deserialization fails, fall through to re-render
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	doc, err := Render(req, opts.Format, r.renderOptions(opts, now)...)
	if err != nil {
		return nil, false, err
	}

	if cacheKey != "" {
		data, err := json.Marshal(artifact{doc.Filename, doc.ContentType, doc.Pages, doc.Data})
		if err == nil {
			if err := r.Cache.Set(ctx, cacheKey, data, cache.ArtifactTTL); err != nil {
				r.Logger.Warn("artifact cache write failed", "error", err)
			} else {
				observability.Cache().OnCacheSet(ctx, "artifact", len(data))
			}
		}
	}
	return doc, false, nil
}

func (r *Runner) renderOptions(opts Options, now time.Time) []compare.Option {
	out := []compare.Option{
		compare.WithClock(func() time.Time { return now }),
		compare.WithLogger(opts.Logger),
	}
	if r.Producer != "" {
		out = append(out, compare.WithProducer(r.Producer))
	}
	if !r.Compress {
		out = append(out, compare.WithoutCompression())
	}
	return out
}

// Render produces the document for req in the given format.
func Render(req program.Request, format string, opts ...compare.Option) (*compare.Document, error) {
	switch format {
	case FormatPDF:
		return compare.RenderPDF(req, opts...)
	case FormatJSON:
		return compare.RenderJSON(req, opts...)
	default:
		return nil, errors.ExportFailed(fmt.Errorf("unsupported format %q", format))
	}
}

// Close releases resources held by the runner.
func (r *Runner) Close() error {
	var firstErr error
	if r.Store != nil {
		firstErr = r.Store.Close()
	}
	if r.Cache != nil {
		if err := r.Cache.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
