// Package pipeline provides the comparison export pipeline for progcompare.
//
// This package implements the complete resolve → explain → render pipeline
// shared by the CLI and the HTTP API, so both entry points look programs up,
// attach AI summaries and name files the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Resolve: Take inline programs or look ids up in a [store.Store]
//  2. Explain: Optionally generate the AI comparison summary
//  3. Render: Lay the comparison out as a PDF or as recorded JSON
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger,
//	    pipeline.WithStore(st),
//	    pipeline.WithExplainer(ex),
//	)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    ProgramAID:            12,
//	    ProgramBID:            40,
//	    GenerateAIExplanation: true,
//	})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile(result.Filename, result.Data, 0o644)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/backtoschool/progcompare/pkg/cache"
	"github.com/backtoschool/progcompare/pkg/errors"
	"github.com/backtoschool/progcompare/pkg/program"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// Format constants for output formats.
const (
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// DefaultFormat is the output format when none is given.
const DefaultFormat = FormatPDF

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPDF:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one export.
// This struct supports JSON serialization for API requests.
//
// Each side of the comparison is either an inline program or a stored id;
// the inline program wins when both are given.
type Options struct {
	ProgramA   *program.Program `json:"programA,omitempty"`
	ProgramB   *program.Program `json:"programB,omitempty"`
	ProgramAID int64            `json:"programAId,omitempty"`
	ProgramBID int64            `json:"programBId,omitempty"`

	IncludeAIExplanation  bool   `json:"includeAIExplanation,omitempty"`
	AIExplanation         string `json:"aiExplanation,omitempty"`
	GenerateAIExplanation bool   `json:"generateAIExplanation,omitempty"`

	Format  string `json:"format,omitempty"`
	Refresh bool   `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Now    func() time.Time `json:"-"`
	Logger *log.Logger      `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Filename    string
	ContentType string
	Data        []byte
	Pages       int

	// Explanation is the summary printed in the document, if any.
	Explanation string

	// Warnings lists problems that degraded the document without failing it.
	Warnings []string

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ResolveTime time.Duration
	ExplainTime time.Duration
	RenderTime  time.Duration
	Size        int
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	ArtifactHit bool // Whether the document came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := validateSide("programA", o.ProgramA, o.ProgramAID); err != nil {
		return err
	}
	if err := validateSide("programB", o.ProgramB, o.ProgramBID); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	if o.GenerateAIExplanation {
		o.IncludeAIExplanation = true
	}
	o.validated = true
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering only. The
// programs are not checked.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return errors.ValidateFormat(o.Format, ValidFormats)
}

func validateSide(name string, p *program.Program, id int64) error {
	if p != nil {
		return nil
	}
	if id == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "%s or %sId is required", name, name)
	}
	return errors.ValidateProgramID(id)
}

// NeedsStore reports whether any side must be looked up by id.
func (o *Options) NeedsStore() bool {
	return o.ProgramA == nil || o.ProgramB == nil
}

// WantsGeneratedExplanation reports whether the explainer should be called.
// A caller-supplied summary always wins over generating a new one.
func (o *Options) WantsGeneratedExplanation() bool {
	return o.GenerateAIExplanation && o.AIExplanation == ""
}

// ArtifactKeyOpts returns cache key options for the rendered document. The
// date is part of the key because it is printed in the header.
func (o *Options) ArtifactKeyOpts(now time.Time) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: o.Format,
		Date:   now.Format(time.DateOnly),
	}
}
