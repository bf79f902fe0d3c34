// Package explain generates the AI comparison summary of two programs.
//
// An [Explainer] builds a neutral academic-advisor prompt from both programs,
// sends it to a [Completer] (normally [OpenAI]) and caches the answer for an
// hour. Errors are always coded AI_UNAVAILABLE:
//
//	ex := explain.New(explain.NewOpenAI(apiKey), explain.WithCache(c, cache.NewDefaultKeyer()))
//	summary, err := ex.Explain(ctx, a, b)
//	if errors.Is(err, errors.ErrCodeAIUnavailable) {
//	    // export without the summary
//	}
package explain

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/backtoschool/progcompare/pkg/cache"
	"github.com/backtoschool/progcompare/pkg/errors"
	"github.com/backtoschool/progcompare/pkg/observability"
	"github.com/backtoschool/progcompare/pkg/program"
)

// User-facing messages.
const (
	NotConfiguredMessage = "OpenAI API key not configured"
	FailedMessage        = "Failed to generate AI comparison explanation"
	FallbackText         = "Unable to generate comparison at this time. Please try again."
)

// Completer sends one system + user prompt pair to a chat model and returns
// the text of the first choice ("" when the model returned nothing).
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
	Model() string
}

// Explainer produces comparison summaries.
type Explainer struct {
	client Completer
	cache  cache.Cache
	keyer  cache.Keyer
	ttl    time.Duration
	logger *log.Logger
}

// Option configures an [Explainer].
type Option func(*Explainer)

// WithCache stores summaries in c under keys from keyer.
func WithCache(c cache.Cache, keyer cache.Keyer) Option {
	return func(e *Explainer) {
		e.cache = c
		if keyer != nil {
			e.keyer = keyer
		}
	}
}

// WithTTL overrides [cache.ExplanationTTL].
func WithTTL(ttl time.Duration) Option {
	return func(e *Explainer) { e.ttl = ttl }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Explainer) { e.logger = l }
}

// New returns an explainer backed by client. A nil client is allowed: every
// call then fails with [NotConfiguredMessage].
func New(client Completer, opts ...Option) *Explainer {
	e := &Explainer{
		client: client,
		cache:  cache.NewNullCache(),
		keyer:  cache.NewDefaultKeyer(),
		ttl:    cache.ExplanationTTL,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return e
}

// Available reports whether a model client is configured.
func (e *Explainer) Available() bool { return e.client != nil }

// Explain returns the comparison summary of a and b.
//
// Summaries are cached per ordered pair. An empty model answer yields
// [FallbackText], which is returned but not cached.
func (e *Explainer) Explain(ctx context.Context, a, b *program.Program) (string, error) {
	if e.client == nil {
		return "", errors.New(errors.ErrCodeAIUnavailable, NotConfiguredMessage)
	}

	key := e.key(a, b)
	if key != "" {
		data, hit, err := e.cache.Get(ctx, key)
		if err != nil {
			e.logger.Warn("explanation cache read failed", "key", key, "error", err)
		}
		if hit {
			observability.Cache().OnCacheHit(ctx, "explanation")
			e.logger.Debug("returning cached explanation", "key", key)
			return string(data), nil
		}
		observability.Cache().OnCacheMiss(ctx, "explanation")
	}

	model := e.client.Model()
	observability.Explain().OnExplainRequest(ctx, model)
	start := time.Now()

	var summary string
	err := cache.RetryWithBackoff(ctx, func() error {
		var err error
		summary, err = e.client.Complete(ctx, SystemPrompt, UserPrompt(a, b))
		return err
	})
	observability.Explain().OnExplainComplete(ctx, model, len(summary), time.Since(start), err)
	if err != nil {
		e.logger.Error("generate comparison explanation", "model", model, "error", err)
		return "", errors.Wrap(errors.ErrCodeAIUnavailable, err, FailedMessage)
	}

	if strings.TrimSpace(summary) == "" {
		return FallbackText, nil
	}

	if key != "" {
		if err := e.cache.Set(ctx, key, []byte(summary), e.ttl); err != nil {
			e.logger.Warn("explanation cache write failed", "key", key, "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "explanation", len(summary))
		}
	}
	e.logger.Info("explanation generated", "programA", a.ID, "programB", b.ID)
	return summary, nil
}

// key identifies a pair by stored ids, or by content for unsaved programs.
func (e *Explainer) key(a, b *program.Program) string {
	if a.ID != 0 && b.ID != 0 {
		return e.keyer.ExplanationKey(a.ID, b.ID)
	}
	digest, err := cache.HashJSON([2]*program.Program{a, b})
	if err != nil {
		return ""
	}
	return e.keyer.ContentExplanationKey(digest)
}
