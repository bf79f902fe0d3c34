package store

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/backtoschool/progcompare/pkg/cache"
	"github.com/backtoschool/progcompare/pkg/observability"
	"github.com/backtoschool/progcompare/pkg/program"
)

// Cached serves single-program lookups from a cache before asking the
// wrapped store. Listings always go to the wrapped store.
type Cached struct {
	inner  Store
	cache  cache.Cache
	keyer  cache.Keyer
	ttl    time.Duration
	logger *log.Logger
}

// NewCached wraps inner. A nil keyer uses [cache.NewDefaultKeyer]; a nil
// logger discards cache warnings.
func NewCached(inner Store, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Cached {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Cached{inner: inner, cache: c, keyer: keyer, ttl: cache.ProgramTTL, logger: logger}
}

func (s *Cached) Program(ctx context.Context, id int64) (*program.Program, error) {
	key := s.keyer.ProgramKey(id)
	if data, hit, err := s.cache.Get(ctx, key); err != nil {
		s.logger.Warn("program cache read failed", "id", id, "error", err)
	} else if hit {
		var p program.Program
		if err := json.Unmarshal(data, &p); err == nil {
			observability.Cache().OnCacheHit(ctx, "program")
			return &p, nil
		}
		_ = s.cache.Delete(ctx, key)
	}
	observability.Cache().OnCacheMiss(ctx, "program")

	p, err := s.inner.Program(ctx, id)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(p); err == nil {
		if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
			s.logger.Warn("program cache write failed", "id", id, "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "program", len(data))
		}
	}
	return p, nil
}

func (s *Cached) Programs(ctx context.Context, limit int) ([]program.Program, error) {
	return s.inner.Programs(ctx, limit)
}

// Close closes the wrapped store. The cache is owned by the caller.
func (s *Cached) Close() error {
	return s.inner.Close()
}

var _ Store = (*Cached)(nil)
