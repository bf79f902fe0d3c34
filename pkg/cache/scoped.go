package cache

// ScopedKeyer wraps a Keyer with a prefix. The HTTP server uses it to keep
// its artifacts apart from the ones written by CLI exports.
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "api:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

func (k *ScopedKeyer) ProgramKey(id int64) string {
	return k.prefix + k.inner.ProgramKey(id)
}

func (k *ScopedKeyer) ExplanationKey(idA, idB int64) string {
	return k.prefix + k.inner.ExplanationKey(idA, idB)
}

func (k *ScopedKeyer) ContentExplanationKey(digest string) string {
	return k.prefix + k.inner.ContentExplanationKey(digest)
}

func (k *ScopedKeyer) ArtifactKey(requestHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(requestHash, opts)
}
