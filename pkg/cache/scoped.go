package cache

// ScopedKeyer wraps a Keyer with a prefix so several deployments, or several
// releases of the renderer, can share one Redis instance without collisions.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "polypath:v2:")
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

// PathsKey generates a prefixed key for enumeration results.
func (k *ScopedKeyer) PathsKey(size int) string {
	return k.prefix + k.inner.PathsKey(size)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(pathsHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(pathsHash, opts)
}
