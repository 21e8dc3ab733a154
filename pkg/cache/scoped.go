package cache

// ScopedKeyer wraps a Keyer with a prefix, so that several tools can share
// one backend without their keys colliding.
//
// Example usage:
//
//	// Drawings issued by the HTTP service
//	apiKeyer := NewScopedKeyer(NewDefaultKeyer(), "rnadraw:api:")
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

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(inputHash, opts)
}

// DrawingKey generates a prefixed key for an API drawing.
func (k *ScopedKeyer) DrawingKey(id, format string) string {
	return k.prefix + k.inner.DrawingKey(id, format)
}
