package cache

// ScopedKeyer prefixes every key of an inner Keyer. The HTTP API uses it
// to keep its entries apart from CLI entries in a shared Redis.
//
//	apiKeyer := NewScopedKeyer(NewDefaultKeyer(), "api:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer means
// DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// EdgesKey returns the prefixed edge list key.
func (k *ScopedKeyer) EdgesKey(model string, opts EdgesKeyOpts) string {
	return k.prefix + k.inner.EdgesKey(model, opts)
}

// ArtifactKey returns the prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(graphHash, opts)
}
