package cache

// ScopedKeyer wraps a Keyer with a prefix so caches can be shared between
// sequence sources. Slices of component "tig1" read from two different
// FASTA files must not collide:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "fa:"+Hash(fastaBytes)[:16]+":")
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

// SequenceKey returns the prefixed sequence key.
func (k *ScopedKeyer) SequenceKey(id string, start, end int) string {
	return k.prefix + k.inner.SequenceKey(id, start, end)
}

// ObjectKey returns the prefixed object key.
func (k *ScopedKeyer) ObjectKey(layoutHash, object string) string {
	return k.prefix + k.inner.ObjectKey(layoutHash, object)
}
