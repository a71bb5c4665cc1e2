package cache

import "fmt"

// Keyer builds cache keys.
type Keyer interface {
	// SequenceKey is the key of bases [start, end] of component id.
	SequenceKey(id string, start, end int) string
	// ObjectKey is the key of an assembled object within a layout,
	// identified by the hash of the layout's AGP text.
	ObjectKey(layoutHash, object string) string
}

// DefaultKeyer is the unscoped key layout.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// SequenceKey returns "seq:<id>:<start>-<end>".
func (DefaultKeyer) SequenceKey(id string, start, end int) string {
	return fmt.Sprintf("seq:%s:%d-%d", id, start, end)
}

// ObjectKey returns a hashed "object:" key.
func (DefaultKeyer) ObjectKey(layoutHash, object string) string {
	return hashKey("object", layoutHash, object)
}
