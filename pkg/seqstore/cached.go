package seqstore

import (
	"context"

	"github.com/matzehuels/agptools/pkg/assemble"
	"github.com/matzehuels/agptools/pkg/cache"
	"github.com/matzehuels/agptools/pkg/observability"
)

// CachedProvider memoizes the slices returned by another provider.
type CachedProvider struct {
	inner assemble.SequenceProvider
	cache cache.Cache
	keyer cache.Keyer
}

// Cached wraps inner so every slice is looked up in c first and stored
// after a miss. A nil keyer means SourceKeyer(inner). Cache failures are
// reported to the cache hooks and otherwise ignored: the slice is fetched
// from inner.
func Cached(inner assemble.SequenceProvider, c cache.Cache, keyer cache.Keyer) *CachedProvider {
	if keyer == nil {
		keyer = SourceKeyer(inner)
	}
	return &CachedProvider{inner: inner, cache: c, keyer: keyer}
}

// SourceKeyer scopes the default keys by p's Source so slices of the same
// component id from different stores never collide. Providers without a
// Source get the unscoped keyer.
func SourceKeyer(p assemble.SequenceProvider) cache.Keyer {
	if src := assemble.SourceOf(p); src != "" {
		return cache.NewScopedKeyer(nil, src+":")
	}
	return cache.NewDefaultKeyer()
}

// Source forwards the wrapped provider's Source.
func (p *CachedProvider) Source() string { return assemble.SourceOf(p.inner) }

// Fetch returns the cached slice or fetches and stores it.
func (p *CachedProvider) Fetch(ctx context.Context, id string, start, end int) ([]byte, error) {
	hooks := observability.Cache()
	key := p.keyer.SequenceKey(id, start, end)

	data, hit, err := p.cache.Get(ctx, key)
	if err != nil {
		hooks.OnCacheError(ctx, "get", key, err)
	}
	if hit {
		hooks.OnCacheHit(ctx, key)
		return data, nil
	}
	hooks.OnCacheMiss(ctx, key)

	data, err = p.inner.Fetch(ctx, id, start, end)
	if err != nil {
		return nil, err
	}
	if err := p.cache.Set(ctx, key, data, cache.DefaultTTL); err != nil {
		hooks.OnCacheError(ctx, "set", key, err)
	}
	return data, nil
}

var (
	_ assemble.SequenceProvider = (*CachedProvider)(nil)
	_ assemble.Sourced          = (*CachedProvider)(nil)
)
