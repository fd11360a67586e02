package adapters

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"modelsrepo/internal/ports"
	"modelsrepo/internal/types"
)

// ModelCache is an LRU cache of fetched documents keyed per DTMI and
// variant. It outlives individual fetchers so repeated resolve calls on
// one client avoid refetching unchanged models.
type ModelCache = lru.Cache[string, types.FetchResult]

func NewModelCache(size int) (*ModelCache, error) {
	return lru.New[string, types.FetchResult](size)
}

// CachingFetcherAdapter decorates a fetcher with a shared ModelCache.
// Metadata is never cached; its at-most-once lifecycle belongs to the
// metadata scheduler.
type CachingFetcherAdapter struct {
	inner ports.ModelFetcher
	cache *ModelCache
}

func NewCachingFetcherAdapter(inner ports.ModelFetcher, cache *ModelCache) *CachingFetcherAdapter {
	return &CachingFetcherAdapter{inner: inner, cache: cache}
}

func (a *CachingFetcherAdapter) Fetch(ctx context.Context, dtmi string, tryExpanded bool) (types.FetchResult, error) {
	key := cacheKey(dtmi, tryExpanded)
	if result, ok := a.cache.Get(key); ok {
		return result, nil
	}
	result, err := a.inner.Fetch(ctx, dtmi, tryExpanded)
	if err != nil {
		return types.FetchResult{}, err
	}
	a.cache.Add(key, result)
	return result, nil
}

func (a *CachingFetcherAdapter) FetchMetadata(ctx context.Context) (types.RepositoryMetadata, error) {
	return a.inner.FetchMetadata(ctx)
}

func (a *CachingFetcherAdapter) Close() error {
	return a.inner.Close()
}

func cacheKey(dtmi string, tryExpanded bool) string {
	return fmt.Sprintf("%s|%t", dtmi, tryExpanded)
}
