package adapters

import (
	"context"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modelsrepo/internal/types"
)

type countingFetcher struct {
	models    map[string]string
	fetches   int
	metaCalls int
}

func (f *countingFetcher) Fetch(_ context.Context, dtmi string, _ bool) (types.FetchResult, error) {
	f.fetches++
	if doc, ok := f.models[dtmi]; ok {
		return types.FetchResult{Definition: doc}, nil
	}
	return types.FetchResult{}, errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg("model document not found")
}

func (f *countingFetcher) FetchMetadata(context.Context) (types.RepositoryMetadata, error) {
	f.metaCalls++
	return types.RepositoryMetadata{}, nil
}

func (f *countingFetcher) Close() error { return nil }

func TestCachingFetcherHit(t *testing.T) {
	inner := &countingFetcher{models: map[string]string{"dtmi:a;1": `{"@id": "dtmi:a;1"}`}}
	cache, err := NewModelCache(8)
	require.NoError(t, err)
	fetcher := NewCachingFetcherAdapter(inner, cache)

	for i := 0; i < 3; i++ {
		result, err := fetcher.Fetch(context.Background(), "dtmi:a;1", false)
		require.NoError(t, err)
		assert.Contains(t, result.Definition, "dtmi:a;1")
	}
	assert.Equal(t, 1, inner.fetches)
}

func TestCachingFetcherVariantsCachedSeparately(t *testing.T) {
	inner := &countingFetcher{models: map[string]string{"dtmi:a;1": `{"@id": "dtmi:a;1"}`}}
	cache, err := NewModelCache(8)
	require.NoError(t, err)
	fetcher := NewCachingFetcherAdapter(inner, cache)

	_, err = fetcher.Fetch(context.Background(), "dtmi:a;1", false)
	require.NoError(t, err)
	_, err = fetcher.Fetch(context.Background(), "dtmi:a;1", true)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.fetches)
}

func TestCachingFetcherErrorNotCached(t *testing.T) {
	inner := &countingFetcher{}
	cache, err := NewModelCache(8)
	require.NoError(t, err)
	fetcher := NewCachingFetcherAdapter(inner, cache)

	for i := 0; i < 2; i++ {
		_, err := fetcher.Fetch(context.Background(), "dtmi:missing;1", false)
		require.Error(t, err)
	}
	assert.Equal(t, 2, inner.fetches)
}

func TestCachingFetcherMetadataPassthrough(t *testing.T) {
	inner := &countingFetcher{}
	cache, err := NewModelCache(8)
	require.NoError(t, err)
	fetcher := NewCachingFetcherAdapter(inner, cache)

	for i := 0; i < 2; i++ {
		_, err := fetcher.FetchMetadata(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, 2, inner.metaCalls)
}

func TestCacheSharedAcrossAdapters(t *testing.T) {
	inner := &countingFetcher{models: map[string]string{"dtmi:a;1": `{"@id": "dtmi:a;1"}`}}
	cache, err := NewModelCache(8)
	require.NoError(t, err)

	first := NewCachingFetcherAdapter(inner, cache)
	_, err = first.Fetch(context.Background(), "dtmi:a;1", false)
	require.NoError(t, err)

	second := NewCachingFetcherAdapter(inner, cache)
	_, err = second.Fetch(context.Background(), "dtmi:a;1", false)
	require.NoError(t, err)

	assert.Equal(t, 1, inner.fetches)
}
