package ports

import (
	"context"

	"modelsrepo/internal/types"
)

// ModelFetcher retrieves raw model documents from a repository location.
// Implementations collapse their transport's error taxonomy to two kinds
// before it reaches the resolver: errbuilder.CodeNotFound for a missing
// path and errbuilder.CodeUnavailable for everything else.
type ModelFetcher interface {
	// Fetch retrieves the document for one DTMI. When tryExpanded is set
	// the precomputed expanded variant is attempted first; a not-found
	// result (and only that) falls back to the plain variant. The returned
	// FetchResult records which variant actually produced the document.
	Fetch(ctx context.Context, dtmi string, tryExpanded bool) (types.FetchResult, error)

	// FetchMetadata retrieves the repository's metadata.json resource.
	FetchMetadata(ctx context.Context) (types.RepositoryMetadata, error)

	// Close releases the underlying connection or handle. Safe to call on
	// every exit path.
	Close() error
}
