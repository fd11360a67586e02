package core

import (
	"sync"

	"modelsrepo/internal/types"
)

// MetadataScheduler tracks whether repository metadata has been fetched
// for the lifetime of one client instance, together with the capability
// flags learned from it. The fetched flag is monotonic: a successful
// fetch is never repeated, while a failed attempt leaves the scheduler
// eligible so a later resolve call can retry.
type MetadataScheduler struct {
	mu       sync.Mutex
	enabled  bool
	fetched  bool
	expanded bool
}

// NewMetadataScheduler returns a scheduler. A disabled scheduler never
// requests a fetch and reports no expanded support.
func NewMetadataScheduler(enabled bool) *MetadataScheduler {
	return &MetadataScheduler{enabled: enabled}
}

// ShouldFetch reports whether the caller should attempt a metadata fetch.
func (s *MetadataScheduler) ShouldFetch() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled && !s.fetched
}

// MarkFetched records a successful metadata fetch and caches the
// advertised capabilities. Idempotent.
func (s *MetadataScheduler) MarkFetched(meta types.RepositoryMetadata) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fetched {
		return
	}
	s.fetched = true
	s.expanded = meta.Features.Expanded
}

// SupportsExpanded reports whether the repository advertised expanded
// document support. False until a metadata fetch succeeds.
func (s *MetadataScheduler) SupportsExpanded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetched && s.expanded
}
