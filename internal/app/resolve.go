package app

import (
	"context"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/rs/zerolog/log"

	"modelsrepo/internal/core"
	"modelsrepo/internal/types"
)

// ResolveRequest describes one resolution call.
type ResolveRequest struct {
	Dtmis []string
	Mode  types.DependencyMode
}

// Resolve retrieves the requested models and, per the dependency mode,
// their transitive closure. The repository capability metadata is fetched
// at most once per Service lifetime; a failed attempt degrades to "no
// expanded support" for this call and is retried on the next one.
func (s *Service) Resolve(ctx context.Context, req ResolveRequest) (types.ResolvedModels, error) {
	assert.NotEmpty(ctx, s.Location, "repository location must be set")
	if err := core.ValidateDtmis(req.Dtmis); err != nil {
		return nil, err
	}
	mode := req.Mode
	if mode == "" {
		mode = types.DependencyModeEnabled
	}

	fetcher, err := s.NewFetcher()
	if err != nil {
		return nil, err
	}
	defer func() { _ = fetcher.Close() }()

	if mode != types.DependencyModeDisabled && s.Scheduler.ShouldFetch() {
		meta, err := fetcher.FetchMetadata(ctx)
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).
				Msg("repository metadata unavailable, assuming no expanded support")
		} else {
			s.Scheduler.MarkFetched(meta)
		}
	}

	tryExpanded := mode == types.DependencyModeTryFromExpanded ||
		(mode == types.DependencyModeEnabled && s.Scheduler.SupportsExpanded())

	resolver := core.NewResolverCore(fetcher)
	resolved, err := resolver.Process(ctx, req.Dtmis, mode, tryExpanded)
	if err != nil {
		return nil, err
	}
	log.Ctx(ctx).Debug().Int("models", len(resolved)).Str("mode", string(mode)).
		Msg("resolution completed")
	return resolved, nil
}

// Metadata fetches the repository's metadata document directly, outside
// the scheduler's at-most-once lifecycle.
func (s *Service) Metadata(ctx context.Context) (types.RepositoryMetadata, error) {
	fetcher, err := s.NewFetcher()
	if err != nil {
		return types.RepositoryMetadata{}, err
	}
	defer func() { _ = fetcher.Close() }()
	return fetcher.FetchMetadata(ctx)
}
