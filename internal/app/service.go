package app

import (
	"time"

	"modelsrepo/internal/adapters"
	"modelsrepo/internal/core"
	"modelsrepo/internal/ports"
)

// Service is the models repository client facade. It owns the repository
// location, the per-instance metadata scheduler, the optional document
// cache, and the fetcher factory. The scheduler and cache are the only
// state shared across calls on one Service.
type Service struct {
	Location   string
	NewFetcher func() (ports.ModelFetcher, error)
	Scheduler  *core.MetadataScheduler
}

// Options tunes Service construction.
type Options struct {
	// Timeout bounds each repository request (HTTP locations only).
	Timeout time.Duration
	// CacheSize enables an LRU document cache across resolve calls when
	// positive.
	CacheSize int
	// DisableMetadata skips the repository capability probe entirely.
	DisableMetadata bool
}

// NewService builds a client for one repository location. The location is
// classified eagerly so an unrecognizable one fails construction rather
// than the first resolve call.
func NewService(location string, opts Options) (*Service, error) {
	if location == "" {
		location = adapters.DefaultRepository
	}
	probe, err := adapters.NewFetcher(location, opts.Timeout)
	if err != nil {
		return nil, err
	}
	_ = probe.Close()

	var cache *adapters.ModelCache
	if opts.CacheSize > 0 {
		cache, err = adapters.NewModelCache(opts.CacheSize)
		if err != nil {
			return nil, err
		}
	}

	factory := func() (ports.ModelFetcher, error) {
		fetcher, err := adapters.NewFetcher(location, opts.Timeout)
		if err != nil {
			return nil, err
		}
		if cache != nil {
			return adapters.NewCachingFetcherAdapter(fetcher, cache), nil
		}
		return fetcher, nil
	}

	return &Service{
		Location:   location,
		NewFetcher: factory,
		Scheduler:  core.NewMetadataScheduler(!opts.DisableMetadata),
	}, nil
}
