package core

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"modelsrepo/internal/ports"
	"modelsrepo/internal/types"
)

// ResolverCore walks the dependency graph of the requested DTMIs against
// one repository fetcher. The working queue and result set are owned by a
// single Process call; the core itself holds no cross-call state.
type ResolverCore struct {
	Fetcher ports.ModelFetcher
}

func NewResolverCore(fetcher ports.ModelFetcher) ResolverCore {
	return ResolverCore{Fetcher: fetcher}
}

// Process resolves the requested DTMIs and, depending on mode, their
// transitive dependency closure. tryExpanded selects whether each fetch
// attempts the precomputed expanded variant first. All-or-nothing: any
// fatal error returns no partial result.
func (r ResolverCore) Process(ctx context.Context, dtmis []string, mode types.DependencyMode, tryExpanded bool) (types.ResolvedModels, error) {
	if r.Fetcher == nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("resolver requires a model fetcher")
	}
	if err := ValidateDtmis(dtmis); err != nil {
		return nil, err
	}
	if mode == types.DependencyModeDisabled {
		tryExpanded = false
	}

	queue := append([]string(nil), dtmis...)
	resolved := types.ResolvedModels{}

	for len(queue) > 0 {
		dtmi := queue[0]
		queue = queue[1:]
		if _, ok := resolved[dtmi]; ok {
			continue
		}

		result, err := r.Fetcher.Fetch(ctx, dtmi, tryExpanded)
		if err != nil {
			return nil, err
		}

		if result.FromExpanded {
			models, err := ParseModelList(result.Definition)
			if err != nil {
				return nil, err
			}
			// The expanded document carries the full transitive closure;
			// nothing further is enqueued for this branch.
			for id, definition := range models {
				if _, ok := resolved[id]; !ok {
					resolved[id] = definition
				}
			}
			log.Ctx(ctx).Debug().Str("dtmi", dtmi).Int("models", len(models)).
				Msg("resolved from expanded document")
			continue
		}

		meta, err := ParseModel(result.Definition)
		if err != nil {
			return nil, err
		}
		if meta.ID != dtmi {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg(fmt.Sprintf("retrieved model @id %q does not match requested %q", meta.ID, dtmi))
		}
		if mode != types.DependencyModeDisabled {
			for _, dep := range meta.Dependencies() {
				if _, ok := resolved[dep]; !ok {
					queue = append(queue, dep)
				}
			}
		}
		resolved[dtmi] = result.Definition
		log.Ctx(ctx).Debug().Str("dtmi", dtmi).Int("dependencies", len(meta.Dependencies())).
			Msg("resolved model")
	}

	return resolved, nil
}

// ValidateDtmis rejects the whole input set if any identifier fails the
// DTMI grammar. No fetch happens on invalid input.
func ValidateDtmis(dtmis []string) error {
	if len(dtmis) == 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("at least one DTMI is required")
	}
	for _, dtmi := range dtmis {
		if !IsValidDtmi(dtmi) {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid DTMI: %q", dtmi))
		}
	}
	return nil
}
