package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"modelsrepo/internal/core"
	"modelsrepo/internal/shared"
	"modelsrepo/internal/types"
)

// FileFetcherAdapter retrieves model documents from a repository laid out
// on the local filesystem.
//
// Known limitation: every OS-level read failure collapses to not-found,
// including permission errors, so a permissions problem on an expanded
// document triggers the plain-path fallback. Callers depend on this
// behavior, so it is kept rather than fixed.
type FileFetcherAdapter struct {
	BasePath string
}

func NewFileFetcherAdapter(basePath string) *FileFetcherAdapter {
	return &FileFetcherAdapter{BasePath: basePath}
}

func (a *FileFetcherAdapter) Fetch(ctx context.Context, dtmi string, tryExpanded bool) (types.FetchResult, error) {
	if tryExpanded {
		data, err := a.read(core.DtmiToPath(dtmi, true))
		if err == nil {
			return types.FetchResult{Definition: string(data), FromExpanded: true}, nil
		}
		log.Ctx(ctx).Debug().Str("dtmi", dtmi).Msg("expanded document absent, retrying plain path")
	}
	data, err := a.read(core.DtmiToPath(dtmi, false))
	if err != nil {
		return types.FetchResult{}, err
	}
	return types.FetchResult{Definition: string(data)}, nil
}

func (a *FileFetcherAdapter) FetchMetadata(ctx context.Context) (types.RepositoryMetadata, error) {
	data, err := a.read(core.MetadataPath)
	if err != nil {
		return types.RepositoryMetadata{}, err
	}
	var meta types.RepositoryMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return types.RepositoryMetadata{}, errbuilder.New().
			WithCode(errbuilder.CodeUnavailable).
			WithMsg("repository metadata is not valid JSON").
			WithCause(err)
	}
	return meta, nil
}

func (a *FileFetcherAdapter) Close() error {
	return nil
}

func (a *FileFetcherAdapter) read(relPath string) ([]byte, error) {
	path := filepath.Join(a.BasePath, filepath.FromSlash(relPath))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("model document not found: %s", relPath)).
			WithCause(err)
	}
	return shared.TrimBOM(data), nil
}
