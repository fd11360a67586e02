package adapters

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"modelsrepo/internal/core"
	"modelsrepo/internal/shared"
	"modelsrepo/internal/types"
)

const defaultHTTPTimeout = 60 * time.Second

// HTTPFetcherAdapter retrieves model documents from a remote repository
// over HTTP(S).
type HTTPFetcherAdapter struct {
	BaseURL string
	client  *http.Client
}

func NewHTTPFetcherAdapter(baseURL string, timeout time.Duration) *HTTPFetcherAdapter {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return &HTTPFetcherAdapter{
		BaseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (a *HTTPFetcherAdapter) Fetch(ctx context.Context, dtmi string, tryExpanded bool) (types.FetchResult, error) {
	if tryExpanded {
		data, err := a.get(ctx, core.DtmiToPath(dtmi, true))
		if err == nil {
			return types.FetchResult{Definition: string(data), FromExpanded: true}, nil
		}
		// Only a missing expanded document falls through to the plain
		// variant; a transport failure must not masquerade as absence.
		if errbuilder.CodeOf(err) != errbuilder.CodeNotFound {
			return types.FetchResult{}, err
		}
		log.Ctx(ctx).Debug().Str("dtmi", dtmi).Msg("expanded document absent, retrying plain path")
	}
	data, err := a.get(ctx, core.DtmiToPath(dtmi, false))
	if err != nil {
		return types.FetchResult{}, err
	}
	return types.FetchResult{Definition: string(data)}, nil
}

func (a *HTTPFetcherAdapter) FetchMetadata(ctx context.Context) (types.RepositoryMetadata, error) {
	data, err := a.get(ctx, core.MetadataPath)
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

func (a *HTTPFetcherAdapter) Close() error {
	a.client.CloseIdleConnections()
	return nil
}

func (a *HTTPFetcherAdapter) get(ctx context.Context, relPath string) ([]byte, error) {
	url := shared.JoinURL(a.BaseURL, relPath)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeUnavailable).
			WithMsg("failed to build repository request").
			WithCause(err)
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeUnavailable).
			WithMsg("repository request failed").
			WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("model document not found").
			WithCause(shared.HTTPStatusError(resp.StatusCode, url))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeUnavailable).
			WithMsg("repository request returned an error status").
			WithCause(shared.HTTPStatusError(resp.StatusCode, url))
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeUnavailable).
			WithMsg("failed to read repository response").
			WithCause(err)
	}
	return shared.TrimBOM(body), nil
}
