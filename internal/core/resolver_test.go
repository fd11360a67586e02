package core

import (
	"context"
	"fmt"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modelsrepo/internal/types"
)

// fakeFetcher serves documents from in-memory maps and reproduces the
// fetcher contract: expanded attempted first when requested, falling back
// to the plain variant only on not-found.
type fakeFetcher struct {
	models   map[string]string
	expanded map[string]string
	metaErr  error
	fetchErr error
	fetches  int
}

func (f *fakeFetcher) Fetch(_ context.Context, dtmi string, tryExpanded bool) (types.FetchResult, error) {
	f.fetches++
	if f.fetchErr != nil {
		return types.FetchResult{}, f.fetchErr
	}
	if tryExpanded {
		if doc, ok := f.expanded[dtmi]; ok {
			return types.FetchResult{Definition: doc, FromExpanded: true}, nil
		}
	}
	if doc, ok := f.models[dtmi]; ok {
		return types.FetchResult{Definition: doc}, nil
	}
	return types.FetchResult{}, errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(fmt.Sprintf("model document not found: %s", dtmi))
}

func (f *fakeFetcher) FetchMetadata(context.Context) (types.RepositoryMetadata, error) {
	if f.metaErr != nil {
		return types.RepositoryMetadata{}, f.metaErr
	}
	return types.RepositoryMetadata{}, nil
}

func (f *fakeFetcher) Close() error { return nil }

func model(id string, extends ...string) string {
	doc := fmt.Sprintf(`{"@id": %q, "@type": "Interface"`, id)
	if len(extends) == 1 {
		doc += fmt.Sprintf(`, "extends": %q`, extends[0])
	} else if len(extends) > 1 {
		doc += `, "extends": [`
		for i, e := range extends {
			if i > 0 {
				doc += ", "
			}
			doc += fmt.Sprintf("%q", e)
		}
		doc += `]`
	}
	return doc + `}`
}

func TestProcessDisabledRoundTrip(t *testing.T) {
	fetcher := &fakeFetcher{models: map[string]string{
		"dtmi:a:b;1": model("dtmi:a:b;1", "dtmi:x:y;1"),
		"dtmi:x:y;1": model("dtmi:x:y;1"),
	}}
	resolved, err := NewResolverCore(fetcher).Process(context.Background(),
		[]string{"dtmi:a:b;1"}, types.DependencyModeDisabled, false)
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.Equal(t, model("dtmi:a:b;1", "dtmi:x:y;1"), resolved["dtmi:a:b;1"])
	assert.Equal(t, 1, fetcher.fetches)
}

func TestProcessDependencyClosure(t *testing.T) {
	fetcher := &fakeFetcher{models: map[string]string{
		"dtmi:a;1":   model("dtmi:a;1", "dtmi:x:y;1"),
		"dtmi:x:y;1": model("dtmi:x:y;1"),
	}}
	resolved, err := NewResolverCore(fetcher).Process(context.Background(),
		[]string{"dtmi:a;1"}, types.DependencyModeEnabled, false)
	require.NoError(t, err)
	require.Len(t, resolved, 2)
	assert.Contains(t, resolved, "dtmi:a;1")
	assert.Contains(t, resolved, "dtmi:x:y;1")
	assert.Equal(t, 2, fetcher.fetches)
}

func TestProcessSharedDependencyFetchedOnce(t *testing.T) {
	// Both roots extend the same base; it must be fetched exactly once.
	fetcher := &fakeFetcher{models: map[string]string{
		"dtmi:a;1":    model("dtmi:a;1", "dtmi:base;1"),
		"dtmi:b;1":    model("dtmi:b;1", "dtmi:base;1"),
		"dtmi:base;1": model("dtmi:base;1"),
	}}
	resolved, err := NewResolverCore(fetcher).Process(context.Background(),
		[]string{"dtmi:a;1", "dtmi:b;1"}, types.DependencyModeEnabled, false)
	require.NoError(t, err)
	require.Len(t, resolved, 3)
	assert.Equal(t, 3, fetcher.fetches)
}

func TestProcessDuplicateInput(t *testing.T) {
	fetcher := &fakeFetcher{models: map[string]string{
		"dtmi:a;1": model("dtmi:a;1"),
	}}
	resolved, err := NewResolverCore(fetcher).Process(context.Background(),
		[]string{"dtmi:a;1", "dtmi:a;1"}, types.DependencyModeEnabled, false)
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.Equal(t, 1, fetcher.fetches)
}

func TestProcessDiamondDependency(t *testing.T) {
	fetcher := &fakeFetcher{models: map[string]string{
		"dtmi:root;1": model("dtmi:root;1", "dtmi:l;1", "dtmi:r;1"),
		"dtmi:l;1":    model("dtmi:l;1", "dtmi:base;1"),
		"dtmi:r;1":    model("dtmi:r;1", "dtmi:base;1"),
		"dtmi:base;1": model("dtmi:base;1"),
	}}
	resolved, err := NewResolverCore(fetcher).Process(context.Background(),
		[]string{"dtmi:root;1"}, types.DependencyModeEnabled, false)
	require.NoError(t, err)
	require.Len(t, resolved, 4)
	assert.Equal(t, 4, fetcher.fetches)
}

func TestProcessExpandedShortcut(t *testing.T) {
	expanded := fmt.Sprintf("[%s, %s]",
		model("dtmi:a;1", "dtmi:b;1"), model("dtmi:b;1"))
	fetcher := &fakeFetcher{
		expanded: map[string]string{"dtmi:a;1": expanded},
	}
	resolved, err := NewResolverCore(fetcher).Process(context.Background(),
		[]string{"dtmi:a;1"}, types.DependencyModeEnabled, true)
	require.NoError(t, err)
	require.Len(t, resolved, 2)
	assert.Equal(t, 1, fetcher.fetches)
}

func TestProcessExpandedFallback(t *testing.T) {
	// No expanded document published: the fetcher falls back to the plain
	// variant and the manual walk takes over.
	fetcher := &fakeFetcher{models: map[string]string{
		"dtmi:a;1": model("dtmi:a;1", "dtmi:b;1"),
		"dtmi:b;1": model("dtmi:b;1"),
	}}
	resolved, err := NewResolverCore(fetcher).Process(context.Background(),
		[]string{"dtmi:a;1"}, types.DependencyModeTryFromExpanded, true)
	require.NoError(t, err)
	require.Len(t, resolved, 2)
}

func TestProcessMismatchAborts(t *testing.T) {
	fetcher := &fakeFetcher{models: map[string]string{
		"dtmi:a;1": model("dtmi:a;2"),
	}}
	resolved, err := NewResolverCore(fetcher).Process(context.Background(),
		[]string{"dtmi:a;1"}, types.DependencyModeDisabled, false)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))
	assert.Nil(t, resolved)
}

func TestProcessCaseMismatchAborts(t *testing.T) {
	// The @id comparison is case-sensitive.
	fetcher := &fakeFetcher{models: map[string]string{
		"dtmi:com:example:Thermostat;1": model("dtmi:com:example:thermostat;1"),
	}}
	_, err := NewResolverCore(fetcher).Process(context.Background(),
		[]string{"dtmi:com:example:Thermostat;1"}, types.DependencyModeDisabled, false)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))
}

func TestProcessInvalidInputShortCircuits(t *testing.T) {
	fetcher := &fakeFetcher{}
	resolved, err := NewResolverCore(fetcher).Process(context.Background(),
		[]string{"not-a-dtmi"}, types.DependencyModeEnabled, false)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
	assert.Nil(t, resolved)
	assert.Zero(t, fetcher.fetches)
}

func TestProcessEmptyInput(t *testing.T) {
	_, err := NewResolverCore(&fakeFetcher{}).Process(context.Background(),
		nil, types.DependencyModeEnabled, false)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestProcessNotFoundPropagates(t *testing.T) {
	fetcher := &fakeFetcher{models: map[string]string{}}
	resolved, err := NewResolverCore(fetcher).Process(context.Background(),
		[]string{"dtmi:missing;1"}, types.DependencyModeEnabled, false)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
	assert.Nil(t, resolved)
}

func TestProcessTransportErrorPropagates(t *testing.T) {
	fetcher := &fakeFetcher{fetchErr: errbuilder.New().
		WithCode(errbuilder.CodeUnavailable).
		WithMsg("repository request failed")}
	resolved, err := NewResolverCore(fetcher).Process(context.Background(),
		[]string{"dtmi:a;1"}, types.DependencyModeEnabled, false)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeUnavailable, errbuilder.CodeOf(err))
	assert.Nil(t, resolved)
}

func TestProcessMalformedDependencyAborts(t *testing.T) {
	fetcher := &fakeFetcher{models: map[string]string{
		"dtmi:a;1":   model("dtmi:a;1", "dtmi:bad;1"),
		"dtmi:bad;1": `{not json`,
	}}
	resolved, err := NewResolverCore(fetcher).Process(context.Background(),
		[]string{"dtmi:a;1"}, types.DependencyModeEnabled, false)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))
	assert.Nil(t, resolved)
}
