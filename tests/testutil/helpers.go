// Package testutil provides shared test helpers used across integration,
// e2e, and unit test packages.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"modelsrepo/internal/core"
	"modelsrepo/internal/types"
)

// RepoRoot returns the absolute path to the repository root by walking
// up from the current working directory. It fails the test if the
// working directory cannot be determined.
func RepoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(dir, "..", ".."))
}

// WriteModel places a model document into a fixture repository directory
// at the canonical path for its DTMI.
func WriteModel(t *testing.T, root string, dtmi string, document string) {
	t.Helper()
	relPath := core.DtmiToPath(dtmi, false)
	require.NotEmpty(t, relPath, "invalid fixture DTMI: %s", dtmi)
	writeFile(t, filepath.Join(root, filepath.FromSlash(relPath)), document)
}

// WriteExpandedModel places an expanded (array) document into a fixture
// repository directory.
func WriteExpandedModel(t *testing.T, root string, dtmi string, document string) {
	t.Helper()
	relPath := core.DtmiToPath(dtmi, true)
	require.NotEmpty(t, relPath, "invalid fixture DTMI: %s", dtmi)
	writeFile(t, filepath.Join(root, filepath.FromSlash(relPath)), document)
}

// WriteMetadata places a metadata.json document at the fixture
// repository root.
func WriteMetadata(t *testing.T, root string, meta types.RepositoryMetadata) {
	t.Helper()
	data, err := json.Marshal(meta)
	require.NoError(t, err)
	writeFile(t, filepath.Join(root, core.MetadataPath), string(data))
}

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}
