package adapters

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"modelsrepo/internal/core"
	"modelsrepo/internal/types"
)

// OutputWriterAdapter serializes a resolved model set for consumption:
// a single JSON or YAML document mapping DTMI to model text, or an
// on-disk repository tree using the canonical path layout.
type OutputWriterAdapter struct {
	Out io.Writer
}

func NewOutputWriterAdapter(out io.Writer) OutputWriterAdapter {
	return OutputWriterAdapter{Out: out}
}

// WriteModels emits the resolved set in the requested format. Both
// encoders order map keys, so output is stable across runs.
func (a OutputWriterAdapter) WriteModels(models types.ResolvedModels, format types.OutputFormat) error {
	switch format {
	case types.OutputFormatYAML:
		data, err := yaml.Marshal(map[string]string(models))
		if err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to marshal resolved models").
				WithCause(err)
		}
		_, err = a.Out.Write(data)
		return err
	case types.OutputFormatJSON, "":
		encoder := json.NewEncoder(a.Out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(map[string]string(models))
	default:
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("unknown output format")
	}
}

// WriteRepository expands the resolved set into dir following the
// repository layout contract, making the directory itself a resolvable
// local repository.
func (a OutputWriterAdapter) WriteRepository(models types.ResolvedModels, dir string) error {
	for dtmi, definition := range models {
		relPath := core.DtmiToPath(dtmi, false)
		if relPath == "" {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("resolved set contains an invalid DTMI key")
		}
		path := filepath.Join(dir, filepath.FromSlash(relPath))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(definition), 0644); err != nil {
			return err
		}
	}
	return nil
}
