package core

import (
	"encoding/json"
	"regexp"
	"sort"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// ModelMetadata holds the structural facts extracted from one DTDL
// document: its own identifier and the DTMIs it references. Derived per
// fetch, never persisted.
type ModelMetadata struct {
	ID               string
	Extends          []string
	ComponentSchemas []string
}

// Dependencies returns the deduplicated union of extends and component
// schema references, sorted for stable iteration.
func (m ModelMetadata) Dependencies() []string {
	seen := map[string]struct{}{}
	for _, dtmi := range m.Extends {
		seen[dtmi] = struct{}{}
	}
	for _, dtmi := range m.ComponentSchemas {
		seen[dtmi] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for dtmi := range seen {
		out = append(out, dtmi)
	}
	sort.Strings(out)
	return out
}

// Real-world DTDL documents occasionally carry trailing commas. The JSON
// decoder rejects them, so they are normalized away before parsing.
var trailingCommaPattern = regexp.MustCompile(`,(\s*[}\]])`)

func normalizeJSON(text string) []byte {
	return []byte(trailingCommaPattern.ReplaceAllString(text, "$1"))
}

// ParseModel extracts structural metadata from a single DTDL document.
func ParseModel(text string) (ModelMetadata, error) {
	var doc map[string]any
	if err := json.Unmarshal(normalizeJSON(text), &doc); err != nil {
		return ModelMetadata{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("model document is not valid JSON").
			WithCause(err)
	}
	return parseInterface(doc), nil
}

// ParseModelList parses an expanded document: a JSON array of models keyed
// by their @id. The expanded form is defined to already contain the full
// transitive dependency closure.
func ParseModelList(text string) (map[string]string, error) {
	var entries []json.RawMessage
	if err := json.Unmarshal(normalizeJSON(text), &entries); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("expanded document is not a JSON array").
			WithCause(err)
	}
	models := make(map[string]string, len(entries))
	for _, raw := range entries {
		var doc map[string]any
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg("expanded document entry is not a JSON object").
				WithCause(err)
		}
		meta := parseInterface(doc)
		if meta.ID == "" {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg("expanded document entry is missing @id")
		}
		models[meta.ID] = string(raw)
	}
	return models, nil
}

func parseInterface(doc map[string]any) ModelMetadata {
	meta := ModelMetadata{}
	if id, ok := doc["@id"].(string); ok {
		meta.ID = id
	}
	meta.Extends = collectReferences(doc["extends"])
	if contents, ok := doc["contents"].([]any); ok {
		for _, item := range contents {
			content, ok := item.(map[string]any)
			if !ok {
				continue
			}
			meta.ComponentSchemas = append(meta.ComponentSchemas,
				collectReferences(content["schema"])...)
		}
	}
	return meta
}

// collectReferences evaluates the polymorphic shapes a DTDL reference
// position can take: absent, a DTMI string, an inline model object, or an
// array mixing the two. Anything else (primitive schema names, complex
// schema objects) is not a reference and contributes nothing.
func collectReferences(value any) []string {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		if IsValidDtmi(v) {
			return []string{v}
		}
		return nil
	case map[string]any:
		if !isInlineModel(v) {
			return nil
		}
		return parseInterface(v).Dependencies()
	case []any:
		var refs []string
		for _, item := range v {
			refs = append(refs, collectReferences(item)...)
		}
		return refs
	default:
		return nil
	}
}

// isInlineModel reports whether an object is an inline interface or
// component definition. The discrimination is exact: any other @type is a
// non-reference schema and must not count as a dependency.
func isInlineModel(doc map[string]any) bool {
	t, ok := doc["@type"].(string)
	return ok && (t == "Interface" || t == "Component")
}
