package types

// ResolvedModels maps each resolved DTMI to its raw DTDL document text,
// exactly as retrieved from the repository. All-or-nothing: a failed
// resolution never yields a partial map.
type ResolvedModels map[string]string

// Dtmis returns the resolved identifiers in unspecified order.
func (m ResolvedModels) Dtmis() []string {
	out := make([]string, 0, len(m))
	for dtmi := range m {
		out = append(out, dtmi)
	}
	return out
}
