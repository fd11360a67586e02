package types

// DependencyMode selects how the resolver discovers model dependencies.
type DependencyMode string

const (
	// DependencyModeDisabled fetches only the requested DTMIs, no graph walk.
	DependencyModeDisabled DependencyMode = "disabled"
	// DependencyModeEnabled walks extends/component references breadth-first.
	DependencyModeEnabled DependencyMode = "enabled"
	// DependencyModeTryFromExpanded attempts the precomputed expanded
	// document first and falls back to the manual walk per DTMI.
	DependencyModeTryFromExpanded DependencyMode = "tryFromExpanded"
)

// ParseDependencyMode maps a user-supplied string to a DependencyMode.
func ParseDependencyMode(value string) (DependencyMode, bool) {
	switch DependencyMode(value) {
	case DependencyModeDisabled, DependencyModeEnabled, DependencyModeTryFromExpanded:
		return DependencyMode(value), true
	default:
		return "", false
	}
}

// OutputFormat selects the serialization of a resolved model set.
type OutputFormat string

const (
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
)
