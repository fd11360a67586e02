package core

import (
	"regexp"
	"strings"
)

// MetadataPath is the well-known metadata resource at the repository root.
// It is addressed directly, never through DTMI conversion.
const MetadataPath = "metadata.json"

// dtmiPattern is the lexical grammar of a Digital Twin Model Identifier:
// one or more colon-separated segments, each starting with a letter and
// not ending in an underscore, followed by a semicolon and a version of
// at most nine digits with no leading zero.
var dtmiPattern = regexp.MustCompile(
	`^dtmi:[A-Za-z](?:[A-Za-z0-9_]*[A-Za-z0-9])?(?::[A-Za-z](?:[A-Za-z0-9_]*[A-Za-z0-9])?)*;[1-9][0-9]{0,8}$`)

// IsValidDtmi reports whether s matches the DTMI grammar.
func IsValidDtmi(s string) bool {
	return dtmiPattern.MatchString(s)
}

// DtmiToPath converts a DTMI to its canonical relative storage path within
// a models repository: lowercase, colons become slashes, the version
// separator becomes a dash. Returns "" for an invalid DTMI; callers are
// expected to validate first.
//
// dtmi:com:example:Thermostat;1 -> dtmi/com/example/thermostat-1.json
func DtmiToPath(dtmi string, expanded bool) string {
	if !IsValidDtmi(dtmi) {
		return ""
	}
	path := strings.ToLower(dtmi)
	path = strings.ReplaceAll(path, ":", "/")
	path = strings.Replace(path, ";", "-", 1)
	if expanded {
		return path + ".expanded.json"
	}
	return path + ".json"
}
