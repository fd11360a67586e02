package adapters

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"modelsrepo/internal/ports"
)

// DefaultRepository is the public Azure device models repository.
const DefaultRepository = "https://devicemodels.azure.com"

type locationKind int

const (
	locationRemote locationKind = iota
	locationLocal
)

// Bare hostnames like "devicemodels.azure.com" carry no scheme but end in
// a domain suffix; they get https:// prepended.
var hostnamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9-]*(\.[A-Za-z0-9][A-Za-z0-9-]*)+(/.*)?$`)

var drivePattern = regexp.MustCompile(`^[A-Za-z]:([/\\].*)?$`)

// classifyLocation decides once, at construction time, which fetcher
// variant serves a repository location.
func classifyLocation(location string) (locationKind, string, error) {
	trimmed := strings.TrimSpace(location)
	switch {
	case strings.HasPrefix(trimmed, "http://"), strings.HasPrefix(trimmed, "https://"):
		return locationRemote, trimmed, nil
	case strings.HasPrefix(trimmed, "file://"):
		return locationLocal, strings.TrimPrefix(trimmed, "file://"), nil
	case strings.HasPrefix(trimmed, "/"):
		return locationLocal, trimmed, nil
	case drivePattern.MatchString(trimmed):
		return locationLocal, trimmed, nil
	case hostnamePattern.MatchString(trimmed):
		return locationRemote, "https://" + trimmed, nil
	default:
		return 0, "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unable to identify location: %q", location))
	}
}

// NewFetcher constructs the fetcher variant matching the repository
// location. The caller owns the returned fetcher and must Close it when
// resolution finishes.
func NewFetcher(location string, timeout time.Duration) (ports.ModelFetcher, error) {
	kind, normalized, err := classifyLocation(location)
	if err != nil {
		return nil, err
	}
	if kind == locationLocal {
		return NewFileFetcherAdapter(normalized), nil
	}
	return NewHTTPFetcherAdapter(normalized, timeout), nil
}
