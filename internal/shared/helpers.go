// Package shared provides common utility functions used across multiple
// packages in the modelsrepo codebase.
package shared

import (
	"bytes"
	"fmt"
	"strings"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// TrimBOM strips a leading UTF-8 byte order mark, if present. Model
// documents published from Windows tooling frequently carry one.
func TrimBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, utf8BOM)
}

// HTTPStatusError creates a formatted error for non-2xx HTTP responses.
func HTTPStatusError(status int, url string) error {
	return fmt.Errorf("status=%d url=%s", status, url)
}

// JoinURL concatenates a base URL and a relative path with exactly one
// separating slash.
func JoinURL(base string, rel string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(rel, "/")
}
