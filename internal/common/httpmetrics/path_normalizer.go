package httpmetrics

import (
	"strings"
)

// NormalizePath collapses numeric path segments so label cardinality stays
// bounded: /movies/42 becomes /movies/{id}.
func NormalizePath(path string) string {
	if path == "" {
		return "/"
	}

	parts := strings.Split(path, "/")
	for i, part := range parts {
		if isNumeric(part) {
			parts[i] = "{id}"
		}
	}

	return strings.Join(parts, "/")
}

func isNumeric(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
