// Package routes declares HTTP routes as data so domain handlers can publish
// them and the API module can register and document them in one pass.
package routes

import (
	"net/http"
	"strings"
)

// Route binds an HTTP method and pattern to a handler.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

// DocPath converts a ServeMux pattern into its OpenAPI path form by dropping
// the {$} end anchor and any "..." wildcard suffix.
func DocPath(path string) string {
	path = strings.TrimSuffix(path, "{$}")
	path = strings.ReplaceAll(path, "...}", "}")
	if path == "" {
		return "/"
	}
	return path
}
