// Package routes declares HTTP routes as data and registers them on a
// net/http ServeMux using method-qualified patterns.
package routes

import (
	"net/http"

	"github.com/JaimeStill/flames/pkg/openapi"
)

// Route binds a method and a pattern, relative to its group, to a handler.
// OpenAPI is optional; routes without it are left out of the API document.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	OpenAPI *openapi.Operation
}

func (r Route) pattern(prefix string) string {
	path := r.path(prefix)
	if r.Method == "" {
		return path
	}
	return r.Method + " " + path
}

func (r Route) path(prefix string) string {
	path := prefix + r.Pattern
	if path == "" {
		path = "/"
	}
	return path
}
