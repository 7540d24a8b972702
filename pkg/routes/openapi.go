package routes

import (
	"strings"

	"github.com/JaimeStill/flames/pkg/openapi"
)

// Describe adds an operation to spec for every route in groups that carries
// one. ServeMux's exact-match marker {$} is dropped from the documented path.
func Describe(spec *openapi.Spec, groups ...Group) error {
	for _, g := range groups {
		if err := describe(spec, "", g); err != nil {
			return err
		}
	}
	return nil
}

func describe(spec *openapi.Spec, parent string, g Group) error {
	prefix := parent + g.Prefix
	for _, r := range g.Routes {
		if r.OpenAPI == nil {
			continue
		}
		path := strings.TrimSuffix(r.path(prefix), "{$}")
		if path == "" {
			path = "/"
		}
		if err := spec.AddOperation(r.Method, path, r.OpenAPI); err != nil {
			return err
		}
	}
	for _, child := range g.Children {
		if err := describe(spec, prefix, child); err != nil {
			return err
		}
	}
	return nil
}
