package api

import (
	"net/http"

	"github.com/JaimeStill/flames/internal/config"
	"github.com/JaimeStill/flames/internal/flames"
	"github.com/JaimeStill/flames/internal/results"
	"github.com/JaimeStill/flames/pkg/handlers"
	"github.com/JaimeStill/flames/pkg/openapi"
	"github.com/JaimeStill/flames/pkg/routes"
)

func labelRoutes() routes.Group {
	return routes.Group{
		Prefix: "/labels",
		Routes: []routes.Route{
			{
				Method:  "GET",
				Pattern: "",
				Handler: listLabels,
				OpenAPI: &openapi.Operation{
					Summary: "The six FLAMES labels in elimination order",
					Tags:    []string{"Labels"},
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("Labels", openapi.ArrayOf("Label")),
					},
				},
			},
		},
	}
}

func listLabels(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, flames.Labels())
}

// docsRoutes serves the OpenAPI document describing groups. The document
// itself is not listed in it.
func docsRoutes(cfg *config.Config, groups ...routes.Group) (routes.Group, error) {
	spec := openapi.NewSpec(cfg.Web.Title+" API", cfg.Version)
	spec.Info.Description = "Compute FLAMES relationship labels for pairs of names and browse the stored history."
	spec.AddServer(cfg.API.BasePath)
	spec.Components.AddSchemas(results.Schemas())

	if err := routes.Describe(spec, groups...); err != nil {
		return routes.Group{}, err
	}

	handler, err := openapi.Handler(spec)
	if err != nil {
		return routes.Group{}, err
	}

	return routes.Group{
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/openapi.json", Handler: handler},
		},
	}, nil
}
