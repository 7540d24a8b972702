// Package api assembles the JSON API module from the domain systems.
package api

import (
	"github.com/JaimeStill/flames/internal/config"
	"github.com/JaimeStill/flames/internal/infrastructure"
	"github.com/JaimeStill/flames/pkg/middleware"
	"github.com/JaimeStill/flames/pkg/module"
	"github.com/JaimeStill/flames/pkg/routes"
)

// NewModule creates the API module with all domain handlers, the OpenAPI
// document, and middleware.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, *Domain, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	groups := []routes.Group{
		domain.Results.Handler().Routes(),
		labelRoutes(),
	}

	docs, err := docsRoutes(cfg, groups...)
	if err != nil {
		return nil, nil, err
	}

	m := module.New(cfg.API.BasePath, routes.NewMux(append(groups, docs)...))
	m.Use(middleware.RequestID())
	m.Use(middleware.Logger(runtime.Logger))
	m.Use(middleware.Recover(runtime.Logger))
	m.Use(middleware.CORS(&cfg.API.CORS))

	return m, domain, nil
}
