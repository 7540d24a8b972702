package main

import (
	"encoding/json"
	"net/http"

	"github.com/JaimeStill/flames/internal/api"
	"github.com/JaimeStill/flames/internal/config"
	"github.com/JaimeStill/flames/internal/infrastructure"
	"github.com/JaimeStill/flames/pkg/middleware"
	"github.com/JaimeStill/flames/pkg/module"
	"github.com/JaimeStill/flames/web/app"
)

// Modules holds everything mounted on the root router: the JSON API under
// its base path and the HTML site at the root.
type Modules struct {
	API *module.Module
	Web http.Handler
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, domain, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	site, err := app.New(domain.Results, infra.Logger, app.Config{
		Title:       cfg.Web.Title,
		MaxFormSize: cfg.Web.MaxFormSizeBytes(),
		Pagination:  cfg.API.Pagination,
	})
	if err != nil {
		return nil, err
	}

	siteHandler, err := site.Handler()
	if err != nil {
		return nil, err
	}

	mw := middleware.New()
	mw.Use(middleware.RequestID())
	mw.Use(middleware.Logger(infra.Logger))
	mw.Use(middleware.Recover(infra.Logger))

	return &Modules{
		API: apiModule,
		Web: mw.Apply(siteHandler),
	}, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
	router.Handle("/", m.Web)
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, "ok")
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if !infra.Lifecycle.Ready() {
			writeStatus(w, http.StatusServiceUnavailable, "not ready")
			return
		}
		writeStatus(w, http.StatusOK, "ready")
	})

	return router
}

func writeStatus(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"status": status})
}
