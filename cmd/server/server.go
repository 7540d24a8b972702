package main

import (
	"net/http"
	"time"

	"github.com/JaimeStill/flames/internal/config"
	"github.com/JaimeStill/flames/internal/infrastructure"
	"github.com/JaimeStill/flames/pkg/formatting"
)

type Server struct {
	infra   *infrastructure.Infrastructure
	modules *Modules
	handler http.Handler
	http    *httpServer

	shutdownTimeout time.Duration
}

func NewServer(cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}
	return newServer(cfg, infra)
}

func newServer(cfg *config.Config, infra *infrastructure.Infrastructure) (*Server, error) {
	modules, err := NewModules(infra, cfg)
	if err != nil {
		return nil, err
	}

	router := buildRouter(infra)
	modules.Mount(router)

	infra.Logger.Info(
		"server initialized",
		"addr", cfg.Server.Addr(),
		"version", cfg.Version,
		"env", cfg.Env(),
		"driver", cfg.Database.Driver,
		"api", cfg.API.BasePath,
		"max_form_size", formatting.FormatBytes(cfg.Web.MaxFormSizeBytes(), 0),
	)

	return &Server{
		infra:   infra,
		modules: modules,
		handler: router,
		http:    newHTTPServer(cfg, router, infra.Logger),

		shutdownTimeout: cfg.ShutdownTimeoutDuration(),
	}, nil
}

// Start runs every startup hook and blocks until they finish. A failed hook
// (database ping or migration) is returned after the partial startup is
// torn down, so the caller can exit.
func (s *Server) Start() error {
	s.infra.Logger.Info("starting service")

	if err := s.infra.Start(); err != nil {
		return err
	}

	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return err
	}

	if err := s.infra.Lifecycle.WaitForStartup(); err != nil {
		s.infra.Logger.Error("startup failed", "error", err)
		s.infra.Lifecycle.Shutdown(s.shutdownTimeout)
		return err
	}

	s.infra.Logger.Info("all subsystems ready")
	return nil
}

func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("initiating shutdown")
	return s.infra.Lifecycle.Shutdown(timeout)
}
