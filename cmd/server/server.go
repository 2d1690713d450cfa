package main

import (
	"fmt"
	"time"

	"github.com/JaimeStill/groundtruth/internal/config"
	"github.com/JaimeStill/groundtruth/internal/infrastructure"
)

// Server ties the infrastructure, the mounted modules and the HTTP listener
// to one lifecycle coordinator.
type Server struct {
	infra *infrastructure.Infrastructure
	http  *httpServer
}

func NewServer(cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	modules, err := NewModules(infra, cfg)
	if err != nil {
		return nil, fmt.Errorf("build modules: %w", err)
	}

	router := buildRouter(infra)
	modules.Mount(router)

	return &Server{
		infra: infra,
		http:  newHTTPServer(&cfg.Server, router, infra.Logger),
	}, nil
}

// Start registers every startup hook and opens the listener without waiting
// for the hooks. /readyz turns ready once they all succeed.
func (s *Server) Start() error {
	if err := s.infra.Start(); err != nil {
		return err
	}
	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return err
	}

	go s.reportReadiness()
	return nil
}

func (s *Server) reportReadiness() {
	if err := s.infra.Lifecycle.WaitForStartup(); err != nil {
		s.infra.Logger.Error(
			"startup hooks failed",
			"failed", s.infra.Lifecycle.Failures(),
			"error", err,
		)
		return
	}
	s.infra.Logger.Info("ready")
}

func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("shutting down", "timeout", timeout)
	return s.infra.Lifecycle.Shutdown(timeout)
}
