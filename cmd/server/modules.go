package main

import (
	"net/http"

	"github.com/JaimeStill/groundtruth/internal/api"
	"github.com/JaimeStill/groundtruth/internal/assets"
	"github.com/JaimeStill/groundtruth/internal/config"
	"github.com/JaimeStill/groundtruth/internal/infrastructure"
	"github.com/JaimeStill/groundtruth/pkg/auth"
	"github.com/JaimeStill/groundtruth/pkg/handlers"
	"github.com/JaimeStill/groundtruth/pkg/module"
)

type Modules struct {
	API    *module.Module
	Assets []*module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	assetModules := assets.NewModules(infra.Storage, infra.Logger)
	if infra.Verifier != nil {
		for _, m := range assetModules {
			m.Use(auth.Middleware(infra.Verifier, cfg.Auth.IdentityClaim, infra.Logger))
		}
	}

	return &Modules{
		API:    apiModule,
		Assets: assetModules,
	}, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.MountRoot(m.API)
	for _, a := range m.Assets {
		router.Mount(a)
	}
}

type readiness struct {
	Status string   `json:"status"`
	Failed []string `json:"failed,omitempty"`
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, readiness{Status: "ok"})
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if !infra.Lifecycle.Ready() {
			handlers.RespondJSON(w, http.StatusServiceUnavailable, readiness{
				Status: "not ready",
				Failed: infra.Lifecycle.Failures(),
			})
			return
		}
		handlers.RespondJSON(w, http.StatusOK, readiness{Status: "ready"})
	})

	return router
}
