// Package api assembles the root API module with all domain systems and route registration.
package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/groundtruth/internal/config"
	"github.com/JaimeStill/groundtruth/internal/infrastructure"
	"github.com/JaimeStill/groundtruth/pkg/auth"
	"github.com/JaimeStill/groundtruth/pkg/middleware"
	"github.com/JaimeStill/groundtruth/pkg/module"
	"github.com/JaimeStill/groundtruth/pkg/openapi"
)

// NewModule builds the root module serving every JSON route and /openapi.json.
// Middleware runs logger first, then panic recovery, CORS, and token
// verification when a Verifier is configured.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	specBytes, err := openapi.MarshalJSON(NewSpec(cfg))
	if err != nil {
		return nil, fmt.Errorf("marshal openapi spec: %w", err)
	}

	mux := http.NewServeMux()
	registerRoutes(mux, routeGroups(domain, runtime), specBytes)

	var verify middleware.Func
	if runtime.Verifier != nil {
		verify = auth.Middleware(runtime.Verifier, runtime.IdentityClaim, runtime.Logger)
	}

	m := module.NewRoot(mux)
	m.Use(
		middleware.Logger(runtime.Logger),
		middleware.Recover(runtime.Logger),
		middleware.CORS(runtime.CORS),
		verify,
	)
	return m, nil
}
