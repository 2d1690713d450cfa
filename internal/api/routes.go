package api

import (
	"net/http"

	"github.com/JaimeStill/groundtruth/pkg/openapi"
	"github.com/JaimeStill/groundtruth/pkg/routes"
)

func routeGroups(domain *Domain, runtime *Runtime) []routes.Group {
	return []routes.Group{
		domain.WorkItems.Handler().Routes(),
		domain.Classifications.Handler(runtime.MaxBodySize).Routes(),
		domain.Annotators.Handler().Routes(),
		domain.Assignments.Handler().Routes(),
		domain.Results.Handler().Routes(),
	}
}

func registerRoutes(mux *http.ServeMux, groups []routes.Group, specBytes []byte) {
	routes.Register(mux, groups...)
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(specBytes))
}
