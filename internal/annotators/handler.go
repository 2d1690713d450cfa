package annotators

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/groundtruth/pkg/handlers"
	"github.com/JaimeStill/groundtruth/pkg/routes"
)

// Handler provides HTTP endpoints for the annotator registry.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "annotators"),
	}
}

// Routes returns the route group definition for annotator endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/user_options", Handler: h.List},
		},
	}
}

// List returns the known issuers sorted ascending under a data key.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	names, err := h.sys.List(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondData(w, http.StatusOK, names)
}
