package assignments

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/groundtruth/pkg/handlers"
	"github.com/JaimeStill/groundtruth/pkg/routes"
)

// Handler provides HTTP endpoints for reading assignments.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "assignments"),
	}
}

// Routes returns the route group definition for assignment endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/assignments",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{annotator}", Handler: h.ForAnnotator},
		},
	}
}

// ForAnnotator returns the filepaths assigned to the annotator path parameter.
func (h *Handler) ForAnnotator(w http.ResponseWriter, r *http.Request) {
	paths, err := h.sys.ForAnnotator(r.Context(), r.PathValue("annotator"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondData(w, http.StatusOK, paths)
}
