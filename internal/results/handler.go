package results

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/groundtruth/pkg/handlers"
	"github.com/JaimeStill/groundtruth/pkg/routes"
)

// Handler provides HTTP endpoints for reporting.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "results"),
	}
}

// Routes returns the route group definition for reporting endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/results", Handler: h.Report},
			{Method: "GET", Pattern: "/stats", Handler: h.Stats},
		},
	}
}

// Report returns the resolved-label report under a data key.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	rows, err := h.sys.Report(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondData(w, http.StatusOK, rows)
}

// Stats returns summary counts.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.sys.Stats(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, stats)
}
