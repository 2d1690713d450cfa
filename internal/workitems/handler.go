package workitems

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/groundtruth/internal/annotators"
	"github.com/JaimeStill/groundtruth/pkg/handlers"
	"github.com/JaimeStill/groundtruth/pkg/routes"
)

// Handler provides the HTTP endpoint that serves work batches.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "workitems"),
	}
}

// Routes returns the route group definition for work endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{$}", Handler: h.FetchWork},
		},
	}
}

// FetchWork returns the eligible items for the requesting annotator.
func (h *Handler) FetchWork(w http.ResponseWriter, r *http.Request) {
	annotator, _ := annotators.Resolve(r, "")

	items, err := h.sys.FetchWork(r.Context(), annotator)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondData(w, http.StatusOK, items)
}
