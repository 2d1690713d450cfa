package classifications

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/groundtruth/internal/annotators"
	"github.com/JaimeStill/groundtruth/pkg/formatting"
	"github.com/JaimeStill/groundtruth/pkg/handlers"
	"github.com/JaimeStill/groundtruth/pkg/pagination"
	"github.com/JaimeStill/groundtruth/pkg/routes"
)

// Handler provides HTTP endpoints for classification operations.
type Handler struct {
	sys         System
	logger      *slog.Logger
	pagination  pagination.Config
	maxBodySize int64
}

// NewHandler creates a Handler with the given system, logger, pagination config, and body size limit.
func NewHandler(
	sys System,
	logger *slog.Logger,
	pagination pagination.Config,
	maxBodySize int64,
) *Handler {
	return &Handler{
		sys:         sys,
		logger:      logger.With("handler", "classifications"),
		pagination:  pagination,
		maxBodySize: maxBodySize,
	}
}

// Routes returns the route group definition for classification endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/update_classification", Handler: h.Update},
			{Method: "GET", Pattern: "/classifications", Handler: h.List},
		},
	}
}

// Update decodes a submission, resolves its issuer, and upserts it.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	if h.maxBodySize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	}

	var cmd UpsertCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			handlers.RespondError(
				w, h.logger, http.StatusRequestEntityTooLarge,
				fmt.Errorf("%w: body exceeds %s", ErrInvalidBody, formatting.FormatBytes(tooLarge.Limit, 0)),
			)
			return
		}
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: %w", ErrInvalidBody, err))
		return
	}

	if issuer, ok := annotators.Resolve(r, cmd.ClassificationIssuer); ok {
		cmd.ClassificationIssuer = issuer
	}

	result, err := h.sys.Upsert(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, UpdateResponse{
		Success: true,
		Updated: result.RowsAffected,
	})
}

// List returns a paginated list of classifications with optional query parameter filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
