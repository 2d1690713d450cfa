package api

import (
	"database/sql"
	"log/slog"

	"github.com/JaimeStill/groundtruth/internal/config"
	"github.com/JaimeStill/groundtruth/internal/infrastructure"
	"github.com/JaimeStill/groundtruth/pkg/auth"
	"github.com/JaimeStill/groundtruth/pkg/middleware"
	"github.com/JaimeStill/groundtruth/pkg/pagination"
)

// Runtime is the part of the infrastructure and configuration the API
// module reads. Verifier is nil when authentication is disabled.
type Runtime struct {
	DB               *sql.DB
	Logger           *slog.Logger
	Verifier         auth.Verifier
	IdentityClaim    string
	CORS             *middleware.CORSConfig
	Pagination       pagination.Config
	DefaultAnnotator string
	MaxBodySize      int64
}

// NewRuntime narrows infra and cfg to a Runtime with an api-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		DB:               infra.Database.Connection(),
		Logger:           infra.Logger.With("module", "api"),
		Verifier:         infra.Verifier,
		IdentityClaim:    cfg.Auth.IdentityClaim,
		CORS:             &cfg.API.CORS,
		Pagination:       cfg.API.Pagination,
		DefaultAnnotator: cfg.API.DefaultAnnotator,
		MaxBodySize:      cfg.API.MaxBodySizeBytes(),
	}
}
