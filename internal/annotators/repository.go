package annotators

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/JaimeStill/groundtruth/pkg/repository"
)

const insertIssuer = `
	INSERT INTO classification_issuers(name, created_at)
	VALUES ($1, $2)
	ON CONFLICT (name) DO NOTHING`

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates an annotator registry implementing the System interface.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "annotators"),
	}
}

// Register inserts name into the registry through e unless it already exists.
// Callers that write classifications pass their transaction so registration
// commits or rolls back with the write.
func Register(ctx context.Context, e repository.Executor, name string, now time.Time) error {
	name = Normalize(name)
	if name == "" {
		return ErrEmptyIdentity
	}

	if _, err := e.ExecContext(ctx, insertIssuer, name, now); err != nil {
		return fmt.Errorf("register issuer %q: %w", name, err)
	}
	return nil
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) EnsureRegistered(ctx context.Context, name string) error {
	return Register(ctx, r.db, name, time.Now().UTC())
}

func (r *repo) List(ctx context.Context) ([]string, error) {
	names, err := repository.QueryMany(
		ctx, r.db,
		"SELECT name FROM classification_issuers",
		nil,
		scanName,
	)
	if err != nil {
		return nil, fmt.Errorf("query issuers: %w", err)
	}

	slices.Sort(names)
	return slices.Compact(names), nil
}

func scanName(s repository.Scanner) (string, error) {
	var name string
	err := s.Scan(&name)
	return name, err
}
