package assignments

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"slices"

	"github.com/JaimeStill/groundtruth/internal/annotators"
	"github.com/JaimeStill/groundtruth/pkg/repository"
)

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates an assignment registry implementing the System interface.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "assignments"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) ForAnnotator(ctx context.Context, annotator string) ([]string, error) {
	annotator = annotators.Normalize(annotator)
	if annotator == "" {
		return nil, ErrEmptyAnnotator
	}

	paths, err := repository.QueryMany(
		ctx, r.db,
		"SELECT full_filepath FROM user_assignments WHERE classification_issuer = $1",
		[]any{annotator},
		scanFilepath,
	)
	if err != nil {
		return nil, fmt.Errorf("query assignments: %w", err)
	}

	slices.Sort(paths)
	return paths, nil
}

func (r *repo) HasAssignments(ctx context.Context, annotator string) (bool, error) {
	annotator = annotators.Normalize(annotator)
	if annotator == "" {
		return false, nil
	}

	found, err := repository.Exists(
		ctx, r.db,
		"SELECT 1 FROM user_assignments WHERE classification_issuer = $1 LIMIT 1",
		annotator,
	)
	if err != nil {
		return false, fmt.Errorf("check assignments: %w", err)
	}
	return found, nil
}

func (r *repo) Replace(ctx context.Context, annotator string, filepaths []string) (ImportResult, error) {
	name := annotators.Normalize(annotator)
	if name == "" {
		return ImportResult{}, ErrEmptyAnnotator
	}
	return r.Import(ctx, Set{name: appendUnique(nil, filepaths...)}, true)
}

func (r *repo) Import(ctx context.Context, set Set, replace bool) (ImportResult, error) {
	names := make([]string, 0, len(set))
	for name := range set {
		if annotators.Normalize(name) == "" {
			return ImportResult{}, ErrEmptyAnnotator
		}
		names = append(names, name)
	}
	slices.Sort(names)

	result, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (ImportResult, error) {
		res := ImportResult{Annotators: len(names)}

		for _, name := range names {
			issuer := annotators.Normalize(name)

			if replace {
				n, err := repository.ExecAffected(
					ctx, tx,
					"DELETE FROM user_assignments WHERE classification_issuer = $1",
					issuer,
				)
				if err != nil {
					return res, fmt.Errorf("clear assignments for %q: %w", issuer, err)
				}
				res.Removed += n
			}

			for _, path := range set[name] {
				n, err := repository.ExecAffected(
					ctx, tx,
					`INSERT INTO user_assignments(classification_issuer, full_filepath)
					VALUES ($1, $2)
					ON CONFLICT (classification_issuer, full_filepath) DO NOTHING`,
					issuer, path,
				)
				if err != nil {
					return res, fmt.Errorf("assign %q to %q: %w", path, issuer, err)
				}
				res.Inserted += n
			}
		}

		return res, nil
	})
	if err != nil {
		return ImportResult{}, err
	}

	r.logger.Info(
		"assignments imported",
		"annotators", result.Annotators,
		"inserted", result.Inserted,
		"removed", result.Removed,
		"replace", replace,
	)
	return result, nil
}

func scanFilepath(s repository.Scanner) (string, error) {
	var path string
	err := s.Scan(&path)
	return path, err
}
