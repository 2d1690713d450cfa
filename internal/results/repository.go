package results

import (
	"cmp"
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/groundtruth/pkg/query"
	"github.com/JaimeStill/groundtruth/pkg/repository"
)

var projection = query.
	NewProjectionMap("image_saved_data", "isd").
	Project("full_filepath", "FullFilepath").
	Project("is_suspected_ad_manual", "Label").
	Project("classification_issuer", "ClassificationIssuer")

const assignedPair = `SELECT 1 FROM user_assignments ua
	WHERE ua.classification_issuer = isd.classification_issuer
	AND ua.full_filepath = isd.full_filepath`

var statQueries = []struct {
	name  string
	query string
	dest  func(*Stats) *int
}{
	{"items", "SELECT COUNT(*) FROM image_texts", func(s *Stats) *int { return &s.Items }},
	{"classifications", "SELECT COUNT(*) FROM image_saved_data", func(s *Stats) *int { return &s.Classifications }},
	{"resolved", "SELECT COUNT(*) FROM image_saved_data WHERE is_suspected_ad_manual IS NOT NULL", func(s *Stats) *int { return &s.Resolved }},
	{"flagged", "SELECT COUNT(*) FROM image_saved_data WHERE flag_issue = TRUE", func(s *Stats) *int { return &s.Flagged }},
	{"annotators", "SELECT COUNT(*) FROM classification_issuers", func(s *Stats) *int { return &s.Annotators }},
	{"assignments", "SELECT COUNT(*) FROM user_assignments", func(s *Stats) *int { return &s.Assignments }},
}

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates a results system implementing the System interface.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "results"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) Report(ctx context.Context) ([]Result, error) {
	q, args := query.
		NewBuilder(projection).
		WhereNotNull("Label").
		WhereExists(assignedPair).
		Build()

	rows, err := repository.QueryMany(ctx, r.db, q, args, scanResult)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}

	slices.SortFunc(rows, func(a, b Result) int {
		return cmp.Or(
			cmp.Compare(a.FullFilepath, b.FullFilepath),
			cmp.Compare(a.ClassificationIssuer, b.ClassificationIssuer),
		)
	})

	return rows, nil
}

func (r *repo) Stats(ctx context.Context) (*Stats, error) {
	var stats Stats
	g, ctx := errgroup.WithContext(ctx)

	for _, sq := range statQueries {
		dest := sq.dest(&stats)
		g.Go(func() error {
			if err := r.db.QueryRowContext(ctx, sq.query).Scan(dest); err != nil {
				return fmt.Errorf("count %s: %w", sq.name, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &stats, nil
}

func scanResult(s repository.Scanner) (Result, error) {
	var res Result
	err := s.Scan(
		&res.FullFilepath,
		&res.IsSuspectedAdManual,
		&res.ClassificationIssuer,
	)
	return res, err
}
