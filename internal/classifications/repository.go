package classifications

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/groundtruth/internal/annotators"
	"github.com/JaimeStill/groundtruth/pkg/pagination"
	"github.com/JaimeStill/groundtruth/pkg/query"
	"github.com/JaimeStill/groundtruth/pkg/repository"
)

// The conflict target must match the unique constraint on
// (classification_issuer, full_filepath) or the statement inserts a second row.
const upsertQuery = `
	INSERT INTO image_saved_data(
		id, classification_issuer, full_filepath, is_suspected_ad_manual,
		flag_issue, notes, is_ad_marker, created_at, updated_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
	ON CONFLICT (classification_issuer, full_filepath) DO UPDATE SET
		is_suspected_ad_manual = excluded.is_suspected_ad_manual,
		flag_issue = excluded.flag_issue,
		notes = excluded.notes,
		is_ad_marker = excluded.is_ad_marker,
		updated_at = excluded.updated_at`

type repo struct {
	db            *sql.DB
	logger        *slog.Logger
	pagination    pagination.Config
	defaultIssuer string
	now           func() time.Time
}

// New creates a classification store implementing the System interface.
// Submissions that name no issuer are recorded under defaultIssuer.
func New(
	db *sql.DB,
	logger *slog.Logger,
	pagination pagination.Config,
	defaultIssuer string,
) System {
	issuer := annotators.Normalize(defaultIssuer)
	if issuer == "" {
		issuer = annotators.Anonymous
	}

	return &repo{
		db:            db,
		logger:        logger.With("system", "classifications"),
		pagination:    pagination,
		defaultIssuer: issuer,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

func (r *repo) Handler(maxBodySize int64) *Handler {
	return NewHandler(r, r.logger, r.pagination, maxBodySize)
}

func (r *repo) Upsert(ctx context.Context, cmd UpsertCommand) (UpsertResult, error) {
	if err := cmd.Validate(); err != nil {
		return UpsertResult{}, err
	}

	issuer := annotators.Normalize(cmd.ClassificationIssuer)
	if issuer == "" {
		issuer = r.defaultIssuer
	}

	now := r.now()
	args := []any{
		uuid.New(),
		issuer,
		cmd.Filepath,
		cmd.Classification.column(),
		cmd.FlagIssue,
		cmd.Notes,
		cmd.IsAdMarker,
		now,
	}

	rows, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (int64, error) {
		if err := annotators.Register(ctx, tx, issuer, now); err != nil {
			return 0, err
		}
		return repository.ExecAffected(ctx, tx, upsertQuery, args...)
	})
	if err != nil {
		r.logger.Error(
			"upsert rolled back",
			"issuer", issuer,
			"filepath", cmd.Filepath,
			"constraint", repository.IsConstraintViolation(err),
			"error", err,
		)
		return UpsertResult{}, fmt.Errorf("%w: upsert classification: %w", ErrStorage, err)
	}

	if rows == 0 {
		r.logger.Error(
			"upsert affected no rows",
			"issuer", issuer,
			"filepath", cmd.Filepath,
		)
		return UpsertResult{}, ErrNoRecordUpdated
	}

	r.logger.Info(
		"classification recorded",
		"issuer", issuer,
		"filepath", cmd.Filepath,
		"label", cmd.Classification.String(),
	)
	return UpsertResult{RowsAffected: rows}, nil
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Classification], error) {
	page.Normalize(r.pagination)

	qb := page.Apply(query.NewBuilder(projection, defaultSort), "FullFilepath", "Notes")
	filters.Apply(qb)

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count classifications: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanClassification)
	if err != nil {
		return nil, fmt.Errorf("query classifications: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}
