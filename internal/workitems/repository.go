package workitems

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/JaimeStill/groundtruth/internal/annotators"
	"github.com/JaimeStill/groundtruth/internal/assignments"
	"github.com/JaimeStill/groundtruth/pkg/repository"
)

type repo struct {
	db          *sql.DB
	assignments assignments.System
	logger      *slog.Logger
}

// New creates a work item system implementing the System interface.
func New(db *sql.DB, assignments assignments.System, logger *slog.Logger) System {
	return &repo{
		db:          db,
		assignments: assignments,
		logger:      logger.With("system", "workitems"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) FetchWork(ctx context.Context, annotator string) ([]WorkItem, error) {
	annotator = annotators.Normalize(annotator)

	var assigned bool
	if annotator != "" {
		has, err := r.assignments.HasAssignments(ctx, annotator)
		if err != nil {
			return nil, err
		}
		assigned = has
	}

	mode := SelectMode(annotator, assigned)
	q, args, ok := buildQuery(mode, annotator)
	if !ok {
		return []WorkItem{}, nil
	}

	items, err := repository.QueryMany(ctx, r.db, q, args, scanWorkItem)
	if err != nil {
		return nil, fmt.Errorf("query work items: %w", err)
	}

	rand.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})

	r.logger.Debug("work fetched", "annotator", annotator, "mode", mode, "count", len(items))
	return items, nil
}

func scanWorkItem(s repository.Scanner) (WorkItem, error) {
	var w WorkItem
	err := s.Scan(
		&w.ID,
		&w.FullFilepath,
		&w.ExtractedText,
		&w.Script,
		&w.Referrer,
		&w.ScreenshotPath,
		&w.RecordingPath,
	)
	return w, err
}
