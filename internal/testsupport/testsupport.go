// Package testsupport provides a migrated SQLite database and seed helpers for
// package tests.
package testsupport

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/groundtruth/internal/schema"
	"github.com/JaimeStill/groundtruth/pkg/database"
)

// Logger returns a logger that discards all output.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// OpenDB creates a fresh SQLite database under t.TempDir, applies all
// migrations, and closes it when the test ends.
func OpenDB(t testing.TB) *sql.DB {
	t.Helper()

	cfg := &database.Config{
		Driver: database.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "groundtruth.db"),
	}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize database config: %v", err)
	}

	sys, err := database.New(cfg, Logger())
	if err != nil {
		t.Fatalf("open database: %v", err)
	}

	if err := schema.Up(cfg); err != nil {
		t.Fatalf("migrate database: %v", err)
	}

	db := sys.Connection()
	t.Cleanup(func() { db.Close() })
	return db
}

// Items inserts catalog rows for each filepath.
func Items(t testing.TB, db *sql.DB, filepaths ...string) {
	t.Helper()
	for _, p := range filepaths {
		if _, err := db.ExecContext(
			context.Background(),
			"INSERT INTO image_texts(full_filepath, extracted_text) VALUES ($1, $2)",
			p, "text for "+p,
		); err != nil {
			t.Fatalf("insert item %q: %v", p, err)
		}
	}
}

// Assign adds assignment rows binding annotator to each filepath.
func Assign(t testing.TB, db *sql.DB, annotator string, filepaths ...string) {
	t.Helper()
	for _, p := range filepaths {
		if _, err := db.ExecContext(
			context.Background(),
			"INSERT INTO user_assignments(classification_issuer, full_filepath) VALUES ($1, $2)",
			annotator, p,
		); err != nil {
			t.Fatalf("assign %q to %q: %v", p, annotator, err)
		}
	}
}

// Classify writes a classification row directly. A nil label stores NULL.
func Classify(t testing.TB, db *sql.DB, annotator, filepath string, label *int) {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()

	if _, err := db.ExecContext(
		ctx,
		"INSERT INTO classification_issuers(name, created_at) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING",
		annotator, now,
	); err != nil {
		t.Fatalf("register %q: %v", annotator, err)
	}

	var value any
	if label != nil {
		value = int64(*label)
	}

	if _, err := db.ExecContext(
		ctx,
		`INSERT INTO image_saved_data(id, classification_issuer, full_filepath, is_suspected_ad_manual, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)`,
		uuid.NewString(), annotator, filepath, value, now,
	); err != nil {
		t.Fatalf("classify %q by %q: %v", filepath, annotator, err)
	}
}

// Count returns the row count of table.
func Count(t testing.TB, db *sql.DB, table string) int {
	t.Helper()
	var n int
	if err := db.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

// Label returns a pointer to v for use with Classify.
func Label(v int) *int {
	return &v
}
