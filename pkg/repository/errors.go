package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// PostgreSQL SQLSTATE values. Class 23 covers every integrity constraint.
const (
	pgUniqueViolation = "23505"
	pgIntegrityClass  = "23"
)

// SQLite extended result codes carry the primary code in the low byte.
const sqlitePrimaryMask = 0xff

// IsUniqueViolation reports whether err is a unique or primary key conflict
// raised by either supported driver.
func IsUniqueViolation(err error) bool {
	if pgErr, ok := asPgError(err); ok {
		return pgErr.Code == pgUniqueViolation
	}
	if code, ok := sqliteCode(err); ok {
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}

// IsConstraintViolation reports whether err is any integrity constraint
// failure: unique, foreign key, check, or not-null.
func IsConstraintViolation(err error) bool {
	if pgErr, ok := asPgError(err); ok {
		return strings.HasPrefix(pgErr.Code, pgIntegrityClass)
	}
	if code, ok := sqliteCode(err); ok {
		return code&sqlitePrimaryMask == sqlite3.SQLITE_CONSTRAINT
	}
	return false
}

func asPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

func sqliteCode(err error) (int, bool) {
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code(), true
	}
	return 0, false
}
