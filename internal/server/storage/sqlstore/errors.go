package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/iudanet/learnhub/internal/server/storage"
)

// SQLSTATE коды PostgreSQL
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgNotNullViolation    = "23502"
)

var (
	// "UNIQUE constraint failed: users.email"
	sqliteColumnRe = regexp.MustCompile(`constraint failed: \w+\.(\w+)`)
	// "Key (email)=(a@b.c) already exists."
	pgKeyRe = regexp.MustCompile(`Key \(([^)]+)\)`)
)

// wrap переводит ошибки драйверов в ошибки storage; остальное оборачивает с msg
func (s *Store) wrap(err error, msg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrNotFound
	}
	if cerr := constraintError(err); cerr != nil {
		return cerr
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func constraintError(err error) *storage.ConstraintError {
	var se *sqlite.Error
	if errors.As(err, &se) {
		var sentinel error
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			sentinel = storage.ErrAlreadyExists
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			sentinel = storage.ErrReferenceNotFound
		case sqlite3.SQLITE_CONSTRAINT_CHECK, sqlite3.SQLITE_CONSTRAINT_NOTNULL:
			sentinel = storage.ErrCheckFailed
		default:
			return nil
		}
		return &storage.ConstraintError{Err: sentinel, Column: sqliteColumn(se.Error()), Cause: err}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		var sentinel error
		switch pgErr.Code {
		case pgUniqueViolation:
			sentinel = storage.ErrAlreadyExists
		case pgForeignKeyViolation:
			sentinel = storage.ErrReferenceNotFound
		case pgCheckViolation, pgNotNullViolation:
			sentinel = storage.ErrCheckFailed
		default:
			return nil
		}
		column := pgErr.ColumnName
		if column == "" {
			column = pgColumn(pgErr.Detail)
		}
		return &storage.ConstraintError{Err: sentinel, Column: column, Cause: err}
	}

	return nil
}

func sqliteColumn(msg string) string {
	if m := sqliteColumnRe.FindStringSubmatch(msg); m != nil {
		return m[1]
	}
	return ""
}

func pgColumn(detail string) string {
	m := pgKeyRe.FindStringSubmatch(detail)
	if m == nil {
		return ""
	}
	// составной ключ: берем первую колонку
	col, _, _ := strings.Cut(m[1], ",")
	return strings.TrimSpace(col)
}
