// Package sqlstore implements server storage over database/sql for SQLite
// (modernc.org/sqlite) and PostgreSQL (pgx stdlib driver).
package sqlstore

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/iudanet/learnhub/internal/server/patch"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var embedMigrations embed.FS

// Dialect выбирает драйвер и диалект SQL
type Dialect string

const (
	// SQLite - встроенная БД, по умолчанию и в тестах
	SQLite Dialect = "sqlite"
	// Postgres - продакшн БД
	Postgres Dialect = "postgres"
)

type scanner interface {
	Scan(dest ...any) error
}

// execer - общее подмножество *sql.DB и *sql.Tx
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store implements storage.Storage
type Store struct {
	db      *sql.DB
	ph      patch.Placeholder
	dialect Dialect
}

// New opens the database for the dialect and runs migrations.
// For SQLite dsn is a file path, ":memory:" is useful for testing.
func New(ctx context.Context, dialect Dialect, dsn string) (*Store, error) {
	switch dialect {
	case SQLite:
		return newSQLite(ctx, dsn)
	case Postgres:
		return newPostgres(ctx, dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", dialect)
	}
}

func newSQLite(ctx context.Context, dbPath string) (*Store, error) {
	// Открываем соединение с БД
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Проверяем соединение
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// SQLite допускает только одного писателя; к тому же :memory: живет в одном соединении
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
		"PRAGMA foreign_keys = ON;",
		"PRAGMA busy_timeout = 5000;",
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	s := &Store{db: db, dialect: SQLite, ph: patch.Question}
	if err := s.runMigrations(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return s, nil
}

func newPostgres(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)

	s := &Store{db: db, dialect: Postgres, ph: patch.Dollar}
	if err := s.runMigrations(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying database connection for testing purposes
func (s *Store) DB() *sql.DB {
	return s.db
}

// Dialect returns the SQL dialect of the store
func (s *Store) Dialect() Dialect {
	return s.dialect
}

// runMigrations выполняет миграции из embedded FS
func (s *Store) runMigrations(ctx context.Context) error {
	gooseDialect := "sqlite3"
	if s.dialect == Postgres {
		gooseDialect = "postgres"
	}

	if err := goose.SetDialect(gooseDialect); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	goose.SetBaseFS(embedMigrations)

	if err := goose.UpContext(ctx, s.db, "migrations/"+string(s.dialect)); err != nil {
		return fmt.Errorf("goose up failed: %w", err)
	}

	return nil
}

// withTx выполняет fn в транзакции: commit при успехе, rollback при ошибке или панике
func (s *Store) withTx(ctx context.Context, fn func(ctx context.Context, tx execer) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		if err = tx.Commit(); err != nil {
			err = fmt.Errorf("failed to commit transaction: %w", err)
		}
	}()

	return fn(ctx, tx)
}

// rebind переписывает плейсхолдеры "?" в "$n" для PostgreSQL
func (s *Store) rebind(query string) string {
	if s.dialect != Postgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// updateQuery собирает UPDATE ... SET ... WHERE key = ? RETURNING ...
// Пустой SET сюда не доходит: вызывающий код проверяет upd.Empty().
func (s *Store) updateQuery(table, keyColumn, returning string, upd *patch.Update, key any) (string, []any, error) {
	if upd == nil || upd.Empty() {
		return "", nil, patch.ErrNoChanges
	}

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = %s RETURNING %s",
		table, upd.SetClause(s.ph), keyColumn, upd.KeyPlaceholder(s.ph), returning)

	return query, append(upd.Args(), key), nil
}

// execAffectingOne выполняет DELETE/UPDATE и возвращает notFound, если строка не найдена
func (s *Store) execAffectingOne(ctx context.Context, query string, notFound error, args ...any) error {
	result, err := s.db.ExecContext(ctx, s.rebind(query), args...)
	if err != nil {
		return s.wrap(err, "failed to execute statement")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return notFound
	}

	return nil
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}

func stringOrNil(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
