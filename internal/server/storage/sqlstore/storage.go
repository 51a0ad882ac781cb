// Package sqlstore implements server storage on database/sql for SQLite
// (modernc.org/sqlite) and PostgreSQL (pgx). Schema is applied with goose
// migrations embedded per dialect.
package sqlstore

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/iudanet/contactdesk/internal/server/storage"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var embedMigrations embed.FS

var _ storage.Storage = (*Storage)(nil)

type dialect struct {
	name       string
	driver     string
	migrations string
	goose      goose.Dialect
	// numbered использует плейсхолдеры $1, $2 вместо ?
	numbered bool
}

var (
	dialectSQLite = dialect{
		name:       "sqlite",
		driver:     "sqlite",
		migrations: "migrations/sqlite",
		goose:      goose.DialectSQLite3,
	}
	dialectPostgres = dialect{
		name:       "postgres",
		driver:     "pgx",
		migrations: "migrations/postgres",
		goose:      goose.DialectPostgres,
		numbered:   true,
	}
)

// Storage represents SQL storage implementation
type Storage struct {
	db      *sql.DB
	dialect dialect
}

// NewSQLite creates a new SQLite storage instance
// dbPath is the path to the SQLite database file
// Use ":memory:" for in-memory database (useful for testing)
func NewSQLite(ctx context.Context, dbPath string) (*Storage, error) {
	s, err := open(ctx, dialectSQLite, dbPath)
	if err != nil {
		return nil, err
	}

	// SQLite с WAL mode может поддерживать несколько читателей, но только одного писателя
	s.db.SetMaxOpenConns(1)
	s.db.SetMaxIdleConns(1)

	// foreign_keys нужен для каскадного удаления контактов компании
	pragmas := []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
		"PRAGMA foreign_keys = ON;",
		"PRAGMA busy_timeout = 5000;",
	}

	for _, pragma := range pragmas {
		if _, err := s.db.ExecContext(ctx, pragma); err != nil {
			_ = s.db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if err := s.migrate(ctx); err != nil {
		_ = s.db.Close()
		return nil, err
	}
	return s, nil
}

// NewPostgres creates a new PostgreSQL storage instance from a
// postgres:// connection string
func NewPostgres(ctx context.Context, dsn string) (*Storage, error) {
	s, err := open(ctx, dialectPostgres, dsn)
	if err != nil {
		return nil, err
	}

	if err := s.migrate(ctx); err != nil {
		_ = s.db.Close()
		return nil, err
	}
	return s, nil
}

func open(ctx context.Context, d dialect, dsn string) (*Storage, error) {
	db, err := sql.Open(d.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", d.name, err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", d.name, err)
	}

	return &Storage{db: db, dialect: d}, nil
}

// migrate выполняет миграции диалекта из embedded FS
func (s *Storage) migrate(ctx context.Context) error {
	fsys, err := fs.Sub(embedMigrations, s.dialect.migrations)
	if err != nil {
		return fmt.Errorf("failed to open migrations: %w", err)
	}

	provider, err := goose.NewProvider(s.dialect.goose, s.db, fsys)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}

	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("goose up failed: %w", err)
	}
	return nil
}

// Ping checks database connection
func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

// DB returns the underlying database connection for testing purposes
func (s *Storage) DB() *sql.DB {
	return s.db
}

// rebind переписывает плейсхолдеры ? под диалект
func (s *Storage) rebind(query string) string {
	if !s.dialect.numbered {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// listClause возвращает условие поиска и окно выборки с аргументами
func (s *Storage) listClause(q storage.ListQuery) (string, []any) {
	var (
		clause strings.Builder
		args   []any
	)
	if q.Search != "" {
		clause.WriteString(` WHERE lower(name) LIKE ? ESCAPE '\'`)
		args = append(args, storage.LikePattern(q.Search))
	}
	clause.WriteString(" ORDER BY id")
	if q.Limit > 0 {
		clause.WriteString(" LIMIT ?")
		args = append(args, q.Limit)
	}
	if q.Offset > 0 {
		if q.Limit <= 0 && !s.dialect.numbered {
			// OFFSET без LIMIT SQLite не поддерживает
			clause.WriteString(" LIMIT -1")
		}
		clause.WriteString(" OFFSET ?")
		args = append(args, q.Offset)
	}
	return clause.String(), args
}
