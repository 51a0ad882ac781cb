package sqlstore

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type constraint int

const (
	constraintNone constraint = iota
	constraintUnique
	constraintForeignKey
)

// PostgreSQL SQLSTATE коды нарушений ограничений
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// violated определяет, какое ограничение схемы нарушила операция
func violated(err error) constraint {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return constraintUnique
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return constraintForeignKey
		}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return constraintUnique
		case pgForeignKeyViolation:
			return constraintForeignKey
		}
	}

	// Расширенные коды могут быть выключены, остается текст ошибки
	if err != nil {
		msg := err.Error()
		switch {
		case strings.Contains(msg, "UNIQUE constraint failed"):
			return constraintUnique
		case strings.Contains(msg, "FOREIGN KEY constraint failed"):
			return constraintForeignKey
		}
	}
	return constraintNone
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
