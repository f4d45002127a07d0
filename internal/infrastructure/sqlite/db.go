// Package sqlite implementa los puertos de persistencia sobre SQLite (modernc.org/sqlite, sin cgo).
// Se usa una sola conexión: SQLite admite un escritor a la vez y así las transacciones
// de TxRunner quedan serializadas sin errores de "database is locked".
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/smartsales-api/internal/domain"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const schema = `
CREATE TABLE IF NOT EXISTS products (
	id          TEXT PRIMARY KEY,
	name        TEXT    NOT NULL CHECK (name <> ''),
	name_key    TEXT    NOT NULL UNIQUE,
	last_sales  INTEGER NOT NULL DEFAULT 0 CHECK (last_sales >= 0),
	stock       INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
	created_at  TEXT    NOT NULL,
	updated_at  TEXT    NOT NULL
);
CREATE TABLE IF NOT EXISTS sales_periods (
	id          TEXT PRIMARY KEY,
	label       TEXT    NOT NULL CHECK (label <> ''),
	label_key   TEXT    NOT NULL UNIQUE,
	value       TEXT    NOT NULL,
	position    INTEGER NOT NULL,
	created_at  TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sales_periods_position ON sales_periods (position);`

// Open abre (o crea) la base en path y aplica el esquema. path = ":memory:" para tests.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, `PRAGMA busy_timeout = 5000`); err != nil {
		db.Close()
		return nil, fmt.Errorf("configurar sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("crear tablas: %w", err)
	}
	return db, nil
}

// Querier es lo común entre *sql.DB y *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func isUniqueViolation(err error) bool {
	var sErr *sqlite.Error
	if errors.As(err, &sErr) {
		return sErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			sErr.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func persistenceErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrPersistence, err)
}

// Las fechas se guardan como texto RFC 3339 en UTC con ancho fijo (nanosegundos con ceros),
// así el orden lexicográfico de ORDER BY created_at coincide con el cronológico.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string { return t.UTC().Format(timeLayout) }

func parseTime(s string) (time.Time, error) { return time.Parse(time.RFC3339Nano, s) }
