package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

var postgresQueries = sqlQueries{
	schema: `CREATE TABLE IF NOT EXISTS kv_store (
        key        TEXT PRIMARY KEY,
        value      TEXT NOT NULL,
        updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
    )`,
	load: `SELECT value FROM kv_store WHERE key = $1`,
	save: `
        INSERT INTO kv_store (key, value, updated_at)
        VALUES ($1, $2, now())
        ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
	delete: `DELETE FROM kv_store WHERE key = $1`,
	purge:  `DELETE FROM kv_store`,
}

// NewPostgresBackend stores keys in the kv_store table. The backend owns db and closes it.
func NewPostgresBackend(ctx context.Context, db *sql.DB, logger *logrus.Logger) (Backend, error) {
	b, err := newSQLBackend(ctx, db, "postgres", postgresQueries, translatePQError, logger)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func translatePQError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch pqErr.Code {
	case "42501":
		return fmt.Errorf("insufficient privilege on key-value table: %w", err)
	case "53300":
		return fmt.Errorf("too many database connections: %w", err)
	default:
		return fmt.Errorf("postgres error %s (%s): %w", pqErr.Code, pqErr.Code.Name(), err)
	}
}
