package repository

import (
	"context"
	"database/sql"

	"github.com/sirupsen/logrus"
)

var sqliteQueries = sqlQueries{
	schema: `CREATE TABLE IF NOT EXISTS kv (
        key        TEXT PRIMARY KEY,
        value      TEXT NOT NULL,
        updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
    )`,
	load: `SELECT value FROM kv WHERE key = ?`,
	save: `
        INSERT INTO kv (key, value, updated_at)
        VALUES (?, ?, CURRENT_TIMESTAMP)
        ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
	delete: `DELETE FROM kv WHERE key = ?`,
	purge:  `DELETE FROM kv`,
}

// NewSQLiteBackend stores keys in the kv table of a SQLite database opened with
// pkg/db.OpenSQLite. The backend owns db and closes it.
func NewSQLiteBackend(ctx context.Context, db *sql.DB, logger *logrus.Logger) (Backend, error) {
	b, err := newSQLBackend(ctx, db, "sqlite", sqliteQueries, nil, logger)
	if err != nil {
		return nil, err
	}
	return b, nil
}
