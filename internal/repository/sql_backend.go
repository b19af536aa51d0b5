package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

type sqlQueries struct {
	schema string
	load   string
	save   string
	delete string
	purge  string
}

// sqlBackend keeps every key as one row of a key/value table.
type sqlBackend struct {
	db        *sql.DB
	name      string
	q         sqlQueries
	translate func(error) error
	log       *logrus.Logger
}

func newSQLBackend(ctx context.Context, db *sql.DB, name string, q sqlQueries, translate func(error) error, logger *logrus.Logger) (*sqlBackend, error) {
	if translate == nil {
		translate = func(err error) error { return err }
	}
	b := &sqlBackend{db: db, name: name, q: q, translate: translate, log: logger}

	if _, err := db.ExecContext(ctx, q.schema); err != nil {
		logger.Errorf("Repository: Failed to prepare %s key-value table: %v", name, err)
		return nil, fmt.Errorf("could not create %s key-value table: %w", name, b.translate(err))
	}
	logger.Infof("Repository: %s key-value table ready", name)
	return b, nil
}

func (b *sqlBackend) Load(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := b.db.QueryRowContext(ctx, b.q.load, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("could not load key %s: %w", key, b.translate(err))
	}
	return value, nil
}

func (b *sqlBackend) Save(ctx context.Context, key string, value []byte) error {
	if _, err := b.db.ExecContext(ctx, b.q.save, key, string(value)); err != nil {
		return fmt.Errorf("could not save key %s: %w", key, b.translate(err))
	}
	return nil
}

func (b *sqlBackend) Delete(ctx context.Context, key string) error {
	if _, err := b.db.ExecContext(ctx, b.q.delete, key); err != nil {
		return fmt.Errorf("could not delete key %s: %w", key, b.translate(err))
	}
	return nil
}

func (b *sqlBackend) Purge(ctx context.Context) error {
	res, err := b.db.ExecContext(ctx, b.q.purge)
	if err != nil {
		return fmt.Errorf("could not clear %s key-value table: %w", b.name, b.translate(err))
	}
	if n, err := res.RowsAffected(); err == nil {
		b.log.Infof("Repository: Removed %d keys from %s", n, b.name)
	}
	return nil
}

func (b *sqlBackend) Close() error {
	return b.db.Close()
}
