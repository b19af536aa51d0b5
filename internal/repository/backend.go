package repository

import "context"

// Backend persists raw values by key. Load returns ErrKeyNotFound for missing keys.
type Backend interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Purge(ctx context.Context) error
	Close() error
}
