package repository

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"pos_service/pkg/db"
)

const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
	BackendNone     = "none"
)

type Options struct {
	Backend     string
	SQLitePath  string
	DatabaseURL string
	Redis       RedisOptions
}

// Open connects the backend selected by opts.Backend.
func Open(ctx context.Context, opts Options, logger *logrus.Logger) (Backend, error) {
	switch opts.Backend {
	case "", BackendSQLite:
		conn, err := db.OpenSQLite(ctx, opts.SQLitePath)
		if err != nil {
			return nil, err
		}
		b, err := NewSQLiteBackend(ctx, conn, logger)
		if err != nil {
			_ = conn.Close()
			return nil, err
		}
		logger.Infof("Repository: Using sqlite storage at %s", opts.SQLitePath)
		return b, nil
	case BackendPostgres:
		conn, err := db.Connect(ctx, opts.DatabaseURL)
		if err != nil {
			return nil, err
		}
		b, err := NewPostgresBackend(ctx, conn, logger)
		if err != nil {
			_ = conn.Close()
			return nil, err
		}
		logger.Info("Repository: Using postgres storage")
		return b, nil
	case BackendRedis:
		rdb, err := ConnectRedis(ctx, opts.Redis)
		if err != nil {
			return nil, err
		}
		logger.Infof("Repository: Using redis storage at %s (namespace %q)", opts.Redis.Addr, opts.Redis.Namespace)
		return NewRedisBackend(rdb, opts.Redis.Namespace, logger), nil
	case BackendMemory:
		logger.Warn("Repository: Using in-memory storage, data will not survive a restart")
		return NewMemoryBackend(), nil
	case BackendNone:
		logger.Warn("Repository: No storage environment, state will not be persisted")
		return NoneBackend{}, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", opts.Backend)
	}
}
