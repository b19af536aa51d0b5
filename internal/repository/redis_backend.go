package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const purgeBatch = 100

type RedisOptions struct {
	Addr        string
	Password    string
	DB          int
	Namespace   string
	DialTimeout time.Duration
	// MaxRetries follows go-redis semantics: -1 disables retries.
	MaxRetries int
}

// ConnectRedis builds a client for opts and checks it with a ping.
func ConnectRedis(ctx context.Context, opts RedisOptions) (*redis.Client, error) {
	rdb := NewRedisClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return rdb, nil
}

func NewRedisClient(opts RedisOptions) *redis.Client {
	dialTimeout := opts.DialTimeout
	if dialTimeout <= 0 {
		dialTimeout = 5 * time.Second
	}
	return redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		PoolSize:     20,
		MaxRetries:   opts.MaxRetries,
		DialTimeout:  dialTimeout,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
}

// RedisBackend keeps each key as a plain string value under a namespace prefix.
// Purge removes only keys inside the namespace.
type RedisBackend struct {
	rdb       *redis.Client
	namespace string
	log       *logrus.Logger
}

func NewRedisBackend(rdb *redis.Client, namespace string, logger *logrus.Logger) *RedisBackend {
	return &RedisBackend{rdb: rdb, namespace: namespace, log: logger}
}

func (b *RedisBackend) key(k string) string {
	if b.namespace == "" {
		return k
	}
	return b.namespace + ":" + k
}

func (b *RedisBackend) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := b.rdb.Get(ctx, b.key(key)).Bytes()
	switch {
	case err == nil:
		return data, nil
	case errors.Is(err, redis.Nil):
		return nil, ErrKeyNotFound
	default:
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
}

func (b *RedisBackend) Save(ctx context.Context, key string, value []byte) error {
	if err := b.rdb.Set(ctx, b.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (b *RedisBackend) Delete(ctx context.Context, key string) error {
	if err := b.rdb.Del(ctx, b.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

func (b *RedisBackend) Purge(ctx context.Context) error {
	pattern := b.key("*")
	var cursor uint64
	removed := 0
	for {
		keys, next, err := b.rdb.Scan(ctx, cursor, pattern, purgeBatch).Result()
		if err != nil {
			return fmt.Errorf("redis scan %s: %w", pattern, err)
		}
		if len(keys) > 0 {
			if err := b.rdb.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis del during clear: %w", err)
			}
			removed += len(keys)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	b.log.Infof("Repository: Removed %d keys under redis pattern %s", removed, pattern)
	return nil
}

func (b *RedisBackend) Close() error {
	return b.rdb.Close()
}
