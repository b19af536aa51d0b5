package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/sirupsen/logrus"

	"pos_service/internal/domain"
)

var _ domain.Store = (*KVStore)(nil)

// KVStore is the JSON key-value store over a Backend. It never returns errors:
// failures are logged and reported as false.
type KVStore struct {
	backend Backend
	log     *logrus.Logger
}

func NewKVStore(backend Backend, logger *logrus.Logger) *KVStore {
	return &KVStore{
		backend: backend,
		log:     logger,
	}
}

func (s *KVStore) Get(ctx context.Context, key string, dst any) bool {
	data, err := s.backend.Load(ctx, key)
	if err != nil {
		switch {
		case errors.Is(err, ErrKeyNotFound):
			s.log.Debugf("Repository: Key %s not present in storage", key)
		case errors.Is(err, ErrUnavailable):
			s.log.Debugf("Repository: Storage unavailable, get %s skipped", key)
		default:
			s.log.Errorf("Repository: Error getting %s from storage: %v", key, err)
		}
		return false
	}

	if err := json.Unmarshal(data, dst); err != nil {
		s.log.Errorf("Repository: Error parsing %s from storage: %v", key, err)
		return false
	}
	return true
}

func (s *KVStore) Set(ctx context.Context, key string, value any) bool {
	data, err := json.Marshal(value)
	if err != nil {
		s.log.Errorf("Repository: Error encoding %s for storage: %v", key, err)
		return false
	}
	if err := s.backend.Save(ctx, key, data); err != nil {
		s.logWriteError("setting", key, err)
		return false
	}
	s.log.Debugf("Repository: Stored %s (%d bytes)", key, len(data))
	return true
}

func (s *KVStore) Remove(ctx context.Context, key string) bool {
	if err := s.backend.Delete(ctx, key); err != nil {
		s.logWriteError("removing", key, err)
		return false
	}
	return true
}

func (s *KVStore) Clear(ctx context.Context) bool {
	if err := s.backend.Purge(ctx); err != nil {
		s.logWriteError("clearing", "all keys", err)
		return false
	}
	s.log.Info("Repository: Storage cleared")
	return true
}

func (s *KVStore) Close() error {
	return s.backend.Close()
}

func (s *KVStore) logWriteError(op, key string, err error) {
	if errors.Is(err, ErrUnavailable) {
		s.log.Debugf("Repository: Storage unavailable, %s %s skipped", op, key)
		return
	}
	s.log.Errorf("Repository: Error %s %s in storage: %v", op, key, err)
}
