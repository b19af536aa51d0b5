package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"pos_service/internal/domain"
)

func unreachableRedis(t *testing.T) *RedisBackend {
	t.Helper()
	rdb := NewRedisClient(RedisOptions{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	b := NewRedisBackend(rdb, "pos-test", testLogger())
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func TestRedisBackendNamespacesKeys(t *testing.T) {
	b := NewRedisBackend(nil, "shop1", testLogger())
	assert.Equal(t, "shop1:pos_orders", b.key(domain.KeyOrders))

	b = NewRedisBackend(nil, "", testLogger())
	assert.Equal(t, "pos_orders", b.key(domain.KeyOrders))
}

func TestKVStoreOverUnreachableRedisNeverFails(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	store := NewKVStore(unreachableRedis(t), testLogger())

	var got []domain.Order
	assert.False(t, store.Get(ctx, domain.KeyOrders, &got))
	assert.False(t, store.Set(ctx, domain.KeyOrders, []domain.Order{{ID: "1"}}))
	assert.False(t, store.Remove(ctx, domain.KeyOrders))
	assert.False(t, store.Clear(ctx))
}
