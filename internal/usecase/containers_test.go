package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos_service/internal/domain"
)

func TestContainersLoadRestoresEverything(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	clock := newFakeClock()

	seed := NewContainers(newTestDeps(store, clock), nil, nil)
	require.NoError(t, seed.Load(ctx))
	_, err := seed.Products.AddProduct(ctx, productInput("Banku", "Main Course"))
	require.NoError(t, err)
	_, err = seed.Orders.AddOrder(ctx, orderInput("12"))
	require.NoError(t, err)
	_, err = seed.Auth.Login(ctx, "admin@pos.test", "pw")
	require.NoError(t, err)

	restored := NewContainers(newTestDeps(store, clock), nil, nil)
	require.NoError(t, restored.Load(ctx))

	assert.Len(t, restored.Products.Products(), 1)
	assert.Len(t, restored.Orders.Orders(), 1)
	assert.Empty(t, restored.Reports.Reports())
	assert.True(t, restored.Auth.Snapshot().IsAuthenticated)
	assert.False(t, restored.Products.Snapshot().IsLoading)
}

func TestContainersLoadWithoutStorageEnvironment(t *testing.T) {
	ctx := context.Background()
	c := NewContainers(newTestDeps(noneStore{}, newFakeClock()), nil, nil)

	require.NoError(t, c.Load(ctx))

	assert.Empty(t, c.Products.Products())
	assert.False(t, c.Auth.Snapshot().IsAuthenticated)
	assert.Equal(t, domain.DefaultSettings(), c.Settings.Get(ctx))
}

type noneStore struct{}

func (noneStore) Get(context.Context, string, any) bool { return false }
func (noneStore) Set(context.Context, string, any) bool { return false }
func (noneStore) Remove(context.Context, string) bool { return false }
func (noneStore) Clear(context.Context) bool { return false }
