package usecase

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos_service/internal/domain"
	"pos_service/internal/latency"
)

func productInput(name, category string) domain.ProductInput {
	return domain.ProductInput{
		Name:     name,
		Category: category,
		Variants: []domain.ProductVariant{
			{ID: "v1", Name: "Regular", Price: decimal.RequireFromString("25.00"), Size: "R", Stock: 5},
		},
		IsActive: true,
	}
}

func TestProductLoadFromEmptyStore(t *testing.T) {
	uc := NewProductUseCase(newTestDeps(newTestStore(), newFakeClock()))
	require.True(t, uc.Snapshot().IsLoading)

	require.NoError(t, uc.Load(context.Background()))

	s := uc.Snapshot()
	assert.False(t, s.IsLoading)
	assert.Empty(t, s.Error)
	assert.Empty(t, s.Items)
}

func TestAddProductAssignsIdentityAndPersists(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	store := newTestStore()
	uc := NewProductUseCase(newTestDeps(store, clock))
	require.NoError(t, uc.Load(ctx))

	created, err := uc.AddProduct(ctx, productInput("Fried rice", "Main Course"))
	require.NoError(t, err)

	assert.Equal(t, "1717243200000", created.ID)
	assert.Equal(t, clock.Now(), created.CreatedAt)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
	assert.False(t, uc.Snapshot().IsLoading)

	var stored []domain.Product
	require.True(t, store.Get(ctx, domain.KeyProducts, &stored))
	require.Len(t, stored, 1)
	assert.Equal(t, created.ID, stored[0].ID)
}

func TestProductReloadIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	clock := newFakeClock()
	first := NewProductUseCase(newTestDeps(store, clock))
	require.NoError(t, first.Load(ctx))
	_, err := first.AddProduct(ctx, productInput("Banku", "Main Course"))
	require.NoError(t, err)
	_, err = first.AddProduct(ctx, productInput("Plain rice", "Side"))
	require.NoError(t, err)

	second := NewProductUseCase(newTestDeps(store, clock))
	require.NoError(t, second.Load(ctx))

	if diff := cmp.Diff(first.Products(), second.Products()); diff != "" {
		t.Fatalf("reloaded products differ (-before +after):\n%s", diff)
	}
}

func TestUpdateProductRefreshesUpdatedAt(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	uc := NewProductUseCase(newTestDeps(newTestStore(), clock))
	require.NoError(t, uc.Load(ctx))
	created, err := uc.AddProduct(ctx, productInput("Fufu", "Main Course"))
	require.NoError(t, err)

	clock.Advance(time.Minute)
	name := "Fufu & light soup"
	updated, err := uc.UpdateProduct(ctx, created.ID, domain.ProductPatch{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, "Fufu & light soup", updated.Name)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, clock.Now(), updated.UpdatedAt)
	got, ok := uc.GetProductByID(created.ID)
	require.True(t, ok)
	assert.Equal(t, updated, got)
}

func TestUpdateProductNotFoundLeavesCollectionUntouched(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	uc := NewProductUseCase(newTestDeps(store, newFakeClock()))
	require.NoError(t, uc.Load(ctx))
	_, err := uc.AddProduct(ctx, productInput("Waakye", "Main Course"))
	require.NoError(t, err)
	before := uc.Products()

	name := "ghost"
	_, err = uc.UpdateProduct(ctx, "missing", domain.ProductPatch{Name: &name})

	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, before, uc.Products())
	assert.False(t, uc.Snapshot().IsLoading)
	assert.ErrorIs(t, uc.DeleteProduct(ctx, "missing"), domain.ErrNotFound)
	_, err = uc.ToggleProductStatus(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestToggleProductStatus(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	uc := NewProductUseCase(newTestDeps(newTestStore(), clock))
	require.NoError(t, uc.Load(ctx))
	created, err := uc.AddProduct(ctx, productInput("Kelewele", "Side"))
	require.NoError(t, err)

	clock.Advance(time.Hour)
	toggled, err := uc.ToggleProductStatus(ctx, created.ID)
	require.NoError(t, err)

	assert.False(t, toggled.IsActive)
	assert.Equal(t, clock.Now(), toggled.UpdatedAt)
	assert.Empty(t, uc.ActiveProducts())

	toggled, err = uc.ToggleProductStatus(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsActive)
}

func TestDeleteProduct(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	uc := NewProductUseCase(newTestDeps(store, newFakeClock()))
	require.NoError(t, uc.Load(ctx))
	a, err := uc.AddProduct(ctx, productInput("Banku", "Main Course"))
	require.NoError(t, err)
	b, err := uc.AddProduct(ctx, productInput("Sobolo", "Beverages"))
	require.NoError(t, err)

	require.NoError(t, uc.DeleteProduct(ctx, a.ID))

	require.Len(t, uc.Products(), 1)
	assert.Equal(t, b.ID, uc.Products()[0].ID)
	var stored []domain.Product
	require.True(t, store.Get(ctx, domain.KeyProducts, &stored))
	assert.Len(t, stored, 1)
}

func TestProductQueries(t *testing.T) {
	ctx := context.Background()
	uc := NewProductUseCase(newTestDeps(newTestStore(), newFakeClock()))
	require.NoError(t, uc.Load(ctx))
	_, err := uc.AddProduct(ctx, productInput("Banku", "Main Course"))
	require.NoError(t, err)
	inactive := productInput("Sobolo", "Beverages")
	inactive.IsActive = false
	_, err = uc.AddProduct(ctx, inactive)
	require.NoError(t, err)

	assert.Len(t, uc.ActiveProducts(), 1)
	assert.Len(t, uc.ProductsByCategory("Beverages"), 1)
	assert.Empty(t, uc.ProductsByCategory("Desserts"))
}

func TestProductPersistFailureKeepsChangeInMemory(t *testing.T) {
	ctx := context.Background()
	uc := NewProductUseCase(newTestDeps(readOnlyStore{newTestStore()}, newFakeClock()))
	require.NoError(t, uc.Load(ctx))

	created, err := uc.AddProduct(ctx, productInput("Banku", "Main Course"))

	require.NoError(t, err)
	s := uc.Snapshot()
	require.Len(t, s.Items, 1)
	assert.Equal(t, created.ID, s.Items[0].ID)
	assert.Equal(t, "products changes could not be saved", s.Error)
	assert.False(t, s.IsLoading)
}

func TestProductOperationsUseSimulatedLatency(t *testing.T) {
	ctx := context.Background()
	delay := &recordingDelay{}
	deps := newTestDeps(newTestStore(), newFakeClock())
	deps.Delay = delay
	uc := NewProductUseCase(deps)

	require.NoError(t, uc.Load(ctx))
	_, err := uc.AddProduct(ctx, productInput("Banku", "Main Course"))
	require.NoError(t, err)

	assert.Equal(t, []time.Duration{latency.ProductsLoad, latency.Mutation}, delay.recorded())
}

func TestCancelledOperationCommitsNothing(t *testing.T) {
	store := newTestStore()
	uc := NewProductUseCase(newTestDeps(store, newFakeClock()))
	require.NoError(t, uc.Load(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := uc.AddProduct(ctx, productInput("Banku", "Main Course"))

	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, uc.Products())
	assert.False(t, uc.Snapshot().IsLoading)
	var stored []domain.Product
	assert.False(t, store.Get(context.Background(), domain.KeyProducts, &stored))
}

func TestConcurrentAddsAreNotLost(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	uc := NewProductUseCase(newTestDeps(store, newFakeClock()))
	require.NoError(t, uc.Load(ctx))

	const n = 25
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.AddProduct(ctx, productInput("Item", "Side"))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Len(t, uc.Products(), n)
	var stored []domain.Product
	require.True(t, store.Get(ctx, domain.KeyProducts, &stored))
	assert.Len(t, stored, n)
}

func TestProductReadsCannotMutateContainer(t *testing.T) {
	ctx := context.Background()
	uc := NewProductUseCase(newTestDeps(newTestStore(), newFakeClock()))
	require.NoError(t, uc.Load(ctx))
	added, err := uc.AddProduct(ctx, productInput("Jollof", "Main Course"))
	require.NoError(t, err)

	got, ok := uc.GetProductByID(added.ID)
	require.True(t, ok)
	got.Variants[0].Stock = 0
	uc.Products()[0].Variants[0].Price = decimal.Zero
	added.Variants[0].Stock = 0

	again, ok := uc.GetProductByID(added.ID)
	require.True(t, ok)
	assert.Equal(t, 5, again.Variants[0].Stock)
	assert.True(t, again.Variants[0].Price.Equal(decimal.RequireFromString("25.00")))
}

func TestProductIDsContinuePastLoadedIDs(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	clock := newFakeClock()
	ahead := strconv.FormatInt(clock.Now().UnixMilli()+60000, 10)
	require.True(t, store.Set(ctx, domain.KeyProducts, []domain.Product{{ID: ahead, Name: "Waakye", IsActive: true}}))

	uc := NewProductUseCase(newTestDeps(store, clock))
	require.NoError(t, uc.Load(ctx))
	added, err := uc.AddProduct(ctx, productInput("Kenkey", "Main Course"))
	require.NoError(t, err)

	next, err := strconv.ParseInt(added.ID, 10, 64)
	require.NoError(t, err)
	loaded, _ := strconv.ParseInt(ahead, 10, 64)
	assert.Equal(t, loaded+1, next)
	assert.Len(t, uc.Products(), 2)
}
