package usecase

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos_service/internal/domain"
)

func cartItem(id, size, price string, qty int) domain.CartItem {
	return domain.CartItem{ID: id, Name: "Item " + id, Size: size, Price: decimal.RequireFromString(price), Quantity: qty}
}

func TestCartMergeAndTotals(t *testing.T) {
	cart := NewCartUseCase(testLogger())

	cart.AddToCart(cartItem("A", "L", "10", 2))
	cart.AddToCart(cartItem("A", "L", "10", 3))

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, 5, cart.TotalItems())
	assert.True(t, cart.TotalPrice().Equal(decimal.NewFromInt(50)))
}

func TestCartRemoveAndUpdate(t *testing.T) {
	cart := NewCartUseCase(testLogger())
	cart.AddToCart(cartItem("A", "L", "10", 2))
	cart.AddToCart(cartItem("A", "M", "7.5", 1))

	assert.True(t, cart.RemoveFromCart("A", "L"))
	assert.False(t, cart.RemoveFromCart("A", "L"))
	require.Len(t, cart.Items(), 1)

	assert.True(t, cart.UpdateQuantity("A", "M", 4))
	assert.True(t, cart.TotalPrice().Equal(decimal.NewFromInt(30)))

	assert.True(t, cart.UpdateQuantity("A", "M", 0))
	assert.Empty(t, cart.Items())
	assert.Zero(t, cart.TotalItems())
	assert.True(t, cart.TotalPrice().IsZero())
}

func TestCartItemsIsACopy(t *testing.T) {
	cart := NewCartUseCase(testLogger())
	cart.AddToCart(cartItem("A", "L", "10", 1))

	items := cart.Items()
	items[0].Quantity = 99

	assert.Equal(t, 1, cart.Items()[0].Quantity)
}

func TestCartsAreScopedBySession(t *testing.T) {
	carts := NewCarts(testLogger())

	carts.Get("s1").AddToCart(cartItem("A", "", "1", 1))

	assert.Same(t, carts.Get("s1"), carts.Get("s1"))
	assert.Empty(t, carts.Get("s2").Items())

	carts.Drop("s1")
	assert.Empty(t, carts.Get("s1").Items())
}
