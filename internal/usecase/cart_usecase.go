package usecase

import (
	"slices"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"pos_service/internal/domain"
	"pos_service/internal/state"
)

// CartUseCase is a memory-only cart. Nothing here touches storage.
type CartUseCase struct {
	mu    sync.Mutex
	items []domain.CartItem
	log   *logrus.Logger
}

func NewCartUseCase(logger *logrus.Logger) *CartUseCase {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &CartUseCase{items: []domain.CartItem{}, log: logger}
}

func (c *CartUseCase) Items() []domain.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.items)
}

func (c *CartUseCase) AddToCart(item domain.CartItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = state.AddCartItem(c.items, item)
	c.log.Debugf("Use Case: Added %d x %s (%s) to cart", item.Quantity, item.ID, item.Size)
}

// RemoveFromCart reports whether a line was removed.
func (c *CartUseCase) RemoveFromCart(id, size string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	next, ok := state.RemoveCartItem(c.items, id, size)
	c.items = next
	return ok
}

// UpdateQuantity sets the quantity of a line; zero or less removes it.
func (c *CartUseCase) UpdateQuantity(id, size string, quantity int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	next, ok := state.SetCartQuantity(c.items, id, size, quantity)
	c.items = next
	return ok
}

func (c *CartUseCase) ClearCart() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = []domain.CartItem{}
}

// RemoveLines takes the given lines out of the cart, leaving anything added
// since they were read.
func (c *CartUseCase) RemoveLines(lines []domain.CartItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = state.SubtractCartItems(c.items, lines)
}

func (c *CartUseCase) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return state.CartTotalItems(c.items)
}

func (c *CartUseCase) TotalPrice() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return state.CartTotalPrice(c.items)
}

// Carts hands out one cart per session key.
type Carts struct {
	mu    sync.Mutex
	carts map[string]*CartUseCase
	log   *logrus.Logger
}

func NewCarts(logger *logrus.Logger) *Carts {
	return &Carts{carts: make(map[string]*CartUseCase), log: logger}
}

func (c *Carts) Get(session string) *CartUseCase {
	c.mu.Lock()
	defer c.mu.Unlock()
	cart, ok := c.carts[session]
	if !ok {
		cart = NewCartUseCase(c.log)
		c.carts[session] = cart
	}
	return cart
}

func (c *Carts) Drop(session string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.carts, session)
}
