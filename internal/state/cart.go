package state

import (
	"slices"

	"github.com/shopspring/decimal"

	"pos_service/internal/domain"
)

// AddCartItem merges item into items by (ID, Size), summing quantities.
func AddCartItem(items []domain.CartItem, item domain.CartItem) []domain.CartItem {
	idx := cartIndex(items, item.ID, item.Size)
	next := slices.Clone(items)
	if idx < 0 {
		return append(next, item)
	}
	line := next[idx]
	line.Quantity += item.Quantity
	next[idx] = line
	return next
}

// RemoveCartItem drops the line identified by (id, size).
func RemoveCartItem(items []domain.CartItem, id, size string) ([]domain.CartItem, bool) {
	idx := cartIndex(items, id, size)
	if idx < 0 {
		return items, false
	}
	next := make([]domain.CartItem, 0, len(items)-1)
	next = append(next, items[:idx]...)
	return append(next, items[idx+1:]...), true
}

// SetCartQuantity sets an absolute quantity; zero or less removes the line.
func SetCartQuantity(items []domain.CartItem, id, size string, quantity int) ([]domain.CartItem, bool) {
	if quantity <= 0 {
		return RemoveCartItem(items, id, size)
	}
	idx := cartIndex(items, id, size)
	if idx < 0 {
		return items, false
	}
	next := slices.Clone(items)
	next[idx].Quantity = quantity
	return next, true
}

// SubtractCartItems takes the quantities of taken out of items, matching lines
// by (ID, Size). Lines that reach zero are dropped; lines not in taken are kept.
func SubtractCartItems(items, taken []domain.CartItem) []domain.CartItem {
	next := slices.Clone(items)
	for _, t := range taken {
		idx := cartIndex(next, t.ID, t.Size)
		if idx < 0 {
			continue
		}
		if next[idx].Quantity <= t.Quantity {
			next = slices.Delete(next, idx, idx+1)
			continue
		}
		next[idx].Quantity -= t.Quantity
	}
	if next == nil {
		next = []domain.CartItem{}
	}
	return next
}

func CartTotalItems(items []domain.CartItem) int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}

func CartTotalPrice(items []domain.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}

func cartIndex(items []domain.CartItem, id, size string) int {
	return slices.IndexFunc(items, func(item domain.CartItem) bool {
		return item.ID == id && item.Size == size
	})
}
