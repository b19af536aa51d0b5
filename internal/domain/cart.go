package domain

import "github.com/shopspring/decimal"

// CartItem is a cart line. Lines are identified by (ID, Size).
type CartItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Size     string          `json:"size"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Image    string          `json:"image,omitempty"`
}

func (c CartItem) LineTotal() decimal.Decimal {
	return c.Price.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

func (c CartItem) Validate() error {
	if c.ID == "" {
		return fmtInvalid("cart item id cannot be empty")
	}
	if c.Quantity <= 0 {
		return fmtInvalid("cart item quantity must be positive")
	}
	if c.Price.IsNegative() {
		return fmtInvalid("cart item price cannot be negative")
	}
	return nil
}
