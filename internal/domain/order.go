package domain

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

func IsValidStatus(status OrderStatus) bool {
	switch status {
	case StatusPending, StatusProcessing, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCard   PaymentMethod = "card"
	PaymentMobile PaymentMethod = "mobile"
)

func IsValidPaymentMethod(method PaymentMethod) bool {
	switch method {
	case PaymentCash, PaymentCard, PaymentMobile:
		return true
	default:
		return false
	}
}

// OrderItem is an immutable snapshot of a product line at the time of sale.
type OrderItem struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	VariantID   string          `json:"variantId"`
	VariantName string          `json:"variantName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
}

func NewOrderItem(productID, productName, variantID, variantName string, quantity int, unitPrice decimal.Decimal) OrderItem {
	return OrderItem{
		ProductID:   productID,
		ProductName: productName,
		VariantID:   variantID,
		VariantName: variantName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		TotalPrice:  unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}
}

type Order struct {
	ID            string          `json:"id"`
	CustomerName  string          `json:"customerName,omitempty"`
	CustomerPhone string          `json:"customerPhone,omitempty"`
	Items         []OrderItem     `json:"items"`
	Total         decimal.Decimal `json:"total"`
	Tax           decimal.Decimal `json:"tax"`
	Discount      decimal.Decimal `json:"discount"`
	Status        OrderStatus     `json:"status"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
	CreatedBy     string          `json:"createdBy"`
}

func (o Order) Key() string { return o.ID }

func (o Order) Clone() Order {
	o.Items = slices.Clone(o.Items)
	return o
}

func (o Order) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range o.Items {
		sum = sum.Add(item.TotalPrice)
	}
	return sum
}

// Reconciles reports whether total equals the item subtotal plus tax minus discount.
func (o Order) Reconciles() bool {
	return o.Total.Equal(o.Subtotal().Add(o.Tax).Sub(o.Discount))
}

type OrderInput struct {
	CustomerName  string          `json:"customerName,omitempty"`
	CustomerPhone string          `json:"customerPhone,omitempty"`
	Items         []OrderItem     `json:"items"`
	Total         decimal.Decimal `json:"total"`
	Tax           decimal.Decimal `json:"tax"`
	Discount      decimal.Decimal `json:"discount"`
	Status        OrderStatus     `json:"status"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	CreatedBy     string          `json:"createdBy"`
}

func (in OrderInput) Validate() error {
	if len(in.Items) == 0 {
		return fmtInvalid("order must contain at least one item")
	}
	for i, item := range in.Items {
		if item.Quantity <= 0 {
			return fmtInvalid("item %d (product %s): quantity must be positive", i, item.ProductID)
		}
		if item.UnitPrice.IsNegative() {
			return fmtInvalid("item %d (product %s): price cannot be negative", i, item.ProductID)
		}
	}
	if in.Discount.IsNegative() || in.Tax.IsNegative() {
		return fmtInvalid("tax and discount cannot be negative")
	}
	if !IsValidStatus(in.Status) {
		return fmtInvalid("invalid order status '%s'", in.Status)
	}
	if !IsValidPaymentMethod(in.PaymentMethod) {
		return fmtInvalid("invalid payment method '%s'", in.PaymentMethod)
	}
	return nil
}

type OrderPatch struct {
	CustomerName  *string          `json:"customerName,omitempty"`
	CustomerPhone *string          `json:"customerPhone,omitempty"`
	Status        *OrderStatus     `json:"status,omitempty"`
	PaymentMethod *PaymentMethod   `json:"paymentMethod,omitempty"`
	Discount      *decimal.Decimal `json:"discount,omitempty"`
	Tax           *decimal.Decimal `json:"tax,omitempty"`
	Total         *decimal.Decimal `json:"total,omitempty"`
}

func (p OrderPatch) Validate() error {
	if p.Status != nil && !IsValidStatus(*p.Status) {
		return fmtInvalid("invalid status value '%s'", *p.Status)
	}
	if p.PaymentMethod != nil && !IsValidPaymentMethod(*p.PaymentMethod) {
		return fmtInvalid("invalid payment method '%s'", *p.PaymentMethod)
	}
	if (p.Discount != nil && p.Discount.IsNegative()) || (p.Tax != nil && p.Tax.IsNegative()) {
		return fmtInvalid("tax and discount cannot be negative")
	}
	return nil
}

func (p OrderPatch) Apply(o Order) Order {
	if p.CustomerName != nil {
		o.CustomerName = *p.CustomerName
	}
	if p.CustomerPhone != nil {
		o.CustomerPhone = *p.CustomerPhone
	}
	if p.Status != nil {
		o.Status = *p.Status
	}
	if p.PaymentMethod != nil {
		o.PaymentMethod = *p.PaymentMethod
	}
	if p.Discount != nil {
		o.Discount = *p.Discount
	}
	if p.Tax != nil {
		o.Tax = *p.Tax
	}
	if p.Total != nil {
		o.Total = *p.Total
	}
	return o
}
