package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"pos_service/internal/domain"
)

type CheckoutInput struct {
	CustomerName  string               `json:"customerName,omitempty"`
	CustomerPhone string               `json:"customerPhone,omitempty"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod"`
	Discount      decimal.Decimal      `json:"discount"`
	CreatedBy     string               `json:"createdBy"`
}

// CheckoutUseCase turns a cart into a pending order priced with the stored tax rate.
type CheckoutUseCase struct {
	orders   *OrderUseCase
	products *ProductUseCase
	settings *SettingsUseCase
	log      *logrus.Logger
}

func NewCheckoutUseCase(orders *OrderUseCase, products *ProductUseCase, settings *SettingsUseCase, logger *logrus.Logger) *CheckoutUseCase {
	return &CheckoutUseCase{orders: orders, products: products, settings: settings, log: logger}
}

func (uc *CheckoutUseCase) Checkout(ctx context.Context, cart *CartUseCase, in CheckoutInput) (domain.Order, error) {
	lines := cart.Items()
	if len(lines) == 0 {
		return domain.Order{}, domain.ErrEmptyCart
	}
	if !domain.IsValidPaymentMethod(in.PaymentMethod) {
		return domain.Order{}, fmt.Errorf("%w: invalid payment method '%s'", domain.ErrInvalidInput, in.PaymentMethod)
	}
	if in.Discount.IsNegative() {
		return domain.Order{}, fmt.Errorf("%w: discount cannot be negative", domain.ErrInvalidInput)
	}

	items := make([]domain.OrderItem, 0, len(lines))
	subtotal := decimal.Zero
	for _, line := range lines {
		variantID, variantName := uc.resolveVariant(line)
		item := domain.NewOrderItem(line.ID, line.Name, variantID, variantName, line.Quantity, line.Price)
		items = append(items, item)
		subtotal = subtotal.Add(item.TotalPrice)
	}

	settings := uc.settings.Get(ctx)
	tax := subtotal.Mul(settings.TaxRate).Round(2)
	gross := subtotal.Add(tax)
	if in.Discount.GreaterThan(gross) {
		return domain.Order{}, fmt.Errorf("%w: discount %s exceeds order value %s", domain.ErrInvalidInput, in.Discount, gross)
	}

	order, err := uc.orders.AddOrder(ctx, domain.OrderInput{
		CustomerName:  in.CustomerName,
		CustomerPhone: in.CustomerPhone,
		Items:         items,
		Total:         gross.Sub(in.Discount),
		Tax:           tax,
		Discount:      in.Discount,
		Status:        domain.StatusPending,
		PaymentMethod: in.PaymentMethod,
		CreatedBy:     in.CreatedBy,
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("failed to place order: %w", err)
	}

	cart.RemoveLines(lines)
	uc.log.Infof("Use Case: Checkout placed order %s (%d lines, total %s %s)", order.ID, len(items), order.Total, settings.Currency)
	return order, nil
}

// resolveVariant finds the catalog variant matching the cart line size.
// Lines without a matching variant keep the size as variant name.
func (uc *CheckoutUseCase) resolveVariant(line domain.CartItem) (string, string) {
	if uc.products != nil {
		if p, ok := uc.products.GetProductByID(line.ID); ok {
			for _, v := range p.Variants {
				if v.Size == line.Size || v.Name == line.Size {
					return v.ID, v.Name
				}
			}
		}
	}
	return "", line.Size
}
